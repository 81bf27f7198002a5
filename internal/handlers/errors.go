package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"studtrack/internal/activity"
	"studtrack/internal/response"
	"studtrack/internal/timeutil"
)

// serviceError описывает соответствие ошибки ядра HTTP-коду и коду API
type serviceError struct {
	status int
	code   string
}

var serviceErrors = map[error]serviceError{
	activity.ErrMissingField:        {http.StatusBadRequest, "MISSING_FIELD"},
	timeutil.ErrInvalidTimeFormat:   {http.StatusBadRequest, "INVALID_TIME_FORMAT"},
	timeutil.ErrInvalidDateFormat:   {http.StatusBadRequest, "INVALID_DATE_FORMAT"},
	activity.ErrDurationExceeded:    {http.StatusBadRequest, "DURATION_EXCEEDED"},
	activity.ErrInvalidWindow:       {http.StatusBadRequest, "INVALID_WINDOW"},
	activity.ErrStartOutOfTolerance: {http.StatusBadRequest, "START_OUT_OF_TOLERANCE"},
	activity.ErrNotYetStarted:       {http.StatusBadRequest, "NOT_YET_STARTED"},
	activity.ErrFinishOutOfOrder:    {http.StatusBadRequest, "FINISH_OUT_OF_ORDER"},
	activity.ErrTaskNotFound:        {http.StatusNotFound, "TASK_NOT_FOUND"},
	activity.ErrStudentNotFound:     {http.StatusNotFound, "STUDENT_NOT_FOUND"},
	activity.ErrActivityNotFound:    {http.StatusNotFound, "ACTIVITY_NOT_FOUND"},
}

// writeServiceError переводит ошибку ядра в HTTP-ответ. Ошибки валидации и
// отсутствия сущностей отдаются клиенту как есть, инфраструктурные ошибки
// логируются и наружу не раскрываются.
func writeServiceError(c *gin.Context, log *zap.Logger, err error) {
	for sentinel, se := range serviceErrors {
		if errors.Is(err, sentinel) {
			c.JSON(se.status, response.ErrorResponse{
				Code:    se.code,
				Message: sentinel.Error(),
			})
			return
		}
	}

	log.Error("ошибка хранилища",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, response.ErrorResponse{
		Code:    "DB_ERROR",
		Message: "Внутренняя ошибка сервера",
	})
}
