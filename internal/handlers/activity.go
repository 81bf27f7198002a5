package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"studtrack/internal/activity"
	"studtrack/internal/response"
)

const (
	activitiesCacheKey = "activities_all"
	activitiesCacheTTL = time.Minute
)

// ActivityHandler обрабатывает запросы жизненного цикла активностей
type ActivityHandler struct {
	service *activity.Service
	cache   *redis.Client // nil — кэш отключён
	log     *zap.Logger
}

func NewActivityHandler(service *activity.Service, cache *redis.Client, log *zap.Logger) *ActivityHandler {
	return &ActivityHandler{service: service, cache: cache, log: log}
}

// ActivityRequest — тело запроса на создание и перенос активности
type ActivityRequest struct {
	TaskID         string `json:"task_id" example:"0b9c8f3e-5c2a-4d8e-9f1b-7a6d5c4e3f2a"`
	StudentID      string `json:"student_id" example:"1a2b3c4d-5e6f-7a8b-9c0d-1e2f3a4b5c6d"`
	ScheduledDate  string `json:"scheduled_date" example:"2024-09-28"`
	ScheduledStart string `json:"scheduled_start" example:"10:00:00"`
	ScheduledEnd   string `json:"scheduled_end" example:"10:30:00"`
}

// StartRequest — тело запроса на начало активности
type StartRequest struct {
	ActualStart string `json:"actual_start" example:"10:05:00"`
}

// FinishRequest — тело запроса на завершение активности
type FinishRequest struct {
	ActualEnd string `json:"actual_end" example:"10:25:00"`
}

func (h *ActivityHandler) input(req ActivityRequest) activity.ScheduleInput {
	return activity.ScheduleInput{
		TaskID:    req.TaskID,
		StudentID: req.StudentID,
		Date:      req.ScheduledDate,
		StartTime: req.ScheduledStart,
		EndTime:   req.ScheduledEnd,
	}
}

// invalidateCache сбрасывает кэш списка активностей после любой мутации
func (h *ActivityHandler) invalidateCache(c *gin.Context) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Del(c.Request.Context(), activitiesCacheKey).Err(); err != nil {
		h.log.Warn("не удалось сбросить кэш активностей", zap.Error(err))
	}
}

// CreateActivity создаёт новую активность
// @Summary		Создание активности
// @Description	Проверяет существование задания и студента, длительность окна (не более 6 часов) и порядок границ, затем сохраняет активность в состоянии scheduled
// @Tags			activity
// @Accept			json
// @Produce		json
// @Param			input	body		ActivityRequest	true	"Данные активности"
// @Success		201		{object}	activity.View	"Созданная активность"
// @Failure		400		{object}	response.ErrorResponse	"Ошибка валидации (MISSING_FIELD, INVALID_TIME_FORMAT, INVALID_DATE_FORMAT, DURATION_EXCEEDED, INVALID_WINDOW)"
// @Failure		404		{object}	response.ErrorResponse	"Задание или студент не найдены (TASK_NOT_FOUND, STUDENT_NOT_FOUND)"
// @Failure		500		{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/activity [post]
func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	var req ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_BODY",
			Message: "Не удалось разобрать тело запроса",
		})
		return
	}

	view, err := h.service.Create(c.Request.Context(), h.input(req))
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	h.invalidateCache(c)
	c.JSON(http.StatusCreated, view)
}

// UpdateActivity переносит активность на другое окно
// @Summary		Перенос активности
// @Description	Применяет тот же конвейер валидации, что и создание; текущее состояние жизненного цикла не проверяется
// @Tags			activity
// @Accept			json
// @Produce		json
// @Param			id		path		string	true	"ID активности"
// @Param			input	body		ActivityRequest	true	"Новые данные активности"
// @Success		200		{object}	activity.View	"Обновлённая активность"
// @Failure		400		{object}	response.ErrorResponse	"Ошибка валидации"
// @Failure		404		{object}	response.ErrorResponse	"Активность, задание или студент не найдены"
// @Failure		500		{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/activity/{id} [put]
func (h *ActivityHandler) UpdateActivity(c *gin.Context) {
	var req ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_BODY",
			Message: "Не удалось разобрать тело запроса",
		})
		return
	}

	view, err := h.service.Update(c.Request.Context(), c.Param("id"), h.input(req))
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	h.invalidateCache(c)
	c.JSON(http.StatusOK, view)
}

// StartActivity фиксирует фактическое начало активности
// @Summary		Начало активности
// @Description	Начать активность можно только в пределах 15 минут до или после запланированного времени начала (границы исключаются)
// @Tags			activity
// @Accept			json
// @Produce		json
// @Param			id		path		string	true	"ID активности"
// @Param			input	body		StartRequest	true	"Фактическое время начала"
// @Success		200		{object}	activity.View	"Активность с заполненным actual_start"
// @Failure		400		{object}	response.ErrorResponse	"Ошибка валидации (MISSING_FIELD, INVALID_TIME_FORMAT, START_OUT_OF_TOLERANCE)"
// @Failure		404		{object}	response.ErrorResponse	"Активность не найдена (ACTIVITY_NOT_FOUND)"
// @Failure		500		{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/activity/{id}/start [patch]
func (h *ActivityHandler) StartActivity(c *gin.Context) {
	var req StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_BODY",
			Message: "Не удалось разобрать тело запроса",
		})
		return
	}

	view, err := h.service.Start(c.Request.Context(), c.Param("id"), req.ActualStart)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	h.invalidateCache(c)
	c.JSON(http.StatusOK, view)
}

// FinishActivity фиксирует фактическое окончание активности
// @Summary		Завершение активности
// @Description	Активность должна быть начата, время окончания — строго позже фактического и запланированного времени начала
// @Tags			activity
// @Accept			json
// @Produce		json
// @Param			id		path		string	true	"ID активности"
// @Param			input	body		FinishRequest	true	"Фактическое время окончания"
// @Success		200		{object}	activity.View	"Активность с заполненным actual_end"
// @Failure		400		{object}	response.ErrorResponse	"Ошибка валидации (MISSING_FIELD, INVALID_TIME_FORMAT, NOT_YET_STARTED, FINISH_OUT_OF_ORDER)"
// @Failure		404		{object}	response.ErrorResponse	"Активность не найдена (ACTIVITY_NOT_FOUND)"
// @Failure		500		{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/activity/{id}/finish [patch]
func (h *ActivityHandler) FinishActivity(c *gin.Context) {
	var req FinishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_BODY",
			Message: "Не удалось разобрать тело запроса",
		})
		return
	}

	view, err := h.service.Finish(c.Request.Context(), c.Param("id"), req.ActualEnd)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	h.invalidateCache(c)
	c.JSON(http.StatusOK, view)
}

// DeleteActivity удаляет активность
// @Summary		Удаление активности
// @Description	Удаляет активность без дополнительных проверок состояния
// @Tags			activity
// @Produce		json
// @Param			id	path	string	true	"ID активности"
// @Success		204	"Активность удалена"
// @Failure		404	{object}	response.ErrorResponse	"Активность не найдена (ACTIVITY_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/activity/{id} [delete]
func (h *ActivityHandler) DeleteActivity(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	h.invalidateCache(c)
	c.Status(http.StatusNoContent)
}

// GetActivity возвращает одну активность
// @Summary		Получение активности
// @Tags			activity
// @Produce		json
// @Param			id	path		string	true	"ID активности"
// @Success		200	{object}	activity.View	"Активность с именами задания и студента"
// @Failure		404	{object}	response.ErrorResponse	"Активность не найдена (ACTIVITY_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/activity/{id} [get]
func (h *ActivityHandler) GetActivity(c *gin.Context) {
	view, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ListActivities возвращает все активности
// @Summary		Список активностей
// @Description	Возвращает все активности с именами заданий и студентов, результат кэшируется в Redis
// @Tags			activity
// @Produce		json
// @Success		200	{array}		activity.View	"Список активностей"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/activities [get]
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	ctx := c.Request.Context()

	// Проверка кэша: при любой ошибке Redis просто идём в базу
	if h.cache != nil {
		if cached, err := h.cache.Get(ctx, activitiesCacheKey).Result(); err == nil && cached != "" {
			var views []activity.View
			if err := json.Unmarshal([]byte(cached), &views); err == nil {
				c.JSON(http.StatusOK, views)
				return
			}
		}
	}

	views, err := h.service.List(ctx)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	if h.cache != nil {
		if data, err := json.Marshal(views); err == nil {
			h.cache.Set(ctx, activitiesCacheKey, data, activitiesCacheTTL)
		}
	}

	c.JSON(http.StatusOK, views)
}
