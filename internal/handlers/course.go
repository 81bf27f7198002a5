package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"studtrack/internal/activity"
	"studtrack/internal/models"
	"studtrack/internal/response"
)

// CourseStore — операции хранилища, нужные обработчикам курсов
type CourseStore interface {
	CreateCourse(ctx context.Context, c *models.Course) error
	GetCourse(ctx context.Context, id string) (*models.Course, error)
	ListCourses(ctx context.Context) ([]models.Course, error)
	SaveCourse(ctx context.Context, c *models.Course) error
	DeleteCourse(ctx context.Context, id string) error
}

// CourseHandler обрабатывает CRUD-запросы по курсам
type CourseHandler struct {
	store CourseStore
	log   *zap.Logger
}

func NewCourseHandler(store CourseStore, log *zap.Logger) *CourseHandler {
	return &CourseHandler{store: store, log: log}
}

// CourseRequest — тело запроса на создание и обновление курса
type CourseRequest struct {
	Name string `json:"name" example:"Прикладная информатика"`
}

// CreateCourse создаёт новый курс
// @Summary		Создание курса
// @Tags			course
// @Accept			json
// @Produce		json
// @Param			input	body		CourseRequest	true	"Данные курса"
// @Success		201		{object}	models.Course	"Созданный курс"
// @Failure		400		{object}	response.ErrorResponse	"Ошибка валидации (MISSING_FIELD)"
// @Failure		500		{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/course [post]
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "MISSING_FIELD",
			Message: "Название курса обязательно и не может быть пустым",
		})
		return
	}

	course := models.Course{Name: req.Name}
	if err := h.store.CreateCourse(c.Request.Context(), &course); err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, course)
}

// ListCourses возвращает все курсы
// @Summary		Список курсов
// @Tags			course
// @Produce		json
// @Success		200	{array}		models.Course	"Список курсов"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/courses [get]
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.store.ListCourses(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

// GetCourse возвращает курс по идентификатору
// @Summary		Получение курса
// @Tags			course
// @Produce		json
// @Param			id	path		string	true	"ID курса"
// @Success		200	{object}	models.Course	"Курс"
// @Failure		404	{object}	response.ErrorResponse	"Курс не найден (COURSE_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/course/{id} [get]
func (h *CourseHandler) GetCourse(c *gin.Context) {
	course, err := h.store.GetCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, activity.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{
				Code:    "COURSE_NOT_FOUND",
				Message: "Курс не найден",
			})
			return
		}
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// UpdateCourse обновляет название курса
// @Summary		Обновление курса
// @Tags			course
// @Accept			json
// @Produce		json
// @Param			id		path		string	true	"ID курса"
// @Param			input	body		CourseRequest	true	"Новые данные курса"
// @Success		200		{object}	models.Course	"Обновлённый курс"
// @Failure		400		{object}	response.ErrorResponse	"Ошибка валидации (MISSING_FIELD)"
// @Failure		404		{object}	response.ErrorResponse	"Курс не найден (COURSE_NOT_FOUND)"
// @Failure		500		{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/course/{id} [put]
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "MISSING_FIELD",
			Message: "Название курса обязательно и не может быть пустым",
		})
		return
	}

	course, err := h.store.GetCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, activity.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{
				Code:    "COURSE_NOT_FOUND",
				Message: "Курс не найден",
			})
			return
		}
		writeServiceError(c, h.log, err)
		return
	}

	course.Name = req.Name
	if err := h.store.SaveCourse(c.Request.Context(), course); err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

// DeleteCourse удаляет курс
// @Summary		Удаление курса
// @Tags			course
// @Produce		json
// @Param			id	path	string	true	"ID курса"
// @Success		204	"Курс удалён"
// @Failure		404	{object}	response.ErrorResponse	"Курс не найден (COURSE_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/course/{id} [delete]
func (h *CourseHandler) DeleteCourse(c *gin.Context) {
	if err := h.store.DeleteCourse(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, activity.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{
				Code:    "COURSE_NOT_FOUND",
				Message: "Курс не найден",
			})
			return
		}
		writeServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
