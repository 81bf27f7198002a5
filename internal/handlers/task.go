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

// TaskStore — операции хранилища, нужные обработчикам заданий
type TaskStore interface {
	CreateTask(ctx context.Context, t *models.Task) error
	GetTask(ctx context.Context, id string) (*models.Task, error)
	ListTasks(ctx context.Context) ([]models.Task, error)
	SaveTask(ctx context.Context, t *models.Task) error
	DeleteTask(ctx context.Context, id string) error
	CountActivitiesByTask(ctx context.Context, taskID string) (int64, error)
}

// TaskHandler обрабатывает CRUD-запросы по заданиям
type TaskHandler struct {
	store TaskStore
	log   *zap.Logger
}

func NewTaskHandler(store TaskStore, log *zap.Logger) *TaskHandler {
	return &TaskHandler{store: store, log: log}
}

// TaskRequest — тело запроса на создание и обновление задания
type TaskRequest struct {
	Name string `json:"name" example:"Лабораторная работа №3"`
}

// CreateTask создаёт новое задание
// @Summary		Создание задания
// @Tags			task
// @Accept			json
// @Produce		json
// @Param			input	body		TaskRequest	true	"Данные задания"
// @Success		201		{object}	models.Task	"Созданное задание"
// @Failure		400		{object}	response.ErrorResponse	"Ошибка валидации (MISSING_FIELD)"
// @Failure		500		{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/task [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "MISSING_FIELD",
			Message: "Название задания обязательно и не может быть пустым",
		})
		return
	}

	task := models.Task{Name: req.Name}
	if err := h.store.CreateTask(c.Request.Context(), &task); err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// ListTasks возвращает все задания
// @Summary		Список заданий
// @Tags			task
// @Produce		json
// @Success		200	{array}		models.Task	"Список заданий"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.store.ListTasks(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// GetTask возвращает задание по идентификатору
// @Summary		Получение задания
// @Tags			task
// @Produce		json
// @Param			id	path		string	true	"ID задания"
// @Success		200	{object}	models.Task	"Задание"
// @Failure		404	{object}	response.ErrorResponse	"Задание не найдено (TASK_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/task/{id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.store.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, activity.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{
				Code:    "TASK_NOT_FOUND",
				Message: activity.ErrTaskNotFound.Error(),
			})
			return
		}
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// UpdateTask обновляет название задания
// @Summary		Обновление задания
// @Tags			task
// @Accept			json
// @Produce		json
// @Param			id		path		string	true	"ID задания"
// @Param			input	body		TaskRequest	true	"Новые данные задания"
// @Success		200		{object}	models.Task	"Обновлённое задание"
// @Failure		400		{object}	response.ErrorResponse	"Ошибка валидации (MISSING_FIELD)"
// @Failure		404		{object}	response.ErrorResponse	"Задание не найдено (TASK_NOT_FOUND)"
// @Failure		500		{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/task/{id} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "MISSING_FIELD",
			Message: "Название задания обязательно и не может быть пустым",
		})
		return
	}

	task, err := h.store.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, activity.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{
				Code:    "TASK_NOT_FOUND",
				Message: activity.ErrTaskNotFound.Error(),
			})
			return
		}
		writeServiceError(c, h.log, err)
		return
	}

	task.Name = req.Name
	if err := h.store.SaveTask(c.Request.Context(), task); err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask удаляет задание
// @Summary		Удаление задания
// @Description	Задание с привязанными активностями удалить нельзя
// @Tags			task
// @Produce		json
// @Param			id	path	string	true	"ID задания"
// @Success		204	"Задание удалено"
// @Failure		400	{object}	response.ErrorResponse	"У задания есть активности (HAS_ACTIVITIES)"
// @Failure		404	{object}	response.ErrorResponse	"Задание не найдено (TASK_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/task/{id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id := c.Param("id")

	count, err := h.store.CountActivitiesByTask(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "HAS_ACTIVITIES",
			Message: "Задание нельзя удалить, пока у него есть привязанные активности",
		})
		return
	}

	if err := h.store.DeleteTask(c.Request.Context(), id); err != nil {
		if errors.Is(err, activity.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{
				Code:    "TASK_NOT_FOUND",
				Message: activity.ErrTaskNotFound.Error(),
			})
			return
		}
		writeServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
