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

// StudentStore — операции хранилища, нужные обработчикам студентов
type StudentStore interface {
	CreateStudent(ctx context.Context, st *models.Student) error
	GetStudent(ctx context.Context, id string) (*models.Student, error)
	GetStudentByNumber(ctx context.Context, number string) (*models.Student, error)
	ListStudents(ctx context.Context) ([]models.Student, error)
	SaveStudent(ctx context.Context, st *models.Student) error
	DeleteStudent(ctx context.Context, id string) error
	CountActivitiesByStudent(ctx context.Context, studentID string) (int64, error)
	GetCourse(ctx context.Context, id string) (*models.Course, error)
}

// StudentHandler обрабатывает CRUD-запросы по студентам
type StudentHandler struct {
	store StudentStore
	log   *zap.Logger
}

func NewStudentHandler(store StudentStore, log *zap.Logger) *StudentHandler {
	return &StudentHandler{store: store, log: log}
}

// StudentRequest — тело запроса на создание студента
type StudentRequest struct {
	Name          string `json:"name" example:"Иванов Иван Иванович"`
	StudentNumber string `json:"student_number" example:"2024-0417"`
	CourseID      string `json:"course_id" example:"0b9c8f3e-5c2a-4d8e-9f1b-7a6d5c4e3f2a"`
}

// StudentUpdateRequest — тело запроса на обновление студента (имя и курс)
type StudentUpdateRequest struct {
	Name     string `json:"name" example:"Иванов Иван Иванович"`
	CourseID string `json:"course_id" example:"0b9c8f3e-5c2a-4d8e-9f1b-7a6d5c4e3f2a"`
}

func studentView(st *models.Student) response.StudentResponse {
	return response.StudentResponse{Student: *st, CourseName: st.Course.Name}
}

// courseExists проверяет существование курса; при отсутствии пишет ответ 400,
// как это делала исходная система
func (h *StudentHandler) courseExists(c *gin.Context, courseID string) bool {
	_, err := h.store.GetCourse(c.Request.Context(), courseID)
	if err == nil {
		return true
	}
	if errors.Is(err, activity.ErrNotFound) {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "COURSE_NOT_FOUND",
			Message: "Указанный курс не существует",
		})
		return false
	}
	writeServiceError(c, h.log, err)
	return false
}

// CreateStudent создаёт нового студента
// @Summary		Создание студента
// @Description	Все поля обязательны; номер зачётной книжки должен быть уникален, курс должен существовать
// @Tags			student
// @Accept			json
// @Produce		json
// @Param			input	body		StudentRequest	true	"Данные студента"
// @Success		201		{object}	models.Student	"Созданный студент"
// @Failure		400		{object}	response.ErrorResponse	"Ошибка валидации (MISSING_FIELD, DUPLICATE_STUDENT_NUMBER, COURSE_NOT_FOUND)"
// @Failure		500		{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/student [post]
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.StudentNumber) == "" ||
		strings.TrimSpace(req.CourseID) == "" {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "MISSING_FIELD",
			Message: "Все поля обязательны: имя, номер зачётной книжки и курс",
		})
		return
	}

	// Проверка дубликата номера зачётной книжки
	if _, err := h.store.GetStudentByNumber(c.Request.Context(), req.StudentNumber); err == nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "DUPLICATE_STUDENT_NUMBER",
			Message: "Студент с таким номером зачётной книжки уже существует",
		})
		return
	} else if !errors.Is(err, activity.ErrNotFound) {
		writeServiceError(c, h.log, err)
		return
	}

	if !h.courseExists(c, req.CourseID) {
		return
	}

	student := models.Student{
		Name:          req.Name,
		StudentNumber: req.StudentNumber,
		CourseID:      req.CourseID,
	}
	if err := h.store.CreateStudent(c.Request.Context(), &student); err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, student)
}

// ListStudents возвращает всех студентов
// @Summary		Список студентов
// @Tags			student
// @Produce		json
// @Success		200	{array}		response.StudentResponse	"Список студентов с названиями курсов"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/students [get]
func (h *StudentHandler) ListStudents(c *gin.Context) {
	students, err := h.store.ListStudents(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	views := make([]response.StudentResponse, 0, len(students))
	for i := range students {
		views = append(views, studentView(&students[i]))
	}
	c.JSON(http.StatusOK, views)
}

// GetStudent возвращает студента по идентификатору
// @Summary		Получение студента
// @Tags			student
// @Produce		json
// @Param			id	path		string	true	"ID студента"
// @Success		200	{object}	response.StudentResponse	"Студент с названием курса"
// @Failure		404	{object}	response.ErrorResponse	"Студент не найден (STUDENT_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/student/{id} [get]
func (h *StudentHandler) GetStudent(c *gin.Context) {
	student, err := h.store.GetStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, activity.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{
				Code:    "STUDENT_NOT_FOUND",
				Message: activity.ErrStudentNotFound.Error(),
			})
			return
		}
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, studentView(student))
}

// UpdateStudent обновляет имя и курс студента
// @Summary		Обновление студента
// @Tags			student
// @Accept			json
// @Produce		json
// @Param			id		path		string	true	"ID студента"
// @Param			input	body		StudentUpdateRequest	true	"Новые данные студента"
// @Success		200		{object}	models.Student	"Обновлённый студент"
// @Failure		400		{object}	response.ErrorResponse	"Ошибка валидации (MISSING_FIELD, COURSE_NOT_FOUND)"
// @Failure		404		{object}	response.ErrorResponse	"Студент не найден (STUDENT_NOT_FOUND)"
// @Failure		500		{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/student/{id} [put]
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	var req StudentUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.CourseID) == "" {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "MISSING_FIELD",
			Message: "Поля name и course_id обязательны и не могут быть пустыми",
		})
		return
	}

	if !h.courseExists(c, req.CourseID) {
		return
	}

	student, err := h.store.GetStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, activity.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{
				Code:    "STUDENT_NOT_FOUND",
				Message: activity.ErrStudentNotFound.Error(),
			})
			return
		}
		writeServiceError(c, h.log, err)
		return
	}

	student.Name = req.Name
	student.CourseID = req.CourseID
	if err := h.store.SaveStudent(c.Request.Context(), student); err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, student)
}

// DeleteStudent удаляет студента
// @Summary		Удаление студента
// @Description	Студента с привязанными активностями удалить нельзя
// @Tags			student
// @Produce		json
// @Param			id	path	string	true	"ID студента"
// @Success		204	"Студент удалён"
// @Failure		400	{object}	response.ErrorResponse	"У студента есть активности (HAS_ACTIVITIES)"
// @Failure		404	{object}	response.ErrorResponse	"Студент не найден (STUDENT_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/student/{id} [delete]
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id := c.Param("id")

	count, err := h.store.CountActivitiesByStudent(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "HAS_ACTIVITIES",
			Message: "Студента нельзя удалить, пока у него есть привязанные активности",
		})
		return
	}

	if err := h.store.DeleteStudent(c.Request.Context(), id); err != nil {
		if errors.Is(err, activity.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{
				Code:    "STUDENT_NOT_FOUND",
				Message: activity.ErrStudentNotFound.Error(),
			})
			return
		}
		writeServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
