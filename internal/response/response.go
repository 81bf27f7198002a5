package response

import "studtrack/internal/models"

// SuccessResponse представляет успешный ответ API
type SuccessResponse struct {
	Message string `json:"message" example:"Операция успешно выполнена"`
}

// ErrorResponse представляет ответ с ошибкой API
type ErrorResponse struct {
	// Код ошибки для программной обработки
	// example: MISSING_FIELD
	Code string `json:"code"`

	// Человекочитаемое сообщение об ошибке
	// example: Все поля обязательны и не могут быть пустыми
	Message string `json:"message"`

	// Дополнительные детали об ошибке (опционально)
	// example: поле scheduled_start должно иметь формат HH:MM:SS
	Details string `json:"details,omitempty"`
}

// StudentResponse — студент с денормализованным названием курса
type StudentResponse struct {
	models.Student
	CourseName string `json:"course_name"`
}
