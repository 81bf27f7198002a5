package activity

import "errors"

// ErrNotFound — базовая ошибка хранилищ: запись по идентификатору не найдена.
// Реализации хранилищ возвращают её вместо ошибок конкретного драйвера.
var ErrNotFound = errors.New("запись не найдена")

// Ошибки валидации (HTTP 400)
var (
	ErrMissingField        = errors.New("все поля обязательны и не могут быть пустыми")
	ErrDurationExceeded    = errors.New("длительность активности не может превышать 6 часов")
	ErrInvalidWindow       = errors.New("время окончания не может быть раньше или равно времени начала")
	ErrStartOutOfTolerance = errors.New("активность можно начать только в пределах 15 минут до или после запланированного времени начала")
	ErrNotYetStarted       = errors.New("активность должна быть начата прежде, чем её можно завершить")
	ErrFinishOutOfOrder    = errors.New("время окончания должно быть позже фактического и запланированного времени начала")
)

// Ошибки отсутствия сущностей (HTTP 404)
var (
	ErrTaskNotFound     = errors.New("задание не найдено")
	ErrStudentNotFound  = errors.New("студент не найден")
	ErrActivityNotFound = errors.New("активность не найдена")
)
