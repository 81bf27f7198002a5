package activity

import (
	"context"

	"studtrack/internal/models"
)

// TaskStore — проверка существования заданий во внешнем хранилище
type TaskStore interface {
	GetTask(ctx context.Context, id string) (*models.Task, error)
}

// StudentStore — проверка существования студентов во внешнем хранилище
type StudentStore interface {
	GetStudent(ctx context.Context, id string) (*models.Student, error)
}

// ActivityStore — хранилище активностей. Методы чтения возвращают активность
// с заполненными связями Task и Student. При отсутствии записи возвращается ErrNotFound,
// любая другая ошибка считается инфраструктурной.
type ActivityStore interface {
	CreateActivity(ctx context.Context, a *models.Activity) error
	GetActivity(ctx context.Context, id string) (*models.Activity, error)
	SaveActivity(ctx context.Context, a *models.Activity) error
	DeleteActivity(ctx context.Context, id string) error
	ListActivities(ctx context.Context) ([]models.Activity, error)
}
