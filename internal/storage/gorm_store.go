package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"studtrack/internal/activity"
	"studtrack/internal/models"
)

// GormStore реализует хранилища поверх gorm/Postgres.
// Ошибка gorm.ErrRecordNotFound переводится в activity.ErrNotFound,
// остальные ошибки считаются инфраструктурными и отдаются как есть.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return activity.ErrNotFound
	}
	return err
}

// --- Курсы ---

func (s *GormStore) CreateCourse(ctx context.Context, c *models.Course) error {
	return s.db.WithContext(ctx).Create(c).Error
}

func (s *GormStore) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	var c models.Course
	if err := s.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *GormStore) ListCourses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := s.db.WithContext(ctx).Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (s *GormStore) SaveCourse(ctx context.Context, c *models.Course) error {
	return s.db.WithContext(ctx).Save(c).Error
}

func (s *GormStore) DeleteCourse(ctx context.Context, id string) error {
	tx := s.db.WithContext(ctx).Delete(&models.Course{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return activity.ErrNotFound
	}
	return nil
}

// --- Задания ---

func (s *GormStore) CreateTask(ctx context.Context, t *models.Task) error {
	return s.db.WithContext(ctx).Create(t).Error
}

func (s *GormStore) GetTask(ctx context.Context, id string) (*models.Task, error) {
	var t models.Task
	if err := s.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (s *GormStore) ListTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := s.db.WithContext(ctx).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *GormStore) SaveTask(ctx context.Context, t *models.Task) error {
	return s.db.WithContext(ctx).Save(t).Error
}

func (s *GormStore) DeleteTask(ctx context.Context, id string) error {
	tx := s.db.WithContext(ctx).Delete(&models.Task{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return activity.ErrNotFound
	}
	return nil
}

// CountActivitiesByTask возвращает число активностей, ссылающихся на задание
func (s *GormStore) CountActivitiesByTask(ctx context.Context, taskID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Activity{}).Where("task_id = ?", taskID).Count(&count).Error
	return count, err
}

// --- Студенты ---

func (s *GormStore) CreateStudent(ctx context.Context, st *models.Student) error {
	return s.db.WithContext(ctx).Create(st).Error
}

func (s *GormStore) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	var st models.Student
	if err := s.db.WithContext(ctx).Preload("Course").First(&st, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &st, nil
}

// GetStudentByNumber ищет студента по номеру зачётной книжки (проверка дубликатов)
func (s *GormStore) GetStudentByNumber(ctx context.Context, number string) (*models.Student, error) {
	var st models.Student
	if err := s.db.WithContext(ctx).First(&st, "student_number = ?", number).Error; err != nil {
		return nil, translate(err)
	}
	return &st, nil
}

func (s *GormStore) ListStudents(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := s.db.WithContext(ctx).Preload("Course").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (s *GormStore) SaveStudent(ctx context.Context, st *models.Student) error {
	return s.db.WithContext(ctx).Save(st).Error
}

func (s *GormStore) DeleteStudent(ctx context.Context, id string) error {
	tx := s.db.WithContext(ctx).Delete(&models.Student{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return activity.ErrNotFound
	}
	return nil
}

// CountActivitiesByStudent возвращает число активностей, ссылающихся на студента
func (s *GormStore) CountActivitiesByStudent(ctx context.Context, studentID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Activity{}).Where("student_id = ?", studentID).Count(&count).Error
	return count, err
}

// --- Активности ---

func (s *GormStore) CreateActivity(ctx context.Context, a *models.Activity) error {
	return s.db.WithContext(ctx).Create(a).Error
}

func (s *GormStore) GetActivity(ctx context.Context, id string) (*models.Activity, error) {
	var a models.Activity
	err := s.db.WithContext(ctx).Preload("Task").Preload("Student").First(&a, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (s *GormStore) SaveActivity(ctx context.Context, a *models.Activity) error {
	return s.db.WithContext(ctx).Save(a).Error
}

func (s *GormStore) DeleteActivity(ctx context.Context, id string) error {
	tx := s.db.WithContext(ctx).Delete(&models.Activity{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return activity.ErrNotFound
	}
	return nil
}

func (s *GormStore) ListActivities(ctx context.Context) ([]models.Activity, error) {
	var acts []models.Activity
	if err := s.db.WithContext(ctx).Preload("Task").Preload("Student").Find(&acts).Error; err != nil {
		return nil, err
	}
	return acts, nil
}
