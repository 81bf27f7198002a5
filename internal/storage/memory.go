package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"studtrack/internal/activity"
	"studtrack/internal/models"
)

// MemoryStore — потокобезопасное хранилище в памяти. Используется тестами
// и локальным запуском без Postgres; контракт тот же, что у GormStore.
type MemoryStore struct {
	mu         sync.RWMutex
	courses    map[string]models.Course
	tasks      map[string]models.Task
	students   map[string]models.Student
	activities map[string]models.Activity
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		courses:    make(map[string]models.Course),
		tasks:      make(map[string]models.Task),
		students:   make(map[string]models.Student),
		activities: make(map[string]models.Activity),
	}
}

// --- Курсы ---

func (s *MemoryStore) CreateCourse(ctx context.Context, c *models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	s.courses[c.ID] = *c
	return nil
}

func (s *MemoryStore) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.courses[id]
	if !ok {
		return nil, activity.ErrNotFound
	}
	return &c, nil
}

func (s *MemoryStore) ListCourses(ctx context.Context) ([]models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	courses := make([]models.Course, 0, len(s.courses))
	for _, c := range s.courses {
		courses = append(courses, c)
	}
	return courses, nil
}

func (s *MemoryStore) SaveCourse(ctx context.Context, c *models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.courses[c.ID] = *c
	return nil
}

func (s *MemoryStore) DeleteCourse(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.courses[id]; !ok {
		return activity.ErrNotFound
	}
	delete(s.courses, id)
	return nil
}

// --- Задания ---

func (s *MemoryStore) CreateTask(ctx context.Context, t *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	s.tasks[t.ID] = *t
	return nil
}

func (s *MemoryStore) GetTask(ctx context.Context, id string) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil, activity.ErrNotFound
	}
	return &t, nil
}

func (s *MemoryStore) ListTasks(ctx context.Context) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tasks := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (s *MemoryStore) SaveTask(ctx context.Context, t *models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[t.ID] = *t
	return nil
}

func (s *MemoryStore) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return activity.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

func (s *MemoryStore) CountActivitiesByTask(ctx context.Context, taskID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, a := range s.activities {
		if a.TaskID == taskID {
			count++
		}
	}
	return count, nil
}

// --- Студенты ---

func (s *MemoryStore) CreateStudent(ctx context.Context, st *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.ID == "" {
		st.ID = uuid.NewString()
	}
	s.students[st.ID] = *st
	return nil
}

func (s *MemoryStore) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.students[id]
	if !ok {
		return nil, activity.ErrNotFound
	}
	if c, ok := s.courses[st.CourseID]; ok {
		st.Course = c
	}
	return &st, nil
}

func (s *MemoryStore) GetStudentByNumber(ctx context.Context, number string) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.students {
		if st.StudentNumber == number {
			return &st, nil
		}
	}
	return nil, activity.ErrNotFound
}

func (s *MemoryStore) ListStudents(ctx context.Context) ([]models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	students := make([]models.Student, 0, len(s.students))
	for _, st := range s.students {
		if c, ok := s.courses[st.CourseID]; ok {
			st.Course = c
		}
		students = append(students, st)
	}
	return students, nil
}

func (s *MemoryStore) SaveStudent(ctx context.Context, st *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students[st.ID] = *st
	return nil
}

func (s *MemoryStore) DeleteStudent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.students[id]; !ok {
		return activity.ErrNotFound
	}
	delete(s.students, id)
	return nil
}

func (s *MemoryStore) CountActivitiesByStudent(ctx context.Context, studentID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, a := range s.activities {
		if a.StudentID == studentID {
			count++
		}
	}
	return count, nil
}

// --- Активности ---

func (s *MemoryStore) CreateActivity(ctx context.Context, a *models.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = models.StatusScheduled
	}
	s.activities[a.ID] = *a
	return nil
}

// attachRefs заполняет связи Task и Student, как это делает Preload у gorm
func (s *MemoryStore) attachRefs(a models.Activity) models.Activity {
	if t, ok := s.tasks[a.TaskID]; ok {
		a.Task = t
	}
	if st, ok := s.students[a.StudentID]; ok {
		a.Student = st
	}
	return a
}

func (s *MemoryStore) GetActivity(ctx context.Context, id string) (*models.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.activities[id]
	if !ok {
		return nil, activity.ErrNotFound
	}
	a = s.attachRefs(a)
	return &a, nil
}

func (s *MemoryStore) SaveActivity(ctx context.Context, a *models.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities[a.ID] = *a
	return nil
}

func (s *MemoryStore) DeleteActivity(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.activities[id]; !ok {
		return activity.ErrNotFound
	}
	delete(s.activities, id)
	return nil
}

func (s *MemoryStore) ListActivities(ctx context.Context) ([]models.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acts := make([]models.Activity, 0, len(s.activities))
	for _, a := range s.activities {
		acts = append(acts, s.attachRefs(a))
	}
	return acts, nil
}
