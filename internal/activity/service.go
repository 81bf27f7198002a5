// Package activity реализует ядро системы: правила планирования и жизненного
// цикла активности (scheduled → started → finished). Пакет не зависит от
// HTTP-слоя и конкретного хранилища — все обращения идут через интерфейсы.
package activity

import (
	"context"
	"errors"
	"time"

	"studtrack/internal/models"
	"studtrack/internal/timeutil"
)

// maxDuration — максимальная длительность запланированного окна
const maxDuration = 6 * time.Hour

// startTolerance — допуск на фактическое начало относительно запланированного.
// Граница открытая: ровно 15 минут до или после — уже отказ.
const startTolerance = 15 * time.Minute

// ScheduleInput — сырые поля запроса на создание или перенос активности.
// Разбор дат и времени выполняется внутри конвейера валидации, после
// проверки заполненности: пустое поле должно давать ErrMissingField,
// а не ошибку формата.
type ScheduleInput struct {
	TaskID    string
	StudentID string
	Date      string
	StartTime string
	EndTime   string
}

// View — активность с денормализованными именами задания и студента
// для удобства клиентов. Имена — проекции только для чтения.
type View struct {
	models.Activity
	TaskName    string `json:"task_name"`
	StudentName string `json:"student_name"`
}

// Service управляет жизненным циклом активности и прогоняет валидаторы
// в фиксированном порядке перед любой записью в хранилище.
type Service struct {
	tasks      TaskStore
	students   StudentStore
	activities ActivityStore
}

// NewService создаёт сервис с внедрёнными хранилищами
func NewService(tasks TaskStore, students StudentStore, activities ActivityStore) *Service {
	return &Service{tasks: tasks, students: students, activities: activities}
}

// schedule — результат успешной валидации окна планирования
type schedule struct {
	task    *models.Task
	student *models.Student
	date    time.Time
	start   timeutil.TimeOfDay
	end     timeutil.TimeOfDay
}

// validateSchedule — конвейер проверок для создания и переноса.
// Порядок фиксирован: заполненность → существование задания → существование
// студента → разбор даты и времени → длительность → порядок границ.
// Длительность проверяется раньше порядка границ, менять их местами нельзя.
func (s *Service) validateSchedule(ctx context.Context, in ScheduleInput) (*schedule, error) {
	if in.TaskID == "" || in.StudentID == "" || in.Date == "" || in.StartTime == "" || in.EndTime == "" {
		return nil, ErrMissingField
	}

	task, err := s.tasks.GetTask(ctx, in.TaskID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	student, err := s.students.GetStudent(ctx, in.StudentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	date, err := timeutil.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	start, err := timeutil.ParseTimeOfDay(in.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := timeutil.ParseTimeOfDay(in.EndTime)
	if err != nil {
		return nil, err
	}

	if end.On(date).Sub(start.On(date)) > maxDuration {
		return nil, ErrDurationExceeded
	}

	if !end.After(start) {
		return nil, ErrInvalidWindow
	}

	return &schedule{task: task, student: student, date: date, start: start, end: end}, nil
}

// Create проверяет окно планирования и сохраняет новую активность
// в состоянии scheduled
func (s *Service) Create(ctx context.Context, in ScheduleInput) (*View, error) {
	sch, err := s.validateSchedule(ctx, in)
	if err != nil {
		return nil, err
	}

	act := &models.Activity{
		TaskID:         sch.task.ID,
		StudentID:      sch.student.ID,
		ScheduledDate:  sch.date,
		ScheduledStart: sch.start,
		ScheduledEnd:   sch.end,
		Status:         models.StatusScheduled,
	}

	if err := s.activities.CreateActivity(ctx, act); err != nil {
		return nil, err
	}

	return &View{Activity: *act, TaskName: sch.task.Name, StudentName: sch.student.Name}, nil
}

// Update переносит активность: тот же конвейер валидации, что и Create.
// Текущее состояние жизненного цикла намеренно не проверяется — исходная
// система позволяла переносить уже начатую и даже завершённую активность.
func (s *Service) Update(ctx context.Context, id string, in ScheduleInput) (*View, error) {
	act, err := s.getActivity(ctx, id)
	if err != nil {
		return nil, err
	}

	sch, err := s.validateSchedule(ctx, in)
	if err != nil {
		return nil, err
	}

	act.TaskID = sch.task.ID
	act.StudentID = sch.student.ID
	act.ScheduledDate = sch.date
	act.ScheduledStart = sch.start
	act.ScheduledEnd = sch.end

	if err := s.activities.SaveActivity(ctx, act); err != nil {
		return nil, err
	}

	return &View{Activity: *act, TaskName: sch.task.Name, StudentName: sch.student.Name}, nil
}

// Start фиксирует фактическое начало активности. Допуск ±15 минут от
// запланированного времени, границы исключаются. Повторный старт
// перезаписывает прежнее значение — поведение исходной системы сохранено.
func (s *Service) Start(ctx context.Context, id, startTime string) (*View, error) {
	act, err := s.getActivity(ctx, id)
	if err != nil {
		return nil, err
	}

	if startTime == "" {
		return nil, ErrMissingField
	}
	t, err := timeutil.ParseTimeOfDay(startTime)
	if err != nil {
		return nil, err
	}

	diff := t.Sub(act.ScheduledStart)
	if diff <= -startTolerance || diff >= startTolerance {
		return nil, ErrStartOutOfTolerance
	}

	act.Start(t)
	if err := s.activities.SaveActivity(ctx, act); err != nil {
		return nil, err
	}

	return s.view(act), nil
}

// Finish фиксирует фактическое окончание. Требуется, чтобы активность была
// начата, а время окончания было строго позже фактического и запланированного
// времени начала. Повторное завершение перезаписывает прежнее значение.
func (s *Service) Finish(ctx context.Context, id, endTime string) (*View, error) {
	act, err := s.getActivity(ctx, id)
	if err != nil {
		return nil, err
	}

	if endTime == "" {
		return nil, ErrMissingField
	}
	t, err := timeutil.ParseTimeOfDay(endTime)
	if err != nil {
		return nil, err
	}

	if !act.Started() {
		return nil, ErrNotYetStarted
	}

	if !t.After(*act.ActualStart) || !t.After(act.ScheduledStart) {
		return nil, ErrFinishOutOfOrder
	}

	act.Finish(t)
	if err := s.activities.SaveActivity(ctx, act); err != nil {
		return nil, err
	}

	return s.view(act), nil
}

// Delete безусловно удаляет активность по идентификатору
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.activities.DeleteActivity(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrActivityNotFound
		}
		return err
	}
	return nil
}

// Get возвращает одну активность с именами задания и студента
func (s *Service) Get(ctx context.Context, id string) (*View, error) {
	act, err := s.getActivity(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(act), nil
}

// List возвращает все активности с именами заданий и студентов
func (s *Service) List(ctx context.Context) ([]View, error) {
	acts, err := s.activities.ListActivities(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]View, 0, len(acts))
	for i := range acts {
		views = append(views, *s.view(&acts[i]))
	}
	return views, nil
}

func (s *Service) getActivity(ctx context.Context, id string) (*models.Activity, error) {
	act, err := s.activities.GetActivity(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}
	return act, nil
}

func (s *Service) view(act *models.Activity) *View {
	return &View{Activity: *act, TaskName: act.Task.Name, StudentName: act.Student.Name}
}
