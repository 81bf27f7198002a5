package activity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studtrack/internal/activity"
	"studtrack/internal/models"
	"studtrack/internal/storage"
	"studtrack/internal/timeutil"
)

type fixture struct {
	svc       *activity.Service
	store     *storage.MemoryStore
	taskID    string
	studentID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := storage.NewMemoryStore()

	course := models.Course{Name: "Курс тестирования"}
	require.NoError(t, store.CreateCourse(ctx, &course))

	task := models.Task{Name: "Лабораторная работа"}
	require.NoError(t, store.CreateTask(ctx, &task))

	student := models.Student{Name: "Иванов Иван", StudentNumber: "2024-001", CourseID: course.ID}
	require.NoError(t, store.CreateStudent(ctx, &student))

	return &fixture{
		svc:       activity.NewService(store, store, store),
		store:     store,
		taskID:    task.ID,
		studentID: student.ID,
	}
}

func (f *fixture) input(start, end string) activity.ScheduleInput {
	return activity.ScheduleInput{
		TaskID:    f.taskID,
		StudentID: f.studentID,
		Date:      "2024-09-28",
		StartTime: start,
		EndTime:   end,
	}
}

func TestCreateActivity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.svc.Create(ctx, f.input("10:00:00", "10:30:00"))
	require.NoError(t, err)
	assert.NotEmpty(t, view.ID)
	assert.Equal(t, models.StatusScheduled, view.Status)
	assert.Nil(t, view.ActualStart)
	assert.Nil(t, view.ActualEnd)
	assert.Equal(t, "Лабораторная работа", view.TaskName)
	assert.Equal(t, "Иванов Иван", view.StudentName)
}

func TestCreateActivityMissingFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := f.input("10:00:00", "10:30:00")
	in.StudentID = ""
	_, err := f.svc.Create(ctx, in)
	assert.ErrorIs(t, err, activity.ErrMissingField)

	in = f.input("", "")
	_, err = f.svc.Create(ctx, in)
	assert.ErrorIs(t, err, activity.ErrMissingField)
}

func TestCreateActivityReferentialChecks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := f.input("10:00:00", "10:30:00")
	in.TaskID = "несуществующее-задание"
	_, err := f.svc.Create(ctx, in)
	assert.ErrorIs(t, err, activity.ErrTaskNotFound)

	in = f.input("10:00:00", "10:30:00")
	in.StudentID = "несуществующий-студент"
	_, err = f.svc.Create(ctx, in)
	assert.ErrorIs(t, err, activity.ErrStudentNotFound)

	// Если неверны оба идентификатора, первым сообщается отсутствие задания
	in = f.input("10:00:00", "10:30:00")
	in.TaskID = "несуществующее-задание"
	in.StudentID = "несуществующий-студент"
	_, err = f.svc.Create(ctx, in)
	assert.ErrorIs(t, err, activity.ErrTaskNotFound)
}

func TestCreateActivityDurationCap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 6,5 часа — отказ
	_, err := f.svc.Create(ctx, f.input("10:00:00", "16:30:00"))
	assert.ErrorIs(t, err, activity.ErrDurationExceeded)

	// Ровно 6 часов — допустимо
	_, err = f.svc.Create(ctx, f.input("10:00:00", "16:00:00"))
	assert.NoError(t, err)
}

func TestCreateActivityWindowOrdering(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Совпадающие границы отклоняются, а не только конец раньше начала
	_, err := f.svc.Create(ctx, f.input("10:00:00", "10:00:00"))
	assert.ErrorIs(t, err, activity.ErrInvalidWindow)

	_, err = f.svc.Create(ctx, f.input("10:00:00", "09:00:00"))
	assert.ErrorIs(t, err, activity.ErrInvalidWindow)
}

func TestCreateActivityBadFormats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := f.input("10-00-00", "10:30:00")
	_, err := f.svc.Create(ctx, in)
	assert.ErrorIs(t, err, timeutil.ErrInvalidTimeFormat)

	in = f.input("10:00:00", "10:30:00")
	in.Date = "28 сентября"
	_, err = f.svc.Create(ctx, in)
	assert.ErrorIs(t, err, timeutil.ErrInvalidDateFormat)
}

func TestUpdateActivity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Неизвестный идентификатор проверяется раньше остальных валидаторов
	_, err := f.svc.Update(ctx, "нет-такой", activity.ScheduleInput{})
	assert.ErrorIs(t, err, activity.ErrActivityNotFound)

	view, err := f.svc.Create(ctx, f.input("10:00:00", "10:30:00"))
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, view.ID, f.input("11:00:00", "12:00:00"))
	require.NoError(t, err)
	assert.Equal(t, "11:00:00", updated.ScheduledStart.String())
	assert.Equal(t, "12:00:00", updated.ScheduledEnd.String())

	// Перенос проходит тот же конвейер валидации
	_, err = f.svc.Update(ctx, view.ID, f.input("10:00:00", "17:30:00"))
	assert.ErrorIs(t, err, activity.ErrDurationExceeded)
}

func TestUpdateAfterStartAllowed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.svc.Create(ctx, f.input("10:00:00", "10:30:00"))
	require.NoError(t, err)

	_, err = f.svc.Start(ctx, view.ID, "10:05:00")
	require.NoError(t, err)

	// Исходная система позволяла переносить уже начатую активность
	updated, err := f.svc.Update(ctx, view.ID, f.input("11:00:00", "12:00:00"))
	require.NoError(t, err)
	assert.Equal(t, "11:00:00", updated.ScheduledStart.String())
	require.NotNil(t, updated.ActualStart)
	assert.Equal(t, "10:05:00", updated.ActualStart.String())
}

func TestStartTolerance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name        string
		actualStart string
		wantErr     error
	}{
		{"ровно за 15 минут до — отказ", "09:45:00", activity.ErrStartOutOfTolerance},
		{"ровно через 15 минут — отказ", "10:15:00", activity.ErrStartOutOfTolerance},
		{"секунда внутри нижней границы", "09:45:01", nil},
		{"секунда внутри верхней границы", "10:14:59", nil},
		{"точно в запланированное время", "10:00:00", nil},
		{"сильно раньше", "09:00:00", activity.ErrStartOutOfTolerance},
		{"сильно позже", "11:00:00", activity.ErrStartOutOfTolerance},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			view, err := f.svc.Create(ctx, f.input("10:00:00", "10:30:00"))
			require.NoError(t, err)

			res, err := f.svc.Start(ctx, view.ID, tc.actualStart)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, res.ActualStart)
			assert.Equal(t, tc.actualStart, res.ActualStart.String())
			assert.Equal(t, models.StatusStarted, res.Status)
		})
	}
}

func TestStartValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Start(ctx, "нет-такой", "10:00:00")
	assert.ErrorIs(t, err, activity.ErrActivityNotFound)

	view, err := f.svc.Create(ctx, f.input("10:00:00", "10:30:00"))
	require.NoError(t, err)

	_, err = f.svc.Start(ctx, view.ID, "")
	assert.ErrorIs(t, err, activity.ErrMissingField)

	_, err = f.svc.Start(ctx, view.ID, "десять утра")
	assert.ErrorIs(t, err, timeutil.ErrInvalidTimeFormat)
}

func TestRestartOverwrites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.svc.Create(ctx, f.input("10:00:00", "10:30:00"))
	require.NoError(t, err)

	_, err = f.svc.Start(ctx, view.ID, "10:05:00")
	require.NoError(t, err)

	// Повторный старт не блокируется и перезаписывает прежнее значение —
	// поведение исходной системы сохранено намеренно
	res, err := f.svc.Start(ctx, view.ID, "10:10:00")
	require.NoError(t, err)
	assert.Equal(t, "10:10:00", res.ActualStart.String())
}

func TestFinishRequiresStart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.svc.Create(ctx, f.input("10:00:00", "10:30:00"))
	require.NoError(t, err)

	// Любое время окончания отклоняется, пока активность не начата
	_, err = f.svc.Finish(ctx, view.ID, "23:59:59")
	assert.ErrorIs(t, err, activity.ErrNotYetStarted)
}

func TestFinishOrdering(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.svc.Create(ctx, f.input("10:00:00", "10:30:00"))
	require.NoError(t, err)
	_, err = f.svc.Start(ctx, view.ID, "10:05:00")
	require.NoError(t, err)

	// Совпадение с фактическим началом — отказ (требуется строго позже)
	_, err = f.svc.Finish(ctx, view.ID, "10:05:00")
	assert.ErrorIs(t, err, activity.ErrFinishOutOfOrder)

	_, err = f.svc.Finish(ctx, view.ID, "10:01:00")
	assert.ErrorIs(t, err, activity.ErrFinishOutOfOrder)

	res, err := f.svc.Finish(ctx, view.ID, "10:30:00")
	require.NoError(t, err)
	require.NotNil(t, res.ActualEnd)
	assert.Equal(t, "10:30:00", res.ActualEnd.String())
	assert.Equal(t, models.StatusFinished, res.Status)
}

func TestFinishMustBeAfterScheduledStart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.svc.Create(ctx, f.input("10:00:00", "10:30:00"))
	require.NoError(t, err)

	// Начали раньше запланированного (в пределах допуска)
	_, err = f.svc.Start(ctx, view.ID, "09:50:00")
	require.NoError(t, err)

	// Окончание позже фактического начала, но не позже запланированного — отказ
	_, err = f.svc.Finish(ctx, view.ID, "09:55:00")
	assert.ErrorIs(t, err, activity.ErrFinishOutOfOrder)

	_, err = f.svc.Finish(ctx, view.ID, "10:00:00")
	assert.ErrorIs(t, err, activity.ErrFinishOutOfOrder)

	_, err = f.svc.Finish(ctx, view.ID, "10:00:01")
	assert.NoError(t, err)
}

func TestRefinishOverwrites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.svc.Create(ctx, f.input("10:00:00", "10:30:00"))
	require.NoError(t, err)
	_, err = f.svc.Start(ctx, view.ID, "10:00:00")
	require.NoError(t, err)
	_, err = f.svc.Finish(ctx, view.ID, "10:30:00")
	require.NoError(t, err)

	// Повторное завершение не блокируется и перезаписывает прежнее значение —
	// поведение исходной системы сохранено намеренно
	res, err := f.svc.Finish(ctx, view.ID, "11:00:00")
	require.NoError(t, err)
	assert.Equal(t, "11:00:00", res.ActualEnd.String())
}

func TestDeleteActivity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.svc.Create(ctx, f.input("10:00:00", "10:30:00"))
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, view.ID))

	// Повторное удаление — уже не найдено
	err = f.svc.Delete(ctx, view.ID)
	assert.ErrorIs(t, err, activity.ErrActivityNotFound)

	err = f.svc.Delete(ctx, "никогда-не-существовало")
	assert.ErrorIs(t, err, activity.ErrActivityNotFound)
}

func TestGetAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Get(ctx, "нет-такой")
	assert.ErrorIs(t, err, activity.ErrActivityNotFound)

	v1, err := f.svc.Create(ctx, f.input("10:00:00", "10:30:00"))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.input("12:00:00", "13:00:00"))
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, v1.ID)
	require.NoError(t, err)
	assert.Equal(t, "Лабораторная работа", got.TaskName)
	assert.Equal(t, "Иванов Иван", got.StudentName)

	views, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, views, 2)
}

// TestFullLifecycleScenario повторяет сквозной сценарий: отказ по длительности,
// создание, старт, завершение и повторное завершение
func TestFullLifecycleScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.input("10:00:00", "16:30:00"))
	assert.ErrorIs(t, err, activity.ErrDurationExceeded)

	view, err := f.svc.Create(ctx, f.input("10:00:00", "10:30:00"))
	require.NoError(t, err)

	_, err = f.svc.Start(ctx, view.ID, "10:00:00")
	require.NoError(t, err)

	res, err := f.svc.Finish(ctx, view.ID, "10:30:00")
	require.NoError(t, err)
	assert.Equal(t, models.StatusFinished, res.Status)

	res, err = f.svc.Finish(ctx, view.ID, "10:45:00")
	require.NoError(t, err)
	assert.Equal(t, "10:45:00", res.ActualEnd.String())
}
