package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"studtrack/internal/timeutil"
)

// ActivityStatus — явное состояние жизненного цикла активности.
// Состояние выводится только через Start/Finish, поэтому ActualEnd
// не может оказаться заполненным без ActualStart.
type ActivityStatus string

const (
	StatusScheduled ActivityStatus = "scheduled" // Запланирована, не начата
	StatusStarted   ActivityStatus = "started"   // Начата, не завершена
	StatusFinished  ActivityStatus = "finished"  // Завершена
)

// Activity — запланированная активность студента по заданию
type Activity struct {
	ID             string              `json:"id" gorm:"type:uuid;primaryKey"`
	TaskID         string              `json:"task_id" gorm:"type:uuid;index;not null"`    // Ссылка на задание
	StudentID      string              `json:"student_id" gorm:"type:uuid;index;not null"` // Ссылка на студента
	Task           Task                `json:"-" gorm:"foreignKey:TaskID"`
	Student        Student             `json:"-" gorm:"foreignKey:StudentID"`
	ScheduledDate  time.Time           `json:"scheduled_date" gorm:"type:date;not null"` // Дата, на которую запланирована активность
	ScheduledStart timeutil.TimeOfDay  `json:"scheduled_start" gorm:"not null"`          // Запланированное время начала
	ScheduledEnd   timeutil.TimeOfDay  `json:"scheduled_end" gorm:"not null"`            // Запланированное время окончания
	ActualStart    *timeutil.TimeOfDay `json:"actual_start"`                             // Фактическое время начала (nil — не начата)
	ActualEnd      *timeutil.TimeOfDay `json:"actual_end"`                               // Фактическое время окончания (nil — не завершена)
	Status         ActivityStatus      `json:"status" gorm:"not null;default:scheduled"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	return nil
}

// Started сообщает, была ли активность начата
func (a *Activity) Started() bool {
	return a.ActualStart != nil
}

// Start фиксирует фактическое время начала. Повторный вызов перезаписывает
// прежнее значение — так вела себя исходная система.
func (a *Activity) Start(t timeutil.TimeOfDay) {
	a.ActualStart = &t
	if a.Status == StatusScheduled {
		a.Status = StatusStarted
	}
}

// Finish фиксирует фактическое время окончания. Вызывается только после Start,
// за порядком следит валидатор жизненного цикла.
func (a *Activity) Finish(t timeutil.TimeOfDay) {
	a.ActualEnd = &t
	a.Status = StatusFinished
}
