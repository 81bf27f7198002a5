package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Student — студент, зачисленный на курс
type Student struct {
	ID            string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name          string    `json:"name" gorm:"not null"`                        // ФИО студента
	StudentNumber string    `json:"student_number" gorm:"uniqueIndex;not null"`  // Номер зачётной книжки
	CourseID      string    `json:"course_id" gorm:"type:uuid;index;not null"`   // Ссылка на курс
	Course        Course    `json:"-" gorm:"foreignKey:CourseID"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
