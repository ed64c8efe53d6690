package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Course adalah level teratas hierarki akademik (course → department → batch).
type CourseModel struct {
	CourseID uuid.UUID `gorm:"column:course_id;type:uuid;primaryKey" json:"course_id"`

	CourseName string  `gorm:"column:course_name;type:varchar(120);not null" json:"course_name"`
	CourseNote *string `gorm:"column:course_note;type:text" json:"course_note,omitempty"`

	CourseFees FeeFields `gorm:"embedded;embeddedPrefix:course_" json:"course_fees"`

	CourseIsActive bool `gorm:"column:course_is_active;not null;default:true" json:"course_is_active"`

	CourseCreatedAt time.Time      `gorm:"column:course_created_at;autoCreateTime" json:"course_created_at"`
	CourseUpdatedAt *time.Time     `gorm:"column:course_updated_at;autoUpdateTime" json:"course_updated_at,omitempty"`
	CourseDeletedAt gorm.DeletedAt `gorm:"column:course_deleted_at;index" json:"-"`
}

func (CourseModel) TableName() string { return "courses" }

func (m *CourseModel) BeforeCreate(tx *gorm.DB) error {
	if m.CourseID == uuid.Nil {
		m.CourseID = uuid.New()
	}
	return nil
}
