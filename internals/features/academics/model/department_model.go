package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DepartmentModel struct {
	DepartmentID uuid.UUID `gorm:"column:department_id;type:uuid;primaryKey" json:"department_id"`

	// FK → courses
	DepartmentCourseID uuid.UUID `gorm:"column:department_course_id;type:uuid;not null;index:idx_departments_course" json:"department_course_id"`

	DepartmentName string  `gorm:"column:department_name;type:varchar(120);not null" json:"department_name"`
	DepartmentNote *string `gorm:"column:department_note;type:text" json:"department_note,omitempty"`

	DepartmentFees FeeFields `gorm:"embedded;embeddedPrefix:department_" json:"department_fees"`

	DepartmentIsActive bool `gorm:"column:department_is_active;not null;default:true" json:"department_is_active"`

	DepartmentCreatedAt time.Time      `gorm:"column:department_created_at;autoCreateTime" json:"department_created_at"`
	DepartmentUpdatedAt *time.Time     `gorm:"column:department_updated_at;autoUpdateTime" json:"department_updated_at,omitempty"`
	DepartmentDeletedAt gorm.DeletedAt `gorm:"column:department_deleted_at;index" json:"-"`
}

func (DepartmentModel) TableName() string { return "departments" }

func (m *DepartmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.DepartmentID == uuid.Nil {
		m.DepartmentID = uuid.New()
	}
	return nil
}
