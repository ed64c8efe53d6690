package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BatchModel struct {
	BatchID uuid.UUID `gorm:"column:batch_id;type:uuid;primaryKey" json:"batch_id"`

	// FK → departments
	BatchDepartmentID uuid.UUID `gorm:"column:batch_department_id;type:uuid;not null;index:idx_batches_department" json:"batch_department_id"`

	BatchName string `gorm:"column:batch_name;type:varchar(120);not null" json:"batch_name"`
	BatchYear *int16 `gorm:"column:batch_year;type:smallint" json:"batch_year,omitempty"`

	BatchFees FeeFields `gorm:"embedded;embeddedPrefix:batch_" json:"batch_fees"`

	BatchIsActive bool `gorm:"column:batch_is_active;not null;default:true" json:"batch_is_active"`

	BatchCreatedAt time.Time      `gorm:"column:batch_created_at;autoCreateTime" json:"batch_created_at"`
	BatchUpdatedAt *time.Time     `gorm:"column:batch_updated_at;autoUpdateTime" json:"batch_updated_at,omitempty"`
	BatchDeletedAt gorm.DeletedAt `gorm:"column:batch_deleted_at;index" json:"-"`
}

func (BatchModel) TableName() string { return "batches" }

func (m *BatchModel) BeforeCreate(tx *gorm.DB) error {
	if m.BatchID == uuid.Nil {
		m.BatchID = uuid.New()
	}
	return nil
}
