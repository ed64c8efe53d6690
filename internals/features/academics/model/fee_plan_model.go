package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeePlan adalah tarif custom per santri; kalau aktif, rantai fallback
// batch→department→course dilewati sama sekali.
type FeePlanModel struct {
	FeePlanID uuid.UUID `gorm:"column:fee_plan_id;type:uuid;primaryKey" json:"fee_plan_id"`

	FeePlanName       string  `gorm:"column:fee_plan_name;type:varchar(120);not null" json:"fee_plan_name"`
	FeePlanMonthlyFee int     `gorm:"column:fee_plan_monthly_fee;not null;check:fee_plan_monthly_fee >= 0" json:"fee_plan_monthly_fee"`
	FeePlanNote       *string `gorm:"column:fee_plan_note;type:text" json:"fee_plan_note,omitempty"`

	FeePlanCreatedAt time.Time      `gorm:"column:fee_plan_created_at;autoCreateTime" json:"fee_plan_created_at"`
	FeePlanUpdatedAt *time.Time     `gorm:"column:fee_plan_updated_at;autoUpdateTime" json:"fee_plan_updated_at,omitempty"`
	FeePlanDeletedAt gorm.DeletedAt `gorm:"column:fee_plan_deleted_at;index" json:"-"`
}

func (FeePlanModel) TableName() string { return "fee_plans" }

func (m *FeePlanModel) BeforeCreate(tx *gorm.DB) error {
	if m.FeePlanID == uuid.Nil {
		m.FeePlanID = uuid.New()
	}
	return nil
}

// FeePlanHistory adalah log assignment plan ke santri; entri terbaru yang
// menang. PlanID null berarti plan dicabut (kembali ke fallback chain).
type FeePlanHistoryModel struct {
	FeePlanHistoryID uuid.UUID `gorm:"column:fee_plan_history_id;type:uuid;primaryKey" json:"fee_plan_history_id"`

	FeePlanHistoryStudentID uuid.UUID  `gorm:"column:fee_plan_history_student_id;type:uuid;not null;index:idx_fee_plan_histories_student" json:"fee_plan_history_student_id"`
	FeePlanHistoryPlanID    *uuid.UUID `gorm:"column:fee_plan_history_plan_id;type:uuid" json:"fee_plan_history_plan_id,omitempty"`

	// FK → users (admin yang meng-assign)
	FeePlanHistoryAssignedBy *uuid.UUID `gorm:"column:fee_plan_history_assigned_by;type:uuid" json:"fee_plan_history_assigned_by,omitempty"`
	FeePlanHistoryNote       *string    `gorm:"column:fee_plan_history_note;type:text" json:"fee_plan_history_note,omitempty"`

	FeePlanHistoryCreatedAt time.Time `gorm:"column:fee_plan_history_created_at;autoCreateTime" json:"fee_plan_history_created_at"`
}

func (FeePlanHistoryModel) TableName() string { return "fee_plan_histories" }

func (m *FeePlanHistoryModel) BeforeCreate(tx *gorm.DB) error {
	if m.FeePlanHistoryID == uuid.Nil {
		m.FeePlanHistoryID = uuid.New()
	}
	return nil
}
