package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TeacherPaymentMethodCash     = "cash"
	TeacherPaymentMethodTransfer = "bank_transfer"
)

type TeacherPaymentModel struct {
	TeacherPaymentID uuid.UUID `gorm:"column:teacher_payment_id;type:uuid;primaryKey" json:"teacher_payment_id"`

	// Kunci unik (teacher, month, year): maksimal satu gaji per guru per bulan.
	TeacherPaymentTeacherID uuid.UUID `gorm:"column:teacher_payment_teacher_id;type:uuid;not null;uniqueIndex:uq_teacher_payments_period,priority:1" json:"teacher_payment_teacher_id"`
	TeacherPaymentMonth     int16     `gorm:"column:teacher_payment_month;type:smallint;not null;uniqueIndex:uq_teacher_payments_period,priority:2" json:"teacher_payment_month"`
	TeacherPaymentYear      int16     `gorm:"column:teacher_payment_year;type:smallint;not null;uniqueIndex:uq_teacher_payments_period,priority:3" json:"teacher_payment_year"`

	TeacherPaymentBasicSalaryIDR int `gorm:"column:teacher_payment_basic_salary_idr;not null;check:teacher_payment_basic_salary_idr >= 0" json:"teacher_payment_basic_salary_idr"`
	TeacherPaymentBonusIDR       int `gorm:"column:teacher_payment_bonus_idr;not null;default:0;check:teacher_payment_bonus_idr >= 0" json:"teacher_payment_bonus_idr"`
	TeacherPaymentDeductionIDR   int `gorm:"column:teacher_payment_deduction_idr;not null;default:0;check:teacher_payment_deduction_idr >= 0" json:"teacher_payment_deduction_idr"`

	// basic + bonus − deduction; tidak di-clamp ke 0
	TeacherPaymentTotalIDR int `gorm:"column:teacher_payment_total_idr;not null" json:"teacher_payment_total_idr"`

	TeacherPaymentMethod string  `gorm:"column:teacher_payment_method;type:varchar(20);not null;default:'cash'" json:"teacher_payment_method"`
	TeacherPaymentNote   *string `gorm:"column:teacher_payment_note;type:text" json:"teacher_payment_note,omitempty"`

	TeacherPaymentPaidAt    time.Time `gorm:"column:teacher_payment_paid_at;not null" json:"teacher_payment_paid_at"`
	TeacherPaymentCreatedAt time.Time `gorm:"column:teacher_payment_created_at;autoCreateTime" json:"teacher_payment_created_at"`
}

func (TeacherPaymentModel) TableName() string { return "teacher_payments" }

func (m *TeacherPaymentModel) BeforeCreate(tx *gorm.DB) error {
	if m.TeacherPaymentID == uuid.Nil {
		m.TeacherPaymentID = uuid.New()
	}
	return nil
}
