package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceStatus string

const (
	InvoiceStatusUnpaid InvoiceStatus = "unpaid"
	InvoiceStatusPaid   InvoiceStatus = "paid"
)

// Month 0 dipakai untuk invoice admission (sekali saat pendaftaran).
const AdmissionMonth int16 = 0

type MonthlyInvoiceModel struct {
	MonthlyInvoiceID uuid.UUID `gorm:"column:monthly_invoice_id;type:uuid;primaryKey" json:"monthly_invoice_id"`

	// Kunci unik (student, month, year) — dua findOrCreate paralel resolve ke
	// baris yang sama lewat unique index ini, bukan locking di aplikasi.
	MonthlyInvoiceStudentID uuid.UUID `gorm:"column:monthly_invoice_student_id;type:uuid;not null;uniqueIndex:uq_invoices_student_period,priority:1" json:"monthly_invoice_student_id"`
	MonthlyInvoiceMonth     int16     `gorm:"column:monthly_invoice_month;type:smallint;not null;uniqueIndex:uq_invoices_student_period,priority:2" json:"monthly_invoice_month"`
	MonthlyInvoiceYear      int16     `gorm:"column:monthly_invoice_year;type:smallint;not null;uniqueIndex:uq_invoices_student_period,priority:3" json:"monthly_invoice_year"`

	// Snapshot tarif saat invoice dibuat — tidak ikut berubah kalau struktur
	// tarif di batch/department/course berubah belakangan.
	MonthlyInvoiceAmountIDR int `gorm:"column:monthly_invoice_amount_idr;not null;check:monthly_invoice_amount_idr >= 0" json:"monthly_invoice_amount_idr"`

	MonthlyInvoiceStatus InvoiceStatus `gorm:"column:monthly_invoice_status;type:varchar(20);not null;default:'unpaid';index:ix_invoices_status" json:"monthly_invoice_status"`

	MonthlyInvoiceDueDate  time.Time  `gorm:"column:monthly_invoice_due_date;type:date;not null" json:"monthly_invoice_due_date"`
	MonthlyInvoiceIssuedAt time.Time  `gorm:"column:monthly_invoice_issued_at;not null" json:"monthly_invoice_issued_at"`
	MonthlyInvoicePaidAt   *time.Time `gorm:"column:monthly_invoice_paid_at" json:"monthly_invoice_paid_at,omitempty"`

	// FK → fee_plans, terisi kalau amount berasal dari custom plan
	MonthlyInvoicePlanID *uuid.UUID `gorm:"column:monthly_invoice_plan_id;type:uuid" json:"monthly_invoice_plan_id,omitempty"`

	MonthlyInvoiceCreatedAt time.Time  `gorm:"column:monthly_invoice_created_at;autoCreateTime" json:"monthly_invoice_created_at"`
	MonthlyInvoiceUpdatedAt *time.Time `gorm:"column:monthly_invoice_updated_at;autoUpdateTime" json:"monthly_invoice_updated_at,omitempty"`
}

func (MonthlyInvoiceModel) TableName() string { return "monthly_invoices" }

func (m *MonthlyInvoiceModel) BeforeCreate(tx *gorm.DB) error {
	if m.MonthlyInvoiceID == uuid.Nil {
		m.MonthlyInvoiceID = uuid.New()
	}
	return nil
}

func (m *MonthlyInvoiceModel) IsAdmission() bool {
	return m.MonthlyInvoiceMonth == AdmissionMonth
}
