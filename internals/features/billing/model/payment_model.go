package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */

const (
	PaymentStatusInitiated = "initiated"
	PaymentStatusPaid      = "paid"
	PaymentStatusExpired   = "expired"
	PaymentStatusCanceled  = "canceled"
	PaymentStatusFailed    = "failed"
)

const (
	PaymentMethodGateway = "gateway"
	PaymentMethodCash    = "cash"
)

const PaymentProviderMidtrans = "midtrans"

/* ===================== Model ===================== */

// Payment adalah satu transaksi gateway yang bisa mencakup beberapa invoice
// sekaligus (digabung jadi satu checkout). Invoice mana saja yang dicakup
// disimpan sebagai correlation state di PaymentInvoiceIDs supaya webhook bisa
// menyelesaikan masing-masing.
type PaymentModel struct {
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;primaryKey" json:"payment_id"`

	PaymentStudentID uuid.UUID `gorm:"column:payment_student_id;type:uuid;not null;index:idx_payments_student" json:"payment_student_id"`

	// order_id di Midtrans
	PaymentOrderID string `gorm:"column:payment_order_id;type:varchar(64);not null;uniqueIndex:uq_payments_order" json:"payment_order_id"`

	PaymentAmountIDR int    `gorm:"column:payment_amount_idr;not null;check:payment_amount_idr >= 0" json:"payment_amount_idr"`
	PaymentStatus    string `gorm:"column:payment_status;type:varchar(20);not null;default:'initiated';index:ix_payments_status" json:"payment_status"`
	PaymentMethod    string `gorm:"column:payment_method;type:varchar(20);not null;default:'gateway'" json:"payment_method"`
	PaymentProvider  string `gorm:"column:payment_provider;type:varchar(20);not null;default:'midtrans'" json:"payment_provider"`

	PaymentCheckoutURL *string `gorm:"column:payment_checkout_url" json:"payment_checkout_url,omitempty"`

	// invoice id yang dicakup, dipisah koma (opaque untuk gateway)
	PaymentInvoiceIDs string `gorm:"column:payment_invoice_ids;type:text;not null" json:"payment_invoice_ids"`

	PaymentRequestedAt time.Time  `gorm:"column:payment_requested_at;not null;autoCreateTime" json:"payment_requested_at"`
	PaymentPaidAt      *time.Time `gorm:"column:payment_paid_at" json:"payment_paid_at,omitempty"`

	PaymentCreatedAt time.Time  `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt *time.Time `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at,omitempty"`
}

func (PaymentModel) TableName() string { return "payments" }

func (m *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if m.PaymentID == uuid.Nil {
		m.PaymentID = uuid.New()
	}
	return nil
}

// InvoiceIDList memecah correlation state kembali jadi daftar uuid.
func (m *PaymentModel) InvoiceIDList() []uuid.UUID {
	var out []uuid.UUID
	for _, part := range strings.Split(m.PaymentInvoiceIDs, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if id, err := uuid.Parse(part); err == nil {
			out = append(out, id)
		}
	}
	return out
}

// JoinInvoiceIDs menyusun correlation state dari daftar invoice.
func JoinInvoiceIDs(ids []uuid.UUID) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, id.String())
	}
	return strings.Join(parts, ",")
}
