package dto

import (
	"github.com/google/uuid"
)

// Generate (find-or-create) satu invoice. Month 0 = invoice admission.
type InvoiceGenerateDTO struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Month     int       `json:"month" validate:"min=0,max=12"`
	Year      int       `json:"year" validate:"min=2000,max=2100"`
}

// Checkout menggabung beberapa invoice unpaid jadi satu transaksi gateway.
type CheckoutDTO struct {
	InvoiceIDs []uuid.UUID `json:"invoice_ids" validate:"required,min=1,dive,required"`
}

// Pelunasan manual oleh admin (bayar tunai di kantor).
type ManualPayDTO struct {
	Note *string `json:"note,omitempty"`
}
