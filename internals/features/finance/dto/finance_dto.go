package dto

import (
	"github.com/google/uuid"
)

type ExpenseCreateDTO struct {
	Fund        string     `json:"fund" validate:"required,oneof=teacher_salary utility maintenance other_expense"`
	AmountIDR   int        `json:"amount_idr" validate:"required,min=1"`
	Date        *string    `json:"date,omitempty"` // RFC3339 / YYYY-MM-DD; kosong = hari ini
	Note        *string    `json:"note,omitempty"`
	ReferenceID *uuid.UUID `json:"reference_id,omitempty"`
}
