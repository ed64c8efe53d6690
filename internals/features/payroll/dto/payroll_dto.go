package dto

import (
	"github.com/google/uuid"
)

type TeacherPaymentCreateDTO struct {
	TeacherID    uuid.UUID `json:"teacher_id" validate:"required"`
	Month        int       `json:"month" validate:"required,min=1,max=12"`
	Year         int       `json:"year" validate:"required,min=2000"`
	BasicIDR     int       `json:"basic_idr" validate:"min=0"`
	BonusIDR     int       `json:"bonus_idr" validate:"min=0"`
	DeductionIDR int       `json:"deduction_idr" validate:"min=0"`
	Method       *string   `json:"method,omitempty" validate:"omitempty,oneof=cash bank_transfer"`
	Note         *string   `json:"note,omitempty"`
}
