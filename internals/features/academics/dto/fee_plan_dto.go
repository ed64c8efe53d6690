package dto

import (
	"github.com/google/uuid"
)

type FeePlanCreateDTO struct {
	FeePlanName       string  `json:"fee_plan_name" validate:"required,min=2,max=120"`
	FeePlanMonthlyFee int     `json:"fee_plan_monthly_fee" validate:"min=0"`
	FeePlanNote       *string `json:"fee_plan_note,omitempty"`
}

// Assign plan ke santri. PlanID nil = cabut plan (balik ke fallback chain).
type FeePlanAssignDTO struct {
	StudentID uuid.UUID  `json:"student_id" validate:"required"`
	PlanID    *uuid.UUID `json:"plan_id,omitempty"`
	Note      *string    `json:"note,omitempty"`
}
