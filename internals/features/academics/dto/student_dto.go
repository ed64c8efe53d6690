package dto

import (
	"github.com/google/uuid"

	model "madrasahku_backend/internals/features/academics/model"
)

type StudentCreateDTO struct {
	StudentName         string     `json:"student_name" validate:"required,min=2,max=120"`
	StudentGuardian     *string    `json:"student_guardian,omitempty"`
	StudentPhone        *string    `json:"student_phone,omitempty"`
	StudentEmail        *string    `json:"student_email,omitempty" validate:"omitempty,email"`
	StudentResidency    string     `json:"student_residency" validate:"omitempty,oneof=local probashi"`
	StudentMode         string     `json:"student_mode" validate:"omitempty,oneof=online offline"`
	StudentFeeTier      string     `json:"student_fee_tier" validate:"omitempty,oneof=general sadka"`
	StudentDepartmentID *uuid.UUID `json:"student_department_id,omitempty"`
	StudentBatchID      *uuid.UUID `json:"student_batch_id,omitempty"` // kalau terisi, langsung dibuat enrollment
	StudentUserID       *uuid.UUID `json:"student_user_id,omitempty"`
}

func (in StudentCreateDTO) ToModel() model.StudentModel {
	m := model.StudentModel{
		StudentName:         in.StudentName,
		StudentGuardian:     in.StudentGuardian,
		StudentPhone:        in.StudentPhone,
		StudentEmail:        in.StudentEmail,
		StudentDepartmentID: in.StudentDepartmentID,
		StudentUserID:       in.StudentUserID,
		StudentResidency:    model.ResidencyLocal,
		StudentMode:         model.ModeOnline,
		StudentFeeTier:      model.FeeTierGeneral,
		StudentIsActive:     true,
	}
	if in.StudentResidency != "" {
		m.StudentResidency = model.StudentResidency(in.StudentResidency)
	}
	if in.StudentMode != "" {
		m.StudentMode = model.StudentMode(in.StudentMode)
	}
	if in.StudentFeeTier != "" {
		m.StudentFeeTier = model.StudentFeeTier(in.StudentFeeTier)
	}
	return m
}

// Update (partial)
type StudentUpdateDTO struct {
	StudentName         *string    `json:"student_name,omitempty" validate:"omitempty,min=2,max=120"`
	StudentGuardian     *string    `json:"student_guardian,omitempty"`
	StudentPhone        *string    `json:"student_phone,omitempty"`
	StudentEmail        *string    `json:"student_email,omitempty" validate:"omitempty,email"`
	StudentResidency    *string    `json:"student_residency,omitempty" validate:"omitempty,oneof=local probashi"`
	StudentMode         *string    `json:"student_mode,omitempty" validate:"omitempty,oneof=online offline"`
	StudentFeeTier      *string    `json:"student_fee_tier,omitempty" validate:"omitempty,oneof=general sadka"`
	StudentDepartmentID *uuid.UUID `json:"student_department_id,omitempty"`
	StudentIsActive     *bool      `json:"student_is_active,omitempty"`
}

// Transfer memindahkan santri ke batch lain; invoice lama tidak ikut berubah.
type StudentTransferDTO struct {
	TargetBatchID uuid.UUID `json:"target_batch_id" validate:"required"`
}
