package dto

import (
	"github.com/google/uuid"

	model "madrasahku_backend/internals/features/academics/model"
)

////////////////////////////////////////////////////////////////////////////////
// COURSE / DEPARTMENT / BATCH — DTO
// Kolom tarif nullable sengaja diterima apa adanya: kosong = mewarisi level di
// atasnya (lihat fee resolver).
////////////////////////////////////////////////////////////////////////////////

type CourseCreateDTO struct {
	CourseName string          `json:"course_name" validate:"required,min=2,max=120"`
	CourseNote *string         `json:"course_note,omitempty"`
	CourseFees model.FeeFields `json:"course_fees"`
}

type CourseUpdateDTO struct {
	CourseName *string          `json:"course_name,omitempty" validate:"omitempty,min=2,max=120"`
	CourseNote *string          `json:"course_note,omitempty"`
	CourseFees *model.FeeFields `json:"course_fees,omitempty"`
	IsActive   *bool            `json:"course_is_active,omitempty"`
}

type DepartmentCreateDTO struct {
	DepartmentCourseID uuid.UUID       `json:"department_course_id" validate:"required"`
	DepartmentName     string          `json:"department_name" validate:"required,min=2,max=120"`
	DepartmentNote     *string         `json:"department_note,omitempty"`
	DepartmentFees     model.FeeFields `json:"department_fees"`
}

type DepartmentUpdateDTO struct {
	DepartmentName *string          `json:"department_name,omitempty" validate:"omitempty,min=2,max=120"`
	DepartmentNote *string          `json:"department_note,omitempty"`
	DepartmentFees *model.FeeFields `json:"department_fees,omitempty"`
	IsActive       *bool            `json:"department_is_active,omitempty"`
}

type BatchCreateDTO struct {
	BatchDepartmentID uuid.UUID       `json:"batch_department_id" validate:"required"`
	BatchName         string          `json:"batch_name" validate:"required,min=2,max=120"`
	BatchYear         *int16          `json:"batch_year,omitempty"`
	BatchFees         model.FeeFields `json:"batch_fees"`
}

type BatchUpdateDTO struct {
	BatchName *string          `json:"batch_name,omitempty" validate:"omitempty,min=2,max=120"`
	BatchYear *int16           `json:"batch_year,omitempty"`
	BatchFees *model.FeeFields `json:"batch_fees,omitempty"`
	IsActive  *bool            `json:"batch_is_active,omitempty"`
}
