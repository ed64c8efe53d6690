package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- ENUM (string) -----------------------------------------------------------
// Residency menentukan kolom tarif mana yang berlaku (lokal vs probashi).

type StudentResidency string

const (
	ResidencyLocal    StudentResidency = "local"
	ResidencyProbashi StudentResidency = "probashi"
)

type StudentMode string

const (
	ModeOnline  StudentMode = "online"
	ModeOffline StudentMode = "offline"
)

type StudentFeeTier string

const (
	FeeTierGeneral StudentFeeTier = "general"
	FeeTierSadka   StudentFeeTier = "sadka"
)

type StudentModel struct {
	StudentID uuid.UUID `gorm:"column:student_id;type:uuid;primaryKey" json:"student_id"`

	// FK → users (akun login; nullable untuk santri tanpa akun)
	StudentUserID *uuid.UUID `gorm:"column:student_user_id;type:uuid;index" json:"student_user_id,omitempty"`

	StudentName     string  `gorm:"column:student_name;type:varchar(120);not null" json:"student_name"`
	StudentGuardian *string `gorm:"column:student_guardian;type:varchar(120)" json:"student_guardian,omitempty"`
	StudentPhone    *string `gorm:"column:student_phone;type:varchar(30)" json:"student_phone,omitempty"`
	StudentEmail    *string `gorm:"column:student_email;type:varchar(120)" json:"student_email,omitempty"`

	StudentResidency StudentResidency `gorm:"column:student_residency;type:varchar(20);not null;default:'local'" json:"student_residency"`
	StudentMode      StudentMode      `gorm:"column:student_mode;type:varchar(20);not null;default:'online'" json:"student_mode"`
	StudentFeeTier   StudentFeeTier   `gorm:"column:student_fee_tier;type:varchar(20);not null;default:'general'" json:"student_fee_tier"`

	// FK → departments
	StudentDepartmentID *uuid.UUID `gorm:"column:student_department_id;type:uuid;index" json:"student_department_id,omitempty"`

	StudentIsActive bool `gorm:"column:student_is_active;not null;default:true" json:"student_is_active"`

	StudentCreatedAt time.Time      `gorm:"column:student_created_at;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt *time.Time     `gorm:"column:student_updated_at;autoUpdateTime" json:"student_updated_at,omitempty"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"-"`
}

func (StudentModel) TableName() string { return "students" }

func (m *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentID == uuid.Nil {
		m.StudentID = uuid.New()
	}
	return nil
}

// Enrollment mencatat batch aktif seorang santri. Transfer batch membuat baris
// baru dan menonaktifkan baris lama; invoice yang sudah terbit tidak berubah.
type EnrollmentModel struct {
	EnrollmentID uuid.UUID `gorm:"column:enrollment_id;type:uuid;primaryKey" json:"enrollment_id"`

	EnrollmentStudentID uuid.UUID `gorm:"column:enrollment_student_id;type:uuid;not null;index:idx_enrollments_student" json:"enrollment_student_id"`
	EnrollmentBatchID   uuid.UUID `gorm:"column:enrollment_batch_id;type:uuid;not null;index:idx_enrollments_batch" json:"enrollment_batch_id"`

	EnrollmentIsActive bool       `gorm:"column:enrollment_is_active;not null;default:true" json:"enrollment_is_active"`
	EnrollmentJoinedAt time.Time  `gorm:"column:enrollment_joined_at;not null;autoCreateTime" json:"enrollment_joined_at"`
	EnrollmentLeftAt   *time.Time `gorm:"column:enrollment_left_at" json:"enrollment_left_at,omitempty"`

	EnrollmentCreatedAt time.Time      `gorm:"column:enrollment_created_at;autoCreateTime" json:"enrollment_created_at"`
	EnrollmentDeletedAt gorm.DeletedAt `gorm:"column:enrollment_deleted_at;index" json:"-"`
}

func (EnrollmentModel) TableName() string { return "enrollments" }

func (m *EnrollmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.EnrollmentID == uuid.Nil {
		m.EnrollmentID = uuid.New()
	}
	return nil
}
