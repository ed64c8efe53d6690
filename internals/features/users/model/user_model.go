package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`

	UserName  string  `gorm:"column:user_name;type:varchar(80);not null" json:"user_name"`
	UserEmail *string `gorm:"column:user_email;type:varchar(120);uniqueIndex" json:"user_email,omitempty"`
	UserPhone *string `gorm:"column:user_phone;type:varchar(30)" json:"user_phone,omitempty"`

	// admin | teacher | student (lihat constants.AllRoles)
	UserRole string `gorm:"column:user_role;type:varchar(20);not null;default:'student'" json:"user_role"`

	UserIsActive bool `gorm:"column:user_is_active;not null;default:true" json:"user_is_active"`

	UserCreatedAt time.Time      `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt *time.Time     `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at,omitempty"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index" json:"-"`
}

func (UserModel) TableName() string { return "users" }

func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.UserID == uuid.Nil {
		m.UserID = uuid.New()
	}
	return nil
}
