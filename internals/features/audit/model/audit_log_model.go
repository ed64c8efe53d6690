package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AuditLogModel struct {
	AuditLogID uuid.UUID `gorm:"column:audit_log_id;type:uuid;primaryKey" json:"audit_log_id"`

	// FK → users; nil untuk aksi dari webhook/scheduler
	AuditLogActorID *uuid.UUID `gorm:"column:audit_log_actor_id;type:uuid;index" json:"audit_log_actor_id,omitempty"`

	AuditLogAction     string     `gorm:"column:audit_log_action;type:varchar(60);not null;index:ix_audit_logs_action" json:"audit_log_action"`
	AuditLogTargetType string     `gorm:"column:audit_log_target_type;type:varchar(40);not null" json:"audit_log_target_type"`
	AuditLogTargetID   *uuid.UUID `gorm:"column:audit_log_target_id;type:uuid;index" json:"audit_log_target_id,omitempty"`

	AuditLogDetails datatypes.JSON `gorm:"column:audit_log_details;type:jsonb" json:"audit_log_details,omitempty"`

	AuditLogCreatedAt time.Time `gorm:"column:audit_log_created_at;autoCreateTime" json:"audit_log_created_at"`
}

func (AuditLogModel) TableName() string { return "audit_logs" }

func (m *AuditLogModel) BeforeCreate(tx *gorm.DB) error {
	if m.AuditLogID == uuid.Nil {
		m.AuditLogID = uuid.New()
	}
	return nil
}
