package service

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	model "madrasahku_backend/internals/features/audit/model"
)

// Record menulis satu entri audit. Fire-and-forget: kegagalan hanya dicatat ke
// log, tidak pernah menggagalkan aksi yang diaudit.
func Record(db *gorm.DB, actorID *uuid.UUID, action, targetType string, targetID *uuid.UUID, details interface{}) {
	var payload datatypes.JSON
	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			log.Printf("[ERROR] Audit: gagal marshal details untuk %s: %v", action, err)
		} else {
			payload = datatypes.JSON(raw)
		}
	}

	entry := model.AuditLogModel{
		AuditLogActorID:    actorID,
		AuditLogAction:     action,
		AuditLogTargetType: targetType,
		AuditLogTargetID:   targetID,
		AuditLogDetails:    payload,
	}
	if err := db.Create(&entry).Error; err != nil {
		log.Printf("[ERROR] Audit: gagal simpan entri %s: %v", action, err)
	}
}
