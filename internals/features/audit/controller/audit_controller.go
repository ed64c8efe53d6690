package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	model "madrasahku_backend/internals/features/audit/model"
	helper "madrasahku_backend/internals/helpers"
)

type AuditController struct {
	DB *gorm.DB
}

func NewAuditController(db *gorm.DB) *AuditController {
	return &AuditController{DB: db}
}

// GET /api/a/audit-logs?actor_id=&action=&target_id=
func (h *AuditController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 200)

	q := h.DB.Model(&model.AuditLogModel{})
	if aid := c.Query("actor_id"); aid != "" {
		id, err := uuid.Parse(aid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "actor_id tidak valid")
		}
		q = q.Where("audit_log_actor_id = ?", id)
	}
	if action := c.Query("action"); action != "" {
		q = q.Where("audit_log_action = ?", action)
	}
	if tid := c.Query("target_id"); tid != "" {
		id, err := uuid.Parse(tid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "target_id tidak valid")
		}
		q = q.Where("audit_log_target_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung audit log")
	}

	var logs []model.AuditLogModel
	if err := q.Order("audit_log_created_at DESC").Offset(p.Offset).Limit(p.Limit).Find(&logs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil audit log")
	}
	return helper.JsonList(c, logs, helper.BuildPagination(total, p))
}
