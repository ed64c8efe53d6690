package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditCtl "madrasahku_backend/internals/features/audit/controller"
)

func AuditAdminRoutes(r fiber.Router, db *gorm.DB) {
	audit_ctl := auditCtl.NewAuditController(db)

	r.Get("/audit-logs", audit_ctl.List)
}
