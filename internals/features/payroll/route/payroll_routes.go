package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	payrollCtl "madrasahku_backend/internals/features/payroll/controller"
)

func PayrollAdminRoutes(r fiber.Router, db *gorm.DB) {
	payroll_ctl := payrollCtl.NewPayrollController(db)

	payroll := r.Group("/payroll")
	payroll.Post("/", payroll_ctl.Process)
	payroll.Get("/", payroll_ctl.List)
}
