package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"madrasahku_backend/internals/constants"
	academicRoute "madrasahku_backend/internals/features/academics/route"
	auditRoute "madrasahku_backend/internals/features/audit/route"
	billingRoute "madrasahku_backend/internals/features/billing/route"
	billingService "madrasahku_backend/internals/features/billing/service"
	donationRoute "madrasahku_backend/internals/features/donations/route"
	financeRoute "madrasahku_backend/internals/features/finance/route"
	notifier "madrasahku_backend/internals/features/notifications/service"
	payrollRoute "madrasahku_backend/internals/features/payroll/route"
	"madrasahku_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	gateway := billingService.NewMidtransGateway()
	notify := notifier.NewFromEnv()

	// ===================== PUBLIC =====================
	// Webhook gateway masuk tanpa JWT; idempotensi dijaga di service.
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")
	billingRoute.BillingPublicRoutes(public, db, gateway, notify)
	donationRoute.DonationPublicRoutes(public, db, gateway, notify)

	public.Get("/uptime", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"uptime": time.Since(startTime).String(),
		})
	})

	// ===================== USER =====================
	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u", auth.AuthMiddleware())
	billingRoute.BillingUserRoutes(user, db, gateway, notify)
	donationRoute.DonationUserRoutes(user, db, gateway, notify)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		auth.AuthMiddleware(),
		auth.OnlyRoles(constants.RoleErrorAdmin("manajemen madrasah"), constants.RoleAdmin),
	)
	academicRoute.AcademicAdminRoutes(admin, db)
	billingRoute.BillingAdminRoutes(admin, db, gateway, notify)
	financeRoute.FinanceAdminRoutes(admin, db)
	payrollRoute.PayrollAdminRoutes(admin, db)
	donationRoute.DonationAdminRoutes(admin, db, gateway, notify)
	auditRoute.AuditAdminRoutes(admin, db)
}
