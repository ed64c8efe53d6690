package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	billingCtl "madrasahku_backend/internals/features/billing/controller"
	billingService "madrasahku_backend/internals/features/billing/service"
	notifier "madrasahku_backend/internals/features/notifications/service"
	"madrasahku_backend/internals/middlewares"
)

// Admin: kelola invoice, pelunasan manual, daftar payment.
func BillingAdminRoutes(r fiber.Router, db *gorm.DB, gw billingService.Gateway, n notifier.Notifier) {
	invoice_ctl := billingCtl.NewInvoiceController(db, n)
	payment_ctl := billingCtl.NewPaymentController(db, gw, n)

	invoices := r.Group("/invoices")
	invoices.Get("/", invoice_ctl.List)
	invoices.Get("/:id", invoice_ctl.GetByID)
	invoices.Post("/generate", invoice_ctl.Generate)
	invoices.Post("/:id/pay", invoice_ctl.MarkPaid)

	payments := r.Group("/payments")
	payments.Get("/", payment_ctl.List)
}

// User: lihat invoice sendiri + checkout gateway.
func BillingUserRoutes(r fiber.Router, db *gorm.DB, gw billingService.Gateway, n notifier.Notifier) {
	invoice_ctl := billingCtl.NewInvoiceController(db, n)
	payment_ctl := billingCtl.NewPaymentController(db, gw, n)

	r.Get("/invoices", invoice_ctl.MyInvoices)
	r.Post("/payments/checkout", middlewares.CheckoutRateLimiter(), payment_ctl.Checkout)
}

// Public: endpoint notifikasi Midtrans (tanpa JWT).
func BillingPublicRoutes(r fiber.Router, db *gorm.DB, gw billingService.Gateway, n notifier.Notifier) {
	payment_ctl := billingCtl.NewPaymentController(db, gw, n)

	r.Post("/payments/webhook", payment_ctl.Webhook)
}
