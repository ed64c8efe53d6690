package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	billingService "madrasahku_backend/internals/features/billing/service"
	donationCtl "madrasahku_backend/internals/features/donations/controller"
	notifier "madrasahku_backend/internals/features/notifications/service"
	"madrasahku_backend/internals/middlewares"
)

// Admin: kelola donatur, donasi tunai, daftar donasi.
func DonationAdminRoutes(r fiber.Router, db *gorm.DB, gw billingService.Gateway, n notifier.Notifier) {
	donation_ctl := donationCtl.NewDonationController(db, gw, n)

	donors := r.Group("/donors")
	donors.Post("/", donation_ctl.CreateDonor)
	donors.Get("/", donation_ctl.ListDonors)

	donations := r.Group("/donations")
	donations.Get("/", donation_ctl.List)
	donations.Post("/cash", donation_ctl.Cash)
}

// User: checkout donasi via gateway.
func DonationUserRoutes(r fiber.Router, db *gorm.DB, gw billingService.Gateway, n notifier.Notifier) {
	donation_ctl := donationCtl.NewDonationController(db, gw, n)

	r.Post("/donations/checkout", middlewares.CheckoutRateLimiter(), donation_ctl.Checkout)
}

// Public: webhook Midtrans untuk donasi.
func DonationPublicRoutes(r fiber.Router, db *gorm.DB, gw billingService.Gateway, n notifier.Notifier) {
	donation_ctl := donationCtl.NewDonationController(db, gw, n)

	r.Post("/donations/webhook", donation_ctl.Webhook)
}
