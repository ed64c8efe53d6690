package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	financeCtl "madrasahku_backend/internals/features/finance/controller"
)

func FinanceAdminRoutes(r fiber.Router, db *gorm.DB) {
	finance_ctl := financeCtl.NewFinanceController(db)

	finance := r.Group("/finance")
	finance.Get("/summary", finance_ctl.Summary)
	finance.Get("/profit-loss", finance_ctl.ProfitLoss)
	finance.Post("/expenses", finance_ctl.CreateExpense)
	finance.Get("/ledger", finance_ctl.ListLedger)
}
