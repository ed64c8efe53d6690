package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditService "madrasahku_backend/internals/features/audit/service"
	dto "madrasahku_backend/internals/features/finance/dto"
	model "madrasahku_backend/internals/features/finance/model"
	service "madrasahku_backend/internals/features/finance/service"
	helper "madrasahku_backend/internals/helpers"
)

var validate = validator.New()

type FinanceController struct {
	DB *gorm.DB
}

func NewFinanceController(db *gorm.DB) *FinanceController {
	return &FinanceController{DB: db}
}

/* ======================= MONTHLY SUMMARY ======================= */
// GET /api/a/finance/summary?month=&year=
func (h *FinanceController) Summary(c *fiber.Ctx) error {
	now := time.Now()
	month := c.QueryInt("month", int(now.Month()))
	year := c.QueryInt("year", now.Year())
	if month < 1 || month > 12 {
		return helper.JsonError(c, fiber.StatusBadRequest, "month harus 1-12")
	}

	summary, err := service.SummarizeMonth(h.DB, month, year)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyusun ringkasan bulanan")
	}
	return helper.Success(c, "OK", summary)
}

/* ======================= PROFIT / LOSS ======================= */
// GET /api/a/finance/profit-loss?start_date=YYYY-MM-DD&end_date=YYYY-MM-DD
func (h *FinanceController) ProfitLoss(c *fiber.Ctx) error {
	start, err := time.Parse("2006-01-02", c.Query("start_date"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "start_date wajib, format YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", c.Query("end_date"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "end_date wajib, format YYYY-MM-DD")
	}
	if end.Before(start) {
		return helper.JsonError(c, fiber.StatusBadRequest, "end_date harus >= start_date")
	}

	stmt, err := service.ProfitLoss(h.DB, start, end)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyusun laporan laba rugi")
	}
	return helper.Success(c, "OK", stmt)
}

/* ======================= CREATE EXPENSE ======================= */
// POST /api/a/finance/expenses
func (h *FinanceController) CreateExpense(c *fiber.Ctx) error {
	var req dto.ExpenseCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	date := time.Now()
	if req.Date != nil && *req.Date != "" {
		parsed, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "date harus format YYYY-MM-DD")
		}
		date = parsed
	}

	entry, err := service.RecordExpense(h.DB, req.Fund, req.AmountIDR, date, req.Note, req.ReferenceID)
	if err != nil {
		if errors.Is(err, service.ErrUnknownExpenseFund) {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mencatat pengeluaran")
	}

	auditService.Record(h.DB, helper.ActorIDOrNil(c), "finance.expense", "ledger_transaction", &entry.LedgerTransactionID, fiber.Map{
		"fund":       req.Fund,
		"amount_idr": req.AmountIDR,
	})

	return helper.JsonCreated(c, "Pengeluaran berhasil dicatat", entry)
}

/* ======================= LEDGER LIST ======================= */
// GET /api/a/finance/ledger?fund=&dr_cr=&start_date=&end_date=
func (h *FinanceController) ListLedger(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 200)

	q := h.DB.Model(&model.LedgerTransactionModel{})
	if fund := c.Query("fund"); fund != "" {
		q = q.Where("ledger_transaction_fund = ?", fund)
	}
	if drcr := c.Query("dr_cr"); drcr != "" {
		q = q.Where("ledger_transaction_dr_cr = ?", drcr)
	}
	if s := c.Query("start_date"); s != "" {
		start, err := time.Parse("2006-01-02", s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "start_date harus format YYYY-MM-DD")
		}
		q = q.Where("ledger_transaction_date >= ?", start)
	}
	if e := c.Query("end_date"); e != "" {
		end, err := time.Parse("2006-01-02", e)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "end_date harus format YYYY-MM-DD")
		}
		q = q.Where("ledger_transaction_date <= ?", end)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung entri ledger")
	}

	var entries []model.LedgerTransactionModel
	if err := q.Order("ledger_transaction_date DESC, ledger_transaction_created_at DESC").
		Offset(p.Offset).Limit(p.Limit).Find(&entries).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil entri ledger")
	}
	return helper.JsonList(c, entries, helper.BuildPagination(total, p))
}
