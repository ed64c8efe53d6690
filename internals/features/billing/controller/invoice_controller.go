package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	academicModel "madrasahku_backend/internals/features/academics/model"
	academicService "madrasahku_backend/internals/features/academics/service"
	auditService "madrasahku_backend/internals/features/audit/service"
	dto "madrasahku_backend/internals/features/billing/dto"
	model "madrasahku_backend/internals/features/billing/model"
	service "madrasahku_backend/internals/features/billing/service"
	notifier "madrasahku_backend/internals/features/notifications/service"
	helper "madrasahku_backend/internals/helpers"
)

var validate = validator.New()

type InvoiceController struct {
	DB       *gorm.DB
	Notifier notifier.Notifier
}

func NewInvoiceController(db *gorm.DB, n notifier.Notifier) *InvoiceController {
	return &InvoiceController{DB: db, Notifier: n}
}

/* ======================= LIST (admin) ======================= */
// GET /api/a/invoices?student_id=&month=&year=&status=
func (h *InvoiceController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Model(&model.MonthlyInvoiceModel{})
	if sid := c.Query("student_id"); sid != "" {
		id, err := uuid.Parse(sid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "student_id tidak valid")
		}
		q = q.Where("monthly_invoice_student_id = ?", id)
	}
	if month := c.QueryInt("month", -1); month >= 0 {
		q = q.Where("monthly_invoice_month = ?", month)
	}
	if year := c.QueryInt("year", -1); year > 0 {
		q = q.Where("monthly_invoice_year = ?", year)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("monthly_invoice_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung invoice")
	}

	order := helper.SafeOrderClause(c, map[string]string{
		"created_at": "monthly_invoice_created_at",
		"due_date":   "monthly_invoice_due_date",
	}, "created_at")

	var invoices []model.MonthlyInvoiceModel
	if err := q.Order(order).Offset(p.Offset).Limit(p.Limit).Find(&invoices).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data invoice")
	}
	return helper.JsonList(c, invoices, helper.BuildPagination(total, p))
}

/* ======================= GET BY ID ======================= */
// GET /api/a/invoices/:id
func (h *InvoiceController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID invoice tidak valid")
	}

	var inv model.MonthlyInvoiceModel
	if err := h.DB.First(&inv, "monthly_invoice_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Invoice tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data invoice")
	}
	return helper.Success(c, "OK", inv)
}

/* ======================= GENERATE ======================= */
// POST /api/a/invoices/generate
// Find-or-create: aman dipanggil berulang untuk periode yang sama.
func (h *InvoiceController) Generate(c *fiber.Ctx) error {
	var req dto.InvoiceGenerateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	inv, created, err := service.FindOrCreateInvoice(h.DB, req.StudentID, req.Month, req.Year)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPeriod):
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, academicService.ErrStudentNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Santri tidak ditemukan")
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat invoice")
		}
	}

	if created {
		return helper.JsonCreated(c, "Invoice berhasil dibuat", inv)
	}
	return helper.Success(c, "Invoice sudah ada untuk periode ini", inv)
}

/* ======================= MARK PAID (manual) ======================= */
// POST /api/a/invoices/:id/pay
// Pelunasan tunai oleh admin; lewat jalur conditional-update yang sama
// dengan webhook, jadi dobel klik tidak menggandakan entri ledger.
func (h *InvoiceController) MarkPaid(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID invoice tidak valid")
	}

	var req dto.ManualPayDTO
	_ = c.BodyParser(&req) // body opsional

	actorID := helper.ActorIDOrNil(c)
	inv, paidNow, err := service.MarkInvoicePaid(h.DB, h.Notifier, id, service.PaymentContext{
		Method:  model.PaymentMethodCash,
		ActorID: actorID,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvoiceNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Invoice tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal melunasi invoice")
	}

	if !paidNow {
		return helper.Success(c, "Invoice sudah lunas sebelumnya", inv)
	}

	auditService.Record(h.DB, actorID, "invoice.mark_paid", "monthly_invoice", &id, fiber.Map{
		"method": model.PaymentMethodCash,
		"note":   req.Note,
	})

	return helper.Success(c, "Invoice berhasil dilunasi", inv)
}

/* ======================= MY INVOICES (user) ======================= */
// GET /api/u/invoices — invoice milik santri yang login.
func (h *InvoiceController) MyInvoices(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var student academicModel.StudentModel
	if err := h.DB.First(&student, "student_user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Akun ini tidak terhubung ke data santri")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data santri")
	}

	p := helper.ResolvePaging(c, 20, 100)
	q := h.DB.Model(&model.MonthlyInvoiceModel{}).
		Where("monthly_invoice_student_id = ?", student.StudentID)
	if status := c.Query("status"); status != "" {
		q = q.Where("monthly_invoice_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung invoice")
	}

	var invoices []model.MonthlyInvoiceModel
	if err := q.Order("monthly_invoice_year DESC, monthly_invoice_month DESC").
		Offset(p.Offset).Limit(p.Limit).Find(&invoices).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data invoice")
	}
	return helper.JsonList(c, invoices, helper.BuildPagination(total, p))
}
