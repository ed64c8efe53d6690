package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditService "madrasahku_backend/internals/features/audit/service"
	dto "madrasahku_backend/internals/features/payroll/dto"
	model "madrasahku_backend/internals/features/payroll/model"
	service "madrasahku_backend/internals/features/payroll/service"
	helper "madrasahku_backend/internals/helpers"
)

var validate = validator.New()

type PayrollController struct {
	DB *gorm.DB
}

func NewPayrollController(db *gorm.DB) *PayrollController {
	return &PayrollController{DB: db}
}

/* ======================= PROCESS ======================= */
// POST /api/a/payroll
// Satu guru hanya bisa dibayar sekali per (bulan, tahun).
func (h *PayrollController) Process(c *fiber.Ctx) error {
	var req dto.TeacherPaymentCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	method := model.TeacherPaymentMethodCash
	if req.Method != nil && *req.Method != "" {
		method = *req.Method
	}

	payment, err := service.ProcessTeacherPayment(h.DB, service.ProcessTeacherPaymentInput{
		TeacherID:      req.TeacherID,
		Month:          req.Month,
		Year:           req.Year,
		BasicSalaryIDR: req.BasicIDR,
		BonusIDR:       req.BonusIDR,
		DeductionIDR:   req.DeductionIDR,
		Method:         method,
		Note:           req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateTeacherPayment):
			return helper.JsonError(c, fiber.StatusConflict, err.Error())
		case errors.Is(err, service.ErrInvalidPayrollInput):
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses gaji guru")
		}
	}

	auditService.Record(h.DB, helper.ActorIDOrNil(c), "payroll.process", "teacher_payment", &payment.TeacherPaymentID, fiber.Map{
		"teacher_id": req.TeacherID,
		"month":      req.Month,
		"year":       req.Year,
		"total_idr":  payment.TeacherPaymentTotalIDR,
	})

	return helper.JsonCreated(c, "Gaji guru berhasil diproses", payment)
}

/* ======================= LIST ======================= */
// GET /api/a/payroll?teacher_id=&month=&year=
func (h *PayrollController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Model(&model.TeacherPaymentModel{})
	if tid := c.Query("teacher_id"); tid != "" {
		id, err := uuid.Parse(tid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "teacher_id tidak valid")
		}
		q = q.Where("teacher_payment_teacher_id = ?", id)
	}
	if month := c.QueryInt("month", 0); month > 0 {
		q = q.Where("teacher_payment_month = ?", month)
	}
	if year := c.QueryInt("year", 0); year > 0 {
		q = q.Where("teacher_payment_year = ?", year)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung data gaji")
	}

	var payments []model.TeacherPaymentModel
	if err := q.Order("teacher_payment_year DESC, teacher_payment_month DESC").
		Offset(p.Offset).Limit(p.Limit).Find(&payments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data gaji")
	}
	return helper.JsonList(c, payments, helper.BuildPagination(total, p))
}
