package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "madrasahku_backend/internals/features/academics/dto"
	model "madrasahku_backend/internals/features/academics/model"
	service "madrasahku_backend/internals/features/academics/service"
	auditService "madrasahku_backend/internals/features/audit/service"
	helper "madrasahku_backend/internals/helpers"
)

type FeePlanController struct {
	DB *gorm.DB
}

func NewFeePlanController(db *gorm.DB) *FeePlanController {
	return &FeePlanController{DB: db}
}

/* ======================= CREATE PLAN ======================= */
// POST /api/a/fee-plans
func (h *FeePlanController) CreatePlan(c *fiber.Ctx) error {
	var req dto.FeePlanCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	plan := model.FeePlanModel{
		FeePlanName:       req.FeePlanName,
		FeePlanMonthlyFee: req.FeePlanMonthlyFee,
		FeePlanNote:       req.FeePlanNote,
	}
	if err := h.DB.Create(&plan).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat fee plan")
	}
	return helper.JsonCreated(c, "Fee plan berhasil dibuat", plan)
}

/* ======================= LIST PLANS ======================= */
// GET /api/a/fee-plans
func (h *FeePlanController) ListPlans(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Model(&model.FeePlanModel{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung fee plan")
	}

	var plans []model.FeePlanModel
	if err := q.Order("fee_plan_created_at DESC").Offset(p.Offset).Limit(p.Limit).Find(&plans).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data fee plan")
	}
	return helper.JsonList(c, plans, helper.BuildPagination(total, p))
}

/* ======================= ASSIGN / REVOKE ======================= */
// POST /api/a/fee-plans/assign
// PlanID null = cabut plan; santri balik ke rantai fallback batch→department→course.
func (h *FeePlanController) AssignPlan(c *fiber.Ctx) error {
	var req dto.FeePlanAssignDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var student model.StudentModel
	if err := h.DB.First(&student, "student_id = ?", req.StudentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Santri tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data santri")
	}

	if req.PlanID != nil {
		var plan model.FeePlanModel
		if err := h.DB.First(&plan, "fee_plan_id = ?", *req.PlanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusNotFound, "Fee plan tidak ditemukan")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data fee plan")
		}
	}

	actorID := helper.ActorIDOrNil(c)
	entry := model.FeePlanHistoryModel{
		FeePlanHistoryStudentID:  req.StudentID,
		FeePlanHistoryPlanID:     req.PlanID,
		FeePlanHistoryAssignedBy: actorID,
		FeePlanHistoryNote:       req.Note,
	}
	if err := h.DB.Create(&entry).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan assignment fee plan")
	}

	action := "fee_plan.assign"
	if req.PlanID == nil {
		action = "fee_plan.revoke"
	}
	auditService.Record(h.DB, actorID, action, "student", &req.StudentID, fiber.Map{
		"plan_id": req.PlanID,
	})

	return helper.JsonCreated(c, "Assignment fee plan tersimpan", entry)
}

/* ======================= PREVIEW ======================= */
// GET /api/a/fee-plans/preview/:student_id?kind=monthly|admission
// Hitung tarif efektif TANPA membuat invoice — buat verifikasi admin.
func (h *FeePlanController) PreviewFee(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("student_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID santri tidak valid")
	}

	kind := c.Query("kind", "monthly")
	var resolved service.ResolvedFee
	switch kind {
	case "monthly":
		resolved, err = service.ResolveMonthlyFee(h.DB, studentID)
	case "admission":
		resolved, err = service.ResolveAdmissionFee(h.DB, studentID)
	default:
		return helper.JsonError(c, fiber.StatusBadRequest, "kind harus monthly atau admission")
	}
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Santri tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung tarif")
	}

	return helper.Success(c, "OK", fiber.Map{
		"student_id": studentID,
		"kind":       kind,
		"amount_idr": resolved.Amount,
		"plan_id":    resolved.PlanID,
	})
}
