package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditService "madrasahku_backend/internals/features/audit/service"
	billingService "madrasahku_backend/internals/features/billing/service"
	dto "madrasahku_backend/internals/features/donations/dto"
	model "madrasahku_backend/internals/features/donations/model"
	service "madrasahku_backend/internals/features/donations/service"
	notifier "madrasahku_backend/internals/features/notifications/service"
	helper "madrasahku_backend/internals/helpers"
)

var validate = validator.New()

type DonationController struct {
	DB       *gorm.DB
	Gateway  billingService.Gateway
	Notifier notifier.Notifier
}

func NewDonationController(db *gorm.DB, gw billingService.Gateway, n notifier.Notifier) *DonationController {
	return &DonationController{DB: db, Gateway: gw, Notifier: n}
}

/* ======================= DONOR ======================= */

// POST /api/a/donors
func (h *DonationController) CreateDonor(c *fiber.Ctx) error {
	var req dto.DonorCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	donor := req.ToModel()
	if err := h.DB.Create(donor).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat donatur")
	}
	return helper.JsonCreated(c, "Donatur berhasil dibuat", donor)
}

// GET /api/a/donors
func (h *DonationController) ListDonors(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Model(&model.DonorModel{})
	if search := c.Query("search"); search != "" {
		q = q.Where("donor_name ILIKE ?", "%"+search+"%")
	}
	if c.Query("committee") == "true" {
		q = q.Where("donor_is_committee_member = TRUE")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung donatur")
	}

	var donors []model.DonorModel
	if err := q.Order("donor_created_at DESC").Offset(p.Offset).Limit(p.Limit).Find(&donors).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data donatur")
	}
	return helper.JsonList(c, donors, helper.BuildPagination(total, p))
}

/* ======================= DONATION ======================= */

// POST /api/u/donations/checkout
// Donasi via gateway: baris pending dibuat dulu lalu Snap checkout.
func (h *DonationController) Checkout(c *fiber.Ctx) error {
	var req dto.DonationCheckoutDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	donation, redirectURL, err := service.InitiateDonation(h.DB, h.Gateway, req.DonorID, req.AmountIDR, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDonorNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, billingService.ErrGatewayInitiate):
			return helper.JsonError(c, fiber.StatusBadGateway, "Gateway pembayaran sedang bermasalah, coba lagi")
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memulai donasi")
		}
	}

	return helper.JsonCreated(c, "Checkout donasi berhasil dibuat", fiber.Map{
		"donation":     donation,
		"redirect_url": redirectURL,
	})
}

// POST /api/a/donations/cash
// Donasi tunai yang diterima pengurus; langsung paid + masuk ledger.
func (h *DonationController) Cash(c *fiber.Ctx) error {
	var req dto.CashDonationDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	collectorID := helper.ActorIDOrNil(c)
	donation, err := service.RecordCashDonation(h.DB, req.DonorID, req.AmountIDR, collectorID, req.Note)
	if err != nil {
		if errors.Is(err, service.ErrDonorNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mencatat donasi tunai")
	}

	auditService.Record(h.DB, collectorID, "donation.cash", "donation", &donation.DonationID, fiber.Map{
		"donor_id":   req.DonorID,
		"amount_idr": req.AmountIDR,
	})

	return helper.JsonCreated(c, "Donasi tunai berhasil dicatat", donation)
}

// POST /api/public/donations/webhook
func (h *DonationController) Webhook(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload webhook tidak valid")
	}

	if err := service.HandleDonationWebhook(h.DB, h.Notifier, body); err != nil {
		if errors.Is(err, service.ErrDonationNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Order tidak dikenal")
		}
		log.Printf("[ERROR] Webhook donasi gagal diproses: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses webhook")
	}

	return helper.Success(c, "OK", nil)
}

// GET /api/a/donations?donor_id=&status=
func (h *DonationController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Model(&model.DonationModel{})
	if did := c.Query("donor_id"); did != "" {
		id, err := uuid.Parse(did)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "donor_id tidak valid")
		}
		q = q.Where("donation_donor_id = ?", id)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("donation_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung donasi")
	}

	var donations []model.DonationModel
	if err := q.Order("donation_created_at DESC").Offset(p.Offset).Limit(p.Limit).Find(&donations).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data donasi")
	}
	return helper.JsonList(c, donations, helper.BuildPagination(total, p))
}
