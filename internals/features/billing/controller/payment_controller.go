package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	academicModel "madrasahku_backend/internals/features/academics/model"
	dto "madrasahku_backend/internals/features/billing/dto"
	model "madrasahku_backend/internals/features/billing/model"
	service "madrasahku_backend/internals/features/billing/service"
	notifier "madrasahku_backend/internals/features/notifications/service"
	helper "madrasahku_backend/internals/helpers"
)

type PaymentController struct {
	DB       *gorm.DB
	Gateway  service.Gateway
	Notifier notifier.Notifier
}

func NewPaymentController(db *gorm.DB, gw service.Gateway, n notifier.Notifier) *PaymentController {
	return &PaymentController{DB: db, Gateway: gw, Notifier: n}
}

/* ======================= CHECKOUT ======================= */
// POST /api/u/payments/checkout
// Gabungkan beberapa invoice unpaid milik satu santri jadi satu transaksi Snap.
// Hanya untuk invoice milik santri yang login.
func (h *PaymentController) Checkout(c *fiber.Ctx) error {
	var req dto.CheckoutDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

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

	payment, redirectURL, err := service.InitiatePayment(h.DB, h.Gateway, req.InvoiceIDs, &student.StudentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptySelection),
			errors.Is(err, service.ErrMixedStudents):
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNotInvoiceOwner):
			return helper.JsonError(c, fiber.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrInvoiceSelection):
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNothingToPay):
			return helper.JsonError(c, fiber.StatusConflict, err.Error())
		case errors.Is(err, service.ErrGatewayInitiate):
			return helper.JsonError(c, fiber.StatusBadGateway, "Gateway pembayaran sedang bermasalah, coba lagi")
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memulai pembayaran")
		}
	}

	return helper.JsonCreated(c, "Checkout berhasil dibuat", fiber.Map{
		"payment":      payment,
		"redirect_url": redirectURL,
	})
}

/* ======================= WEBHOOK ======================= */
// POST /api/public/payments/webhook
// Notifikasi Midtrans. Idempoten: pengiriman ulang tidak menggandakan ledger.
func (h *PaymentController) Webhook(c *fiber.Ctx) error {
	var body map[string]interface{}
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload webhook tidak valid")
	}

	if err := service.HandlePaymentWebhook(h.DB, h.Notifier, body); err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			// order_id asing — balas 404 supaya Midtrans berhenti retry ke sini
			return helper.JsonError(c, fiber.StatusNotFound, "Order tidak dikenal")
		}
		log.Printf("[ERROR] Webhook pembayaran gagal diproses: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses webhook")
	}

	return helper.Success(c, "OK", nil)
}

/* ======================= LIST (admin) ======================= */
// GET /api/a/payments?student_id=&status=
func (h *PaymentController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Model(&model.PaymentModel{})
	if sid := c.Query("student_id"); sid != "" {
		id, err := uuid.Parse(sid)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "student_id tidak valid")
		}
		q = q.Where("payment_student_id = ?", id)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("payment_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung payment")
	}

	var payments []model.PaymentModel
	if err := q.Order("payment_created_at DESC").Offset(p.Offset).Limit(p.Limit).Find(&payments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data payment")
	}
	return helper.JsonList(c, payments, helper.BuildPagination(total, p))
}
