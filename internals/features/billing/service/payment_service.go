package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	academicModel "madrasahku_backend/internals/features/academics/model"
	model "madrasahku_backend/internals/features/billing/model"
)

var (
	ErrNothingToPay     = errors.New("semua invoice yang dipilih sudah lunas")
	ErrMixedStudents    = errors.New("invoice yang dipilih bukan milik satu santri yang sama")
	ErrEmptySelection   = errors.New("pilih minimal satu invoice")
	ErrGatewayInitiate  = errors.New("gagal memulai pembayaran di gateway")
	ErrPaymentNotFound  = errors.New("payment tidak ditemukan")
	ErrInvoiceSelection = errors.New("sebagian invoice tidak ditemukan")
	ErrNotInvoiceOwner  = errors.New("invoice yang dipilih bukan milik santri ini")
)

// InitiatePayment menggabungkan beberapa invoice unpaid milik SATU santri jadi
// satu transaksi gateway. ownerID non-nil (checkout santri login) harus cocok
// dengan pemilik invoice; nil berarti caller internal/admin. Invoice yang sudah
// lunas otomatis di-drop; kalau tidak tersisa apa-apa ⇒ error. Correlation
// state = daftar invoice id yang disimpan di baris payment, supaya webhook
// bisa memetakan balik.
func InitiatePayment(db *gorm.DB, gw Gateway, invoiceIDs []uuid.UUID, ownerID *uuid.UUID) (*model.PaymentModel, string, error) {
	if len(invoiceIDs) == 0 {
		return nil, "", ErrEmptySelection
	}

	var invoices []model.MonthlyInvoiceModel
	if err := db.Where("monthly_invoice_id IN ?", invoiceIDs).Find(&invoices).Error; err != nil {
		return nil, "", err
	}
	if len(invoices) != len(invoiceIDs) {
		return nil, "", ErrInvoiceSelection
	}

	studentID := invoices[0].MonthlyInvoiceStudentID
	if ownerID != nil && studentID != *ownerID {
		return nil, "", ErrNotInvoiceOwner
	}
	var unpaid []model.MonthlyInvoiceModel
	total := 0
	for _, inv := range invoices {
		if inv.MonthlyInvoiceStudentID != studentID {
			return nil, "", ErrMixedStudents
		}
		if inv.MonthlyInvoiceStatus != model.InvoiceStatusUnpaid {
			continue
		}
		unpaid = append(unpaid, inv)
		total += inv.MonthlyInvoiceAmountIDR
	}
	if len(unpaid) == 0 {
		return nil, "", ErrNothingToPay
	}

	var student academicModel.StudentModel
	if err := db.First(&student, "student_id = ?", studentID).Error; err != nil {
		return nil, "", err
	}

	ids := make([]uuid.UUID, 0, len(unpaid))
	for _, inv := range unpaid {
		ids = append(ids, inv.MonthlyInvoiceID)
	}

	payment := model.PaymentModel{
		PaymentStudentID:  studentID,
		PaymentOrderID:    uuid.NewString(),
		PaymentAmountIDR:  total,
		PaymentStatus:     model.PaymentStatusInitiated,
		PaymentMethod:     model.PaymentMethodGateway,
		PaymentProvider:   model.PaymentProviderMidtrans,
		PaymentInvoiceIDs: model.JoinInvoiceIDs(ids),
	}
	if err := db.Create(&payment).Error; err != nil {
		return nil, "", err
	}

	cust := CustomerInput{FirstName: student.StudentName}
	if student.StudentEmail != nil {
		cust.Email = *student.StudentEmail
	}
	if student.StudentPhone != nil {
		cust.Phone = *student.StudentPhone
	}

	itemName := fmt.Sprintf("Tagihan madrasah (%d invoice)", len(unpaid))
	redirectURL, err := gw.CreateTransaction(payment.PaymentOrderID, total, itemName, cust)
	if err != nil {
		// gateway gagal total ⇒ payment ditandai failed, caller dapat error jelas
		_ = db.Model(&model.PaymentModel{}).
			Where("payment_id = ?", payment.PaymentID).
			Update("payment_status", model.PaymentStatusFailed).Error
		return nil, "", fmt.Errorf("%w: %v", ErrGatewayInitiate, err)
	}

	if err := db.Model(&model.PaymentModel{}).
		Where("payment_id = ?", payment.PaymentID).
		Update("payment_checkout_url", redirectURL).Error; err != nil {
		return nil, "", err
	}
	payment.PaymentCheckoutURL = &redirectURL
	return &payment, redirectURL, nil
}
