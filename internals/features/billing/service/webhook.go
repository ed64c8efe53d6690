package service

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	model "madrasahku_backend/internals/features/billing/model"
	notifier "madrasahku_backend/internals/features/notifications/service"
)

// HandlePaymentWebhook dipanggil saat menerima notifikasi dari Midtrans.
// Gateway bisa mengirim ulang notifikasi yang sama — seluruh jalur di bawah
// idempoten (guard unpaid di MarkInvoicePaid + conditional update payment).
func HandlePaymentWebhook(db *gorm.DB, n notifier.Notifier, body map[string]interface{}) error {
	orderID, ok1 := body["order_id"].(string)
	status, ok2 := body["transaction_status"].(string)
	if !ok1 || !ok2 {
		log.Println("[ERROR] Payload webhook tidak lengkap:", body)
		return fmt.Errorf("invalid payload")
	}

	log.Println("📄 Order ID:", orderID)
	log.Println("📌 Transaction Status:", status)

	var payment model.PaymentModel
	if err := db.Where("payment_order_id = ?", orderID).First(&payment).Error; err != nil {
		log.Println("[ERROR] Payment tidak ditemukan:", err)
		return ErrPaymentNotFound
	}

	switch status {
	case "capture", "settlement":
		for _, invoiceID := range payment.InvoiceIDList() {
			if _, _, err := MarkInvoicePaid(db, n, invoiceID, PaymentContext{Method: model.PaymentMethodGateway}); err != nil {
				log.Printf("[ERROR] Gagal tandai invoice %s paid: %v", invoiceID, err)
				return err
			}
		}
		now := time.Now()
		// conditional: retry webhook tidak menimpa paid_at pertama
		if err := db.Model(&model.PaymentModel{}).
			Where("payment_id = ? AND payment_status <> ?", payment.PaymentID, model.PaymentStatusPaid).
			Updates(map[string]interface{}{
				"payment_status":  model.PaymentStatusPaid,
				"payment_paid_at": now,
			}).Error; err != nil {
			return err
		}

	case "expire":
		if err := setPaymentStatusIfNotPaid(db, payment, model.PaymentStatusExpired); err != nil {
			return err
		}
	case "cancel", "deny":
		if err := setPaymentStatusIfNotPaid(db, payment, model.PaymentStatusCanceled); err != nil {
			return err
		}
	default:
		log.Println("[INFO] Status tidak diproses:", status)
	}

	return nil
}

func setPaymentStatusIfNotPaid(db *gorm.DB, payment model.PaymentModel, status string) error {
	return db.Model(&model.PaymentModel{}).
		Where("payment_id = ? AND payment_status <> ?", payment.PaymentID, model.PaymentStatusPaid).
		Update("payment_status", status).Error
}
