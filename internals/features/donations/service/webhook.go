package service

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	model "madrasahku_backend/internals/features/donations/model"
	notifier "madrasahku_backend/internals/features/notifications/service"
)

// HandleDonationWebhook dipanggil saat menerima notifikasi dari Midtrans.
// Idempoten terhadap pengiriman ulang: settleDonation menjaga pending → paid
// hanya terjadi sekali.
func HandleDonationWebhook(db *gorm.DB, n notifier.Notifier, body map[string]interface{}) error {
	orderID, ok1 := body["order_id"].(string)
	status, ok2 := body["transaction_status"].(string)
	if !ok1 || !ok2 {
		log.Println("[ERROR] Payload webhook tidak lengkap:", body)
		return fmt.Errorf("invalid payload")
	}

	var donation model.DonationModel
	if err := db.Where("donation_order_id = ?", orderID).First(&donation).Error; err != nil {
		log.Println("[ERROR] Donasi tidak ditemukan:", err)
		return ErrDonationNotFound
	}

	switch status {
	case "capture", "settlement":
		settled, err := settleDonation(db, donation)
		if err != nil {
			return err
		}
		if settled {
			notifyDonationPaid(db, n, donation)
		}

	case "expire":
		return setDonationStatusIfPending(db, donation, model.DonationStatusExpired)
	case "cancel", "deny":
		return setDonationStatusIfPending(db, donation, model.DonationStatusCanceled)
	default:
		log.Println("[INFO] Status tidak diproses:", status)
	}

	return nil
}

func setDonationStatusIfPending(db *gorm.DB, donation model.DonationModel, status string) error {
	return db.Model(&model.DonationModel{}).
		Where("donation_id = ? AND donation_status = ?", donation.DonationID, model.DonationStatusPending).
		Update("donation_status", status).Error
}
