package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	billingService "madrasahku_backend/internals/features/billing/service"
	model "madrasahku_backend/internals/features/donations/model"
	financeModel "madrasahku_backend/internals/features/finance/model"
	notifier "madrasahku_backend/internals/features/notifications/service"
)

var (
	ErrDonorNotFound    = errors.New("donor tidak ditemukan")
	ErrDonationNotFound = errors.New("donasi tidak ditemukan")
)

// InitiateDonation membuat donasi pending + transaksi hosted-checkout di
// gateway. Settlement dikerjakan webhook.
func InitiateDonation(db *gorm.DB, gw billingService.Gateway, donorID uuid.UUID, amountIDR int, message *string) (*model.DonationModel, string, error) {
	var donor model.DonorModel
	if err := db.First(&donor, "donor_id = ?", donorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrDonorNotFound
		}
		return nil, "", err
	}

	orderID := uuid.NewString()
	donation := model.DonationModel{
		DonationDonorID:   donorID,
		DonationAmountIDR: amountIDR,
		DonationStatus:    model.DonationStatusPending,
		DonationMethod:    model.DonationMethodGateway,
		DonationMessage:   message,
		DonationOrderID:   &orderID,
	}
	if err := db.Create(&donation).Error; err != nil {
		return nil, "", err
	}

	cust := billingService.CustomerInput{FirstName: donor.DonorName}
	if donor.DonorEmail != nil {
		cust.Email = *donor.DonorEmail
	}
	if donor.DonorPhone != nil {
		cust.Phone = *donor.DonorPhone
	}

	redirectURL, err := gw.CreateTransaction(orderID, amountIDR, "Donasi madrasah", cust)
	if err != nil {
		_ = db.Model(&model.DonationModel{}).
			Where("donation_id = ?", donation.DonationID).
			Update("donation_status", model.DonationStatusCanceled).Error
		return nil, "", fmt.Errorf("%w: %v", billingService.ErrGatewayInitiate, err)
	}
	return &donation, redirectURL, nil
}

// RecordCashDonation mencatat donasi tunai yang diterima kolektor: langsung
// paid + entri ledger dalam satu transaksi.
func RecordCashDonation(db *gorm.DB, donorID uuid.UUID, amountIDR int, collectorID *uuid.UUID, message *string) (*model.DonationModel, error) {
	var donor model.DonorModel
	if err := db.First(&donor, "donor_id = ?", donorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDonorNotFound
		}
		return nil, err
	}

	now := time.Now()
	donation := model.DonationModel{
		DonationDonorID:     donorID,
		DonationAmountIDR:   amountIDR,
		DonationStatus:      model.DonationStatusPaid,
		DonationMethod:      model.DonationMethodCash,
		DonationMessage:     message,
		DonationCollectorID: collectorID,
		DonationPaidAt:      &now,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&donation).Error; err != nil {
			return err
		}
		return postDonationLedger(tx, donation, donor)
	})
	if err != nil {
		return nil, err
	}
	return &donation, nil
}

// settleDonation: pending → paid sekali saja (guard conditional update) lalu
// posting ledger; dipakai webhook.
func settleDonation(db *gorm.DB, donation model.DonationModel) (bool, error) {
	var donor model.DonorModel
	if err := db.First(&donor, "donor_id = ?", donation.DonationDonorID).Error; err != nil {
		return false, err
	}

	settled := false
	err := db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&model.DonationModel{}).
			Where("donation_id = ? AND donation_status = ?", donation.DonationID, model.DonationStatusPending).
			Updates(map[string]interface{}{
				"donation_status":  model.DonationStatusPaid,
				"donation_paid_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil // retry webhook — sudah paid
		}
		settled = true
		return postDonationLedger(tx, donation, donor)
	})
	return settled, err
}

// Donasi dari anggota committee masuk fund dana_committee.
func postDonationLedger(tx *gorm.DB, donation model.DonationModel, donor model.DonorModel) error {
	fund := financeModel.FundDonation
	if donor.DonorIsCommitteeMember {
		fund = financeModel.FundDanaCommittee
	}
	note := fmt.Sprintf("donasi dari %s", donor.DonorName)
	entry := financeModel.LedgerTransactionModel{
		LedgerTransactionFund:        fund,
		LedgerTransactionDrCr:        financeModel.DrCrCredit,
		LedgerTransactionAmountIDR:   donation.DonationAmountIDR,
		LedgerTransactionDate:        time.Now(),
		LedgerTransactionReferenceID: &donation.DonationID,
		LedgerTransactionNote:        &note,
	}
	return tx.Create(&entry).Error
}

func notifyDonationPaid(db *gorm.DB, n notifier.Notifier, donation model.DonationModel) {
	if n == nil {
		return
	}
	var donor model.DonorModel
	if err := db.First(&donor, "donor_id = ?", donation.DonationDonorID).Error; err != nil {
		log.Printf("[WARN] Notifikasi donasi %s dilewati: %v", donation.DonationID, err)
		return
	}
	email := ""
	if donor.DonorEmail != nil {
		email = *donor.DonorEmail
	}
	notifier.Dispatch(n, notifier.Event{
		Type:           notifier.EventDonationPaid,
		RecipientName:  donor.DonorName,
		RecipientEmail: email,
		Subject:        "Donasi diterima",
		Body:           fmt.Sprintf("Donasi sebesar Rp%d sudah kami terima. Jazakallahu khairan.", donation.DonationAmountIDR),
	})
}
