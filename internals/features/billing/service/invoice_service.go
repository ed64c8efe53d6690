package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	academicModel "madrasahku_backend/internals/features/academics/model"
	academicService "madrasahku_backend/internals/features/academics/service"
	model "madrasahku_backend/internals/features/billing/model"
	financeModel "madrasahku_backend/internals/features/finance/model"
	notifier "madrasahku_backend/internals/features/notifications/service"
)

var (
	ErrInvoiceNotFound = errors.New("invoice tidak ditemukan")
	ErrInvalidPeriod   = errors.New("periode invoice tidak valid")
)

// PaymentContext membawa info siapa/bagaimana invoice dilunasi.
type PaymentContext struct {
	Method  string // gateway | cash
	ActorID *uuid.UUID
}

/* =========================================================
   Find or create
========================================================= */

// FindOrCreateInvoice mencari invoice (student, month, year); kalau belum ada,
// tarif di-snapshot SAAT INI lewat fee resolver lalu invoice dibuat unpaid.
// Idempoten: unique index di DB yang menjamin, bukan lock aplikasi — kalah
// race 23505 tinggal re-fetch baris pemenang.
func FindOrCreateInvoice(db *gorm.DB, studentID uuid.UUID, month, year int) (*model.MonthlyInvoiceModel, bool, error) {
	if month < 0 || month > 12 || year < 2000 || year > 2100 {
		return nil, false, ErrInvalidPeriod
	}

	var inv model.MonthlyInvoiceModel
	err := db.Where(
		"monthly_invoice_student_id = ? AND monthly_invoice_month = ? AND monthly_invoice_year = ?",
		studentID, month, year,
	).First(&inv).Error
	if err == nil {
		return &inv, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	// snapshot tarif
	var resolved academicService.ResolvedFee
	if int16(month) == model.AdmissionMonth {
		resolved, err = academicService.ResolveAdmissionFee(db, studentID)
	} else {
		resolved, err = academicService.ResolveMonthlyFee(db, studentID)
	}
	if err != nil {
		return nil, false, err
	}

	now := time.Now()
	inv = model.MonthlyInvoiceModel{
		MonthlyInvoiceStudentID: studentID,
		MonthlyInvoiceMonth:     int16(month),
		MonthlyInvoiceYear:      int16(year),
		MonthlyInvoiceAmountIDR: resolved.Amount,
		MonthlyInvoiceStatus:    model.InvoiceStatusUnpaid,
		MonthlyInvoiceDueDate:   dueDateFor(month, year, now),
		MonthlyInvoiceIssuedAt:  now,
		MonthlyInvoicePlanID:    resolved.PlanID,
	}
	if err := db.Create(&inv).Error; err != nil {
		if isUniqueViolation(err) {
			// kalah race: ambil baris yang menang
			var existing model.MonthlyInvoiceModel
			if err2 := db.Where(
				"monthly_invoice_student_id = ? AND monthly_invoice_month = ? AND monthly_invoice_year = ?",
				studentID, month, year,
			).First(&existing).Error; err2 == nil {
				return &existing, false, nil
			}
		}
		return nil, false, err
	}
	return &inv, true, nil
}

// Jatuh tempo tanggal 10 di bulan invoice; invoice admission (month 0)
// jatuh tempo tanggal 10 di bulan penerbitan.
func dueDateFor(month, year int, issuedAt time.Time) time.Time {
	if int16(month) == model.AdmissionMonth {
		return time.Date(issuedAt.Year(), issuedAt.Month(), 10, 0, 0, 0, 0, time.Local)
	}
	return time.Date(year, time.Month(month), 10, 0, 0, 0, 0, time.Local)
}

/* =========================================================
   Mark paid
========================================================= */

// MarkInvoicePaid mentransisikan unpaid → paid sekali saja. Guard berupa
// conditional UPDATE + cek RowsAffected: dua callback gateway yang datang
// bersamaan tidak mungkin sama-sama menulis entri ledger. Transisi status dan
// posting ledger satu transaksi DB; notifikasi dikirim SETELAH commit dan
// best-effort. Invoice yang sudah paid ⇒ no-op, bukan error.
func MarkInvoicePaid(db *gorm.DB, n notifier.Notifier, invoiceID uuid.UUID, pctx PaymentContext) (*model.MonthlyInvoiceModel, bool, error) {
	var inv model.MonthlyInvoiceModel
	if err := db.First(&inv, "monthly_invoice_id = ?", invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrInvoiceNotFound
		}
		return nil, false, err
	}

	paidNow := false
	err := db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&model.MonthlyInvoiceModel{}).
			Where("monthly_invoice_id = ? AND monthly_invoice_status = ?", invoiceID, model.InvoiceStatusUnpaid).
			Updates(map[string]interface{}{
				"monthly_invoice_status":  model.InvoiceStatusPaid,
				"monthly_invoice_paid_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// sudah paid (retry callback / manual ganda) — jangan dobel ledger
			return nil
		}

		fund := financeModel.FundMonthly
		if inv.IsAdmission() {
			fund = financeModel.FundAdmission
		}
		note := fmt.Sprintf("pelunasan invoice %d/%d via %s", inv.MonthlyInvoiceMonth, inv.MonthlyInvoiceYear, pctx.Method)
		entry := financeModel.LedgerTransactionModel{
			LedgerTransactionFund:        fund,
			LedgerTransactionDrCr:        financeModel.DrCrCredit,
			LedgerTransactionAmountIDR:   inv.MonthlyInvoiceAmountIDR,
			LedgerTransactionDate:        now,
			LedgerTransactionReferenceID: &inv.MonthlyInvoiceID,
			LedgerTransactionNote:        &note,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		paidNow = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if err := db.First(&inv, "monthly_invoice_id = ?", invoiceID).Error; err != nil {
		return nil, paidNow, err
	}
	if paidNow {
		notifyInvoicePaid(db, n, inv)
	}
	return &inv, paidNow, nil
}

func notifyInvoicePaid(db *gorm.DB, n notifier.Notifier, inv model.MonthlyInvoiceModel) {
	if n == nil {
		return
	}
	var student academicModel.StudentModel
	if err := db.First(&student, "student_id = ?", inv.MonthlyInvoiceStudentID).Error; err != nil {
		log.Printf("[WARN] Notifikasi invoice %s dilewati: %v", inv.MonthlyInvoiceID, err)
		return
	}
	email := ""
	if student.StudentEmail != nil {
		email = *student.StudentEmail
	}
	period := fmt.Sprintf("%02d/%d", inv.MonthlyInvoiceMonth, inv.MonthlyInvoiceYear)
	if inv.IsAdmission() {
		period = "admission"
	}
	notifier.Dispatch(n, notifier.Event{
		Type:           notifier.EventInvoicePaid,
		RecipientName:  student.StudentName,
		RecipientEmail: email,
		Subject:        "Pembayaran diterima",
		Body:           fmt.Sprintf("Pembayaran %s sebesar Rp%d sudah kami terima. Jazakallahu khairan.", period, inv.MonthlyInvoiceAmountIDR),
	})
}

/* =========================================================
   Util
========================================================= */

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
