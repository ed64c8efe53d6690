package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	financeModel "madrasahku_backend/internals/features/finance/model"
	model "madrasahku_backend/internals/features/payroll/model"
)

var (
	ErrDuplicateTeacherPayment = errors.New("gaji guru untuk bulan tersebut sudah dibayar")
	ErrInvalidPayrollInput     = errors.New("input payroll tidak valid")
)

type ProcessTeacherPaymentInput struct {
	TeacherID      uuid.UUID
	Month          int
	Year           int
	BasicSalaryIDR int
	BonusIDR       int
	DeductionIDR   int
	Method         string
	Note           *string
}

// ProcessTeacherPayment membayar gaji satu guru untuk satu periode.
// Dobel bayar ditolak dua lapis: cek eksplisit di awal transaksi + unique
// index (teacher, month, year) sebagai penjaga terakhir saat race.
// Total = basic + bonus − deduction, sengaja tidak di-clamp ke 0.
// Entri ledger teacher_salary (DR) ikut di transaksi yang sama supaya laporan
// laba/rugi konsisten.
func ProcessTeacherPayment(db *gorm.DB, in ProcessTeacherPaymentInput) (*model.TeacherPaymentModel, error) {
	if in.Month < 1 || in.Month > 12 {
		return nil, fmt.Errorf("%w: bulan %d di luar rentang", ErrInvalidPayrollInput, in.Month)
	}
	if in.BasicSalaryIDR < 0 || in.BonusIDR < 0 || in.DeductionIDR < 0 {
		return nil, fmt.Errorf("%w: basic/bonus/deduction harus >= 0", ErrInvalidPayrollInput)
	}

	payment := model.TeacherPaymentModel{
		TeacherPaymentTeacherID:      in.TeacherID,
		TeacherPaymentMonth:          int16(in.Month),
		TeacherPaymentYear:           int16(in.Year),
		TeacherPaymentBasicSalaryIDR: in.BasicSalaryIDR,
		TeacherPaymentBonusIDR:       in.BonusIDR,
		TeacherPaymentDeductionIDR:   in.DeductionIDR,
		TeacherPaymentTotalIDR:       in.BasicSalaryIDR + in.BonusIDR - in.DeductionIDR,
		TeacherPaymentMethod:         in.Method,
		TeacherPaymentNote:           in.Note,
		TeacherPaymentPaidAt:         time.Now(),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.TeacherPaymentModel{}).
			Where("teacher_payment_teacher_id = ? AND teacher_payment_month = ? AND teacher_payment_year = ?",
				in.TeacherID, in.Month, in.Year).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateTeacherPayment
		}

		if err := tx.Create(&payment).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateTeacherPayment
			}
			return err
		}

		if payment.TeacherPaymentTotalIDR < 0 {
			// deduction melebihi basic+bonus; tidak ada beban yang dicatat
			log.Printf("[WARN] Payroll %s %02d/%d total negatif (%d), entri ledger dilewati",
				in.TeacherID, in.Month, in.Year, payment.TeacherPaymentTotalIDR)
			return nil
		}

		note := fmt.Sprintf("gaji guru %02d/%d", in.Month, in.Year)
		entry := financeModel.LedgerTransactionModel{
			LedgerTransactionFund:        financeModel.FundTeacherSalary,
			LedgerTransactionDrCr:        financeModel.DrCrDebit,
			LedgerTransactionAmountIDR:   payment.TeacherPaymentTotalIDR,
			LedgerTransactionDate:        payment.TeacherPaymentPaidAt,
			LedgerTransactionReferenceID: &payment.TeacherPaymentID,
			LedgerTransactionNote:        &note,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
