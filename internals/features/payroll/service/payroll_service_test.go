package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	financeModel "madrasahku_backend/internals/features/finance/model"
	model "madrasahku_backend/internals/features/payroll/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.TeacherPaymentModel{},
		&financeModel.LedgerTransactionModel{},
	))
	return db
}

func TestProcessTeacherPayment(t *testing.T) {
	db := newTestDB(t)
	teacherID := uuid.New()

	payment, err := ProcessTeacherPayment(db, ProcessTeacherPaymentInput{
		TeacherID:      teacherID,
		Month:          3,
		Year:           2026,
		BasicSalaryIDR: 1000,
		BonusIDR:       200,
		DeductionIDR:   50,
		Method:         model.TeacherPaymentMethodCash,
	})
	require.NoError(t, err)
	require.Equal(t, 1150, payment.TeacherPaymentTotalIDR)
	require.False(t, payment.TeacherPaymentPaidAt.IsZero())

	// entri ledger teacher_salary (DR) sebesar total, di transaksi yang sama
	var entries []financeModel.LedgerTransactionModel
	require.NoError(t, db.Where("ledger_transaction_fund = ?", financeModel.FundTeacherSalary).Find(&entries).Error)
	require.Len(t, entries, 1)
	require.Equal(t, financeModel.DrCrDebit, entries[0].LedgerTransactionDrCr)
	require.Equal(t, 1150, entries[0].LedgerTransactionAmountIDR)
	require.NotNil(t, entries[0].LedgerTransactionReferenceID)
	require.Equal(t, payment.TeacherPaymentID, *entries[0].LedgerTransactionReferenceID)
}

func TestProcessTeacherPayment_DuplicatePeriodRejected(t *testing.T) {
	db := newTestDB(t)
	teacherID := uuid.New()

	in := ProcessTeacherPaymentInput{
		TeacherID:      teacherID,
		Month:          3,
		Year:           2026,
		BasicSalaryIDR: 1000,
		Method:         model.TeacherPaymentMethodCash,
	}
	_, err := ProcessTeacherPayment(db, in)
	require.NoError(t, err)

	_, err = ProcessTeacherPayment(db, in)
	require.ErrorIs(t, err, ErrDuplicateTeacherPayment)

	// tetap satu baris payment + satu entri ledger
	var count int64
	require.NoError(t, db.Model(&model.TeacherPaymentModel{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
	require.NoError(t, db.Model(&financeModel.LedgerTransactionModel{}).Count(&count).Error)
	require.EqualValues(t, 1, count)

	// bulan lain boleh
	in.Month = 4
	_, err = ProcessTeacherPayment(db, in)
	require.NoError(t, err)
}

func TestProcessTeacherPayment_NegativeTotalSkipsLedger(t *testing.T) {
	db := newTestDB(t)

	// deduction melebihi basic+bonus: total minus tetap tercatat apa adanya,
	// tapi tidak ada beban yang diposting ke ledger
	payment, err := ProcessTeacherPayment(db, ProcessTeacherPaymentInput{
		TeacherID:      uuid.New(),
		Month:          5,
		Year:           2026,
		BasicSalaryIDR: 100,
		BonusIDR:       0,
		DeductionIDR:   300,
		Method:         model.TeacherPaymentMethodTransfer,
	})
	require.NoError(t, err)
	require.Equal(t, -200, payment.TeacherPaymentTotalIDR)

	var count int64
	require.NoError(t, db.Model(&financeModel.LedgerTransactionModel{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestProcessTeacherPayment_Validation(t *testing.T) {
	db := newTestDB(t)

	// error validasi pakai sentinel supaya handler bisa membalas 400, bukan 500
	_, err := ProcessTeacherPayment(db, ProcessTeacherPaymentInput{
		TeacherID: uuid.New(), Month: 13, Year: 2026, BasicSalaryIDR: 100,
	})
	require.ErrorIs(t, err, ErrInvalidPayrollInput)

	_, err = ProcessTeacherPayment(db, ProcessTeacherPaymentInput{
		TeacherID: uuid.New(), Month: 1, Year: 2026, BasicSalaryIDR: -1,
	})
	require.ErrorIs(t, err, ErrInvalidPayrollInput)
}
