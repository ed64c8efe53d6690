package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	billingModel "madrasahku_backend/internals/features/billing/model"
	model "madrasahku_backend/internals/features/finance/model"
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
		&model.LedgerTransactionModel{},
		&billingModel.MonthlyInvoiceModel{},
	))
	return db
}

func addEntry(t *testing.T, db *gorm.DB, fund, drcr string, amount int, date time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&model.LedgerTransactionModel{
		LedgerTransactionFund:      fund,
		LedgerTransactionDrCr:      drcr,
		LedgerTransactionAmountIDR: amount,
		LedgerTransactionDate:      date,
	}).Error)
}

func TestProfitLoss_PartitionByFundMembership(t *testing.T) {
	db := newTestDB(t)
	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)

	addEntry(t, db, model.FundMonthly, model.DrCrCredit, 100, day)
	addEntry(t, db, model.FundTeacherSalary, model.DrCrDebit, 40, day)

	stmt, err := ProfitLoss(db, day.AddDate(0, 0, -1), day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Equal(t, 100, stmt.TotalIncome)
	require.Equal(t, 40, stmt.TotalExpenses)
	require.Equal(t, 60, stmt.NetProfit)
}

// Partisi income/expense mengikuti keanggotaan fund, bukan marker DR/CR:
// entri teacher_salary tetap dihitung beban meski markernya CR.
func TestProfitLoss_IgnoresDrCrMarker(t *testing.T) {
	db := newTestDB(t)
	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)

	addEntry(t, db, model.FundMonthly, model.DrCrCredit, 100, day)
	addEntry(t, db, model.FundTeacherSalary, model.DrCrCredit, 40, day)

	stmt, err := ProfitLoss(db, day.AddDate(0, 0, -1), day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Equal(t, 100, stmt.TotalIncome)
	require.Equal(t, 40, stmt.TotalExpenses)
	require.Equal(t, 60, stmt.NetProfit)
}

func TestProfitLoss_EmptyRangeReturnsZeros(t *testing.T) {
	db := newTestDB(t)
	addEntry(t, db, model.FundMonthly, model.DrCrCredit, 100, time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local))

	stmt, err := ProfitLoss(db,
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.Local),
		time.Date(2020, 12, 31, 0, 0, 0, 0, time.Local),
	)
	require.NoError(t, err)
	require.Zero(t, stmt.TotalIncome)
	require.Zero(t, stmt.TotalExpenses)
	require.Zero(t, stmt.NetProfit)
	require.Empty(t, stmt.IncomeByFund)
	require.Empty(t, stmt.ExpenseByFund)
}

func TestProfitLoss_AllFourIncomeFunds(t *testing.T) {
	db := newTestDB(t)
	day := time.Date(2026, 5, 1, 0, 0, 0, 0, time.Local)

	addEntry(t, db, model.FundMonthly, model.DrCrCredit, 10, day)
	addEntry(t, db, model.FundAdmission, model.DrCrCredit, 20, day)
	addEntry(t, db, model.FundDonation, model.DrCrCredit, 30, day)
	addEntry(t, db, model.FundDanaCommittee, model.DrCrCredit, 40, day)
	addEntry(t, db, model.FundUtility, model.DrCrDebit, 5, day)
	addEntry(t, db, model.FundMaintenance, model.DrCrDebit, 7, day)

	stmt, err := ProfitLoss(db, day, day)
	require.NoError(t, err)
	require.Equal(t, 100, stmt.TotalIncome)
	require.Equal(t, 12, stmt.TotalExpenses)
	require.Len(t, stmt.IncomeByFund, 4)
	require.Len(t, stmt.ExpenseByFund, 2)
}

func TestSummarizeMonth(t *testing.T) {
	db := newTestDB(t)

	inMonth := time.Date(2026, 4, 10, 0, 0, 0, 0, time.Local)
	outOfMonth := time.Date(2026, 5, 2, 0, 0, 0, 0, time.Local)

	addEntry(t, db, model.FundMonthly, model.DrCrCredit, 100, inMonth)
	addEntry(t, db, model.FundDonation, model.DrCrCredit, 50, inMonth)
	addEntry(t, db, model.FundMonthly, model.DrCrCredit, 999, outOfMonth)
	// DR tidak ikut "collected"
	addEntry(t, db, model.FundUtility, model.DrCrDebit, 30, inMonth)

	// dua invoice unpaid sebagai piutang
	for _, amount := range []int{70, 80} {
		require.NoError(t, db.Create(&billingModel.MonthlyInvoiceModel{
			MonthlyInvoiceStudentID: uuid.New(),
			MonthlyInvoiceMonth:     4,
			MonthlyInvoiceYear:      2026,
			MonthlyInvoiceAmountIDR: amount,
			MonthlyInvoiceStatus:    billingModel.InvoiceStatusUnpaid,
			MonthlyInvoiceDueDate:   inMonth,
			MonthlyInvoiceIssuedAt:  inMonth,
		}).Error)
	}

	summary, err := SummarizeMonth(db, 4, 2026)
	require.NoError(t, err)
	require.Equal(t, 150, summary.CollectedTotal)
	require.Len(t, summary.CollectedByFund, 2)
	require.Equal(t, 150, summary.OutstandingIDR)
	require.EqualValues(t, 2, summary.PendingInvoices)
}

func TestRecordExpense(t *testing.T) {
	db := newTestDB(t)
	day := time.Date(2026, 6, 1, 0, 0, 0, 0, time.Local)

	note := "tagihan listrik"
	entry, err := RecordExpense(db, model.FundUtility, 250, day, &note, nil)
	require.NoError(t, err)
	require.Equal(t, model.DrCrDebit, entry.LedgerTransactionDrCr)
	require.Equal(t, 250, entry.LedgerTransactionAmountIDR)

	// fund income / tidak dikenal ditolak
	_, err = RecordExpense(db, model.FundMonthly, 100, day, nil, nil)
	require.ErrorIs(t, err, ErrUnknownExpenseFund)
	_, err = RecordExpense(db, "bensin", 100, day, nil, nil)
	require.ErrorIs(t, err, ErrUnknownExpenseFund)
}
