package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	billingModel "madrasahku_backend/internals/features/billing/model"
	model "madrasahku_backend/internals/features/finance/model"
)

var ErrUnknownExpenseFund = errors.New("fund pengeluaran tidak dikenal")

/* =========================================================
   Monthly summary
========================================================= */

type FundTotal struct {
	Fund  string `json:"fund" gorm:"column:fund"`
	Total int    `json:"total" gorm:"column:total"`
}

type MonthlySummary struct {
	Month            int         `json:"month"`
	Year             int         `json:"year"`
	CollectedByFund  []FundTotal `json:"collected_by_fund"`
	OutstandingIDR   int         `json:"outstanding_idr"`
	PendingInvoices  int64       `json:"pending_invoices"`
	CollectedTotal   int         `json:"collected_total"`
}

// SummarizeMonth: penerimaan (CR) per fund di bulan berjalan + piutang invoice
// unpaid. Tanpa cache — selalu dihitung segar dari ledger dan invoice.
func SummarizeMonth(db *gorm.DB, month, year int) (MonthlySummary, error) {
	out := MonthlySummary{Month: month, Year: year}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)

	if err := db.Model(&model.LedgerTransactionModel{}).
		Select("ledger_transaction_fund AS fund, COALESCE(SUM(ledger_transaction_amount_idr),0) AS total").
		Where("ledger_transaction_dr_cr = ?", model.DrCrCredit).
		Where("ledger_transaction_date >= ? AND ledger_transaction_date < ?", start, end).
		Group("ledger_transaction_fund").
		Scan(&out.CollectedByFund).Error; err != nil {
		return out, err
	}
	for _, ft := range out.CollectedByFund {
		out.CollectedTotal += ft.Total
	}

	var outstanding struct {
		Total int   `gorm:"column:total"`
		Count int64 `gorm:"column:cnt"`
	}
	if err := db.Model(&billingModel.MonthlyInvoiceModel{}).
		Select("COALESCE(SUM(monthly_invoice_amount_idr),0) AS total, COUNT(*) AS cnt").
		Where("monthly_invoice_status = ?", billingModel.InvoiceStatusUnpaid).
		Scan(&outstanding).Error; err != nil {
		return out, err
	}
	out.OutstandingIDR = outstanding.Total
	out.PendingInvoices = outstanding.Count

	return out, nil
}

/* =========================================================
   Profit / loss
========================================================= */

type ProfitLossStatement struct {
	StartDate     time.Time   `json:"start_date"`
	EndDate       time.Time   `json:"end_date"`
	IncomeByFund  []FundTotal `json:"income_by_fund"`
	ExpenseByFund []FundTotal `json:"expense_by_fund"`
	TotalIncome   int         `json:"total_income"`
	TotalExpenses int         `json:"total_expenses"`
	NetProfit     int         `json:"net_profit"`
}

// ProfitLoss mempartisi entri ledger dalam rentang tanggal berdasarkan
// keanggotaan fund (set income vs expense tetap, tidak configurable).
// Rentang kosong ⇒ total nol, bukan error.
func ProfitLoss(db *gorm.DB, startDate, endDate time.Time) (ProfitLossStatement, error) {
	out := ProfitLossStatement{StartDate: startDate, EndDate: endDate}

	sumByFunds := func(funds []string, dest *[]FundTotal) error {
		return db.Model(&model.LedgerTransactionModel{}).
			Select("ledger_transaction_fund AS fund, COALESCE(SUM(ledger_transaction_amount_idr),0) AS total").
			Where("ledger_transaction_fund IN ?", funds).
			Where("ledger_transaction_date >= ? AND ledger_transaction_date <= ?", startDate, endDate).
			Group("ledger_transaction_fund").
			Scan(dest).Error
	}

	if err := sumByFunds(model.IncomeFunds, &out.IncomeByFund); err != nil {
		return out, err
	}
	if err := sumByFunds(model.ExpenseFunds, &out.ExpenseByFund); err != nil {
		return out, err
	}

	for _, ft := range out.IncomeByFund {
		out.TotalIncome += ft.Total
	}
	for _, ft := range out.ExpenseByFund {
		out.TotalExpenses += ft.Total
	}
	out.NetProfit = out.TotalIncome - out.TotalExpenses

	return out, nil
}

/* =========================================================
   Manual expense entry
========================================================= */

// RecordExpense mencatat pengeluaran manual (listrik, perawatan, dll) sebagai
// entri DR append-only.
func RecordExpense(db *gorm.DB, fund string, amountIDR int, date time.Time, note *string, referenceID *uuid.UUID) (*model.LedgerTransactionModel, error) {
	valid := false
	for _, f := range model.ExpenseFunds {
		if f == fund {
			valid = true
			break
		}
	}
	if !valid {
		return nil, ErrUnknownExpenseFund
	}

	entry := model.LedgerTransactionModel{
		LedgerTransactionFund:        fund,
		LedgerTransactionDrCr:        model.DrCrDebit,
		LedgerTransactionAmountIDR:   amountIDR,
		LedgerTransactionDate:        date,
		LedgerTransactionReferenceID: referenceID,
		LedgerTransactionNote:        note,
	}
	if err := db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}
