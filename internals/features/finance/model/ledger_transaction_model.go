package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===================== Fund types ===================== */
// Closed set — laporan laba/rugi mempartisi berdasarkan keanggotaan fund,
// jadi jangan menambah fund tanpa memasukkannya ke salah satu set di bawah.

const (
	FundMonthly       = "monthly"
	FundAdmission     = "admission"
	FundDonation      = "donation"
	FundDanaCommittee = "dana_committee"

	FundTeacherSalary = "teacher_salary"
	FundUtility       = "utility"
	FundMaintenance   = "maintenance"
	FundOtherExpense  = "other_expense"
)

var IncomeFunds = []string{FundMonthly, FundAdmission, FundDonation, FundDanaCommittee}

var ExpenseFunds = []string{FundTeacherSalary, FundUtility, FundMaintenance, FundOtherExpense}

const (
	DrCrDebit  = "DR"
	DrCrCredit = "CR"
)

// LedgerTransaction append-only: tidak pernah di-update atau dihapus; koreksi
// dicatat sebagai entri pembalik baru.
type LedgerTransactionModel struct {
	LedgerTransactionID uuid.UUID `gorm:"column:ledger_transaction_id;type:uuid;primaryKey" json:"ledger_transaction_id"`

	LedgerTransactionFund string `gorm:"column:ledger_transaction_fund;type:varchar(30);not null;index:ix_ledger_fund" json:"ledger_transaction_fund"`
	LedgerTransactionDrCr string `gorm:"column:ledger_transaction_dr_cr;type:varchar(2);not null" json:"ledger_transaction_dr_cr"`

	LedgerTransactionAmountIDR int       `gorm:"column:ledger_transaction_amount_idr;not null;check:ledger_transaction_amount_idr >= 0" json:"ledger_transaction_amount_idr"`
	LedgerTransactionDate      time.Time `gorm:"column:ledger_transaction_date;type:date;not null;index:ix_ledger_date" json:"ledger_transaction_date"`

	// referensi balik ke invoice / donation / teacher payment asal
	LedgerTransactionReferenceID *uuid.UUID `gorm:"column:ledger_transaction_reference_id;type:uuid;index" json:"ledger_transaction_reference_id,omitempty"`
	LedgerTransactionNote        *string    `gorm:"column:ledger_transaction_note;type:text" json:"ledger_transaction_note,omitempty"`

	LedgerTransactionCreatedAt time.Time `gorm:"column:ledger_transaction_created_at;autoCreateTime" json:"ledger_transaction_created_at"`
}

func (LedgerTransactionModel) TableName() string { return "ledger_transactions" }

func (m *LedgerTransactionModel) BeforeCreate(tx *gorm.DB) error {
	if m.LedgerTransactionID == uuid.Nil {
		m.LedgerTransactionID = uuid.New()
	}
	return nil
}
