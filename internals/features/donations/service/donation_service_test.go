package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	billingService "madrasahku_backend/internals/features/billing/service"
	model "madrasahku_backend/internals/features/donations/model"
	financeModel "madrasahku_backend/internals/features/finance/model"
)

type fakeGateway struct {
	calls int
}

func (g *fakeGateway) CreateTransaction(orderID string, amountIDR int, itemName string, cust billingService.CustomerInput) (string, error) {
	g.calls++
	return "https://snap.example/" + orderID, nil
}

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
		&model.DonorModel{},
		&model.DonationModel{},
		&financeModel.LedgerTransactionModel{},
	))
	return db
}

func newDonor(t *testing.T, db *gorm.DB, committee bool) model.DonorModel {
	t.Helper()
	donor := model.DonorModel{
		DonorName:              "H. Abdullah",
		DonorIsCommitteeMember: committee,
	}
	require.NoError(t, db.Create(&donor).Error)
	return donor
}

func ledgerByFund(t *testing.T, db *gorm.DB, fund string) []financeModel.LedgerTransactionModel {
	t.Helper()
	var entries []financeModel.LedgerTransactionModel
	require.NoError(t, db.Where("ledger_transaction_fund = ?", fund).Find(&entries).Error)
	return entries
}

func TestRecordCashDonation_RegularDonorFund(t *testing.T) {
	db := newTestDB(t)
	donor := newDonor(t, db, false)

	donation, err := RecordCashDonation(db, donor.DonorID, 500, nil, nil)
	require.NoError(t, err)
	require.Equal(t, model.DonationStatusPaid, donation.DonationStatus)
	require.Equal(t, model.DonationMethodCash, donation.DonationMethod)
	require.NotNil(t, donation.DonationPaidAt)

	entries := ledgerByFund(t, db, financeModel.FundDonation)
	require.Len(t, entries, 1)
	require.Equal(t, financeModel.DrCrCredit, entries[0].LedgerTransactionDrCr)
	require.Equal(t, 500, entries[0].LedgerTransactionAmountIDR)
	require.Empty(t, ledgerByFund(t, db, financeModel.FundDanaCommittee))
}

func TestRecordCashDonation_CommitteeMemberFund(t *testing.T) {
	db := newTestDB(t)
	donor := newDonor(t, db, true)

	_, err := RecordCashDonation(db, donor.DonorID, 750, nil, nil)
	require.NoError(t, err)

	// donasi pengurus masuk fund dana_committee, bukan donation
	require.Len(t, ledgerByFund(t, db, financeModel.FundDanaCommittee), 1)
	require.Empty(t, ledgerByFund(t, db, financeModel.FundDonation))
}

func TestInitiateDonation_PendingUntilWebhook(t *testing.T) {
	db := newTestDB(t)
	donor := newDonor(t, db, false)

	gw := &fakeGateway{}
	donation, redirectURL, err := InitiateDonation(db, gw, donor.DonorID, 1000, nil)
	require.NoError(t, err)
	require.Equal(t, 1, gw.calls)
	require.Equal(t, model.DonationStatusPending, donation.DonationStatus)
	require.NotNil(t, donation.DonationOrderID)
	require.Contains(t, redirectURL, *donation.DonationOrderID)

	// belum settle: tidak ada entri ledger
	require.Empty(t, ledgerByFund(t, db, financeModel.FundDonation))
}

func TestHandleDonationWebhook_SettlementIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	donor := newDonor(t, db, false)

	donation, _, err := InitiateDonation(db, &fakeGateway{}, donor.DonorID, 1000, nil)
	require.NoError(t, err)

	body := map[string]interface{}{
		"order_id":           *donation.DonationOrderID,
		"transaction_status": "settlement",
	}
	require.NoError(t, HandleDonationWebhook(db, nil, body))
	require.NoError(t, HandleDonationWebhook(db, nil, body))

	var after model.DonationModel
	require.NoError(t, db.First(&after, "donation_id = ?", donation.DonationID).Error)
	require.Equal(t, model.DonationStatusPaid, after.DonationStatus)

	// dua kali webhook, satu entri ledger
	require.Len(t, ledgerByFund(t, db, financeModel.FundDonation), 1)
}

func TestHandleDonationWebhook_ExpireOnlyWhilePending(t *testing.T) {
	db := newTestDB(t)
	donor := newDonor(t, db, false)

	donation, _, err := InitiateDonation(db, &fakeGateway{}, donor.DonorID, 1000, nil)
	require.NoError(t, err)

	settle := map[string]interface{}{
		"order_id":           *donation.DonationOrderID,
		"transaction_status": "settlement",
	}
	require.NoError(t, HandleDonationWebhook(db, nil, settle))

	expire := map[string]interface{}{
		"order_id":           *donation.DonationOrderID,
		"transaction_status": "expire",
	}
	require.NoError(t, HandleDonationWebhook(db, nil, expire))

	var after model.DonationModel
	require.NoError(t, db.First(&after, "donation_id = ?", donation.DonationID).Error)
	require.Equal(t, model.DonationStatusPaid, after.DonationStatus)
}

func TestHandleDonationWebhook_UnknownOrder(t *testing.T) {
	db := newTestDB(t)

	err := HandleDonationWebhook(db, nil, map[string]interface{}{
		"order_id":           "tidak-ada",
		"transaction_status": "settlement",
	})
	require.ErrorIs(t, err, ErrDonationNotFound)
}

func TestInitiateDonation_DonorNotFound(t *testing.T) {
	db := newTestDB(t)

	_, _, err := InitiateDonation(db, &fakeGateway{}, uuid.New(), 100, nil)
	require.ErrorIs(t, err, ErrDonorNotFound)
}
