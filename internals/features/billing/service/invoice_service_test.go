package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	academicModel "madrasahku_backend/internals/features/academics/model"
	model "madrasahku_backend/internals/features/billing/model"
	financeModel "madrasahku_backend/internals/features/finance/model"
)

func intp(v int) *int { return &v }

// fakeGateway merekam pemanggilan dan bisa dipaksa gagal.
type fakeGateway struct {
	calls   int
	lastID  string
	failErr error
}

func (g *fakeGateway) CreateTransaction(orderID string, amountIDR int, itemName string, cust CustomerInput) (string, error) {
	g.calls++
	g.lastID = orderID
	if g.failErr != nil {
		return "", g.failErr
	}
	return "https://snap.example/" + orderID, nil
}

type BillingServiceSuite struct {
	suite.Suite
	db *gorm.DB
}

func (s *BillingServiceSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	s.Require().NoError(err)

	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	s.Require().NoError(db.AutoMigrate(
		&academicModel.CourseModel{},
		&academicModel.DepartmentModel{},
		&academicModel.BatchModel{},
		&academicModel.StudentModel{},
		&academicModel.EnrollmentModel{},
		&academicModel.FeePlanModel{},
		&academicModel.FeePlanHistoryModel{},
		&model.MonthlyInvoiceModel{},
		&model.PaymentModel{},
		&financeModel.LedgerTransactionModel{},
	))
	s.db = db
}

// newStudent menanam rantai course→department→batch dengan tarif bulanan dan
// admission di batch, plus santri aktif yang ter-enroll.
func (s *BillingServiceSuite) newStudent(monthly, admission int) academicModel.StudentModel {
	course := academicModel.CourseModel{CourseName: "Tahfidz", CourseIsActive: true}
	s.Require().NoError(s.db.Create(&course).Error)

	dept := academicModel.DepartmentModel{
		DepartmentCourseID: course.CourseID,
		DepartmentName:     "Putra",
		DepartmentIsActive: true,
	}
	s.Require().NoError(s.db.Create(&dept).Error)

	batch := academicModel.BatchModel{
		BatchDepartmentID: dept.DepartmentID,
		BatchName:         "Angkatan 1",
		BatchFees: academicModel.FeeFields{
			MonthlyFee:   intp(monthly),
			AdmissionFee: intp(admission),
		},
		BatchIsActive: true,
	}
	s.Require().NoError(s.db.Create(&batch).Error)

	student := academicModel.StudentModel{
		StudentName:      "Ahmad",
		StudentResidency: academicModel.ResidencyLocal,
		StudentMode:      academicModel.ModeOnline,
		StudentFeeTier:   academicModel.FeeTierGeneral,
		StudentIsActive:  true,
	}
	s.Require().NoError(s.db.Create(&student).Error)

	enr := academicModel.EnrollmentModel{
		EnrollmentStudentID: student.StudentID,
		EnrollmentBatchID:   batch.BatchID,
		EnrollmentIsActive:  true,
	}
	s.Require().NoError(s.db.Create(&enr).Error)

	return student
}

func (s *BillingServiceSuite) ledgerEntries(fund string) []financeModel.LedgerTransactionModel {
	var entries []financeModel.LedgerTransactionModel
	s.Require().NoError(s.db.Where("ledger_transaction_fund = ?", fund).Find(&entries).Error)
	return entries
}

/* ======================= Find or create ======================= */

func (s *BillingServiceSuite) TestFindOrCreateInvoice_Idempotent() {
	student := s.newStudent(100, 500)

	inv1, created, err := FindOrCreateInvoice(s.db, student.StudentID, 9, 2026)
	s.Require().NoError(err)
	s.True(created)
	s.Equal(100, inv1.MonthlyInvoiceAmountIDR)
	s.Equal(model.InvoiceStatusUnpaid, inv1.MonthlyInvoiceStatus)
	s.Equal(10, inv1.MonthlyInvoiceDueDate.Day())

	inv2, created, err := FindOrCreateInvoice(s.db, student.StudentID, 9, 2026)
	s.Require().NoError(err)
	s.False(created)
	s.Equal(inv1.MonthlyInvoiceID, inv2.MonthlyInvoiceID)

	var count int64
	s.Require().NoError(s.db.Model(&model.MonthlyInvoiceModel{}).Count(&count).Error)
	s.EqualValues(1, count)
}

func (s *BillingServiceSuite) TestFindOrCreateInvoice_SnapshotImmutable() {
	student := s.newStudent(100, 500)

	inv, _, err := FindOrCreateInvoice(s.db, student.StudentID, 9, 2026)
	s.Require().NoError(err)
	s.Equal(100, inv.MonthlyInvoiceAmountIDR)

	// tarif batch naik SETELAH invoice terbit
	s.Require().NoError(s.db.Model(&academicModel.BatchModel{}).
		Where("1=1").Update("batch_monthly_fee", 175).Error)

	// periode lama: snapshot tidak berubah
	again, created, err := FindOrCreateInvoice(s.db, student.StudentID, 9, 2026)
	s.Require().NoError(err)
	s.False(created)
	s.Equal(100, again.MonthlyInvoiceAmountIDR)

	// periode baru: pakai tarif baru
	next, created, err := FindOrCreateInvoice(s.db, student.StudentID, 10, 2026)
	s.Require().NoError(err)
	s.True(created)
	s.Equal(175, next.MonthlyInvoiceAmountIDR)
}

func (s *BillingServiceSuite) TestFindOrCreateInvoice_AdmissionMonthZero() {
	student := s.newStudent(100, 500)

	inv, created, err := FindOrCreateInvoice(s.db, student.StudentID, 0, 2026)
	s.Require().NoError(err)
	s.True(created)
	s.True(inv.IsAdmission())
	s.Equal(500, inv.MonthlyInvoiceAmountIDR)
	// admission jatuh tempo tanggal 10 di bulan penerbitan
	s.Equal(10, inv.MonthlyInvoiceDueDate.Day())
}

func (s *BillingServiceSuite) TestFindOrCreateInvoice_InvalidPeriod() {
	student := s.newStudent(100, 500)

	_, _, err := FindOrCreateInvoice(s.db, student.StudentID, 13, 2026)
	s.ErrorIs(err, ErrInvalidPeriod)

	_, _, err = FindOrCreateInvoice(s.db, student.StudentID, -1, 2026)
	s.ErrorIs(err, ErrInvalidPeriod)

	_, _, err = FindOrCreateInvoice(s.db, student.StudentID, 1, 1999)
	s.ErrorIs(err, ErrInvalidPeriod)
}

/* ======================= Mark paid ======================= */

func (s *BillingServiceSuite) TestMarkInvoicePaid_ExactlyOnce() {
	student := s.newStudent(100, 500)
	inv, _, err := FindOrCreateInvoice(s.db, student.StudentID, 9, 2026)
	s.Require().NoError(err)

	paid, paidNow, err := MarkInvoicePaid(s.db, nil, inv.MonthlyInvoiceID, PaymentContext{Method: model.PaymentMethodCash})
	s.Require().NoError(err)
	s.True(paidNow)
	s.Equal(model.InvoiceStatusPaid, paid.MonthlyInvoiceStatus)
	s.NotNil(paid.MonthlyInvoicePaidAt)
	firstPaidAt := *paid.MonthlyInvoicePaidAt

	// pelunasan ganda: no-op, bukan error
	again, paidNow, err := MarkInvoicePaid(s.db, nil, inv.MonthlyInvoiceID, PaymentContext{Method: model.PaymentMethodCash})
	s.Require().NoError(err)
	s.False(paidNow)
	s.Equal(firstPaidAt.Unix(), again.MonthlyInvoicePaidAt.Unix())

	// tepat SATU entri ledger CR di fund monthly
	entries := s.ledgerEntries(financeModel.FundMonthly)
	s.Require().Len(entries, 1)
	s.Equal(financeModel.DrCrCredit, entries[0].LedgerTransactionDrCr)
	s.Equal(100, entries[0].LedgerTransactionAmountIDR)
	s.Require().NotNil(entries[0].LedgerTransactionReferenceID)
	s.Equal(inv.MonthlyInvoiceID, *entries[0].LedgerTransactionReferenceID)
}

func (s *BillingServiceSuite) TestMarkInvoicePaid_AdmissionGoesToAdmissionFund() {
	student := s.newStudent(100, 500)
	inv, _, err := FindOrCreateInvoice(s.db, student.StudentID, 0, 2026)
	s.Require().NoError(err)

	_, paidNow, err := MarkInvoicePaid(s.db, nil, inv.MonthlyInvoiceID, PaymentContext{Method: model.PaymentMethodCash})
	s.Require().NoError(err)
	s.True(paidNow)

	s.Len(s.ledgerEntries(financeModel.FundAdmission), 1)
	s.Empty(s.ledgerEntries(financeModel.FundMonthly))
}

func (s *BillingServiceSuite) TestMarkInvoicePaid_NotFound() {
	_, _, err := MarkInvoicePaid(s.db, nil, uuid.New(), PaymentContext{Method: model.PaymentMethodCash})
	s.ErrorIs(err, ErrInvoiceNotFound)
}

/* ======================= Checkout ======================= */

func (s *BillingServiceSuite) TestInitiatePayment_MultiInvoice() {
	student := s.newStudent(100, 500)
	inv1, _, err := FindOrCreateInvoice(s.db, student.StudentID, 9, 2026)
	s.Require().NoError(err)
	inv2, _, err := FindOrCreateInvoice(s.db, student.StudentID, 10, 2026)
	s.Require().NoError(err)

	gw := &fakeGateway{}
	payment, redirectURL, err := InitiatePayment(s.db, gw, []uuid.UUID{inv1.MonthlyInvoiceID, inv2.MonthlyInvoiceID}, nil)
	s.Require().NoError(err)
	s.Equal(1, gw.calls)
	s.Equal(200, payment.PaymentAmountIDR)
	s.Equal(model.PaymentStatusInitiated, payment.PaymentStatus)
	s.Contains(redirectURL, payment.PaymentOrderID)
	s.ElementsMatch([]uuid.UUID{inv1.MonthlyInvoiceID, inv2.MonthlyInvoiceID}, payment.InvoiceIDList())
}

func (s *BillingServiceSuite) TestInitiatePayment_DropsPaidInvoices() {
	student := s.newStudent(100, 500)
	inv1, _, err := FindOrCreateInvoice(s.db, student.StudentID, 9, 2026)
	s.Require().NoError(err)
	inv2, _, err := FindOrCreateInvoice(s.db, student.StudentID, 10, 2026)
	s.Require().NoError(err)

	_, _, err = MarkInvoicePaid(s.db, nil, inv1.MonthlyInvoiceID, PaymentContext{Method: model.PaymentMethodCash})
	s.Require().NoError(err)

	payment, _, err := InitiatePayment(s.db, &fakeGateway{}, []uuid.UUID{inv1.MonthlyInvoiceID, inv2.MonthlyInvoiceID}, nil)
	s.Require().NoError(err)
	s.Equal(100, payment.PaymentAmountIDR)
	s.Equal([]uuid.UUID{inv2.MonthlyInvoiceID}, payment.InvoiceIDList())
}

func (s *BillingServiceSuite) TestInitiatePayment_Errors() {
	studentA := s.newStudent(100, 500)
	studentB := s.newStudent(100, 500)

	invA, _, err := FindOrCreateInvoice(s.db, studentA.StudentID, 9, 2026)
	s.Require().NoError(err)
	invB, _, err := FindOrCreateInvoice(s.db, studentB.StudentID, 9, 2026)
	s.Require().NoError(err)

	_, _, err = InitiatePayment(s.db, &fakeGateway{}, nil, nil)
	s.ErrorIs(err, ErrEmptySelection)

	_, _, err = InitiatePayment(s.db, &fakeGateway{}, []uuid.UUID{invA.MonthlyInvoiceID, invB.MonthlyInvoiceID}, nil)
	s.ErrorIs(err, ErrMixedStudents)

	_, _, err = InitiatePayment(s.db, &fakeGateway{}, []uuid.UUID{uuid.New()}, nil)
	s.ErrorIs(err, ErrInvoiceSelection)

	_, _, err = MarkInvoicePaid(s.db, nil, invA.MonthlyInvoiceID, PaymentContext{Method: model.PaymentMethodCash})
	s.Require().NoError(err)
	_, _, err = InitiatePayment(s.db, &fakeGateway{}, []uuid.UUID{invA.MonthlyInvoiceID}, nil)
	s.ErrorIs(err, ErrNothingToPay)
}

func (s *BillingServiceSuite) TestInitiatePayment_RejectsForeignInvoices() {
	studentA := s.newStudent(100, 500)
	studentB := s.newStudent(100, 500)

	invB, _, err := FindOrCreateInvoice(s.db, studentB.StudentID, 9, 2026)
	s.Require().NoError(err)

	// santri A mencoba checkout invoice milik santri B
	_, _, err = InitiatePayment(s.db, &fakeGateway{}, []uuid.UUID{invB.MonthlyInvoiceID}, &studentA.StudentID)
	s.ErrorIs(err, ErrNotInvoiceOwner)

	// tidak ada baris payment yang tercipta
	var count int64
	s.Require().NoError(s.db.Model(&model.PaymentModel{}).Count(&count).Error)
	s.Zero(count)

	// pemiliknya sendiri tetap bisa
	_, _, err = InitiatePayment(s.db, &fakeGateway{}, []uuid.UUID{invB.MonthlyInvoiceID}, &studentB.StudentID)
	s.NoError(err)
}

func (s *BillingServiceSuite) TestInitiatePayment_GatewayFailureMarksFailed() {
	student := s.newStudent(100, 500)
	inv, _, err := FindOrCreateInvoice(s.db, student.StudentID, 9, 2026)
	s.Require().NoError(err)

	gw := &fakeGateway{failErr: errors.New("snap down")}
	_, _, err = InitiatePayment(s.db, gw, []uuid.UUID{inv.MonthlyInvoiceID}, nil)
	s.ErrorIs(err, ErrGatewayInitiate)

	var payment model.PaymentModel
	s.Require().NoError(s.db.First(&payment).Error)
	s.Equal(model.PaymentStatusFailed, payment.PaymentStatus)

	// invoice tetap unpaid, tidak ada entri ledger
	var invAfter model.MonthlyInvoiceModel
	s.Require().NoError(s.db.First(&invAfter, "monthly_invoice_id = ?", inv.MonthlyInvoiceID).Error)
	s.Equal(model.InvoiceStatusUnpaid, invAfter.MonthlyInvoiceStatus)
	s.Empty(s.ledgerEntries(financeModel.FundMonthly))
}

/* ======================= Webhook ======================= */

func (s *BillingServiceSuite) TestHandlePaymentWebhook_SettlementIsIdempotent() {
	student := s.newStudent(100, 500)
	inv1, _, err := FindOrCreateInvoice(s.db, student.StudentID, 9, 2026)
	s.Require().NoError(err)
	inv2, _, err := FindOrCreateInvoice(s.db, student.StudentID, 10, 2026)
	s.Require().NoError(err)

	payment, _, err := InitiatePayment(s.db, &fakeGateway{}, []uuid.UUID{inv1.MonthlyInvoiceID, inv2.MonthlyInvoiceID}, nil)
	s.Require().NoError(err)

	body := map[string]interface{}{
		"order_id":           payment.PaymentOrderID,
		"transaction_status": "settlement",
	}
	s.Require().NoError(HandlePaymentWebhook(s.db, nil, body))
	// Midtrans mengirim ulang notifikasi yang sama
	s.Require().NoError(HandlePaymentWebhook(s.db, nil, body))

	var paidCount int64
	s.Require().NoError(s.db.Model(&model.MonthlyInvoiceModel{}).
		Where("monthly_invoice_status = ?", model.InvoiceStatusPaid).
		Count(&paidCount).Error)
	s.EqualValues(2, paidCount)

	// dua invoice ⇒ tepat dua entri ledger, meski webhook datang dua kali
	s.Len(s.ledgerEntries(financeModel.FundMonthly), 2)

	var after model.PaymentModel
	s.Require().NoError(s.db.First(&after, "payment_id = ?", payment.PaymentID).Error)
	s.Equal(model.PaymentStatusPaid, after.PaymentStatus)
	s.NotNil(after.PaymentPaidAt)
}

func (s *BillingServiceSuite) TestHandlePaymentWebhook_ExpireDoesNotTouchPaid() {
	student := s.newStudent(100, 500)
	inv, _, err := FindOrCreateInvoice(s.db, student.StudentID, 9, 2026)
	s.Require().NoError(err)

	payment, _, err := InitiatePayment(s.db, &fakeGateway{}, []uuid.UUID{inv.MonthlyInvoiceID}, nil)
	s.Require().NoError(err)

	settle := map[string]interface{}{
		"order_id":           payment.PaymentOrderID,
		"transaction_status": "settlement",
	}
	s.Require().NoError(HandlePaymentWebhook(s.db, nil, settle))

	// expire yang datang terlambat tidak menurunkan status paid
	expire := map[string]interface{}{
		"order_id":           payment.PaymentOrderID,
		"transaction_status": "expire",
	}
	s.Require().NoError(HandlePaymentWebhook(s.db, nil, expire))

	var after model.PaymentModel
	s.Require().NoError(s.db.First(&after, "payment_id = ?", payment.PaymentID).Error)
	s.Equal(model.PaymentStatusPaid, after.PaymentStatus)
}

func (s *BillingServiceSuite) TestHandlePaymentWebhook_UnknownOrder() {
	body := map[string]interface{}{
		"order_id":           "tidak-ada",
		"transaction_status": "settlement",
	}
	err := HandlePaymentWebhook(s.db, nil, body)
	s.ErrorIs(err, ErrPaymentNotFound)
}

func TestBillingServiceSuite(t *testing.T) {
	suite.Run(t, new(BillingServiceSuite))
}

func TestJoinInvoiceIDs_RoundTrip(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	p := model.PaymentModel{PaymentInvoiceIDs: model.JoinInvoiceIDs(ids)}
	require.Equal(t, ids, p.InvoiceIDList())
}
