package service

import (
	"time"

	model "madrasahku_backend/internals/features/billing/model"
)

func (s *BillingServiceSuite) TestRunMonthlyBilling() {
	active := s.newStudent(100, 500)
	inactive := s.newStudent(100, 500)
	s.Require().NoError(s.db.Model(&inactive).
		Update("student_is_active", false).Error)

	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.Local)
	RunMonthlyBilling(s.db, now)

	var invoices []model.MonthlyInvoiceModel
	s.Require().NoError(s.db.Find(&invoices).Error)
	s.Require().Len(invoices, 1)
	s.Equal(active.StudentID, invoices[0].MonthlyInvoiceStudentID)
	s.EqualValues(9, invoices[0].MonthlyInvoiceMonth)
	s.EqualValues(2026, invoices[0].MonthlyInvoiceYear)

	// run kedua di bulan yang sama: tidak ada invoice ganda
	RunMonthlyBilling(s.db, now)
	var count int64
	s.Require().NoError(s.db.Model(&model.MonthlyInvoiceModel{}).Count(&count).Error)
	s.EqualValues(1, count)
}
