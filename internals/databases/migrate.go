package database

import (
	"log"
	"os"

	academicModel "madrasahku_backend/internals/features/academics/model"
	auditModel "madrasahku_backend/internals/features/audit/model"
	billingModel "madrasahku_backend/internals/features/billing/model"
	donationModel "madrasahku_backend/internals/features/donations/model"
	financeModel "madrasahku_backend/internals/features/finance/model"
	payrollModel "madrasahku_backend/internals/features/payroll/model"
	userModel "madrasahku_backend/internals/features/users/model"
)

// MigrateAll menjalankan AutoMigrate seluruh tabel. Diaktifkan lewat
// DB_AUTO_MIGRATE=true; di production skema dikelola lewat migration tool.
func MigrateAll() {
	if os.Getenv("DB_AUTO_MIGRATE") != "true" {
		return
	}

	log.Println("🔧 AutoMigrate skema...")
	err := DB.AutoMigrate(
		&userModel.UserModel{},
		&academicModel.CourseModel{},
		&academicModel.DepartmentModel{},
		&academicModel.BatchModel{},
		&academicModel.StudentModel{},
		&academicModel.EnrollmentModel{},
		&academicModel.FeePlanModel{},
		&academicModel.FeePlanHistoryModel{},
		&billingModel.MonthlyInvoiceModel{},
		&billingModel.PaymentModel{},
		&financeModel.LedgerTransactionModel{},
		&payrollModel.TeacherPaymentModel{},
		&donationModel.DonorModel{},
		&donationModel.DonationModel{},
		&auditModel.AuditLogModel{},
	)
	if err != nil {
		log.Fatalf("❌ AutoMigrate gagal: %v", err)
	}
	log.Println("✅ AutoMigrate selesai.")
}
