package service

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	academicModel "madrasahku_backend/internals/features/academics/model"
)

// StartMonthlyInvoiceScheduler membuat invoice bulan berjalan untuk semua
// santri aktif. Aman dijalankan berulang: FindOrCreateInvoice idempoten lewat
// unique index (student, month, year).
func StartMonthlyInvoiceScheduler(db *gorm.DB) {
	go func() {
		intervalHours := 24
		if val := os.Getenv("MONTHLY_BILLING_INTERVAL_HOURS"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
				intervalHours = parsed
			}
		}

		for {
			RunMonthlyBilling(db, time.Now())
			time.Sleep(time.Duration(intervalHours) * time.Hour)
		}
	}()
}

func RunMonthlyBilling(db *gorm.DB, now time.Time) {
	log.Printf("[BILLING] Menjalankan billing bulanan %02d/%d...", int(now.Month()), now.Year())

	var students []academicModel.StudentModel
	if err := db.Where("student_is_active = ?", true).Find(&students).Error; err != nil {
		log.Printf("[BILLING ERROR] Gagal ambil santri aktif: %v", err)
		return
	}

	created := 0
	for _, s := range students {
		_, isNew, err := FindOrCreateInvoice(db, s.StudentID, int(now.Month()), now.Year())
		if err != nil {
			log.Printf("[BILLING ERROR] Santri %s: %v", s.StudentID, err)
			continue
		}
		if isNew {
			created++
		}
	}
	log.Printf("[BILLING] Selesai: %d invoice baru dari %d santri aktif", created, len(students))
}
