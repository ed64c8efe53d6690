package seeds

import (
	"log"
	"os"

	"gorm.io/gorm"

	"madrasahku_backend/internals/constants"
	academicModel "madrasahku_backend/internals/features/academics/model"
	userModel "madrasahku_backend/internals/features/users/model"
)

// SeedAll mengisi data awal minimum supaya instance baru langsung bisa
// dipakai: satu akun admin + struktur kelas contoh. Idempoten, aman
// dijalankan berulang.
func SeedAll(db *gorm.DB) {
	seedAdminUser(db)
	seedAcademicStructure(db)
}

func seedAdminUser(db *gorm.DB) {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@madrasah.local"
	}

	admin := userModel.UserModel{
		UserName:     "Admin Madrasah",
		UserEmail:    &email,
		UserRole:     constants.RoleAdmin,
		UserIsActive: true,
	}
	res := db.Where("user_email = ?", email).FirstOrCreate(&admin)
	if res.Error != nil {
		log.Printf("[ERROR] Seed admin gagal: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("[INFO] Seed admin dibuat: %s", email)
	}
}

func seedAcademicStructure(db *gorm.DB) {
	monthly := 150_000
	admission := 500_000

	course := academicModel.CourseModel{
		CourseName: "Tahfidz Reguler",
		CourseFees: academicModel.FeeFields{
			MonthlyFee:   &monthly,
			AdmissionFee: &admission,
		},
		CourseIsActive: true,
	}
	res := db.Where("course_name = ?", course.CourseName).FirstOrCreate(&course)
	if res.Error != nil {
		log.Printf("[ERROR] Seed course gagal: %v", res.Error)
		return
	}

	department := academicModel.DepartmentModel{
		DepartmentCourseID: course.CourseID,
		DepartmentName:     "Putra",
		DepartmentIsActive: true,
	}
	res = db.Where("department_course_id = ? AND department_name = ?", course.CourseID, department.DepartmentName).
		FirstOrCreate(&department)
	if res.Error != nil {
		log.Printf("[ERROR] Seed department gagal: %v", res.Error)
		return
	}

	year := int16(2026)
	batch := academicModel.BatchModel{
		BatchDepartmentID: department.DepartmentID,
		BatchName:         "Angkatan 2026",
		BatchYear:         &year,
		BatchIsActive:     true,
	}
	res = db.Where("batch_department_id = ? AND batch_name = ?", department.DepartmentID, batch.BatchName).
		FirstOrCreate(&batch)
	if res.Error != nil {
		log.Printf("[ERROR] Seed batch gagal: %v", res.Error)
	}
}
