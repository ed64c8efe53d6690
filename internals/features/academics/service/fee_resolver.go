package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "madrasahku_backend/internals/features/academics/model"
)

var ErrStudentNotFound = errors.New("student tidak ditemukan")

type FeeKind string

const (
	FeeKindMonthly   FeeKind = "monthly"
	FeeKindAdmission FeeKind = "admission"
)

// FeeContext: flag santri yang menentukan kolom tarif mana yang dibaca.
type FeeContext struct {
	Probashi bool // residency = probashi
	Offline  bool // mode = offline
	Sadka    bool // fee tier = sadka (diskon)
}

func FeeContextFor(s model.StudentModel) FeeContext {
	return FeeContext{
		Probashi: s.StudentResidency == model.ResidencyProbashi,
		Offline:  s.StudentMode == model.ModeOffline,
		Sadka:    s.StudentFeeTier == model.FeeTierSadka,
	}
}

// tierAware: varian sadka dipakai kalau tier sadka DAN variannya terisi;
// kalau tidak, kolom standar di titik yang sama.
func tierAware(standard, sadka *int, useSadka bool) *int {
	if useSadka && sadka != nil {
		return sadka
	}
	return standard
}

// pickFromLevel memilih satu kolom tarif di satu level hierarki.
// Prioritas: kolom residency (probashi) → kolom mode (offline) → kolom generik.
// Nil berarti level ini tidak menentukan tarif dan fallback lanjut ke level
// berikutnya.
func pickFromLevel(f model.FeeFields, kind FeeKind, fc FeeContext) *int {
	type candidate struct {
		standard *int
		sadka    *int
		enabled  bool
	}

	var candidates []candidate
	switch kind {
	case FeeKindAdmission:
		candidates = []candidate{
			{f.AdmissionFeeProbashi, f.AdmissionFeeProbashiSadka, fc.Probashi},
			{f.AdmissionFeeOffline, f.AdmissionFeeOfflineSadka, fc.Offline},
			{f.AdmissionFee, f.AdmissionFeeSadka, true},
		}
	default:
		candidates = []candidate{
			{f.MonthlyFeeProbashi, f.MonthlyFeeProbashiSadka, fc.Probashi},
			{f.MonthlyFeeOffline, f.MonthlyFeeOfflineSadka, fc.Offline},
			{f.MonthlyFee, f.MonthlyFeeSadka, true},
		}
	}

	for _, cand := range candidates {
		if !cand.enabled {
			continue
		}
		if v := tierAware(cand.standard, cand.sadka, fc.Sadka); v != nil {
			return v
		}
	}
	return nil
}

// ResolveFromChain jalan dari level terendah (batch) ke tertinggi (course);
// nilai pertama yang ketemu menang. Semua level kosong ⇒ 0, bukan error —
// admin boleh sengaja menggratiskan.
func ResolveFromChain(levels []model.FeeFields, kind FeeKind, fc FeeContext) int {
	for _, lvl := range levels {
		if v := pickFromLevel(lvl, kind, fc); v != nil {
			return *v
		}
	}
	return 0
}

type ResolvedFee struct {
	Amount int
	PlanID *uuid.UUID
}

// ResolveMonthlyFee menghitung tarif bulanan seorang santri.
// 1) Custom plan aktif (entri plan-history terbaru) menang mutlak.
// 2) Kalau tidak ada, fallback batch enrollment aktif → department → course.
func ResolveMonthlyFee(db *gorm.DB, studentID uuid.UUID) (ResolvedFee, error) {
	student, err := loadStudent(db, studentID)
	if err != nil {
		return ResolvedFee{}, err
	}

	// 1) custom plan
	var hist model.FeePlanHistoryModel
	err = db.Where("fee_plan_history_student_id = ?", studentID).
		Order("fee_plan_history_created_at DESC").
		First(&hist).Error
	if err == nil && hist.FeePlanHistoryPlanID != nil {
		var plan model.FeePlanModel
		err := db.First(&plan, "fee_plan_id = ?", *hist.FeePlanHistoryPlanID).Error
		switch {
		case err == nil:
			return ResolvedFee{Amount: plan.FeePlanMonthlyFee, PlanID: &plan.FeePlanID}, nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			// plan sudah dihapus; assignment dianggap dangling, lanjut ke chain
		default:
			return ResolvedFee{}, err
		}
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return ResolvedFee{}, err
	}

	// 2) fallback chain
	levels, err := loadFeeChain(db, student)
	if err != nil {
		return ResolvedFee{}, err
	}
	amount := ResolveFromChain(levels, FeeKindMonthly, FeeContextFor(student))
	return ResolvedFee{Amount: amount}, nil
}

// ResolveAdmissionFee: walk tiga level yang sama, independen dari tarif bulanan.
// Custom plan tidak berlaku untuk admission.
func ResolveAdmissionFee(db *gorm.DB, studentID uuid.UUID) (ResolvedFee, error) {
	student, err := loadStudent(db, studentID)
	if err != nil {
		return ResolvedFee{}, err
	}
	levels, err := loadFeeChain(db, student)
	if err != nil {
		return ResolvedFee{}, err
	}
	amount := ResolveFromChain(levels, FeeKindAdmission, FeeContextFor(student))
	return ResolvedFee{Amount: amount}, nil
}

func loadStudent(db *gorm.DB, studentID uuid.UUID) (model.StudentModel, error) {
	var student model.StudentModel
	if err := db.First(&student, "student_id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return student, ErrStudentNotFound
		}
		return student, err
	}
	return student, nil
}

// loadFeeChain menyusun daftar level fallback untuk seorang santri:
// batch (dari enrollment aktif terbaru) → department batch tsb → course-nya.
// Santri tanpa enrollment jatuh ke department yang tercatat di profilnya.
func loadFeeChain(db *gorm.DB, student model.StudentModel) ([]model.FeeFields, error) {
	var levels []model.FeeFields

	var departmentID *uuid.UUID

	var enr model.EnrollmentModel
	err := db.Where("enrollment_student_id = ? AND enrollment_is_active = ?", student.StudentID, true).
		Order("enrollment_joined_at DESC").
		First(&enr).Error
	switch {
	case err == nil:
		var batch model.BatchModel
		if err := db.First(&batch, "batch_id = ?", enr.EnrollmentBatchID).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		} else {
			levels = append(levels, batch.BatchFees)
			departmentID = &batch.BatchDepartmentID
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		departmentID = student.StudentDepartmentID
	default:
		return nil, err
	}

	if departmentID != nil {
		var dept model.DepartmentModel
		if err := db.First(&dept, "department_id = ?", *departmentID).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		} else {
			levels = append(levels, dept.DepartmentFees)

			var course model.CourseModel
			if err := db.First(&course, "course_id = ?", dept.DepartmentCourseID).Error; err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, err
				}
			} else {
				levels = append(levels, course.CourseFees)
			}
		}
	}

	return levels, nil
}
