package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	model "madrasahku_backend/internals/features/academics/model"
)

func intp(v int) *int { return &v }

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
		&model.CourseModel{},
		&model.DepartmentModel{},
		&model.BatchModel{},
		&model.StudentModel{},
		&model.EnrollmentModel{},
		&model.FeePlanModel{},
		&model.FeePlanHistoryModel{},
	))
	return db
}

func TestResolveFromChain(t *testing.T) {
	tests := []struct {
		name   string
		levels []model.FeeFields
		kind   FeeKind
		fc     FeeContext
		want   int
	}{
		{
			name: "level terendah menang",
			levels: []model.FeeFields{
				{MonthlyFee: intp(100)},
				{MonthlyFee: intp(200)},
				{MonthlyFee: intp(300)},
			},
			kind: FeeKindMonthly,
			want: 100,
		},
		{
			name: "batch kosong jatuh ke department",
			levels: []model.FeeFields{
				{},
				{MonthlyFee: intp(200)},
				{MonthlyFee: intp(300)},
			},
			kind: FeeKindMonthly,
			want: 200,
		},
		{
			name: "hanya course terisi",
			levels: []model.FeeFields{
				{},
				{},
				{MonthlyFee: intp(300)},
			},
			kind: FeeKindMonthly,
			want: 300,
		},
		{
			name:   "semua kosong berarti gratis",
			levels: []model.FeeFields{{}, {}, {}},
			kind:   FeeKindMonthly,
			want:   0,
		},
		{
			name: "probashi diprioritaskan di atas offline",
			levels: []model.FeeFields{
				{MonthlyFee: intp(100), MonthlyFeeProbashi: intp(150), MonthlyFeeOffline: intp(120)},
			},
			kind: FeeKindMonthly,
			fc:   FeeContext{Probashi: true, Offline: true},
			want: 150,
		},
		{
			name: "offline dipakai kalau probashi tidak berlaku",
			levels: []model.FeeFields{
				{MonthlyFee: intp(100), MonthlyFeeOffline: intp(120)},
			},
			kind: FeeKindMonthly,
			fc:   FeeContext{Offline: true},
			want: 120,
		},
		{
			name: "kolom probashi kosong jatuh ke generik di level yang sama",
			levels: []model.FeeFields{
				{MonthlyFee: intp(100)},
				{MonthlyFeeProbashi: intp(999)},
			},
			kind: FeeKindMonthly,
			fc:   FeeContext{Probashi: true},
			want: 100,
		},
		{
			name: "tier sadka memakai varian sadka",
			levels: []model.FeeFields{
				{MonthlyFee: intp(100), MonthlyFeeSadka: intp(50)},
			},
			kind: FeeKindMonthly,
			fc:   FeeContext{Sadka: true},
			want: 50,
		},
		{
			name: "varian sadka kosong jatuh ke kolom standar di titik yang sama",
			levels: []model.FeeFields{
				{MonthlyFee: intp(100)},
			},
			kind: FeeKindMonthly,
			fc:   FeeContext{Sadka: true},
			want: 100,
		},
		{
			name: "probashi sadka",
			levels: []model.FeeFields{
				{MonthlyFeeProbashi: intp(150), MonthlyFeeProbashiSadka: intp(75)},
			},
			kind: FeeKindMonthly,
			fc:   FeeContext{Probashi: true, Sadka: true},
			want: 75,
		},
		{
			name: "admission jalan independen dari monthly",
			levels: []model.FeeFields{
				{MonthlyFee: intp(100)},
				{AdmissionFee: intp(500)},
			},
			kind: FeeKindAdmission,
			want: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveFromChain(tt.levels, tt.kind, tt.fc)
			require.Equal(t, tt.want, got)
		})
	}
}

// buildChain menanam course→department→batch + santri ter-enroll di batch.
func buildChain(t *testing.T, db *gorm.DB, batchFees, deptFees, courseFees model.FeeFields) (model.StudentModel, model.BatchModel) {
	t.Helper()

	course := model.CourseModel{CourseName: "Tahfidz", CourseFees: courseFees, CourseIsActive: true}
	require.NoError(t, db.Create(&course).Error)

	dept := model.DepartmentModel{
		DepartmentCourseID: course.CourseID,
		DepartmentName:     "Putra",
		DepartmentFees:     deptFees,
		DepartmentIsActive: true,
	}
	require.NoError(t, db.Create(&dept).Error)

	batch := model.BatchModel{
		BatchDepartmentID: dept.DepartmentID,
		BatchName:         "Angkatan 1",
		BatchFees:         batchFees,
		BatchIsActive:     true,
	}
	require.NoError(t, db.Create(&batch).Error)

	student := model.StudentModel{
		StudentName:      "Ahmad",
		StudentResidency: model.ResidencyLocal,
		StudentMode:      model.ModeOnline,
		StudentFeeTier:   model.FeeTierGeneral,
		StudentIsActive:  true,
	}
	require.NoError(t, db.Create(&student).Error)

	enr := model.EnrollmentModel{
		EnrollmentStudentID: student.StudentID,
		EnrollmentBatchID:   batch.BatchID,
		EnrollmentIsActive:  true,
	}
	require.NoError(t, db.Create(&enr).Error)

	return student, batch
}

func TestResolveMonthlyFee_FallbackChain(t *testing.T) {
	db := newTestDB(t)
	student, _ := buildChain(t, db,
		model.FeeFields{},
		model.FeeFields{MonthlyFee: intp(200)},
		model.FeeFields{MonthlyFee: intp(300)},
	)

	resolved, err := ResolveMonthlyFee(db, student.StudentID)
	require.NoError(t, err)
	require.Equal(t, 200, resolved.Amount)
	require.Nil(t, resolved.PlanID)
}

func TestResolveMonthlyFee_PlanOverride(t *testing.T) {
	db := newTestDB(t)
	student, _ := buildChain(t, db,
		model.FeeFields{MonthlyFee: intp(100)},
		model.FeeFields{},
		model.FeeFields{},
	)

	plan := model.FeePlanModel{FeePlanName: "Beasiswa 50%", FeePlanMonthlyFee: 50}
	require.NoError(t, db.Create(&plan).Error)

	base := time.Now().Add(-time.Hour)
	require.NoError(t, db.Create(&model.FeePlanHistoryModel{
		FeePlanHistoryStudentID: student.StudentID,
		FeePlanHistoryPlanID:    &plan.FeePlanID,
		FeePlanHistoryCreatedAt: base,
	}).Error)

	resolved, err := ResolveMonthlyFee(db, student.StudentID)
	require.NoError(t, err)
	require.Equal(t, 50, resolved.Amount)
	require.NotNil(t, resolved.PlanID)
	require.Equal(t, plan.FeePlanID, *resolved.PlanID)

	// entri terbaru dengan plan nil = cabut; balik ke fallback chain
	require.NoError(t, db.Create(&model.FeePlanHistoryModel{
		FeePlanHistoryStudentID: student.StudentID,
		FeePlanHistoryPlanID:    nil,
		FeePlanHistoryCreatedAt: base.Add(time.Minute),
	}).Error)

	resolved, err = ResolveMonthlyFee(db, student.StudentID)
	require.NoError(t, err)
	require.Equal(t, 100, resolved.Amount)
	require.Nil(t, resolved.PlanID)
}

func TestResolveMonthlyFee_DanglingPlanFallsToChain(t *testing.T) {
	db := newTestDB(t)
	student, _ := buildChain(t, db,
		model.FeeFields{MonthlyFee: intp(100)},
		model.FeeFields{},
		model.FeeFields{},
	)

	// history menunjuk plan yang barisnya sudah tidak ada
	missingPlanID := uuid.New()
	require.NoError(t, db.Create(&model.FeePlanHistoryModel{
		FeePlanHistoryStudentID: student.StudentID,
		FeePlanHistoryPlanID:    &missingPlanID,
		FeePlanHistoryCreatedAt: time.Now().Add(-time.Hour),
	}).Error)

	resolved, err := ResolveMonthlyFee(db, student.StudentID)
	require.NoError(t, err)
	require.Equal(t, 100, resolved.Amount)
	require.Nil(t, resolved.PlanID)
}

func TestResolveMonthlyFee_PlanFetchFailurePropagates(t *testing.T) {
	db := newTestDB(t)
	student, _ := buildChain(t, db,
		model.FeeFields{MonthlyFee: intp(100)},
		model.FeeFields{},
		model.FeeFields{},
	)

	plan := model.FeePlanModel{FeePlanName: "Beasiswa 50%", FeePlanMonthlyFee: 50}
	require.NoError(t, db.Create(&plan).Error)
	require.NoError(t, db.Create(&model.FeePlanHistoryModel{
		FeePlanHistoryStudentID: student.StudentID,
		FeePlanHistoryPlanID:    &plan.FeePlanID,
		FeePlanHistoryCreatedAt: time.Now().Add(-time.Hour),
	}).Error)

	// error SQL sungguhan (bukan record-not-found) tidak boleh ditelan:
	// jatuh diam-diam ke chain berarti snapshot invoice memakai tarif salah
	require.NoError(t, db.Migrator().DropTable(&model.FeePlanModel{}))

	_, err := ResolveMonthlyFee(db, student.StudentID)
	require.Error(t, err)
	require.NotErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestResolveMonthlyFee_NoEnrollmentUsesStudentDepartment(t *testing.T) {
	db := newTestDB(t)

	course := model.CourseModel{CourseName: "Kitab", CourseFees: model.FeeFields{MonthlyFee: intp(300)}, CourseIsActive: true}
	require.NoError(t, db.Create(&course).Error)
	dept := model.DepartmentModel{
		DepartmentCourseID: course.CourseID,
		DepartmentName:     "Putri",
		DepartmentIsActive: true,
	}
	require.NoError(t, db.Create(&dept).Error)

	student := model.StudentModel{
		StudentName:         "Fatimah",
		StudentResidency:    model.ResidencyLocal,
		StudentMode:         model.ModeOnline,
		StudentFeeTier:      model.FeeTierGeneral,
		StudentDepartmentID: &dept.DepartmentID,
		StudentIsActive:     true,
	}
	require.NoError(t, db.Create(&student).Error)

	resolved, err := ResolveMonthlyFee(db, student.StudentID)
	require.NoError(t, err)
	require.Equal(t, 300, resolved.Amount)
}

func TestResolveAdmissionFee(t *testing.T) {
	db := newTestDB(t)
	student, _ := buildChain(t, db,
		model.FeeFields{},
		model.FeeFields{AdmissionFee: intp(500)},
		model.FeeFields{AdmissionFee: intp(900)},
	)

	resolved, err := ResolveAdmissionFee(db, student.StudentID)
	require.NoError(t, err)
	require.Equal(t, 500, resolved.Amount)
}

func TestResolveMonthlyFee_StudentNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := ResolveMonthlyFee(db, uuid.New())
	require.ErrorIs(t, err, ErrStudentNotFound)
}
