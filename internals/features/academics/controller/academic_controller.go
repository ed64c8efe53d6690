package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "madrasahku_backend/internals/features/academics/dto"
	model "madrasahku_backend/internals/features/academics/model"
	helper "madrasahku_backend/internals/helpers"
)

// AcademicController mengelola struktur kelas 3 tingkat:
// course → department → batch. Kolom tarif yang dikosongkan di satu tingkat
// otomatis jatuh ke tingkat di atasnya saat resolve tarif.
type AcademicController struct {
	DB *gorm.DB
}

func NewAcademicController(db *gorm.DB) *AcademicController {
	return &AcademicController{DB: db}
}

/* ======================= COURSE ======================= */

// POST /api/a/courses
func (h *AcademicController) CreateCourse(c *fiber.Ctx) error {
	var req dto.CourseCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	course := model.CourseModel{
		CourseName:     req.CourseName,
		CourseNote:     req.CourseNote,
		CourseFees:     req.CourseFees,
		CourseIsActive: true,
	}
	if err := h.DB.Create(&course).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat course")
	}
	return helper.JsonCreated(c, "Course berhasil dibuat", course)
}

// GET /api/a/courses
func (h *AcademicController) ListCourses(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Model(&model.CourseModel{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung course")
	}

	var courses []model.CourseModel
	if err := q.Order("course_created_at DESC").Offset(p.Offset).Limit(p.Limit).Find(&courses).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data course")
	}
	return helper.JsonList(c, courses, helper.BuildPagination(total, p))
}

// PUT /api/a/courses/:id
func (h *AcademicController) UpdateCourse(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID course tidak valid")
	}

	var req dto.CourseUpdateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var course model.CourseModel
	if err := h.DB.First(&course, "course_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data course")
	}

	if req.CourseName != nil {
		course.CourseName = *req.CourseName
	}
	if req.CourseNote != nil {
		course.CourseNote = req.CourseNote
	}
	if req.CourseFees != nil {
		course.CourseFees = *req.CourseFees
	}
	if req.IsActive != nil {
		course.CourseIsActive = *req.IsActive
	}
	if err := h.DB.Save(&course).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui course")
	}
	return helper.Success(c, "Course berhasil diperbarui", course)
}

/* ======================= DEPARTMENT ======================= */

// POST /api/a/departments
func (h *AcademicController) CreateDepartment(c *fiber.Ctx) error {
	var req dto.DepartmentCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var course model.CourseModel
	if err := h.DB.First(&course, "course_id = ?", req.DepartmentCourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course induk tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data course")
	}

	department := model.DepartmentModel{
		DepartmentCourseID: req.DepartmentCourseID,
		DepartmentName:     req.DepartmentName,
		DepartmentNote:     req.DepartmentNote,
		DepartmentFees:     req.DepartmentFees,
		DepartmentIsActive: true,
	}
	if err := h.DB.Create(&department).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat department")
	}
	return helper.JsonCreated(c, "Department berhasil dibuat", department)
}

// GET /api/a/departments
func (h *AcademicController) ListDepartments(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Model(&model.DepartmentModel{})
	if courseID := c.Query("course_id"); courseID != "" {
		id, err := uuid.Parse(courseID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "course_id tidak valid")
		}
		q = q.Where("department_course_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung department")
	}

	var departments []model.DepartmentModel
	if err := q.Order("department_created_at DESC").Offset(p.Offset).Limit(p.Limit).Find(&departments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data department")
	}
	return helper.JsonList(c, departments, helper.BuildPagination(total, p))
}

// PUT /api/a/departments/:id
func (h *AcademicController) UpdateDepartment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID department tidak valid")
	}

	var req dto.DepartmentUpdateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var department model.DepartmentModel
	if err := h.DB.First(&department, "department_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Department tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data department")
	}

	if req.DepartmentName != nil {
		department.DepartmentName = *req.DepartmentName
	}
	if req.DepartmentNote != nil {
		department.DepartmentNote = req.DepartmentNote
	}
	if req.DepartmentFees != nil {
		department.DepartmentFees = *req.DepartmentFees
	}
	if req.IsActive != nil {
		department.DepartmentIsActive = *req.IsActive
	}
	if err := h.DB.Save(&department).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui department")
	}
	return helper.Success(c, "Department berhasil diperbarui", department)
}

/* ======================= BATCH ======================= */

// POST /api/a/batches
func (h *AcademicController) CreateBatch(c *fiber.Ctx) error {
	var req dto.BatchCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var department model.DepartmentModel
	if err := h.DB.First(&department, "department_id = ?", req.BatchDepartmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Department induk tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data department")
	}

	batch := model.BatchModel{
		BatchDepartmentID: req.BatchDepartmentID,
		BatchName:         req.BatchName,
		BatchYear:         req.BatchYear,
		BatchFees:         req.BatchFees,
		BatchIsActive:     true,
	}
	if err := h.DB.Create(&batch).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat batch")
	}
	return helper.JsonCreated(c, "Batch berhasil dibuat", batch)
}

// GET /api/a/batches
func (h *AcademicController) ListBatches(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Model(&model.BatchModel{})
	if depID := c.Query("department_id"); depID != "" {
		id, err := uuid.Parse(depID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "department_id tidak valid")
		}
		q = q.Where("batch_department_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung batch")
	}

	var batches []model.BatchModel
	if err := q.Order("batch_created_at DESC").Offset(p.Offset).Limit(p.Limit).Find(&batches).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data batch")
	}
	return helper.JsonList(c, batches, helper.BuildPagination(total, p))
}

// PUT /api/a/batches/:id
func (h *AcademicController) UpdateBatch(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID batch tidak valid")
	}

	var req dto.BatchUpdateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var batch model.BatchModel
	if err := h.DB.First(&batch, "batch_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Batch tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data batch")
	}

	if req.BatchName != nil {
		batch.BatchName = *req.BatchName
	}
	if req.BatchYear != nil {
		batch.BatchYear = req.BatchYear
	}
	if req.BatchFees != nil {
		batch.BatchFees = *req.BatchFees
	}
	if req.IsActive != nil {
		batch.BatchIsActive = *req.IsActive
	}
	if err := h.DB.Save(&batch).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui batch")
	}
	return helper.Success(c, "Batch berhasil diperbarui", batch)
}
