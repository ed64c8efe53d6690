package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "madrasahku_backend/internals/features/academics/dto"
	model "madrasahku_backend/internals/features/academics/model"
	auditService "madrasahku_backend/internals/features/audit/service"
	helper "madrasahku_backend/internals/helpers"
)

var validate = validator.New()

type StudentController struct {
	DB *gorm.DB
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db}
}

/* ======================= LIST ======================= */
// GET /api/a/students
func (h *StudentController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Model(&model.StudentModel{})
	if search := c.Query("search"); search != "" {
		q = q.Where("student_name ILIKE ?", "%"+search+"%")
	}
	if dep := c.Query("department_id"); dep != "" {
		depID, err := uuid.Parse(dep)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "department_id tidak valid")
		}
		q = q.Where("student_department_id = ?", depID)
	}
	if c.Query("active") == "true" {
		q = q.Where("student_is_active = TRUE")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung santri")
	}

	order := helper.SafeOrderClause(c, map[string]string{
		"created_at": "student_created_at",
		"name":       "student_name",
	}, "created_at")

	var students []model.StudentModel
	if err := q.Order(order).Offset(p.Offset).Limit(p.Limit).Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data santri")
	}

	return helper.JsonList(c, students, helper.BuildPagination(total, p))
}

/* ======================= GET BY ID ======================= */
// GET /api/a/students/:id
func (h *StudentController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID santri tidak valid")
	}

	var student model.StudentModel
	if err := h.DB.First(&student, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Santri tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data santri")
	}

	return helper.Success(c, "OK", student)
}

/* ======================= CREATE ======================= */
// POST /api/a/students
func (h *StudentController) Create(c *fiber.Ctx) error {
	var req dto.StudentCreateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	student := req.ToModel()
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&student).Error; err != nil {
			return err
		}
		// kalau batch sudah diketahui saat pendaftaran, langsung enroll
		if req.StudentBatchID != nil && *req.StudentBatchID != uuid.Nil {
			enrollment := model.EnrollmentModel{
				EnrollmentStudentID: student.StudentID,
				EnrollmentBatchID:   *req.StudentBatchID,
				EnrollmentIsActive:  true,
			}
			return tx.Create(&enrollment).Error
		}
		return nil
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat santri")
	}

	auditService.Record(h.DB, helper.ActorIDOrNil(c), "student.create", "student", &student.StudentID, fiber.Map{
		"student_name": student.StudentName,
	})

	return helper.JsonCreated(c, "Santri berhasil dibuat", student)
}

/* ======================= UPDATE ======================= */
// PUT /api/a/students/:id
func (h *StudentController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID santri tidak valid")
	}

	var req dto.StudentUpdateDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var student model.StudentModel
	if err := h.DB.First(&student, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Santri tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data santri")
	}

	if req.StudentName != nil {
		student.StudentName = *req.StudentName
	}
	if req.StudentGuardian != nil {
		student.StudentGuardian = req.StudentGuardian
	}
	if req.StudentPhone != nil {
		student.StudentPhone = req.StudentPhone
	}
	if req.StudentEmail != nil {
		student.StudentEmail = req.StudentEmail
	}
	if req.StudentResidency != nil {
		student.StudentResidency = model.StudentResidency(*req.StudentResidency)
	}
	if req.StudentMode != nil {
		student.StudentMode = model.StudentMode(*req.StudentMode)
	}
	if req.StudentFeeTier != nil {
		student.StudentFeeTier = model.StudentFeeTier(*req.StudentFeeTier)
	}
	if req.StudentDepartmentID != nil {
		student.StudentDepartmentID = req.StudentDepartmentID
	}
	if req.StudentIsActive != nil {
		student.StudentIsActive = *req.StudentIsActive
	}

	if err := h.DB.Save(&student).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui santri")
	}

	return helper.Success(c, "Santri berhasil diperbarui", student)
}

/* ======================= DELETE ======================= */
// DELETE /api/a/students/:id (soft delete)
func (h *StudentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID santri tidak valid")
	}

	res := h.DB.Delete(&model.StudentModel{}, "student_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus santri")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Santri tidak ditemukan")
	}

	auditService.Record(h.DB, helper.ActorIDOrNil(c), "student.delete", "student", &id, nil)

	return helper.Success(c, "Santri berhasil dihapus", nil)
}

/* ======================= TRANSFER ======================= */
// POST /api/a/students/:id/transfer
// Pindah batch: enrollment lama ditutup, enrollment baru dibuat.
// Invoice yang sudah terbit tetap memakai snapshot tarif lama.
func (h *StudentController) Transfer(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID santri tidak valid")
	}

	var req dto.StudentTransferDTO
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var student model.StudentModel
	if err := h.DB.First(&student, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Santri tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data santri")
	}

	var batch model.BatchModel
	if err := h.DB.First(&batch, "batch_id = ?", req.TargetBatchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Batch tujuan tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data batch")
	}

	var enrollment model.EnrollmentModel
	now := time.Now()
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.EnrollmentModel{}).
			Where("enrollment_student_id = ? AND enrollment_is_active = TRUE", id).
			Updates(map[string]interface{}{
				"enrollment_is_active": false,
				"enrollment_left_at":   now,
			}).Error; err != nil {
			return err
		}

		enrollment = model.EnrollmentModel{
			EnrollmentStudentID: id,
			EnrollmentBatchID:   batch.BatchID,
			EnrollmentIsActive:  true,
		}
		if err := tx.Create(&enrollment).Error; err != nil {
			return err
		}

		// sinkronkan department santri dengan batch baru
		return tx.Model(&model.StudentModel{}).
			Where("student_id = ?", id).
			Update("student_department_id", batch.BatchDepartmentID).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memindahkan santri")
	}

	auditService.Record(h.DB, helper.ActorIDOrNil(c), "student.transfer", "student", &id, fiber.Map{
		"target_batch_id": batch.BatchID,
	})

	return helper.Success(c, "Santri berhasil dipindahkan", enrollment)
}
