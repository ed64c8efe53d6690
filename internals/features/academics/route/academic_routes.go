package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicCtl "madrasahku_backend/internals/features/academics/controller"
)

// Semua route akademik khusus admin: struktur kelas, data santri, fee plan.
func AcademicAdminRoutes(r fiber.Router, db *gorm.DB) {
	academic_ctl := academicCtl.NewAcademicController(db)
	student_ctl := academicCtl.NewStudentController(db)
	plan_ctl := academicCtl.NewFeePlanController(db)

	courses := r.Group("/courses")
	courses.Post("/", academic_ctl.CreateCourse)
	courses.Get("/", academic_ctl.ListCourses)
	courses.Put("/:id", academic_ctl.UpdateCourse)

	departments := r.Group("/departments")
	departments.Post("/", academic_ctl.CreateDepartment)
	departments.Get("/", academic_ctl.ListDepartments)
	departments.Put("/:id", academic_ctl.UpdateDepartment)

	batches := r.Group("/batches")
	batches.Post("/", academic_ctl.CreateBatch)
	batches.Get("/", academic_ctl.ListBatches)
	batches.Put("/:id", academic_ctl.UpdateBatch)

	students := r.Group("/students")
	students.Get("/", student_ctl.List)
	students.Get("/:id", student_ctl.GetByID)
	students.Post("/", student_ctl.Create)
	students.Put("/:id", student_ctl.Update)
	students.Delete("/:id", student_ctl.Delete)
	students.Post("/:id/transfer", student_ctl.Transfer)

	plans := r.Group("/fee-plans")
	plans.Post("/", plan_ctl.CreatePlan)
	plans.Get("/", plan_ctl.ListPlans)
	plans.Post("/assign", plan_ctl.AssignPlan)
	plans.Get("/preview/:student_id", plan_ctl.PreviewFee)
}
