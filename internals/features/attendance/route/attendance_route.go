package routes

import (
	attendanceController "medstaff_backend/internals/features/attendance/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AttendanceUserRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := attendanceController.NewAttendanceController(db)

	app.Post("/attendance/check-in", ctrl.CheckIn)
	app.Post("/attendance/check-out", ctrl.CheckOut)
	app.Get("/attendance/mine", ctrl.GetMine)
}

func AttendanceAdminRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := attendanceController.NewAttendanceController(db)

	app.Get("/attendance", ctrl.GetAll)
}
