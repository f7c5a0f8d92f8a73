package routes

import (
	reportController "medstaff_backend/internals/features/reports/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ReportAdminRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := reportController.NewReportController(db)

	app.Get("/reports/attendance.xlsx", ctrl.AttendanceExcel)
	app.Get("/reports/vacations.pdf", ctrl.VacationsPDF)
}
