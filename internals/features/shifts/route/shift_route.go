package routes

import (
	shiftController "medstaff_backend/internals/features/shifts/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ShiftUserRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := shiftController.NewShiftController(db)

	app.Post("/shift-requests", ctrl.Create)
	app.Get("/shift-requests/mine", ctrl.GetMine)
}

func ShiftAdminRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := shiftController.NewShiftController(db)

	app.Get("/shift-requests", ctrl.GetAll)
	app.Patch("/shift-requests/:id", ctrl.Respond)
}
