package routes

import (
	"medstaff_backend/internals/constants"
	vacationController "medstaff_backend/internals/features/vacations/controller"
	authMiddleware "medstaff_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// VacationUserRoutes — requester / replacement / manager surface (JWT)
func VacationUserRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := vacationController.NewVacationController(db)

	app.Get("/vacations/replacements", ctrl.GetEligibleReplacements)
	app.Post("/vacations", ctrl.Create)
	app.Get("/vacations/mine", ctrl.GetMine)
	app.Get("/vacations/replacement-requests", ctrl.GetReplacementRequests)
	app.Patch("/vacations/seen-all", ctrl.MarkAllSeen)
	app.Patch("/vacations/:id/respond", ctrl.Respond)
	app.Patch("/vacations/:id/seen", ctrl.MarkSeen)

	manager := authMiddleware.OnlyRoles(
		constants.RoleErrorManager("vacation approvals"),
		constants.RoleManager, constants.RoleAdmin,
	)
	app.Get("/vacations/manager", manager, ctrl.GetForManager)
	app.Patch("/vacations/:id/manager-respond", manager, ctrl.ManagerRespond)
}

// VacationAdminRoutes — HR final sign-off (admin group)
func VacationAdminRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := vacationController.NewVacationController(db)

	app.Get("/vacations", ctrl.GetAll)
	app.Patch("/vacations/:id/admin-respond", ctrl.AdminRespond)
}
