package routes

import (
	userController "medstaff_backend/internals/features/users/user/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserUserRoutes — self-scoped routes (JWT)
func UserUserRoutes(app fiber.Router, db *gorm.DB) {
	selfCtrl := userController.NewUserSelfController(db)

	app.Get("/users/me", selfCtrl.GetMe)
	app.Patch("/users/me/push-token", selfCtrl.SavePushToken)
	app.Post("/users/me/image", selfCtrl.UploadImage)
}

// UserAdminRoutes — HR account management (admin)
func UserAdminRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserController(db)

	app.Get("/users", ctrl.GetUsers)
	app.Patch("/users/:id/accept", ctrl.AcceptUser)
	app.Patch("/users/:id", ctrl.UpdateUser)
	app.Delete("/users/:id", ctrl.DeleteUser)
}
