package routes

import (
	notificationController "medstaff_backend/internals/features/notifications/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func NotificationUserRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := notificationController.NewNotificationController(db)

	app.Get("/notifications/mine", ctrl.GetMine)
	app.Patch("/notifications/:id/read", ctrl.MarkRead)
}

func NotificationAdminRoutes(app fiber.Router, db *gorm.DB) {
	ctrl := notificationController.NewNotificationController(db)

	app.Post("/notifications/broadcast", ctrl.Broadcast)
}
