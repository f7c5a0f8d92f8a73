package routes

import (
	authController "medstaff_backend/internals/features/users/auth/controller"
	middlewares "medstaff_backend/internals/middlewares"
	authMiddleware "medstaff_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	public := app.Group("/api/auth")
	public.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	public.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	public.Post("/login-mobile", middlewares.LoginRateLimiter(), ctrl.LoginMobile)

	private := app.Group("/api/auth", authMiddleware.AuthMiddleware(db))
	private.Post("/logout", ctrl.Logout)
	private.Patch("/change-password", ctrl.ChangePassword)
}
