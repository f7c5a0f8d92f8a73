package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"medstaff_backend/internals/middlewares/logger"
)

// SetupMiddlewares wires the base middleware chain (order matters).
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
