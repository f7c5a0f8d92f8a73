// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"medstaff_backend/internals/constants"
	attendanceRoutes "medstaff_backend/internals/features/attendance/route"
	notificationRoutes "medstaff_backend/internals/features/notifications/route"
	reportRoutes "medstaff_backend/internals/features/reports/route"
	shiftRoutes "medstaff_backend/internals/features/shifts/route"
	authRoutes "medstaff_backend/internals/features/users/auth/route"
	userRoutes "medstaff_backend/internals/features/users/user/route"
	vacationRoutes "medstaff_backend/internals/features/vacations/route"
	authMiddleware "medstaff_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== PUBLIC: AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoutes.AuthRoutes(app, db)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u", authMiddleware.AuthMiddleware(db))
	userRoutes.UserUserRoutes(user, db)
	vacationRoutes.VacationUserRoutes(user, db)
	shiftRoutes.ShiftUserRoutes(user, db)
	attendanceRoutes.AttendanceUserRoutes(user, db)
	notificationRoutes.NotificationUserRoutes(user, db)

	// ===================== ADMIN (HR) =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("administration"), constants.RoleAdmin),
	)
	userRoutes.UserAdminRoutes(admin, db)
	vacationRoutes.VacationAdminRoutes(admin, db)
	shiftRoutes.ShiftAdminRoutes(admin, db)
	attendanceRoutes.AttendanceAdminRoutes(admin, db)
	notificationRoutes.NotificationAdminRoutes(admin, db)
	reportRoutes.ReportAdminRoutes(admin, db)
}
