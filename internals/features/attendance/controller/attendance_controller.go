package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"medstaff_backend/internals/features/attendance/service"
	helper "medstaff_backend/internals/helpers"
)

type AttendanceController struct {
	DB *gorm.DB
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	return &AttendanceController{DB: db}
}

// POST /api/u/attendance/check-in
func (ac *AttendanceController) CheckIn(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	record, err := service.CheckIn(ac.DB, userID, time.Now().UTC())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Checked in", record)
}

// POST /api/u/attendance/check-out
func (ac *AttendanceController) CheckOut(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	record, err := service.CheckOut(ac.DB, userID, time.Now().UTC())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.Success(c, "Checked out", record)
}

// GET /api/u/attendance/mine?month=2025-07
func (ac *AttendanceController) GetMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	month := time.Now().UTC()
	if m := c.Query("month"); m != "" {
		parsed, err := time.Parse("2006-01", m)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid month, expected YYYY-MM")
		}
		month = parsed
	}

	records, err := service.ListForUser(ac.DB, userID, month)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.Success(c, "Attendance fetched", fiber.Map{
		"total":   len(records),
		"records": records,
	})
}

// GET /api/a/attendance?userId=&from=&to=
func (ac *AttendanceController) GetAll(c *fiber.Ctx) error {
	var userID *uuid.UUID
	if raw := c.Query("userId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid userId")
		}
		userID = &parsed
	}

	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid from date")
		}
		from = &parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid to date")
		}
		to = &parsed
	}

	records, err := service.ListAll(ac.DB, userID, from, to)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.Success(c, "Attendance fetched", fiber.Map{
		"total":   len(records),
		"records": records,
	})
}
