package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"medstaff_backend/internals/features/shifts/dto"
	"medstaff_backend/internals/features/shifts/service"
	helper "medstaff_backend/internals/helpers"
)

type ShiftController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewShiftController(db *gorm.DB) *ShiftController {
	return &ShiftController{DB: db, Validate: validator.New()}
}

// POST /api/u/shift-requests
func (sc *ShiftController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	var req dto.CreateShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := sc.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	request, err := service.Create(sc.DB, userID, req.RequestedShift)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Shift request created", request)
}

// GET /api/u/shift-requests/mine
func (sc *ShiftController) GetMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	requests, err := service.ListMine(sc.DB, userID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.Success(c, "Shift requests fetched", fiber.Map{
		"total":    len(requests),
		"requests": requests,
	})
}

// GET /api/a/shift-requests?status=
func (sc *ShiftController) GetAll(c *fiber.Ctx) error {
	requests, err := service.ListAll(sc.DB, c.Query("status"))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.Success(c, "Shift requests fetched", fiber.Map{
		"total":    len(requests),
		"requests": requests,
	})
}

// PATCH /api/a/shift-requests/:id
func (sc *ShiftController) Respond(c *fiber.Ctx) error {
	approverID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	requestID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request id")
	}

	var req dto.RespondShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := sc.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	request, err := service.Respond(sc.DB, requestID, approverID, req.Status)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.Success(c, "Decision recorded", request)
}
