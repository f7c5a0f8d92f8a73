package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"medstaff_backend/internals/features/vacations/dto"
	"medstaff_backend/internals/features/vacations/service"
	helper "medstaff_backend/internals/helpers"
)

type VacationController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewVacationController(db *gorm.DB) *VacationController {
	return &VacationController{DB: db, Validate: validator.New()}
}

// GET /api/u/vacations/replacements?startDate&endDate
func (vc *VacationController) GetEligibleReplacements(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	startStr := c.Query("startDate")
	endStr := c.Query("endDate")
	if startStr == "" || endStr == "" {
		return helper.Error(c, fiber.StatusBadRequest, "startDate and endDate are required")
	}
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid startDate")
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid endDate")
	}

	candidates, err := service.ListEligibleReplacements(vc.DB, userID, start, end)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.Success(c, "Eligible replacements fetched", fiber.Map{
		"total":      len(candidates),
		"candidates": candidates,
	})
}

// POST /api/u/vacations
func (vc *VacationController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	var req dto.CreateVacationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := vc.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	start, end, err := req.Dates()
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid dates")
	}
	replacementID, err := uuid.Parse(req.ReplacementUserID)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid replacementUserId")
	}

	request, err := service.Create(vc.DB, userID, start, end, replacementID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Vacation request created", request)
}

// GET /api/u/vacations/mine
func (vc *VacationController) GetMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	requests, unseen, err := service.ListMine(vc.DB, userID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.Success(c, "Vacation requests fetched", fiber.Map{
		"requests":     requests,
		"unseen_count": unseen,
	})
}

// GET /api/u/vacations/replacement-requests
func (vc *VacationController) GetReplacementRequests(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	requests, err := service.ListForReplacement(vc.DB, userID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.Success(c, "Replacement requests fetched", fiber.Map{
		"total":    len(requests),
		"requests": requests,
	})
}

// PATCH /api/u/vacations/:id/respond — replacement accepts or declines
func (vc *VacationController) Respond(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	vacationID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid vacation id")
	}

	var req dto.ReplacementRespondRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := vc.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	request, err := service.RespondReplacement(vc.DB, vacationID, userID, *req.Accept)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.Success(c, "Response recorded", request)
}

// GET /api/u/vacations/manager?status=
func (vc *VacationController) GetForManager(c *fiber.Ctx) error {
	region := helper.GetUserRegion(c)
	if region == "" {
		return helper.Error(c, fiber.StatusForbidden, "You have no region assigned")
	}

	requests, err := service.ListForManager(vc.DB, region, c.Query("status"))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.Success(c, "Region requests fetched", fiber.Map{
		"total":    len(requests),
		"requests": requests,
	})
}

// PATCH /api/u/vacations/:id/manager-respond
func (vc *VacationController) ManagerRespond(c *fiber.Ctx) error {
	managerID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	region := helper.GetUserRegion(c)
	vacationID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid vacation id")
	}

	var req dto.ManagerRespondRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := vc.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	request, err := service.ManagerRespond(vc.DB, vacationID, managerID, region, *req.Approve, req.Comment)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.Success(c, "Decision recorded", request)
}

// GET /api/a/vacations?status=&region=
func (vc *VacationController) GetAll(c *fiber.Ctx) error {
	requests, err := service.ListAll(vc.DB, c.Query("status"), c.Query("region"))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.Success(c, "Vacation requests fetched", fiber.Map{
		"total":    len(requests),
		"requests": requests,
	})
}

// PATCH /api/a/vacations/:id/admin-respond
func (vc *VacationController) AdminRespond(c *fiber.Ctx) error {
	adminID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	vacationID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid vacation id")
	}

	var req dto.AdminRespondRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := vc.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	request, err := service.AdminRespond(vc.DB, vacationID, adminID, req.Status, req.AdminComment)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.Success(c, "Decision recorded", request)
}

// PATCH /api/u/vacations/:id/seen
func (vc *VacationController) MarkSeen(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	vacationID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid vacation id")
	}

	if err := service.MarkSeen(vc.DB, vacationID, userID); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.Success(c, "Marked as seen", nil)
}

// PATCH /api/u/vacations/seen-all
func (vc *VacationController) MarkAllSeen(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	if err := service.MarkAllSeen(vc.DB, userID); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.Success(c, "All marked as seen", nil)
}
