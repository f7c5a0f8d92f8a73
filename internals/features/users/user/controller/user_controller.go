package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sender "medstaff_backend/internals/features/notifications/sender"
	"medstaff_backend/internals/features/users/user/dto"
	"medstaff_backend/internals/features/users/user/model"
	helper "medstaff_backend/internals/helpers"
	"medstaff_backend/internals/helpers/storage"
)

type UserController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db, Validate: validator.New()}
}

// GET /api/a/users?status=pending|approved
func (uc *UserController) GetUsers(c *fiber.Ctx) error {
	q := uc.DB.Model(&model.UserModel{}).Order("name asc")
	switch c.Query("status") {
	case "pending":
		q = q.Where("status = ?", false)
	case "approved":
		q = q.Where("status = ?", true)
	}
	if region := c.Query("region"); region != "" {
		q = q.Where("region = ?", region)
	}

	var users []model.UserModel
	if err := q.Find(&users).Error; err != nil {
		log.Println("[ERROR] Failed to fetch users:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to retrieve users")
	}

	return helper.Success(c, "Users fetched successfully", fiber.Map{
		"total": len(users),
		"users": users,
	})
}

// PATCH /api/a/users/:id/accept — approve a pending signup, assign placement
func (uc *UserController) AcceptUser(c *fiber.Ctx) error {
	userID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var req dto.AcceptUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := uc.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	contractDate, err := req.ContractDate()
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid contract_start_date")
	}

	updates := map[string]interface{}{
		"status":              true,
		"region":              req.Region,
		"shift":               req.Shift,
		"contract_start_date": contractDate,
	}
	if req.Title != "" {
		updates["title"] = req.Title
	}

	res := uc.DB.Model(&model.UserModel{}).
		Where("id = ? AND status = ?", userID, false).
		Updates(updates)
	if res.Error != nil {
		log.Println("[ERROR] AcceptUser:", res.Error)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to accept user")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "User not found or already accepted")
	}

	var user model.UserModel
	if err := uc.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to reload user")
	}

	sender.Send(uc.DB, user.ID, "Welcome aboard",
		"Your account has been approved. You can now log in from the mobile app.", nil)
	sender.SendMail(user.Email, "Account approved",
		"Your account has been approved. Region: "+req.Region)

	log.Printf("[SUCCESS] User %s accepted (region=%s shift=%d)\n", user.Name, req.Region, req.Shift)
	return helper.Success(c, "User accepted", user)
}

// PATCH /api/a/users/:id
func (uc *UserController) UpdateUser(c *fiber.Ctx) error {
	userID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := uc.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.Region != nil {
		updates["region"] = *req.Region
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Shift != nil {
		updates["shift"] = *req.Shift
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if len(updates) == 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Nothing to update")
	}

	res := uc.DB.Model(&model.UserModel{}).Where("id = ?", userID).Updates(updates)
	if res.Error != nil {
		log.Println("[ERROR] UpdateUser:", res.Error)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update user")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "User not found")
	}

	var user model.UserModel
	if err := uc.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to reload user")
	}
	return helper.Success(c, "User updated", user)
}

// DELETE /api/a/users/:id — hard delete, removes the S3 avatar too
func (uc *UserController) DeleteUser(c *fiber.Ctx) error {
	userID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var user model.UserModel
	if err := uc.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "User not found")
	}

	if err := uc.DB.Delete(&user).Error; err != nil {
		log.Println("[ERROR] DeleteUser:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete user")
	}

	if user.ImageURL != nil {
		if key := storage.KeyFromURL(*user.ImageURL); key != "" {
			if err := storage.Delete(key); err != nil {
				log.Println("[WARN] Failed to delete avatar:", err)
			}
		}
	}

	log.Printf("[SUCCESS] User %s deleted\n", user.Name)
	return helper.Success(c, "User deleted", nil)
}
