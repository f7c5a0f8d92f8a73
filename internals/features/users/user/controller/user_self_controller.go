package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"medstaff_backend/internals/features/users/user/dto"
	"medstaff_backend/internals/features/users/user/model"
	helper "medstaff_backend/internals/helpers"
	"medstaff_backend/internals/helpers/storage"
)

type UserSelfController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewUserSelfController(db *gorm.DB) *UserSelfController {
	return &UserSelfController{DB: db, Validate: validator.New()}
}

// GET /api/u/users/me
func (uc *UserSelfController) GetMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	var user model.UserModel
	if err := uc.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "User not found")
	}
	return helper.Success(c, "Profile fetched successfully", user)
}

// PATCH /api/u/users/me/push-token
func (uc *UserSelfController) SavePushToken(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	var req dto.PushTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := uc.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := uc.DB.Model(&model.UserModel{}).
		Where("id = ?", userID).
		Update("expo_push_token", req.ExpoPushToken).Error; err != nil {
		log.Println("[ERROR] SavePushToken:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to save push token")
	}
	return helper.Success(c, "Push token saved", nil)
}

// POST /api/u/users/me/image — multipart avatar upload
func (uc *UserSelfController) UploadImage(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Missing image file")
	}

	var user model.UserModel
	if err := uc.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "User not found")
	}

	publicURL, err := storage.UploadUserImage(userID.String(), fileHeader)
	if err != nil {
		log.Println("[ERROR] UploadImage:", err)
		return helper.Error(c, fiber.StatusBadRequest, err.Error())
	}

	// replace the old avatar after the new one is up
	if user.ImageURL != nil {
		if key := storage.KeyFromURL(*user.ImageURL); key != "" {
			if err := storage.Delete(key); err != nil {
				log.Println("[WARN] Failed to delete old avatar:", err)
			}
		}
	}

	if err := uc.DB.Model(&model.UserModel{}).
		Where("id = ?", userID).
		Update("image_url", publicURL).Error; err != nil {
		log.Println("[ERROR] UploadImage save:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to save image URL")
	}

	return helper.Success(c, "Image uploaded", fiber.Map{"image_url": publicURL})
}
