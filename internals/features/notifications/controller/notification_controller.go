package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"medstaff_backend/internals/features/notifications/dto"
	"medstaff_backend/internals/features/notifications/model"
	sender "medstaff_backend/internals/features/notifications/sender"
	helper "medstaff_backend/internals/helpers"
)

type NotificationController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db, Validate: validator.New()}
}

// GET /api/u/notifications/mine
func (nc *NotificationController) GetMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := nc.DB.Model(&model.NotificationModel{}).
		Where("user_id = ?", userID).Count(&total).Error; err != nil {
		log.Println("[ERROR] notification count:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch notifications")
	}

	var notifications []model.NotificationModel
	if err := nc.DB.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&notifications).Error; err != nil {
		log.Println("[ERROR] notification list:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch notifications")
	}

	var unread int64
	nc.DB.Model(&model.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).Count(&unread)

	return helper.Success(c, "Notifications fetched", fiber.Map{
		"notifications": notifications,
		"unread_count":  unread,
		"pagination":    helper.BuildPagination(total, paging, len(notifications)),
	})
}

// PATCH /api/u/notifications/:id/read — idempotent
func (nc *NotificationController) MarkRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}
	notifID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid notification id")
	}

	if err := nc.DB.Model(&model.NotificationModel{}).
		Where("id = ? AND user_id = ?", notifID, userID).
		Update("is_read", true).Error; err != nil {
		log.Println("[ERROR] MarkRead:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to mark notification")
	}
	return helper.Success(c, "Notification marked as read", nil)
}

// POST /api/a/notifications/broadcast
func (nc *NotificationController) Broadcast(c *fiber.Ctx) error {
	var req dto.BroadcastRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := nc.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	sent, failed := sender.SendBatch(nc.DB, sender.BatchFilter{
		Role:   req.Role,
		Region: req.Region,
	}, req.Title, req.Body)

	log.Printf("[SUCCESS] Broadcast done: %d sent, %d failed\n", sent, failed)
	return helper.Success(c, "Broadcast dispatched", fiber.Map{
		"sent_count":   sent,
		"failed_count": failed,
	})
}
