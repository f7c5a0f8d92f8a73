// Package service implements the shift-change request cycle: a single
// pending request per user, finalized once by a manager or admin.
package service

import (
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	sender "medstaff_backend/internals/features/notifications/sender"
	"medstaff_backend/internals/features/shifts/model"
	userModel "medstaff_backend/internals/features/users/user/model"
	"medstaff_backend/internals/helpers/errs"
)

// Create inserts a pending request. The partial unique index on
// (user_id) WHERE status='pending' turns a duplicate into a clean
// constraint violation, with no read-then-write window.
func Create(db *gorm.DB, userID uuid.UUID, requestedShift int) (*model.ShiftRequestModel, error) {
	if requestedShift != 1 && requestedShift != 2 {
		return nil, errs.Validation("requested_shift must be 1 or 2")
	}

	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, errs.NotFound("User not found")
	}
	if user.Shift != nil && *user.Shift == requestedShift {
		return nil, errs.Validation("You are already on that shift")
	}

	request := model.ShiftRequestModel{
		UserID:         userID,
		RequestedShift: requestedShift,
		Status:         model.StatusPending,
	}
	if err := db.Create(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errs.Conflict("You already have a pending shift request")
		}
		return nil, err
	}
	return &request, nil
}

// Respond finalizes a pending request. Approval overwrites the user's
// shift; both outcomes notify the requester. The conditional UPDATE is
// the terminal-state guard.
func Respond(db *gorm.DB, requestID, approverID uuid.UUID, status string) (*model.ShiftRequestModel, error) {
	if status != model.StatusApproved && status != model.StatusRejected {
		return nil, errs.Validation("status must be approved or rejected")
	}

	res := db.Model(&model.ShiftRequestModel{}).
		Where("id = ? AND status = ?", requestID, model.StatusPending).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var request model.ShiftRequestModel
		if err := db.First(&request, "id = ?", requestID).Error; err != nil {
			return nil, errs.NotFound("Shift request not found")
		}
		return nil, errs.AlreadyProcessed("Request already processed")
	}

	var request model.ShiftRequestModel
	if err := db.First(&request, "id = ?", requestID).Error; err != nil {
		return nil, err
	}
	log.Printf("[INFO] shift request %s %s by %s", request.ID, status, approverID)

	if status == model.StatusApproved {
		if err := db.Model(&userModel.UserModel{}).
			Where("id = ?", request.UserID).
			Update("shift", request.RequestedShift).Error; err != nil {
			return nil, err
		}
		sender.Send(db, request.UserID, "Shift change approved",
			"Your shift change was approved.", map[string]string{"shift_request_id": request.ID.String()})
	} else {
		sender.Send(db, request.UserID, "Shift change rejected",
			"Your shift change was rejected.", map[string]string{"shift_request_id": request.ID.String()})
	}
	return &request, nil
}

// ShiftRequestView decorates a request with requester info for listings.
type ShiftRequestView struct {
	model.ShiftRequestModel
	UserName     string  `json:"user_name"`
	UserRegion   *string `json:"user_region,omitempty"`
	CurrentShift *int    `json:"current_shift,omitempty"`
}

func ListMine(db *gorm.DB, userID uuid.UUID) ([]model.ShiftRequestModel, error) {
	var requests []model.ShiftRequestModel
	err := db.Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&requests).Error
	return requests, err
}

// ListAll returns every request; the status filter narrows only when set.
func ListAll(db *gorm.DB, statusFilter string) ([]ShiftRequestView, error) {
	q := db.Table("shift_requests").
		Select("shift_requests.*, u.name AS user_name, u.region AS user_region, u.shift AS current_shift").
		Joins("JOIN users u ON u.id = shift_requests.user_id")
	if statusFilter != "" {
		q = q.Where("shift_requests.status = ?", statusFilter)
	}

	var requests []ShiftRequestView
	err := q.Order("shift_requests.created_at desc").Scan(&requests).Error
	return requests, err
}
