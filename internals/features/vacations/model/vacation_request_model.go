package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vacation request lifecycle. Transitions only move forward:
// pending_replacement_acceptance → pending_manager_approval →
// pending_admin_approval → approved | rejected.
const (
	StatusPendingReplacement = "pending_replacement_acceptance"
	StatusPendingManager     = "pending_manager_approval"
	StatusPendingAdmin       = "pending_admin_approval"
	StatusApproved           = "approved"
	StatusRejected           = "rejected"
)

// Replacement decision, set exactly once and never changed afterwards.
const (
	ReplacementPending  = "pending"
	ReplacementAccepted = "accepted"
	ReplacementDeclined = "declined"
)

type VacationRequestModel struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	StartDate         time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate           time.Time  `gorm:"type:date;not null" json:"end_date"`
	ReplacementUserID uuid.UUID  `gorm:"type:uuid;not null;index" json:"replacement_user_id"`
	Status            string     `gorm:"type:varchar(40);not null;default:'pending_replacement_acceptance';index" json:"status"`
	ReplacementStatus string     `gorm:"type:varchar(20);not null;default:'pending'" json:"replacement_status"`
	ManagerApproverID *uuid.UUID `gorm:"type:uuid" json:"manager_approver_id,omitempty"`
	AdminApproverID   *uuid.UUID `gorm:"type:uuid" json:"admin_approver_id,omitempty"`
	AdminComment      *string    `gorm:"type:text" json:"admin_comment,omitempty"`
	IsSeen            bool       `gorm:"not null;default:false" json:"is_seen"`
	RequestedAt       time.Time  `gorm:"autoCreateTime" json:"requested_at"`
}

func (VacationRequestModel) TableName() string {
	return "vacation_requests"
}

func (v *VacationRequestModel) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

func (v *VacationRequestModel) IsTerminal() bool {
	return v.Status == StatusApproved || v.Status == StatusRejected
}
