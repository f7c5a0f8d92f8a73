package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ShiftRequestModel asks to move the user between the two fixed shifts.
// The partial unique index makes "one pending request per user" a DB
// guarantee instead of a racy check-then-insert.
type ShiftRequestModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uniq_pending_shift_request,where:status = 'pending'" json:"user_id"`
	RequestedShift int       `gorm:"not null" json:"requested_shift"`
	Status         string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ShiftRequestModel) TableName() string {
	return "shift_requests"
}

func (s *ShiftRequestModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
