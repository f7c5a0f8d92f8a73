package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceModel is one check-in/check-out pair. A partial unique index
// on user_id WHERE check_out_time IS NULL guarantees a user cannot check
// in twice without checking out, even under concurrent requests.
type AttendanceModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:uniq_open_attendance,where:check_out_time IS NULL" json:"user_id"`
	CheckInTime  time.Time  `gorm:"not null" json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time,omitempty"`
}

func (AttendanceModel) TableName() string {
	return "attendance"
}

func (a *AttendanceModel) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
