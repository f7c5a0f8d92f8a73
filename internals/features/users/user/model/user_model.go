package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel represents the users table. Status is the admin approval gate:
// freshly registered employees stay status=false until HR accepts them.
type UserModel struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name              string     `gorm:"size:100;unique;not null" json:"name"`
	Email             string     `gorm:"size:255;unique;not null" json:"email"`
	Password          string     `gorm:"not null" json:"-"`
	Role              string     `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Active            bool       `gorm:"not null;default:true" json:"active"`
	Status            bool       `gorm:"not null;default:false" json:"status"`
	Region            *string    `gorm:"size:100" json:"region,omitempty"`
	Title             *string    `gorm:"size:100" json:"title,omitempty"`
	Shift             *int       `json:"shift,omitempty"`
	ContractStartDate *time.Time `gorm:"type:date" json:"contract_start_date,omitempty"`
	ImageURL          *string    `gorm:"size:512" json:"image_url,omitempty"`
	ExpoPushToken     *string    `gorm:"size:255" json:"-"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
