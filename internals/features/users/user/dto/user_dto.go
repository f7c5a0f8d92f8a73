package dto

import (
	"strings"
	"time"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// AcceptUserRequest — admin approves a pending signup and assigns placement
type AcceptUserRequest struct {
	Region            string `json:"region" validate:"required,min=2,max=100"`
	Shift             int    `json:"shift" validate:"required,oneof=1 2"`
	ContractStartDate string `json:"contract_start_date" validate:"required,datetime=2006-01-02"`
	Title             string `json:"title" validate:"omitempty,max=100"`
}

func (r *AcceptUserRequest) Normalize() {
	r.Region = strings.TrimSpace(r.Region)
	r.Title = strings.TrimSpace(r.Title)
}

func (r *AcceptUserRequest) ContractDate() (time.Time, error) {
	return time.Parse("2006-01-02", r.ContractStartDate)
}

// UpdateUserRequest — admin edits of an existing account
type UpdateUserRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=3,max=100"`
	Email  *string `json:"email" validate:"omitempty,email,max=255"`
	Role   *string `json:"role" validate:"omitempty,oneof=user manager admin"`
	Region *string `json:"region" validate:"omitempty,min=2,max=100"`
	Title  *string `json:"title" validate:"omitempty,max=100"`
	Shift  *int    `json:"shift" validate:"omitempty,oneof=1 2"`
	Active *bool   `json:"active"`
}

// PushTokenRequest — mobile app registers its Expo token
type PushTokenRequest struct {
	ExpoPushToken string `json:"expo_push_token" validate:"required,min=10,max=255"`
}
