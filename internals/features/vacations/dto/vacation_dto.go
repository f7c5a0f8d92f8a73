package dto

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type CreateVacationRequest struct {
	StartDate         string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate           string `json:"endDate" validate:"required,datetime=2006-01-02"`
	ReplacementUserID string `json:"replacementUserId" validate:"required,uuid"`
}

func (r *CreateVacationRequest) Dates() (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

type ReplacementRespondRequest struct {
	Accept *bool `json:"accept" validate:"required"`
}

type ManagerRespondRequest struct {
	Approve *bool  `json:"approve" validate:"required"`
	Comment string `json:"comment" validate:"omitempty,max=1000"`
}

func (r *ManagerRespondRequest) Normalize() {
	r.Comment = strings.TrimSpace(r.Comment)
}

type AdminRespondRequest struct {
	Status       string `json:"status" validate:"required,oneof=approved rejected"`
	AdminComment string `json:"admin_comment" validate:"omitempty,max=1000"`
}

func (r *AdminRespondRequest) Normalize() {
	r.Status = strings.TrimSpace(r.Status)
	r.AdminComment = strings.TrimSpace(r.AdminComment)
}
