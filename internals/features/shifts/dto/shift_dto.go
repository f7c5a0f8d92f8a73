package dto

type CreateShiftRequest struct {
	RequestedShift int `json:"requested_shift" validate:"required,oneof=1 2"`
}

type RespondShiftRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}
