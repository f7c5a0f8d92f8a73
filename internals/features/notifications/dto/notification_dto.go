package dto

type BroadcastRequest struct {
	Role   string `json:"role" validate:"omitempty,oneof=user manager admin"`
	Region string `json:"region" validate:"omitempty,min=2,max=100"`
	Title  string `json:"title" validate:"required,min=2,max=255"`
	Body   string `json:"body" validate:"required,min=2"`
}
