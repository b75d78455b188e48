package dto

import "time"

type CreateJobRequest struct {
	Title               string    `json:"title" validate:"required,min=3,max=200"`
	Description         string    `json:"description" validate:"required,min=10"`
	Location            string    `json:"location" validate:"max=200"`
	ApplicationDeadline time.Time `json:"application_deadline" validate:"required"`
}

type CloseJobRequest struct {
	Reason string `json:"reason" validate:"omitempty,oneof=manual_filled manual_cancelled manual_other"`
}

type ReopenJobRequest struct {
	ApplicationDeadline time.Time `json:"application_deadline" validate:"required"`
}
