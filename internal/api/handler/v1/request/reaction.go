package request

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type ToggleReactionRequest struct {
	TargetType string `json:"target_type"`
	TargetID   uint   `json:"target_id"`
	Kind       string `json:"kind"`
}

func (req *ToggleReactionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TargetType, validation.Required),
		validation.Field(&req.TargetID, validation.Required),
		validation.Field(&req.Kind, validation.Required),
	)
}
