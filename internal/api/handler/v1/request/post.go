package request

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CreatePostRequest struct {
	Title     string `form:"title"`
	Body      string `form:"body"`
	VehicleID *uint  `form:"vehicle_id"`
}

func (req *CreatePostRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Body, validation.Length(0, 10000)),
	)
}
