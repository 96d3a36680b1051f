package request

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateVehicleRequest carries the multipart form fields of a vehicle upload;
// the image files travel alongside as multipart files.
type CreateVehicleRequest struct {
	Maker         string `form:"maker"`
	Model         string `form:"model"`
	Title         string `form:"title"`
	Year          int    `form:"year"`
	Description   string `form:"description"`
	CustomSummary string `form:"custom_summary"`
}

func (req *CreateVehicleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Maker, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Model, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Year, validation.Min(1900), validation.Max(2100)),
	)
}

// UpdateVehicleRequest updates the vehicle fields and applies gallery
// operations: deletions run first, then additions (as multipart files), then
// the reorder, then an optional pin.
type UpdateVehicleRequest struct {
	Maker         string `form:"maker"`
	Model         string `form:"model"`
	Title         string `form:"title"`
	Year          int    `form:"year"`
	Description   string `form:"description"`
	CustomSummary string `form:"custom_summary"`

	DeleteImageIDs []uint `form:"delete_image_ids"`
	ImageOrder     []uint `form:"image_order"`
	PinImageID     *uint  `form:"pin_image_id"`
}

func (req *UpdateVehicleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Maker, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Model, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Year, validation.Min(1900), validation.Max(2100)),
	)
}
