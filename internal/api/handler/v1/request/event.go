package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CreateEventRequest struct {
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	StartsAt        time.Time  `json:"starts_at"`
	EndsAt          *time.Time `json:"ends_at"`
	IsPublished     bool       `json:"is_published"`
	WinnersPublic   bool       `json:"winners_public"`
	OrganizerTeamID *uint      `json:"organizer_team_id"`
	SponsorName     string     `json:"sponsor_name"`
	SponsorURL      string     `json:"sponsor_url"`
}

func (req *CreateEventRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.StartsAt, validation.Required),
	)
	if err != nil {
		return err
	}

	if req.EndsAt != nil && !req.EndsAt.After(req.StartsAt) {
		return validation.NewError("validation_ends_at", "ends_at must be after starts_at")
	}

	return nil
}

type UpdateEventRequest struct {
	CreateEventRequest
}

type EnterEventRequest struct {
	VehicleID uint `json:"vehicle_id"`
}

func (req *EnterEventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.VehicleID, validation.Required),
	)
}

type AwardRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	WinnerEntryID *uint  `json:"winner_entry_id"`
	SortOrder     int    `json:"sort_order"`
}

func (req *AwardRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
	)
}
