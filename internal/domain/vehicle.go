package domain

import "time"

type Vehicle struct {
	ID            uint      `json:"id"`
	OwnerID       uint      `json:"owner_id"`
	Maker         string    `json:"maker"`
	Model         string    `json:"model"`
	Title         string    `json:"title"`
	Year          int       `json:"year,omitempty"`
	Description   string    `json:"description"`
	CustomSummary string    `json:"custom_summary"`
	MainImageID   *uint     `json:"main_image_id"`
	Images        []Image   `json:"images,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
