package domain

import "time"

type Post struct {
	ID          uint      `json:"id"`
	AuthorID    uint      `json:"author_id"`
	VehicleID   *uint     `json:"vehicle_id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	MainImageID *uint     `json:"main_image_id"`
	Images      []Image   `json:"images,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
