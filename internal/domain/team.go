package domain

import "time"

type TeamStatus string

const (
	TeamActive    TeamStatus = "active"
	TeamDisbanded TeamStatus = "disbanded"
)

// Team is a rider club that can organize events. Membership rows live in the
// storage layer; the only cross-cutting question they answer is whether a user
// administers the team.
type Team struct {
	ID          uint       `json:"id"`
	OwnerID     uint       `json:"owner_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      TeamStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
