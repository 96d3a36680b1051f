package domain

import "time"

type EventState string

const (
	EventScheduled EventState = "scheduled"
	EventActive    EventState = "active"
	EventClosed    EventState = "closed"
)

type Event struct {
	ID              uint       `json:"id"`
	OrganizerID     uint       `json:"organizer_id"`
	OrganizerTeamID *uint      `json:"organizer_team_id,omitempty"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	StartsAt        time.Time  `json:"starts_at"`
	EndsAt          *time.Time `json:"ends_at,omitempty"`
	IsPublished     bool       `json:"is_published"`
	WinnersPublic   bool       `json:"winners_public"`
	SponsorName     string     `json:"sponsor_name,omitempty"`
	SponsorURL      string     `json:"sponsor_url,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// StateAt derives the time-based lifecycle state. Publication is gated
// separately by IsPublished.
func (e Event) StateAt(now time.Time) EventState {
	if now.Before(e.StartsAt) {
		return EventScheduled
	}
	if e.EndsAt != nil && now.After(*e.EndsAt) {
		return EventClosed
	}

	return EventActive
}

func (e Event) IsActiveAt(now time.Time) bool {
	return e.IsPublished && e.StateAt(now) == EventActive
}

type EventEntry struct {
	ID        uint      `json:"id"`
	EventID   uint      `json:"event_id"`
	VehicleID uint      `json:"vehicle_id"`
	Vehicle   *Vehicle  `json:"vehicle,omitempty"`
	VoteCount int64     `json:"vote_count"`
	CreatedAt time.Time `json:"created_at"`
}

type Award struct {
	ID            uint      `json:"id"`
	EventID       uint      `json:"event_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	WinnerEntryID *uint     `json:"winner_entry_id,omitempty"`
	SortOrder     int       `json:"sort_order"`
	CreatedAt     time.Time `json:"created_at"`
}
