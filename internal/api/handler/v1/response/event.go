package response

import "github.com/vietanh2810/motohub-api/internal/domain"

type EventListItem struct {
	domain.Event

	State domain.EventState `json:"state"`
}

type EventDetail struct {
	domain.Event

	State          domain.EventState   `json:"state"`
	OrganizerTeam  *domain.Team        `json:"organizer_team,omitempty"`
	Entries        []domain.EventEntry `json:"entries"`
	VotedEntryIDs  []uint              `json:"voted_entry_ids,omitempty"`
	WinnersVisible bool                `json:"winners_visible"`
}

type EventWinners struct {
	Top    []domain.EventEntry `json:"top"`
	Awards []domain.Award      `json:"awards"`
}
