package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vietanh2810/motohub-api/internal/domain"
	"github.com/vietanh2810/motohub-api/internal/repository"
)

var (
	ErrEventNotFound     = repository.ErrEventNotFound
	ErrEntryNotFound     = repository.ErrEntryNotFound
	ErrDuplicateEntry    = repository.ErrDuplicateEntry
	ErrAwardNotFound     = repository.ErrAwardNotFound
	ErrEventNotActive    = errors.New("event not active")
	ErrSelfVoteForbidden = errors.New("cannot vote for own entry")
	ErrNotAuthorized     = errors.New("not authorized")
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	GetByID(ctx context.Context, id uint) (domain.Event, error)
	GetPublished(ctx context.Context) ([]domain.Event, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	AddEntry(ctx context.Context, eventID, vehicleID uint) (domain.EventEntry, error)
	GetEntryByID(ctx context.Context, id uint) (domain.EventEntry, error)
	ToggleVote(ctx context.Context, eventID, entryID, userID uint) (bool, error)
	RankedEntries(ctx context.Context, eventID uint) ([]domain.EventEntry, error)
	VotedEntryIDs(ctx context.Context, eventID, userID uint) ([]uint, error)
	GetTeam(ctx context.Context, id uint) (domain.Team, error)
	IsTeamAdmin(ctx context.Context, teamID, userID uint) (bool, error)
	CreateAward(ctx context.Context, award domain.Award) (domain.Award, error)
	GetAwards(ctx context.Context, eventID uint) ([]domain.Award, error)
	UpdateAward(ctx context.Context, award domain.Award) (domain.Award, error)
	DeleteAward(ctx context.Context, eventID, awardID uint) error
}

type EventVehicleRepository interface {
	GetByID(ctx context.Context, id uint) (domain.Vehicle, error)
	GetByIDs(ctx context.Context, ids []uint) ([]domain.Vehicle, error)
}

type EventService struct {
	repo  EventRepository
	vRepo EventVehicleRepository
}

func NewEventService(repo EventRepository, vRepo EventVehicleRepository) *EventService {
	return &EventService{
		repo:  repo,
		vRepo: vRepo,
	}
}

// CreateEvent creates an event for its organizer. An event organized on behalf
// of a team requires the organizer to be an admin of that team.
func (s *EventService) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	if event.OrganizerTeamID != nil {
		isAdmin, err := s.repo.IsTeamAdmin(ctx, *event.OrganizerTeamID, event.OrganizerID)
		if err != nil {
			return domain.Event{}, fmt.Errorf("s.repo.IsTeamAdmin -> %w", err)
		}
		if !isAdmin {
			return domain.Event{}, ErrNotAuthorized
		}
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	return event, nil
}

func (s *EventService) ListPublished(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.GetPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.GetPublished -> %w", err)
	}

	return events, nil
}

// CanManage reports whether the user may administer the event: its organizer,
// or an admin of the organizing team when there is one.
func (s *EventService) CanManage(ctx context.Context, event domain.Event, userID uint) (bool, error) {
	if event.OrganizerID == userID {
		return true, nil
	}
	if event.OrganizerTeamID == nil {
		return false, nil
	}

	isAdmin, err := s.repo.IsTeamAdmin(ctx, *event.OrganizerTeamID, userID)
	if err != nil {
		return false, fmt.Errorf("s.repo.IsTeamAdmin -> %w", err)
	}

	return isAdmin, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, requesterID uint, event domain.Event) (domain.Event, error) {
	existing, err := s.GetEvent(ctx, event.ID)
	if err != nil {
		return domain.Event{}, err
	}

	canManage, err := s.CanManage(ctx, existing, requesterID)
	if err != nil {
		return domain.Event{}, err
	}
	if !canManage {
		return domain.Event{}, ErrNotAuthorized
	}

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// Enter registers the vehicle into the event. The event must be published and
// active, and the vehicle must belong to the requester.
func (s *EventService) Enter(ctx context.Context, eventID, vehicleID, requesterID uint) (domain.EventEntry, error) {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return domain.EventEntry{}, err
	}
	if !event.IsActiveAt(time.Now()) {
		return domain.EventEntry{}, ErrEventNotActive
	}

	vehicle, err := s.vRepo.GetByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return domain.EventEntry{}, ErrInvalidTarget
		}

		return domain.EventEntry{}, fmt.Errorf("s.vRepo.GetByID -> %w", err)
	}
	if vehicle.OwnerID != requesterID {
		return domain.EventEntry{}, ErrNotAuthorized
	}

	entry, err := s.repo.AddEntry(ctx, eventID, vehicleID)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return domain.EventEntry{}, ErrDuplicateEntry
		}

		return domain.EventEntry{}, fmt.Errorf("s.repo.AddEntry -> %w", err)
	}

	return entry, nil
}

// ToggleVote flips the voter's vote on an entry. Voting for an entry backed by
// the voter's own vehicle is always rejected, no matter the current direction
// of the toggle.
func (s *EventService) ToggleVote(ctx context.Context, eventID, entryID, voterID uint) (bool, error) {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return false, err
	}
	if !event.IsActiveAt(time.Now()) {
		return false, ErrEventNotActive
	}

	entry, err := s.repo.GetEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return false, ErrEntryNotFound
		}

		return false, fmt.Errorf("s.repo.GetEntryByID -> %w", err)
	}
	if entry.EventID != eventID {
		return false, ErrEntryNotFound
	}

	vehicle, err := s.vRepo.GetByID(ctx, entry.VehicleID)
	if err != nil {
		return false, fmt.Errorf("s.vRepo.GetByID -> %w", err)
	}
	if vehicle.OwnerID == voterID {
		return false, ErrSelfVoteForbidden
	}

	active, err := s.repo.ToggleVote(ctx, eventID, entryID, voterID)
	if err != nil {
		return false, fmt.Errorf("s.repo.ToggleVote -> %w", err)
	}

	return active, nil
}

// RankedEntries returns the event's entries by vote count descending, newest
// entry winning ties, with their vehicles attached.
func (s *EventService) RankedEntries(ctx context.Context, eventID uint) ([]domain.EventEntry, error) {
	entries, err := s.repo.RankedEntries(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.RankedEntries -> %w", err)
	}
	if len(entries) == 0 {
		return entries, nil
	}

	vehicleIDs := make([]uint, len(entries))
	for i, entry := range entries {
		vehicleIDs[i] = entry.VehicleID
	}
	vehicles, err := s.vRepo.GetByIDs(ctx, vehicleIDs)
	if err != nil {
		return nil, fmt.Errorf("s.vRepo.GetByIDs -> %w", err)
	}

	byID := make(map[uint]domain.Vehicle, len(vehicles))
	for _, v := range vehicles {
		byID[v.ID] = v
	}
	for i := range entries {
		if v, ok := byID[entries[i].VehicleID]; ok {
			entries[i].Vehicle = &v
		}
	}

	return entries, nil
}

func (s *EventService) TopN(ctx context.Context, eventID uint, n int) ([]domain.EventEntry, error) {
	entries, err := s.RankedEntries(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if n < len(entries) {
		entries = entries[:n]
	}

	return entries, nil
}

// WinnersVisible reports whether the requester may see the event's winners:
// managers always, everyone else only once the event is closed and the
// organizer published the results.
func (s *EventService) WinnersVisible(ctx context.Context, event domain.Event, requesterID uint) (bool, error) {
	canManage, err := s.CanManage(ctx, event, requesterID)
	if err != nil {
		return false, err
	}
	if canManage {
		return true, nil
	}

	return event.StateAt(time.Now()) == domain.EventClosed && event.WinnersPublic, nil
}

// OrganizerTeam resolves the event's organizing team, nil when the event is
// organized by an individual or the team has since been removed.
func (s *EventService) OrganizerTeam(ctx context.Context, event domain.Event) (*domain.Team, error) {
	if event.OrganizerTeamID == nil {
		return nil, nil
	}

	team, err := s.repo.GetTeam(ctx, *event.OrganizerTeamID)
	if err != nil {
		if errors.Is(err, repository.ErrTeamNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("s.repo.GetTeam -> %w", err)
	}

	return &team, nil
}

func (s *EventService) VotedEntryIDs(ctx context.Context, eventID, userID uint) ([]uint, error) {
	ids, err := s.repo.VotedEntryIDs(ctx, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.VotedEntryIDs -> %w", err)
	}

	return ids, nil
}

func (s *EventService) checkManage(ctx context.Context, eventID, requesterID uint) (domain.Event, error) {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return domain.Event{}, err
	}

	canManage, err := s.CanManage(ctx, event, requesterID)
	if err != nil {
		return domain.Event{}, err
	}
	if !canManage {
		return domain.Event{}, ErrNotAuthorized
	}

	return event, nil
}

// CreateAward adds an award to the event. Winner assignment is manual and
// independent of the vote tally.
func (s *EventService) CreateAward(ctx context.Context, requesterID uint, award domain.Award) (domain.Award, error) {
	if _, err := s.checkManage(ctx, award.EventID, requesterID); err != nil {
		return domain.Award{}, err
	}

	if err := s.checkWinnerEntry(ctx, award); err != nil {
		return domain.Award{}, err
	}

	created, err := s.repo.CreateAward(ctx, award)
	if err != nil {
		return domain.Award{}, fmt.Errorf("s.repo.CreateAward -> %w", err)
	}

	return created, nil
}

func (s *EventService) GetAwards(ctx context.Context, eventID uint) ([]domain.Award, error) {
	awards, err := s.repo.GetAwards(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.GetAwards -> %w", err)
	}

	return awards, nil
}

func (s *EventService) UpdateAward(ctx context.Context, requesterID uint, award domain.Award) (domain.Award, error) {
	if _, err := s.checkManage(ctx, award.EventID, requesterID); err != nil {
		return domain.Award{}, err
	}

	if err := s.checkWinnerEntry(ctx, award); err != nil {
		return domain.Award{}, err
	}

	updated, err := s.repo.UpdateAward(ctx, award)
	if err != nil {
		if errors.Is(err, repository.ErrAwardNotFound) {
			return domain.Award{}, ErrAwardNotFound
		}

		return domain.Award{}, fmt.Errorf("s.repo.UpdateAward -> %w", err)
	}

	return updated, nil
}

func (s *EventService) DeleteAward(ctx context.Context, requesterID uint, eventID, awardID uint) error {
	if _, err := s.checkManage(ctx, eventID, requesterID); err != nil {
		return err
	}

	if err := s.repo.DeleteAward(ctx, eventID, awardID); err != nil {
		if errors.Is(err, repository.ErrAwardNotFound) {
			return ErrAwardNotFound
		}

		return fmt.Errorf("s.repo.DeleteAward -> %w", err)
	}

	return nil
}

// checkWinnerEntry verifies a manually assigned winner belongs to the award's
// event.
func (s *EventService) checkWinnerEntry(ctx context.Context, award domain.Award) error {
	if award.WinnerEntryID == nil {
		return nil
	}

	entry, err := s.repo.GetEntryByID(ctx, *award.WinnerEntryID)
	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return ErrEntryNotFound
		}

		return fmt.Errorf("s.repo.GetEntryByID -> %w", err)
	}
	if entry.EventID != award.EventID {
		return ErrEntryNotFound
	}

	return nil
}
