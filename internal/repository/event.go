package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/motohub-api/internal/domain"
	"github.com/vietanh2810/motohub-api/internal/repository/dao"
)

var (
	ErrEventNotFound  = dao.ErrEventNotFound
	ErrEntryNotFound  = dao.ErrEntryNotFound
	ErrDuplicateEntry = dao.ErrDuplicateEntry
	ErrAwardNotFound  = dao.ErrAwardNotFound
	ErrTeamNotFound   = dao.ErrTeamNotFound
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	FindPublished(ctx context.Context) ([]dao.Event, error)
	Update(ctx context.Context, event dao.Event) (dao.Event, error)
	InsertEntry(ctx context.Context, entry dao.EventEntry) (dao.EventEntry, error)
	FindEntryByID(ctx context.Context, id uint) (dao.EventEntry, error)
	ToggleVote(ctx context.Context, eventID, entryID, userID uint) (bool, error)
	RankedEntries(ctx context.Context, eventID uint) ([]dao.RankedEntry, error)
	VotedEntryIDs(ctx context.Context, eventID, userID uint) ([]uint, error)
	InsertAward(ctx context.Context, award dao.Award) (dao.Award, error)
	FindAwardByID(ctx context.Context, id uint) (dao.Award, error)
	FindAwardsByEventID(ctx context.Context, eventID uint) ([]dao.Award, error)
	UpdateAward(ctx context.Context, award dao.Award) (dao.Award, error)
	DeleteAward(ctx context.Context, eventID, awardID uint) error
}

type TeamDAO interface {
	FindByID(ctx context.Context, id uint) (dao.Team, error)
	IsTeamAdmin(ctx context.Context, teamID, userID uint) (bool, error)
}

type EventRepository struct {
	dao  EventDAO
	tDAO TeamDAO
}

func NewEventRepository(dao EventDAO, tDAO TeamDAO) *EventRepository {
	return &EventRepository{
		dao:  dao,
		tDAO: tDAO,
	}
}

func (r *EventRepository) domainToDao(e domain.Event) dao.Event {
	return dao.Event{
		ID:              e.ID,
		OrganizerID:     e.OrganizerID,
		OrganizerTeamID: e.OrganizerTeamID,
		Title:           e.Title,
		Description:     e.Description,
		StartsAt:        e.StartsAt,
		EndsAt:          e.EndsAt,
		IsPublished:     e.IsPublished,
		WinnersPublic:   e.WinnersPublic,
		SponsorName:     e.SponsorName,
		SponsorURL:      e.SponsorURL,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:              e.ID,
		OrganizerID:     e.OrganizerID,
		OrganizerTeamID: e.OrganizerTeamID,
		Title:           e.Title,
		Description:     e.Description,
		StartsAt:        e.StartsAt,
		EndsAt:          e.EndsAt,
		IsPublished:     e.IsPublished,
		WinnersPublic:   e.WinnersPublic,
		SponsorName:     e.SponsorName,
		SponsorURL:      e.SponsorURL,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func (r *EventRepository) entryDaoToDomain(e dao.EventEntry) domain.EventEntry {
	return domain.EventEntry{
		ID:        e.ID,
		EventID:   e.EventID,
		VehicleID: e.VehicleID,
		CreatedAt: e.CreatedAt,
	}
}

func (r *EventRepository) awardDaoToDomain(a dao.Award) domain.Award {
	return domain.Award{
		ID:            a.ID,
		EventID:       a.EventID,
		Title:         a.Title,
		Description:   a.Description,
		WinnerEntryID: a.WinnerEntryID,
		SortOrder:     a.SortOrder,
		CreatedAt:     a.CreatedAt,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventRepository) GetByID(ctx context.Context, id uint) (domain.Event, error) {
	event, err := r.dao.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrEventNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(event), nil
}

func (r *EventRepository) GetPublished(ctx context.Context) ([]domain.Event, error) {
	events, err := r.dao.FindPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindPublished -> %w", err)
	}

	out := make([]domain.Event, len(events))
	for i, e := range events {
		out[i] = r.daoToDomain(e)
	}

	return out, nil
}

func (r *EventRepository) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(event))
	if err != nil {
		if errors.Is(err, dao.ErrEventNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *EventRepository) AddEntry(ctx context.Context, eventID, vehicleID uint) (domain.EventEntry, error) {
	entry, err := r.dao.InsertEntry(ctx, dao.EventEntry{
		EventID:   eventID,
		VehicleID: vehicleID,
	})
	if err != nil {
		if errors.Is(err, dao.ErrDuplicateEntry) {
			return domain.EventEntry{}, ErrDuplicateEntry
		}

		return domain.EventEntry{}, fmt.Errorf("r.dao.InsertEntry -> %w", err)
	}

	return r.entryDaoToDomain(entry), nil
}

func (r *EventRepository) GetEntryByID(ctx context.Context, id uint) (domain.EventEntry, error) {
	entry, err := r.dao.FindEntryByID(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrEntryNotFound) {
			return domain.EventEntry{}, ErrEntryNotFound
		}

		return domain.EventEntry{}, fmt.Errorf("r.dao.FindEntryByID -> %w", err)
	}

	return r.entryDaoToDomain(entry), nil
}

func (r *EventRepository) ToggleVote(ctx context.Context, eventID, entryID, userID uint) (bool, error) {
	active, err := r.dao.ToggleVote(ctx, eventID, entryID, userID)
	if err != nil {
		return false, fmt.Errorf("r.dao.ToggleVote -> %w", err)
	}

	return active, nil
}

func (r *EventRepository) RankedEntries(ctx context.Context, eventID uint) ([]domain.EventEntry, error) {
	ranked, err := r.dao.RankedEntries(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.RankedEntries -> %w", err)
	}

	entries := make([]domain.EventEntry, len(ranked))
	for i, re := range ranked {
		entries[i] = domain.EventEntry{
			ID:        re.ID,
			EventID:   re.EventID,
			VehicleID: re.VehicleID,
			VoteCount: re.VoteCount,
			CreatedAt: re.CreatedAt,
		}
	}

	return entries, nil
}

func (r *EventRepository) VotedEntryIDs(ctx context.Context, eventID, userID uint) ([]uint, error) {
	ids, err := r.dao.VotedEntryIDs(ctx, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.VotedEntryIDs -> %w", err)
	}

	return ids, nil
}

func (r *EventRepository) GetTeam(ctx context.Context, id uint) (domain.Team, error) {
	team, err := r.tDAO.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrTeamNotFound) {
			return domain.Team{}, ErrTeamNotFound
		}

		return domain.Team{}, fmt.Errorf("r.tDAO.FindByID -> %w", err)
	}

	return domain.Team{
		ID:          team.ID,
		OwnerID:     team.OwnerID,
		Name:        team.Name,
		Description: team.Description,
		Status:      domain.TeamStatus(team.Status),
		CreatedAt:   team.CreatedAt,
		UpdatedAt:   team.UpdatedAt,
	}, nil
}

func (r *EventRepository) IsTeamAdmin(ctx context.Context, teamID, userID uint) (bool, error) {
	isAdmin, err := r.tDAO.IsTeamAdmin(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, dao.ErrTeamNotFound) {
			return false, nil
		}

		return false, fmt.Errorf("r.tDAO.IsTeamAdmin -> %w", err)
	}

	return isAdmin, nil
}

func (r *EventRepository) CreateAward(ctx context.Context, award domain.Award) (domain.Award, error) {
	created, err := r.dao.InsertAward(ctx, dao.Award{
		EventID:       award.EventID,
		Title:         award.Title,
		Description:   award.Description,
		WinnerEntryID: award.WinnerEntryID,
		SortOrder:     award.SortOrder,
	})
	if err != nil {
		return domain.Award{}, fmt.Errorf("r.dao.InsertAward -> %w", err)
	}

	return r.awardDaoToDomain(created), nil
}

func (r *EventRepository) GetAwards(ctx context.Context, eventID uint) ([]domain.Award, error) {
	awards, err := r.dao.FindAwardsByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAwardsByEventID -> %w", err)
	}

	out := make([]domain.Award, len(awards))
	for i, a := range awards {
		out[i] = r.awardDaoToDomain(a)
	}

	return out, nil
}

func (r *EventRepository) UpdateAward(ctx context.Context, award domain.Award) (domain.Award, error) {
	updated, err := r.dao.UpdateAward(ctx, dao.Award{
		ID:            award.ID,
		EventID:       award.EventID,
		Title:         award.Title,
		Description:   award.Description,
		WinnerEntryID: award.WinnerEntryID,
		SortOrder:     award.SortOrder,
	})
	if err != nil {
		if errors.Is(err, dao.ErrAwardNotFound) {
			return domain.Award{}, ErrAwardNotFound
		}

		return domain.Award{}, fmt.Errorf("r.dao.UpdateAward -> %w", err)
	}

	return r.awardDaoToDomain(updated), nil
}

func (r *EventRepository) DeleteAward(ctx context.Context, eventID, awardID uint) error {
	if err := r.dao.DeleteAward(ctx, eventID, awardID); err != nil {
		if errors.Is(err, dao.ErrAwardNotFound) {
			return ErrAwardNotFound
		}

		return fmt.Errorf("r.dao.DeleteAward -> %w", err)
	}

	return nil
}
