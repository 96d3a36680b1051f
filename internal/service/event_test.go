package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/motohub-api/internal/domain"
	"github.com/vietanh2810/motohub-api/internal/repository"
	"github.com/vietanh2810/motohub-api/internal/service"
)

type fakeEventRepo struct {
	events  map[uint]domain.Event
	entries map[uint]domain.EventEntry
	ranked  []domain.EventEntry
	admins  map[uint]bool
	teams   map[uint]domain.Team

	addEntryErr     error
	toggleVoteCalls int
	voteActive      bool
}

func (f *fakeEventRepo) Create(_ context.Context, event domain.Event) (domain.Event, error) {
	event.ID = uint(len(f.events) + 1)
	f.events[event.ID] = event
	return event, nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, id uint) (domain.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}
	return event, nil
}

func (f *fakeEventRepo) GetPublished(_ context.Context) ([]domain.Event, error) {
	var events []domain.Event
	for _, e := range f.events {
		if e.IsPublished {
			events = append(events, e)
		}
	}
	return events, nil
}

func (f *fakeEventRepo) Update(_ context.Context, event domain.Event) (domain.Event, error) {
	if _, ok := f.events[event.ID]; !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}
	f.events[event.ID] = event
	return event, nil
}

func (f *fakeEventRepo) AddEntry(_ context.Context, eventID, vehicleID uint) (domain.EventEntry, error) {
	if f.addEntryErr != nil {
		return domain.EventEntry{}, f.addEntryErr
	}
	entry := domain.EventEntry{ID: uint(len(f.entries) + 1), EventID: eventID, VehicleID: vehicleID}
	f.entries[entry.ID] = entry
	return entry, nil
}

func (f *fakeEventRepo) GetEntryByID(_ context.Context, id uint) (domain.EventEntry, error) {
	entry, ok := f.entries[id]
	if !ok {
		return domain.EventEntry{}, repository.ErrEntryNotFound
	}
	return entry, nil
}

func (f *fakeEventRepo) ToggleVote(_ context.Context, _, _, _ uint) (bool, error) {
	f.toggleVoteCalls++
	return f.voteActive, nil
}

func (f *fakeEventRepo) RankedEntries(_ context.Context, _ uint) ([]domain.EventEntry, error) {
	return f.ranked, nil
}

func (f *fakeEventRepo) VotedEntryIDs(_ context.Context, _, _ uint) ([]uint, error) {
	return nil, nil
}

func (f *fakeEventRepo) GetTeam(_ context.Context, id uint) (domain.Team, error) {
	team, ok := f.teams[id]
	if !ok {
		return domain.Team{}, repository.ErrTeamNotFound
	}
	return team, nil
}

func (f *fakeEventRepo) IsTeamAdmin(_ context.Context, _, userID uint) (bool, error) {
	return f.admins[userID], nil
}

func (f *fakeEventRepo) CreateAward(_ context.Context, award domain.Award) (domain.Award, error) {
	award.ID = 1
	return award, nil
}

func (f *fakeEventRepo) GetAwards(_ context.Context, _ uint) ([]domain.Award, error) {
	return nil, nil
}

func (f *fakeEventRepo) UpdateAward(_ context.Context, award domain.Award) (domain.Award, error) {
	return award, nil
}

func (f *fakeEventRepo) DeleteAward(_ context.Context, _, _ uint) error {
	return nil
}

func newEventFixture() (*service.EventService, *fakeEventRepo, *fakeVehicleLookup) {
	repo := &fakeEventRepo{
		events:  map[uint]domain.Event{},
		entries: map[uint]domain.EventEntry{},
		admins:  map[uint]bool{},
		teams:   map[uint]domain.Team{},
	}
	vRepo := &fakeVehicleLookup{vehicles: map[uint]domain.Vehicle{}}

	return service.NewEventService(repo, vRepo), repo, vRepo
}

func activeEvent(organizerID uint) domain.Event {
	return domain.Event{
		ID:          1,
		OrganizerID: organizerID,
		Title:       "Ride-In Show",
		StartsAt:    time.Now().Add(-time.Hour),
		IsPublished: true,
	}
}

func TestEventEnterRequiresActiveEvent(t *testing.T) {
	cases := []struct {
		name  string
		event domain.Event
	}{
		{
			name: "scheduled",
			event: domain.Event{
				ID: 1, OrganizerID: 2, IsPublished: true,
				StartsAt: time.Now().Add(time.Hour),
			},
		},
		{
			name: "closed",
			event: func() domain.Event {
				end := time.Now().Add(-time.Minute)
				return domain.Event{
					ID: 1, OrganizerID: 2, IsPublished: true,
					StartsAt: time.Now().Add(-time.Hour), EndsAt: &end,
				}
			}(),
		},
		{
			name: "unpublished",
			event: domain.Event{
				ID: 1, OrganizerID: 2,
				StartsAt: time.Now().Add(-time.Hour),
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo, vRepo := newEventFixture()
			repo.events[1] = tc.event
			vRepo.vehicles[5] = domain.Vehicle{ID: 5, OwnerID: 3}

			_, err := svc.Enter(context.Background(), 1, 5, 3)
			assert.ErrorIs(t, err, service.ErrEventNotActive)
		})
	}
}

func TestEventEnterValidatesVehicle(t *testing.T) {
	svc, repo, vRepo := newEventFixture()
	repo.events[1] = activeEvent(2)
	vRepo.vehicles[5] = domain.Vehicle{ID: 5, OwnerID: 3}

	_, err := svc.Enter(context.Background(), 1, 99, 3)
	assert.ErrorIs(t, err, service.ErrInvalidTarget)

	_, err = svc.Enter(context.Background(), 1, 5, 4)
	assert.ErrorIs(t, err, service.ErrNotAuthorized)
}

func TestEventEnterDuplicate(t *testing.T) {
	svc, repo, vRepo := newEventFixture()
	repo.events[1] = activeEvent(2)
	repo.addEntryErr = repository.ErrDuplicateEntry
	vRepo.vehicles[5] = domain.Vehicle{ID: 5, OwnerID: 3}

	_, err := svc.Enter(context.Background(), 1, 5, 3)
	assert.ErrorIs(t, err, service.ErrDuplicateEntry)
}

func TestEventEnterSucceeds(t *testing.T) {
	svc, repo, vRepo := newEventFixture()
	repo.events[1] = activeEvent(2)
	vRepo.vehicles[5] = domain.Vehicle{ID: 5, OwnerID: 3}

	entry, err := svc.Enter(context.Background(), 1, 5, 3)
	require.NoError(t, err)
	assert.Equal(t, uint(1), entry.EventID)
	assert.Equal(t, uint(5), entry.VehicleID)
}

func TestEventToggleVoteRejectsOwnEntry(t *testing.T) {
	svc, repo, vRepo := newEventFixture()
	repo.events[1] = activeEvent(2)
	repo.entries[10] = domain.EventEntry{ID: 10, EventID: 1, VehicleID: 5}
	vRepo.vehicles[5] = domain.Vehicle{ID: 5, OwnerID: 3}

	_, err := svc.ToggleVote(context.Background(), 1, 10, 3)
	assert.ErrorIs(t, err, service.ErrSelfVoteForbidden)
	assert.Zero(t, repo.toggleVoteCalls)
}

func TestEventToggleVoteRejectsForeignEntry(t *testing.T) {
	svc, repo, vRepo := newEventFixture()
	repo.events[1] = activeEvent(2)
	repo.events[2] = func() domain.Event {
		e := activeEvent(2)
		e.ID = 2
		return e
	}()
	repo.entries[10] = domain.EventEntry{ID: 10, EventID: 2, VehicleID: 5}
	vRepo.vehicles[5] = domain.Vehicle{ID: 5, OwnerID: 3}

	_, err := svc.ToggleVote(context.Background(), 1, 10, 4)
	assert.ErrorIs(t, err, service.ErrEntryNotFound)
	assert.Zero(t, repo.toggleVoteCalls)
}

func TestEventToggleVoteRequiresActiveEvent(t *testing.T) {
	svc, repo, vRepo := newEventFixture()
	end := time.Now().Add(-time.Minute)
	event := activeEvent(2)
	event.EndsAt = &end
	repo.events[1] = event
	repo.entries[10] = domain.EventEntry{ID: 10, EventID: 1, VehicleID: 5}
	vRepo.vehicles[5] = domain.Vehicle{ID: 5, OwnerID: 3}

	_, err := svc.ToggleVote(context.Background(), 1, 10, 4)
	assert.ErrorIs(t, err, service.ErrEventNotActive)
}

func TestEventToggleVotePassesThrough(t *testing.T) {
	svc, repo, vRepo := newEventFixture()
	repo.events[1] = activeEvent(2)
	repo.entries[10] = domain.EventEntry{ID: 10, EventID: 1, VehicleID: 5}
	repo.voteActive = true
	vRepo.vehicles[5] = domain.Vehicle{ID: 5, OwnerID: 3}

	active, err := svc.ToggleVote(context.Background(), 1, 10, 4)
	require.NoError(t, err)
	assert.True(t, active)
	assert.Equal(t, 1, repo.toggleVoteCalls)
}

func TestEventRankedEntriesAttachesVehicles(t *testing.T) {
	svc, repo, vRepo := newEventFixture()
	repo.ranked = []domain.EventEntry{
		{ID: 2, EventID: 1, VehicleID: 20, VoteCount: 3},
		{ID: 1, EventID: 1, VehicleID: 10, VoteCount: 1},
	}
	vRepo.vehicles[10] = domain.Vehicle{ID: 10, Title: "CB750"}
	vRepo.vehicles[20] = domain.Vehicle{ID: 20, Title: "SR400"}

	entries, err := svc.RankedEntries(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.NotNil(t, entries[0].Vehicle)
	assert.Equal(t, "SR400", entries[0].Vehicle.Title)
	require.NotNil(t, entries[1].Vehicle)
	assert.Equal(t, "CB750", entries[1].Vehicle.Title)
}

func TestEventTopNTruncates(t *testing.T) {
	svc, repo, _ := newEventFixture()
	repo.ranked = []domain.EventEntry{
		{ID: 3, VehicleID: 30, VoteCount: 5},
		{ID: 2, VehicleID: 20, VoteCount: 3},
		{ID: 1, VehicleID: 10, VoteCount: 1},
	}

	top, err := svc.TopN(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Len(t, top, 2)

	all, err := svc.TopN(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestEventWinnersVisible(t *testing.T) {
	teamID := uint(7)
	end := time.Now().Add(-time.Minute)

	closedPublic := domain.Event{OrganizerID: 2, OrganizerTeamID: &teamID, StartsAt: time.Now().Add(-time.Hour), EndsAt: &end, IsPublished: true, WinnersPublic: true}
	closedPrivate := closedPublic
	closedPrivate.WinnersPublic = false
	activePublic := closedPublic
	activePublic.EndsAt = nil

	cases := []struct {
		name        string
		event       domain.Event
		requesterID uint
		want        bool
	}{
		{"organizer always sees winners", closedPrivate, 2, true},
		{"team admin always sees winners", closedPrivate, 9, true},
		{"public sees closed published winners", closedPublic, 4, true},
		{"public blind while event active", activePublic, 4, false},
		{"public blind when winners private", closedPrivate, 4, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo, _ := newEventFixture()
			repo.admins[9] = true

			got, err := svc.WinnersVisible(context.Background(), tc.event, tc.requesterID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEventUpdateRequiresManager(t *testing.T) {
	svc, repo, _ := newEventFixture()
	repo.events[1] = activeEvent(2)

	_, err := svc.UpdateEvent(context.Background(), 4, activeEvent(2))
	assert.ErrorIs(t, err, service.ErrNotAuthorized)

	updated, err := svc.UpdateEvent(context.Background(), 2, activeEvent(2))
	require.NoError(t, err)
	assert.Equal(t, uint(1), updated.ID)
}

func TestEventCreateForTeamRequiresTeamAdmin(t *testing.T) {
	teamID := uint(7)

	svc, repo, _ := newEventFixture()
	repo.admins[2] = true

	event := domain.Event{OrganizerID: 3, OrganizerTeamID: &teamID, Title: "Team show", StartsAt: time.Now()}
	_, err := svc.CreateEvent(context.Background(), event)
	assert.ErrorIs(t, err, service.ErrNotAuthorized)

	event.OrganizerID = 2
	created, err := svc.CreateEvent(context.Background(), event)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
}

func TestEventOrganizerTeam(t *testing.T) {
	teamID := uint(7)

	svc, repo, _ := newEventFixture()
	repo.teams[teamID] = domain.Team{ID: teamID, Name: "Night Riders"}

	team, err := svc.OrganizerTeam(context.Background(), domain.Event{OrganizerTeamID: &teamID})
	require.NoError(t, err)
	require.NotNil(t, team)
	assert.Equal(t, "Night Riders", team.Name)

	team, err = svc.OrganizerTeam(context.Background(), domain.Event{})
	require.NoError(t, err)
	assert.Nil(t, team)

	// A disbanded or deleted team degrades to no team, not an error.
	gone := uint(99)
	team, err = svc.OrganizerTeam(context.Background(), domain.Event{OrganizerTeamID: &gone})
	require.NoError(t, err)
	assert.Nil(t, team)
}

func TestEventAwardWinnerMustBelongToEvent(t *testing.T) {
	svc, repo, _ := newEventFixture()
	repo.events[1] = activeEvent(2)
	repo.entries[10] = domain.EventEntry{ID: 10, EventID: 2, VehicleID: 5}

	winnerID := uint(10)
	_, err := svc.CreateAward(context.Background(), 2, domain.Award{EventID: 1, Title: "Best in Show", WinnerEntryID: &winnerID})
	assert.ErrorIs(t, err, service.ErrEntryNotFound)

	_, err = svc.CreateAward(context.Background(), 2, domain.Award{EventID: 1, Title: "Best in Show"})
	assert.NoError(t, err)
}
