package dao_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/motohub-api/internal/repository/dao"
)

func createEvent(t *testing.T, events *dao.EventDAO) dao.Event {
	t.Helper()

	event, err := events.Insert(context.Background(), dao.Event{
		OrganizerID: 1,
		Title:       "Sunday Ride-In Show",
		StartsAt:    time.Now().Add(-time.Hour),
		IsPublished: true,
	})
	require.NoError(t, err)

	return event
}

func TestEventInsertEntryRejectsDuplicate(t *testing.T) {
	db := newTestDB(t)
	events := dao.NewEventDAO(db)
	event := createEvent(t, events)
	ctx := context.Background()

	_, err := events.InsertEntry(ctx, dao.EventEntry{EventID: event.ID, VehicleID: 7})
	require.NoError(t, err)

	_, err = events.InsertEntry(ctx, dao.EventEntry{EventID: event.ID, VehicleID: 7})
	assert.ErrorIs(t, err, dao.ErrDuplicateEntry)

	// Same vehicle in another event is fine.
	other := createEvent(t, events)
	_, err = events.InsertEntry(ctx, dao.EventEntry{EventID: other.ID, VehicleID: 7})
	assert.NoError(t, err)
}

func TestEventToggleVoteFlips(t *testing.T) {
	db := newTestDB(t)
	events := dao.NewEventDAO(db)
	event := createEvent(t, events)
	ctx := context.Background()

	entry, err := events.InsertEntry(ctx, dao.EventEntry{EventID: event.ID, VehicleID: 7})
	require.NoError(t, err)

	active, err := events.ToggleVote(ctx, event.ID, entry.ID, 3)
	require.NoError(t, err)
	assert.True(t, active)

	active, err = events.ToggleVote(ctx, event.ID, entry.ID, 3)
	require.NoError(t, err)
	assert.False(t, active)

	active, err = events.ToggleVote(ctx, event.ID, entry.ID, 3)
	require.NoError(t, err)
	assert.True(t, active)
}

func TestEventRankedEntriesOrderAndTieBreak(t *testing.T) {
	db := newTestDB(t)
	events := dao.NewEventDAO(db)
	event := createEvent(t, events)
	ctx := context.Background()

	base := time.Now().Add(-30 * time.Minute)
	entryA, err := events.InsertEntry(ctx, dao.EventEntry{EventID: event.ID, VehicleID: 1, CreatedAt: base})
	require.NoError(t, err)
	entryB, err := events.InsertEntry(ctx, dao.EventEntry{EventID: event.ID, VehicleID: 2, CreatedAt: base.Add(time.Minute)})
	require.NoError(t, err)
	entryC, err := events.InsertEntry(ctx, dao.EventEntry{EventID: event.ID, VehicleID: 3, CreatedAt: base.Add(2 * time.Minute)})
	require.NoError(t, err)

	// A and B tie at three votes, C trails with one.
	for userID := uint(10); userID < 13; userID++ {
		_, err = events.ToggleVote(ctx, event.ID, entryA.ID, userID)
		require.NoError(t, err)
		_, err = events.ToggleVote(ctx, event.ID, entryB.ID, userID)
		require.NoError(t, err)
	}
	_, err = events.ToggleVote(ctx, event.ID, entryC.ID, 10)
	require.NoError(t, err)

	ranked, err := events.RankedEntries(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	// Ties go to the newer entry.
	assert.Equal(t, entryB.ID, ranked[0].ID)
	assert.Equal(t, int64(3), ranked[0].VoteCount)
	assert.Equal(t, entryA.ID, ranked[1].ID)
	assert.Equal(t, int64(3), ranked[1].VoteCount)
	assert.Equal(t, entryC.ID, ranked[2].ID)
	assert.Equal(t, int64(1), ranked[2].VoteCount)
}

func TestEventRankedEntriesIncludesZeroVoteEntries(t *testing.T) {
	db := newTestDB(t)
	events := dao.NewEventDAO(db)
	event := createEvent(t, events)
	ctx := context.Background()

	entry, err := events.InsertEntry(ctx, dao.EventEntry{EventID: event.ID, VehicleID: 1})
	require.NoError(t, err)

	ranked, err := events.RankedEntries(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, entry.ID, ranked[0].ID)
	assert.Equal(t, int64(0), ranked[0].VoteCount)
}

func TestEventVotedEntryIDs(t *testing.T) {
	db := newTestDB(t)
	events := dao.NewEventDAO(db)
	event := createEvent(t, events)
	ctx := context.Background()

	entryA, err := events.InsertEntry(ctx, dao.EventEntry{EventID: event.ID, VehicleID: 1})
	require.NoError(t, err)
	entryB, err := events.InsertEntry(ctx, dao.EventEntry{EventID: event.ID, VehicleID: 2})
	require.NoError(t, err)

	_, err = events.ToggleVote(ctx, event.ID, entryA.ID, 5)
	require.NoError(t, err)
	_, err = events.ToggleVote(ctx, event.ID, entryB.ID, 5)
	require.NoError(t, err)
	_, err = events.ToggleVote(ctx, event.ID, entryB.ID, 5)
	require.NoError(t, err)

	ids, err := events.VotedEntryIDs(ctx, event.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, []uint{entryA.ID}, ids)
}

func TestEventFindPublishedHidesDrafts(t *testing.T) {
	db := newTestDB(t)
	events := dao.NewEventDAO(db)
	ctx := context.Background()

	published := createEvent(t, events)
	_, err := events.Insert(ctx, dao.Event{
		OrganizerID: 1,
		Title:       "Draft show",
		StartsAt:    time.Now(),
	})
	require.NoError(t, err)

	found, err := events.FindPublished(ctx)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, published.ID, found[0].ID)
}

func TestEventAwardLifecycle(t *testing.T) {
	db := newTestDB(t)
	events := dao.NewEventDAO(db)
	event := createEvent(t, events)
	ctx := context.Background()

	second, err := events.InsertAward(ctx, dao.Award{EventID: event.ID, Title: "Best Paint", SortOrder: 1})
	require.NoError(t, err)
	first, err := events.InsertAward(ctx, dao.Award{EventID: event.ID, Title: "Best in Show", SortOrder: 0})
	require.NoError(t, err)

	awards, err := events.FindAwardsByEventID(ctx, event.ID)
	require.NoError(t, err)
	require.Len(t, awards, 2)
	assert.Equal(t, first.ID, awards[0].ID)
	assert.Equal(t, second.ID, awards[1].ID)

	entry, err := events.InsertEntry(ctx, dao.EventEntry{EventID: event.ID, VehicleID: 1})
	require.NoError(t, err)

	first.WinnerEntryID = &entry.ID
	updated, err := events.UpdateAward(ctx, first)
	require.NoError(t, err)
	require.NotNil(t, updated.WinnerEntryID)
	assert.Equal(t, entry.ID, *updated.WinnerEntryID)

	require.NoError(t, events.DeleteAward(ctx, event.ID, second.ID))
	err = events.DeleteAward(ctx, event.ID, second.ID)
	assert.ErrorIs(t, err, dao.ErrAwardNotFound)
}

func TestEventUpdateUnknownEvent(t *testing.T) {
	db := newTestDB(t)
	events := dao.NewEventDAO(db)

	_, err := events.Update(context.Background(), dao.Event{ID: 9999, Title: "ghost"})
	assert.ErrorIs(t, err, dao.ErrEventNotFound)
}
