package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrEventNotFound  = errors.New("event not found")
	ErrEntryNotFound  = errors.New("entry not found")
	ErrDuplicateEntry = errors.New("vehicle already entered")
	ErrAwardNotFound  = errors.New("award not found")
)

type Event struct {
	ID              uint `gorm:"primaryKey"`
	OrganizerID     uint `gorm:"not null;index"`
	OrganizerTeamID *uint
	Title           string `gorm:"not null"`
	Description     string
	StartsAt        time.Time `gorm:"not null"`
	EndsAt          *time.Time
	IsPublished     bool `gorm:"not null;default:false"`
	WinnersPublic   bool `gorm:"not null;default:false"`
	SponsorName     string
	SponsorURL      string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type EventEntry struct {
	ID        uint `gorm:"primaryKey"`
	EventID   uint `gorm:"not null;uniqueIndex:idx_entries_event_vehicle,priority:1"`
	VehicleID uint `gorm:"not null;uniqueIndex:idx_entries_event_vehicle,priority:2"`

	CreatedAt time.Time `gorm:"not null"`
}

type EventVote struct {
	ID      uint `gorm:"primaryKey"`
	EventID uint `gorm:"not null;uniqueIndex:idx_votes_tuple,priority:1"`
	EntryID uint `gorm:"not null;uniqueIndex:idx_votes_tuple,priority:2"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_votes_tuple,priority:3"`

	CreatedAt time.Time `gorm:"not null"`
}

type Award struct {
	ID            uint   `gorm:"primaryKey"`
	EventID       uint   `gorm:"not null;index"`
	Title         string `gorm:"not null"`
	Description   string
	WinnerEntryID *uint
	SortOrder     int `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null"`
}

// RankedEntry is an entry joined with its live vote tally.
type RankedEntry struct {
	EventEntry
	VoteCount int64
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindPublished(ctx context.Context) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).
		Where("is_published").
		Order("starts_at DESC, id DESC").
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) Update(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Model(&Event{}).
		Where("id = ?", event.ID).
		Updates(map[string]interface{}{
			"title":          event.Title,
			"description":    event.Description,
			"starts_at":      event.StartsAt,
			"ends_at":        event.EndsAt,
			"is_published":   event.IsPublished,
			"winners_public": event.WinnersPublic,
			"sponsor_name":   event.SponsorName,
			"sponsor_url":    event.SponsorURL,
		})
	if result.Error != nil {
		return Event{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Event{}, ErrEventNotFound
	}

	return d.FindByID(ctx, event.ID)
}

// InsertEntry registers a vehicle into an event. The unique constraint on
// (event_id, vehicle_id) turns a concurrent double-enter into ErrDuplicateEntry.
func (d *EventDAO) InsertEntry(ctx context.Context, entry EventEntry) (EventEntry, error) {
	result := d.db.WithContext(ctx).Create(&entry)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return EventEntry{}, ErrDuplicateEntry
		}

		return EventEntry{}, result.Error
	}

	return entry, nil
}

func (d *EventDAO) FindEntryByID(ctx context.Context, id uint) (EventEntry, error) {
	var entry EventEntry

	result := d.db.WithContext(ctx).First(&entry, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return EventEntry{}, ErrEntryNotFound
		}

		return EventEntry{}, result.Error
	}

	return entry, nil
}

// ToggleVote flips (event, entry, voter) and reports the resulting state.
// Same delete-first shape as the reaction ledger.
func (d *EventDAO) ToggleVote(ctx context.Context, eventID, entryID, userID uint) (bool, error) {
	var active bool

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("event_id = ? AND entry_id = ? AND user_id = ?", eventID, entryID, userID).
			Delete(&EventVote{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			active = false
			return nil
		}

		vote := EventVote{
			EventID: eventID,
			EntryID: entryID,
			UserID:  userID,
		}
		if err := tx.Create(&vote).Error; err != nil {
			if isUniqueViolation(err) {
				active = true
				return nil
			}
			return err
		}

		active = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return active, nil
}

// RankedEntries returns an event's entries ordered by vote count descending,
// ties broken by newest entry first, then highest id. One query.
func (d *EventDAO) RankedEntries(ctx context.Context, eventID uint) ([]RankedEntry, error) {
	var ranked []RankedEntry

	result := d.db.WithContext(ctx).Model(&EventEntry{}).
		Select("event_entries.*, COUNT(event_votes.id) AS vote_count").
		Joins("LEFT JOIN event_votes ON event_votes.entry_id = event_entries.id").
		Where("event_entries.event_id = ?", eventID).
		Group("event_entries.id").
		Order("vote_count DESC, event_entries.created_at DESC, event_entries.id DESC").
		Scan(&ranked)
	if result.Error != nil {
		return nil, result.Error
	}

	return ranked, nil
}

// VotedEntryIDs lists the entries of an event the user currently votes for.
func (d *EventDAO) VotedEntryIDs(ctx context.Context, eventID, userID uint) ([]uint, error) {
	var ids []uint

	result := d.db.WithContext(ctx).Model(&EventVote{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Pluck("entry_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}

	return ids, nil
}

func (d *EventDAO) InsertAward(ctx context.Context, award Award) (Award, error) {
	result := d.db.WithContext(ctx).Create(&award)
	if result.Error != nil {
		return Award{}, result.Error
	}

	return award, nil
}

func (d *EventDAO) FindAwardByID(ctx context.Context, id uint) (Award, error) {
	var award Award

	result := d.db.WithContext(ctx).First(&award, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Award{}, ErrAwardNotFound
		}

		return Award{}, result.Error
	}

	return award, nil
}

func (d *EventDAO) FindAwardsByEventID(ctx context.Context, eventID uint) ([]Award, error) {
	var awards []Award

	result := d.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("sort_order ASC, id ASC").
		Find(&awards)
	if result.Error != nil {
		return nil, result.Error
	}

	return awards, nil
}

func (d *EventDAO) UpdateAward(ctx context.Context, award Award) (Award, error) {
	result := d.db.WithContext(ctx).Model(&Award{}).
		Where("id = ? AND event_id = ?", award.ID, award.EventID).
		Updates(map[string]interface{}{
			"title":           award.Title,
			"description":     award.Description,
			"winner_entry_id": award.WinnerEntryID,
			"sort_order":      award.SortOrder,
		})
	if result.Error != nil {
		return Award{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Award{}, ErrAwardNotFound
	}

	return d.FindAwardByID(ctx, award.ID)
}

func (d *EventDAO) DeleteAward(ctx context.Context, eventID, awardID uint) error {
	result := d.db.WithContext(ctx).
		Where("id = ? AND event_id = ?", awardID, eventID).
		Delete(&Award{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAwardNotFound
	}

	return nil
}
