package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Reaction struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"not null;uniqueIndex:idx_reactions_tuple,priority:1"`
	Kind       string `gorm:"not null;uniqueIndex:idx_reactions_tuple,priority:2"` // "like" or "favorite"
	TargetType string `gorm:"not null;uniqueIndex:idx_reactions_tuple,priority:3"` // "vehicle" or "post"
	TargetID   uint   `gorm:"not null;uniqueIndex:idx_reactions_tuple,priority:4"`

	CreatedAt time.Time `gorm:"not null"`
}

type ReactionDAO struct {
	db *gorm.DB
}

func NewReactionDAO(db *gorm.DB) *ReactionDAO {
	return &ReactionDAO{
		db: db,
	}
}

// Toggle flips the (user, kind, target) reaction and reports the resulting
// state plus the fresh count for that (kind, target). The delete path runs
// first; if nothing was deleted the row is created. A unique violation on the
// create means a concurrent request inserted the same row, which is the same
// outcome as ours succeeding.
func (d *ReactionDAO) Toggle(ctx context.Context, userID uint, kind, targetType string, targetID uint) (bool, int64, error) {
	var active bool

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("user_id = ? AND kind = ? AND target_type = ? AND target_id = ?",
				userID, kind, targetType, targetID).
			Delete(&Reaction{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			active = false
			return nil
		}

		reaction := Reaction{
			UserID:     userID,
			Kind:       kind,
			TargetType: targetType,
			TargetID:   targetID,
		}
		if err := tx.Create(&reaction).Error; err != nil {
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
		return false, 0, err
	}

	count, err := d.CountFor(ctx, kind, targetType, targetID)
	if err != nil {
		return false, 0, err
	}

	return active, count, nil
}

func (d *ReactionDAO) CountFor(ctx context.Context, kind, targetType string, targetID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Reaction{}).
		Where("kind = ? AND target_type = ? AND target_id = ?", kind, targetType, targetID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

type ReactionCount struct {
	TargetID uint
	Count    int64
}

// BulkCountFor returns counts for many targets of the same kind and type in a
// single GROUP BY query. Targets with no reactions produce no row.
func (d *ReactionDAO) BulkCountFor(ctx context.Context, kind, targetType string, targetIDs []uint) ([]ReactionCount, error) {
	if len(targetIDs) == 0 {
		return nil, nil
	}

	var counts []ReactionCount

	result := d.db.WithContext(ctx).Model(&Reaction{}).
		Select("target_id, COUNT(*) AS count").
		Where("kind = ? AND target_type = ? AND target_id IN ?", kind, targetType, targetIDs).
		Group("target_id").
		Scan(&counts)
	if result.Error != nil {
		return nil, result.Error
	}

	return counts, nil
}

// FindByUser returns the user's reactions of one kind, most recent first.
func (d *ReactionDAO) FindByUser(ctx context.Context, userID uint, kind string) ([]Reaction, error) {
	var reactions []Reaction

	result := d.db.WithContext(ctx).
		Where("user_id = ? AND kind = ?", userID, kind).
		Order("created_at DESC, id DESC").
		Find(&reactions)
	if result.Error != nil {
		return nil, result.Error
	}

	return reactions, nil
}
