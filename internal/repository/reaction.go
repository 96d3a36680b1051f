package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/motohub-api/internal/domain"
	"github.com/vietanh2810/motohub-api/internal/repository/dao"
)

type ReactionDAO interface {
	Toggle(ctx context.Context, userID uint, kind, targetType string, targetID uint) (bool, int64, error)
	CountFor(ctx context.Context, kind, targetType string, targetID uint) (int64, error)
	BulkCountFor(ctx context.Context, kind, targetType string, targetIDs []uint) ([]dao.ReactionCount, error)
	FindByUser(ctx context.Context, userID uint, kind string) ([]dao.Reaction, error)
}

type ReactionRepository struct {
	dao ReactionDAO
}

func NewReactionRepository(dao ReactionDAO) *ReactionRepository {
	return &ReactionRepository{
		dao: dao,
	}
}

func (r *ReactionRepository) Toggle(ctx context.Context, userID uint, kind domain.ReactionKind, target domain.Target) (bool, int64, error) {
	active, count, err := r.dao.Toggle(ctx, userID, string(kind), string(target.Type), target.ID)
	if err != nil {
		return false, 0, fmt.Errorf("r.dao.Toggle -> %w", err)
	}

	return active, count, nil
}

func (r *ReactionRepository) CountFor(ctx context.Context, kind domain.ReactionKind, target domain.Target) (int64, error) {
	count, err := r.dao.CountFor(ctx, string(kind), string(target.Type), target.ID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountFor -> %w", err)
	}

	return count, nil
}

// BulkCountFor returns a count per target id, zero-filled for targets that have
// no reactions. One aggregate query regardless of how many targets are asked.
func (r *ReactionRepository) BulkCountFor(ctx context.Context, kind domain.ReactionKind, targetType domain.TargetType, targetIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(targetIDs))
	for _, id := range targetIDs {
		counts[id] = 0
	}

	rows, err := r.dao.BulkCountFor(ctx, string(kind), string(targetType), targetIDs)
	if err != nil {
		return nil, fmt.Errorf("r.dao.BulkCountFor -> %w", err)
	}
	for _, row := range rows {
		counts[row.TargetID] = row.Count
	}

	return counts, nil
}

// FavoritesOf returns the user's favorite targets, most recently favorited
// first.
func (r *ReactionRepository) FavoritesOf(ctx context.Context, userID uint) ([]domain.Favorite, error) {
	reactions, err := r.dao.FindByUser(ctx, userID, string(domain.ReactionFavorite))
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUser -> %w", err)
	}

	favorites := make([]domain.Favorite, len(reactions))
	for i, reaction := range reactions {
		favorites[i] = domain.Favorite{
			Target: domain.Target{
				Type: domain.TargetType(reaction.TargetType),
				ID:   reaction.TargetID,
			},
			FavoritedAt: reaction.CreatedAt,
		}
	}

	return favorites, nil
}
