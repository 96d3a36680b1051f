package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/motohub-api/internal/domain"
	"github.com/vietanh2810/motohub-api/internal/repository"
)

var (
	ErrInvalidReactionKind = errors.New("invalid reaction kind")
	ErrInvalidTarget       = errors.New("invalid target")
)

type ReactionRepository interface {
	Toggle(ctx context.Context, userID uint, kind domain.ReactionKind, target domain.Target) (bool, int64, error)
	CountFor(ctx context.Context, kind domain.ReactionKind, target domain.Target) (int64, error)
	BulkCountFor(ctx context.Context, kind domain.ReactionKind, targetType domain.TargetType, targetIDs []uint) (map[uint]int64, error)
	FavoritesOf(ctx context.Context, userID uint) ([]domain.Favorite, error)
}

type ReactionVehicleRepository interface {
	GetByID(ctx context.Context, id uint) (domain.Vehicle, error)
	GetByIDs(ctx context.Context, ids []uint) ([]domain.Vehicle, error)
}

type ReactionPostRepository interface {
	GetByID(ctx context.Context, id uint) (domain.Post, error)
	GetByIDs(ctx context.Context, ids []uint) ([]domain.Post, error)
}

type ReactionService struct {
	repo  ReactionRepository
	vRepo ReactionVehicleRepository
	pRepo ReactionPostRepository
}

func NewReactionService(repo ReactionRepository, vRepo ReactionVehicleRepository, pRepo ReactionPostRepository) *ReactionService {
	return &ReactionService{
		repo:  repo,
		vRepo: vRepo,
		pRepo: pRepo,
	}
}

// resolveTarget checks that the target points at a real row. Adding a target
// type means adding a case here, nothing else changes.
func (s *ReactionService) resolveTarget(ctx context.Context, target domain.Target) error {
	switch target.Type {
	case domain.TargetVehicle:
		_, err := s.vRepo.GetByID(ctx, target.ID)
		if err != nil {
			if errors.Is(err, repository.ErrVehicleNotFound) {
				return ErrInvalidTarget
			}
			return fmt.Errorf("s.vRepo.GetByID -> %w", err)
		}
		return nil
	case domain.TargetPost:
		_, err := s.pRepo.GetByID(ctx, target.ID)
		if err != nil {
			if errors.Is(err, repository.ErrPostNotFound) {
				return ErrInvalidTarget
			}
			return fmt.Errorf("s.pRepo.GetByID -> %w", err)
		}
		return nil
	default:
		return ErrInvalidTarget
	}
}

// Toggle flips the user's reaction on the target and returns whether it is now
// active plus the fresh total for that (kind, target).
func (s *ReactionService) Toggle(ctx context.Context, userID uint, kind domain.ReactionKind, target domain.Target) (bool, int64, error) {
	if !kind.Valid() {
		return false, 0, ErrInvalidReactionKind
	}
	if err := s.resolveTarget(ctx, target); err != nil {
		return false, 0, err
	}

	active, count, err := s.repo.Toggle(ctx, userID, kind, target)
	if err != nil {
		return false, 0, fmt.Errorf("s.repo.Toggle -> %w", err)
	}

	return active, count, nil
}

func (s *ReactionService) CountFor(ctx context.Context, kind domain.ReactionKind, target domain.Target) (int64, error) {
	if !kind.Valid() {
		return 0, ErrInvalidReactionKind
	}
	if !target.Type.Valid() {
		return 0, ErrInvalidTarget
	}

	count, err := s.repo.CountFor(ctx, kind, target)
	if err != nil {
		return 0, fmt.Errorf("s.repo.CountFor -> %w", err)
	}

	return count, nil
}

// BulkCountFor returns one count per requested target id, zero-filled. The
// underlying lookup is a single aggregate query however many ids are passed.
func (s *ReactionService) BulkCountFor(ctx context.Context, kind domain.ReactionKind, targetType domain.TargetType, targetIDs []uint) (map[uint]int64, error) {
	if !kind.Valid() {
		return nil, ErrInvalidReactionKind
	}
	if !targetType.Valid() {
		return nil, ErrInvalidTarget
	}

	counts, err := s.repo.BulkCountFor(ctx, kind, targetType, targetIDs)
	if err != nil {
		return nil, fmt.Errorf("s.repo.BulkCountFor -> %w", err)
	}

	return counts, nil
}

// FavoritesOf returns the user's favorites, most recently favorited first,
// resolved to the vehicles and posts behind them. Favorites whose target has
// since been deleted are dropped.
func (s *ReactionService) FavoritesOf(ctx context.Context, userID uint) ([]domain.Favorite, error) {
	favorites, err := s.repo.FavoritesOf(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FavoritesOf -> %w", err)
	}

	var vehicleIDs, postIDs []uint
	for _, fav := range favorites {
		switch fav.Target.Type {
		case domain.TargetVehicle:
			vehicleIDs = append(vehicleIDs, fav.Target.ID)
		case domain.TargetPost:
			postIDs = append(postIDs, fav.Target.ID)
		}
	}

	vehicles := make(map[uint]domain.Vehicle, len(vehicleIDs))
	if len(vehicleIDs) > 0 {
		rows, err := s.vRepo.GetByIDs(ctx, vehicleIDs)
		if err != nil {
			return nil, fmt.Errorf("s.vRepo.GetByIDs -> %w", err)
		}
		for _, v := range rows {
			vehicles[v.ID] = v
		}
	}

	posts := make(map[uint]domain.Post, len(postIDs))
	if len(postIDs) > 0 {
		rows, err := s.pRepo.GetByIDs(ctx, postIDs)
		if err != nil {
			return nil, fmt.Errorf("s.pRepo.GetByIDs -> %w", err)
		}
		for _, p := range rows {
			posts[p.ID] = p
		}
	}

	resolved := make([]domain.Favorite, 0, len(favorites))
	for _, fav := range favorites {
		switch fav.Target.Type {
		case domain.TargetVehicle:
			v, ok := vehicles[fav.Target.ID]
			if !ok {
				continue
			}
			fav.Vehicle = &v
		case domain.TargetPost:
			p, ok := posts[fav.Target.ID]
			if !ok {
				continue
			}
			fav.Post = &p
		default:
			continue
		}
		resolved = append(resolved, fav)
	}

	return resolved, nil
}
