package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/motohub-api/internal/domain"
	"github.com/vietanh2810/motohub-api/internal/repository"
)

var ErrVehicleNotFound = repository.ErrVehicleNotFound

type VehicleRepository interface {
	Create(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error)
	GetByID(ctx context.Context, id uint) (domain.Vehicle, error)
	GetAll(ctx context.Context) ([]domain.Vehicle, error)
	GetByOwnerID(ctx context.Context, ownerID uint) ([]domain.Vehicle, error)
	Update(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error)
	Delete(ctx context.Context, id uint) ([]domain.Image, error)
}

type Gallery interface {
	ImagesOf(ctx context.Context, parent domain.ParentRef) ([]domain.Image, error)
	RemoveImageBlobs(images []domain.Image)
}

type VehicleService struct {
	repo    VehicleRepository
	gallery Gallery
}

func NewVehicleService(repo VehicleRepository, gallery Gallery) *VehicleService {
	return &VehicleService{
		repo:    repo,
		gallery: gallery,
	}
}

func (s *VehicleService) CreateVehicle(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error) {
	created, err := s.repo.Create(ctx, vehicle)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *VehicleService) GetVehicle(ctx context.Context, id uint) (domain.Vehicle, error) {
	vehicle, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return domain.Vehicle{}, ErrVehicleNotFound
		}

		return domain.Vehicle{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	images, err := s.gallery.ImagesOf(ctx, domain.ParentRef{Type: domain.ParentVehicle, ID: id})
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("s.gallery.ImagesOf -> %w", err)
	}
	vehicle.Images = images

	return vehicle, nil
}

func (s *VehicleService) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	vehicles, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.GetAll -> %w", err)
	}

	return vehicles, nil
}

func (s *VehicleService) ListByOwner(ctx context.Context, ownerID uint) ([]domain.Vehicle, error) {
	vehicles, err := s.repo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.GetByOwnerID -> %w", err)
	}

	return vehicles, nil
}

func (s *VehicleService) UpdateVehicle(ctx context.Context, requesterID uint, vehicle domain.Vehicle) (domain.Vehicle, error) {
	existing, err := s.repo.GetByID(ctx, vehicle.ID)
	if err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return domain.Vehicle{}, ErrVehicleNotFound
		}

		return domain.Vehicle{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}
	if existing.OwnerID != requesterID {
		return domain.Vehicle{}, ErrNotAuthorized
	}

	updated, err := s.repo.Update(ctx, vehicle)
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// DeleteVehicle removes the vehicle, its gallery, reactions and event entries
// in one transaction, then cleans up the blobs. Blob failures never fail the
// delete.
func (s *VehicleService) DeleteVehicle(ctx context.Context, requesterID, id uint) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return ErrVehicleNotFound
		}

		return fmt.Errorf("s.repo.GetByID -> %w", err)
	}
	if existing.OwnerID != requesterID {
		return ErrNotAuthorized
	}

	images, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	s.gallery.RemoveImageBlobs(images)

	return nil
}
