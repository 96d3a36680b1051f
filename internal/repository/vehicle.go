package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/motohub-api/internal/domain"
	"github.com/vietanh2810/motohub-api/internal/repository/dao"
)

var ErrVehicleNotFound = dao.ErrVehicleNotFound

type VehicleDAO interface {
	Insert(ctx context.Context, vehicle dao.Vehicle) (dao.Vehicle, error)
	FindByID(ctx context.Context, id uint) (dao.Vehicle, error)
	FindAll(ctx context.Context) ([]dao.Vehicle, error)
	FindByOwnerID(ctx context.Context, ownerID uint) ([]dao.Vehicle, error)
	FindByIDs(ctx context.Context, ids []uint) ([]dao.Vehicle, error)
	Update(ctx context.Context, vehicle dao.Vehicle) (dao.Vehicle, error)
	Delete(ctx context.Context, id uint) ([]dao.Image, error)
}

type VehicleRepository struct {
	dao VehicleDAO
}

func NewVehicleRepository(dao VehicleDAO) *VehicleRepository {
	return &VehicleRepository{
		dao: dao,
	}
}

func (r *VehicleRepository) domainToDao(v domain.Vehicle) dao.Vehicle {
	return dao.Vehicle{
		ID:            v.ID,
		OwnerID:       v.OwnerID,
		Maker:         v.Maker,
		Model:         v.Model,
		Title:         v.Title,
		Year:          v.Year,
		Description:   v.Description,
		CustomSummary: v.CustomSummary,
		MainImageID:   v.MainImageID,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func (r *VehicleRepository) daoToDomain(v dao.Vehicle) domain.Vehicle {
	return domain.Vehicle{
		ID:            v.ID,
		OwnerID:       v.OwnerID,
		Maker:         v.Maker,
		Model:         v.Model,
		Title:         v.Title,
		Year:          v.Year,
		Description:   v.Description,
		CustomSummary: v.CustomSummary,
		MainImageID:   v.MainImageID,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func (r *VehicleRepository) daosToDomain(vehicles []dao.Vehicle) []domain.Vehicle {
	out := make([]domain.Vehicle, len(vehicles))
	for i, v := range vehicles {
		out[i] = r.daoToDomain(v)
	}
	return out
}

func (r *VehicleRepository) imagesToDomain(vehicleID uint, imgs []dao.Image) []domain.Image {
	parent := domain.ParentRef{Type: domain.ParentVehicle, ID: vehicleID}
	images := make([]domain.Image, len(imgs))
	for i, img := range imgs {
		images[i] = domain.Image{
			ID:        img.ID,
			Parent:    parent,
			FilePath:  img.FilePath,
			ThumbPath: img.ThumbPath,
			SortOrder: img.SortOrder,
			IsMain:    img.IsMain,
			CreatedAt: img.CreatedAt,
		}
	}
	return images
}

func (r *VehicleRepository) Create(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(vehicle))
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *VehicleRepository) GetByID(ctx context.Context, id uint) (domain.Vehicle, error) {
	vehicle, err := r.dao.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrVehicleNotFound) {
			return domain.Vehicle{}, ErrVehicleNotFound
		}

		return domain.Vehicle{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(vehicle), nil
}

func (r *VehicleRepository) GetAll(ctx context.Context) ([]domain.Vehicle, error) {
	vehicles, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daosToDomain(vehicles), nil
}

func (r *VehicleRepository) GetByOwnerID(ctx context.Context, ownerID uint) ([]domain.Vehicle, error) {
	vehicles, err := r.dao.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByOwnerID -> %w", err)
	}

	return r.daosToDomain(vehicles), nil
}

func (r *VehicleRepository) GetByIDs(ctx context.Context, ids []uint) ([]domain.Vehicle, error) {
	vehicles, err := r.dao.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByIDs -> %w", err)
	}

	return r.daosToDomain(vehicles), nil
}

func (r *VehicleRepository) Update(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(vehicle))
	if err != nil {
		if errors.Is(err, dao.ErrVehicleNotFound) {
			return domain.Vehicle{}, ErrVehicleNotFound
		}

		return domain.Vehicle{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

// Delete removes the vehicle and returns the image rows that went with it so
// the caller can clean up blobs.
func (r *VehicleRepository) Delete(ctx context.Context, id uint) ([]domain.Image, error) {
	images, err := r.dao.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrVehicleNotFound) {
			return nil, ErrVehicleNotFound
		}

		return nil, fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return r.imagesToDomain(id, images), nil
}
