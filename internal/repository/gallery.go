package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/motohub-api/internal/domain"
	"github.com/vietanh2810/motohub-api/internal/repository/dao"
)

var (
	ErrImageNotFound = dao.ErrImageNotFound
	ErrTooManyImages = dao.ErrTooManyImages
	ErrInvalidParent = dao.ErrInvalidParent
)

type GalleryDAO interface {
	FindByParent(ctx context.Context, parentType string, parentID uint) ([]dao.Image, error)
	CountByParent(ctx context.Context, parentType string, parentID uint) (int64, error)
	Insert(ctx context.Context, parentType string, parentID uint, images []dao.Image) ([]dao.Image, error)
	Delete(ctx context.Context, parentType string, parentID uint, imageIDs []uint) ([]dao.Image, error)
	Reorder(ctx context.Context, parentType string, parentID uint, orderedIDs []uint) error
	PinMain(ctx context.Context, parentType string, parentID uint, imageID uint) error
}

type GalleryRepository struct {
	dao GalleryDAO
}

func NewGalleryRepository(dao GalleryDAO) *GalleryRepository {
	return &GalleryRepository{
		dao: dao,
	}
}

func (r *GalleryRepository) daoToDomain(parent domain.ParentRef, img dao.Image) domain.Image {
	return domain.Image{
		ID:        img.ID,
		Parent:    parent,
		FilePath:  img.FilePath,
		ThumbPath: img.ThumbPath,
		SortOrder: img.SortOrder,
		IsMain:    img.IsMain,
		CreatedAt: img.CreatedAt,
	}
}

func (r *GalleryRepository) daosToDomain(parent domain.ParentRef, imgs []dao.Image) []domain.Image {
	images := make([]domain.Image, len(imgs))
	for i, img := range imgs {
		images[i] = r.daoToDomain(parent, img)
	}
	return images
}

func (r *GalleryRepository) ImagesOf(ctx context.Context, parent domain.ParentRef) ([]domain.Image, error) {
	imgs, err := r.dao.FindByParent(ctx, string(parent.Type), parent.ID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByParent -> %w", err)
	}

	return r.daosToDomain(parent, imgs), nil
}

func (r *GalleryRepository) CountOf(ctx context.Context, parent domain.ParentRef) (int64, error) {
	count, err := r.dao.CountByParent(ctx, string(parent.Type), parent.ID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByParent -> %w", err)
	}

	return count, nil
}

func (r *GalleryRepository) AddImages(ctx context.Context, parent domain.ParentRef, images []domain.Image) ([]domain.Image, error) {
	daoImages := make([]dao.Image, len(images))
	for i, img := range images {
		daoImages[i] = dao.Image{
			FilePath:  img.FilePath,
			ThumbPath: img.ThumbPath,
		}
	}

	inserted, err := r.dao.Insert(ctx, string(parent.Type), parent.ID, daoImages)
	if err != nil {
		if errors.Is(err, dao.ErrTooManyImages) {
			return nil, ErrTooManyImages
		}

		return nil, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daosToDomain(parent, inserted), nil
}

func (r *GalleryRepository) DeleteImages(ctx context.Context, parent domain.ParentRef, imageIDs []uint) ([]domain.Image, error) {
	deleted, err := r.dao.Delete(ctx, string(parent.Type), parent.ID, imageIDs)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return r.daosToDomain(parent, deleted), nil
}

func (r *GalleryRepository) Reorder(ctx context.Context, parent domain.ParentRef, orderedIDs []uint) error {
	if err := r.dao.Reorder(ctx, string(parent.Type), parent.ID, orderedIDs); err != nil {
		return fmt.Errorf("r.dao.Reorder -> %w", err)
	}

	return nil
}

func (r *GalleryRepository) PinMain(ctx context.Context, parent domain.ParentRef, imageID uint) error {
	err := r.dao.PinMain(ctx, string(parent.Type), parent.ID, imageID)
	if err != nil {
		if errors.Is(err, dao.ErrImageNotFound) {
			return ErrImageNotFound
		}

		return fmt.Errorf("r.dao.PinMain -> %w", err)
	}

	return nil
}
