package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/vietanh2810/motohub-api/internal/domain"
	imgproc "github.com/vietanh2810/motohub-api/internal/imaging"
	"github.com/vietanh2810/motohub-api/internal/repository"
	"github.com/vietanh2810/motohub-api/internal/storage"
)

var (
	ErrInvalidImage  = imgproc.ErrInvalidImage
	ErrTooManyImages = repository.ErrTooManyImages
	ErrImageNotFound = repository.ErrImageNotFound
)

type GalleryRepository interface {
	ImagesOf(ctx context.Context, parent domain.ParentRef) ([]domain.Image, error)
	AddImages(ctx context.Context, parent domain.ParentRef, images []domain.Image) ([]domain.Image, error)
	DeleteImages(ctx context.Context, parent domain.ParentRef, imageIDs []uint) ([]domain.Image, error)
	Reorder(ctx context.Context, parent domain.ParentRef, orderedIDs []uint) error
	PinMain(ctx context.Context, parent domain.ParentRef, imageID uint) error
}

type GalleryService struct {
	repo  GalleryRepository
	store storage.Store
}

func NewGalleryService(repo GalleryRepository, store storage.Store) *GalleryService {
	return &GalleryService{
		repo:  repo,
		store: store,
	}
}

func (s *GalleryService) ImagesOf(ctx context.Context, parent domain.ParentRef) ([]domain.Image, error) {
	images, err := s.repo.ImagesOf(ctx, parent)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ImagesOf -> %w", err)
	}

	return images, nil
}

// AddImages transcodes and stores the uploaded files, then appends them to the
// parent's gallery. All files are transcoded before anything is written; one
// undecodable file rejects the whole batch. Files past the per-parent capacity
// are silently dropped. Blobs that end up without a row are removed again,
// failures there are only logged.
func (s *GalleryService) AddImages(ctx context.Context, parent domain.ParentRef, files [][]byte) ([]domain.Image, error) {
	if !parent.Type.Valid() {
		return nil, ErrInvalidTarget
	}
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > domain.MaxImagesPerParent {
		files = files[:domain.MaxImagesPerParent]
	}

	type transcoded struct {
		data     []byte
		ext      string
		thumb    []byte
		thumbExt string
	}

	batch := make([]transcoded, len(files))
	for i, file := range files {
		data, ext, err := imgproc.Normalize(file)
		if err != nil {
			return nil, err
		}
		batch[i] = transcoded{data: data, ext: ext}

		thumb, thumbExt, err := imgproc.Thumbnail(file)
		if err != nil {
			zap.L().Warn("thumbnail generation failed", zap.Error(err))
			continue
		}
		batch[i].thumb = thumb
		batch[i].thumbExt = thumbExt
	}

	prefix := string(parent.Type) + "s"
	images := make([]domain.Image, len(batch))
	var saved []string
	for i, t := range batch {
		path, err := s.store.Save(storage.ObjectName(prefix, t.ext), t.data)
		if err != nil {
			s.removeBlobs(saved)
			return nil, fmt.Errorf("s.store.Save -> %w", err)
		}
		saved = append(saved, path)
		images[i] = domain.Image{FilePath: path}

		if t.thumb == nil {
			continue
		}
		thumbPath, err := s.store.Save(storage.ObjectName(prefix+"/thumbs", t.thumbExt), t.thumb)
		if err != nil {
			zap.L().Warn("thumbnail save failed", zap.Error(err))
			continue
		}
		saved = append(saved, thumbPath)
		images[i].ThumbPath = thumbPath
	}

	inserted, err := s.repo.AddImages(ctx, parent, images)
	if err != nil {
		s.removeBlobs(saved)
		if errors.Is(err, repository.ErrTooManyImages) {
			return nil, ErrTooManyImages
		}

		return nil, fmt.Errorf("s.repo.AddImages -> %w", err)
	}

	// Anything truncated away by the capacity cap has blobs but no row.
	kept := make(map[string]bool, len(inserted)*2)
	for _, img := range inserted {
		kept[img.FilePath] = true
		if img.ThumbPath != "" {
			kept[img.ThumbPath] = true
		}
	}
	var orphaned []string
	for _, path := range saved {
		if !kept[path] {
			orphaned = append(orphaned, path)
		}
	}
	s.removeBlobs(orphaned)

	return inserted, nil
}

// DeleteImages removes the given images from the parent. Ids belonging to
// other parents are ignored. Blob removal happens after the rows are gone and
// never fails the call.
func (s *GalleryService) DeleteImages(ctx context.Context, parent domain.ParentRef, imageIDs []uint) error {
	if !parent.Type.Valid() {
		return ErrInvalidTarget
	}

	deleted, err := s.repo.DeleteImages(ctx, parent, imageIDs)
	if err != nil {
		return fmt.Errorf("s.repo.DeleteImages -> %w", err)
	}

	s.RemoveImageBlobs(deleted)

	return nil
}

func (s *GalleryService) Reorder(ctx context.Context, parent domain.ParentRef, orderedIDs []uint) error {
	if !parent.Type.Valid() {
		return ErrInvalidTarget
	}

	if err := s.repo.Reorder(ctx, parent, orderedIDs); err != nil {
		return fmt.Errorf("s.repo.Reorder -> %w", err)
	}

	return nil
}

// PinMain marks an image as the parent's explicit main. Only vehicle galleries
// support pinning.
func (s *GalleryService) PinMain(ctx context.Context, parent domain.ParentRef, imageID uint) error {
	if parent.Type != domain.ParentVehicle {
		return ErrInvalidTarget
	}

	err := s.repo.PinMain(ctx, parent, imageID)
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return ErrImageNotFound
		}

		return fmt.Errorf("s.repo.PinMain -> %w", err)
	}

	return nil
}

// RemoveImageBlobs deletes the stored files behind image rows that are already
// gone. Failures are logged, never surfaced.
func (s *GalleryService) RemoveImageBlobs(images []domain.Image) {
	for _, img := range images {
		paths := []string{img.FilePath}
		if img.ThumbPath != "" {
			paths = append(paths, img.ThumbPath)
		}
		s.removeBlobs(paths)
	}
}

func (s *GalleryService) removeBlobs(paths []string) {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := s.store.Delete(path); err != nil {
			zap.L().Warn("blob delete failed", zap.String("path", path), zap.Error(err))
		}
	}
}
