package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/motohub-api/internal/domain"
	"github.com/vietanh2810/motohub-api/internal/repository"
)

var ErrPostNotFound = repository.ErrPostNotFound

type PostRepository interface {
	Create(ctx context.Context, post domain.Post) (domain.Post, error)
	GetByID(ctx context.Context, id uint) (domain.Post, error)
	GetAll(ctx context.Context) ([]domain.Post, error)
	GetByAuthorID(ctx context.Context, authorID uint) ([]domain.Post, error)
	Delete(ctx context.Context, id uint) ([]domain.Image, error)
}

type PostService struct {
	repo    PostRepository
	gallery Gallery
}

func NewPostService(repo PostRepository, gallery Gallery) *PostService {
	return &PostService{
		repo:    repo,
		gallery: gallery,
	}
}

func (s *PostService) CreatePost(ctx context.Context, post domain.Post) (domain.Post, error) {
	created, err := s.repo.Create(ctx, post)
	if err != nil {
		return domain.Post{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint) (domain.Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return domain.Post{}, ErrPostNotFound
		}

		return domain.Post{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	images, err := s.gallery.ImagesOf(ctx, domain.ParentRef{Type: domain.ParentPost, ID: id})
	if err != nil {
		return domain.Post{}, fmt.Errorf("s.gallery.ImagesOf -> %w", err)
	}
	post.Images = images

	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.GetAll -> %w", err)
	}

	return posts, nil
}

func (s *PostService) ListByAuthor(ctx context.Context, authorID uint) ([]domain.Post, error) {
	posts, err := s.repo.GetByAuthorID(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.GetByAuthorID -> %w", err)
	}

	return posts, nil
}

func (s *PostService) DeletePost(ctx context.Context, requesterID, id uint) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return ErrPostNotFound
		}

		return fmt.Errorf("s.repo.GetByID -> %w", err)
	}
	if existing.AuthorID != requesterID {
		return ErrNotAuthorized
	}

	images, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	s.gallery.RemoveImageBlobs(images)

	return nil
}
