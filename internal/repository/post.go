package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/vietanh2810/motohub-api/internal/domain"
	"github.com/vietanh2810/motohub-api/internal/repository/dao"
)

var ErrPostNotFound = dao.ErrPostNotFound

type PostDAO interface {
	Insert(ctx context.Context, post dao.Post) (dao.Post, error)
	FindByID(ctx context.Context, id uint) (dao.Post, error)
	FindAll(ctx context.Context) ([]dao.Post, error)
	FindByAuthorID(ctx context.Context, authorID uint) ([]dao.Post, error)
	FindByIDs(ctx context.Context, ids []uint) ([]dao.Post, error)
	Delete(ctx context.Context, id uint) ([]dao.Image, error)
}

type PostRepository struct {
	dao PostDAO
}

func NewPostRepository(dao PostDAO) *PostRepository {
	return &PostRepository{
		dao: dao,
	}
}

func (r *PostRepository) domainToDao(p domain.Post) dao.Post {
	return dao.Post{
		ID:          p.ID,
		AuthorID:    p.AuthorID,
		VehicleID:   p.VehicleID,
		Title:       p.Title,
		Body:        p.Body,
		MainImageID: p.MainImageID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r *PostRepository) daoToDomain(p dao.Post) domain.Post {
	return domain.Post{
		ID:          p.ID,
		AuthorID:    p.AuthorID,
		VehicleID:   p.VehicleID,
		Title:       p.Title,
		Body:        p.Body,
		MainImageID: p.MainImageID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r *PostRepository) daosToDomain(posts []dao.Post) []domain.Post {
	out := make([]domain.Post, len(posts))
	for i, p := range posts {
		out[i] = r.daoToDomain(p)
	}
	return out
}

func (r *PostRepository) Create(ctx context.Context, post domain.Post) (domain.Post, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(post))
	if err != nil {
		return domain.Post{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *PostRepository) GetByID(ctx context.Context, id uint) (domain.Post, error) {
	post, err := r.dao.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrPostNotFound) {
			return domain.Post{}, ErrPostNotFound
		}

		return domain.Post{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(post), nil
}

func (r *PostRepository) GetAll(ctx context.Context) ([]domain.Post, error) {
	posts, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daosToDomain(posts), nil
}

func (r *PostRepository) GetByAuthorID(ctx context.Context, authorID uint) ([]domain.Post, error) {
	posts, err := r.dao.FindByAuthorID(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByAuthorID -> %w", err)
	}

	return r.daosToDomain(posts), nil
}

func (r *PostRepository) GetByIDs(ctx context.Context, ids []uint) ([]domain.Post, error) {
	posts, err := r.dao.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByIDs -> %w", err)
	}

	return r.daosToDomain(posts), nil
}

func (r *PostRepository) Delete(ctx context.Context, id uint) ([]domain.Image, error) {
	imgs, err := r.dao.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}

		return nil, fmt.Errorf("r.dao.Delete -> %w", err)
	}

	parent := domain.ParentRef{Type: domain.ParentPost, ID: id}
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

	return images, nil
}
