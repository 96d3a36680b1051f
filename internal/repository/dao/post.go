package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrPostNotFound = errors.New("post not found")

type Post struct {
	ID          uint   `gorm:"primaryKey"`
	AuthorID    uint   `gorm:"not null;index"`
	VehicleID   *uint  `gorm:"index"`
	Title       string `gorm:"not null"`
	Body        string
	MainImageID *uint

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type PostDAO struct {
	db      *gorm.DB
	gallery *GalleryDAO
}

func NewPostDAO(db *gorm.DB, gallery *GalleryDAO) *PostDAO {
	return &PostDAO{
		db:      db,
		gallery: gallery,
	}
}

func (d *PostDAO) Insert(ctx context.Context, post Post) (Post, error) {
	result := d.db.WithContext(ctx).Create(&post)
	if result.Error != nil {
		return Post{}, result.Error
	}

	return post, nil
}

func (d *PostDAO) FindByID(ctx context.Context, id uint) (Post, error) {
	var post Post

	result := d.db.WithContext(ctx).First(&post, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Post{}, ErrPostNotFound
		}

		return Post{}, result.Error
	}

	return post, nil
}

func (d *PostDAO) FindAll(ctx context.Context) ([]Post, error) {
	var posts []Post

	result := d.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&posts)
	if result.Error != nil {
		return nil, result.Error
	}

	return posts, nil
}

func (d *PostDAO) FindByAuthorID(ctx context.Context, authorID uint) ([]Post, error) {
	var posts []Post

	result := d.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC").
		Find(&posts)
	if result.Error != nil {
		return nil, result.Error
	}

	return posts, nil
}

func (d *PostDAO) FindByIDs(ctx context.Context, ids []uint) ([]Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var posts []Post

	result := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&posts)
	if result.Error != nil {
		return nil, result.Error
	}

	return posts, nil
}

// Delete removes the post, its gallery rows and its reactions in one
// transaction. Returns the removed image rows for blob cleanup.
func (d *PostDAO) Delete(ctx context.Context, id uint) ([]Image, error) {
	var images []Image

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&Post{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPostNotFound
		}

		removed, err := d.gallery.DeleteParent(tx, "post", id)
		if err != nil {
			return err
		}
		images = removed

		return tx.
			Where("target_type = ? AND target_id = ?", "post", id).
			Delete(&Reaction{}).Error
	})
	if err != nil {
		return nil, err
	}

	return images, nil
}
