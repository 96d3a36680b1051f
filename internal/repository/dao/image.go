package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrImageNotFound = errors.New("image not found")
	ErrTooManyImages = errors.New("too many images for parent")
	ErrInvalidParent = errors.New("invalid image parent")
)

const MaxImagesPerParent = 10

type Image struct {
	ID         uint   `gorm:"primaryKey"`
	ParentType string `gorm:"not null;index:idx_images_parent,priority:1"` // "vehicle" or "post"
	ParentID   uint   `gorm:"not null;index:idx_images_parent,priority:2"`
	FilePath   string `gorm:"not null"`
	ThumbPath  string
	SortOrder  int       `gorm:"not null;default:0;index:idx_images_parent,priority:3"`
	IsMain     bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time `gorm:"not null"`
}

type GalleryDAO struct {
	db *gorm.DB
}

func NewGalleryDAO(db *gorm.DB) *GalleryDAO {
	return &GalleryDAO{
		db: db,
	}
}

// parentTable maps a parent type to the table holding its main_image_id pointer.
func parentTable(parentType string) (string, error) {
	switch parentType {
	case "vehicle":
		return "vehicles", nil
	case "post":
		return "posts", nil
	default:
		return "", ErrInvalidParent
	}
}

func (d *GalleryDAO) FindByParent(ctx context.Context, parentType string, parentID uint) ([]Image, error) {
	var images []Image

	result := d.db.WithContext(ctx).
		Where("parent_type = ? AND parent_id = ?", parentType, parentID).
		Order("sort_order ASC, id ASC").
		Find(&images)
	if result.Error != nil {
		return nil, result.Error
	}

	return images, nil
}

func (d *GalleryDAO) CountByParent(ctx context.Context, parentType string, parentID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Image{}).
		Where("parent_type = ? AND parent_id = ?", parentType, parentID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// Insert appends images to a parent inside one transaction. The capacity cap is
// re-checked under the transaction; anything past the remaining capacity is
// dropped. The parent's main pointer is refreshed before commit. Returns the
// rows actually inserted so the caller can reconcile blobs.
func (d *GalleryDAO) Insert(ctx context.Context, parentType string, parentID uint, images []Image) ([]Image, error) {
	if _, err := parentTable(parentType); err != nil {
		return nil, err
	}

	var inserted []Image

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Image{}).
			Where("parent_type = ? AND parent_id = ?", parentType, parentID).
			Count(&count).Error; err != nil {
			return err
		}

		remaining := MaxImagesPerParent - int(count)
		if remaining <= 0 {
			return ErrTooManyImages
		}
		if len(images) > remaining {
			images = images[:remaining]
		}

		var maxOrder int
		row := tx.Model(&Image{}).
			Where("parent_type = ? AND parent_id = ?", parentType, parentID).
			Select("COALESCE(MAX(sort_order), -1)").
			Row()
		if err := row.Scan(&maxOrder); err != nil {
			return err
		}

		for i := range images {
			images[i].ParentType = parentType
			images[i].ParentID = parentID
			images[i].SortOrder = maxOrder + 1 + i
			images[i].IsMain = false
		}

		if err := tx.Create(&images).Error; err != nil {
			return err
		}
		inserted = images

		return d.recomputeMain(tx, parentType, parentID)
	})
	if err != nil {
		return nil, err
	}

	return inserted, nil
}

// Delete removes the given image ids scoped to the parent. Ids that belong to
// another parent, or to nothing, are ignored. Returns the rows that were
// deleted so the caller can clean up blobs after commit.
func (d *GalleryDAO) Delete(ctx context.Context, parentType string, parentID uint, imageIDs []uint) ([]Image, error) {
	if _, err := parentTable(parentType); err != nil {
		return nil, err
	}
	if len(imageIDs) == 0 {
		return nil, nil
	}

	var deleted []Image

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("parent_type = ? AND parent_id = ? AND id IN ?", parentType, parentID, imageIDs).
			Find(&deleted).Error; err != nil {
			return err
		}
		if len(deleted) == 0 {
			return nil
		}

		ids := make([]uint, len(deleted))
		for i, img := range deleted {
			ids[i] = img.ID
		}
		if err := tx.Delete(&Image{}, ids).Error; err != nil {
			return err
		}

		return d.recomputeMain(tx, parentType, parentID)
	})
	if err != nil {
		return nil, err
	}

	return deleted, nil
}

// Reorder assigns sort_order 0..n-1 to the named ids in the given order. Ids
// of the parent that are not named keep their relative order and are appended
// after the named ones. Foreign ids are ignored.
func (d *GalleryDAO) Reorder(ctx context.Context, parentType string, parentID uint, orderedIDs []uint) error {
	if _, err := parentTable(parentType); err != nil {
		return err
	}

	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var images []Image
		if err := tx.
			Where("parent_type = ? AND parent_id = ?", parentType, parentID).
			Order("sort_order ASC, id ASC").
			Find(&images).Error; err != nil {
			return err
		}

		owned := make(map[uint]bool, len(images))
		for _, img := range images {
			owned[img.ID] = true
		}

		next := 0
		named := make(map[uint]bool, len(orderedIDs))
		for _, id := range orderedIDs {
			if !owned[id] || named[id] {
				continue
			}
			named[id] = true
			if err := tx.Model(&Image{}).Where("id = ?", id).
				Update("sort_order", next).Error; err != nil {
				return err
			}
			next++
		}

		// Leftovers follow, in their previous relative order.
		for _, img := range images {
			if named[img.ID] {
				continue
			}
			if err := tx.Model(&Image{}).Where("id = ?", img.ID).
				Update("sort_order", next).Error; err != nil {
				return err
			}
			next++
		}

		return d.recomputeMain(tx, parentType, parentID)
	})
}

// PinMain marks one image as the explicit main of its parent, clearing the
// flag on siblings and pointing the parent at it, all in one transaction.
func (d *GalleryDAO) PinMain(ctx context.Context, parentType string, parentID uint, imageID uint) error {
	if _, err := parentTable(parentType); err != nil {
		return err
	}

	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var img Image
		if err := tx.
			Where("parent_type = ? AND parent_id = ? AND id = ?", parentType, parentID, imageID).
			First(&img).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrImageNotFound
			}
			return err
		}

		if err := tx.Model(&Image{}).
			Where("parent_type = ? AND parent_id = ? AND is_main", parentType, parentID).
			Update("is_main", false).Error; err != nil {
			return err
		}
		if err := tx.Model(&Image{}).Where("id = ?", img.ID).
			Update("is_main", true).Error; err != nil {
			return err
		}

		return d.recomputeMain(tx, parentType, parentID)
	})
}

// DeleteParent removes every image row of a parent as part of the parent's own
// deletion transaction. Returns the removed rows for blob cleanup. No main
// recompute: the parent row is going away with it.
func (d *GalleryDAO) DeleteParent(tx *gorm.DB, parentType string, parentID uint) ([]Image, error) {
	var images []Image

	if err := tx.
		Where("parent_type = ? AND parent_id = ?", parentType, parentID).
		Find(&images).Error; err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, nil
	}

	if err := tx.
		Where("parent_type = ? AND parent_id = ?", parentType, parentID).
		Delete(&Image{}).Error; err != nil {
		return nil, err
	}

	return images, nil
}

// recomputeMain re-derives the parent's main image pointer: the pinned image
// wins, otherwise the lowest (sort_order, id), otherwise NULL. Runs inside
// every mutating transaction so the pointer can never go stale.
func (d *GalleryDAO) recomputeMain(tx *gorm.DB, parentType string, parentID uint) error {
	table, err := parentTable(parentType)
	if err != nil {
		return err
	}

	var main Image
	result := tx.
		Where("parent_type = ? AND parent_id = ?", parentType, parentID).
		Order("is_main DESC, sort_order ASC, id ASC").
		First(&main)

	var ref *uint
	switch {
	case result.Error == nil:
		ref = &main.ID
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		ref = nil
	default:
		return result.Error
	}

	return tx.Table(table).Where("id = ?", parentID).
		Update("main_image_id", ref).Error
}
