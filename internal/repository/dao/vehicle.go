package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrVehicleNotFound = errors.New("vehicle not found")

type Vehicle struct {
	ID            uint   `gorm:"primaryKey"`
	OwnerID       uint   `gorm:"not null;index"`
	Maker         string `gorm:"not null"`
	Model         string `gorm:"not null"`
	Title         string `gorm:"not null"`
	Year          int
	Description   string
	CustomSummary string
	MainImageID   *uint

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type VehicleDAO struct {
	db      *gorm.DB
	gallery *GalleryDAO
}

func NewVehicleDAO(db *gorm.DB, gallery *GalleryDAO) *VehicleDAO {
	return &VehicleDAO{
		db:      db,
		gallery: gallery,
	}
}

func (d *VehicleDAO) Insert(ctx context.Context, vehicle Vehicle) (Vehicle, error) {
	result := d.db.WithContext(ctx).Create(&vehicle)
	if result.Error != nil {
		return Vehicle{}, result.Error
	}

	return vehicle, nil
}

func (d *VehicleDAO) FindByID(ctx context.Context, id uint) (Vehicle, error) {
	var vehicle Vehicle

	result := d.db.WithContext(ctx).First(&vehicle, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Vehicle{}, ErrVehicleNotFound
		}

		return Vehicle{}, result.Error
	}

	return vehicle, nil
}

func (d *VehicleDAO) FindAll(ctx context.Context) ([]Vehicle, error) {
	var vehicles []Vehicle

	result := d.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&vehicles)
	if result.Error != nil {
		return nil, result.Error
	}

	return vehicles, nil
}

func (d *VehicleDAO) FindByOwnerID(ctx context.Context, ownerID uint) ([]Vehicle, error) {
	var vehicles []Vehicle

	result := d.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Find(&vehicles)
	if result.Error != nil {
		return nil, result.Error
	}

	return vehicles, nil
}

func (d *VehicleDAO) FindByIDs(ctx context.Context, ids []uint) ([]Vehicle, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var vehicles []Vehicle

	result := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&vehicles)
	if result.Error != nil {
		return nil, result.Error
	}

	return vehicles, nil
}

func (d *VehicleDAO) Update(ctx context.Context, vehicle Vehicle) (Vehicle, error) {
	result := d.db.WithContext(ctx).Model(&Vehicle{}).
		Where("id = ?", vehicle.ID).
		Updates(map[string]interface{}{
			"maker":          vehicle.Maker,
			"model":          vehicle.Model,
			"title":          vehicle.Title,
			"year":           vehicle.Year,
			"description":    vehicle.Description,
			"custom_summary": vehicle.CustomSummary,
		})
	if result.Error != nil {
		return Vehicle{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Vehicle{}, ErrVehicleNotFound
	}

	return d.FindByID(ctx, vehicle.ID)
}

// Delete removes the vehicle together with its gallery rows, reactions, event
// entries and their votes, all in one transaction. Awards pointing at a
// removed entry keep their row but lose the winner reference. Returns the
// removed image rows so the caller can clean up blobs after commit.
func (d *VehicleDAO) Delete(ctx context.Context, id uint) ([]Image, error) {
	var images []Image

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&Vehicle{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrVehicleNotFound
		}

		removed, err := d.gallery.DeleteParent(tx, "vehicle", id)
		if err != nil {
			return err
		}
		images = removed

		if err := tx.
			Where("target_type = ? AND target_id = ?", "vehicle", id).
			Delete(&Reaction{}).Error; err != nil {
			return err
		}

		var entryIDs []uint
		if err := tx.Model(&EventEntry{}).
			Where("vehicle_id = ?", id).
			Pluck("id", &entryIDs).Error; err != nil {
			return err
		}
		if len(entryIDs) > 0 {
			if err := tx.Where("entry_id IN ?", entryIDs).Delete(&EventVote{}).Error; err != nil {
				return err
			}
			if err := tx.Model(&Award{}).
				Where("winner_entry_id IN ?", entryIDs).
				Update("winner_entry_id", nil).Error; err != nil {
				return err
			}
			if err := tx.Delete(&EventEntry{}, entryIDs).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return images, nil
}
