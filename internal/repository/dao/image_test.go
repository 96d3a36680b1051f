package dao_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vietanh2810/motohub-api/internal/repository/dao"
)

func createVehicle(t *testing.T, db *gorm.DB) uint {
	t.Helper()

	vehicle := dao.Vehicle{
		OwnerID: 1,
		Maker:   "Honda",
		Model:   "CB750",
		Title:   "Cafe racer build",
	}
	require.NoError(t, db.Create(&vehicle).Error)

	return vehicle.ID
}

func makeImages(n int) []dao.Image {
	images := make([]dao.Image, n)
	for i := range images {
		images[i] = dao.Image{FilePath: fmt.Sprintf("vehicles/2026/08/img-%d.webp", i)}
	}

	return images
}

func mainImageID(t *testing.T, db *gorm.DB, vehicleID uint) *uint {
	t.Helper()

	var vehicle dao.Vehicle
	require.NoError(t, db.First(&vehicle, vehicleID).Error)

	return vehicle.MainImageID
}

func TestGalleryInsertAssignsOrderAndMain(t *testing.T) {
	db := newTestDB(t)
	gallery := dao.NewGalleryDAO(db)
	vehicleID := createVehicle(t, db)
	ctx := context.Background()

	inserted, err := gallery.Insert(ctx, "vehicle", vehicleID, makeImages(3))
	require.NoError(t, err)
	require.Len(t, inserted, 3)

	images, err := gallery.FindByParent(ctx, "vehicle", vehicleID)
	require.NoError(t, err)
	require.Len(t, images, 3)
	for i, img := range images {
		assert.Equal(t, i, img.SortOrder)
	}

	ref := mainImageID(t, db, vehicleID)
	require.NotNil(t, ref)
	assert.Equal(t, images[0].ID, *ref)
}

func TestGalleryInsertTruncatesToRemainingCapacity(t *testing.T) {
	db := newTestDB(t)
	gallery := dao.NewGalleryDAO(db)
	vehicleID := createVehicle(t, db)
	ctx := context.Background()

	_, err := gallery.Insert(ctx, "vehicle", vehicleID, makeImages(7))
	require.NoError(t, err)

	inserted, err := gallery.Insert(ctx, "vehicle", vehicleID, makeImages(7))
	require.NoError(t, err)
	assert.Len(t, inserted, 3)

	images, err := gallery.FindByParent(ctx, "vehicle", vehicleID)
	require.NoError(t, err)
	require.Len(t, images, dao.MaxImagesPerParent)
	for i, img := range images {
		assert.Equal(t, i, img.SortOrder)
	}
}

func TestGalleryInsertRejectsFullGallery(t *testing.T) {
	db := newTestDB(t)
	gallery := dao.NewGalleryDAO(db)
	vehicleID := createVehicle(t, db)
	ctx := context.Background()

	_, err := gallery.Insert(ctx, "vehicle", vehicleID, makeImages(dao.MaxImagesPerParent))
	require.NoError(t, err)

	_, err = gallery.Insert(ctx, "vehicle", vehicleID, makeImages(1))
	assert.ErrorIs(t, err, dao.ErrTooManyImages)
}

func TestGalleryInsertInvalidParentType(t *testing.T) {
	db := newTestDB(t)
	gallery := dao.NewGalleryDAO(db)

	_, err := gallery.Insert(context.Background(), "team", 1, makeImages(1))
	assert.ErrorIs(t, err, dao.ErrInvalidParent)
}

func TestGalleryDeleteRecomputesMain(t *testing.T) {
	db := newTestDB(t)
	gallery := dao.NewGalleryDAO(db)
	vehicleID := createVehicle(t, db)
	ctx := context.Background()

	inserted, err := gallery.Insert(ctx, "vehicle", vehicleID, makeImages(3))
	require.NoError(t, err)

	deleted, err := gallery.Delete(ctx, "vehicle", vehicleID, []uint{inserted[0].ID})
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, inserted[0].FilePath, deleted[0].FilePath)

	ref := mainImageID(t, db, vehicleID)
	require.NotNil(t, ref)
	assert.Equal(t, inserted[1].ID, *ref)
}

func TestGalleryDeleteIgnoresForeignIDs(t *testing.T) {
	db := newTestDB(t)
	gallery := dao.NewGalleryDAO(db)
	vehicleID := createVehicle(t, db)
	otherID := createVehicle(t, db)
	ctx := context.Background()

	mine, err := gallery.Insert(ctx, "vehicle", vehicleID, makeImages(2))
	require.NoError(t, err)
	theirs, err := gallery.Insert(ctx, "vehicle", otherID, makeImages(2))
	require.NoError(t, err)

	deleted, err := gallery.Delete(ctx, "vehicle", vehicleID, []uint{theirs[0].ID, mine[1].ID, 9999})
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, mine[1].ID, deleted[0].ID)

	remaining, err := gallery.FindByParent(ctx, "vehicle", otherID)
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
}

func TestGalleryDeleteAllClearsParentPointer(t *testing.T) {
	db := newTestDB(t)
	gallery := dao.NewGalleryDAO(db)
	vehicleID := createVehicle(t, db)
	ctx := context.Background()

	inserted, err := gallery.Insert(ctx, "vehicle", vehicleID, makeImages(2))
	require.NoError(t, err)

	ids := []uint{inserted[0].ID, inserted[1].ID}
	_, err = gallery.Delete(ctx, "vehicle", vehicleID, ids)
	require.NoError(t, err)

	assert.Nil(t, mainImageID(t, db, vehicleID))
}

func TestGalleryReorderPartialAppendsLeftovers(t *testing.T) {
	db := newTestDB(t)
	gallery := dao.NewGalleryDAO(db)
	vehicleID := createVehicle(t, db)
	ctx := context.Background()

	inserted, err := gallery.Insert(ctx, "vehicle", vehicleID, makeImages(4))
	require.NoError(t, err)

	err = gallery.Reorder(ctx, "vehicle", vehicleID, []uint{inserted[2].ID, inserted[0].ID})
	require.NoError(t, err)

	images, err := gallery.FindByParent(ctx, "vehicle", vehicleID)
	require.NoError(t, err)
	require.Len(t, images, 4)

	want := []uint{inserted[2].ID, inserted[0].ID, inserted[1].ID, inserted[3].ID}
	for i, img := range images {
		assert.Equal(t, want[i], img.ID)
		assert.Equal(t, i, img.SortOrder)
	}

	ref := mainImageID(t, db, vehicleID)
	require.NotNil(t, ref)
	assert.Equal(t, inserted[2].ID, *ref)
}

func TestGalleryReorderIgnoresForeignAndDuplicateIDs(t *testing.T) {
	db := newTestDB(t)
	gallery := dao.NewGalleryDAO(db)
	vehicleID := createVehicle(t, db)
	ctx := context.Background()

	inserted, err := gallery.Insert(ctx, "vehicle", vehicleID, makeImages(3))
	require.NoError(t, err)

	err = gallery.Reorder(ctx, "vehicle", vehicleID,
		[]uint{9999, inserted[1].ID, inserted[1].ID, inserted[2].ID, inserted[0].ID})
	require.NoError(t, err)

	images, err := gallery.FindByParent(ctx, "vehicle", vehicleID)
	require.NoError(t, err)

	want := []uint{inserted[1].ID, inserted[2].ID, inserted[0].ID}
	for i, img := range images {
		assert.Equal(t, want[i], img.ID)
	}
}

func TestGalleryPinMainSurvivesReorder(t *testing.T) {
	db := newTestDB(t)
	gallery := dao.NewGalleryDAO(db)
	vehicleID := createVehicle(t, db)
	ctx := context.Background()

	inserted, err := gallery.Insert(ctx, "vehicle", vehicleID, makeImages(3))
	require.NoError(t, err)

	require.NoError(t, gallery.PinMain(ctx, "vehicle", vehicleID, inserted[2].ID))

	// Move the pinned image to the back of the gallery.
	err = gallery.Reorder(ctx, "vehicle", vehicleID, []uint{inserted[0].ID, inserted[1].ID, inserted[2].ID})
	require.NoError(t, err)

	ref := mainImageID(t, db, vehicleID)
	require.NotNil(t, ref)
	assert.Equal(t, inserted[2].ID, *ref)
}

func TestGalleryPinMainClearsPreviousPin(t *testing.T) {
	db := newTestDB(t)
	gallery := dao.NewGalleryDAO(db)
	vehicleID := createVehicle(t, db)
	ctx := context.Background()

	inserted, err := gallery.Insert(ctx, "vehicle", vehicleID, makeImages(3))
	require.NoError(t, err)

	require.NoError(t, gallery.PinMain(ctx, "vehicle", vehicleID, inserted[1].ID))
	require.NoError(t, gallery.PinMain(ctx, "vehicle", vehicleID, inserted[2].ID))

	images, err := gallery.FindByParent(ctx, "vehicle", vehicleID)
	require.NoError(t, err)

	var pinned []uint
	for _, img := range images {
		if img.IsMain {
			pinned = append(pinned, img.ID)
		}
	}
	assert.Equal(t, []uint{inserted[2].ID}, pinned)
}

func TestGalleryDeletePinnedFallsBackToOrder(t *testing.T) {
	db := newTestDB(t)
	gallery := dao.NewGalleryDAO(db)
	vehicleID := createVehicle(t, db)
	ctx := context.Background()

	inserted, err := gallery.Insert(ctx, "vehicle", vehicleID, makeImages(3))
	require.NoError(t, err)

	require.NoError(t, gallery.PinMain(ctx, "vehicle", vehicleID, inserted[1].ID))

	_, err = gallery.Delete(ctx, "vehicle", vehicleID, []uint{inserted[1].ID})
	require.NoError(t, err)

	ref := mainImageID(t, db, vehicleID)
	require.NotNil(t, ref)
	assert.Equal(t, inserted[0].ID, *ref)
}

func TestGalleryPinMainUnknownImage(t *testing.T) {
	db := newTestDB(t)
	gallery := dao.NewGalleryDAO(db)
	vehicleID := createVehicle(t, db)

	err := gallery.PinMain(context.Background(), "vehicle", vehicleID, 9999)
	assert.ErrorIs(t, err, dao.ErrImageNotFound)
}

func TestGallerySingleImageIsAlwaysMain(t *testing.T) {
	db := newTestDB(t)
	gallery := dao.NewGalleryDAO(db)
	vehicleID := createVehicle(t, db)
	ctx := context.Background()

	inserted, err := gallery.Insert(ctx, "vehicle", vehicleID, makeImages(1))
	require.NoError(t, err)

	ref := mainImageID(t, db, vehicleID)
	require.NotNil(t, ref)
	assert.Equal(t, inserted[0].ID, *ref)
}
