package service_test

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/motohub-api/internal/domain"
	"github.com/vietanh2810/motohub-api/internal/service"
)

type fakeGalleryRepo struct {
	added      []domain.Image
	addErr     error
	truncateTo int
	deleted    []domain.Image
	reordered  []uint
	pinErr     error
	pinnedID   uint
}

func (f *fakeGalleryRepo) ImagesOf(_ context.Context, _ domain.ParentRef) ([]domain.Image, error) {
	return nil, nil
}

func (f *fakeGalleryRepo) AddImages(_ context.Context, _ domain.ParentRef, images []domain.Image) ([]domain.Image, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	if f.truncateTo > 0 && len(images) > f.truncateTo {
		images = images[:f.truncateTo]
	}
	for i := range images {
		images[i].ID = uint(i + 1)
	}
	f.added = append(f.added, images...)
	return images, nil
}

func (f *fakeGalleryRepo) DeleteImages(_ context.Context, _ domain.ParentRef, _ []uint) ([]domain.Image, error) {
	return f.deleted, nil
}

func (f *fakeGalleryRepo) Reorder(_ context.Context, _ domain.ParentRef, orderedIDs []uint) error {
	f.reordered = orderedIDs
	return nil
}

func (f *fakeGalleryRepo) PinMain(_ context.Context, _ domain.ParentRef, imageID uint) error {
	if f.pinErr != nil {
		return f.pinErr
	}
	f.pinnedID = imageID
	return nil
}

type fakeStore struct {
	saved   map[string][]byte
	deleted []string
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: map[string][]byte{}}
}

func (f *fakeStore) Save(name string, data []byte) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.saved[name] = data
	return name, nil
}

func (f *fakeStore) Delete(ref string) error {
	f.deleted = append(f.deleted, ref)
	return nil
}

func (f *fakeStore) Open(ref string) ([]byte, error) {
	data, ok := f.saved[ref]
	if !ok {
		return nil, fmt.Errorf("no blob %q", ref)
	}
	return data, nil
}

func validUpload(t *testing.T) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 40, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 6), G: uint8(y * 8), B: 120, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func vehicleParent() domain.ParentRef {
	return domain.ParentRef{Type: domain.ParentVehicle, ID: 1}
}

func TestGalleryAddImagesRejectsBatchOnBadFile(t *testing.T) {
	repo := &fakeGalleryRepo{}
	store := newFakeStore()
	svc := service.NewGalleryService(repo, store)

	files := [][]byte{validUpload(t), []byte("not an image")}
	_, err := svc.AddImages(context.Background(), vehicleParent(), files)

	assert.ErrorIs(t, err, service.ErrInvalidImage)
	assert.Empty(t, store.saved)
	assert.Empty(t, repo.added)
}

func TestGalleryAddImagesCapsUploadCount(t *testing.T) {
	repo := &fakeGalleryRepo{}
	store := newFakeStore()
	svc := service.NewGalleryService(repo, store)

	upload := validUpload(t)
	files := make([][]byte, domain.MaxImagesPerParent+2)
	for i := range files {
		files[i] = upload
	}

	inserted, err := svc.AddImages(context.Background(), vehicleParent(), files)
	require.NoError(t, err)

	assert.Len(t, inserted, domain.MaxImagesPerParent)
	assert.Len(t, repo.added, domain.MaxImagesPerParent)
}

func TestGalleryAddImagesCleansUpOrphanedBlobs(t *testing.T) {
	repo := &fakeGalleryRepo{truncateTo: 1}
	store := newFakeStore()
	svc := service.NewGalleryService(repo, store)

	upload := validUpload(t)
	inserted, err := svc.AddImages(context.Background(), vehicleParent(), [][]byte{upload, upload})
	require.NoError(t, err)
	require.Len(t, inserted, 1)

	// The truncated second image had its file and thumb saved already.
	assert.Len(t, store.deleted, 2)
	for _, ref := range store.deleted {
		assert.NotEqual(t, inserted[0].FilePath, ref)
		assert.NotEqual(t, inserted[0].ThumbPath, ref)
	}
}

func TestGalleryAddImagesRollsBackBlobsOnRepoError(t *testing.T) {
	repo := &fakeGalleryRepo{addErr: service.ErrTooManyImages}
	store := newFakeStore()
	svc := service.NewGalleryService(repo, store)

	_, err := svc.AddImages(context.Background(), vehicleParent(), [][]byte{validUpload(t)})
	assert.ErrorIs(t, err, service.ErrTooManyImages)

	// File and thumb were both saved, both must be removed again.
	assert.Len(t, store.deleted, 2)
}

func TestGalleryAddImagesInvalidParent(t *testing.T) {
	svc := service.NewGalleryService(&fakeGalleryRepo{}, newFakeStore())

	_, err := svc.AddImages(context.Background(), domain.ParentRef{Type: "team", ID: 1}, [][]byte{validUpload(t)})
	assert.ErrorIs(t, err, service.ErrInvalidTarget)
}

func TestGalleryDeleteImagesRemovesBlobs(t *testing.T) {
	repo := &fakeGalleryRepo{
		deleted: []domain.Image{
			{ID: 1, FilePath: "vehicles/a.webp", ThumbPath: "vehicles/thumbs/a.webp"},
			{ID: 2, FilePath: "vehicles/b.webp"},
		},
	}
	store := newFakeStore()
	svc := service.NewGalleryService(repo, store)

	require.NoError(t, svc.DeleteImages(context.Background(), vehicleParent(), []uint{1, 2}))
	assert.ElementsMatch(t,
		[]string{"vehicles/a.webp", "vehicles/thumbs/a.webp", "vehicles/b.webp"},
		store.deleted)
}

func TestGalleryPinMainVehicleOnly(t *testing.T) {
	repo := &fakeGalleryRepo{}
	svc := service.NewGalleryService(repo, newFakeStore())
	ctx := context.Background()

	err := svc.PinMain(ctx, domain.ParentRef{Type: domain.ParentPost, ID: 1}, 5)
	assert.ErrorIs(t, err, service.ErrInvalidTarget)
	assert.Zero(t, repo.pinnedID)

	require.NoError(t, svc.PinMain(ctx, vehicleParent(), 5))
	assert.Equal(t, uint(5), repo.pinnedID)
}
