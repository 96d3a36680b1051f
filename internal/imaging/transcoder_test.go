package imaging_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/kolesa-team/go-webp/decoder"
	"github.com/kolesa-team/go-webp/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	imgproc "github.com/vietanh2810/motohub-api/internal/imaging"
)

func encodePNG(t *testing.T, width, height int, withAlpha bool) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: 90, A: 255})
		}
	}
	if withAlpha {
		img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 128})
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func encodeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))

	return buf.Bytes()
}

func decodeWebP(t *testing.T, data []byte) image.Image {
	t.Helper()

	img, err := webp.Decode(bytes.NewReader(data), &decoder.Options{})
	require.NoError(t, err)

	return img
}

func TestNormalizeDownscalesLongEdge(t *testing.T) {
	src := encodePNG(t, 3200, 1600, false)

	data, ext, err := imgproc.Normalize(src)
	require.NoError(t, err)
	assert.Equal(t, ".webp", ext)

	img := decodeWebP(t, data)
	assert.Equal(t, 1600, img.Bounds().Dx())
	assert.Equal(t, 800, img.Bounds().Dy())
}

func TestNormalizeNeverUpscales(t *testing.T) {
	src := encodePNG(t, 800, 600, false)

	data, ext, err := imgproc.Normalize(src)
	require.NoError(t, err)
	assert.Equal(t, ".webp", ext)

	img := decodeWebP(t, data)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())
}

func TestNormalizeKeepsAlphaAsPNG(t *testing.T) {
	src := encodePNG(t, 400, 300, true)

	data, ext, err := imgproc.Normalize(src)
	require.NoError(t, err)
	assert.Equal(t, ".png", ext)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestNormalizeAlphaSurvivesDownscale(t *testing.T) {
	src := encodePNG(t, 3200, 1600, true)

	data, ext, err := imgproc.Normalize(src)
	require.NoError(t, err)
	assert.Equal(t, ".png", ext)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 1600, img.Bounds().Dx())
	assert.Equal(t, 800, img.Bounds().Dy())
}

func TestNormalizeJPEGStaysLossyAfterDownscale(t *testing.T) {
	src := encodeJPEG(t, 2000, 1000)

	data, ext, err := imgproc.Normalize(src)
	require.NoError(t, err)
	assert.Equal(t, ".webp", ext)

	img := decodeWebP(t, data)
	assert.Equal(t, 1600, img.Bounds().Dx())
	assert.Equal(t, 800, img.Bounds().Dy())
}

func TestNormalizePortraitCap(t *testing.T) {
	src := encodePNG(t, 1000, 4000, false)

	data, _, err := imgproc.Normalize(src)
	require.NoError(t, err)

	img := decodeWebP(t, data)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 1600, img.Bounds().Dy())
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	_, _, err := imgproc.Normalize([]byte("definitely not an image"))
	assert.ErrorIs(t, err, imgproc.ErrInvalidImage)
}

func TestThumbnailCoverCrop(t *testing.T) {
	src := encodePNG(t, 1000, 1000, false)

	data, ext, err := imgproc.Thumbnail(src)
	require.NoError(t, err)
	assert.Equal(t, ".webp", ext)

	img := decodeWebP(t, data)
	assert.Equal(t, imgproc.ThumbWidth, img.Bounds().Dx())
	assert.Equal(t, imgproc.ThumbHeight, img.Bounds().Dy())
}

func TestThumbnailRejectsGarbage(t *testing.T) {
	_, _, err := imgproc.Thumbnail([]byte{0x00, 0x01, 0x02})
	assert.ErrorIs(t, err, imgproc.ErrInvalidImage)
}
