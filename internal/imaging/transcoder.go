// Package imaging normalizes uploaded images and derives gallery thumbnails.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
)

var ErrInvalidImage = errors.New("invalid image")

const (
	// Longest side of a normalized image. Sources below this are never upscaled.
	maxSide = 1600

	normalizeQuality = 82
	thumbQuality     = 80

	ThumbWidth  = 360
	ThumbHeight = 270
)

// Normalize re-encodes an upload for storage: capped to maxSide on the longest
// edge, PNG when the source format carries an alpha channel, lossy WEBP
// otherwise. Returns the encoded bytes and the extension to store them under.
func Normalize(src []byte) ([]byte, string, error) {
	img, err := imaging.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	alpha := hasAlphaChannel(img)

	bounds := img.Bounds()
	if w, h := bounds.Dx(), bounds.Dy(); w > maxSide || h > maxSide {
		img = imaging.Fit(img, maxSide, maxSide, imaging.Lanczos)
	}

	return encode(img, alpha, normalizeQuality)
}

// Thumbnail derives a fixed-aspect cover crop (ThumbWidth x ThumbHeight).
// It is a best-effort artifact; callers log and continue on error.
func Thumbnail(src []byte) ([]byte, string, error) {
	img, err := imaging.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	alpha := hasAlphaChannel(img)

	img = imaging.Fill(img, ThumbWidth, ThumbHeight, imaging.Center, imaging.Lanczos)

	return encode(img, alpha, thumbQuality)
}

func encode(img image.Image, alpha bool, quality float32) ([]byte, string, error) {
	var buf bytes.Buffer

	if alpha {
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, "", fmt.Errorf("png.Encode -> %w", err)
		}

		return buf.Bytes(), ".png", nil
	}

	opts, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, quality)
	if err != nil {
		return nil, "", fmt.Errorf("encoder.NewLossyEncoderOptions -> %w", err)
	}
	opts.Method = 6

	if err := webp.Encode(&buf, img, opts); err != nil {
		return nil, "", fmt.Errorf("webp.Encode -> %w", err)
	}

	return buf.Bytes(), ".webp", nil
}

// hasAlphaChannel reports whether the decoded source format carries an alpha
// channel. Stdlib decoders produce the NRGBA variants only for alpha-channel
// sources; opaque truecolor comes back as RGBA, RGBA64 or YCbCr. Must run on
// the freshly decoded image: resizing converts everything to NRGBA.
func hasAlphaChannel(img image.Image) bool {
	switch m := img.(type) {
	case *image.NRGBA, *image.NRGBA64, *image.NYCbCrA:
		return true
	case *image.Paletted:
		return !m.Opaque()
	}

	return false
}
