package media

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

const (
	// MaxEdge is the longest side, in pixels, an image keeps after Prepare.
	MaxEdge = 2400
	// MaxPixels bounds the decoded size of an upload. Compressed size says
	// little about it: a blank PNG of a few hundred KB can expand to GBs.
	MaxPixels = 40_000_000
)

// Prepare decodes the upload, applies EXIF orientation, shrinks it to fit
// MaxEdge and re-encodes it. PNG and GIF sources become PNG, everything else
// JPEG. Metadata does not survive re-encoding.
func Prepare(f *File) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(f.Data))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, ErrInvalidImage
	}
	img, err := imaging.Decode(bytes.NewReader(f.Data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, ErrInvalidImage
	}
	img = fit(img)

	format := imaging.JPEG
	if src, err := imaging.FormatFromFilename(f.Name); err == nil && (src == imaging.PNG || src == imaging.GIF) {
		format = imaging.PNG
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(85)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fit(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= MaxEdge && b.Dy() <= MaxEdge {
		return img
	}
	return imaging.Fit(img, MaxEdge, MaxEdge, imaging.Lanczos)
}
