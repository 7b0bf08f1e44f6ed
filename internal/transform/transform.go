package transform

import (
	"bytes"
	"fmt"
	"image"
	"path"
	"strings"

	// We must import the image formats we want to support, even if we
	// don't use them directly. This "registers" their decoders with the
	// standard 'image' package.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

// Format is an output encoding: the imaging encoder to use, the canonical
// name recorded in the metadata table, and the content type for S3.
type Format struct {
	Encoding    imaging.Format
	Name        string
	ContentType string
}

var (
	JPEG = Format{imaging.JPEG, "JPEG", "image/jpeg"}
	PNG  = Format{imaging.PNG, "PNG", "image/png"}
	GIF  = Format{imaging.GIF, "GIF", "image/gif"}
	BMP  = Format{imaging.BMP, "BMP", "image/bmp"}
	TIFF = Format{imaging.TIFF, "TIFF", "image/tiff"}
)

var byExtension = map[string]Format{
	".jpg":  JPEG,
	".jpeg": JPEG,
	".png":  PNG,
	".gif":  GIF,
	".bmp":  BMP,
	".tif":  TIFF,
	".tiff": TIFF,
}

// FormatForKey maps a source object key to an output format by its file
// extension (case-insensitive). Unknown or missing extensions fall back
// to JPEG, so the mapping is total.
func FormatForKey(key string) Format {
	ext := strings.ToLower(path.Ext(key))
	if f, ok := byExtension[ext]; ok {
		return f
	}
	return JPEG
}

// Decode interprets raw bytes as an image.
func Decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// Resize scales img to exactly width x height. Aspect ratio is not
// preserved: the output always has the requested dimensions even when
// that distorts the source.
func Resize(img image.Image, width, height int) image.Image {
	return imaging.Resize(img, width, height, imaging.Lanczos)
}

// Encode serializes img in the given format.
func Encode(img image.Image, format Format) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, format.Encoding); err != nil {
		return nil, fmt.Errorf("failed to encode image as %s: %w", format.Name, err)
	}
	return buf.Bytes(), nil
}
