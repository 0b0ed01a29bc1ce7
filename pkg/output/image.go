package output

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// Save writes img to path. The format follows the file extension (png, jpg,
// gif, tif, bmp). Missing parent directories are created.
func Save(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}

	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// EncodePNG returns img encoded as PNG
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Thumbnail scales img down to fit inside maxSize x maxSize, preserving the
// aspect ratio. Images that already fit are returned unchanged.
func Thumbnail(img image.Image, maxSize uint) image.Image {
	return resize.Thumbnail(maxSize, maxSize, img, resize.Bilinear)
}

// ThumbnailPath returns the sibling path used for the thumbnail of path,
// e.g. out/render.png -> out/render_thumb.png
func ThumbnailPath(path string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)] + "_thumb" + ext
}
