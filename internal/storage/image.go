package storage

import (
	"bytes"
	"fmt"
	"image"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

const (
	ThumbnailMaxSize = 256
	WebPQuality      = 70
)

// ThumbnailName derives the thumbnail file name from the photo file name.
func ThumbnailName(fileName string) string {
	return fileName + ".thumb.webp"
}

// ValidateImage confirms the bytes decode as a supported image format and
// that the sniffed content type is an image. Returns the detected MIME type.
func ValidateImage(data []byte) (string, error) {
	detected := http.DetectContentType(data)
	if !isAllowedImageMIME(detected) {
		return "", fmt.Errorf("unsupported content type %s", detected)
	}
	if _, _, err := image.Decode(bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("invalid image file: %w", err)
	}
	return normalizeContentType(detected), nil
}

// PutThumbnail decodes the photo, scales it down, and stores a WebP thumbnail
// next to the original.
func (s *DiskStore) PutThumbnail(fileName string, data []byte) error {
	if !isValidFileName(fileName) {
		return fmt.Errorf("invalid file name %q", fileName)
	}

	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}

	thumb := resizeToFit(decoded, ThumbnailMaxSize, ThumbnailMaxSize)
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, thumb, &webp.Options{Quality: WebPQuality}); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, ThumbnailName(fileName)), buf.Bytes(), 0o600)
}

func resizeToFit(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w <= 0 || h <= 0 {
		return src
	}
	if w <= maxWidth && h <= maxHeight {
		return src
	}

	scaleW := float64(maxWidth) / float64(w)
	scaleH := float64(maxHeight) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func isAllowedImageMIME(contentType string) bool {
	switch normalizeContentType(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}
