package codec

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	ico "github.com/sergeymakinen/go-ico"
)

// Format is an output encoding.
type Format string

const (
	PNG  Format = "png"
	WebP Format = "webp"
	JPEG Format = "jpg"
	ICO  Format = "ico"
)

// DefaultJPEGQuality is used when a JPEG quality of zero is requested.
const DefaultJPEGQuality = 90

// FormatFromExt maps a file extension (with or without the dot) to a Format.
func FormatFromExt(ext string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "png":
		return PNG, nil
	case "webp":
		return WebP, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "ico":
		return ICO, nil
	}
	return "", fmt.Errorf("codec: unsupported output extension %q", ext)
}

// Encode writes img to w. quality only applies to JPEG.
// WebP output is always lossless.
func Encode(w io.Writer, img image.Image, f Format, quality int) error {
	switch f {
	case PNG:
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		return enc.Encode(w, img)
	case WebP:
		return nativewebp.Encode(w, img, nil)
	case JPEG:
		if quality <= 0 {
			quality = DefaultJPEGQuality
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case ICO:
		return ico.Encode(w, img)
	}
	return fmt.Errorf("codec: unknown format %q", f)
}

// EncodeICO writes every image in imgs as one entry of a single ICO file.
func EncodeICO(w io.Writer, imgs []image.Image) error {
	return ico.EncodeAll(w, imgs)
}

// Save encodes img to path, creating parent directories. The data is written
// to a temporary file next to path and renamed into place on success, so a
// failed write never leaves a partial file at path.
func Save(path string, img image.Image, f Format, quality int) error {
	return WriteAtomic(path, func(w io.Writer) error {
		return Encode(w, img, f, quality)
	})
}

// WriteAtomic creates path's directory, runs write against a temp file in
// it and renames the temp file to path once write and close both succeed.
func WriteAtomic(path string, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("codec: mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("codec: create temp for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("codec: encode %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("codec: close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("codec: chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("codec: rename %s: %w", path, err)
	}
	return nil
}
