package codec

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	ico "github.com/sergeymakinen/go-ico"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrNotFound is returned by Load when none of the candidate paths exist.
var ErrNotFound = errors.New("codec: no input image found")

// Resolve returns the first candidate path that exists on disk.
func Resolve(candidates ...string) (string, error) {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w (tried %s)", ErrNotFound, strings.Join(candidates, ", "))
}

// Load decodes the first existing candidate into an NRGBA image with its
// origin at (0, 0). It returns the path that was used.
func Load(candidates ...string) (*image.NRGBA, string, error) {
	path, err := Resolve(candidates...)
	if err != nil {
		return nil, "", err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("codec: read %s: %w", path, err)
	}

	img, err := Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, "", fmt.Errorf("codec: decode %s: %w", path, err)
	}
	return img, path, nil
}

// decoders are matched by magic bytes, '?' matching any byte. TGA has no
// magic and is tried last. Do not use image.Decode: the tga package
// registers an empty magic that matches every input.
var decoders = []struct {
	name, magic string
	decode      func(io.Reader) (image.Image, error)
}{
	{"png", "\x89PNG\r\n\x1a\n", png.Decode},
	{"jpeg", "\xff\xd8", jpeg.Decode},
	{"gif", "GIF8?a", gif.Decode},
	{"webp", "RIFF????WEBP", nativewebp.Decode},
	{"bmp", "BM", bmp.Decode},
	{"tiff", "II*\x00", tiff.Decode},
	{"tiff", "MM\x00*", tiff.Decode},
	{"ico", "\x00\x00\x01\x00", ico.Decode},
}

func match(magic string, b []byte) bool {
	if len(magic) != len(b) {
		return false
	}
	for i, c := range b {
		if magic[i] != c && magic[i] != '?' {
			return false
		}
	}
	return true
}

// Decode sniffs the format of r and returns the image as NRGBA.
func Decode(r io.Reader) (*image.NRGBA, error) {
	img, _, err := decode(r)
	if err != nil {
		return nil, err
	}
	return ToNRGBA(img), nil
}

func decode(r io.Reader) (image.Image, string, error) {
	br := bufio.NewReader(r)
	for _, d := range decoders {
		b, err := br.Peek(len(d.magic))
		if err == nil && match(d.magic, b) {
			img, err := d.decode(br)
			return img, d.name, err
		}
	}
	img, err := tga.Decode(br)
	if err != nil {
		return nil, "", fmt.Errorf("unrecognised image format: %w", err)
	}
	return img, "tga", nil
}

// ToNRGBA converts any image to an NRGBA image anchored at (0, 0).
// Sources without an alpha channel come out fully opaque.
func ToNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) && n.Stride == 4*b.Dx() {
		return n
	}

	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	switch src.(type) {
	case *image.YCbCr, *image.Gray, *image.CMYK:
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	default:
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
				i := dst.PixOffset(x, y)
				dst.Pix[i] = c.R
				dst.Pix[i+1] = c.G
				dst.Pix[i+2] = c.B
				dst.Pix[i+3] = c.A
			}
		}
	}
	return dst
}
