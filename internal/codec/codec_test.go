package codec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	ico "github.com/sergeymakinen/go-ico"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func checker(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{255, 255, 255, 255}
			if (x+y)%2 == 0 {
				c = color.NRGBA{139, 92, 246, 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func samePixels(t *testing.T, got, want *image.NRGBA) {
	t.Helper()
	if got.Bounds() != want.Bounds() {
		t.Fatalf("bounds = %v, want %v", got.Bounds(), want.Bounds())
	}
	b := want.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if g, w := got.NRGBAAt(x, y), want.NRGBAAt(x, y); g != w {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, g, w)
			}
		}
	}
}

func TestFormatFromExt(t *testing.T) {
	tests := []struct {
		ext     string
		want    Format
		wantErr bool
	}{
		{".png", PNG, false},
		{"PNG", PNG, false},
		{".webp", WebP, false},
		{".jpg", JPEG, false},
		{"jpeg", JPEG, false},
		{".ico", ICO, false},
		{".gif", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromExt(tt.ext)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFromExt(%q) error = %v, wantErr %v", tt.ext, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatFromExt(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}

func TestSaveLoadPNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "logo.png")
	src := checker(7, 5)
	src.SetNRGBA(3, 2, color.NRGBA{10, 20, 30, 0})

	if err := Save(path, src, PNG, 0); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, used, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if used != path {
		t.Errorf("Load used %q, want %q", used, path)
	}
	samePixels(t, got, src)

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries, want only the output file", len(entries))
	}
}

func TestSaveLoadWebPLossless(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.webp")
	src := checker(9, 4)

	if err := Save(path, src, WebP, 0); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	samePixels(t, got, src)
}

func TestDecodeSniffsFormats(t *testing.T) {
	src := checker(6, 4)
	tests := []struct {
		name     string
		encode   func(io.Writer, image.Image) error
		lossless bool
	}{
		{"png", png.Encode, true},
		{"jpeg", func(w io.Writer, m image.Image) error { return jpeg.Encode(w, m, nil) }, false},
		{"gif", func(w io.Writer, m image.Image) error { return gif.Encode(w, m, nil) }, false},
		{"webp", func(w io.Writer, m image.Image) error { return nativewebp.Encode(w, m, nil) }, true},
		{"bmp", bmp.Encode, true},
		{"tiff", func(w io.Writer, m image.Image) error { return tiff.Encode(w, m, nil) }, true},
		{"ico", ico.Encode, false},
		{"tga", tga.Encode, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.encode(&buf, src); err != nil {
				t.Fatalf("encode: %v", err)
			}
			img, format, err := decode(&buf)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if format != tt.name {
				t.Errorf("format = %q, want %q", format, tt.name)
			}
			got := ToNRGBA(img)
			if got.Bounds() != src.Bounds() {
				t.Fatalf("bounds = %v, want %v", got.Bounds(), src.Bounds())
			}
			if tt.lossless {
				samePixels(t, got, src)
			}
		})
	}
}

func TestLoadFallsBackToLaterCandidate(t *testing.T) {
	dir := t.TempDir()
	second := filepath.Join(dir, "second.png")
	if err := Save(second, checker(2, 2), PNG, 0); err != nil {
		t.Fatal(err)
	}

	_, used, err := Load(filepath.Join(dir, "missing.png"), "", second)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if used != second {
		t.Errorf("Load used %q, want %q", used, second)
	}
}

func TestLoadNotFound(t *testing.T) {
	dir := t.TempDir()
	_, _, err := Load(filepath.Join(dir, "a.png"), filepath.Join(dir, "b.png"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load error = %v, want ErrNotFound", err)
	}
}

func TestLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	_, _, err := Load(path)
	if err == nil {
		t.Fatal("Load of a corrupt file succeeded")
	}
	if errors.Is(err, ErrNotFound) {
		t.Errorf("corrupt file reported as not found: %v", err)
	}
}

func TestWriteAtomicFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")
	boom := errors.New("boom")

	err := WriteAtomic(path, func(w io.Writer) error {
		w.Write([]byte("partial"))
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WriteAtomic error = %v, want wrapped boom", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("directory holds %d entries after failed write, want 0", len(entries))
	}
}

func TestToNRGBANormalizesOrigin(t *testing.T) {
	src := checker(6, 6)
	sub := src.SubImage(image.Rect(2, 3, 5, 6)).(*image.NRGBA)

	got := ToNRGBA(sub)
	if got.Bounds() != image.Rect(0, 0, 3, 3) {
		t.Fatalf("bounds = %v, want (0,0)-(3,3)", got.Bounds())
	}
	if got.Stride != 12 {
		t.Errorf("stride = %d, want 12", got.Stride)
	}
	if g, w := got.NRGBAAt(0, 0), src.NRGBAAt(2, 3); g != w {
		t.Errorf("pixel (0,0) = %v, want %v", g, w)
	}
}

func TestToNRGBAOpaqueForGray(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 2, 2))
	g.SetGray(1, 1, color.Gray{Y: 200})
	got := ToNRGBA(g)
	if c := got.NRGBAAt(1, 1); c != (color.NRGBA{200, 200, 200, 255}) {
		t.Errorf("pixel = %v, want opaque gray 200", c)
	}
}

func TestEncodeICO(t *testing.T) {
	var imgs []image.Image
	for _, s := range []int{16, 32, 48} {
		imgs = append(imgs, checker(s, s))
	}
	var buf bytes.Buffer
	if err := EncodeICO(&buf, imgs); err != nil {
		t.Fatalf("EncodeICO: %v", err)
	}
	got, err := ico.DecodeAll(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("decoded %d icons, want 3", len(got))
	}
	for i, s := range []int{16, 32, 48} {
		if d := got[i].Bounds().Dx(); d != s {
			t.Errorf("icon %d width = %d, want %d", i, d, s)
		}
	}
}
