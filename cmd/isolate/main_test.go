package main

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"logo-asset-kit/internal/codec"
	"logo-asset-kit/internal/config"
)

var (
	white = color.NRGBA{255, 255, 255, 255}
	black = color.NRGBA{0, 0, 0, 255}
)

// whiteWithBlackCenter is a 5x5 white square with one black pixel in the middle.
func whiteWithBlackCenter() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 5, 5))
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			img.SetNRGBA(x, y, white)
		}
	}
	img.SetNRGBA(2, 2, black)
	return img
}

func testConfig(dir string) config.Config {
	var cfg config.Config
	cfg.Resolve(config.Flags{BaseDir: dir, Source: "logo.png", Master: "master.png"})
	return cfg
}

func TestRunWritesTransparentMaster(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	if err := codec.Save(cfg.Source, whiteWithBlackCenter(), codec.PNG, 0); err != nil {
		t.Fatal(err)
	}

	st, err := run(cfg, true)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if st.Cleared != 24 || st.Kept != 0 || st.Removed != 0 {
		t.Errorf("stats = %+v, want 24 cleared and no islands", st)
	}

	master, _, err := codec.Load(cfg.Master)
	if err != nil {
		t.Fatalf("reload master: %v", err)
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			want := uint8(0)
			if x == 2 && y == 2 {
				want = 255
			}
			if got := master.NRGBAAt(x, y).A; got != want {
				t.Errorf("alpha(%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
	if got := master.NRGBAAt(2, 2); got != black {
		t.Errorf("center pixel = %v, want %v", got, black)
	}
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)

	_, err := run(cfg, true)
	if !errors.Is(err, codec.ErrNotFound) {
		t.Fatalf("run error = %v, want ErrNotFound", err)
	}
	if _, err := os.Stat(cfg.Master); !os.IsNotExist(err) {
		t.Errorf("master should not exist, stat err = %v", err)
	}
}

func TestRunPrefersPreferredSource(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.PreferredSources = []string{filepath.Join(dir, "missing.png"), filepath.Join(dir, "preferred.png")}

	if err := codec.Save(cfg.Source, whiteWithBlackCenter(), codec.PNG, 0); err != nil {
		t.Fatal(err)
	}
	// Fully black: nothing to clear.
	preferred := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	for i := 0; i < len(preferred.Pix); i += 4 {
		preferred.Pix[i+3] = 255
	}
	if err := codec.Save(cfg.PreferredSources[1], preferred, codec.PNG, 0); err != nil {
		t.Fatal(err)
	}

	st, err := run(cfg, false)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if st.Cleared != 0 {
		t.Errorf("Cleared = %d, want 0 from the preferred black source", st.Cleared)
	}

	// An explicit input ignores the preferred list.
	st, err = run(cfg, true)
	if err != nil {
		t.Fatalf("run with explicit input: %v", err)
	}
	if st.Cleared != 24 {
		t.Errorf("Cleared = %d, want 24 from the explicit source", st.Cleared)
	}
}
