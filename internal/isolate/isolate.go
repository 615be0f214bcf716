package isolate

import (
	"image"

	"logo-asset-kit/internal/logging"
)

const (
	// DefaultThreshold is the brightness every color channel must exceed
	// for a pixel to count as background.
	DefaultThreshold uint8 = 240

	// DefaultSplitFraction places the icon/text split line at 30% of the width.
	DefaultSplitFraction = 0.30
)

// Options tunes the two passes. Zero values select the defaults.
type Options struct {
	Threshold     uint8
	SplitFraction float64
}

func (o Options) withDefaults() Options {
	if o.Threshold == 0 {
		o.Threshold = DefaultThreshold
	}
	if o.SplitFraction <= 0 {
		o.SplitFraction = DefaultSplitFraction
	}
	return o
}

// Stats reports what Isolate did.
type Stats struct {
	Cleared int // pixels made transparent by the border flood fill
	Kept    int // islands left of the split line
	Removed int // islands right of the split line (text holes)
}

// Isolate removes the white background from img in place: first everything
// reachable from the border, then the enclosed white islands that sit in the
// text zone. img must have its origin at (0, 0).
func Isolate(img *image.NRGBA, opts Options) Stats {
	opts = opts.withDefaults()
	log := logging.Logger()

	var st Stats
	log.Debug("isolate: removing surrounding background")
	st.Cleared = RemoveBackground(img, opts.Threshold)

	log.Debug("isolate: scanning for text holes", "split_x", SplitX(img.Bounds().Dx(), opts.SplitFraction))
	st.Kept, st.Removed = RemoveTextHoles(img, opts.Threshold, opts.SplitFraction)

	log.Debug("isolate: done", "cleared", st.Cleared, "kept", st.Kept, "removed", st.Removed)
	return st
}

// IsWhite reports whether r, g and b all strictly exceed threshold.
func IsWhite(r, g, b, threshold uint8) bool {
	return r > threshold && g > threshold && b > threshold
}

// SplitX returns the x coordinate of the icon/text split line.
func SplitX(width int, fraction float64) int {
	return int(float64(width) * fraction)
}

func whiteAt(pix []uint8, i int, threshold uint8) bool {
	return IsWhite(pix[i], pix[i+1], pix[i+2], threshold)
}
