package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	"github.com/cenkalti/dominantcolor"

	"logo-asset-kit/internal/codec"
	"logo-asset-kit/internal/config"
	"logo-asset-kit/internal/isolate"
)

func main() {
	threshold := flag.Int("threshold", int(isolate.DefaultThreshold), "Whiteness threshold")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: inspect [-threshold N] image...")
		os.Exit(2)
	}
	th, err := parseThreshold(*threshold)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	status := 0
	for _, path := range flag.Args() {
		img, _, err := codec.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			status = 1
			continue
		}
		report(path, img, th)
	}
	os.Exit(status)
}

func parseThreshold(v int) (uint8, error) {
	if v < config.MinThreshold || v > config.MaxThreshold {
		return 0, fmt.Errorf("threshold %d out of range %d-%d", v, config.MinThreshold, config.MaxThreshold)
	}
	return uint8(v), nil
}

func report(name string, img *image.NRGBA, threshold uint8) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	total := w * h
	if total == 0 {
		fmt.Printf("%s: empty image\n", name)
		return
	}

	var minA, maxA uint8 = 255, 0
	opaque, transparent, opaqueWhite := 0, 0, 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*img.Stride + x*4
			a := img.Pix[i+3]
			if a < minA {
				minA = a
			}
			if a > maxA {
				maxA = a
			}
			switch a {
			case 255:
				opaque++
			case 0:
				transparent++
			}
			if a != 0 && isolate.IsWhite(img.Pix[i], img.Pix[i+1], img.Pix[i+2], threshold) {
				opaqueWhite++
			}
		}
	}

	fmt.Printf("%s: %dx%d, alpha: min=%d max=%d opaque=%d/%d (%.0f%%) transparent=%d (%.0f%%)\n",
		name, w, h, minA, maxA, opaque, total, 100*float64(opaque)/float64(total),
		transparent, 100*float64(transparent)/float64(total))
	fmt.Printf("  visible white pixels: %d, split line x=%d\n",
		opaqueWhite, isolate.SplitX(w, isolate.DefaultSplitFraction))
	fmt.Printf("  dominant color: %s\n", dominantcolor.Hex(dominantcolor.Find(img)))

	// Corner pixels show whether the border was cleared.
	for _, p := range [][2]int{{0, 0}, {w - 1, 0}, {0, h - 1}, {w - 1, h - 1}} {
		c := img.NRGBAAt(p[0], p[1])
		fmt.Printf("  Pixel(%d,%d): R=%d G=%d B=%d A=%d\n", p[0], p[1], c.R, c.G, c.B, c.A)
	}
}
