package resize

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// Transparent is the letterbox color for variants without a background.
var Transparent = color.NRGBA{}

// Fit returns the size src (sw×sh) scales to when fitted inside w×h with its
// aspect ratio kept, never smaller than 1×1.
func Fit(sw, sh, w, h int) (int, int) {
	scale := math.Min(float64(w)/float64(sw), float64(h)/float64(sh))
	nw := int(math.Round(float64(sw) * scale))
	nh := int(math.Round(float64(sh) * scale))
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	if nw > w {
		nw = w
	}
	if nh > h {
		nh = h
	}
	return nw, nh
}

// Contain scales src to fit inside a w×h canvas, centers it and fills the
// letterbox with bg. Scaling runs in premultiplied space so transparent
// edges do not pick up dark halos.
func Contain(src *image.NRGBA, w, h int, bg color.NRGBA) *image.NRGBA {
	sb := src.Bounds()
	if sb.Dx() == 0 || sb.Dy() == 0 || w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	}

	nw, nh := Fit(sb.Dx(), sb.Dy(), w, h)

	scaled := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, sb, draw.Src, nil)

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	if bg.A > 0 {
		draw.Draw(canvas, canvas.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}

	offX := (w - nw) / 2
	offY := (h - nh) / 2
	draw.Draw(canvas, image.Rect(offX, offY, offX+nw, offY+nh), scaled, image.Point{}, draw.Over)

	return unpremultiply(canvas)
}

// Flatten composites img over the opaque color bg. The result has no
// transparency.
func Flatten(img *image.NRGBA, bg color.NRGBA) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	br, bgG, bb := float64(bg.R), float64(bg.G), float64(bg.B)

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			si := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			di := out.PixOffset(x, y)
			a := float64(img.Pix[si+3]) / 255.0
			out.Pix[di] = clamp8(float64(img.Pix[si])*a + br*(1-a))
			out.Pix[di+1] = clamp8(float64(img.Pix[si+1])*a + bgG*(1-a))
			out.Pix[di+2] = clamp8(float64(img.Pix[si+2])*a + bb*(1-a))
			out.Pix[di+3] = 255
		}
	}
	return out
}

func unpremultiply(src *image.RGBA) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := src.PixOffset(x, y)
			di := dst.PixOffset(x, y)
			a := src.Pix[si+3]
			switch a {
			case 0:
				continue
			case 255:
				copy(dst.Pix[di:di+4], src.Pix[si:si+4])
			default:
				inv := 255.0 / float64(a)
				dst.Pix[di] = clamp8(float64(src.Pix[si]) * inv)
				dst.Pix[di+1] = clamp8(float64(src.Pix[si+1]) * inv)
				dst.Pix[di+2] = clamp8(float64(src.Pix[si+2]) * inv)
				dst.Pix[di+3] = a
			}
		}
	}
	return dst
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
