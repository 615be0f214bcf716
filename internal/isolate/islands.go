package isolate

import "image"

// island is one 4-connected group of opaque white pixels.
type island struct {
	members    []int // flat pixel indices (y*w + x)
	minX, maxX int
}

func (is island) centerX() float64 {
	return float64(is.minX+is.maxX) / 2
}

// RemoveTextHoles finds the opaque white islands left after RemoveBackground
// and deletes those whose bounding-box center lies right of the split line.
// Islands at or left of the line belong to the icon and are kept.
func RemoveTextHoles(img *image.NRGBA, threshold uint8, splitFraction float64) (kept, removed int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return 0, 0
	}
	stride := img.Stride
	pix := img.Pix
	splitX := float64(SplitX(w, splitFraction))

	// Separate from the flood fill's visited set: "handled" means something
	// different here.
	visited := make([]bool, w*h)

	qualifies := func(x, y int) bool {
		i := y*stride + x*4
		return pix[i+3] != 0 && whiteAt(pix, i, threshold)
	}

	stack := make([]int, 0, 64)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if visited[idx] || !qualifies(x, y) {
				continue
			}

			is := island{minX: x, maxX: x}
			visited[idx] = true
			stack = append(stack[:0], idx)

			for len(stack) > 0 {
				curr := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				is.members = append(is.members, curr)

				cx := curr % w
				cy := curr / w
				if cx < is.minX {
					is.minX = cx
				}
				if cx > is.maxX {
					is.maxX = cx
				}

				for _, n := range [4][2]int{{cx + 1, cy}, {cx - 1, cy}, {cx, cy + 1}, {cx, cy - 1}} {
					nx, ny := n[0], n[1]
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					ni := ny*w + nx
					if visited[ni] || !qualifies(nx, ny) {
						continue
					}
					visited[ni] = true
					stack = append(stack, ni)
				}
			}

			if is.centerX() > splitX {
				for _, m := range is.members {
					pix[(m/w)*stride+(m%w)*4+3] = 0
				}
				removed++
			} else {
				kept++
			}
		}
	}

	return kept, removed
}
