package isolate

import "image"

// RemoveBackground flood-fills from every white border pixel over
// 4-connected white neighbors and zeroes the alpha of each pixel reached.
// Returns the number of pixels cleared.
func RemoveBackground(img *image.NRGBA, threshold uint8) int {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return 0
	}
	stride := img.Stride
	pix := img.Pix

	visited := make([]bool, w*h)
	queue := make([]int, 0, 2*(w+h))

	seed := func(x, y int) {
		idx := y*w + x
		if visited[idx] || !whiteAt(pix, y*stride+x*4, threshold) {
			return
		}
		visited[idx] = true
		queue = append(queue, idx)
	}

	for x := 0; x < w; x++ {
		seed(x, 0)
		seed(x, h-1)
	}
	for y := 0; y < h; y++ {
		seed(0, y)
		seed(w-1, y)
	}

	dx := [4]int{1, -1, 0, 0}
	dy := [4]int{0, 0, 1, -1}

	for head := 0; head < len(queue); head++ {
		curr := queue[head]
		cx := curr % w
		cy := curr / w
		pix[cy*stride+cx*4+3] = 0

		for d := 0; d < 4; d++ {
			nx := cx + dx[d]
			ny := cy + dy[d]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			ni := ny*w + nx
			if visited[ni] || !whiteAt(pix, ny*stride+nx*4, threshold) {
				continue
			}
			visited[ni] = true
			queue = append(queue, ni)
		}
	}

	return len(queue)
}
