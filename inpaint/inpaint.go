// Package inpaint implements the inpainter (C6): nearest-finite-sample
// propagation over alternating raster sweeps, grounded on inpainting.cpp's
// compute_nearest/inpaint_color (the "by nearest" branch; the source's
// interpolation and line-fill variants are not carried forward, per
// spec.md §4.5's mandate that nearest-finite propagation is the active one).
package inpaint

import "github.com/ShengMingTang/rvs-synth-go/view"

type cell struct {
	srcX, srcY int
	dist       int
}

// Inpaint fills every pixel where mask[i] is true with the colour of its
// nearest mask-false pixel (Manhattan-adjacency propagation). If mask is
// all true the result is the unmodified input, per the documented contract
// that the inpainter never crashes on a fully invalid image.
func Inpaint(c view.Color3, mask []bool) view.Color3 {
	w, h := c.W, c.H
	grid := make([]cell, w*h)
	const sentinel = 1 << 30
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if mask[idx] {
				grid[idx] = cell{srcX: x, srcY: y, dist: sentinel}
			} else {
				grid[idx] = cell{srcX: x, srcY: y, dist: 0}
			}
		}
	}

	odd := true
	for {
		odd = !odd
		changed := false
		xs, ys := rasterOrder(w, h, odd)
		for _, x := range xs {
			for _, y := range ys {
				idx := y*w + x
				if grid[idx].dist <= 0 {
					continue
				}
				for _, n := range neighbors4(x, y, w, h) {
					nIdx := n[1]*w + n[0]
					cand := grid[nIdx].dist + 1
					if cand < grid[idx].dist {
						grid[idx] = cell{srcX: grid[nIdx].srcX, srcY: grid[nIdx].srcY, dist: cand}
						changed = true
					}
				}
			}
		}
		if !changed {
			break
		}
	}

	out := c.Clone()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if !mask[idx] {
				continue
			}
			src := grid[idx]
			out.Set(x, y, c.At(src.srcX, src.srcY))
		}
	}
	return out
}

func rasterOrder(w, h int, reverse bool) (xs, ys []int) {
	xs = make([]int, w)
	ys = make([]int, h)
	for i := range xs {
		xs[i] = i
	}
	for i := range ys {
		ys[i] = i
	}
	if reverse {
		reverseInts(xs)
		reverseInts(ys)
	}
	return xs, ys
}

func reverseInts(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func neighbors4(x, y, w, h int) [][2]int {
	var out [][2]int
	if x > 0 {
		out = append(out, [2]int{x - 1, y})
	}
	if x < w-1 {
		out = append(out, [2]int{x + 1, y})
	}
	if y > 0 {
		out = append(out, [2]int{x, y - 1})
	}
	if y < h-1 {
		out = append(out, [2]int{x, y + 1})
	}
	return out
}
