// Package blend implements the blender (C5): the Simple and Multiband
// variants that accumulate multiple SynthesizedViews into one BlendedView,
// grounded on BlendedView.cpp/hpp and blending.cpp.
package blend

import (
	"math"

	"github.com/ShengMingTang/rvs-synth-go/view"
)

// Simple is the exponent-weighted accumulator described in spec.md §4.4.
// The zero value is ready to use and blends with α = 0, which weights every
// valid input equally.
type Simple struct {
	Alpha float64
	acc   view.BlendedView
}

// NewSimple returns a Simple blender with the given blending exponent.
func NewSimple(alpha float64) *Simple {
	return &Simple{Alpha: alpha}
}

// Blend folds sv into the running accumulator.
func (s *Simple) Blend(sv view.SynthesizedView) {
	if !s.acc.Initialized {
		s.acc = view.BlendedView{View: sv.View.Clone(), Initialized: true}
		return
	}
	w, h := s.acc.Size()
	for i := 0; i < w*h; i++ {
		c0 := s.acc.Color.At(i%w, i/w)
		c1 := sv.Color.At(i%w, i/w)
		q0, q1 := s.acc.Quality.Data[i], sv.Quality.Data[i]
		d0, d1 := s.acc.Depth.Data[i], sv.Depth.Data[i]
		p0, p1 := s.acc.Prolongation[i], sv.Prolongation[i]

		col, quality, depth, prolongation := combinePixel(s.Alpha, c0, q0, d0, p0, c1, q1, d1, p1)

		s.acc.Color.Set(i%w, i/w, col)
		s.acc.Quality.Data[i] = quality
		s.acc.Validity.Data[i] = quality
		s.acc.Depth.Data[i] = depth
		s.acc.Prolongation[i] = prolongation
	}
}

// Result returns the current accumulator. Safe to call at any point, though
// before the first Blend call its Initialized flag is false.
func (s *Simple) Result() view.BlendedView { return s.acc }

// combinePixel implements one pixel of spec.md §4.4's Simple blend,
// including the α < 0 winner-takes-all branch adapted from
// blending.cpp's blend_img_by_max: it prioritizes a pixel backed by
// original (non-prolongated) depth over one backed by prolongated depth
// before comparing quality, and ties (equal quality, equal prolongation
// class) are broken by insertion order, i.e. the existing accumulator wins.
func combinePixel(alpha float64, c0 [3]float32, q0 float32, d0 float32, p0 bool, c1 [3]float32, q1 float32, d1 float32, p1 bool) ([3]float32, float32, float32, bool) {
	valid0 := q0 > 0 && d0 > 0
	valid1 := q1 > 0 && d1 > 0

	if alpha < 0 {
		return winnerTakesAll(c0, q0, d0, p0, valid0, c1, q1, d1, p1, valid1)
	}

	w0 := weight(alpha, q0, d0, valid0)
	w1 := weight(alpha, q1, d1, valid1)
	sum := w0 + w1
	if sum == 0 {
		return c0, 0, d0, p0 && p1
	}

	var col [3]float32
	for k := range col {
		col[k] = float32((float64(w0)*float64(c0[k]) + float64(w1)*float64(c1[k])) / sum)
	}

	var quality float32
	if alpha > 0 {
		quality = float32(math.Pow(sum, 1/alpha))
	} else {
		quality = float32(sum)
	}

	depth := d0
	if !(d0 > 0) {
		depth = d1
	}
	return col, quality, depth, p0 && p1
}

func weight(alpha float64, q, d float32, valid bool) float64 {
	if !valid {
		return 0
	}
	if alpha < 0.5 {
		return 1
	}
	return math.Pow(float64(q)/float64(d), alpha)
}

func winnerTakesAll(c0 [3]float32, q0, d0 float32, p0, valid0 bool, c1 [3]float32, q1, d1 float32, p1, valid1 bool) ([3]float32, float32, float32, bool) {
	found := false
	bestProlongated := true
	bestQuality := float32(-1)
	bestColor := c0
	bestDepth := float32(0)

	consider := func(col [3]float32, quality, depth float32, prolongated, valid bool) {
		if !valid {
			return
		}
		if (bestProlongated == prolongated && quality > bestQuality) || (bestProlongated && !prolongated) {
			bestQuality = quality
			bestProlongated = prolongated
			bestColor = col
			bestDepth = depth
			found = true
		}
	}
	consider(c0, q0, d0, p0, valid0)
	consider(c1, q1, d1, p1, valid1)

	if !found {
		return c0, 0, 0, true
	}
	return bestColor, bestQuality, bestDepth, bestProlongated
}
