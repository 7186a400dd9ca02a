// Package view implements the image buffers and masks (C8): typed 2-D
// planes for colour, depth, quality and validity, the View/SynthesizedView/
// BlendedView tuple, and the working colour-space conversions (BT.601
// linear RGB <-> Y'CbCr) used throughout the pipeline.
package view

import "math"

// Plane is a single-channel W x H float32 buffer, row-major.
type Plane struct {
	W, H int
	Data []float32
}

// NewPlane allocates a zeroed plane.
func NewPlane(w, h int) Plane {
	return Plane{W: w, H: h, Data: make([]float32, w*h)}
}

// NewPlaneFilled allocates a plane with every sample set to v.
func NewPlaneFilled(w, h int, v float32) Plane {
	p := NewPlane(w, h)
	for i := range p.Data {
		p.Data[i] = v
	}
	return p
}

// At returns the sample at (x, y).
func (p Plane) At(x, y int) float32 { return p.Data[y*p.W+x] }

// Set stores v at (x, y).
func (p Plane) Set(x, y int, v float32) { p.Data[y*p.W+x] = v }

// Clone returns an independent copy.
func (p Plane) Clone() Plane {
	out := NewPlane(p.W, p.H)
	copy(out.Data, p.Data)
	return out
}

// NaN32 is the canonical "no data" depth sentinel (spec.md §3/9).
var NaN32 = float32(math.NaN())

// IsValidDepth reports whether d is a usable depth sample: finite and > 0.
func IsValidDepth(d float32) bool {
	return !math.IsNaN(float64(d)) && !math.IsInf(float64(d), 0) && d > 0
}

// Color3 is an RGB or Y'CbCr triple depending on the active working space.
type Color3 struct {
	W, H int
	C0   []float32
	C1   []float32
	C2   []float32
}

// NewColor3 allocates a zeroed colour plane triple.
func NewColor3(w, h int) Color3 {
	n := w * h
	return Color3{W: w, H: h, C0: make([]float32, n), C1: make([]float32, n), C2: make([]float32, n)}
}

// At returns the triple at (x, y).
func (c Color3) At(x, y int) [3]float32 {
	i := y*c.W + x
	return [3]float32{c.C0[i], c.C1[i], c.C2[i]}
}

// Set stores a triple at (x, y).
func (c Color3) Set(x, y int, v [3]float32) {
	i := y*c.W + x
	c.C0[i], c.C1[i], c.C2[i] = v[0], v[1], v[2]
}

// Clone returns an independent copy.
func (c Color3) Clone() Color3 {
	out := NewColor3(c.W, c.H)
	copy(out.C0, c.C0)
	copy(out.C1, c.C1)
	copy(out.C2, c.C2)
	return out
}

// Fill sets every pixel to v.
func (c Color3) Fill(v [3]float32) {
	for i := range c.C0 {
		c.C0[i], c.C1[i], c.C2[i] = v[0], v[1], v[2]
	}
}
