package raster

import "math"

// QualityFormula selects which of the two triangle-quality heuristics the
// original rasterizer supports behind a compile-time flag (see the "Open
// questions" note on get_quality vs get_quality_old).
type QualityFormula int

const (
	// QualityOld is the default: area-over-median-side times a
	// scale-clamped longest-side term, both taken to the 1/8 power.
	QualityOld QualityFormula = iota
	// QualityNew drops the min(w, 1/w) area term and scores shape purely
	// from the scale-normalized longest side.
	QualityNew
)

// triangleShape returns (0, false) for a degenerate or back-facing triangle
// (den <= 0), otherwise the "shape" factor described in spec.md §4.2: den is
// twice the signed triangle area, and scale is the oversampling precision.
func triangleShape(formula QualityFormula, den float64, sides [3]float64, scale float64) (float64, bool) {
	if den <= 0 {
		return 0, false
	}
	_, s2, s3 := sortedSides(sides)
	if s2 == 0 || s3 == 0 {
		return 0, false
	}
	if formula == QualityNew {
		longest := clampRatio(s3, scale)
		return math.Pow(longest, 1.0/8.0), true
	}
	w := 2 * den / s2
	areaTerm := math.Min(w, 1/w)
	sideTerm := clampRatio(s3, scale)
	return math.Pow(areaTerm*sideTerm, 1.0/8.0), true
}

func clampRatio(side, scale float64) float64 {
	return math.Min(side/scale, scale/side)
}

func sortedSides(sides [3]float64) (float64, float64, float64) {
	a, b, c := sides[0], sides[1], sides[2]
	if a > b {
		a, b = b, a
	}
	if b > c {
		b, c = c, b
	}
	if a > b {
		a, b = b, a
	}
	return a, b, c
}

// TriangleValidity computes 100*shape for a triangle given its warped 2-D
// vertices, matching valid_tri's scale factor of 100 applied in
// colorize_triangle.
func TriangleValidity(formula QualityFormula, a, b, c Vertex, scale float64) (validity float64, den float64, ok bool) {
	den = (b.V-c.V)*(a.U-c.U) + (c.U-b.U)*(a.V-c.V)
	sides := [3]float64{
		sqDist(a, b),
		sqDist(a, c),
		sqDist(b, c),
	}
	shape, valid := triangleShape(formula, den, sides, scale)
	if !valid {
		return 0, den, false
	}
	return 100 * shape, den, true
}

func sqDist(p, q Vertex) float64 {
	du := p.U - q.U
	dv := p.V - q.V
	return du*du + dv*dv
}
