package view

// View is the tuple of per-pixel maps described in spec.md §3: colour,
// depth, quality, and the derived validity scaling. All four planes share
// the same (W, H).
type View struct {
	Color    Color3
	Depth    Plane
	Quality  Plane
	Validity Plane
	// Prolongation marks pixels whose colour/depth came from a triangle
	// with at least one extrapolated (non-original) source depth vertex
	// (spec.md §4.2 "Foreground vs. depth-prolongation").
	Prolongation []bool
}

// NewView allocates a View with all planes zeroed and depth set to invalid
// (NaN), matching "never written" semantics.
func NewView(w, h int) View {
	depth := NewPlane(w, h)
	for i := range depth.Data {
		depth.Data[i] = NaN32
	}
	return View{
		Color:        NewColor3(w, h),
		Depth:        depth,
		Quality:      NewPlane(w, h),
		Validity:     NewPlane(w, h),
		Prolongation: make([]bool, w*h),
	}
}

// Size returns (W, H).
func (v View) Size() (int, int) { return v.Color.W, v.Color.H }

// DepthMask reports, per pixel, whether depth > 0 (spec.md §3).
func (v View) DepthMask() []bool {
	mask := make([]bool, len(v.Depth.Data))
	for i, d := range v.Depth.Data {
		mask[i] = IsValidDepth(d)
	}
	return mask
}

// InpaintMask reports, per pixel, whether quality == 0 (spec.md §3).
func (v View) InpaintMask() []bool {
	mask := make([]bool, len(v.Quality.Data))
	for i, q := range v.Quality.Data {
		mask[i] = q == 0
	}
	return mask
}

// ValidityMask reports, per pixel, whether validity < threshold (spec.md
// §3, used to emit the "OutputMasks" stream).
func (v View) ValidityMask(threshold float32) []bool {
	mask := make([]bool, len(v.Validity.Data))
	for i, val := range v.Validity.Data {
		mask[i] = val < threshold
	}
	return mask
}

// Clone returns an independent deep copy.
func (v View) Clone() View {
	prolong := make([]bool, len(v.Prolongation))
	copy(prolong, v.Prolongation)
	return View{
		Color:        v.Color.Clone(),
		Depth:        v.Depth.Clone(),
		Quality:      v.Quality.Clone(),
		Validity:     v.Validity.Clone(),
		Prolongation: prolong,
	}
}

// SynthesizedView is produced fresh per (input, virtual) pair by the
// synthesized-view builder (C4) and consumed by exactly one blend call.
type SynthesizedView struct {
	View
}

// BlendedView is the blender's (C5) running accumulator across inputs for
// one (frame, virtual camera) unit.
type BlendedView struct {
	View
	// Initialized is false until the first blend call adopts a
	// SynthesizedView verbatim (spec.md §4.4).
	Initialized bool
}
