package blend

import "github.com/ShengMingTang/rvs-synth-go/view"

// Multiband splits each incoming view's colour into low/high frequency
// bands and routes each through its own Simple blender (spec.md §4.4).
type Multiband struct {
	AlphaLow, AlphaHigh float64
	ColorSpace          view.ColorSpace

	low, high  *Simple
	kernelHalf int
}

// NewMultiband returns a Multiband blender. kernelHalf is the mean-filter
// half-window size (spec.md §4.4 uses kernel size ≈ max(H,W)/20).
func NewMultiband(alphaLow, alphaHigh float64, cs view.ColorSpace, kernelHalf int) *Multiband {
	return &Multiband{
		AlphaLow: alphaLow, AlphaHigh: alphaHigh,
		ColorSpace: cs,
		low:        NewSimple(alphaLow),
		high:       NewSimple(alphaHigh),
		kernelHalf: kernelHalf,
	}
}

// Blend folds sv into the low/high sub-blenders.
func (m *Multiband) Blend(sv view.SynthesizedView) {
	mask := sv.DepthMask()
	emptyLow := view.EmptyColor(m.ColorSpace)
	lowColor := meanFilter(sv.Color, mask, m.kernelHalf, emptyLow)

	highColor := view.NewColor3(sv.Color.W, sv.Color.H)
	for i := range highColor.C0 {
		highColor.C0[i] = sv.Color.C0[i] - lowColor.C0[i]
		highColor.C1[i] = sv.Color.C1[i] - lowColor.C1[i]
		highColor.C2[i] = sv.Color.C2[i] - lowColor.C2[i]
	}

	lowView := sv
	lowView.Color = lowColor
	highView := sv
	highView.Color = highColor

	m.low.Blend(lowView)
	m.high.Blend(highView)
}

// Result returns the combined colour (sum of the low and high sub-blender
// accumulators) plus depth/quality/prolongation bookkeeping from the low
// blender, the one that tracks "original vs. prolongated depth" honestly
// since it blends actual depth-backed colour rather than a residual.
func (m *Multiband) Result() view.BlendedView {
	lowAcc := m.low.Result()
	highAcc := m.high.Result()

	out := lowAcc.View.Clone()
	for i := range out.Color.C0 {
		out.Color.C0[i] = lowAcc.Color.C0[i] + highAcc.Color.C0[i]
		out.Color.C1[i] = lowAcc.Color.C1[i] + highAcc.Color.C1[i]
		out.Color.C2[i] = lowAcc.Color.C2[i] + highAcc.Color.C2[i]
	}
	return view.BlendedView{View: out, Initialized: lowAcc.Initialized}
}
