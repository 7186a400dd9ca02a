package blend

import "github.com/ShengMingTang/rvs-synth-go/view"

// Blender accumulates a sequence of SynthesizedViews into one BlendedView
// (spec.md §4.4), independent of which variant (Simple, Multiband) is
// running — the pipeline controller (C7) depends only on this interface.
type Blender interface {
	Blend(sv view.SynthesizedView)
	Result() view.BlendedView
}
