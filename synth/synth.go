// Package synth implements the synthesized-view builder (C4): it
// orchestrates the camera projectors (C2) and the triangle rasterizer (C3)
// to produce one SynthesizedView from one input view as seen from one
// virtual camera, grounded on SynthesizedView.cpp's compute (CPU path only,
// the WITH_OPENGL branch is out of scope).
package synth

import (
	"context"

	"github.com/ShengMingTang/rvs-synth-go/camera"
	"github.com/ShengMingTang/rvs-synth-go/raster"
	"github.com/ShengMingTang/rvs-synth-go/spatial"
	"github.com/ShengMingTang/rvs-synth-go/view"
)

// Config carries the process-wide, read-only settings threaded through
// every synthesis call rather than read from a hidden global (spec.md §9
// "Global working-space and precision").
type Config struct {
	Scale          float64
	QualityFormula raster.QualityFormula
	TileRows       int
}

// Synthesize builds the SynthesizedView of input as seen from virtualCam,
// following spec.md §4.3 steps 1-7.
func Synthesize(ctx context.Context, input view.View, inputCam, virtualCam camera.Parameters, cfg Config) (view.SynthesizedView, error) {
	unprojector := camera.NewUnprojector(inputCam)
	projector := camera.NewProjector(virtualCam)

	worldIn := unprojector.Unproject(input.Depth)

	rot, trans := spatial.Compose(
		inputCam.Pose.Rotation, inputCam.Pose.Translation,
		virtualCam.Pose.Rotation, virtualCam.Pose.Translation,
	)
	worldVirt := make([]spatial.Vec3, len(worldIn))
	for i, p := range worldIn {
		worldVirt[i] = spatial.Apply(rot, trans, p)
	}

	points, depths, wrapping := projector.Project(worldVirt)

	scale := cfg.Scale
	if scale <= 0 {
		scale = 1
	}
	outW := int(0.5 + float64(virtualCam.Width)*scale)
	outH := int(0.5 + float64(virtualCam.Height)*scale)

	cols := input.Depth.W
	vertices := make([]raster.Vertex, len(points))
	for i, pt := range points {
		col := input.Color.At(i%cols, i/cols)
		prolongation := false
		if i < len(input.Prolongation) {
			prolongation = input.Prolongation[i]
		}
		valid := pt.Valid && depths[i] > 0 && view.IsValidDepth(float32(depths[i]))
		vertices[i] = raster.Vertex{
			U:            pt.U * scale,
			V:            pt.V * scale,
			Depth:        depths[i],
			Color:        col,
			Prolongation: prolongation,
			Valid:        valid,
		}
	}

	tris := raster.Triangulate(vertices, input.Depth.H, input.Depth.W, wrapping == camera.Horizontal)
	out, err := raster.Rasterize(ctx, tris, outW, outH, raster.Config{
		Formula:  cfg.QualityFormula,
		Scale:    scale,
		TileRows: cfg.TileRows,
	})
	if err != nil {
		return view.SynthesizedView{}, err
	}

	return view.SynthesizedView{View: view.View{
		Color:        out.Color,
		Depth:        out.Depth,
		Quality:      out.Quality,
		Validity:     out.Quality.Clone(),
		Prolongation: out.Prolongation,
	}}, nil
}
