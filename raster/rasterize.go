package raster

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/ShengMingTang/rvs-synth-go/view"
)

// Config bundles the rasterizer's tunables: the quality formula to use, the
// oversampling scale that feeds the shape heuristic, and the tile height
// used to partition work across goroutines (spec.md §5).
type Config struct {
	Formula  QualityFormula
	Scale    float64
	TileRows int
}

// DefaultTileRows is used when Config.TileRows <= 0.
const DefaultTileRows = 32

// Output holds the three planes the rasterizer produces, plus the
// depth-prolongation mask used by the blender's precedence rule.
type Output struct {
	Color        view.Color3
	Depth        view.Plane
	Quality      view.Plane
	Prolongation []bool
}

// Rasterize writes tris into an (outW x outH) buffer, matching
// transform_trianglesMethod's depth-ordering and prolongation precedence
// rules. Triangles are re-evaluated independently per output tile (a
// row-band partition of the output), which keeps per-pixel writes race-free
// and the result bit-exact regardless of how many goroutines run (spec.md
// §5 "deterministic tile partitioning").
func Rasterize(ctx context.Context, tris []Triangle, outW, outH int, cfg Config) (Output, error) {
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	tileRows := cfg.TileRows
	if tileRows <= 0 {
		tileRows = DefaultTileRows
	}

	out := Output{
		Color:        view.NewColor3(outW, outH),
		Depth:        view.NewPlane(outW, outH),
		Quality:      view.NewPlane(outW, outH),
		Prolongation: make([]bool, outW*outH),
	}
	invDepth := make([]float64, outW*outH)
	shapeAccum := make([]float64, outW*outH)
	written := make([]bool, outW*outH)

	g, _ := errgroup.WithContext(ctx)
	for tileStart := 0; tileStart < outH; tileStart += tileRows {
		tileStart := tileStart
		tileEnd := tileStart + tileRows
		if tileEnd > outH {
			tileEnd = outH
		}
		g.Go(func() error {
			rasterizeTile(tris, cfg, outW, tileStart, tileEnd, invDepth, shapeAccum, written, &out)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Output{}, err
	}

	for i := range out.Depth.Data {
		if !written[i] || invDepth[i] <= 0 {
			out.Depth.Data[i] = view.NaN32
			out.Quality.Data[i] = 0
			continue
		}
		out.Depth.Data[i] = float32(1 / invDepth[i])
		out.Quality.Data[i] = float32(shapeAccum[i] * invDepth[i] * 100)
	}
	return out, nil
}

func rasterizeTile(tris []Triangle, cfg Config, outW, rowStart, rowEnd int, invDepth, shapeAccum []float64, written []bool, out *Output) {
	for _, tri := range tris {
		validity, den, ok := TriangleValidity(cfg.Formula, tri.A, tri.B, tri.C, cfg.Scale)
		if !ok || validity <= 0 {
			continue
		}
		anyProlongation := tri.A.Prolongation || tri.B.Prolongation || tri.C.Prolongation

		minX := math.Floor(minOf3(tri.A.U, tri.B.U, tri.C.U))
		maxX := math.Ceil(maxOf3(tri.A.U, tri.B.U, tri.C.U))
		minY := math.Floor(minOf3(tri.A.V, tri.B.V, tri.C.V))
		maxY := math.Ceil(maxOf3(tri.A.V, tri.B.V, tri.C.V))

		yLo := int(minY)
		if yLo < rowStart {
			yLo = rowStart
		}
		yHi := int(maxY)
		if yHi >= rowEnd {
			yHi = rowEnd - 1
		}
		xLo := int(minX)
		if xLo < 0 {
			xLo = 0
		}
		xHi := int(maxX)
		if xHi >= outW {
			xHi = outW - 1
		}

		for y := yLo; y <= yHi; y++ {
			for x := xLo; x <= xHi; x++ {
				px := float64(x) + 0.5
				py := float64(y) + 0.5
				l1 := ((tri.B.V-tri.C.V)*(px-tri.C.U) + (tri.C.U-tri.B.U)*(py-tri.C.V)) / den
				l2 := ((tri.C.V-tri.A.V)*(px-tri.C.U) + (tri.A.U-tri.C.U)*(py-tri.C.V)) / den
				l3 := 1 - l1 - l2
				if l1 < 0 || l1 > 1 || l2 < 0 || l2 > 1 || l3 < 0 || l3 > 1 {
					continue
				}
				d := l1*tri.A.Depth + l2*tri.B.Depth + l3*tri.C.Depth
				if d <= 0 {
					continue
				}
				idx := y*outW + x
				candidateInv := 1 / d
				currentForeground := written[idx] && !out.Prolongation[idx]
				candidateForeground := !anyProlongation

				write := false
				switch {
				case !written[idx]:
					write = true
				case candidateForeground && !currentForeground:
					write = true
				case candidateForeground == currentForeground:
					write = cube(invDepth[idx])*shapeAccum[idx] < cube(candidateInv)*validity
				}
				if !write {
					continue
				}

				col := [3]float32{
					float32(l1*float64(tri.A.Color[0]) + l2*float64(tri.B.Color[0]) + l3*float64(tri.C.Color[0])),
					float32(l1*float64(tri.A.Color[1]) + l2*float64(tri.B.Color[1]) + l3*float64(tri.C.Color[1])),
					float32(l1*float64(tri.A.Color[2]) + l2*float64(tri.B.Color[2]) + l3*float64(tri.C.Color[2])),
				}
				out.Color.Set(x, y, col)
				invDepth[idx] = candidateInv
				shapeAccum[idx] = validity
				out.Prolongation[idx] = anyProlongation
				written[idx] = true
			}
		}
	}
}

func cube(v float64) float64 { return v * v * v }

func minOf3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }
func maxOf3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }
