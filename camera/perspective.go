package camera

import (
	"math"

	"github.com/ShengMingTang/rvs-synth-go/spatial"
	"github.com/ShengMingTang/rvs-synth-go/view"
)

// perspectiveProjector is the pinhole camera projector, grounded on
// PerspectiveProjector.cpp.
type perspectiveProjector struct {
	focalX, focalY         float64
	principalX, principalY float64
}

func newPerspectiveProjector(p Parameters) *perspectiveProjector {
	return &perspectiveProjector{
		focalX: p.FocalX, focalY: p.FocalY,
		principalX: p.PrincipalX, principalY: p.PrincipalY,
	}
}

// Project implements Projector. A point behind the camera plane (x <= 0 in
// OMAF referential) has no image coordinate and is left invalid; perspective
// cameras never wrap.
func (pr *perspectiveProjector) Project(world []spatial.Vec3) ([]ImagePoint, []float64, WrappingMethod) {
	points := make([]ImagePoint, len(world))
	depth := make([]float64, len(world))
	for i, xyz := range world {
		x, y, z := xyz[0], xyz[1], xyz[2]
		if x > 0 {
			points[i] = ImagePoint{
				U:     -pr.focalX*y/x + pr.principalX,
				V:     -pr.focalY*z/x + pr.principalY,
				Valid: true,
			}
			depth[i] = x
		} else {
			depth[i] = math.NaN()
		}
	}
	return points, depth, NoWrap
}

// perspectiveUnprojector is the pinhole camera unprojector, grounded on
// PerspectiveUnprojector.cpp.
type perspectiveUnprojector struct {
	focalX, focalY         float64
	principalX, principalY float64
}

func newPerspectiveUnprojector(p Parameters) *perspectiveUnprojector {
	return &perspectiveUnprojector{
		focalX: p.FocalX, focalY: p.FocalY,
		principalX: p.PrincipalX, principalY: p.PrincipalY,
	}
}

// Unproject implements Unprojector. Pixels whose depth is invalid (<= 0 or
// NaN) produce a NaN point, matching spec.md §3's "never written" semantics.
func (u *perspectiveUnprojector) Unproject(depth view.Plane) []spatial.Vec3 {
	out := make([]spatial.Vec3, depth.W*depth.H)
	for row := 0; row < depth.H; row++ {
		for col := 0; col < depth.W; col++ {
			idx := row*depth.W + col
			d := float64(depth.Data[idx])
			if !(d > 0) {
				out[idx] = spatial.NaNVec3()
				continue
			}
			uCoord := float64(col) + 0.5
			vCoord := float64(row) + 0.5
			out[idx] = spatial.Vec3{
				d,
				-(d / u.focalX) * (uCoord - u.principalX),
				-(d / u.focalY) * (vCoord - u.principalY),
			}
		}
	}
	return out
}
