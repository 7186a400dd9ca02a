package camera

import (
	"github.com/ShengMingTang/rvs-synth-go/spatial"
	"github.com/ShengMingTang/rvs-synth-go/view"
)

// ImagePoint is one projected pixel location; Valid is false wherever the
// projector has no image coordinate to offer (behind the camera, or out of
// its angular range), matching the NaN-filled maps of spec.md §4.1.
type ImagePoint struct {
	U, V  float64
	Valid bool
}

// Projector maps camera-space points (OMAF referential: x forward, y left,
// z up) onto an image plane, producing a per-point image coordinate, a
// depth/radius value, and the WrappingMethod the rasterizer must use to
// stitch triangles across the seam, if any (spec.md §4.1, §4.2).
//
// world is one point per pixel of the SOURCE view being projected, which may
// have a different resolution from the projector's own camera.
type Projector interface {
	Project(world []spatial.Vec3) (points []ImagePoint, depth []float64, wrapping WrappingMethod)
}

// Unprojector is the inverse: given a depth plane in the projector's own
// camera image coordinates, produce camera-space 3D points, one per pixel.
type Unprojector interface {
	Unproject(depth view.Plane) []spatial.Vec3
}

// NewProjector builds the projector for p's ProjectionKind.
func NewProjector(p Parameters) Projector {
	if p.Projection == Equirectangular {
		return newEquirectangularProjector(p)
	}
	return newPerspectiveProjector(p)
}

// NewUnprojector builds the unprojector for p's ProjectionKind.
func NewUnprojector(p Parameters) Unprojector {
	if p.Projection == Equirectangular {
		return newEquirectangularUnprojector(p)
	}
	return newPerspectiveUnprojector(p)
}
