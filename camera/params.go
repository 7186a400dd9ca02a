// Package camera implements the camera model and projectors (C2): per-camera
// parameter bundles and the perspective / equirectangular project/unproject
// pairs described in spec.md §4.1.
package camera

import (
	"math"

	"github.com/ShengMingTang/rvs-synth-go/rvserrors"
	"github.com/ShengMingTang/rvs-synth-go/spatial"
)

// ProjectionKind selects the projector/unprojector variant.
type ProjectionKind int

const (
	// Perspective is a pinhole camera.
	Perspective ProjectionKind = iota
	// Equirectangular is a 360x180 spherical camera.
	Equirectangular
)

func (k ProjectionKind) String() string {
	if k == Equirectangular {
		return "Equirectangular"
	}
	return "Perspective"
}

// WrappingMethod says whether the rasterizer must stitch the left/right
// edges of the projector's image into extra triangles (spec.md §4.2).
type WrappingMethod int

const (
	// NoWrap is the common case: perspective cameras, and equirectangular
	// cameras whose horizontal range is not a full 360 degrees.
	NoWrap WrappingMethod = iota
	// Horizontal applies to equirectangular cameras covering a full
	// 360-degree horizontal range.
	Horizontal
)

// Parameters is one camera record: spec.md §3 "Camera parameters".
type Parameters struct {
	Name       string
	Projection ProjectionKind
	Width      int
	Height     int
	Pose       spatial.Pose

	// Perspective-only.
	FocalX, FocalY     float64
	PrincipalX, PrincipalY float64

	// Equirectangular-only, in radians.
	PhiMin, PhiMax     float64
	ThetaMin, ThetaMax float64

	ZNear, ZFar float64

	// BitDepthColor and BitDepthDepth describe the on-disk sample width
	// of this camera's texture/depth streams (spec.md §6).
	BitDepthColor int
	BitDepthDepth int
}

// Validate enforces the positivity/finiteness invariants from spec.md §3
// ("size, ranges and focal values are strictly positive and finite").
func (p Parameters) Validate() error {
	op := "camera.Parameters.Validate"
	if p.Width <= 0 || p.Height <= 0 {
		return rvserrors.New(rvserrors.Geometry, op, errf("image size must be positive, got %dx%d", p.Width, p.Height))
	}
	if !finite(p.ZNear) || !finite(p.ZFar) || p.ZNear <= 0 || p.ZFar <= p.ZNear {
		return rvserrors.New(rvserrors.Geometry, op, errf("invalid depth range [%g, %g]", p.ZNear, p.ZFar))
	}
	switch p.Projection {
	case Perspective:
		if !finite(p.FocalX) || !finite(p.FocalY) || p.FocalX <= 0 || p.FocalY <= 0 {
			return rvserrors.New(rvserrors.Geometry, op, errf("non-positive focal length (%g, %g)", p.FocalX, p.FocalY))
		}
		if !finite(p.PrincipalX) || !finite(p.PrincipalY) {
			return rvserrors.New(rvserrors.Geometry, op, errf("non-finite principal point"))
		}
	case Equirectangular:
		if err := validateERPRanges(p.PhiMin, p.PhiMax, p.ThetaMin, p.ThetaMax); err != nil {
			return rvserrors.New(rvserrors.Geometry, op, err)
		}
	default:
		return rvserrors.New(rvserrors.Geometry, op, errf("unknown projection kind %d", p.Projection))
	}
	return validateRotation(op, p.Pose.Rotation)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
