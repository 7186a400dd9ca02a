package camera

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
	"gonum.org/v1/gonum/mat"

	"github.com/ShengMingTang/rvs-synth-go/rvserrors"
	"github.com/ShengMingTang/rvs-synth-go/spatial"
)

func errf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// validateRotation rejects singular or non-orthonormal rotation matrices,
// a GeometryError condition the original RVS leaves to assert(); here we
// use gonum's LU determinant to give a real diagnostic (spec.md §7).
func validateRotation(op string, r spatial.Mat3) error {
	d := mat.NewDense(3, 3, []float64{
		r.At(0, 0), r.At(0, 1), r.At(0, 2),
		r.At(1, 0), r.At(1, 1), r.At(1, 2),
		r.At(2, 0), r.At(2, 1), r.At(2, 2),
	})
	det := mat.Det(d)
	if math.IsNaN(det) || math.Abs(det) < 1e-9 {
		return rvserrors.New(rvserrors.Geometry, op, errf("singular rotation matrix (det=%g)", det))
	}
	if math.Abs(math.Abs(det)-1) > 1e-3 {
		return rvserrors.New(rvserrors.Geometry, op, errf("rotation matrix is not orthonormal (det=%g)", det))
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			dot := r.At(0, i)*r.At(0, j) + r.At(1, i)*r.At(1, j) + r.At(2, i)*r.At(2, j)
			want := 0.0
			if i == j {
				want = 1
			}
			if math.Abs(dot-want) > 1e-3 {
				return rvserrors.New(rvserrors.Geometry, op, errf("rotation matrix is not orthonormal (column %d . column %d = %g)", i, j, dot))
			}
		}
	}
	return nil
}

// validateERPRanges checks the equirectangular horizontal/vertical ranges
// against the bounds in spec.md §3, expressed with golang/geo's s1.Angle so
// the degree/radian bookkeeping is done by a library rather than by hand.
func validateERPRanges(phiMin, phiMax, thetaMin, thetaMax float64) error {
	fullCircle := s1.Angle(2 * math.Pi)
	halfCircle := s1.Angle(math.Pi)
	hor := s1.Angle(phiMax - phiMin)
	ver := s1.Angle(thetaMax - thetaMin)
	if hor <= 0 || hor > fullCircle+1e-6 {
		return errf("horizontal range must be in (0, 360] degrees, got %g degrees", hor.Degrees())
	}
	if ver <= 0 || ver > halfCircle+1e-6 {
		return errf("vertical range must be in (0, 180] degrees, got %g degrees", ver.Degrees())
	}
	if s1.Angle(phiMin) < -halfCircle-1e-6 || s1.Angle(phiMax) > halfCircle+1e-6 {
		return errf("horizontal range %g..%g exceeds [-180, 180] degrees", s1.Angle(phiMin).Degrees(), s1.Angle(phiMax).Degrees())
	}
	if s1.Angle(thetaMin) < -halfCircle/2-1e-6 || s1.Angle(thetaMax) > halfCircle/2+1e-6 {
		return errf("vertical range %g..%g exceeds [-90, 90] degrees", s1.Angle(thetaMin).Degrees(), s1.Angle(thetaMax).Degrees())
	}
	return nil
}

// IsFullHorizontal reports whether the configured horizontal range spans a
// full 360 degrees, the condition under which the wrapping method becomes
// Horizontal (spec.md §4.1).
func IsFullHorizontal(phiMin, phiMax float64) bool {
	return s1.Angle(phiMax-phiMin) >= s1.Angle(2*math.Pi)-1e-6
}
