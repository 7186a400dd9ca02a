package camera

import (
	"math"
	"testing"

	"go.viam.com/test"

	"github.com/ShengMingTang/rvs-synth-go/spatial"
	"github.com/ShengMingTang/rvs-synth-go/view"
)

func TestPerspectiveRoundTripIdentity(t *testing.T) {
	p := validParams()
	proj := newPerspectiveProjector(p)
	unproj := newPerspectiveUnprojector(p)

	depth := view.NewPlane(p.Width, p.Height)
	for i := range depth.Data {
		depth.Data[i] = 5.0
	}

	world := unproj.Unproject(depth)
	points, outDepth, wrapping := proj.Project(world)

	test.That(t, wrapping, test.ShouldEqual, NoWrap)
	for row := 0; row < p.Height; row++ {
		for col := 0; col < p.Width; col++ {
			idx := row*p.Width + col
			test.That(t, points[idx].Valid, test.ShouldBeTrue)
			wantU, wantV := float64(col)+0.5, float64(row)+0.5
			test.That(t, points[idx].U, test.ShouldAlmostEqual, wantU, 1e-4*wantU+1e-6)
			test.That(t, points[idx].V, test.ShouldAlmostEqual, wantV, 1e-4*wantV+1e-6)
			test.That(t, outDepth[idx], test.ShouldAlmostEqual, 5.0, 1e-4)
		}
	}
}

func TestPerspectiveProjectBehindCameraIsInvalid(t *testing.T) {
	p := validParams()
	proj := newPerspectiveProjector(p)
	points, depth, _ := proj.Project([]spatial.Vec3{{-1, 0, 0}})
	test.That(t, points[0].Valid, test.ShouldBeFalse)
	test.That(t, math.IsNaN(depth[0]), test.ShouldBeTrue)
}
