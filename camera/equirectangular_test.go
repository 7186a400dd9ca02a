package camera

import (
	"testing"

	"go.viam.com/test"

	"github.com/ShengMingTang/rvs-synth-go/view"
)

func erpParams() Parameters {
	return Parameters{
		Name:       "erp0",
		Projection: Equirectangular,
		Width:      64,
		Height:     32,
		PhiMin:     -pi, PhiMax: pi,
		ThetaMin: -pi / 2, ThetaMax: pi / 2,
		ZNear: 0.1, ZFar: 100,
	}
}

func TestEquirectangularFullWidthWraps(t *testing.T) {
	proj := newEquirectangularProjector(erpParams())
	test.That(t, proj.wrapping, test.ShouldEqual, Horizontal)
}

func TestEquirectangularRoundTripIdentity(t *testing.T) {
	p := erpParams()
	proj := newEquirectangularProjector(p)
	unproj := newEquirectangularUnprojector(p)

	depth := view.NewPlane(p.Width, p.Height)
	for i := range depth.Data {
		depth.Data[i] = 3.0
	}

	world := unproj.Unproject(depth)
	points, radius, _ := proj.Project(world)

	for row := 1; row < p.Height-1; row++ {
		for col := 0; col < p.Width; col++ {
			idx := row*p.Width + col
			test.That(t, points[idx].Valid, test.ShouldBeTrue)
			test.That(t, radius[idx], test.ShouldAlmostEqual, 3.0, 1e-3)
		}
	}
}
