package view

import (
	"testing"

	"go.viam.com/test"
)

func TestNewViewDepthIsInvalid(t *testing.T) {
	v := NewView(2, 2)
	mask := v.DepthMask()
	for _, m := range mask {
		test.That(t, m, test.ShouldBeFalse)
	}
}

func TestInpaintMaskFollowsQuality(t *testing.T) {
	v := NewView(1, 1)
	v.Quality.Set(0, 0, 0)
	test.That(t, v.InpaintMask()[0], test.ShouldBeTrue)
	v.Quality.Set(0, 0, 1)
	test.That(t, v.InpaintMask()[0], test.ShouldBeFalse)
}

func TestColorSpaceRoundTrip(t *testing.T) {
	orig := [3]float32{0.2, 0.6, 0.9}
	ycc := RGBToYCbCr(orig)
	back := YCbCrToRGB(ycc)
	for i := range orig {
		test.That(t, float64(back[i]), test.ShouldAlmostEqual, float64(orig[i]), 1e-4)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	v := NewView(1, 1)
	v.Color.Set(0, 0, [3]float32{1, 2, 3})
	cl := v.Clone()
	cl.Color.Set(0, 0, [3]float32{9, 9, 9})
	test.That(t, v.Color.At(0, 0), test.ShouldResemble, [3]float32{1, 2, 3})
}
