package ioimage

import (
	"path/filepath"
	"testing"

	"go.viam.com/test"

	"github.com/ShengMingTang/rvs-synth-go/view"
)

func TestColorYUVRoundTrip(t *testing.T) {
	w, h := 8, 8
	colour := view.NewColor3(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			colour.Set(x, y, [3]float32{0.5, 0.25, 0.75})
		}
	}

	path := filepath.Join(t.TempDir(), "texture.yuv")
	test.That(t, WriteColorYUV(path, colour, 8), test.ShouldBeNil)

	got, err := LoadColorYUV(path, w, h, 8, 0)
	test.That(t, err, test.ShouldBeNil)
	for i := range got.C0 {
		test.That(t, got.C0[i], test.ShouldAlmostEqual, 0.5, 0.01)
	}
}

func TestDepthYUVRoundTripLinearization(t *testing.T) {
	w, h := 4, 4
	zNear, zFar := 0.5, 50.0
	depth := view.NewPlane(w, h)
	for i := range depth.Data {
		depth.Data[i] = 5.0
	}
	depth.Data[0] = view.NaN32

	path := filepath.Join(t.TempDir(), "depth.yuv")
	test.That(t, WriteDepthYUV(path, depth, 16, zNear, zFar), test.ShouldBeNil)

	got, err := LoadDepthYUV(path, w, h, 16, zNear, zFar, 0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, view.IsValidDepth(got.Data[0]), test.ShouldBeFalse)
	for i := 1; i < len(got.Data); i++ {
		test.That(t, got.Data[i], test.ShouldAlmostEqual, 5.0, 0.05)
	}
}

func TestDepthYUVMultiFrameOffsets(t *testing.T) {
	w, h := 2, 2
	zNear, zFar := 1.0, 10.0
	frame0 := view.NewPlaneFilled(w, h, 2.0)
	frame1 := view.NewPlaneFilled(w, h, 8.0)

	path := filepath.Join(t.TempDir(), "depth.yuv")
	test.That(t, WriteDepthYUV(path, frame0, 8, zNear, zFar), test.ShouldBeNil)
	test.That(t, WriteDepthYUV(path, frame1, 8, zNear, zFar), test.ShouldBeNil)

	got0, err := LoadDepthYUV(path, w, h, 8, zNear, zFar, 0)
	test.That(t, err, test.ShouldBeNil)
	got1, err := LoadDepthYUV(path, w, h, 8, zNear, zFar, 1)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, got0.Data[0], test.ShouldAlmostEqual, 2.0, 0.2)
	test.That(t, got1.Data[0], test.ShouldAlmostEqual, 8.0, 0.2)
}
