package ioimage

import (
	"path/filepath"
	"testing"

	"go.viam.com/test"

	"github.com/ShengMingTang/rvs-synth-go/view"
)

func TestColorPNGRoundTrip8Bit(t *testing.T) {
	w, h := 4, 4
	colour := view.NewColor3(w, h)
	colour.Fill([3]float32{0.2, 0.4, 0.6})

	path := filepath.Join(t.TempDir(), "texture.png")
	test.That(t, WriteColorPNG(path, colour, 8), test.ShouldBeNil)

	got, err := LoadColorPNG(path, w, h, 8)
	test.That(t, err, test.ShouldBeNil)
	for i := range got.C0 {
		test.That(t, got.C0[i], test.ShouldAlmostEqual, 0.2, 0.01)
		test.That(t, got.C1[i], test.ShouldAlmostEqual, 0.4, 0.01)
		test.That(t, got.C2[i], test.ShouldAlmostEqual, 0.6, 0.01)
	}
}

func TestColorPNGRejectsWrongSize(t *testing.T) {
	colour := view.NewColor3(4, 4)
	path := filepath.Join(t.TempDir(), "texture.png")
	test.That(t, WriteColorPNG(path, colour, 8), test.ShouldBeNil)

	_, err := LoadColorPNG(path, 8, 8, 8)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestDepthPNGRoundTripVerbatim(t *testing.T) {
	w, h := 4, 4
	depth := view.NewPlane(w, h)
	for i := range depth.Data {
		depth.Data[i] = float32(1000 + i)
	}

	path := filepath.Join(t.TempDir(), "depth.png")
	test.That(t, WriteDepthPNG(path, depth), test.ShouldBeNil)

	got, err := LoadDepthPNG(path, w, h, 16)
	test.That(t, err, test.ShouldBeNil)
	for i := range depth.Data {
		test.That(t, got.Data[i], test.ShouldAlmostEqual, depth.Data[i], 0.5)
	}
}
