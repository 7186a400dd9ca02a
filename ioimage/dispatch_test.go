package ioimage

import (
	"path/filepath"
	"testing"

	"go.viam.com/test"

	"github.com/ShengMingTang/rvs-synth-go/view"
)

func TestLoadColorDispatchesByExtension(t *testing.T) {
	dir := t.TempDir()
	colour := view.NewColor3(4, 4)
	colour.Fill([3]float32{0.1, 0.2, 0.3})

	pngPath := filepath.Join(dir, "tex.png")
	test.That(t, WriteColor(pngPath, colour, 8, view.RGB), test.ShouldBeNil)
	gotPNG, err := LoadColor(pngPath, 4, 4, 8, 0, view.RGB)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, gotPNG.C0[0], test.ShouldAlmostEqual, 0.1, 0.01)

	yuvPath := filepath.Join(dir, "tex.yuv")
	test.That(t, WriteColor(yuvPath, colour, 8, view.RGB), test.ShouldBeNil)
	gotYUV, err := LoadColor(yuvPath, 4, 4, 8, 0, view.RGB)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, gotYUV.C0[0], test.ShouldAlmostEqual, 0.1, 0.05)
}

func TestLoadDepthRejectsSecondFrameOfStillImage(t *testing.T) {
	dir := t.TempDir()
	depth := view.NewPlane(2, 2)
	path := filepath.Join(dir, "depth.png")
	test.That(t, WriteDepth(path, depth, 16, 0.1, 100), test.ShouldBeNil)

	_, err := LoadDepth(path, 2, 2, 16, 0.1, 100, 1)
	test.That(t, err, test.ShouldNotBeNil)
}
