package synth

import (
	"context"
	"testing"

	"go.viam.com/test"

	"github.com/ShengMingTang/rvs-synth-go/camera"
	"github.com/ShengMingTang/rvs-synth-go/raster"
	"github.com/ShengMingTang/rvs-synth-go/spatial"
	"github.com/ShengMingTang/rvs-synth-go/view"
)

func testCam(name string) camera.Parameters {
	return camera.Parameters{
		Name:       name,
		Projection: camera.Perspective,
		Width:      8,
		Height:     8,
		Pose:       spatial.Identity(),
		FocalX:     16, FocalY: 16,
		PrincipalX: 4, PrincipalY: 4,
		ZNear: 0.1, ZFar: 100,
	}
}

func flatInputView(w, h int) view.View {
	v := view.NewView(w, h)
	for i := range v.Depth.Data {
		v.Depth.Data[i] = 2.0
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v.Color.Set(x, y, [3]float32{0.4, 0.6, 0.8})
		}
	}
	return v
}

func TestSynthesizePoseFreeIdentityIsCentrallyCovered(t *testing.T) {
	cam := testCam("cam0")
	input := flatInputView(cam.Width, cam.Height)

	out, err := Synthesize(context.Background(), input, cam, cam, Config{Scale: 1, QualityFormula: raster.QualityOld})
	test.That(t, err, test.ShouldBeNil)

	cx, cy := cam.Width/2, cam.Height/2
	got := out.Color.At(cx, cy)
	test.That(t, float64(got[0]), test.ShouldAlmostEqual, 0.4, 0.05)
	test.That(t, float64(got[1]), test.ShouldAlmostEqual, 0.6, 0.05)
	test.That(t, float64(got[2]), test.ShouldAlmostEqual, 0.8, 0.05)
}

func TestSynthesizeRespectsOversamplingScale(t *testing.T) {
	cam := testCam("cam0")
	input := flatInputView(cam.Width, cam.Height)

	out, err := Synthesize(context.Background(), input, cam, cam, Config{Scale: 2, QualityFormula: raster.QualityOld})
	test.That(t, err, test.ShouldBeNil)
	w, h := out.Size()
	test.That(t, w, test.ShouldEqual, cam.Width*2)
	test.That(t, h, test.ShouldEqual, cam.Height*2)
}
