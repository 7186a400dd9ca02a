package pipeline

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"go.viam.com/test"

	"github.com/ShengMingTang/rvs-synth-go/camera"
	"github.com/ShengMingTang/rvs-synth-go/config"
	"github.com/ShengMingTang/rvs-synth-go/ioimage"
	"github.com/ShengMingTang/rvs-synth-go/logging"
	"github.com/ShengMingTang/rvs-synth-go/spatial"
	"github.com/ShengMingTang/rvs-synth-go/view"
)

func flatCam(name string) camera.Parameters {
	return camera.Parameters{
		Name:       name,
		Projection: camera.Perspective,
		Width:      8,
		Height:     8,
		Pose:       spatial.Identity(),
		FocalX:     16, FocalY: 16,
		PrincipalX: 4, PrincipalY: 4,
		ZNear: 0.1, ZFar: 100,
		BitDepthColor: 8,
		BitDepthDepth: 16,
	}
}

func writeFlatInput(t *testing.T, dir string, cam camera.Parameters) (texture, depth string) {
	t.Helper()
	texture = filepath.Join(dir, cam.Name+"_texture.png")
	depth = filepath.Join(dir, cam.Name+"_depth.png")

	colour := view.NewColor3(cam.Width, cam.Height)
	colour.Fill([3]float32{0.4, 0.6, 0.8})
	test.That(t, ioimage.WriteColorPNG(texture, colour, cam.BitDepthColor), test.ShouldBeNil)

	d := view.NewPlane(cam.Width, cam.Height)
	for i := range d.Data {
		d.Data[i] = 2.0
	}
	test.That(t, ioimage.WriteDepthPNG(depth, d), test.ShouldBeNil)
	return texture, depth
}

func TestControllerRunSingleInputSingleVirtualFrame(t *testing.T) {
	dir := t.TempDir()
	inputCam := flatCam("cam0")
	texture, depth := writeFlatInput(t, dir, inputCam)
	virtualCam := flatCam("virt0")

	threshold := 0.0
	cfg := &config.Config{
		InputCameraNames:   []string{"cam0"},
		VirtualCameraNames: []string{"virt0"},
		Texture:            []string{texture},
		Depth:              []string{depth},
		OutputFiles:        []string{filepath.Join(dir, "out_color.png")},
		OutputMasks:        []string{filepath.Join(dir, "out_mask.png")},
		OutputMaskedFiles:  []string{filepath.Join(dir, "out_masked.png")},
		OutputDepth:        []string{filepath.Join(dir, "out_depth.png")},
		ValidityThreshold:  &threshold,
		BlendingMethod:     config.BlendingSimple,
		BlendingFactor:     1.0,
		StartFrame:         0,
		NumberOfFrames:     1,
		Precision:          1,
		ColorSpace:         config.ColorSpaceRGB,
	}

	c := &Controller{
		Cfg:         cfg,
		InputCams:   []camera.Parameters{inputCam},
		VirtualCams: []camera.Parameters{virtualCam},
		Logger:      logging.NewTestLogger(t),
	}

	err := c.Run(context.Background())
	test.That(t, err, test.ShouldBeNil)

	got, err := ioimage.LoadColorPNG(cfg.OutputFiles[0], virtualCam.Width, virtualCam.Height, virtualCam.BitDepthColor)
	test.That(t, err, test.ShouldBeNil)
	cx, cy := virtualCam.Width/2, virtualCam.Height/2
	centre := got.At(cx, cy)
	test.That(t, float64(centre[0]), test.ShouldAlmostEqual, 0.4, 0.05)
	test.That(t, float64(centre[1]), test.ShouldAlmostEqual, 0.6, 0.05)
	test.That(t, float64(centre[2]), test.ShouldAlmostEqual, 0.8, 0.05)

	gotDepth, err := ioimage.LoadDepthPNG(cfg.OutputDepth[0], virtualCam.Width, virtualCam.Height, virtualCam.BitDepthDepth)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, float64(gotDepth.At(cx, cy)), test.ShouldAlmostEqual, 2.0, 0.5)

	mask, err := ioimage.LoadColorPNG(cfg.OutputMasks[0], virtualCam.Width, virtualCam.Height, 8)
	test.That(t, err, test.ShouldBeNil)
	maskCentre := mask.At(cx, cy)
	test.That(t, maskCentre[0], test.ShouldEqual, float32(1))
}

func TestControllerRunSubstitutesFrameIndexInOutputPath(t *testing.T) {
	dir := t.TempDir()
	inputCam := flatCam("cam0")
	texture, depth := writeFlatInput(t, dir, inputCam)
	virtualCam := flatCam("virt0")

	cfg := &config.Config{
		InputCameraNames:   []string{"cam0"},
		VirtualCameraNames: []string{"virt0"},
		Texture:            []string{texture},
		Depth:              []string{depth},
		OutputFiles:        []string{filepath.Join(dir, "out-%d.png")},
		BlendingMethod:     config.BlendingSimple,
		BlendingFactor:     1.0,
		StartFrame:         0,
		NumberOfFrames:     1,
		Precision:          1,
		ColorSpace:         config.ColorSpaceRGB,
	}

	c := &Controller{
		Cfg:         cfg,
		InputCams:   []camera.Parameters{inputCam},
		VirtualCams: []camera.Parameters{virtualCam},
		Logger:      logging.NewTestLogger(t),
	}

	err := c.Run(context.Background())
	test.That(t, err, test.ShouldBeNil)

	_, err = ioimage.LoadColorPNG(filepath.Join(dir, "out-0.png"), virtualCam.Width, virtualCam.Height, virtualCam.BitDepthColor)
	test.That(t, err, test.ShouldBeNil)
}

func TestControllerRunReturnsErrorOnMissingInput(t *testing.T) {
	dir := t.TempDir()
	inputCam := flatCam("cam0")
	virtualCam := flatCam("virt0")

	cfg := &config.Config{
		InputCameraNames:   []string{"cam0"},
		VirtualCameraNames: []string{"virt0"},
		Texture:            []string{filepath.Join(dir, "missing.png")},
		Depth:              []string{filepath.Join(dir, "missing_depth.png")},
		BlendingMethod:     config.BlendingSimple,
		BlendingFactor:     1.0,
		StartFrame:         0,
		NumberOfFrames:     1,
		Precision:          1,
		ColorSpace:         config.ColorSpaceRGB,
	}

	c := &Controller{
		Cfg:         cfg,
		InputCams:   []camera.Parameters{inputCam},
		VirtualCams: []camera.Parameters{virtualCam},
		Logger:      logging.NewTestLogger(t),
	}

	err := c.Run(context.Background())
	test.That(t, err, test.ShouldNotBeNil)
}

func TestRebasedVirtualCameraAppliesPoseTrace(t *testing.T) {
	virtualCam := flatCam("virt0")
	cfg := &config.Config{StartFrame: 0}
	c := &Controller{
		Cfg:         cfg,
		VirtualCams: []camera.Parameters{virtualCam},
		PoseTrace: []config.PoseTraceEntry{
			{Rotation: mgl64.Ident3(), Translation: spatial.Vec3{1, 2, 3}},
		},
	}

	rebased := c.rebasedVirtualCamera(0, 0)
	test.That(t, rebased.Pose.Translation, test.ShouldResemble, spatial.Vec3{1, 2, 3})
}

func TestHasFormatVerb(t *testing.T) {
	test.That(t, hasFormatVerb("out-%d.png"), test.ShouldBeTrue)
	test.That(t, hasFormatVerb("out.png"), test.ShouldBeFalse)
	test.That(t, hasFormatVerb("out-100%%.png"), test.ShouldBeFalse)
}
