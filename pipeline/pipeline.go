// Package pipeline implements the controller (C7): the per-(frame, virtual
// camera) state machine, pose-trace rebasing, and output emission, grounded
// on Pipeline.cpp/hpp and Application.cpp.
package pipeline

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/ShengMingTang/rvs-synth-go/blend"
	"github.com/ShengMingTang/rvs-synth-go/camera"
	"github.com/ShengMingTang/rvs-synth-go/config"
	"github.com/ShengMingTang/rvs-synth-go/inpaint"
	"github.com/ShengMingTang/rvs-synth-go/ioimage"
	"github.com/ShengMingTang/rvs-synth-go/logging"
	"github.com/ShengMingTang/rvs-synth-go/raster"
	"github.com/ShengMingTang/rvs-synth-go/rvserrors"
	"github.com/ShengMingTang/rvs-synth-go/synth"
	"github.com/ShengMingTang/rvs-synth-go/view"
)

// Controller runs the full batch described by a Config: every requested
// frame for every virtual camera, each an independent unit of work (spec.md
// §5 "task parallelism across (frame, virtual-camera) units").
type Controller struct {
	Cfg         *config.Config
	InputCams   []camera.Parameters
	VirtualCams []camera.Parameters
	PoseTrace   []config.PoseTraceEntry // nil if the config has no VirtualPoseTraceName
	Logger      logging.Logger
}

// Run executes every (frame, virtual camera) unit, in parallel, and returns
// the first error encountered (other units already started are allowed to
// finish; none of their partial output is rolled back, per spec.md §5's
// "partial outputs from prior frames remain valid" guarantee).
func (c *Controller) Run(ctx context.Context) error {
	frames := lo.RangeFrom(c.Cfg.StartFrame, c.Cfg.NumberOfFrames)

	g, gctx := errgroup.WithContext(ctx)
	for _, frame := range frames {
		for vIdx := range c.VirtualCams {
			frame, vIdx := frame, vIdx
			g.Go(func() error { return c.runUnit(gctx, frame, vIdx) })
		}
	}
	return g.Wait()
}

// runUnit executes the state machine of spec.md §4.6 for a single (frame,
// virtual camera) pair.
func (c *Controller) runUnit(ctx context.Context, frame, vIdx int) error {
	op := "pipeline.Controller.runUnit"
	virtualName := c.Cfg.VirtualCameraNames[vIdx]
	virtualCam := c.rebasedVirtualCamera(frame, vIdx)

	blender := newBlender(c.Cfg, virtualCam)
	var cleanupErr error
	for i := range c.Cfg.InputCameraNames {
		inputView, err := c.loadInput(i, frame)
		if err != nil {
			return rvserrors.New(rvserrors.IO, op, err, rvserrors.WithFrame(frame), rvserrors.WithVirtual(virtualName), rvserrors.WithInput(c.Cfg.InputCameraNames[i]))
		}

		sv, err := synth.Synthesize(ctx, inputView, c.InputCams[i], virtualCam, synth.Config{
			Scale:          c.Cfg.Precision,
			QualityFormula: raster.QualityOld,
		})
		if err != nil {
			return rvserrors.New(rvserrors.Internal, op, err, rvserrors.WithFrame(frame), rvserrors.WithVirtual(virtualName), rvserrors.WithInput(c.Cfg.InputCameraNames[i]))
		}
		blender.Blend(sv)

		if err := c.unloadInput(i); err != nil {
			cleanupErr = multierr.Append(cleanupErr, err)
		}
	}

	blended := blender.Result()
	colourFilled := inpaint.Inpaint(blended.Color, blended.InpaintMask())

	outW, outH := virtualCam.Width, virtualCam.Height
	colourOut := downscaleColor(colourFilled, outW, outH)
	depthOut := downscalePlane(blended.Depth, outW, outH)
	validityOut := downscalePlane(blended.Validity, outW, outH)

	if err := c.emit(frame, vIdx, colourOut, depthOut, validityOut); err != nil {
		return multierr.Append(rvserrors.New(rvserrors.IO, op, err, rvserrors.WithFrame(frame), rvserrors.WithVirtual(virtualName)), cleanupErr)
	}
	return cleanupErr
}

// rebasedVirtualCamera applies the pose-trace entry for this frame, if
// configured: R_virt <- R_trace * R_virt0, t_virt <- t_trace + t_virt0
// (spec.md §4.6, resolved per SPEC_FULL.md's pose-trace Open Question).
func (c *Controller) rebasedVirtualCamera(frame, vIdx int) camera.Parameters {
	cam := c.VirtualCams[vIdx]
	if c.PoseTrace == nil {
		return cam
	}
	idx := frame - c.Cfg.StartFrame
	if idx < 0 || idx >= len(c.PoseTrace) {
		return cam
	}
	entry := c.PoseTrace[idx]
	cam.Pose.Rotation = entry.Rotation.Mul3(cam.Pose.Rotation)
	cam.Pose.Translation = entry.Translation.Add(cam.Pose.Translation)
	return cam
}

func newBlender(cfg *config.Config, virtualCam camera.Parameters) blend.Blender {
	switch cfg.BlendingMethod {
	case config.BlendingMultiSpectral:
		half := multibandKernelHalf(cfg.Precision, virtualCam.Width, virtualCam.Height)
		return blend.NewMultiband(*cfg.BlendingLowFreqFactor, *cfg.BlendingHighFreqFactor, workingColorSpace(cfg), half)
	default:
		return blend.NewSimple(cfg.BlendingFactor)
	}
}

// multibandKernelHalf derives the mean-filter half-window from the
// Precision-scaled working resolution every view is blended at (the same
// outW/outH synth.Synthesize computes): spec.md §4.4 wants a mean-filter
// kernel of side ≈ max(H,W)/20, and the integral-image mean filter's
// window side is 2*half+1.
func multibandKernelHalf(precision float64, width, height int) int {
	scale := precision
	if scale <= 0 {
		scale = 1
	}
	outW := int(0.5 + float64(width)*scale)
	outH := int(0.5 + float64(height)*scale)
	maxSide := outW
	if outH > maxSide {
		maxSide = outH
	}
	half := maxSide / 40
	if half < 1 {
		half = 1
	}
	return half
}

func workingColorSpace(cfg *config.Config) view.ColorSpace {
	if cfg.ColorSpace == config.ColorSpaceRGB {
		return view.RGB
	}
	return view.YUV
}

func (c *Controller) loadInput(i, frame int) (view.View, error) {
	cam := c.InputCams[i]
	cs := workingColorSpace(c.Cfg)

	colour, err := ioimage.LoadColor(c.Cfg.Texture[i], cam.Width, cam.Height, cam.BitDepthColor, frame, cs)
	if err != nil {
		return view.View{}, err
	}
	depth, err := ioimage.LoadDepth(c.Cfg.Depth[i], cam.Width, cam.Height, cam.BitDepthDepth, cam.ZNear, cam.ZFar, frame)
	if err != nil {
		return view.View{}, err
	}

	v := view.NewView(cam.Width, cam.Height)
	v.Color = colour
	v.Depth = depth
	for px, d := range depth.Data {
		if view.IsValidDepth(d) {
			v.Quality.Data[px] = 100
			v.Validity.Data[px] = 100
		}
	}
	return v, nil
}

// unloadInput has nothing to release explicitly — Go's garbage collector
// reclaims the decoded view once loadInput's result goes out of scope — but
// is kept as an explicit step to mirror spec.md §4.6's state machine and
// give future streaming I/O a place to close file handles.
func (c *Controller) unloadInput(i int) error { return nil }

func (c *Controller) emit(frame, vIdx int, colour view.Color3, depth, validity view.Plane) error {
	cs := workingColorSpace(c.Cfg)

	if len(c.Cfg.OutputFiles) > vIdx && c.Cfg.OutputFiles[vIdx] != "" {
		path := framePath(c.Cfg.OutputFiles[vIdx], frame)
		if err := ioimage.WriteColor(path, colour, c.VirtualCams[vIdx].BitDepthColor, cs); err != nil {
			return err
		}
	}
	if c.Cfg.ValidityThreshold != nil && len(c.Cfg.OutputMasks) > vIdx && c.Cfg.OutputMasks[vIdx] != "" {
		mask := validityMask(validity, float32(*c.Cfg.ValidityThreshold))
		path := framePath(c.Cfg.OutputMasks[vIdx], frame)
		if err := ioimage.WriteColorPNG(path, mask, 8); err != nil {
			return err
		}
	}
	if len(c.Cfg.OutputMaskedFiles) > vIdx && c.Cfg.OutputMaskedFiles[vIdx] != "" {
		masked := maskedColor(colour, validity, thresholdOrZero(c.Cfg.ValidityThreshold))
		path := framePath(c.Cfg.OutputMaskedFiles[vIdx], frame)
		if err := ioimage.WriteColor(path, masked, c.VirtualCams[vIdx].BitDepthColor, cs); err != nil {
			return err
		}
	}
	if len(c.Cfg.OutputDepth) > vIdx && c.Cfg.OutputDepth[vIdx] != "" {
		path := framePath(c.Cfg.OutputDepth[vIdx], frame)
		if err := ioimage.WriteDepth(path, depth, c.VirtualCams[vIdx].BitDepthDepth, c.VirtualCams[vIdx].ZNear, c.VirtualCams[vIdx].ZFar); err != nil {
			return err
		}
	}
	return nil
}

func thresholdOrZero(t *float64) float32 {
	if t == nil {
		return 0
	}
	return float32(*t)
}

func validityMask(validity view.Plane, threshold float32) view.Color3 {
	out := view.NewColor3(validity.W, validity.H)
	for i, v := range validity.Data {
		if v < threshold {
			out.C0[i], out.C1[i], out.C2[i] = 0, 0, 0
		} else {
			out.C0[i], out.C1[i], out.C2[i] = 1, 1, 1
		}
	}
	return out
}

func maskedColor(colour view.Color3, validity view.Plane, threshold float32) view.Color3 {
	out := colour.Clone()
	grey := view.GreyColor()
	for i, v := range validity.Data {
		if v < threshold {
			out.C0[i], out.C1[i], out.C2[i] = grey[0], grey[1], grey[2]
		}
	}
	return out
}

// framePath substitutes a "%d"-style verb in filename with frame, so a
// single output pattern can address every frame of a multi-frame run; a
// filename with no verb is returned unchanged (the common single-frame
// case).
func framePath(filename string, frame int) string {
	if hasFormatVerb(filename) {
		return fmt.Sprintf(filename, frame)
	}
	return filename
}

func hasFormatVerb(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '%' {
			continue
		}
		if i+1 < len(s) && s[i+1] == '%' {
			i++ // escaped literal percent, not a verb
			continue
		}
		return true
	}
	return false
}
