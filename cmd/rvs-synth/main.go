// Command rvs-synth runs the view synthesizer from a JSON run configuration,
// and provides a "preview" subcommand for quick thumbnail inspection of a
// synthesized frame during development.
package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/nfnt/resize"
	"github.com/urfave/cli/v2"

	"github.com/ShengMingTang/rvs-synth-go/config"
	"github.com/ShengMingTang/rvs-synth-go/logging"
	"github.com/ShengMingTang/rvs-synth-go/pipeline"
	"github.com/ShengMingTang/rvs-synth-go/rvserrors"
)

func main() {
	app := &cli.App{
		Name:      "rvs-synth",
		Usage:     "depth-image-based view synthesizer",
		UsageText: "rvs-synth <config.json>",
		Action:    runAction,
		Commands: []*cli.Command{
			previewCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.Exit("expected exactly one argument: the path to a run configuration file", 1)
	}
	logger := logging.NewLogger("rvs-synth")
	defer logger.Sync()

	c, err := buildController(ctx.Args().Get(0), logger)
	if err != nil {
		return err
	}
	return c.Run(context.Background())
}

// buildController loads the run configuration and every file it references
// (camera parameters, optional pose trace) into a ready-to-run Controller.
func buildController(configPath string, logger logging.Logger) (*pipeline.Controller, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	inputCams, err := config.LoadCameraParameters(cfg.InputCameraParameterFile, cfg.InputCameraNames)
	if err != nil {
		return nil, err
	}
	virtualCams, err := config.LoadCameraParameters(cfg.VirtualCameraParameterFile, cfg.VirtualCameraNames)
	if err != nil {
		return nil, err
	}

	var poseTrace []config.PoseTraceEntry
	if cfg.VirtualPoseTraceName != "" {
		poseTrace, err = config.LoadPoseTrace(cfg.VirtualPoseTraceName)
		if err != nil {
			return nil, err
		}
		if len(poseTrace) < cfg.NumberOfFrames {
			return nil, rvserrors.New(rvserrors.Config, "rvs-synth.buildController", fmt.Errorf("pose trace has %d entries, fewer than NumberOfFrames (%d)", len(poseTrace), cfg.NumberOfFrames), rvserrors.WithInput(cfg.VirtualPoseTraceName))
		}
	}

	return &pipeline.Controller{
		Cfg:         cfg,
		InputCams:   inputCams,
		VirtualCams: virtualCams,
		PoseTrace:   poseTrace,
		Logger:      logger,
	}, nil
}

// previewCommand builds a quick bilinear thumbnail of an already
// synthesized PNG frame, separate from the box/bicubic resamplers the
// ioimage codec path uses, for fast interactive inspection while iterating
// on a run configuration.
func previewCommand() *cli.Command {
	return &cli.Command{
		Name:      "preview",
		Usage:     "write a scaled-down thumbnail of a synthesized PNG frame",
		UsageText: "rvs-synth preview [--width N] <in.png> <out.png>",
		Flags: []cli.Flag{
			&cli.UintFlag{Name: "width", Value: 256, Usage: "thumbnail width in pixels; height is scaled to preserve aspect ratio"},
		},
		Action: func(ctx *cli.Context) error {
			if ctx.NArg() != 2 {
				return cli.Exit("expected two arguments: the input PNG and the output PNG path", 1)
			}
			return writePreview(ctx.Args().Get(0), ctx.Args().Get(1), uint(ctx.Uint("width")))
		},
	}
}

func writePreview(inPath, outPath string, width uint) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	defer in.Close()

	img, _, err := image.Decode(in)
	if err != nil {
		return fmt.Errorf("preview: decoding %s: %w", inPath, err)
	}

	thumb := resize.Resize(width, 0, img, resize.Bilinear)

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	defer out.Close()
	if err := png.Encode(out, thumb); err != nil {
		return fmt.Errorf("preview: encoding %s: %w", outPath, err)
	}
	return nil
}
