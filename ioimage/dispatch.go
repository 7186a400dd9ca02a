package ioimage

import (
	"strings"

	"github.com/ShengMingTang/rvs-synth-go/rvserrors"
	"github.com/ShengMingTang/rvs-synth-go/view"
)

// LoadColor dispatches on filename extension: ".yuv" reads a planar YUV
// 4:2:0 stream frame (converted to cs), anything else reads one still
// image via the PNG codec, grounded on read_color.
func LoadColor(filename string, width, height, bitDepth, frame int, cs view.ColorSpace) (view.Color3, error) {
	op := "ioimage.LoadColor"
	if isYUV(filename) {
		ycc, err := LoadColorYUV(filename, width, height, bitDepth, frame)
		if err != nil {
			return view.Color3{}, err
		}
		if cs == view.RGB {
			return view.ConvertColor(ycc, view.YUV, view.RGB), nil
		}
		return ycc, nil
	}
	if frame != 0 {
		return view.Color3{}, rvserrors.New(rvserrors.IO, op, errf("reading multiple frames is not supported for still image files"), rvserrors.WithInput(filename))
	}
	rgb, err := LoadColorPNG(filename, width, height, bitDepth)
	if err != nil {
		return view.Color3{}, err
	}
	if cs == view.YUV {
		return view.ConvertColor(rgb, view.RGB, view.YUV), nil
	}
	return rgb, nil
}

// WriteColor dispatches on filename extension the same way LoadColor does.
func WriteColor(filename string, colour view.Color3, bitDepth int, cs view.ColorSpace) error {
	if isYUV(filename) {
		ycc := colour
		if cs == view.RGB {
			ycc = view.ConvertColor(colour, view.RGB, view.YUV)
		}
		return WriteColorYUV(filename, ycc, bitDepth)
	}
	rgb := colour
	if cs == view.YUV {
		rgb = view.ConvertColor(colour, view.YUV, view.RGB)
	}
	return WriteColorPNG(filename, rgb, bitDepth)
}

// LoadDepth dispatches on filename extension: ".yuv" reads a raw disparity
// stream and linearizes it, ".exr" reads an OpenEXR scanline depth image,
// anything else is read as a still image whose samples are depth verbatim,
// grounded on read_depth.
func LoadDepth(filename string, width, height, bitDepth int, zNear, zFar float64, frame int) (view.Plane, error) {
	op := "ioimage.LoadDepth"
	switch {
	case isYUV(filename):
		return LoadDepthYUV(filename, width, height, bitDepth, zNear, zFar, frame)
	case isEXR(filename):
		if frame != 0 {
			return view.Plane{}, rvserrors.New(rvserrors.IO, op, errf("reading multiple frames is not supported for EXR files"), rvserrors.WithInput(filename))
		}
		return LoadDepthEXR(filename)
	default:
		if frame != 0 {
			return view.Plane{}, rvserrors.New(rvserrors.IO, op, errf("reading multiple frames is not supported for still image files"), rvserrors.WithInput(filename))
		}
		return LoadDepthPNG(filename, width, height, bitDepth)
	}
}

// WriteDepth dispatches on filename extension the same way LoadDepth does.
func WriteDepth(filename string, depth view.Plane, bitDepth int, zNear, zFar float64) error {
	switch {
	case isYUV(filename):
		return WriteDepthYUV(filename, depth, bitDepth, zNear, zFar)
	case isEXR(filename):
		return WriteDepthEXR(filename, depth)
	default:
		return WriteDepthPNG(filename, depth)
	}
}

func isEXR(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".exr")
}
