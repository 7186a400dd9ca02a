package ioimage

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/ShengMingTang/rvs-synth-go/rvserrors"
	"github.com/ShengMingTang/rvs-synth-go/view"
)

// LoadColorPNG reads an 8- or 16-bit PNG still, normalized to [0, 1] and
// returned as RGB, grounded on read_color_RGB.
func LoadColorPNG(filename string, width, height, bitDepth int) (view.Color3, error) {
	op := "ioimage.LoadColorPNG"
	if _, err := bytesPerSample(op, bitDepth); err != nil {
		return view.Color3{}, err
	}

	img, err := decodePNG(op, filename)
	if err != nil {
		return view.Color3{}, err
	}
	b := img.Bounds()
	if b.Dx() != width || b.Dy() != height {
		return view.Color3{}, rvserrors.New(rvserrors.IO, op, errf("color file %s has size %dx%d, want %dx%d", filename, b.Dx(), b.Dy(), width, height), rvserrors.WithInput(filename))
	}

	out := view.NewColor3(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			i := y*width + x
			out.C0[i] = float32(r) / 65535
			out.C1[i] = float32(g) / 65535
			out.C2[i] = float32(bl) / 65535
		}
	}
	return out, nil
}

// WriteColorPNG writes colour (RGB) as an 8- or 16-bit PNG still.
func WriteColorPNG(filename string, colour view.Color3, bitDepth int) error {
	op := "ioimage.WriteColorPNG"
	bps, err := bytesPerSample(op, bitDepth)
	if err != nil {
		return err
	}

	var img image.Image
	if bps == 1 {
		rgba := image.NewRGBA(image.Rect(0, 0, colour.W, colour.H))
		for y := 0; y < colour.H; y++ {
			for x := 0; x < colour.W; x++ {
				v := colour.At(x, y)
				rgba.SetRGBA(x, y, color.RGBA{R: floatToUint8(v[0]), G: floatToUint8(v[1]), B: floatToUint8(v[2]), A: 255})
			}
		}
		img = rgba
	} else {
		rgba := image.NewRGBA64(image.Rect(0, 0, colour.W, colour.H))
		for y := 0; y < colour.H; y++ {
			for x := 0; x < colour.W; x++ {
				v := colour.At(x, y)
				rgba.SetRGBA64(x, y, color.RGBA64{R: floatToUint16px(v[0]), G: floatToUint16px(v[1]), B: floatToUint16px(v[2]), A: 65535})
			}
		}
		img = rgba
	}
	return encodePNG(op, filename, img)
}

// LoadDepthPNG reads a PNG still whose raw samples are taken verbatim as
// depth values (no disparity linearization), grounded on read_depth_RGB.
func LoadDepthPNG(filename string, width, height, bitDepth int) (view.Plane, error) {
	op := "ioimage.LoadDepthPNG"
	if _, err := bytesPerSample(op, bitDepth); err != nil {
		return view.Plane{}, err
	}

	img, err := decodePNG(op, filename)
	if err != nil {
		return view.Plane{}, err
	}
	b := img.Bounds()
	if b.Dx() != width || b.Dy() != height {
		return view.Plane{}, rvserrors.New(rvserrors.IO, op, errf("depth file %s has size %dx%d, want %dx%d", filename, b.Dx(), b.Dy(), width, height), rvserrors.WithInput(filename))
	}

	out := view.NewPlane(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			gray := color.Gray16Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray16)
			out.Set(x, y, float32(gray.Y))
		}
	}
	return out, nil
}

// WriteDepthPNG writes depth verbatim as a 16-bit greyscale PNG still; NaN
// ("no data") samples are written as zero.
func WriteDepthPNG(filename string, depth view.Plane) error {
	op := "ioimage.WriteDepthPNG"
	img := image.NewGray16(image.Rect(0, 0, depth.W, depth.H))
	for y := 0; y < depth.H; y++ {
		for x := 0; x < depth.W; x++ {
			d := depth.At(x, y)
			if math.IsNaN(float64(d)) {
				d = 0
			}
			img.SetGray16(x, y, color.Gray16{Y: clampToUint16(d)})
		}
	}
	return encodePNG(op, filename, img)
}

func decodePNG(op, filename string) (image.Image, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, rvserrors.New(rvserrors.IO, op, err, rvserrors.WithInput(filename))
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, rvserrors.New(rvserrors.IO, op, err, rvserrors.WithInput(filename))
	}
	return img, nil
}

func encodePNG(op, filename string, img image.Image) error {
	f, err := os.Create(filename)
	if err != nil {
		return rvserrors.New(rvserrors.IO, op, err, rvserrors.WithInput(filename))
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return rvserrors.New(rvserrors.IO, op, err, rvserrors.WithInput(filename))
	}
	return nil
}

func floatToUint16px(v float32) uint16 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 65535
	}
	return uint16(math.Round(float64(v) * 65535))
}

func clampToUint16(v float32) uint16 {
	if v <= 0 {
		return 0
	}
	if v >= 65535 {
		return 65535
	}
	return uint16(math.Round(float64(v)))
}
