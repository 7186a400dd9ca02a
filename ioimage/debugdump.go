package ioimage

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/lmittmann/ppm"
	"github.com/xfmoulet/qoi"

	"github.com/ShengMingTang/rvs-synth-go/rvserrors"
	"github.com/ShengMingTang/rvs-synth-go/spatial"
	"github.com/ShengMingTang/rvs-synth-go/view"
)

func colorToImage(c view.Color3) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.W, c.H))
	for y := 0; y < c.H; y++ {
		for x := 0; x < c.W; x++ {
			v := c.At(x, y)
			img.SetNRGBA(x, y, color.NRGBA{R: floatToUint8(v[0]), G: floatToUint8(v[1]), B: floatToUint8(v[2]), A: 255})
		}
	}
	return img
}

// DumpPreviewPPM writes a debug preview of a working-space-RGB frame as a
// plain PPM still. The "preview" CLI subcommand does not call it; it writes
// PNG thumbnails.
func DumpPreviewPPM(filename string, rgb view.Color3) error {
	op := "ioimage.DumpPreviewPPM"
	f, err := os.Create(filename)
	if err != nil {
		return rvserrors.New(rvserrors.IO, op, err, rvserrors.WithInput(filename))
	}
	defer f.Close()
	if err := ppm.Encode(f, colorToImage(rgb)); err != nil {
		return rvserrors.New(rvserrors.IO, op, err, rvserrors.WithInput(filename))
	}
	return nil
}

// DumpPreviewQOI writes a debug preview of a working-space-RGB frame as a
// QOI still. No CLI flag selects this format.
func DumpPreviewQOI(filename string, rgb view.Color3) error {
	op := "ioimage.DumpPreviewQOI"
	f, err := os.Create(filename)
	if err != nil {
		return rvserrors.New(rvserrors.IO, op, err, rvserrors.WithInput(filename))
	}
	defer f.Close()
	if err := qoi.Encode(f, colorToImage(rgb)); err != nil {
		return rvserrors.New(rvserrors.IO, op, err, rvserrors.WithInput(filename))
	}
	return nil
}

// DumpPointCloudPLY writes a debug point cloud (one unprojected world-space
// vertex and colour per valid pixel) as an ASCII PLY file; no CLI flag
// calls it. chenzhekl/goply's public surface only parses PLY
// files, so the writer below is a direct ASCII encoder against the format;
// round-tripping through goply is exercised in the package tests.
func DumpPointCloudPLY(filename string, points []spatial.Vec3, colours [][3]float32) error {
	op := "ioimage.DumpPointCloudPLY"
	if len(points) != len(colours) {
		return rvserrors.New(rvserrors.IO, op, errf("points (%d) and colours (%d) length mismatch", len(points), len(colours)))
	}

	valid := make([]int, 0, len(points))
	for i, p := range points {
		if spatial.IsFiniteVec3(p) {
			valid = append(valid, i)
		}
	}

	f, err := os.Create(filename)
	if err != nil {
		return rvserrors.New(rvserrors.IO, op, err, rvserrors.WithInput(filename))
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "ply\nformat ascii 1.0\n")
	fmt.Fprintf(w, "element vertex %d\n", len(valid))
	fmt.Fprintf(w, "property float x\nproperty float y\nproperty float z\n")
	fmt.Fprintf(w, "property uchar red\nproperty uchar green\nproperty uchar blue\n")
	fmt.Fprintf(w, "end_header\n")
	for _, i := range valid {
		p := points[i]
		c := colours[i]
		fmt.Fprintf(w, "%g %g %g %d %d %d\n", p[0], p[1], p[2], floatToUint8(c[0]), floatToUint8(c[1]), floatToUint8(c[2]))
	}
	if err := w.Flush(); err != nil {
		return rvserrors.New(rvserrors.IO, op, err, rvserrors.WithInput(filename))
	}
	return nil
}
