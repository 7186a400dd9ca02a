package ioimage

import (
	"encoding/binary"
	"image"
	"image/color"
	"io"
	"math"
	"os"

	"github.com/disintegration/imaging"

	"github.com/ShengMingTang/rvs-synth-go/rvserrors"
	"github.com/ShengMingTang/rvs-synth-go/view"
)

// LoadColorYUV reads one frame of a planar YUV 4:2:0 texture stream: a full
// resolution luma plane followed by half-resolution Cb and Cr planes, each
// bitDepth bits per sample, little-endian. The returned Color3 is always in
// Y'CbCr order (C0=Y, C1=Cb, C2=Cr); convert with view.ConvertColor if the
// working colour space is RGB.
func LoadColorYUV(filename string, width, height, bitDepth, frame int) (view.Color3, error) {
	op := "ioimage.LoadColorYUV"
	bps, err := bytesPerSample(op, bitDepth)
	if err != nil {
		return view.Color3{}, err
	}

	f, err := os.Open(filename)
	if err != nil {
		return view.Color3{}, rvserrors.New(rvserrors.IO, op, err, rvserrors.WithInput(filename))
	}
	defer f.Close()

	frameBytes := int64(width*height*bps) * 3 / 2
	if _, err := f.Seek(frameBytes*int64(frame), io.SeekStart); err != nil {
		return view.Color3{}, rvserrors.New(rvserrors.IO, op, err, rvserrors.WithInput(filename))
	}

	cw, ch := (width+1)/2, (height+1)/2
	level := maxLevel(bitDepth)

	y, err := readPlaneSamples(f, width*height, bps, level)
	if err != nil {
		return view.Color3{}, rvserrors.New(rvserrors.IO, op, err, rvserrors.WithInput(filename))
	}
	cb, err := readPlaneSamples(f, cw*ch, bps, level)
	if err != nil {
		return view.Color3{}, rvserrors.New(rvserrors.IO, op, err, rvserrors.WithInput(filename))
	}
	cr, err := readPlaneSamples(f, cw*ch, bps, level)
	if err != nil {
		return view.Color3{}, rvserrors.New(rvserrors.IO, op, err, rvserrors.WithInput(filename))
	}

	out := view.NewColor3(width, height)
	copy(out.C0, y)
	copy(out.C1, resizePlaneBicubic(cb, cw, ch, width, height))
	copy(out.C2, resizePlaneBicubic(cr, cw, ch, width, height))
	return out, nil
}

// WriteColorYUV writes colour (already in Y'CbCr order) as one frame
// appended to a planar YUV 4:2:0 stream.
func WriteColorYUV(filename string, colour view.Color3, bitDepth int) error {
	op := "ioimage.WriteColorYUV"
	bps, err := bytesPerSample(op, bitDepth)
	if err != nil {
		return err
	}
	level := maxLevel(bitDepth)

	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return rvserrors.New(rvserrors.IO, op, err, rvserrors.WithInput(filename))
	}
	defer f.Close()

	cw, ch := (colour.W+1)/2, (colour.H+1)/2
	cb := resizePlaneBicubic(colour.C1, colour.W, colour.H, cw, ch)
	cr := resizePlaneBicubic(colour.C2, colour.W, colour.H, cw, ch)

	if err := writePlaneSamples(f, colour.C0, bps, level); err != nil {
		return rvserrors.New(rvserrors.IO, op, err, rvserrors.WithInput(filename))
	}
	if err := writePlaneSamples(f, cb, bps, level); err != nil {
		return rvserrors.New(rvserrors.IO, op, err, rvserrors.WithInput(filename))
	}
	if err := writePlaneSamples(f, cr, bps, level); err != nil {
		return rvserrors.New(rvserrors.IO, op, err, rvserrors.WithInput(filename))
	}
	return nil
}

// LoadDepthYUV reads one frame of a raw disparity stream and linearizes it
// to depth via depth = (z_far*z_near) / (z_near + v*(z_far-z_near)), with
// a raw sample of zero mapping to NaN ("no data"), grounded on
// read_depth_YUV.
func LoadDepthYUV(filename string, width, height, bitDepth int, zNear, zFar float64, frame int) (view.Plane, error) {
	op := "ioimage.LoadDepthYUV"
	bps, err := bytesPerSample(op, bitDepth)
	if err != nil {
		return view.Plane{}, err
	}

	f, err := os.Open(filename)
	if err != nil {
		return view.Plane{}, rvserrors.New(rvserrors.IO, op, err, rvserrors.WithInput(filename))
	}
	defer f.Close()

	frameBytes := int64(width*height*bps) * 3 / 2 // YUV 4:2:0 layout also used for raw depth streams
	if _, err := f.Seek(frameBytes*int64(frame), io.SeekStart); err != nil {
		return view.Plane{}, rvserrors.New(rvserrors.IO, op, err, rvserrors.WithInput(filename))
	}

	level := maxLevel(bitDepth)
	raw, err := readRawSamples(f, width*height, bps)
	if err != nil {
		return view.Plane{}, rvserrors.New(rvserrors.IO, op, err, rvserrors.WithInput(filename))
	}

	out := view.NewPlane(width, height)
	for i, s := range raw {
		if s == 0 {
			out.Data[i] = view.NaN32
			continue
		}
		v := float64(s) / float64(level)
		out.Data[i] = float32((zFar * zNear) / (zNear + v*(zFar-zNear)))
	}
	return out, nil
}

// WriteDepthYUV appends one frame of depth to a raw disparity stream,
// inverting LoadDepthYUV's linearization. NaN ("no data") samples are
// written as zero; the frame is padded with mid-level chroma planes.
func WriteDepthYUV(filename string, depth view.Plane, bitDepth int, zNear, zFar float64) error {
	op := "ioimage.WriteDepthYUV"
	bps, err := bytesPerSample(op, bitDepth)
	if err != nil {
		return err
	}
	level := maxLevel(bitDepth)

	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return rvserrors.New(rvserrors.IO, op, err, rvserrors.WithInput(filename))
	}
	defer f.Close()

	raw := make([]uint32, len(depth.Data))
	for i, d := range depth.Data {
		if math.IsNaN(float64(d)) || d <= 0 {
			raw[i] = 0
			continue
		}
		v := (zFar*zNear/float64(d) - zNear) / (zFar - zNear)
		raw[i] = clampSample(v, level)
	}
	if err := writeRawSamples(f, raw, bps); err != nil {
		return rvserrors.New(rvserrors.IO, op, err, rvserrors.WithInput(filename))
	}
	// Neutral chroma planes keep the frame in the 4:2:0 layout LoadDepthYUV
	// strides over.
	cw, ch := (depth.W+1)/2, (depth.H+1)/2
	chroma := make([]uint32, 2*cw*ch)
	for i := range chroma {
		chroma[i] = (level + 1) / 2
	}
	if err := writeRawSamples(f, chroma, bps); err != nil {
		return rvserrors.New(rvserrors.IO, op, err, rvserrors.WithInput(filename))
	}
	return nil
}

func clampSample(v float64, level uint32) uint32 {
	if v < 0 {
		return 0
	}
	s := v * float64(level)
	if s >= float64(level) {
		return level
	}
	return uint32(math.Round(s))
}

func readRawSamples(r io.Reader, count, bps int) ([]uint32, error) {
	buf := make([]byte, count*bps)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	out := make([]uint32, count)
	if bps == 1 {
		for i, b := range buf {
			out[i] = uint32(b)
		}
	} else {
		for i := 0; i < count; i++ {
			out[i] = uint32(binary.LittleEndian.Uint16(buf[i*2 : i*2+2]))
		}
	}
	return out, nil
}

func readPlaneSamples(r io.Reader, count, bps int, level uint32) ([]float32, error) {
	raw, err := readRawSamples(r, count, bps)
	if err != nil {
		return nil, err
	}
	out := make([]float32, count)
	for i, s := range raw {
		out[i] = float32(s) / float32(level)
	}
	return out, nil
}

func writeRawSamples(w io.Writer, samples []uint32, bps int) error {
	buf := make([]byte, len(samples)*bps)
	if bps == 1 {
		for i, s := range samples {
			buf[i] = byte(s)
		}
	} else {
		for i, s := range samples {
			binary.LittleEndian.PutUint16(buf[i*2:i*2+2], uint16(s))
		}
	}
	_, err := w.Write(buf)
	return err
}

func writePlaneSamples(w io.Writer, values []float32, bps int, level uint32) error {
	raw := make([]uint32, len(values))
	for i, v := range values {
		raw[i] = clampSample(float64(v), level)
	}
	return writeRawSamples(w, raw, bps)
}

// resizePlaneBicubic resamples a single-channel plane from (srcW, srcH) to
// (dstW, dstH) using the same bicubic kernel family as cv::INTER_CUBIC
// (image_loading.cpp / image_writing.cpp resize the chroma planes this
// way), via disintegration/imaging's Catmull-Rom filter.
func resizePlaneBicubic(values []float32, srcW, srcH, dstW, dstH int) []float32 {
	if srcW == dstW && srcH == dstH {
		out := make([]float32, len(values))
		copy(out, values)
		return out
	}
	// imaging always works in its 8-bit NRGBA colour model internally, so
	// the resample step is limited to 8-bit precision regardless of the
	// stream's actual bit depth; acceptable for chroma, which is already
	// subsampled.
	img := image.NewGray(image.Rect(0, 0, srcW, srcH))
	for y := 0; y < srcH; y++ {
		for x := 0; x < srcW; x++ {
			img.SetGray(x, y, color.Gray{Y: floatToUint8(values[y*srcW+x])})
		}
	}
	resized := imaging.Resize(img, dstW, dstH, imaging.CatmullRom)

	out := make([]float32, dstW*dstH)
	for y := 0; y < dstH; y++ {
		for x := 0; x < dstW; x++ {
			r, _, _, _ := resized.At(x, y).RGBA()
			out[y*dstW+x] = float32(r) / 65535
		}
	}
	return out
}

func floatToUint8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(float64(v) * 255))
}
