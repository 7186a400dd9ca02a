package ioimage

import (
	"encoding/binary"
	"math"
	"os"

	openexr "github.com/mrjoshuak/go-openexr"

	"github.com/ShengMingTang/rvs-synth-go/rvserrors"
	"github.com/ShengMingTang/rvs-synth-go/view"
)

// LoadDepthEXR reads a single-channel ("Z") OpenEXR scanline image as a
// depth plane, grounded on read_depth: values are stored and returned
// verbatim (no disparity linearization — EXR depth is already in metres).
func LoadDepthEXR(filename string) (view.Plane, error) {
	op := "ioimage.LoadDepthEXR"
	f, err := os.Open(filename)
	if err != nil {
		return view.Plane{}, rvserrors.New(rvserrors.IO, op, err, rvserrors.WithInput(filename))
	}
	defer f.Close()

	in, err := openexr.NewInputFile(f)
	if err != nil {
		return view.Plane{}, rvserrors.New(rvserrors.IO, op, err, rvserrors.WithInput(filename))
	}
	header := in.Header()
	dw := header.DataWindow()
	w := int(dw.Max.X-dw.Min.X) + 1
	h := int(dw.Max.Y-dw.Min.Y) + 1

	out := view.NewPlane(w, h)
	buf := make([]byte, 4*w*h)
	fb := openexr.NewFrameBuffer()
	fb.Insert(depthChannelName(header), openexr.Slice{
		Type:    openexr.FLOAT,
		Buffer:  buf,
		XStride: 4,
		YStride: 4 * w,
	})
	in.SetFrameBuffer(fb)
	if err := in.ReadPixels(int(dw.Min.Y), int(dw.Max.Y)); err != nil {
		return view.Plane{}, rvserrors.New(rvserrors.IO, op, err, rvserrors.WithInput(filename))
	}
	bytesToFloat32Plane(buf, out.Data)
	return out, nil
}

// WriteDepthEXR writes depth as a single-channel ("Z") OpenEXR scanline
// image, verbatim.
func WriteDepthEXR(filename string, depth view.Plane) error {
	op := "ioimage.WriteDepthEXR"
	f, err := os.Create(filename)
	if err != nil {
		return rvserrors.New(rvserrors.IO, op, err, rvserrors.WithInput(filename))
	}
	defer f.Close()

	dw := openexr.Box2i{Min: openexr.V2i{X: 0, Y: 0}, Max: openexr.V2i{X: int32(depth.W - 1), Y: int32(depth.H - 1)}}
	header := openexr.NewHeader(dw)
	header.Channels().Insert("Z", openexr.Channel{Type: openexr.FLOAT})

	out, err := openexr.NewOutputFile(f, header)
	if err != nil {
		return rvserrors.New(rvserrors.IO, op, err, rvserrors.WithInput(filename))
	}

	buf := make([]byte, 4*len(depth.Data))
	float32PlaneToBytes(depth.Data, buf)
	fb := openexr.NewFrameBuffer()
	fb.Insert("Z", openexr.Slice{
		Type:    openexr.FLOAT,
		Buffer:  buf,
		XStride: 4,
		YStride: 4 * depth.W,
	})
	out.SetFrameBuffer(fb)
	if err := out.WritePixels(depth.H); err != nil {
		return rvserrors.New(rvserrors.IO, op, err, rvserrors.WithInput(filename))
	}
	return nil
}

// depthChannelName returns "Z" if the file carries a channel of that name,
// and otherwise "Y" without checking that a "Y" channel exists.
func depthChannelName(header *openexr.Header) string {
	channels := header.Channels()
	for i := 0; i < channels.Len(); i++ {
		if channels.At(i).Name == "Z" {
			return "Z"
		}
	}
	return "Y"
}

func bytesToFloat32Plane(buf []byte, out []float32) {
	for i := range out {
		out[i] = bytesToFloat32(buf[i*4 : i*4+4])
	}
}

func float32PlaneToBytes(in []float32, buf []byte) {
	for i, v := range in {
		float32ToBytes(v, buf[i*4:i*4+4])
	}
}

func bytesToFloat32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

func float32ToBytes(v float32, b []byte) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
}
