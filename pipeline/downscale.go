package pipeline

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ShengMingTang/rvs-synth-go/view"
)

// downscaleColor resamples colour from its oversampled size down to
// (outW, outH) using a box filter, the closest local equivalent to
// cv::INTER_AREA (spec.md §4.6 "downscale(colour, virtual_size)").
func downscaleColor(c view.Color3, outW, outH int) view.Color3 {
	if c.W == outW && c.H == outH {
		return c.Clone()
	}
	img := image.NewNRGBA64(image.Rect(0, 0, c.W, c.H))
	for y := 0; y < c.H; y++ {
		for x := 0; x < c.W; x++ {
			v := c.At(x, y)
			img.SetNRGBA64(x, y, color.NRGBA64{R: to16(v[0]), G: to16(v[1]), B: to16(v[2]), A: 0xffff})
		}
	}
	resized := imaging.Resize(img, outW, outH, imaging.Box)

	out := view.NewColor3(outW, outH)
	for y := 0; y < outH; y++ {
		for x := 0; x < outW; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()
			out.Set(x, y, [3]float32{float32(r) / 65535, float32(g) / 65535, float32(b) / 65535})
		}
	}
	return out
}

// downscalePlane area-averages p down to (outW, outH), skipping NaN/invalid
// samples within each source block and producing NaN where a block has no
// valid sample at all, matching the NaN discipline of spec.md §9.
func downscalePlane(p view.Plane, outW, outH int) view.Plane {
	if p.W == outW && p.H == outH {
		return p.Clone()
	}
	out := view.NewPlane(outW, outH)
	for oy := 0; oy < outH; oy++ {
		y0 := oy * p.H / outH
		y1 := (oy + 1) * p.H / outH
		if y1 <= y0 {
			y1 = y0 + 1
		}
		for ox := 0; ox < outW; ox++ {
			x0 := ox * p.W / outW
			x1 := (ox + 1) * p.W / outW
			if x1 <= x0 {
				x1 = x0 + 1
			}
			sum, count := 0.0, 0
			for y := y0; y < y1 && y < p.H; y++ {
				for x := x0; x < x1 && x < p.W; x++ {
					v := p.At(x, y)
					if math.IsNaN(float64(v)) {
						continue
					}
					sum += float64(v)
					count++
				}
			}
			if count == 0 {
				out.Set(ox, oy, view.NaN32)
			} else {
				out.Set(ox, oy, float32(sum/float64(count)))
			}
		}
	}
	return out
}

func to16(v float32) uint16 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 65535
	}
	return uint16(math.Round(float64(v) * 65535))
}
