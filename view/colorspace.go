package view

// ColorSpace selects the working representation used for blending and
// inpainting arithmetic (spec.md §3, §6 "ColorSpace" config key).
type ColorSpace int

const (
	// RGB is linear RGB in [0, 1].
	RGB ColorSpace = iota
	// YUV is Y'CbCr per ITU-R BT.601, full range, in [0, 1].
	YUV
)

func (c ColorSpace) String() string {
	if c == YUV {
		return "YUV"
	}
	return "RGB"
}

// RGBToYCbCr converts a linear RGB triple to BT.601 Y'CbCr, both in [0, 1].
func RGBToYCbCr(rgb [3]float32) [3]float32 {
	r, g, b := rgb[0], rgb[1], rgb[2]
	y := 0.299*r + 0.587*g + 0.114*b
	cb := (b-y)/1.772 + 0.5
	cr := (r-y)/1.402 + 0.5
	return [3]float32{y, cb, cr}
}

// YCbCrToRGB is the exact inverse of RGBToYCbCr (BT.601 full range), making
// the pair a lossless round trip per spec.md §3.
func YCbCrToRGB(ycc [3]float32) [3]float32 {
	y, cb, cr := ycc[0], ycc[1], ycc[2]
	r := y + 1.402*(cr-0.5)
	b := y + 1.772*(cb-0.5)
	g := (y - 0.299*r - 0.114*b) / 0.587
	return [3]float32{r, g, b}
}

// ConvertColor maps every pixel of c from 'from' to 'to'. A no-op if the
// spaces are the same.
func ConvertColor(c Color3, from, to ColorSpace) Color3 {
	if from == to {
		return c
	}
	out := NewColor3(c.W, c.H)
	convert := RGBToYCbCr
	if from == YUV {
		convert = YCbCrToRGB
	}
	for i := range c.C0 {
		v := convert([3]float32{c.C0[i], c.C1[i], c.C2[i]})
		out.C0[i], out.C1[i], out.C2[i] = v[0], v[1], v[2]
	}
	return out
}

// EmptyColor is the colour assigned to pixels nobody ever wrote (spec.md
// §4.4 mean-filter semantics): (0, 1, 0) in RGB, or its Y'CbCr equivalent.
func EmptyColor(cs ColorSpace) [3]float32 {
	if cs == YUV {
		return RGBToYCbCr([3]float32{0, 1, 0})
	}
	return [3]float32{0, 1, 0}
}

// GreyColor is the masked-output fill colour (0.5, 0.5, 0.5) from spec.md
// §4.6, independent of working colour space since it is emitted post
// downscale/back-conversion by the pipeline.
func GreyColor() [3]float32 {
	return [3]float32{0.5, 0.5, 0.5}
}
