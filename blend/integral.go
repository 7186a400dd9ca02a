package blend

import (
	"math"

	"github.com/ShengMingTang/rvs-synth-go/view"
)

// integralImage is the per-row, per-column prefix-sum table described in
// spec.md §9 "Integral images": it counts only finite, in-mask samples, so
// the mean filter used by the multiband split averages strictly over valid
// neighbours.
type integralImage struct {
	w, h  int
	sum   []float64 // (w+1) x (h+1), sum[y][x] = sum over [0,x) x [0,y)
	count []int64
}

func newIntegralImage(w, h int, values []float32, mask []bool) *integralImage {
	stride := w + 1
	sum := make([]float64, stride*(h+1))
	count := make([]int64, stride*(h+1))
	for y := 0; y < h; y++ {
		rowSum := 0.0
		rowCount := int64(0)
		for x := 0; x < w; x++ {
			idx := y*w + x
			v := float64(values[idx])
			if mask[idx] && !math.IsNaN(v) && !math.IsInf(v, 0) {
				rowSum += v
				rowCount++
			}
			above := y * stride
			sum[(y+1)*stride+x+1] = sum[above+x+1] + rowSum
			count[(y+1)*stride+x+1] = count[above+x+1] + rowCount
		}
	}
	return &integralImage{w: w, h: h, sum: sum, count: count}
}

// meanInWindow returns (sum, count) over the square window centred at (x, y)
// with the given half-size, clipped to the image.
func (ii *integralImage) meanInWindow(x, y, half int) (float64, int64) {
	x0, x1 := clamp(x-half, 0, ii.w), clamp(x+half+1, 0, ii.w)
	y0, y1 := clamp(y-half, 0, ii.h), clamp(y+half+1, 0, ii.h)
	stride := ii.w + 1
	total := ii.sum[y1*stride+x1] - ii.sum[y0*stride+x1] - ii.sum[y1*stride+x0] + ii.sum[y0*stride+x0]
	n := ii.count[y1*stride+x1] - ii.count[y0*stride+x1] - ii.count[y1*stride+x0] + ii.count[y0*stride+x0]
	return total, n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// meanFilter applies the mean-filter described in spec.md §4.4 to c, masked
// by depthMask (true = usable sample), with a window of side 2*half+1.
// Pixels with zero contributing samples get emptyColor.
func meanFilter(c view.Color3, depthMask []bool, half int, emptyColor [3]float32) view.Color3 {
	out := view.NewColor3(c.W, c.H)
	channels := [3][]float32{c.C0, c.C1, c.C2}
	integrals := [3]*integralImage{
		newIntegralImage(c.W, c.H, channels[0], depthMask),
		newIntegralImage(c.W, c.H, channels[1], depthMask),
		newIntegralImage(c.W, c.H, channels[2], depthMask),
	}
	for y := 0; y < c.H; y++ {
		for x := 0; x < c.W; x++ {
			var col [3]float32
			sum0, n0 := integrals[0].meanInWindow(x, y, half)
			if n0 == 0 {
				col = emptyColor
			} else {
				sum1, _ := integrals[1].meanInWindow(x, y, half)
				sum2, _ := integrals[2].meanInWindow(x, y, half)
				col = [3]float32{
					float32(sum0 / float64(n0)),
					float32(sum1 / float64(n0)),
					float32(sum2 / float64(n0)),
				}
			}
			out.Set(x, y, col)
		}
	}
	return out
}
