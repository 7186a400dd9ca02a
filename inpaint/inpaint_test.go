package inpaint

import (
	"testing"

	"go.viam.com/test"

	"github.com/ShengMingTang/rvs-synth-go/view"
)

func TestInpaintIdempotentOnAllValidMask(t *testing.T) {
	c := view.NewColor3(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c.Set(x, y, [3]float32{float32(x), float32(y), 0})
		}
	}
	mask := make([]bool, 16)
	out := Inpaint(c, mask)
	for i := range out.C0 {
		test.That(t, out.C0[i], test.ShouldEqual, c.C0[i])
		test.That(t, out.C1[i], test.ShouldEqual, c.C1[i])
	}
}

func TestInpaintPropagatesNearestFinite(t *testing.T) {
	c := view.NewColor3(3, 1)
	c.Set(0, 0, [3]float32{1, 0, 0})
	c.Set(1, 0, [3]float32{0, 0, 0})
	c.Set(2, 0, [3]float32{0, 1, 0})
	mask := []bool{false, true, false}

	out := Inpaint(c, mask)
	got := out.At(1, 0)
	test.That(t, got, test.ShouldBeIn, [][3]float32{{1, 0, 0}, {0, 1, 0}})
}

func TestInpaintFillsLargeHoleFromNearestEdge(t *testing.T) {
	w, h := 5, 1
	c := view.NewColor3(w, h)
	c.Set(0, 0, [3]float32{9, 9, 9})
	mask := []bool{false, true, true, true, true}
	out := Inpaint(c, mask)
	for x := 1; x < w; x++ {
		test.That(t, out.At(x, 0), test.ShouldResemble, [3]float32{9, 9, 9})
	}
}
