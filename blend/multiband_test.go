package blend

import (
	"math"
	"testing"

	"go.viam.com/test"

	"github.com/ShengMingTang/rvs-synth-go/view"
)

func TestMultibandAdditivityMatchesSimple(t *testing.T) {
	const w, h = 8, 8
	a := flatSynth(w, h, [3]float32{0.2, 0.4, 0.6}, 5, 2)
	b := flatSynth(w, h, [3]float32{0.8, 0.5, 0.1}, 3, 4)

	simple := NewSimple(2.0)
	simple.Blend(a)
	simple.Blend(b)

	mb := NewMultiband(2.0, 2.0, view.RGB, 2)
	mb.Blend(a)
	mb.Blend(b)

	wantC := simple.Result().Color
	gotC := mb.Result().Color
	for i := range wantC.C0 {
		test.That(t, float64(gotC.C0[i]), test.ShouldAlmostEqual, float64(wantC.C0[i]), 1e-3)
		test.That(t, float64(gotC.C1[i]), test.ShouldAlmostEqual, float64(wantC.C1[i]), 1e-3)
		test.That(t, float64(gotC.C2[i]), test.ShouldAlmostEqual, float64(wantC.C2[i]), 1e-3)
	}
}

func TestMultibandLowHighReconstructsOriginalColorOnFirstBlend(t *testing.T) {
	mb := NewMultiband(1.0, 1.0, view.RGB, 2)
	sv := flatSynth(4, 4, [3]float32{0.3, 0.6, 0.9}, 5, 2)
	mb.Blend(sv)

	got := mb.Result().Color
	for i := range got.C0 {
		test.That(t, float64(got.C0[i]), test.ShouldAlmostEqual, 0.3, 1e-6)
		test.That(t, float64(got.C1[i]), test.ShouldAlmostEqual, 0.6, 1e-6)
		test.That(t, float64(got.C2[i]), test.ShouldAlmostEqual, 0.9, 1e-6)
	}
}

func TestMeanFilterEmptyColorWhenNoValidSamples(t *testing.T) {
	c := view.NewColor3(2, 2)
	c.Fill([3]float32{0.9, 0.9, 0.9})
	mask := make([]bool, 4) // every sample masked out
	empty := [3]float32{0, 1, 0}

	out := meanFilter(c, mask, 1, empty)
	for i := range out.C0 {
		test.That(t, [3]float32{out.C0[i], out.C1[i], out.C2[i]}, test.ShouldResemble, empty)
	}
}

func TestIntegralImageExcludesNonFiniteSamples(t *testing.T) {
	values := []float32{1, float32(math.NaN()), 3}
	mask := []bool{true, true, true}

	ii := newIntegralImage(3, 1, values, mask)
	sum, n := ii.meanInWindow(1, 0, 1)
	test.That(t, n, test.ShouldEqual, int64(2))
	test.That(t, sum, test.ShouldAlmostEqual, 4.0, 1e-9)
}

func TestIntegralImageExcludesInfiniteSamples(t *testing.T) {
	values := []float32{1, float32(math.Inf(1)), 3}
	mask := []bool{true, true, true}

	ii := newIntegralImage(3, 1, values, mask)
	sum, n := ii.meanInWindow(1, 0, 1)
	test.That(t, n, test.ShouldEqual, int64(2))
	test.That(t, sum, test.ShouldAlmostEqual, 4.0, 1e-9)
}

func TestIntegralImageExcludesMaskedOutSamples(t *testing.T) {
	values := []float32{1, 2, 3}
	mask := []bool{true, false, true}

	ii := newIntegralImage(3, 1, values, mask)
	sum, n := ii.meanInWindow(1, 0, 1)
	test.That(t, n, test.ShouldEqual, int64(2))
	test.That(t, sum, test.ShouldAlmostEqual, 4.0, 1e-9)
}
