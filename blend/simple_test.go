package blend

import (
	"testing"

	"go.viam.com/test"

	"github.com/ShengMingTang/rvs-synth-go/view"
)

func flatSynth(w, h int, col [3]float32, quality, depth float32) view.SynthesizedView {
	v := view.NewView(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v.Color.Set(x, y, col)
		}
	}
	for i := range v.Quality.Data {
		v.Quality.Data[i] = quality
		v.Validity.Data[i] = quality
		v.Depth.Data[i] = depth
	}
	return view.SynthesizedView{View: v}
}

func TestSimpleBlendFirstCallAdoptsVerbatim(t *testing.T) {
	s := NewSimple(1.0)
	sv := flatSynth(2, 2, [3]float32{0.1, 0.2, 0.3}, 5, 2)
	s.Blend(sv)
	got := s.Result().Color.At(0, 0)
	test.That(t, got, test.ShouldResemble, [3]float32{0.1, 0.2, 0.3})
}

func TestSimpleBlendQualityMonotonicity(t *testing.T) {
	s := NewSimple(1.0)
	a := flatSynth(1, 1, [3]float32{1, 0, 0}, 10, 1)
	b := flatSynth(1, 1, [3]float32{0, 1, 0}, 1, 1)
	s.Blend(a)
	s.Blend(b)
	got := s.Result().Color.At(0, 0)
	test.That(t, got[0] > got[1], test.ShouldBeTrue)
}

func TestSimpleBlendWinnerTakesAllPrefersOriginalDepth(t *testing.T) {
	s := NewSimple(-1.0)
	original := flatSynth(1, 1, [3]float32{1, 1, 1}, 1, 1)
	prolongated := flatSynth(1, 1, [3]float32{0, 0, 0}, 100, 1)
	prolongated.Prolongation[0] = true
	s.Blend(prolongated)
	s.Blend(original)
	got := s.Result().Color.At(0, 0)
	test.That(t, got, test.ShouldResemble, [3]float32{1, 1, 1})
}
