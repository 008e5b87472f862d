package bench

import (
	"math"

	"github.com/samber/lo"
	"github.com/viterin/vek/vek32"

	"github.com/ajroetker/svebench/hwy/contrib/axpy"
)

// Sample is one spot-checked element.
type Sample struct {
	Index    int     `json:"index"`
	Expected float32 `json:"expected"`
	Got      float32 `json:"got"`
	ULPs     uint32  `json:"ulps"`
	OK       bool    `json:"ok"`
}

// SampleIndices returns the spot-check indices for n elements: first,
// second, 42, the midpoint and the last, dropping any that fall outside
// [0, n) and any duplicates.
func SampleIndices(n int) []int {
	candidates := []int{0, 1, 42, n / 2, n - 1}
	return lo.Uniq(lo.Filter(candidates, func(idx, _ int) bool {
		return idx >= 0 && idx < n
	}))
}

// ULPDistance returns how many representable float32 values lie between
// a and b. NaN against anything is the maximum distance; equal values
// (including +0 and -0) are 0 apart.
func ULPDistance(a, b float32) uint32 {
	if math.IsNaN(float64(a)) || math.IsNaN(float64(b)) {
		return math.MaxUint32
	}
	if a == b {
		return 0
	}
	ia, ib := orderedBits(a), orderedBits(b)
	if ia > ib {
		return uint32(min(ia-ib, math.MaxUint32))
	}
	return uint32(min(ib-ia, math.MaxUint32))
}

// orderedBits maps float32 bit patterns onto a monotonic integer line.
func orderedBits(f float32) int64 {
	bits := int64(int32(math.Float32bits(f)))
	if bits < 0 {
		bits = math.MinInt32 - bits
	}
	return bits
}

// SpotCheck recomputes a*x[idx]+y0[idx] for the SampleIndices of len(y)
// and compares against y.
func SpotCheck(a float32, x, y0, y []float32, toleranceULPs int) []Sample {
	return lo.Map(SampleIndices(len(y)), func(idx, _ int) Sample {
		want := axpy.Expected(a, x[idx], y0[idx])
		d := ULPDistance(want, y[idx])
		return Sample{
			Index:    idx,
			Expected: want,
			Got:      y[idx],
			ULPs:     d,
			OK:       int64(d) <= int64(toleranceULPs),
		}
	})
}

// FullCheck recomputes every element with vek32, an implementation
// independent of the kernels under test, and returns the number of
// elements further than toleranceULPs from it together with the largest
// distance seen.
//
// vek32 rounds the product and the sum separately, so a zero tolerance
// can report rounding-only differences on large inputs.
func FullCheck(a float32, x, y0, y []float32, toleranceULPs int) (mismatches int, maxULPs uint32) {
	if len(y) == 0 {
		return 0, 0
	}
	want := vek32.Add(vek32.MulNumber(x, a), y0)
	for i, w := range want {
		d := ULPDistance(w, y[i])
		maxULPs = max(maxULPs, d)
		if int64(d) > int64(toleranceULPs) {
			mismatches++
		}
	}
	return mismatches, maxULPs
}

// allOK reports whether every sample passed.
func allOK(samples []Sample) bool {
	return lo.EveryBy(samples, func(s Sample) bool { return s.OK })
}
