package hwy

import "testing"

func TestDispatchLevelString(t *testing.T) {
	levels := map[DispatchLevel]string{
		DispatchScalar:    "scalar",
		DispatchSSE2:      "sse2",
		DispatchAVX2:      "avx2",
		DispatchAVX512:    "avx512",
		DispatchNEON:      "neon",
		DispatchSVE:       "sve",
		DispatchSME:       "sme",
		DispatchLevel(99): "unknown",
	}
	for level, want := range levels {
		if got := level.String(); got != want {
			t.Errorf("DispatchLevel(%d).String() = %q, want %q", level, got, want)
		}
	}
	if !DispatchSVE.IsScalable() || DispatchAVX2.IsScalable() {
		t.Error("IsScalable: only SVE and SME have a hardware-defined length")
	}
}

func TestCurrentWidth(t *testing.T) {
	w := CurrentWidth()
	if w < 16 || w%16 != 0 {
		t.Errorf("CurrentWidth() = %d, want a positive multiple of 16", w)
	}
	if CurrentName() == "" {
		t.Error("CurrentName() is empty")
	}
	if got := MaxLanes[float32](); got != w/4 {
		t.Errorf("MaxLanes[float32]() = %d, want %d", got, w/4)
	}
	if got := MaxLanes[float64](); got != w/8 {
		t.Errorf("MaxLanes[float64]() = %d, want %d", got, w/8)
	}
}

func TestSVEVectorBytes(t *testing.T) {
	vl := SVEVectorBytes()
	if !HasSVE() {
		t.Skip("SVE not available")
	}
	// The architecture allows 128..2048 bits in 128-bit steps.
	if vl < 16 || vl > 256 || vl%16 != 0 {
		t.Errorf("SVEVectorBytes() = %d, want 16..256 in steps of 16", vl)
	}
}

func TestNoSimdEnv(t *testing.T) {
	tests := []struct {
		val  string
		want bool
	}{
		{"", false},
		{"1", true},
		{"true", true},
		{"0", false},
		{"false", false},
		{"yes", true},
	}
	for _, tt := range tests {
		t.Setenv("HWY_NO_SIMD", tt.val)
		if got := NoSimdEnv(); got != tt.want {
			t.Errorf("NoSimdEnv() with %q = %v, want %v", tt.val, got, tt.want)
		}
	}
}
