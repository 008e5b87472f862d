//go:build arm64

package hwy

import (
	"os"

	"golang.org/x/sys/cpu"
)

func init() {
	// Check for HWY_NO_SIMD environment variable first
	if NoSimdEnv() {
		setScalarMode()
		return
	}

	// ARM64 (AArch64) always has NEON (ASIMD) available.
	// It's part of the ARMv8-A base architecture.
	if cpu.ARM64.HasASIMD {
		currentLevel = DispatchNEON
		currentWidth = 16 // NEON is 128-bit (16 bytes)
		currentName = "neon"
	} else {
		// Fallback to scalar (should never happen on ARMv8+)
		setScalarMode()
	}

	// SVE: the vector length is implementation defined (128..2048 bits)
	// and may be narrowed per process, so ask the kernel.
	if HasSVE() {
		if vl := SVEVectorBytes(); vl >= 16 {
			currentLevel = DispatchSVE
			currentWidth = vl
			currentName = "sve"
		}
	}

	// SME support (Apple M4+)
	// Check for HWY_NO_SME environment variable to disable SME
	if hasSME && os.Getenv("HWY_NO_SME") == "" {
		currentLevel = DispatchSME
		currentWidth = 64 // SME streaming vector length is 512-bit (64 bytes) on M4
		currentName = "sme"
	}
}
