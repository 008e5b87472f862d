//go:build !amd64 && !arm64

package hwy

func init() {
	// Other architectures (wasm, riscv64, ...) run the portable
	// lane emulation at the baseline 128-bit width.
	setScalarMode()
}
