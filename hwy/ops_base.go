// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hwy

import (
	"math"
	"unsafe"
)

// This file provides the pure Go lane implementations. Every operation
// writes into a destination vector supplied by the caller (usually a
// Registers slot) and works on whatever lane count its operands carry,
// so the same code serves 128-bit NEON, 512-bit AVX-512 and any SVE
// vector length without allocating.

// LoadInto fills every lane of dst from src and returns dst.
// src must hold at least dst.NumLanes() elements; use MaskLoadInto otherwise.
func LoadInto[T Lanes](dst Vec[T], src []T) Vec[T] {
	copy(dst.data, src[:len(dst.data)])
	return dst
}

// Store writes a vector's data to a slice.
func Store[T Lanes](v Vec[T], dst []T) {
	n := min(len(dst), len(v.data))
	copy(dst[:n], v.data[:n])
}

// SetInto broadcasts value to every lane of dst (svdup_n_f32) and
// returns dst.
func SetInto[T Lanes](dst Vec[T], value T) Vec[T] {
	for i := range dst.data {
		dst.data[i] = value
	}
	return dst
}

// MulAddInto stores the fused multiply-add a*b + c of every lane in dst
// and returns dst.
func MulAddInto[T Floats](dst, a, b, c Vec[T]) Vec[T] {
	n := min(len(dst.data), len(a.data), len(b.data), len(c.data))
	for i := range n {
		dst.data[i] = FusedMulAdd(a.data[i], b.data[i], c.data[i])
	}
	return dst
}

// MulAddZeroInto is the predicated, zeroing multiply-add (svmad_f32_z):
// active lanes of dst get a*b + c, inactive lanes are forced to zero so no
// stale register contents propagate.
func MulAddZeroInto[T Floats](dst Vec[T], mask Mask[T], a, b, c Vec[T]) Vec[T] {
	n := min(len(dst.data), len(mask.bits), len(a.data), len(b.data), len(c.data))
	for i := range n {
		if mask.bits[i] {
			dst.data[i] = FusedMulAdd(a.data[i], b.data[i], c.data[i])
		} else {
			dst.data[i] = 0
		}
	}
	clear(dst.data[n:])
	return dst
}

// FusedMulAdd is the scalar lane operation behind MulAddInto and
// MulAddZeroInto: a*b + c rounded once to T. Scalar reference code uses
// it to reproduce kernel results bit for bit.
func FusedMulAdd[T Floats](a, b, c T) T {
	if unsafe.Sizeof(a) == 4 {
		return T(fma32(float32(a), float32(b), float32(c)))
	}
	return T(math.FMA(float64(a), float64(b), float64(c)))
}

// fma32 computes a*b + c with a single float32 rounding. The product is
// exact in float64; the sum is formed in float64 with round-to-odd, which
// leaves enough guard bits for the final narrowing to round correctly.
func fma32(a, b, c float32) float32 {
	p := float64(a) * float64(b)
	s := p + float64(c)
	if math.IsInf(s, 0) || math.IsNaN(s) {
		return float32(s)
	}
	// Rounding error of s, exact by Knuth's TwoSum.
	bv := s - p
	e := (p - (s - bv)) + (float64(c) - bv)
	if e != 0 && math.Float64bits(s)&1 == 0 {
		s = math.Nextafter(s, math.Copysign(math.Inf(1), e))
	}
	return float32(s)
}

// MaskLoadInto loads data into dst only for lanes where the mask is true.
// Inactive lanes read as zero and their source elements are never
// indexed, so src may be shorter than the vector.
func MaskLoadInto[T Lanes](dst Vec[T], mask Mask[T], src []T) Vec[T] {
	n := min(len(dst.data), len(mask.bits))
	for i := range n {
		if mask.bits[i] && i < len(src) {
			dst.data[i] = src[i]
		} else {
			dst.data[i] = 0
		}
	}
	clear(dst.data[n:])
	return dst
}

// MaskStore stores vector data to a slice only for lanes where the mask is true.
func MaskStore[T Lanes](mask Mask[T], v Vec[T], dst []T) {
	n := min(len(dst), min(len(v.data), len(mask.bits)))
	for i := range n {
		if mask.bits[i] {
			dst[i] = v.data[i]
		}
	}
}
