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

// WhileLessThanInto sets lane k of dst active iff i+k < n and returns
// dst. It is the portable form of SVE's svwhilelt: a loop that steps i
// by the lane count and masks every access with this predicate needs no
// separate remainder loop, and never touches index n or beyond.
//
// Example:
//
//	var regs hwy.Registers[float32]
//	for i := 0; i < n; {
//	    lanes := hwy.LanesOf[float32](tag)
//	    pg := hwy.WhileLessThanInto(regs.Pred(lanes), i, n)
//	    v := hwy.MaskLoadInto(regs.Vec(0, lanes), pg, data[i:])
//	    hwy.MaskStore(pg, v, out[i:])
//	    i += lanes
//	}
func WhileLessThanInto[T Lanes](dst Mask[T], i, n int) Mask[T] {
	for k := range dst.bits {
		dst.bits[k] = i+k < n
	}
	return dst
}

// ProcessWithTail is a helper for processing arrays in fixed-width
// chunks the way non-predicated SIMD code does: full vectors first,
// then the remainder.
//
// It calls:
//   - fullFn(offset) for each full vector (offset is the starting index)
//   - tailFn(offset, count) once for the tail if size is not a multiple of vector width
//
// The lane count is read from tag once, up front.
func ProcessWithTail[T Lanes](tag Tag, size int, fullFn func(offset int), tailFn func(offset, count int)) {
	lanes := LanesOf[T](tag)
	if lanes <= 0 || size <= 0 {
		return
	}

	// Process full vectors
	fullVectors := size / lanes
	for i := range fullVectors {
		fullFn(i * lanes)
	}

	// Process tail if any
	remaining := size % lanes
	if remaining > 0 {
		tailFn(fullVectors*lanes, remaining)
	}
}
