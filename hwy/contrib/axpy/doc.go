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

// Package axpy provides the AXPY kernel, y = a*x + y, in several forms
// that all produce identical results:
//
//   - BaseSAXPY: predicated, vector-length-agnostic loop in the SVE style.
//     Every step asks the tag for its lane count, builds a WhileLessThan
//     predicate and performs masked load / zeroing multiply-add / masked
//     store. There is no remainder loop.
//   - BaseSAXPYChunked: fixed-width chunks plus a scalar remainder, the
//     portable fallback for targets without predicate registers.
//   - BaseSAXPYScalar: plain scalar loop, used as the reference.
//
// All three reject slices of different lengths with ErrLengthMismatch
// before touching either slice.
//
// # Example Usage
//
//	import "github.com/ajroetker/svebench/hwy/contrib/axpy"
//
//	x := []float32{0, 1, 2, 3, 4}
//	y := []float32{5, 4, 3, 2, 1}
//	if err := axpy.SAXPY(2.5, x, y); err != nil {
//	    return err
//	}
//	// y is now {5, 6.5, 8, 9.5, 11}
//
// SAXPY dispatches to the predicated kernel on scalable-vector targets
// (SVE, SME) and to the chunked kernel elsewhere. Lookup selects a kernel
// by name and Tag for benchmarks and tests.
package axpy
