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

// MaxVectorBytes is the widest vector any supported target can report.
// SVE implementations range from 128 to 2048 bits.
const MaxVectorBytes = 256

// NumRegisters is the number of vector slots in a Registers file.
const NumRegisters = 4

// Registers is a fixed-capacity register file for width-agnostic loops:
// one predicate and NumRegisters vectors, each able to hold a full
// MaxVectorBytes vector. Declared as a local variable it stays on the
// stack, so a loop that takes its operands from it does not allocate.
//
// Wider requests than the capacity get heap buffers instead.
type Registers[T Lanes] struct {
	pred [MaxVectorBytes]bool
	vecs [NumRegisters][MaxVectorBytes]T
}

// Pred returns the predicate register viewed as lanes lanes.
func (r *Registers[T]) Pred(lanes int) Mask[T] {
	if lanes > len(r.pred) {
		return Mask[T]{bits: make([]bool, lanes)}
	}
	return Mask[T]{bits: r.pred[:lanes]}
}

// Vec returns vector register k viewed as lanes lanes. Registers are
// views, not copies: two calls with the same k alias.
func (r *Registers[T]) Vec(k, lanes int) Vec[T] {
	if lanes > len(r.vecs[k]) {
		return Vec[T]{data: make([]T, lanes)}
	}
	return Vec[T]{data: r.vecs[k][:lanes]}
}
