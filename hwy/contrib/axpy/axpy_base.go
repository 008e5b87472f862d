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

package axpy

import (
	"errors"
	"fmt"

	"github.com/ajroetker/svebench/hwy"
)

// ErrLengthMismatch is returned when x and y have different lengths.
var ErrLengthMismatch = errors.New("axpy: vector sizes must be equal")

func checkLengths(nx, ny int) error {
	if nx != ny {
		return fmt.Errorf("%w: len(x)=%d, len(y)=%d", ErrLengthMismatch, nx, ny)
	}
	return nil
}

// BaseSAXPY computes y[i] = a*x[i] + y[i] for every i with a predicated,
// vector-length-agnostic loop.
//
// Each step re-reads the lane count from tag (svcntw), derives the
// predicate of lanes still below n (svwhilelt), loads x and y under it,
// applies the zeroing multiply-add and stores only the active lanes. The
// last, partial vector is handled by the predicate alone; no index at or
// beyond n is read or written. Operands live in a stack register file, so
// a call does not allocate.
//
// Returns ErrLengthMismatch, leaving y untouched, if len(x) != len(y).
func BaseSAXPY[T hwy.Floats](tag hwy.Tag, a T, x, y []T) error {
	if err := checkLengths(len(x), len(y)); err != nil {
		return err
	}

	n := len(x)
	var regs hwy.Registers[T]
	var va hwy.Vec[T]
	for i := 0; i < n; {
		lanes := hwy.LanesOf[T](tag)
		if va.NumLanes() != lanes {
			va = hwy.SetInto(regs.Vec(0, lanes), a)
		}
		pg := hwy.WhileLessThanInto(regs.Pred(lanes), i, n)
		vx := hwy.MaskLoadInto(regs.Vec(1, lanes), pg, x[i:])
		vy := hwy.MaskLoadInto(regs.Vec(2, lanes), pg, y[i:])
		result := hwy.MulAddZeroInto(regs.Vec(3, lanes), pg, va, vx, vy)
		hwy.MaskStore(pg, result, y[i:])

		i += lanes
	}
	return nil
}

// BaseSAXPYChunked computes y[i] = a*x[i] + y[i] in full vectors of the
// tag's width followed by a scalar remainder loop.
//
// Results are bit-identical to BaseSAXPY.
func BaseSAXPYChunked[T hwy.Floats](tag hwy.Tag, a T, x, y []T) error {
	if err := checkLengths(len(x), len(y)); err != nil {
		return err
	}

	var regs hwy.Registers[T]
	lanes := hwy.LanesOf[T](tag)
	va := hwy.SetInto(regs.Vec(0, lanes), a)
	vx, vy, vr := regs.Vec(1, lanes), regs.Vec(2, lanes), regs.Vec(3, lanes)
	hwy.ProcessWithTail[T](tag, len(x),
		func(offset int) {
			hwy.LoadInto(vx, x[offset:])
			hwy.LoadInto(vy, y[offset:])
			hwy.Store(hwy.MulAddInto(vr, va, vx, vy), y[offset:])
		},
		func(offset, count int) {
			for i := offset; i < offset+count; i++ {
				y[i] = hwy.FusedMulAdd(a, x[i], y[i])
			}
		},
	)
	return nil
}

// BaseSAXPYScalar is the scalar reference: one fused multiply-add per
// element, no vectors.
func BaseSAXPYScalar[T hwy.Floats](a T, x, y []T) error {
	if err := checkLengths(len(x), len(y)); err != nil {
		return err
	}
	y = y[:len(x)]
	for i := range x {
		y[i] = hwy.FusedMulAdd(a, x[i], y[i])
	}
	return nil
}

// Expected returns the value the kernels store for one element whose
// inputs were x and y0.
func Expected[T hwy.Floats](a, x, y0 T) T {
	return hwy.FusedMulAdd(a, x, y0)
}

// FLOPs is the floating-point operation count of one kernel call over n
// elements: one multiply and one add each.
func FLOPs(n int) int64 {
	return 2 * int64(n)
}
