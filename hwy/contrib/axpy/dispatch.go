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
	"slices"

	"github.com/ajroetker/svebench/hwy"
)

// Kernel names accepted by Lookup.
const (
	KernelAuto       = "auto"
	KernelPredicated = "predicated"
	KernelChunked    = "chunked"
	KernelScalar     = "scalar"
)

// ErrUnknownKernel is returned by Lookup for names it does not know.
var ErrUnknownKernel = errors.New("axpy: unknown kernel")

// Kernel is a single-precision AXPY implementation bound to a vector width.
type Kernel func(a float32, x, y []float32) error

// SAXPY computes y[i] = a*x[i] + y[i] using the best kernel for the
// running CPU at the hardware vector width. Set by init based on
// hwy.CurrentLevel().
var SAXPY Kernel

func init() {
	var tag hwy.Tag = hwy.ScalableTag[float32]{}
	if hwy.CurrentLevel().IsScalable() {
		SAXPY = func(a float32, x, y []float32) error {
			return BaseSAXPY(tag, a, x, y)
		}
		return
	}
	SAXPY = func(a float32, x, y []float32) error {
		return BaseSAXPYChunked(tag, a, x, y)
	}
}

// Names lists the kernel names Lookup accepts, auto first.
func Names() []string {
	return []string{KernelAuto, KernelPredicated, KernelChunked, KernelScalar}
}

// Resolve maps KernelAuto to a concrete kernel for tag and validates any
// other name. At the hardware width (hwy.ScalableTag) auto follows SAXPY:
// predicated on SVE and SME, chunked elsewhere. Any other tag emulates a
// vector length, so auto picks the predicated kernel.
func Resolve(name string, tag hwy.Tag) (string, error) {
	if name == "" || name == KernelAuto {
		if _, hardware := tag.(hwy.ScalableTag[float32]); hardware && !hwy.CurrentLevel().IsScalable() {
			return KernelChunked, nil
		}
		return KernelPredicated, nil
	}
	if !slices.Contains(Names(), name) {
		return "", fmt.Errorf("%w %q (want one of %v)", ErrUnknownKernel, name, Names())
	}
	return name, nil
}

// Lookup returns the named kernel running at the width of tag. Pass
// hwy.ScalableTag to follow the hardware, or a SizedTag to emulate
// another vector length.
func Lookup(name string, tag hwy.Tag) (Kernel, error) {
	resolved, err := Resolve(name, tag)
	if err != nil {
		return nil, err
	}
	switch resolved {
	case KernelPredicated:
		return func(a float32, x, y []float32) error {
			return BaseSAXPY(tag, a, x, y)
		}, nil
	case KernelChunked:
		return func(a float32, x, y []float32) error {
			return BaseSAXPYChunked(tag, a, x, y)
		}, nil
	default:
		return BaseSAXPYScalar[float32], nil
	}
}
