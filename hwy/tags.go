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
	"strconv"
	"unsafe"
)

// Tag determines how many lanes a width-agnostic kernel processes per
// step. Kernels query the tag on every step rather than caching a lane
// count, so the same code runs unchanged at any width.
type Tag interface {
	// Width returns the width in bytes (16 for 128-bit, 32 for 256-bit, etc.)
	Width() int

	// Name returns a human-readable name for this tag ("sve", "256bit", etc.)
	Name() string
}

// LanesOf returns how many T lanes fit in one vector of the given tag.
// With ScalableTag on SVE hardware this is svcntw() for 32-bit T.
func LanesOf[T Lanes](tag Tag) int {
	return lanesForWidth[T](tag.Width())
}

// ScalableTag adapts to the widest SIMD available at runtime.
// This is the recommended tag for most use cases as it provides
// optimal performance across different CPU architectures.
//
// Usage:
//
//	tag := hwy.ScalableTag[float32]{}
//	lanes := hwy.LanesOf[float32](tag)
type ScalableTag[T Lanes] struct{}

// Width returns the current runtime SIMD width in bytes.
func (ScalableTag[T]) Width() int {
	return currentWidth
}

// Name returns the current runtime SIMD target name.
func (ScalableTag[T]) Name() string {
	return currentLevel.String()
}

// SizedTag pins an arbitrary vector width in bytes. It models any SVE
// implementation, including widths narrower than 128 bits, which real
// hardware never has but which make tail handling easy to exercise.
// A width smaller than one element is treated as one element.
type SizedTag[T Lanes] struct {
	Bytes int
}

// SizedTagForLanes returns a SizedTag holding exactly lanes elements of T.
func SizedTagForLanes[T Lanes](lanes int) SizedTag[T] {
	var dummy T
	return SizedTag[T]{Bytes: lanes * int(unsafe.Sizeof(dummy))}
}

// Width returns the configured width in bytes.
func (t SizedTag[T]) Width() int {
	var dummy T
	if elem := int(unsafe.Sizeof(dummy)); t.Bytes < elem {
		return elem
	}
	return t.Bytes
}

// Name returns e.g. "384bit".
func (t SizedTag[T]) Name() string {
	return strconv.Itoa(t.Width()*8) + "bit"
}
