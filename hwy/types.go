// Package hwy provides portable, width-agnostic vector operations with
// runtime CPU dispatch.
//
// Code written against hwy never hardcodes a vector width. The lane count
// comes from a Tag: ScalableTag asks the executing core (on SVE hardware
// this is the kernel-reported vector length), while SizedTag pins a width
// for reproducible experiments and tests. Vectors and predicates are views
// into a Registers file, so loops built on them do not allocate.
//
// Basic usage:
//
//	import "github.com/ajroetker/svebench/hwy"
//
//	tag := hwy.ScalableTag[float32]{}
//	var regs hwy.Registers[float32]
//	for i := 0; i < n; {
//	    lanes := hwy.LanesOf[float32](tag)
//	    pg := hwy.WhileLessThanInto(regs.Pred(lanes), i, n)
//	    vx := hwy.MaskLoadInto(regs.Vec(0, lanes), pg, x[i:])
//	    ...
//	    hwy.MaskStore(pg, result, y[i:])
//	    i += lanes
//	}
package hwy

// Floats is a constraint for floating-point types.
type Floats interface {
	~float32 | ~float64
}

// SignedInts is a constraint for signed integer types.
type SignedInts interface {
	~int8 | ~int16 | ~int32 | ~int64
}

// UnsignedInts is a constraint for unsigned integer types.
type UnsignedInts interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Integers is a constraint for all integer types.
type Integers interface {
	SignedInts | UnsignedInts
}

// Lanes is a constraint for all types that can be stored in SIMD lanes.
type Lanes interface {
	Floats | Integers
}

// Vec is a portable vector handle. It wraps one register's worth of
// lanes; the lane count is fixed when the vector is taken from a
// Registers slot.
//
// Vec instances should not be created directly; take them from Registers.
type Vec[T Lanes] struct {
	data []T
}

// NumLanes returns the number of lanes (elements) in this vector.
func (v Vec[T]) NumLanes() int {
	return len(v.data)
}

// Data returns the underlying slice representation of the vector.
// This is primarily for testing and should not be used in performance-critical code.
func (v Vec[T]) Data() []T {
	return v.data
}

// Mask is a per-lane predicate. It is the portable form of an SVE
// predicate register: loads, stores and arithmetic that take a Mask only
// touch active lanes.
type Mask[T Lanes] struct {
	// bits[i] is set if lane i is active.
	bits []bool
}

// NumLanes returns the number of lanes in this mask.
func (m Mask[T]) NumLanes() int {
	return len(m.bits)
}

// AllTrue returns true if all lanes in the mask are active.
func (m Mask[T]) AllTrue() bool {
	for _, bit := range m.bits {
		if !bit {
			return false
		}
	}
	return true
}

// AnyTrue returns true if at least one lane in the mask is active.
func (m Mask[T]) AnyTrue() bool {
	for _, bit := range m.bits {
		if bit {
			return true
		}
	}
	return false
}

// CountTrue returns the number of active lanes in the mask.
func (m Mask[T]) CountTrue() int {
	count := 0
	for _, bit := range m.bits {
		if bit {
			count++
		}
	}
	return count
}

// GetBit returns whether lane i is active.
func (m Mask[T]) GetBit(i int) bool {
	if i < 0 || i >= len(m.bits) {
		return false
	}
	return m.bits[i]
}
