// Package fixed implements Flint, a deterministic Q16.16 fixed-point number,
// and a two dimensional vector built on it.
//
// Every operation in this package is integer only. Two machines given the same
// raw inputs produce bit-identical outputs, which is what lock-step simulation
// depends on. Degenerate inputs (division by zero, square root of a negative
// value, overflow) produce defined saturated or zero results instead of panics.
package fixed

import (
	"fmt"
	"math"
)

const (
	shift     = 16
	scale     = 1 << shift
	halfScale = scale >> 1
	invScale  = 1.0 / float32(scale)
)

// Flint is a signed Q16.16 fixed-point number. The represented value is raw / 2^16.
type Flint struct {
	raw int32
}

// Fraction literals for use with New.
const (
	PointFive uint16 = halfScale
	PointOne  uint16 = PointFive / 5
)

var (
	Zero   = New(0, 0)
	One    = New(1, 0)
	NegOne = New(-1, 0)
	Half   = FromRaw(halfScale)

	// Pi, HalfPi and Deg2Rad are pre-scaled literals, never computed from floats.
	Pi      = FromRaw(31415 * scale / 10000)
	HalfPi  = FromRaw(Pi.raw / 2)
	Deg2Rad = FromRaw(Pi.raw / 180)

	MaxFlint = FromRaw(math.MaxInt32)
	MinFlint = FromRaw(math.MinInt32)
)

// New builds a Flint from a whole part and a raw 16 bit fraction.
func New(whole int16, frac uint16) Flint {
	return Flint{raw: int32(whole)<<shift | int32(frac)}
}

// FromRaw wraps a raw Q16.16 value.
func FromRaw(raw int32) Flint {
	return Flint{raw: raw}
}

// FromInt16 converts a whole number.
func FromInt16(v int16) Flint {
	return Flint{raw: int32(v) << shift}
}

// FromFloat32 converts a float. It is not deterministic across platforms and
// must only be used for tooling and tests, never inside the simulation.
func FromFloat32(v float32) Flint {
	return Flint{raw: saturate(int64(v * scale))}
}

// Raw returns the underlying Q16.16 representation.
func (f Flint) Raw() int32 { return f.raw }

// Int16 truncates toward negative infinity and narrows to 16 bits.
func (f Flint) Int16() int16 { return int16(f.raw >> shift) }

// Int32 truncates toward negative infinity.
func (f Flint) Int32() int32 { return f.raw >> shift }

// Float32 converts to a float for presentation.
func (f Flint) Float32() float32 { return float32(f.raw) * invScale }

func (f Flint) String() string {
	return fmt.Sprintf("%.5f", f.Float32())
}

func (f Flint) Add(o Flint) Flint { return Flint{raw: saturate(int64(f.raw) + int64(o.raw))} }

func (f Flint) Sub(o Flint) Flint { return Flint{raw: saturate(int64(f.raw) - int64(o.raw))} }

// Neg saturates MinFlint to MaxFlint.
func (f Flint) Neg() Flint { return Flint{raw: saturate(-int64(f.raw))} }

// Mul multiplies through a 64 bit intermediate. Results outside the int32
// range saturate.
func (f Flint) Mul(o Flint) Flint {
	return Flint{raw: saturate(int64(f.raw) * int64(o.raw) / scale)}
}

// MulInt multiplies by a whole number.
func (f Flint) MulInt(v int16) Flint {
	return f.Mul(FromInt16(v))
}

// Div divides through a 64 bit intermediate, truncating toward zero.
// Division by zero saturates toward the sign of the numerator and 0/0 is zero.
func (f Flint) Div(o Flint) Flint {
	if o.raw == 0 {
		switch {
		case f.raw > 0:
			return MaxFlint
		case f.raw < 0:
			return MinFlint
		default:
			return Zero
		}
	}
	return Flint{raw: saturate(int64(f.raw) * scale / int64(o.raw))}
}

func (f Flint) Abs() Flint {
	if f.raw < 0 {
		return f.Neg()
	}
	return f
}

func (f Flint) Min(o Flint) Flint {
	if o.raw < f.raw {
		return o
	}
	return f
}

func (f Flint) Max(o Flint) Flint {
	if o.raw > f.raw {
		return o
	}
	return f
}

// Cmp returns -1, 0 or +1.
func (f Flint) Cmp(o Flint) int {
	switch {
	case f.raw < o.raw:
		return -1
	case f.raw > o.raw:
		return 1
	default:
		return 0
	}
}

func (f Flint) Less(o Flint) bool { return f.raw < o.raw }

func (f Flint) IsZero() bool { return f.raw == 0 }

// ToRadians interprets f as degrees.
func (f Flint) ToRadians() Flint {
	return f.Mul(Deg2Rad)
}

// Sqrt computes the square root digit by digit on the raw value.
// Non-positive input returns Zero.
func (f Flint) Sqrt() Flint {
	if f.raw <= 0 {
		return Zero
	}
	return Flint{raw: int32(isqrt(uint64(f.raw)) << (shift >> 1))}
}

// isqrt returns floor(sqrt(v)).
func isqrt(v uint64) uint64 {
	var root uint64
	bit := uint64(1) << 62
	for bit > v {
		bit >>= 2
	}

	for bit != 0 {
		tmp := root + bit
		if v >= tmp {
			v -= tmp
			root = tmp + bit
		}
		root >>= 1
		bit >>= 2
	}
	return root
}

func saturate(v int64) int32 {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int32(v)
}
