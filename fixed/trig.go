package fixed

const (
	cordicGain  = 39796
	cordicSteps = 16
)

// atan(2^-i) in Q16.16 radians.
var cordicAtan = [cordicSteps]int32{
	51471, 30385, 16054, 8149, 4090, 2047, 1023, 511,
	255, 127, 63, 31, 16, 8, 4, 2,
}

// SinCos treats f as radians and returns (sin, cos) using CORDIC rotation.
//
// The angle is first folded into [-π/2, π/2] by adding or subtracting π, each
// fold flipping the sign of both outputs.
func (f Flint) SinCos() (Flint, Flint) {
	z := f.raw
	negative := false

	for z > HalfPi.raw {
		z -= Pi.raw
		negative = !negative
	}
	for z < -HalfPi.raw {
		z += Pi.raw
		negative = !negative
	}

	x := int32(cordicGain)
	y := int32(0)

	for i := 0; i < cordicSteps; i++ {
		xx := x
		if z < 0 {
			x += y >> i
			y -= xx >> i
			z += cordicAtan[i]
		} else {
			x -= y >> i
			y += xx >> i
			z -= cordicAtan[i]
		}
	}

	if negative {
		x = -x
		y = -y
	}

	return Flint{raw: y}, Flint{raw: x}
}

// Sin is the first half of SinCos.
func (f Flint) Sin() Flint {
	s, _ := f.SinCos()
	return s
}

// Cos is the second half of SinCos.
func (f Flint) Cos() Flint {
	_, c := f.SinCos()
	return c
}
