package scalar

import "math/bits"

// Fixed16 is a Q16.16 signed fixed-point scalar: 16 integer bits, 16
// fractional bits, backed by a plain int32 so it stays comparable and
// allocation-free.
type Fixed16 struct {
	Raw int32
}

const fixed16Bits = 16
const fixed16OneRaw int32 = 1 << fixed16Bits

// FromRaw wraps a raw Q16.16 bit pattern directly.
func FromRaw(raw int32) Fixed16 { return Fixed16{Raw: raw} }

// FromFixedInt converts a plain integer to Fixed16.
func FromFixedInt(i int) Fixed16 { return FromRaw(int32(i) << fixed16Bits) }

// FromFixedFloat converts a float32 to Fixed16, truncating toward zero onto
// the Q16.16 grid.
func FromFixedFloat(f float32) Fixed16 { return FromRaw(int32(f * float32(fixed16OneRaw))) }

// FromFixedMilli converts an integer count of thousandths (e.g. 500 -> 0.5)
// to Fixed16 via a 64-bit intermediate, avoiding the precision loss a
// float32 round-trip would introduce for exact fractions like 1/3.
func FromFixedMilli(m int) Fixed16 {
	return FromRaw(int32(((int64(m) << 32) / 1000) >> fixed16Bits))
}

func (v Fixed16) ToInt() int         { return int(v.Raw >> fixed16Bits) }
func (v Fixed16) ToFloat32() float32 { return float32(v.Raw) / float32(fixed16OneRaw) }

func (a Fixed16) Add(b Fixed16) Fixed16 { return FromRaw(a.Raw + b.Raw) }
func (a Fixed16) Sub(b Fixed16) Fixed16 { return FromRaw(a.Raw - b.Raw) }
func (a Fixed16) Neg() Fixed16          { return FromRaw(-a.Raw) }

// Mul widens to int64 so the intermediate product doesn't overflow int32
// before the fractional shift.
func (a Fixed16) Mul(b Fixed16) Fixed16 {
	return FromRaw(int32((int64(a.Raw) * int64(b.Raw)) >> fixed16Bits))
}

func (a Fixed16) Div(b Fixed16) Fixed16 {
	if b.Raw == 0 {
		return FromRaw(0)
	}
	return FromRaw(int32(((int64(a.Raw) << 32) / int64(b.Raw)) >> fixed16Bits))
}

func (a Fixed16) Madd(b, c Fixed16) Fixed16 { return a.Mul(b).Add(c) }

// Abs uses the branchless sign-mask trick: raw>>31 is all-ones for negative
// values and zero otherwise.
func (a Fixed16) Abs() Fixed16 {
	mask := a.Raw >> 31
	return FromRaw((a.Raw ^ mask) - mask)
}

// Sqrt runs 8 Newton-Raphson iterations seeded at (v+1)/2, matching the
// convergence behavior needed for Q16.16 precision.
func (a Fixed16) Sqrt() Fixed16 {
	if a.Raw <= 0 {
		return Fixed16{}.Zero()
	}
	s := (a.Raw + fixed16OneRaw) >> 1
	for i := 0; i < 8; i++ {
		s = (s + int32(((int64(a.Raw)<<32)/int64(s))>>16)) >> 1
	}
	return FromRaw(s)
}

const (
	fixed16TwoPiRaw     int32 = 411774
	fixed16PiRaw        int32 = 205887
	fixed16HalfPiRaw    int32 = 102943
	fixed16QuarterPiRaw int32 = 51471
	fixed16ThreeQuarterPiRaw int32 = 154414
)

// Sin evaluates a quadrant-folded three-term odd (fifth-degree) polynomial
// approximation.
func (a Fixed16) Sin() Fixed16 {
	f := a.Raw
	if f < 0 {
		f = (f % fixed16TwoPiRaw) + fixed16TwoPiRaw
	} else if f >= fixed16TwoPiRaw {
		f = f % fixed16TwoPiRaw
	}

	sign := int32(1)
	switch {
	case f > fixed16HalfPiRaw && f <= fixed16PiRaw:
		f = fixed16PiRaw - f
	case f > fixed16PiRaw && f <= fixed16PiRaw+fixed16HalfPiRaw:
		f = f - fixed16PiRaw
		sign = -1
	case f > fixed16PiRaw+fixed16HalfPiRaw:
		f = fixed16TwoPiRaw - f
		sign = -1
	}

	sqr := int32((int64(f) * int64(f)) >> 16)
	result := int32(498)
	result = int32((int64(result) * int64(sqr)) >> 16)
	result -= 10882
	result = int32((int64(result) * int64(sqr)) >> 16)
	result += fixed16OneRaw
	result = int32((int64(result) * int64(f)) >> 16)
	return FromRaw(sign * result)
}

// Cos evaluates a quadrant-folded quartic polynomial approximation.
func (a Fixed16) Cos() Fixed16 {
	f := a.Raw
	if f < 0 {
		f = (f % fixed16TwoPiRaw) + fixed16TwoPiRaw
	} else if f >= fixed16TwoPiRaw {
		f = f % fixed16TwoPiRaw
	}

	sign := int32(1)
	switch {
	case f > fixed16HalfPiRaw && f <= fixed16PiRaw:
		f = fixed16PiRaw - f
		sign = -1
	case f > fixed16HalfPiRaw && f <= fixed16PiRaw+fixed16HalfPiRaw:
		f = f - fixed16PiRaw
		sign = -1
	case f > fixed16PiRaw+fixed16HalfPiRaw:
		f = fixed16TwoPiRaw - f
	}

	sqr := int32((int64(f) * int64(f)) >> 16)
	result := int32(2328)
	result = int32((int64(result) * int64(sqr)) >> 16)
	result -= 32551
	result = int32((int64(result) * int64(sqr)) >> 16)
	result += fixed16OneRaw
	return FromRaw(result * sign)
}

// Atan2 evaluates the rational-form approximation, branching on the sign of
// x exactly as the polynomial's derivation requires.
func (y Fixed16) Atan2(x Fixed16) Fixed16 {
	absy := ((y.Raw ^ (y.Raw >> 31)) - (y.Raw >> 31)) + 1
	var angle int32
	if x.Raw >= 0 {
		r := int32(((int64(x.Raw-absy) << 32) / int64(x.Raw+absy)) >> 16)
		angle = fixed16QuarterPiRaw - int32((int64(fixed16QuarterPiRaw)*int64(r))>>16)
	} else {
		r := int32(((int64(x.Raw+absy) << 32) / int64(absy-x.Raw)) >> 16)
		angle = fixed16ThreeQuarterPiRaw - int32((int64(fixed16QuarterPiRaw)*int64(r))>>16)
	}
	if y.Raw < 0 {
		angle = -angle
	}
	return FromRaw(angle)
}

func (Fixed16) IsReal() bool { return true }

func (a Fixed16) Less(b Fixed16) bool      { return a.Raw < b.Raw }
func (a Fixed16) LessEqual(b Fixed16) bool { return a.Raw <= b.Raw }
func (a Fixed16) Equal(b Fixed16) bool     { return a.Raw == b.Raw }

func (a Fixed16) Min(b Fixed16) Fixed16 {
	if a.Raw < b.Raw {
		return a
	}
	return b
}
func (a Fixed16) Max(b Fixed16) Fixed16 {
	if a.Raw > b.Raw {
		return a
	}
	return b
}
func (a Fixed16) Clamp(low, high Fixed16) Fixed16 { return high.Min(low.Max(a)) }

// Cap is a branchless clamp into [-limit, limit]; fixed-point arithmetic
// never produces NaN so, unlike Float32.Cap, no reality check is needed.
func (a Fixed16) Cap(limit Fixed16) Fixed16 {
	return limit.Min(FromRaw(-limit.Raw).Max(a))
}

func (Fixed16) One() Fixed16       { return FromRaw(65536) }
func (Fixed16) Zero() Fixed16      { return FromRaw(0) }
func (Fixed16) Half() Fixed16      { return FromRaw(32768) }
func (Fixed16) Two() Fixed16       { return FromRaw(131072) }
func (Fixed16) Three() Fixed16     { return FromRaw(196608) }
func (Fixed16) Four() Fixed16      { return FromRaw(262144) }
func (Fixed16) Quarter() Fixed16   { return FromRaw(16384) }
func (Fixed16) Third() Fixed16     { return FromRaw(21845) }
func (Fixed16) TwoThirds() Fixed16 { return FromRaw(43690) }
func (Fixed16) Pi() Fixed16        { return FromRaw(fixed16PiRaw) }
func (Fixed16) TwoPi() Fixed16     { return FromRaw(fixed16TwoPiRaw) }
func (Fixed16) HalfPi() Fixed16    { return FromRaw(fixed16HalfPiRaw) }

func (Fixed16) FromInt(i int) Fixed16   { return FromFixedInt(i) }
func (Fixed16) FromMilli(m int) Fixed16 { return FromFixedMilli(m) }

func (Fixed16) DefaultEpsilon() Fixed16              { return FromRaw(1 << 4) }
func (Fixed16) DefaultMaxPositionComponent() Fixed16 { return FromRaw(0x7FFF0000) }
func (Fixed16) DefaultMaxVelocityComponent() Fixed16 { return FromFixedInt(104) }
func (Fixed16) DefaultMaxForceComponent() Fixed16    { return FromFixedInt(104) }
func (Fixed16) DefaultDeactivateSpeed(Epsilon[Fixed16]) Fixed16 { return FromRaw(1 << 8) }

func (Fixed16) ConvexBoundEpsilon() Fixed16 { return FromRaw(1 << 4) }

// MakeEpsilon derives epsilon_bits from the supplied epsilon value, which
// must be a power of two, so SnapToGrid can use a shift instead of a divide.
func (Fixed16) MakeEpsilon(epsilon Fixed16) Epsilon[Fixed16] {
	epsilonBits := bits.TrailingZeros32(uint32(epsilon.Raw))
	return Epsilon[Fixed16]{
		Epsilon:        epsilon,
		HalfEpsilon:    FromRaw(epsilon.Raw >> 1),
		QuarterEpsilon: FromRaw(epsilon.Raw >> 2),
		EpsilonBits:    epsilonBits,
	}
}

// SnapToGrid quantizes v onto the epsilon lattice with an arithmetic shift,
// which rounds toward negative infinity. As in Float32.SnapToGrid, a negative
// v is first moved half an epsilon further from zero; because the shift
// floors where Float32 truncates, a negative value can land one grid step
// lower than Float32.SnapToGrid would put it. Positive values round toward
// zero in both.
func (v Fixed16) SnapToGrid(eps Epsilon[Fixed16]) Fixed16 {
	offset := int32(0)
	if v.Raw < 0 {
		offset = -eps.HalfEpsilon.Raw
	}
	return FromRaw(((v.Raw + offset) >> eps.EpsilonBits) << eps.EpsilonBits)
}
