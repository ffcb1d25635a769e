package scalar

import "github.com/chewxy/math32"

// Float32 is the IEEE-754 instantiation of Scalar: a thin named type over
// float32 so the Scalar method set can be attached to it.
type Float32 float32

func (a Float32) Add(b Float32) Float32  { return a + b }
func (a Float32) Sub(b Float32) Float32  { return a - b }
func (a Float32) Mul(b Float32) Float32  { return a * b }
func (a Float32) Div(b Float32) Float32  { return a / b }
func (a Float32) Madd(b, c Float32) Float32 { return a*b + c }
func (a Float32) Neg() Float32           { return -a }

func (a Float32) Abs() Float32 { return Float32(math32.Abs(float32(a))) }
func (a Float32) Sqrt() Float32 { return Float32(math32.Sqrt(float32(a))) }
func (a Float32) Sin() Float32  { return Float32(math32.Sin(float32(a))) }
func (a Float32) Cos() Float32  { return Float32(math32.Cos(float32(a))) }
func (a Float32) Atan2(x Float32) Float32 {
	return Float32(math32.Atan2(float32(a), float32(x)))
}

func (a Float32) IsReal() bool { return !math32.IsNaN(float32(a)) && !math32.IsInf(float32(a), 0) }

func (a Float32) Less(b Float32) bool      { return a < b }
func (a Float32) LessEqual(b Float32) bool { return a <= b }
func (a Float32) Equal(b Float32) bool     { return a == b }
func (a Float32) Min(b Float32) Float32 {
	if a < b {
		return a
	}
	return b
}
func (a Float32) Max(b Float32) Float32 {
	if a > b {
		return a
	}
	return b
}
func (a Float32) Clamp(low, high Float32) Float32 { return high.Min(low.Max(a)) }

// Cap clamps a into [-limit, limit] and folds NaN/Inf to zero, matching the
// original engine's guard against a runaway integration step producing an
// unrepresentable float.
func (a Float32) Cap(limit Float32) Float32 {
	if !a.IsReal() {
		return 0
	}
	return a.Max(-limit).Min(limit)
}

func (a Float32) ToInt() int         { return int(a) }
func (a Float32) ToFloat32() float32 { return float32(a) }

func (Float32) One() Float32       { return 1 }
func (Float32) Zero() Float32      { return 0 }
func (Float32) Half() Float32      { return 0.5 }
func (Float32) Two() Float32       { return 2 }
func (Float32) Three() Float32     { return 3 }
func (Float32) Four() Float32      { return 4 }
func (Float32) Quarter() Float32   { return 0.25 }
func (Float32) Third() Float32     { return 1.0 / 3.0 }
func (Float32) TwoThirds() Float32 { return 2.0 / 3.0 }
func (Float32) Pi() Float32        { return 3.14159265358979323846 }
func (f Float32) TwoPi() Float32   { return f.Pi() * 2 }
func (f Float32) HalfPi() Float32  { return f.Pi() / 2 }

func (Float32) FromInt(i int) Float32  { return Float32(i) }
func (Float32) FromMilli(m int) Float32 { return Float32(m) / 1000 }

func (Float32) DefaultEpsilon() Float32               { return 0.001 }
func (Float32) DefaultMaxPositionComponent() Float32  { return 100000 }
func (Float32) DefaultMaxVelocityComponent() Float32  { return 1000 }
func (Float32) DefaultMaxForceComponent() Float32     { return 1000 }
func (Float32) DefaultDeactivateSpeed(eps Epsilon[Float32]) Float32 { return eps.Epsilon * 2 }

func (Float32) ConvexBoundEpsilon() Float32 { return 0.0001 }

func (Float32) MakeEpsilon(epsilon Float32) Epsilon[Float32] {
	return Epsilon[Float32]{
		Epsilon:        epsilon,
		OneOverEpsilon: 1 / epsilon,
		HalfEpsilon:    epsilon * 0.5,
		QuarterEpsilon: epsilon * 0.25,
	}
}

// SnapToGrid quantizes v onto the epsilon lattice by truncating v/epsilon
// toward zero. A negative v is first moved half an epsilon further from
// zero, so negative values land on the nearest grid point while positive
// values round toward zero.
func (v Float32) SnapToGrid(eps Epsilon[Float32]) Float32 {
	offset := Float32(0)
	if v < 0 {
		offset = -eps.HalfEpsilon
	}
	return Float32(int((v+offset)*eps.OneOverEpsilon)) * eps.Epsilon
}
