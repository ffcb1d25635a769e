// Package scalar provides the numeric abstraction the rest of the engine is
// built on: every geometric and dynamical algorithm in this module is
// written once, generically, against the Scalar interface, and instantiated
// over Float32 (IEEE-754 float32) and Fixed16 (Q16.16 fixed-point) without
// special-casing either inside the algorithm bodies.
package scalar

// Scalar is implemented by every numeric type the engine can run on. Methods
// with no meaningful receiver state (One, Pi, FromInt, ...) are still called
// on a value of T; callers typically keep a zero value of T around to reach
// them, e.g. `var z T; one := z.One()`.
type Scalar[T any] interface {
	Add(b T) T
	Sub(b T) T
	Mul(b T) T
	Div(b T) T
	Madd(b, c T) T // receiver*b + c
	Neg() T
	Abs() T
	Sqrt() T
	Sin() T
	Cos() T
	Atan2(x T) T

	IsReal() bool
	Less(b T) bool
	LessEqual(b T) bool
	Equal(b T) bool
	Min(b T) T
	Max(b T) T
	Clamp(low, high T) T
	Cap(limit T) T

	ToInt() int
	ToFloat32() float32

	One() T
	Zero() T
	Half() T
	Two() T
	Three() T
	Four() T
	Quarter() T
	Third() T
	TwoThirds() T
	Pi() T
	TwoPi() T
	HalfPi() T
	FromInt(i int) T
	FromMilli(m int) T

	// DefaultEpsilon, DefaultMaxPositionComponent etc. seed a Simulator's
	// configuration before the caller overrides them explicitly.
	DefaultEpsilon() T
	DefaultMaxPositionComponent() T
	DefaultMaxVelocityComponent() T
	DefaultMaxForceComponent() T
	DefaultDeactivateSpeed(eps Epsilon[T]) T

	// MakeEpsilon derives the cached epsilon fan-out (half, quarter, ...)
	// from a single epsilon value.
	MakeEpsilon(epsilon T) Epsilon[T]
	// ConvexBoundEpsilon is the tolerance a convex shape's bound derivation
	// uses when testing whether a candidate vertex satisfies every
	// half-space plane.
	ConvexBoundEpsilon() T
	// SnapToGrid quantizes the receiver onto the epsilon lattice: positive
	// values round toward zero, negative values are first offset by half an
	// epsilon away from zero.
	SnapToGrid(eps Epsilon[T]) T
}

// Epsilon caches the epsilon-derived constants a simulator consults on every
// step. Float32 fills OneOverEpsilon; Fixed16 fills EpsilonBits instead, so
// SnapToGrid can use a bit shift rather than a multiply-by-reciprocal.
type Epsilon[T any] struct {
	Epsilon        T
	HalfEpsilon    T
	QuarterEpsilon T
	OneOverEpsilon T
	EpsilonBits    int
}

// Zero returns the additive identity of T without requiring the caller to
// keep one around.
func Zero[T Scalar[T]]() T {
	var z T
	return z.Zero()
}

// One returns the multiplicative identity of T.
func One[T Scalar[T]]() T {
	var z T
	return z.One()
}
