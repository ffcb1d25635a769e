// Package geom implements the shape and vector algebra the simulator sweeps
// through space: every type here is generic over scalar.Scalar so the same
// code runs against both float32 and Q16.16 fixed-point without branching
// on which scalar backs it.
package geom

import "github.com/hopphysics/hop/scalar"

// Vec3 is a three-component vector over any scalar.Scalar instantiation.
type Vec3[T scalar.Scalar[T]] struct {
	X, Y, Z T
}

func (v Vec3[T]) Get(i int) T {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func (v Vec3[T]) Add(o Vec3[T]) Vec3[T] {
	return Vec3[T]{v.X.Add(o.X), v.Y.Add(o.Y), v.Z.Add(o.Z)}
}

func (v Vec3[T]) Sub(o Vec3[T]) Vec3[T] {
	return Vec3[T]{v.X.Sub(o.X), v.Y.Sub(o.Y), v.Z.Sub(o.Z)}
}

func (v Vec3[T]) Neg() Vec3[T] {
	return Vec3[T]{v.X.Neg(), v.Y.Neg(), v.Z.Neg()}
}

// Scale multiplies every component by f.
func (v Vec3[T]) Scale(f T) Vec3[T] {
	return Vec3[T]{v.X.Mul(f), v.Y.Mul(f), v.Z.Mul(f)}
}

// Mul multiplies component-wise.
func (v Vec3[T]) Mul(o Vec3[T]) Vec3[T] {
	return Vec3[T]{v.X.Mul(o.X), v.Y.Mul(o.Y), v.Z.Mul(o.Z)}
}

// Madd computes v*f + o, the vector analogue of scalar Madd.
func (v Vec3[T]) Madd(o Vec3[T], f T) Vec3[T] {
	return Vec3[T]{v.X.Madd(f, o.X), v.Y.Madd(f, o.Y), v.Z.Madd(f, o.Z)}
}

func (v Vec3[T]) Equal(o Vec3[T]) bool {
	return v.X.Equal(o.X) && v.Y.Equal(o.Y) && v.Z.Equal(o.Z)
}

func (v Vec3[T]) Dot(o Vec3[T]) T {
	return v.X.Mul(o.X).Add(v.Y.Mul(o.Y)).Add(v.Z.Mul(o.Z))
}

func (v Vec3[T]) Cross(o Vec3[T]) Vec3[T] {
	return Vec3[T]{
		v.Y.Mul(o.Z).Sub(v.Z.Mul(o.Y)),
		v.Z.Mul(o.X).Sub(v.X.Mul(o.Z)),
		v.X.Mul(o.Y).Sub(v.Y.Mul(o.X)),
	}
}

func (v Vec3[T]) LengthSquared() T { return v.Dot(v) }

func (v Vec3[T]) Length() T { return v.LengthSquared().Sqrt() }

// Normalize divides by the vector's length without guarding against a
// near-zero length; callers that might hand it a degenerate vector should
// use NormalizeCarefully instead.
func (v Vec3[T]) Normalize() Vec3[T] {
	l := v.Length()
	return v.Scale(l.One().Div(l))
}

// NormalizeCarefully returns the zero vector instead of dividing by a
// length below epsilon, guarding the swept-slide loop against amplifying
// numerical noise into a spurious slide direction.
func NormalizeCarefully[T scalar.Scalar[T]](v Vec3[T], eps scalar.Epsilon[T]) Vec3[T] {
	l := v.Length()
	if l.LessEqual(eps.Epsilon) {
		var zero Vec3[T]
		return zero
	}
	return v.Scale(l.One().Div(l))
}

func Lerp[T scalar.Scalar[T]](a, b Vec3[T], t T) Vec3[T] {
	return a.Add(b.Sub(a).Scale(t))
}

// Square returns x*x+y*y+z*z as a single scalar, the same value as
// v.LengthSquared().
func Square[T scalar.Scalar[T]](v Vec3[T]) T {
	return v.X.Mul(v.X).Add(v.Y.Mul(v.Y)).Add(v.Z.Mul(v.Z))
}
