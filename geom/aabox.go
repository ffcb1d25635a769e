package geom

import "github.com/hopphysics/hop/scalar"

// AABox is an axis-aligned bounding box in min/max corner form.
type AABox[T scalar.Scalar[T]] struct {
	Mins, Maxs Vec3[T]
}

// NewAABoxRadius builds a cube of the given radius centered on the origin, the
// form shapes use to seed a local bound before merging in their extent.
func NewAABoxRadius[T scalar.Scalar[T]](radius T) AABox[T] {
	neg := radius.Neg()
	return AABox[T]{Vec3[T]{neg, neg, neg}, Vec3[T]{radius, radius, radius}}
}

// Merge grows the box to also contain b.
func (a *AABox[T]) Merge(b AABox[T]) {
	a.Mins.X = a.Mins.X.Min(b.Mins.X)
	a.Mins.Y = a.Mins.Y.Min(b.Mins.Y)
	a.Mins.Z = a.Mins.Z.Min(b.Mins.Z)
	a.Maxs.X = a.Maxs.X.Max(b.Maxs.X)
	a.Maxs.Y = a.Maxs.Y.Max(b.Maxs.Y)
	a.Maxs.Z = a.Maxs.Z.Max(b.Maxs.Z)
}

// MergePoint grows the box to also contain v.
func (a *AABox[T]) MergePoint(v Vec3[T]) {
	a.Mins.X = a.Mins.X.Min(v.X)
	a.Mins.Y = a.Mins.Y.Min(v.Y)
	a.Mins.Z = a.Mins.Z.Min(v.Z)
	a.Maxs.X = a.Maxs.X.Max(v.X)
	a.Maxs.Y = a.Maxs.Y.Max(v.Y)
	a.Maxs.Z = a.Maxs.Z.Max(v.Z)
}

func (a AABox[T]) Translate(v Vec3[T]) AABox[T] {
	return AABox[T]{a.Mins.Add(v), a.Maxs.Add(v)}
}

func (a AABox[T]) Equal(b AABox[T]) bool {
	return a.Mins.Equal(b.Mins) && a.Maxs.Equal(b.Maxs)
}

// Overlaps reports whether two boxes share any volume, inclusive of touching
// faces, matching the AABox broad-phase test used before any narrow-phase
// sweep is attempted.
func (a AABox[T]) Overlaps(b AABox[T]) bool {
	return b.Mins.X.LessEqual(a.Maxs.X) && a.Mins.X.LessEqual(b.Maxs.X) &&
		b.Mins.Y.LessEqual(a.Maxs.Y) && a.Mins.Y.LessEqual(b.Maxs.Y) &&
		b.Mins.Z.LessEqual(a.Maxs.Z) && a.Mins.Z.LessEqual(b.Maxs.Z)
}

// ContainsPoint reports whether v lies within the box, inclusive of the
// boundary.
func (a AABox[T]) ContainsPoint(v Vec3[T]) bool {
	return v.X.LessEqual(a.Maxs.X) && a.Mins.X.LessEqual(v.X) &&
		v.Y.LessEqual(a.Maxs.Y) && a.Mins.Y.LessEqual(v.Y) &&
		v.Z.LessEqual(a.Maxs.Z) && a.Mins.Z.LessEqual(v.Z)
}

// Expand grows both mins and maxs outward by delta on every axis, used to
// build the swept-displacement query box a Manager searches against.
func (a AABox[T]) Expand(delta Vec3[T]) AABox[T] {
	return AABox[T]{a.Mins.Sub(delta), a.Maxs.Add(delta)}
}
