package geom

import "github.com/hopphysics/hop/scalar"

// Segment is a directed line segment from Origin to Origin+Direction. The
// simulator's every sweep query is ultimately reduced to a segment trace
// against a primitive.
type Segment[T scalar.Scalar[T]] struct {
	Origin, Direction Vec3[T]
}

func NewSegmentStartEnd[T scalar.Scalar[T]](start, end Vec3[T]) Segment[T] {
	return Segment[T]{Origin: start, Direction: end.Sub(start)}
}

func (s Segment[T]) EndPoint() Vec3[T] { return s.Origin.Add(s.Direction) }

// PointAt evaluates the segment at parameter t, where t=0 is Origin and t=1
// is EndPoint.
func (s Segment[T]) PointAt(t T) Vec3[T] { return s.Origin.Add(s.Direction.Scale(t)) }
