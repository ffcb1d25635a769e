// Package body defines the dynamic bodies a Simulator advances: their
// shapes, mass and friction coefficients, and the collision record shape
// the trace pipeline reports through.
package body

import (
	"github.com/hopphysics/hop/geom"
	"github.com/hopphysics/hop/scalar"
)

// Collision is the result of a swept trace: the earliest time of impact in
// [0,1] (1 meaning no impact within the sweep), the contact point and
// outward normal, the relative velocity at contact, and the two solids
// involved. Collider is the solid that was hit and Collidee the solid that
// was sweeping, not the other way round. Report delivery hands each listener
// a record whose Collidee is its own solid and whose Collider is the other.
type Collision[T scalar.Scalar[T]] struct {
	Time     T
	Point    geom.Vec3[T]
	// Impact is the point on the moving shape's own surface that made
	// contact, which for a swept solid-vs-solid trace differs from Point
	// (the contact point in the Minkowski-reduced space) by the moving
	// shape's own support offset; for a bare segment trace the two coincide.
	Impact   geom.Vec3[T]
	Normal   geom.Vec3[T]
	Velocity geom.Vec3[T]
	Collider *Solid[T]
	Collidee *Solid[T]
	Scope    int
}

// Reset restores c to "no collision found within this sweep".
func (c *Collision[T]) Reset() {
	var zero T
	*c = Collision[T]{Time: zero.One()}
}

// Invert swaps collider/collidee and flips the normal and relative velocity,
// used to deliver the same contact to both sides of a collision from each
// side's own point of view.
func (c *Collision[T]) Invert() {
	c.Collider, c.Collidee = c.Collidee, c.Collider
	c.Normal = c.Normal.Neg()
	c.Velocity = c.Velocity.Neg()
}

// Listener receives one On Collision call per body per contact per step.
type Listener[T scalar.Scalar[T]] interface {
	OnCollision(c Collision[T])
}

// Traceable is an externally supplied shape (a mesh, heightfield, or other
// host-owned geometry) that participates in sweeps as if it were stationary;
// the dispatcher inverts the sweep direction when the traceable side is
// actually the one moving.
type Traceable[T scalar.Scalar[T]] interface {
	Bound() geom.AABox[T]
	TraceSegment(position geom.Vec3[T], seg geom.Segment[T]) Collision[T]
	TraceSolid(s *Solid[T], position geom.Vec3[T], seg geom.Segment[T]) Collision[T]
}
