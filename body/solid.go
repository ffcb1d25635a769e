package body

import (
	"github.com/hopphysics/hop/geom"
	"github.com/hopphysics/hop/scalar"
)

// InfiniteMass, used as Mass's sentinel, marks a Solid that no impulse can
// move (a wall, a floor, a kinematic platform driven by SetPosition alone).
// Gravity still acts on such a solid, scaled by its CoefficientOfGravity.
func InfiniteMass[T scalar.Scalar[T]]() T {
	var z T
	return z.One().Neg()
}

// Constrainer lets a Solid wake the other endpoint of any constraint it
// participates in, and lets a Simulator fold a constraint's spring/damper
// force into a solid's acceleration, without body importing the constraint
// package (which itself depends on body.Solid).
type Constrainer[T scalar.Scalar[T]] interface {
	ActivatePartner(of *Solid[T])
	Active() bool
	// ForceOn returns this constraint's force contribution on s, which must
	// be one of the constraint's two endpoints, evaluated at s's own stored
	// position and velocity.
	ForceOn(s *Solid[T]) geom.Vec3[T]
	// ForceOnAt is the same evaluation against an arbitrary (position,
	// velocity) pair, which a multi-stage integrator supplies instead of
	// s.Position/s.Velocity so the same constraint can be sampled at each
	// Runge-Kutta stage.
	ForceOnAt(s *Solid[T], position, velocity geom.Vec3[T]) geom.Vec3[T]
}

// Solid is a dynamic (or, with infinite mass, static) rigid body: a set of
// shapes, mass and friction coefficients, and the touching-history state the
// swept-slide loop consults for anti-jitter friction gating.
type Solid[T scalar.Scalar[T]] struct {
	Scope             int
	InternalScope     int
	CollisionScope    int
	CollideWithScope  int

	mass    T
	invMass T

	Position geom.Vec3[T]
	Velocity geom.Vec3[T]
	Force    geom.Vec3[T]

	CoefficientOfGravity             T
	CoefficientOfRestitution         T
	RestitutionOverride              bool
	CoefficientOfStaticFriction      T
	CoefficientOfDynamicFriction     T
	CoefficientOfEffectiveDrag       T

	shapes      []*Shape[T]
	shapeTypes  ShapeType
	localBound  geom.AABox[T]
	worldBound  geom.AABox[T]

	Listener Listener[T]
	UserData any

	active          bool
	deactivateCount int

	touched1       *Solid[T]
	touched1Normal geom.Vec3[T]
	touched2       *Solid[T]
	touched2Normal geom.Vec3[T]
	touching       *Solid[T]
	touchingNormal geom.Vec3[T]

	constraints []Constrainer[T]

	attached bool // true once handed to a Simulator
}

// NewSolid returns a Solid with the defaults the original engine seeds a
// freshly constructed body with: unit mass, mid-range restitution and
// friction, full scope visibility.
func NewSolid[T scalar.Scalar[T]]() *Solid[T] {
	var z T
	s := &Solid[T]{}
	s.Scope = -1
	s.CollisionScope = -1
	s.CollideWithScope = -1
	s.mass = z.One()
	s.invMass = z.One()
	s.CoefficientOfGravity = z.One()
	s.CoefficientOfRestitution = z.Half()
	s.CoefficientOfStaticFriction = z.Half()
	s.CoefficientOfDynamicFriction = z.Half()
	s.active = true
	return s
}

func (s *Solid[T]) SetMass(mass T) {
	s.mass = mass
	var z T
	if z.Zero().Less(mass) {
		s.invMass = z.One().Div(mass)
	} else {
		s.invMass = z.Zero()
	}
}

func (s *Solid[T]) Mass() T    { return s.mass }
func (s *Solid[T]) InvMass() T { return s.invMass }

func (s *Solid[T]) SetInfiniteMass() {
	var z T
	s.mass = InfiniteMass[T]()
	s.invMass = z.Zero()
}

func (s *Solid[T]) HasInfiniteMass() bool { return s.mass.Equal(InfiniteMass[T]()) }

// SetPosition moves the solid directly (no integration) and wakes it, the
// operation a host application uses to teleport or otherwise directly drive
// a body outside the normal force/velocity pipeline.
func (s *Solid[T]) SetPosition(pos geom.Vec3[T]) {
	s.Position = pos
	s.worldBound = s.localBound.Translate(pos)
	s.Activate()
}

func (s *Solid[T]) SetVelocity(v geom.Vec3[T]) {
	s.Velocity = v
	s.Activate()
}

func (s *Solid[T]) AddForce(f geom.Vec3[T]) {
	s.Force = s.Force.Add(f)
	s.Activate()
}

func (s *Solid[T]) ClearForce() {
	var zero geom.Vec3[T]
	s.Force = zero
}

func (s *Solid[T]) AddShape(sh *Shape[T]) {
	s.shapes = append(s.shapes, sh)
	sh.solid = s
	s.updateLocalBound()
	s.Activate()
}

func (s *Solid[T]) RemoveShape(sh *Shape[T]) {
	for i, existing := range s.shapes {
		if existing == sh {
			s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
			break
		}
	}
	sh.solid = nil
	s.updateLocalBound()
	s.Activate()
}

func (s *Solid[T]) RemoveAllShapes() {
	s.shapes = nil
	s.updateLocalBound()
	s.Activate()
}

func (s *Solid[T]) Shape(i int) *Shape[T]  { return s.shapes[i] }
func (s *Solid[T]) NumShapes() int         { return len(s.shapes) }
func (s *Solid[T]) ShapeTypes() ShapeType  { return s.shapeTypes }
func (s *Solid[T]) LocalBound() geom.AABox[T] { return s.localBound }
func (s *Solid[T]) WorldBound() geom.AABox[T] { return s.worldBound }

func (s *Solid[T]) Touching() *Solid[T]           { return s.touching }
func (s *Solid[T]) TouchingNormal() geom.Vec3[T]  { return s.touchingNormal }
func (s *Solid[T]) Touched1() *Solid[T]           { return s.touched1 }
func (s *Solid[T]) Touched1Normal() geom.Vec3[T]  { return s.touched1Normal }
func (s *Solid[T]) Touched2() *Solid[T]           { return s.touched2 }
func (s *Solid[T]) Touched2Normal() geom.Vec3[T]  { return s.touched2Normal }

// Constraints returns the constraints this solid is an endpoint of, for a
// Simulator to fold into the solid's acceleration.
func (s *Solid[T]) Constraints() []Constrainer[T] { return s.constraints }

// Active reports whether the solid currently participates in integration:
// it must both carry the active flag and be attached to a Simulator.
func (s *Solid[T]) Active() bool { return s.active && s.attached }

// Activate wakes the solid and, if it was asleep, wakes every solid it
// shares a constraint with — otherwise a spring anchored to a sleeping body
// would never feel the wake-up on the other end.
func (s *Solid[T]) Activate() {
	if s.deactivateCount > 0 {
		s.deactivateCount = 0
	}
	if !s.active {
		s.active = true
		for _, c := range s.constraints {
			c.ActivatePartner(s)
		}
	}
}

// SetStayActive pins (deactivateCount == -1) or un-pins a solid so it never
// falls asleep regardless of how long it stays under the deactivation speed
// threshold — used for player-controlled or otherwise perpetually relevant
// bodies.
func (s *Solid[T]) SetStayActive(stay bool) {
	if stay {
		s.deactivateCount = -1
	} else {
		s.deactivateCount = 0
	}
	s.Activate()
}

func (s *Solid[T]) Deactivate() {
	s.active = false
	s.deactivateCount = 0
}

func (s *Solid[T]) DeactivateCount() int          { return s.deactivateCount }
func (s *Solid[T]) SetDeactivateCount(c int)      { s.deactivateCount = c }
func (s *Solid[T]) IncrementDeactivateCount()     { s.deactivateCount++ }

func (s *Solid[T]) internalAddConstraint(c Constrainer[T])    { s.constraints = append(s.constraints, c) }
func (s *Solid[T]) internalRemoveConstraint(c Constrainer[T]) {
	for i, existing := range s.constraints {
		if existing == c {
			s.constraints = append(s.constraints[:i], s.constraints[i+1:]...)
			return
		}
	}
}

// AddConstraint and RemoveConstraint are the package-external hooks the
// constraint package uses to keep a solid's back-reference list in sync
// without exposing the slice itself.
func (s *Solid[T]) AddConstraint(c Constrainer[T])    { s.internalAddConstraint(c) }
func (s *Solid[T]) RemoveConstraint(c Constrainer[T]) { s.internalRemoveConstraint(c) }

func (s *Solid[T]) updateLocalBound() {
	s.shapeTypes = 0
	if len(s.shapes) == 0 {
		var zero geom.AABox[T]
		s.localBound = zero
	} else {
		s.shapeTypes |= s.shapes[0].Type
		s.localBound = s.shapes[0].Bound()
		for i := 1; i < len(s.shapes); i++ {
			s.shapeTypes |= s.shapes[i].Type
			s.localBound.Merge(s.shapes[i].Bound())
		}
	}
	s.worldBound = s.localBound.Translate(s.Position)
}

// SetTouching records the persistent-contact triple the friction gate
// consults: a solid must appear across two consecutive steps before it is
// promoted from touched1/touched2 to touching, so a single glancing contact
// never engages friction.
func (s *Solid[T]) SetTouching(other *Solid[T], normal geom.Vec3[T]) {
	s.touched2 = s.touched1
	s.touched2Normal = s.touched1Normal
	s.touched1 = other
	s.touched1Normal = normal

	if s.touched2 == other {
		s.touching = other
		s.touchingNormal = normal
	} else {
		s.touching = nil
		var zero geom.Vec3[T]
		s.touchingNormal = zero
	}
}

func (s *Solid[T]) ClearTouching() {
	s.touched1, s.touched2, s.touching = nil, nil, nil
	var zero geom.Vec3[T]
	s.touched1Normal, s.touched2Normal, s.touchingNormal = zero, zero, zero
}

func (s *Solid[T]) SetAttached(a bool) { s.attached = a }
func (s *Solid[T]) Attached() bool     { return s.attached }
