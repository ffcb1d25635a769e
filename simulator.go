// Package hop implements a deterministic rigid-body physics engine built
// around swept (continuous) collision detection: every step traces each
// solid's intended displacement as a segment against the shapes it might
// meet, so a fast-moving body can never tunnel through a thin wall the way a
// discrete overlap test would allow.
package hop

import (
	"log/slog"

	"github.com/hopphysics/hop/body"
	"github.com/hopphysics/hop/constraint"
	"github.com/hopphysics/hop/geom"
	"github.com/hopphysics/hop/scalar"
)

// ScopeReportCollisions, or'd into Update's scope argument, tells the
// Simulator to flush the step's collision buffer to listeners once every
// solid has been advanced.
const ScopeReportCollisions = 1 << 30

// Simulator owns a set of solids and constraints and advances them one step
// at a time. It is not safe for concurrent use: a single update loop is
// expected to walk every attached solid in sequence, since later solids in
// the same step can already see earlier solids' new positions through the
// Manager's broad phase.
type Simulator[T scalar.Scalar[T]] struct {
	integrator IntegratorType

	fluidVelocity geom.Vec3[T]
	gravity       geom.Vec3[T]

	epsilonState   scalar.Epsilon[T]
	epsilon        T
	halfEpsilon    T
	quarterEpsilon T

	snapToGrid      bool
	averageNormals  bool

	maxPositionComponent T
	maxVelocityComponent T
	maxForceComponent    T

	microCollisionThreshold T
	deactivateSpeed         T
	deactivateCount         int

	manager Manager[T]

	solids      []*body.Solid[T]
	constraints []*constraint.Constraint[T]

	spacialCollection []*body.Solid[T]

	collisions           []body.Collision[T]
	numCollisions        int
	reportingCollisions  bool

	logger *slog.Logger
}

// New builds a Simulator with the original engine's defaults: Earth gravity
// along -Z, the Heun integrator, and epsilon/position/velocity/force bounds
// seeded from T's own defaults.
func New[T scalar.Scalar[T]]() *Simulator[T] {
	var z T
	sim := &Simulator[T]{
		integrator: Heun,
		collisions: make([]body.Collision[T], 64),
		logger:     slog.Default(),
	}
	sim.gravity = geom.Vec3[T]{Z: z.FromMilli(9810).Neg()}
	sim.SetEpsilon(z.DefaultEpsilon())
	sim.maxPositionComponent = z.DefaultMaxPositionComponent()
	sim.maxVelocityComponent = z.DefaultMaxVelocityComponent()
	sim.maxForceComponent = z.DefaultMaxForceComponent()
	sim.deactivateSpeed = z.DefaultDeactivateSpeed(sim.epsilonState)
	sim.deactivateCount = 4
	sim.microCollisionThreshold = z.One()
	return sim
}

func (sim *Simulator[T]) SetIntegrator(i IntegratorType) { sim.integrator = i }
func (sim *Simulator[T]) Integrator() IntegratorType     { return sim.integrator }

func (sim *Simulator[T]) SetEpsilon(epsilon T) {
	var z T
	sim.epsilonState = z.MakeEpsilon(epsilon)
	sim.epsilon = sim.epsilonState.Epsilon
	sim.halfEpsilon = sim.epsilonState.HalfEpsilon
	sim.quarterEpsilon = sim.epsilonState.QuarterEpsilon
}

func (sim *Simulator[T]) Epsilon() T { return sim.epsilon }

func (sim *Simulator[T]) SetSnapToGrid(s bool)     { sim.snapToGrid = s }
func (sim *Simulator[T]) SnapToGrid() bool         { return sim.snapToGrid }
func (sim *Simulator[T]) SetAverageNormals(a bool) { sim.averageNormals = a }
func (sim *Simulator[T]) AverageNormals() bool     { return sim.averageNormals }

func (sim *Simulator[T]) SetMaxPositionComponent(v T) { sim.maxPositionComponent = v }
func (sim *Simulator[T]) MaxPositionComponent() T     { return sim.maxPositionComponent }
func (sim *Simulator[T]) SetMaxVelocityComponent(v T) { sim.maxVelocityComponent = v }
func (sim *Simulator[T]) MaxVelocityComponent() T     { return sim.maxVelocityComponent }
func (sim *Simulator[T]) SetMaxForceComponent(v T)    { sim.maxForceComponent = v }
func (sim *Simulator[T]) MaxForceComponent() T        { return sim.maxForceComponent }

func (sim *Simulator[T]) SetFluidVelocity(v geom.Vec3[T]) { sim.fluidVelocity = v }
func (sim *Simulator[T]) FluidVelocity() geom.Vec3[T]     { return sim.fluidVelocity }

// SetGravity replaces the acceleration every massed solid feels regardless
// of contact, and wakes every attached solid since a gravity change can
// disturb an otherwise-settled body.
func (sim *Simulator[T]) SetGravity(g geom.Vec3[T]) {
	sim.gravity = g
	for _, s := range sim.solids {
		s.Activate()
	}
}

func (sim *Simulator[T]) Gravity() geom.Vec3[T] { return sim.gravity }

func (sim *Simulator[T]) SetManager(m Manager[T]) { sim.manager = m }
func (sim *Simulator[T]) GetManager() Manager[T]  { return sim.manager }

// SetLogger replaces the structured logger the Simulator emits debug-level
// broad-phase and deactivation diagnostics to. A nil logger disables output.
func (sim *Simulator[T]) SetLogger(l *slog.Logger) { sim.logger = l }
func (sim *Simulator[T]) Logger() *slog.Logger     { return sim.logger }

func (sim *Simulator[T]) logDebug(msg string, args ...any) {
	if sim.logger != nil {
		sim.logger.Debug(msg, args...)
	}
}

func (sim *Simulator[T]) SetMicroCollisionThreshold(t T) { sim.microCollisionThreshold = t }
func (sim *Simulator[T]) MicroCollisionThreshold() T     { return sim.microCollisionThreshold }

func (sim *Simulator[T]) SetDeactivateSpeed(s T)   { sim.deactivateSpeed = s }
func (sim *Simulator[T]) SetDeactivateCount(c int) { sim.deactivateCount = c }

// AddSolid attaches s to the simulation, waking it and sizing the broad-phase
// scratch buffer to match.
func (sim *Simulator[T]) AddSolid(s *body.Solid[T]) {
	for _, existing := range sim.solids {
		if existing == s {
			return
		}
	}
	sim.solids = append(sim.solids, s)
	s.SetAttached(true)
	s.Activate()
	sim.spacialCollection = make([]*body.Solid[T], len(sim.solids))
}

// RemoveSolid detaches s, clearing every touching/collision-buffer reference
// to it so nothing downstream dereferences a solid the caller may now free.
func (sim *Simulator[T]) RemoveSolid(s *body.Solid[T]) {
	s.ClearTouching()
	for _, other := range sim.solids {
		if other.Touching() == s || other.Touched1() == s || other.Touched2() == s {
			other.ClearTouching()
		}
	}

	if sim.reportingCollisions {
		for i := 0; i < sim.numCollisions; i++ {
			c := &sim.collisions[i]
			if c.Collider == s {
				c.Collider = nil
			}
			if c.Collidee == s {
				c.Collidee = nil
			}
		}
	}

	s.SetAttached(false)
	for i, existing := range sim.solids {
		if existing == s {
			sim.solids = append(sim.solids[:i], sim.solids[i+1:]...)
			break
		}
	}
}

func (sim *Simulator[T]) NumSolids() int          { return len(sim.solids) }
func (sim *Simulator[T]) Solid(i int) *body.Solid[T] { return sim.solids[i] }

// AddConstraint registers c for lifetime management and marks it active; the
// force it contributes is picked up automatically through each endpoint
// solid's own constraint list.
func (sim *Simulator[T]) AddConstraint(c *constraint.Constraint[T]) {
	for _, existing := range sim.constraints {
		if existing == c {
			return
		}
	}
	sim.constraints = append(sim.constraints, c)
	c.SetAttached(true)
}

func (sim *Simulator[T]) RemoveConstraint(c *constraint.Constraint[T]) {
	c.SetAttached(false)
	for i, existing := range sim.constraints {
		if existing == c {
			sim.constraints = append(sim.constraints[:i], sim.constraints[i+1:]...)
			return
		}
	}
}

// Update advances every attached solid (or only target, if given) by dt
// milliseconds. When scope is nonzero, only solids whose Scope overlaps it
// are advanced; ScopeReportCollisions additionally flushes this step's
// collision buffer once every solid has moved.
func (sim *Simulator[T]) Update(dt int, scope int, target *body.Solid[T]) {
	var z T
	fdt := z.FromMilli(dt)
	sim.numCollisions = 0
	if sim.manager != nil {
		sim.manager.PreUpdate(dt, fdt)
	}

	list := sim.solids
	if target != nil {
		list = []*body.Solid[T]{target}
	}

	for _, s := range list {
		if !s.Active() {
			continue
		}
		if scope != 0 && s.Scope&scope == 0 {
			continue
		}

		if sim.manager != nil {
			sim.manager.PreUpdateSolid(s, dt, fdt)
		}

		sim.updateSolid(s, dt, fdt)

		if sim.manager != nil {
			sim.manager.PostUpdateSolid(s, dt, fdt)
		}
	}

	if scope&ScopeReportCollisions != 0 {
		sim.reportCollisions()
	}
	if sim.manager != nil {
		sim.manager.PostUpdate(dt, fdt)
	}
}

// FindSolidsInAABox fills solids with every attached body whose world bound
// overlaps box (expanded by epsilon on every side), preferring the Manager's
// broad phase and falling back to a linear scan when it abstains.
func (sim *Simulator[T]) FindSolidsInAABox(box geom.AABox[T], solids []*body.Solid[T]) int {
	expanded := box.Expand(geom.Vec3[T]{X: sim.epsilon, Y: sim.epsilon, Z: sim.epsilon})

	amount := -1
	if sim.manager != nil {
		amount = sim.manager.FindSolidsInAABox(expanded, solids)
	}

	if amount == -1 {
		sim.logDebug("broad phase abstained, falling back to linear scan", "solids", len(sim.solids))
		amount = 0
		for _, s := range sim.solids {
			if expanded.Overlaps(s.WorldBound()) {
				if amount < len(solids) {
					solids[amount] = s
				}
				amount++
			}
		}
	}
	if amount > len(solids) {
		amount = len(solids)
	}
	return amount
}

func (sim *Simulator[T]) capVec3(v geom.Vec3[T], limit T) geom.Vec3[T] {
	return geom.Vec3[T]{X: v.X.Cap(limit), Y: v.Y.Cap(limit), Z: v.Z.Cap(limit)}
}

// calculateEpsilonOffset returns the tiny nudge added to a contact point so
// the next sweep starts a hair off the surface instead of exactly on it,
// which would otherwise register as an immediate re-collision.
func (sim *Simulator[T]) calculateEpsilonOffset(direction, normal geom.Vec3[T]) geom.Vec3[T] {
	var zero T
	zero = zero.Zero()
	if sim.snapToGrid {
		axis := func(n T) T {
			switch {
			case sim.quarterEpsilon.LessEqual(n):
				return sim.epsilon
			case n.LessEqual(sim.quarterEpsilon.Neg()):
				return sim.epsilon.Neg()
			default:
				return zero
			}
		}
		return geom.Vec3[T]{X: axis(normal.X), Y: axis(normal.Y), Z: axis(normal.Z)}
	}

	length := direction.Length()
	if sim.epsilon.Less(length) {
		return geom.Vec3[T]{
			X: direction.X.Neg().Div(length).Mul(sim.epsilon),
			Y: direction.Y.Neg().Div(length).Mul(sim.epsilon),
			Z: direction.Z.Neg().Div(length).Mul(sim.epsilon),
		}
	}
	var zeroVec geom.Vec3[T]
	return zeroVec
}

func (sim *Simulator[T]) snapVec(pos geom.Vec3[T]) geom.Vec3[T] {
	if !sim.snapToGrid {
		return pos
	}
	return geom.Vec3[T]{
		X: pos.X.SnapToGrid(sim.epsilonState),
		Y: pos.Y.SnapToGrid(sim.epsilonState),
		Z: pos.Z.SnapToGrid(sim.epsilonState),
	}
}

func (sim *Simulator[T]) tooSmall(v geom.Vec3[T], epsilon T) bool {
	neg := epsilon.Neg()
	return v.X.Less(epsilon) && neg.Less(v.X) &&
		v.Y.Less(epsilon) && neg.Less(v.Y) &&
		v.Z.Less(epsilon) && neg.Less(v.Z)
}

// CountActiveSolids reports how many attached solids currently participate
// in integration.
func (sim *Simulator[T]) CountActiveSolids() int {
	n := 0
	for _, s := range sim.solids {
		if s.Active() {
			n++
		}
	}
	return n
}

// updateSolid is the per-body step: integrate, then resolve the sweep
// against everything nearby, sliding along up to five contacts before
// giving up and stopping the body dead for this step.
func (sim *Simulator[T]) updateSolid(s *body.Solid[T], dt int, fdt T) {
	var z T
	one := z.One()

	oldPos := s.Position
	oldVel := s.Velocity

	newPos, vel := sim.integrate(s, oldPos, oldVel, fdt)
	vel = sim.capVec3(vel, sim.maxVelocityComponent)
	s.Velocity = vel
	s.ClearForce()

	if sim.manager != nil {
		sim.manager.IntraUpdateSolid(s, dt, fdt)
	}

	oldPos = sim.snapVec(oldPos)
	oldPos = sim.capVec3(oldPos, sim.maxPositionComponent)
	newPos = sim.snapVec(newPos)
	newPos = sim.capVec3(newPos, sim.maxPositionComponent)

	numSpacial := 0
	if s.CollideWithScope != 0 {
		disp := newPos.Sub(oldPos)
		absMax := disp.X.Abs()
		if absMax.Less(disp.Y.Abs()) {
			absMax = disp.Y.Abs()
		}
		if absMax.Less(disp.Z.Abs()) {
			absMax = disp.Z.Abs()
		}
		margin := absMax.Add(sim.epsilon)

		box := s.LocalBound().Translate(newPos)
		box = box.Expand(geom.Vec3[T]{X: margin, Y: margin, Z: margin})
		numSpacial = sim.FindSolidsInAABox(box, sim.spacialCollection)
	}

	var c body.Collision[T]
	c.Reset()

	first := true
	loop := 0

	for {
		if !first {
			oldPos = sim.snapVec(oldPos)
			newPos = sim.snapVec(newPos)
			disp := newPos.Sub(oldPos)
			if sim.tooSmall(disp, sim.epsilon) {
				newPos = oldPos
				break
			}
		}

		path := geom.NewSegmentStartEnd(oldPos, newPos)
		c = sim.traceSolidWithSpacials(s, path, s.CollideWithScope, sim.spacialCollection[:numSpacial])

		if !c.Time.Less(one) {
			break
		}

		c.Point = sim.snapVec(c.Point)
		leftOver := c.Point.Sub(oldPos)
		offset := sim.calculateEpsilonOffset(leftOver, c.Normal)
		oldPos = c.Point.Add(offset)
		leftOver = newPos.Sub(oldPos)

		hitSolid := c.Collider

		if hitSolid != s.Touching() && (s.Listener != nil || (hitSolid != nil && hitSolid.Listener != nil)) {
			c.Collidee = s
			if hitSolid != nil {
				c.Velocity = s.Velocity.Sub(hitSolid.Velocity)
			} else {
				c.Velocity = s.Velocity
			}
			if sim.numCollisions < len(sim.collisions) {
				sim.collisions[sim.numCollisions] = c
				sim.numCollisions++
			}
		}

		responded := false
		if sim.manager != nil {
			responded = sim.manager.CollisionResponse(s, &oldPos, &leftOver, c)
		}

		if !responded {
			sim.resolveImpulse(s, hitSolid, c)
		}

		s.SetTouching(hitSolid, c.Normal)

		if sim.tooSmall(leftOver, sim.epsilon) {
			newPos = oldPos
			break
		} else if loop > 4 {
			var zeroVec geom.Vec3[T]
			s.Velocity = zeroVec
			newPos = oldPos
			break
		} else {
			slideDir := geom.NormalizeCarefully(s.Velocity, sim.epsilonState)
			if slideDir.Equal((geom.Vec3[T]{})) {
				newPos = oldPos
				break
			}
			slideDir = slideDir.Scale(leftOver.Length())
			slideDir = slideDir.Sub(c.Normal.Scale(slideDir.Dot(c.Normal)))
			newPos = oldPos.Add(slideDir)
			first = false
		}
		loop++
	}

	if c.Time.Equal(one) && loop == 0 {
		s.ClearTouching()
	}

	if s.DeactivateCount() >= 0 {
		diff := newPos.Sub(s.Position)
		if diff.X.Abs().Less(sim.deactivateSpeed) &&
			diff.Y.Abs().Less(sim.deactivateSpeed) &&
			diff.Z.Abs().Less(sim.deactivateSpeed) {
			s.IncrementDeactivateCount()
			if s.DeactivateCount() > sim.deactivateCount {
				canSleep := true
				for _, con := range s.Constraints() {
					if partnerActiveAndAwake(con, s, sim.deactivateCount) {
						canSleep = false
						break
					}
				}
				if canSleep {
					s.Deactivate()
					sim.logDebug("solid deactivated", "position", s.Position)
				}
			}
		} else {
			s.SetDeactivateCount(0)
		}
	}

	s.SetPosition(newPos)
}

// partnerActiveAndAwake reports whether the endpoint of con other than s is
// itself active and not yet deep enough into its own deactivation countdown,
// used to veto s falling asleep while something it is tethered to is still
// moving.
func partnerActiveAndAwake[T scalar.Scalar[T]](con body.Constrainer[T], s *body.Solid[T], deactivateCount int) bool {
	cc, ok := con.(*constraint.Constraint[T])
	if !ok {
		return false
	}
	var partner *body.Solid[T]
	if cc.StartSolid() != s {
		partner = cc.StartSolid()
	} else {
		partner = cc.EndSolid()
	}
	if partner == nil {
		return false
	}
	return partner.Active() && partner.DeactivateCount() <= deactivateCount
}

// resolveImpulse applies the original engine's momentum-conserving bounce:
// the combined restitution of both bodies scales the relative velocity along
// the contact normal, and the resulting impulse is split between the two
// bodies in proportion to their inverse masses.
func (sim *Simulator[T]) resolveImpulse(s, hit *body.Solid[T], c body.Collision[T]) {
	var z T
	zero := z.Zero()
	one := z.One()
	two := z.Two()

	var cor T
	if s.RestitutionOverride || hit == nil {
		cor = s.CoefficientOfRestitution
	} else {
		cor = s.CoefficientOfRestitution.Add(hit.CoefficientOfRestitution).Div(two)
	}

	var relVel geom.Vec3[T]
	if hit != nil {
		relVel = hit.Velocity.Sub(s.Velocity)
	} else {
		relVel = s.Velocity.Neg()
	}

	if relVel.Dot(c.Normal).Less(sim.microCollisionThreshold) {
		cor = zero
	}

	numerator := one.Add(cor).Mul(relVel.Dot(c.Normal))
	var hitImpulse geom.Vec3[T]

	if !s.Mass().Equal(zero) && (hit == nil || !hit.Mass().Equal(zero)) {
		invMass := s.InvMass()
		var invHitMass T
		if hit != nil {
			invHitMass = hit.InvMass()
		}

		var impulse T
		if !invMass.Add(invHitMass).Equal(zero) {
			impulse = numerator.Div(invMass.Add(invHitMass))
		}

		if !s.HasInfiniteMass() {
			s.Velocity = s.Velocity.Add(c.Normal.Scale(impulse).Scale(invMass))
		}
		if hit != nil && !hit.HasInfiniteMass() {
			hitImpulse = c.Normal.Scale(impulse).Scale(invHitMass)
		}
	} else if hit != nil {
		hitImpulse = c.Normal.Scale(numerator)
	} else if s.Mass().Equal(zero) {
		s.Velocity = s.Velocity.Add(c.Normal.Scale(numerator))
	}

	atLeast := func(v T) bool { return !v.Less(sim.deactivateSpeed) }
	if hit != nil && hit.CollideWithScope&s.CollisionScope != 0 &&
		(atLeast(hitImpulse.X.Abs()) || atLeast(hitImpulse.Y.Abs()) || atLeast(hitImpulse.Z.Abs())) {
		hit.Activate()
		hit.Velocity = hit.Velocity.Sub(hitImpulse)
	}
}
