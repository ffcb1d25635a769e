package hop

import (
	"github.com/hopphysics/hop/body"
	"github.com/hopphysics/hop/geom"
	"github.com/hopphysics/hop/scalar"
)

// constraintForce sums every constraint s is an endpoint of, evaluated at
// the given mid-step position and velocity rather than s's own stored state.
func constraintForce[T scalar.Scalar[T]](s *body.Solid[T], position, velocity geom.Vec3[T]) geom.Vec3[T] {
	var result geom.Vec3[T]
	for _, c := range s.Constraints() {
		if !c.Active() {
			continue
		}
		result = result.Add(c.ForceOnAt(s, position, velocity))
	}
	return result
}

// frictionLink is the Coulomb friction contribution s feels from hit along
// hitNormal, given the force already accumulated on s this step. It reports
// zero unless both bodies have mass and at least one friction coefficient is
// nonzero.
func (sim *Simulator[T]) frictionLink(s *body.Solid[T], solidVel geom.Vec3[T], hit *body.Solid[T], hitNormal, appliedForce geom.Vec3[T], fdt T) geom.Vec3[T] {
	var result geom.Vec3[T]
	var zero T
	zero = zero.Zero()

	if !zero.Less(s.Mass()) || hit.Mass().Equal(zero) {
		return result
	}
	if !(zero.Less(s.CoefficientOfStaticFriction) || zero.Less(s.CoefficientOfDynamicFriction)) {
		return result
	}

	fn := sim.gravity.Dot(hitNormal).Mul(s.CoefficientOfGravity).Mul(s.Mass()).Add(appliedForce.Dot(hitNormal))

	vr := solidVel.Sub(hit.Velocity)
	normVr := hitNormal.Scale(vr.Dot(hitNormal))
	vr = vr.Sub(normVr)
	vr = geom.Vec3[T]{X: vr.X.Cap(sim.maxVelocityComponent), Y: vr.Y.Cap(sim.maxVelocityComponent), Z: vr.Z.Cap(sim.maxVelocityComponent)}
	lenVr := vr.Length()

	if fn.Equal(zero) || !zero.Less(lenVr) || !zero.Less(fdt) {
		return result
	}

	one := zero.One()
	normVr = vr.Scale(one.Div(lenVr))
	ff := normVr.Scale(fn)
	result = ff.Scale(s.CoefficientOfStaticFriction)
	result = result.Scale(fdt)

	fs := vr.Scale(s.Mass().Neg())
	normVr = hitNormal.Scale(appliedForce.Dot(hitNormal))
	normVr = appliedForce.Sub(normVr)
	normVr = normVr.Scale(fdt)
	fs = fs.Add(normVr)
	fs = geom.Vec3[T]{X: fs.X.Cap(sim.maxForceComponent), Y: fs.Y.Cap(sim.maxForceComponent), Z: fs.Z.Cap(sim.maxForceComponent)}

	if result.LengthSquared().Less(fs.LengthSquared()) {
		result = ff.Scale(s.CoefficientOfDynamicFriction)
	} else {
		result = fs.Scale(one.Div(fdt))
	}
	return result
}

// updateAcceleration is the right-hand side of the equation of motion: it
// returns dv/dt at (x,v), folding in gravity, spring/damper constraints,
// touching-surface friction, and fluid drag. Infinite-mass and massless
// solids only feel gravity, since force/mass would divide by zero.
func (sim *Simulator[T]) updateAcceleration(s *body.Solid[T], x, v geom.Vec3[T], fdt T) geom.Vec3[T] {
	var zero T
	zero = zero.Zero()

	result := sim.gravity.Scale(s.CoefficientOfGravity)
	if s.Mass().Equal(zero) {
		return result
	}

	accumulated := constraintForce(s, x, v)
	accumulated = accumulated.Add(s.Force)

	if t1 := s.Touched1(); t1 != nil {
		accumulated = accumulated.Add(sim.frictionLink(s, v, t1, s.Touched1Normal(), accumulated, fdt))
		if t2 := s.Touched2(); t2 != nil && t2 != t1 {
			accumulated = accumulated.Add(sim.frictionLink(s, v, t2, s.Touched2Normal(), accumulated, fdt))
		}
	}

	fluidForce := sim.fluidVelocity.Sub(v).Scale(s.CoefficientOfEffectiveDrag)
	accumulated = accumulated.Add(fluidForce)
	accumulated = accumulated.Scale(s.InvMass())
	result = result.Add(accumulated)
	return result
}

// integrationStep evaluates one derivative sample: it advances (x,v) by the
// stage offset (dx,dv)*fdt, then evaluates acceleration at that offset
// position/velocity. resultX is the velocity to accumulate into position,
// resultV the acceleration to accumulate into velocity — every integrator in
// integrator.go calls this once per stage.
func (sim *Simulator[T]) integrationStep(s *body.Solid[T], x, v, dx, dv geom.Vec3[T], fdt T) (resultX, resultV geom.Vec3[T]) {
	tx := dx.Scale(fdt).Add(x)
	tv := dv.Scale(fdt).Add(v)
	resultX = tv
	resultV = sim.updateAcceleration(s, tx, tv, fdt)
	return resultX, resultV
}
