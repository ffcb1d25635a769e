package hop

import (
	"github.com/hopphysics/hop/body"
	"github.com/hopphysics/hop/geom"
)

// IntegratorType selects which numerical scheme Simulator.integrate uses to
// advance a solid's position and velocity across one step.
type IntegratorType int

const (
	Euler IntegratorType = iota
	Improved
	Heun
	RungeKutta
)

// integrate advances oldPos/oldVel (the solid's state at the start of the
// step) by fdt using the configured scheme, returning the tentative new
// position and velocity before any collision response is applied.
func (sim *Simulator[T]) integrate(s *body.Solid[T], oldPos, oldVel geom.Vec3[T], fdt T) (newPos, newVel geom.Vec3[T]) {
	var zero T
	zero = zero.Zero()
	one := zero.One()
	two := one.Two()
	three := one.Three()
	var zeroVec geom.Vec3[T]

	switch sim.integrator {
	case Euler:
		dx1, dv1 := sim.integrationStep(s, oldPos, oldVel, zeroVec, zeroVec, fdt)
		newPos = dx1.Scale(fdt).Add(oldPos)
		newVel = dv1.Scale(fdt).Add(oldVel)

	case Improved:
		hfdt := fdt.Div(two)
		dx1, dv1 := sim.integrationStep(s, oldPos, oldVel, zeroVec, zeroVec, fdt)
		newPos, newVel = dx1, dv1
		dx2, dv2 := sim.integrationStep(s, oldPos, oldVel, dx1, dv1, fdt)
		newPos = newPos.Add(dx2).Scale(hfdt).Add(oldPos)
		newVel = newVel.Add(dv2).Scale(hfdt).Add(oldVel)

	case Heun:
		qfdt := fdt.Div(one.Four())
		ttfdt := fdt.Mul(two).Div(three)
		dx1, dv1 := sim.integrationStep(s, oldPos, oldVel, zeroVec, zeroVec, fdt)
		newPos, newVel = dx1, dv1
		dx2, dv2 := sim.integrationStep(s, oldPos, oldVel, dx1, dv1, ttfdt)
		dx2 = dx2.Scale(three)
		newPos = newPos.Add(dx2).Scale(qfdt).Add(oldPos)
		dv2 = dv2.Scale(three)
		newVel = newVel.Add(dv2).Scale(qfdt).Add(oldVel)

	case RungeKutta:
		hfdt := fdt.Div(two)
		sfdt := fdt.Div(one.FromInt(6))
		dx1, dv1 := sim.integrationStep(s, oldPos, oldVel, zeroVec, zeroVec, fdt)
		newPos, newVel = dx1, dv1
		dx2, dv2 := sim.integrationStep(s, oldPos, oldVel, dx1, dv1, hfdt)
		newPos = newPos.Add(dx2.Scale(two))
		newVel = newVel.Add(dv2.Scale(two))
		dx1b, dv1b := sim.integrationStep(s, oldPos, oldVel, dx2, dv2, hfdt)
		newPos = newPos.Add(dx1b.Scale(two))
		newVel = newVel.Add(dv1b.Scale(two))
		dx2b, dv2b := sim.integrationStep(s, oldPos, oldVel, dx1b, dv1b, fdt)
		newPos = newPos.Add(dx2b).Scale(sfdt).Add(oldPos)
		newVel = newVel.Add(dv2b).Scale(sfdt).Add(oldVel)
	}

	return newPos, newVel
}
