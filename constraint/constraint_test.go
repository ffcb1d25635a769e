package constraint

import (
	"testing"

	"github.com/hopphysics/hop/body"
	"github.com/hopphysics/hop/geom"
	"github.com/hopphysics/hop/scalar"
)

func TestForceZeroAtRestDistance(t *testing.T) {
	a := body.NewSolid[scalar.Float32]()
	a.SetPosition(geom.Vec3[scalar.Float32]{})
	b := body.NewSolid[scalar.Float32]()
	b.SetPosition(geom.Vec3[scalar.Float32]{X: 1})

	c := New(a, b)
	c.SpringConstant = 10
	c.DistanceThreshold = 1

	f := c.ForceOn(a)
	if f.X != 0 || f.Y != 0 || f.Z != 0 {
		t.Fatalf("force at rest distance = %v, want zero", f)
	}
}

func TestForcePullsTowardStretchedEnd(t *testing.T) {
	a := body.NewSolid[scalar.Float32]()
	a.SetPosition(geom.Vec3[scalar.Float32]{})
	b := body.NewSolid[scalar.Float32]()
	b.SetPosition(geom.Vec3[scalar.Float32]{X: 3})

	c := New(a, b)
	c.SpringConstant = 2
	c.DistanceThreshold = 1

	f := c.ForceOn(a)
	if f.X <= 0 {
		t.Fatalf("expected a positive pull toward the far end, got %v", f)
	}
}

func TestActivatePartnerWakesOtherEnd(t *testing.T) {
	a := body.NewSolid[scalar.Float32]()
	b := body.NewSolid[scalar.Float32]()
	c := New(a, b)
	b.SetAttached(true)
	b.Deactivate()

	c.ActivatePartner(a)
	if !b.Active() {
		t.Fatalf("ActivatePartner(a) left the other endpoint asleep")
	}
}

func TestPointConstraintHasNoEndVelocity(t *testing.T) {
	a := body.NewSolid[scalar.Float32]()
	c := NewToPoint(a, geom.Vec3[scalar.Float32]{X: 5})
	if v := c.EndVelocity(); v.X != 0 || v.Y != 0 || v.Z != 0 {
		t.Fatalf("point anchor velocity = %v, want zero", v)
	}
	if p := c.EndPosition(); p.X != 5 {
		t.Fatalf("point anchor position = %v, want (5,0,0)", p)
	}
}
