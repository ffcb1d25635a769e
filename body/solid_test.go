package body

import (
	"testing"

	"github.com/hopphysics/hop/geom"
	"github.com/hopphysics/hop/scalar"
)

func vec(x, y, z float32) geom.Vec3[scalar.Float32] {
	return geom.Vec3[scalar.Float32]{
		X: scalar.Float32(x),
		Y: scalar.Float32(y),
		Z: scalar.Float32(z),
	}
}

func TestTouchingRequiresTwoConsecutiveContacts(t *testing.T) {
	s := NewSolid[scalar.Float32]()
	other := NewSolid[scalar.Float32]()
	normal := vec(0, 0, 1)

	s.SetTouching(other, normal)
	if s.Touching() != nil {
		t.Fatalf("a single contact promoted to touching, want nil until seen twice")
	}

	s.SetTouching(other, normal)
	if s.Touching() != other {
		t.Fatalf("two consecutive contacts with the same solid did not promote to touching")
	}
}

func TestTouchingResetsWhenContactChanges(t *testing.T) {
	s := NewSolid[scalar.Float32]()
	a := NewSolid[scalar.Float32]()
	b := NewSolid[scalar.Float32]()
	normal := vec(0, 0, 1)

	s.SetTouching(a, normal)
	s.SetTouching(a, normal)
	if s.Touching() != a {
		t.Fatalf("touching not established on a after two contacts")
	}

	s.SetTouching(b, normal)
	if s.Touching() != nil {
		t.Fatalf("touching still reports the prior partner after a contact with b")
	}

	s.ClearTouching()
	if s.Touching() != nil || s.Touched1() != nil || s.Touched2() != nil {
		t.Fatalf("ClearTouching left stale references")
	}
}

func TestActivateWakesConstraintPartner(t *testing.T) {
	s := NewSolid[scalar.Float32]()
	s.Deactivate()

	woken := false
	s.AddConstraint(&fakeConstrainer{onActivate: func(of *Solid[scalar.Float32]) {
		if of == s {
			woken = true
		}
	}})

	s.Activate()
	if !woken {
		t.Fatalf("Activate did not notify constraint partners")
	}
}

func TestSetStayActivePinsAgainstDeactivation(t *testing.T) {
	s := NewSolid[scalar.Float32]()
	s.SetAttached(true)
	s.SetStayActive(true)

	if s.DeactivateCount() != -1 {
		t.Fatalf("SetStayActive(true) did not pin deactivateCount to -1, got %d", s.DeactivateCount())
	}
	if !s.Active() {
		t.Fatalf("SetStayActive(true) left the solid inactive")
	}
}

type fakeConstrainer struct {
	onActivate func(of *Solid[scalar.Float32])
}

func (f *fakeConstrainer) ActivatePartner(of *Solid[scalar.Float32]) {
	if f.onActivate != nil {
		f.onActivate(of)
	}
}
func (f *fakeConstrainer) Active() bool { return true }
func (f *fakeConstrainer) ForceOn(s *Solid[scalar.Float32]) geom.Vec3[scalar.Float32] {
	return geom.Vec3[scalar.Float32]{}
}
func (f *fakeConstrainer) ForceOnAt(s *Solid[scalar.Float32], position, velocity geom.Vec3[scalar.Float32]) geom.Vec3[scalar.Float32] {
	return geom.Vec3[scalar.Float32]{}
}
