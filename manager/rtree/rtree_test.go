package rtree

import (
	"testing"

	"github.com/hopphysics/hop/body"
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

func newSolidAt(x, y, z float32, radius float32) *body.Solid[scalar.Float32] {
	s := body.NewSolid[scalar.Float32]()
	sh := body.NewSphereShape(geom.Sphere[scalar.Float32]{
		Origin: geom.Vec3[scalar.Float32]{},
		Radius: scalar.Float32(radius),
	})
	s.AddShape(sh)
	s.SetPosition(vec(x, y, z))
	return s
}

func TestFindSolidsInAABoxFindsOverlapping(t *testing.T) {
	m := New[scalar.Float32](2, 8)
	near := newSolidAt(0, 0, 0, 0.5)
	far := newSolidAt(50, 50, 50, 0.5)
	m.Track(near)
	m.Track(far)
	m.PreUpdate(0, scalar.Float32(0))

	box := geom.AABox[scalar.Float32]{Mins: vec(-1, -1, -1), Maxs: vec(1, 1, 1)}
	buf := make([]*body.Solid[scalar.Float32], 4)
	n := m.FindSolidsInAABox(box, buf)
	if n != 1 || buf[0] != near {
		t.Errorf("FindSolidsInAABox found %d solids, want [near]", n)
	}
}

func TestUntrackRemovesFromTree(t *testing.T) {
	m := New[scalar.Float32](2, 8)
	s := newSolidAt(0, 0, 0, 0.5)
	m.Track(s)
	m.Untrack(s)
	m.PreUpdate(0, scalar.Float32(0))

	box := geom.AABox[scalar.Float32]{Mins: vec(-1, -1, -1), Maxs: vec(1, 1, 1)}
	buf := make([]*body.Solid[scalar.Float32], 4)
	n := m.FindSolidsInAABox(box, buf)
	if n != 0 {
		t.Errorf("FindSolidsInAABox found %d solids after Untrack, want 0", n)
	}
}

func TestPreUpdateTracksMovedSolid(t *testing.T) {
	m := New[scalar.Float32](2, 8)
	s := newSolidAt(0, 0, 0, 0.5)
	m.Track(s)
	m.PreUpdate(0, scalar.Float32(0))

	s.SetPosition(vec(20, 20, 20))
	m.PreUpdate(0, scalar.Float32(0))

	old := geom.AABox[scalar.Float32]{Mins: vec(-1, -1, -1), Maxs: vec(1, 1, 1)}
	buf := make([]*body.Solid[scalar.Float32], 4)
	if n := m.FindSolidsInAABox(old, buf); n != 0 {
		t.Errorf("FindSolidsInAABox at stale position found %d solids, want 0", n)
	}

	moved := geom.AABox[scalar.Float32]{Mins: vec(19, 19, 19), Maxs: vec(21, 21, 21)}
	if n := m.FindSolidsInAABox(moved, buf); n != 1 {
		t.Errorf("FindSolidsInAABox at new position found %d solids, want 1", n)
	}
}
