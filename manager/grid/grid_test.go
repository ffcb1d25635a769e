package grid

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

func TestWorldToCell(t *testing.T) {
	one := scalar.Float32(1.0)
	tests := []struct {
		name string
		pos  geom.Vec3[scalar.Float32]
		want cellKey
	}{
		{"origin", vec(0, 0, 0), cellKey{0, 0, 0}},
		{"positive", vec(1.5, 2.3, 3.7), cellKey{1, 2, 3}},
		{"negative", vec(-1.5, -2.3, -3.7), cellKey{-2, -3, -4}},
		{"fractional", vec(0.5, 0.5, 0.5), cellKey{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := worldToCell[scalar.Float32](tt.pos, one)
			if got != tt.want {
				t.Errorf("worldToCell(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
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
	g := New[scalar.Float32](scalar.Float32(2.0))
	near := newSolidAt(0, 0, 0, 0.5)
	far := newSolidAt(50, 50, 50, 0.5)
	g.Track(near)
	g.Track(far)
	g.PreUpdate(0, scalar.Float32(0))

	box := geom.AABox[scalar.Float32]{Mins: vec(-1, -1, -1), Maxs: vec(1, 1, 1)}
	buf := make([]*body.Solid[scalar.Float32], 4)
	n := g.FindSolidsInAABox(box, buf)
	if n != 1 || buf[0] != near {
		t.Errorf("FindSolidsInAABox found %d solids, want [near]", n)
	}
}

func TestFindSolidsInAABoxDedupesAcrossCells(t *testing.T) {
	g := New[scalar.Float32](scalar.Float32(1.0))
	wide := newSolidAt(0, 0, 0, 3.0)
	g.Track(wide)
	g.PreUpdate(0, scalar.Float32(0))

	box := geom.AABox[scalar.Float32]{Mins: vec(-3, -3, -3), Maxs: vec(3, 3, 3)}
	buf := make([]*body.Solid[scalar.Float32], 4)
	n := g.FindSolidsInAABox(box, buf)
	if n != 1 {
		t.Errorf("FindSolidsInAABox returned %d entries for one solid spanning several cells, want 1", n)
	}
}

func TestUntrackRemovesFromRehash(t *testing.T) {
	g := New[scalar.Float32](scalar.Float32(2.0))
	s := newSolidAt(0, 0, 0, 0.5)
	g.Track(s)
	g.Untrack(s)
	g.PreUpdate(0, scalar.Float32(0))

	box := geom.AABox[scalar.Float32]{Mins: vec(-1, -1, -1), Maxs: vec(1, 1, 1)}
	buf := make([]*body.Solid[scalar.Float32], 4)
	n := g.FindSolidsInAABox(box, buf)
	if n != 0 {
		t.Errorf("FindSolidsInAABox found %d solids after Untrack, want 0", n)
	}
}
