package geom

import (
	"testing"

	"github.com/hopphysics/hop/scalar"
)

func vf(x, y, z float32) Vec3[scalar.Float32] {
	return Vec3[scalar.Float32]{scalar.Float32(x), scalar.Float32(y), scalar.Float32(z)}
}

func TestVec3DotCross(t *testing.T) {
	a := vf(1, 0, 0)
	b := vf(0, 1, 0)
	if got := a.Dot(b); got != 0 {
		t.Fatalf("dot = %v, want 0", got)
	}
	cross := a.Cross(b)
	if cross != vf(0, 0, 1) {
		t.Fatalf("cross = %v, want (0,0,1)", cross)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := vf(3, 4, 0)
	n := v.Normalize()
	if diff := n.Length() - 1; diff > 0.0001 || diff < -0.0001 {
		t.Fatalf("|normalize(3,4,0)| = %v, want 1", n.Length())
	}
}

func TestAABoxOverlaps(t *testing.T) {
	a := AABox[scalar.Float32]{vf(0, 0, 0), vf(1, 1, 1)}
	b := AABox[scalar.Float32]{vf(0.5, 0.5, 0.5), vf(2, 2, 2)}
	if !a.Overlaps(b) {
		t.Fatalf("expected overlap")
	}
	c := AABox[scalar.Float32]{vf(5, 5, 5), vf(6, 6, 6)}
	if a.Overlaps(c) {
		t.Fatalf("expected no overlap")
	}
}

func TestFindIntersectionAABoxOriginOutside(t *testing.T) {
	box := AABox[scalar.Float32]{vf(-1, -1, -1), vf(1, 1, 1)}
	seg := NewSegmentStartEnd(vf(-5, 0, 0), vf(5, 0, 0))
	time, point, normal := FindIntersectionAABox(seg, box)
	if time <= 0 || time >= 1 {
		t.Fatalf("expected hit within (0,1), got %v", time)
	}
	if point.X != -1 {
		t.Fatalf("expected impact at x=-1, got %v", point.X)
	}
	if normal.X != -1 {
		t.Fatalf("expected normal (-1,0,0), got %v", normal)
	}
}

func TestFindIntersectionAABoxOriginInside(t *testing.T) {
	box := AABox[scalar.Float32]{vf(-1, -1, -1), vf(1, 1, 1)}
	seg := NewSegmentStartEnd(vf(0, 0, 0), vf(5, 0, 0))
	time, _, _ := FindIntersectionAABox(seg, box)
	if time != 0 {
		t.Fatalf("expected time 0 for segment starting inside, got %v", time)
	}
}

func TestFindIntersectionSphereMiss(t *testing.T) {
	sph := Sphere[scalar.Float32]{vf(0, 10, 0), 1}
	seg := NewSegmentStartEnd(vf(-5, 0, 0), vf(5, 0, 0))
	eps := scalar.Float32(0).MakeEpsilon(0.001)
	time, _, _ := FindIntersectionSphere(seg, sph, eps)
	if time != 1 {
		t.Fatalf("expected no hit (time=1), got %v", time)
	}
}

func TestIntersectionOfThreePlanes(t *testing.T) {
	px := Plane[scalar.Float32]{UnitX[scalar.Float32](), 1}
	py := Plane[scalar.Float32]{UnitY[scalar.Float32](), 2}
	pz := Plane[scalar.Float32]{UnitZ[scalar.Float32](), 3}
	got, ok := IntersectionOfThreePlanes(px, py, pz, 0.0001)
	if !ok {
		t.Fatalf("expected an intersection")
	}
	if got != vf(1, 2, 3) {
		t.Fatalf("intersection = %v, want (1,2,3)", got)
	}
}

func TestClosestPointsBetweenSegments(t *testing.T) {
	seg1 := NewSegmentStartEnd(vf(0, 0, 0), vf(1, 0, 0))
	seg2 := NewSegmentStartEnd(vf(0, 1, 0), vf(1, 1, 0))
	p1, p2 := ClosestPointsBetweenSegments(seg1, seg2, 0.0001)
	if p1.Y != 0 || p2.Y != 1 {
		t.Fatalf("expected parallel segments closest points on own lines, got %v %v", p1, p2)
	}
}
