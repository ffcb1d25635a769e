// Package rtree adapts a dynamic R-tree into a hop.Manager broad phase: an
// alternative to manager/grid for scenes where solids are sparse and
// unevenly distributed, where a uniform hash either wastes cells or clumps
// everything into a handful of them.
package rtree

import (
	"github.com/dhconnelly/rtreego"

	"github.com/hopphysics/hop/body"
	"github.com/hopphysics/hop/geom"
	"github.com/hopphysics/hop/scalar"
)

// minExtent is the smallest bounding-box edge length handed to rtreego,
// which rejects a Rect whose length on any axis is exactly zero.
const minExtent = 1e-4

// entry wraps a tracked solid with the bounding rectangle it was last
// inserted under, since rtreego reads Bounds() only at Insert time and
// never re-queries it.
type entry[T scalar.Scalar[T]] struct {
	solid *body.Solid[T]
	rect  rtreego.Rect
}

func (e *entry[T]) Bounds() rtreego.Rect { return e.rect }

// Manager is a hop.Manager backed by a dynamic R-tree over each tracked
// solid's world bound.
type Manager[T scalar.Scalar[T]] struct {
	tree    *rtreego.Rtree
	entries map[*body.Solid[T]]*entry[T]
}

// New returns a Manager whose R-tree nodes hold between minChildren and
// maxChildren entries, the same tuning knobs rtreego.NewTree exposes.
func New[T scalar.Scalar[T]](minChildren, maxChildren int) *Manager[T] {
	return &Manager[T]{
		tree:    rtreego.NewTree(3, minChildren, maxChildren),
		entries: make(map[*body.Solid[T]]*entry[T]),
	}
}

func boxToRect[T scalar.Scalar[T]](box geom.AABox[T]) rtreego.Rect {
	mins := [3]float64{
		float64(box.Mins.X.ToFloat32()),
		float64(box.Mins.Y.ToFloat32()),
		float64(box.Mins.Z.ToFloat32()),
	}
	maxs := [3]float64{
		float64(box.Maxs.X.ToFloat32()),
		float64(box.Maxs.Y.ToFloat32()),
		float64(box.Maxs.Z.ToFloat32()),
	}
	lengths := make([]float64, 3)
	for i := range lengths {
		l := maxs[i] - mins[i]
		if l < minExtent {
			l = minExtent
		}
		lengths[i] = l
	}
	rect, err := rtreego.NewRect(rtreego.Point(mins[:]), lengths)
	if err != nil {
		// NewRect only fails on a non-positive length, which the
		// clamp above rules out.
		panic(err)
	}
	return rect
}

// Track inserts s into the tree under its current world bound. Call it
// whenever a solid is attached to the Simulator this Manager backs.
func (m *Manager[T]) Track(s *body.Solid[T]) {
	if _, ok := m.entries[s]; ok {
		return
	}
	e := &entry[T]{solid: s, rect: boxToRect[T](s.WorldBound())}
	m.entries[s] = e
	m.tree.Insert(e)
}

// Untrack removes s from the tree.
func (m *Manager[T]) Untrack(s *body.Solid[T]) {
	e, ok := m.entries[s]
	if !ok {
		return
	}
	m.tree.Delete(e)
	delete(m.entries, s)
}

// FindSolidsInAABox fills solids with every tracked body whose R-tree
// rectangle intersects box, and returns the count written.
func (m *Manager[T]) FindSolidsInAABox(box geom.AABox[T], solids []*body.Solid[T]) int {
	hits := m.tree.SearchIntersect(boxToRect[T](box))
	n := 0
	for _, hit := range hits {
		e, ok := hit.(*entry[T])
		if !ok || n >= len(solids) {
			break
		}
		solids[n] = e.solid
		n++
	}
	return n
}

// TraceSegment abstains, leaving segment tracing to the Simulator's own
// per-shape dispatch.
func (m *Manager[T]) TraceSegment(seg geom.Segment[T], collideWithBits int) body.Collision[T] {
	var c body.Collision[T]
	c.Reset()
	return c
}

// TraceSolid abstains, leaving solid-vs-solid tracing to the Simulator's
// own Minkowski-reduction dispatch.
func (m *Manager[T]) TraceSolid(s *body.Solid[T], seg geom.Segment[T], collideWithBits int) body.Collision[T] {
	var c body.Collision[T]
	c.Reset()
	return c
}

// PreUpdate re-inserts every tracked solid under its current world bound,
// keeping the tree's rectangles current for the step's sweeps. rtreego
// exposes no in-place rectangle update, so a moved solid must be deleted
// and reinserted.
func (m *Manager[T]) PreUpdate(dt int, fdt T) {
	for s, e := range m.entries {
		m.tree.Delete(e)
		e.rect = boxToRect[T](s.WorldBound())
		m.tree.Insert(e)
	}
}

// PostUpdate is a no-op; the next PreUpdate re-syncs from scratch.
func (m *Manager[T]) PostUpdate(dt int, fdt T) {}

func (m *Manager[T]) PreUpdateSolid(s *body.Solid[T], dt int, fdt T)   {}
func (m *Manager[T]) IntraUpdateSolid(s *body.Solid[T], dt int, fdt T) {}
func (m *Manager[T]) PostUpdateSolid(s *body.Solid[T], dt int, fdt T)  {}

// CollisionResponse always declines, leaving impulse resolution to the
// Simulator's own resolveImpulse.
func (m *Manager[T]) CollisionResponse(s *body.Solid[T], position *geom.Vec3[T], remainder *geom.Vec3[T], col body.Collision[T]) bool {
	return false
}
