// Package grid adapts a uniform spatial hash into a hop.Manager broad phase:
// every attached solid is rehashed into its overlapping cells once per
// PreUpdate, and FindSolidsInAABox walks only the cells a query box touches
// instead of every attached solid.
package grid

import (
	"github.com/hopphysics/hop/body"
	"github.com/hopphysics/hop/geom"
	"github.com/hopphysics/hop/scalar"
)

// cellKey identifies one cell of the hash by integer grid coordinate.
type cellKey struct {
	X, Y, Z int
}

// Grid is a uniform spatial hash over a fixed cell size. It implements
// hop.Manager by answering FindSolidsInAABox from the hash and abstaining
// (returning zero values / false) from every other hook, leaving trace
// dispatch, integration and collision response to the Simulator itself.
type Grid[T scalar.Scalar[T]] struct {
	cellSize T
	cells    map[cellKey][]*body.Solid[T]
	solids   []*body.Solid[T]
}

// New returns a Grid hashing world space into cubes of the given edge
// length. A cell size close to the typical solid diameter keeps cell
// occupancy low without fragmenting a single sweep across too many cells.
func New[T scalar.Scalar[T]](cellSize T) *Grid[T] {
	return &Grid[T]{
		cellSize: cellSize,
		cells:    make(map[cellKey][]*body.Solid[T]),
	}
}

// Track adds s to the set of solids the grid rehashes on every PreUpdate.
// This mirrors Simulator.AddSolid: call it whenever a solid is attached to
// the Simulator this Grid backs.
func (g *Grid[T]) Track(s *body.Solid[T]) {
	for _, existing := range g.solids {
		if existing == s {
			return
		}
	}
	g.solids = append(g.solids, s)
}

// Untrack removes s from the tracked set.
func (g *Grid[T]) Untrack(s *body.Solid[T]) {
	for i, existing := range g.solids {
		if existing == s {
			g.solids = append(g.solids[:i], g.solids[i+1:]...)
			return
		}
	}
}

func worldToCell[T scalar.Scalar[T]](v geom.Vec3[T], cellSize T) cellKey {
	size := cellSize.ToFloat32()
	if size == 0 {
		size = 1
	}
	return cellKey{
		X: floorDiv(v.X.ToFloat32(), size),
		Y: floorDiv(v.Y.ToFloat32(), size),
		Z: floorDiv(v.Z.ToFloat32(), size),
	}
}

func floorDiv(v, size float32) int {
	q := v / size
	i := int(q)
	if q < 0 && float32(i) != q {
		i--
	}
	return i
}

// rehash clears and rebuilds the cell map from each tracked solid's current
// world bound, inserting into every cell the bound overlaps.
func (g *Grid[T]) rehash() {
	for k := range g.cells {
		delete(g.cells, k)
	}
	for _, s := range g.solids {
		box := s.WorldBound()
		lo := worldToCell[T](box.Mins, g.cellSize)
		hi := worldToCell[T](box.Maxs, g.cellSize)
		for x := lo.X; x <= hi.X; x++ {
			for y := lo.Y; y <= hi.Y; y++ {
				for z := lo.Z; z <= hi.Z; z++ {
					k := cellKey{x, y, z}
					g.cells[k] = append(g.cells[k], s)
				}
			}
		}
	}
}

// FindSolidsInAABox fills solids with every tracked body whose current
// world bound overlaps box, deduplicated across the cells it spans, and
// returns the count written.
func (g *Grid[T]) FindSolidsInAABox(box geom.AABox[T], solids []*body.Solid[T]) int {
	lo := worldToCell[T](box.Mins, g.cellSize)
	hi := worldToCell[T](box.Maxs, g.cellSize)

	n := 0
	seen := make(map[*body.Solid[T]]bool)
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for z := lo.Z; z <= hi.Z; z++ {
				for _, s := range g.cells[cellKey{x, y, z}] {
					if seen[s] {
						continue
					}
					seen[s] = true
					if !box.Overlaps(s.WorldBound()) {
						continue
					}
					if n >= len(solids) {
						return n
					}
					solids[n] = s
					n++
				}
			}
		}
	}
	return n
}

// TraceSegment abstains, leaving segment tracing to the Simulator's own
// per-shape dispatch.
func (g *Grid[T]) TraceSegment(seg geom.Segment[T], collideWithBits int) body.Collision[T] {
	var c body.Collision[T]
	c.Reset()
	return c
}

// TraceSolid abstains, leaving solid-vs-solid tracing to the Simulator's own
// Minkowski-reduction dispatch.
func (g *Grid[T]) TraceSolid(s *body.Solid[T], seg geom.Segment[T], collideWithBits int) body.Collision[T] {
	var c body.Collision[T]
	c.Reset()
	return c
}

// PreUpdate rehashes every tracked solid's current world bound before the
// step's sweeps read the grid.
func (g *Grid[T]) PreUpdate(dt int, fdt T) { g.rehash() }

// PostUpdate is a no-op; the next PreUpdate rehashes from scratch.
func (g *Grid[T]) PostUpdate(dt int, fdt T) {}

func (g *Grid[T]) PreUpdateSolid(s *body.Solid[T], dt int, fdt T)   {}
func (g *Grid[T]) IntraUpdateSolid(s *body.Solid[T], dt int, fdt T) {}
func (g *Grid[T]) PostUpdateSolid(s *body.Solid[T], dt int, fdt T)  {}

// CollisionResponse always declines, leaving impulse resolution to the
// Simulator's own resolveImpulse.
func (g *Grid[T]) CollisionResponse(s *body.Solid[T], position *geom.Vec3[T], remainder *geom.Vec3[T], col body.Collision[T]) bool {
	return false
}
