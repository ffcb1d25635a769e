package hop

import (
	"github.com/hopphysics/hop/body"
	"github.com/hopphysics/hop/geom"
	"github.com/hopphysics/hop/scalar"
)

// Manager is the broad-phase and per-step lifecycle hook a host application
// plugs into a Simulator. Every method is optional in spirit — a Manager
// that has nothing useful to say about a query should return false/-1/no-op
// so the Simulator falls back to its own linear scan or default response.
type Manager[T scalar.Scalar[T]] interface {
	// FindSolidsInAABox fills solids with candidates overlapping box and
	// returns how many were written, or -1 to abstain (the Simulator then
	// falls back to scanning every attached solid).
	FindSolidsInAABox(box geom.AABox[T], solids []*body.Solid[T]) int

	TraceSegment(seg geom.Segment[T], collideWithBits int) body.Collision[T]
	TraceSolid(s *body.Solid[T], seg geom.Segment[T], collideWithBits int) body.Collision[T]

	PreUpdate(dt int, fdt T)
	PostUpdate(dt int, fdt T)
	PreUpdateSolid(s *body.Solid[T], dt int, fdt T)
	IntraUpdateSolid(s *body.Solid[T], dt int, fdt T)
	PostUpdateSolid(s *body.Solid[T], dt int, fdt T)

	// CollisionResponse lets the host override the default impulse
	// response entirely; returning false leaves the Simulator's own
	// resolution in effect.
	CollisionResponse(s *body.Solid[T], position *geom.Vec3[T], remainder *geom.Vec3[T], col body.Collision[T]) bool
}
