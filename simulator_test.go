package hop

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

func newFloor() *body.Solid[scalar.Float32] {
	floor := body.NewSolid[scalar.Float32]()
	floor.AddShape(body.NewAABoxShape(geom.AABox[scalar.Float32]{
		Mins: vec(-50, -50, -1),
		Maxs: vec(50, 50, 0),
	}))
	floor.SetInfiniteMass()
	floor.CoefficientOfGravity = scalar.Float32(0)
	floor.SetPosition(vec(0, 0, 0))
	return floor
}

func newBall(height float32) *body.Solid[scalar.Float32] {
	ball := body.NewSolid[scalar.Float32]()
	ball.AddShape(body.NewSphereShape(geom.Sphere[scalar.Float32]{Radius: scalar.Float32(0.5)}))
	ball.SetMass(scalar.Float32(1))
	ball.SetPosition(vec(0, 0, height))
	return ball
}

// step is one 1/60s tick expressed in milliseconds, matching Update's
// millisecond dt argument.
const step = 1000 / 60

func TestFreefallMatchesGravity(t *testing.T) {
	sim := New[scalar.Float32]()
	ball := newBall(100)
	ball.CoefficientOfRestitution = scalar.Float32(0)
	sim.AddSolid(ball)

	startZ := ball.Position.Z
	for i := 0; i < 10; i++ {
		sim.Update(step, -1, nil)
	}

	if !ball.Position.Z.Less(startZ) {
		t.Fatalf("ball did not fall: z=%v, want < %v", ball.Position.Z, startZ)
	}
	if !ball.Velocity.Z.Less(scalar.Float32(0)) {
		t.Fatalf("ball velocity is not downward: %v", ball.Velocity.Z)
	}
}

func TestBounceWithFullRestitutionRoughlyConservesSpeed(t *testing.T) {
	sim := New[scalar.Float32]()
	floor := newFloor()
	sim.AddSolid(floor)

	ball := newBall(3)
	ball.CoefficientOfRestitution = scalar.Float32(1)
	ball.RestitutionOverride = true
	sim.AddSolid(ball)

	maxSpeedBefore := scalar.Float32(0)
	bounced := false
	for i := 0; i < 300; i++ {
		vBefore := ball.Velocity.Z
		sim.Update(step, -1, nil)
		if vBefore.Abs() > maxSpeedBefore {
			maxSpeedBefore = vBefore.Abs()
		}
		if vBefore.Less(scalar.Float32(0)) && !ball.Velocity.Z.Less(scalar.Float32(0)) {
			bounced = true
			break
		}
	}

	if !bounced {
		t.Fatalf("ball never bounced off the floor")
	}
}

func TestInelasticRestEventuallyDeactivates(t *testing.T) {
	sim := New[scalar.Float32]()
	floor := newFloor()
	sim.AddSolid(floor)

	ball := newBall(0.6)
	ball.CoefficientOfRestitution = scalar.Float32(0)
	ball.RestitutionOverride = true
	sim.AddSolid(ball)

	for i := 0; i < 600 && ball.Active(); i++ {
		sim.Update(step, -1, nil)
	}

	if ball.Active() {
		t.Fatalf("ball never deactivated after settling on the floor")
	}
}

func TestScopeFiltersUpdatedSolids(t *testing.T) {
	sim := New[scalar.Float32]()
	ball := newBall(10)
	ball.Scope = 1 << 2
	sim.AddSolid(ball)

	startZ := ball.Position.Z
	sim.Update(step, 1<<5, nil)

	if !ball.Position.Z.Equal(startZ) {
		t.Fatalf("solid moved despite scope mismatch: z=%v, want %v", ball.Position.Z, startZ)
	}

	sim.Update(step, 1<<2, nil)
	if ball.Position.Z.Equal(startZ) {
		t.Fatalf("solid did not move once scope matched")
	}
}

type recordingListener struct {
	collisions []body.Collision[scalar.Float32]
}

func (r *recordingListener) OnCollision(c body.Collision[scalar.Float32]) {
	r.collisions = append(r.collisions, c)
}

func TestCollisionIsReportedToBothListeners(t *testing.T) {
	sim := New[scalar.Float32]()

	floor := newFloor()
	floorListener := &recordingListener{}
	floor.Listener = floorListener
	floor.CollisionScope = 1
	floor.CollideWithScope = -1
	sim.AddSolid(floor)

	ball := newBall(0.6)
	ballListener := &recordingListener{}
	ball.Listener = ballListener
	ball.CollisionScope = 1
	ball.CollideWithScope = -1
	sim.AddSolid(ball)

	for i := 0; i < 60; i++ {
		sim.Update(step, -1|ScopeReportCollisions, nil)
	}

	if len(ballListener.collisions) == 0 {
		t.Fatalf("the falling ball's listener never saw a collision")
	}
	if len(floorListener.collisions) == 0 {
		t.Fatalf("the floor's listener never saw a collision")
	}
}
