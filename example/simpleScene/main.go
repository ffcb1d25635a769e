package main

import (
	"fmt"

	"github.com/hopphysics/hop"
	"github.com/hopphysics/hop/body"
	"github.com/hopphysics/hop/geom"
	"github.com/hopphysics/hop/scalar"
)

func vec(x, y, z float32) geom.Vec3[scalar.Float32] {
	return geom.Vec3[scalar.Float32]{X: scalar.Float32(x), Y: scalar.Float32(y), Z: scalar.Float32(z)}
}

func main() {
	sim := hop.New[scalar.Float32]()

	floor := body.NewSolid[scalar.Float32]()
	floor.AddShape(body.NewAABoxShape(geom.AABox[scalar.Float32]{
		Mins: vec(-50, -50, -1),
		Maxs: vec(50, 50, 0),
	}))
	floor.SetInfiniteMass()
	floor.CoefficientOfGravity = scalar.Float32(0)
	floor.SetPosition(vec(0, 0, 0))
	sim.AddSolid(floor)

	ball := body.NewSolid[scalar.Float32]()
	ball.AddShape(body.NewSphereShape(geom.Sphere[scalar.Float32]{Radius: scalar.Float32(0.5)}))
	ball.SetMass(scalar.Float32(1))
	ball.CoefficientOfRestitution = scalar.Float32(0.6)
	ball.SetPosition(vec(0, 0, 5))
	sim.AddSolid(ball)

	const dt = 1000 / 60 // milliseconds per step
	for step := 0; step < 180; step++ {
		sim.Update(dt, -1, nil)
		if step%30 == 0 {
			p := ball.Position
			v := ball.Velocity
			fmt.Printf("step %3d: position=(%.3f, %.3f, %.3f) velocity=(%.3f, %.3f, %.3f)\n",
				step, p.X, p.Y, p.Z, v.X, v.Y, v.Z)
		}
	}
}
