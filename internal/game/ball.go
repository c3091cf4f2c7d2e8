package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/arpong/internal/scene"
)

// Ball is the single game ball. It is created once per game and
// repositioned on every serve, never recreated.
type Ball struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Radius   float64

	prevZ float64 // Z at the previous tick, for the paddle crossing test
	node  *scene.Node
}

func newBall(sc scene.Scene) *Ball {
	b := &Ball{
		Position: mgl64.Vec3{0, TableHeight + BallRadius, 0},
		Radius:   BallRadius,
	}
	b.prevZ = b.Position[2]
	b.node = sc.AddObject(scene.NewSphere(b.Position, b.Radius, scene.Color{R: 1, G: 1, B: 1}))
	return b
}

// Integrate advances the ball one tick of semi-implicit Euler:
// gravity into velocity first, then velocity into position.
func (b *Ball) Integrate(dt float64) {
	b.prevZ = b.Position[2]
	b.Velocity[1] -= Gravity * dt
	b.Position = b.Position.Add(b.Velocity.Mul(dt))
}

// Speed returns the velocity magnitude.
func (b *Ball) Speed() float64 {
	return b.Velocity.Len()
}

// SetSpeed rescales the velocity to the target magnitude, preserving
// direction. A zero velocity is left untouched.
func (b *Ball) SetSpeed(target float64) {
	speed := b.Velocity.Len()
	if speed == 0 {
		return
	}
	b.Velocity = b.Velocity.Mul(target / speed)
}

// reset centers the ball on the table surface and stops it.
func (b *Ball) reset() {
	b.Position = mgl64.Vec3{0, TableHeight + BallRadius, 0}
	b.prevZ = b.Position[2]
	b.Velocity = mgl64.Vec3{}
}

// sync mirrors simulation state onto the scene node and applies the
// cosmetic spin, derived from velocity rather than simulated.
func (b *Ball) sync(dt float64) {
	b.node.Position = b.Position

	speed := b.Velocity.Len()
	if speed < 1e-9 {
		return
	}
	axis := mgl64.Vec3{0, 1, 0}.Cross(b.Velocity.Mul(1 / speed))
	if axis.Len() < 1e-9 {
		return
	}
	angle := speed / b.Radius * dt
	b.node.Rotation = mgl64.QuatRotate(angle, axis.Normalize()).Mul(b.node.Rotation)
}

func (b *Ball) dispose(sc scene.Scene) {
	sc.RemoveObject(b.node)
}

// clampUnit limits v to [-1, 1].
func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
