package game

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestSideWallReflectsExactly(t *testing.T) {
	g, _ := newTestGame(t, Options{})
	advanceToRally(t, g)

	lim := TableWidth/2 - BallRadius
	g.ball.Position = mgl64.Vec3{lim + 0.01, 0.1, 0}
	g.ball.Velocity = mgl64.Vec3{0.3, 0, 0.4}
	g.resolveWalls()

	if x := g.ball.Position[0]; x != lim {
		t.Fatalf("ball x = %f, want clamped to %f", x, lim)
	}
	if vx := g.ball.Velocity[0]; vx != -0.3 {
		t.Fatalf("vx after wall = %f, want -0.3 (no damping)", vx)
	}
	if vz := g.ball.Velocity[2]; vz != 0.4 {
		t.Fatalf("vz after wall = %f, want unchanged 0.4", vz)
	}
}

func TestFloorBounceIsDamped(t *testing.T) {
	g, _ := newTestGame(t, Options{})
	advanceToRally(t, g)

	floor := TableHeight + BallRadius
	g.ball.Position = mgl64.Vec3{0, floor - 0.01, 0}
	g.ball.Velocity = mgl64.Vec3{0, -0.4, 0.2}
	g.resolveWalls()

	if y := g.ball.Position[1]; y != floor {
		t.Fatalf("ball y = %f, want clamped to %f", y, floor)
	}
	want := 0.4 * GroundDamping
	if vy := g.ball.Velocity[1]; math.Abs(vy-want) > 1e-12 {
		t.Fatalf("vy after floor = %f, want %f", vy, want)
	}
}

func TestPaddleHitReflectsSnapsAndRenormalizes(t *testing.T) {
	g, _ := newTestGame(t, Options{})
	advanceToRally(t, g)

	g.player.Position = mgl64.Vec3{0, 0.05, PaddleZ}
	contactZ := g.player.FaceZ() - BallRadius

	g.ball.prevZ = contactZ - 0.02
	g.ball.Position = mgl64.Vec3{0.01, 0.04, contactZ + 0.01}
	g.ball.Velocity = mgl64.Vec3{0, 0, g.ballSpeed}
	g.resolvePaddles()

	if vz := g.ball.Velocity[2]; vz >= 0 {
		t.Fatalf("vz after hit = %f, want negative", vz)
	}
	if speed := g.ball.Velocity.Len(); math.Abs(speed-g.ballSpeed) > 1e-9 {
		t.Fatalf("speed after hit = %f, want renormalized to %f", speed, g.ballSpeed)
	}
	if z := g.ball.Position[2]; math.Abs(z-contactZ) > 1e-12 {
		t.Fatalf("ball z after hit = %f, want snapped to %f", z, contactZ)
	}
	// Expected snap point from the fixed geometry:
	// 0.55 - paddleDepth/2 - ballRadius = 0.52.
	if math.Abs(contactZ-0.52) > 1e-12 {
		t.Fatalf("contact plane = %f, want 0.52", contactZ)
	}
}

func TestPaddleDeflectionFollowsContactOffset(t *testing.T) {
	g, _ := newTestGame(t, Options{})
	advanceToRally(t, g)

	g.player.Position = mgl64.Vec3{0, 0.05, PaddleZ}
	contactZ := g.player.FaceZ() - BallRadius

	// Contact on the right half of the face deflects right.
	g.ball.prevZ = contactZ - 0.02
	g.ball.Position = mgl64.Vec3{0.05, 0.05, contactZ + 0.01}
	g.ball.Velocity = mgl64.Vec3{0, 0, g.ballSpeed}
	g.resolvePaddles()

	if vx := g.ball.Velocity[0]; vx <= 0 {
		t.Fatalf("vx after off-center hit = %f, want positive", vx)
	}
}

func TestFastBallDoesNotTunnelThroughPaddle(t *testing.T) {
	g, _ := newTestGame(t, Options{})
	advanceToRally(t, g)

	g.player.Position = mgl64.Vec3{0, 0.05, PaddleZ}

	// One tick of travel crosses the whole paddle region.
	g.ball.Position = mgl64.Vec3{0, 0.05, 0.4}
	g.ball.Velocity = mgl64.Vec3{0, 0, 18}
	playerBefore, aiBefore := g.Scores()

	g.Update(dt)

	player, ai := g.Scores()
	if player != playerBefore || ai != aiBefore {
		t.Fatalf("scores changed to (%d, %d): fast ball tunneled past the paddle", player, ai)
	}
	if vz := g.ball.Velocity[2]; vz >= 0 {
		t.Fatalf("vz after crossing tick = %f, want reflected negative", vz)
	}
}

func TestPaddleMissDoesNotReflect(t *testing.T) {
	g, _ := newTestGame(t, Options{})
	advanceToRally(t, g)

	g.player.Position = mgl64.Vec3{-0.3, 0.05, PaddleZ}
	contactZ := PaddleZ - PaddleDepth/2 - BallRadius

	// Ball crosses the plane far from the paddle face.
	g.ball.prevZ = contactZ - 0.02
	g.ball.Position = mgl64.Vec3{0.3, 0.05, contactZ + 0.01}
	g.ball.Velocity = mgl64.Vec3{0, 0, g.ballSpeed}
	g.resolvePaddles()

	if vz := g.ball.Velocity[2]; vz <= 0 {
		t.Fatalf("vz = %f, want unchanged positive (ball missed the paddle)", vz)
	}
}

// The ball never escapes the side walls, floor or ceiling over a long
// uninterrupted run, including serves and paddle hits.
func TestBallStaysWithinBounds(t *testing.T) {
	g, _ := newTestGame(t, Options{})
	advanceToRally(t, g)

	xLim := TableWidth/2 - BallRadius
	yMin := TableHeight + BallRadius
	yMax := TableHeight + PlayAreaHeight - BallRadius

	for i := 0; i < 3600; i++ {
		g.Update(dt)
		if g.Phase() != PhaseRallying {
			continue
		}
		p := g.ball.Position
		if math.Abs(p[0]) > xLim+1e-9 {
			t.Fatalf("tick %d: ball x = %f, outside ±%f", i, p[0], xLim)
		}
		if p[1] < yMin-1e-9 || p[1] > yMax+1e-9 {
			t.Fatalf("tick %d: ball y = %f, outside [%f, %f]", i, p[1], yMin, yMax)
		}
	}
}
