package game

// Collision resolution for the one table geometry this game has:
// axis-aligned side walls, the floor/ceiling pair bounding the play
// area, and the two paddle face planes.

// resolveWalls clamps the ball into the table volume and reflects the
// corresponding velocity component. X bounces are exact; Y bounces
// lose energy through GroundDamping.
func (g *Game) resolveWalls() {
	b := g.ball

	limX := TableWidth/2 - b.Radius
	if b.Position[0] > limX {
		b.Position[0] = limX
		b.Velocity[0] = -b.Velocity[0]
		g.wallHit()
	} else if b.Position[0] < -limX {
		b.Position[0] = -limX
		b.Velocity[0] = -b.Velocity[0]
		g.wallHit()
	}

	lowY := TableHeight + b.Radius
	highY := TableHeight + PlayAreaHeight - b.Radius
	if b.Position[1] < lowY {
		b.Position[1] = lowY
		b.Velocity[1] = -b.Velocity[1] * GroundDamping
		g.wallHit()
	} else if b.Position[1] > highY {
		b.Position[1] = highY
		b.Velocity[1] = -b.Velocity[1] * GroundDamping
		g.wallHit()
	}
}

// resolvePaddles checks both paddle faces. At most one can be crossed
// in a single tick.
func (g *Game) resolvePaddles() {
	if g.checkPaddle(g.player) {
		return
	}
	g.checkPaddle(g.ai)
}

// checkPaddle runs the two-sample crossing test against p's face plane
// and applies the full response on a hit. The contact plane sits one
// ball radius in front of the face, so comparing the ball center to it
// is exact; sampling previous and current Z prevents tunnelling
// through the thin paddle at high speed.
func (g *Game) checkPaddle(p *Paddle) bool {
	b := g.ball
	contactZ := p.FaceZ() - p.FacingZ*b.Radius

	var crossed bool
	if p.FacingZ > 0 {
		crossed = b.prevZ <= contactZ && b.Position[2] >= contactZ
	} else {
		crossed = b.prevZ >= contactZ && b.Position[2] <= contactZ
	}
	if !crossed {
		return false
	}

	dx := b.Position[0] - p.Position[0]
	dy := b.Position[1] - p.Position[1]
	if dx < -p.HalfW || dx > p.HalfW || dy < -p.HalfH || dy > p.HalfH {
		return false
	}

	// Reflect and amplify Z, deflect X/Y by where the face was struck,
	// then renormalize to the session ball speed. The amplification is
	// cancelled by the renormalization; only the direction change
	// survives. Ball speed grows with game level instead.
	offX := clampUnit(dx / p.HalfW)
	offY := clampUnit(dy / p.HalfH)
	b.Velocity[2] = -b.Velocity[2] * HitAcceleration
	b.Velocity[0] += offX * DeflectStrength
	b.Velocity[1] += offY * DeflectStrength
	b.SetSpeed(g.ballSpeed)

	// Snap flush against the face so the next tick cannot re-trigger
	// the same crossing.
	b.Position[2] = contactZ

	p.Flash()
	g.particles.Emit(b.Position, p.baseColor, paddleBurstCount, paddleBurstSpeed)
	g.playSound(SoundPaddle)
	g.debugf("paddle hit: facing=%+.0f offset=(%.2f, %.2f) speed=%.3f", p.FacingZ, offX, offY, b.Speed())
	return true
}

// wallHit emits the shared wall-bounce effect.
func (g *Game) wallHit() {
	g.particles.Emit(g.ball.Position, wallBurstColor, wallBurstCount, wallBurstSpeed)
	g.playSound(SoundWall)
}
