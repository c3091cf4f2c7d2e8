package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// updateAI advances the opponent paddle. The controller only reacts
// while the ball travels toward its end of the table; otherwise the
// paddle holds position.
func (g *Game) updateAI(dt float64) {
	b := g.ball
	if b.Velocity[2] >= 0 {
		return
	}

	// Linear extrapolation of the ball along its current velocity,
	// roughly one second ahead at a nominal 60 Hz tick.
	predicted := b.Position.Add(b.Velocity.Mul(dt * AILookaheadTicks))
	target := mgl64.Vec3{predicted[0], predicted[1], -PaddleZ}

	// Exponential smoothing toward the target; both tracking gain and
	// prediction quality scale with difficulty as the level climbs.
	gain := AITrackingGain * aiDifficulty(g.level)
	p := g.ai
	p.Position = p.Position.Add(target.Sub(p.Position).Mul(gain))

	// Occasional per-axis error keeps the opponent beatable.
	for axis := 0; axis < 2; axis++ {
		if g.rng.Float64() < AIJitterChance {
			p.Position[axis] += (g.rng.Float64()*2 - 1) * AIJitterAmount
		}
	}

	p.Clamp()
}

// aiDifficulty returns the level-scaled difficulty, clamped at the cap.
func aiDifficulty(level int) float64 {
	return math.Min(AIDifficultyBase+float64(level)*AIDifficultyPerLevel, AIDifficultyMax)
}

// ballSpeedForLevel returns the level-scaled ball speed, clamped at the cap.
func ballSpeedForLevel(level int) float64 {
	return math.Min(BallSpeedBase+float64(level)*BallSpeedPerLevel, BallSpeedMax)
}
