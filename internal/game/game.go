// Package game implements the table-game simulation core: ball physics
// and collision response, scoring, the AI opponent, and the serve/round
// state machine. The package owns no rendering or audio of its own; it
// mutates scene nodes through the narrow scene contract and signals
// discrete named sound events to an optional sink.
package game

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/arpong/internal/effects"
	"github.com/tomz197/arpong/internal/scene"
)

// Sound is a discrete named game event for the audio collaborator.
type Sound int

const (
	SoundPaddle Sound = iota
	SoundWall
	SoundScore
	SoundWin
)

// String returns the event name.
func (s Sound) String() string {
	switch s {
	case SoundPaddle:
		return "paddle"
	case SoundWall:
		return "wall"
	case SoundScore:
		return "score"
	case SoundWin:
		return "win"
	default:
		return "unknown"
	}
}

// AudioSink plays named game events. Playback failure never blocks
// gameplay; errors are reported to the diagnostic channel and dropped.
type AudioSink interface {
	Play(s Sound) error
}

// ScoreDisplay is a write-only numeric display mirror.
type ScoreDisplay interface {
	SetScore(score int)
}

// Phase is the current state of the serve/rally cycle.
type Phase int

const (
	PhaseIdle      Phase = iota // Before Initialize or after Dispose
	PhaseServing                // Ball centered, launch countdown running
	PhaseRallying               // Physics, collisions, scoring and AI active
	PhaseRoundOver              // Celebration and reset countdown running
)

// Options configures a Game. Scene is required; everything else is
// optional.
type Options struct {
	Scene scene.Scene
	Audio AudioSink

	// Score mirrors, updated on every change. Nil displays are skipped.
	PlayerDisplay ScoreDisplay
	AIDisplay     ScoreDisplay

	// WinningScore ends a round when either side reaches it.
	// Zero means DefaultWinningScore.
	WinningScore int

	// Rand drives serve directions and AI jitter. Nil means a
	// time-seeded source; tests inject a fixed seed.
	Rand *rand.Rand

	// Debugf receives internal simulation trace logs for callers that
	// need deep diagnostics. Never alters control flow.
	Debugf func(format string, args ...any)
}

// Game owns the full simulation state: one ball, two paddles, the
// particle pool, the score indicators and the round bookkeeping. All
// mutation happens on the single per-frame update path.
type Game struct {
	sc            scene.Scene
	audio         AudioSink
	playerDisplay ScoreDisplay
	aiDisplay     ScoreDisplay
	rng           *rand.Rand
	debugf        func(format string, args ...any)

	phase      Phase
	serveTimer float64

	level        int
	ballSpeed    float64
	winningScore int

	ball   *Ball
	player *Paddle
	ai     *Paddle

	playerScore int
	aiScore     int

	table      *scene.Node
	particles  *effects.Pool
	indicators *effects.Indicators
	trail      *effects.Trail // Owned reference, never discovered by scanning

	celebrationLeft  int
	celebrationTimer float64
	roundResetTimer  float64

	updateCB    *scene.UpdateHandle
	initialized bool
	disposed    bool
}

// Effect colors and burst tuning.
var (
	tableColor     = scene.Color{R: 0.05, G: 0.35, B: 0.16}
	playerColor    = scene.Color{R: 0.25, G: 0.55, B: 0.95}
	aiColor        = scene.Color{R: 0.95, G: 0.35, B: 0.3}
	wallBurstColor = scene.Color{R: 0.8, G: 0.8, B: 0.5}
	winBurstColor  = scene.Color{R: 1, G: 0.85, B: 0.2}
)

const (
	paddleBurstCount = 16
	paddleBurstSpeed = 0.4
	wallBurstCount   = 8
	wallBurstSpeed   = 0.25
	scoreBurstCount  = 24
	scoreBurstSpeed  = 0.5
	winBurstCount    = 28
	winBurstSpeed    = 0.6
)

// New creates a game bound to the given collaborators. Call Initialize
// before the first Update.
func New(opts Options) *Game {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	winning := opts.WinningScore
	if winning <= 0 {
		winning = DefaultWinningScore
	}
	debugf := opts.Debugf
	if debugf == nil {
		debugf = func(string, ...any) {}
	}
	return &Game{
		sc:            opts.Scene,
		audio:         opts.Audio,
		playerDisplay: opts.PlayerDisplay,
		aiDisplay:     opts.AIDisplay,
		rng:           rng,
		debugf:        debugf,
		winningScore:  winning,
		ballSpeed:     ballSpeedForLevel(0),
	}
}

// Initialize builds all game entities, registers the per-frame update
// callback with the scene, resets scores and starts the first serve.
// A game can be initialized at most once; re-use requires a new
// instance.
func (g *Game) Initialize() error {
	if g.disposed {
		return errors.New("game: instance disposed")
	}
	if g.initialized {
		return errors.New("game: already initialized")
	}

	g.table = g.sc.CreateHorizontalPlane(TableWidth, TableDepth, tableColor, TableHeight)
	g.ball = newBall(g.sc)
	g.player = newPaddle(g.sc, +1, playerColor)
	g.ai = newPaddle(g.sc, -1, aiColor)
	g.particles = effects.NewPool(g.sc, g.rng)
	g.indicators = effects.NewIndicators(g.sc)
	g.trail = effects.NewTrail(g.sc)

	g.playerScore = 0
	g.aiScore = 0
	g.pushScores()

	g.serve(FirstServeDelay)
	g.updateCB = g.sc.AddUpdateCallback(g.Update)
	g.initialized = true
	g.debugf("initialized: winningScore=%d ballSpeed=%.2f", g.winningScore, g.ballSpeed)
	return nil
}

// Update advances the simulation by dt seconds. The order within a
// tick is fixed: physics, collisions, scoring, AI, then effects.
// dt comes straight from the host render loop and is not clamped here.
func (g *Game) Update(dt float64) {
	if !g.initialized || g.disposed {
		return
	}

	switch g.phase {
	case PhaseServing:
		g.serveTimer -= dt
		if g.serveTimer <= 0 {
			g.launch()
		}
	case PhaseRallying:
		g.ball.Integrate(dt)
		g.resolveWalls()
		g.resolvePaddles()
		g.checkScoring()
		g.updateAI(dt)
	case PhaseRoundOver:
		g.updateRoundOver(dt)
	}

	g.player.update(dt)
	g.ai.update(dt)
	if g.phase == PhaseRallying {
		g.trail.Record(g.ball.Position)
	}
	g.trail.Update(dt)
	g.particles.Update(dt)
	g.indicators.Update(dt)
	g.ball.sync(dt)
}

// Dispose detaches every owned visual entity, releases the audio sink
// if it is closable, and deregisters the update callback. Safe to call
// more than once.
func (g *Game) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	g.phase = PhaseIdle

	if g.initialized {
		g.sc.RemoveUpdateCallback(g.updateCB)
		g.ball.dispose(g.sc)
		g.player.dispose(g.sc)
		g.ai.dispose(g.sc)
		g.particles.Dispose()
		g.indicators.Dispose()
		g.trail.Dispose()
		g.sc.RemoveObject(g.table)
	}

	if closer, ok := g.audio.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			g.debugf("audio close: %v", err)
		}
	}
}

// SetPlayerTarget drives the player paddle to pointer coordinates
// already projected into table-local space. The position is clamped to
// the legal volume.
func (g *Game) SetPlayerTarget(x, y float64) {
	if !g.initialized || g.disposed {
		return
	}
	g.player.Position[0] = x
	g.player.Position[1] = y
	g.player.Position[2] = PaddleZ
	g.player.Clamp()
}

// serve centers the ball and arms the launch countdown. A zero delay
// launches on the next tick.
func (g *Game) serve(delay float64) {
	g.ball.reset()
	g.phase = PhaseServing
	g.serveTimer = delay
}

// launch assigns a fresh randomized launch velocity: horizontal angle
// uniform over the full circle, vertical angle uniform within the
// serve cone, with the Z component floored so the ball always makes
// meaningful progress toward one paddle.
func (g *Game) launch() {
	yaw := g.rng.Float64() * 2 * math.Pi
	pitch := g.rng.Float64() * ServeConeAngle

	dir := mgl64.Vec3{
		math.Cos(pitch) * math.Cos(yaw),
		math.Sin(pitch),
		math.Cos(pitch) * math.Sin(yaw),
	}
	if math.Abs(dir[2]) < MinForwardFraction {
		sign := 1.0
		if dir[2] < 0 || (dir[2] == 0 && g.rng.Float64() < 0.5) {
			sign = -1
		}
		dir[2] = sign * MinForwardFraction
		// Rebalance X so the direction stays unit length.
		rest := 1 - dir[1]*dir[1] - dir[2]*dir[2]
		dir[0] = math.Copysign(math.Sqrt(math.Max(rest, 0)), dir[0])
	}

	g.ball.Velocity = dir.Mul(g.ballSpeed)
	g.phase = PhaseRallying
	g.debugf("launch: v=(%.2f, %.2f, %.2f)", g.ball.Velocity[0], g.ball.Velocity[1], g.ball.Velocity[2])
}

// checkScoring awards a point once the ball passes either table end
// beyond the paddle plane, not merely past the paddle.
func (g *Game) checkScoring() {
	limit := TableDepth/2 + g.ball.Radius
	switch {
	case g.ball.Position[2] > limit:
		g.awardPoint(false)
	case g.ball.Position[2] < -limit:
		g.awardPoint(true)
	}
}

// awardPoint increments exactly one counter, spawns the score effects,
// and either re-serves immediately or ends the round.
func (g *Game) awardPoint(toPlayer bool) {
	pos := g.ball.Position
	pos[1] = TableHeight + PlayAreaHeight/2

	var c scene.Color
	if toPlayer {
		g.playerScore++
		c = playerColor
	} else {
		g.aiScore++
		c = aiColor
	}
	g.pushScores()

	g.indicators.Spawn(pos, "+1", c)
	g.particles.Emit(pos, c, scoreBurstCount, scoreBurstSpeed)
	g.playSound(SoundScore)
	g.debugf("score: player=%d ai=%d", g.playerScore, g.aiScore)

	if g.playerScore >= g.winningScore || g.aiScore >= g.winningScore {
		g.beginRoundOver()
		return
	}
	g.serve(0)
}

// beginRoundOver freezes play and starts the celebration and reset
// countdowns. All sequencing advances inside Update.
func (g *Game) beginRoundOver() {
	g.ball.reset()
	g.phase = PhaseRoundOver
	g.celebrationLeft = CelebrationBursts
	g.celebrationTimer = 0
	g.roundResetTimer = RoundOverDelay
	g.playSound(SoundWin)
	g.debugf("round over: player=%d ai=%d level=%d", g.playerScore, g.aiScore, g.level)
}

// updateRoundOver plays the staggered celebratory bursts, then resets
// scores, bumps the level, recomputes ball speed, and re-serves with
// the initial-serve delay.
func (g *Game) updateRoundOver(dt float64) {
	if g.celebrationLeft > 0 {
		g.celebrationTimer -= dt
		if g.celebrationTimer <= 0 {
			pos := mgl64.Vec3{
				(g.rng.Float64() - 0.5) * TableWidth,
				TableHeight + PlayAreaHeight*(0.4+g.rng.Float64()*0.5),
				(g.rng.Float64() - 0.5) * TableDepth,
			}
			g.particles.Emit(pos, winBurstColor, winBurstCount, winBurstSpeed)
			g.celebrationLeft--
			g.celebrationTimer += CelebrationInterval
		}
	}

	g.roundResetTimer -= dt
	if g.roundResetTimer <= 0 {
		g.playerScore = 0
		g.aiScore = 0
		g.pushScores()
		g.level++
		g.ballSpeed = ballSpeedForLevel(g.level)
		g.serve(FirstServeDelay)
		g.debugf("new round: level=%d ballSpeed=%.2f difficulty=%.2f",
			g.level, g.ballSpeed, aiDifficulty(g.level))
	}
}

// pushScores mirrors both counters to the optional display sinks.
func (g *Game) pushScores() {
	if g.playerDisplay != nil {
		g.playerDisplay.SetScore(g.playerScore)
	}
	if g.aiDisplay != nil {
		g.aiDisplay.SetScore(g.aiScore)
	}
}

// playSound emits a named event to the audio sink, if any. Failures
// are logged to the diagnostic channel and otherwise ignored.
func (g *Game) playSound(s Sound) {
	if g.audio == nil {
		return
	}
	if err := g.audio.Play(s); err != nil {
		g.debugf("audio %q: %v", s, err)
	}
}

// Phase returns the current state-machine phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Scores returns the player and AI counters.
func (g *Game) Scores() (player, ai int) {
	return g.playerScore, g.aiScore
}

// Level returns the current game level.
func (g *Game) Level() int {
	return g.level
}

// BallSpeed returns the current target ball speed.
func (g *Game) BallSpeed() float64 {
	return g.ballSpeed
}
