package game

import "math"

// Game configuration constants.
// All tunable simulation parameters are centralized here for easy adjustment.
// Distances are meters, speeds are meters per second.

// Table geometry
const (
	TableWidth     = 1.0 // X extent
	TableDepth     = 1.2 // Z extent; paddle ends at +/- TableDepth/2
	TableHeight    = 0.0 // Y of the playing surface
	PlayAreaHeight = 0.4 // Vertical space the ball may occupy above the surface
)

// Ball
const (
	BallRadius        = 0.02
	BallSpeedBase     = 0.5
	BallSpeedPerLevel = 0.05
	BallSpeedMax      = 0.8
	Gravity           = 0.8  // Constant downward acceleration
	GroundDamping     = 0.85 // Energy retained on floor/ceiling bounce
)

// Paddles
const (
	PaddleWidth  = 0.15
	PaddleHeight = 0.1
	PaddleDepth  = 0.02
	PaddleZ      = 0.55 // Player face plane; AI mirrors at -PaddleZ
)

// Paddle collision response
const (
	HitAcceleration = 1.05 // Z amplification per paddle hit, pre-normalization
	DeflectStrength = 0.25 // X/Y impulse per unit of normalized hit offset
)

// Serving
const (
	FirstServeDelay    = 1.0            // Seconds, first serve of a session and after round reset
	ServeConeAngle     = 0.15 * math.Pi // Max vertical launch angle (~27 degrees)
	MinForwardFraction = 0.3            // |vz| floor as a fraction of ball speed
)

// Scoring and rounds
const (
	DefaultWinningScore = 5
	RoundOverDelay      = 3.0 // Seconds between win and round reset
	CelebrationBursts   = 5
	CelebrationInterval = 0.3 // Seconds between celebratory bursts
)

// AI opponent
const (
	AIDifficultyBase     = 0.4
	AIDifficultyPerLevel = 0.05
	AIDifficultyMax      = 0.9
	AITrackingGain       = 0.15 // Per-tick smoothing factor, scaled by difficulty
	AILookaheadTicks     = 60   // Prediction horizon in nominal 60 Hz ticks
	AIJitterChance       = 0.05 // Per-axis chance of a tracking error each tick
	AIJitterAmount       = 0.02 // Max magnitude of a single jitter offset
)

// Cosmetics
const (
	PaddleFlashDuration = 0.15 // Seconds a struck paddle stays brightened
)
