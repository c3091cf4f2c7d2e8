// Package effects implements the short-lived visuals the game emits on
// collisions, scores and wins: a fixed pool of particle burst systems
// and floating score indicators. Everything here is driven by the same
// per-tick update path as the rest of the simulation.
package effects

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/arpong/internal/scene"
)

// Particle pool sizing. The pool never grows; emissions beyond capacity
// are dropped, which bounds memory and per-frame work under load.
const (
	PoolSize           = 10
	ParticlesPerSystem = 32
	ParticleLifetime   = 0.8 // Seconds
	ParticleGravity    = 0.5 // Downward velocity decay per second
)

// System is one pooled burst emitter. Particle positions and colors
// live on the scene node so the backend renders them directly; the
// velocities and fade state stay here.
type System struct {
	active   bool
	elapsed  float64
	lifetime float64
	count    int
	vel      [ParticlesPerSystem]mgl64.Vec3
	base     [ParticlesPerSystem]scene.Color
	node     *scene.Node
}

// Active reports whether the system is currently animating a burst.
func (s *System) Active() bool {
	return s.active
}

func (s *System) start(origin mgl64.Vec3, c scene.Color, count int, speed float64, rng *rand.Rand) {
	if count > ParticlesPerSystem {
		count = ParticlesPerSystem
	}
	s.active = true
	s.elapsed = 0
	s.lifetime = ParticleLifetime
	s.count = count

	s.node.Points = s.node.Points[:count]
	s.node.PointColors = s.node.PointColors[:count]
	for i := 0; i < count; i++ {
		// Uniform direction over the sphere, magnitude up to speed
		theta := rng.Float64() * 2 * math.Pi
		phi := math.Acos(2*rng.Float64() - 1)
		mag := rng.Float64() * speed

		sinPhi := math.Sin(phi)
		s.vel[i] = mgl64.Vec3{
			math.Cos(theta) * sinPhi * mag,
			math.Cos(phi) * mag,
			math.Sin(theta) * sinPhi * mag,
		}
		s.base[i] = c
		s.node.Points[i] = origin
		s.node.PointColors[i] = c
	}
	s.node.Visible = true
}

func (s *System) update(dt float64) {
	s.elapsed += dt
	if s.elapsed >= s.lifetime {
		// Slot returns to the pool; positions and velocities are
		// overwritten on next reuse.
		s.active = false
		s.node.Visible = false
		return
	}

	fade := 1 - s.elapsed/s.lifetime
	for i := 0; i < s.count; i++ {
		s.vel[i][1] -= ParticleGravity * dt
		s.node.Points[i] = s.node.Points[i].Add(s.vel[i].Mul(dt))
		s.node.PointColors[i] = s.base[i].Scale(fade)
	}
}

// Pool is a fixed-size set of particle systems sharing one scene.
type Pool struct {
	systems [PoolSize]System
	sc      scene.Scene
	rng     *rand.Rand
}

// NewPool creates the pool and registers one point-cloud node per slot
// with the scene. Nodes stay attached for the life of the pool and are
// toggled visible while their slot is active.
func NewPool(sc scene.Scene, rng *rand.Rand) *Pool {
	p := &Pool{sc: sc, rng: rng}
	for i := range p.systems {
		p.systems[i].node = sc.AddObject(scene.NewPoints(ParticlesPerSystem))
	}
	return p
}

// Emit borrows a free system and starts a burst of count particles at
// origin with velocities up to speed. Returns false when every slot is
// busy; the burst is silently dropped in that case.
func (p *Pool) Emit(origin mgl64.Vec3, c scene.Color, count int, speed float64) bool {
	for i := range p.systems {
		if p.systems[i].active {
			continue
		}
		p.systems[i].start(origin, c, count, speed, p.rng)
		return true
	}
	return false
}

// Update advances every active system by dt seconds.
func (p *Pool) Update(dt float64) {
	for i := range p.systems {
		if p.systems[i].active {
			p.systems[i].update(dt)
		}
	}
}

// ActiveCount returns the number of systems currently animating.
func (p *Pool) ActiveCount() int {
	n := 0
	for i := range p.systems {
		if p.systems[i].active {
			n++
		}
	}
	return n
}

// Dispose detaches all pool nodes from the scene.
func (p *Pool) Dispose() {
	for i := range p.systems {
		p.systems[i].active = false
		p.sc.RemoveObject(p.systems[i].node)
	}
}
