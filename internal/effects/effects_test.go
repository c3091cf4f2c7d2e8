package effects

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/arpong/internal/scene"
)

type stubScene struct {
	nodes []*scene.Node
}

func (s *stubScene) AddObject(n *scene.Node) *scene.Node {
	s.nodes = append(s.nodes, n)
	return n
}

func (s *stubScene) RemoveObject(n *scene.Node) {
	for i, o := range s.nodes {
		if o == n {
			s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
			return
		}
	}
}

func (s *stubScene) AddUpdateCallback(fn scene.UpdateFunc) *scene.UpdateHandle {
	return &scene.UpdateHandle{}
}

func (s *stubScene) RemoveUpdateCallback(h *scene.UpdateHandle) {}

func (s *stubScene) CreateHorizontalPlane(width, depth float64, c scene.Color, height float64) *scene.Node {
	return s.AddObject(&scene.Node{Kind: scene.KindPlane, Width: width, Depth: depth})
}

const dt = 1.0 / 60

func TestPoolNeverExceedsCapacity(t *testing.T) {
	sc := &stubScene{}
	p := NewPool(sc, rand.New(rand.NewSource(7)))

	if len(sc.nodes) != PoolSize {
		t.Fatalf("pool registered %d nodes, want %d", len(sc.nodes), PoolSize)
	}

	origin := mgl64.Vec3{0, 0.1, 0}
	c := scene.Color{R: 1, G: 0.5, B: 0.2}
	for i := 0; i < PoolSize; i++ {
		if !p.Emit(origin, c, 16, 0.4) {
			t.Fatalf("emit %d rejected with free slots remaining", i)
		}
	}
	if p.ActiveCount() != PoolSize {
		t.Fatalf("active = %d, want %d", p.ActiveCount(), PoolSize)
	}

	// Saturated: the next burst is dropped, not queued or allocated.
	if p.Emit(origin, c, 16, 0.4) {
		t.Fatal("emit succeeded on a saturated pool")
	}
	if p.ActiveCount() != PoolSize {
		t.Fatalf("active after drop = %d, want %d", p.ActiveCount(), PoolSize)
	}
	if len(sc.nodes) != PoolSize {
		t.Fatalf("scene nodes after drop = %d, want %d", len(sc.nodes), PoolSize)
	}
}

func TestPoolSlotsReturnAfterLifetime(t *testing.T) {
	sc := &stubScene{}
	p := NewPool(sc, rand.New(rand.NewSource(7)))

	p.Emit(mgl64.Vec3{}, scene.Color{R: 1}, 8, 0.3)
	for i := 0; i < int(ParticleLifetime/dt)+2; i++ {
		p.Update(dt)
	}
	if p.ActiveCount() != 0 {
		t.Fatalf("active after lifetime = %d, want 0", p.ActiveCount())
	}

	// The freed slot is reusable.
	if !p.Emit(mgl64.Vec3{}, scene.Color{R: 1}, 8, 0.3) {
		t.Fatal("emit rejected after slot expiry")
	}
}

func TestParticleColorsFadeLinearly(t *testing.T) {
	sc := &stubScene{}
	p := NewPool(sc, rand.New(rand.NewSource(7)))

	base := scene.Color{R: 1, G: 0.8, B: 0.4}
	p.Emit(mgl64.Vec3{}, base, 4, 0.3)

	// Advance to half life in one step.
	p.Update(ParticleLifetime / 2)

	n := sc.nodes[0]
	want := base.Scale(0.5)
	for i, got := range n.PointColors {
		if math.Abs(got.R-want.R) > 1e-9 || math.Abs(got.G-want.G) > 1e-9 || math.Abs(got.B-want.B) > 1e-9 {
			t.Fatalf("particle %d color = %+v at half life, want %+v", i, got, want)
		}
	}
}

func TestOversizedBurstIsTruncated(t *testing.T) {
	sc := &stubScene{}
	p := NewPool(sc, rand.New(rand.NewSource(7)))

	p.Emit(mgl64.Vec3{}, scene.Color{R: 1}, ParticlesPerSystem*3, 0.3)
	if got := len(sc.nodes[0].Points); got != ParticlesPerSystem {
		t.Fatalf("burst rendered %d points, want truncated to %d", got, ParticlesPerSystem)
	}
}

func TestIndicatorRisesFadesAndExpires(t *testing.T) {
	sc := &stubScene{}
	ix := NewIndicators(sc)

	startY := 0.2
	ix.Spawn(mgl64.Vec3{0, startY, 0}, "+1", scene.Color{R: 1})
	if ix.Count() != 1 {
		t.Fatalf("count after spawn = %d, want 1", ix.Count())
	}
	n := sc.nodes[0]

	ix.Update(IndicatorLifetime / 2)
	if n.Position[1] <= startY {
		t.Fatalf("indicator y = %f, want above %f", n.Position[1], startY)
	}
	if want := 0.25; math.Abs(n.Opacity-want) > 1e-9 {
		t.Fatalf("opacity at half life = %f, want %f", n.Opacity, want)
	}
	if want := 1 - IndicatorShrink/2; math.Abs(n.Scale-want) > 1e-9 {
		t.Fatalf("scale at half life = %f, want %f", n.Scale, want)
	}

	ix.Update(IndicatorLifetime)
	if ix.Count() != 0 {
		t.Fatalf("count after lifetime = %d, want 0", ix.Count())
	}
	if len(sc.nodes) != 0 {
		t.Fatalf("scene nodes after expiry = %d, want 0", len(sc.nodes))
	}
}

func TestTrailSkipsTinySteps(t *testing.T) {
	sc := &stubScene{}
	tr := NewTrail(sc)

	tr.Record(mgl64.Vec3{0, 0, 0})
	tr.Record(mgl64.Vec3{TrailMinStep / 2, 0, 0}) // Below the step threshold
	tr.Record(mgl64.Vec3{TrailMinStep * 2, 0, 0})
	tr.Update(dt)

	if got := len(sc.nodes[0].Points); got != 2 {
		t.Fatalf("trail points = %d, want 2 (tiny step skipped)", got)
	}
}

func TestTrailLengthIsBoundedAndFades(t *testing.T) {
	sc := &stubScene{}
	tr := NewTrail(sc)

	for i := 0; i < TrailLength*3; i++ {
		tr.Record(mgl64.Vec3{float64(i) * TrailMinStep * 2, 0, 0})
	}
	tr.Update(dt)

	n := sc.nodes[0]
	if len(n.Points) > TrailLength {
		t.Fatalf("trail points = %d, want at most %d", len(n.Points), TrailLength)
	}
	if !n.Visible {
		t.Fatal("trail node invisible with live samples")
	}

	// Everything fades out once recording stops.
	tr.Update(TrailLifetime + dt)
	if len(n.Points) != 0 {
		t.Fatalf("trail points after fade = %d, want 0", len(n.Points))
	}
	if n.Visible {
		t.Fatal("trail node still visible after fade")
	}
}
