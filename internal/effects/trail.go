package effects

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/arpong/internal/scene"
)

// Trail tuning.
const (
	TrailLength   = 14    // Max sample points
	TrailMinStep  = 0.015 // Min travel between recorded samples
	TrailLifetime = 0.35  // Seconds before a sample fades out
)

var trailColor = scene.Color{R: 0.6, G: 0.75, B: 0.9}

// Trail renders the ball's recent path as a fading point ribbon. It is
// a single persistent system, owned by the game through an explicit
// field rather than looked up from the scene.
type Trail struct {
	pos  [TrailLength]mgl64.Vec3
	age  [TrailLength]float64
	head int
	live int
	sc   scene.Scene
	node *scene.Node
}

// NewTrail creates the trail and attaches its node to sc.
func NewTrail(sc scene.Scene) *Trail {
	return &Trail{sc: sc, node: sc.AddObject(scene.NewPoints(TrailLength))}
}

// Record samples the current ball position. Samples closer than
// TrailMinStep to the previous one are skipped so slow travel does not
// bunch the ribbon up.
func (t *Trail) Record(p mgl64.Vec3) {
	if t.live > 0 {
		last := t.pos[(t.head+TrailLength-1)%TrailLength]
		if p.Sub(last).Len() < TrailMinStep {
			return
		}
	}
	t.pos[t.head] = p
	t.age[t.head] = 0
	t.head = (t.head + 1) % TrailLength
	if t.live < TrailLength {
		t.live++
	}
}

// Update ages every sample and rebuilds the node's point cloud with
// per-sample fade. Samples past TrailLifetime are dropped.
func (t *Trail) Update(dt float64) {
	points := t.node.Points[:0]
	colors := t.node.PointColors[:0]

	for i := 0; i < t.live; i++ {
		idx := (t.head + TrailLength - 1 - i) % TrailLength
		t.age[idx] += dt
		if t.age[idx] >= TrailLifetime {
			continue
		}
		fade := 1 - t.age[idx]/TrailLifetime
		points = append(points, t.pos[idx])
		colors = append(colors, trailColor.Scale(fade))
	}

	t.node.Points = points
	t.node.PointColors = colors
	t.node.Visible = len(points) > 0
}

// Dispose detaches the trail node from the scene.
func (t *Trail) Dispose() {
	t.live = 0
	t.sc.RemoveObject(t.node)
}
