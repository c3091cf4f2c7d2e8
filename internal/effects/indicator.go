package effects

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/arpong/internal/scene"
)

// Score indicator tuning.
const (
	IndicatorLifetime  = 1.2  // Seconds
	IndicatorRiseSpeed = 0.15 // Meters per second upward drift
	IndicatorShrink    = 0.25 // Fraction of scale lost over the full lifetime
)

// Indicator is a floating score label. Unlike particle systems,
// indicators are not pooled: one is allocated per score event and its
// node is destroyed on expiry.
type Indicator struct {
	node    *scene.Node
	elapsed float64
}

// Indicators owns the dynamic list of live indicators for one game.
type Indicators struct {
	sc   scene.Scene
	live []*Indicator
}

// NewIndicators creates an empty indicator list bound to sc.
func NewIndicators(sc scene.Scene) *Indicators {
	return &Indicators{sc: sc}
}

// Spawn creates an indicator showing text at pos.
func (ix *Indicators) Spawn(pos mgl64.Vec3, text string, c scene.Color) {
	n := ix.sc.AddObject(scene.NewText(pos, text, c))
	ix.live = append(ix.live, &Indicator{node: n})
}

// Update floats every indicator upward, fades it with a quadratic
// opacity curve, shrinks it slightly, and detaches expired ones.
func (ix *Indicators) Update(dt float64) {
	kept := ix.live[:0]
	for _, ind := range ix.live {
		ind.elapsed += dt
		if ind.elapsed >= IndicatorLifetime {
			ix.sc.RemoveObject(ind.node)
			continue
		}
		t := ind.elapsed / IndicatorLifetime
		ind.node.Position[1] += IndicatorRiseSpeed * dt
		ind.node.Opacity = (1 - t) * (1 - t)
		ind.node.Scale = 1 - IndicatorShrink*t
		kept = append(kept, ind)
	}
	ix.live = kept
}

// Count returns the number of live indicators.
func (ix *Indicators) Count() int {
	return len(ix.live)
}

// Dispose detaches all live indicators.
func (ix *Indicators) Dispose() {
	for _, ind := range ix.live {
		ix.sc.RemoveObject(ind.node)
	}
	ix.live = ix.live[:0]
}
