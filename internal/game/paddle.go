package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tomz197/arpong/internal/scene"
)

// Paddle is one of the two paddles. FacingZ is +1 for the player end
// (+Z) and -1 for the AI end (-Z); the collision face is the side
// turned toward the table center.
type Paddle struct {
	Position            mgl64.Vec3
	HalfW, HalfH, HalfD float64
	FacingZ             float64

	flashTimer float64
	baseColor  scene.Color
	node       *scene.Node
}

func newPaddle(sc scene.Scene, facingZ float64, c scene.Color) *Paddle {
	p := &Paddle{
		Position:  mgl64.Vec3{0, TableHeight + PaddleHeight/2, facingZ * PaddleZ},
		HalfW:     PaddleWidth / 2,
		HalfH:     PaddleHeight / 2,
		HalfD:     PaddleDepth / 2,
		FacingZ:   facingZ,
		baseColor: c,
	}
	p.node = sc.AddObject(scene.NewBox(p.Position, PaddleWidth, PaddleHeight, PaddleDepth, c))
	return p
}

// FaceZ returns the Z of the collision face plane.
func (p *Paddle) FaceZ() float64 {
	return p.Position[2] - p.FacingZ*p.HalfD
}

// Clamp keeps the paddle inside the table's legal volume.
func (p *Paddle) Clamp() {
	p.Position[0] = math.Max(-TableWidth/2+p.HalfW, math.Min(TableWidth/2-p.HalfW, p.Position[0]))
	p.Position[1] = math.Max(TableHeight+p.HalfH, math.Min(TableHeight+PlayAreaHeight-p.HalfH, p.Position[1]))
}

// Flash brightens the paddle for a short window after a hit.
// The countdown runs inside update, not on a wall-clock timer.
func (p *Paddle) Flash() {
	p.flashTimer = PaddleFlashDuration
}

func (p *Paddle) update(dt float64) {
	if p.flashTimer > 0 {
		p.flashTimer -= dt
		boost := 1 + p.flashTimer/PaddleFlashDuration
		p.node.Color = scene.Color{
			R: math.Min(1, p.baseColor.R*boost),
			G: math.Min(1, p.baseColor.G*boost),
			B: math.Min(1, p.baseColor.B*boost),
		}
		if p.flashTimer <= 0 {
			p.node.Color = p.baseColor
		}
	}
	p.node.Position = p.Position
}

func (p *Paddle) dispose(sc scene.Scene) {
	sc.RemoveObject(p.node)
}
