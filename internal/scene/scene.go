// Package scene defines the contract between the game core and its
// rendering backend: a scene graph of visual nodes plus a per-frame
// update hook. The core only adds, removes and mutates nodes; how they
// end up on a screen is the backend's business.
package scene

import "github.com/go-gl/mathgl/mgl64"

// Color is an RGB triple with channels in [0, 1].
type Color struct {
	R, G, B float64
}

// Scale multiplies all channels by f.
func (c Color) Scale(f float64) Color {
	return Color{R: c.R * f, G: c.G * f, B: c.B * f}
}

// Brightness returns the average channel intensity.
func (c Color) Brightness() float64 {
	return (c.R + c.G + c.B) / 3
}

// NodeKind selects how a backend interprets a node's geometry fields.
type NodeKind int

const (
	KindPlane  NodeKind = iota // Horizontal slab: Width x Depth at Position.Y
	KindBox                    // Box: Width x Height x Depth around Position
	KindSphere                 // Sphere: Radius around Position
	KindPoints                 // Point cloud: Points/PointColors
	KindText                   // Floating label: Text at Position
)

// Node is a visual entity owned by whoever added it to a scene.
// Mutating fields between frames is the intended way to animate;
// backends read nodes only during their render pass.
type Node struct {
	Kind     NodeKind
	Position mgl64.Vec3
	Rotation mgl64.Quat

	Width, Height, Depth float64
	Radius               float64
	Scale                float64 // Uniform scale multiplier, 1 = natural size

	Color   Color
	Opacity float64 // 1 = opaque, 0 = invisible
	Visible bool

	Text        string       // KindText only
	Points      []mgl64.Vec3 // KindPoints only
	PointColors []Color      // Parallel to Points
}

// NewBox creates a visible box node centered at pos.
func NewBox(pos mgl64.Vec3, width, height, depth float64, c Color) *Node {
	return &Node{
		Kind:     KindBox,
		Position: pos,
		Rotation: mgl64.QuatIdent(),
		Width:    width,
		Height:   height,
		Depth:    depth,
		Scale:    1,
		Color:    c,
		Opacity:  1,
		Visible:  true,
	}
}

// NewSphere creates a visible sphere node centered at pos.
func NewSphere(pos mgl64.Vec3, radius float64, c Color) *Node {
	return &Node{
		Kind:     KindSphere,
		Position: pos,
		Rotation: mgl64.QuatIdent(),
		Radius:   radius,
		Scale:    1,
		Color:    c,
		Opacity:  1,
		Visible:  true,
	}
}

// NewPoints creates a point-cloud node with capacity for n points.
// The node starts invisible; emitters toggle visibility when active.
func NewPoints(n int) *Node {
	return &Node{
		Kind:        KindPoints,
		Rotation:    mgl64.QuatIdent(),
		Scale:       1,
		Opacity:     1,
		Points:      make([]mgl64.Vec3, n),
		PointColors: make([]Color, n),
	}
}

// NewText creates a visible floating label at pos.
func NewText(pos mgl64.Vec3, text string, c Color) *Node {
	return &Node{
		Kind:     KindText,
		Position: pos,
		Rotation: mgl64.QuatIdent(),
		Scale:    1,
		Color:    c,
		Opacity:  1,
		Visible:  true,
		Text:     text,
	}
}

// ScoreSink adapts a function to the write-only score display shape
// the game mirrors counters into.
type ScoreSink func(score int)

// SetScore calls the wrapped function.
func (f ScoreSink) SetScore(score int) {
	f(score)
}

// UpdateFunc is a per-frame hook. dt is the elapsed time in seconds
// since the previous frame, as measured by the backend.
type UpdateFunc func(dt float64)

// UpdateHandle identifies a registered update callback so it can be
// removed later. Handles compare by identity.
type UpdateHandle struct {
	fn UpdateFunc
}

// Call invokes the wrapped callback.
func (h *UpdateHandle) Call(dt float64) {
	if h != nil && h.fn != nil {
		h.fn(dt)
	}
}

// Scene is the narrow surface the game core consumes from a rendering
// backend. Implementations must tolerate RemoveObject and
// RemoveUpdateCallback for values they do not hold.
type Scene interface {
	// AddObject inserts a node into the scene graph and returns the
	// same node for later removal.
	AddObject(n *Node) *Node

	// RemoveObject detaches a previously added node. Unknown nodes are
	// ignored.
	RemoveObject(n *Node)

	// AddUpdateCallback registers fn to run once per rendered frame
	// and returns a handle for deregistration.
	AddUpdateCallback(fn UpdateFunc) *UpdateHandle

	// RemoveUpdateCallback deregisters a previously returned handle.
	// Unknown handles are ignored.
	RemoveUpdateCallback(h *UpdateHandle)

	// CreateHorizontalPlane adds a flat width x depth surface at the
	// given height and returns its node.
	CreateHorizontalPlane(width, depth float64, c Color, height float64) *Node
}
