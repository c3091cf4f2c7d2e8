package scene

import (
	"fmt"
	"io"
	"time"

	"github.com/tomz197/arpong/internal/draw"
)

const targetFPS = 60
const targetFrameTime = time.Second / targetFPS

// viewMargin is the logical border around the table, in table units.
const viewMargin = 0.1

// TermScene renders the scene graph top-down onto a half-block canvas:
// world X maps to columns, world Z to rows, world Y is flattened.
// It drives all registered update callbacks at a fixed frame rate.
// All scene mutation is expected from the update path itself; the
// loop is single-threaded, like the simulation it hosts.
type TermScene struct {
	out      io.Writer
	sizeFunc draw.TermSizeFunc

	objects   []*Node
	callbacks []*UpdateHandle

	canvas *draw.Canvas
	cw     *draw.ChunkWriter

	viewW, viewH float64 // Logical extents covered by the canvas

	playerScore int
	aiScore     int
	footer      string

	running bool
}

// NewTermScene creates a scene rendering to out, with terminal
// dimensions supplied by sizeFunc (hosts over SSH track window-change
// events; local hosts query the tty).
func NewTermScene(out io.Writer, sizeFunc draw.TermSizeFunc) *TermScene {
	if sizeFunc == nil {
		sizeFunc = draw.DefaultTermSizeFunc
	}
	return &TermScene{
		out:      out,
		sizeFunc: sizeFunc,
		viewW:    1 + 2*viewMargin,
		viewH:    1 + 2*viewMargin,
		cw:       draw.NewChunkWriter(out, 0, 0),
	}
}

// AddObject inserts a node into the scene graph.
func (ts *TermScene) AddObject(n *Node) *Node {
	ts.objects = append(ts.objects, n)
	return n
}

// RemoveObject detaches a node. Unknown nodes are ignored.
func (ts *TermScene) RemoveObject(n *Node) {
	for i, o := range ts.objects {
		if o == n {
			ts.objects = append(ts.objects[:i], ts.objects[i+1:]...)
			return
		}
	}
}

// AddUpdateCallback registers a per-frame hook.
func (ts *TermScene) AddUpdateCallback(fn UpdateFunc) *UpdateHandle {
	h := &UpdateHandle{fn: fn}
	ts.callbacks = append(ts.callbacks, h)
	return h
}

// RemoveUpdateCallback deregisters a hook by handle identity.
// Unknown handles are ignored.
func (ts *TermScene) RemoveUpdateCallback(h *UpdateHandle) {
	for i, cb := range ts.callbacks {
		if cb == h {
			ts.callbacks = append(ts.callbacks[:i], ts.callbacks[i+1:]...)
			return
		}
	}
}

// CreateHorizontalPlane adds a flat surface node and sizes the view to
// fit it plus a margin.
func (ts *TermScene) CreateHorizontalPlane(width, depth float64, c Color, height float64) *Node {
	n := &Node{
		Kind:    KindPlane,
		Width:   width,
		Depth:   depth,
		Scale:   1,
		Color:   c,
		Opacity: 1,
		Visible: true,
	}
	n.Position[1] = height
	ts.viewW = width + 2*viewMargin
	ts.viewH = depth + 2*viewMargin
	ts.canvas = nil // Rebuild with the new logical extents
	return ts.AddObject(n)
}

var _ Scene = (*TermScene)(nil)

// PlayerSink returns a score mirror for the player counter.
func (ts *TermScene) PlayerSink() ScoreSink {
	return func(v int) { ts.playerScore = v }
}

// OpponentSink returns a score mirror for the AI counter.
func (ts *TermScene) OpponentSink() ScoreSink {
	return func(v int) { ts.aiScore = v }
}

// SetFooter sets the hint line rendered under the table.
func (ts *TermScene) SetFooter(s string) {
	ts.footer = s
}

// Stop ends the Run loop after the current frame.
func (ts *TermScene) Stop() {
	ts.running = false
}

// Run drives the frame loop: viewport upkeep, update callbacks in
// registration order, then a render pass, at a fixed target rate.
// Returns when Stop is called or the terminal goes away.
func (ts *TermScene) Run() error {
	draw.HideCursor(ts.out)
	defer draw.ShowCursor(ts.out)
	draw.ClearScreen(ts.out)

	ts.running = true
	lastTime := time.Now()

	for ts.running {
		frameStart := time.Now()
		dt := frameStart.Sub(lastTime).Seconds()
		lastTime = frameStart

		if err := ts.updateViewport(); err != nil {
			return err
		}

		// Snapshot so callbacks may deregister themselves mid-frame.
		for _, h := range append([]*UpdateHandle(nil), ts.callbacks...) {
			h.Call(dt)
		}

		if err := ts.render(); err != nil {
			return err
		}

		if elapsed := time.Since(frameStart); elapsed < targetFrameTime {
			time.Sleep(targetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(ts.out)
	return nil
}

// updateViewport sizes the canvas to the current terminal, preserving
// the table's aspect ratio and centering the render area.
func (ts *TermScene) updateViewport() error {
	termW, termH, err := ts.sizeFunc()
	if err != nil {
		return fmt.Errorf("scene: terminal size: %w", err)
	}

	// Reserve a row above for scores and one below for the footer.
	availCols := termW - 2
	availRows := termH - 2
	if availCols < 10 || availRows < 5 {
		return fmt.Errorf("scene: terminal too small (%dx%d)", termW, termH)
	}

	// Half blocks double the vertical pixel density.
	scale := float64(availCols) / ts.viewW
	if v := float64(availRows*2) / ts.viewH; v < scale {
		scale = v
	}
	cols := int(scale * ts.viewW)
	rows := int(scale * ts.viewH / 2)
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	if ts.canvas == nil {
		ts.canvas = draw.NewScaledCanvas(cols, rows, ts.viewW, ts.viewH)
	} else {
		ts.canvas.Resize(cols, rows)
	}
	// HUD and label coordinates resolve through the canvas, so the
	// writer itself stays offset-free.
	ts.canvas.SetOffset((termW-cols)/2, (termH-rows)/2)
	return nil
}

// view maps world (x, z) to logical canvas coordinates. The player end
// (+Z) lands at the bottom of the screen.
func (ts *TermScene) view(x, z float64) (float64, float64) {
	return x + ts.viewW/2, z + ts.viewH/2
}

// render draws the whole scene to the terminal.
func (ts *TermScene) render() error {
	draw.ClearScreen(ts.cw)
	ts.canvas.Clear()

	var labels []*Node
	for _, n := range ts.objects {
		if !n.Visible || n.Opacity <= 0 {
			continue
		}
		switch n.Kind {
		case KindPlane:
			lx, ly := ts.view(n.Position[0], n.Position[2])
			ts.canvas.DrawRect(lx, ly, n.Width, n.Depth)
		case KindBox:
			lx, ly := ts.view(n.Position[0], n.Position[2])
			ts.canvas.FillRect(lx, ly, n.Width*n.Scale, n.Depth*n.Scale)
		case KindSphere:
			lx, ly := ts.view(n.Position[0], n.Position[2])
			ts.canvas.FillCircle(lx, ly, n.Radius*n.Scale)
		case KindPoints:
			for i, p := range n.Points {
				if i < len(n.PointColors) && n.PointColors[i].Brightness() < 0.2 {
					continue // Faded out
				}
				lx, ly := ts.view(p[0], p[2])
				ts.canvas.SetFloat(lx, ly)
			}
		case KindText:
			labels = append(labels, n)
		}
	}

	ts.canvas.Render(ts.cw)

	// Text overlays go on top of the canvas output.
	for _, n := range labels {
		if n.Opacity < 0.25 {
			continue
		}
		lx, ly := ts.view(n.Position[0], n.Position[2])
		col, row := ts.canvas.LogicalToTerminal(lx, ly)
		draw.MoveCursor(ts.cw, col-len(n.Text)/2, row)
		ts.cw.WriteString(n.Text)
	}

	ts.drawHUD()
	return ts.cw.Flush()
}

// drawHUD renders the score line above the table and the footer hint
// below it.
func (ts *TermScene) drawHUD() {
	w := ts.canvas.TerminalWidth()
	top := ts.canvas.OffsetRow() // Row above the canvas, 1-based
	bottom := ts.canvas.OffsetRow() + ts.canvas.TerminalHeight() + 1

	you := fmt.Sprintf("YOU %d", ts.playerScore)
	opp := fmt.Sprintf("%d CPU", ts.aiScore)
	if top >= 1 {
		draw.MoveCursor(ts.cw, ts.canvas.OffsetCol()+1, top)
		ts.cw.WriteString(you)
		draw.MoveCursor(ts.cw, ts.canvas.OffsetCol()+w-len(opp)+1, top)
		ts.cw.WriteString(opp)
	}

	if ts.footer != "" {
		col := ts.canvas.OffsetCol() + (w-len(ts.footer))/2 + 1
		if col < 1 {
			col = 1
		}
		draw.MoveCursor(ts.cw, col, bottom)
		ts.cw.WriteString(ts.footer)
	}
}
