package scene

import (
	"bytes"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func newTestScene() *TermScene {
	return NewTermScene(&bytes.Buffer{}, func() (int, int, error) { return 80, 24, nil })
}

func TestAddRemoveObject(t *testing.T) {
	ts := newTestScene()

	a := ts.AddObject(NewSphere(mgl64.Vec3{}, 0.02, Color{R: 1}))
	b := ts.AddObject(NewBox(mgl64.Vec3{}, 0.1, 0.1, 0.02, Color{G: 1}))
	if len(ts.objects) != 2 {
		t.Fatalf("objects = %d, want 2", len(ts.objects))
	}

	ts.RemoveObject(a)
	if len(ts.objects) != 1 || ts.objects[0] != b {
		t.Fatalf("remove left %d objects, want only the box", len(ts.objects))
	}

	// Unknown and repeated removals are ignored.
	ts.RemoveObject(a)
	ts.RemoveObject(&Node{})
	if len(ts.objects) != 1 {
		t.Fatalf("objects after unknown removals = %d, want 1", len(ts.objects))
	}
}

func TestUpdateCallbackRemovalByIdentity(t *testing.T) {
	ts := newTestScene()

	var calls []string
	fn := func(name string) UpdateFunc {
		return func(dt float64) { calls = append(calls, name) }
	}

	h1 := ts.AddUpdateCallback(fn("a"))
	h2 := ts.AddUpdateCallback(fn("b"))
	h3 := ts.AddUpdateCallback(fn("c"))

	// Same underlying behavior, distinct handles: removing h2 must not
	// touch h1 or h3.
	ts.RemoveUpdateCallback(h2)
	for _, h := range ts.callbacks {
		h.Call(0.016)
	}
	if len(calls) != 2 || calls[0] != "a" || calls[1] != "c" {
		t.Fatalf("calls = %v, want [a c]", calls)
	}

	ts.RemoveUpdateCallback(h2) // Already gone: ignored
	ts.RemoveUpdateCallback(h1)
	ts.RemoveUpdateCallback(h3)
	if len(ts.callbacks) != 0 {
		t.Fatalf("callbacks = %d, want 0", len(ts.callbacks))
	}
}

func TestCreateHorizontalPlaneSetsView(t *testing.T) {
	ts := newTestScene()

	n := ts.CreateHorizontalPlane(1.0, 1.2, Color{G: 0.5}, 0)
	if n.Kind != KindPlane {
		t.Fatalf("kind = %v, want KindPlane", n.Kind)
	}
	if ts.viewW != 1.0+2*viewMargin || ts.viewH != 1.2+2*viewMargin {
		t.Fatalf("view = %fx%f, want margins around the plane", ts.viewW, ts.viewH)
	}

	if err := ts.updateViewport(); err != nil {
		t.Fatalf("updateViewport() = %v", err)
	}
	if ts.canvas == nil {
		t.Fatal("canvas not built after viewport update")
	}
}

func TestViewportRejectsTinyTerminal(t *testing.T) {
	ts := NewTermScene(&bytes.Buffer{}, func() (int, int, error) { return 8, 4, nil })
	if err := ts.updateViewport(); err == nil {
		t.Fatal("updateViewport() succeeded on an 8x4 terminal, want error")
	}
}

func TestRenderWritesOutput(t *testing.T) {
	var buf bytes.Buffer
	ts := NewTermScene(&buf, func() (int, int, error) { return 80, 24, nil })

	ts.CreateHorizontalPlane(1.0, 1.2, Color{G: 0.5}, 0)
	ts.AddObject(NewSphere(mgl64.Vec3{0, 0.02, 0}, 0.02, Color{R: 1}))
	ts.PlayerSink().SetScore(3)
	ts.OpponentSink().SetScore(1)
	ts.SetFooter("wasd to move")

	if err := ts.updateViewport(); err != nil {
		t.Fatalf("updateViewport() = %v", err)
	}
	if err := ts.render(); err != nil {
		t.Fatalf("render() = %v", err)
	}

	out := buf.String()
	if out == "" {
		t.Fatal("render produced no output")
	}
	for _, want := range []string{"YOU 3", "1 CPU", "wasd to move"} {
		if !bytes.Contains(buf.Bytes(), []byte(want)) {
			t.Fatalf("render output missing %q", want)
		}
	}
}
