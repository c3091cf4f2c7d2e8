package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestFillRectCoversAtLeastOnePixel(t *testing.T) {
	c := NewScaledCanvas(40, 20, 1.2, 1.4)

	// A paddle seen edge-on is thinner than one terminal cell.
	c.FillRect(0.6, 0.7, 0.001, 0.001)

	var buf bytes.Buffer
	c.Render(&buf)
	if buf.Len() == 0 {
		t.Fatal("sub-pixel rectangle rendered nothing")
	}
}

func TestFillCircleDegeneratesToPoint(t *testing.T) {
	c := NewScaledCanvas(40, 20, 40, 40)

	c.FillCircle(20, 20, 0.1) // Radius below one pixel

	var buf bytes.Buffer
	c.Render(&buf)
	if !strings.ContainsRune(buf.String(), BlockUpperHalf) &&
		!strings.ContainsRune(buf.String(), BlockLowerHalf) &&
		!strings.ContainsRune(buf.String(), BlockFull) {
		t.Fatal("tiny circle rendered no block character")
	}
}

func TestRenderUsesHalfBlocks(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.SetFloat(1, 0) // Top sub-pixel of row 0
	c.SetFloat(2, 3) // Bottom sub-pixel of row 1

	var buf bytes.Buffer
	c.Render(&buf)
	out := buf.String()
	if !strings.ContainsRune(out, BlockUpperHalf) {
		t.Fatalf("output %q missing upper half block", out)
	}
	if !strings.ContainsRune(out, BlockLowerHalf) {
		t.Fatalf("output %q missing lower half block", out)
	}
}

func TestChunkWriterFlushAndOffsets(t *testing.T) {
	var buf bytes.Buffer
	cw := NewChunkWriter(&buf, 5, 3)

	cw.WriteAt(1, 1, "hi")
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush() = %v", err)
	}
	if got := buf.String(); got != "\033[4;6Hhi" {
		t.Fatalf("output = %q, want offset cursor move before text", got)
	}

	// The buffer resets between flushes.
	buf.Reset()
	cw.WriteString("x")
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush() = %v", err)
	}
	if got := buf.String(); got != "x" {
		t.Fatalf("second flush = %q, want %q", got, "x")
	}
}
