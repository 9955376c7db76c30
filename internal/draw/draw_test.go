package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestFillRectSetsAtLeastOnePixel(t *testing.T) {
	c := NewScaledCanvas(60, 30, 600, 600)
	c.FillRect(300, 300, 5, 15)

	set := 0
	for _, p := range c.pixels {
		if p {
			set++
		}
	}
	if set == 0 {
		t.Fatal("expected a tiny rectangle to set a pixel")
	}
}

func TestRenderOnlyEmitsChanges(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.FillRect(0, 0, 1, 2)

	var out bytes.Buffer
	if err := c.Render(&out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), string(BlockFull)) {
		t.Errorf("expected a full block, got %q", out.String())
	}

	out.Reset()
	if err := c.Render(&out); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output for an unchanged canvas, got %q", out.String())
	}

	c.Clear()
	if err := c.Render(&out); err != nil {
		t.Fatal(err)
	}
	if out.String() != "\033[1;1H " {
		t.Errorf("expected the cleared cell to be blanked, got %q", out.String())
	}
}

func TestMarkTextDirtyRepaints(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)
	c.FillRect(2, 0, 1, 1)

	var out bytes.Buffer
	c.Render(&out)
	c.MarkTextDirty(1, 1, 5)

	out.Reset()
	c.Render(&out)
	// Four blank cells plus the upper half block are rewritten.
	if got := strings.Count(out.String(), "\033["); got != 5 {
		t.Errorf("expected 5 cells repainted, got %d in %q", got, out.String())
	}
}

func TestChunkWriterOffsets(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 3, 2)
	cw.WriteAt(1, 1, "HI")
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if out.String() != "\033[3;4HHI" {
		t.Errorf("expected offset cursor move, got %q", out.String())
	}
}

func TestLogicalToTerminal(t *testing.T) {
	c := NewScaledCanvas(60, 30, 600, 600)
	col, row := c.LogicalToTerminal(300, 300)
	if col != 31 || row != 16 {
		t.Errorf("expected (31, 16), got (%d, %d)", col, row)
	}
}
