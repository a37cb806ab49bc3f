package backend

import (
	"strings"
	"testing"

	"github.com/trigrid/trigrid/pkg/render"
)

func TestEncodeEmitsBackgroundAndCursorHome(t *testing.T) {
	f := render.NewFrame(1, 1, [3]uint8{10, 20, 30})
	out := string(Encode(f))

	if !strings.HasPrefix(out, "\x1b[48;2;10;20;30m\x1b[H") {
		t.Fatalf("expected the frame to open with a background-set then cursor-home sequence, got %q", out)
	}
	if !strings.HasSuffix(out, "\x1b[0m") {
		t.Fatalf("expected a trailing reset, got %q", out)
	}
}

func TestEncodeOnlyEmitsForegroundOnColorChange(t *testing.T) {
	f := render.NewFrame(3, 1, [3]uint8{})
	f.Set(0, 0, render.PXCHAR, [3]uint8{255, 0, 0})
	f.Set(1, 0, render.PXCHAR, [3]uint8{255, 0, 0})
	f.Set(2, 0, render.PXCHAR, [3]uint8{0, 255, 0})

	out := string(Encode(f))
	if n := strings.Count(out, "\x1b[38;2;255;0;0m"); n != 1 {
		t.Errorf("expected the repeated red color escape to be emitted exactly once, got %d", n)
	}
	if n := strings.Count(out, "\x1b[38;2;0;255;0m"); n != 1 {
		t.Errorf("expected the color-change escape to be emitted once, got %d", n)
	}
}

func TestEncodeEmitsNewlinePerRow(t *testing.T) {
	f := render.NewFrame(2, 3, [3]uint8{})
	out := string(Encode(f))
	if n := strings.Count(out, "\n"); n != 3 {
		t.Errorf("expected one newline per row (3), got %d", n)
	}
}

func TestEncodeWritesEveryGlyph(t *testing.T) {
	f := render.NewFrame(2, 1, [3]uint8{})
	f.Set(0, 0, 'A', [3]uint8{1, 1, 1})
	f.Set(1, 0, 'B', [3]uint8{2, 2, 2})

	out := string(Encode(f))
	if !strings.Contains(out, "AB") {
		t.Errorf("expected both glyphs in row order, got %q", out)
	}
}
