package render

import "testing"

func TestNewFrameInitialState(t *testing.T) {
	f := NewFrame(4, 2, [3]uint8{10, 20, 30})
	if f.Width != 4 || f.Height != 2 {
		t.Fatalf("expected 4x2, got %dx%d", f.Width, f.Height)
	}
	if f.Background != [3]uint8{10, 20, 30} {
		t.Errorf("expected background to be stored verbatim, got %v", f.Background)
	}
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			if f.Glyphs[y][x] != ' ' {
				t.Errorf("expected blank glyph at (%d,%d), got %q", x, y, f.Glyphs[y][x])
			}
			if f.Colors[y][x] != [3]uint8{0, 0, 0} {
				t.Errorf("expected black color at (%d,%d), got %v", x, y, f.Colors[y][x])
			}
		}
	}
}

func TestFrameSetWritesGlyphAndColor(t *testing.T) {
	f := NewFrame(2, 2, [3]uint8{})
	f.Set(1, 0, PXCHAR, [3]uint8{255, 0, 0})
	if f.Glyphs[0][1] != PXCHAR {
		t.Errorf("expected PXCHAR at (1,0), got %q", f.Glyphs[0][1])
	}
	if f.Colors[0][1] != [3]uint8{255, 0, 0} {
		t.Errorf("expected red at (1,0), got %v", f.Colors[0][1])
	}
}

func TestFrameSetOutOfBoundsIsIgnored(t *testing.T) {
	f := NewFrame(2, 2, [3]uint8{})
	f.Set(-1, 0, PXCHAR, [3]uint8{1, 2, 3})
	f.Set(0, 2, PXCHAR, [3]uint8{1, 2, 3})
	f.Set(2, 0, PXCHAR, [3]uint8{1, 2, 3})
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			if f.Glyphs[y][x] != ' ' {
				t.Errorf("an out-of-bounds Set must not mutate the frame, but (%d,%d) changed", x, y)
			}
		}
	}
}
