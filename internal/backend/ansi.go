// Package backend transports a render.Frame to a terminal. The
// rasterizer's output is a typed frame; encoding it to bytes is kept
// separate so the core stays transport-agnostic.
package backend

import (
	"fmt"
	"strings"

	"github.com/trigrid/trigrid/pkg/render"
)

// Encode renders a Frame to the exact ANSI byte sequence spec.md §4.6
// describes: a background-set sequence, a cursor-home sequence, then
// for each cell a foreground-set escape only when its color differs
// from the last one emitted, followed by the glyph, a newline at the
// end of each row, and a trailing reset.
func Encode(f *render.Frame) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "\x1b[48;2;%d;%d;%dm", f.Background[0], f.Background[1], f.Background[2])
	b.WriteString("\x1b[H")

	var last [3]uint8
	haveLast := false
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := f.Colors[y][x]
			if !haveLast || c != last {
				fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm", c[0], c[1], c[2])
				last = c
				haveLast = true
			}
			b.WriteRune(f.Glyphs[y][x])
		}
		b.WriteByte('\n')
	}

	b.WriteString("\x1b[0m")

	return []byte(b.String())
}
