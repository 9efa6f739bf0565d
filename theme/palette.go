// Package theme keeps the light/dark preference and the colours that go
// with it.
package theme

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	css "github.com/mazznoer/csscolorparser"
)

// Palette is the pair of colours a theme paints with.
type Palette struct {
	Background colorful.Color
	Foreground colorful.Color
}

// ParseColor reads any CSS colour ("#100505", "rgb(16 5 5)", "black").
// Alpha is dropped.
func ParseColor(s string) (colorful.Color, error) {
	c, err := css.Parse(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("theme: parse colour %q: %w", s, err)
	}
	return colorful.Color{R: c.R, G: c.G, B: c.B}, nil
}

// ParsePalette builds a Palette from two CSS colours.
func ParsePalette(background, foreground string) (Palette, error) {
	bg, err := ParseColor(background)
	if err != nil {
		return Palette{}, err
	}
	fg, err := ParseColor(foreground)
	if err != nil {
		return Palette{}, err
	}
	return Palette{Background: bg, Foreground: fg}, nil
}

// Blend mixes p towards q; t=0 is p and t=1 is q.
func (p Palette) Blend(q Palette, t float64) Palette {
	return Palette{
		Background: p.Background.BlendLab(q.Background, t).Clamped(),
		Foreground: p.Foreground.BlendLab(q.Foreground, t).Clamped(),
	}
}
