// Package gallery picks which cover images the two blobs show.
package gallery

import (
	"math/rand"
	"time"
)

// Gallery chooses image pairs from a fixed library.
type Gallery struct {
	images []string
	rng    *rand.Rand
}

// New creates a Gallery. A nil rng is seeded from the clock.
func New(images []string, rng *rand.Rand) *Gallery {
	g := new(Gallery)
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UTC().UnixNano()))
	}
	g.rng = rng
	g.SetImages(images)
	return g
}

// SetImages replaces the library.
func (g *Gallery) SetImages(images []string) {
	g.images = append([]string(nil), images...)
}

func (g *Gallery) Images() []string {
	return append([]string(nil), g.images...)
}

// Next picks two different images that are both new compared to prev.
// With a small library it settles for repeating prev, and with a single
// image both slots show it.
func (g *Gallery) Next(prev [2]string) [2]string {
	first := g.pick([]string{prev[0], prev[1]})
	second := g.pick([]string{prev[0], prev[1], first}, []string{first})
	return [2]string{first, second}
}

// pick chooses at random from the images outside the first exclusion list
// that leaves any candidates.
func (g *Gallery) pick(excludes ...[]string) string {
	for _, exclude := range excludes {
		if candidates := without(g.images, exclude); len(candidates) > 0 {
			return candidates[g.rng.Intn(len(candidates))]
		}
	}
	if len(g.images) == 0 {
		return ""
	}
	return g.images[g.rng.Intn(len(g.images))]
}

func without(images []string, exclude []string) []string {
	var out []string
	for _, img := range images {
		skip := false
		for _, e := range exclude {
			if img == e {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, img)
		}
	}
	return out
}
