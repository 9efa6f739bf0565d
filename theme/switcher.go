package theme

import (
	"log"
	"time"

	"github.com/matt-g-everett/blobtx/util"
)

const (
	Light = "light"
	Dark  = "dark"
)

// DefaultTransition is how long colours take to cross-fade after a switch.
const DefaultTransition = 300 * time.Millisecond

// Switcher tracks the active theme and fades between palettes when it
// changes. Every change is written to the Store.
type Switcher struct {
	store      *Store
	light      Palette
	dark       Palette
	transition time.Duration

	isDark    bool
	from      Palette
	changedAt time.Duration
}

func NewSwitcher(store *Store, light, dark Palette, transition time.Duration) *Switcher {
	s := new(Switcher)
	s.store = store
	s.light = light
	s.dark = dark
	s.transition = transition
	s.from = light
	return s
}

// Init picks the stored preference, falling back to the system one.
func (s *Switcher) Init(prefersDark bool, now time.Duration) {
	dark, found, err := s.store.Load()
	if err != nil {
		log.Printf("theme: %v", err)
	}
	if !found {
		dark = prefersDark
	}

	s.apply(dark, now)
	s.from = s.target()
}

// Set switches to the dark or light theme.
func (s *Switcher) Set(dark bool, now time.Duration) {
	s.apply(dark, now)
}

// Toggle flips between dark and light.
func (s *Switcher) Toggle(now time.Duration) {
	s.apply(!s.isDark, now)
}

// SystemChanged follows a change of the system colour scheme.
func (s *Switcher) SystemChanged(dark bool, now time.Duration) {
	s.apply(dark, now)
}

func (s *Switcher) apply(dark bool, now time.Duration) {
	s.from = s.Colors(now)
	s.isDark = dark
	s.changedAt = now
	if err := s.store.Save(dark); err != nil {
		log.Printf("theme: %v", err)
	}
}

func (s *Switcher) Dark() bool {
	return s.isDark
}

// Name returns Dark or Light.
func (s *Switcher) Name() string {
	if s.isDark {
		return Dark
	}
	return Light
}

func (s *Switcher) target() Palette {
	if s.isDark {
		return s.dark
	}
	return s.light
}

// Colors returns the palette to paint with at time now.
func (s *Switcher) Colors(now time.Duration) Palette {
	target := s.target()
	if s.transition <= 0 {
		return target
	}

	t := util.Clamp(float64(now-s.changedAt)/float64(s.transition), 0, 1)
	if t >= 1 {
		return target
	}
	return s.from.Blend(target, t)
}
