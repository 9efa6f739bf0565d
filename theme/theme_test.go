package theme

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func mustPalette(t *testing.T, bg, fg string) Palette {
	t.Helper()
	p, err := ParsePalette(bg, fg)
	if err != nil {
		t.Fatalf("ParsePalette(%q, %q): %v", bg, fg, err)
	}
	return p
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#100505", "#100505"},
		{"white", "#ffffff"},
		{"rgb(255, 0, 0)", "#ff0000"},
	}

	for _, tt := range tests {
		c, err := ParseColor(tt.in)
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", tt.in, err)
		}
		if got := c.Hex(); got != tt.want {
			t.Errorf("ParseColor(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	if _, err := ParseColor("not-a-colour"); err == nil {
		t.Error("expected error for an unknown colour")
	}
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs", "theme.yaml")
	s := NewStore(path)

	if _, found, err := s.Load(); err != nil || found {
		t.Fatalf("empty store: found=%v err=%v", found, err)
	}

	if err := s.Save(true); err != nil {
		t.Fatalf("Save: %v", err)
	}
	dark, found, err := s.Load()
	if err != nil || !found || !dark {
		t.Errorf("Load() = %v, %v, %v; want true, true, nil", dark, found, err)
	}
}

func TestStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	if err := os.WriteFile(path, []byte("darkMode: [oops"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := NewStore(path).Load(); err == nil {
		t.Error("expected error for a corrupt preference file")
	}
}

func TestStoreWithoutPath(t *testing.T) {
	s := NewStore("")
	if err := s.Save(true); err != nil {
		t.Errorf("Save: %v", err)
	}
	if _, found, _ := s.Load(); found {
		t.Error("store without a path should remember nothing")
	}
}

func TestSwitcherInit(t *testing.T) {
	light := mustPalette(t, "#ffffff", "#000000")
	dark := mustPalette(t, "#000000", "#ffffff")

	// No stored preference: follow the system.
	store := NewStore(filepath.Join(t.TempDir(), "theme.yaml"))
	s := NewSwitcher(store, light, dark, DefaultTransition)
	s.Init(true, 0)
	if !s.Dark() || s.Name() != Dark {
		t.Errorf("Init without preference = %s, want dark", s.Name())
	}
	if got := s.Colors(0).Background.Hex(); got != "#000000" {
		t.Errorf("Init should not fade, background = %s", got)
	}

	// Stored preference wins over the system.
	if err := store.Save(false); err != nil {
		t.Fatal(err)
	}
	s = NewSwitcher(store, light, dark, DefaultTransition)
	s.Init(true, 0)
	if s.Dark() {
		t.Error("stored light preference was ignored")
	}
}

func TestSwitcherToggleFades(t *testing.T) {
	light := mustPalette(t, "#ffffff", "#000000")
	dark := mustPalette(t, "#000000", "#ffffff")
	store := NewStore(filepath.Join(t.TempDir(), "theme.yaml"))

	s := NewSwitcher(store, light, dark, 300*time.Millisecond)
	s.Init(false, 0)

	s.Toggle(time.Second)
	if !s.Dark() {
		t.Fatal("Toggle did not switch to dark")
	}
	if dark, found, _ := store.Load(); !found || !dark {
		t.Error("Toggle was not persisted")
	}

	if got := s.Colors(time.Second).Background.Hex(); got != "#ffffff" {
		t.Errorf("fade start background = %s, want #ffffff", got)
	}
	mid := s.Colors(time.Second + 150*time.Millisecond).Background
	if mid.Hex() == "#ffffff" || mid.Hex() == "#000000" {
		t.Errorf("mid fade background = %s, want a blend", mid.Hex())
	}
	if got := s.Colors(2 * time.Second).Background.Hex(); got != "#000000" {
		t.Errorf("fade end background = %s, want #000000", got)
	}

	s.SystemChanged(false, 3*time.Second)
	if s.Dark() {
		t.Error("SystemChanged(false) left the theme dark")
	}
}

func TestSwitcherNoTransition(t *testing.T) {
	light := mustPalette(t, "white", "black")
	dark := mustPalette(t, "black", "white")
	s := NewSwitcher(NewStore(""), light, dark, 0)
	s.Init(false, 0)
	s.Set(true, time.Second)
	if got := s.Colors(time.Second).Background.Hex(); got != "#000000" {
		t.Errorf("background = %s, want an immediate switch", got)
	}
}
