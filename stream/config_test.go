package stream

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	c := DefaultConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(c.Animation.Shapes) != 2 {
		t.Errorf("default shapes = %d, want 2", len(c.Animation.Shapes))
	}
	if c.AnimationDuration() != 10*time.Second {
		t.Errorf("AnimationDuration() = %v", c.AnimationDuration())
	}
	if c.GalleryInterval() != 3*time.Second {
		t.Errorf("GalleryInterval() = %v", c.GalleryInterval())
	}
	if c.ThemeTransition() != 300*time.Millisecond {
		t.Errorf("ThemeTransition() = %v", c.ThemeTransition())
	}
}

func TestReadConfigOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
mqtt:
  url: tcp://localhost:1883
  topics:
    stream: test/stream
animation:
  frameRate: 60
  durationMs: 500
  easing: inOutQuad
  shapes:
    - M0,0L1,1
`)

	c, err := ReadConfig(path)
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	if c.Mqtt.URL != "tcp://localhost:1883" || c.Mqtt.Topics.Stream != "test/stream" {
		t.Errorf("mqtt = %+v", c.Mqtt)
	}
	if c.Mqtt.Topics.Control != "home/blobs/control" {
		t.Errorf("control topic default lost: %q", c.Mqtt.Topics.Control)
	}
	if len(c.Animation.Shapes) != 1 || c.Animation.Shapes[0] != "M0,0L1,1" {
		t.Errorf("shapes = %v", c.Animation.Shapes)
	}
	if c.FrameInterval() != time.Second/60 {
		t.Errorf("FrameInterval() = %v", c.FrameInterval())
	}
	if len(c.Gallery.Images) != 8 {
		t.Errorf("gallery default lost: %v", c.Gallery.Images)
	}
}

func TestReadConfigEmptyFile(t *testing.T) {
	c, err := ReadConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	if c.Animation.DurationMs != 10000 {
		t.Errorf("durationMs = %d", c.Animation.DurationMs)
	}
}

func TestReadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "animation: [oops"},
		{"no shapes", "animation:\n  shapes: []\n"},
		{"zero duration", "animation:\n  durationMs: 0\n"},
		{"bad frame rate", "animation:\n  frameRate: -1\n"},
		{"unknown easing", "animation:\n  easing: wobble\n"},
		{"bad gallery interval", "gallery:\n  intervalMs: 0\n"},
		{"bad colour", "theme:\n  dark:\n    background: nope\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadConfig(writeConfig(t, tt.body)); err == nil {
				t.Error("expected an error")
			}
		})
	}

	if _, err := ReadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
