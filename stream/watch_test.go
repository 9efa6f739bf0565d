package stream

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestConfigWatcherReloads(t *testing.T) {
	path := writeConfig(t, "animation:\n  shapes:\n    - M0,0Z\n")

	reloaded := make(chan Config, 4)
	w, err := NewConfigWatcher(path, func(c Config) { reloaded <- c })
	if err != nil {
		t.Fatalf("NewConfigWatcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	if err := os.WriteFile(path, []byte("animation:\n  shapes:\n    - M1,1Z\n    - M2,2Z\n"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-reloaded:
		if len(c.Animation.Shapes) != 2 || c.Animation.Shapes[1] != "M2,2Z" {
			t.Errorf("reloaded shapes = %v", c.Animation.Shapes)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("config change was not picked up")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
