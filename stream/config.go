package stream

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/matt-g-everett/blobtx/theme"
	"github.com/matt-g-everett/blobtx/util"
	"gopkg.in/yaml.v2"
)

// PaletteConfig is a pair of CSS colours.
type PaletteConfig struct {
	Background string `yaml:"background"`
	Foreground string `yaml:"foreground"`
}

// Palette parses the colours.
func (p PaletteConfig) Palette() (theme.Palette, error) {
	return theme.ParsePalette(p.Background, p.Foreground)
}

type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		ClientID string `yaml:"clientId"`
		Topics   struct {
			Stream  string `yaml:"stream"`
			Control string `yaml:"control"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	Api struct {
		Listen    string `yaml:"listen"`
		StaticDir string `yaml:"staticDir"`
	} `yaml:"api"`
	Animation struct {
		FrameRate  float64  `yaml:"frameRate"`
		DurationMs int64    `yaml:"durationMs"`
		Easing     string   `yaml:"easing"`
		CacheSize  int      `yaml:"cacheSize"`
		Shapes     []string `yaml:"shapes"`
	} `yaml:"animation"`
	Gallery struct {
		IntervalMs int64    `yaml:"intervalMs"`
		Images     []string `yaml:"images"`
		Initial    []string `yaml:"initial"`
	} `yaml:"gallery"`
	Theme struct {
		PreferenceFile string        `yaml:"preferenceFile"`
		PrefersDark    bool          `yaml:"prefersDark"`
		TransitionMs   int64         `yaml:"transitionMs"`
		Light          PaletteConfig `yaml:"light"`
		Dark           PaletteConfig `yaml:"dark"`
	} `yaml:"theme"`
}

// DefaultConfig returns the settings used for anything a config file
// leaves out.
func DefaultConfig() Config {
	var c Config
	c.Mqtt.ClientID = "blobtx"
	c.Mqtt.Topics.Stream = "home/blobs/stream"
	c.Mqtt.Topics.Control = "home/blobs/control"

	c.Api.Listen = ":3000"
	c.Api.StaticDir = "client/dist"

	c.Animation.FrameRate = 30
	c.Animation.DurationMs = 10000
	c.Animation.Easing = "linear"
	c.Animation.Shapes = []string{
		"M43.1,-75.3C57,-66.7,70.3,-57.4,79.1,-44.8C87.9,-32.1,92.4,-16.1,92.7,0.1C92.9,16.4,89,32.7,80.1,45.4C71.3,58.1,57.6,67,43.4,75C29.3,83,14.6,90,-0.4,90.6C-15.3,91.3,-30.7,85.5,-43.4,76.7C-56.2,67.8,-66.3,56,-74.7,42.7C-83,29.4,-89.4,14.7,-89.6,-0.1C-89.8,-14.9,-83.7,-29.9,-75.9,-44C-68.1,-58.2,-58.6,-71.6,-45.7,-80.8C-32.7,-90,-16.4,-95,-0.9,-93.5C14.6,-91.9,29.2,-83.9,43.1,-75.3Z",
		"M54.3,-67.9C71.5,-56.2,87.4,-42.5,92.2,-25.5C97,-8.4,90.7,11.9,82.4,30.5C74.2,49.1,63.9,66,48.4,75.9C32.9,85.8,12.1,88.6,-7.6,85.3C-27.4,82,-46.1,72.5,-59.9,58.6C-73.7,44.7,-82.6,26.3,-82.6,8.4C-82.5,-9.4,-73.5,-26.7,-62.5,-41.8C-51.5,-56.9,-38.5,-69.8,-23.2,-75.7C-7.9,-81.5,9.6,-80.3,25.8,-75.1C42,-69.9,57,-79.7,54.3,-67.9Z",
	}

	c.Gallery.IntervalMs = 3000
	c.Gallery.Images = []string{
		"igor.webp",
		"blond.jpeg",
		"call-me-if-you-get-lost.jpeg",
		"jeffery.webp",
		"long-live-asap.webp",
		"mbdtf.webp",
		"so-much-fun.jpeg",
		"stankonia.webp",
	}
	c.Gallery.Initial = []string{"so-much-fun.jpeg", "mbdtf.webp"}

	c.Theme.PreferenceFile = "theme.yaml"
	c.Theme.TransitionMs = 300
	c.Theme.Light = PaletteConfig{Background: "#f4f1ec", Foreground: "#1b1b1b"}
	c.Theme.Dark = PaletteConfig{Background: "#100505", Foreground: "#e8e4de"}
	return c
}

// ReadConfig reads a YAML config file over the defaults.
func ReadConfig(path string) (Config, error) {
	c := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("stream: open config %s: %w", path, err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return c, fmt.Errorf("stream: decode config %s: %w", path, err)
	}

	return c, c.Validate()
}

// Validate reports the first setting that can't be used.
func (c Config) Validate() error {
	if len(c.Animation.Shapes) == 0 {
		return errors.New("stream: animation.shapes is empty")
	}
	if c.Animation.FrameRate <= 0 {
		return fmt.Errorf("stream: animation.frameRate must be positive, got %v", c.Animation.FrameRate)
	}
	if c.Animation.DurationMs <= 0 {
		return fmt.Errorf("stream: animation.durationMs must be positive, got %d", c.Animation.DurationMs)
	}
	if _, err := util.Easing(c.Animation.Easing); err != nil {
		return fmt.Errorf("stream: animation.easing: %w", err)
	}
	if c.Gallery.IntervalMs <= 0 {
		return fmt.Errorf("stream: gallery.intervalMs must be positive, got %d", c.Gallery.IntervalMs)
	}
	if c.Theme.TransitionMs < 0 {
		return fmt.Errorf("stream: theme.transitionMs must not be negative, got %d", c.Theme.TransitionMs)
	}
	if _, err := c.Theme.Light.Palette(); err != nil {
		return fmt.Errorf("stream: theme.light: %w", err)
	}
	if _, err := c.Theme.Dark.Palette(); err != nil {
		return fmt.Errorf("stream: theme.dark: %w", err)
	}
	return nil
}

func (c Config) FrameInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.Animation.FrameRate)
}

func (c Config) AnimationDuration() time.Duration {
	return time.Duration(c.Animation.DurationMs) * time.Millisecond
}

func (c Config) GalleryInterval() time.Duration {
	return time.Duration(c.Gallery.IntervalMs) * time.Millisecond
}

func (c Config) ThemeTransition() time.Duration {
	return time.Duration(c.Theme.TransitionMs) * time.Millisecond
}
