package stream

import (
	"encoding/json"
	"testing"

	"github.com/matt-g-everett/blobtx/theme"
)

func TestFrameMarshalBinary(t *testing.T) {
	colors, err := theme.ParsePalette("#100505", "white")
	if err != nil {
		t.Fatal(err)
	}
	f := &Frame{
		Blobs:  [2]string{"M 0 0Z", "M 1 1Z"},
		Images: [2]string{"igor.webp", "blond.jpeg"},
		Theme:  theme.Dark,
		Colors: colors,
	}

	b, err := f.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}

	var got struct {
		Blobs  []string          `json:"blobs"`
		Images []string          `json:"images"`
		Theme  string            `json:"theme"`
		Colors map[string]string `json:"colors"`
	}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal %s: %v", b, err)
	}

	if got.Blobs[1] != "M 1 1Z" || got.Images[0] != "igor.webp" || got.Theme != "dark" {
		t.Errorf("payload = %s", b)
	}
	if got.Colors["background"] != "#100505" || got.Colors["foreground"] != "#ffffff" {
		t.Errorf("colors = %v", got.Colors)
	}
}
