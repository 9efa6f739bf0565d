package stream

import (
	"encoding/json"

	"github.com/matt-g-everett/blobtx/theme"
)

// Frame is everything a display client needs to paint one frame: the two
// blob outlines, the images masked by them and the theme colours.
type Frame struct {
	Blobs  [2]string
	Images [2]string
	Theme  string
	Colors theme.Palette
}

type frameColors struct {
	Background string `json:"background"`
	Foreground string `json:"foreground"`
}

type framePayload struct {
	Blobs  [2]string   `json:"blobs"`
	Images [2]string   `json:"images"`
	Theme  string      `json:"theme"`
	Colors frameColors `json:"colors"`
}

// MarshalBinary encodes the frame as JSON for the wire.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	return json.Marshal(framePayload{
		Blobs:  f.Blobs,
		Images: f.Images,
		Theme:  f.Theme,
		Colors: frameColors{
			Background: f.Colors.Background.Clamped().Hex(),
			Foreground: f.Colors.Foreground.Clamped().Hex(),
		},
	})
}
