package stream

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Control message types.
const (
	ToggleTheme = "toggleTheme"
	SetTheme    = "setTheme"
	SystemTheme = "systemTheme"
	NextImages  = "nextImages"
)

// ControlMessage asks the display to change something, e.g.
// {"type":"setTheme","dark":true}.
type ControlMessage struct {
	Type string `json:"type"`
	Dark *bool  `json:"dark,omitempty"`
}

// A ControlHandler accepts control messages from any goroutine.
type ControlHandler interface {
	HandleControl(msg ControlMessage)
}

// DecodeControl parses and checks a JSON control message.
func DecodeControl(payload []byte) (ControlMessage, error) {
	var msg ControlMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return msg, fmt.Errorf("stream: decode control message: %w", err)
	}

	switch msg.Type {
	case ToggleTheme, NextImages:
	case SetTheme, SystemTheme:
		if msg.Dark == nil {
			return msg, fmt.Errorf("stream: %s needs a dark flag", msg.Type)
		}
	case "":
		return msg, errors.New("stream: control message has no type")
	default:
		return msg, fmt.Errorf("stream: unknown control message %q", msg.Type)
	}
	return msg, nil
}
