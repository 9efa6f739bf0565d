package stream

import "time"

// An Animation renders the frame to show at a point on the loop clock.
type Animation interface {
	CalculateFrame(now time.Duration) *Frame
}
