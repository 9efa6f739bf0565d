// Package morph animates one path shape into another, one frame at a time.
package morph

import (
	"sync"
	"time"
)

// FrameID identifies a requested frame callback. Zero is never issued.
type FrameID uint64

// FrameFunc is called with the timestamp of the frame it runs in.
type FrameFunc func(now time.Duration)

// A Scheduler runs callbacks on the next frame.
type Scheduler interface {
	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)
}

// Loop is a cooperative frame queue. Every callback runs on whichever
// goroutine calls Step, so animation state needs no locking as long as
// other goroutines hand their work over with Post.
type Loop struct {
	mu     sync.Mutex
	nextID FrameID
	queue  []FrameID
	live   map[FrameID]FrameFunc
	posted []func()
}

// NewLoop creates an empty Loop.
func NewLoop() *Loop {
	l := new(Loop)
	l.live = make(map[FrameID]FrameFunc)
	return l
}

// RequestFrame queues fn for the next Step.
func (l *Loop) RequestFrame(fn FrameFunc) FrameID {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	id := l.nextID
	l.live[id] = fn
	l.queue = append(l.queue, id)
	return id
}

// CancelFrame drops a queued callback. Unknown or already run IDs are ignored.
func (l *Loop) CancelFrame(id FrameID) {
	l.mu.Lock()
	delete(l.live, id)
	l.mu.Unlock()
}

// Post queues fn to run at the start of the next Step. Safe from any goroutine.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.posted = append(l.posted, fn)
	l.mu.Unlock()
}

// Pending returns the number of callbacks waiting for a frame.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.live)
}

// Step runs one frame: posted functions first, then the frame callbacks
// that were queued before the step began, in request order. Callbacks
// requested while stepping wait for the next Step.
func (l *Loop) Step(now time.Duration) {
	l.mu.Lock()
	posted := l.posted
	l.posted = nil
	l.mu.Unlock()

	for _, fn := range posted {
		fn()
	}

	l.mu.Lock()
	queue := l.queue
	l.queue = nil
	l.mu.Unlock()

	for _, id := range queue {
		l.mu.Lock()
		fn, ok := l.live[id]
		delete(l.live, id)
		l.mu.Unlock()

		if ok {
			fn(now)
		}
	}
}
