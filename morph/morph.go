package morph

import (
	"time"

	"github.com/fogleman/ease"
	"github.com/matt-g-everett/blobtx/shape"
	"github.com/matt-g-everett/blobtx/util"
)

// State of a Morph.
type State int

const (
	Idle State = iota
	Running
	Settled
)

var stateNames = [...]string{"idle", "running", "settled"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Morph animates a path from one shape to another over a fixed duration.
// It samples once per frame until progress reaches 1, then stops
// requesting frames until the next Animate.
type Morph struct {
	scheduler Scheduler
	cache     *shape.Cache
	easing    func(float64) float64
	onFrame   func(path string, progress float64)

	from     shape.Shape
	to       shape.Shape
	duration time.Duration
	start    time.Duration
	started  bool

	generation uint64
	frame      FrameID
	state      State
	progress   float64
	path       string
}

// NewMorph creates an idle Morph whose path starts out as initial.
func NewMorph(scheduler Scheduler, cache *shape.Cache, initial string) *Morph {
	m := new(Morph)
	m.scheduler = scheduler
	m.cache = cache
	m.easing = ease.Linear
	m.path = initial
	return m
}

// SetEasing sets the curve applied to progress. nil restores linear.
func (m *Morph) SetEasing(fn func(float64) float64) {
	if fn == nil {
		fn = ease.Linear
	}
	m.easing = fn
}

// OnFrame registers a callback that receives every published sample.
func (m *Morph) OnFrame(fn func(path string, progress float64)) {
	m.onFrame = fn
}

// Animate starts morphing from one path to another. Any animation in
// flight is abandoned and timing restarts on the next frame.
func (m *Morph) Animate(from, to string, duration time.Duration) {
	m.cancel()

	m.from = m.cache.Parse(from)
	m.to = m.cache.Parse(to)
	m.duration = duration
	m.started = false
	m.progress = 0
	m.state = Running
	m.generation++
	m.request()
}

// Stop abandons the animation in flight and returns to Idle.
func (m *Morph) Stop() {
	m.cancel()
	m.generation++
	m.state = Idle
}

// Path returns the most recently published path.
func (m *Morph) Path() string {
	return m.path
}

// Progress returns the progress of the last sample, before easing.
func (m *Morph) Progress() float64 {
	return m.progress
}

func (m *Morph) State() State {
	return m.state
}

func (m *Morph) cancel() {
	if m.frame != 0 {
		m.scheduler.CancelFrame(m.frame)
		m.frame = 0
	}
}

func (m *Morph) request() {
	generation := m.generation
	m.frame = m.scheduler.RequestFrame(func(now time.Duration) {
		m.step(generation, now)
	})
}

func (m *Morph) step(generation uint64, now time.Duration) {
	if generation != m.generation || m.state != Running {
		return
	}
	m.frame = 0

	if !m.started {
		m.start = now
		m.started = true
	}

	progress := 1.0
	if m.duration > 0 {
		progress = util.Clamp(float64(now-m.start)/float64(m.duration), 0, 1)
	}

	// Easing curves don't all land exactly on 1.
	eased := progress
	if progress < 1 {
		eased = m.easing(progress)
	}

	m.progress = progress
	m.path = shape.Interpolate(m.from, m.to, eased)

	if progress < 1 {
		m.request()
	} else {
		m.state = Settled
	}

	if m.onFrame != nil {
		m.onFrame(m.path, progress)
	}
}
