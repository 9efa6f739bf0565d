package stream

import (
	"fmt"
	"log"
	"time"

	"github.com/matt-g-everett/blobtx/gallery"
	"github.com/matt-g-everett/blobtx/morph"
	"github.com/matt-g-everett/blobtx/shape"
	"github.com/matt-g-everett/blobtx/theme"
	"github.com/matt-g-everett/blobtx/util"
)

// Controller runs the display: it cycles the blob shapes, swaps the
// images and follows the theme. Its state only changes on the loop
// goroutine; HandleControl, SetShapes and SetImages post there.
type Controller struct {
	loop  *morph.Loop
	blobs [2]*morph.Morph

	shapes       []string
	rotation     Rotation
	duration     time.Duration
	lastRotation time.Duration

	gallery       *gallery.Gallery
	images        [2]string
	imageInterval time.Duration
	lastImages    time.Duration

	theme       *theme.Switcher
	prefersDark bool

	started bool
	ticking bool
	now     time.Duration
	frame   morph.FrameID
}

// NewController creates a Controller from config. Nothing moves until Start.
func NewController(config Config, loop *morph.Loop, g *gallery.Gallery, switcher *theme.Switcher) (*Controller, error) {
	easing, err := util.Easing(config.Animation.Easing)
	if err != nil {
		return nil, fmt.Errorf("stream: %w", err)
	}

	c := new(Controller)
	c.loop = loop
	c.shapes = append([]string(nil), config.Animation.Shapes...)
	c.rotation = NewRotation(c.shapes)
	c.duration = config.AnimationDuration()

	cache := shape.NewCache(config.Animation.CacheSize)
	for i := range c.blobs {
		c.blobs[i] = morph.NewMorph(loop, cache, c.rotation.Current[i])
		c.blobs[i].SetEasing(easing)
	}

	c.gallery = g
	c.imageInterval = config.GalleryInterval()
	if len(config.Gallery.Initial) == 2 {
		c.images = [2]string{config.Gallery.Initial[0], config.Gallery.Initial[1]}
	} else {
		c.images = g.Next(c.images)
	}

	c.theme = switcher
	c.prefersDark = config.Theme.PrefersDark
	return c, nil
}

// Start begins animating on the next loop step.
func (c *Controller) Start() {
	c.loop.Post(c.start)
}

func (c *Controller) start() {
	if c.started {
		return
	}
	c.started = true

	c.theme.Init(c.prefersDark, c.now)
	c.animate()
	c.frame = c.loop.RequestFrame(c.tick)
}

// Stop cancels every outstanding frame. Call it on the loop goroutine or
// once the loop has stopped stepping.
func (c *Controller) Stop() {
	if c.frame != 0 {
		c.loop.CancelFrame(c.frame)
		c.frame = 0
	}
	for _, m := range c.blobs {
		m.Stop()
	}
	c.started = false
	c.ticking = false
}

func (c *Controller) tick(now time.Duration) {
	c.frame = 0
	c.now = now
	if !c.ticking {
		c.ticking = true
		c.lastRotation = now
		c.lastImages = now
	}

	if now-c.lastRotation >= c.duration {
		c.rotation = c.rotation.Next(c.shapes)
		c.animate()
		c.lastRotation = now
	}

	if now-c.lastImages >= c.imageInterval {
		c.images = c.gallery.Next(c.images)
		c.lastImages = now
	}

	c.frame = c.loop.RequestFrame(c.tick)
}

func (c *Controller) animate() {
	for i, m := range c.blobs {
		m.Animate(c.rotation.Current[i], c.rotation.Target[i], c.duration)
	}
}

// HandleControl applies a control message on the loop goroutine.
func (c *Controller) HandleControl(msg ControlMessage) {
	c.loop.Post(func() {
		c.applyControl(msg)
	})
}

func (c *Controller) applyControl(msg ControlMessage) {
	switch msg.Type {
	case ToggleTheme:
		c.theme.Toggle(c.now)
	case SetTheme:
		if msg.Dark != nil {
			c.theme.Set(*msg.Dark, c.now)
		}
	case SystemTheme:
		if msg.Dark != nil {
			c.theme.SystemChanged(*msg.Dark, c.now)
		}
	case NextImages:
		c.images = c.gallery.Next(c.images)
		c.lastImages = c.now
	default:
		log.Printf("stream: ignoring control message %q", msg.Type)
	}
}

// SetShapes replaces the shape cycle from the next rotation on.
func (c *Controller) SetShapes(paths []string) {
	if len(paths) == 0 {
		return
	}
	paths = append([]string(nil), paths...)
	c.loop.Post(func() {
		c.shapes = paths
	})
}

// SetImages replaces the image library from the next swap on.
func (c *Controller) SetImages(images []string) {
	images = append([]string(nil), images...)
	c.loop.Post(func() {
		c.gallery.SetImages(images)
	})
}

// Blob returns the morph behind blob i (0 or 1).
func (c *Controller) Blob(i int) *morph.Morph {
	return c.blobs[i]
}

func (c *Controller) Rotation() Rotation {
	return c.rotation
}

func (c *Controller) Images() [2]string {
	return c.images
}

// CalculateFrame implements Animation.
func (c *Controller) CalculateFrame(now time.Duration) *Frame {
	return &Frame{
		Blobs:  [2]string{c.blobs[0].Path(), c.blobs[1].Path()},
		Images: c.images,
		Theme:  c.theme.Name(),
		Colors: c.theme.Colors(now),
	}
}
