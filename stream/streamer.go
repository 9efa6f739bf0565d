package stream

import (
	"bytes"
	"context"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/blobtx/morph"
)

// An Output receives every encoded frame that differs from the last one.
// Publish is called on the loop goroutine and must not block.
type Output interface {
	Publish(data []byte)
}

// Streamer drives the loop and sends the resulting frames to MQTT and any
// extra outputs. A nil MQTT client disables the MQTT side.
type Streamer struct {
	config    Config
	client    mqtt.Client
	loop      *morph.Loop
	animation Animation
	controls  ControlHandler
	outputs   []Output

	last  []byte
	queue chan []byte
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(config Config, client mqtt.Client, loop *morph.Loop, animation Animation, controls ControlHandler) *Streamer {
	s := new(Streamer)
	s.config = config
	s.client = client
	s.loop = loop
	s.animation = animation
	s.controls = controls
	s.queue = make(chan []byte, 1)
	return s
}

// AddOutput registers another frame destination.
func (s *Streamer) AddOutput(o Output) {
	s.outputs = append(s.outputs, o)
}

// Subscribe listens for control messages on the MQTT control topic.
func (s *Streamer) Subscribe() error {
	if s.client == nil {
		return nil
	}
	if token := s.client.Subscribe(s.config.Mqtt.Topics.Control, 0, s.handleControlMessages); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	return nil
}

func (s *Streamer) handleControlMessages(client mqtt.Client, msg mqtt.Message) {
	log.Printf("Received msg %d on %s: %s", msg.MessageID(), msg.Topic(), msg.Payload())

	m, err := DecodeControl(msg.Payload())
	if err != nil {
		log.Println(err)
		return
	}
	s.controls.HandleControl(m)
}

// SendFrame renders the frame for now and hands it on if it changed.
func (s *Streamer) SendFrame(now time.Duration) {
	f := s.animation.CalculateFrame(now)
	b, err := f.MarshalBinary()
	if err != nil {
		log.Printf("stream: encode frame: %v", err)
		return
	}
	if bytes.Equal(b, s.last) {
		return
	}
	s.last = b

	if s.client != nil {
		s.enqueue(b)
	}
	for _, o := range s.outputs {
		o.Publish(b)
	}
}

// enqueue keeps only the newest frame waiting for the MQTT publisher.
func (s *Streamer) enqueue(b []byte) {
	for {
		select {
		case s.queue <- b:
			return
		default:
		}
		select {
		case <-s.queue:
		default:
		}
	}
}

func (s *Streamer) publish(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case b := <-s.queue:
			token := s.client.Publish(s.config.Mqtt.Topics.Stream, 0, false, b)
			token.Wait()
			if err := token.Error(); err != nil {
				log.Printf("stream: publish: %v", err)
			}
		}
	}
}

// Run steps the loop once per frame interval and sends a frame after each
// step, until ctx is done.
func (s *Streamer) Run(ctx context.Context) error {
	if s.client != nil {
		go s.publish(ctx)
	}

	publishTimer := time.NewTicker(s.config.FrameInterval())
	defer publishTimer.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-publishTimer.C:
			now := t.Sub(start)
			s.loop.Step(now)
			s.SendFrame(now)
		}
	}
}
