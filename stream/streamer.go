package stream

import (
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Streamer that streams RGB data frames to an ledrx device.
type Streamer struct {
	client     mqtt.Client
	controller *Controller
	topic      string
	interval   time.Duration
	start      time.Time
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(config Config, client mqtt.Client, controller *Controller) *Streamer {
	s := new(Streamer)
	s.client = client
	s.controller = controller
	s.topic = config.Mqtt.Topics.Stream
	s.interval = time.Duration(float64(time.Second) / config.Stream.FrameRate)
	s.start = time.Now()

	return s
}

// SendFrame sends the frame for runtimeMs as binary over MQTT to an ledrx device.
func (s *Streamer) SendFrame(runtimeMs int64) error {
	f := s.controller.CalculateFrame(runtimeMs)
	b, err := f.MarshalBinary()
	if err != nil {
		return err
	}
	token := s.client.Publish(s.topic, 2, false, b)
	token.Wait()
	return token.Error()
}

// Run causes the Streamer to send Frames continuously.
func (s *Streamer) Run() {
	publishTimer := time.NewTicker(s.interval)
	for {
		<-publishTimer.C
		if err := s.SendFrame(time.Since(s.start).Milliseconds()); err != nil {
			log.Printf("Failed to publish frame: %v", err)
		}
	}
}
