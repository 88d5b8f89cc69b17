package stream

import (
	"encoding/json"
	"fmt"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Control message types.
const (
	ControlNext      = "next"
	ControlPause     = "pause"
	ControlResume    = "resume"
	ControlTimescale = "timescale"
)

// ControlMessage is a command received on the control topic.
type ControlMessage struct {
	Type  string  `json:"type"`
	Value float64 `json:"value,omitempty"`
}

// Control applies commands from the control topic to a Controller.
type Control struct {
	client     mqtt.Client
	topic      string
	controller *Controller
}

// NewControl creates an instance of a Control.
func NewControl(config Config, client mqtt.Client, controller *Controller) *Control {
	c := new(Control)
	c.client = client
	c.topic = config.Mqtt.Topics.Control
	c.controller = controller
	return c
}

// Subscribe listens on the control topic. It has to be called again after a
// reconnect.
func (c *Control) Subscribe() error {
	token := c.client.Subscribe(c.topic, 1, c.handleMessage)
	token.Wait()
	return token.Error()
}

func (c *Control) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	log.Printf("Received msg %d on %s: %s", msg.MessageID(), msg.Topic(), msg.Payload())

	var message ControlMessage
	if err := json.Unmarshal(msg.Payload(), &message); err != nil {
		log.Printf("Bad control message: %v", err)
		return
	}
	if err := c.Apply(message); err != nil {
		log.Printf("Control message not applied: %v", err)
	}
}

// Apply carries out a control message.
func (c *Control) Apply(message ControlMessage) error {
	switch message.Type {
	case ControlNext:
		c.controller.Next()
	case ControlPause:
		c.controller.Pause()
	case ControlResume:
		c.controller.Resume()
	case ControlTimescale:
		return c.controller.SetTimescale(message.Value)
	default:
		return fmt.Errorf("unknown control type %q", message.Type)
	}
	return nil
}
