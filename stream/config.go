package stream

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Config is the yaml configuration of the streamer.
type Config struct {
	Mqtt   MqttConfig   `yaml:"mqtt"`
	Stream StreamConfig `yaml:"stream"`
	API    APIConfig    `yaml:"api"`
}

// MqttConfig describes the broker connection.
type MqttConfig struct {
	URL      string `yaml:"url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	ClientID string `yaml:"clientId"`
	Topics   struct {
		Stream  string `yaml:"stream"`
		Control string `yaml:"control"`
	} `yaml:"topics"`
}

// StreamConfig describes what is rendered and how often.
type StreamConfig struct {
	Pixels         int           `yaml:"pixels"`
	FrameRate      float64       `yaml:"frameRate"`
	AnimationTime  time.Duration `yaml:"animationTime"`
	TransitionTime time.Duration `yaml:"transitionTime"`
	Easing         string        `yaml:"easing"`
	Animations     []string      `yaml:"animations"`
}

// APIConfig describes the http server.
type APIConfig struct {
	Listen string `yaml:"listen"`
	Static string `yaml:"static"`
}

// DefaultConfig returns the configuration used for anything a file leaves out.
func DefaultConfig() Config {
	var c Config
	c.applyDefaults()
	return c
}

// LoadConfig reads a yaml config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes yaml config and fills in defaults.
func ParseConfig(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	c.applyDefaults()
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Mqtt.URL == "" {
		c.Mqtt.URL = "tcp://localhost:1883"
	}
	if c.Mqtt.ClientID == "" {
		c.Mqtt.ClientID = "ledtween"
	}
	if c.Mqtt.Topics.Stream == "" {
		c.Mqtt.Topics.Stream = "led/stream"
	}
	if c.Mqtt.Topics.Control == "" {
		c.Mqtt.Topics.Control = "led/control"
	}

	if c.Stream.Pixels <= 0 {
		c.Stream.Pixels = NumPixels
	}
	if c.Stream.FrameRate <= 0 {
		c.Stream.FrameRate = 30
	}
	if c.Stream.AnimationTime <= 0 {
		c.Stream.AnimationTime = 60 * time.Second
	}
	if c.Stream.TransitionTime <= 0 {
		c.Stream.TransitionTime = 5 * time.Second
	}
	if c.Stream.Easing == "" {
		c.Stream.Easing = "quadratic.inout"
	}
	if len(c.Stream.Animations) == 0 {
		c.Stream.Animations = AnimationNames()
	}

	if c.API.Listen == "" {
		c.API.Listen = ":3000"
	}
	if c.API.Static == "" {
		c.API.Static = "client/dist"
	}
}
