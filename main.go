package main

import (
	"flag"
	"log"
	"os"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/matt-g-everett/ledtween/api"
	"github.com/matt-g-everett/ledtween/stream"
)

type app struct {
	Config     stream.Config
	Client     mqtt.Client
	Controller *stream.Controller
	Streamer   *stream.Streamer
	Control    *stream.Control
	API        *api.API
}

func newApp(config stream.Config) (*app, error) {
	a := new(app)
	a.Config = config

	controller, err := stream.NewController(config.Stream, 0)
	if err != nil {
		return nil, err
	}
	a.Controller = controller

	options := mqtt.NewClientOptions().
		AddBroker(config.Mqtt.URL).
		SetClientID(config.Mqtt.ClientID).
		SetUsername(config.Mqtt.Username).
		SetPassword(config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetAutoReconnect(true).
		SetOnConnectHandler(a.handleOnConnect).
		SetConnectionLostHandler(a.handleConnectionLost)
	a.Client = mqtt.NewClient(options)

	a.Streamer = stream.NewStreamer(config, a.Client, controller)
	a.Control = stream.NewControl(config, a.Client, controller)
	a.API = api.NewAPI(config.API, controller)
	return a, nil
}

func (a *app) handleOnConnect(client mqtt.Client) {
	log.Println("Connected")
	if err := a.Control.Subscribe(); err != nil {
		log.Printf("Failed to subscribe to %s: %v", a.Config.Mqtt.Topics.Control, err)
	}
}

func (a *app) handleConnectionLost(client mqtt.Client, err error) {
	log.Printf("Connection lost: %v", err)
}

func (a *app) run() {
	if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("Failed to connect to %s: %v", a.Config.Mqtt.URL, token.Error())
	}

	go func() {
		if err := a.API.Serve(); err != nil {
			log.Printf("API stopped: %v", err)
		}
	}()
	go a.Controller.Run()
	a.Streamer.Run()
}

func main() {
	// mqtt.DEBUG = log.New(os.Stdout, "", 0)
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	flag.Parse()

	// Read the config
	config, err := stream.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Printf("Config: %+v", config.Stream)

	a, err := newApp(config)
	if err != nil {
		log.Fatalf("Failed to create streamer: %v", err)
	}
	a.run()
}
