// Command preview renders the animation rotation in a desktop window instead
// of streaming it over MQTT.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/matt-g-everett/ledtween/stream"
)

const (
	columns     = 25
	cellSize    = 24
	cellPadding = 2
	infoHeight  = 40
)

// Preview is an ebiten game showing a Controller's frames as a grid of pixels.
type Preview struct {
	controller *stream.Controller
	start      time.Time
	frame      *stream.Frame
	rows       int
}

func newPreview(controller *stream.Controller, numPixels int) *Preview {
	p := new(Preview)
	p.controller = controller
	p.start = time.Now()
	p.rows = (numPixels + columns - 1) / columns
	return p
}

// Update advances the controller and handles input.
func (p *Preview) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		p.controller.Next()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		if p.controller.Status().Paused {
			p.controller.Resume()
		} else {
			p.controller.Pause()
		}
	}

	p.frame = p.controller.CalculateFrame(time.Since(p.start).Milliseconds())
	return nil
}

// Draw paints every pixel of the last frame.
func (p *Preview) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	if p.frame == nil {
		return
	}

	for i, c := range p.frame.Pixels() {
		x := float32((i%columns)*cellSize + cellPadding)
		y := float32((i/columns)*cellSize + cellPadding + infoHeight)
		r, g, b := c.Clamped().RGB255()
		vector.DrawFilledRect(screen, x, y, cellSize-2*cellPadding, cellSize-2*cellPadding, color.RGBA{R: r, G: g, B: b, A: 0xff}, false)
	}

	status := p.controller.Status()
	info := status.Animation
	if status.Next != "" {
		info = fmt.Sprintf("%s -> %s (%.0f%%)", status.Animation, status.Next, status.Transition*100)
	}
	if status.Paused {
		info += " [paused]"
	}
	ebitenutil.DebugPrintAt(screen, info, 10, 10)
	ebitenutil.DebugPrintAt(screen, "Space: next  P: pause", 10, 24)
}

// Layout uses a fixed logical screen.
func (p *Preview) Layout(outsideWidth, outsideHeight int) (int, int) {
	return columns * cellSize, p.rows*cellSize + infoHeight
}

func main() {
	configPath := flag.String("config", "", "YAML config file. Defaults are used when empty.")
	flag.Parse()

	config := stream.DefaultConfig()
	if *configPath != "" {
		var err error
		if config, err = stream.LoadConfig(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	controller, err := stream.NewController(config.Stream, 0)
	if err != nil {
		log.Fatalf("Failed to create controller: %v", err)
	}
	go controller.Run()

	preview := newPreview(controller, config.Stream.Pixels)
	width, height := preview.Layout(0, 0)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("ledtween preview")
	if err := ebiten.RunGame(preview); err != nil {
		log.Fatal(err)
	}
}
