//go:build linux && arm

package platform

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/host/v3"
	"periph.io/x/host/v3/bcm283x"
)

// RPiGPIO drives the paddle, key-out, and sidetone lines over
// periph.io's bcm283x GPIO pins.
type RPiGPIO struct {
	dit      gpio.PinIn
	dah      gpio.PinIn
	keyOut   gpio.PinOut
	sidetone gpio.PinOut
}

// OpenGPIO initializes periph's host drivers and configures the four
// pins the core tick loop touches every iteration.
func OpenGPIO() (*RPiGPIO, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("platform: host.Init: %w", err)
	}
	g := &RPiGPIO{
		dit:      bcm283x.GPIO5,
		dah:      bcm283x.GPIO6,
		keyOut:   bcm283x.GPIO13,
		sidetone: bcm283x.GPIO19,
	}
	if err := g.dit.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("platform: dit pin: %w", err)
	}
	if err := g.dah.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("platform: dah pin: %w", err)
	}
	if err := g.keyOut.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("platform: key-out pin: %w", err)
	}
	if err := g.sidetone.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("platform: sidetone pin: %w", err)
	}
	return g, nil
}

func (g *RPiGPIO) ReadPaddle(p Paddle) bool {
	var pin gpio.PinIn
	if p == PaddleDit {
		pin = g.dit
	} else {
		pin = g.dah
	}
	// Paddles are pulled up; a closed contact reads Low.
	return pin.Read() == gpio.Low
}

func (g *RPiGPIO) SetKeyOut(on bool) {
	g.keyOut.Out(gpio.Level(on))
}

func (g *RPiGPIO) SetSidetone(on bool) {
	g.sidetone.Out(gpio.Level(on))
}
