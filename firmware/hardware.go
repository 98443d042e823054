// Package firmware assembles the core components into the running
// module: one explicitly-constructed Hardware context owning every
// device instance, plus the background tasks the main loop schedules
// around the audio callback.
package firmware

import (
	"eurocore/board"
	"eurocore/core"
)

// Led is a minimal output abstraction for the on-board LED.
type Led interface {
	Set(on bool)
}

// Config carries the platform drivers into NewHardware. Targets fill
// it from real peripherals; tests fill it with fakes.
type Config struct {
	Profile board.Profile
	Ticks   core.TickSource
	Pins    core.PinDriver
	ADC     core.AnalogReader
	DAC     core.DACDriver   // optional
	Led     Led              // optional
	Disp    *core.Dispatcher // optional, shared with the pin driver
}

// Hardware owns all the device instances for one board. There is
// exactly one Hardware per process, but it is constructed and passed
// around explicitly rather than living in package state.
type Hardware struct {
	Profile    board.Profile
	Clock      *core.Clock
	Dispatcher *core.Dispatcher
	Encoder    *core.Encoder
	Button     *core.Switch
	CVIn       *core.CVIn
	CVOut      *core.CVOut
	Led        Led
}

// NewHardware wires the core components to the given drivers. The
// panel controls are active-low with pull-ups on every profile.
func NewHardware(cfg Config) (*Hardware, error) {
	disp := cfg.Disp
	if disp == nil {
		disp = &core.Dispatcher{}
	}
	hw := &Hardware{
		Profile:    cfg.Profile,
		Dispatcher: disp,
		Led:        cfg.Led,
	}
	hw.Clock = core.NewClock(cfg.Ticks)

	enc, err := core.NewEncoder(cfg.Pins, hw.Dispatcher, hw.Clock, core.EncoderConfig{
		PinA:      cfg.Profile.EncoderA,
		PinB:      cfg.Profile.EncoderB,
		PinSwitch: cfg.Profile.EncoderSw,
		Polarity:  core.OnLow,
		Pull:      core.PullUp,
	})
	if err != nil {
		return nil, err
	}
	hw.Encoder = enc

	btn, err := core.NewSwitch(cfg.Pins, hw.Dispatcher, hw.Clock, core.SwitchConfig{
		Pin:      cfg.Profile.Button,
		Polarity: core.OnLow,
		Pull:     core.PullUp,
	})
	if err != nil {
		return nil, err
	}
	hw.Button = btn

	hw.CVIn = core.NewCVIn(cfg.ADC, hw.Clock, cfg.Profile.Cal)

	if cfg.DAC != nil {
		hw.CVOut = core.NewCVOut(cfg.DAC)
	}

	return hw, nil
}

// AudioTick is the per-block hook for the audio callback: it refreshes
// the gate state so gate edges are detected at block rate. The audio
// callback is the only code that runs above the main loop, so this is
// the one core entry point called from that context.
func (hw *Hardware) AudioTick() {
	hw.CVIn.UpdateGates()
}
