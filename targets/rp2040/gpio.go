//go:build rp2040

package main

import (
	"errors"
	"machine"

	"eurocore/core"
)

// machinePin translates a logical pin into the flat RP2040 GPIO number.
// The board profiles encode GPIO n as Port n>>4, Num n&0x0f, so the
// translation is just the reverse shift.
func machinePin(p core.Pin) machine.Pin {
	return machine.Pin(p.Port<<4 | p.Num)
}

// rpPins implements core.PinDriver using TinyGo's machine.Pin.
type rpPins struct {
	disp *core.Dispatcher
}

func newRPPins(disp *core.Dispatcher) *rpPins {
	return &rpPins{disp: disp}
}

func (d *rpPins) Configure(pin core.Pin, mode core.PinMode, pull core.PinPull) error {
	if !pin.Valid() {
		return errors.New("invalid pin")
	}
	mp := machinePin(pin)

	switch mode {
	case core.ModeOutput:
		mp.Configure(machine.PinConfig{Mode: machine.PinOutput})
		return nil
	case core.ModeAnalog:
		// Handled by the ADC scanner, nothing to do at the GPIO level.
		return nil
	case core.ModeInput, core.ModeIntRising, core.ModeIntFalling, core.ModeIntBoth:
		// fall through to input config below
	default:
		return errors.New("unsupported pin mode")
	}

	switch pull {
	case core.PullUp:
		mp.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	case core.PullDown:
		mp.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
	default:
		mp.Configure(machine.PinConfig{Mode: machine.PinInput})
	}

	var change machine.PinChange
	switch mode {
	case core.ModeIntRising:
		change = machine.PinRising
	case core.ModeIntFalling:
		change = machine.PinFalling
	case core.ModeIntBoth:
		change = machine.PinRising | machine.PinFalling
	default:
		return nil
	}

	disp := d.disp
	return mp.SetInterrupt(change, func(p machine.Pin) {
		disp.Dispatch(uint8(p) & 0x0f)
	})
}

func (d *rpPins) Read(pin core.Pin) bool {
	return machinePin(pin).Get()
}

func (d *rpPins) Write(pin core.Pin, level bool) {
	machinePin(pin).Set(level)
}
