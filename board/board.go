// Package board describes the hardware profiles the firmware can be
// built for. Exactly one profile is selected at build time (the
// default "Module" production board, or "Prototype" with -tags proto);
// the rest of the firmware reads the selection through Current and
// never branches on the hardware type itself.
package board

import "eurocore/core"

// Profile is one hardware variant: its pin assignments and the
// calibration constants measured for it.
type Profile struct {
	Name string

	// ADC channel numbers for the analog scan. The target wires these
	// into the scan sequence (CV1, CV2, Pot, CV1 again for settling).
	CVIn1 uint8
	CVIn2 uint8
	PotIn uint8

	// Rotary encoder with pushbutton.
	EncoderA  core.Pin
	EncoderB  core.Pin
	EncoderSw core.Pin

	// Front-panel pushbutton.
	Button core.Pin

	// OLED display control pins (SPI bus pins are fixed by the target).
	DisplayDC    core.Pin
	DisplayReset core.Pin
	DisplayCS    core.Pin

	// Chip select for the CV output DAC, on the same SPI bus as the
	// display.
	DacCS core.Pin

	// Trigger output jack.
	TrigOut core.Pin

	// PWM audio output.
	AudioOut core.Pin

	// On-board LED.
	Led core.Pin

	Cal core.Calibration
}

// gp maps a flat GPIO number onto the (port, pin-number) scheme the
// interrupt dispatch table uses: pins sixteen apart share an interrupt
// slot.
func gp(n uint8) core.Pin {
	return core.Pin{Port: n >> 4, Num: n & 0x0f}
}
