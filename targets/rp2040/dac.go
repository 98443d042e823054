//go:build rp2040

package main

import (
	"machine"

	"eurocore/core"
)

// mcp4822 drives the MCP4822 dual 12-bit SPI DAC that feeds the CV
// output stage. Command word: bit 15 selects the channel, bit 13 the
// gain (0 = 2x for the full 4.096V range), bit 12 takes the channel
// out of shutdown, bits 0-11 carry the code.
type mcp4822 struct {
	bus *machine.SPI
	cs  machine.Pin
}

func newMCP4822(bus *machine.SPI, cs machine.Pin) *mcp4822 {
	cs.Configure(machine.PinConfig{Mode: machine.PinOutput})
	cs.High()
	return &mcp4822{bus: bus, cs: cs}
}

func (d *mcp4822) Write(ch core.DACChannel, value uint16) {
	cmd := value & 0x0fff
	cmd |= 1 << 12 // active
	if ch == core.DACOut2 {
		cmd |= 1 << 15
	}

	d.cs.Low()
	d.bus.Transfer(byte(cmd >> 8))
	d.bus.Transfer(byte(cmd))
	d.cs.High()
}
