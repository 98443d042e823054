//go:build rp2040

package main

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ssd1306"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"eurocore/core"
	"eurocore/firmware"
)

var textWhite = color.RGBA{255, 255, 255, 255}

func newDisplay(bus *machine.SPI, dc, reset, cs machine.Pin) *ssd1306.Device {
	dev := ssd1306.NewSPI(bus, dc, reset, cs)
	dev.Configure(ssd1306.Config{Width: 128, Height: 64})
	dev.ClearDisplay()
	return &dev
}

// DisplayTask redraws the status page: current note, pot position,
// gate state and the encoder tally.
type DisplayTask struct {
	Display *ssd1306.Device
	HW      *firmware.Hardware

	encoderCount int
}

func (t *DisplayTask) IntervalUs() uint32 { return 100_000 }

func (t *DisplayTask) Init() {
	t.Display.ClearDisplay()
}

func (t *DisplayTask) Execute() {
	t.encoderCount += t.HW.Encoder.ChangeAccel()

	t.Display.ClearBuffer()

	pot, _ := t.HW.CVIn.Unipolar(core.Pot)

	font := &proggy.TinySZ8pt7b
	tinyfont.WriteLine(t.Display, font, 0, 12,
		"note "+core.Ftoa(t.HW.CVIn.Note(core.CV1), 1), textWhite)
	tinyfont.WriteLine(t.Display, font, 0, 26,
		"pot  "+core.Ftoa(pot, 2), textWhite)
	tinyfont.WriteLine(t.Display, font, 0, 40,
		"enc  "+core.Itoa(t.encoderCount), textWhite)

	gate := "gate -"
	if t.HW.CVIn.GateOn(core.CV1) {
		gate = "gate *"
	}
	tinyfont.WriteLine(t.Display, font, 0, 54, gate, textWhite)

	t.Display.Display()
}
