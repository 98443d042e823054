//go:build rp2040

package main

import (
	"machine"

	"eurocore/board"
	"eurocore/core"
)

// rpADC scans the analog inputs in a fixed round and serves the
// latest sample per scan slot. TinyGo's machine.ADC returns 16-bit
// left-aligned readings, which is the resolution the calibration
// tables are built for.
type rpADC struct {
	inputs [core.ScanLen]machine.ADC
	buf    [core.ScanLen]uint16
}

var adcPins = [...]machine.Pin{machine.ADC0, machine.ADC1, machine.ADC2, machine.ADC3}

func newRPADC(profile board.Profile) *rpADC {
	machine.InitADC()

	chanInput := [core.NumChannels]uint8{
		core.CV1: profile.CVIn1,
		core.CV2: profile.CVIn2,
		core.Pot: profile.PotIn,
	}

	d := &rpADC{}
	for slot := 0; slot < core.ScanLen; slot++ {
		input := chanInput[core.ScanChannel(slot)]
		adc := machine.ADC{Pin: adcPins[input]}
		adc.Configure(machine.ADCConfig{})
		d.inputs[slot] = adc
	}
	return d
}

// Scan reads every slot once. The first input also appears as the
// trailing slot so each round ends with the mux already parked on it;
// by the time slot 0 is sampled on the next round the sample-and-hold
// has settled.
func (d *rpADC) Scan() {
	for slot := 0; slot < core.ScanLen; slot++ {
		d.buf[slot] = d.inputs[slot].Get()
	}
}

func (d *rpADC) Read(slot int) uint16 {
	return d.buf[slot]
}

// AdcScanTask keeps the scan buffer fresh between control passes.
type AdcScanTask struct {
	ADC *rpADC
}

func (t *AdcScanTask) IntervalUs() uint32 { return 1_000 }
func (t *AdcScanTask) Init()              { t.ADC.Scan() }
func (t *AdcScanTask) Execute()           { t.ADC.Scan() }
