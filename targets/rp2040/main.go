//go:build rp2040

package main

import (
	"machine"

	pio "github.com/tinygo-org/pio/rp2-pio"

	"eurocore/board"
	"eurocore/core"
	"eurocore/firmware"
)

// ledPin adapts a GPIO to the firmware LED interface.
type ledPin struct {
	pin machine.Pin
}

func newLedPin(p core.Pin) *ledPin {
	mp := machinePin(p)
	mp.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &ledPin{pin: mp}
}

func (l *ledPin) Set(on bool) { l.pin.Set(on) }

func serialDebug(msg string) {
	machine.Serial.Write([]byte(msg))
	machine.Serial.Write([]byte("\r\n"))
}

func main() {
	// Clear any watchdog state left over from a previous reset.
	machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})

	core.SetDebugWriter(serialDebug)

	profile := board.Current

	disp := &core.Dispatcher{}
	pins := newRPPins(disp)
	adc := newRPADC(profile)

	machine.SPI0.Configure(machine.SPIConfig{Frequency: 8 * machine.MHz})
	dac := newMCP4822(machine.SPI0, machinePin(profile.DacCS))
	oled := newDisplay(machine.SPI0,
		machinePin(profile.DisplayDC),
		machinePin(profile.DisplayReset),
		machinePin(profile.DisplayCS))

	led := newLedPin(profile.Led)

	hw, err := firmware.NewHardware(firmware.Config{
		Profile: profile,
		Ticks:   rpTicks{},
		Pins:    pins,
		ADC:     adc,
		DAC:     dac,
		Led:     led,
		Disp:    disp,
	})
	if err != nil {
		core.Warn("hardware init failed: " + err.Error())
		return
	}

	sm, err := pio.PIO0.ClaimStateMachine()
	if err != nil {
		core.Warn("pio claim failed: " + err.Error())
		return
	}
	trig, err := NewTriggerOut(sm, machinePin(profile.TrigOut))
	if err != nil {
		core.Warn("trigger init failed: " + err.Error())
		return
	}

	audio, err := newAudioOut(machinePin(profile.AudioOut))
	if err != nil {
		core.Warn("audio init failed: " + err.Error())
		return
	}

	// Simple tracking voice: sawtooth at the pitch on CV1, pot as
	// FM depth from CV2, silent while the gate is low.
	var phase uint32
	render := func(buf []int16) {
		if !hw.CVIn.GateOn(core.CV1) {
			for i := range buf {
				buf[i] = 0
			}
			return
		}
		depth, _ := hw.CVIn.Unipolar(core.Pot)
		freq := hw.CVIn.FreqWithMod(core.CV1, core.CV2, depth)
		step := uint32((freq / audioSampleRate) * (1 << 31) * 2)
		for i := range buf {
			phase += step
			buf[i] = int16(phase >> 16)
		}
	}

	sched := core.NewScheduler(hw.Clock,
		&AdcScanTask{ADC: adc},
		&AudioPumpTask{Out: audio, HW: hw, Render: render},
		&firmware.GateLedTask{CVIn: hw.CVIn, Led: led, Trig: trig},
		&firmware.AdcMonitorTask{CVIn: hw.CVIn},
		&DisplayTask{Display: oled, HW: hw},
		&CvOutTask{HW: hw},
	)
	sched.InitAll()

	core.SetDebugEnabled(true)
	core.Debug("eurocore up on " + profile.Name)

	for {
		sched.RunAll()
	}
}

// CvOutTask tracks the CV1 pitch onto DAC output 1 and the pot onto
// output 2.
type CvOutTask struct {
	HW *firmware.Hardware
}

func (t *CvOutTask) IntervalUs() uint32 { return 1_000 }

func (t *CvOutTask) Init() {}

func (t *CvOutTask) Execute() {
	if t.HW.CVOut == nil {
		return
	}
	t.HW.CVOut.SetNote(core.DACOut1, t.HW.CVIn.Note(core.CV1))
	pot, _ := t.HW.CVIn.Unipolar(core.Pot)
	t.HW.CVOut.SetUnipolar(core.DACOut2, pot)
}
