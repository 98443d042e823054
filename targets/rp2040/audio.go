//go:build rp2040

package main

import (
	"errors"
	"machine"

	"eurocore/firmware"
)

const (
	audioSampleRate = 48000
	audioBlockLen   = 32
)

type machinePWM interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	SetTop(top uint32)
	Top() uint32
	Set(channel uint8, value uint32)
	Enable(enable bool)
}

func pwmForPin(pin machine.Pin) machinePWM {
	slice, err := machine.PWMPeripheral(pin)
	if err != nil {
		return nil
	}
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	case 7:
		return machine.PWM7
	}
	return nil
}

// audioOut plays samples by modulating PWM duty at the audio rate
// with a fixed ~62.5kHz carrier.
type audioOut struct {
	pwm machinePWM
	ch  uint8
	top uint32
}

func newAudioOut(pin machine.Pin) (*audioOut, error) {
	pwm := pwmForPin(pin)
	if pwm == nil {
		return nil, errors.New("no PWM slice for pin")
	}
	const carrierHz = 62500
	if err := pwm.Configure(machine.PWMConfig{Period: 1e9 / carrierHz}); err != nil {
		return nil, err
	}
	ch, err := pwm.Channel(pin)
	if err != nil {
		return nil, err
	}
	pwm.SetTop(0xFFFF)
	a := &audioOut{pwm: pwm, ch: ch, top: pwm.Top()}
	pwm.Set(ch, a.top/2)
	pwm.Enable(true)
	return a, nil
}

func (a *audioOut) write(sample int16) {
	duty := uint32(int32(sample)+0x8000) * a.top >> 16
	a.pwm.Set(a.ch, duty)
}

// AudioPumpTask renders one block per pass and refreshes the gate
// state at block rate. Render fills the block with signed samples;
// when nil the output stays at midscale.
type AudioPumpTask struct {
	Out    *audioOut
	HW     *firmware.Hardware
	Render func(buf []int16)

	buf [audioBlockLen]int16
}

func (t *AudioPumpTask) IntervalUs() uint32 {
	return audioBlockLen * 1_000_000 / audioSampleRate
}

func (t *AudioPumpTask) Init() {}

func (t *AudioPumpTask) Execute() {
	t.HW.AudioTick()
	if t.Render == nil {
		return
	}
	t.Render(t.buf[:])
	for _, s := range t.buf {
		t.Out.write(s)
	}
}
