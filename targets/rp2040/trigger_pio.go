//go:build rp2040

package main

import (
	"machine"
	"time"

	pio "github.com/tinygo-org/pio/rp2-pio"
)

// PIO program for the trigger output. A write to the TX FIFO fires
// one fixed-width high pulse; the state machine idles in pull until
// the next write, so pulse timing never depends on the main loop.
//
//	.wrap_target
//	    pull block      ; wait for a trigger word
//	    out x, 32       ; x = high time in loop cycles
//	    set pins, 1
//	high:
//	    jmp x-- high
//	    set pins, 0
//	.wrap
var triggerInstructions = []uint16{
	0x80a0, // pull block
	0x6020, // out x, 32
	0xe001, // set pins, 1
	0x0043, // jmp x-- high
	0xe000, // set pins, 0
}

const triggerWrapTarget, triggerWrap = 0, 4

// TriggerOut drives the trigger jack from a PIO state machine.
type TriggerOut struct {
	sm     pio.StateMachine
	cycles uint32
}

// NewTriggerOut claims a state machine on the given PIO block and
// loads the pulse program onto the trigger pin.
func NewTriggerOut(sm pio.StateMachine, pin machine.Pin) (*TriggerOut, error) {
	Pio := sm.PIO()

	offset, err := Pio.AddProgram(triggerInstructions, -1)
	if err != nil {
		return nil, err
	}
	pin.Configure(machine.PinConfig{Mode: Pio.PinMode()})
	sm.SetPindirsConsecutive(pin, 1, true)

	cfg := pio.DefaultStateMachineConfig()
	cfg.SetWrap(offset+triggerWrapTarget, offset+triggerWrap)
	cfg.SetSetPins(pin, 1)
	sm.Init(offset, cfg)
	sm.SetEnabled(true)

	t := &TriggerOut{sm: sm}
	t.SetWidth(2 * time.Millisecond)
	return t, nil
}

// SetWidth sets the pulse width for subsequent triggers.
func (t *TriggerOut) SetWidth(width time.Duration) {
	// The jmp loop is one instruction, so one cycle per count.
	cycles := uint64(width) * uint64(machine.CPUFrequency()) / uint64(time.Second)
	if cycles == 0 {
		cycles = 1
	}
	t.cycles = uint32(cycles)
}

// Trigger fires one pulse. Non-blocking unless four triggers are
// already queued behind an unfinished pulse.
func (t *TriggerOut) Trigger() {
	t.sm.TxPut(t.cycles - 1)
}
