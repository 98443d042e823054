package core

import "sync/atomic"

// Quadrature rotary encoder with optional pushbutton.

// encState enumerates the quadrature decode states. The asymmetric
// table below absorbs contact bounce inside the intermediate states, so
// the encoder needs no settling timer of its own.
type encState uint8

const (
	encStart encState = iota
	encCW1
	encPlus
	encCW2
	encCCW1
	encMinus
	encCCW2
)

// encTable maps (state, pinA, pinB) to the next state. A detent step is
// emitted only on the cw1->plus and ccw1->minus transitions; every
// other transition is an intermediate that a bounce can back out of
// without producing a count.
var encTable = [7][2][2]encState{
	encStart: {{encStart, encCCW1}, {encCW1, encStart}},
	encCW1:   {{encStart, encStart}, {encCW1, encPlus}},
	encPlus:  {{encStart, encCW2}, {encCW1, encPlus}},
	encCW2:   {{encStart, encCW2}, {encStart, encPlus}},
	encCCW1:  {{encStart, encCCW1}, {encStart, encMinus}},
	encMinus: {{encStart, encCCW1}, {encCCW2, encMinus}},
	encCCW2:  {{encStart, encStart}, {encCCW2, encMinus}},
}

// Acceleration: after accelThreshold consecutive non-zero polls the
// reported change is multiplied by accelFactor. This gives fast menu
// scrolling under sustained rotation without velocity timing.
const (
	accelThreshold = 3
	accelFactor    = 5
)

// EncoderConfig holds the configuration for a rotary encoder. All three
// pins share the same polarity and pull configuration. PinSwitch may be
// PinInvalid for encoders without a pushbutton.
type EncoderConfig struct {
	PinA      Pin
	PinB      Pin
	PinSwitch Pin
	Polarity  Polarity
	Pull      PinPull

	// OnChange, if set, is invoked with each raw step (+1/-1) as it is
	// decoded. Interrupt context; must not block.
	OnChange func(change int)
}

// Encoder decodes a two-phase rotary encoder from GPIO edge interrupts
// and accumulates signed detent steps. Poll-side callers drain the
// accumulator with Change or ChangeAccel.
type Encoder struct {
	cfg EncoderConfig
	drv PinDriver

	state  encState
	change atomic.Int32

	// fastCount is only touched by the polling side.
	fastCount int

	button *Switch
}

// NewEncoder configures both quadrature pins for edge interrupts and,
// if PinSwitch is valid, the pushbutton as an embedded Switch.
func NewEncoder(drv PinDriver, disp *Dispatcher, clock *Clock, cfg EncoderConfig) (*Encoder, error) {
	e := &Encoder{cfg: cfg, drv: drv}
	if err := drv.Configure(cfg.PinA, ModeIntBoth, cfg.Pull); err != nil {
		return nil, err
	}
	if err := drv.Configure(cfg.PinB, ModeIntBoth, cfg.Pull); err != nil {
		return nil, err
	}
	disp.Register(cfg.PinA, e.onInterrupt)
	disp.Register(cfg.PinB, e.onInterrupt)

	if cfg.PinSwitch.Valid() {
		btn, err := NewSwitch(drv, disp, clock, SwitchConfig{
			Pin:      cfg.PinSwitch,
			Polarity: cfg.Polarity,
			Pull:     cfg.Pull,
		})
		if err != nil {
			return nil, err
		}
		e.button = btn
	}

	// Seed the state machine from the current pin levels.
	e.update()
	return e, nil
}

// Change returns the accumulated position change since the last call
// and resets it. Positive for clockwise.
func (e *Encoder) Change() int {
	return int(e.change.Swap(0))
}

// ChangeAccel is Change with acceleration: several non-zero polls in a
// row multiply the reported change. Depends on being polled at regular
// intervals.
func (e *Encoder) ChangeAccel() int {
	change := e.Change()
	if change == 0 {
		e.fastCount = 0
	} else if e.fastCount++; e.fastCount > accelThreshold {
		change *= accelFactor
	}
	return change
}

// IsPressed returns the debounced state of the pushbutton, or false if
// the encoder has none.
func (e *Encoder) IsPressed() bool {
	if e.button == nil {
		return false
	}
	return e.button.IsOn()
}

// WasPressed reports a one-shot pushbutton press since the last call.
func (e *Encoder) WasPressed() bool {
	if e.button == nil {
		return false
	}
	return e.button.TurnedOn()
}

// Button exposes the embedded pushbutton switch, or nil.
func (e *Encoder) Button() *Switch {
	return e.button
}

// onInterrupt runs in interrupt context on every edge of either
// quadrature pin.
func (e *Encoder) onInterrupt() {
	change := e.update()
	if change != 0 {
		e.change.Add(int32(change))
		if e.cfg.OnChange != nil {
			e.cfg.OnChange(change)
		}
	}
}

// update samples both pins, advances the decode table and returns the
// incremental change (+1, -1 or 0). Interrupt context.
func (e *Encoder) update() int {
	a := e.drv.Read(e.cfg.PinA)
	b := e.drv.Read(e.cfg.PinB)
	if e.cfg.Polarity == OnLow {
		a = !a
		b = !b
	}
	prev := e.state
	e.state = encTable[prev][boolIdx(a)][boolIdx(b)]
	switch {
	case e.state == encPlus && prev == encCW1:
		return +1
	case e.state == encMinus && prev == encCCW1:
		return -1
	}
	return 0
}

func boolIdx(b bool) int {
	if b {
		return 1
	}
	return 0
}
