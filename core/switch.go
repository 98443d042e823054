package core

import "sync/atomic"

// Polarity specifies whether a high input level counts as "on" or
// "off".
type Polarity uint8

const (
	OnHigh Polarity = iota
	OnLow
)

// SwitchConfig holds the configuration for one switch input.
type SwitchConfig struct {
	Pin      Pin
	Polarity Polarity
	Pull     PinPull

	// OnChange, if set, is invoked on every debounced state change.
	// It is called in interrupt context and must not block.
	OnChange func(on bool)
}

// Switch is a debounced on/off input. The pin's GPIO interrupt keeps
// the state current so constant polling is not required (note that this
// limits the choice of input pins when several switches are in use:
// each needs its own interrupt slot in the Dispatcher).
//
// Poll-side callers use IsOn for the live value and TurnedOn/TurnedOff
// for one-shot edge queries.
type Switch struct {
	cfg       SwitchConfig
	drv       PinDriver
	debouncer *Debouncer

	turnedOn  atomic.Bool
	turnedOff atomic.Bool
}

// NewSwitch configures the pin as an interrupt-on-both-edges input,
// registers with the interrupt dispatcher, and settles the initial
// state. The edge produced by reading the initial level is swallowed so
// callers only see real transitions.
func NewSwitch(drv PinDriver, disp *Dispatcher, clock *Clock, cfg SwitchConfig) (*Switch, error) {
	s := &Switch{
		cfg:       cfg,
		drv:       drv,
		debouncer: NewDebouncer(clock),
	}
	if err := drv.Configure(cfg.Pin, ModeIntBoth, cfg.Pull); err != nil {
		return nil, err
	}
	disp.Register(cfg.Pin, s.onInterrupt)

	// Prime the debouncer with the current level, with the observer
	// disabled so initialization does not look like a press.
	cb := s.cfg.OnChange
	s.cfg.OnChange = nil
	s.debounce()
	s.TurnedOn()
	s.TurnedOff()
	s.cfg.OnChange = cb
	return s, nil
}

// IsOn returns the debounced on/off value.
func (s *Switch) IsOn() bool {
	return s.onFromHigh(s.debouncer.Value())
}

// TurnedOn reports whether the switch transitioned off->on since the
// last call. The flag resets on read.
func (s *Switch) TurnedOn() bool {
	return s.turnedOn.Swap(false)
}

// TurnedOff reports whether the switch transitioned on->off since the
// last call. The flag resets on read.
func (s *Switch) TurnedOff() bool {
	return s.turnedOff.Swap(false)
}

// onInterrupt runs in interrupt context on every physical edge.
func (s *Switch) onInterrupt() {
	s.debounce()
}

// debounce feeds the raw pin level into the debouncer and latches edge
// flags. Runs in interrupt context.
func (s *Switch) debounce() bool {
	dir := -1
	if s.drv.Read(s.cfg.Pin) {
		dir = +1
	}
	high, changed := s.debouncer.Process(dir)
	on := s.onFromHigh(high)
	if changed {
		if on {
			s.turnedOn.Store(true)
		} else {
			s.turnedOff.Store(true)
		}
		if s.cfg.OnChange != nil {
			s.cfg.OnChange(on)
		}
	}
	return on
}

// onFromHigh applies the configured polarity to a raw high/low level.
func (s *Switch) onFromHigh(high bool) bool {
	return high == (s.cfg.Polarity == OnHigh)
}
