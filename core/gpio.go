package core

// GPIO pin abstraction and shared-interrupt dispatch.

// PinMode selects how a pin is driven.
type PinMode uint8

const (
	ModeInput PinMode = iota
	ModeOutput
	ModeAnalog
	ModeIntRising  // input with interrupt on rising edge
	ModeIntFalling // input with interrupt on falling edge
	ModeIntBoth    // input with interrupt on both edges
)

// PinPull selects the pull resistor configuration.
type PinPull uint8

const (
	PullNone PinPull = iota
	PullUp
	PullDown
)

// Pin identifies a physical GPIO pin by port and pin number. The pin
// number is what the interrupt hardware demultiplexes on, so it must be
// below NumPinIrqs.
type Pin struct {
	Port uint8
	Num  uint8
}

// PinInvalid marks an absent pin (e.g. an encoder without a
// pushbutton).
var PinInvalid = Pin{Port: 0xff, Num: 0xff}

// Valid reports whether the pin refers to real hardware.
func (p Pin) Valid() bool {
	return p != PinInvalid && p.Num < NumPinIrqs
}

// PinDriver is the abstract GPIO interface that core code uses.
// Platform-specific implementations handle the actual hardware, and are
// expected to route edge interrupts for pins configured with one of the
// ModeInt modes into Dispatcher.Dispatch.
type PinDriver interface {
	// Configure sets up a pin for the given mode and pull.
	Configure(pin Pin, mode PinMode, pull PinPull) error

	// Read returns the current digital level of the pin.
	Read(pin Pin) bool

	// Write drives an output pin high or low.
	Write(pin Pin, level bool)
}

// NumPinIrqs is the number of per-pin interrupt slots. The interrupt
// controller multiplexes by pin number only, not by (port, pin).
const NumPinIrqs = 16

// Dispatcher maps pin numbers to interrupt handlers. Hardware shares
// interrupt lines between pins with the same number on different ports,
// so the table is indexed purely by pin number: two pins that differ
// only in port cannot both receive interrupts. Register keeps the first
// registrant and warns about the loser; this mirrors the interrupt
// controller's real limitation rather than hiding it.
//
// Handlers run in interrupt context. They must be short, touch only
// atomics or state owned by the interrupt side, and never block.
type Dispatcher struct {
	handlers [NumPinIrqs]func()
	ports    [NumPinIrqs]uint8
}

// Register installs handler for the pin's interrupt slot. If the slot
// is already taken by a pin on a different port the registration is
// dropped with a warning; the first device keeps the slot and the
// second will never see interrupts.
func (d *Dispatcher) Register(pin Pin, handler func()) {
	if !pin.Valid() || handler == nil {
		return
	}
	if d.handlers[pin.Num] != nil && d.ports[pin.Num] != pin.Port {
		Warn("GPIO interrupt for pin " + Utoa(uint32(pin.Port)) + "/" + Utoa(uint32(pin.Num)) +
			" already used for pin " + Utoa(uint32(pin.Num)) + " on a different port")
		return
	}
	d.handlers[pin.Num] = handler
	d.ports[pin.Num] = pin.Port
}

// Available reports whether the pin's interrupt slot is free.
func (d *Dispatcher) Available(pin Pin) bool {
	return pin.Valid() && d.handlers[pin.Num] == nil
}

// Dispatch invokes the handler registered for the given pin number.
// Called from the platform interrupt service routine.
func (d *Dispatcher) Dispatch(pinNum uint8) {
	if pinNum >= NumPinIrqs {
		return
	}
	if h := d.handlers[pinNum]; h != nil {
		h()
	}
}
