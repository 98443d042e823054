package core

// Debouncing for two-state inputs such as digital GPIO or analog gates.

// debounceState tracks where a debounced input is in its settling
// cycle.
type debounceState uint8

const (
	stateLow debounceState = iota
	stateLowSettling
	stateHigh
	stateHighSettling
)

// debounceSettleUs is the time an input must hold still after a
// transition before another transition in the same direction is
// accepted.
const debounceSettleUs = 2000

// Debouncer filters spurious rapid transitions from a noisy binary
// signal using a four-state machine. It can be driven from interrupt
// events (Switch, Encoder) or by polling (Gate): either way the caller
// reports the direction the raw input is moving and the Debouncer
// decides whether that counts as a real edge.
//
// A Debouncer instance belongs to exactly one execution context; it
// keeps no synchronized state of its own.
type Debouncer struct {
	clock     *Clock
	state     debounceState
	lastCheck uint32
}

// NewDebouncer returns a Debouncer timed by the given clock.
func NewDebouncer(clock *Clock) *Debouncer {
	return &Debouncer{clock: clock}
}

// Process feeds one directional observation into the state machine:
// dir > 0 for an input going high, dir < 0 for going low, 0 for no
// change. It returns the debounced level and whether this call started
// a transition.
//
// The reported edge is the instant a stable state leaves for its
// settling counterpart, so edges are seen immediately; bounce is
// rejected because further inputs in the same direction are ignored
// until the settling window has elapsed.
func (d *Debouncer) Process(dir int) (high, changed bool) {
	d.checkSettled()
	if d.state == stateLow && dir > 0 {
		d.state = stateHighSettling
		changed = true
	} else if d.state == stateHigh && dir < 0 {
		d.state = stateLowSettling
		changed = true
	}
	return d.isHigh(), changed
}

// Value returns the current debounced level. Equivalent to Process(0)
// without the edge bookkeeping.
func (d *Debouncer) Value() bool {
	d.checkSettled()
	return d.isHigh()
}

// checkSettled resolves a settling state to its stable counterpart once
// the settling window has passed since the last check. The check is
// lazy: it runs on every Process/Value call rather than from a timer.
func (d *Debouncer) checkSettled() {
	t := d.clock.Us()
	if t-d.lastCheck >= debounceSettleUs {
		if d.state == stateLowSettling {
			d.state = stateLow
		} else if d.state == stateHighSettling {
			d.state = stateHigh
		}
	}
	d.lastCheck = t
}

func (d *Debouncer) isHigh() bool {
	return d.state == stateHigh || d.state == stateHighSettling
}
