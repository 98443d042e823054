package core

// TickSource is the abstract free-running counter that core timekeeping
// is built on. Platform-specific implementations read the actual
// hardware timer.
type TickSource interface {
	// Ticks returns the current value of a free-running 32-bit counter.
	// The counter wraps; Clock handles the wraparound.
	Ticks() uint32

	// Hz returns the counter frequency in ticks per second.
	Hz() uint32
}

// Clock converts a narrow hardware tick counter into wraparound-safe
// 64-bit microsecond timestamps.
//
// The divisor from ticks to microseconds is computed once at
// construction because an integer division on every read is too slow
// for the polling rates involved.
type Clock struct {
	src        TickSource
	ticksPerUs uint32

	// wrapUs is the period, in microseconds, after which Us() wraps.
	wrapUs uint64

	// Wraparound tracking for NowUs. Poll-context only; see NowUs.
	lastUs uint32
	offset uint64
}

// NewClock builds a Clock over the given tick source. The source
// frequency must be at least 1 MHz (one tick per microsecond).
func NewClock(src TickSource) *Clock {
	tpu := src.Hz() / 1000000
	if tpu == 0 {
		tpu = 1
	}
	return &Clock{
		src:        src,
		ticksPerUs: tpu,
		wrapUs:     uint64(1<<32) / uint64(tpu),
	}
}

// Us returns microseconds since startup as a 32-bit value. It wraps
// after 2^32 counter ticks (about 21.5 seconds at 200 MHz).
func (c *Clock) Us() uint32 {
	return c.src.Ticks() / c.ticksPerUs
}

// NowUs returns microseconds since startup as a 64-bit value that does
// not wrap. Successive calls never go backwards.
//
// Wraps of the underlying counter are detected by comparing against the
// previous reading, so NowUs must be called at least once per wrap
// period of the short counter. A missed wrap silently produces a
// timestamp that is short by one wrap period; there is no way to detect
// that without hardware wrap interrupts.
//
// NowUs keeps unsynchronized state and must only be called from poll
// context, never from an interrupt handler.
func (c *Clock) NowUs() uint64 {
	us := c.Us()
	if us < c.lastUs {
		c.offset += c.wrapUs
	}
	c.lastUs = us
	return uint64(us) + c.offset
}

// WrapUs returns the wrap period of the short-form counter in
// microseconds. Callers use it to size polling intervals.
func (c *Clock) WrapUs() uint64 {
	return c.wrapUs
}
