package core

import (
	"math"
	"sync/atomic"
)

// Analog CV input subsystem: free-running ADC readings through the
// board calibration into physical values, plus per-channel gate
// detection.

// Channel identifies one analog input.
type Channel uint8

const (
	CV1 Channel = iota
	CV2
	Pot
	NumChannels
)

// Fixed is the sentinel channel meaning "no live source": conversion
// queries against it report no value and callers keep their previous
// setting.
const Fixed = NumChannels

// ScanLen is the number of slots in the ADC scan sequence. CV1 is
// duplicated at the end so that it gets sampled twice in a row: the ADC
// is free-running and each conversion disturbs the next, and CV1 is
// usually the 1V/oct pitch input that needs the accuracy most. The
// duplicate slot is never exposed to conversion logic.
const ScanLen = int(NumChannels) + 1

// ScanChannel maps a scan slot index to the channel sampled in it.
func ScanChannel(slot int) Channel {
	if slot == int(NumChannels) {
		return CV1
	}
	return Channel(slot)
}

// AnalogReader provides the most recent raw sample for each scan slot.
// The conversion hardware runs free outside this package; CVIn only
// ever reads the result buffer.
type AnalogReader interface {
	Read(slot int) uint16
}

// Calibration holds the board-variant raw-ADC endpoints and ranges.
// All values are measured per hardware profile and compiled in.
type Calibration struct {
	// Raw CV input endpoints.
	CvZero  uint16 // reading at 0 V
	CvBiHi  uint16 // reading at +5 V (bipolar full scale)
	CvUniHi uint16 // reading at +8 V (unipolar full scale)

	// Raw potentiometer endpoints.
	PotLo uint16
	PotHi uint16

	// GateMin is the raw threshold above which a CV input counts as a
	// gate-high level.
	GateMin uint16

	// 1V/oct pitch mapping: raw endpoints and the note range they span.
	FreqLo   uint16
	FreqHi   uint16
	MinNote  int
	NumNotes int

	// HasCV2 is false on hardware without a physical second CV input;
	// reads of CV2 then return a fixed below-gate-threshold value.
	HasCV2 bool
}

// Raw input values are 16-bit; the exponential-response tables use 128
// bins and the frequency table 8192.
const (
	cvBits        = 16
	expTableBits  = 7
	freqTableBits = 13
)

// expResponse maps [0,1] to itself with an exponential curve, for
// parameters like time that feel better exponentially. Maps 0.5 to
// roughly 0.1.
func expResponse(in float32) float32 {
	const factor = 0.0129
	const expFactor = 6.3
	return factor * float32(math.Exp2(float64(in)*expFactor)-1)
}

// gate tracks the on/off state derived from thresholding one channel's
// raw value. Update runs from the audio callback; the one-shot flags
// cross over to poll context as atomics, like Switch edges, so gate and
// button edges are interchangeable to callers.
type gate struct {
	debouncer *Debouncer
	wasHigh   bool
	turnedOn  atomic.Bool
	turnedOff atomic.Bool
}

// CVIn owns the calibrated conversion pipeline and the gates. The
// lookup tables are computed once at construction and immutable
// afterwards.
type CVIn struct {
	adc AnalogReader
	cal Calibration

	potExp  *LookupTable
	cvExp   *LookupTable
	freqTab *LookupTable

	gates [NumChannels]gate
}

// NewCVIn builds the conversion tables for the given calibration and
// primes the gate state from the current readings.
func NewCVIn(adc AnalogReader, clock *Clock, cal Calibration) *CVIn {
	c := &CVIn{adc: adc, cal: cal}

	c.potExp = NewLookupTable(cvBits, expTableBits, func(index, numValues int) float32 {
		raw := float32(index << (cvBits - expTableBits))
		return expResponse(Rescale(raw, float32(cal.PotLo), float32(cal.PotHi), 0, 1))
	})
	c.cvExp = NewLookupTable(cvBits, expTableBits, func(index, numValues int) float32 {
		raw := float32(index << (cvBits - expTableBits))
		return expResponse(Rescale(raw, float32(cal.CvZero), float32(cal.CvUniHi), 0, 1))
	})
	c.freqTab = NewLookupTable(cvBits, freqTableBits, func(index, numValues int) float32 {
		cv := uint32(index << (cvBits - freqTableBits))
		note := c.noteFromRaw(cv)
		return float32(440 * math.Exp2((float64(note)-69)/12))
	})

	for ch := Channel(0); ch < NumChannels; ch++ {
		c.gates[ch].debouncer = NewDebouncer(clock)
	}
	c.UpdateGates()
	for ch := Channel(0); ch < NumChannels; ch++ {
		c.GateTurnedOn(ch)
		c.GateTurnedOff(ch)
	}
	return c
}

// Raw returns the latest raw ADC reading for the channel. On hardware
// without a physical CV2 input a fixed value just below the gate
// threshold is reported instead, so downstream gate and conversion
// logic sees a quiet input rather than noise.
func (c *CVIn) Raw(ch Channel) uint16 {
	if ch >= NumChannels {
		return 0
	}
	if ch == CV2 && !c.cal.HasCV2 {
		return c.cal.GateMin - 1
	}
	return c.adc.Read(int(ch))
}

// rawOpt guards against out-of-range channel selectors (program
// parameters set to Fixed land here).
func (c *CVIn) rawOpt(ch Channel) (uint16, bool) {
	if ch >= NumChannels {
		return 0, false
	}
	return c.Raw(ch), true
}

// Bipolar converts the channel to [-1, +1]. For CV inputs -5..+5 V; for
// the potentiometer its full travel. ok is false for the Fixed
// sentinel.
func (c *CVIn) Bipolar(ch Channel) (float32, bool) {
	raw, ok := c.rawOpt(ch)
	if !ok {
		return 0, false
	}
	var val float32
	if ch == Pot {
		val = Rescale(float32(raw), float32(c.cal.PotLo), float32(c.cal.PotHi), -1, +1)
	} else {
		// CvZero is the 0 V reading and CvBiHi the +5 V reading, so the
		// map yields [0,+1] over that span and extends linearly below
		// zero for negative voltages.
		val = Rescale(float32(raw), float32(c.cal.CvZero), float32(c.cal.CvBiHi), 0, +1)
	}
	return clampf(val, -1, +1), true
}

// Unipolar converts the channel to [0, 1]. For CV inputs 0..+8 V; for
// the potentiometer its full travel. ok is false for the Fixed
// sentinel.
func (c *CVIn) Unipolar(ch Channel) (float32, bool) {
	raw, ok := c.rawOpt(ch)
	if !ok {
		return 0, false
	}
	return clampf(c.unipolar(raw, ch), 0, +1), true
}

func (c *CVIn) unipolar(raw uint16, ch Channel) float32 {
	if ch == Pot {
		return Rescale(float32(raw), float32(c.cal.PotLo), float32(c.cal.PotHi), 0, +1)
	}
	return Rescale(float32(raw), float32(c.cal.CvZero), float32(c.cal.CvUniHi), 0, +1)
}

// UnipolarExp converts the channel to [0, 1] with an exponential
// response, via the precomputed tables. ok is false for the Fixed
// sentinel.
func (c *CVIn) UnipolarExp(ch Channel) (float32, bool) {
	raw, ok := c.rawOpt(ch)
	if !ok {
		return 0, false
	}
	var val float32
	if ch == Pot {
		val = c.potExp.Lookup(uint32(raw))
	} else {
		val = c.cvExp.Lookup(uint32(raw))
	}
	return clampf(val, 0, +1), true
}

// Frequency converts the channel to an oscillator frequency in Hz with
// 1 volt per octave scaling.
func (c *CVIn) Frequency(ch Channel) float32 {
	return c.freqTab.Lookup(uint32(c.Raw(ch)))
}

// Note converts the channel to a MIDI note number (fractional) with 1
// volt per octave scaling. This is the pure arithmetic mapping the
// frequency table is derived from.
func (c *CVIn) Note(ch Channel) float32 {
	return c.noteFromRaw(uint32(c.Raw(ch)))
}

func (c *CVIn) noteFromRaw(raw uint32) float32 {
	return float32(c.cal.MinNote) +
		float32(c.cal.NumNotes)*(float32(int(raw)-int(c.cal.FreqLo))/float32(int(c.cal.FreqHi)-int(c.cal.FreqLo)))
}

// FreqWithMod returns the frequency for the pitch channel with a
// modulation CV mixed in: the mod channel's bipolar value, scaled by
// depth into raw-ADC units of the bipolar full scale, is added to the
// pitch reading before the frequency lookup. The sum is clamped to the
// raw domain. A Fixed mod channel contributes nothing.
func (c *CVIn) FreqWithMod(pitch, mod Channel, depth float32) float32 {
	raw := float32(c.Raw(pitch))
	if bi, ok := c.Bipolar(mod); ok {
		raw += bi * depth * float32(c.cal.CvBiHi-c.cal.CvZero)
	}
	raw = clampf(raw, 0, float32(1<<cvBits)-1)
	return c.freqTab.Lookup(uint32(raw))
}

// UpdateGates refreshes the on/off state of every gate from the current
// raw readings. It must be called frequently, typically once per block
// from the audio callback.
func (c *CVIn) UpdateGates() {
	for ch := Channel(0); ch < NumChannels; ch++ {
		g := &c.gates[ch]
		isHigh := c.Raw(ch) >= c.cal.GateMin
		if isHigh == g.wasHigh {
			continue
		}
		g.wasHigh = isHigh
		dir := -1
		if isHigh {
			dir = +1
		}
		if _, changed := g.debouncer.Process(dir); changed {
			if isHigh {
				g.turnedOn.Store(true)
			} else {
				g.turnedOff.Store(true)
			}
		}
	}
}

// GateOn returns the debounced gate level for the channel.
func (c *CVIn) GateOn(ch Channel) bool {
	if ch >= NumChannels {
		return false
	}
	return c.gates[ch].debouncer.Value()
}

// GateOff returns the inverse of GateOn.
func (c *CVIn) GateOff(ch Channel) bool {
	if ch >= NumChannels {
		return false
	}
	return !c.GateOn(ch)
}

// GateTurnedOn reports a one-shot off->on gate transition since the
// last call.
func (c *CVIn) GateTurnedOn(ch Channel) bool {
	if ch >= NumChannels {
		return false
	}
	return c.gates[ch].turnedOn.Swap(false)
}

// GateTurnedOff reports a one-shot on->off gate transition since the
// last call.
func (c *CVIn) GateTurnedOff(ch Channel) bool {
	if ch >= NumChannels {
		return false
	}
	return c.gates[ch].turnedOff.Swap(false)
}

func clampf(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
