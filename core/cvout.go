package core

// Analog CV outputs through the on-board DAC.

// DACChannel identifies one DAC output.
type DACChannel uint8

const (
	DACOut1 DACChannel = iota
	DACOut2
)

// DACDriver is the abstract DAC interface that core code uses.
type DACDriver interface {
	// Write sets the raw DAC code for a channel.
	Write(ch DACChannel, value uint16)
}

// DAC output scaling. The output stage spans a nominal 10 V;
// dacCode10V is the measured code that produces +10 V (approximately
// the same on both hardware profiles).
const (
	dacMaxCode  = (1 << 12) - 1
	dacCode10V  = 4162.43
	dacMinNote  = 12      // C0 at 0 V
	dacNumNotes = 10 * 12 // 10 octaves over the 10 V span
)

// CVOut converts unipolar values and note numbers into DAC codes.
type CVOut struct {
	dac DACDriver
}

// NewCVOut wraps the given DAC driver.
func NewCVOut(dac DACDriver) *CVOut {
	return &CVOut{dac: dac}
}

// SetRaw writes a raw DAC code.
func (o *CVOut) SetRaw(ch DACChannel, value uint16) {
	o.dac.Write(ch, value)
}

// SetUnipolar maps val in [0, 1] onto the nominal 0..+8 V output
// range.
func (o *CVOut) SetUnipolar(ch DACChannel, val float32) {
	val *= 8.0 / 10.0
	code := int(val*dacCode10V + 0.5)
	o.SetRaw(ch, clampCode(code))
}

// SetNote outputs the 1 volt per octave voltage for a MIDI note
// number.
func (o *CVOut) SetNote(ch DACChannel, note float32) {
	code := int((note-dacMinNote)*dacCode10V/dacNumNotes + 0.5)
	o.SetRaw(ch, clampCode(code))
}

func clampCode(code int) uint16 {
	if code < 0 {
		return 0
	}
	if code > dacMaxCode {
		return dacMaxCode
	}
	return uint16(code)
}
