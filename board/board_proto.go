//go:build proto

package board

import "eurocore/core"

// Current is the hand-wired prototype. It has no second CV input and
// its input stage scales differently, so most calibration endpoints
// differ from the production module.
var Current = Profile{
	Name: "Prototype",

	CVIn1: 0,
	CVIn2: 1,
	PotIn: 2,

	EncoderA:  gp(12),
	EncoderB:  gp(13),
	EncoderSw: gp(11),

	Button: gp(17),

	DisplayDC:    gp(9),
	DisplayReset: gp(15),
	DisplayCS:    gp(10),
	DacCS:        gp(21),

	TrigOut:  gp(7),
	AudioOut: gp(20),
	Led:      gp(25),

	Cal: core.Calibration{
		CvZero:   93,
		CvBiHi:   31736,
		CvUniHi:  50777,
		PotLo:    10,
		PotHi:    63475,
		GateMin:  30000, // nearly 5V in the [0, 10] input range
		FreqLo:   93,
		FreqHi:   63471,
		MinNote:  12, // C0
		NumNotes: 10 * 12,
		HasCV2:   false,
	},
}
