//go:build !proto

package board

import "eurocore/core"

// Current is the production module hardware.
var Current = Profile{
	Name: "Module",

	CVIn1: 1,
	CVIn2: 0,
	PotIn: 2,

	EncoderA:  gp(12),
	EncoderB:  gp(13),
	EncoderSw: gp(11),

	Button: gp(6),

	DisplayDC:    gp(9),
	DisplayReset: gp(15),
	DisplayCS:    gp(10),
	DacCS:        gp(21),

	TrigOut:  gp(7),
	AudioOut: gp(20),
	Led:      gp(25),

	Cal: core.Calibration{
		CvZero:   31620,
		CvBiHi:   44890,
		CvUniHi:  52850,
		PotLo:    10,
		PotHi:    63475,
		GateMin:  45000, // nearly 5V in the [-12, 12] input range
		FreqLo:   31620,
		FreqHi:   63460,
		MinNote:  12, // C0
		NumNotes: 12 * 12,
		HasCV2:   true,
	},
}
