package core

import (
	"math"
	"testing"
)

// testCal is a round-number calibration for the conversion tests.
var testCal = Calibration{
	CvZero:   8192,
	CvBiHi:   40960,
	CvUniHi:  60416,
	PotLo:    0,
	PotHi:    65472,
	GateMin:  36864,
	FreqLo:   8192,
	FreqHi:   60416,
	MinNote:  12,
	NumNotes: 96,
	HasCV2:   true,
}

func newTestCVIn(t *testing.T, cal Calibration) (*CVIn, *fakeADC, *fakeTicks) {
	t.Helper()
	adc := &fakeADC{}
	src := &fakeTicks{}
	return NewCVIn(adc, NewClock(src), cal), adc, src
}

func TestCVInBipolarEndpoints(t *testing.T) {
	c, adc, _ := newTestCVIn(t, testCal)

	cases := []struct {
		name string
		ch   Channel
		raw  uint16
		want float32
	}{
		{"cv at zero volts", CV1, testCal.CvZero, 0},
		{"cv at plus five", CV1, testCal.CvBiHi, 1},
		{"cv clamped high", CV1, 65535, 1},
		{"cv clamped low", CV1, 0, -0.25},
		{"pot at bottom", Pot, testCal.PotLo, -1},
		{"pot at top", Pot, testCal.PotHi, 1},
		{"pot at center", Pot, testCal.PotHi / 2, 0},
	}
	for _, tc := range cases {
		adc.set(tc.ch, tc.raw)
		got, ok := c.Bipolar(tc.ch)
		if !ok {
			t.Fatalf("%s: Bipolar not ok", tc.name)
		}
		if math.Abs(float64(got-tc.want)) > 1e-5 {
			t.Errorf("%s: Bipolar = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCVInBipolarClampedLow(t *testing.T) {
	// A CV span where raw 0 maps below -1 must clamp.
	cal := testCal
	cal.CvZero = 40000
	cal.CvBiHi = 50000
	c, adc, _ := newTestCVIn(t, cal)

	adc.set(CV1, 0)
	got, _ := c.Bipolar(CV1)
	if got != -1 {
		t.Errorf("Bipolar far below zero = %v, want clamped -1", got)
	}
}

func TestCVInUnipolarEndpoints(t *testing.T) {
	c, adc, _ := newTestCVIn(t, testCal)

	adc.set(CV1, testCal.CvZero)
	if got, _ := c.Unipolar(CV1); math.Abs(float64(got)) > 1e-5 {
		t.Errorf("Unipolar at zero volts = %v, want 0", got)
	}
	adc.set(CV1, testCal.CvUniHi)
	if got, _ := c.Unipolar(CV1); math.Abs(float64(got-1)) > 1e-5 {
		t.Errorf("Unipolar at full scale = %v, want 1", got)
	}
	adc.set(CV1, 0)
	if got, _ := c.Unipolar(CV1); got != 0 {
		t.Errorf("Unipolar below zero = %v, want clamped 0", got)
	}
}

func TestCVInUnipolarExp(t *testing.T) {
	c, adc, _ := newTestCVIn(t, testCal)

	prev := float32(-1)
	for raw := 0; raw <= 65535; raw += 1024 {
		adc.set(Pot, uint16(raw))
		got, ok := c.UnipolarExp(Pot)
		if !ok {
			t.Fatal("UnipolarExp not ok")
		}
		if got < 0 || got > 1 {
			t.Fatalf("UnipolarExp(raw=%d) = %v outside [0,1]", raw, got)
		}
		if got < prev {
			t.Fatalf("UnipolarExp not monotonic at raw=%d: %v after %v", raw, got, prev)
		}
		prev = got
	}

	// The curve is exponential: halfway in maps well below halfway out.
	adc.set(Pot, testCal.PotHi/2)
	mid, _ := c.UnipolarExp(Pot)
	if mid > 0.2 {
		t.Errorf("UnipolarExp at center = %v, want below 0.2", mid)
	}
}

func TestCVInFixedSentinel(t *testing.T) {
	c, _, _ := newTestCVIn(t, testCal)

	if _, ok := c.Bipolar(Fixed); ok {
		t.Error("Bipolar(Fixed) reported a value")
	}
	if _, ok := c.Unipolar(Fixed); ok {
		t.Error("Unipolar(Fixed) reported a value")
	}
	if _, ok := c.UnipolarExp(Fixed); ok {
		t.Error("UnipolarExp(Fixed) reported a value")
	}
	if got := c.Raw(Fixed); got != 0 {
		t.Errorf("Raw(Fixed) = %d, want 0", got)
	}
}

func TestCVInMissingCV2(t *testing.T) {
	cal := testCal
	cal.HasCV2 = false
	c, adc, _ := newTestCVIn(t, cal)

	// Whatever the ADC slot holds, CV2 reads as quiet.
	adc.set(CV2, 65535)
	if got := c.Raw(CV2); got != cal.GateMin-1 {
		t.Errorf("Raw(CV2) = %d, want %d", got, cal.GateMin-1)
	}
	c.UpdateGates()
	if c.GateOn(CV2) || c.GateTurnedOn(CV2) {
		t.Error("missing CV2 input produced a gate")
	}
}

func TestCVInNote(t *testing.T) {
	c, adc, _ := newTestCVIn(t, testCal)

	adc.set(CV1, testCal.FreqLo)
	if got := c.Note(CV1); math.Abs(float64(got)-float64(testCal.MinNote)) > 1e-3 {
		t.Errorf("Note at FreqLo = %v, want %d", got, testCal.MinNote)
	}
	adc.set(CV1, testCal.FreqHi)
	want := float64(testCal.MinNote + testCal.NumNotes)
	if got := c.Note(CV1); math.Abs(float64(got)-want) > 1e-3 {
		t.Errorf("Note at FreqHi = %v, want %v", got, want)
	}
}

func TestCVInFrequency(t *testing.T) {
	c, adc, _ := newTestCVIn(t, testCal)

	// Spot-check against the closed form the table approximates.
	for _, raw := range []uint16{testCal.FreqLo, 20000, 30000, 45000, testCal.FreqHi} {
		adc.set(CV1, raw)
		note := float64(c.Note(CV1))
		want := 440 * math.Exp2((note-69)/12)
		got := float64(c.Frequency(CV1))
		if math.Abs(got-want)/want > 0.01 {
			t.Errorf("Frequency(raw=%d) = %v, want within 1%% of %v", raw, got, want)
		}
	}
}

func TestCVInFrequencyMonotonic(t *testing.T) {
	c, adc, _ := newTestCVIn(t, testCal)

	prev := float32(0)
	for raw := 0; raw <= 65535; raw += 509 {
		adc.set(CV1, uint16(raw))
		got := c.Frequency(CV1)
		if got < prev {
			t.Fatalf("Frequency not monotonic at raw=%d: %v after %v", raw, got, prev)
		}
		prev = got
	}
}

func TestCVInFreqWithMod(t *testing.T) {
	c, adc, _ := newTestCVIn(t, testCal)

	adc.set(CV1, 30000)
	base := c.Frequency(CV1)

	// Zero depth and a Fixed mod source leave the pitch alone.
	if got := c.FreqWithMod(CV1, CV2, 0); got != base {
		t.Errorf("FreqWithMod depth 0 = %v, want %v", got, base)
	}
	if got := c.FreqWithMod(CV1, Fixed, 1); got != base {
		t.Errorf("FreqWithMod from Fixed = %v, want %v", got, base)
	}

	// Positive modulation raises the pitch, negative lowers it.
	adc.set(CV2, testCal.CvBiHi)
	if got := c.FreqWithMod(CV1, CV2, 0.5); got <= base {
		t.Errorf("positive mod: FreqWithMod = %v, want above %v", got, base)
	}
	adc.set(CV2, 0)
	if got := c.FreqWithMod(CV1, CV2, 0.5); got >= base {
		t.Errorf("negative mod: FreqWithMod = %v, want below %v", got, base)
	}
}

func TestCVInFreqWithModClampsRawDomain(t *testing.T) {
	c, adc, _ := newTestCVIn(t, testCal)

	adc.set(CV1, 65535)
	adc.set(CV2, testCal.CvBiHi)
	got := c.FreqWithMod(CV1, CV2, 1)

	adc.set(CV1, 65535)
	top := c.Frequency(CV1)
	if got > top {
		t.Errorf("FreqWithMod past full scale = %v, want at most %v", got, top)
	}
}

func TestCVInGateEdges(t *testing.T) {
	adc := &fakeADC{}
	src := &fakeTicks{}
	adc.set(CV1, 0)
	c := NewCVIn(adc, NewClock(src), testCal)

	if c.GateOn(CV1) {
		t.Fatal("gate on with input at zero")
	}

	adc.set(CV1, testCal.GateMin)
	src.advanceUs(100)
	c.UpdateGates()
	if !c.GateOn(CV1) {
		t.Fatal("gate not on above threshold")
	}
	if !c.GateTurnedOn(CV1) {
		t.Fatal("rising gate edge not latched")
	}
	if c.GateTurnedOn(CV1) {
		t.Fatal("rising gate edge latched twice")
	}

	adc.set(CV1, testCal.GateMin-1)
	src.advanceUs(uint32(debounceSettleUs))
	c.UpdateGates()
	if c.GateOn(CV1) {
		t.Fatal("gate still on below threshold")
	}
	if !c.GateTurnedOff(CV1) {
		t.Fatal("falling gate edge not latched")
	}
	if !c.GateOff(CV1) {
		t.Fatal("GateOff disagrees with GateOn")
	}
}

func TestCVInGateHighAtStartup(t *testing.T) {
	adc := &fakeADC{}
	adc.set(CV1, 65535)
	c := NewCVIn(adc, NewClock(&fakeTicks{}), testCal)

	if !c.GateOn(CV1) {
		t.Error("gate not on despite high input at startup")
	}
	if c.GateTurnedOn(CV1) {
		t.Error("startup gate level reported as an edge")
	}
}

func TestCVInGateRepeatedUpdatesNoEdges(t *testing.T) {
	adc := &fakeADC{}
	src := &fakeTicks{}
	c := NewCVIn(adc, NewClock(src), testCal)

	adc.set(CV1, testCal.GateMin)
	src.advanceUs(100)
	c.UpdateGates()
	c.GateTurnedOn(CV1)

	// A held gate must not keep producing edges.
	for i := 0; i < 10; i++ {
		src.advanceUs(100)
		c.UpdateGates()
	}
	if c.GateTurnedOn(CV1) {
		t.Error("held gate produced repeated rising edges")
	}
}

func TestScanChannel(t *testing.T) {
	want := []Channel{CV1, CV2, Pot, CV1}
	if ScanLen != len(want) {
		t.Fatalf("ScanLen = %d, want %d", ScanLen, len(want))
	}
	for slot, ch := range want {
		if got := ScanChannel(slot); got != ch {
			t.Errorf("ScanChannel(%d) = %d, want %d", slot, got, ch)
		}
	}
}
