package core

import "testing"

var (
	encPinA  = Pin{Port: 0, Num: 12}
	encPinB  = Pin{Port: 0, Num: 13}
	encPinSw = Pin{Port: 0, Num: 11}
)

func newTestEncoder(t *testing.T, cfg EncoderConfig) (*Encoder, *fakePins, *Dispatcher, *fakeTicks) {
	t.Helper()
	pins := newFakePins()
	disp := &Dispatcher{}
	src := &fakeTicks{}
	if cfg.Polarity == OnLow {
		// Idle level for active-low quadrature inputs is high.
		pins.levels[cfg.PinA] = true
		pins.levels[cfg.PinB] = true
	}
	enc, err := NewEncoder(pins, disp, NewClock(src), cfg)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	return enc, pins, disp, src
}

// turn plays one full detent of quadrature phases. cw chooses the
// rotation direction. Levels are logical (true = active).
func turn(pins *fakePins, disp *Dispatcher, cfg EncoderConfig, cw bool) {
	phases := [][2]bool{{true, false}, {true, true}, {false, true}, {false, false}}
	for _, ph := range phases {
		a, b := ph[0], ph[1]
		if !cw {
			a, b = b, a
		}
		if cfg.Polarity == OnLow {
			a = !a
			b = !b
		}
		pins.edge(disp, cfg.PinA, a)
		pins.edge(disp, cfg.PinB, b)
	}
}

func TestEncoderSingleDetent(t *testing.T) {
	cfg := EncoderConfig{PinA: encPinA, PinB: encPinB, PinSwitch: PinInvalid}
	enc, pins, disp, _ := newTestEncoder(t, cfg)

	turn(pins, disp, cfg, true)
	if got := enc.Change(); got != 1 {
		t.Errorf("clockwise detent: Change() = %d, want 1", got)
	}

	turn(pins, disp, cfg, false)
	if got := enc.Change(); got != -1 {
		t.Errorf("counterclockwise detent: Change() = %d, want -1", got)
	}
}

func TestEncoderChangeAccumulatesAndResets(t *testing.T) {
	cfg := EncoderConfig{PinA: encPinA, PinB: encPinB, PinSwitch: PinInvalid}
	enc, pins, disp, _ := newTestEncoder(t, cfg)

	for i := 0; i < 3; i++ {
		turn(pins, disp, cfg, true)
	}
	if got := enc.Change(); got != 3 {
		t.Errorf("Change() = %d, want 3", got)
	}
	if got := enc.Change(); got != 0 {
		t.Errorf("Change() after drain = %d, want 0", got)
	}
}

func TestEncoderBounceIsZeroSum(t *testing.T) {
	cfg := EncoderConfig{PinA: encPinA, PinB: encPinB, PinSwitch: PinInvalid}
	enc, pins, disp, _ := newTestEncoder(t, cfg)

	// Rattle on pin A without ever completing a quadrature cycle.
	for i := 0; i < 10; i++ {
		pins.edge(disp, cfg.PinA, true)
		pins.edge(disp, cfg.PinA, false)
	}
	if got := enc.Change(); got != 0 {
		t.Errorf("bounce produced net change %d, want 0", got)
	}
}

func TestEncoderActiveLow(t *testing.T) {
	cfg := EncoderConfig{PinA: encPinA, PinB: encPinB, PinSwitch: PinInvalid,
		Polarity: OnLow, Pull: PullUp}
	enc, pins, disp, _ := newTestEncoder(t, cfg)

	turn(pins, disp, cfg, true)
	if got := enc.Change(); got != 1 {
		t.Errorf("active-low clockwise detent: Change() = %d, want 1", got)
	}
}

func TestEncoderAcceleration(t *testing.T) {
	cfg := EncoderConfig{PinA: encPinA, PinB: encPinB, PinSwitch: PinInvalid}
	enc, pins, disp, _ := newTestEncoder(t, cfg)

	// Sustained rotation: one detent per poll. The first polls report
	// raw steps, then acceleration kicks in.
	var got []int
	for i := 0; i < 6; i++ {
		turn(pins, disp, cfg, true)
		got = append(got, enc.ChangeAccel())
	}
	want := []int{1, 1, 1, accelFactor, accelFactor, accelFactor}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ChangeAccel sequence = %v, want %v", got, want)
		}
	}

	// An idle poll resets the streak.
	if enc.ChangeAccel() != 0 {
		t.Fatal("idle poll reported change")
	}
	turn(pins, disp, cfg, true)
	if got := enc.ChangeAccel(); got != 1 {
		t.Errorf("post-idle ChangeAccel() = %d, want 1", got)
	}
}

func TestEncoderOnChangeCallback(t *testing.T) {
	var steps []int
	cfg := EncoderConfig{PinA: encPinA, PinB: encPinB, PinSwitch: PinInvalid,
		OnChange: func(change int) { steps = append(steps, change) }}
	_, pins, disp, _ := newTestEncoder(t, cfg)

	turn(pins, disp, cfg, true)
	turn(pins, disp, cfg, false)
	if len(steps) != 2 || steps[0] != 1 || steps[1] != -1 {
		t.Errorf("OnChange steps = %v, want [1 -1]", steps)
	}
}

func TestEncoderButton(t *testing.T) {
	cfg := EncoderConfig{PinA: encPinA, PinB: encPinB, PinSwitch: encPinSw,
		Polarity: OnLow, Pull: PullUp}
	pins := newFakePins()
	pins.levels[encPinA] = true
	pins.levels[encPinB] = true
	pins.levels[encPinSw] = true
	disp := &Dispatcher{}
	src := &fakeTicks{}
	enc, err := NewEncoder(pins, disp, NewClock(src), cfg)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}

	if enc.IsPressed() {
		t.Fatal("button pressed at init")
	}
	src.advanceUs(debounceSettleUs)
	pins.edge(disp, encPinSw, false)
	if !enc.IsPressed() {
		t.Fatal("button not pressed after edge")
	}
	if !enc.WasPressed() {
		t.Fatal("press not latched")
	}
	if enc.WasPressed() {
		t.Fatal("press latched twice")
	}
	if enc.Button() == nil {
		t.Fatal("Button() nil for encoder with pushbutton")
	}
}

func TestEncoderWithoutButton(t *testing.T) {
	cfg := EncoderConfig{PinA: encPinA, PinB: encPinB, PinSwitch: PinInvalid}
	enc, _, _, _ := newTestEncoder(t, cfg)

	if enc.IsPressed() || enc.WasPressed() || enc.Button() != nil {
		t.Error("buttonless encoder reports button activity")
	}
}
