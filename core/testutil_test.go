package core

// Fake drivers shared by the package tests.

// fakeTicks is a manually-advanced tick source.
type fakeTicks struct {
	now uint32
	hz  uint32
}

func (f *fakeTicks) Ticks() uint32 { return f.now }

func (f *fakeTicks) Hz() uint32 {
	if f.hz == 0 {
		return 1_000_000
	}
	return f.hz
}

// advanceUs moves the counter forward by the given number of
// microseconds, wrapping like the hardware counter does.
func (f *fakeTicks) advanceUs(us uint32) {
	f.now += us * (f.Hz() / 1_000_000)
}

// fakePins is an in-memory PinDriver that records configurations.
type fakePins struct {
	levels map[Pin]bool
	modes  map[Pin]PinMode
	pulls  map[Pin]PinPull
}

func newFakePins() *fakePins {
	return &fakePins{
		levels: make(map[Pin]bool),
		modes:  make(map[Pin]PinMode),
		pulls:  make(map[Pin]PinPull),
	}
}

func (f *fakePins) Configure(pin Pin, mode PinMode, pull PinPull) error {
	f.modes[pin] = mode
	f.pulls[pin] = pull
	return nil
}

func (f *fakePins) Read(pin Pin) bool         { return f.levels[pin] }
func (f *fakePins) Write(pin Pin, level bool) { f.levels[pin] = level }

// edge sets the pin level and fires its interrupt through the
// dispatcher, like the hardware would.
func (f *fakePins) edge(disp *Dispatcher, pin Pin, level bool) {
	f.levels[pin] = level
	disp.Dispatch(pin.Num)
}

// fakeADC serves fixed raw values per scan slot.
type fakeADC struct {
	slots [ScanLen]uint16
}

func (f *fakeADC) Read(slot int) uint16 { return f.slots[slot] }

// set assigns a channel's raw value in its primary scan slot.
func (f *fakeADC) set(ch Channel, raw uint16) {
	f.slots[int(ch)] = raw
}
