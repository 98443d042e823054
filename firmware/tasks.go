package firmware

import (
	"eurocore/core"
)

// BlinkTask toggles the board LED as a heartbeat.
type BlinkTask struct {
	Led Led

	on bool
}

func (t *BlinkTask) IntervalUs() uint32 { return 500_000 }

func (t *BlinkTask) Init() {
	if t.Led != nil {
		t.Led.Set(false)
	}
}

func (t *BlinkTask) Execute() {
	if t.Led == nil {
		return
	}
	t.on = !t.on
	t.Led.Set(t.on)
}

// ButtonLedTask mirrors the panel button onto the LED. Useful while
// bringing up a new board revision.
type ButtonLedTask struct {
	Button *core.Switch
	Led    Led
}

func (t *ButtonLedTask) IntervalUs() uint32 { return 50_000 }

func (t *ButtonLedTask) Init() {}

func (t *ButtonLedTask) Execute() {
	if t.Led == nil {
		return
	}
	t.Led.Set(t.Button.IsOn())
}

// Trigger fires a pulse on the trigger output jack.
type Trigger interface {
	Trigger()
}

// GateLedTask mirrors the CV1 gate onto the LED, fires the trigger
// output on each rising edge and logs both edges.
type GateLedTask struct {
	CVIn *core.CVIn
	Led  Led
	Trig Trigger // optional
}

func (t *GateLedTask) IntervalUs() uint32 { return 2_000 }

func (t *GateLedTask) Init() {}

func (t *GateLedTask) Execute() {
	if t.CVIn.GateTurnedOn(core.CV1) {
		if t.Trig != nil {
			t.Trig.Trigger()
		}
		core.Debug("gate on")
	}
	if t.CVIn.GateTurnedOff(core.CV1) {
		core.Debug("gate off")
	}
	if t.Led != nil {
		t.Led.Set(t.CVIn.GateOn(core.CV1))
	}
}

// AdcMonitorTask periodically dumps the raw and scaled analog inputs
// to the debug writer.
type AdcMonitorTask struct {
	CVIn *core.CVIn
}

func (t *AdcMonitorTask) IntervalUs() uint32 { return 500_000 }

func (t *AdcMonitorTask) Init() {}

func (t *AdcMonitorTask) Execute() {
	for ch := core.Channel(0); ch < core.NumChannels; ch++ {
		raw := t.CVIn.Raw(ch)
		bi, _ := t.CVIn.Bipolar(ch)
		uni, _ := t.CVIn.Unipolar(ch)
		exp, _ := t.CVIn.UnipolarExp(ch)
		msg := "adc " + core.Itoa(int(ch)) +
			" raw=" + core.Utoa(uint32(raw)) +
			" bi=" + core.Ftoa(bi, 3) +
			" uni=" + core.Ftoa(uni, 3) +
			" exp=" + core.Ftoa(exp, 3)
		core.Debug(msg)
	}
	core.Debug("pitch note=" + core.Ftoa(t.CVIn.Note(core.CV1), 2) +
		" freq=" + core.Ftoa(t.CVIn.Frequency(core.CV1), 1))
}

// calibrateSettleCount is how many consecutive samples within
// calibrateWindow of each other count as a stable reading.
const (
	calibrateWindow      = 500
	calibrateSettleCount = 8
)

// CalibrateTask prints averaged raw readings whenever an input settles
// on a new level. Feed known voltages to each jack and copy the
// numbers into the board profile's Calibration.
type CalibrateTask struct {
	CVIn *core.CVIn

	last   [core.NumChannels]uint16
	stable [core.NumChannels]int
	sum    [core.NumChannels]uint32
}

func (t *CalibrateTask) IntervalUs() uint32 { return 100_000 }

func (t *CalibrateTask) Init() {
	for ch := core.Channel(0); ch < core.NumChannels; ch++ {
		t.last[ch] = t.CVIn.Raw(ch)
	}
}

func (t *CalibrateTask) Execute() {
	for ch := core.Channel(0); ch < core.NumChannels; ch++ {
		raw := t.CVIn.Raw(ch)
		diff := int(raw) - int(t.last[ch])
		if diff < 0 {
			diff = -diff
		}
		if diff >= calibrateWindow {
			// Input moved, start a fresh measurement.
			t.stable[ch] = 0
			t.sum[ch] = 0
		} else {
			t.stable[ch]++
			t.sum[ch] += uint32(raw)
			if t.stable[ch] == calibrateSettleCount {
				avg := t.sum[ch] / calibrateSettleCount
				core.Debug("cal " + core.Itoa(int(ch)) + " = " + core.Utoa(avg))
			}
		}
		t.last[ch] = raw
	}
}
