//go:build rp2040

package main

import (
	"runtime/volatile"
	"unsafe"
)

// RP2040 Timer peripheral memory map
const (
	timerBase     = 0x40054000
	timerTIMERAWL = timerBase + 0x0C // Raw timer low word
)

var timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))

// rpTicks exposes the RP2040 hardware timer as a tick source.
// The timer free-runs at 1MHz, so one tick is one microsecond.
type rpTicks struct{}

func (rpTicks) Ticks() uint32 { return timerRAWL.Get() }
func (rpTicks) Hz() uint32    { return 1_000_000 }
