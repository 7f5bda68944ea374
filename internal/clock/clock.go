// Package clock provides a millisecond time source that can be swapped
// for a deterministic fake in tests.
package clock

import (
	"sync/atomic"
	"time"
)

// Clock supplies non-decreasing millisecond timestamps.
type Clock interface {
	// NowMillis returns the current time in milliseconds.
	NowMillis() int64
}

// System is a Clock backed by the wall clock.
type System struct{}

// NowMillis returns the current Unix time in milliseconds.
func (System) NowMillis() int64 {
	return time.Now().UnixMilli()
}

// Fake is a Clock that starts at 0 and advances by a fixed step on every call.
type Fake struct {
	step int64
	now  atomic.Int64
}

// NewFake creates a Fake advancing by step milliseconds per call.
func NewFake(step int64) *Fake {
	return &Fake{step: step}
}

// NowMillis returns the current fake time, then advances it by the step.
func (f *Fake) NowMillis() int64 {
	return f.now.Add(f.step) - f.step
}

var (
	_ Clock = System{}
	_ Clock = (*Fake)(nil)
)
