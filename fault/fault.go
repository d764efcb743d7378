// Package fault implements the process-wide latched fault register (C3)
// shared between the real-time sample stream consumers and the
// background and protocol layers that report on them.
package fault

import "sync/atomic"

// Code identifies the kind of latched fault.
type Code uint32

const (
	// None means no fault is latched.
	None Code = iota
	// LatencyExceeded means a hard-RT consumer's lag exceeded its budget.
	LatencyExceeded
	// Overrun means a consumer's read index fell more than the stream's
	// capacity behind the producer.
	Overrun
	// StreamError means the stream reported an error outside the
	// latency/overrun taxonomy. (A racing overrun on read is latched
	// as Overrun, not StreamError.)
	StreamError
	// Internal is a catch-all for conditions the RT path cannot
	// otherwise classify.
	Internal
)

func (c Code) String() string {
	switch c {
	case None:
		return "none"
	case LatencyExceeded:
		return "latency_exceeded"
	case Overrun:
		return "overrun"
	case StreamError:
		return "stream_error"
	case Internal:
		return "internal"
	default:
		return "unknown"
	}
}

// Register is a one-shot latch: once active, only an explicit Clear
// resets it. Set is first-wins on the code field — a second Set call
// while already active does not change the latched code, matching the
// "first-write-wins" semantics the RT loop relies on for a consistent
// crash report.
type Register struct {
	active uint32
	code   uint32
	datum  uint32
}

// Set latches code and datum if the register is not already active.
// It reports whether this call was the one that latched the fault.
// The code field is claimed via compare-and-swap against the None
// sentinel so a racing second caller never observes active=true with
// a stale or torn code; a call with the same code as an already-active
// register may still refresh datum, but it never unsets an active
// fault.
func (r *Register) Set(code Code, datum uint32) bool {
	won := atomic.CompareAndSwapUint32(&r.code, uint32(None), uint32(code))
	if won {
		atomic.StoreUint32(&r.datum, datum)
		atomic.StoreUint32(&r.active, 1)
		return true
	}
	if Code(atomic.LoadUint32(&r.code)) == code {
		atomic.StoreUint32(&r.datum, datum)
	}
	return false
}

// Clear resets the register to its inactive state.
func (r *Register) Clear() {
	atomic.StoreUint32(&r.code, uint32(None))
	atomic.StoreUint32(&r.datum, 0)
	atomic.StoreUint32(&r.active, 0)
}

// IsActive is a relaxed-ordered query suitable for the hot RT path: one
// atomic load per tick.
func (r *Register) IsActive() bool {
	return atomic.LoadUint32(&r.active) != 0
}

// Get returns a consistent snapshot of the latched fault. The code and
// datum are only meaningful when active is true.
func (r *Register) Get() (code Code, datum uint32, active bool) {
	active = atomic.LoadUint32(&r.active) != 0
	code = Code(atomic.LoadUint32(&r.code))
	datum = atomic.LoadUint32(&r.datum)
	return code, datum, active
}
