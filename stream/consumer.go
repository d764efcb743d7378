package stream

import (
	"sync/atomic"

	"cwkeyer.dev/fault"
)

// Result is the outcome of a consumer Tick.
type Result int

const (
	// ResultOK means out was populated with the next sample.
	ResultOK Result = iota
	// ResultNoData means the consumer is caught up with the producer.
	ResultNoData
	// ResultFault means a fault is latched; the caller should stop
	// driving key/audio side effects until it is cleared and the
	// consumer resynced.
	ResultFault
)

// HardRT is a consumer that latches a fault in the shared Register
// rather than ever falling silently behind. It never blocks: every
// Tick call is a handful of atomic loads plus, on the non-fault path,
// one slot copy.
type HardRT struct {
	stream *Stream
	idx    uint64
	maxLag uint64
	faults *fault.Register
}

// NewHardRT constructs a hard-RT consumer positioned at the stream's
// current write index, with the given lag budget.
func NewHardRT(s *Stream, maxLag uint64, faults *fault.Register) *HardRT {
	return &HardRT{
		stream: s,
		idx:    s.WriteIndex(),
		maxLag: maxLag,
		faults: faults,
	}
}

// Resync jumps the read index to the stream's current write position.
// Call after clearing a latched fault to recover.
func (h *HardRT) Resync() {
	h.idx = h.stream.WriteIndex()
}

// Tick advances the consumer by at most one sample per call.
func (h *HardRT) Tick(out *Sample) Result {
	if h.faults.IsActive() {
		return ResultFault
	}
	wp := h.stream.WriteIndex()
	lag := wp - h.idx
	if lag > h.maxLag {
		h.faults.Set(fault.LatencyExceeded, uint32(lag))
		return ResultFault
	}
	if lag == 0 {
		return ResultNoData
	}
	if lag > h.stream.Capacity() {
		h.faults.Set(fault.Overrun, uint32(lag))
		return ResultFault
	}
	switch h.stream.Read(h.idx, out) {
	case StatusOverrun:
		h.faults.Set(fault.Overrun, uint32(lag))
		return ResultFault
	case StatusNoData:
		// Raced with a producer wraparound between the lag check above
		// and the read; treat it as no data rather than faulting.
		return ResultNoData
	default:
		h.idx++
		return ResultOK
	}
}

// BestEffort is a consumer that skips ahead on overrun instead of
// faulting, tracking how many samples it has skipped over.
type BestEffort struct {
	stream        *Stream
	idx           uint64
	skipThreshold uint64
	dropped       atomic.Uint64
}

// NewBestEffort constructs a best-effort consumer positioned at the
// stream's current write index. skipThreshold of 0 disables
// proactive skipping; the consumer still skips on an outright
// overrun.
func NewBestEffort(s *Stream, skipThreshold uint64) *BestEffort {
	return &BestEffort{
		stream:        s,
		idx:           s.WriteIndex(),
		skipThreshold: skipThreshold,
	}
}

// Dropped returns the number of samples this consumer has skipped
// over, safe to read concurrently with Tick for periodic reporting.
func (b *BestEffort) Dropped() uint64 {
	return b.dropped.Load()
}

// Tick advances the consumer by at most one sample per call, skipping
// ahead first if it has fallen far enough behind.
func (b *BestEffort) Tick(out *Sample) Result {
	wp := b.stream.WriteIndex()
	lag := wp - b.idx
	if lag == 0 {
		return ResultNoData
	}
	overrun := lag > b.stream.Capacity()
	if overrun || (b.skipThreshold > 0 && lag > b.skipThreshold) {
		// Preserve a small tail (up to 2 samples) for a smooth
		// transition instead of jumping all the way to wp. Guard the
		// case wp < 2 explicitly rather than letting the subtraction
		// wrap (spec.md open question).
		tail := uint64(2)
		if wp < tail {
			tail = wp
		}
		skipTo := wp - tail
		b.dropped.Add(skipTo - b.idx)
		b.idx = skipTo
		lag = wp - b.idx
	}
	switch b.stream.Read(b.idx, out) {
	case StatusOK:
		b.idx++
		return ResultOK
	default:
		// Read raced with the producer (the slot it named was
		// overwritten, or the producer hasn't caught up after our
		// skip); jump to the current write position and count it as a
		// drop rather than retrying indefinitely.
		b.idx = b.stream.WriteIndex()
		b.dropped.Add(1)
		return ResultNoData
	}
}
