package stream

import (
	"errors"
	"sync/atomic"
)

// ErrInvalidConfig is returned by New when capacity is not a power of two.
var ErrInvalidConfig = errors.New("stream: capacity must be a power of two")

// Status is the outcome of a Read.
type Status int

const (
	// StatusOK means out was populated with the slot at idx.
	StatusOK Status = iota
	// StatusNoData means idx is caught up with the producer.
	StatusNoData
	// StatusOverrun means idx fell more than the stream's capacity behind
	// the producer; the slot it names has been overwritten.
	StatusOverrun
)

// Stream is a lock-free single-producer / multi-consumer ring of
// Samples with run-length silence compression. The zero value is not
// usable; construct with New.
type Stream struct {
	buf  []Sample
	mask uint64

	// writeIdx is the monotone publication counter. The producer
	// release-stores it after writing a slot; consumers acquire-load it
	// before reading, so the release/acquire pair makes the slot write
	// visible to any consumer that observes the new index.
	writeIdx atomic.Uint64

	// idleTicks and lastSample are producer-private: only Push, PushRaw
	// and Flush touch them, and all three are called from the single RT
	// producer thread, so plain fields suffice.
	idleTicks  uint64
	lastSample Sample
	hasLast    bool
}

// New constructs a Stream with the given capacity, which must be a
// power of two.
func New(capacity int) (*Stream, error) {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		return nil, ErrInvalidConfig
	}
	return &Stream{
		buf:  make([]Sample, capacity),
		mask: uint64(capacity - 1),
	}, nil
}

// Capacity returns the ring's slot count.
func (s *Stream) Capacity() uint64 {
	return s.mask + 1
}

// WriteIndex acquire-loads the current write index, for consumers
// computing their lag.
func (s *Stream) WriteIndex() uint64 {
	return s.writeIdx.Load()
}

func (s *Stream) writeSlot(sample Sample) {
	s.buf[s.writeIdx.Load()&s.mask] = sample
	s.writeIdx.Add(1)
}

// Push compares sample against the last emitted sample. The very
// first call only establishes that baseline and writes nothing. If
// unchanged, it accumulates a silence run and returns without writing
// a slot. If changed, it first flushes any pending silence run, then
// writes sample with its edge flags attached.
func (s *Stream) Push(sample Sample) {
	if !s.hasLast {
		s.lastSample = sample
		s.hasLast = true
		return
	}
	if !changed(sample, s.lastSample) {
		s.idleTicks++
		return
	}
	s.flushIdle()
	sample.Flags |= edgeFlags(s.lastSample, sample)
	s.writeSlot(sample)
	s.lastSample = sample
	s.hasLast = true
}

// flushIdle writes a pending silence-run slot, if any, and resets the
// accumulator. Internal helper shared by Push and Flush.
func (s *Stream) flushIdle() {
	if s.idleTicks == 0 {
		return
	}
	run := s.lastSample
	run.Flags |= IdleRun
	run.IdleCount = uint32(s.idleTicks)
	s.idleTicks = 0
	s.writeSlot(run)
}

// Flush drains any accumulated silence into a run slot. Callers (e.g.
// an RT loop shutting down, or a host command that needs the stream
// quiescent before writing a raw sample) call this to make pending
// silence visible immediately rather than waiting for the next change.
func (s *Stream) Flush() {
	s.flushIdle()
}

// PushRaw writes sample directly, bypassing silence compression. Used
// by host commands that must produce an immediate sample (e.g.
// key-immediate) regardless of whether it differs from the last
// emitted sample. Any pending silence run is flushed first so ring
// order still reflects real time.
func (s *Stream) PushRaw(sample Sample) {
	s.flushIdle()
	s.writeSlot(sample)
	s.lastSample = sample
	s.hasLast = true
}

// Read copies the slot named by idx into out. It never mutates shared
// state, so any number of consumers may call it concurrently.
func (s *Stream) Read(idx uint64, out *Sample) Status {
	wp := s.writeIdx.Load()
	behind := wp - idx
	if behind == 0 {
		return StatusNoData
	}
	if behind > s.Capacity() {
		return StatusOverrun
	}
	*out = s.buf[idx&s.mask]
	return StatusOK
}
