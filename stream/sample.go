// Package stream implements the lock-free single-producer /
// multi-consumer sample ring (C1) and the two consumer disciplines
// that read it (C2): a hard real-time consumer that latches a fault
// on excessive lag, and a best-effort consumer that skips ahead.
package stream

// Flags marks edges and run-length-encoded silence in a Sample.
type Flags uint8

const (
	// GPIOEdge is set when gpio_bits differs from the previous emitted sample.
	GPIOEdge Flags = 1 << iota
	// LocalEdge is set when local_key differs from the previous emitted sample.
	LocalEdge
	// IdleRun marks a silence-run marker; IdleCount carries its length.
	IdleRun
)

// Sample is a single timestamped slot in the ring.
type Sample struct {
	GPIOBits         uint32
	LocalKey         uint8
	AudioLevel       int16
	Flags            Flags
	ConfigGeneration uint32
	IdleCount        uint32
}

// changed reports whether a and b differ under the producer-private
// comparison used by Push to decide between silence-run compression
// and emitting a new slot: the gpio bits or the local key state.
func changed(a, b Sample) bool {
	return a.GPIOBits != b.GPIOBits || a.LocalKey != b.LocalKey
}

// edgeFlags computes which fields changed between prev and next,
// independent of any flags already present on next.
func edgeFlags(prev, next Sample) Flags {
	var f Flags
	if prev.GPIOBits != next.GPIOBits {
		f |= GPIOEdge
	}
	if prev.LocalKey != next.LocalKey {
		f |= LocalEdge
	}
	return f
}
