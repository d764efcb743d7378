package iambic

import "fmt"

// Mode selects the behavior after a mid-element squeeze release.
type Mode uint8

const (
	// ModeA stops sending at the current element.
	ModeA Mode = iota
	// ModeB emits exactly one additional opposite element.
	ModeB
)

func (m Mode) String() string {
	if m == ModeB {
		return "B"
	}
	return "A"
}

// MemoryMode controls which paddle presses made during an element are
// remembered and played after it.
type MemoryMode uint8

const (
	MemoryNone MemoryMode = iota
	MemoryDotOnly
	MemoryDahOnly
	MemoryDotAndDah
)

// SqueezeLatch controls whether a squeeze, once seen, survives a
// paddle release before it is consumed by the Mode-B bonus.
type SqueezeLatch uint8

const (
	// LatchOn keeps squeezeSeen armed until the Mode-B bonus consumes
	// it, regardless of when the paddles are released. This is the
	// conventional iambic keyer behavior.
	LatchOn SqueezeLatch = iota
	// LatchOff clears squeezeSeen as soon as both paddles are no
	// longer simultaneously held, even if the Mode-B bonus has not
	// fired yet.
	LatchOff
)

// Config is the iambic processor's configuration, snapshotted by
// value at tick boundaries (spec.md C10/C4 contract: configuration is
// read by value, never referenced).
type Config struct {
	WPM               int
	Mode              Mode
	Memory            MemoryMode
	Squeeze           SqueezeLatch
	Weight            int // percent, 33-67, neutral at 50
	MemoryWindowStart int // percent, 0-100
	MemoryWindowEnd   int // percent, 0-100
}

// DefaultConfig returns the iambic processor's default configuration.
func DefaultConfig() Config {
	return Config{
		WPM:               20,
		Mode:              ModeB,
		Memory:            MemoryDotAndDah,
		Squeeze:           LatchOn,
		Weight:            50,
		MemoryWindowStart: 0,
		MemoryWindowEnd:   100,
	}
}

// Validate reports whether c's fields are within their declared
// ranges.
func (c Config) Validate() error {
	if c.WPM < 5 || c.WPM > 100 {
		return fmt.Errorf("iambic: wpm %d out of range [5,100]", c.WPM)
	}
	if c.Weight < 33 || c.Weight > 67 {
		return fmt.Errorf("iambic: weight %d out of range [33,67]", c.Weight)
	}
	if c.MemoryWindowStart < 0 || c.MemoryWindowStart > 100 {
		return fmt.Errorf("iambic: memory window start %d out of range [0,100]", c.MemoryWindowStart)
	}
	if c.MemoryWindowEnd < 0 || c.MemoryWindowEnd > 100 {
		return fmt.Errorf("iambic: memory window end %d out of range [0,100]", c.MemoryWindowEnd)
	}
	if c.MemoryWindowStart > c.MemoryWindowEnd {
		return fmt.Errorf("iambic: memory window start %d after end %d", c.MemoryWindowStart, c.MemoryWindowEnd)
	}
	return nil
}

// ditUs returns the PARIS-standard dit duration in microseconds for wpm.
func ditUs(wpm int) int64 {
	return 1_200_000 / int64(wpm)
}

func (m MemoryMode) allows(e Element) bool {
	switch m {
	case MemoryDotOnly:
		return e == Dit
	case MemoryDahOnly:
		return e == Dah
	case MemoryDotAndDah:
		return true
	default:
		return false
	}
}
