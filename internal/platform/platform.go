// Package platform abstracts the hardware the keyer core drives: the
// two paddle inputs, the key-out and sidetone lines, and the serial
// transport carrying the host protocol. Real hardware access lives in
// platform_rpi.go (periph.io on linux/arm); everywhere else
// platform_dummy.go provides an in-memory loopback so the core builds
// and tests on a workstation.
package platform

// Paddle identifies one of the two iambic paddle contacts.
type Paddle int

const (
	PaddleDit Paddle = iota
	PaddleDah
)

// GPIO is the real-time-safe paddle/key/sidetone surface the RT
// context polls every tick. Reads and writes must never block.
type GPIO interface {
	// ReadPaddle reports whether the given paddle contact is closed.
	ReadPaddle(p Paddle) bool
	// SetKeyOut drives the transmit key line.
	SetKeyOut(on bool)
	// SetSidetone enables or disables the sidetone oscillator.
	SetSidetone(on bool)
}

// Transport is the byte stream carrying the host protocol, read by
// the event-driven protocol-byte reader task.
type Transport interface {
	// ReadByte blocks until one byte is available.
	ReadByte() (byte, error)
	// WriteByte sends one response byte.
	WriteByte(b byte) error
	Close() error
}
