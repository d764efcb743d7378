package hostproto

// Category is the length-field encoding carried in a frame command
// byte's top two bits.
type Category int

const (
	CatNone Category = iota
	CatShort
	CatLong
	CatReserved
)

func categoryOf(b byte) Category {
	switch b >> 6 {
	case 0:
		return CatNone
	case 1:
		return CatShort
	case 2:
		return CatLong
	default:
		return CatReserved
	}
}

// Frame is one decoded length-prefixed frame. Payload points into the
// caller's buffer when the whole payload arrived in one contiguous
// Feed call, or into the FrameParser's internal buffer when it had to
// be reassembled across calls — either way it is only valid until the
// next call to Feed or Reset.
type Frame struct {
	Command byte
	Payload []byte
}

// FrameStatus is the outcome of a Feed call.
type FrameStatus int

const (
	// FrameOK means a complete frame was decoded.
	FrameOK FrameStatus = iota
	// FrameNeedMore means all of data was consumed but the frame is
	// not yet complete; call Feed again with more bytes.
	FrameNeedMore
	// FrameError means the reserved length category was seen; the
	// parser has reset itself and the caller should resync.
	FrameError
)

type frameState int

const (
	fsCommand frameState = iota
	fsLen1
	fsLen2
	fsPayload
)

// FrameParser deframes a length-prefixed streaming protocol (C9). The
// zero value is ready to use.
type FrameParser struct {
	state    frameState
	cmd      byte
	cat      Category
	len1     byte
	expected int
	received int
	scratch  [256]byte
}

// NewFrameParser constructs a ready-to-use FrameParser.
func NewFrameParser() *FrameParser {
	return &FrameParser{}
}

// Reset discards any partial frame state. It does not clear the
// internal reassembly buffer's contents, only the parser's position
// in it, since any previously returned Payload slice into that buffer
// is documented as invalid once Feed or Reset is called again.
func (fp *FrameParser) Reset() {
	fp.state = fsCommand
	fp.cmd = 0
	fp.cat = CatNone
	fp.len1 = 0
	fp.expected = 0
	fp.received = 0
}

// Feed parses as much of data as needed to produce one frame,
// starting wherever the parser left off. It returns the number of
// bytes of data it consumed; the caller advances past those bytes
// (feeding the remainder, if any, on a subsequent call) regardless of
// status. Feeding a well-formed byte sequence as one call or as many
// single-byte calls yields the same command and payload bytes.
func (fp *FrameParser) Feed(data []byte) (Frame, FrameStatus, int) {
	pos := 0
	for {
		switch fp.state {
		case fsCommand:
			if pos >= len(data) {
				return Frame{}, FrameNeedMore, pos
			}
			b := data[pos]
			pos++
			fp.cmd = b & 0x3F
			fp.cat = categoryOf(b)
			switch fp.cat {
			case CatReserved:
				fp.Reset()
				return Frame{}, FrameError, pos
			case CatNone:
				cmd := fp.cmd
				fp.Reset()
				return Frame{Command: cmd}, FrameOK, pos
			default:
				fp.state = fsLen1
			}
		case fsLen1:
			if pos >= len(data) {
				return Frame{}, FrameNeedMore, pos
			}
			b := data[pos]
			pos++
			if fp.cat == CatShort {
				fp.expected = int(b)
				fp.received = 0
				fp.state = fsPayload
			} else {
				fp.len1 = b
				fp.state = fsLen2
			}
		case fsLen2:
			if pos >= len(data) {
				return Frame{}, FrameNeedMore, pos
			}
			b := data[pos]
			pos++
			fp.expected = int(fp.len1) | int(b)<<8
			fp.received = 0
			fp.state = fsPayload
		case fsPayload:
			if fp.expected == 0 {
				cmd := fp.cmd
				fp.Reset()
				return Frame{Command: cmd}, FrameOK, pos
			}
			if fp.received == 0 && len(data)-pos >= fp.expected {
				payload := data[pos : pos+fp.expected]
				pos += fp.expected
				cmd := fp.cmd
				fp.Reset()
				return Frame{Command: cmd, Payload: payload}, FrameOK, pos
			}
			if pos >= len(data) {
				return Frame{}, FrameNeedMore, pos
			}
			remaining := fp.expected - fp.received
			avail := len(data) - pos
			take := avail
			if take > remaining {
				take = remaining
			}
			copy(fp.scratch[fp.received:fp.received+take], data[pos:pos+take])
			fp.received += take
			pos += take
			if fp.received != fp.expected {
				return Frame{}, FrameNeedMore, pos
			}
			cmd := fp.cmd
			payload := fp.scratch[:fp.received]
			fp.Reset()
			return Frame{Command: cmd, Payload: payload}, FrameOK, pos
		}
	}
}
