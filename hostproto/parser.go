// Package hostproto implements the host wire protocol byte parser
// (C8) and the length-prefixed framed parser (C9).
package hostproto

// Command identifies a host-protocol command byte. Commands occupy
// 0x00-0x1F; 0x20-0x7F is text; bytes above that are ignored in IDLE.
type Command byte

const (
	CmdAdmin Command = 0x00

	CmdClearBuffer Command = 0x01
	CmdSpeed       Command = 0x02

	CmdBackspace    Command = 0x03
	CmdGetSpeedPot  Command = 0x04
	CmdLoadDefaults Command = 0x05

	CmdSidetone     Command = 0x06
	CmdWeight       Command = 0x07
	CmdSpeedPot     Command = 0x08
	CmdPause        Command = 0x09
	CmdPinConfig    Command = 0x0A
	CmdKeyImmediate Command = 0x0B
	CmdHSCWSpeed    Command = 0x0C
	CmdFarnsworth   Command = 0x0D
	CmdMode         Command = 0x0E

	CmdPTTTiming Command = 0x0F
)

// paramCounts is the canonical parameter-count table from spec.md §6.
var paramCounts = map[Command]int{
	CmdClearBuffer:  0,
	CmdBackspace:    0,
	CmdGetSpeedPot:  0,
	CmdLoadDefaults: 0,

	CmdSidetone:     1,
	CmdSpeed:        1,
	CmdWeight:       1,
	CmdSpeedPot:     1,
	CmdPause:        1,
	CmdPinConfig:    1,
	CmdKeyImmediate: 1,
	CmdHSCWSpeed:    1,
	CmdFarnsworth:   1,
	CmdMode:         1,

	CmdPTTTiming: 2,
}

// AdminSub identifies an ADMIN (0x00) sub-command byte.
type AdminSub byte

const (
	AdminHostClose AdminSub = 0x01
	AdminHostOpen  AdminSub = 0x02
	AdminReset     AdminSub = 0x03
	AdminEcho      AdminSub = 0x04
)

// ProtocolVersion is the byte HOST_OPEN emits in response.
const ProtocolVersion byte = 23

// Callbacks is the capability set the parser dispatches to. Any field
// may be nil; a nil callback is simply skipped, never an error.
type Callbacks struct {
	Text func(c byte)

	ClearBuffer  func()
	Backspace    func()
	GetSpeedPot  func()
	LoadDefaults func()

	Sidetone     func(code byte)
	Speed        func(wpm byte)
	Weight       func(percent byte)
	SpeedPot     func(value byte)
	Pause        func(on bool)
	PinConfig    func(value byte)
	KeyImmediate func(on bool)
	HSCWSpeed    func(value byte)
	Farnsworth   func(value byte)
	Mode         func(value byte)

	PTTTiming func(leadIn, tail byte)

	// Emit sends a response byte to the host: the version byte on
	// HOST_OPEN, or an echoed byte.
	Emit func(b byte)
}

type parserState uint8

const (
	stateIdle parserState = iota
	stateAdminWaitSub
	stateWaitParam1
	stateWaitParam2
)

// Parser is the byte-oriented host protocol state machine.
type Parser struct {
	cb Callbacks

	state       parserState
	cmd         Command
	param1      byte
	echoPending bool
	sessionOpen bool
}

// NewParser constructs a Parser dispatching to cb.
func NewParser(cb Callbacks) *Parser {
	return &Parser{cb: cb}
}

// SessionOpen reports whether HOST_OPEN has been processed without a
// subsequent HOST_CLOSE or RESET.
func (p *Parser) SessionOpen() bool {
	return p.sessionOpen
}

// Feed advances the parser by one byte.
func (p *Parser) Feed(b byte) {
	switch p.state {
	case stateIdle:
		p.feedIdle(b)
	case stateAdminWaitSub:
		p.feedAdminSub(AdminSub(b))
	case stateWaitParam1:
		p.feedParam1(b)
	case stateWaitParam2:
		p.feedParam2(b)
	}
}

func (p *Parser) feedIdle(b byte) {
	switch {
	case b == byte(CmdAdmin):
		p.state = stateAdminWaitSub
	case b >= 0x01 && b <= 0x1F:
		cmd := Command(b)
		n, known := paramCounts[cmd]
		if !known {
			return
		}
		if n == 0 {
			if p.sessionOpen {
				p.dispatch0(cmd)
			}
			return
		}
		p.cmd = cmd
		p.state = stateWaitParam1
	case b >= 0x20 && b <= 0x7F:
		if p.sessionOpen && p.cb.Text != nil {
			p.cb.Text(b)
		}
	default:
		// >= 0x80: ignored in IDLE.
	}
}

func (p *Parser) feedAdminSub(sub AdminSub) {
	switch sub {
	case AdminHostOpen:
		p.sessionOpen = true
		if p.cb.Emit != nil {
			p.cb.Emit(ProtocolVersion)
		}
		p.state = stateIdle
	case AdminHostClose:
		p.sessionOpen = false
		p.state = stateIdle
	case AdminReset:
		p.sessionOpen = false
		p.state = stateIdle
	case AdminEcho:
		p.echoPending = true
		p.state = stateWaitParam1
	default:
		// Other recognized admin sub-commands are acknowledged
		// silently; unknown sub-commands are likewise just dropped.
		p.state = stateIdle
	}
}

func (p *Parser) feedParam1(b byte) {
	if p.echoPending {
		p.echoPending = false
		if p.cb.Emit != nil {
			p.cb.Emit(b)
		}
		p.state = stateIdle
		return
	}
	if paramCounts[p.cmd] == 2 {
		p.param1 = b
		p.state = stateWaitParam2
		return
	}
	if p.sessionOpen {
		p.dispatch1(p.cmd, b)
	}
	p.state = stateIdle
}

func (p *Parser) feedParam2(b byte) {
	if p.sessionOpen {
		p.dispatch2(p.cmd, p.param1, b)
	}
	p.state = stateIdle
}

func (p *Parser) dispatch0(cmd Command) {
	switch cmd {
	case CmdClearBuffer:
		if p.cb.ClearBuffer != nil {
			p.cb.ClearBuffer()
		}
	case CmdBackspace:
		if p.cb.Backspace != nil {
			p.cb.Backspace()
		}
	case CmdGetSpeedPot:
		if p.cb.GetSpeedPot != nil {
			p.cb.GetSpeedPot()
		}
	case CmdLoadDefaults:
		if p.cb.LoadDefaults != nil {
			p.cb.LoadDefaults()
		}
	}
}

func (p *Parser) dispatch1(cmd Command, b byte) {
	switch cmd {
	case CmdSidetone:
		if p.cb.Sidetone != nil {
			p.cb.Sidetone(b)
		}
	case CmdSpeed:
		if p.cb.Speed != nil {
			p.cb.Speed(b)
		}
	case CmdWeight:
		if p.cb.Weight != nil {
			p.cb.Weight(b)
		}
	case CmdSpeedPot:
		if p.cb.SpeedPot != nil {
			p.cb.SpeedPot(b)
		}
	case CmdPause:
		if p.cb.Pause != nil {
			p.cb.Pause(b != 0)
		}
	case CmdPinConfig:
		if p.cb.PinConfig != nil {
			p.cb.PinConfig(b)
		}
	case CmdKeyImmediate:
		if p.cb.KeyImmediate != nil {
			p.cb.KeyImmediate(b != 0)
		}
	case CmdHSCWSpeed:
		if p.cb.HSCWSpeed != nil {
			p.cb.HSCWSpeed(b)
		}
	case CmdFarnsworth:
		if p.cb.Farnsworth != nil {
			p.cb.Farnsworth(b)
		}
	case CmdMode:
		if p.cb.Mode != nil {
			p.cb.Mode(b)
		}
	}
}

func (p *Parser) dispatch2(cmd Command, param1, b byte) {
	switch cmd {
	case CmdPTTTiming:
		if p.cb.PTTTiming != nil {
			p.cb.PTTTiming(param1, b)
		}
	}
}
