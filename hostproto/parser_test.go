package hostproto

import "testing"

func TestHostOpenThenSpeed(t *testing.T) {
	var emitted []byte
	var speed byte
	p := NewParser(Callbacks{
		Emit:  func(b byte) { emitted = append(emitted, b) },
		Speed: func(wpm byte) { speed = wpm },
	})

	p.Feed(byte(CmdAdmin))
	p.Feed(byte(AdminHostOpen))
	if !p.SessionOpen() {
		t.Fatal("session should be open after HOST_OPEN")
	}
	if len(emitted) != 1 || emitted[0] != ProtocolVersion {
		t.Fatalf("emitted = %v, want [%d]", emitted, ProtocolVersion)
	}

	p.Feed(byte(CmdSpeed))
	p.Feed(25)
	if speed != 25 {
		t.Fatalf("speed = %d, want 25", speed)
	}
}

// TestScenarioFLiteralWireBytes feeds the literal bytes from spec.md's
// scenario F rather than the symbolic constants, so a future
// renumbering of Command/AdminSub that breaks the documented wire
// values fails here even if the rest of the suite still passes.
func TestScenarioFLiteralWireBytes(t *testing.T) {
	var emitted []byte
	var speed byte
	p := NewParser(Callbacks{
		Emit:  func(b byte) { emitted = append(emitted, b) },
		Speed: func(wpm byte) { speed = wpm },
	})

	p.Feed(0x00)
	p.Feed(0x02)
	if !p.SessionOpen() {
		t.Fatal("session should be open after HOST_OPEN")
	}
	if len(emitted) != 1 || emitted[0] != 23 {
		t.Fatalf("emitted = %v, want [23]", emitted)
	}

	p.Feed(0x02)
	p.Feed(25)
	if speed != 25 {
		t.Fatalf("speed = %d, want 25", speed)
	}
}

func TestCommandsSuppressedBeforeSessionOpen(t *testing.T) {
	var called bool
	p := NewParser(Callbacks{
		Speed: func(byte) { called = true },
	})
	p.Feed(byte(CmdSpeed))
	p.Feed(25)
	if called {
		t.Fatal("callback should not fire before HOST_OPEN")
	}
}

func TestTextSuppressedBeforeSessionOpen(t *testing.T) {
	var got []byte
	p := NewParser(Callbacks{Text: func(c byte) { got = append(got, c) }})
	p.Feed('A')
	if len(got) != 0 {
		t.Fatalf("got %v, want no text delivered before HOST_OPEN", got)
	}
	p.Feed(byte(CmdAdmin))
	p.Feed(byte(AdminHostOpen))
	p.Feed('A')
	if len(got) != 1 || got[0] != 'A' {
		t.Fatalf("got %v, want ['A'] after HOST_OPEN", got)
	}
}

func TestZeroParamCommand(t *testing.T) {
	var called int
	p := NewParser(Callbacks{ClearBuffer: func() { called++ }})
	p.Feed(byte(CmdAdmin))
	p.Feed(byte(AdminHostOpen))
	p.Feed(byte(CmdClearBuffer))
	if called != 1 {
		t.Fatalf("called = %d, want 1", called)
	}
}

func TestTwoParamCommandPTTTiming(t *testing.T) {
	var leadIn, tail byte
	p := NewParser(Callbacks{PTTTiming: func(l, tl byte) { leadIn, tail = l, tl }})
	p.Feed(byte(CmdAdmin))
	p.Feed(byte(AdminHostOpen))
	p.Feed(byte(CmdPTTTiming))
	p.Feed(10)
	p.Feed(20)
	if leadIn != 10 || tail != 20 {
		t.Fatalf("got (%d,%d), want (10,20)", leadIn, tail)
	}
}

func TestEchoEmitsVerbatimRegardlessOfSession(t *testing.T) {
	var emitted []byte
	p := NewParser(Callbacks{Emit: func(b byte) { emitted = append(emitted, b) }})
	p.Feed(byte(CmdAdmin))
	p.Feed(byte(AdminEcho))
	p.Feed(0x42)
	if len(emitted) != 1 || emitted[0] != 0x42 {
		t.Fatalf("emitted = %v, want [0x42]", emitted)
	}
}

func TestParametersStillConsumedWhenSessionClosed(t *testing.T) {
	var called bool
	p := NewParser(Callbacks{PTTTiming: func(byte, byte) { called = true }})
	// Session never opened: bytes are consumed in lockstep but the
	// callback never fires, and the parser returns to IDLE ready for
	// the next command.
	p.Feed(byte(CmdPTTTiming))
	p.Feed(1)
	p.Feed(2)
	if called {
		t.Fatal("callback should not fire without an open session")
	}
	p.Feed(byte(CmdAdmin))
	p.Feed(byte(AdminHostOpen))
	p.Feed(byte(CmdPTTTiming))
	p.Feed(3)
	p.Feed(4)
	if !called {
		t.Fatal("callback should fire once the session is open")
	}
}

func TestHostCloseEndsSession(t *testing.T) {
	p := NewParser(Callbacks{})
	p.Feed(byte(CmdAdmin))
	p.Feed(byte(AdminHostOpen))
	p.Feed(byte(CmdAdmin))
	p.Feed(byte(AdminHostClose))
	if p.SessionOpen() {
		t.Fatal("session should be closed after HOST_CLOSE")
	}
}

func TestUnknownAdminSubReturnsToIdle(t *testing.T) {
	p := NewParser(Callbacks{})
	p.Feed(byte(CmdAdmin))
	p.Feed(0x7E) // not a recognized sub-command
	if p.state != stateIdle {
		t.Fatalf("state = %v, want stateIdle", p.state)
	}
}
