package iambic

import "testing"

func cfg20WPM(mode Mode) Config {
	c := DefaultConfig()
	c.WPM = 20
	c.Mode = mode
	return c
}

func TestBasicDitAt20WPM(t *testing.T) {
	p := NewProcessor(cfg20WPM(ModeB))
	const dit = 60000

	if k := p.Tick(0, 0, true, false); k != 1 {
		t.Fatalf("t=0: local_key=%d, want 1", k)
	}
	if p.state != stateSendDit {
		t.Fatalf("t=0: state=%v, want SEND_DIT", p.state)
	}
	if k := p.Tick(dit+1000, 0, true, false); k != 0 {
		t.Fatalf("t=61000: local_key=%d, want 0", k)
	}
	if p.state != stateGap {
		t.Fatalf("t=61000: state=%v, want GAP", p.state)
	}
	if k := p.Tick(2*dit+2000, 0, false, false); k != 0 {
		t.Fatalf("t=122000: local_key=%d, want 0", k)
	}
	if p.state != stateIdle {
		t.Fatalf("t=122000: state=%v, want IDLE", p.state)
	}
}

func TestProlongedSqueezeModeB(t *testing.T) {
	p := NewProcessor(cfg20WPM(ModeB))
	const dit = 60000

	// Squeeze at t=0: expect DIT 0-60000.
	p.Tick(0, 0, true, true)
	if p.state != stateSendDit {
		t.Fatalf("expected SEND_DIT at t=0, got %v", p.state)
	}
	// Hold through the element end and gap; the alternating DAH starts at 120000.
	var now int64
	for now = 1000; now <= 120000; now += 1000 {
		p.Tick(now, 0, true, true)
	}
	if p.state != stateSendDah || p.element != Dah {
		t.Fatalf("at t=120000 expected SEND_DAH, got state=%v element=%v", p.state, p.element)
	}
	if p.elementEnd != 120000+3*dit {
		t.Fatalf("dah end = %d, want %d", p.elementEnd, 120000+3*dit)
	}
	// DAH ends at 300000; after its one-dit gap the next DIT starts at 360000.
	for ; now <= 360000; now += 1000 {
		p.Tick(now, 0, true, true)
	}
	if p.state != stateSendDit || p.element != Dit {
		t.Fatalf("after dah expected SEND_DIT, got state=%v element=%v", p.state, p.element)
	}
}

func TestModeAStopsAtCurrentElement(t *testing.T) {
	p := NewProcessor(cfg20WPM(ModeA))
	p.Tick(0, 0, true, true) // squeeze -> DIT
	// Release dah mid-element (still inside SEND_DIT).
	p.Tick(30000, 0, true, false)
	// Run out the element and its gap.
	var lastKey uint8
	for now := int64(40000); now <= 200000; now += 10000 {
		lastKey = p.Tick(now, 0, false, false)
	}
	if p.state != stateIdle || lastKey != 0 {
		t.Fatalf("mode A should settle at IDLE with key up, got state=%v key=%d", p.state, lastKey)
	}
}

func TestModeBEmitsOneBonusElement(t *testing.T) {
	p := NewProcessor(cfg20WPM(ModeB))
	p.Tick(0, 0, true, true) // squeeze -> DIT
	firstElement := p.element
	// Release dah mid-element.
	p.Tick(30000, 0, true, false)
	// Release everything so no further paddle-driven elements occur.
	p.Tick(40000, 0, false, false)

	var elements []Element
	for now := int64(50000); now <= 400000; now += 1000 {
		before := p.state
		p.Tick(now, 0, false, false)
		if before != stateSendDit && before != stateSendDah && (p.state == stateSendDit || p.state == stateSendDah) {
			elements = append(elements, p.element)
		}
	}
	if len(elements) != 1 {
		t.Fatalf("mode B should emit exactly one bonus element, got %v", elements)
	}
	if elements[0] == firstElement {
		t.Fatalf("bonus element %v should be the opposite of the first element %v", elements[0], firstElement)
	}
}

func TestMemoryDahDuringDit(t *testing.T) {
	c := cfg20WPM(ModeB)
	c.MemoryWindowStart, c.MemoryWindowEnd = 0, 100
	p := NewProcessor(c)

	p.Tick(0, 0, true, false) // start DIT
	// Press dah partway through the dit, while dit paddle is released.
	p.Tick(20000, 0, false, true)
	if !p.dahMemory {
		t.Fatal("dah memory should be armed")
	}
	// Release dah before the element and its gap complete.
	var sawDah bool
	for now := int64(40000); now <= 200000; now += 10000 {
		before := p.state
		p.Tick(now, 0, false, false)
		if before == stateGap && p.state != stateGap && p.element == Dah {
			sawDah = true
		}
	}
	if !sawDah {
		t.Fatal("dah armed during the dit should be emitted after the dit's gap")
	}
}

func TestDurationsAtDefaultWeight(t *testing.T) {
	for _, wpm := range []int{5, 13, 20, 25, 40, 100} {
		dit := ditUs(wpm)
		mark, gap := markAndGap(wpm, 50, Dit)
		if mark != dit {
			t.Fatalf("wpm=%d: dit mark=%d, want %d", wpm, mark, dit)
		}
		if gap != dit {
			t.Fatalf("wpm=%d: gap=%d, want %d (one dit)", wpm, gap, dit)
		}
		dahMark, dahGap := markAndGap(wpm, 50, Dah)
		if dahMark != 3*dit {
			t.Fatalf("wpm=%d: dah mark=%d, want %d", wpm, dahMark, 3*dit)
		}
		if dahGap != dit {
			t.Fatalf("wpm=%d: dah gap=%d, want %d (one dit)", wpm, dahGap, dit)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	c := DefaultConfig()
	if err := c.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	bad := c
	bad.WPM = 4
	if err := bad.Validate(); err == nil {
		t.Fatal("wpm below range should be rejected")
	}
	bad = c
	bad.Weight = 68
	if err := bad.Validate(); err == nil {
		t.Fatal("weight above range should be rejected")
	}
}
