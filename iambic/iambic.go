// Package iambic implements the paddle-driven iambic keying FSM (C4):
// dual-paddle dit/dah generation with Mode A/B squeeze behavior and
// configurable memory.
package iambic

// Element identifies a Morse element, or the absence of one.
type Element uint8

const (
	None Element = iota
	Dit
	Dah
)

func (e Element) opposite() Element {
	switch e {
	case Dit:
		return Dah
	case Dah:
		return Dit
	default:
		return Dit
	}
}

type fsmState uint8

const (
	stateIdle fsmState = iota
	stateSendDit
	stateSendDah
	stateGap
)

// Processor is the iambic keyer FSM. The zero value, paired with a
// call to Reconfigure, is ready to use.
type Processor struct {
	cfg Config

	state        fsmState
	element      Element // element currently being sent (Dit/Dah) during SEND_*
	lastElement  Element
	elementStart int64
	elementEnd   int64 // absolute end of the current state (mark or gap)
	markUs       int64 // duration of the mark just sent/being sent, for the memory-window fraction

	ditPressed, dahPressed bool
	ditMemory, dahMemory   bool
	squeezeSeen            bool
	keyDown                bool
}

// NewProcessor constructs a Processor with the given configuration.
func NewProcessor(cfg Config) *Processor {
	p := &Processor{}
	p.Reconfigure(cfg)
	return p
}

// Reconfigure snapshots cfg by value for subsequent ticks. The end time
// of a mark or gap already in progress is not recomputed; the new
// configuration applies from the next state change onward.
func (p *Processor) Reconfigure(cfg Config) {
	p.cfg = cfg
}

// KeyDown reports whether the key is currently down.
func (p *Processor) KeyDown() bool {
	return p.keyDown
}

// markAndGap computes the weighted mark duration and the complementary
// inter-element gap for sending element e, given the processor's
// current weight configuration.
//
// spec.md §4.4 gives the formula as "mark = 2*dit*w/50" without fully
// specifying what "dit" denotes for a dah element, or how the
// inter-element gap (stated elsewhere as exactly 1 dit) interacts with
// it. We resolve it (see DESIGN.md) as: the nominal mark is dit for
// a dit and dah (3*dit) for a dah; weight scales that nominal mark
// around its neutral value of 50; the gap absorbs whatever the mark
// over- or under-runs relative to its nominal value, so that at the
// neutral weight the gap is exactly 1 dit, and the pair (mark+gap)
// total is unchanged. The gap is clamped at zero, so a dah at weight
// 67 (mark 4.02 dits) leaves no gap and its pair runs slightly longer.
func markAndGap(wpm, weight int, e Element) (mark, gap int64) {
	dit := ditUs(wpm)
	nominalMark := dit
	if e == Dah {
		nominalMark = 3 * dit
	}
	mark = nominalMark * int64(weight) / 50
	gap = nominalMark + dit - mark
	if gap < 0 {
		gap = 0
	}
	return mark, gap
}

// Tick advances the FSM by one tick and returns the local key level (1
// down, 0 up) for the sample the caller pushes to the stream. now is a
// monotonically increasing microsecond timestamp; ditPressed/dahPressed
// are the paddle levels sampled this tick. gpio is accepted but not
// used: the caller attaches its input-line bits to the sample itself.
func (p *Processor) Tick(now int64, gpio uint32, ditPressed, dahPressed bool) (localKey uint8) {
	p.updatePaddles(now, ditPressed, dahPressed)

	switch p.state {
	case stateIdle:
		p.dispatchIdle(now)
	case stateSendDit, stateSendDah:
		if now >= p.elementEnd {
			p.keyDown = false
			p.lastElement = p.element
			p.state = stateGap
			_, gap := markAndGap(p.cfg.WPM, p.cfg.Weight, p.element)
			p.elementEnd = now + gap
		}
	case stateGap:
		if now >= p.elementEnd {
			p.state = stateIdle
			p.dispatchIdle(now)
		}
	}

	if p.keyDown {
		return 1
	}
	return 0
}

// updatePaddles records the new paddle levels, detects a squeeze
// rising edge, and arms memory flags when a paddle is newly pressed
// within the current element's memory window.
func (p *Processor) updatePaddles(now int64, ditPressed, dahPressed bool) {
	prevDit, prevDah := p.ditPressed, p.dahPressed
	wasSqueezed := prevDit && prevDah
	nowSqueezed := ditPressed && dahPressed
	if nowSqueezed && !wasSqueezed {
		p.squeezeSeen = true
	}
	if p.cfg.Squeeze == LatchOff && !nowSqueezed {
		p.squeezeSeen = false
	}

	if p.state == stateSendDit || p.state == stateSendDah {
		elapsed := now - p.elementStart
		frac := int64(100)
		if p.markUs > 0 {
			frac = elapsed * 100 / p.markUs
			if frac > 100 {
				frac = 100
			}
		}
		inWindow := frac >= int64(p.cfg.MemoryWindowStart) && frac <= int64(p.cfg.MemoryWindowEnd)
		if inWindow {
			if ditPressed && !prevDit && p.cfg.Memory.allows(Dit) {
				p.ditMemory = true
			}
			if dahPressed && !prevDah && p.cfg.Memory.allows(Dah) {
				p.dahMemory = true
			}
		}
	}

	p.ditPressed, p.dahPressed = ditPressed, dahPressed
}

// dispatchIdle chooses the next element to send, if any, and starts
// it. Priority: armed memory, then the Mode-B bonus, then whichever
// single paddle is held, then alternation while squeezed.
func (p *Processor) dispatchIdle(now int64) {
	e := p.chooseNext()
	if e == None {
		return
	}
	p.startElement(now, e)
}

func (p *Processor) chooseNext() Element {
	switch {
	case p.ditMemory:
		p.ditMemory = false
		return Dit
	case p.dahMemory:
		p.dahMemory = false
		return Dah
	}
	if p.cfg.Mode == ModeB && p.squeezeSeen && !(p.ditPressed && p.dahPressed) {
		p.squeezeSeen = false
		return p.lastElement.opposite()
	}
	switch {
	case p.ditPressed && !p.dahPressed:
		return Dit
	case p.dahPressed && !p.ditPressed:
		return Dah
	case p.ditPressed && p.dahPressed:
		return p.lastElement.opposite()
	default:
		return None
	}
}

func (p *Processor) startElement(now int64, e Element) {
	mark, _ := markAndGap(p.cfg.WPM, p.cfg.Weight, e)
	p.element = e
	p.elementStart = now
	p.markUs = mark
	p.elementEnd = now + mark
	p.keyDown = true
	switch e {
	case Dit:
		p.state = stateSendDit
	case Dah:
		p.state = stateSendDah
	}
}
