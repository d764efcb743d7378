package rtlog

import (
	"log"
	"time"
)

// Streams holds the two process-wide log rings described in
// spec.md §4.11: one fed from the RT context, one from everything
// else.
type Streams struct {
	RT         *Ring
	Background *Ring
}

// NewStreams builds both rings at the given capacities.
func NewStreams(rtCapacity, backgroundCapacity int) *Streams {
	return &Streams{
		RT:         NewRing(rtCapacity),
		Background: NewRing(backgroundCapacity),
	}
}

// Drainer is the single background task that pulls both streams,
// preferring RT entries, and periodically reports dropped counts.
type Drainer struct {
	streams     *Streams
	interval    time.Duration
	reportEvery time.Duration
	stop        chan struct{}
}

// NewDrainer builds a Drainer polling streams every interval and
// logging dropped-entry counts every reportEvery.
func NewDrainer(streams *Streams, interval, reportEvery time.Duration) *Drainer {
	return &Drainer{
		streams:     streams,
		interval:    interval,
		reportEvery: reportEvery,
		stop:        make(chan struct{}),
	}
}

// Run drains both streams until Stop is called. It is meant to run on
// its own goroutine; it never holds a lock and only ever sleeps
// between polls, matching the "no external hold" cancellation model.
func (d *Drainer) Run() {
	buf := make([]Entry, 64)
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	reportTicker := time.NewTicker(d.reportEvery)
	defer reportTicker.Stop()

	var lastRTDropped, lastBGDropped uint64
	for {
		select {
		case <-d.stop:
			return
		case <-reportTicker.C:
			rtDropped := d.streams.RT.Dropped()
			bgDropped := d.streams.Background.Dropped()
			if rtDropped != lastRTDropped || bgDropped != lastBGDropped {
				log.Printf("rtlog: dropped rt=%d background=%d", rtDropped, bgDropped)
				lastRTDropped, lastBGDropped = rtDropped, bgDropped
			}
		case <-ticker.C:
			d.drainOnce(buf)
		}
	}
}

func (d *Drainer) drainOnce(buf []Entry) {
	for {
		n := d.streams.RT.Drain(buf)
		d.emit(buf[:n])
		if n < len(buf) {
			break
		}
	}
	for {
		n := d.streams.Background.Drain(buf)
		d.emit(buf[:n])
		if n < len(buf) {
			break
		}
	}
}

func (d *Drainer) emit(entries []Entry) {
	for _, e := range entries {
		log.Printf("[%d] %s", e.Level, e.Text())
	}
}

// Stop ends the drain loop. Safe to call once.
func (d *Drainer) Stop() {
	close(d.stop)
}
