package main

import (
	"fmt"
	"log"
	"time"

	"cwkeyer.dev/config"
	"cwkeyer.dev/fault"
	"cwkeyer.dev/hostproto"
	"cwkeyer.dev/iambic"
	"cwkeyer.dev/internal/platform"
	"cwkeyer.dev/morse"
	"cwkeyer.dev/rtlog"
	"cwkeyer.dev/stream"
)

// streamCapacity is the sample ring's slot count; must be a power of
// two per stream.New.
const streamCapacity = 4096

// maxHardRTLag bounds how far the hard-RT consumer may fall behind
// before it latches fault.LatencyExceeded.
const maxHardRTLag = 64

// keyer holds every C1-C11 singleton and the platform handles they are
// wired to, matching the "initializes singletons once" composition
// spec.md §9 calls for.
type keyer struct {
	gpio      platform.GPIO
	transport platform.Transport

	cfg     *config.Store
	faults  fault.Register
	log     *rtlog.Streams
	drainer *rtlog.Drainer

	samples *stream.Stream
	hardRT  *stream.HardRT
	bestEff *stream.BestEffort

	iambic     *iambic.Processor
	classifier *morse.Classifier
	decoder    *morse.Decoder

	parser *hostproto.Parser
	frames *hostproto.FrameParser

	tickHz int
	tickUs int64

	rxLastTs   int64
	rxLastMark bool
}

func newKeyer(serialDev string, tickHz int) (*keyer, error) {
	if tickHz <= 0 {
		return nil, fmt.Errorf("tick-hz must be positive, got %d", tickHz)
	}
	samples, err := stream.New(streamCapacity)
	if err != nil {
		return nil, err
	}

	cfg := config.NewStore()
	k := &keyer{
		cfg:        cfg,
		log:        rtlog.NewStreams(rtlog.DefaultCapacity, rtlog.DefaultCapacity),
		samples:    samples,
		iambic:     iambic.NewProcessor(cfg.Snapshot()),
		classifier: morse.NewClassifier(),
		tickHz:     tickHz,
		tickUs:     int64(time.Second / time.Duration(tickHz) / time.Microsecond),
	}
	k.decoder = morse.NewDecoder(k.classifier)
	k.hardRT = stream.NewHardRT(k.samples, maxHardRTLag, &k.faults)
	k.bestEff = stream.NewBestEffort(k.samples, maxHardRTLag/2)
	k.drainer = rtlog.NewDrainer(k.log, 20*time.Millisecond, 5*time.Second)

	gpio, transport, err := openPlatform(serialDev)
	if err != nil {
		return nil, err
	}
	k.gpio = gpio
	k.transport = transport

	k.frames = hostproto.NewFrameParser()
	k.parser = hostproto.NewParser(k.callbacks())
	return k, nil
}

func (k *keyer) Close() {
	k.drainer.Stop()
	if k.transport != nil {
		k.transport.Close()
	}
}

// runTickLoop is the RT context: fixed tick rate, never suspends on a
// synchronization primitive, only ever sleeps to the next tick.
func (k *keyer) runTickLoop() {
	interval := time.Second / time.Duration(k.tickHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var now int64
	for range ticker.C {
		now += k.tickUs
		k.iambic.Reconfigure(k.cfg.Snapshot())

		dit := k.gpio.ReadPaddle(platform.PaddleDit)
		dah := k.gpio.ReadPaddle(platform.PaddleDah)
		localKey := k.iambic.Tick(now, gpioBits(dit, dah), dit, dah)

		k.gpio.SetKeyOut(localKey != 0)
		k.gpio.SetSidetone(localKey != 0)

		k.samples.Push(stream.Sample{
			GPIOBits:         gpioBits(dit, dah),
			LocalKey:         localKey,
			ConfigGeneration: uint32(k.cfg.Generation()),
		})

		k.drainHardRT()
		k.drainBestEffort(now)
	}
}

func (k *keyer) drainHardRT() {
	var s stream.Sample
	for {
		switch k.hardRT.Tick(&s) {
		case stream.ResultOK:
			continue
		case stream.ResultFault:
			code, datum, _ := k.faults.Get()
			k.log.RT.Push(rtlog.LevelError, 0, []byte(fmt.Sprintf("fault: %s datum=%d", code, datum)))
			return
		default:
			return
		}
	}
}

// drainBestEffort feeds key-edge timing into the Morse classifier and
// decoder, the receive-side counterpart of the iambic transmit path.
// lastTs/lastMark live on the keyer so an edge's duration is measured
// across ticks, not reset on every drain call.
func (k *keyer) drainBestEffort(now int64) {
	var s stream.Sample
	for {
		switch k.bestEff.Tick(&s) {
		case stream.ResultOK:
			isMark := s.LocalKey != 0
			if isMark != k.rxLastMark {
				k.decoder.Edge(now, now-k.rxLastTs, k.rxLastMark)
				k.rxLastTs = now
				k.rxLastMark = isMark
			}
			continue
		default:
			if dropped := k.bestEff.Dropped(); dropped > 0 {
				k.log.Background.Push(rtlog.LevelWarn, now, []byte(fmt.Sprintf("rx dropped=%d", dropped)))
			}
			return
		}
	}
}

func gpioBits(dit, dah bool) uint32 {
	var bits uint32
	if dit {
		bits |= 1
	}
	if dah {
		bits |= 2
	}
	return bits
}

func (k *keyer) runDrain() {
	k.drainer.Run()
}

func (k *keyer) runHostReader() {
	if k.transport == nil {
		return
	}
	for {
		b, err := k.transport.ReadByte()
		if err != nil {
			log.Printf("keyerd: host transport read: %v", err)
			return
		}
		frame, status, _ := k.frames.Feed([]byte{b})
		switch status {
		case hostproto.FrameOK:
			k.parser.Feed(frame.Command)
			for _, pb := range frame.Payload {
				k.parser.Feed(pb)
			}
		case hostproto.FrameError:
			k.frames.Reset()
		}
	}
}
