// Package drumsynth is a three-voice percussion synthesizer: kick, snare
// and hi-hat/cymbal rendered from a small byte-valued patch set with
// fixed-point phase-accumulator oscillators and table-driven decay
// envelopes. The realtime Player streams through the ebiten audio
// backend; RenderPattern produces the same output offline.
package drumsynth

import (
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"time"

	intaudio "github.com/cbegin/drumsynth-go/internal/audio"
	intclock "github.com/cbegin/drumsynth-go/internal/clock"
	intdrum "github.com/cbegin/drumsynth-go/internal/drum"
	intring "github.com/cbegin/drumsynth-go/internal/ring"
)

// Instrument identifies one of the three percussion voices.
type Instrument int

const (
	Kick  Instrument = intdrum.Kick
	Snare Instrument = intdrum.Snare
	HiHat Instrument = intdrum.HiHat

	NumInstruments = intdrum.NumInstruments
)

// Clock reports monotonic milliseconds; see WithClock.
type Clock interface {
	Milliseconds() uint32
}

type eventKind uint8

const (
	evTrigger eventKind = iota
	evMorph
	evCC
	evBalance
	evBandwidth
)

type controlEvent struct {
	kind       eventKind
	instrument Instrument
	a, b       uint8
}

type PlayerOption func(*playerConfig)

type playerConfig struct {
	bufferSize int
	clk        Clock
	sampleTap  func([]float32)
}

func defaultPlayerConfig() playerConfig {
	return playerConfig{bufferSize: 8192}
}

// WithBufferSize sets the sample ring capacity (minimum 1024).
func WithBufferSize(size int) PlayerOption {
	return func(cfg *playerConfig) {
		if size >= 1024 {
			cfg.bufferSize = size
		}
	}
}

// WithClock substitutes the millisecond clock used for idle-time
// bookkeeping; tests drive a manual clock through this.
func WithClock(clk Clock) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.clk = clk
	}
}

// WithSampleTap installs a callback invoked with each generated stereo
// buffer. The callback runs on the audio thread; keep work brief and
// non-blocking.
func WithSampleTap(tap func([]float32)) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.sampleTap = tap
	}
}

// Player owns a drum engine and streams it to the audio device. Control
// calls (Trigger and the four parameter setters) may come from any
// goroutine: they enqueue onto a bounded queue that the audio pull drains
// at the start of every buffer, so the engine itself stays
// single-threaded. A full queue drops events; triggers are fire-and-forget.
type Player struct {
	mu         sync.Mutex
	sampleRate int
	engine     *intdrum.Engine
	buf        *intring.Buffer
	events     chan controlEvent
	scratch    []byte
	volume     atomic.Uint64 // math.Float64bits
	backend    *intaudio.Player
	sampleTap  func([]float32)
}

// NewPlayer creates a Player. The audio device is not opened until Start.
func NewPlayer(sampleRate int, opts ...PlayerOption) (*Player, error) {
	if sampleRate <= 0 {
		return nil, errors.New("sampleRate must be positive")
	}
	cfg := defaultPlayerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.clk == nil {
		cfg.clk = intclock.NewWall()
	}
	buf := intring.New(cfg.bufferSize)
	p := &Player{
		sampleRate: sampleRate,
		engine:     intdrum.New(buf, cfg.clk),
		buf:        buf,
		events:     make(chan controlEvent, 64),
		scratch:    make([]byte, buf.Cap()/2),
		sampleTap:  cfg.sampleTap,
	}
	p.volume.Store(math.Float64bits(1))
	return p, nil
}

// Start opens the audio backend and begins streaming. Calling Start on a
// started player is a no-op.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.backend != nil {
		return nil
	}
	backend, err := intaudio.NewPlayer(p.sampleRate, p)
	if err != nil {
		return err
	}
	p.backend = backend
	backend.Play()
	return nil
}

func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.backend != nil {
		p.backend.Pause()
	}
}

func (p *Player) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.backend != nil {
		p.backend.Play()
	}
}

func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.backend == nil {
		return nil
	}
	err := p.backend.Stop()
	p.backend = nil
	return err
}

// Trigger starts a voice at the given level (0-255).
func (p *Player) Trigger(instrument Instrument, level uint8) {
	p.enqueue(controlEvent{kind: evTrigger, instrument: instrument, a: level})
}

// MorphPatch interpolates an instrument's patch along its preset chain.
func (p *Player) MorphPatch(instrument Instrument, value uint8) {
	p.enqueue(controlEvent{kind: evMorph, instrument: instrument, a: value})
}

// SetParameterCC writes one 7-bit controller value into the patch byte
// mapped to the control number; numbers outside the window are ignored.
func (p *Player) SetParameterCC(cc, value uint8) {
	p.enqueue(controlEvent{kind: evCC, a: cc, b: value})
}

// SetBalance sets the single-axis kick/snare mix (0-255).
func (p *Player) SetBalance(mix uint8) {
	p.enqueue(controlEvent{kind: evBalance, a: mix})
}

// SetBandwidth sets the lo-fi decimation control; 255 is full bandwidth.
func (p *Player) SetBandwidth(bandwidth uint8) {
	p.enqueue(controlEvent{kind: evBandwidth, a: bandwidth})
}

func (p *Player) enqueue(ev controlEvent) {
	select {
	case p.events <- ev:
	default:
		// Queue full; drop. Control input is fire-and-forget.
	}
}

// Playing reports whether any envelope was live at the last control tick.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.engine.Playing()
}

// IdleTime returns the time elapsed since the last processed trigger.
func (p *Player) IdleTime() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return time.Duration(p.engine.IdleTimeMs()) * time.Millisecond
}

// SetMasterVolume sets the runtime volume scalar. 1.0 is default.
func (p *Player) SetMasterVolume(volume float64) {
	if volume < 0 {
		volume = 0
	}
	p.volume.Store(math.Float64bits(volume))
}

func (p *Player) MasterVolume() float64 {
	return math.Float64frombits(p.volume.Load())
}

// Process fills dst with interleaved stereo frames. It is the audio
// driver loop: pending control events are applied first, then the engine
// renders (or pads silence) until the ring can satisfy the pull.
func (p *Player) Process(dst []float32) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.drainEvents()
	gain := float32(math.Float64frombits(p.volume.Load()))
	frames := len(dst) / 2
	off := 0
	for off < frames {
		chunk := frames - off
		if chunk > len(p.scratch) {
			chunk = len(p.scratch)
		}
		for p.buf.Readable() < chunk {
			if p.engine.Playing() {
				p.engine.Render()
			} else {
				p.engine.FillWithSilence()
			}
		}
		n := p.buf.Read(p.scratch[:chunk])
		for i := 0; i < n; i++ {
			v := (float32(p.scratch[i]) - 128) / 128 * gain
			dst[(off+i)*2] = v
			dst[(off+i)*2+1] = v
		}
		off += n
	}
	if p.sampleTap != nil {
		p.sampleTap(dst)
	}
}

func (p *Player) drainEvents() {
	for {
		select {
		case ev := <-p.events:
			switch ev.kind {
			case evTrigger:
				p.engine.Trigger(int(ev.instrument), ev.a)
			case evMorph:
				p.engine.MorphPatch(int(ev.instrument), ev.a)
			case evCC:
				p.engine.SetParameterCC(ev.a, ev.b)
			case evBalance:
				p.engine.SetBalance(ev.a)
			case evBandwidth:
				p.engine.SetBandwidth(ev.a)
			}
		default:
			return
		}
	}
}
