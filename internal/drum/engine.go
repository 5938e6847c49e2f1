// Package drum synthesizes three percussion voices (kick, snare and
// hi-hat/cymbal) with fixed-point phase-accumulator oscillators, table
// driven decay envelopes and an OPL2-style bit-pattern hi-hat. Everything
// runs on 8/16-bit integer arithmetic; the only wide value in the hot
// loop is the 16-bit mix accumulator.
package drum

import (
	"github.com/cbegin/drumsynth-go/internal/clock"
	"github.com/cbegin/drumsynth-go/internal/fixed"
	"github.com/cbegin/drumsynth-go/internal/noise"
	"github.com/cbegin/drumsynth-go/internal/ring"
	"github.com/cbegin/drumsynth-go/internal/tables"
)

// Instrument indices.
const (
	Kick = iota
	Snare
	HiHat
	NumInstruments
)

// BlockSize is the number of samples rendered per control tick. The
// modulation update runs once per block; the renderer refuses to start a
// block unless the output ring can take all of it.
const BlockSize = tables.ControlBlockSize

// neutral is the midpoint of the unsigned 8-bit output range.
const neutral = 128

// Patch is one instrument's parameter set. Field order matters: it is the
// flat addressing order the CC map and the morph presets use.
type Patch struct {
	Pitch       uint8
	PitchDecay  uint8
	PitchMod    uint8
	AmpDecay    uint8
	Crunchiness uint8
	Level       uint8
}

// voiceState is one instrument's runtime state. Reset only by Trigger;
// the envelope phases otherwise never decrease (the overflow clamp forces
// them to 0xffff, the maximum).
type voiceState struct {
	phase         uint16
	pitchEnvPhase uint16 // for the hi-hat: second operator phase
	ampEnvPhase   uint16

	phaseIncrement    uint16
	pitchEnvIncrement uint16 // for the hi-hat: second operator increment
	ampEnvIncrement   uint16

	ampLevel      uint8
	ampLevelNoise uint8
	level         uint8
}

// Engine owns the three patches and voice states together with the global
// render state. It is single-threaded: the caller serializes control
// calls against Render/FillWithSilence.
type Engine struct {
	patches [NumInstruments]Patch
	states  [NumInstruments]voiceState

	out *ring.Buffer
	rng *noise.Source
	clk clock.Clock

	samplePeriod  uint8 // decimation period; 0 means full bandwidth
	sampleCounter uint8
	sample        uint8 // held output sample
	fadeCounter   uint8
	playing       bool
	lastEventTime uint32
}

// New creates an Engine producing into out and stamping trigger times
// from clk. Patches start at the first preset of each instrument with the
// balance control centered.
func New(out *ring.Buffer, clk clock.Clock) *Engine {
	e := &Engine{
		out:    out,
		rng:    noise.New(0xACE1),
		clk:    clk,
		sample: neutral,
	}
	for i := 0; i < NumInstruments; i++ {
		e.MorphPatch(i, 0)
	}
	e.SetBalance(128)
	return e
}

// Trigger starts a voice: all three accumulators reset, the envelope
// increments reload from the decay lookup, and the voice level becomes
// the trigger level scaled by the patch level. instrument must be a valid
// index; that is the caller's contract.
func (e *Engine) Trigger(instrument int, level uint8) {
	e.lastEventTime = e.clk.Milliseconds()
	p := &e.patches[instrument]
	st := &e.states[instrument]
	st.phase = 0
	st.pitchEnvPhase = 0
	st.ampEnvPhase = 0
	st.pitchEnvIncrement = tables.EnvIncrements[p.PitchDecay]
	st.ampEnvIncrement = tables.EnvIncrements[p.AmpDecay]
	st.level = fixed.MulU8U8Shift8(level, p.Level)
	e.playing = true
}

// SetBalance derives the kick and snare output levels from one mix byte:
// below the midpoint the snare fades in under a full kick, above it the
// kick fades out under a full snare. The hi-hat always sits at half the
// snare level.
func (e *Engine) SetBalance(mix uint8) {
	if mix < 128 {
		e.patches[Kick].Level = 255
		e.patches[Snare].Level = mix << 1
	} else {
		e.patches[Kick].Level = ^((mix - 128) << 1)
		e.patches[Snare].Level = 255
	}
	e.patches[HiHat].Level = e.patches[Snare].Level >> 1
}

// SetBandwidth maps one control byte to the decimation period of the
// sample-and-hold lo-fi effect. 255 is full bandwidth (period 0), 0 is
// the strongest decimation (period 31).
func (e *Engine) SetBandwidth(bandwidth uint8) {
	e.samplePeriod = ^bandwidth >> 3
}

// Playing reports whether any envelope was still running at the last
// control tick (or a trigger has arrived since).
func (e *Engine) Playing() bool {
	return e.playing
}

// IdleTimeMs returns milliseconds elapsed since the last Trigger.
func (e *Engine) IdleTimeMs() uint32 {
	return e.clk.Milliseconds() - e.lastEventTime
}

// Render synthesizes full blocks for as long as the output ring can take
// them, then returns. Phases are kept in locals across each block and
// written back once at block end.
func (e *Engine) Render() {
	sample := e.sample
	sampleCounter := e.sampleCounter
	for e.out.Writable() >= BlockSize {
		e.updateModulations()
		n := e.rng.StateMSB()
		phase0 := e.states[Kick].phase
		phase1 := e.states[Snare].phase
		phase2 := e.states[HiHat].phase
		phase2b := e.states[HiHat].pitchEnvPhase
		// Noise-gated hi-hat magnitude: full crunchiness pulls the
		// noise-substituted level down from 120 to 41.
		hhNoiseLevel := int8(120) - fixed.MulS8U8Shift8(80, e.states[HiHat].ampLevelNoise)
		for i := 0; i < BlockSize; i++ {
			sampleCounter++
			mix := int16(neutral)
			n = n*73 + 1

			phase0 += e.states[Kick].phaseIncrement
			phase1 += e.states[Snare].phaseIncrement
			phase2 += e.states[HiHat].phaseIncrement
			phase2b += e.states[HiHat].pitchEnvIncrement

			bd := fixed.InterpS8(&tables.Sine, phase0)
			mix += int16(fixed.MulS8U8Shift8(bd, e.states[Kick].ampLevel))

			sd := tables.Sine[phase1>>8]
			mix += int16(fixed.MulS8U8Shift8(sd, e.states[Snare].ampLevel))
			mix += int16(fixed.MulS8U8Shift8(int8(n), e.states[Snare].ampLevelNoise))

			// Two-operator square/ring emulation: bits 2, 3 and 7 of the
			// first operator's high byte and bits 3 and 5 of the second
			// select between the two fixed output magnitudes.
			hi := uint8(phase2 >> 8)
			res1 := hi&0x08 != 0 || (hi&0x04 != 0) != (hi&0x80 != 0) // bit3 | bit2^bit7
			hiB := uint8(phase2b >> 8)
			res2 := (hiB&0x08 != 0) != (hiB&0x20 != 0) // bit3 ^ bit5
			var hh int8
			if res1 || res2 {
				if n&1 != 0 {
					hh = -hhNoiseLevel
				} else {
					hh = -120
				}
			} else {
				if n&1 != 0 {
					hh = hhNoiseLevel
				} else {
					hh = 120
				}
			}
			mix += int16(fixed.MulS8U8Shift8(hh, e.states[HiHat].ampLevel))

			if sampleCounter > e.samplePeriod {
				if mix > 255 {
					mix = 255
				}
				if mix < 0 {
					mix = 0
				}
				sample = uint8(mix)
				sampleCounter = 0
			}
			e.out.Overwrite(sample)
		}
		e.states[Kick].phase = phase0
		e.states[Snare].phase = phase1
		e.states[HiHat].phase = phase2
		e.states[HiHat].pitchEnvPhase = phase2b
	}
	e.sample = sample
	e.sampleCounter = sampleCounter
	e.fadeCounter = 255
}

// FillWithSilence is the idle path: it steps the held sample one unit
// toward the neutral midpoint at most once per 256 calls and pads all
// writable ring space with it. Far cheaper than full synthesis and free
// of clicks.
func (e *Engine) FillWithSilence() {
	if e.sample != neutral {
		if e.fadeCounter != 0 {
			e.fadeCounter--
		} else {
			e.fadeCounter = 255
			if e.sample > neutral {
				e.sample--
			} else {
				e.sample++
			}
		}
	}
	for e.out.Writable() > 0 {
		e.out.Overwrite(e.sample)
	}
}

// updateModulations is the control-rate update: once per block it steps
// the envelopes, derives the amplitude scalars and recomputes every phase
// increment from the current patch.
func (e *Engine) updateModulations() {
	e.playing = false
	for i := range e.states {
		p := &e.patches[i]
		st := &e.states[i]

		// A wrapped amplitude envelope is the termination signal: clamp
		// the phase to the terminal table entry and freeze it there.
		var wrapped bool
		st.ampEnvPhase, wrapped = fixed.AddWrap16(st.ampEnvPhase, st.ampEnvIncrement)
		if wrapped {
			st.ampEnvPhase = 0xffff
			st.ampEnvIncrement = 0
		} else if st.ampEnvIncrement != 0 {
			// A zero increment means finished (or never triggered); only
			// live envelopes keep the engine playing.
			e.playing = true
		}
		st.ampLevel = fixed.MulU8U8Shift8(
			st.level,
			fixed.InterpU8(&tables.DrumEnvelope, st.ampEnvPhase))

		pitch := uint16(p.Pitch) << 8
		if i == Kick {
			// Pitch crunch: a random offset scaled by crunchiness.
			pitch += fixed.MulU8U8(e.rng.NextByte(), p.Crunchiness)
		}
		if i != HiHat {
			st.pitchEnvPhase, wrapped = fixed.AddWrap16(st.pitchEnvPhase, st.pitchEnvIncrement)
			if wrapped {
				st.pitchEnvPhase = 0xffff
				st.pitchEnvIncrement = 0
			}
			pitch += fixed.MulU8U8(
				p.PitchMod,
				fixed.InterpU8(&tables.DrumEnvelope, st.pitchEnvPhase))
		}
		st.phaseIncrement = fixed.InterpU16(&tables.PhaseIncrements, pitch)
		if i == HiHat {
			// The second operator runs at the base increment and the
			// first at 3/2 of it, the fixed 2-operator ratio of the
			// emulated chip.
			st.pitchEnvIncrement = st.phaseIncrement
			st.phaseIncrement += st.phaseIncrement >> 1
		}
	}

	// Snare: crossfade tone against noise by crunchiness.
	sd := &e.states[Snare]
	sd.ampLevelNoise = fixed.MulU8U8Shift8(sd.ampLevel, e.patches[Snare].Crunchiness)
	sd.ampLevel = fixed.MulU8U8Shift8(sd.ampLevel, ^e.patches[Snare].Crunchiness)
	// Hi-hat: crunchiness gates the noise substitution depth directly.
	e.states[HiHat].ampLevelNoise = e.patches[HiHat].Crunchiness
}
