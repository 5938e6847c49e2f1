// Package tables holds the read-only resource tables consumed by the drum
// engine: a sine waveform, a decay-envelope shape, and the two increment
// lookups that turn byte-valued patch parameters into 16-bit accumulator
// steps. Table identities and sizes are a fixed contract; all of them are
// computed once at init and never mutated.
package tables

import "math"

// ReferenceSampleRate is the output rate the phase-increment table is
// tuned for. Engines running at other rates shift all pitches slightly.
const ReferenceSampleRate = 48000

// ControlBlockSize is the number of samples rendered per control tick.
const ControlBlockSize = 32

var (
	// Sine is one full cycle of a signed sine, 257 entries so an
	// interpolated lookup can always read index+1. Sine[256] == Sine[0].
	Sine [257]int8

	// DrumEnvelope is the decay shape shared by the amplitude and pitch
	// envelopes: an exponential fall from 255 to 0 over 257 entries.
	// DrumEnvelope[256] == 0 so a terminated envelope reads as silence.
	DrumEnvelope [257]uint8

	// EnvIncrements maps a decay parameter byte to a per-control-tick
	// envelope phase increment. Entry 0 is the fastest decay; increments
	// fall off exponentially and never reach zero, so every triggered
	// envelope terminates.
	EnvIncrements [256]uint16

	// PhaseIncrements maps the high byte of a 16-bit pitch value to a
	// per-sample oscillator phase increment at ReferenceSampleRate.
	// Non-decreasing over its 257 entries; interpolated lookups rely on
	// that.
	PhaseIncrements [257]uint16
)

const (
	// Pitch byte 0 maps to pitchBaseHz; each pitchOctaveSteps steps of
	// the pitch byte double the frequency.
	pitchBaseHz      = 20.0
	pitchOctaveSteps = 32.0

	// Envelope durations run from envMinTicks control ticks at decay 0,
	// doubling every envDoubleSteps steps of the decay byte.
	envMinTicks    = 8.0
	envDoubleSteps = 26.5
)

func init() {
	for i := 0; i < 256; i++ {
		Sine[i] = int8(math.Round(127 * math.Sin(2*math.Pi*float64(i)/256)))
	}
	Sine[256] = Sine[0]

	for i := 0; i < 256; i++ {
		DrumEnvelope[i] = uint8(math.Round(255 * math.Exp(-6*float64(i)/256)))
	}
	DrumEnvelope[256] = 0

	for i := 0; i < 256; i++ {
		ticks := envMinTicks * math.Pow(2, float64(i)/envDoubleSteps)
		inc := math.Round(65536 / ticks)
		if inc < 1 {
			inc = 1
		}
		if inc > 65535 {
			inc = 65535
		}
		EnvIncrements[i] = uint16(inc)
	}

	for i := 0; i <= 256; i++ {
		hz := pitchBaseHz * math.Pow(2, float64(i)/pitchOctaveSteps)
		inc := math.Round(hz * 65536 / ReferenceSampleRate)
		if inc > 65535 {
			inc = 65535
		}
		PhaseIncrements[i] = uint16(inc)
	}
}
