// Package noise provides the engine's pseudo-random byte source: a 16-bit
// linear congruential generator cheap enough to advance inside the sample
// loop. It is deliberately not cryptographic and fully deterministic for a
// given seed, which the tests rely on.
package noise

// Source is a 16-bit LCG. The zero value is usable but seeds to zero;
// prefer New.
type Source struct {
	state uint16
}

// New returns a Source seeded with the given state.
func New(seed uint16) *Source {
	return &Source{state: seed}
}

// NextByte advances the generator and returns the high byte of its state.
func (s *Source) NextByte() uint8 {
	s.state = s.state*25173 + 13849
	return uint8(s.state >> 8)
}

// StateMSB returns the high byte of the current state without advancing.
func (s *Source) StateMSB() uint8 {
	return uint8(s.state >> 8)
}
