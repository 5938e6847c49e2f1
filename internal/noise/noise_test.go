package noise

import "testing"

func TestDeterministicForSeed(t *testing.T) {
	a := New(0xACE1)
	b := New(0xACE1)
	for i := 0; i < 1000; i++ {
		if a.NextByte() != b.NextByte() {
			t.Fatalf("sequences diverge at step %d", i)
		}
	}
}

func TestStateMSBDoesNotAdvance(t *testing.T) {
	s := New(1234)
	m1 := s.StateMSB()
	m2 := s.StateMSB()
	if m1 != m2 {
		t.Fatalf("StateMSB advanced the state: %d then %d", m1, m2)
	}
	s.NextByte()
	if s.StateMSB() == m1 && s.StateMSB() == m2 {
		// Possible but only if the LCG step preserved the high byte;
		// check one more step to rule out a stuck generator.
		s.NextByte()
		if s.StateMSB() == m1 {
			t.Fatal("generator appears stuck")
		}
	}
}

func TestByteSpread(t *testing.T) {
	s := New(0xACE1)
	var seen [256]bool
	distinct := 0
	for i := 0; i < 4096 && distinct < 200; i++ {
		b := s.NextByte()
		if !seen[b] {
			seen[b] = true
			distinct++
		}
	}
	if distinct < 200 {
		t.Fatalf("only %d distinct bytes in 4096 draws", distinct)
	}
}
