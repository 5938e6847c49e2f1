package audio

import (
	"encoding/binary"
	"math"
	"testing"
)

type rampSource struct{ next float32 }

func (s *rampSource) Process(dst []float32) {
	for i := range dst {
		dst[i] = s.next
		s.next += 0.125
	}
}

func TestStreamReaderFrameLayout(t *testing.T) {
	r := NewStreamReader(&rampSource{})
	p := make([]byte, 4*frameBytes)
	n, err := r.Read(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if n != len(p) {
		t.Fatalf("read %d bytes, want %d", n, len(p))
	}
	want := float32(0)
	for off := 0; off < n; off += 4 {
		got := math.Float32frombits(binary.LittleEndian.Uint32(p[off:]))
		if got != want {
			t.Fatalf("value at offset %d = %v, want %v", off, got, want)
		}
		want += 0.125
	}
}

func TestStreamReaderPartialFrameReadsNothing(t *testing.T) {
	r := NewStreamReader(&rampSource{})
	p := make([]byte, frameBytes-1)
	n, err := r.Read(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if n != 0 {
		t.Fatalf("read %d bytes from a sub-frame buffer, want 0", n)
	}
}
