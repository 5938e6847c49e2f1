package drumsynth

import (
	"testing"
	"time"

	intclock "github.com/cbegin/drumsynth-go/internal/clock"
)

func TestPlayerMasterVolumeRuntimeAPI(t *testing.T) {
	pl, err := NewPlayer(48000)
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	if got := pl.MasterVolume(); got != 1 {
		t.Fatalf("default master volume = %v, want 1", got)
	}
	pl.SetMasterVolume(0.35)
	if got := pl.MasterVolume(); got != 0.35 {
		t.Fatalf("master volume = %v, want 0.35", got)
	}
	pl.SetMasterVolume(-2)
	if got := pl.MasterVolume(); got != 0 {
		t.Fatalf("master volume should clamp to 0, got %v", got)
	}
}

func TestPlayerRejectsBadSampleRate(t *testing.T) {
	if _, err := NewPlayer(0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if _, err := NewPlayer(-48000); err == nil {
		t.Fatal("expected error for negative sample rate")
	}
}

func TestControlEventsApplyOnProcess(t *testing.T) {
	clk := &intclock.Manual{}
	pl, err := NewPlayer(48000, WithClock(clk))
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	pl.Trigger(Kick, 255)
	if pl.Playing() {
		t.Fatal("trigger must not take effect before the next audio pull")
	}
	dst := make([]float32, 256*2)
	pl.Process(dst)
	if !pl.Playing() {
		t.Fatal("trigger not applied by Process")
	}
	var nonZero bool
	for _, v := range dst {
		if v != 0 {
			nonZero = true
		}
		if v < -1 || v > 1 {
			t.Fatalf("sample %v outside [-1,1]", v)
		}
	}
	if !nonZero {
		t.Fatal("expected non-zero output after a kick trigger")
	}
}

func TestProcessAppliesVolume(t *testing.T) {
	render := func(volume float64) float32 {
		pl, err := NewPlayer(48000)
		if err != nil {
			t.Fatalf("new player: %v", err)
		}
		pl.SetMasterVolume(volume)
		pl.Trigger(Kick, 255)
		dst := make([]float32, 512*2)
		pl.Process(dst)
		var peak float32
		for _, v := range dst {
			if v < 0 {
				v = -v
			}
			if v > peak {
				peak = v
			}
		}
		return peak
	}
	loud := render(1)
	quiet := render(0.25)
	if quiet >= loud {
		t.Fatalf("volume scaling broken: quiet peak %v >= loud peak %v", quiet, loud)
	}
	if silent := render(0); silent != 0 {
		t.Fatalf("volume 0 should mute, peak %v", silent)
	}
}

func TestIdleTimeThroughFacade(t *testing.T) {
	clk := &intclock.Manual{}
	pl, err := NewPlayer(48000, WithClock(clk))
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	dst := make([]float32, 64*2)
	pl.Trigger(Snare, 200)
	pl.Process(dst)
	if got := pl.IdleTime(); got != 0 {
		t.Fatalf("idle right after trigger = %v, want 0", got)
	}
	clk.Advance(750)
	if got := pl.IdleTime(); got != 750*time.Millisecond {
		t.Fatalf("idle = %v, want 750ms", got)
	}
	pl.Trigger(Snare, 200)
	pl.Process(dst)
	if got := pl.IdleTime(); got != 0 {
		t.Fatalf("idle after retrigger = %v, want 0", got)
	}
}

func TestSampleTapSeesOutput(t *testing.T) {
	var tapped int
	pl, err := NewPlayer(48000, WithSampleTap(func(buf []float32) {
		tapped += len(buf)
	}))
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	dst := make([]float32, 128*2)
	pl.Process(dst)
	if tapped != len(dst) {
		t.Fatalf("tap saw %d samples, want %d", tapped, len(dst))
	}
}
