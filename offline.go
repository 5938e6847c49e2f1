package drumsynth

import (
	"encoding/binary"
	"sort"

	intclock "github.com/cbegin/drumsynth-go/internal/clock"
	intdrum "github.com/cbegin/drumsynth-go/internal/drum"
	intring "github.com/cbegin/drumsynth-go/internal/ring"
)

// TriggerEvent schedules one trigger in an offline render. AtSample is
// the output sample index; triggers land on the control block containing
// it (blocks are 32 samples, under a millisecond at typical rates).
type TriggerEvent struct {
	AtSample   int
	Instrument Instrument
	Level      uint8
}

// PatchSetup applies parameter state before an offline render starts.
type PatchSetup func(*PatchControls)

// PatchControls exposes the engine's control surface to a PatchSetup.
type PatchControls struct {
	engine *intdrum.Engine
}

func (c *PatchControls) MorphPatch(instrument Instrument, value uint8) {
	c.engine.MorphPatch(int(instrument), value)
}

func (c *PatchControls) SetParameterCC(cc, value uint8) {
	c.engine.SetParameterCC(cc, value)
}

func (c *PatchControls) SetBalance(mix uint8) {
	c.engine.SetBalance(mix)
}

func (c *PatchControls) SetBandwidth(bandwidth uint8) {
	c.engine.SetBandwidth(bandwidth)
}

// RenderPattern renders seconds of 8-bit unsigned mono audio at
// sampleRate, firing the given triggers as the render reaches them.
// setup, if non-nil, runs once before the first sample.
func RenderPattern(events []TriggerEvent, sampleRate int, seconds float64, setup PatchSetup) []byte {
	buf := intring.New(intdrum.BlockSize)
	clk := &intclock.Manual{}
	engine := intdrum.New(buf, clk)
	if setup != nil {
		setup(&PatchControls{engine: engine})
	}

	evs := make([]TriggerEvent, len(events))
	copy(evs, events)
	sort.SliceStable(evs, func(i, j int) bool { return evs[i].AtSample < evs[j].AtSample })

	total := int(float64(sampleRate) * seconds)
	out := make([]byte, 0, total)
	scratch := make([]byte, buf.Cap())
	next := 0
	clockMs := uint32(0)
	for len(out) < total {
		for next < len(evs) && evs[next].AtSample <= len(out) {
			engine.Trigger(int(evs[next].Instrument), evs[next].Level)
			next++
		}
		if engine.Playing() {
			engine.Render()
		} else {
			engine.FillWithSilence()
		}
		n := buf.Read(scratch)
		out = append(out, scratch[:n]...)
		// Keep the engine clock in step with the sample position.
		target := uint32(int64(len(out)) * 1000 / int64(sampleRate))
		clk.Advance(target - clockMs)
		clockMs = target
	}
	return out[:total]
}

// EncodeWAVPCM8 wraps 8-bit unsigned mono samples in a WAV container.
func EncodeWAVPCM8(samples []byte, sampleRate int) []byte {
	dataSize := len(samples)
	byteRate := sampleRate
	chunkSize := 36 + dataSize
	out := make([]byte, 44+dataSize)
	copy(out[0:], []byte("RIFF"))
	binary.LittleEndian.PutUint32(out[4:], uint32(chunkSize))
	copy(out[8:], []byte("WAVE"))
	copy(out[12:], []byte("fmt "))
	binary.LittleEndian.PutUint32(out[16:], 16)
	binary.LittleEndian.PutUint16(out[20:], 1) // PCM
	binary.LittleEndian.PutUint16(out[22:], 1) // mono
	binary.LittleEndian.PutUint32(out[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:], 1) // block align
	binary.LittleEndian.PutUint16(out[34:], 8) // bits per sample
	copy(out[36:], []byte("data"))
	binary.LittleEndian.PutUint32(out[40:], uint32(dataSize))
	copy(out[44:], samples)
	return out
}
