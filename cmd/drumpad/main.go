package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	drumsynth "github.com/cbegin/drumsynth-go"
)

func main() {
	var (
		sampleRate = flag.Int("sample-rate", 48000, "output sample rate")
		wavPath    = flag.String("wav", "", "render a demo pattern to this WAV file instead of playing live")
		seconds    = flag.Float64("seconds", 4.0, "duration of the rendered demo pattern")
		balance    = flag.Int("balance", 128, "kick/snare mix (0 = kick only, 255 = snare only)")
		bandwidth  = flag.Int("bandwidth", 255, "output bandwidth (255 = full, 0 = heaviest decimation)")
		volume     = flag.Float64("volume", 1.0, "master volume scalar")
	)
	flag.Parse()

	if *wavPath != "" {
		if err := renderDemo(*wavPath, *sampleRate, *seconds, uint8(*balance), uint8(*bandwidth)); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("wrote %s\n", *wavPath)
		return
	}

	pl, err := drumsynth.NewPlayer(*sampleRate)
	if err != nil {
		log.Fatal(err)
	}
	pl.SetMasterVolume(*volume)
	pl.SetBalance(uint8(*balance))
	pl.SetBandwidth(uint8(*bandwidth))
	if err := pl.Start(); err != nil {
		log.Fatal(err)
	}
	defer pl.Stop()

	if err := runPad(pl, uint8(*balance), uint8(*bandwidth)); err != nil {
		log.Fatal(err)
	}
}

// renderDemo writes a fixed two-bar pattern, mostly useful for checking a
// patch without an audio device.
func renderDemo(path string, sampleRate int, seconds float64, balance, bandwidth uint8) error {
	step := sampleRate / 4 // sixteenths at 240 BPM
	var events []drumsynth.TriggerEvent
	for bar := 0; bar < int(seconds*float64(sampleRate))/(step*8); bar++ {
		base := bar * step * 8
		for i := 0; i < 8; i++ {
			at := base + i*step
			if i%4 == 0 {
				events = append(events, drumsynth.TriggerEvent{AtSample: at, Instrument: drumsynth.Kick, Level: 255})
			}
			if i%4 == 2 {
				events = append(events, drumsynth.TriggerEvent{AtSample: at, Instrument: drumsynth.Snare, Level: 224})
			}
			events = append(events, drumsynth.TriggerEvent{AtSample: at, Instrument: drumsynth.HiHat, Level: 160})
		}
	}
	pcm := drumsynth.RenderPattern(events, sampleRate, seconds, func(pc *drumsynth.PatchControls) {
		pc.SetBalance(balance)
		pc.SetBandwidth(bandwidth)
	})
	return os.WriteFile(path, drumsynth.EncodeWAVPCM8(pcm, sampleRate), 0o644)
}

// runPad reads single keystrokes from a raw-mode terminal and maps them to
// triggers and patch controls until q or Ctrl-C.
func runPad(pl *drumsynth.Player, balance, bandwidth uint8) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("raw terminal: %w", err)
	}
	defer term.Restore(fd, oldState)

	fmt.Print("a/s/d: kick/snare/hi-hat   1-5: kick preset   [ ]: balance   - =: bandwidth   q: quit\r\n")

	buf := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			return err
		}
		switch buf[0] {
		case 'a':
			pl.Trigger(drumsynth.Kick, 255)
		case 's':
			pl.Trigger(drumsynth.Snare, 255)
		case 'd':
			pl.Trigger(drumsynth.HiHat, 255)
		case '1', '2', '3', '4', '5':
			// Presets sit at morph values 0, 64, 128, 192, 255.
			v := int(buf[0]-'1') * 64
			if v > 255 {
				v = 255
			}
			pl.MorphPatch(drumsynth.Kick, uint8(v))
			fmt.Printf("kick preset %c\r\n", buf[0])
		case '[':
			balance = stepDown(balance)
			pl.SetBalance(balance)
			fmt.Printf("balance %d\r\n", balance)
		case ']':
			balance = stepUp(balance)
			pl.SetBalance(balance)
			fmt.Printf("balance %d\r\n", balance)
		case '-':
			bandwidth = stepDown(bandwidth)
			pl.SetBandwidth(bandwidth)
			fmt.Printf("bandwidth %d\r\n", bandwidth)
		case '=':
			bandwidth = stepUp(bandwidth)
			pl.SetBandwidth(bandwidth)
			fmt.Printf("bandwidth %d\r\n", bandwidth)
		case 'q', 3: // q or Ctrl-C
			return nil
		}
	}
}

func stepUp(v uint8) uint8 {
	if v > 255-16 {
		return 255
	}
	return v + 16
}

func stepDown(v uint8) uint8 {
	if v < 16 {
		return 0
	}
	return v - 16
}
