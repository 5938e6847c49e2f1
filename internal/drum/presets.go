package drum

import "github.com/cbegin/drumsynth-go/internal/fixed"

// presetsPerInstrument is the length of each instrument's morph chain.
const presetsPerInstrument = 5

// Each preset holds the five morph-eligible fields in flat order:
// pitch, pitchDecay, pitchMod, ampDecay, crunchiness. Level is excluded
// from morphing; it belongs to the balance control.
//
// The hi-hat presets store the pitch index of the *second* operator
// (~508Hz * 2/3 for a closed hat); the first operator is derived from it
// at the fixed 3/2 ratio in the modulation update. Crunchiness sets the
// noise depth: maximum for hi-hat, minimum for cymbal.
var presets = [NumInstruments * presetsPerInstrument][5]uint8{
	// Kick
	{60, 18, 104, 120, 0},
	{56, 60, 120, 150, 0},
	{60, 42, 130, 180, 14},
	{72, 20, 66, 224, 0},
	{42, 52, 106, 160, 60},
	// Snare
	{108, 18, 16, 72, 64},
	{108, 36, 32, 96, 140},
	{108, 36, 50, 90, 180},
	{116, 36, 32, 80, 150},
	{124, 40, 190, 90, 40},
	// Hi-hat / cymbal
	{132, 0, 0, 80, 255},
	{134, 0, 0, 80, 255},
	{134, 0, 0, 90, 32},
	{134, 0, 0, 90, 255},
	{134, 0, 0, 45, 255},
}

// MorphPatch interpolates the instrument's patch along its preset chain.
// The top two bits of value pick a pair of adjacent presets, the low six
// bits (scaled to 8) give the blend weight. Level is left untouched.
func (e *Engine) MorphPatch(instrument int, value uint8) {
	base := instrument*presetsPerInstrument + int(value>>6)
	w := value << 2
	a := &presets[base]
	b := &presets[base+1]
	p := &e.patches[instrument]
	p.Pitch = fixed.Mix8(a[0], b[0], w)
	p.PitchDecay = fixed.Mix8(a[1], b[1], w)
	p.PitchMod = fixed.Mix8(a[2], b[2], w)
	p.AmpDecay = fixed.Mix8(a[3], b[3], w)
	p.Crunchiness = fixed.Mix8(a[4], b[4], w)
}

// paramField names one byte of a Patch for CC addressing.
type paramField int

const (
	fieldPitch paramField = iota
	fieldPitchDecay
	fieldPitchMod
	fieldAmpDecay
	fieldCrunchiness
	fieldLevel
)

type ccTarget struct {
	instrument int
	field      paramField
}

// CC window accepted by SetParameterCC.
const (
	ccFirst = 16
	ccLast  = 30
)

// ccMap binds each control number in the window to one patch byte. Kick
// and snare expose all six fields. The hi-hat exposes only pitch, amp
// decay and level, matching the hardware's control map; the remaining
// hi-hat fields are reachable through morphing only.
var ccMap = [ccLast - ccFirst + 1]ccTarget{
	{Kick, fieldPitch}, {Kick, fieldPitchDecay}, {Kick, fieldPitchMod},
	{Kick, fieldAmpDecay}, {Kick, fieldCrunchiness}, {Kick, fieldLevel},
	{Snare, fieldPitch}, {Snare, fieldPitchDecay}, {Snare, fieldPitchMod},
	{Snare, fieldAmpDecay}, {Snare, fieldCrunchiness}, {Snare, fieldLevel},
	{HiHat, fieldPitch}, {HiHat, fieldAmpDecay}, {HiHat, fieldLevel},
}

// SetParameterCC writes a 7-bit controller value (shifted up to 8 bits)
// straight into the addressed patch byte, overriding whatever morphing
// produced. Control numbers outside the window are ignored.
func (e *Engine) SetParameterCC(cc, value uint8) {
	if cc < ccFirst || cc > ccLast {
		return
	}
	t := ccMap[cc-ccFirst]
	p := &e.patches[t.instrument]
	v := value << 1
	switch t.field {
	case fieldPitch:
		p.Pitch = v
	case fieldPitchDecay:
		p.PitchDecay = v
	case fieldPitchMod:
		p.PitchMod = v
	case fieldAmpDecay:
		p.AmpDecay = v
	case fieldCrunchiness:
		p.Crunchiness = v
	case fieldLevel:
		p.Level = v
	}
}

// PatchAt returns a copy of an instrument's current patch.
func (e *Engine) PatchAt(instrument int) Patch {
	return e.patches[instrument]
}
