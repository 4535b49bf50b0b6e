package brush

// Input identifies one of the dynamics engine's input channels, each of
// which every setting may carry an independent Mapping for (§4.J
// "Emit an input vector containing...").
type Input int

const (
	InputPressure Input = iota
	InputSpeed1
	InputSpeed2
	InputRandom
	InputStroke
	InputDirection      // mod 180 degrees
	InputDirectionAngle // mod 360 degrees
	InputTiltDeclination
	InputTiltAscension
	InputViewZoom
	InputAttackAngle
	InputBrushRadius
	InputGridmapX
	InputGridmapY
	InputCustom
	NumInputs
)

// Setting identifies one brush setting. Each owns a base value and one
// Mapping per Input; a setting's final value is base + the sum of every
// mapping's contribution at the current input vector (§4.I).
type Setting int

const (
	SettingOpaque Setting = iota
	SettingOpaqueMultiply
	SettingOpaqueLinearize
	SettingRadiusLogarithm
	SettingHardness
	SettingEraser
	SettingLockAlpha
	SettingColorize
	SettingPosterize
	SettingPosterizeNum
	SettingSnapToPixel
	SettingAntiAliasing
	SettingTrackingNoise
	SettingSlowTracking
	SettingSlowTrackingPerDab
	SettingDabsPerActualRadius
	SettingDabsPerBasicRadius
	SettingDabsPerSecond
	SettingRadiusByRandom
	SettingPressureGainLog
	SettingSpeed1Slowness
	SettingSpeed2Slowness
	SettingOffsetBySpeed
	SettingOffsetBySpeedSlowness
	SettingCustomInputSlowness
	SettingGridmapScale
	SettingOffsetByRandom
	SettingOffsetByTiltX
	SettingOffsetByTiltY
	SettingOffsetByDirection
	SettingOffsetByAscension
	SettingOffsetByViewZoom
	SettingSmudge
	SettingSmudgeLength
	SettingSmudgeLengthLog
	SettingSmudgeRadiusLog
	SettingSmudgeBucket
	SettingChangeColorH
	SettingChangeColorSHSV
	SettingChangeColorV
	SettingChangeColorL
	SettingChangeColorSHSL
	SettingEllipticalDabRatio
	SettingEllipticalDabAngle
	SettingDirectionFilter
	SettingStrokeThreshold
	SettingStrokeDuration
	SettingStrokeHoldtime
	SettingCustomInput
	SettingGridmapScaleX
	SettingGridmapScaleY
	SettingColorH
	SettingColorS
	SettingColorV
	NumSettings
)

// bounds, keyed by Setting, holds the (min, max) clamp applied to a
// setting's evaluated base+mapping sum, independent of any individual
// mapping's own outer-point clamp (§4.I supplement: "brush-setting
// bounds alongside base values").
var bounds = map[Setting][2]float64{
	SettingOpaque:             {0, 1},
	SettingOpaqueMultiply:     {0, 2},
	SettingOpaqueLinearize:    {0, 1},
	SettingHardness:           {0, 1},
	SettingEraser:             {0, 1},
	SettingLockAlpha:          {0, 1},
	SettingColorize:           {0, 1},
	SettingPosterize:          {0, 1},
	SettingPosterizeNum:       {1, 128},
	SettingSnapToPixel:        {0, 1},
	SettingEllipticalDabRatio: {1, 10},
	SettingSmudge:             {0, 1},
}

// one setting's state: a base value plus one Mapping per Input.
type settingEntry struct {
	base     float64
	mappings [NumInputs]Mapping
}

// Settings holds every brush setting's base value and input mappings —
// the brush's tunable configuration, shared by every stroke drawn with
// it (§3 "Brush settings").
type Settings struct {
	entries [NumSettings]settingEntry
}

// NewSettings returns a Settings with every base value at 0 and no
// mappings configured.
func NewSettings() *Settings {
	return &Settings{}
}

// SetBase sets s's base value for setting.
func (s *Settings) SetBase(setting Setting, base float64) {
	s.entries[setting].base = base
}

// Base returns s's base value for setting.
func (s *Settings) Base(setting Setting) float64 {
	return s.entries[setting].base
}

// Mapping returns the Mapping for (setting, input), creating none —
// callers mutate it via SetPoints.
func (s *Settings) Mapping(setting Setting, input Input) *Mapping {
	return &s.entries[setting].mappings[input]
}

// Evaluate computes setting's final value at the given input vector:
// base plus the sum of every input's mapping contribution, clamped to
// setting's documented (min, max) bounds if it has any.
func (s *Settings) Evaluate(setting Setting, inputs *[NumInputs]float64) float64 {
	e := &s.entries[setting]
	v := e.base
	for i := range e.mappings {
		m := &e.mappings[i]
		if m.HasPoints() {
			v += m.Eval(inputs[i])
		}
	}
	if b, ok := bounds[setting]; ok {
		if v < b[0] {
			v = b[0]
		}
		if v > b[1] {
			v = b[1]
		}
	}
	return v
}
