package brush

import (
	"math"

	"github.com/inkwell/paintcore/colormath"
	"github.com/inkwell/paintcore/surface"
)

// actualRadiusMin and actualRadiusMax bound State.ActualRadius (§3, §6
// config constants).
const (
	actualRadiusMin = 0.2
	actualRadiusMax = 1000
)

// maxDTime is the staleness threshold past which an event resets the
// stroke instead of interpolating toward it (§4.J step 2, §9 "dtime >
// 5 triggers a stroke reset").
const maxDTime = 5.0

// Event is one incoming pointer sample (§4.J "per-event processing").
type Event struct {
	X, Y         float64
	Pressure     float64
	XTilt, YTilt float64
	DTime        float64
	ViewZoom     float64
	ViewRotation float64
}

// Brush ties a Settings configuration and per-stroke State to a
// surface, turning incoming events into dabs (§4.J). Brush state is
// owned exclusively by the Brush; only one stroke may be in progress on
// it at a time (§5).
type Brush struct {
	Settings *Settings
	State    State
	rng      Source

	speedGamma [2]float64
	speedM     [2]float64
	speedQ     [2]float64

	randomInput       float64
	lastSettingValues [NumSettings]float64
}

// NewBrush returns a Brush using settings and rng for its noise and
// sampling decisions.
func NewBrush(settings *Settings, rng Source) *Brush {
	b := &Brush{Settings: settings, rng: rng}
	b.speedGamma = [2]float64{3, 3}
	b.recalculateSpeedMapping()
	return b
}

// recalculateSpeedMapping derives the (m, q) log-curve coefficients for
// both speed inputs from the fixed anchor constraints: y=0.5 at x=45,
// slope 0.015 at x=45 (§4.J "map to two 'speed' inputs via precomputed
// y = log(gamma+x)*m + q").
func (b *Brush) recalculateSpeedMapping() {
	const anchorX = 45.0
	const anchorY = 0.5
	const anchorSlope = 0.015
	for i := range b.speedGamma {
		gamma := b.speedGamma[i]
		m := anchorSlope * (gamma + anchorX)
		q := anchorY - m*math.Log(gamma+anchorX)
		b.speedM[i] = m
		b.speedQ[i] = q
	}
}

// ProcessEvent runs one incoming pointer event through the dynamics
// engine, interpolating into zero or more dabs drawn onto surf.
// Returns whether any dab was submitted to surf during the event.
func (b *Brush) ProcessEvent(surf *surface.Surface, ev Event) bool {
	declination, ascension := tiltToDeclinationAscension(ev.XTilt, ev.YTilt)

	if ev.DTime > maxDTime {
		b.State.Reset()
		b.State.ResetStroke(ev.X, ev.Y, ev.Pressure)
		b.randomInput = b.rng.Float64()
		return false
	}

	if ev.DTime <= 0 {
		ev.DTime = 0.0001
	}

	dabsMoved := b.State.PartialDabs
	dabsTodo := b.CountDabsTo(ev.X, ev.Y, ev.Pressure, ev.DTime)

	painted := false
	dtimeLeft := ev.DTime
	for dabsMoved+dabsTodo >= 1.0 {
		var stepDdab float64
		if dabsMoved > 0 {
			stepDdab = 1.0 - dabsMoved
			dabsMoved = 0
		} else {
			stepDdab = 1.0
		}
		frac := stepDdab / dabsTodo

		stepDx := frac * (ev.X - b.State.CursorX)
		stepDy := frac * (ev.Y - b.State.CursorY)
		stepDPressure := frac * (ev.Pressure - b.State.Pressure)
		stepDTime := frac * dtimeLeft
		stepDeclination := frac * (declination - b.State.Declination)
		stepAscension := frac * smallestAngularDifference(b.State.Ascension, ascension)

		b.updateStatesAndSettingValues(stepDdab, stepDx, stepDy, stepDPressure, stepDeclination, stepAscension, stepDTime, ev.ViewZoom, ev.ViewRotation)
		if b.prepareAndDrawDab(surf) {
			painted = true
		}
		b.randomInput = b.rng.Float64()

		dtimeLeft -= stepDTime
		dabsTodo = b.CountDabsTo(ev.X, ev.Y, ev.Pressure, dtimeLeft)
	}

	stepDx := ev.X - b.State.CursorX
	stepDy := ev.Y - b.State.CursorY
	stepDPressure := ev.Pressure - b.State.Pressure
	stepDeclination := declination - b.State.Declination
	stepAscension := smallestAngularDifference(b.State.Ascension, ascension)
	b.updateStatesAndSettingValues(dabsTodo, stepDx, stepDy, stepDPressure, stepDeclination, stepAscension, dtimeLeft, ev.ViewZoom, ev.ViewRotation)

	b.State.PartialDabs = dabsMoved + dabsTodo
	b.State.LastDTime = ev.DTime
	return painted
}

// tiltToDeclinationAscension converts tablet tilt (xtilt, ytilt, both
// in [-1, 1]) into declination (degrees above the surface plane: 90 for
// an untilted pen, 0 at full tilt)
// and ascension (compass heading in degrees, -180..180), per §4.J
// "sanitize inputs".
func tiltToDeclinationAscension(xtilt, ytilt float64) (declination, ascension float64) {
	xtilt = clamp(xtilt, -1, 1)
	ytilt = clamp(ytilt, -1, 1)
	declination = 90 - 90*math.Hypot(xtilt, ytilt)
	if declination < 0 {
		declination = 0
	}
	if xtilt == 0 && ytilt == 0 {
		return declination, 0
	}
	ascension = math.Atan2(-xtilt, ytilt) * 180 / math.Pi
	return declination, ascension
}

func smallestAngularDifference(from, to float64) float64 {
	d := math.Mod(to-from+180, 360)
	if d < 0 {
		d += 360
	}
	return d - 180
}

// CountDabsTo computes how many dabs (possibly fractional) the brush
// would place moving from its current cursor position toward (x, y)
// over the given time, using the elliptical dab-local metric: distance
// is measured in a frame rotated to the dab's angle, with the minor
// axis scaled by the elliptical dab ratio when that ratio exceeds 1
// (§4.J "Count_dabs_to").
func (b *Brush) CountDabsTo(x, y, pressure, dt float64) float64 {
	dx := x - b.State.CursorX
	dy := y - b.State.CursorY

	ratio := b.State.ActualEllipticalDabRatio
	if ratio <= 0 {
		ratio = 1
	}
	angle := b.State.ActualEllipticalDabAngle * math.Pi / 180
	cos, sin := math.Cos(angle), math.Sin(angle)
	localX := dx*cos + dy*sin
	localY := -dx*sin + dy*cos
	if ratio > 1 {
		localY *= ratio
	}
	dist := math.Hypot(localX, localY)

	radius := b.State.ActualRadius
	if radius <= 0 {
		radius = actualRadiusMin
	}
	dabsPerRadius := b.Settings.Evaluate(SettingDabsPerActualRadius, b.currentInputs())
	dabsPerBasic := b.Settings.Evaluate(SettingDabsPerBasicRadius, b.currentInputs())
	dabsPerSecond := b.Settings.Evaluate(SettingDabsPerSecond, b.currentInputs())

	baseRadius := math.Exp(b.Settings.Base(SettingRadiusLogarithm))
	byDistance := dist / radius * dabsPerRadius
	byDistance += dist / baseRadius * dabsPerBasic
	byTime := dt * dabsPerSecond
	return byDistance + byTime
}

// currentInputs snapshots the input vector from the brush's current
// state, for callers (like CountDabsTo) that need to evaluate a setting
// outside the main per-step update.
func (b *Brush) currentInputs() *[NumInputs]float64 {
	var in [NumInputs]float64
	in[InputPressure] = b.State.Pressure
	in[InputRandom] = b.randomInput
	in[InputBrushRadius] = b.Settings.Base(SettingRadiusLogarithm)
	return &in
}

// updateStatesAndSettingValues integrates one interpolation step's
// deltas into state, derives the input vector, evaluates every setting
// at that vector, and updates the low-pass filtered and geometric
// derived state fields (§4.J "update_states_and_setting_values").
func (b *Brush) updateStatesAndSettingValues(stepDdab, stepDx, stepDy, stepDPressure, stepDeclination, stepAscension, stepDTime, viewZoom, viewRotation float64) {
	if stepDTime <= 0 {
		stepDTime = 0.001
	}

	s := &b.State
	s.CursorX += stepDx
	s.CursorY += stepDy
	s.Pressure += stepDPressure
	if s.Pressure < 0 {
		s.Pressure = 0
	}
	s.Declination += stepDeclination
	s.Ascension += stepAscension
	s.ViewZoom = viewZoom
	s.ViewRotation = math.Mod(viewRotation*180/math.Pi+180, 360) - 180

	if s.Flip == 0 {
		s.Flip = 1
	} else {
		s.Flip *= -1
	}

	baseRadius := math.Exp(b.Settings.Base(SettingRadiusLogarithm))

	gridScale := math.Exp(b.Settings.Base(SettingGridmapScale))
	gridScaleX := b.Settings.Base(SettingGridmapScaleX)
	gridScaleY := b.Settings.Base(SettingGridmapScaleY)
	s.GridmapX = wrapGridmap(s.ActualX*gridScaleX, gridScale)
	s.GridmapY = wrapGridmap(s.ActualY*gridScaleY, gridScale)
	if s.ActualX < 0 {
		s.GridmapX = 256 - s.GridmapX
	}
	if s.ActualY < 0 {
		s.GridmapY = 256 - s.GridmapY
	}

	normDx := stepDx / stepDTime * s.ViewZoom
	normDy := stepDy / stepDTime * s.ViewZoom
	normSpeed := math.Hypot(normDx, normDy)
	normDist := math.Hypot(stepDx/stepDTime/baseRadius, stepDy/stepDTime/baseRadius) * stepDTime
	s.NormSpeed = normSpeed

	in := b.inputVector()

	settingValues := b.evaluateAll(in)

	fac := 1 - expDecay(settingValues[SettingSlowTrackingPerDab], stepDdab)
	s.ActualX += (s.CursorX - s.ActualX) * fac
	s.ActualY += (s.CursorY - s.ActualY) * fac

	fac = 1 - expDecay(settingValues[SettingSpeed1Slowness], stepDTime)
	s.NormSpeedSlow1 += (normSpeed - s.NormSpeedSlow1) * fac
	fac = 1 - expDecay(settingValues[SettingSpeed2Slowness], stepDTime)
	s.NormSpeedSlow2 += (normSpeed - s.NormSpeedSlow2) * fac

	dx, dy := stepDx*s.ViewZoom, stepDy*s.ViewZoom
	stepInDabtime := math.Hypot(dx, dy)
	fac = 1 - expDecay(math.Exp(settingValues[SettingDirectionFilter]*0.5)-1, stepInDabtime)
	dxOld, dyOld := s.DirectionDX, s.DirectionDY
	s.DirectionDX2, s.DirectionDY2 = s.DirectionDX2+(dx-s.DirectionDX2)*fac, s.DirectionDY2+(dy-s.DirectionDY2)*fac
	if sqr(dxOld-dx)+sqr(dyOld-dy) > sqr(dxOld-(-dx))+sqr(dyOld-(-dy)) {
		dx, dy = -dx, -dy
	}
	s.DirectionDX += (dx - s.DirectionDX) * fac
	s.DirectionDY += (dy - s.DirectionDY) * fac
	s.Direction = math.Mod(math.Atan2(s.DirectionDY, s.DirectionDX)/(2*math.Pi)*360+s.ViewRotation+180, 180)
	s.DirectionAngle = math.Mod(math.Atan2(s.DirectionDY2, s.DirectionDX2)/(2*math.Pi)*360+180+s.ViewRotation+180, 360)

	fac = 1 - expDecay(settingValues[SettingCustomInputSlowness], 0.1)
	s.CustomInput += (settingValues[SettingCustomInput] - s.CustomInput) * fac

	frequency := math.Exp(-settingValues[SettingStrokeDuration])
	s.StrokeLength += normDist * frequency
	if s.StrokeLength < 0 {
		s.StrokeLength = 0
	}
	wrap := 1 + settingValues[SettingStrokeHoldtime]
	if s.StrokeLength > wrap {
		if wrap > 10.9 {
			s.StrokeLength = 1
		} else {
			s.StrokeLength = math.Mod(s.StrokeLength, wrap)
			if s.StrokeLength < 0 {
				s.StrokeLength = 0
			}
		}
	}

	radiusLog := settingValues[SettingRadiusLogarithm]
	s.ActualRadius = clamp(math.Exp(radiusLog), actualRadiusMin, actualRadiusMax)
	s.ActualEllipticalDabRatio = settingValues[SettingEllipticalDabRatio]
	s.ActualEllipticalDabAngle = math.Mod(settingValues[SettingEllipticalDabAngle]-s.ViewRotation+180, 180) - 180

	b.lastSettingValues = settingValues
}

// inputVector builds the 15-element input vector per §4.J "Emit an
// input vector containing...".
func (b *Brush) inputVector() *[NumInputs]float64 {
	s := &b.State
	var in [NumInputs]float64
	in[InputPressure] = s.Pressure * math.Exp(b.Settings.Base(SettingPressureGainLog))
	in[InputSpeed1] = clamp(math.Log(b.speedGamma[0]+s.NormSpeedSlow1)*b.speedM[0]+b.speedQ[0], 0, 4)
	in[InputSpeed2] = clamp(math.Log(b.speedGamma[1]+s.NormSpeedSlow2)*b.speedM[1]+b.speedQ[1], 0, 4)
	in[InputRandom] = b.randomInput
	in[InputStroke] = math.Min(s.StrokeLength, 1.0)
	in[InputDirection] = s.Direction
	in[InputDirectionAngle] = s.DirectionAngle
	in[InputTiltDeclination] = s.Declination
	in[InputTiltAscension] = math.Mod(s.Ascension+s.ViewRotation+180, 360) - 180
	in[InputViewZoom] = b.Settings.Base(SettingRadiusLogarithm) - math.Log(math.Exp(b.Settings.Base(SettingRadiusLogarithm))/maxFloat(s.ViewZoom, 1e-6))
	attackDirection := math.Mod(math.Atan2(s.DirectionDY2, s.DirectionDX2)/(2*math.Pi)*360+90, 360)
	in[InputAttackAngle] = smallestAngularDifference(s.Ascension, attackDirection)
	in[InputBrushRadius] = b.Settings.Base(SettingRadiusLogarithm)
	in[InputGridmapX] = clamp(s.GridmapX, 0, 256)
	in[InputGridmapY] = clamp(s.GridmapY, 0, 256)
	in[InputCustom] = s.CustomInput
	return &in
}

func (b *Brush) evaluateAll(in *[NumInputs]float64) [NumSettings]float64 {
	var out [NumSettings]float64
	for i := Setting(0); i < NumSettings; i++ {
		out[i] = b.Settings.Evaluate(i, in)
	}
	return out
}

func wrapGridmap(v, gridScale float64) float64 {
	period := gridScale * 256
	if period <= 0 {
		return 0
	}
	return math.Mod(math.Abs(v), period) / period * 256
}

func expDecay(timeConstant, t float64) float64 {
	if timeConstant <= 0 {
		return 0
	}
	return math.Exp(-t / timeConstant)
}

func sqr(v float64) float64 { return v * v }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// prepareAndDrawDab computes one dab's full parameters from the
// brush's just-updated state and settings, then submits it to surf
// (§4.J "prepare_and_draw_dab"). Returns false when the dab is skipped
// here (a zero-opacity or zero-radius dab) and true once it has been
// submitted; a dab that surf.DrawDab itself rejects still counts as
// submitted.
func (b *Brush) prepareAndDrawDab(surf *surface.Surface) bool {
	s := &b.State
	sv := &b.lastSettingValues

	radius := s.ActualRadius
	opaque := sv[SettingOpaque]
	if sv[SettingOpaqueLinearize] != 0 {
		dabsPerPixel := 1 + sv[SettingOpaqueLinearize]*(math.Pi*radius*radius*sv[SettingDabsPerBasicRadius]-1)
		if dabsPerPixel > 1 {
			opaque = 1 - math.Pow(1-opaque, 1/dabsPerPixel)
		}
	}
	opaque *= sv[SettingOpaqueMultiply]
	opaque = clamp01(opaque)
	if opaque <= 0 || radius <= 0 {
		s.PartialDabs = 0
		return false
	}

	x, y := s.ActualX, s.ActualY

	offsetAngle := s.Direction * math.Pi / 180
	x += math.Cos(offsetAngle) * sv[SettingOffsetByDirection] * radius * s.Flip
	y += math.Sin(offsetAngle) * sv[SettingOffsetByDirection] * radius * s.Flip

	ascensionAngle := s.Ascension * math.Pi / 180
	x += math.Cos(ascensionAngle) * sv[SettingOffsetByAscension] * radius * s.Flip
	y += math.Sin(ascensionAngle) * sv[SettingOffsetByAscension] * radius * s.Flip

	x += sv[SettingOffsetByTiltX] * radius * s.Flip
	y += sv[SettingOffsetByTiltY] * radius * s.Flip
	x += sv[SettingOffsetByViewZoom] * radius / maxFloat(s.ViewZoom, 1e-6) * s.Flip

	if rnd := sv[SettingOffsetByRandom]; rnd != 0 {
		x += radius * rnd * gaussianFrom(b.rng)
		y += radius * rnd * gaussianFrom(b.rng)
	}

	if randomRadius := sv[SettingRadiusByRandom]; randomRadius != 0 {
		before := radius
		radiusLog := math.Log(radius) + randomRadius*gaussianFrom(b.rng)
		radius = clamp(math.Exp(radiusLog), actualRadiusMin, actualRadiusMax)
		if before > 0 {
			opaque *= sqr(before / radius)
		}
	}

	hardness := clamp01(sv[SettingHardness])
	aa := sv[SettingAntiAliasing]
	if aa > 0 && radius*(1-hardness) < aa {
		optical := radius
		radius = maxFloat(radius, aa)
		if radius > 0 {
			hardness = 1 - optical*(1-hardness)/radius
		}
	}

	h, sat, v := b.hsvColor()
	brushColor := RGBA{A: 1}
	brushColor.R, brushColor.G, brushColor.B = colormath.HSVToRGB(h, sat, v)

	bucketIdx := sv[SettingSmudgeBucket]
	smudge := clamp01(sv[SettingSmudge])
	bucketColor := brushColor
	if smudge > 0 {
		if s.Smudge.ShouldResample(bucketIdx, sv[SettingSmudgeLengthLog], b.rng) {
			radiusForSample := radius * math.Exp(sv[SettingSmudgeRadiusLog])
			sampled := surf.GetColor(x, y, radiusForSample, 1)
			s.Smudge.Refresh(bucketIdx, sampled)
			s.LastGetColorR, s.LastGetColorG, s.LastGetColorB, s.LastGetColorA = sampled.R, sampled.G, sampled.B, sampled.A
		}
		bucketColor = s.Smudge.Update(bucketIdx, sv[SettingSmudgeLength], 1, 0.5, 0.5, 0, 0)
	}

	eraserTargetAlpha := (1-smudge)*1 + smudge*bucketColor.A
	mixed := MixColors(brushColor, bucketColor, 1-smudge, 1, 0.5, 0.5, 0, 0)

	if eraser := sv[SettingEraser]; eraser > 0 {
		eraserTargetAlpha *= 1 - eraser
	}

	mixed = applyChangeColorOffsets(mixed, sv)

	snap := clamp01(sv[SettingSnapToPixel])
	if snap > 0 {
		x = x + snap*(math.Round(x)-x)
		y = y + snap*(math.Round(y)-y)
	}

	const maxChan = 1 << 15
	mixed.A *= eraserTargetAlpha
	rChan, gChan, bChan, aChan := mixed.Channels(maxChan)
	dab := surface.DabParams{
		X: x, Y: y,
		Radius:       radius,
		R:            rChan,
		G:            gChan,
		B:            bChan,
		A:            aChan,
		Opaque:       opaque,
		Hardness:     hardness,
		Aspect:       maxFloat(s.ActualEllipticalDabRatio, 1),
		Angle:        s.ActualEllipticalDabAngle,
		LockAlpha:    clamp01(sv[SettingLockAlpha]),
		Colorize:     clamp01(sv[SettingColorize]),
		Posterize:    clamp01(sv[SettingPosterize]),
		PosterizeNum: int(sv[SettingPosterizeNum]),
		Paint:        0,
	}
	surf.DrawDab(dab)
	s.PartialDabs = 0
	return true
}

// hsvColor reads the brush's own HSV color settings.
func (b *Brush) hsvColor() (h, s, v float64) {
	return b.Settings.Base(SettingColorH) * 360, clamp01(b.Settings.Base(SettingColorS)), clamp01(b.Settings.Base(SettingColorV))
}

// applyChangeColorOffsets applies the CHANGE_COLOR_H/S_HSV/V/L/HSL_S
// offsets to c (§4.J "apply CHANGE_COLOR_H/S_HSV/V/L/HSL_S offsets (the
// HSL branch round-trips through HSL)").
func applyChangeColorOffsets(c RGBA, sv *[NumSettings]float64) RGBA {
	h, s, v := colormath.RGBToHSV(c.R, c.G, c.B)
	h = math.Mod(h+sv[SettingChangeColorH]*360, 360)
	if h < 0 {
		h += 360
	}
	s = clamp01(s + sv[SettingChangeColorSHSV])
	v = clamp01(v + sv[SettingChangeColorV])
	c.R, c.G, c.B = colormath.HSVToRGB(h, s, v)

	if sv[SettingChangeColorL] != 0 || sv[SettingChangeColorSHSL] != 0 {
		hh, ss, ll := colormath.RGBToHSL(c.R, c.G, c.B)
		ll = clamp01(ll + sv[SettingChangeColorL])
		ss = clamp01(ss + sv[SettingChangeColorSHSL])
		c.R, c.G, c.B = colormath.HSLToRGB(hh, ss, ll)
	}
	return c
}

// gaussianFrom draws a standard-normal sample from four uniform draws
// of rng (§4.E colormath.Gaussian).
func gaussianFrom(rng Source) float64 {
	return colormath.Gaussian(rng.Float64(), rng.Float64(), rng.Float64(), rng.Float64())
}
