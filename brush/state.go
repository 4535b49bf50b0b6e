package brush

// State is one brush instance's per-stroke state (§3 "Brush state"): the
// ~60-float array the dynamics engine integrates every event, plus the
// smudge bucket table. State is owned
// exclusively by its brush; only one stroke may be in progress on it at
// a time.
type State struct {
	// Cursor and actual (low-pass filtered) position, in surface space.
	CursorX, CursorY float64
	ActualX, ActualY float64

	// Pressure and tilt, interpolated per dab step toward the incoming
	// event's values (not low-pass filtered).
	Pressure    float64
	Declination float64
	Ascension   float64

	// Derived speed and direction features, raw and low-pass filtered.
	NormSpeed      float64
	NormSpeedSlow1 float64
	NormSpeedSlow2 float64
	Direction      float64
	DirectionAngle float64
	DirectionDX    float64
	DirectionDY    float64
	DirectionDX2   float64 // 360-degree direction_angle's own low-pass vector
	DirectionDY2   float64

	// Stroke-length accumulator, wrapping at 1+HOLDTIME (§4.J).
	StrokeLength float64

	// Wrapping gridmap coordinates.
	GridmapX, GridmapY float64

	// Per-event view parameters, set directly from the incoming event.
	ViewZoom     float64
	ViewRotation float64

	// Toggles +1/-1 on every dab-step state update (§3 "flip").
	Flip float64

	// Last get_color sample, distinct from any color the brush's own
	// settings carry. Written when a smudge bucket is resampled; nothing
	// in this package reads it back.
	LastGetColorR float64
	LastGetColorG float64
	LastGetColorB float64
	LastGetColorA float64

	// Derived per-dab geometry.
	ActualRadius             float64
	ActualEllipticalDabRatio float64
	ActualEllipticalDabAngle float64

	// Zeroed by ResetStroke; nothing else in this package reads or
	// writes it.
	DabsTodo float64

	// Fractional dab progress carried from one event to the next
	// (§4.J "dabs_todo"): ProcessEvent stores the leftover fraction and
	// prepareAndDrawDab zeroes it after each dab.
	PartialDabs float64

	// Free-form input fed to the CUSTOM input channel and settings.
	CustomInput float64

	// Time since the previous event, seconds.
	LastDTime float64

	Smudge SmudgeBuckets
}

// Reset clears every field of s to its zero value, as if the brush had
// never drawn a stroke (§3 "Reset at stroke start or on explicit
// request"). Unlike ResetStroke, this also discards the smudge bucket
// table.
func (s *State) Reset() {
	*s = State{}
}

// ResetStroke re-seeds the stroke origin: position, pressure, the stroke
// length accumulator, the dab counters and the last event time. Every
// other field (smudge buckets, low-pass filtered speed/direction,
// gridmap phase) is left as it is. Brush.ProcessEvent's stale-event path
// (dtime > 5s, §4.J step 2) calls Reset before ResetStroke, so on that
// path all other state is cleared as well.
func (s *State) ResetStroke(x, y, pressure float64) {
	s.CursorX, s.CursorY = x, y
	s.ActualX, s.ActualY = x, y
	s.Pressure = pressure
	s.StrokeLength = 1.0
	s.DabsTodo = 0
	s.PartialDabs = 0
	s.LastDTime = 0
}
