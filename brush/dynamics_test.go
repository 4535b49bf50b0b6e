package brush

import (
	"testing"

	"github.com/inkwell/paintcore/surface"
	"github.com/inkwell/paintcore/tile"
)

type dynTestRand float64

func (f dynTestRand) Float64() float64 { return float64(f) }

func newDynTestSurface() *surface.Surface {
	return surface.New(tile.NewStore(), surface.WithRandSource(dynTestRand(0)))
}

func basicBrush() *Brush {
	settings := NewSettings()
	settings.SetBase(SettingOpaque, 1)
	settings.SetBase(SettingOpaqueMultiply, 1)
	settings.SetBase(SettingHardness, 0.8)
	settings.SetBase(SettingRadiusLogarithm, 2) // e^2 =~ 7.4px
	settings.SetBase(SettingDabsPerActualRadius, 3)
	settings.SetBase(SettingColorV, 1) // white, full value
	return NewBrush(settings, dynTestRand(0.5))
}

func TestProcessEventPaintsWithAPressedStroke(t *testing.T) {
	surf := newDynTestSurface()
	b := basicBrush()
	surf.BeginAtomic()

	b.ProcessEvent(surf, Event{X: 100, Y: 100, Pressure: 0, DTime: 10, ViewZoom: 1})
	painted := b.ProcessEvent(surf, Event{X: 105, Y: 100, Pressure: 1, DTime: 0.02, ViewZoom: 1})

	var rects []tile.Rect
	surf.EndAtomic(&rects)

	if !painted {
		t.Error("ProcessEvent with nonzero pressure and opaque=1 reported no paint")
	}
	if len(rects) == 0 {
		t.Error("expected dirty rects after a painting stroke")
	}
}

func TestProcessEventZeroOpaqueNeverPaints(t *testing.T) {
	surf := newDynTestSurface()
	settings := NewSettings()
	settings.SetBase(SettingOpaque, 0)
	settings.SetBase(SettingRadiusLogarithm, 2)
	settings.SetBase(SettingDabsPerActualRadius, 3)
	b := NewBrush(settings, dynTestRand(0.5))

	surf.BeginAtomic()
	b.ProcessEvent(surf, Event{X: 10, Y: 10, Pressure: 0, DTime: 10})
	painted := b.ProcessEvent(surf, Event{X: 15, Y: 10, Pressure: 1, DTime: 0.02})
	var rects []tile.Rect
	surf.EndAtomic(&rects)

	if painted {
		t.Error("ProcessEvent with opaque=0 should never paint")
	}
	if len(rects) != 0 {
		t.Errorf("zero-opaque stroke produced %d dirty rects, want 0", len(rects))
	}
}

func TestProcessEventStaleDTimeResetsStrokeWithoutPainting(t *testing.T) {
	surf := newDynTestSurface()
	b := basicBrush()

	painted := b.ProcessEvent(surf, Event{X: 50, Y: 50, Pressure: 1, DTime: 10})
	if painted {
		t.Error("the very first event of a stroke (dtime>5s reset) should never paint")
	}
	if b.State.CursorX != 50 || b.State.CursorY != 50 {
		t.Errorf("stroke reset cursor = (%v,%v), want (50,50)", b.State.CursorX, b.State.CursorY)
	}
	if b.State.StrokeLength != 1.0 {
		t.Errorf("stroke reset stroke length = %v, want 1.0", b.State.StrokeLength)
	}
}

func TestCountDabsToZeroAtCurrentPosition(t *testing.T) {
	b := basicBrush()
	b.State.ActualRadius = 5
	b.State.ActualEllipticalDabRatio = 1
	got := b.CountDabsTo(b.State.CursorX, b.State.CursorY, 1, 0)
	if got != 0 {
		t.Errorf("CountDabsTo to the current position = %v, want 0", got)
	}
}
