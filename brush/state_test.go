package brush

import "testing"

func TestStateResetStrokePreservesSmudgeAndSpeed(t *testing.T) {
	var s State
	s.Smudge.Refresh(1, RGBA{R: 1, A: 1})
	s.NormSpeedSlow1 = 42
	s.GridmapX = 3

	s.ResetStroke(10, 20, 0.5)

	if s.CursorX != 10 || s.CursorY != 20 || s.ActualX != 10 || s.ActualY != 20 {
		t.Errorf("ResetStroke position = (%v,%v,%v,%v), want (10,20,10,20)", s.CursorX, s.CursorY, s.ActualX, s.ActualY)
	}
	if s.Pressure != 0.5 {
		t.Errorf("ResetStroke pressure = %v, want 0.5", s.Pressure)
	}
	if s.StrokeLength != 1.0 {
		t.Errorf("ResetStroke stroke length = %v, want 1.0", s.StrokeLength)
	}
	if s.NormSpeedSlow1 != 42 {
		t.Error("ResetStroke must not clear low-pass speed state")
	}
	if s.Smudge.bucket(1).lastSample.R != 1 {
		t.Error("ResetStroke must not clear smudge buckets")
	}
	if s.GridmapX != 3 {
		t.Error("ResetStroke must not clear gridmap phase")
	}
}

func TestStateResetClearsEverything(t *testing.T) {
	var s State
	s.Smudge.Refresh(1, RGBA{R: 1, A: 1})
	s.NormSpeedSlow1 = 42
	s.CursorX = 7

	s.Reset()

	if s.CursorX != 0 || s.NormSpeedSlow1 != 0 {
		t.Error("Reset must clear position and speed state")
	}
	if s.Smudge.bucket(1).lastSample.R != 0 {
		t.Error("Reset must clear smudge buckets too")
	}
}
