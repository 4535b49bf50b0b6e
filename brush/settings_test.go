package brush

import "testing"

func zeroInputs() *[NumInputs]float64 {
	var in [NumInputs]float64
	return &in
}

func TestEvaluateWithNoMappingsReturnsBase(t *testing.T) {
	s := NewSettings()
	s.SetBase(SettingRadiusLogarithm, 1.5)
	if got := s.Evaluate(SettingRadiusLogarithm, zeroInputs()); got != 1.5 {
		t.Errorf("Evaluate with no mappings = %v, want base 1.5", got)
	}
}

func TestEvaluateSumsMappingContributions(t *testing.T) {
	s := NewSettings()
	s.SetBase(SettingOpaqueMultiply, 1)
	s.Mapping(SettingOpaqueMultiply, InputPressure).SetPoints([][2]float64{{0, -1}, {1, 1}})
	s.Mapping(SettingOpaqueMultiply, InputRandom).SetPoints([][2]float64{{0, 0}, {1, 0.5}})

	in := zeroInputs()
	in[InputPressure] = 0.5
	in[InputRandom] = 1
	got := s.Evaluate(SettingOpaqueMultiply, in)
	want := 1 + 0 + 0.5
	if got != want {
		t.Errorf("Evaluate summed mappings = %v, want %v", got, want)
	}
}

func TestEvaluateClampsToBounds(t *testing.T) {
	s := NewSettings()
	s.SetBase(SettingOpaque, 5)
	if got := s.Evaluate(SettingOpaque, zeroInputs()); got != 1 {
		t.Errorf("Evaluate clamped SettingOpaque = %v, want 1 (max bound)", got)
	}

	s.SetBase(SettingOpaque, -5)
	if got := s.Evaluate(SettingOpaque, zeroInputs()); got != 0 {
		t.Errorf("Evaluate clamped SettingOpaque = %v, want 0 (min bound)", got)
	}
}

func TestEvaluateUnboundedSettingIsNotClamped(t *testing.T) {
	s := NewSettings()
	s.SetBase(SettingRadiusLogarithm, 1000)
	if got := s.Evaluate(SettingRadiusLogarithm, zeroInputs()); got != 1000 {
		t.Errorf("Evaluate on unbounded setting = %v, want 1000 unclamped", got)
	}
}

func TestBaseRoundTrips(t *testing.T) {
	s := NewSettings()
	s.SetBase(SettingHardness, 0.75)
	if got := s.Base(SettingHardness); got != 0.75 {
		t.Errorf("Base = %v, want 0.75", got)
	}
}
