package brush

import "testing"

const validSettingsJSON = `{
  "version": 3,
  "settings": {
    "opaque": {"base_value": 0.8, "inputs": {"pressure": [[0, 0], [1, 1]]}},
    "radius_logarithmic": {"base_value": 2.0, "inputs": {}},
    "unknown_setting_from_a_newer_version": {"base_value": 1, "inputs": {}}
  }
}`

func TestLoadSettingsJSONAppliesBaseAndMappings(t *testing.T) {
	s := NewSettings()
	ok, err := LoadSettingsJSON(s, []byte(validSettingsJSON))
	if err != nil || !ok {
		t.Fatalf("LoadSettingsJSON = (%v, %v), want (true, nil)", ok, err)
	}
	if got := s.Base(SettingOpaque); got != 0.8 {
		t.Errorf("SettingOpaque base = %v, want 0.8", got)
	}
	if got := s.Base(SettingRadiusLogarithm); got != 2.0 {
		t.Errorf("SettingRadiusLogarithm base = %v, want 2.0", got)
	}
	var in [NumInputs]float64
	in[InputPressure] = 1
	if got := s.Evaluate(SettingOpaque, &in); got != 1 {
		t.Errorf("SettingOpaque at pressure=1 = %v, want 1 (from its mapping)", got)
	}
}

func TestLoadSettingsJSONRejectsWrongVersion(t *testing.T) {
	s := NewSettings()
	s.SetBase(SettingOpaque, 0.42)
	ok, err := LoadSettingsJSON(s, []byte(`{"version": 2, "settings": {}}`))
	if err == nil || ok {
		t.Fatalf("LoadSettingsJSON with version 2 = (%v, %v), want (false, non-nil error)", ok, err)
	}
	if got := s.Base(SettingOpaque); got != 0.42 {
		t.Errorf("a failed load must leave previous settings untouched, got base=%v", got)
	}
}

func TestLoadSettingsJSONRejectsMalformedJSON(t *testing.T) {
	s := NewSettings()
	ok, err := LoadSettingsJSON(s, []byte(`{not json`))
	if err == nil || ok {
		t.Fatal("LoadSettingsJSON with malformed JSON should fail")
	}
}

func TestLoadSettingsJSONRejectsMissingSettingsObject(t *testing.T) {
	s := NewSettings()
	ok, err := LoadSettingsJSON(s, []byte(`{"version": 3}`))
	if err == nil || ok {
		t.Fatal("LoadSettingsJSON with no settings object should fail")
	}
}
