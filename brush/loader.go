package brush

import (
	"encoding/json"
	"fmt"

	"github.com/inkwell/paintcore"
)

// settingsFileVersion is the only brush-settings JSON version this
// loader accepts (§6).
const settingsFileVersion = 3

// settingNames and inputNames map the JSON file's setting/input name
// strings onto the Setting/Input enums. Unrecognized setting names are
// warned-and-skipped; unrecognized input names are silently ignored
// (§6 "unknown setting names warned-and-skipped; unknown input names
// ignored").
var settingNames = map[string]Setting{
	"opaque":                   SettingOpaque,
	"opaque_multiply":          SettingOpaqueMultiply,
	"opaque_linearize":         SettingOpaqueLinearize,
	"radius_logarithmic":       SettingRadiusLogarithm,
	"hardness":                 SettingHardness,
	"eraser":                   SettingEraser,
	"lock_alpha":               SettingLockAlpha,
	"colorize":                 SettingColorize,
	"posterize":                SettingPosterize,
	"posterize_num":            SettingPosterizeNum,
	"snap_to_pixel":            SettingSnapToPixel,
	"anti_aliasing":            SettingAntiAliasing,
	"tracking_noise":           SettingTrackingNoise,
	"slow_tracking":            SettingSlowTracking,
	"slow_tracking_per_dab":    SettingSlowTrackingPerDab,
	"dabs_per_actual_radius":   SettingDabsPerActualRadius,
	"dabs_per_basic_radius":    SettingDabsPerBasicRadius,
	"dabs_per_second":          SettingDabsPerSecond,
	"radius_by_random":         SettingRadiusByRandom,
	"offset_by_random":         SettingOffsetByRandom,
	"offset_by_tilt_x":         SettingOffsetByTiltX,
	"offset_by_tilt_y":         SettingOffsetByTiltY,
	"offset_by_direction":      SettingOffsetByDirection,
	"offset_by_ascension":      SettingOffsetByAscension,
	"offset_by_viewzoom":       SettingOffsetByViewZoom,
	"smudge":                   SettingSmudge,
	"smudge_length":            SettingSmudgeLength,
	"smudge_length_log":        SettingSmudgeLengthLog,
	"smudge_radius_log":        SettingSmudgeRadiusLog,
	"smudge_bucket":            SettingSmudgeBucket,
	"change_color_h":           SettingChangeColorH,
	"change_color_s_hsv":       SettingChangeColorSHSV,
	"change_color_v":           SettingChangeColorV,
	"change_color_l":           SettingChangeColorL,
	"change_color_s_hsl":       SettingChangeColorSHSL,
	"elliptical_dab_ratio":     SettingEllipticalDabRatio,
	"elliptical_dab_angle":     SettingEllipticalDabAngle,
	"direction_filter":         SettingDirectionFilter,
	"stroke_threshold":         SettingStrokeThreshold,
	"stroke_duration_log":      SettingStrokeDuration,
	"stroke_holdtime":          SettingStrokeHoldtime,
	"custom_input":             SettingCustomInput,
	"custom_input_slowness":    SettingCustomInputSlowness,
	"gridmap_scale":            SettingGridmapScale,
	"gridmap_scale_x":          SettingGridmapScaleX,
	"gridmap_scale_y":          SettingGridmapScaleY,
	"color_h":                  SettingColorH,
	"color_s":                  SettingColorS,
	"color_v":                  SettingColorV,
	"pressure_gain_log":        SettingPressureGainLog,
	"speed1_slowness":          SettingSpeed1Slowness,
	"speed2_slowness":          SettingSpeed2Slowness,
	"offset_by_speed":          SettingOffsetBySpeed,
	"offset_by_speed_slowness": SettingOffsetBySpeedSlowness,
}

var inputNames = map[string]Input{
	"pressure":         InputPressure,
	"speed1":           InputSpeed1,
	"speed2":           InputSpeed2,
	"random":           InputRandom,
	"stroke":           InputStroke,
	"direction":        InputDirection,
	"direction_angle":  InputDirectionAngle,
	"tilt_declination": InputTiltDeclination,
	"tilt_ascension":   InputTiltAscension,
	"viewzoom":         InputViewZoom,
	"attack_angle":     InputAttackAngle,
	"brush_radius":     InputBrushRadius,
	"gridmap_x":        InputGridmapX,
	"gridmap_y":        InputGridmapY,
	"custom":           InputCustom,
}

type settingFile struct {
	Version  int                           `json:"version"`
	Settings map[string]settingFileEntry   `json:"settings"`
}

type settingFileEntry struct {
	BaseValue float64                `json:"base_value"`
	Inputs    map[string][][2]float64 `json:"inputs"`
}

// LoadSettingsJSON parses a brush-settings file (§6) and, on success,
// replaces s's contents entirely. On any failure s is left untouched,
// matching the "a failed settings load leaves the brush in its
// previous state" contract (§7).
func LoadSettingsJSON(s *Settings, data []byte) (bool, error) {
	var file settingFile
	if err := json.Unmarshal(data, &file); err != nil {
		return false, fmt.Errorf("brush: parsing settings JSON: %w", err)
	}
	if file.Version != settingsFileVersion {
		return false, fmt.Errorf("brush: unsupported settings version %d, want %d", file.Version, settingsFileVersion)
	}
	if file.Settings == nil {
		return false, fmt.Errorf("brush: settings JSON missing \"settings\" object")
	}

	next := NewSettings()
	for name, entry := range file.Settings {
		setting, ok := settingNames[name]
		if !ok {
			paintcore.Logger().Warn("brush: skipping unknown setting in settings file", "setting", name)
			continue
		}
		next.SetBase(setting, entry.BaseValue)
		for inputName, points := range entry.Inputs {
			input, ok := inputNames[inputName]
			if !ok {
				continue
			}
			next.Mapping(setting, input).SetPoints(points)
		}
	}

	*s = *next
	return true, nil
}
