package wellbeing

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	ColorGreen   = "#4caf50"
	ColorBlue    = "#2196f3"
	ColorGrey    = "#9e9e9e"
	ColorOrange  = "#ff9800"
	ColorDeepOrg = "#ff5722"
	ColorRed     = "#f44336"
	ColorBrown   = "#795548"
)

var moodColors = map[string]string{
	"happy":       ColorGreen,
	"motivated":   ColorBlue,
	"balanced":    ColorGreen,
	"neutral":     ColorGrey,
	"stressed":    ColorOrange,
	"anxious":     ColorDeepOrg,
	"overwhelmed": ColorRed,
	"tired":       ColorBrown,
	"worried":     ColorOrange,
}

// MoodToColor maps a mood label to its badge color, case-insensitively.
func MoodToColor(mood string) string {
	if c, ok := moodColors[cases.Lower(language.Und).String(mood)]; ok {
		return c
	}
	return ColorGrey
}

// StressLevelToColor partitions levels into low (<=3), moderate (<=6) and high.
func StressLevelToColor(level int) string {
	switch {
	case level <= 3:
		return ColorGreen
	case level <= 6:
		return ColorOrange
	default:
		return ColorRed
	}
}

// Gauge is a half-donut split of a level against the 10-point scale.
type Gauge struct {
	Value int `json:"value"`
	Rest  int `json:"rest"`
}

// Display carries the precomputed visual hints for one record.
type Display struct {
	MoodColor     string `json:"moodColor"`
	StressColor   string `json:"stressColor"`
	WorkloadColor string `json:"workloadColor"`
	StressGauge   Gauge  `json:"stressGauge"`
	WorkloadGauge Gauge  `json:"workloadGauge"`
}

// DisplayFor derives the display hints for a canonical record.
func DisplayFor(r AnalysisRecord) Display {
	return Display{
		MoodColor:     MoodToColor(r.Mood),
		StressColor:   StressLevelToColor(r.StressLevel),
		WorkloadColor: StressLevelToColor(r.WorkloadLevel),
		StressGauge:   Gauge{Value: r.StressLevel, Rest: MaxLevel - r.StressLevel},
		WorkloadGauge: Gauge{Value: r.WorkloadLevel, Rest: MaxLevel - r.WorkloadLevel},
	}
}
