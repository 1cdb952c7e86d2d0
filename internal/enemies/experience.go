package enemies

import "math"

const (
	// one kilometer ran earns 100 experience points
	ExpPerKm = 100
	// every full 1000 experience points is one level
	ExpPerLevel = 1000
)

// ExperienceState is derived from the total running distance, never stored.
type ExperienceState struct {
	Experience   int `json:"experience"`
	Level        int `json:"level"`
	NextLevelExp int `json:"nextLevelExp"`
}

// ExperienceFromDistance maps the lifetime running distance to the
// experience state. Fractional kilometers earn fractional experience,
// floored; negative input is treated as zero.
func ExperienceFromDistance(totalKm float64) ExperienceState {
	if totalKm < 0 {
		totalKm = 0
	}
	exp := int(math.Floor(totalKm * ExpPerKm))
	level := exp / ExpPerLevel
	return ExperienceState{
		Experience:   exp,
		Level:        level,
		NextLevelExp: (level + 1) * ExpPerLevel,
	}
}

// ProgressPercent reports how far into the current level the experience
// is, in [0, 100).
func (s ExperienceState) ProgressPercent() float64 {
	return float64(s.Experience%ExpPerLevel) / ExpPerLevel * 100
}
