package boss

import (
	"time"

	"github.com/dvranic/runquest/internal/training"
)

// ProgressPercent is how much of the target the current value covers,
// clamped to [0, 100]. Overshooting the target is still just 100.
func ProgressPercent(currentValue, targetValue float64) float64 {
	if targetValue <= 0 {
		return 0
	}
	percent := currentValue / targetValue * 100
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// DaysRemaining counts the full days left until the target date: a goal
// due today has 0, one due tomorrow has 1. A date in the past goes
// negative; active listings filter those out, but a caller holding a
// stale goal still gets a truthful number.
func DaysRemaining(targetDate, now time.Time) int {
	diff := training.DayStart(targetDate).Sub(training.DayStart(now))
	return int(diff.Hours() / 24)
}

// CurrentValueFor picks the stat a goal of the given type is measured
// against: race goals run against the lifetime distance, weekly goals
// against the current week, monthly goals against four current weeks
// worth of distance (an approximation, the UI frames it as "this pace").
func CurrentValueFor(goalType GoalType, stats training.TrainingStats) float64 {
	switch goalType {
	case GoalTypeRace:
		return stats.TotalDistanceKm
	case GoalTypeMonthly:
		return stats.WeeklyDistanceKm * 4
	case GoalTypeWeekly:
		return stats.WeeklyDistanceKm
	default:
		return 0
	}
}
