package boss

import "time"

// GoalType decides how the current value towards the goal is measured.
type GoalType string

const (
	// GoalTypeRace measures the lifetime running distance.
	GoalTypeRace GoalType = "race"
	// GoalTypeMonthly measures an approximated monthly distance.
	GoalTypeMonthly GoalType = "monthly"
	// GoalTypeWeekly measures the current week distance.
	GoalTypeWeekly GoalType = "weekly"
)

func (gt GoalType) String() string {
	return string(gt)
}

func (gt GoalType) IsValid() bool {
	switch gt {
	case GoalTypeRace, GoalTypeMonthly, GoalTypeWeekly:
		return true
	default:
		return false
	}
}

// Goal is one boss the runner set out to beat. Past-dated goals drop out
// of the active listing but stay completable.
type Goal struct {
	ID          int        `json:"id"`
	UserID      string     `json:"userId"`
	Name        string     `json:"goalName"`
	Type        GoalType   `json:"goalType"`
	TargetValue float64    `json:"targetValue"`
	TargetDate  *time.Time `json:"targetDate"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
}
