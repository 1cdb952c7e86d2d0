package training

import "time"

// DefaultUserID is used by the HTTP layer when no user is given.
// All repo and analyzer contracts still take the user id explicitly.
const DefaultUserID = "default_user"

// Kind of a training record.
type Kind string

const (
	KindRunning Kind = "running"
	KindWeight  Kind = "weight"
	KindWorkout Kind = "workout"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindRunning, KindWeight, KindWorkout:
		return true
	default:
		return false
	}
}

// Record is one dated training observation (run, weight or workout).
// Records are immutable once created. Optional fields stay nil when the
// source (e.g. a screenshot import) did not carry them; downstream
// computations treat nil distance/weight as zero/absent, never as an error.
type Record struct {
	ID              int       `json:"id"`
	UserID          string    `json:"userId"`
	Date            time.Time `json:"date"` // calendar day, no time component
	Kind            Kind      `json:"kind"`
	DistanceKm      *float64  `json:"distanceKm,omitempty"`
	DurationSeconds *int      `json:"durationSeconds,omitempty"`
	Pace            *string   `json:"pace,omitempty"`
	WeightKg        *float64  `json:"weightKg,omitempty"`
	WorkoutDetail   *string   `json:"workoutDetail,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// TrainingStats are the aggregate numbers shown on the home screen and
// fed into the coach / prediction prompts.
type TrainingStats struct {
	TotalDistanceKm  float64  `json:"totalDistance"`
	WeeklyDistanceKm float64  `json:"weeklyDistance"`
	RecentWeightKg   *float64 `json:"recentWeight"`
	ContinuousDays   int      `json:"continuousDays"`
}

// WeeklyBucket is one point of the weekly chart series.
type WeeklyBucket struct {
	WeekStart   time.Time `json:"weekStart"`
	DistanceKm  float64   `json:"distance"`
	AvgWeightKg *float64  `json:"avgWeight"`
}
