package boss

import (
	"context"
	"sync"
	"time"

	"github.com/dvranic/runquest/internal/oracle"
	"github.com/dvranic/runquest/internal/telemetry/tracing"
	"github.com/dvranic/runquest/internal/training"
	"github.com/dvranic/runquest/pkg"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=boss_test

// rollupWeeks is the window fed into the outcome predictions.
const rollupWeeks = 4

type goalsRepo interface {
	Add(ctx context.Context, goal Goal) (*Goal, error)
	ListActive(ctx context.Context, userID string, today time.Time) ([]Goal, error)
	Complete(ctx context.Context, goalID int) error
}

type trainingAnalyzer interface {
	Stats(ctx context.Context, userID string) (training.TrainingStats, error)
	WeeklyRollup(ctx context.Context, userID string, weekCount int) ([]training.WeeklyBucket, error)
}

type outcomePredictor interface {
	PredictGoalOutcome(ctx context.Context, req oracle.PredictionRequest) oracle.PredictionResult
}

type CreateGoalParams struct {
	UserID      string
	Name        string
	Type        GoalType
	TargetValue float64
	TargetDate  string // YYYY-MM-DD
}

// GoalStatus is one goal enriched with progress and the model's outcome
// estimate, as shown on the boss screen.
type GoalStatus struct {
	Goal
	Progress                  float64 `json:"progress"`
	CurrentValue              float64 `json:"currentValue"`
	DaysRemaining             *int    `json:"daysRemaining"`
	WinProbability            int     `json:"winProbability"`
	RecommendedWeeklyDistance float64 `json:"recommendedWeeklyDistance"`
	Comment                   string  `json:"comment"`
}

type Service struct {
	repo      goalsRepo
	analyzer  trainingAnalyzer
	predictor outcomePredictor

	// NowFunc can be swapped in tests to pin "today"
	NowFunc func() time.Time
}

func NewService(repo goalsRepo, analyzer trainingAnalyzer, predictor outcomePredictor) *Service {
	return &Service{
		repo:      repo,
		analyzer:  analyzer,
		predictor: predictor,
		NowFunc:   time.Now,
	}
}

func (s *Service) CreateGoal(ctx context.Context, params CreateGoalParams) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.boss.createGoal")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("goal.name", params.Name))

	if params.Name == "" {
		return nil, pkg.NewValidationError("goal name must not be empty")
	}
	if !params.Type.IsValid() {
		return nil, pkg.NewValidationError("invalid goal type: %q", params.Type)
	}
	if params.TargetValue <= 0 {
		return nil, pkg.NewValidationError("target value must be greater than 0, got %f", params.TargetValue)
	}
	targetDate, err := time.Parse(time.DateOnly, params.TargetDate)
	if err != nil {
		return nil, pkg.NewValidationError("invalid target date %q, want YYYY-MM-DD", params.TargetDate)
	}
	now := s.NowFunc()
	if targetDate.Before(training.DayStart(now)) {
		return nil, pkg.NewValidationError("target date %s is in the past", params.TargetDate)
	}

	return s.repo.Add(ctx, Goal{
		UserID:      params.UserID,
		Name:        params.Name,
		Type:        params.Type,
		TargetValue: params.TargetValue,
		TargetDate:  &targetDate,
		CreatedAt:   now,
	})
}

func (s *Service) CompleteGoal(ctx context.Context, goalID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.boss.completeGoal")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("goal.id", goalID))

	return s.repo.Complete(ctx, goalID)
}

// Status lists the active goals, each with its progress and a model
// prediction. The stats are computed once; the predictions then run
// concurrently, one goroutine per goal. A failing prediction degrades
// to the fallback inside the predictor, so one sick goal never takes
// the others down.
func (s *Service) Status(ctx context.Context, userID string) (_ []GoalStatus, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.boss.status")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	now := s.NowFunc()
	goals, err := s.repo.ListActive(ctx, userID, training.DayStart(now))
	if err != nil {
		return nil, err
	}
	if len(goals) == 0 {
		return []GoalStatus{}, nil
	}

	stats, err := s.analyzer.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}
	buckets, err := s.analyzer.WeeklyRollup(ctx, userID, rollupWeeks)
	if err != nil {
		return nil, err
	}

	var weeklyAverage, monthlyDistance float64
	for _, b := range buckets {
		monthlyDistance += b.DistanceKm
	}
	if len(buckets) > 0 {
		weeklyAverage = monthlyDistance / float64(len(buckets))
	}
	continuityRate := float64(stats.ContinuousDays) / 7 * 100

	statuses := make([]GoalStatus, len(goals))
	var wg sync.WaitGroup
	for i, goal := range goals {
		currentValue := CurrentValueFor(goal.Type, stats)
		progress := ProgressPercent(currentValue, goal.TargetValue)

		var daysRemaining *int
		predictionDays := 0
		if goal.TargetDate != nil {
			days := DaysRemaining(*goal.TargetDate, now)
			daysRemaining = &days
			predictionDays = days
		}

		statuses[i] = GoalStatus{
			Goal:          goal,
			Progress:      progress,
			CurrentValue:  currentValue,
			DaysRemaining: daysRemaining,
		}

		wg.Add(1)
		go func(i int, goal Goal) {
			defer wg.Done()
			prediction := s.predictor.PredictGoalOutcome(ctx, oracle.PredictionRequest{
				GoalName:        goal.Name,
				TargetValue:     goal.TargetValue,
				CurrentValue:    currentValue,
				ProgressPercent: progress,
				DaysRemaining:   predictionDays,
				WeeklyAverage:   weeklyAverage,
				MonthlyDistance: monthlyDistance,
				ContinuityRate:  continuityRate,
			})
			statuses[i].WinProbability = prediction.WinRate
			statuses[i].RecommendedWeeklyDistance = prediction.RecommendedWeeklyDistance
			statuses[i].Comment = prediction.Comment
		}(i, goal)
	}
	wg.Wait()

	return statuses, nil
}
