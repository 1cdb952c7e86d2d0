package training

import (
	"context"
	"time"

	"github.com/dvranic/runquest/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=stats_mocks_test.go -package=training_test

type recordsRepo interface {
	ListAll(ctx context.Context, params RecordParams) (_ []Record, err error)
}

// Analyzer derives the aggregate stats and the weekly chart series from
// the raw records. It never writes anything.
type Analyzer struct {
	repo recordsRepo

	// NowFunc can be swapped in tests to pin "today"
	NowFunc func() time.Time
}

func NewAnalyzer(repo recordsRepo) *Analyzer {
	return &Analyzer{
		repo:    repo,
		NowFunc: time.Now,
	}
}

// Stats computes the home screen aggregates:
//   - total distance over all running records
//   - distance ran in the current week (Monday-first)
//   - the most recent weight report (nil if there is none)
//   - distinct active days in the trailing 7-day window, today included
//
// A user with no records gets zeros/nil back, not an error.
func (a *Analyzer) Stats(ctx context.Context, userID string) (_ TrainingStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.training.stats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	records, err := a.repo.ListAll(ctx, RecordParams{UserID: userID})
	if err != nil {
		return TrainingStats{}, err
	}

	now := a.NowFunc()
	today := DayStart(now)
	weekStart := WeekStart(now)
	windowStart := today.AddDate(0, 0, -6)

	var stats TrainingStats
	activeDays := make(map[time.Time]struct{})
	var recentWeightRec *Record

	for i := range records {
		rec := records[i]
		day := DayStart(rec.Date)

		if rec.Kind == KindRunning && rec.DistanceKm != nil {
			stats.TotalDistanceKm += *rec.DistanceKm
			if !day.Before(weekStart) {
				stats.WeeklyDistanceKm += *rec.DistanceKm
			}
		}

		if rec.Kind == KindWeight && rec.WeightKg != nil {
			if recentWeightRec == nil ||
				day.After(DayStart(recentWeightRec.Date)) ||
				(day.Equal(DayStart(recentWeightRec.Date)) && rec.ID > recentWeightRec.ID) {
				recentWeightRec = &records[i]
			}
		}

		if !day.Before(windowStart) && !day.After(today) {
			activeDays[day] = struct{}{}
		}
	}

	if recentWeightRec != nil {
		stats.RecentWeightKg = recentWeightRec.WeightKg
	}
	stats.ContinuousDays = len(activeDays)

	return stats, nil
}

// WeeklyRollup buckets records into calendar weeks, covering the trailing
// weekCount weeks up to and including the current one, ascending by week
// start. Every week in the window is present (zero-filled): distance 0 and
// nil average weight when nothing was recorded. A weekCount below 1 is a
// caller error and yields an empty series, not a failure.
func (a *Analyzer) WeeklyRollup(ctx context.Context, userID string, weekCount int) (_ []WeeklyBucket, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.training.weeklyRollup")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))
	span.SetAttributes(attribute.Int("week_count", weekCount))

	if weekCount < 1 {
		return []WeeklyBucket{}, nil
	}

	currentWeek := WeekStart(a.NowFunc())
	oldestWeek := currentWeek.AddDate(0, 0, -7*(weekCount-1))

	records, err := a.repo.ListAll(ctx, RecordParams{
		UserID: userID,
		From:   &oldestWeek,
	})
	if err != nil {
		return nil, err
	}

	type weekAccum struct {
		distance    float64
		weightSum   float64
		weightCount int
	}
	week2accum := make(map[time.Time]*weekAccum, weekCount)
	for i := 0; i < weekCount; i++ {
		week2accum[oldestWeek.AddDate(0, 0, 7*i)] = &weekAccum{}
	}

	for _, rec := range records {
		week := WeekStart(rec.Date)
		accum, ok := week2accum[week]
		if !ok {
			// outside the requested window
			continue
		}
		switch rec.Kind {
		case KindRunning:
			if rec.DistanceKm != nil {
				accum.distance += *rec.DistanceKm
			}
		case KindWeight:
			if rec.WeightKg != nil {
				accum.weightSum += *rec.WeightKg
				accum.weightCount++
			}
		}
	}

	buckets := make([]WeeklyBucket, 0, weekCount)
	for i := 0; i < weekCount; i++ {
		week := oldestWeek.AddDate(0, 0, 7*i)
		accum := week2accum[week]
		bucket := WeeklyBucket{
			WeekStart:  week,
			DistanceKm: accum.distance,
		}
		if accum.weightCount > 0 {
			avg := accum.weightSum / float64(accum.weightCount)
			bucket.AvgWeightKg = &avg
		}
		buckets = append(buckets, bucket)
	}

	return buckets, nil
}
