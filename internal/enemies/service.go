package enemies

import (
	"context"
	"time"

	"github.com/dvranic/runquest/internal/telemetry/tracing"
	"github.com/dvranic/runquest/internal/training"
	"github.com/dvranic/runquest/pkg"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=enemies_test

// RecentDefeatsShown caps the defeat history returned with the status.
const RecentDefeatsShown = 10

type defeatsRepo interface {
	Add(ctx context.Context, defeat Defeat) (*Defeat, error)
	List(ctx context.Context, userID string, limit int) ([]Defeat, error)
	Count(ctx context.Context, userID string) (int, error)
}

type statsProvider interface {
	Stats(ctx context.Context, userID string) (training.TrainingStats, error)
}

// Status is the enemy screen payload: where the runner stands on the
// experience curve, plus the recent kill log.
type Status struct {
	ExperienceState
	Progress    float64  `json:"progress"`
	DefeatCount int      `json:"defeatCount"`
	Defeats     []Defeat `json:"defeats"`
}

type Service struct {
	repo  defeatsRepo
	stats statsProvider

	// NowFunc can be swapped in tests to pin the defeat timestamps
	NowFunc func() time.Time
}

func NewService(repo defeatsRepo, stats statsProvider) *Service {
	return &Service{
		repo:    repo,
		stats:   stats,
		NowFunc: time.Now,
	}
}

func (s *Service) Status(ctx context.Context, userID string) (_ *Status, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.enemies.status")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	stats, err := s.stats.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}

	expState := ExperienceFromDistance(stats.TotalDistanceKm)

	defeatCount, err := s.repo.Count(ctx, userID)
	if err != nil {
		return nil, err
	}
	defeats, err := s.repo.List(ctx, userID, RecentDefeatsShown)
	if err != nil {
		return nil, err
	}

	return &Status{
		ExperienceState: expState,
		Progress:        expState.ProgressPercent(),
		DefeatCount:     defeatCount,
		Defeats:         defeats,
	}, nil
}

// RecordDefeat appends one defeat to the log. Defeats are reported by the
// caller when the fight animation finishes; nothing here derives them from
// level crossings.
func (s *Service) RecordDefeat(ctx context.Context, userID string, enemyLevel, experienceRequired int) (_ *Defeat, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.enemies.recordDefeat")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))
	span.SetAttributes(attribute.Int("enemy_level", enemyLevel))

	if enemyLevel <= 0 {
		return nil, pkg.NewValidationError("enemy level must be greater than 0, got %d", enemyLevel)
	}
	if experienceRequired <= 0 {
		return nil, pkg.NewValidationError("experience required must be greater than 0, got %d", experienceRequired)
	}

	return s.repo.Add(ctx, Defeat{
		UserID:             userID,
		EnemyLevel:         enemyLevel,
		ExperienceRequired: experienceRequired,
		DefeatedAt:         s.NowFunc(),
	})
}
