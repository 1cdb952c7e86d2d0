package coach

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dvranic/runquest/internal/oracle"
	"github.com/dvranic/runquest/internal/telemetry/tracing"
	"github.com/dvranic/runquest/internal/training"
	"github.com/dvranic/runquest/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=coach_test

// ErrOracleUnavailable marks a chat that failed because the model could
// not answer. Unlike predictions, chat has no sensible fallback.
var ErrOracleUnavailable = errors.New("oracle unavailable")

const (
	// HistoryLimit caps how much prior conversation is replayed to the model.
	HistoryLimit = 20

	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type conversationRepo interface {
	AddMessage(ctx context.Context, message Message) (*Message, error)
	ListRecentMessages(ctx context.Context, userID string, limit int) ([]Message, error)
	GetSettings(ctx context.Context, userID string) (*Settings, error)
	UpdateSettings(ctx context.Context, userID string, params UpdateSettingsParams) (*Settings, error)
}

type statsProvider interface {
	Stats(ctx context.Context, userID string) (training.TrainingStats, error)
}

type chatGenerator interface {
	GenerateChat(ctx context.Context, history []oracle.ChatTurn, message string) (string, error)
}

// ChatResult is the coach reply plus the stats snapshot the reply was
// based on, so the UI can render both without a second round trip.
type ChatResult struct {
	Reply string                 `json:"reply"`
	Stats training.TrainingStats `json:"stats"`
}

type Service struct {
	repo      conversationRepo
	stats     statsProvider
	generator chatGenerator

	// NowFunc can be swapped in tests to pin the message timestamps
	NowFunc func() time.Time
}

func NewService(repo conversationRepo, stats statsProvider, generator chatGenerator) *Service {
	return &Service{
		repo:      repo,
		stats:     stats,
		generator: generator,
		NowFunc:   time.Now,
	}
}

// Chat runs one coach exchange: replay the recent history, ask the model,
// store both sides of the exchange. Failing to store the messages is
// logged but does not fail the chat; the reply already happened.
func (s *Service) Chat(ctx context.Context, userID, message string) (_ *ChatResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.coach.chat")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	if message == "" {
		return nil, pkg.NewValidationError("message must not be empty")
	}

	settings, err := s.repo.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats, err := s.stats.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}
	history, err := s.repo.ListRecentMessages(ctx, userID, HistoryLimit)
	if err != nil {
		return nil, err
	}

	turns := make([]oracle.ChatTurn, 0, len(history))
	for _, m := range history {
		role := oracle.RoleModel
		if m.Role == RoleUser {
			role = oracle.RoleUser
		}
		turns = append(turns, oracle.ChatTurn{Role: role, Text: m.Content})
	}

	reply, err := s.generator.GenerateChat(ctx, turns, chatPrompt(settings.CoachCharacter, stats, message))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrOracleUnavailable, err)
	}

	now := s.NowFunc()
	if _, err := s.repo.AddMessage(ctx, Message{
		UserID:    userID,
		Role:      RoleUser,
		Content:   message,
		CreatedAt: now,
	}); err != nil {
		log.Errorf("failed to save user coach message: %s", err)
	}
	if _, err := s.repo.AddMessage(ctx, Message{
		UserID:    userID,
		Role:      RoleAssistant,
		Content:   reply,
		CreatedAt: now,
	}); err != nil {
		log.Errorf("failed to save assistant coach message: %s", err)
	}

	return &ChatResult{
		Reply: reply,
		Stats: stats,
	}, nil
}

func (s *Service) GetSettings(ctx context.Context, userID string) (*Settings, error) {
	return s.repo.GetSettings(ctx, userID)
}

func (s *Service) UpdateSettings(ctx context.Context, userID string, params UpdateSettingsParams) (*Settings, error) {
	if params.CoachCharacter != nil && !params.CoachCharacter.IsValid() {
		return nil, pkg.NewValidationError("invalid coach character: %q", *params.CoachCharacter)
	}
	return s.repo.UpdateSettings(ctx, userID, params)
}

var characterPrompts = map[Character]string{
	CharacterStrict:     "You are a strict coach. Guide firmly based on the data, no coddling, focus on hitting the goal.",
	CharacterGentle:     "You are a gentle, encouraging coach. Acknowledge the effort and make suggestions that do not overreach.",
	CharacterAnalytical: "You are a data analyst. Analyze objectively and advise based on the numbers, keep emotion out of it.",
	CharacterBalanced:   "You are a balanced coach. Lean on the data but do not forget the encouragement.",
}

func chatPrompt(character Character, stats training.TrainingStats, message string) string {
	recentWeight := "unknown"
	if stats.RecentWeightKg != nil {
		recentWeight = fmt.Sprintf("%.1f kg", *stats.RecentWeightKg)
	}

	return fmt.Sprintf(`You are an AI coach supporting marathon training.

Character: %s

The runner's training data:
- total distance: %.1f km
- this week: %.1f km
- recent weight: %s
- active days in the last 7: %d

Rules:
1. remember the prior conversation and keep the context
2. give concrete advice grounded in the data
3. keep the runner's goals in mind
4. answer short and to the point, 3-5 sentences

Runner's message: %s`,
		characterPrompts[character],
		stats.TotalDistanceKm,
		stats.WeeklyDistanceKm,
		recentWeight,
		stats.ContinuousDays,
		message,
	)
}
