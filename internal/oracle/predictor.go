package oracle

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dvranic/runquest/internal/telemetry/metrics"
	"github.com/dvranic/runquest/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=predictor_mocks_test.go -package=oracle_test

type textGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// PredictionRequest carries everything the model gets to see about a goal.
type PredictionRequest struct {
	GoalName        string
	TargetValue     float64
	CurrentValue    float64
	ProgressPercent float64
	DaysRemaining   int
	WeeklyAverage   float64
	MonthlyDistance float64
	ContinuityRate  float64
}

type PredictionResult struct {
	WinRate                   int     `json:"winRate"`
	RecommendedWeeklyDistance float64 `json:"recommendedWeeklyDistance"`
	Comment                   string  `json:"comment"`
}

// FallbackPrediction is returned whenever the model cannot be reached or
// answers with something unusable. A goal screen with a neutral guess
// beats one with an error on it.
func FallbackPrediction() PredictionResult {
	return PredictionResult{
		WinRate:                   50,
		RecommendedWeeklyDistance: 10,
		Comment:                   "prediction unavailable, keep training",
	}
}

// Predictor asks the model for a goal outcome estimate. It makes a single
// attempt and degrades to FallbackPrediction on any failure; callers never
// see an error from it.
type Predictor struct {
	generator textGenerator
	metrics   *metrics.Manager
}

func NewPredictor(generator textGenerator, metricsManager *metrics.Manager) *Predictor {
	return &Predictor{
		generator: generator,
		metrics:   metricsManager,
	}
}

func (p *Predictor) PredictGoalOutcome(ctx context.Context, req PredictionRequest) PredictionResult {
	ctx, span := tracing.GlobalTracer.Start(ctx, "oracle.predictGoalOutcome")
	defer span.End()
	span.SetAttributes(attribute.String("goal", req.GoalName))

	result, err := p.predict(ctx, req)
	if err != nil {
		log.Warnf("goal outcome prediction for [%s] failed, using fallback: %s", req.GoalName, err)
		p.metrics.CounterPredictionFallbacks.Inc()
		span.SetAttributes(attribute.Bool("fallback", true))
		return FallbackPrediction()
	}
	return *result
}

func (p *Predictor) predict(ctx context.Context, req PredictionRequest) (*PredictionResult, error) {
	text, err := p.generator.GenerateText(ctx, predictionPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	rawJson, ok := FirstJSONObject(text)
	if !ok {
		return nil, fmt.Errorf("no json object in model response")
	}

	// pointers so that missing fields are detectable
	var parsed struct {
		WinRate                   *int     `json:"winRate"`
		RecommendedWeeklyDistance *float64 `json:"recommendedWeeklyDistance"`
		Comment                   *string  `json:"comment"`
	}
	if err := json.Unmarshal([]byte(rawJson), &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal model response: %w", err)
	}

	if parsed.WinRate == nil || *parsed.WinRate < 0 || *parsed.WinRate > 100 {
		return nil, fmt.Errorf("invalid win rate in model response")
	}
	if parsed.RecommendedWeeklyDistance == nil || *parsed.RecommendedWeeklyDistance < 0 {
		return nil, fmt.Errorf("invalid recommended weekly distance in model response")
	}
	if parsed.Comment == nil {
		return nil, fmt.Errorf("missing comment in model response")
	}

	return &PredictionResult{
		WinRate:                   *parsed.WinRate,
		RecommendedWeeklyDistance: *parsed.RecommendedWeeklyDistance,
		Comment:                   *parsed.Comment,
	}, nil
}

func predictionPrompt(req PredictionRequest) string {
	return fmt.Sprintf(`Predict the chance of reaching the running goal "%s".

Goal:
- target value: %.1f km
- current progress: %.1f km (%.1f%%)
- days remaining: %d

Recent training:
- weekly average: %.1f km
- monthly distance: %.1f km
- continuity rate: %.0f%%

Based on this, provide:
1. the chance of success (0-100)
2. the recommended weekly distance in km
3. a short comment (1-2 sentences)

Answer with JSON only:
{
  "winRate": 75,
  "recommendedWeeklyDistance": 15,
  "comment": "keep the current pace and the goal is within reach"
}`,
		req.GoalName,
		req.TargetValue,
		req.CurrentValue,
		req.ProgressPercent,
		req.DaysRemaining,
		req.WeeklyAverage,
		req.MonthlyDistance,
		req.ContinuityRate,
	)
}
