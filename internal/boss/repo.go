package boss

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dvranic/runquest/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrGoalNotFound = errors.New("boss goal not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, goal Goal) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.boss.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO boss_goal (user_id, goal_name, goal_type, target_value, target_date, completed, created_at)
			VALUES ($1, $2, $3, $4, $5, false, $6)
		RETURNING id;`,
		goal.UserID, goal.Name, goal.Type, goal.TargetValue, goal.TargetDate, goal.CreatedAt,
	).Scan(&goal.ID)
	if err != nil {
		return nil, fmt.Errorf("insert boss goal: %w", err)
	}

	span.SetAttributes(attribute.Int("goal.id", goal.ID))

	return &goal, nil
}

// ListActive returns the incomplete goals whose target date has not passed
// yet (goals without a date never expire), nearest date first.
func (r *Repo) ListActive(ctx context.Context, userID string, today time.Time) (_ []Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.boss.listActive")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, goal_name, goal_type, target_value, target_date, completed, created_at
			FROM boss_goal
			WHERE user_id = $1
			AND completed = false
			AND (target_date IS NULL OR target_date >= $2)
			ORDER BY target_date ASC NULLS LAST, id ASC;`,
		userID, today,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return r.rows2goals(rows)
}

// Complete marks the goal as beaten. Completion never happens implicitly,
// only through this explicit call.
func (r *Repo) Complete(ctx context.Context, goalID int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.boss.complete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("goal.id", goalID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE boss_goal SET completed = true WHERE id = $1;`,
		goalID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func (r *Repo) rows2goals(rows pgx.Rows) ([]Goal, error) {
	var goals []Goal
	for rows.Next() {
		var g Goal
		if err := rows.Scan(
			&g.ID, &g.UserID, &g.Name, &g.Type,
			&g.TargetValue, &g.TargetDate, &g.Completed, &g.CreatedAt,
		); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}

	if goals == nil {
		goals = make([]Goal, 0)
	}

	return goals, nil
}
