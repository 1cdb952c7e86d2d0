package enemies

import (
	"context"
	"fmt"
	"time"

	"github.com/dvranic/runquest/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// Defeat is one slain enemy, appended when the UI finishes the fight
// animation. The log is append-only.
type Defeat struct {
	ID                 int       `json:"id"`
	UserID             string    `json:"userId"`
	EnemyLevel         int       `json:"enemyLevel"`
	ExperienceRequired int       `json:"experienceRequired"`
	DefeatedAt         time.Time `json:"defeatedAt"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, defeat Defeat) (_ *Defeat, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.enemies.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO enemy_defeat (user_id, enemy_level, experience_required, defeated_at)
			VALUES ($1, $2, $3, $4)
		RETURNING id;`,
		defeat.UserID, defeat.EnemyLevel, defeat.ExperienceRequired, defeat.DefeatedAt,
	).Scan(&defeat.ID)
	if err != nil {
		return nil, fmt.Errorf("insert enemy defeat: %w", err)
	}

	span.SetAttributes(attribute.Int("defeat.id", defeat.ID))

	return &defeat, nil
}

// List returns the most recent defeats first, at most limit of them.
func (r *Repo) List(ctx context.Context, userID string, limit int) (_ []Defeat, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.enemies.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))
	span.SetAttributes(attribute.Int("limit", limit))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, enemy_level, experience_required, defeated_at
			FROM enemy_defeat
			WHERE user_id = $1
			ORDER BY defeated_at DESC, id DESC
			LIMIT $2;`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return r.rows2defeats(rows)
}

func (r *Repo) Count(ctx context.Context, userID string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.enemies.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	var count int
	err = r.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM enemy_defeat WHERE user_id = $1;`,
		userID,
	).Scan(&count)
	if err != nil {
		return -1, fmt.Errorf("count enemy defeats: %w", err)
	}
	return count, nil
}

func (r *Repo) rows2defeats(rows pgx.Rows) ([]Defeat, error) {
	var defeats []Defeat
	for rows.Next() {
		var d Defeat
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.EnemyLevel, &d.ExperienceRequired, &d.DefeatedAt,
		); err != nil {
			return nil, err
		}
		defeats = append(defeats, d)
	}

	if defeats == nil {
		defeats = make([]Defeat, 0)
	}

	return defeats, nil
}
