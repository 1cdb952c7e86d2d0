package training

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

var ErrRecordNotFound = errors.New("training record not found")

type RecordParams struct {
	UserID string
	Kind   *Kind
	From   *time.Time
	To     *time.Time
}

type ListParams struct {
	RecordParams
	Page int
	Size int
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, record Record) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO training_record
			(user_id, date, kind, distance_km, duration_seconds, pace, weight_kg, workout_detail, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id;`,
		record.UserID, DayStart(record.Date), record.Kind,
		record.DistanceKm, record.DurationSeconds, record.Pace,
		record.WeightKg, record.WorkoutDetail, record.CreatedAt,
	).Scan(&record.ID)
	if err != nil {
		return nil, fmt.Errorf("insert training record: %w", err)
	}

	span.SetAttributes(attribute.Int("record.id", record.ID))

	return &record, nil
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, date, kind, distance_km, duration_seconds, pace, weight_kg, workout_detail, created_at
			FROM training_record
			WHERE id = $1;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	records, err := r.rows2records(rows)
	if err != nil {
		return nil, err
	}

	if len(records) != 1 {
		return nil, ErrRecordNotFound
	}

	return &records[0], nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM training_record WHERE id = $1;`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// ListAll returns all records matching the given params, most recent date first.
func (r *Repo) ListAll(ctx context.Context, params RecordParams) (_ []Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.listall")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", params.UserID))
	if params.Kind != nil {
		span.SetAttributes(attribute.String("kind", params.Kind.String()))
	}
	if params.From != nil {
		span.SetAttributes(attribute.String("from", params.From.String()))
	}
	if params.To != nil {
		span.SetAttributes(attribute.String("to", params.To.String()))
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, date, kind, distance_km, duration_seconds, pace, weight_kg, workout_detail, created_at
			FROM training_record
			WHERE user_id = $1
			AND ($2::text IS NULL OR kind = $2)
			AND ($3::date IS NULL OR date >= $3)
			AND ($4::date IS NULL OR date <= $4)
			ORDER BY date DESC, id DESC;`,
		params.UserID, params.Kind, params.From, params.To,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	records, err := r.rows2records(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2records: %w", err)
	}
	return records, nil
}

// List returns one page of records, plus the total count over all pages.
func (r *Repo) List(ctx context.Context, params ListParams) (_ []Record, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("page", params.Page))
	span.SetAttributes(attribute.Int("size", params.Size))

	if params.Page < 1 {
		return nil, -1, errors.New("page must be greater than 0")
	}
	if params.Size < 1 {
		return nil, -1, errors.New("size must be greater than 0")
	}

	limit := params.Size
	offset := (params.Page - 1) * params.Size
	countAll, err := r.Count(ctx, params.RecordParams)
	if err != nil {
		return nil, -1, err
	}

	if countAll <= limit {
		limit = countAll
		offset = 0
	}
	if countAll-offset < limit {
		offset = countAll - limit
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, date, kind, distance_km, duration_seconds, pace, weight_kg, workout_detail, created_at
			FROM training_record
			WHERE user_id = $1
			AND ($2::text IS NULL OR kind = $2)
			ORDER BY date DESC, id DESC
			LIMIT $3
			OFFSET $4;`,
		params.UserID, params.Kind, limit, offset,
	)
	if err != nil {
		return nil, -1, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, -1, err
	}

	records, err := r.rows2records(rows)
	if err != nil {
		return nil, -1, err
	}
	return records, countAll, nil
}

func (r *Repo) Count(ctx context.Context, params RecordParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.count")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var count int
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM training_record
			WHERE user_id = $1
			AND ($2::text IS NULL OR kind = $2)
			AND ($3::date IS NULL OR date >= $3)
			AND ($4::date IS NULL OR date <= $4);`,
		params.UserID, params.Kind, params.From, params.To,
	).Scan(&count)
	if err != nil {
		return -1, fmt.Errorf("count training records: %w", err)
	}
	return count, nil
}

func (r *Repo) rows2records(rows pgx.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Date, &rec.Kind,
			&rec.DistanceKm, &rec.DurationSeconds, &rec.Pace,
			&rec.WeightKg, &rec.WorkoutDetail, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if records == nil {
		records = make([]Record, 0)
	}

	return records, nil
}
