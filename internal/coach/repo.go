package coach

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dvranic/runquest/internal/telemetry/tracing"
	"github.com/dvranic/runquest/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// Character shapes the tone of the coach replies.
type Character string

const (
	CharacterStrict     Character = "strict"
	CharacterGentle     Character = "gentle"
	CharacterAnalytical Character = "analytical"
	CharacterBalanced   Character = "balanced"
)

func (c Character) IsValid() bool {
	switch c {
	case CharacterStrict, CharacterGentle, CharacterAnalytical, CharacterBalanced:
		return true
	default:
		return false
	}
}

// Message is one turn of the coach conversation, user or assistant.
type Message struct {
	ID        int       `json:"id"`
	UserID    string    `json:"userId"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Settings for the single user; a missing row means the defaults.
type Settings struct {
	UserID              string    `json:"userId"`
	CoachCharacter      Character `json:"coachCharacter"`
	NotificationEnabled bool      `json:"notificationEnabled"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func defaultSettings(userID string) *Settings {
	return &Settings{
		UserID:              userID,
		CoachCharacter:      CharacterBalanced,
		NotificationEnabled: true,
	}
}

// UpdateSettingsParams carries only the fields the caller wants changed.
type UpdateSettingsParams struct {
	CoachCharacter      *Character
	NotificationEnabled *bool
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) AddMessage(ctx context.Context, message Message) (_ *Message, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.coach.addMessage")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO conversation_message (user_id, role, content, created_at)
			VALUES ($1, $2, $3, $4)
		RETURNING id;`,
		message.UserID, message.Role, message.Content, message.CreatedAt,
	).Scan(&message.ID)
	if err != nil {
		return nil, fmt.Errorf("insert conversation message: %w", err)
	}

	return &message, nil
}

// ListRecentMessages returns the last limit messages in chronological
// order, oldest first, ready to be replayed to the model.
func (r *Repo) ListRecentMessages(ctx context.Context, userID string, limit int) (_ []Message, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.coach.listRecentMessages")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))
	span.SetAttributes(attribute.Int("limit", limit))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, role, content, created_at
			FROM conversation_message
			WHERE user_id = $1
			ORDER BY created_at DESC, id DESC
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

	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.UserID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	// reverse into chronological order
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	if messages == nil {
		messages = make([]Message, 0)
	}

	return messages, nil
}

// GetSettings returns the stored settings, or the defaults when the user
// never saved any.
func (r *Repo) GetSettings(ctx context.Context, userID string) (_ *Settings, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.coach.getSettings")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	var s Settings
	err = r.db.QueryRow(
		ctx,
		`SELECT user_id, coach_character, notification_enabled, updated_at
			FROM user_settings
			WHERE user_id = $1;`,
		userID,
	).Scan(&s.UserID, &s.CoachCharacter, &s.NotificationEnabled, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return defaultSettings(userID), nil
		}
		return nil, fmt.Errorf("get user settings: %w", err)
	}

	return &s, nil
}

// UpdateSettings changes the given fields and leaves the rest alone,
// creating the settings row on first use.
func (r *Repo) UpdateSettings(ctx context.Context, userID string, params UpdateSettingsParams) (_ *Settings, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.coach.updateSettings")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	updated, err := r.updateSettingsRow(ctx, userID, params)
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// first save for this user, seed the row with defaults merged in
	defaults := defaultSettings(userID)
	character := defaults.CoachCharacter
	if params.CoachCharacter != nil {
		character = *params.CoachCharacter
	}
	notification := defaults.NotificationEnabled
	if params.NotificationEnabled != nil {
		notification = *params.NotificationEnabled
	}

	var s Settings
	err = r.db.QueryRow(
		ctx,
		`INSERT INTO user_settings (user_id, coach_character, notification_enabled, updated_at)
			VALUES ($1, $2, $3, NOW())
		RETURNING user_id, coach_character, notification_enabled, updated_at;`,
		userID, character, notification,
	).Scan(&s.UserID, &s.CoachCharacter, &s.NotificationEnabled, &s.UpdatedAt)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			// lost the race against another insert, the row exists now
			return r.updateSettingsRow(ctx, userID, params)
		}
		return nil, fmt.Errorf("insert user settings: %w", err)
	}

	return &s, nil
}

func (r *Repo) updateSettingsRow(ctx context.Context, userID string, params UpdateSettingsParams) (*Settings, error) {
	var s Settings
	err := r.db.QueryRow(
		ctx,
		`UPDATE user_settings
			SET coach_character = COALESCE($2::text, coach_character),
				notification_enabled = COALESCE($3::boolean, notification_enabled),
				updated_at = NOW()
			WHERE user_id = $1
		RETURNING user_id, coach_character, notification_enabled, updated_at;`,
		userID, params.CoachCharacter, params.NotificationEnabled,
	).Scan(&s.UserID, &s.CoachCharacter, &s.NotificationEnabled, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
