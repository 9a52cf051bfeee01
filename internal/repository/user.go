package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/kosmosbot/kosmos/internal/database"
	"github.com/kosmosbot/kosmos/internal/models"
)

type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	user := &models.User{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT telegram_id, username, language, time_format, timezone, created_at
		 FROM users WHERE telegram_id = $1`,
		telegramID,
	).Scan(&user.TelegramID, &user.Username, &user.Language, &user.TimeFormat, &user.Timezone, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetOrCreate looks the user up and registers them on first contact. The
// second return value reports whether the row was just created, so the start
// flow can tell a new user from a returning one.
func (r *UserRepository) GetOrCreate(ctx context.Context, telegramID int64, username string) (*models.User, bool, error) {
	user, err := r.GetByTelegramID(ctx, telegramID)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, err
	}

	user = &models.User{}
	err = r.db.Pool.QueryRow(ctx,
		`INSERT INTO users (telegram_id, username) VALUES ($1, $2)
		 ON CONFLICT (telegram_id) DO UPDATE SET username = EXCLUDED.username
		 RETURNING telegram_id, username, language, time_format, timezone, created_at`,
		telegramID, username,
	).Scan(&user.TelegramID, &user.Username, &user.Language, &user.TimeFormat, &user.Timezone, &user.CreatedAt)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (r *UserRepository) UpdateLanguage(ctx context.Context, telegramID int64, language string) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE users SET language = $1 WHERE telegram_id = $2`,
		language, telegramID,
	)
	return err
}

func (r *UserRepository) UpdateTimeFormat(ctx context.Context, telegramID int64, timeFormat string) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE users SET time_format = $1 WHERE telegram_id = $2`,
		timeFormat, telegramID,
	)
	return err
}

func (r *UserRepository) UpdateTimezone(ctx context.Context, telegramID int64, timezone string) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE users SET timezone = $1 WHERE telegram_id = $2`,
		timezone, telegramID,
	)
	return err
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}
