package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slash-command-bot/internal/core/domain"
	"slash-command-bot/internal/metrics"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row
}

const (
	createSchemaSQL = `CREATE TABLE IF NOT EXISTS guild_settings (
	guild_id   TEXT PRIMARY KEY,
	greeting   TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

	saveGreetingSQL = `INSERT INTO guild_settings (guild_id, greeting, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (guild_id) DO UPDATE SET greeting = EXCLUDED.greeting, updated_at = now()`

	getGuildSettingsSQL = `SELECT guild_id, greeting, updated_at FROM guild_settings WHERE guild_id = $1`

	deleteGuildSettingsSQL = `DELETE FROM guild_settings WHERE guild_id = $1`
)

type PostgresStore struct {
	pool *pgxpool.Pool
	db   DBTX
}

func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &PostgresStore{pool: pool, db: pool}
	if err := store.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createSchemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) SaveGreeting(ctx context.Context, guildID, greeting string) error {
	_, err := s.db.Exec(ctx, saveGreetingSQL, guildID, greeting)
	countQuery("save_greeting", err)
	if err != nil {
		return fmt.Errorf("save greeting: %w", err)
	}
	return nil
}

// GetGuildSettings returns nil without an error when the guild has no stored settings.
func (s *PostgresStore) GetGuildSettings(ctx context.Context, guildID string) (*domain.GuildSettings, error) {
	var (
		settings  domain.GuildSettings
		updatedAt time.Time
	)

	err := s.db.QueryRow(ctx, getGuildSettingsSQL, guildID).Scan(&settings.DiscordGuildID, &settings.Greeting, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		countQuery("get_guild_settings", nil)
		return nil, nil
	}
	countQuery("get_guild_settings", err)
	if err != nil {
		return nil, fmt.Errorf("get guild settings: %w", err)
	}

	settings.UpdatedAt = updatedAt
	return &settings, nil
}

func (s *PostgresStore) DeleteGuildSettings(ctx context.Context, guildID string) error {
	_, err := s.db.Exec(ctx, deleteGuildSettingsSQL, guildID)
	countQuery("delete_guild_settings", err)
	if err != nil {
		return fmt.Errorf("delete guild settings: %w", err)
	}
	return nil
}

func countQuery(query string, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	metrics.GuildSettingsQueries.WithLabelValues(query, status).Inc()
}
