package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// EnsureSchema creates the dashboard tables when they are missing.
// Safe to call at startup; every statement is idempotent.
func EnsureSchema(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			user_name TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS companies (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			owner_id BIGINT NOT NULL REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS links (
			id BIGSERIAL PRIMARY KEY,
			url TEXT NOT NULL,
			canonical_url TEXT NOT NULL UNIQUE,
			platform TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			user_id BIGINT NOT NULL REFERENCES users(id),
			company_id BIGINT NOT NULL REFERENCES companies(id),
			monday_item_id TEXT,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS link_metrics (
			id BIGSERIAL PRIMARY KEY,
			link_id BIGINT NOT NULL UNIQUE REFERENCES links(id) ON DELETE CASCADE,
			views BIGINT NOT NULL DEFAULT 0,
			likes BIGINT NOT NULL DEFAULT 0,
			comments BIGINT NOT NULL DEFAULT 0,
			shares BIGINT NOT NULL DEFAULT 0,
			is_estimated BOOLEAN NOT NULL DEFAULT FALSE,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS monday_connections (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id),
			company_id BIGINT NOT NULL UNIQUE REFERENCES companies(id),
			api_token TEXT NOT NULL,
			workspace_id TEXT NOT NULL DEFAULT '',
			workspace_name TEXT NOT NULL DEFAULT '',
			board_id TEXT NOT NULL DEFAULT '',
			board_name TEXT NOT NULL DEFAULT '',
			views_column_id TEXT NOT NULL DEFAULT '',
			likes_column_id TEXT NOT NULL DEFAULT '',
			comments_column_id TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_links_company ON links (company_id)`,
		`CREATE INDEX IF NOT EXISTS idx_links_user ON links (user_id)`,
	}

	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
