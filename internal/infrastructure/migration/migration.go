package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("Starting database migrations")

	migrations := []Migration{
		{
			Name: "create_regen_history",
			Up: func(ctx context.Context, pool *pgxpool.Pool) error {
				return createRegenHistory(ctx, pool)
			},
		},
		{
			Name: "add_error_to_regen_history",
			Up: func(ctx context.Context, pool *pgxpool.Pool) error {
				return addErrorToRegenHistory(ctx, pool)
			},
		},
	}

	for _, m := range migrations {
		if err := m.Up(ctx, pool); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return err
		}
		slog.Info("Migration completed", "name", m.Name)
	}

	slog.Info("All migrations completed successfully")
	return nil
}

// Migration represents a database migration
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

// createRegenHistory creates the regeneration history table if it doesn't exist
func createRegenHistory(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE TABLE IF NOT EXISTS regen_history (
			id UUID PRIMARY KEY,
			company TEXT NOT NULL,
			status TEXT NOT NULL,
			view_url TEXT,
			document JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`

	if _, err := pool.Exec(ctx, query); err != nil {
		// Log the error but don't fail - the table may already exist
		slog.Warn("Error creating regen_history table (may already exist)", "error", err)
		return nil
	}

	slog.Info("Successfully created regen_history table")
	return nil
}

// addErrorToRegenHistory adds the error TEXT column if it doesn't exist
func addErrorToRegenHistory(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		ALTER TABLE regen_history
		ADD COLUMN IF NOT EXISTS error TEXT;
	`

	if _, err := pool.Exec(ctx, query); err != nil {
		// Log the error but don't fail - the column may already exist
		slog.Warn("Error adding error column (may already exist)", "error", err)
		return nil
	}

	return nil
}
