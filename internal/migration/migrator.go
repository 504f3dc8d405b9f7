// Package migration prepares the MySQL run history database.
package migration

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"goldrun/internal/config"
	"goldrun/internal/storage"
)

// Migrator runs database migrations
type Migrator interface {
	Run(ctx context.Context) error
}

// HistoryMigrator creates the history database and its tables
type HistoryMigrator struct {
	config          *config.Config
	databaseManager *DatabaseManager
	out             io.Writer
}

// NewHistoryMigrator creates a new HistoryMigrator writing progress to out
func NewHistoryMigrator(cfg *config.Config, dbManager *DatabaseManager, out io.Writer) *HistoryMigrator {
	return &HistoryMigrator{
		config:          cfg,
		databaseManager: dbManager,
		out:             out,
	}
}

// Run creates the database when missing and applies the history schema.
func (m *HistoryMigrator) Run(ctx context.Context) error {
	if !m.config.History.Enabled() {
		return fmt.Errorf("no history database configured (set history_dsn or %s)", config.EnvDBDatabase)
	}

	color.New(color.FgCyan).Fprintln(m.out, "Preparing run history database")

	created, err := m.databaseManager.EnsureDatabase(ctx)
	if err != nil {
		return fmt.Errorf("failed to check database: %w", err)
	}
	if created {
		fmt.Fprintln(m.out, "created database")
	}

	store, err := storage.OpenHistory(ctx, m.config.History)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}
	color.New(color.FgGreen).Fprintf(m.out, "✓ history schema ready (%d tables)\n", len(storage.Schema))
	return nil
}
