package database

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Migrator runs embedded .sql migrations in alphabetical order, tracking
// applied files in a schema_migrations table.
type Migrator struct {
	pool *pgxpool.Pool
	fsys fs.FS
	log  zerolog.Logger
}

func NewMigrator(pool *pgxpool.Pool, fsys fs.FS, log zerolog.Logger) *Migrator {
	return &Migrator{pool: pool, fsys: fsys, log: log}
}

// Run executes all pending migrations.
func (m *Migrator) Run(ctx context.Context) error {
	if err := m.createMigrationsTable(ctx); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	applied, err := m.appliedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("read applied migrations: %w", err)
	}

	entries, err := fs.ReadDir(m.fsys, ".")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	ran := 0
	for _, name := range files {
		if applied[name] {
			continue
		}

		content, err := fs.ReadFile(m.fsys, name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}

		m.log.Info().Str("migration", name).Msg("running migration")
		if _, err := m.pool.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("run migration %s: %w", name, err)
		}
		if err := m.recordMigration(ctx, name); err != nil {
			return fmt.Errorf("record migration %s: %w", name, err)
		}
		ran++
	}

	m.log.Info().Int("applied", ran).Msg("migrations complete")
	return nil
}

func (m *Migrator) createMigrationsTable(ctx context.Context) error {
	_, err := m.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	return err
}

func (m *Migrator) appliedMigrations(ctx context.Context) (map[string]bool, error) {
	rows, err := m.pool.Query(ctx, `SELECT filename FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		applied[name] = true
	}
	return applied, rows.Err()
}

func (m *Migrator) recordMigration(ctx context.Context, name string) error {
	_, err := m.pool.Exec(ctx, `INSERT INTO schema_migrations(filename) VALUES($1)`, name)
	return err
}
