package leaderboard

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	pg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// migrationsTable keeps migrate's bookkeeping apart from other schemas in the database
const migrationsTable = "schema_migrations_leaderboard"

// ConnectPostgres opens a pooled connection and verifies it
func ConnectPostgres(databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	return db, nil
}

// Migrate applies the embedded migrations
func Migrate(db *sqlx.DB) error {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}
	driver, err := pg.WithInstance(db.DB, &pg.Config{MigrationsTable: migrationsTable})
	if err != nil {
		return fmt.Errorf("create migrate driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	v, dirty, _ := m.Version()
	log.Printf("[migrate] schema at version %d (dirty=%v)", v, dirty)
	return nil
}

const (
	upsertScore = `
INSERT INTO scores (name, score) VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE
SET score = GREATEST(scores.score, EXCLUDED.score),
    updated_at = CASE WHEN EXCLUDED.score > scores.score THEN now() ELSE scores.updated_at END`

	selectTop = `SELECT name, score FROM scores ORDER BY score DESC, updated_at ASC LIMIT $1`
)

// SQLStore keeps the best score per name in Postgres
type SQLStore struct {
	db *sqlx.DB
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Submit(ctx context.Context, e Entry) error {
	if err := ValidateScore(e.Score); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, upsertScore, e.Name, e.Score); err != nil {
		return fmt.Errorf("postgres submit: %w", err)
	}
	return nil
}

func (s *SQLStore) Top(ctx context.Context, limit int) ([]Entry, error) {
	var rows []Entry
	if err := s.db.SelectContext(ctx, &rows, selectTop, limit); err != nil {
		return nil, fmt.Errorf("postgres top: %w", err)
	}
	return Normalize(rows), nil
}
