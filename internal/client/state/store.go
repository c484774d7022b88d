package state

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/bookgenie/bookgenie-cli/internal/client/state/migrations"
)

// Persisted keys. The token is written only by the session manager, the tab
// only by the view-state router.
const (
	keyToken   = "bookgenie_token"
	keyLastTab = "bookgenie_last_tab"
)

// Store is the typed facade over the key/value repository.
type Store struct {
	db   *sql.DB
	repo Repository
}

// Open opens (creating if needed) the sqlite state database at dsn and runs
// pending migrations.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating state db: %w", err)
	}

	return &Store{db: db, repo: NewSQLiteRepository(db)}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Token returns the persisted auth token, "" when logged out.
func (s *Store) Token(ctx context.Context) (string, error) {
	return s.repo.Get(ctx, keyToken)
}

func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.repo.Set(ctx, keyToken, token)
}

func (s *Store) ClearToken(ctx context.Context) error {
	return s.repo.Delete(ctx, keyToken)
}

// LastTab returns the persisted last-selected dashboard tab, "" if never set.
func (s *Store) LastTab(ctx context.Context) (string, error) {
	return s.repo.Get(ctx, keyLastTab)
}

func (s *Store) SetLastTab(ctx context.Context, tab string) error {
	return s.repo.Set(ctx, keyLastTab, tab)
}
