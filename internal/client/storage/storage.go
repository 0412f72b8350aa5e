// Package storage opens the local client database and prepares the value
// sealer used for everything the session store persists.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/hikelog/internal/client/migrations"
	"github.com/dmitrijs2005/hikelog/internal/client/repositories/kv"
	"github.com/dmitrijs2005/hikelog/internal/cryptox"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // pure-Go SQLite driver, registered as "sqlite"
)

// SaltKey is the kv entry holding the key-derivation salt. It is created on
// first use and survives logouts.
const SaltKey = "storage.salt"

// Migrate applies the embedded schema migrations. Running it twice is a no-op.
func Migrate(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Open opens (creating if needed) the SQLite database at dsn and migrates it.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// a single connection keeps ":memory:" databases coherent and
	// serialises writers on file databases
	db.SetMaxOpenConns(1)

	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewSealer derives the storage key from secret and the per-database salt.
func NewSealer(ctx context.Context, db *sql.DB, secret []byte) (*cryptox.Sealer, error) {
	repo := kv.New(db)

	salt, err := repo.Get(ctx, SaltKey)
	if err != nil {
		return nil, fmt.Errorf("read salt: %w", err)
	}
	if salt == nil {
		if salt, err = cryptox.RandomBytes(cryptox.SaltSize); err != nil {
			return nil, err
		}
		if err := repo.Set(ctx, SaltKey, salt); err != nil {
			return nil, fmt.Errorf("store salt: %w", err)
		}
	}

	return cryptox.NewSealer(cryptox.DeriveKey(secret, salt))
}
