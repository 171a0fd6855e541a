// Package store implements the relational storage layer for shoppr.
//
// A Backend owns the database handle for the lifetime of the process. Work is
// done inside a unit of work: Update and View open a transaction, hand the
// callback a *Tx with per-table accessors, and commit or roll back as a whole.
// SQLite (modernc.org/sqlite) is the default backend; Postgres is reached
// through pgx's database/sql driver. The schema is managed by embedded
// golang-migrate migrations, one set per dialect.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/shoppr/pkg/types"
)

// Backend is the storage context shared by the HTTP and CLI layers.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	dialect  dialect
	db       *sql.DB
	log      *zap.Logger
}

// NewBackend creates a new backend instance. The backend is not attached;
// call Attach with a Config to open the database. A nil logger discards logs.
func NewBackend(log *zap.Logger) *Backend {
	if log == nil {
		log = zap.NewNop()
	}
	return &Backend{log: log.Named("store")}
}

// Attach opens the database described by config and applies any pending
// migrations. For SQLite, DataDir is created if it does not exist.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	d, err := dialectFor(config)
	if err != nil {
		return err
	}

	if err := ensureDataDir(config); err != nil {
		return err
	}

	version, err := migrateUp(d)
	if err != nil {
		return err
	}
	b.log.Info("schema ready", zap.String("backend", d.name), zap.Uint("version", version))

	db, err := sql.Open(d.driver, d.dsn)
	if err != nil {
		return fmt.Errorf("opening %s database: %w", d.name, err)
	}
	if d.name == types.BackendSQLite {
		// One writer at a time; avoids SQLITE_BUSY between pooled connections.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("connecting to %s database: %w", d.name, err)
	}

	b.db = db
	b.dialect = d
	b.config = config
	b.attached = true
	return nil
}

// Detach closes the database. After Detach, all operations return ErrDetached.
// Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	return nil
}

// Config returns the configuration the backend was attached with.
func (b *Backend) Config() types.Config {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.config
}

// Ping verifies the database is reachable.
func (b *Backend) Ping(ctx context.Context) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrDetached
	}
	return b.db.PingContext(ctx)
}

// Update runs fn in a read-write unit of work. The transaction commits when fn
// returns nil and rolls back when fn returns an error or panics.
func (b *Backend) Update(ctx context.Context, fn func(*Tx) error) error {
	return b.run(ctx, true, fn)
}

// View runs fn in a unit of work that is always rolled back.
func (b *Backend) View(ctx context.Context, fn func(*Tx) error) error {
	return b.run(ctx, false, fn)
}

func (b *Backend) run(ctx context.Context, commit bool, fn func(*Tx) error) (err error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrDetached
	}

	sqlTx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&Tx{ctx: ctx, tx: sqlTx, dialect: b.dialect}); err != nil {
		_ = sqlTx.Rollback()
		return err
	}
	if !commit {
		return sqlTx.Rollback()
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
