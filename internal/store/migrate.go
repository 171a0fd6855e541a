package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/mesh-intelligence/shoppr/pkg/types"
)

//go:embed migrations
var migrationsFS embed.FS

// newMigrate builds a migrate instance over the embedded migrations of d on a
// dedicated connection. Closing the instance closes that connection.
func newMigrate(d dialect) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, d.migrations)
	if err != nil {
		return nil, fmt.Errorf("opening embedded migrations: %w", err)
	}

	db, err := sql.Open(d.driver, d.dsn)
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("opening %s database: %w", d.name, err)
	}

	var driver database.Driver
	switch d.name {
	case types.BackendSQLite:
		driver, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	case types.BackendPostgres:
		driver, err = migratepgx.WithInstance(db, &migratepgx.Config{})
	default:
		err = types.ErrBackendUnknown
	}
	if err != nil {
		db.Close()
		src.Close()
		return nil, fmt.Errorf("creating migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, d.name, driver)
	if err != nil {
		driver.Close()
		src.Close()
		return nil, fmt.Errorf("creating migrate instance: %w", err)
	}
	return m, nil
}

// migrateUp applies every pending migration and returns the schema version.
func migrateUp(d dialect) (uint, error) {
	m, err := newMigrate(d)
	if err != nil {
		return 0, err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("applying migrations: %w", err)
	}
	return schemaVersion(m)
}

func schemaVersion(m *migrate.Migrate) (uint, error) {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("schema version %d is dirty", version)
	}
	return version, nil
}

// MigrateUp applies pending migrations without attaching a backend.
func MigrateUp(config types.Config) (uint, error) {
	if err := config.Validate(); err != nil {
		return 0, err
	}
	d, err := dialectFor(config)
	if err != nil {
		return 0, err
	}
	if err := ensureDataDir(config); err != nil {
		return 0, err
	}
	return migrateUp(d)
}

// MigrateDown reverts every migration, dropping all shoppr tables.
func MigrateDown(config types.Config) error {
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
	m, err := newMigrate(d)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("reverting migrations: %w", err)
	}
	return nil
}
