package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/shoppr/pkg/types"
)

// dbFileName is the SQLite database file inside DataDir.
const dbFileName = "shoppr.db"

// dialect captures what differs between the SQLite and Postgres backends.
// Queries are written once with ? placeholders and rebound per dialect.
type dialect struct {
	name       string // types.BackendSQLite or types.BackendPostgres
	driver     string // database/sql driver name
	dsn        string
	migrations string // directory inside migrationsFS
}

// dialectFor resolves the driver and DSN for a validated config.
func dialectFor(config types.Config) (dialect, error) {
	switch config.Backend {
	case types.BackendSQLite:
		dataDir := config.DataDir
		if dataDir == "" {
			dataDir = "."
		}
		path := filepath.Join(dataDir, dbFileName)
		return dialect{
			name:       types.BackendSQLite,
			driver:     "sqlite",
			dsn:        "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
			migrations: "migrations/sqlite",
		}, nil
	case types.BackendPostgres:
		return dialect{
			name:       types.BackendPostgres,
			driver:     "pgx",
			dsn:        config.DatabaseURL,
			migrations: "migrations/postgres",
		}, nil
	}
	return dialect{}, fmt.Errorf("%w: %q", types.ErrBackendUnknown, config.Backend)
}

// ensureDataDir creates the SQLite data directory. Other backends need none.
func ensureDataDir(config types.Config) error {
	if config.Backend != types.BackendSQLite || config.DataDir == "" {
		return nil
	}
	if err := os.MkdirAll(config.DataDir, 0755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	return nil
}

// rebind rewrites ? placeholders to $1, $2, ... for Postgres. Queries never
// contain a literal question mark.
func (d dialect) rebind(query string) string {
	if d.name != types.BackendPostgres || !strings.Contains(query, "?") {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
