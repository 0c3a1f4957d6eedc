package storage

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationManager applies the embedded schema migrations to one SQLite
// file.
type MigrationManager struct {
	migrate *migrate.Migrate
	source  source.Driver
}

// MigrationStatus describes where a database stands against the embedded
// migrations.
type MigrationStatus struct {
	Version uint `json:"version"`
	Latest  uint `json:"latest"`
	Dirty   bool `json:"dirty"`
}

// Pending reports whether migrations remain to be applied.
func (s MigrationStatus) Pending() bool {
	return s.Version < s.Latest
}

// NewMigrationManager creates a migration manager for the SQLite file at
// dbPath.
func NewMigrationManager(dbPath string) (*MigrationManager, error) {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to access migrations directory: %w", err)
	}
	src, err := iofs.New(sub, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to create source driver: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite://"+sqliteURLPath(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}
	return &MigrationManager{migrate: m, source: src}, nil
}

// sqliteURLPath turns a file path into the path part of a sqlite:// URL.
// Windows drive paths need forward slashes and a leading slash.
func sqliteURLPath(path string) string {
	p := filepath.ToSlash(path)
	if filepath.IsAbs(path) && p[0] != '/' {
		p = "/" + p
	}
	return p
}

// SetLogger routes migration progress to log at debug level.
func (mm *MigrationManager) SetLogger(log logrus.FieldLogger) {
	mm.migrate.Log = migrateLogger{log: log.WithField("component", "migrate")}
}

// Up applies all pending migrations.
func (mm *MigrationManager) Up() error {
	return ignoreNoChange(mm.migrate.Up(), "apply")
}

// Down rolls back every migration.
func (mm *MigrationManager) Down() error {
	return ignoreNoChange(mm.migrate.Down(), "roll back")
}

// Steps applies n migrations, or rolls back -n when n is negative.
func (mm *MigrationManager) Steps(n int) error {
	return ignoreNoChange(mm.migrate.Steps(n), "step")
}

func ignoreNoChange(err error, op string) error {
	if err == nil || errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return fmt.Errorf("failed to %s migrations: %w", op, err)
}

// Version returns the current migration version and dirty state. An
// unmigrated database reports version 0.
func (mm *MigrationManager) Version() (version uint, dirty bool, err error) {
	version, dirty, err = mm.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, dirty, nil
}

// Status compares the database version with the newest embedded migration.
func (mm *MigrationManager) Status() (MigrationStatus, error) {
	version, dirty, err := mm.Version()
	if err != nil {
		return MigrationStatus{}, err
	}
	latest, err := mm.latest()
	if err != nil {
		return MigrationStatus{}, err
	}
	return MigrationStatus{Version: version, Latest: latest, Dirty: dirty}, nil
}

func (mm *MigrationManager) latest() (uint, error) {
	v, err := mm.source.First()
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read migrations: %w", err)
	}
	for {
		next, err := mm.source.Next(v)
		if errors.Is(err, os.ErrNotExist) {
			return v, nil
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read migrations: %w", err)
		}
		v = next
	}
}

// Close releases the source and database handles.
func (mm *MigrationManager) Close() error {
	srcErr, dbErr := mm.migrate.Close()
	return errors.Join(srcErr, dbErr)
}

// migrateLogger adapts logrus to migrate.Logger.
type migrateLogger struct {
	log logrus.FieldLogger
}

func (l migrateLogger) Printf(format string, v ...any) {
	l.log.Debugf(format, v...)
}

func (l migrateLogger) Verbose() bool {
	return false
}
