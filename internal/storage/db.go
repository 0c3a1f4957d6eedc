// Package storage provides the SQLite database behind the local card
// database, saved decks and the combo cache.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite" // SQLite driver
)

// DB wraps the database connection and provides access to repositories.
type DB struct {
	conn *sql.DB
}

// Config holds database configuration settings.
type Config struct {
	// Path is the file path to the SQLite database.
	Path string

	// Pool limits. Default: 10 open, 5 idle, 5 minute lifetime.
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// BusyTimeout sets how long to wait when the database is locked.
	// Bulk imports and deck builds write concurrently, so keep this generous.
	BusyTimeout time.Duration

	// JournalMode sets the SQLite journal mode. Default: WAL
	JournalMode string

	// AutoMigrate runs pending migrations on Open.
	AutoMigrate bool

	// Logger receives migration progress. Optional.
	Logger logrus.FieldLogger
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig(path string) *Config {
	return &Config{
		Path:            path,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		BusyTimeout:     10 * time.Second,
		JournalMode:     "WAL",
		AutoMigrate:     true,
	}
}

// DSN is the modernc.org/sqlite data source name, which takes pragmas as
// _pragma query parameters.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(%s)&_pragma=foreign_keys(1)",
		c.Path, c.BusyTimeout.Milliseconds(), c.JournalMode)
}

// Open creates the database file and its directory if needed, migrates it
// when AutoMigrate is set, and opens the connection pool.
func Open(config *Config) (*DB, error) {
	if config == nil {
		return nil, errors.New("config cannot be nil")
	}
	if config.Path == "" {
		return nil, errors.New("database path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(config.Path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if config.AutoMigrate {
		if err := migrateUp(config.Path, config.Logger); err != nil {
			return nil, err
		}
	}

	conn, err := sql.Open("sqlite", config.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	conn.SetMaxOpenConns(config.MaxOpenConns)
	conn.SetMaxIdleConns(config.MaxIdleConns)
	conn.SetConnMaxLifetime(config.ConnMaxLifetime)

	if err := conn.Ping(); err != nil {
		return nil, errors.Join(fmt.Errorf("failed to ping database: %w", err), conn.Close())
	}
	return &DB{conn: conn}, nil
}

func migrateUp(path string, log logrus.FieldLogger) (err error) {
	mgr, err := NewMigrationManager(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := mgr.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close migration manager: %w", closeErr))
		}
	}()

	if log != nil {
		mgr.SetLogger(log)
	}
	return mgr.Up()
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// Conn returns the underlying sql.DB connection.
func (db *DB) Conn() *sql.DB {
	return db.conn
}
