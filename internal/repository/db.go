package repository

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// busyTimeoutMillis lets a writer wait for the file lock held by another
// connection (the deadline monitor and the caller share one file).
const busyTimeoutMillis = 5000

// schema mirrors the layout written by the original desktop client.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (id INTEGER PRIMARY KEY, username TEXT UNIQUE, password TEXT)`,
	`CREATE TABLE IF NOT EXISTS tasks (id INTEGER PRIMARY KEY, user_id INTEGER, title TEXT, deadline TEXT, priority TEXT, completed INTEGER)`,
}

// NewDB opens a SQLite database and creates the tables if missing.
func NewDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = "tasks.db"
	}

	if err := ensureDBDir(dsn); err != nil {
		return nil, err
	}

	dbLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(withBusyTimeout(dsn)), &gorm.Config{
		Logger:         dbLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates the users and tasks tables. Existing files are left as they are.
func Migrate(db *gorm.DB) error {
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migrate db: %w", err)
		}
	}
	return nil
}

func withBusyTimeout(dsn string) string {
	if strings.Contains(dsn, "_busy_timeout") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_busy_timeout=%d", dsn, sep, busyTimeoutMillis)
}

// sqliteFilePath returns the on-disk file a DSN refers to, or false for
// in-memory databases.
func sqliteFilePath(dsn string) (string, bool) {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return "", false
	}
	path, _, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	return path, path != ""
}

func ensureDBDir(dsn string) error {
	path, ok := sqliteFilePath(dsn)
	if !ok {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}
