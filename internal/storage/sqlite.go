// Package storage provides a SQLite emulation of the remote store, for
// development and for running the dashboard against a local snapshot.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/product-monitor/internal/common"
	"github.com/Veraticus/product-monitor/internal/service"
	"github.com/jmoiron/sqlx"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements service.RemoteStore on a SQLite file.
type SQLiteStore struct {
	db     *sqlx.DB
	dbPath string
}

var _ service.RemoteStore = (*SQLiteStore)(nil)

// documentRow is a single key of an object document.
type documentRow struct {
	Key      string `db:"key"`
	Document string `db:"document"`
}

// NewSQLiteStore opens (creating if needed) the store at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps :memory: databases alive across queries.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ClassConfig returns the stored classification config in insertion order.
func (s *SQLiteStore) ClassConfig(ctx context.Context) ([]service.Record, error) {
	records, err := s.documents(ctx, `SELECT base AS key, document FROM class_config ORDER BY position, base`)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrLoadFailed, service.ResourceClassConfig, err)
	}
	return records, nil
}

// Products returns the stored products in insertion order.
func (s *SQLiteStore) Products(ctx context.Context) ([]service.Record, error) {
	records, err := s.documents(ctx, `SELECT code AS key, document FROM products ORDER BY position, code`)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrLoadFailed, service.ResourceProducts, err)
	}
	return records, nil
}

// MarkIgnored upserts code into the ignore list.
func (s *SQLiteStore) MarkIgnored(ctx context.Context, code string) error {
	if err := validateKey(ctx, code); err != nil {
		return fmt.Errorf("%w: %s: %w", common.ErrWriteFailed, service.ResourceIgnore, err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ignore_list (code, ignored, updated_at) VALUES (?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT(code) DO UPDATE SET ignored = 1, updated_at = CURRENT_TIMESTAMP`, code)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", common.ErrWriteFailed, service.ResourceIgnore, err)
	}

	slog.Debug("Marked product ignored", "code", code, "store", s.dbPath)
	return nil
}

// SetClassification upserts a manual classification for code.
func (s *SQLiteStore) SetClassification(ctx context.Context, code, classification string) error {
	if err := validateKey(ctx, code); err != nil {
		return fmt.Errorf("%w: %s: %w", common.ErrWriteFailed, service.ResourceClassification, err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO manual_classifications (code, classification, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(code) DO UPDATE SET classification = excluded.classification, updated_at = CURRENT_TIMESTAMP`,
		code, classification)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", common.ErrWriteFailed, service.ResourceClassification, err)
	}

	slog.Debug("Stored manual classification", "code", code, "classification", classification)
	return nil
}

// IgnoredCodes returns every code in the ignore list, sorted.
func (s *SQLiteStore) IgnoredCodes(ctx context.Context) ([]string, error) {
	var codes []string
	if err := s.db.SelectContext(ctx, &codes, `SELECT code FROM ignore_list WHERE ignored = 1 ORDER BY code`); err != nil {
		return nil, fmt.Errorf("failed to list ignored codes: %w", err)
	}
	return codes, nil
}

// ManualClassifications returns code -> classification overrides.
func (s *SQLiteStore) ManualClassifications(ctx context.Context) (map[string]string, error) {
	var rows []struct {
		Code           string `db:"code"`
		Classification string `db:"classification"`
	}
	if err := s.db.SelectContext(ctx, &rows, `SELECT code, classification FROM manual_classifications`); err != nil {
		return nil, fmt.Errorf("failed to list manual classifications: %w", err)
	}

	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.Code] = r.Classification
	}
	return out, nil
}

func (s *SQLiteStore) documents(ctx context.Context, query string) ([]service.Record, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var rows []documentRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	records := make([]service.Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, service.Record{Key: r.Key, Value: json.RawMessage(r.Document)})
	}
	return records, nil
}
