package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

const sqlTimeLayout = time.RFC3339Nano

type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectMySQL    Dialect = "mysql"
	DialectPostgres Dialect = "postgres"
)

// SQLKV stores keys in the kv_store table of a database/sql connection.
type SQLKV struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
}

func NewSQLKV(db *sql.DB, dialect Dialect) (*SQLKV, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	switch dialect {
	case DialectSQLite, DialectMySQL:
	default:
		return nil, fmt.Errorf("%w: sql dialect %q", ErrUnknownDriver, dialect)
	}
	return &SQLKV{db: db, dialect: dialect, now: time.Now}, nil
}

func OpenSQLite(path string) (*SQLKV, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return openSQL(db, DialectSQLite)
}

func OpenMySQL(dsn string) (*SQLKV, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return openSQL(db, DialectMySQL)
}

func openSQL(db *sql.DB, dialect Dialect) (*SQLKV, error) {
	if err := MigrateUp(db, dialect); err != nil {
		_ = db.Close()
		return nil, err
	}
	kv, err := NewSQLKV(db, dialect)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return kv, nil
}

func (s *SQLKV) Close() error {
	return s.db.Close()
}

func (s *SQLKV) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE name = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLKV) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, s.upsertQuery(), key, value, s.now().UTC().Format(sqlTimeLayout))
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *SQLKV) upsertQuery() string {
	if s.dialect == DialectMySQL {
		return `
		INSERT INTO kv_store (name, value, updated_at) VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE value = VALUES(value), updated_at = VALUES(updated_at)`
	}
	return `
		INSERT INTO kv_store (name, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
}
