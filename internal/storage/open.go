package storage

import (
	"context"
	"fmt"
	"strings"
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverMySQL    Driver = "mysql"
	DriverPostgres Driver = "postgres"
	DriverRedis    Driver = "redis"
	DriverMemory   Driver = "memory"
	DriverFile     Driver = "file"
)

type Options struct {
	Driver      Driver
	DSN         string
	RedisPrefix string
}

func ParseDriver(raw string) (Driver, error) {
	switch d := Driver(strings.ToLower(strings.TrimSpace(raw))); d {
	case DriverSQLite, DriverMySQL, DriverPostgres, DriverRedis, DriverMemory, DriverFile:
		return d, nil
	case "sqlite3":
		return DriverSQLite, nil
	case "postgresql", "pg":
		return DriverPostgres, nil
	case "json":
		return DriverFile, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDriver, raw)
	}
}

// DefaultDSN is the location used when no DSN is configured. Drivers that
// need a server address have no default.
func DefaultDSN(d Driver) string {
	switch d {
	case DriverSQLite, "":
		return "todod.db"
	case DriverFile:
		return "todod.json"
	case DriverRedis:
		return "redis://localhost:6379/0"
	default:
		return ""
	}
}

// Open returns the KV backend selected by opts.Driver.
func Open(ctx context.Context, opts Options) (KV, error) {
	dsn := strings.TrimSpace(opts.DSN)
	if dsn == "" {
		dsn = DefaultDSN(opts.Driver)
	}
	switch opts.Driver {
	case DriverSQLite, "":
		return OpenSQLite(dsn)
	case DriverMySQL, DriverPostgres:
		if dsn == "" {
			return nil, fmt.Errorf("storage: %s requires a DSN", opts.Driver)
		}
		if opts.Driver == DriverMySQL {
			return OpenMySQL(dsn)
		}
		return OpenPostgres(ctx, dsn)
	case DriverRedis:
		return OpenRedis(ctx, dsn, opts.RedisPrefix)
	case DriverMemory:
		return NewMemoryKV(), nil
	case DriverFile:
		return OpenFile(dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}
