package db

import (
	"context"
	"fmt"
	"strings"
)

// DBType selects the storage backend at startup.
type DBType string

const (
	Postgres DBType = "postgres"
	Mongo    DBType = "mongo"
)

// ParseDBType accepts the DB_TYPE values the server knows how to run with.
func ParseDBType(s string) (DBType, error) {
	switch t := DBType(strings.ToLower(strings.TrimSpace(s))); t {
	case Postgres, Mongo:
		return t, nil
	default:
		return "", fmt.Errorf("DB_TYPE not supported: %q", s)
	}
}

// DB is a connection that main opens once and closes on shutdown.
type DB interface {
	Connect() error
	Disconnect() error
	GetContext() context.Context
}
