package db

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"timetrack/internal/config"
)

// NewTestDB opens a private in-memory SQLite database with all tables migrated.
// The pool is pinned to one connection so the database outlives individual queries.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gormDB, err := Open(context.Background(), config.DriverSQLite, dsn, time.Second, zerolog.Nop())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("test db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := Migrate(gormDB, false); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return gormDB
}
