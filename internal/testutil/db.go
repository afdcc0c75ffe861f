package testutil

import (
	"testing"

	"trello/internal/db"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens an in-memory SQLite database with the schema migrated. It
// is closed when the test completes.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := db.OpenSQLite(":memory:", db.NewGormLogger(zap.NewNop(), logger.Silent))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	if err := db.Migrate(conn, zap.NewNop()); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := conn.DB()
		if err != nil {
			return
		}
		if err := sqlDB.Close(); err != nil {
			t.Errorf("closing test database: %v", err)
		}
	})

	return conn
}
