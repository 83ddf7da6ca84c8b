package database

import (
	"testing"

	"transaction-analytics/internal/config"
	"transaction-analytics/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB returns a migrated in-memory SQLite store. The pool is pinned
// to one connection because every new :memory: connection is a separate database.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	testDB := wrap(db, &config.DatabaseConfig{
		Driver:         config.DriverSQLite,
		SQLitePath:     ":memory:",
		MaxConnections: 1,
		MaxIdleConns:   1,
	})

	if err := testDB.Prepare(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = testDB.Close()
	})

	return testDB
}

// CreateTestTransactions inserts records as given and returns them with ids assigned
func CreateTestTransactions(t *testing.T, db *DB, records ...models.Transaction) []models.Transaction {
	t.Helper()

	if len(records) == 0 {
		return records
	}

	if err := db.Create(&records).Error; err != nil {
		t.Fatalf("failed to create test transactions: %v", err)
	}

	return records
}

func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	if err := db.Exec("DELETE FROM transactions").Error; err != nil {
		t.Logf("failed to cleanup table transactions: %v", err)
	}
}
