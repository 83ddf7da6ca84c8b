package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"transaction-analytics/internal/config"
	"transaction-analytics/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm/logger"
)

type DatabaseSuite struct {
	suite.Suite
	db *DB
}

func TestDatabaseSuite(t *testing.T) {
	suite.Run(t, new(DatabaseSuite))
}

func (s *DatabaseSuite) SetupTest() {
	s.db = SetupTestDB(s.T())
}

func (s *DatabaseSuite) TestHealthCheck() {
	s.NoError(s.db.HealthCheck(context.Background()))
}

func (s *DatabaseSuite) TestCreateIndexes() {
	s.NoError(s.db.CreateIndexes())

	var count int64
	err := s.db.Raw("SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = ?", "idx_transactions_date_of_sale_id").
		Scan(&count).Error
	s.NoError(err)
	s.Equal(int64(1), count)
}

func (s *DatabaseSuite) TestPriceTextWrittenOnSave() {
	created := CreateTestTransactions(s.T(), s.db, models.Transaction{
		Title:      "Backpack",
		Price:      109.95,
		DateOfSale: "2021-10-27T20:29:54+05:30",
	})

	var stored models.Transaction
	s.NoError(s.db.First(&stored, created[0].ID).Error)
	s.Equal("109.95", stored.PriceText)
}

func (s *DatabaseSuite) TestInvalidRecordRejected() {
	err := s.db.Create(&models.Transaction{Title: "Broken", Price: -3, DateOfSale: "2021-10-01"}).Error
	s.ErrorIs(err, models.ErrNegativePrice)
}

func (s *DatabaseSuite) TestCleanupTestDB() {
	CreateTestTransactions(s.T(), s.db, models.Transaction{Title: "A", Price: 1, DateOfSale: "2022-01-01"})

	CleanupTestDB(s.T(), s.db)

	var count int64
	s.NoError(s.db.Model(&models.Transaction{}).Count(&count).Error)
	s.Zero(count)
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New(&config.DatabaseConfig{Driver: "oracle"}, logger.Silent)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestInitialize_SQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "transactions.db")
	cfg := &config.Config{
		Server: config.ServerConfig{Environment: "testing"},
		Database: config.DatabaseConfig{
			Driver:          config.DriverSQLite,
			SQLitePath:      path,
			MaxConnections:  4,
			MaxIdleConns:    1,
			ConnMaxLifetime: time.Minute,
		},
	}

	db, err := Initialize(context.Background(), cfg)
	require.NoError(t, err)
	defer db.Close()

	assert.True(t, db.Migrator().HasTable(&models.Transaction{}))
	assert.FileExists(t, path)
}

func unreachablePostgresConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Environment: "testing"},
		Database: config.DatabaseConfig{
			Driver:          config.DriverPostgres,
			URL:             "host=127.0.0.1 port=1 user=postgres password=postgres dbname=assessment sslmode=disable connect_timeout=1",
			MaxConnections:  2,
			MaxIdleConns:    1,
			ConnMaxLifetime: time.Minute,
		},
	}
}

func TestNew_DoesNotContactStore(t *testing.T) {
	db, err := New(&unreachablePostgresConfig().Database, logger.Silent)
	require.NoError(t, err)
	defer db.Close()

	assert.Error(t, db.HealthCheck(context.Background()))
}

func TestInitialize_UnreachableStoreIsRetried(t *testing.T) {
	withFastRetries(t, 3)
	retryInterval = 50 * time.Millisecond

	start := time.Now()
	db, err := Initialize(context.Background(), unreachablePostgresConfig())

	require.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "database readiness check failed")
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
}

func TestConnect_UnreachableStoreKeepsServing(t *testing.T) {
	withFastRetries(t, 2)

	db, err := Connect(context.Background(), unreachablePostgresConfig())
	require.NoError(t, err)

	select {
	case <-db.Ready():
		t.Fatal("schema reported ready for an unreachable store")
	case <-time.After(200 * time.Millisecond):
	}
	assert.Error(t, db.HealthCheck(context.Background()))

	var count int64
	assert.Error(t, db.Model(&models.Transaction{}).Count(&count).Error)

	require.NoError(t, db.Close())
}

func TestConnect_PreparesSchemaInBackground(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{Environment: "testing"},
		Database: config.DatabaseConfig{
			Driver:          config.DriverSQLite,
			SQLitePath:      filepath.Join(t.TempDir(), "transactions.db"),
			MaxConnections:  4,
			MaxIdleConns:    1,
			ConnMaxLifetime: time.Minute,
		},
	}

	db, err := Connect(context.Background(), cfg)
	require.NoError(t, err)
	defer db.Close()

	select {
	case <-db.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("schema was not prepared")
	}
	assert.True(t, db.Migrator().HasTable(&models.Transaction{}))
}
