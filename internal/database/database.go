package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"transaction-analytics/internal/config"
	"transaction-analytics/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DB struct {
	*gorm.DB
	config *config.DatabaseConfig

	ready      chan struct{}
	readyOnce  sync.Once
	stop       context.CancelFunc
	background sync.WaitGroup
}

func wrap(db *gorm.DB, cfg *config.DatabaseConfig) *DB {
	return &DB{
		DB:     db,
		config: cfg,
		ready:  make(chan struct{}),
	}
}

// New opens the record store for the configured driver and applies pool
// settings. It does not contact the store.
func New(cfg *config.DatabaseConfig, logLevel logger.LogLevel) (*DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		DisableAutomaticPing: true,
	}

	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxConnections)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return wrap(db, cfg), nil
}

func dialectorFor(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN()), nil
	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." && cfg.SQLitePath != ":memory:" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
			}
		}
		return sqlite.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func (db *DB) AutoMigrate() error {
	return db.DB.AutoMigrate(&models.Transaction{})
}

// Close stops background schema preparation and closes the pool
func (db *DB) Close() error {
	if db.stop != nil {
		db.stop()
	}
	db.background.Wait()

	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (db *DB) HealthCheck(ctx context.Context) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (db *DB) CreateIndexes() error {
	queries := []string{
		"CREATE INDEX IF NOT EXISTS idx_transactions_date_of_sale ON transactions(date_of_sale)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions(category)",
		"CREATE INDEX IF NOT EXISTS idx_transactions_date_of_sale_id ON transactions(date_of_sale, id)",
	}

	for _, query := range queries {
		if err := db.DB.Exec(query).Error; err != nil {
			log.Printf("Failed to create index: %s, error: %v", query, err)
		}
	}

	return nil
}

// Ready is closed once the schema has been prepared
func (db *DB) Ready() <-chan struct{} {
	return db.ready
}

// Prepare migrates the schema and creates the indexes
func (db *DB) Prepare() error {
	if err := db.AutoMigrate(); err != nil {
		return fmt.Errorf("failed to prepare schema: %w", err)
	}

	if err := db.CreateIndexes(); err != nil {
		log.Printf("Warning: failed to create some indexes: %v", err)
	}

	db.readyOnce.Do(func() { close(db.ready) })
	return nil
}

// Initialize opens the store, waits until it answers and prepares the schema.
// It fails when the store stays unreachable.
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := New(&cfg.Database, logLevelFor(cfg))
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if err := WaitForDatabase(ctx, sqlDB); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database readiness check failed: %w", err)
	}

	if err := db.Prepare(); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Println("Database initialized successfully")

	return db, nil
}

// Connect opens the store without waiting for it. The schema is prepared in
// the background as soon as the store answers; until then queries fail and
// the caller keeps serving.
func Connect(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := New(&cfg.Database, logLevelFor(cfg))
	if err != nil {
		return nil, err
	}

	bgCtx, cancel := context.WithCancel(ctx)
	db.stop = cancel
	db.background.Add(1)
	go func() {
		defer db.background.Done()
		db.prepareWhenReachable(bgCtx)
	}()

	return db, nil
}

func (db *DB) prepareWhenReachable(ctx context.Context) {
	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Printf("Failed to get sql.DB: %v", err)
		return
	}

	for {
		err := WaitForDatabase(ctx, sqlDB)
		if err == nil {
			err = db.Prepare()
		}
		if err == nil {
			log.Println("Database initialized successfully")
			return
		}
		if ctx.Err() != nil {
			return
		}

		log.Printf("Database unavailable, requests will fail until it answers: %v", err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(retryInterval):
		}
	}
}

func logLevelFor(cfg *config.Config) logger.LogLevel {
	if cfg.IsDevelopment() {
		return logger.Info
	}
	return logger.Warn
}
