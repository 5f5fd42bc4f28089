// Package storage содержит работу с базой данных.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cafes/internal/config"
	"cafes/internal/model"
	"cafes/internal/storage/repository"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
	"go.uber.org/zap"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DB представляет подключение к хранилищу кафе
type DB struct {
	db     *bun.DB
	driver string
	logger *zap.Logger
}

// Open создает подключение к хранилищу в зависимости от драйвера
func Open(cfg config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return openSQLite(cfg, logger)
	case config.DriverPostgres:
		return openPostgres(cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// openSQLite открывает файловую базу SQLite
func openSQLite(cfg config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	sqldb, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// База в памяти живет в рамках одного соединения
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	addDebugHook(db, cfg, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to sqlite database: %w", err)
	}

	logger.Info("Connected to SQLite database with Bun ORM")

	return &DB{
		db:     db,
		driver: config.DriverSQLite,
		logger: logger,
	}, nil
}

// openPostgres создает подключение к PostgreSQL с retry логикой
func openPostgres(cfg config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		logger.Info("Attempting to connect to database",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", maxRetries))

		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN)))

		// Настраиваем пул соединений
		sqldb.SetMaxOpenConns(25)
		sqldb.SetMaxIdleConns(10)
		sqldb.SetConnMaxLifetime(5 * time.Minute)
		sqldb.SetConnMaxIdleTime(1 * time.Minute)

		db := bun.NewDB(sqldb, pgdialect.New())
		addDebugHook(db, cfg, logger)

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 10*time.Second)
		lastErr = db.PingContext(pingCtx)
		pingCancel()

		if lastErr == nil {
			logger.Info("Connected to PostgreSQL database with Bun ORM",
				zap.Int("attempt", attempt))

			return &DB{
				db:     db,
				driver: config.DriverPostgres,
				logger: logger,
			}, nil
		}

		logger.Warn("Failed to connect to database",
			zap.Int("attempt", attempt),
			zap.Error(lastErr))

		if err := db.Close(); err != nil {
			logger.Warn("Failed to close database connection", zap.Error(err))
		}

		if attempt < maxRetries {
			logger.Info("Retrying connection", zap.Duration("delay", cfg.RetryDelay))
			time.Sleep(cfg.RetryDelay)
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, lastErr)
}

// addDebugHook добавляет отладку запросов в режиме разработки
func addDebugHook(db *bun.DB, cfg config.DatabaseConfig, logger *zap.Logger) {
	if cfg.Debug || logger.Core().Enabled(zap.DebugLevel) {
		db.AddQueryHook(bundebug.NewQueryHook(
			bundebug.WithVerbose(true),
			bundebug.FromEnv("BUNDEBUG"),
		))
	}
}

// Migrate создает таблицу кафе и индексы, если их еще нет
func (d *DB) Migrate(ctx context.Context) error {
	_, err := d.db.NewCreateTable().
		Model((*model.Cafe)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create cafes table: %w", err)
	}

	_, err = d.db.NewCreateIndex().
		Model((*model.Cafe)(nil)).
		Index("cafes_location_idx").
		Column("location").
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create cafes location index: %w", err)
	}

	d.logger.Info("Database schema is up to date", zap.String("driver", d.driver))
	return nil
}

// Ping проверяет доступность базы данных
func (d *DB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Close закрывает соединение с базой данных
func (d *DB) Close() error {
	return d.db.Close()
}

// GetDB возвращает подключение к базе данных
func (d *DB) GetDB() *bun.DB {
	return d.db
}

// Driver возвращает имя используемого драйвера
func (d *DB) Driver() string {
	return d.driver
}

// GetCafeRepository возвращает репозиторий кафе
func (d *DB) GetCafeRepository() model.CafeRepository {
	return repository.NewCafeRepository(d.db, d.logger)
}
