package database

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"shareit/internal/config"
	"shareit/internal/domain"
	"shareit/internal/logging"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const memoryPath = ":memory:"

// DB is the gorm-backed implementation of domain.Store.
type DB struct {
	gorm   *gorm.DB
	logger *zerolog.Logger
}

var _ domain.Store = (*DB)(nil)

// NewDB opens the configured database and migrates the schema.
func NewDB(cfg config.DatabaseConfig, logger *zerolog.Logger) (*DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	g, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logging.NewGormLogger(*logger, cfg.LogLevel),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := g.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}
	switch {
	case cfg.Driver == "sqlite":
		// SQLite разрешает только одного писателя; для :memory: каждое
		// соединение видит свою базу
		sqlDB.SetMaxOpenConns(1)
	case cfg.Postgres.MaxConnections > 0:
		sqlDB.SetMaxOpenConns(cfg.Postgres.MaxConnections)
	}

	db := &DB{gorm: g, logger: logger}
	if err := db.Migrate(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info().Str("driver", cfg.Driver).Msg("database initialized")
	return db, nil
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "postgres":
		return postgres.Open(cfg.Postgres.DSN()), nil
	case "sqlite", "":
		return sqlite.Open(sqliteDSN(cfg.Path)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func sqliteDSN(path string) string {
	if path == "" || path == memoryPath {
		return "file::memory:?_foreign_keys=on"
	}
	// Создаем директорию для БД, если её нет
	if dir := filepath.Dir(path); dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on&_busy_timeout=5000"
}

// Migrate creates or updates every table and the secondary indexes.
func (db *DB) Migrate() error {
	if err := db.gorm.AutoMigrate(
		&models.User{},
		&models.ItemRequest{},
		&models.Item{},
		&models.Booking{},
		&models.Comment{},
	); err != nil {
		return err
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_bookings_item_start ON bookings (item_id, start_date)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_booker_start ON bookings (booker_id, start_date)`,
		`CREATE INDEX IF NOT EXISTS idx_item_requests_requestor_created ON item_requests (requestor_id, created)`,
	}
	for _, q := range indexes {
		if err := db.gorm.Exec(q).Error; err != nil {
			return fmt.Errorf("error executing query %s: %w", q, err)
		}
	}
	return nil
}

// InTx runs fn inside one transaction.
func (db *DB) InTx(ctx context.Context, fn func(tx domain.Store) error) error {
	return db.gorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&DB{gorm: tx, logger: db.logger})
	})
}

func (db *DB) Ping(ctx context.Context) error {
	sqlDB, err := db.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (db *DB) Close() error {
	sqlDB, err := db.gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (db *DB) conn(ctx context.Context) *gorm.DB {
	return db.gorm.WithContext(ctx)
}

// notFound converts gorm's missing-row error into the given domain error.
func notFound(err error, domainErr error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr
	}
	return err
}
