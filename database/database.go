// File: /database/database.go
package database

import (
	"context"
	"fmt"
	"tricycle-api/config"

	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Connector hands out one database connection for the duration of fn and
// releases it when fn returns, whether or not fn failed.
type Connector interface {
	WithConnection(ctx context.Context, fn func(conn *gorm.DB) error) error
}

type Database struct {
	db  *gorm.DB
	log zerolog.Logger
}

// Initialize prepares the MySQL handle without dialing. The first statement
// opens the first connection, so an unreachable database fails that
// invocation instead of the process start.
func Initialize(cfg *config.Config, log zerolog.Logger) (*Database, error) {
	dialector := mysql.New(mysql.Config{
		DSN:                       cfg.DSN(),
		SkipInitializeWithVersion: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:               NewGormLogger(log, cfg.SlowQueryThreshold, cfg.LogLevel == "debug"),
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	return New(db, log), nil
}

// New wraps an already opened gorm handle.
func New(db *gorm.DB, log zerolog.Logger) *Database {
	return &Database{db: db, log: log}
}

func (d *Database) WithConnection(ctx context.Context, fn func(conn *gorm.DB) error) error {
	return d.db.WithContext(ctx).Connection(fn)
}

// Ping checks that a connection can be established.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	d.log.Info().Msg("closing database connections")
	return sqlDB.Close()
}
