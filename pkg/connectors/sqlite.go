package connectors

import (
	"context"
	"fmt"

	"github.com/curavoice/pkg/commons"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SqliteConnector hands out request-scoped gorm handles for the embedded
// sqlite database.
type SqliteConnector interface {
	DB(ctx context.Context) *gorm.DB
	Ping(ctx context.Context) error
	Close() error
}

type sqliteConnector struct {
	db     *gorm.DB
	logger commons.Logger
}

// NewSqliteConnector opens (and creates if needed) the sqlite database at dsn.
func NewSqliteConnector(dsn string, logger commons.Logger) (SqliteConnector, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", dsn, err)
	}
	logger.Infof("sqlite database opened: dsn=%s", dsn)
	return &sqliteConnector{db: db, logger: logger}, nil
}

func (c *sqliteConnector) DB(ctx context.Context) *gorm.DB {
	return c.db.WithContext(ctx)
}

func (c *sqliteConnector) Ping(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (c *sqliteConnector) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
