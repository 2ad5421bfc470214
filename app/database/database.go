package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/mytheresa/go-storefront/app/config"
	"github.com/mytheresa/go-storefront/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured database.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dialector, err := newDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  newLogger(cfg.LogLevel),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	switch {
	case cfg.Driver == "sqlite":
		// SQLite serialises writers; an in-memory database also only
		// exists on the connection that created it.
		sqlDB.SetMaxOpenConns(1)
	case cfg.MaxOpenConns > 0:
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	return db, nil
}

func newDialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "postgres", "postgresql":
		return postgres.Open(cfg.URL), nil
	case "mysql":
		dsn, err := mysqlDSN(cfg.URL)
		if err != nil {
			return nil, err
		}
		return mysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(cfg.URL), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// mysqlDSN makes MySQL report matched rather than changed rows, so that an
// update which leaves a row unchanged is not mistaken for a missing row.
// parseTime is required to scan DATETIME columns into time.Time.
func mysqlDSN(dsn string) (string, error) {
	c, err := mysqldriver.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid mysql dsn: %w", err)
	}
	c.ClientFoundRows = true
	c.ParseTime = true
	return c.FormatDSN(), nil
}

func newLogger(level string) logger.Interface {
	lvl := logger.Warn
	switch strings.ToLower(level) {
	case "silent":
		lvl = logger.Silent
	case "error":
		lvl = logger.Error
	case "info":
		lvl = logger.Info
	}
	return logger.New(log.New(os.Stderr, "gorm: ", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  lvl,
		IgnoreRecordNotFoundError: true,
	})
}

// Migrate creates or updates the tables of every model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Ping checks that the database answers.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// EnsureDatabase creates the PostgreSQL database named in dsn when it does
// not exist yet. It connects to the server's "postgres" maintenance
// database to do so.
func EnsureDatabase(ctx context.Context, dsn string) error {
	maintenance, name, err := splitDatabase(dsn)
	if err != nil {
		return err
	}

	conn, err := sql.Open("postgres", maintenance)
	if err != nil {
		return fmt.Errorf("failed to open maintenance connection: %w", err)
	}
	defer conn.Close()

	var exists bool
	if err := conn.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", name,
	).Scan(&exists); err != nil {
		return fmt.Errorf("failed to look up database %q: %w", name, err)
	}
	if exists {
		return nil
	}

	if _, err := conn.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(name)); err != nil {
		var pqErr *pq.Error
		// Lost a race with another instance creating the same database.
		if errors.As(err, &pqErr) && pqErr.Code == "42P04" {
			return nil
		}
		return fmt.Errorf("failed to create database %q: %w", name, err)
	}
	return nil
}

// splitDatabase returns a DSN pointing at the maintenance database and the
// name of the database dsn refers to. Only URL-style DSNs are supported.
func splitDatabase(dsn string) (string, string, error) {
	u, err := url.Parse(dsn)
	if err != nil || (u.Scheme != "postgres" && u.Scheme != "postgresql") {
		return "", "", fmt.Errorf("expected a postgres:// url, got %q", dsn)
	}
	name := strings.TrimPrefix(u.Path, "/")
	if name == "" {
		return "", "", fmt.Errorf("database url %q names no database", dsn)
	}
	u.Path = "/postgres"
	return u.String(), name, nil
}
