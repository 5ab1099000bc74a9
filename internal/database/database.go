package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Tomlord1122/todo-app/internal/config"
	"github.com/Tomlord1122/todo-app/internal/domain"
)

const (
	StatusOK    = "OK"
	StatusError = "ERROR"
)

// HealthStats is the body of the health endpoint.
type HealthStats struct {
	Status string     `json:"status"`
	Time   *time.Time `json:"time,omitempty"`
	Error  string     `json:"error,omitempty"`
}

// Service owns the connection pool shared by the repositories.
type Service interface {
	Health(ctx context.Context) HealthStats
	Close() error
	GetDB() *gorm.DB
	SQL() *sql.DB
}

type service struct {
	db    *gorm.DB
	sqlDB *sql.DB
	name  string
}

// New opens the pool described by cfg.
func New(cfg config.Database) (Service, error) {
	return Open(cfg.DSN(), cfg.LogLevel)
}

// Open accepts either a keyword/value DSN or a postgres:// URL. The pool is
// built by pgx's database/sql adapter and handed to GORM, so raw queries and
// GORM share the same connections.
func Open(dsn, logLevel string) (Service, error) {
	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	sqlDB := stdlib.OpenDB(*connConfig)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  parseLogLevel(logLevel),
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return &service{db: db, sqlDB: sqlDB, name: connConfig.Database}, nil
}

// Migrate creates or updates the todos table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.Task{}); err != nil {
		return fmt.Errorf("auto-migrate todos: %w", err)
	}
	return nil
}

func (s *service) GetDB() *gorm.DB {
	return s.db
}

func (s *service) SQL() *sql.DB {
	return s.sqlDB
}

// Health reports the store's current time, or the error that prevented reading it.
func (s *service) Health(ctx context.Context) HealthStats {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	var now time.Time
	if err := s.sqlDB.QueryRowContext(ctx, "SELECT NOW()").Scan(&now); err != nil {
		log.Printf("db down: %v", err)
		return HealthStats{Status: StatusError, Error: err.Error()}
	}
	return HealthStats{Status: StatusOK, Time: &now}
}

func (s *service) Close() error {
	log.Printf("Closing connection pool for database: %s", s.name)
	return s.sqlDB.Close()
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
