package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file" // Required for file source
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("repository: not found")

// PoolSettings bounds the process-wide connection pool. Callers queue
// on pool exhaustion rather than failing fast.
type PoolSettings struct {
	MaxOpenConns   int
	MaxIdleTime    time.Duration
	ConnectTimeout time.Duration
}

// NewPostgresDB establishes a new connection pool to the PostgreSQL
// database with the given bounds.
func NewPostgresDB(dataSourceName string, pool PoolSettings, logger *zap.Logger) (*sqlx.DB, error) {
	dataSourceName = withConnectTimeout(dataSourceName, pool.ConnectTimeout)

	db, err := sqlx.Connect("postgres", dataSourceName)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxOpenConns)
	db.SetConnMaxIdleTime(pool.MaxIdleTime)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	logger.Info("Successfully connected to the database!")
	return db, nil
}

func withConnectTimeout(dsn string, timeout time.Duration) string {
	if timeout <= 0 || strings.Contains(dsn, "connect_timeout") {
		return dsn
	}
	seconds := int(timeout.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	if strings.Contains(dsn, "://") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		return fmt.Sprintf("%s%sconnect_timeout=%d", dsn, sep, seconds)
	}
	return fmt.Sprintf("%s connect_timeout=%d", dsn, seconds)
}

// MigrateDB runs database migrations.
func MigrateDB(db *sqlx.DB, logger *zap.Logger) {
	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		logger.Fatal("Couldn't get database instance for running migrations", zap.Error(err))
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "cleanic", driver)
	if err != nil {
		logger.Fatal("Couldn't create migrate instance", zap.Error(err))
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatal("Couldn't run database migration", zap.Error(err))
	}

	logger.Info("Database migration was run successfully")
}
