package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	gosqlmysql "github.com/go-sql-driver/mysql"
	"github.com/portfolio-space/portfolio/internal/config"
	"github.com/portfolio-space/portfolio/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrUnavailable reports that no store connection could be obtained.
var ErrUnavailable = errors.New("database unavailable")

// UnavailableMessage is the client-facing body for ErrUnavailable.
const UnavailableMessage = "Database connection failed"

// IsUnavailable reports whether err means the store could not be reached.
func IsUnavailable(err error) bool { return errors.Is(err, ErrUnavailable) }

// Store owns the MySQL connection pool of the backend.
type Store struct {
	db *gorm.DB
}

// DialTimeout bounds connection attempts when the DSN does not set one.
const DialTimeout = 5 * time.Second

// Open prepares a MySQL pool without dialing. A store that is down at startup
// only surfaces as ErrUnavailable from Acquire.
func Open(cfg config.DatabaseConfig, dev bool, log *zap.Logger) (*Store, error) {
	dsn, err := prepareDSN(cfg.DSNValue())
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       dsn,
		DefaultStringSize:         191,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:                 newLogger(log, dev),
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("database open failed: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("resolve sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return &Store{db: db}, nil
}

// prepareDSN validates dsn and fills in a dial timeout.
func prepareDSN(dsn string) (string, error) {
	parsed, err := gosqlmysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid database dsn: %w", err)
	}
	if parsed.Timeout == 0 {
		parsed.Timeout = DialTimeout
	}
	return parsed.FormatDSN(), nil
}

// New wraps an already opened gorm handle.
func New(db *gorm.DB) *Store { return &Store{db: db} }

// Conn is a single store connection held for the duration of one operation.
type Conn struct {
	db   *gorm.DB
	conn *sql.Conn
}

// Acquire checks out a dedicated connection and verifies it is alive.
// Callers must defer Release.
func (s *Store) Acquire(ctx context.Context) (*Conn, error) {
	sqlDB, err := s.db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return &Conn{db: s.db, conn: conn}, nil
}

// DB returns a gorm session pinned to this connection.
func (c *Conn) DB(ctx context.Context) *gorm.DB {
	tx := c.db.Session(&gorm.Session{NewDB: true, Context: ctx})
	tx.Statement.ConnPool = c.conn
	return tx
}

// Release hands the connection back to the pool. Safe to call more than once.
func (c *Conn) Release() {
	if c == nil || c.conn == nil {
		return
	}
	_ = c.conn.Close()
	c.conn = nil
}

// Ping acquires a connection and releases it immediately.
func (s *Store) Ping(ctx context.Context) error {
	conn, err := s.Acquire(ctx)
	if err != nil {
		return err
	}
	conn.Release()
	return nil
}

// Init creates missing portfolio tables and seeds empty ones.
func (s *Store) Init(ctx context.Context) (SeedResult, error) {
	conn, err := s.Acquire(ctx)
	if err != nil {
		return SeedResult{}, err
	}
	defer conn.Release()

	if err := Migrate(conn.DB(ctx)); err != nil {
		return SeedResult{}, fmt.Errorf("migration failed: %w", err)
	}
	res, err := Seed(conn.DB(ctx))
	if err != nil {
		return SeedResult{}, fmt.Errorf("seed failed: %w", err)
	}
	return res, nil
}

// Close closes the underlying pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type tabler interface{ TableName() string }

// Migrate creates the portfolio tables that do not exist yet. Existing tables
// are never altered.
func Migrate(db *gorm.DB) error {
	for _, model := range models.All() {
		name := model.(tabler).TableName()
		exists, err := hasTable(db, name)
		if err != nil {
			return fmt.Errorf("check table %s: %w", name, err)
		}
		if exists {
			continue
		}
		if err := db.Migrator().CreateTable(model); err != nil {
			return fmt.Errorf("create table %s: %w", name, err)
		}
	}
	return nil
}

func hasTable(db *gorm.DB, name string) (bool, error) {
	var count int64
	err := db.Raw(
		"SELECT count(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?",
		name,
	).Scan(&count).Error
	return count > 0, err
}

func newLogger(log *zap.Logger, dev bool) logger.Interface {
	level := logger.Warn
	if dev {
		level = logger.Info
	}
	if log == nil {
		return logger.Default.LogMode(level)
	}
	return logger.New(zap.NewStdLog(log.Named("gorm")), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}
