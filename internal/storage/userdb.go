package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"

	"sketch/internal/config"
	"sketch/internal/domain"
)

// AccountStore is a domain.UserStore that owns its connection.
type AccountStore interface {
	domain.UserStore
	Close() error
}

// OpenAccountStore returns the user store selected by cfg. SQLite reuses
// the app database; the other drivers open their own connection and make
// sure the users table (or collection index) exists.
func OpenAccountStore(ctx context.Context, db *DB, cfg config.UserStore) (AccountStore, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		return NewUserStore(db), nil
	case config.DriverMySQL:
		return openSQLUserStore(ctx, dialectMySQL, buildMySQLDSN(cfg))
	case config.DriverPostgres:
		return openSQLUserStore(ctx, dialectPostgres, buildPostgresDSN(cfg))
	case config.DriverMongo:
		return OpenMongoUserStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported driver: %s", cfg.Driver)
	}
}

func openSQLUserStore(ctx context.Context, d dialect, dsn string) (*UserStore, error) {
	conn, err := sql.Open(d.name, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.name, err)
	}
	conn.SetMaxOpenConns(5)
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(10 * time.Minute)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping %s: %w", d.name, err)
	}
	if _, err := conn.ExecContext(ctx, usersTableDDL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create users table: %w", err)
	}
	return &UserStore{conn: conn, dialect: d}, nil
}

// buildMySQLDSN constructs a MySQL DSN: user:password@tcp(host:port)/dbname.
func buildMySQLDSN(cfg config.UserStore) string {
	port := cfg.Port
	if port == 0 {
		port = 3306
	}
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		cfg.Username, cfg.Password, cfg.Host, port, cfg.Database,
	)
	if cfg.SSLMode == "require" {
		dsn += "&tls=true"
	}
	return dsn
}

// buildPostgresDSN constructs a lib/pq key=value connection string.
func buildPostgresDSN(cfg config.UserStore) string {
	port := cfg.Port
	if port == 0 {
		port = 5432
	}
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, port, cfg.Username, cfg.Password, cfg.Database, sslMode,
	)
}
