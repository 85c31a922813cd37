package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"sketch/internal/domain"
)

// usersTableDDL is portable across SQLite, MySQL and Postgres.
const usersTableDDL = `CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(36) PRIMARY KEY,
			username VARCHAR(255) NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role VARCHAR(16) NOT NULL DEFAULT 'USER',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`

// dialect captures the few statements that differ between SQL drivers.
type dialect struct {
	name         string
	dollarParams bool
	insertUser   string
}

var (
	dialectSQLite = dialect{
		name: "sqlite",
		insertUser: `INSERT INTO users (id, username, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(username) DO NOTHING`,
	}
	dialectMySQL = dialect{
		name:       "mysql",
		insertUser: `INSERT IGNORE INTO users (id, username, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?)`,
	}
	dialectPostgres = dialect{
		name:         "postgres",
		dollarParams: true,
		insertUser: `INSERT INTO users (id, username, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (username) DO NOTHING`,
	}
)

// rebind rewrites ? placeholders as $1..$n for Postgres.
func (d dialect) rebind(query string) string {
	if !d.dollarParams {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// UserStore implements domain.UserStore over database/sql.
type UserStore struct {
	conn    *sql.DB
	dialect dialect
}

// NewUserStore keeps accounts in the app's SQLite database.
func NewUserStore(db *DB) *UserStore {
	return &UserStore{conn: db.conn, dialect: dialectSQLite}
}

var _ domain.UserStore = (*UserStore)(nil)

func (s *UserStore) FindUser(ctx context.Context, username string) (*domain.User, error) {
	u := &domain.User{}
	var role string
	err := s.conn.QueryRowContext(ctx,
		s.dialect.rebind(`SELECT id, username, password_hash, role, created_at FROM users WHERE username = ?`),
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	u.Role = domain.Role(role)
	return u, nil
}

// InsertUser reports false when the username is already taken.
func (s *UserStore) InsertUser(ctx context.Context, username, passwordHash string, role domain.Role) (bool, error) {
	res, err := s.conn.ExecContext(ctx, s.dialect.rebind(s.dialect.insertUser),
		uuid.New().String(), username, passwordHash, string(role), time.Now().UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("insert user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert user: %w", err)
	}
	return n == 1, nil
}

// Close releases a connection the store opened itself. Stores built on the
// app database leave it open.
func (s *UserStore) Close() error {
	if s.dialect.name == dialectSQLite.name {
		return nil
	}
	return s.conn.Close()
}
