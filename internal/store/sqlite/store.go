package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"chatrelay-backend/internal/models"
	"chatrelay-backend/internal/store"
)

// Compile-time check to ensure Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Store is a SQLite-backed implementation of store.Store.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open opens (or creates) the SQLite database file at path.
// The busy timeout keeps concurrent request handlers from failing
// immediately while another write holds the database lock.
func Open(path string, logger *zap.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_busy_timeout=10000")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database at %s: %w", path, err)
	}
	return &Store{db: db, logger: logger}, nil
}

// InitSchema ensures both tables exist. It is idempotent and safe to run
// on every process start.
func (s *Store) InitSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			created_at DATETIME NOT NULL
		);`); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT,
			session_id TEXT,
			role TEXT,
			content TEXT,
			created_at DATETIME NOT NULL
		);`); err != nil {
		return fmt.Errorf("failed to create messages table: %w", err)
	}

	s.logger.Info("sqlite schema initialized")
	return nil
}

// CreateUser inserts a new user with a freshly generated id and returns the
// created record. A concurrent insert racing on the same email surfaces the
// driver's UNIQUE constraint error unwrapped.
func (s *Store) CreateUser(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{
		ID:        uuid.New(),
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, created_at) VALUES (?, ?, ?)`,
		user.ID.String(), user.Email, user.CreatedAt,
	)
	if err != nil {
		s.logger.Error("failed to insert user", zap.String("email", email), zap.Error(err))
		return nil, fmt.Errorf("database error creating user: %w", err)
	}

	s.logger.Debug("user created", zap.String("id", user.ID.String()), zap.String("email", email))
	return user, nil
}

// GetUserByEmail retrieves a user by exact email match.
// Returns store.ErrNotFound if the user does not exist.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, created_at FROM users WHERE email = ?`, email)
	return scanUser(row, email)
}

// GetUserByID retrieves a user by exact id match.
// Returns store.ErrNotFound if the user does not exist.
func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, created_at FROM users WHERE id = ?`, id)
	return scanUser(row, id)
}

func scanUser(row *sql.Row, key string) (*models.User, error) {
	var (
		user  models.User
		rawID string
	)
	if err := row.Scan(&rawID, &user.Email, &user.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("database error fetching user %q: %w", key, err)
	}

	parsed, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q in database: %w", rawID, err)
	}
	user.ID = parsed
	return &user, nil
}

// SaveMessage appends a message row. The user id is not validated against
// the users table and the role value is stored as-is.
func (s *Store) SaveMessage(ctx context.Context, userID, sessionID, role, content string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (user_id, session_id, role, content, created_at) VALUES (?, ?, ?, ?, ?)`,
		userID, sessionID, role, content, time.Now().UTC(),
	)
	if err != nil {
		s.logger.Error("failed to insert message",
			zap.String("user_id", userID),
			zap.String("session_id", sessionID),
			zap.String("role", role),
			zap.Error(err),
		)
		return fmt.Errorf("database error saving message: %w", err)
	}
	return nil
}

// DeleteMessagesByUser removes every message belonging to userID.
func (s *Store) DeleteMessagesByUser(ctx context.Context, userID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE user_id = ?`, userID)
	if err != nil {
		s.logger.Error("failed to delete messages", zap.String("user_id", userID), zap.Error(err))
		return fmt.Errorf("database error deleting messages: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil {
		s.logger.Debug("messages cleared", zap.String("user_id", userID), zap.Int64("count", n))
	}
	return nil
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
