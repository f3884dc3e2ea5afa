// Package sqlite persists accounts, quiz history, and encrypted provider
// API keys in a single SQLite file via database/sql and the modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite" // driver: sqlite

	"studyquiz-service/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    email         TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    created_at    INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS quiz_history (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id      INTEGER NOT NULL REFERENCES users(id),
    score        INTEGER NOT NULL,
    total        INTEGER NOT NULL,
    percentage   REAL NOT NULL,
    duration     TEXT NOT NULL DEFAULT '',
    completed_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS api_keys (
    user_id       INTEGER PRIMARY KEY REFERENCES users(id),
    encrypted_key TEXT NOT NULL,
    updated_at    INTEGER NOT NULL
);
`

const bcryptCost = 12

// Store is the SQLite-backed user/account store.
type Store struct {
	db     *sql.DB
	cipher *KeyCipher
	now    func() time.Time
}

// Open opens the database at dsn and ensures the schema exists.
func Open(ctx context.Context, dsn string, cipher *KeyCipher) (*Store, error) {
	if dsn == "" {
		dsn = "file:studyquiz.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Store{db: db, cipher: cipher, now: time.Now}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// CreateUser registers an account with a bcrypt-hashed password.
func (s *Store) CreateUser(ctx context.Context, email, password string) (domain.User, error) {
	var existing int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM users WHERE email=?`, email).Scan(&existing)
	if err == nil {
		return domain.User{}, domain.ErrEmailTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return domain.User{}, err
	}
	now := s.now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, created_at) VALUES (?, ?, ?)`,
		email, string(hash), now.Unix())
	if err != nil {
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.User{}, err
	}
	return domain.User{ID: id, Email: email, CreatedAt: now}, nil
}

// Authenticate verifies credentials and returns the account.
func (s *Store) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	var (
		id        int64
		hash      string
		createdAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, password_hash, created_at FROM users WHERE email=?`, email).
		Scan(&id, &hash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	return domain.User{ID: id, Email: email, CreatedAt: time.Unix(createdAt, 0)}, nil
}

// SaveResult appends one completed attempt to the user's history.
func (s *Store) SaveResult(ctx context.Context, userID int64, summary domain.AttemptSummary, duration string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO quiz_history (user_id, score, total, percentage, duration, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		userID, summary.Score, summary.Total, summary.Percentage, duration, s.now().Unix())
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

// History returns the user's most recent attempts, newest first.
func (s *Store) History(ctx context.Context, userID int64) ([]domain.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT score, total, percentage, duration, completed_at
		 FROM quiz_history WHERE user_id=? ORDER BY completed_at DESC, id DESC LIMIT 20`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var (
			entry       domain.HistoryEntry
			completedAt int64
		)
		if err := rows.Scan(&entry.Score, &entry.Total, &entry.Percentage, &entry.Duration, &completedAt); err != nil {
			return nil, err
		}
		entry.CompletedAt = time.Unix(completedAt, 0)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// SaveAPIKey stores the user's provider key encrypted at rest.
func (s *Store) SaveAPIKey(ctx context.Context, userID int64, apiKey string) error {
	encrypted, err := s.cipher.Encrypt(apiKey)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO api_keys (user_id, encrypted_key, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET encrypted_key=excluded.encrypted_key, updated_at=excluded.updated_at`,
		userID, encrypted, s.now().Unix())
	if err != nil {
		return fmt.Errorf("upsert api key: %w", err)
	}
	return nil
}

// APIKey returns the user's decrypted provider key.
func (s *Store) APIKey(ctx context.Context, userID int64) (string, error) {
	var encrypted string
	err := s.db.QueryRowContext(ctx,
		`SELECT encrypted_key FROM api_keys WHERE user_id=?`, userID).Scan(&encrypted)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrAPIKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return s.cipher.Decrypt(encrypted)
}

// HasAPIKey reports whether the user stored a provider key.
func (s *Store) HasAPIKey(ctx context.Context, userID int64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM api_keys WHERE user_id=?`, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteAPIKey removes the user's provider key.
func (s *Store) DeleteAPIKey(ctx context.Context, userID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM api_keys WHERE user_id=?`, userID)
	return err
}
