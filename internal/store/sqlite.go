package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

var _ Store = (*SQLite)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS credential (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	token TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS profile (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	name TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS prefs (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	biometric_lock INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS signin (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	first_login_at TIMESTAMP,
	last_sign_in_at TIMESTAMP
);
CREATE TABLE IF NOT EXISTS client (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	client_id TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS records (
	resource TEXT NOT NULL,
	record_id TEXT NOT NULL,
	payload BLOB,
	PRIMARY KEY (resource, record_id)
);
`

type SQLite struct {
	db *sql.DB
}

func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Token(ctx context.Context) (string, error) {
	var token string
	err := s.db.QueryRowContext(ctx, `SELECT token FROM credential WHERE id = 1`).Scan(&token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (s *SQLite) SetToken(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO credential (id, token) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET token = excluded.token`, token)
	if err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

func (s *SQLite) ClearToken(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM credential WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}

func (s *SQLite) Profile(ctx context.Context) (Profile, error) {
	var p Profile
	err := s.db.QueryRowContext(ctx, `SELECT name, email FROM profile WHERE id = 1`).Scan(&p.Name, &p.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, nil
		}
		return Profile{}, fmt.Errorf("failed to load profile: %w", err)
	}
	return p, nil
}

func (s *SQLite) SetProfile(ctx context.Context, p Profile) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profile (id, name, email) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name, email = excluded.email`,
		p.Name, p.Email)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (s *SQLite) ClearProfile(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM profile WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to clear profile: %w", err)
	}
	return nil
}

func (s *SQLite) Prefs(ctx context.Context) (Prefs, error) {
	var lock int
	err := s.db.QueryRowContext(ctx, `SELECT biometric_lock FROM prefs WHERE id = 1`).Scan(&lock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Prefs{}, nil
		}
		return Prefs{}, fmt.Errorf("failed to load prefs: %w", err)
	}
	return Prefs{BiometricLock: lock != 0}, nil
}

func (s *SQLite) SetPrefs(ctx context.Context, p Prefs) error {
	lock := 0
	if p.BiometricLock {
		lock = 1
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO prefs (id, biometric_lock) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET biometric_lock = excluded.biometric_lock`, lock)
	if err != nil {
		return fmt.Errorf("failed to save prefs: %w", err)
	}
	return nil
}

func (s *SQLite) ClearPrefs(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM prefs WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to clear prefs: %w", err)
	}
	return nil
}

func (s *SQLite) ClearRecords(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	return nil
}

func (s *SQLite) ClientID(ctx context.Context) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT client_id FROM client WHERE id = 1`).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("failed to load client id: %w", err)
	}

	id = uuid.NewString()
	if _, err := s.db.ExecContext(ctx, `INSERT INTO client (id, client_id) VALUES (1, ?)`, id); err != nil {
		return "", fmt.Errorf("failed to save client id: %w", err)
	}
	return id, nil
}

func (s *SQLite) MarkSignedIn(ctx context.Context, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO signin (id, first_login_at, last_sign_in_at) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			first_login_at = COALESCE(signin.first_login_at, excluded.first_login_at),
			last_sign_in_at = excluded.last_sign_in_at`, at, at)
	if err != nil {
		return fmt.Errorf("failed to record sign-in: %w", err)
	}
	return nil
}

func (s *SQLite) SignInTimes(ctx context.Context) (time.Time, time.Time, error) {
	var first, last sql.NullTime
	err := s.db.QueryRowContext(ctx, `SELECT first_login_at, last_sign_in_at FROM signin WHERE id = 1`).Scan(&first, &last)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, time.Time{}, nil
		}
		return time.Time{}, time.Time{}, fmt.Errorf("failed to load sign-in times: %w", err)
	}
	return first.Time, last.Time, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
