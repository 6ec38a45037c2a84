// Package store persists the local session: bearer token, cached profile
// fields, account preferences, sign-in timestamps, and cached user-owned
// records. Access goes through narrow get/set/clear contracts so the session
// core can be tested against an in-memory fake.
package store

import (
	"context"
	"errors"
	"time"
)

var ErrNoToken = errors.New("no token stored - sign in first")

type Profile struct {
	Name  string
	Email string
}

type Prefs struct {
	// BiometricLock gates the main screen behind a local-auth check after the
	// app leaves the foreground.
	BiometricLock bool
}

type TokenStore interface {
	// Token returns the stored bearer token, or ErrNoToken when absent.
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

type ProfileStore interface {
	Profile(ctx context.Context) (Profile, error)
	SetProfile(ctx context.Context, p Profile) error
	ClearProfile(ctx context.Context) error
}

type PrefsStore interface {
	Prefs(ctx context.Context) (Prefs, error)
	SetPrefs(ctx context.Context, p Prefs) error
	ClearPrefs(ctx context.Context) error
}

type RecordStore interface {
	// ClearRecords wipes all cached user-owned resource rows.
	ClearRecords(ctx context.Context) error
}

type Store interface {
	TokenStore
	ProfileStore
	PrefsStore
	RecordStore

	// ClientID returns the per-install identifier, generating and persisting
	// one on first use.
	ClientID(ctx context.Context) (string, error)

	// MarkSignedIn records a successful login: first_login_at is set once,
	// last_sign_in_at on every call.
	MarkSignedIn(ctx context.Context, at time.Time) error

	// SignInTimes returns the recorded timestamps; zero values when unset.
	SignInTimes(ctx context.Context) (first, last time.Time, err error)

	Close() error
}

// HasToken reports whether a non-empty token is stored.
func HasToken(ctx context.Context, s TokenStore) (bool, error) {
	_, err := s.Token(ctx)
	if err != nil {
		if errors.Is(err, ErrNoToken) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
