// Package leaderboard implements the score table, the snapshot cache and the
// simulated active-user gauge behind the HTTP API. All shared state is owned
// by a Service that runs every operation to completion before the next one,
// so endpoint handlers never observe a half-applied mutation.
package leaderboard

import (
	"context"
	"errors"
)

// Entry is one row of the leaderboard.
type Entry struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// Sentinel errors for the rename and identity operations.
var (
	// ErrUsernameTaken is returned when renaming onto an existing username.
	ErrUsernameTaken = errors.New("leaderboard: username already taken")
	// ErrUnknownUser is returned when renaming a username with no entry.
	ErrUnknownUser = errors.New("leaderboard: unknown username")
)

// Repository stores high scores keyed by username plus the auxiliary wallet
// identity records. Implementations: MemoryRepository (process memory, like
// the original service) and SQLiteRepository (durable). The max-wins policy
// lives in the Service, not here: SetHighScore writes unconditionally.
type Repository interface {
	// HighScore returns the stored high score for a username and whether an
	// entry exists.
	HighScore(ctx context.Context, username string) (int, bool, error)

	// SetHighScore creates or overwrites the entry for a username.
	SetHighScore(ctx context.Context, username string, score int) error

	// Exists reports whether a username has an entry or an identity record.
	Exists(ctx context.Context, username string) (bool, error)

	// Rename moves the score entry and any identity records from oldName to
	// newName. Returns ErrUsernameTaken if newName is in use and
	// ErrUnknownUser if oldName has no entry.
	Rename(ctx context.Context, oldName, newName string) error

	// Top returns up to n entries ordered by score descending, ties broken
	// by username so the ordering is deterministic.
	Top(ctx context.Context, n int) ([]Entry, error)

	// Count returns the number of score entries.
	Count(ctx context.Context) (int, error)

	// RegisterWallet records a wallet address to username mapping. A wallet
	// that registers again simply gets a fresh username.
	RegisterWallet(ctx context.Context, wallet, username string) error

	// Close releases any underlying resources.
	Close() error
}
