package leaderboard

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver, no CGO
)

// SQLiteRepository is a durable Repository. The original service kept scores
// in process memory; this implementation exists so a restart does not wipe
// the leaderboard, behind the same interface.
type SQLiteRepository struct {
	db *sql.DB
}

// OpenSQLite creates or opens a SQLite database at the given path, creating
// parent directories and running migrations as needed. A leading ~ expands to
// the user's home directory.
func OpenSQLite(dbPath string) (*SQLiteRepository, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("leaderboard: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("leaderboard: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("leaderboard: cannot connect to database: %w", err)
	}

	repo := &SQLiteRepository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("leaderboard: migration failed: %w", err)
	}
	return repo, nil
}

// migrate creates the schema if it doesn't exist.
func (r *SQLiteRepository) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS players (
			username TEXT PRIMARY KEY,
			high_score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_players_top ON players(high_score DESC, username);

		CREATE TABLE IF NOT EXISTS identities (
			wallet TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_identities_username ON identities(username);
	`
	_, err := r.db.Exec(schema)
	return err
}

// HighScore returns the stored score for a username.
func (r *SQLiteRepository) HighScore(ctx context.Context, username string) (int, bool, error) {
	var score int
	err := r.db.QueryRowContext(ctx,
		"SELECT high_score FROM players WHERE username = ?", username,
	).Scan(&score)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("leaderboard: cannot query high score: %w", err)
	}
	return score, true, nil
}

// SetHighScore creates or overwrites the entry for a username.
func (r *SQLiteRepository) SetHighScore(ctx context.Context, username string, score int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO players (username, high_score) VALUES (?, ?)
		 ON CONFLICT(username) DO UPDATE SET
			high_score = excluded.high_score,
			updated_at = CURRENT_TIMESTAMP`,
		username, score,
	)
	if err != nil {
		return fmt.Errorf("leaderboard: cannot save score: %w", err)
	}
	return nil
}

// Exists reports whether a username is in use by a score entry or identity.
func (r *SQLiteRepository) Exists(ctx context.Context, username string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM (
			SELECT username FROM players WHERE username = ?
			UNION ALL
			SELECT username FROM identities WHERE username = ?
		 )`,
		username, username,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("leaderboard: cannot check username: %w", err)
	}
	return n > 0, nil
}

// Rename moves a score entry to a new key and updates identity records,
// atomically within a transaction. The target must be free by the same
// predicate Exists uses, so a name reported unavailable can never be
// renamed onto.
func (r *SQLiteRepository) Rename(ctx context.Context, oldName, newName string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("leaderboard: cannot begin rename: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var n int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM (
			SELECT username FROM players WHERE username = ?
			UNION ALL
			SELECT username FROM identities WHERE username = ?
		 )`,
		newName, newName,
	).Scan(&n); err != nil {
		return fmt.Errorf("leaderboard: cannot check rename target: %w", err)
	}
	if n > 0 {
		return ErrUsernameTaken
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE players SET username = ?, updated_at = CURRENT_TIMESTAMP WHERE username = ?",
		newName, oldName,
	)
	if err != nil {
		return fmt.Errorf("leaderboard: cannot rename: %w", err)
	}
	moved, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("leaderboard: cannot rename: %w", err)
	}
	if moved == 0 {
		return ErrUnknownUser
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE identities SET username = ? WHERE username = ?",
		newName, oldName,
	); err != nil {
		return fmt.Errorf("leaderboard: cannot update identities: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("leaderboard: cannot commit rename: %w", err)
	}
	return nil
}

// Top returns the n highest entries, score descending, username ascending on ties.
func (r *SQLiteRepository) Top(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		n = 10
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT username, high_score FROM players
		 ORDER BY high_score DESC, username ASC
		 LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: cannot query top scores: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Username, &e.Score); err != nil {
			return nil, fmt.Errorf("leaderboard: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("leaderboard: row iteration error: %w", err)
	}
	return entries, nil
}

// Count returns the number of score entries.
func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM players").Scan(&n); err != nil {
		return 0, fmt.Errorf("leaderboard: cannot count players: %w", err)
	}
	return n, nil
}

// RegisterWallet records or refreshes a wallet's username.
func (r *SQLiteRepository) RegisterWallet(ctx context.Context, wallet, username string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO identities (wallet, username) VALUES (?, ?)
		 ON CONFLICT(wallet) DO UPDATE SET username = excluded.username`,
		wallet, username,
	)
	if err != nil {
		return fmt.Errorf("leaderboard: cannot register wallet: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
