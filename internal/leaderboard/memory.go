package leaderboard

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository keeps the score table in process memory, matching the
// original service: no persistence, entries never expire.
type MemoryRepository struct {
	mu         sync.RWMutex
	scores     map[string]int
	identities map[string]string // wallet -> username
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		scores:     make(map[string]int),
		identities: make(map[string]string),
	}
}

// HighScore returns the stored score for a username.
func (r *MemoryRepository) HighScore(_ context.Context, username string) (int, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	score, ok := r.scores[username]
	return score, ok, nil
}

// SetHighScore creates or overwrites the entry for a username.
func (r *MemoryRepository) SetHighScore(_ context.Context, username string, score int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scores[username] = score
	return nil
}

// Exists reports whether a username is in use by a score entry or identity.
func (r *MemoryRepository) Exists(_ context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.scores[username]; ok {
		return true, nil
	}
	for _, name := range r.identities {
		if name == username {
			return true, nil
		}
	}
	return false, nil
}

// Rename moves a score entry to a new key and updates identity records. The
// target must be free by the same predicate Exists uses, so a name reported
// unavailable can never be renamed onto.
func (r *MemoryRepository) Rename(_ context.Context, oldName, newName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.scores[newName]; taken {
		return ErrUsernameTaken
	}
	for _, name := range r.identities {
		if name == newName {
			return ErrUsernameTaken
		}
	}
	score, ok := r.scores[oldName]
	if !ok {
		return ErrUnknownUser
	}

	delete(r.scores, oldName)
	r.scores[newName] = score

	for wallet, name := range r.identities {
		if name == oldName {
			r.identities[wallet] = newName
		}
	}
	return nil
}

// Top returns the n highest entries, score descending, username ascending on
// ties so repeated calls return an identical order.
func (r *MemoryRepository) Top(_ context.Context, n int) ([]Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]Entry, 0, len(r.scores))
	for username, score := range r.scores {
		entries = append(entries, Entry{Username: username, Score: score})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Username < entries[j].Username
	})

	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

// Count returns the number of score entries.
func (r *MemoryRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.scores), nil
}

// RegisterWallet records or refreshes a wallet's username.
func (r *MemoryRepository) RegisterWallet(_ context.Context, wallet, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.identities[wallet] = username
	return nil
}

// Close is a no-op for the in-memory repository.
func (r *MemoryRepository) Close() error {
	return nil
}
