package leaderboard

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/zusu/flappy-arcade/internal/config"
)

// Service is the façade the HTTP handlers (and the SSH server) talk to. One
// mutex serializes every operation: each request runs to completion against
// the shared tables before the next begins, so cache invalidation and table
// mutation are always observed together.
type Service struct {
	mu    sync.Mutex
	repo  Repository
	cache *snapshotCache
	gauge *Gauge
	topN  int
	rng   *rand.Rand // username generation for airdrops
}

// NewService wires a repository to a fresh cache and gauge.
func NewService(repo Repository, cfg config.ServerConfig) *Service {
	topN := cfg.TopN
	if topN <= 0 {
		topN = 10
	}
	seed := time.Now().UnixNano()
	return &Service{
		repo:  repo,
		cache: newSnapshotCache(time.Duration(cfg.CacheTTLSeconds) * time.Second),
		gauge: NewGauge(cfg.Gauge, seed),
		topN:  topN,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// ActiveUsers returns the current gauge value.
func (s *Service) ActiveUsers(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gauge.Value(), nil
}

// NudgeActiveUsers applies a signed delta (plus server jitter) to the gauge
// and returns the new value.
func (s *Service) NudgeActiveUsers(_ context.Context, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gauge.Nudge(delta), nil
}

// SubmitScore applies the max-wins policy: the stored high score only changes
// when the submission is strictly greater. It always returns the entry's
// current high score, which may be higher than what was submitted.
func (s *Service) SubmitScore(ctx context.Context, username string, score int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists, err := s.repo.HighScore(ctx, username)
	if err != nil {
		return 0, err
	}
	if exists && score <= current {
		return current, nil
	}

	if err := s.repo.SetHighScore(ctx, username, score); err != nil {
		return 0, err
	}
	s.cache.Invalidate()
	return score, nil
}

// Leaderboard returns the top-N snapshot, serving the cached copy while it is
// fresh and no score has changed.
func (s *Service) Leaderboard(ctx context.Context) ([]Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entries, ok := s.cache.Get(); ok {
		return entries, true, nil
	}

	entries, err := s.repo.Top(ctx, s.topN)
	if err != nil {
		return nil, false, err
	}
	s.cache.Put(entries)
	return entries, false, nil
}

// CheckUsername reports whether a candidate username can be claimed. Keeping
// your own name is always allowed.
func (s *Service) CheckUsername(ctx context.Context, candidate, current string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current != "" && candidate == current {
		return true, nil
	}
	exists, err := s.repo.Exists(ctx, candidate)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// RenameUser moves a score entry under a new username. Renaming to yourself
// is a successful no-op; renaming onto a taken name fails without touching
// either entry.
func (s *Service) RenameUser(ctx context.Context, oldName, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if oldName == newName {
		return nil
	}
	if err := s.repo.Rename(ctx, oldName, newName); err != nil {
		return err
	}
	s.cache.Invalidate()
	return nil
}

// Airdrop records a wallet address and hands back a generated username,
// retrying until an unused one is found.
func (s *Service) Airdrop(ctx context.Context, wallet string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for attempt := 0; attempt < 100; attempt++ {
		username := fmt.Sprintf("User%04d", 1000+s.rng.Intn(9000))
		exists, err := s.repo.Exists(ctx, username)
		if err != nil {
			return "", err
		}
		if exists {
			continue
		}
		if err := s.repo.RegisterWallet(ctx, wallet, username); err != nil {
			return "", err
		}
		return username, nil
	}
	return "", fmt.Errorf("leaderboard: could not generate a free username")
}

// PlayerCount returns how many usernames hold a score, for the health report.
func (s *Service) PlayerCount(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Count(ctx)
}

// setCacheNow overrides the cache clock; tests only.
func (s *Service) setCacheNow(now func() time.Time) {
	s.cache.now = now
}
