package tui

import (
	"context"

	"github.com/zusu/flappy-arcade/internal/leaderboard"
)

// Backend is the leaderboard surface the TUI talks to. The HTTP client
// satisfies it for remote play; ServiceBackend satisfies it for SSH sessions
// that share an in-process service without loopback HTTP.
type Backend interface {
	ActiveUsers(ctx context.Context) (int, error)
	NudgeActiveUsers(ctx context.Context, delta int) (int, error)
	SubmitScore(ctx context.Context, username string, score int) (int, error)
	Leaderboard(ctx context.Context) ([]leaderboard.Entry, error)
	CheckUsername(ctx context.Context, candidate, current string) (bool, error)
	UpdateUsername(ctx context.Context, oldName, newName string) error
}

// ServiceBackend adapts a leaderboard.Service to the Backend interface.
type ServiceBackend struct {
	svc *leaderboard.Service
}

// NewServiceBackend wraps an in-process service.
func NewServiceBackend(svc *leaderboard.Service) *ServiceBackend {
	return &ServiceBackend{svc: svc}
}

func (b *ServiceBackend) ActiveUsers(ctx context.Context) (int, error) {
	return b.svc.ActiveUsers(ctx)
}

func (b *ServiceBackend) NudgeActiveUsers(ctx context.Context, delta int) (int, error) {
	return b.svc.NudgeActiveUsers(ctx, delta)
}

func (b *ServiceBackend) SubmitScore(ctx context.Context, username string, score int) (int, error) {
	return b.svc.SubmitScore(ctx, username, score)
}

func (b *ServiceBackend) Leaderboard(ctx context.Context) ([]leaderboard.Entry, error) {
	entries, _, err := b.svc.Leaderboard(ctx)
	return entries, err
}

func (b *ServiceBackend) CheckUsername(ctx context.Context, candidate, current string) (bool, error) {
	return b.svc.CheckUsername(ctx, candidate, current)
}

func (b *ServiceBackend) UpdateUsername(ctx context.Context, oldName, newName string) error {
	return b.svc.RenameUser(ctx, oldName, newName)
}
