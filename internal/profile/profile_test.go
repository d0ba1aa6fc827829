package profile

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadGeneratesUsernameOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !strings.HasPrefix(p.Username, "User") || len(p.Username) != 8 {
		t.Errorf("generated username = %q, want User####", p.Username)
	}

	// A second load returns the same identity, not a fresh one.
	p2, err := Load(path)
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if p2.Username != p.Username {
		t.Errorf("username changed between loads: %q vs %q", p.Username, p2.Username)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")

	p := &Profile{Username: "BirdKing", BestScore: 42}
	if err := p.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Username != "BirdKing" || got.BestScore != 42 {
		t.Errorf("round trip = %+v", got)
	}
}

func TestRecordScore(t *testing.T) {
	p := &Profile{BestScore: 10}

	if p.RecordScore(5) {
		t.Error("lower score should not update the best")
	}
	if p.RecordScore(10) {
		t.Error("equal score should not update the best")
	}
	if !p.RecordScore(11) {
		t.Error("higher score should update the best")
	}
	if p.BestScore != 11 {
		t.Errorf("BestScore = %d, want 11", p.BestScore)
	}
}
