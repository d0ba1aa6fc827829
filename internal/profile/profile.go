// Package profile persists the local player identity under ~/.flappy. The
// profile stores the generated username and the best score seen on this
// machine, so offline play keeps a record between sessions.
package profile

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const fileName = "profile.yaml"

// Profile is the locally persisted player identity.
type Profile struct {
	Username  string `yaml:"username"`
	BestScore int    `yaml:"best_score"`
}

// Path returns the profile file location, creating the config directory.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("profile: resolve home: %w", err)
	}
	dir := filepath.Join(home, ".flappy")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("profile: create config dir: %w", err)
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads the profile at path, generating and persisting a fresh one when
// the file does not exist.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		p := &Profile{Username: generateUsername()}
		if err := p.Save(path); err != nil {
			return nil, err
		}
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("profile: read %s: %w", path, err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("profile: parse %s: %w", path, err)
	}
	if p.Username == "" {
		p.Username = generateUsername()
		if err := p.Save(path); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

// Save writes the profile to path.
func (p *Profile) Save(path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("profile: encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("profile: write %s: %w", path, err)
	}
	return nil
}

// RecordScore updates BestScore if score beats it and reports whether it did.
func (p *Profile) RecordScore(score int) bool {
	if score <= p.BestScore {
		return false
	}
	p.BestScore = score
	return true
}

func generateUsername() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return fmt.Sprintf("User%04d", 1000+rng.Intn(9000))
}
