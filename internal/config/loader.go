package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadGame loads the game configuration.
// Search order: customPath -> ~/.flappy/game.yaml -> ./configs/game.yaml -> embedded default.
func LoadGame(customPath string) (GameConfig, error) {
	var cfg GameConfig

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userPath := userConfigPath("game.yaml"); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile("configs/game.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	if err := yaml.Unmarshal(defaultGameYAML, &cfg); err != nil {
		return DefaultGameConfig(), nil // fall back to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadServer loads the leaderboard service configuration.
// Search order: customPath -> ~/.flappy/server.yaml -> ./configs/server.yaml ->
// embedded default. After the YAML is resolved, envFile (a .env file, optional)
// and FLAPPY_* environment variables override individual fields.
func LoadServer(customPath, envFile string) (ServerConfig, error) {
	var cfg ServerConfig

	loaded := false
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		loaded = true
	}

	if !loaded {
		if userPath := userConfigPath("server.yaml"); userPath != "" {
			if data, err := os.ReadFile(userPath); err == nil {
				if err := yaml.Unmarshal(data, &cfg); err == nil {
					loaded = true
				}
			}
		}
	}

	if !loaded {
		if data, err := os.ReadFile("configs/server.yaml"); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				loaded = true
			}
		}
	}

	if !loaded {
		if err := yaml.Unmarshal(defaultServerYAML, &cfg); err != nil {
			cfg = DefaultServerConfig()
		}
	}

	applyServerEnv(&cfg, envFile)
	return cfg, nil
}

// applyServerEnv layers .env and process environment on top of the YAML config.
func applyServerEnv(cfg *ServerConfig, envFile string) {
	if envFile != "" {
		//nolint:errcheck // A missing .env file is fine; env vars may still be set.
		godotenv.Load(envFile)
	} else {
		//nolint:errcheck
		godotenv.Load()
	}

	if v := os.Getenv("FLAPPY_ADDR"); v != "" {
		cfg.Addr = v
	} else if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}
	if v := os.Getenv("FLAPPY_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("FLAPPY_TOP_N"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TopN = n
		}
	}
	if v := os.Getenv("FLAPPY_CACHE_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.CacheTTLSeconds = n
		}
	}
}

// userConfigPath returns the path to a user config file, or empty if the home
// directory is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flappy", filename)
}
