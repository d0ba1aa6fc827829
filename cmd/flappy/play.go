package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zusu/flappy-arcade/internal/client"
	"github.com/zusu/flappy-arcade/internal/config"
	"github.com/zusu/flappy-arcade/internal/core"
	"github.com/zusu/flappy-arcade/internal/platform/tui"
	"github.com/zusu/flappy-arcade/internal/profile"
)

var (
	flagConfig   string
	flagServer   string
	flagUsername string
	flagOffline  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the current terminal",
	Long: `Start a game session in the current terminal.

Controls:
  Space/Up/W - Flap
  P/Esc      - Pause
  R          - Restart (after a crash)
  L/Tab      - Leaderboard
  Q/Ctrl+C   - Quit

The first run generates a player name and stores it in ~/.flappy/profile.yaml.
Scores are submitted to the leaderboard server unless --offline is given.

Examples:
  flappy play
  flappy play --offline
  flappy play --server http://play.example.com:8080
  flappy play --username BirdKing
  flappy play --config ./my-flappy.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagServer, "server", "", "Leaderboard server URL (overrides config)")
	playCmd.Flags().StringVar(&flagUsername, "username", "", "Player name for this session (overrides profile)")
	playCmd.Flags().BoolVar(&flagOffline, "offline", false, "Play without a leaderboard server")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := config.LoadGame(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagServer != "" {
		cfg.API.URL = flagServer
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rc := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	profPath, err := profile.Path()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	prof := &profile.Profile{}
	if profPath != "" {
		if loaded, loadErr := profile.Load(profPath); loadErr == nil {
			prof = loaded
		} else {
			fmt.Fprintf(os.Stderr, "Warning: could not load profile: %v\n", loadErr)
			profPath = ""
		}
	}
	if flagUsername != "" {
		prof.Username = flagUsername
	}
	if prof.Username == "" {
		prof.Username = "anonymous"
	}

	var backend tui.Backend
	if !flagOffline && cfg.API.URL != "" {
		backend = client.New(cfg.API)
	}

	if err := tui.Run(cfg, rc, backend, prof, profPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
