package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/zusu/flappy-arcade/internal/config"
	"github.com/zusu/flappy-arcade/internal/leaderboard"
	"github.com/zusu/flappy-arcade/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagSSHDB       string
	flagSSHConfig   string
	flagIdleTimeout int
)

var sshCmd = &cobra.Command{
	Use:   "ssh",
	Short: "Serve the game over SSH",
	Long: `Start an SSH server that lets users connect and play.

Each connection gets its own game session; the SSH username becomes the
player name and all sessions share one leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.flappy/host_key

Examples:
  flappy ssh                           # Listen on :23234 with auto-generated key
  flappy ssh --ssh :2222               # Listen on port 2222
  flappy ssh --host-key ./my_host_key  # Use specific host key
  flappy ssh --db ./scores.db          # Use specific database

Users can connect with:
  ssh <name>@localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runSSH,
}

func init() {
	sshCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	sshCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	sshCmd.Flags().StringVar(&flagSSHDB, "db", "~/.flappy/scores.db", "Path to the scores database")
	sshCmd.Flags().StringVar(&flagSSHConfig, "config", "", "Path to custom game config YAML")
	sshCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runSSH(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy-ssh",
	})

	gameCfg, err := config.LoadGame(flagSSHConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	srvCfg := config.DefaultServerConfig()
	srvCfg.DBPath = flagSSHDB

	var repo leaderboard.Repository
	if flagSSHDB == "" {
		repo = leaderboard.NewMemoryRepository()
	} else {
		sqlRepo, openErr := leaderboard.OpenSQLite(flagSSHDB)
		if openErr != nil {
			logger.Warn("could not open scores database, keeping scores in memory", "err", openErr)
			repo = leaderboard.NewMemoryRepository()
		} else {
			repo = sqlRepo
		}
	}
	defer repo.Close()

	svc := leaderboard.NewService(repo, srvCfg)

	sshCfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	server, err := tui.NewSSHServer(sshCfg, gameCfg, svc, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting flappy SSH server on %s\n", sshCfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
