package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/zusu/flappy-arcade/internal/config"
	"github.com/zusu/flappy-arcade/internal/leaderboard"
	"github.com/zusu/flappy-arcade/internal/server"
)

var (
	flagServeConfig string
	flagServeEnv    string
	flagServeAddr   string
	flagServeDB     string
	flagServeMemory bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the leaderboard HTTP server",
	Long: `Start the leaderboard and presence HTTP server.

All players submitting to the same server share one leaderboard. Scores are
kept in SQLite unless --memory is given, in which case they live only for the
lifetime of the process.

Configuration is read from --config (or ~/.flappy/server.yaml, or
./configs/server.yaml), with FLAPPY_* environment variables taking
precedence; --env points at an optional dotenv file.

Examples:
  flappy serve
  flappy serve --addr :9000
  flappy serve --db ./scores.db
  flappy serve --memory
  flappy serve --env ./.env`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeConfig, "config", "", "Path to custom server config YAML")
	serveCmd.Flags().StringVar(&flagServeEnv, "env", "", "Path to a dotenv file with FLAPPY_* overrides")
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "Listen address (overrides config)")
	serveCmd.Flags().StringVar(&flagServeDB, "db", "", "Path to the scores database (overrides config)")
	serveCmd.Flags().BoolVar(&flagServeMemory, "memory", false, "Keep scores in memory only")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy-server",
	})

	cfg, err := config.LoadServer(flagServeConfig, flagServeEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagServeAddr != "" {
		cfg.Addr = flagServeAddr
	}
	if flagServeDB != "" {
		cfg.DBPath = flagServeDB
	}
	if flagServeMemory {
		cfg.DBPath = ""
	}

	var repo leaderboard.Repository
	if cfg.DBPath == "" {
		logger.Info("using in-memory score storage")
		repo = leaderboard.NewMemoryRepository()
	} else {
		sqlRepo, openErr := leaderboard.OpenSQLite(cfg.DBPath)
		if openErr != nil {
			fmt.Fprintf(os.Stderr, "Error opening database: %v\n", openErr)
			os.Exit(1)
		}
		logger.Info("using sqlite score storage", "path", cfg.DBPath)
		repo = sqlRepo
	}
	defer repo.Close()

	svc := leaderboard.NewService(repo, cfg)
	srv := server.New(svc, cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
