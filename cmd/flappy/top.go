package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/zusu/flappy-arcade/internal/client"
	"github.com/zusu/flappy-arcade/internal/config"
)

var flagTopServer string

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Print the current leaderboard",
	Long: `Fetch and print the leaderboard from the server.

Examples:
  flappy top
  flappy top --server http://play.example.com:8080`,
	Args: cobra.NoArgs,
	Run:  runTop,
}

func init() {
	topCmd.Flags().StringVar(&flagTopServer, "server", "", "Leaderboard server URL (overrides config)")
}

func runTop(_ *cobra.Command, _ []string) {
	cfg, err := config.LoadGame("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagTopServer != "" {
		cfg.API.URL = flagTopServer
	}

	api := client.New(cfg.API)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	entries, err := api.Leaderboard(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching leaderboard: %v\n", err)
		os.Exit(1)
	}

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tPLAYER\tSCORE")
	for i, e := range entries {
		fmt.Fprintf(w, "#%d\t%s\t%d\n", i+1, e.Username, e.Score)
	}
	w.Flush()
}
