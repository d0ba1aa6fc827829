package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zusu/flappy-arcade/internal/client"
	"github.com/zusu/flappy-arcade/internal/config"
	"github.com/zusu/flappy-arcade/internal/profile"
)

var flagUsernameServer string

var usernameCmd = &cobra.Command{
	Use:   "username [set <name>]",
	Short: "Show or change your player name",
	Long: `Show the player name stored in your profile, or change it.

Changing the name renames you on the leaderboard server too, carrying your
high score over. The change is rejected if the name is already taken.

Examples:
  flappy username
  flappy username set BirdKing`,
	Args: cobra.MaximumNArgs(2),
	Run:  runUsername,
}

func init() {
	usernameCmd.Flags().StringVar(&flagUsernameServer, "server", "", "Leaderboard server URL (overrides config)")
}

func runUsername(_ *cobra.Command, args []string) {
	profPath, err := profile.Path()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	prof, err := profile.Load(profPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading profile: %v\n", err)
		os.Exit(1)
	}

	if len(args) == 0 {
		fmt.Printf("%s (best score %d)\n", prof.Username, prof.BestScore)
		return
	}

	if args[0] != "set" || len(args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: flappy username set <name>")
		os.Exit(1)
	}
	newName := args[1]
	if newName == prof.Username {
		fmt.Println("That is already your name.")
		return
	}

	cfg, err := config.LoadGame("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagUsernameServer != "" {
		cfg.API.URL = flagUsernameServer
	}

	api := client.New(cfg.API)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	available, err := api.CheckUsername(ctx, newName, prof.Username)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not reach server, renaming locally only: %v\n", err)
	} else if !available {
		fmt.Fprintf(os.Stderr, "Error: %q is already taken\n", newName)
		os.Exit(1)
	} else if err := api.UpdateUsername(ctx, prof.Username, newName); err != nil {
		// Unknown on the server just means no score was submitted yet.
		fmt.Fprintf(os.Stderr, "Note: server rename skipped: %v\n", err)
	}

	prof.Username = newName
	if err := prof.Save(profPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving profile: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("You are now %s.\n", newName)
}
