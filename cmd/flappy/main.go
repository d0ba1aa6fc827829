// flappy is a terminal Flappy-Bird clone with a shared online leaderboard.
//
// Usage:
//
//	flappy play              - Play in the current terminal
//	flappy serve             - Start the leaderboard HTTP server
//	flappy ssh               - Serve the game over SSH
//	flappy top               - Print the leaderboard
//	flappy username          - Show or change your player name
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible runs
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS  int
	flagSeed int64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - a terminal flappy-bird with an online leaderboard",
	Long: `Flappy is a terminal rendition of the flappy-bird arcade game with a
shared leaderboard service.

Available commands:
  play      - Play in the current terminal
  serve     - Start the leaderboard HTTP server
  ssh       - Serve the game over SSH
  top       - Print the current leaderboard
  username  - Show or change your player name

Examples:
  flappy play
  flappy play --offline
  flappy serve --db ~/.flappy/scores.db
  flappy ssh --ssh :2222
  flappy top
  flappy username set BirdKing`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sshCmd)
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(usernameCmd)
}
