// spacepool is a terminal game of destructible-table pool: sink balls in
// the pockets before explosive ones blast the felt out from under you.
//
// Usage:
//
//	spacepool play [game]      - Play (default: classic mode)
//	spacepool list             - List game modes
//	spacepool scores <game>    - Show high scores for a mode
//	spacepool board            - Interactive scoreboard
//	spacepool serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.spacepool/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game package to register its variants
	_ "github.com/tharrisw/SPACEPOOL-sub002/internal/games/spacepool"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "spacepool",
	Short: "Spacepool - Destructible pool in your terminal",
	Long: `Spacepool is a terminal pool game played on a destructible table.
Volatile balls blast craters in the felt, charged balls detonate on a
timer, and any ball that rolls over a crater is gone for good.

Available commands:
  list     - Show game modes
  play     - Play a mode directly
  scores   - View high scores
  board    - Interactive scoreboard
  serve    - Start SSH server for remote play

Examples:
  spacepool play
  spacepool play spacepool_gauntlet
  spacepool scores spacepool
  spacepool serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.spacepool/scores.db", "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(serveCmd)
}
