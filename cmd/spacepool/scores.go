package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tharrisw/SPACEPOOL-sub002/internal/platform/tui"
	"github.com/tharrisw/SPACEPOOL-sub002/internal/registry"
	"github.com/tharrisw/SPACEPOOL-sub002/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a mode",
	Long: `Display the top 10 high scores and recent rounds for a mode.

Examples:
  spacepool scores spacepool
  spacepool scores spacepool_gauntlet`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Interactive scoreboard",
	Long:  `Browse high scores and round history in an interactive view.`,
	Run:   runBoard,
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'spacepool list' to see available modes.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'spacepool play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	// Recent rounds
	rounds, err := store.RecentRounds(gameID, 5)
	if err == nil && len(rounds) > 0 {
		fmt.Println()
		fmt.Println("Recent rounds:")
		for _, r := range rounds {
			fmt.Printf("  %-9s  score %-5d  shots %-4d  pocketed %-3d  smashed %-3d  craters %d\n",
				r.Outcome, r.Score, r.Shots, r.BallsPocketed, r.BallsSmashed, r.CellsDestroyed)
		}
	}
}

func runBoard(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if _, err := tui.RunScoreboard(store, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
		os.Exit(1)
	}
}
