package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("spacepool", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	// Different game
	if _, err := store.SaveScore("spacepool_gauntlet", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("spacepool", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
	}

	gauntletScores, err := store.TopScores("spacepool_gauntlet", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(gauntletScores) != 1 {
		t.Errorf("Expected 1 gauntlet score, got %d", len(gauntletScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	// No scores yet
	high, err := store.HighScore("spacepool")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("spacepool", 100)
	store.SaveScore("spacepool", 300)
	store.SaveScore("spacepool", 200)

	high, err = store.HighScore("spacepool")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("spacepool", 100)
	store.SaveScore("spacepool", 200)
	store.SaveScore("spacepool_gauntlet", 300)

	if err := store.ClearScores("spacepool"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	classic, _ := store.TopScores("spacepool", 10)
	if len(classic) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(classic))
	}

	gauntlet, _ := store.TopScores("spacepool_gauntlet", 10)
	if len(gauntlet) != 1 {
		t.Errorf("Clearing one game should not affect the other")
	}
}

func TestStoreSaveRound(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRound(RoundResult{
		GameID:         "spacepool",
		Seed:           12345,
		Outcome:        "win",
		Score:          42,
		Shots:          17,
		Racks:          1,
		BallsPocketed:  7,
		BallsSmashed:   3,
		CellsDestroyed: 218,
		Duration:       301,
	})
	if err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	if id == 0 {
		t.Error("Expected non-zero record ID")
	}

	rounds, err := store.RecentRounds("spacepool", 10)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(rounds) != 1 {
		t.Fatalf("Expected 1 round, got %d", len(rounds))
	}

	r := rounds[0]
	if r.Seed != 12345 || r.Outcome != "win" || r.Score != 42 {
		t.Errorf("Round fields lost in round trip: %+v", r)
	}
	if r.BallsPocketed != 7 || r.BallsSmashed != 3 || r.CellsDestroyed != 218 {
		t.Errorf("Carnage counters lost in round trip: %+v", r)
	}
}

func TestStoreRecentRoundsFiltersByGame(t *testing.T) {
	store := openTestStore(t)

	store.SaveRound(RoundResult{GameID: "spacepool", Seed: 1, Outcome: "win"})
	store.SaveRound(RoundResult{GameID: "spacepool_gauntlet", Seed: 2, Outcome: "gameover"})

	rounds, err := store.RecentRounds("spacepool", 10)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(rounds) != 1 {
		t.Fatalf("Expected 1 round for spacepool, got %d", len(rounds))
	}
	if rounds[0].Seed != 1 {
		t.Errorf("Got wrong round: %+v", rounds[0])
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("spacepool", 100)
	store.SaveScore("spacepool", 300)

	stats, err := store.GetGameStats("spacepool")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("GamesCount = %d, want 2", stats.GamesCount)
	}
	if stats.HighScore != 300 {
		t.Errorf("HighScore = %d, want 300", stats.HighScore)
	}
	if stats.TotalScore != 400 {
		t.Errorf("TotalScore = %d, want 400", stats.TotalScore)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
