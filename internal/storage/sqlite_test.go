package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
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

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreInMemory(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer store.Close()

	if err := store.SaveHighScore(9); err != nil {
		t.Fatalf("SaveHighScore() failed: %v", err)
	}
	if got, _ := store.LoadHighScore(); got != 9 {
		t.Errorf("LoadHighScore() = %d, want 9", got)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for i, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore(string(rune('a'+i)), score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
	}
	if scores[0].RunID != "c" {
		t.Errorf("Expected best run to be c, got %q", scores[0].RunID)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("run", (i+1)*100)
	}

	scores, err := store.TopScores(3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreRecentScores(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{5, 1, 9, 3} {
		store.SaveScore("run", score)
	}

	scores, err := store.RecentScores(2)
	if err != nil {
		t.Fatalf("RecentScores() failed: %v", err)
	}
	if len(scores) != 2 || scores[0].Score != 3 || scores[1].Score != 9 {
		t.Errorf("RecentScores(2) = %v, want newest first [3 9]", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.LoadHighScore()
	if err != nil {
		t.Fatalf("LoadHighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for a fresh store, got %d", high)
	}

	store.SaveHighScore(12)
	store.SaveHighScore(30)

	high, err = store.LoadHighScore()
	if err != nil {
		t.Fatalf("LoadHighScore() failed: %v", err)
	}
	if high != 30 {
		t.Errorf("Expected high score of 30, got %d", high)
	}
}

func TestStoreHighScoreNeverDecreases(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{25, 7, 25, 0, 31, 3} {
		if err := store.SaveHighScore(score); err != nil {
			t.Fatalf("SaveHighScore(%d) failed: %v", score, err)
		}
	}
	if high, _ := store.LoadHighScore(); high != 31 {
		t.Errorf("Expected high score of 31, got %d", high)
	}

	// A writer holding a stale best must not lower it
	if err := store.SaveHighScore(10); err != nil {
		t.Fatalf("SaveHighScore() failed: %v", err)
	}
	if high, _ := store.LoadHighScore(); high != 31 {
		t.Errorf("stale write lowered the high score to %d", high)
	}
}

func TestStoreHighScoreSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.SaveHighScore(17)
	store.SetAudioEnabled(false)
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if high, _ := store.LoadHighScore(); high != 17 {
		t.Errorf("high score after reopen = %d, want 17", high)
	}
	if on, _ := store.AudioEnabled(true); on {
		t.Error("audio preference was not persisted")
	}
}

func TestStoreAudioPreferenceDefault(t *testing.T) {
	store := openTestStore(t)

	for _, def := range []bool{true, false} {
		got, err := store.AudioEnabled(def)
		if err != nil {
			t.Fatalf("AudioEnabled() failed: %v", err)
		}
		if got != def {
			t.Errorf("AudioEnabled(%v) = %v on a fresh store", def, got)
		}
	}
}

func TestStoreClearScoresKeepsHighScore(t *testing.T) {
	store := openTestStore(t)

	store.RecordScore("a", 100)
	store.RecordScore("b", 200)
	store.SaveHighScore(200)

	if err := store.ClearScores(); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores(10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if high, _ := store.LoadHighScore(); high != 200 {
		t.Errorf("high score after clear = %d, want 200", high)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Runs != 0 || stats.BestRun != 0 {
		t.Errorf("empty stats = %+v", stats)
	}

	for _, score := range []int{2, 4, 6} {
		store.RecordScore("run", score)
	}

	stats, err = store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Runs != 3 || stats.BestRun != 6 || stats.TotalScore != 12 || stats.AvgScore != 4 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
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
