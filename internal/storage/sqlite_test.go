package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
	if store.Driver() != DriverSQLite {
		t.Errorf("Driver() = %q, expected %q", store.Driver(), DriverSQLite)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTemp(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore(ScoreEntry{GameID: "rocks", Profile: "local", Level: 1, Score: score}); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore(ScoreEntry{GameID: "rocks_entities", Profile: "local", Score: 500}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("rocks", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].Profile != "local" || scores[0].Level != 1 {
		t.Errorf("Unexpected entry fields: %+v", scores[0])
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not read back")
	}

	other, err := store.TopScores("rocks_entities", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("Expected 1 rocks_entities score, got %d", len(other))
	}
}

func TestStoreRunIDs(t *testing.T) {
	store := openTemp(t)

	id, err := store.SaveScore(ScoreEntry{GameID: "rocks", Score: 10})
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("SaveScore() returned %q, not a UUID: %v", id, err)
	}

	fixed := uuid.NewString()
	got, err := store.SaveScore(ScoreEntry{RunID: fixed, GameID: "rocks", Score: 20})
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if got != fixed {
		t.Errorf("SaveScore() = %q, expected the supplied %q", got, fixed)
	}

	if _, err := store.SaveScore(ScoreEntry{RunID: fixed, GameID: "rocks", Score: 30}); err == nil {
		t.Error("Saving a duplicate run ID should fail")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTemp(t)

	for i := 0; i < 5; i++ {
		store.SaveScore(ScoreEntry{GameID: "rocks", Score: (i + 1) * 100})
	}

	scores, err := store.TopScores("rocks", 3)
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

func TestStoreHighScoreAndStats(t *testing.T) {
	store := openTemp(t)

	high, err := store.HighScore("rocks")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	empty, err := store.Stats("rocks")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.RunsCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Unexpected stats for empty game: %+v", empty)
	}

	store.SaveScore(ScoreEntry{GameID: "rocks", Level: 2, Score: 100})
	store.SaveScore(ScoreEntry{GameID: "rocks", Level: 1, Score: 300})
	store.SaveScore(ScoreEntry{GameID: "rocks", Level: 3, Score: 200})

	high, err = store.HighScore("rocks")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}

	stats, err := store.Stats("rocks")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.RunsCount != 3 || stats.HighScore != 300 || stats.BestLevel != 3 || stats.AvgScore != 200 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed was not set")
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTemp(t)

	store.SaveScore(ScoreEntry{GameID: "rocks", Score: 100})
	store.SaveScore(ScoreEntry{GameID: "rocks", Score: 200})
	store.SaveScore(ScoreEntry{GameID: "rocks_entities", Score: 300})

	if err := store.ClearScores("rocks"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("rocks", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 rocks scores after clear, got %d", len(scores))
	}
	other, _ := store.TopScores("rocks_entities", 10)
	if len(other) != 1 {
		t.Errorf("rocks_entities scores should not be affected by clearing rocks")
	}
}

func TestStoreProgress(t *testing.T) {
	store := openTemp(t)

	if _, err := store.LoadProgress("alice"); !errors.Is(err, ErrNoProgress) {
		t.Fatalf("LoadProgress() of unknown profile = %v, expected ErrNoProgress", err)
	}

	if err := store.SaveProgress("alice", 2); err != nil {
		t.Fatalf("SaveProgress() failed: %v", err)
	}
	if err := store.SaveProgress("alice", 4); err != nil {
		t.Fatalf("SaveProgress() overwrite failed: %v", err)
	}
	if err := store.SaveProgress("bob", 1); err != nil {
		t.Fatalf("SaveProgress() failed: %v", err)
	}

	level, err := store.LoadProgress("alice")
	if err != nil || level != 4 {
		t.Errorf("LoadProgress(alice) = %d, %v; expected 4", level, err)
	}
	level, err = store.LoadProgress("bob")
	if err != nil || level != 1 {
		t.Errorf("LoadProgress(bob) = %d, %v; expected 1", level, err)
	}

	if err := store.SaveProgress("alice", -1); err == nil {
		t.Error("SaveProgress() with a negative level should fail")
	}

	if err := store.ResetProgress("alice"); err != nil {
		t.Fatalf("ResetProgress() failed: %v", err)
	}
	if _, err := store.LoadProgress("alice"); !errors.Is(err, ErrNoProgress) {
		t.Errorf("LoadProgress() after reset = %v, expected ErrNoProgress", err)
	}
}

func TestRebind(t *testing.T) {
	pg := &Store{driver: DriverPostgres}
	lite := &Store{driver: DriverSQLite}
	q := "SELECT a FROM t WHERE b = ? AND c = ?"

	if got := pg.rebind(q); got != "SELECT a FROM t WHERE b = $1 AND c = $2" {
		t.Errorf("postgres rebind = %q", got)
	}
	if got := lite.rebind(q); got != q {
		t.Errorf("sqlite rebind changed the query: %q", got)
	}
}

func TestIsPostgresDSN(t *testing.T) {
	tests := []struct {
		dsn      string
		expected bool
	}{
		{"postgres://user@localhost/rocks", true},
		{"postgresql://localhost/rocks?sslmode=disable", true},
		{"~/.arcade/rocks.db", false},
		{"/tmp/postgres.db", false},
	}
	for _, tc := range tests {
		if got := IsPostgresDSN(tc.dsn); got != tc.expected {
			t.Errorf("IsPostgresDSN(%q) = %v, expected %v", tc.dsn, got, tc.expected)
		}
	}
}

// Runs against a real server when ROCKS_TEST_POSTGRES holds a DSN.
func TestPostgresProgress(t *testing.T) {
	dsn := os.Getenv("ROCKS_TEST_POSTGRES")
	if dsn == "" {
		t.Skip("ROCKS_TEST_POSTGRES not set")
	}
	store, err := Open(dsn)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	profile := "test-" + uuid.NewString()
	defer store.ResetProgress(profile)

	if err := store.SaveProgress(profile, 3); err != nil {
		t.Fatalf("SaveProgress() failed: %v", err)
	}
	if level, err := store.LoadProgress(profile); err != nil || level != 3 {
		t.Errorf("LoadProgress() = %d, %v; expected 3", level, err)
	}
}
