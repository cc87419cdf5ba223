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

func TestSaveAndRetrieveCapture(t *testing.T) {
	store := openTestStore(t)

	err := store.SaveCapture("catcher", "midGame", map[string]string{
		"email": "player@example.com",
		"age":   "25-34",
	})
	if err != nil {
		t.Fatalf("SaveCapture() failed: %v", err)
	}

	entry, ok, err := store.Capture("catcher", "midGame")
	if err != nil {
		t.Fatalf("Capture() failed: %v", err)
	}
	if !ok {
		t.Fatal("Capture() found nothing for saved key")
	}
	if entry.Key != "fpd_catcher_midGame" {
		t.Errorf("Key = %q, expected fpd_catcher_midGame", entry.Key)
	}
	if entry.Fields["email"] != "player@example.com" {
		t.Errorf("email field = %q, expected player@example.com", entry.Fields["email"])
	}
}

func TestCaptureMissingKey(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.Capture("catcher", "beforeEnd")
	if err != nil {
		t.Fatalf("Capture() failed: %v", err)
	}
	if ok {
		t.Error("Capture() claims data for a key never saved")
	}
}

func TestRecaptureReplacesBlob(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveCapture("racer", "beforeEnd", map[string]string{"gender": "f"}); err != nil {
		t.Fatalf("SaveCapture() failed: %v", err)
	}
	if err := store.SaveCapture("racer", "beforeEnd", map[string]string{"gender": "m"}); err != nil {
		t.Fatalf("second SaveCapture() failed: %v", err)
	}

	entry, ok, err := store.Capture("racer", "beforeEnd")
	if err != nil || !ok {
		t.Fatalf("Capture() failed: %v ok=%v", err, ok)
	}
	if entry.Fields["gender"] != "m" {
		t.Errorf("gender = %q, expected replacement value m", entry.Fields["gender"])
	}

	all, err := store.AllCaptures()
	if err != nil {
		t.Fatalf("AllCaptures() failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("AllCaptures() = %d entries, expected 1 (upsert)", len(all))
	}
}

func TestScores(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("match3", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("racer", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("match3", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("scores not ordered descending: %v", scores)
	}

	high, err := store.HighScore("match3")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 200 {
		t.Errorf("HighScore() = %d, expected 200", high)
	}

	// No scores for an unknown game
	high, err = store.HighScore("unknown")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("HighScore(unknown) = %d, expected 0", high)
	}
}

func TestTrackingEvents(t *testing.T) {
	store := openTestStore(t)

	if err := store.RecordTrackingEvent("gameStart", "https://t.example.com/1"); err != nil {
		t.Fatalf("RecordTrackingEvent() failed: %v", err)
	}
	if err := store.RecordTrackingEvent("gameComplete", "https://t.example.com/2"); err != nil {
		t.Fatalf("RecordTrackingEvent() failed: %v", err)
	}

	events, err := store.TrackingEvents(10)
	if err != nil {
		t.Fatalf("TrackingEvents() failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	// Newest first
	if events[0].EventKey != "gameComplete" {
		t.Errorf("first event = %q, expected gameComplete", events[0].EventKey)
	}
}
