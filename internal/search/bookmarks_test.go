package search

import (
	"testing"
	"time"

	"github.com/polyglotta/polyglotta/internal/domain"
)

func newTestIndex(t *testing.T) *BookmarkIndex {
	t.Helper()
	index, err := NewBookmarkIndex()
	if err != nil {
		t.Fatalf("NewBookmarkIndex: %v", err)
	}
	t.Cleanup(func() { index.Close() })
	return index
}

func bm(original, translated, notes string) domain.Bookmark {
	return domain.Bookmark{
		OriginalText:   original,
		TranslatedText: translated,
		SourceLang:     "es",
		TargetLang:     "en",
		Timestamp:      time.Now(),
		Notes:          notes,
	}
}

func TestSearchFindsBookmark(t *testing.T) {
	index := newTestIndex(t)
	err := index.Sync(1, []domain.Bookmark{
		bm("hola mundo", "hello world", ""),
		bm("buenos días", "good morning", "greeting"),
	})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}

	results, err := index.Search(1, "morning", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Position != 1 {
		t.Errorf("position = %d, want 1", results[0].Position)
	}
	if results[0].Score <= 0 {
		t.Errorf("score = %v", results[0].Score)
	}
}

func TestSearchMatchesAllTextFields(t *testing.T) {
	index := newTestIndex(t)
	err := index.Sync(1, []domain.Bookmark{
		bm("gato negro", "black cat", ""),
		bm("perro grande", "big dog", "about pets"),
	})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}

	for query, wantPos := range map[string]int{
		"gato": 0, // original text
		"dog":  1, // translated text
		"pets": 1, // notes
	} {
		results, err := index.Search(1, query, 5)
		if err != nil {
			t.Fatalf("Search(%q): %v", query, err)
		}
		if len(results) != 1 || results[0].Position != wantPos {
			t.Errorf("Search(%q) = %v, want position %d", query, results, wantPos)
		}
	}
}

func TestSearchIsolatesChats(t *testing.T) {
	index := newTestIndex(t)
	if err := index.Sync(1, []domain.Bookmark{bm("hola", "hello", "")}); err != nil {
		t.Fatalf("Sync chat 1: %v", err)
	}
	if err := index.Sync(2, []domain.Bookmark{bm("bonjour", "hello", "")}); err != nil {
		t.Fatalf("Sync chat 2: %v", err)
	}

	results, err := index.Search(1, "hello", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Position != 0 {
		t.Fatalf("chat 1 results = %v", results)
	}

	results, err = index.Search(2, "bonjour", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("chat 2 results = %v", results)
	}
}

func TestSyncReplacesOldEntries(t *testing.T) {
	index := newTestIndex(t)
	if err := index.Sync(1, []domain.Bookmark{
		bm("primero", "first", ""),
		bm("segundo", "second", ""),
	}); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	// Removing the first bookmark shifts the second to position 0.
	if err := index.Sync(1, []domain.Bookmark{bm("segundo", "second", "")}); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	results, err := index.Search(1, "first", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("removed bookmark still indexed: %v", results)
	}

	results, err = index.Search(1, "second", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Position != 0 {
		t.Errorf("expected reindexed position 0, got %v", results)
	}
}

func TestSyncEmptyClearsChat(t *testing.T) {
	index := newTestIndex(t)
	if err := index.Sync(1, []domain.Bookmark{bm("hola", "hello", "")}); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if err := index.Sync(1, nil); err != nil {
		t.Fatalf("Sync empty: %v", err)
	}

	results, err := index.Search(1, "hello", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("cleared chat still has results: %v", results)
	}
}
