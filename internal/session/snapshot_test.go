package session

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/polyglotta/polyglotta/internal/domain"
)

func TestSnapshotRoundTrip(t *testing.T) {
	src := New("en")
	src.AddMessage(domain.RoleUser, "Hola", nil)
	idx := src.AddMessage(domain.RoleAssistant, "**Translation (spanish → english):**\n\nHello", map[string]any{
		"detected_language": "es",
		"target_language":   "en",
		"confidence":        1.0,
	})
	src.ToggleLike(idx)
	src.AddBookmark("Hola", "Hello", "es", "en")

	data, err := src.ExportSnapshot()
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(string(data), `"export_timestamp"`) {
		t.Error("snapshot is missing export_timestamp")
	}

	dst := New("en")
	if err := dst.ImportSnapshot(data); err != nil {
		t.Fatalf("import of own export failed: %v", err)
	}

	msgs := dst.Messages()
	if len(msgs) != 2 {
		t.Fatalf("imported %d messages, want 2", len(msgs))
	}
	if msgs[0].Role != domain.RoleUser || msgs[0].Content != "Hola" {
		t.Errorf("first message mangled: %+v", msgs[0])
	}
	if !msgs[1].Liked {
		t.Error("liked flag lost in round trip")
	}
	if got := msgs[1].Metadata["detected_language"]; got != "es" {
		t.Errorf("metadata detected_language = %v, want es", got)
	}
	if got, ok := msgs[1].Metadata["confidence"].(float64); !ok || got != 1.0 {
		t.Errorf("metadata confidence = %v, want 1.0", msgs[1].Metadata["confidence"])
	}
	if !msgs[0].Timestamp.Equal(src.Messages()[0].Timestamp) {
		t.Errorf("timestamp drift: %v vs %v", msgs[0].Timestamp, src.Messages()[0].Timestamp)
	}

	bms := dst.Bookmarks()
	if len(bms) != 1 {
		t.Fatalf("imported %d bookmarks, want 1", len(bms))
	}
	if bms[0].SourceLang != "es" || bms[0].TargetLang != "en" || bms[0].TranslatedText != "Hello" {
		t.Errorf("bookmark mangled: %+v", bms[0])
	}
}

func TestImportMalformedLeavesStateUntouched(t *testing.T) {
	s := New("en")
	s.AddMessage(domain.RoleUser, "keep me", nil)
	s.AddBookmark("keep", "me", "es", "en")

	cases := []string{
		`not json at all`,
		`{"conversation": "nope", "bookmarks": [], "export_timestamp": "x"}`,
		`{"bookmarks": [], "export_timestamp": "x"}`,
		`{"conversation": [{"role": "robot", "content": "hi", "timestamp": "2024-01-01T00:00:00Z"}], "bookmarks": [], "export_timestamp": "x"}`,
		`{"conversation": [{"role": "user", "content": "hi", "timestamp": "yesterday"}], "bookmarks": [], "export_timestamp": "x"}`,
		`{"conversation": [{"role": "user", "content": "hi", "timestamp": "2024-01-01T00:00:00Z", "liked": "yes"}], "bookmarks": [], "export_timestamp": "x"}`,
	}
	for _, raw := range cases {
		err := s.ImportSnapshot([]byte(raw))
		if err == nil {
			t.Errorf("import accepted malformed document: %s", raw)
			continue
		}
		if !errors.Is(err, domain.ErrMalformedSnapshot) {
			t.Errorf("error for %s is not ErrMalformedSnapshot: %v", raw, err)
		}
		if len(s.Messages()) != 1 || len(s.Bookmarks()) != 1 {
			t.Fatalf("failed import mutated state (doc: %s)", raw)
		}
	}
}

func TestImportAcceptsZonelessTimestamps(t *testing.T) {
	s := New("en")
	doc := `{
  "conversation": [
    {"role": "user", "content": "hola", "timestamp": "2024-05-01T10:00:00.123456"},
    {"role": "assistant", "content": "hello", "timestamp": "2024-05-01T10:00:01"}
  ],
  "bookmarks": [
    {"original_text": "hola", "translated_text": "hello", "source_lang": "es", "target_lang": "en", "timestamp": "2024-05-01T10:00:01"}
  ],
  "export_timestamp": "2024-05-01T10:00:02"
}`
	if err := s.ImportSnapshot([]byte(doc)); err != nil {
		t.Fatalf("zone-less timestamps rejected: %v", err)
	}
	if len(s.Messages()) != 2 || len(s.Bookmarks()) != 1 {
		t.Fatalf("import incomplete: %d messages, %d bookmarks", len(s.Messages()), len(s.Bookmarks()))
	}
	if s.Messages()[0].Timestamp.Year() != 2024 {
		t.Errorf("timestamp parsed wrong: %v", s.Messages()[0].Timestamp)
	}
}

func TestImportReplacesExistingState(t *testing.T) {
	s := New("en")
	s.AddMessage(domain.RoleUser, "old", nil)
	s.AddMessage(domain.RoleUser, "older", nil)

	doc := `{"conversation": [{"role": "user", "content": "new", "timestamp": "2024-01-01T00:00:00Z"}], "bookmarks": [], "export_timestamp": "2024-01-01T00:00:00Z"}`
	if err := s.ImportSnapshot([]byte(doc)); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if len(s.Messages()) != 1 || s.Messages()[0].Content != "new" {
		t.Errorf("import did not replace history: %+v", s.Messages())
	}
}

func TestExportFilename(t *testing.T) {
	ts := time.Date(2024, 3, 9, 17, 5, 9, 0, time.UTC)
	if got := ExportFilename(ts); got != "conversation_20240309_170509.json" {
		t.Errorf("ExportFilename = %q", got)
	}
}
