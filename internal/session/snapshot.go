package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/polyglotta/polyglotta/internal/domain"
)

// Snapshot document shape. Field names are part of the exchange format and
// must survive an export/import round trip unchanged.
type snapshotDoc struct {
	Conversation    []messageRecord  `json:"conversation"`
	Bookmarks       []bookmarkRecord `json:"bookmarks"`
	ExportTimestamp string           `json:"export_timestamp"`
}

type messageRecord struct {
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Timestamp string         `json:"timestamp"`
	Metadata  map[string]any `json:"metadata"`
	Liked     bool           `json:"liked"`
	Disliked  bool           `json:"disliked"`
}

type bookmarkRecord struct {
	OriginalText   string `json:"original_text"`
	TranslatedText string `json:"translated_text"`
	SourceLang     string `json:"source_lang"`
	TargetLang     string `json:"target_lang"`
	Timestamp      string `json:"timestamp"`
	Notes          string `json:"notes"`
}

const snapshotSchema = `{
  "type": "object",
  "required": ["conversation", "bookmarks", "export_timestamp"],
  "properties": {
    "conversation": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["role", "content", "timestamp"],
        "properties": {
          "role": {"type": "string", "enum": ["user", "assistant"]},
          "content": {"type": "string"},
          "timestamp": {"type": "string"},
          "metadata": {"type": "object"},
          "liked": {"type": "boolean"},
          "disliked": {"type": "boolean"}
        }
      }
    },
    "bookmarks": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["original_text", "translated_text", "source_lang", "target_lang", "timestamp"],
        "properties": {
          "original_text": {"type": "string"},
          "translated_text": {"type": "string"},
          "source_lang": {"type": "string"},
          "target_lang": {"type": "string"},
          "timestamp": {"type": "string"},
          "notes": {"type": "string"}
        }
      }
    },
    "export_timestamp": {"type": "string"}
  }
}`

var snapshotSchemaLoader = gojsonschema.NewStringLoader(snapshotSchema)

// ExportSnapshot serializes the conversation and bookmarks as an indented
// JSON document. Settings are not part of the snapshot.
func (s *Session) ExportSnapshot() ([]byte, error) {
	doc := snapshotDoc{
		Conversation:    make([]messageRecord, 0, len(s.messages)),
		Bookmarks:       make([]bookmarkRecord, 0, len(s.bookmarks)),
		ExportTimestamp: time.Now().Format(time.RFC3339Nano),
	}
	for _, m := range s.messages {
		doc.Conversation = append(doc.Conversation, messageRecord{
			Role:      string(m.Role),
			Content:   m.Content,
			Timestamp: m.Timestamp.Format(time.RFC3339Nano),
			Metadata:  m.Metadata,
			Liked:     m.Liked,
			Disliked:  m.Disliked,
		})
	}
	for _, bm := range s.bookmarks {
		doc.Bookmarks = append(doc.Bookmarks, bookmarkRecord{
			OriginalText:   bm.OriginalText,
			TranslatedText: bm.TranslatedText,
			SourceLang:     bm.SourceLang,
			TargetLang:     bm.TargetLang,
			Timestamp:      bm.Timestamp.Format(time.RFC3339Nano),
			Notes:          bm.Notes,
		})
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return out, nil
}

// ImportSnapshot replaces the conversation and bookmarks from an exported
// document. The whole document is validated and decoded before any state is
// touched, so a malformed snapshot leaves the session unchanged.
func (s *Session) ImportSnapshot(data []byte) error {
	result, err := gojsonschema.Validate(snapshotSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedSnapshot, err)
	}
	if !result.Valid() {
		return fmt.Errorf("%w: %s", domain.ErrMalformedSnapshot, result.Errors()[0])
	}

	var doc snapshotDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedSnapshot, err)
	}

	messages := make([]domain.ConversationMessage, 0, len(doc.Conversation))
	for i, rec := range doc.Conversation {
		ts, err := parseSnapshotTime(rec.Timestamp)
		if err != nil {
			return fmt.Errorf("%w: conversation[%d].timestamp: %v", domain.ErrMalformedSnapshot, i, err)
		}
		meta := rec.Metadata
		if meta == nil {
			meta = map[string]any{}
		}
		messages = append(messages, domain.ConversationMessage{
			Role:      domain.Role(rec.Role),
			Content:   rec.Content,
			Timestamp: ts,
			Metadata:  meta,
			Liked:     rec.Liked,
			Disliked:  rec.Disliked,
		})
	}

	bookmarks := make([]domain.Bookmark, 0, len(doc.Bookmarks))
	for i, rec := range doc.Bookmarks {
		ts, err := parseSnapshotTime(rec.Timestamp)
		if err != nil {
			return fmt.Errorf("%w: bookmarks[%d].timestamp: %v", domain.ErrMalformedSnapshot, i, err)
		}
		bookmarks = append(bookmarks, domain.Bookmark{
			OriginalText:   rec.OriginalText,
			TranslatedText: rec.TranslatedText,
			SourceLang:     rec.SourceLang,
			TargetLang:     rec.TargetLang,
			Timestamp:      ts,
			Notes:          rec.Notes,
		})
	}

	s.messages = messages
	s.bookmarks = bookmarks
	return nil
}

// parseSnapshotTime accepts RFC 3339 timestamps as well as the zone-less
// ISO 8601 variants older exports carry.
func parseSnapshotTime(v string) (time.Time, error) {
	for _, layout := range []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
	} {
		if ts, err := time.Parse(layout, v); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", v)
}

// ExportFilename names a snapshot download after its export moment.
func ExportFilename(now time.Time) string {
	return "conversation_" + now.Format("20060102_150405") + ".json"
}
