// Package search provides an in-memory full-text index over bookmarks.
// Each chat's entries are reindexed wholesale after any mutation, so
// positions in hits always refer to the chat's current bookmark list.
package search

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/polyglotta/polyglotta/internal/domain"
)

// Result is one bookmark hit: its position in the chat's bookmark list and
// the relevance score.
type Result struct {
	Position int
	Score    float64
}

// BookmarkIndex indexes bookmark text per chat. Safe for concurrent use.
type BookmarkIndex struct {
	mu    sync.Mutex
	index bleve.Index
	// Number of documents currently indexed per chat, needed to clear a
	// chat's old entries before reindexing.
	counts map[int64]int
}

func NewBookmarkIndex() (*BookmarkIndex, error) {
	index, err := bleve.NewMemOnly(buildBookmarkMapping())
	if err != nil {
		return nil, fmt.Errorf("create bookmark index: %w", err)
	}
	return &BookmarkIndex{index: index, counts: make(map[int64]int)}, nil
}

func buildBookmarkMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()

	chatField := bleve.NewTextFieldMapping()
	chatField.Analyzer = keyword.Name
	chatField.Store = true
	chatField.Index = true
	chatField.IncludeInAll = false
	docMapping.AddFieldMappingsAt("chat", chatField)

	for _, name := range []string{"original_text", "translated_text", "notes"} {
		textField := bleve.NewTextFieldMapping()
		textField.Analyzer = standard.Name
		textField.Store = false
		textField.Index = true
		docMapping.AddFieldMappingsAt(name, textField)
	}

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

func bookmarkDocID(chatID int64, position int) string {
	return fmt.Sprintf("%d:%d", chatID, position)
}

// Sync replaces the chat's indexed entries with the given bookmark list.
func (b *BookmarkIndex) Sync(chatID int64, bookmarks []domain.Bookmark) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	batch := b.index.NewBatch()
	for i := 0; i < b.counts[chatID]; i++ {
		batch.Delete(bookmarkDocID(chatID, i))
	}
	for i, bm := range bookmarks {
		doc := map[string]interface{}{
			"chat":            strconv.FormatInt(chatID, 10),
			"original_text":   bm.OriginalText,
			"translated_text": bm.TranslatedText,
			"notes":           bm.Notes,
		}
		if err := batch.Index(bookmarkDocID(chatID, i), doc); err != nil {
			return fmt.Errorf("index bookmark %d: %w", i, err)
		}
	}
	if err := b.index.Batch(batch); err != nil {
		return fmt.Errorf("apply bookmark batch: %w", err)
	}
	b.counts[chatID] = len(bookmarks)
	return nil
}

// Search returns the chat's best-matching bookmark positions, best first.
func (b *BookmarkIndex) Search(chatID int64, query string, limit int) ([]Result, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	matchQuery := bleve.NewMatchQuery(query)
	chatQuery := bleve.NewTermQuery(strconv.FormatInt(chatID, 10))
	chatQuery.SetField("chat")
	combined := bleve.NewConjunctionQuery(matchQuery, chatQuery)

	searchRequest := bleve.NewSearchRequest(combined)
	searchRequest.Size = limit

	searchResult, err := b.index.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("bookmark search: %w", err)
	}

	results := make([]Result, 0, len(searchResult.Hits))
	for _, hit := range searchResult.Hits {
		sep := strings.LastIndexByte(hit.ID, ':')
		if sep < 0 {
			continue
		}
		position, err := strconv.Atoi(hit.ID[sep+1:])
		if err != nil {
			continue
		}
		results = append(results, Result{Position: position, Score: hit.Score})
	}
	return results, nil
}

func (b *BookmarkIndex) Close() error {
	return b.index.Close()
}
