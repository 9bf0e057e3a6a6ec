// Package search provides full-text search over extracted SQL records,
// backed by an in-memory bleve index built per run.
package search

import (
	"fmt"
	"strconv"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	_ "github.com/blevesearch/bleve/v2/search/highlight/highlighter/ansi"

	"github.com/mvp-joe/dtxscan/internal/dtsx"
)

// Hit is one search result: the matching record, its relevance score and
// highlighted SQL snippets.
type Hit struct {
	Record    dtsx.SQLRecord
	Score     float64
	Fragments []string
}

// Index is an in-memory full-text index over SQL records. It supports
// bleve query syntax: field scoping (component_type:Lookup), boolean
// operators, phrases and wildcards.
type Index struct {
	idx  bleve.Index
	next int
}

// NewIndex creates an empty in-memory index.
func NewIndex() (*Index, error) {
	idx, err := bleve.NewMemOnly(buildMapping())
	if err != nil {
		return nil, fmt.Errorf("creating search index: %w", err)
	}
	return &Index{idx: idx}, nil
}

// buildMapping indexes SQL text with the standard analyzer (stored, with
// term vectors for phrase search and highlighting) and the identifying
// fields with the keyword analyzer for exact filtering.
func buildMapping() *mapping.IndexMappingImpl {
	sqlMapping := bleve.NewTextFieldMapping()
	sqlMapping.Analyzer = "standard"
	sqlMapping.Store = true
	sqlMapping.IncludeTermVectors = true

	keywordMapping := bleve.NewTextFieldMapping()
	keywordMapping.Analyzer = "keyword"
	keywordMapping.Store = true

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("sql", sqlMapping)
	for _, field := range []string{"file", "task_name", "component_type", "component_name"} {
		docMapping.AddFieldMappingsAt(field, keywordMapping)
	}

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// Add batches the records into the index.
func (i *Index) Add(recs []dtsx.SQLRecord) error {
	batch := i.idx.NewBatch()
	for _, rec := range recs {
		id := strconv.Itoa(i.next)
		i.next++
		err := batch.Index(id, map[string]any{
			"file":           rec.File,
			"task_name":      rec.TaskName,
			"component_type": rec.ComponentType,
			"component_name": rec.ComponentName,
			"sql":            rec.SQL,
		})
		if err != nil {
			return fmt.Errorf("indexing record %s: %w", id, err)
		}
	}
	if err := i.idx.Batch(batch); err != nil {
		return fmt.Errorf("applying index batch: %w", err)
	}
	return nil
}

// Search runs a query-string query and returns up to limit hits ordered
// by relevance, with highlighted SQL fragments.
func (i *Index) Search(query string, limit int) ([]Hit, error) {
	q := bleve.NewQueryStringQuery(query)
	req := bleve.NewSearchRequestOptions(q, limit, 0, false)
	req.Fields = []string{"file", "task_name", "component_type", "component_name", "sql"}
	req.Highlight = bleve.NewHighlightWithStyle("ansi")
	req.Highlight.AddField("sql")

	result, err := i.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	hits := make([]Hit, 0, len(result.Hits))
	for _, match := range result.Hits {
		hits = append(hits, Hit{
			Record: dtsx.SQLRecord{
				File:          stringField(match.Fields, "file"),
				TaskName:      stringField(match.Fields, "task_name"),
				ComponentType: stringField(match.Fields, "component_type"),
				ComponentName: stringField(match.Fields, "component_name"),
				SQL:           stringField(match.Fields, "sql"),
			},
			Score:     match.Score,
			Fragments: match.Fragments["sql"],
		})
	}
	return hits, nil
}

// Close releases the index.
func (i *Index) Close() error {
	return i.idx.Close()
}

func stringField(fields map[string]interface{}, name string) string {
	if s, ok := fields[name].(string); ok {
		return s
	}
	return ""
}
