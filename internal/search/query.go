package search

import (
	"context"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Params configures a search query.
type Params struct {
	Query string // operator's search text
	Type  string // exact item type filter (empty = all)

	Limit  int
	Offset int
}

// DefaultParams returns sensible defaults.
func DefaultParams() Params {
	return Params{Limit: 20}
}

// Result holds search hits in relevance order.
type Result struct {
	Query  string `json:"query"`
	Total  uint64 `json:"total"`
	TookMs int64  `json:"tookMs"`
	Hits   []Hit  `json:"hits"`
}

// Hit is one matched item.
type Hit struct {
	ID     string  `json:"id"`
	Score  float64 `json:"score"`
	Title  string  `json:"title"`
	Author string  `json:"author,omitempty"`
	Type   string  `json:"type,omitempty"`
}

// Search executes a fuzzy full-text query across titles, author, and
// descriptions.
func (s *SearchIndex) Search(ctx context.Context, params Params) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if params.Limit <= 0 {
		params.Limit = 20
	}

	searchQuery := buildQuery(params)
	req := bleve.NewSearchRequestOptions(searchQuery, params.Limit, params.Offset, false)
	req.Fields = []string{"title_en", "title_ru", "title_es", "author", "type"}

	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Query:  params.Query,
		Total:  res.Total,
		TookMs: res.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(res.Hits)),
	}
	for _, hit := range res.Hits {
		h := Hit{
			ID:     hit.ID,
			Score:  hit.Score,
			Title:  stringField(hit.Fields, "title_en"),
			Author: stringField(hit.Fields, "author"),
			Type:   stringField(hit.Fields, "type"),
		}
		if h.Title == "" {
			h.Title = stringField(hit.Fields, "title_ru")
		}
		result.Hits = append(result.Hits, h)
	}
	return result, nil
}

func buildQuery(params Params) query.Query {
	var base query.Query
	text := strings.TrimSpace(params.Query)
	if text == "" {
		base = bleve.NewMatchAllQuery()
	} else {
		match := bleve.NewMatchQuery(text)
		match.SetFuzziness(1)

		// Prefix matching catches partially typed words that fuzziness
		// alone would miss.
		prefix := bleve.NewPrefixQuery(strings.ToLower(text))

		base = bleve.NewDisjunctionQuery(match, prefix)
	}

	if params.Type == "" {
		return base
	}

	typeQuery := bleve.NewTermQuery(params.Type)
	typeQuery.SetField("type")
	return bleve.NewConjunctionQuery(base, typeQuery)
}

func stringField(fields map[string]any, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}
