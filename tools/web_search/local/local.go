package local

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/blevesearch/bleve"
	"github.com/mohammad-safakhou/briefer/tools/web_search/models"
	"github.com/mohammad-safakhou/briefer/utils"
)

// Document is one entry of the on-disk corpus used by the offline provider.
type Document struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
	Text    string `json:"text"`
}

// Search serves the web-search capability from a bleve index over a local
// corpus. Useful for air-gapped runs and deterministic tests.
type Search struct {
	index bleve.Index
	meta  map[string]Document
}

// New builds an in-memory index from a JSON corpus file (an array of
// documents). An empty path yields an empty index: every query returns zero
// hits, which the pipeline treats as a degraded-but-valid search result.
func New(corpusPath string) (*Search, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}
	s := &Search{index: idx, meta: make(map[string]Document)}
	if corpusPath == "" {
		return s, nil
	}

	data, err := os.ReadFile(corpusPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}
	var docs []Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse corpus: %w", err)
	}
	for i, doc := range docs {
		if doc.ID == "" {
			doc.ID = fmt.Sprintf("doc-%d", i)
		}
		if err := s.Add(doc); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add indexes a single document.
func (s *Search) Add(doc Document) error {
	s.meta[doc.ID] = doc
	return s.index.Index(doc.ID, map[string]string{
		"title":   doc.Title,
		"snippet": doc.Snippet,
		"text":    doc.Text,
	})
}

func (s *Search) Search(ctx context.Context, q string, k int, domains []string) ([]models.Hit, error) {
	if k <= 0 {
		k = 10
	}
	query := bleve.NewQueryStringQuery(sanitizeQuery(q))
	req := bleve.NewSearchRequestOptions(query, k*2, 0, false)
	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, err
	}
	var out []models.Hit
	for _, hit := range res.Hits {
		doc, ok := s.meta[hit.ID]
		if !ok {
			continue
		}
		domain := utils.Domain(doc.URL)
		if len(domains) > 0 && !domainAllowed(domain, domains) {
			continue
		}
		snippet := doc.Snippet
		if snippet == "" && len(doc.Text) > 0 {
			snippet = doc.Text
			if len(snippet) > 300 {
				snippet = snippet[:300]
			}
		}
		out = append(out, models.Hit{
			ID:      doc.ID,
			Title:   doc.Title,
			URL:     doc.URL,
			Snippet: snippet,
			Domain:  domain,
			Score:   hit.Score,
		})
		if len(out) >= k {
			break
		}
	}
	return out, nil
}

func domainAllowed(domain string, allowed []string) bool {
	for _, d := range allowed {
		if strings.Contains(domain, d) {
			return true
		}
	}
	return false
}

// sanitizeQuery strips query-string syntax characters so free-text prompts
// never trip bleve's parser.
func sanitizeQuery(q string) string {
	replacer := strings.NewReplacer(`"`, " ", "+", " ", "-", " ", ":", " ", "^", " ", "~", " ", "*", " ", "?", " ")
	return strings.TrimSpace(replacer.Replace(q))
}
