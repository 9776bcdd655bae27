// Package discovery implements company discovery and scoring: expanding
// targeting criteria into search queries, normalizing hits, scoring against
// the weighted qualification rubric, and deduplicating by domain.
package discovery

import (
	"context"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/pkg/jina"
)

// Hit is a normalized raw search result from the search collaborator.
type Hit struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// Searcher is the boundary to the web-search collaborator. Implementations
// must report quota exhaustion or misconfiguration as zero results or an
// error; the engine recovers either as an empty result set.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]Hit, error)
}

// Candidate is a diagnostics entry: every evaluated candidate, including
// rejected ones, with its score and reasons.
type Candidate struct {
	Name     string   `json:"name"`
	Website  string   `json:"website"`
	Domain   string   `json:"domain"`
	Snippet  string   `json:"snippet,omitempty"`
	Query    string   `json:"query,omitempty"`
	Score    float64  `json:"score"`
	Reasons  []string `json:"reasons,omitempty"`
	Accepted bool     `json:"accepted"`
}

// JinaSearcher adapts the Jina search client to the Searcher boundary.
type JinaSearcher struct {
	client jina.Client
}

// NewJinaSearcher creates a Searcher backed by Jina web search.
func NewJinaSearcher(client jina.Client) *JinaSearcher {
	return &JinaSearcher{client: client}
}

// Search runs a web search and maps results into Hits. An empty response
// (including Jina's no-results code) yields a nil slice and no error.
func (s *JinaSearcher) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	resp, err := s.client.Search(ctx, query, jina.WithLimit(limit))
	if err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, len(resp.Data))
	for _, r := range resp.Data {
		snippet := r.Description
		if snippet == "" {
			snippet = r.Content
		}
		hits = append(hits, Hit{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: snippet,
		})
	}
	return hits, nil
}
