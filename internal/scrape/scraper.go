// Package scrape provides chained page fetching for company websites.
package scrape

import "context"

// Page holds a fetched page. HTML is present only for fetchers that return
// raw markup; Text is always populated.
type Page struct {
	URL        string `json:"url"`
	Title      string `json:"title"`
	HTML       string `json:"html,omitempty"`
	Text       string `json:"text"`
	StatusCode int    `json:"status_code"`
	Source     string `json:"source"`
}

// Fetcher fetches a single URL and returns its content.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)
	Name() string
}
