package scrape

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/resilience"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/pkg/jina"
)

// JinaFetcher fetches pages through the hosted Jina reader. It returns
// markdown text only (no raw HTML), so it serves research text extraction
// but not DOM-based contact scraping.
type JinaFetcher struct {
	client jina.Client
}

// NewJinaFetcher creates a JinaFetcher.
func NewJinaFetcher(client jina.Client) *JinaFetcher {
	return &JinaFetcher{client: client}
}

func (j *JinaFetcher) Name() string { return "jina_reader" }

func (j *JinaFetcher) Fetch(ctx context.Context, targetURL string) (*Page, error) {
	resp, err := j.client.Read(ctx, targetURL)
	if err != nil {
		return nil, resilience.Upstream("jina_reader", err)
	}
	if resp.Data.Content == "" {
		return nil, resilience.Upstream("jina_reader", eris.New("empty content"))
	}

	return &Page{
		URL:        targetURL,
		Title:      resp.Data.Title,
		Text:       resp.Data.Content,
		StatusCode: 200,
		Source:     "jina_reader",
	}, nil
}
