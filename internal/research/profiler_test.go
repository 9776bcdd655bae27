package research

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/model"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/resilience"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/scrape"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/pkg/anthropic"
)

// scriptedLLM replies with canned text, one reply per call, cycling the last.
type scriptedLLM struct {
	replies  []string
	err      error
	requests []anthropic.MessageRequest
}

func (s *scriptedLLM) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	idx := len(s.requests) - 1
	if idx >= len(s.replies) {
		idx = len(s.replies) - 1
	}
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: s.replies[idx]}},
	}, nil
}

type pageFetcher struct {
	page *scrape.Page
	err  error
}

func (p *pageFetcher) Fetch(ctx context.Context, url string) (*scrape.Page, error) {
	return p.page, p.err
}

func (p *pageFetcher) Name() string { return "test" }

func testCompany() model.Company {
	return model.Company{
		ID:               "co-1",
		Name:             "Sunstone Capital",
		Website:          "https://sunstonecp.com",
		Domain:           "sunstonecp.com",
		DiscoveryReasons: []string{"capital-partner language"},
	}
}

func TestProfile(t *testing.T) {
	llm := &scriptedLLM{replies: []string{`Here you go:
	{"summary": "LP equity firm", "pain_points": "deal flow", "growth_signals": "new fund",
	 "tech_stack": "none", "buying_triggers": "fund close", "sources": ["https://sunstonecp.com/about"],
	 "confidence": 0.8}`}}
	fetcher := &pageFetcher{page: &scrape.Page{
		URL:  "https://sunstonecp.com",
		Text: "We provide limited partner equity for build-to-rent.",
	}}

	profile, err := NewProfiler(llm, fetcher, "test-model").Profile(context.Background(), testCompany())

	require.NoError(t, err)
	assert.Equal(t, "co-1", profile.CompanyID)
	assert.Equal(t, "LP equity firm", profile.Summary)
	assert.Equal(t, 0.8, profile.Confidence)
	// Fetched page URL plus the collaborator's own sources.
	assert.Equal(t, []string{"https://sunstonecp.com", "https://sunstonecp.com/about"}, profile.Sources)

	require.Len(t, llm.requests, 1)
	assert.Contains(t, llm.requests[0].Messages[0].Content, "Sunstone Capital")
	assert.Contains(t, llm.requests[0].Messages[0].Content, "limited partner equity")
}

func TestProfile_ListFieldsFlattened(t *testing.T) {
	llm := &scriptedLLM{replies: []string{
		`{"summary": "LP equity firm",
		  "pain_points": ["deal flow", " sourcing ", ""],
		  "growth_signals": "new fund",
		  "confidence": 0.6}`,
	}}
	fetcher := &pageFetcher{err: eris.New("down")}

	profile, err := NewProfiler(llm, fetcher, "test-model").Profile(context.Background(), testCompany())

	require.NoError(t, err)
	assert.Equal(t, "deal flow\nsourcing", profile.PainPoints)
	assert.Equal(t, "new fund", profile.GrowthSignals)
}

func TestProfile_FetchFailureDegrades(t *testing.T) {
	llm := &scriptedLLM{replies: []string{`{"summary": "s", "confidence": 2.5}`}}
	fetcher := &pageFetcher{err: resilience.Upstreamf("local_http", "blocked")}

	profile, err := NewProfiler(llm, fetcher, "test-model").Profile(context.Background(), testCompany())

	require.NoError(t, err)
	assert.Equal(t, "s", profile.Summary)
	// Confidence clamps into [0, 1].
	assert.Equal(t, 1.0, profile.Confidence)
	assert.NotContains(t, llm.requests[0].Messages[0].Content, "Website text")
}

func TestProfile_UpstreamError(t *testing.T) {
	llm := &scriptedLLM{err: eris.New("overloaded")}
	fetcher := &pageFetcher{err: eris.New("down")}

	_, err := NewProfiler(llm, fetcher, "test-model").Profile(context.Background(), testCompany())

	require.Error(t, err)
	assert.Equal(t, resilience.KindUpstream, resilience.KindOf(err))
	assert.True(t, resilience.Recoverable(err))
}

func TestProfile_MalformedReply(t *testing.T) {
	llm := &scriptedLLM{replies: []string{"I cannot produce JSON for this."}}
	fetcher := &pageFetcher{err: eris.New("down")}

	_, err := NewProfiler(llm, fetcher, "test-model").Profile(context.Background(), testCompany())

	require.Error(t, err)
	assert.Equal(t, resilience.KindMalformed, resilience.KindOf(err))
}
