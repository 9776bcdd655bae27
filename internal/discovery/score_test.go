package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreCandidate_Accepted(t *testing.T) {
	score, reasons, accepted := ScoreCandidate(
		"Sunstone Capital Partners",
		"A limited partner backing build-to-rent communities across Phoenix and the Sun Belt.",
		"sunstonecp.com",
		nil,
	)

	assert.True(t, accepted)
	assert.Equal(t, 9.0, score)
	assert.Equal(t, []string{
		"capital-partner language",
		"build-to-rent/multifamily focus",
		"target-geography presence",
	}, reasons)
}

func TestScoreCandidate_SingleCategoryRejected(t *testing.T) {
	score, reasons, accepted := ScoreCandidate(
		"Acme Advisors",
		"An institutional portfolio with billions in assets under management.",
		"acmeadvisors.com",
		nil,
	)

	assert.False(t, accepted)
	assert.Zero(t, score)
	assert.Equal(t, []string{"institutional-scale markers"}, reasons)
}

func TestScoreCandidate_BelowMinScoreRejected(t *testing.T) {
	// Two categories but only 2 + 1 = 3 points.
	_, _, accepted := ScoreCandidate(
		"Zone Fund",
		"An opportunity zone fund with an institutional focus.",
		"zonefund.com",
		nil,
	)
	assert.False(t, accepted)
}

func TestScoreCandidate_InfoSourceBlocked(t *testing.T) {
	// 3 + 2 = 5 passes the acceptance bar but not the blocklist override.
	score, reasons, accepted := ScoreCandidate(
		"BTR Market Report",
		"Build-to-rent trends across Phoenix.",
		"bisnow.com",
		nil,
	)

	assert.False(t, accepted)
	assert.Zero(t, score)
	assert.Contains(t, reasons, "information-source domain")
}

func TestScoreCandidate_InfoSourceOverride(t *testing.T) {
	// Three categories at 4 + 3 + 2 = 9 clears the blocklist override bar.
	score, _, accepted := ScoreCandidate(
		"Desert Ridge Equity",
		"Limited partner capital for build-to-rent communities in Phoenix.",
		"news.bisnow.com",
		nil,
	)

	assert.True(t, accepted)
	assert.Equal(t, 9.0, score)
}

func TestIsInfoSource(t *testing.T) {
	tests := []struct {
		domain string
		extra  []string
		want   bool
	}{
		{"bisnow.com", nil, true},
		{"news.bisnow.com", nil, true},
		{"sunstonecp.com", nil, false},
		{"aggregator.example", []string{"aggregator.example"}, true},
		{"sub.aggregator.example", []string{"Aggregator.Example "}, true},
		{"", nil, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isInfoSource(tt.domain, tt.extra), tt.domain)
	}
}
