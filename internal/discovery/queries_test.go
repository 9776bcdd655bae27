package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/model"
)

func TestExpandQueries_OrderAndCap(t *testing.T) {
	c := model.TargetingCriteria{
		Keywords:      []string{"limited partner", "build-to-rent", "opportunity zone", "multifamily", "sun belt", "extra"},
		Location:      "phoenix",
		CustomQueries: []string{"my exact query"},
	}

	queries := ExpandQueries(c, 10)

	assert.LessOrEqual(t, len(queries), 10)
	assert.Equal(t, "my exact query", queries[0])
	assert.Equal(t, baseQueries[0], queries[1])

	seen := make(map[string]bool)
	for _, q := range queries {
		assert.False(t, seen[q], "duplicate query %q", q)
		seen[q] = true
	}
}

func TestExpandQueries_DefaultLocation(t *testing.T) {
	c := model.TargetingCriteria{Keywords: []string{"multifamily"}}
	queries := ExpandQueries(c, 10)
	assert.Contains(t, queries, "multifamily investors Phoenix Arizona")
}

func TestExpandQueries_ZeroMaxUsesDefault(t *testing.T) {
	var c model.TargetingCriteria
	for i := 0; i < 20; i++ {
		c.CustomQueries = append(c.CustomQueries, string(rune('a'+i))+" query")
	}
	queries := ExpandQueries(c, 0)
	assert.Len(t, queries, defaultMaxQueries)
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Sunstone Capital | Build-to-Rent Equity", "Sunstone Capital"},
		{"Acme Partners - Home", "Acme Partners"},
		{"About: Acme", "About"},
		{"  Plain Name  ", "Plain Name"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanTitle(tt.in), tt.in)
	}
}

func TestDomainFromURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://www.sunstonecp.com/about", "sunstonecp.com"},
		{"sunstonecp.com", "sunstonecp.com"},
		{"HTTPS://Sub.Example.COM", "sub.example.com"},
		{"not a url at all", ""},
		{"", ""},
		{"https://localhost/x", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DomainFromURL(tt.in), tt.in)
	}
}
