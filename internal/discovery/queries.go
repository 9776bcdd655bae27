package discovery

import (
	"fmt"
	"strings"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/model"
)

const (
	// maxKeywordQueries bounds how many criteria keywords expand into
	// templated queries.
	maxKeywordQueries = 5
	// defaultMaxQueries caps total queries per run to respect upstream
	// rate limits.
	defaultMaxQueries = 10
)

// baseQueries are the fixed domain-specific templates every run starts from.
var baseQueries = []string{
	"build-to-rent equity capital partners",
	"multifamily development limited partner investors",
	"opportunity zone fund real estate investment firm",
}

// ExpandQueries builds the ordered search-query list for a criteria record:
// custom queries first, then the fixed base set, then up to two templated
// variants per keyword (role-style and geography-style). The total is
// capped at maxQueries.
func ExpandQueries(c model.TargetingCriteria, maxQueries int) []string {
	if maxQueries <= 0 {
		maxQueries = defaultMaxQueries
	}

	location := c.Location
	if location == "" {
		location = "Phoenix Arizona"
	}

	var queries []string
	seen := make(map[string]bool)
	add := func(q string) {
		q = strings.TrimSpace(q)
		if q == "" || seen[q] || len(queries) >= maxQueries {
			return
		}
		queries = append(queries, q)
		seen[q] = true
	}

	for _, q := range c.CustomQueries {
		add(q)
	}
	for _, q := range baseQueries {
		add(q)
	}

	keywords := c.Keywords
	if len(keywords) > maxKeywordQueries {
		keywords = keywords[:maxKeywordQueries]
	}
	for _, kw := range keywords {
		add(fmt.Sprintf("%s investment firm managing partner", kw))
		add(fmt.Sprintf("%s investors %s", kw, location))
	}

	return queries
}
