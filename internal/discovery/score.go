package discovery

import "strings"

// Qualification rubric: five weighted keyword categories tested against the
// lower-cased name + description. A candidate is accepted only with at
// least minCategories distinct matches and a total of at least minScore.
const (
	minCategories = 2
	minScore      = 5.0

	// blocklistOverride lets an information-source domain through anyway
	// when its content scores exceptionally high.
	blocklistOverride = 7.0
)

type scoreCategory struct {
	reason string
	weight float64
	terms  []string
}

var rubric = []scoreCategory{
	{
		reason: "capital-partner language",
		weight: 4,
		terms: []string{
			"limited partner", "lp capital", "capital partner", "equity partner",
			"co-invest", "co-investment", "general partner", "gp equity",
			"institutional investor", "fund of funds", "family office",
		},
	},
	{
		reason: "build-to-rent/multifamily focus",
		weight: 3,
		terms: []string{
			"build-to-rent", "build to rent", "btr", "multifamily",
			"multi-family", "single-family rental", "single family rental",
			"apartment communities", "residential development",
		},
	},
	{
		reason: "opportunity-zone language",
		weight: 2,
		terms: []string{
			"opportunity zone", "qualified opportunity fund", "qoz", "qof",
		},
	},
	{
		reason: "target-geography presence",
		weight: 2,
		terms: []string{
			"phoenix", "scottsdale", "tempe", "mesa", "arizona", "tucson",
			"sun belt", "sunbelt", "southwest",
		},
	},
	{
		reason: "institutional-scale markers",
		weight: 1,
		terms: []string{
			"institutional", "assets under management", "aum", "portfolio",
			"billion", "acquisitions", "fund ii", "fund iii",
		},
	},
}

// infoSourceDomains are news and industry-media sites: sources of leads,
// not leads themselves.
var infoSourceDomains = map[string]bool{
	"bisnow.com":             true,
	"globest.com":            true,
	"therealdeal.com":        true,
	"costar.com":             true,
	"multifamilydive.com":    true,
	"multihousingnews.com":   true,
	"commercialobserver.com": true,
	"crunchbase.com":         true,
	"linkedin.com":           true,
	"wikipedia.org":          true,
	"forbes.com":             true,
	"bloomberg.com":          true,
	"wsj.com":                true,
	"nytimes.com":            true,
	"prnewswire.com":         true,
	"businesswire.com":       true,
	"reddit.com":             true,
	"youtube.com":            true,
}

// ScoreCandidate applies the weighted rubric to a candidate's name and
// description. Candidates that fail the acceptance bar have their score
// forced to zero but keep the matched reasons for diagnostics. extraBlocked
// extends the information-source blocklist.
func ScoreCandidate(name, description, domain string, extraBlocked []string) (score float64, reasons []string, accepted bool) {
	text := strings.ToLower(name + " " + description)

	var categories int
	for _, cat := range rubric {
		for _, term := range cat.terms {
			if strings.Contains(text, term) {
				score += cat.weight
				reasons = append(reasons, cat.reason)
				categories++
				break
			}
		}
	}

	if categories < minCategories || score < minScore {
		return 0, reasons, false
	}

	if isInfoSource(domain, extraBlocked) && score < blocklistOverride {
		reasons = append(reasons, "information-source domain")
		return 0, reasons, false
	}

	return score, reasons, true
}

func isInfoSource(domain string, extra []string) bool {
	if domain == "" {
		return false
	}
	if infoSourceDomains[domain] {
		return true
	}
	// Match registrable suffix so subdomains are caught too.
	for blocked := range infoSourceDomains {
		if strings.HasSuffix(domain, "."+blocked) {
			return true
		}
	}
	for _, blocked := range extra {
		blocked = strings.ToLower(strings.TrimSpace(blocked))
		if blocked != "" && (domain == blocked || strings.HasSuffix(domain, "."+blocked)) {
			return true
		}
	}
	return false
}
