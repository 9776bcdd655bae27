// Package criteria turns a free-text targeting brief into a normalized
// TargetingCriteria record. Building is deterministic and pure: the same
// brief and overrides always produce the same criteria.
package criteria

import (
	"regexp"
	"strings"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/model"
)

const maxKeywords = 8

// Overrides carries optional structured fields that take precedence over
// anything inferred from the brief.
type Overrides struct {
	Industry          string
	Location          string
	CompanySize       string
	TargetRoles       []string
	ExclusionKeywords []string
	CustomQueries     []string
}

// domainPhrases are multi-word terms recognized as single keywords, checked
// before token-level extraction so "opportunity zone" survives as a phrase.
var domainPhrases = []string{
	"opportunity zone",
	"build-to-rent",
	"build to rent",
	"limited partner",
	"capital partner",
	"real estate",
	"private equity",
	"family office",
	"ground-up development",
	"single family rental",
	"sun belt",
}

// stopwords are dropped during token-level keyword extraction.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "at": true, "be": true,
	"by": true, "find": true, "for": true, "from": true, "in": true,
	"into": true, "is": true, "looking": true, "me": true, "of": true,
	"on": true, "or": true, "that": true, "the": true, "their": true,
	"to": true, "want": true, "we": true, "who": true, "with": true,
	"companies": true, "firms": true, "leads": true,
}

// defaultTargetRoles apply when the brief and overrides name none.
var defaultTargetRoles = []string{
	"partner", "principal", "director", "president", "head", "chief",
}

// industryHints maps brief phrases to a normalized industry label, checked
// in order so ties resolve deterministically.
var industryHints = []struct{ hint, label string }{
	{"real estate", "real_estate"},
	{"multifamily", "real_estate"},
	{"build-to-rent", "real_estate"},
	{"private equity", "private_equity"},
	{"family office", "investment_management"},
	{"venture", "venture_capital"},
}

// locationHints are metros and states recognized in a brief.
var locationHints = []string{
	"phoenix", "scottsdale", "tempe", "mesa", "tucson", "arizona",
	"dallas", "austin", "houston", "texas", "atlanta", "georgia",
	"charlotte", "raleigh", "nashville", "tampa", "orlando", "florida",
	"denver", "las vegas", "salt lake city", "boise", "sun belt",
}

var tokenRe = regexp.MustCompile(`[a-z0-9][a-z0-9'\-]*`)

// Build derives normalized targeting criteria from a brief plus overrides.
func Build(prompt string, o Overrides) model.TargetingCriteria {
	lower := strings.ToLower(prompt)

	c := model.TargetingCriteria{
		Industry:          o.Industry,
		Location:          o.Location,
		CompanySize:       o.CompanySize,
		TargetRoles:       normalizeList(o.TargetRoles),
		ExclusionKeywords: normalizeList(o.ExclusionKeywords),
		CustomQueries:     append([]string(nil), o.CustomQueries...),
	}

	// Phrase-level keywords first, then remaining significant tokens.
	seen := make(map[string]bool)
	remainder := lower
	for _, phrase := range domainPhrases {
		if strings.Contains(remainder, phrase) && !seen[phrase] {
			c.Keywords = append(c.Keywords, phrase)
			seen[phrase] = true
			remainder = strings.ReplaceAll(remainder, phrase, " ")
		}
	}
	for _, tok := range tokenRe.FindAllString(remainder, -1) {
		if len(c.Keywords) >= maxKeywords {
			break
		}
		if len(tok) < 4 || stopwords[tok] || seen[tok] {
			continue
		}
		c.Keywords = append(c.Keywords, tok)
		seen[tok] = true
	}
	if len(c.Keywords) > maxKeywords {
		c.Keywords = c.Keywords[:maxKeywords]
	}

	if c.Industry == "" {
		for _, h := range industryHints {
			if strings.Contains(lower, h.hint) {
				c.Industry = h.label
				break
			}
		}
	}

	if c.Location == "" {
		for _, loc := range locationHints {
			if strings.Contains(lower, loc) {
				c.Location = loc
				break
			}
		}
	}

	if c.CompanySize == "" {
		switch {
		case strings.Contains(lower, "institutional"):
			c.CompanySize = "institutional"
		case strings.Contains(lower, "mid-market"), strings.Contains(lower, "mid market"):
			c.CompanySize = "mid_market"
		case strings.Contains(lower, "small"):
			c.CompanySize = "small"
		}
	}

	if len(c.TargetRoles) == 0 {
		c.TargetRoles = append(c.TargetRoles, defaultTargetRoles...)
	}

	return c
}

// normalizeList lower-cases, trims, and dedups a string list preserving order.
func normalizeList(in []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		out = append(out, s)
		seen[s] = true
	}
	return out
}
