package contacts

import (
	"strings"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/model"
)

// Seniority term lists, checked in priority order. Higher tiers win: a
// "Chief Executive Officer" matches "chief" before the vp-tier "executive",
// and "Managing Director" falls through the vp terms to the director tier
// rather than manager.
var (
	cLevelTerms = []string{"chief", "ceo", "founder", "president"}
	vpTerms     = []string{"vp", "vice president", "executive", "partner"}
)

// InferSeniority classifies a job title into a seniority tier. Unknown or
// empty titles classify as individual.
func InferSeniority(title string) model.Seniority {
	t := strings.ToLower(strings.TrimSpace(title))
	if t == "" {
		return model.SeniorityIndividual
	}

	for _, term := range cLevelTerms {
		if strings.Contains(t, term) {
			return model.SeniorityCLevel
		}
	}
	for _, term := range vpTerms {
		if strings.Contains(t, term) {
			return model.SeniorityVP
		}
	}
	if strings.Contains(t, "director") {
		return model.SeniorityDirector
	}
	if strings.Contains(t, "manager") {
		return model.SeniorityManager
	}
	return model.SeniorityIndividual
}
