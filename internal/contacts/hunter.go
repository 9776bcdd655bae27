package contacts

import (
	"context"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/model"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/pkg/hunter"
)

// hunterSeniority maps Hunter's seniority labels onto our tiers.
var hunterSeniority = map[string]model.Seniority{
	"executive": model.SeniorityCLevel,
	"senior":    model.SeniorityVP,
	"junior":    model.SeniorityIndividual,
}

// HunterIntel adapts the Hunter client to the Intel boundary.
type HunterIntel struct {
	client hunter.Client
	limit  int
}

// NewHunterIntel wraps a Hunter client. limit caps results per domain
// search; zero means the API default.
func NewHunterIntel(client hunter.Client, limit int) *HunterIntel {
	return &HunterIntel{client: client, limit: limit}
}

// FindByDomain looks up named individuals at a domain and converts them to
// contact candidates.
func (h *HunterIntel) FindByDomain(ctx context.Context, domain, department string) ([]model.Contact, error) {
	resp, err := h.client.DomainSearch(ctx, hunter.DomainSearchRequest{
		Domain:     domain,
		Department: department,
		Limit:      h.limit,
	})
	if err != nil {
		return nil, err
	}

	contacts := make([]model.Contact, 0, len(resp.Data.Emails))
	for _, e := range resp.Data.Emails {
		c := model.Contact{
			FirstName:       e.FirstName,
			LastName:        e.LastName,
			Title:           e.Position,
			Email:           e.Value,
			Phone:           e.Phone,
			ProfileURL:      e.LinkedIn,
			EmailConfidence: float64(e.Confidence) / 100.0,
			Verification:    e.Verification.Status,
			Source:          "contact_intelligence",
		}
		if s, ok := hunterSeniority[e.Seniority]; ok {
			c.Seniority = s
		}
		contacts = append(contacts, c)
	}
	return contacts, nil
}
