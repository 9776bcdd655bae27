package contacts

import (
	"context"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/pkg/hunter"
)

type stubHunter struct {
	req hunter.DomainSearchRequest
}

func (s *stubHunter) DomainSearch(ctx context.Context, req hunter.DomainSearchRequest) (*hunter.DomainSearchResponse, error) {
	s.req = req
	return &hunter.DomainSearchResponse{
		Data: hunter.DomainData{
			Domain:       req.Domain,
			Organization: "Acme",
			Emails: []hunter.Email{
				{
					Value:        "jane@acme.com",
					FirstName:    "Jane",
					LastName:     "Smith",
					Position:     "Chief Investment Officer",
					Seniority:    "executive",
					Confidence:   92,
					Verification: hunter.Verification{Status: "valid"},
				},
			},
		},
	}, nil
}
