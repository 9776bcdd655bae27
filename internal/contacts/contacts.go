// Package contacts implements contact identification for an accepted
// company: locating team pages on its site, extracting people from the DOM,
// falling back to a domain contact-intelligence lookup, and filtering the
// merged set into a deduplicated contact list.
package contacts

import (
	"context"

	"go.uber.org/zap"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/config"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/model"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/scrape"
)

// Intel is the boundary to the contact-intelligence collaborator.
type Intel interface {
	FindByDomain(ctx context.Context, domain, department string) ([]model.Contact, error)
}

// Finder locates and filters contacts for a company.
type Finder struct {
	fetcher scrape.Fetcher
	intel   Intel
	cfg     config.ContactsConfig
}

// NewFinder creates a Finder. intel may be nil when no contact-intelligence
// collaborator is configured.
func NewFinder(fetcher scrape.Fetcher, intel Intel, cfg config.ContactsConfig) *Finder {
	return &Finder{fetcher: fetcher, intel: intel, cfg: cfg}
}

// Find runs both sourcing strategies in order, merges their results, and
// filters them. Every fetch failure is recovered as zero contacts from that
// page; a company with no identifiable contacts is a valid outcome.
func (f *Finder) Find(ctx context.Context, company model.Company, criteria model.TargetingCriteria) []model.Contact {
	log := zap.L().With(
		zap.String("stage", "contacts"),
		zap.String("company", company.Name),
		zap.String("domain", company.Domain),
	)

	merged := f.scrapeSite(ctx, log, company)

	if f.intel != nil && company.Domain != "" {
		intelContacts, err := f.intel.FindByDomain(ctx, company.Domain, "")
		if err != nil {
			log.Warn("contact intelligence lookup failed", zap.Error(err))
		} else {
			merged = append(merged, intelContacts...)
		}
	}

	contacts := Filter(merged, criteria.TargetRoles)
	for i := range contacts {
		contacts[i].CompanyID = company.ID
		if contacts[i].Seniority == "" {
			contacts[i].Seniority = InferSeniority(contacts[i].Title)
		}
	}

	log.Info("contact search complete",
		zap.Int("raw", len(merged)),
		zap.Int("kept", len(contacts)),
	)
	return contacts
}

// scrapeSite runs the site-scraping strategy: homepage link scoring, team
// page extraction, and the secondary profile-link scan when the primary
// pass comes up short.
func (f *Finder) scrapeSite(ctx context.Context, log *zap.Logger, company model.Company) []model.Contact {
	if company.Website == "" {
		return nil
	}

	home, err := f.fetcher.Fetch(ctx, company.Website)
	if err != nil {
		log.Warn("homepage fetch failed", zap.Error(err))
		return nil
	}

	pageURLs := FindTeamPages(home.HTML, company.Website)
	maxPages := f.cfg.MaxTeamPages
	if maxPages <= 0 {
		maxPages = 3
	}
	if len(pageURLs) > maxPages {
		pageURLs = pageURLs[:maxPages]
	}

	// Candidate pages fetch in parallel; extraction follows the ranked page
	// order so dedup keeps the best page's sighting of each person.
	pages := scrape.FetchAll(ctx, f.fetcher, pageURLs, maxPages)

	var found []model.Contact
	for _, page := range pages {
		found = append(found, ExtractPeople(page.HTML, page.URL)...)
	}

	minContacts := f.cfg.MinSiteContacts
	if minContacts <= 0 {
		minContacts = 5
	}
	if len(found) < minContacts {
		for _, page := range pages {
			found = append(found, ExtractByProfileLinks(page.HTML, page.URL)...)
		}
	}

	return found
}
