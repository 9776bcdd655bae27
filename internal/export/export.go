// Package export renders a job's results to external targets: local CSV,
// XLSX, and YAML files, an FTP drop, a Notion lead database, Salesforce
// Account/Contact records, and a webhook POST.
package export

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/model"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/store"
)

// Lead bundles everything known about one discovered company.
type Lead struct {
	Company  model.Company           `json:"company" yaml:"company"`
	Profile  *model.CompanyProfile   `json:"profile,omitempty" yaml:"profile,omitempty"`
	Contacts []model.Contact         `json:"contacts" yaml:"contacts"`
	Drafts   []model.OutreachContent `json:"drafts,omitempty" yaml:"drafts,omitempty"`
}

// Report is a job's full export payload.
type Report struct {
	Job   model.Job `json:"job" yaml:"job"`
	Leads []Lead    `json:"leads" yaml:"leads"`
}

// Exporter writes a report to one target.
type Exporter interface {
	Export(ctx context.Context, report *Report) error
	Name() string
}

// BuildReport assembles the export payload for a job from the store.
func BuildReport(ctx context.Context, st store.Store, jobID string) (*Report, error) {
	job, err := st.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, eris.Errorf("export: job not found: %s", jobID)
	}

	companies, err := st.ListCompanies(ctx, jobID)
	if err != nil {
		return nil, err
	}

	report := &Report{Job: *job, Leads: make([]Lead, 0, len(companies))}
	for _, company := range companies {
		lead := Lead{Company: company}

		lead.Profile, err = st.GetProfile(ctx, company.ID)
		if err != nil {
			return nil, err
		}
		lead.Contacts, err = st.ListContacts(ctx, company.ID)
		if err != nil {
			return nil, err
		}
		for _, contact := range lead.Contacts {
			drafts, err := st.ListOutreach(ctx, contact.ID)
			if err != nil {
				return nil, err
			}
			lead.Drafts = append(lead.Drafts, drafts...)
		}

		report.Leads = append(report.Leads, lead)
	}
	return report, nil
}
