package export

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/model"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/pkg/salesforce"
)

// SalesforceExporter syncs leads into Salesforce: one Account per company
// and one Contact per identified person. Accounts already present (matched
// by website) are batch-updated with fresh research instead of recreated.
type SalesforceExporter struct {
	Client salesforce.Client
}

func (e *SalesforceExporter) Name() string { return "salesforce" }

func (e *SalesforceExporter) Export(ctx context.Context, report *Report) error {
	log := zap.L().With(zap.String("exporter", "salesforce"))

	var updates []salesforce.AccountUpdate
	created := 0

	for _, lead := range report.Leads {
		var account *salesforce.Account
		if lead.Company.Website != "" {
			var err error
			account, err = salesforce.FindAccountByWebsite(ctx, e.Client, lead.Company.Website)
			if err != nil {
				return err
			}
		}

		if account != nil {
			updates = append(updates, salesforce.AccountUpdate{
				ID:     account.ID,
				Fields: accountFields(lead),
			})
			continue
		}

		accountID, err := salesforce.CreateAccount(ctx, e.Client, accountFields(lead))
		if err != nil {
			return err
		}
		created++

		for _, c := range lead.Contacts {
			if _, err := salesforce.CreateContact(ctx, e.Client, accountID, contactFields(c)); err != nil {
				// One bad contact should not abort the sync.
				log.Warn("contact create failed",
					zap.String("contact", c.FullName()), zap.Error(err))
			}
		}
	}

	results, err := salesforce.BulkUpdateAccounts(ctx, e.Client, updates)
	if err != nil {
		return err
	}
	for _, r := range results {
		if !r.Success {
			return eris.Errorf("export: salesforce update %s failed: %s",
				r.ID, strings.Join(r.Errors, "; "))
		}
	}

	log.Info("salesforce export complete",
		zap.Int("created", created),
		zap.Int("updated", len(updates)),
	)
	return nil
}

func accountFields(lead Lead) map[string]any {
	fields := map[string]any{
		"Name":    lead.Company.Name,
		"Website": lead.Company.Website,
		"Type":    "Prospect",
	}
	if lead.Company.City != "" {
		fields["BillingCity"] = lead.Company.City
	}
	if lead.Company.State != "" {
		fields["BillingState"] = lead.Company.State
	}
	if lead.Profile != nil && lead.Profile.Summary != "" {
		fields["Description"] = lead.Profile.Summary
	}
	return fields
}

func contactFields(c model.Contact) map[string]any {
	fields := map[string]any{
		"FirstName": c.FirstName,
		"LastName":  c.LastName,
		"Title":     c.Title,
	}
	if c.Email != "" {
		fields["Email"] = c.Email
	}
	if c.Phone != "" {
		fields["Phone"] = c.Phone
	}
	return fields
}
