package salesforce

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// collectionBatchSize is the Collections API per-request record limit.
const collectionBatchSize = 200

// Account mirrors the Account fields the sync reads back.
type Account struct {
	ID           string `json:"Id"`
	Name         string `json:"Name"`
	Website      string `json:"Website"`
	Description  string `json:"Description"`
	BillingCity  string `json:"BillingCity"`
	BillingState string `json:"BillingState"`
	Type         string `json:"Type"`
}

var accountSelect = strings.Join([]string{
	"Id", "Name", "Website", "Description",
	"BillingCity", "BillingState", "Type",
}, ", ")

// FindAccountByWebsite returns the Account whose Website matches, or nil
// when none exists.
func FindAccountByWebsite(ctx context.Context, c Client, website string) (*Account, error) {
	soql := fmt.Sprintf(
		"SELECT %s FROM Account WHERE Website LIKE '%s' LIMIT 1",
		accountSelect, escapeSoql(website),
	)

	var accounts []Account
	if err := c.Query(ctx, soql, &accounts); err != nil {
		return nil, eris.Wrapf(err, "sf: find account by website %s", website)
	}
	if len(accounts) == 0 {
		return nil, nil
	}
	return &accounts[0], nil
}

// CreateAccount inserts an Account and returns its Salesforce ID.
func CreateAccount(ctx context.Context, c Client, fields map[string]any) (string, error) {
	if fields["Name"] == nil || fields["Name"] == "" {
		return "", eris.New("sf: account Name is required")
	}
	id, err := c.InsertOne(ctx, "Account", fields)
	if err != nil {
		return "", eris.Wrap(err, "sf: create account")
	}
	return id, nil
}

// CreateContact inserts a Contact linked to the given Account and returns
// its Salesforce ID.
func CreateContact(ctx context.Context, c Client, accountID string, fields map[string]any) (string, error) {
	if accountID == "" {
		return "", eris.New("sf: contact needs an account id")
	}
	if fields == nil {
		fields = make(map[string]any)
	}
	fields["AccountId"] = accountID
	id, err := c.InsertOne(ctx, "Contact", fields)
	if err != nil {
		return "", eris.Wrapf(err, "sf: create contact for account %s", accountID)
	}
	return id, nil
}

// AccountUpdate pairs an account ID with the fields to set on it.
type AccountUpdate struct {
	ID     string
	Fields map[string]any
}

// BulkUpdateAccounts sends updates through the Collections API in batches
// of 200.
func BulkUpdateAccounts(ctx context.Context, c Client, updates []AccountUpdate) ([]CollectionResult, error) {
	if len(updates) == 0 {
		return nil, nil
	}

	var all []CollectionResult
	for start := 0; start < len(updates); start += collectionBatchSize {
		end := min(start+collectionBatchSize, len(updates))

		records := make([]CollectionRecord, end-start)
		for i, u := range updates[start:end] {
			records[i] = CollectionRecord(u)
		}

		results, err := c.UpdateCollection(ctx, "Account", records)
		if err != nil {
			return all, eris.Wrapf(err, "sf: bulk update accounts batch %d-%d", start, end)
		}
		all = append(all, results...)
	}
	return all, nil
}

// escapeSoql escapes single quotes in SOQL string literals.
func escapeSoql(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}
