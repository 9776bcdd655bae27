package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/pkg/notion"
)

// NotionExporter creates one page per lead in a Notion database. Existing
// pages are matched by domain and skipped.
type NotionExporter struct {
	Client notion.Client
	DBID   string
}

func (e *NotionExporter) Name() string { return "notion" }

func (e *NotionExporter) Export(ctx context.Context, report *Report) error {
	existing, err := e.existingDomains(ctx)
	if err != nil {
		return err
	}

	created := 0
	for _, lead := range report.Leads {
		if existing[lead.Company.Domain] {
			continue
		}
		if _, err := e.Client.CreatePage(ctx, &notionapi.PageCreateRequest{
			Parent: notionapi.Parent{
				Type:       notionapi.ParentTypeDatabaseID,
				DatabaseID: notionapi.DatabaseID(e.DBID),
			},
			Properties: leadPageProperties(lead),
		}); err != nil {
			return eris.Wrapf(err, "export: notion page for %s", lead.Company.Domain)
		}
		created++
	}

	zap.L().Info("notion export complete",
		zap.Int("leads", len(report.Leads)),
		zap.Int("created", created),
	)
	return nil
}

// existingDomains reads the domain column of every page already in the
// database.
func (e *NotionExporter) existingDomains(ctx context.Context) (map[string]bool, error) {
	pages, err := notion.QueryAll(ctx, e.Client, e.DBID, nil)
	if err != nil {
		return nil, eris.Wrap(err, "export: notion list existing")
	}

	domains := make(map[string]bool, len(pages))
	for _, page := range pages {
		if prop, ok := page.Properties["Domain"].(*notionapi.RichTextProperty); ok {
			domains[strings.ToLower(richTextValue(prop.RichText))] = true
		}
	}
	return domains, nil
}

func leadPageProperties(lead Lead) notionapi.Properties {
	props := notionapi.Properties{
		"Name": notionapi.TitleProperty{
			Type:  notionapi.PropertyTypeTitle,
			Title: richText(lead.Company.Name),
		},
		"Domain": notionapi.RichTextProperty{
			Type:     notionapi.PropertyTypeRichText,
			RichText: richText(lead.Company.Domain),
		},
		"Fit Score": notionapi.NumberProperty{
			Type:   notionapi.PropertyTypeNumber,
			Number: lead.Company.FitScore,
		},
		"Contacts": notionapi.NumberProperty{
			Type:   notionapi.PropertyTypeNumber,
			Number: float64(len(lead.Contacts)),
		},
		"Status": notionapi.StatusProperty{
			Type:   notionapi.PropertyTypeStatus,
			Status: notionapi.Option{Name: "Queued"},
		},
	}
	if lead.Company.Website != "" {
		props["Website"] = notionapi.URLProperty{
			Type: notionapi.PropertyTypeURL,
			URL:  lead.Company.Website,
		}
	}
	if len(lead.Company.DiscoveryReasons) > 0 {
		props["Reasons"] = notionapi.RichTextProperty{
			Type:     notionapi.PropertyTypeRichText,
			RichText: richText(strings.Join(lead.Company.DiscoveryReasons, "; ")),
		}
	}
	if lead.Profile != nil && lead.Profile.Summary != "" {
		props["Summary"] = notionapi.RichTextProperty{
			Type:     notionapi.PropertyTypeRichText,
			RichText: richText(truncate(lead.Profile.Summary, 2000)),
		}
	}
	return props
}

func richText(s string) []notionapi.RichText {
	return []notionapi.RichText{{
		Type: notionapi.ObjectTypeText,
		Text: &notionapi.Text{Content: s},
	}}
}

func richTextValue(rt []notionapi.RichText) string {
	var b strings.Builder
	for _, t := range rt {
		fmt.Fprint(&b, t.PlainText)
	}
	return b.String()
}

// truncate respects Notion's 2000-char rich text limit.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
