package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// csvHeader is one row per contact, company columns repeated.
var csvHeader = []string{
	"company", "domain", "website", "fit_score", "discovery_reasons",
	"first_name", "last_name", "title", "seniority", "email", "phone",
	"profile_url", "email_confidence", "verification", "source",
}

// CSVExporter writes the report as a flat contact-per-row CSV file.
type CSVExporter struct {
	Path string
}

func (e *CSVExporter) Name() string { return "csv" }

func (e *CSVExporter) Export(ctx context.Context, report *Report) error {
	f, err := os.Create(e.Path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", e.Path)
	}
	defer f.Close()

	if err := writeCSV(f, report); err != nil {
		return err
	}
	return eris.Wrapf(f.Sync(), "export: sync %s", e.Path)
}

// writeCSV renders the report rows to w. Companies without contacts still
// get one row with empty contact columns.
func writeCSV(w io.Writer, report *Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}

	for _, row := range csvRows(report) {
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "export: write csv row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}

func csvRows(report *Report) [][]string {
	var rows [][]string
	for _, lead := range report.Leads {
		companyCols := []string{
			lead.Company.Name,
			lead.Company.Domain,
			lead.Company.Website,
			fmt.Sprintf("%.1f", lead.Company.FitScore),
			strings.Join(lead.Company.DiscoveryReasons, "; "),
		}

		if len(lead.Contacts) == 0 {
			rows = append(rows, append(companyCols, make([]string, len(csvHeader)-len(companyCols))...))
			continue
		}
		for _, c := range lead.Contacts {
			row := append(append([]string(nil), companyCols...),
				c.FirstName, c.LastName, c.Title, string(c.Seniority),
				c.Email, c.Phone, c.ProfileURL,
				fmt.Sprintf("%.2f", c.EmailConfidence), c.Verification, c.Source,
			)
			rows = append(rows, row)
		}
	}
	return rows
}
