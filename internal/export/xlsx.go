package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// XLSXExporter writes the report as a workbook with one sheet per concern:
// companies, contacts, and outreach drafts.
type XLSXExporter struct {
	Path string
}

func (e *XLSXExporter) Name() string { return "xlsx" }

func (e *XLSXExporter) Export(ctx context.Context, report *Report) error {
	wb := xlsx.NewFile()

	if err := e.companiesSheet(wb, report); err != nil {
		return err
	}
	if err := e.contactsSheet(wb, report); err != nil {
		return err
	}
	if err := e.outreachSheet(wb, report); err != nil {
		return err
	}

	return eris.Wrapf(wb.Save(e.Path), "export: save %s", e.Path)
}

func (e *XLSXExporter) companiesSheet(wb *xlsx.File, report *Report) error {
	sheet, err := wb.AddSheet("Companies")
	if err != nil {
		return eris.Wrap(err, "export: add companies sheet")
	}

	addRow(sheet, "Name", "Domain", "Website", "Fit Score", "Confidence", "Reasons", "Summary")
	for _, lead := range report.Leads {
		summary := ""
		if lead.Profile != nil {
			summary = lead.Profile.Summary
		}
		addRow(sheet,
			lead.Company.Name,
			lead.Company.Domain,
			lead.Company.Website,
			fmt.Sprintf("%.1f", lead.Company.FitScore),
			fmt.Sprintf("%.2f", lead.Company.DiscoveryConfidence),
			strings.Join(lead.Company.DiscoveryReasons, "; "),
			summary,
		)
	}
	return nil
}

func (e *XLSXExporter) contactsSheet(wb *xlsx.File, report *Report) error {
	sheet, err := wb.AddSheet("Contacts")
	if err != nil {
		return eris.Wrap(err, "export: add contacts sheet")
	}

	addRow(sheet, "Company", "Name", "Title", "Seniority", "Email", "Phone", "Profile URL", "Email Confidence")
	for _, lead := range report.Leads {
		for _, c := range lead.Contacts {
			addRow(sheet,
				lead.Company.Name,
				c.FullName(),
				c.Title,
				string(c.Seniority),
				c.Email,
				c.Phone,
				c.ProfileURL,
				fmt.Sprintf("%.2f", c.EmailConfidence),
			)
		}
	}
	return nil
}

func (e *XLSXExporter) outreachSheet(wb *xlsx.File, report *Report) error {
	sheet, err := wb.AddSheet("Outreach")
	if err != nil {
		return eris.Wrap(err, "export: add outreach sheet")
	}

	contactNames := make(map[string]string)
	for _, lead := range report.Leads {
		for _, c := range lead.Contacts {
			contactNames[c.ID] = c.FullName()
		}
	}

	addRow(sheet, "Contact", "Channel", "Subject", "Body", "Words", "QA Status", "QA Feedback")
	for _, lead := range report.Leads {
		for _, d := range lead.Drafts {
			addRow(sheet,
				contactNames[d.ContactID],
				string(d.Channel),
				d.Subject,
				d.Body,
				fmt.Sprintf("%d", d.WordCount),
				string(d.QAStatus),
				d.QAFeedback,
			)
		}
	}
	return nil
}

func addRow(sheet *xlsx.Sheet, cells ...string) {
	row := sheet.AddRow()
	for _, c := range cells {
		row.AddCell().SetString(c)
	}
}
