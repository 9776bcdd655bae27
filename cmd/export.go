package main

import (
	"fmt"
	"os"

	"github.com/k-capehart/go-salesforce/v3"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/export"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/pkg/notion"
	sfpkg "github.com/Roelovanheeren/ai-lead-scrape-sub000/pkg/salesforce"
)

var (
	exportTarget string
	exportPath   string
)

var exportCmd = &cobra.Command{
	Use:   "export <job-id>",
	Short: "Export a job's leads to a file or external system",
	Long:  "Targets: csv, xlsx, yaml, ftp, webhook, notion, salesforce.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := initStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		report, err := export.BuildReport(cmd.Context(), st, args[0])
		if err != nil {
			return err
		}

		exporter, err := buildExporter(args[0])
		if err != nil {
			return err
		}

		if err := exporter.Export(cmd.Context(), report); err != nil {
			return err
		}
		zap.L().Info("export complete",
			zap.String("job_id", args[0]),
			zap.String("target", exporter.Name()),
			zap.Int("leads", len(report.Leads)),
		)
		fmt.Printf("exported %d leads via %s\n", len(report.Leads), exporter.Name())
		return nil
	},
}

func buildExporter(jobID string) (export.Exporter, error) {
	path := exportPath
	if path == "" {
		path = fmt.Sprintf("leads-%s.%s", jobID, exportTarget)
	}

	switch exportTarget {
	case "csv":
		return &export.CSVExporter{Path: path}, nil
	case "xlsx":
		return &export.XLSXExporter{Path: path}, nil
	case "yaml":
		return &export.YAMLExporter{Path: path}, nil
	case "ftp":
		if cfg.Export.FTP.Addr == "" {
			return nil, eris.New("export: ftp address not configured")
		}
		return &export.FTPExporter{Cfg: cfg.Export.FTP}, nil
	case "webhook":
		if cfg.Export.WebhookURL == "" {
			return nil, eris.New("export: webhook URL not configured")
		}
		return &export.WebhookExporter{URL: cfg.Export.WebhookURL}, nil
	case "notion":
		if cfg.Export.Notion.Token == "" || cfg.Export.Notion.LeadDB == "" {
			return nil, eris.New("export: notion token and lead database not configured")
		}
		return &export.NotionExporter{
			Client: notion.NewClient(cfg.Export.Notion.Token),
			DBID:   cfg.Export.Notion.LeadDB,
		}, nil
	case "salesforce":
		client, err := initSalesforce()
		if err != nil {
			return nil, err
		}
		return &export.SalesforceExporter{Client: client}, nil
	default:
		return nil, eris.Errorf("export: unknown target %q", exportTarget)
	}
}

func initSalesforce() (sfpkg.Client, error) {
	if cfg.Export.Salesforce.ClientID == "" {
		return nil, eris.New("salesforce client ID is required (LEADGEN_EXPORT_SALESFORCE_CLIENT_ID)")
	}

	pemData, err := os.ReadFile(cfg.Export.Salesforce.KeyPath)
	if err != nil {
		return nil, eris.Wrap(err, "read salesforce JWT private key")
	}

	sf, err := salesforce.Init(salesforce.Creds{
		Domain:         cfg.Export.Salesforce.LoginURL,
		Username:       cfg.Export.Salesforce.Username,
		ConsumerKey:    cfg.Export.Salesforce.ClientID,
		ConsumerRSAPem: string(pemData),
	})
	if err != nil {
		return nil, eris.Wrap(err, "init salesforce")
	}

	return sfpkg.NewClient(sf), nil
}

func init() {
	exportCmd.Flags().StringVar(&exportTarget, "target", "csv", "export target")
	exportCmd.Flags().StringVar(&exportPath, "out", "", "output path for file targets")
	rootCmd.AddCommand(exportCmd)
}
