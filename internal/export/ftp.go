package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/rotisserie/eris"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/config"
)

// FTPExporter renders the report as CSV and drops it on an FTP server,
// named after the job id.
type FTPExporter struct {
	Cfg config.FTPConfig
}

func (e *FTPExporter) Name() string { return "ftp" }

func (e *FTPExporter) Export(ctx context.Context, report *Report) error {
	var buf bytes.Buffer
	if err := writeCSV(&buf, report); err != nil {
		return err
	}

	conn, err := ftp.Dial(e.Cfg.Addr,
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(30*time.Second),
	)
	if err != nil {
		return eris.Wrapf(err, "export: ftp dial %s", e.Cfg.Addr)
	}
	defer conn.Quit()

	if err := conn.Login(e.Cfg.User, e.Cfg.Password); err != nil {
		return eris.Wrap(err, "export: ftp login")
	}
	if e.Cfg.Dir != "" {
		if err := conn.ChangeDir(e.Cfg.Dir); err != nil {
			return eris.Wrapf(err, "export: ftp chdir %s", e.Cfg.Dir)
		}
	}

	name := fmt.Sprintf("leads-%s.csv", report.Job.ID)
	if err := conn.Stor(name, &buf); err != nil {
		return eris.Wrapf(err, "export: ftp store %s", name)
	}
	return nil
}
