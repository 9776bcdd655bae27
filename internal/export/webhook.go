package export

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/resilience"
)

// WebhookExporter POSTs the report as JSON to an automation endpoint.
type WebhookExporter struct {
	URL    string
	Client *http.Client
}

func (e *WebhookExporter) Name() string { return "webhook" }

func (e *WebhookExporter) Export(ctx context.Context, report *Report) error {
	body, err := json.Marshal(report)
	if err != nil {
		return eris.Wrap(err, "export: marshal webhook payload")
	}

	hc := e.Client
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}

	cfg := resilience.DefaultRetryConfig()
	cfg.OnRetry = resilience.RetryLogger("webhook", "export")
	return resilience.Do(ctx, cfg, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.URL, bytes.NewReader(body))
		if err != nil {
			return eris.Wrap(err, "export: create webhook request")
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := hc.Do(req)
		if err != nil {
			return resilience.NewTransientError(err, 0)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			if resilience.IsTransientHTTPStatus(resp.StatusCode) {
				return resilience.NewTransientError(
					eris.Errorf("webhook returned %d", resp.StatusCode), resp.StatusCode)
			}
			return eris.Errorf("export: webhook returned %d", resp.StatusCode)
		}
		return nil
	})
}
