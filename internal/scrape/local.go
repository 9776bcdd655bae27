package scrape

import (
	"context"
	"io"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/config"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/resilience"
)

// LocalFetcher fetches HTML via net/http, detects blocks, and keeps both the
// raw markup (for DOM extraction) and a plaintext rendering. Free, no API
// calls; falls through to the Jina reader when blocked.
type LocalFetcher struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
}

// NewLocalFetcher creates a LocalFetcher from scrape configuration.
func NewLocalFetcher(cfg config.ScrapeConfig) *LocalFetcher {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = 512 * 1024
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = "Mozilla/5.0 (compatible; LeadGenBot/1.0)"
	}
	return &LocalFetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		userAgent: ua,
		maxBytes:  maxBytes,
	}
}

func (l *LocalFetcher) Name() string { return "local_http" }

// Fetch downloads a URL, detects blocks, and strips HTML to plaintext.
// All failures are upstream-kind: per spec, a failed page fetch is zero
// content for that page, never a stage failure.
func (l *LocalFetcher) Fetch(ctx context.Context, targetURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, resilience.Upstream("local_http", eris.Wrap(err, "create request"))
	}
	req.Header.Set("User-Agent", l.userAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, resilience.Upstream("local_http", eris.Wrap(err, "fetch"))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, l.maxBytes))
	if err != nil {
		return nil, resilience.Upstream("local_http", eris.Wrap(err, "read body"))
	}

	if blocked, blockType := DetectBlock(resp, body); blocked {
		return nil, resilience.Upstreamf("local_http", "blocked (%s)", blockType)
	}

	if resp.StatusCode >= 400 {
		return nil, resilience.Upstreamf("local_http", "status %d", resp.StatusCode)
	}

	if len(body) < 100 {
		return nil, resilience.Upstreamf("local_http", "empty page")
	}

	html := string(body)
	return &Page{
		URL:        targetURL,
		Title:      extractTitle(body),
		HTML:       html,
		Text:       stripHTML(html),
		StatusCode: resp.StatusCode,
		Source:     "local_http",
	}, nil
}

var titleRe = regexp.MustCompile(`(?i)<title[^>]*>(.*?)</title>`)

// extractTitle pulls the <title> from HTML.
func extractTitle(body []byte) string {
	m := titleRe.FindSubmatch(body)
	if len(m) > 1 {
		return strings.TrimSpace(string(m[1]))
	}
	return ""
}

// stripHTML removes scripts/styles/nav/footer, strips tags, decodes entities,
// and collapses whitespace. The result is plaintext suitable for research
// prompts.
func stripHTML(html string) string {
	for _, tag := range []string{"script", "style", "nav", "footer"} {
		re := regexp.MustCompile(`(?is)<` + tag + `[^>]*>.*?</` + tag + `>`)
		html = re.ReplaceAllString(html, "")
	}

	tagRe := regexp.MustCompile(`<[^>]+>`)
	html = tagRe.ReplaceAllString(html, " ")

	r := strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
		"&nbsp;", " ",
	)
	html = r.Replace(html)

	spaceRe := regexp.MustCompile(`[ \t]+`)
	html = spaceRe.ReplaceAllString(html, " ")

	nlRe := regexp.MustCompile(`\n{3,}`)
	html = nlRe.ReplaceAllString(html, "\n\n")

	return strings.TrimSpace(html)
}
