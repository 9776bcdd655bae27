package discovery

import (
	"net/url"
	"strings"
)

// titleSuffixes are separators after which search-result titles carry site
// branding rather than the company name.
var titleSuffixes = []string{" - ", " | ", ": "}

// CleanTitle derives a company name from a search-result title by stripping
// trailing branding suffixes.
func CleanTitle(title string) string {
	name := strings.TrimSpace(title)
	for _, sep := range titleSuffixes {
		if idx := strings.Index(name, sep); idx > 0 {
			name = name[:idx]
		}
	}
	return strings.TrimSpace(name)
}

// DomainFromURL parses a URL and returns its registrable host, lower-cased
// with any leading "www." removed. Returns "" when no host is resolvable.
func DomainFromURL(rawURL string) string {
	raw := strings.TrimSpace(rawURL)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	if host == "" || !strings.Contains(host, ".") {
		return ""
	}
	return host
}
