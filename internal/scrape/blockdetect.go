package scrape

import (
	"net/http"
	"strings"
)

// BlockType describes the kind of anti-bot block detected.
type BlockType string

const (
	BlockNone       BlockType = ""
	BlockCloudflare BlockType = "cloudflare"
	BlockCaptcha    BlockType = "captcha"
	BlockJSShell    BlockType = "js_shell"
)

var cloudflareHeaders = []string{"cf-ray", "cf-cache-status"}

var captchaMarkers = []string{"captcha", "recaptcha", "hcaptcha"}

// DetectBlock classifies an HTTP response as a bot block. Team pages behind
// one of these still count as a recoverable fetch failure upstream, so the
// caller can fall through to the next fetcher in the chain.
func DetectBlock(resp *http.Response, body []byte) (bool, BlockType) {
	if resp == nil {
		return false, BlockNone
	}

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusServiceUnavailable {
		for _, h := range cloudflareHeaders {
			if resp.Header.Get(h) != "" {
				return true, BlockCloudflare
			}
		}
		if resp.Header.Get("server") == "cloudflare" {
			return true, BlockCloudflare
		}
	}

	lower := strings.ToLower(string(body))

	switch {
	case strings.Contains(lower, "checking your browser"),
		strings.Contains(lower, "cf-browser-verification"),
		strings.Contains(lower, "cloudflare") && strings.Contains(lower, "challenge"):
		return true, BlockCloudflare
	}

	for _, marker := range captchaMarkers {
		if strings.Contains(lower, marker) {
			return true, BlockCaptcha
		}
	}

	// A tiny body that only asks for JavaScript is a client-rendered shell,
	// not content.
	if len(body) < 2000 {
		if strings.Contains(lower, "<noscript") && strings.Contains(lower, "javascript") {
			return true, BlockJSShell
		}
		if strings.Contains(lower, `meta http-equiv="refresh"`) {
			return true, BlockJSShell
		}
	}

	return false, BlockNone
}
