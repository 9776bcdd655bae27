package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/config"
	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/resilience"
)

var samplePage = `<html><head><title> Acme Partners </title></head><body>
<nav><a href="/">Home</a></nav>
<h1>Acme &amp; Co</h1>
<script>var tracking = true;</script>
<p>Build-to-rent equity investments.</p>
<footer>Copyright</footer>
</body></html>` + strings.Repeat("<!-- pad -->", 20)

func TestLocalFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "LeadGenBot")
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	page, err := NewLocalFetcher(config.ScrapeConfig{}).Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, "Acme Partners", page.Title)
	assert.Equal(t, 200, page.StatusCode)
	assert.Equal(t, "local_http", page.Source)
	assert.Contains(t, page.HTML, "<h1>")
	assert.Contains(t, page.Text, "Acme & Co")
	assert.NotContains(t, page.Text, "tracking")
	assert.NotContains(t, page.Text, "Home")
	assert.NotContains(t, page.Text, "Copyright")
}

func TestLocalFetcher_ErrorStatusIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewLocalFetcher(config.ScrapeConfig{}).Fetch(context.Background(), srv.URL)

	require.Error(t, err)
	assert.Equal(t, resilience.KindUpstream, resilience.KindOf(err))
}

func TestLocalFetcher_TinyBodyRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	_, err := NewLocalFetcher(config.ScrapeConfig{}).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.ErrorContains(t, err, "empty page")
}

func TestLocalFetcher_CaptchaBlocked(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>Please complete the reCAPTCHA to continue " +
			strings.Repeat("x ", 100) + "</body></html>"))
	}))
	defer srv.Close()

	_, err := NewLocalFetcher(config.ScrapeConfig{}).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.ErrorContains(t, err, "blocked")
	assert.Equal(t, resilience.KindUpstream, resilience.KindOf(err))
}

func TestExtractTitle(t *testing.T) {
	assert.Equal(t, "Hello", extractTitle([]byte(`<TITLE>Hello</TITLE>`)))
	assert.Empty(t, extractTitle([]byte(`<h1>no title</h1>`)))
}

func TestStripHTML(t *testing.T) {
	got := stripHTML(`<div><script>x()</script><p>A &amp; B&nbsp;&gt; C</p></div>`)
	assert.Equal(t, "A & B > C", got)
}
