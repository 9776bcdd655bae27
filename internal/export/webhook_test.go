package export

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roelovanheeren/ai-lead-scrape-sub000/internal/resilience"
)

func TestWebhookExporter_PostsReport(t *testing.T) {
	var got Report
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	e := &WebhookExporter{URL: srv.URL, Client: srv.Client()}
	require.NoError(t, e.Export(context.Background(), sampleReport()))

	assert.Equal(t, "job-1", got.Job.ID)
	assert.Len(t, got.Leads, 2)
}

func TestWebhookExporter_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	e := &WebhookExporter{URL: srv.URL, Client: srv.Client()}
	require.NoError(t, e.Export(context.Background(), sampleReport()))
	assert.Equal(t, int32(2), calls.Load())
}

func TestWebhookExporter_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	e := &WebhookExporter{URL: srv.URL, Client: srv.Client()}
	err := e.Export(context.Background(), sampleReport())

	require.Error(t, err)
	assert.False(t, resilience.IsTransient(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestWebhookExporter_ConnectionFailure(t *testing.T) {
	e := &WebhookExporter{
		URL:    "http://127.0.0.1:1/void",
		Client: &http.Client{Timeout: time.Second},
	}
	assert.Error(t, e.Export(context.Background(), sampleReport()))
}
