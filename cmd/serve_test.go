package main

import (
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGracefulShutdown_DrainsInflightRequests(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	srv := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			close(started)
			<-release
			w.WriteHeader(http.StatusNoContent)
		}),
	}

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go srv.Serve(l) //nolint:errcheck

	status := make(chan int, 1)
	go func() {
		resp, err := http.Get("http://" + l.Addr().String())
		if err != nil {
			status <- 0
			return
		}
		resp.Body.Close()
		status <- resp.StatusCode
	}()
	<-started

	done := make(chan struct{})
	go func() {
		gracefulShutdown(srv, 5*time.Second)
		close(done)
	}()

	// Shutdown must wait for the in-flight request, not abort it.
	select {
	case <-done:
		t.Fatal("shutdown returned while a request was still in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	select {
	case code := <-status:
		assert.Equal(t, http.StatusNoContent, code)
	case <-time.After(5 * time.Second):
		t.Fatal("request never completed")
	}
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("shutdown never returned")
	}
}
