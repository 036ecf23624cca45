package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestDetectNgrokURL(t *testing.T) {
	ctx := context.Background()

	t.Run("Prefers HTTPS", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/tunnels" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			w.Write([]byte(`{"tunnels":[{"public_url":"http://abc.ngrok.io","proto":"http"},{"public_url":"https://abc.ngrok.io","proto":"https"}]}`))
		}))
		defer ts.Close()

		url, err := detectNgrokURL(ctx, ts.URL, 1, time.Millisecond)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if url != "https://abc.ngrok.io" {
			t.Errorf("expected https tunnel, got %s", url)
		}
	})

	t.Run("Falls Back To Any Tunnel", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"tunnels":[{"public_url":"http://abc.ngrok.io","proto":"http"}]}`))
		}))
		defer ts.Close()

		url, err := detectNgrokURL(ctx, ts.URL, 1, time.Millisecond)
		if err != nil || url != "http://abc.ngrok.io" {
			t.Errorf("unexpected result %q, %v", url, err)
		}
	})

	t.Run("Retries Until Tunnel Appears", func(t *testing.T) {
		var calls int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) < 3 {
				w.Write([]byte(`{"tunnels":[]}`))
				return
			}
			w.Write([]byte(`{"tunnels":[{"public_url":"https://late.ngrok.io","proto":"https"}]}`))
		}))
		defer ts.Close()

		url, err := detectNgrokURL(ctx, ts.URL, 5, time.Millisecond)
		if err != nil || url != "https://late.ngrok.io" {
			t.Errorf("unexpected result %q, %v", url, err)
		}
		if atomic.LoadInt32(&calls) != 3 {
			t.Errorf("expected 3 calls, got %d", calls)
		}
	})

	t.Run("Gives Up", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer ts.Close()

		if _, err := detectNgrokURL(ctx, ts.URL, 2, time.Millisecond); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("Context Cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		if _, err := detectNgrokURL(cctx, "http://127.0.0.1:1", 3, time.Second); err == nil {
			t.Error("expected error")
		}
	})
}
