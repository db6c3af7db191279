package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wayfarer/internal/config"
	"wayfarer/internal/fmi"
	"wayfarer/internal/graph"
)

func testGraph(t *testing.T) *graph.Graph {
	t.Helper()
	input := "2\n0\n2\n" +
		"0 53.0700 8.8000\n" +
		"1 53.0709 8.8000\n" +
		"0 1 100\n1 0 100\n"
	data, err := fmi.Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("fmi.Decode: %v", err)
	}
	g, err := graph.FromRaw(data)
	if err != nil {
		t.Fatalf("FromRaw: %v", err)
	}
	return g
}

func TestServer_RoutesAreRegistered(t *testing.T) {
	cfg := &config.Config{IP: "127.0.0.1", Port: 0, RoutingAlgorithm: "Greedy"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := New(cfg, testGraph(t), logger)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	s.http.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /healthz = %d, want 200", rec.Code)
	}
}

func TestServer_CORSPreflight(t *testing.T) {
	cfg := &config.Config{IP: "127.0.0.1", Port: 0, RoutingAlgorithm: "Greedy"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := New(cfg, testGraph(t), logger)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/route", nil)
	s.http.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("OPTIONS /route = %d, want 204", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header on preflight response")
	}
}

func TestServer_ServeShutsDownOnContextCancel(t *testing.T) {
	cfg := &config.Config{IP: "127.0.0.1", Port: 0, RoutingAlgorithm: "Greedy"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := New(cfg, testGraph(t), logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned error after cancel: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not shut down within 2s of context cancellation")
	}
}
