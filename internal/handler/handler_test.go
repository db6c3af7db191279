package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wayfarer/internal/config"
	"wayfarer/internal/fmi"
	"wayfarer/internal/graph"
)

func testGraph(t *testing.T) *graph.Graph {
	t.Helper()
	input := "3\n1\n4\n" +
		"0 53.0700 8.8000\n" +
		"1 53.0709 8.8000\n" +
		"2 53.0718 8.8000\n" +
		"1 53.0709 8.8000 Sightseeing\n" +
		"0 1 100\n1 0 100\n" +
		"1 2 100\n2 1 100\n"
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

func testHandler(t *testing.T) *Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{RoutingAlgorithm: "Greedy"}
	return New(testGraph(t), cfg, logger)
}

func TestSights_ReturnsSightsInArea(t *testing.T) {
	h := testHandler(t)
	body := `{"lat": 53.0700, "lon": 8.8000, "radius": 500}`
	req := httptest.NewRequest(http.MethodPost, "/sights", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.Sights(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var sights []graph.Sight
	if err := json.Unmarshal(rec.Body.Bytes(), &sights); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(sights) != 1 || sights[0].NodeID != 1 {
		t.Fatalf("sights = %+v, want one sight at node 1", sights)
	}
}

func TestSights_MalformedBody(t *testing.T) {
	h := testHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/sights", bytes.NewBufferString("not json"))
	rec := httptest.NewRecorder()

	h.Sights(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRoute_ComputesGreedyRoute(t *testing.T) {
	h := testHandler(t)
	body := `{
		"area": {"lat": 53.0700, "lon": 8.8000, "radius": 500},
		"start": "2026-07-01T10:00:00Z",
		"end": "2026-07-01T10:07:30Z",
		"walking_speed_kmh": 3.6,
		"algorithm": "Greedy",
		"user_prefs": {"categories": [{"name": "Sightseeing", "pref": 5}]}
	}`
	req := httptest.NewRequest(http.MethodPost, "/route", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.Route(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Route []map[string]any `json:"route"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(resp.Route) == 0 {
		t.Fatal("expected a non-empty route")
	}
	if resp.Route[0]["type"] != "Start" {
		t.Errorf("first sector type = %v, want Start", resp.Route[0]["type"])
	}
}

func TestRoute_NegativeTimeIntervalIsBadRequest(t *testing.T) {
	h := testHandler(t)
	body := `{
		"area": {"lat": 53.0700, "lon": 8.8000, "radius": 500},
		"start": "2026-07-01T10:00:00Z",
		"end": "2026-07-01T09:00:00Z",
		"walking_speed_kmh": 3.6,
		"algorithm": "Greedy",
		"user_prefs": {}
	}`
	req := httptest.NewRequest(http.MethodPost, "/route", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.Route(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRoute_UnknownAlgorithmIsBadRequest(t *testing.T) {
	h := testHandler(t)
	body := `{
		"area": {"lat": 53.0700, "lon": 8.8000, "radius": 500},
		"start": "2026-07-01T10:00:00Z",
		"end": "2026-07-01T10:07:30Z",
		"walking_speed_kmh": 3.6,
		"algorithm": "NotReal",
		"user_prefs": {}
	}`
	req := httptest.NewRequest(http.MethodPost, "/route", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()

	h.Route(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
