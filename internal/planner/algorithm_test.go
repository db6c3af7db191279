package planner

import (
	"testing"
	"time"
)

func TestNew_DispatchesByName(t *testing.T) {
	g := lineGraph(t)
	start := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(450 * time.Second)
	area := Area{Lat: 53.0700, Lon: 8.8000, Radius: 500}

	if _, err := New(GreedyName, g, start, end, 1.0, area, linePrefs(), nil); err != nil {
		t.Errorf("New(Greedy) error = %v", err)
	}
	if _, err := New(SimAnnealName, g, start, end, 1.0, area, linePrefs(), nil); err != nil {
		t.Errorf("New(SimAnneal) error = %v", err)
	}
}

func TestNew_UnknownAlgorithm(t *testing.T) {
	g := lineGraph(t)
	start := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(450 * time.Second)
	area := Area{Lat: 53.0700, Lon: 8.8000, Radius: 500}

	_, err := New("NotAnAlgorithm", g, start, end, 1.0, area, linePrefs(), nil)
	algErr, ok := err.(*AlgorithmError)
	if !ok || algErr.Kind != UnknownAlgorithm || algErr.UnknownName != "NotAnAlgorithm" {
		t.Fatalf("err = %v, want AlgorithmError{UnknownAlgorithm, \"NotAnAlgorithm\"}", err)
	}
}
