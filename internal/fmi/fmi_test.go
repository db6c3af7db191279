package fmi

import (
	"strings"
	"testing"

	"wayfarer/internal/category"
)

func TestDecodeEncode_RoundTrip(t *testing.T) {
	input := "2\n1\n2\n" +
		"0 53.0793 8.8017\n" +
		"1 53.074448 8.805105\n" +
		"1 53.074448 8.805105 Sightseeing\n" +
		"0 1 500\n" +
		"1 0 500\n"

	data, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(data.Nodes) != 2 || len(data.Sights) != 1 || len(data.Edges) != 2 {
		t.Fatalf("got %d nodes, %d sights, %d edges", len(data.Nodes), len(data.Sights), len(data.Edges))
	}
	if data.Sights[0].Category != category.Sightseeing {
		t.Errorf("sight category = %v, want Sightseeing", data.Sights[0].Category)
	}

	var out strings.Builder
	if err := Encode(&out, data.Nodes, data.Sights, data.Edges); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	roundTripped, err := Decode(strings.NewReader(out.String()))
	if err != nil {
		t.Fatalf("Decode(encoded): %v", err)
	}
	if len(roundTripped.Edges) != len(data.Edges) {
		t.Errorf("round trip edge count = %d, want %d", len(roundTripped.Edges), len(data.Edges))
	}
}

func TestDecode_MalformedIntIsParseIntError(t *testing.T) {
	input := "notanumber\n0\n0\n"
	_, err := Decode(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected error decoding malformed header")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if pe.Kind != KindParseInt {
		t.Errorf("Kind = %v, want KindParseInt", pe.Kind)
	}
}

func TestDecode_MalformedFloatIsParseFloatError(t *testing.T) {
	input := "1\n0\n0\n0 notafloat 8.80\n"
	_, err := Decode(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected error decoding malformed node line")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if pe.Kind != KindParseFloat {
		t.Errorf("Kind = %v, want KindParseFloat", pe.Kind)
	}
}

func TestDecode_TruncatedFileIsIOError(t *testing.T) {
	input := "2\n0\n0\n0 1.0 2.0\n"
	_, err := Decode(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected error decoding truncated file")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if pe.Kind != KindIO {
		t.Errorf("Kind = %v, want KindIO", pe.Kind)
	}
}
