package category

import "testing"

func TestParse_KnownNames(t *testing.T) {
	tests := []struct {
		name string
		want Category
	}{
		{"Sightseeing", Sightseeing},
		{"Nightlife", Nightlife},
		{"Restaurants", Restaurants},
		{"Animals", Animals},
		{"Other", Other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.name); got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestParse_UnknownFallsBackToOther(t *testing.T) {
	if got := Parse("SomethingUnheardOf"); got != Other {
		t.Errorf("Parse(unknown) = %v, want Other", got)
	}
}

func TestString_RoundTrip(t *testing.T) {
	for c := Other; c <= Animals; c++ {
		if Parse(c.String()) != c {
			t.Errorf("round trip failed for %v (%q)", c, c.String())
		}
	}
}

func TestJSON_RoundTrip(t *testing.T) {
	b, err := Sightseeing.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(b) != `"Sightseeing"` {
		t.Errorf("MarshalJSON = %s, want \"Sightseeing\"", b)
	}
	var c Category
	if err := c.UnmarshalJSON(b); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if c != Sightseeing {
		t.Errorf("UnmarshalJSON round trip = %v, want Sightseeing", c)
	}
}
