// Package category defines the closed set of sight categories shared by
// ingest, the graph store, scoring and the planners.
package category

// Category is a closed enumeration of sight kinds.
type Category int

const (
	Other Category = iota
	ThemePark
	Swimming
	PicnicBarbequeSpot
	MuseumExhibition
	Nature
	Nightlife
	Restaurants
	Sightseeing
	Shopping
	Animals
)

var names = [...]string{
	Other:              "Other",
	ThemePark:          "ThemePark",
	Swimming:           "Swimming",
	PicnicBarbequeSpot: "PicnicBarbequeSpot",
	MuseumExhibition:   "MuseumExhibition",
	Nature:             "Nature",
	Nightlife:          "Nightlife",
	Restaurants:        "Restaurants",
	Sightseeing:        "Sightseeing",
	Shopping:           "Shopping",
	Animals:            "Animals",
}

// String returns the PascalCase wire name of the category.
func (c Category) String() string {
	if int(c) < 0 || int(c) >= len(names) {
		return names[Other]
	}
	return names[c]
}

var byName = func() map[string]Category {
	m := make(map[string]Category, len(names))
	for c, n := range names {
		m[n] = Category(c)
	}
	return m
}()

// Parse maps a wire/tag-config category name to a Category, falling back to
// Other for anything unrecognized.
func Parse(name string) Category {
	if c, ok := byName[name]; ok {
		return c
	}
	return Other
}

// MarshalJSON encodes the category as its PascalCase name.
func (c Category) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// UnmarshalJSON decodes a PascalCase category name, falling back to Other.
func (c *Category) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	*c = Parse(s)
	return nil
}
