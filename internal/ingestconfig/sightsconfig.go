// Package ingestconfig loads the sight-classification configuration that
// tells the ingest pipeline which OSM tags mark a node as a sight, and which
// Category it falls into.
package ingestconfig

import (
	"encoding/json"
	"fmt"
	"os"

	"wayfarer/internal/category"
)

// Tag is a single OSM (key, value) pair to match against a node's tags.
type Tag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// CategoryTagMap associates one Category name with the tags that identify it.
type CategoryTagMap struct {
	Category string `json:"category"`
	Tags     []Tag  `json:"tags"`
}

// SightsConfig is the top-level sights_config.json document.
type SightsConfig struct {
	CategoryTagMap []CategoryTagMap `json:"category_tag_map"`
}

// Load reads and parses a sights_config.json file at path.
func Load(path string) (*SightsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ingestconfig: read %s: %w", path, err)
	}
	var cfg SightsConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("ingestconfig: parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Classifier is a (key, value) -> Category lookup built once from a
// SightsConfig, used to classify OSM nodes during ingest.
type Classifier struct {
	byTag map[Tag]category.Category
	// order lists the configured tags in category_tag_map declaration
	// order. Classify does not consult it: a node whose tags match more
	// than one category gets the category of its own first matching tag.
	// A tag listed under several categories keeps the first one declared.
	order []Tag
}

// NewClassifier builds a Classifier from a loaded SightsConfig.
func NewClassifier(cfg *SightsConfig) *Classifier {
	c := &Classifier{byTag: make(map[Tag]category.Category)}
	for _, m := range cfg.CategoryTagMap {
		cat := category.Parse(m.Category)
		for _, tag := range m.Tags {
			if _, exists := c.byTag[tag]; exists {
				continue
			}
			c.byTag[tag] = cat
			c.order = append(c.order, tag)
		}
	}
	return c
}

// TagPair mirrors the (key, value) pair carried by the OSM tag types this
// package's callers use, kept independent of any specific OSM library type.
type TagPair struct {
	Key, Value string
}

// Classify returns the category for the first of nodeTags (in the node's own
// tag order) that matches a configured (key, value) pair, and whether any
// match was found at all.
func (c *Classifier) Classify(nodeTags []TagPair) (category.Category, bool) {
	for _, nt := range nodeTags {
		if cat, ok := c.byTag[Tag{Key: nt.Key, Value: nt.Value}]; ok {
			return cat, true
		}
	}
	return category.Other, false
}
