package scoring

import (
	"testing"

	"wayfarer/internal/category"
	"wayfarer/internal/graph"
)

func sampleSights() map[int]graph.Sight {
	return map[int]graph.Sight{
		10: {NodeID: 10, Category: category.Sightseeing},
		20: {NodeID: 20, Category: category.Restaurants},
		30: {NodeID: 30, Category: category.Nightlife},
	}
}

func TestCompute_CategoryPrefAssignsScore(t *testing.T) {
	prefs := UserPreferences{Categories: []CategoryPref{{Name: "Sightseeing", Pref: 5}}}
	scores := Compute(sampleSights(), prefs)
	if scores[10] != PrefToScore[5] {
		t.Errorf("scores[10] = %d, want %d", scores[10], PrefToScore[5])
	}
	if scores[20] != 0 || scores[30] != 0 {
		t.Errorf("unrelated sights should stay at 0, got %v", scores)
	}
}

func TestCompute_SightPrefOverridesCategory(t *testing.T) {
	prefs := UserPreferences{
		Categories: []CategoryPref{{Name: "Sightseeing", Pref: 5}},
		Sights:     []SightPref{{ID: 10, Category: category.Sightseeing, Pref: 0}},
	}
	scores := Compute(sampleSights(), prefs)
	if scores[10] != 0 {
		t.Errorf("per-sight pref should override category score, got %d", scores[10])
	}
}

func TestCompute_SightPrefIgnoresEmbeddedCategory(t *testing.T) {
	// Category field on SightPref is wrong on purpose; scoring must ignore it
	// and trust the sight id alone (resolved Open Question 4).
	prefs := UserPreferences{
		Sights: []SightPref{{ID: 20, Category: category.Animals, Pref: 4}},
	}
	scores := Compute(sampleSights(), prefs)
	if scores[20] != PrefToScore[4] {
		t.Errorf("scores[20] = %d, want %d despite mismatched category field", scores[20], PrefToScore[4])
	}
}

func TestCompute_UnknownCategoryNameIsOther(t *testing.T) {
	sights := map[int]graph.Sight{1: {NodeID: 1, Category: category.Other}}
	prefs := UserPreferences{Categories: []CategoryPref{{Name: "NotARealCategory", Pref: 3}}}
	scores := Compute(sights, prefs)
	if scores[1] != PrefToScore[3] {
		t.Errorf("unknown category name should fold to Other, got %d", scores[1])
	}
}

func TestValidPref_Clamps(t *testing.T) {
	if (CategoryPref{Pref: 99}).ValidPref() != UserPrefMax {
		t.Error("ValidPref should clamp to UserPrefMax")
	}
	if (CategoryPref{Pref: -5}).ValidPref() != 0 {
		t.Error("ValidPref should clamp negative to 0")
	}
}
