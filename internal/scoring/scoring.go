// Package scoring turns a user's category and per-sight preferences into a
// per-sight score map, shared identically by the greedy and simulated
// annealing planners (see SPEC_FULL.md §9, resolved Open Question 1: the
// original source's two planners disagreed on this table; this module
// unifies them).
package scoring

import (
	"wayfarer/internal/category"
	"wayfarer/internal/graph"
)

// UserPrefMax is the largest accepted raw preference value.
const UserPrefMax = 5

// PrefToScore maps a clamped raw preference (0..=UserPrefMax) to its score,
// a doubling scheme.
var PrefToScore = [UserPrefMax + 1]int{0, 1, 2, 4, 8, 16}

// CategoryPref is a user's preference weight for an entire sight category.
type CategoryPref struct {
	Name string `json:"name"`
	Pref int    `json:"pref"`
}

// ValidPref clamps Pref into [0, UserPrefMax].
func (c CategoryPref) ValidPref() int {
	return clamp(c.Pref)
}

// SightPref is a user's preference weight for one specific sight. Category
// is carried for wire-format symmetry but deliberately never consulted —
// see SPEC_FULL.md §9, resolved Open Question 4.
type SightPref struct {
	ID       int               `json:"id"`
	Category category.Category `json:"category"`
	Pref     int               `json:"pref"`
}

// ValidPref clamps Pref into [0, UserPrefMax].
func (s SightPref) ValidPref() int {
	return clamp(s.Pref)
}

// UserPreferences is the full preference payload from a route request.
type UserPreferences struct {
	Categories []CategoryPref `json:"categories"`
	Sights     []SightPref    `json:"sights"`
}

func clamp(pref int) int {
	if pref < 0 {
		return 0
	}
	if pref > UserPrefMax {
		return UserPrefMax
	}
	return pref
}

// Map is a sight-id to score lookup, defaulting to 0 for unlisted sights.
type Map map[int]int

// Compute builds a Map for the given in-area sights and preferences. Every
// sight starts at 0. Category preferences assign PrefToScore[clamped pref]
// to every sight of that category. Per-sight preferences are applied after
// and take precedence over category scores for that sight.
func Compute(sights map[int]graph.Sight, prefs UserPreferences) Map {
	scores := make(Map, len(sights))
	for id := range sights {
		scores[id] = 0
	}

	for _, cp := range prefs.Categories {
		cat := category.Parse(cp.Name)
		score := PrefToScore[cp.ValidPref()]
		for id, s := range sights {
			if s.Category == cat {
				scores[id] = score
			}
		}
	}

	for _, sp := range prefs.Sights {
		scores[sp.ID] = PrefToScore[sp.ValidPref()]
	}

	return scores
}
