package stats

import (
	"math"
	"sort"
)

// Finalize computes the change ratio of every prefecture. It must run only
// after the source is exhausted.
func (a *Aggregator) Finalize() {
	for _, name := range a.order {
		a.prefs[name].Finalize()
	}
}

// Ranking returns the prefectures ordered by change, largest first. Ties keep
// the order in which prefectures were first seen, and NaN ratios go last.
// Stats not yet finalized are finalized in the returned copies only.
func (a *Aggregator) Ranking() []RankingEntry {
	entries := make([]RankingEntry, 0, len(a.order))
	for _, name := range a.order {
		s := *a.prefs[name]
		s.Finalize()
		entries = append(entries, RankingEntry{Prefecture: name, Stats: s})
	}
	SortByChange(entries)
	return entries
}

// SortByChange stable-sorts entries by change ratio, descending.
func SortByChange(entries []RankingEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		ci, cj := entries[i].Stats.Change, entries[j].Stats.Change
		if math.IsNaN(ci) {
			return false
		}
		if math.IsNaN(cj) {
			return true
		}
		return ci > cj
	})
}
