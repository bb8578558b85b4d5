package query

import (
	"github.com/poiesic/cognatedb/core"
	"github.com/poiesic/cognatedb/store"
)

// CollectStats summarizes the current snapshot: group totals per match
// type, audit flags, and per-language coverage.
func CollectStats(st *store.Store) *core.Stats {
	snap := st.Snapshot()

	stats := &core.Stats{
		TotalGroups: snap.Len(),
		Coverage:    make(map[core.Language]int, len(core.Languages())),
	}
	for _, lang := range core.Languages() {
		stats.Coverage[lang] = 0
	}

	for _, group := range snap.All() {
		switch group.Match {
		case core.MatchPerfect:
			stats.PerfectGroups++
		case core.MatchNear:
			stats.NearGroups++
		}
		if group.NeedsReview {
			stats.NeedsReview++
		}
		for lang := range group.Entries {
			stats.Coverage[lang]++
		}
	}

	return stats
}
