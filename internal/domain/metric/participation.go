package metric

import (
	"sort"

	"github.com/okian/pitchstats/internal/domain/player"
)

// NationParticipation counts players per nationality, largest first. Ties
// keep the order in which nationalities first appear in the table. topN <= 0
// returns every nationality.
func NationParticipation(t *player.Table, topN int) []Count {
	return participation(t, topN, (*player.Record).NationalityOrUnknown)
}

// ClubParticipation counts players per club with the same ordering rules as
// NationParticipation.
func ClubParticipation(t *player.Table, topN int) []Count {
	return participation(t, topN, (*player.Record).ClubOrUnknown)
}

func participation(t *player.Table, topN int, key func(*player.Record) string) []Count {
	counts := countBy(t, key)
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	return truncate(counts, topN)
}

// countBy groups records by key in first-seen order.
func countBy(t *player.Table, key func(*player.Record) string) []Count {
	pos := make(map[string]int)
	var counts []Count
	t.Each(func(_ int, r *player.Record) {
		k := key(r)
		i, ok := pos[k]
		if !ok {
			i = len(counts)
			pos[k] = i
			counts = append(counts, Count{Category: k})
		}
		counts[i].Count++
	})
	return counts
}
