package metric

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/okian/pitchstats/internal/domain/player"
)

// Performer is a player's overall rating measured against its group baseline.
type Performer struct {
	Index    int
	Name     string
	Group    string
	Overall  int
	Baseline float64
	Margin   float64
}

// GroupPerformance ranks the members of one group by margin.
type GroupPerformance struct {
	Group    string
	Baseline float64
	Members  []Performer
}

// OverPerformers groups players by nation or club and ranks each group's
// members by Margin = Overall - mean(Overall of the group), largest first.
// Ties order by name, then table order. Players with an unknown overall are
// left out of both the baseline and the ranking; a group with no known
// overall is omitted. Groups appear in first-seen table order.
func OverPerformers(t *player.Table, by GroupKey) []GroupPerformance {
	pos := make(map[string]int)
	var groups []GroupPerformance
	t.Each(func(i int, r *player.Record) {
		if !r.Known(player.Overall) {
			return
		}
		g := by.of(r)
		gi, ok := pos[g]
		if !ok {
			gi = len(groups)
			pos[g] = gi
			groups = append(groups, GroupPerformance{Group: g})
		}
		groups[gi].Members = append(groups[gi].Members, Performer{
			Index:   i,
			Name:    r.Name,
			Group:   g,
			Overall: r.Overall,
		})
	})

	for gi := range groups {
		g := &groups[gi]
		vals := make([]float64, len(g.Members))
		for i, m := range g.Members {
			vals[i] = float64(m.Overall)
		}
		g.Baseline = stat.Mean(vals, nil)
		for i := range g.Members {
			g.Members[i].Baseline = g.Baseline
			g.Members[i].Margin = float64(g.Members[i].Overall) - g.Baseline
		}
		if len(g.Members) == 1 {
			g.Members[0].Margin = 0
		}
		sortPerformers(g.Members)
	}
	return groups
}

// TopOverPerformers returns the best over-performer of each group, ordered by
// margin descending and then group name. topN <= 0 returns every group.
func TopOverPerformers(t *player.Table, by GroupKey, topN int) []Performer {
	groups := OverPerformers(t, by)
	top := make([]Performer, 0, len(groups))
	for _, g := range groups {
		top = append(top, g.Members[0])
	}
	sort.SliceStable(top, func(i, j int) bool {
		if top[i].Margin != top[j].Margin {
			return top[i].Margin > top[j].Margin
		}
		return top[i].Group < top[j].Group
	})
	return truncate(top, topN)
}

func sortPerformers(ms []Performer) {
	sort.SliceStable(ms, func(i, j int) bool {
		if ms[i].Margin != ms[j].Margin {
			return ms[i].Margin > ms[j].Margin
		}
		if ms[i].Name != ms[j].Name {
			return ms[i].Name < ms[j].Name
		}
		return ms[i].Index < ms[j].Index
	})
}
