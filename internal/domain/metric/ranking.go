package metric

import (
	"sort"

	"github.com/okian/pitchstats/internal/domain/player"
)

// Ranked is one row of a leaderboard-style ranking. Rank starts at 1.
type Ranked struct {
	Rank        int
	Index       int
	Name        string
	Nationality string
	Club        string
	Position    string
	Age         int
	Overall     int
	Potential   int
	MarketValue float64
	Wage        float64
}

// BestPlayers ranks by overall, then potential, both descending, then name
// ascending; remaining ties keep table order. Records with an unknown overall
// are not ranked. n <= 0 returns every ranked record.
func BestPlayers(t *player.Table, n int) []Ranked {
	return rank(t, n, player.Overall, player.Potential)
}

// HighestPotential ranks by potential, then overall, both descending, then
// name ascending. Records with an unknown potential are not ranked.
func HighestPotential(t *player.Table, n int) []Ranked {
	return rank(t, n, player.Potential, player.Overall)
}

func rank(t *player.Table, n int, primary, secondary player.Attribute) []Ranked {
	type cand struct {
		r      Ranked
		p, s   float64
		sKnown bool
	}
	cands := make([]cand, 0, t.Len())
	t.Each(func(i int, r *player.Record) {
		p, ok := r.Value(primary)
		if !ok {
			return
		}
		s, sok := r.Value(secondary)
		cands = append(cands, cand{
			r: Ranked{
				Index:       i,
				Name:        r.Name,
				Nationality: r.Nationality,
				Club:        r.Club,
				Position:    r.PrimaryPosition(),
				Age:         r.Age,
				Overall:     r.Overall,
				Potential:   r.Potential,
				MarketValue: r.MarketValue,
				Wage:        r.Wage,
			},
			p:      p,
			s:      s,
			sKnown: sok,
		})
	})

	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.p != b.p {
			return a.p > b.p
		}
		if a.sKnown != b.sKnown {
			return a.sKnown
		}
		if a.s != b.s {
			return a.s > b.s
		}
		return a.r.Name < b.r.Name
	})

	cands = truncate(cands, n)
	out := make([]Ranked, len(cands))
	for i, c := range cands {
		out[i] = c.r
		out[i].Rank = i + 1
	}
	return out
}
