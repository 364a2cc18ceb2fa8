// Package similarity answers "which players are most like P" queries.
//
// Each selected attribute is standardised to a population z-score over the
// whole table, and candidates are ranked by Euclidean distance in that space.
// Unknown cells are imputed with the column mean (z = 0) and a column with no
// spread contributes nothing to any distance. Each distance term is taken as
// (raw_i - raw_anchor) / std so that equal raw gaps give equal distances.
package similarity

import (
	"errors"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/okian/pitchstats/internal/domain/player"
)

const queryName = "similar"

// tieTolerance is the relative gap under which two distances are ordered by
// name instead.
const tieTolerance = 1e-12

// Match is one player in a similarity result. Values holds the raw selected
// attributes that are known for the player.
type Match struct {
	Index    int
	ID       string
	Name     string
	Distance float64
	Values   map[player.Attribute]float64
}

// Result lists the nearest players to Anchor, closest first.
type Result struct {
	Anchor     Match
	Attributes []player.Attribute
	Matches    []Match
}

// Index holds the mean-imputed feature matrix of a table and the population
// standard deviation of each column for a fixed attribute set. It is
// immutable and safe for concurrent queries.
type Index struct {
	table *player.Table
	attrs []player.Attribute
	names []string
	raw   *mat.Dense // rows = records, cols = attrs; nil for an empty table
	std   []float64  // 0 marks a column that is left out of distances
}

// NewIndex standardises attrs (DefaultAttributes when empty) across t.
func NewIndex(t *player.Table, attrs ...player.Attribute) (*Index, error) {
	if len(attrs) == 0 {
		attrs = player.DefaultAttributes
	}
	if err := player.ValidateAttributes(attrs); err != nil {
		return nil, withQuery(err)
	}
	ix := &Index{table: t, attrs: append([]player.Attribute(nil), attrs...)}
	t.Each(func(_ int, r *player.Record) { ix.names = append(ix.names, r.Name) })

	n, d := t.Len(), len(attrs)
	if n == 0 {
		return ix, nil
	}
	ix.raw = mat.NewDense(n, d, nil)
	ix.std = make([]float64, d)

	col := make([]float64, 0, n)
	for j, a := range attrs {
		col = col[:0]
		t.Each(func(_ int, r *player.Record) {
			if v, ok := r.Value(a); ok {
				col = append(col, v)
			}
		})
		if len(col) == 0 {
			continue
		}
		mean, std := stat.PopMeanStdDev(col, nil)
		if std == 0 {
			continue
		}
		ix.std[j] = std
		t.Each(func(i int, r *player.Record) {
			v, ok := r.Value(a)
			if !ok {
				v = mean
			}
			ix.raw.Set(i, j, v)
		})
	}
	return ix, nil
}

// Attributes returns the attribute set of the index.
func (ix *Index) Attributes() []player.Attribute {
	return append([]player.Attribute(nil), ix.attrs...)
}

// FindSimilar returns up to k players nearest to the first record named name
// (exact, case-sensitive). k larger than the number of other players is
// clamped; k <= 0 is rejected.
func (ix *Index) FindSimilar(name string, k int) (Result, error) {
	i, ok := ix.table.FirstByName(name)
	if !ok {
		return Result{}, &player.PlayerNotFoundError{Key: "name", Value: name}
	}
	return ix.Nearest(i, k)
}

// FindSimilarByID is FindSimilar keyed by the optional record ID.
func (ix *Index) FindSimilarByID(id string, k int) (Result, error) {
	i, ok := ix.table.FirstByID(id)
	if !ok {
		return Result{}, &player.PlayerNotFoundError{Key: "id", Value: id}
	}
	return ix.Nearest(i, k)
}

// Nearest returns the k records closest to the record at anchor, excluding
// the anchor itself, ordered by distance, then name, then table order.
func (ix *Index) Nearest(anchor, k int) (Result, error) {
	if k <= 0 {
		return Result{}, &player.InvalidArgumentError{
			Query: queryName, Param: "k", Value: strconv.Itoa(k), Reason: "must be positive",
		}
	}
	n := ix.table.Len()
	if anchor < 0 || anchor >= n {
		return Result{}, &player.InvalidArgumentError{
			Query: queryName, Param: "anchor", Value: strconv.Itoa(anchor), Reason: "out of range",
		}
	}

	res := Result{
		Anchor:     ix.match(anchor, 0),
		Attributes: ix.Attributes(),
	}
	if k > n-1 {
		k = n - 1
	}
	if k == 0 {
		return res, nil
	}

	a := ix.raw.RawRowView(anchor)
	diff := make([]float64, len(ix.attrs))
	cands := make([]Match, 0, n-1)
	for i := 0; i < n; i++ {
		if i == anchor {
			continue
		}
		cands = append(cands, Match{
			Index:    i,
			Name:     ix.names[i],
			Distance: ix.distance(a, ix.raw.RawRowView(i), diff),
		})
	}
	sort.Slice(cands, func(i, j int) bool {
		di, dj := cands[i].Distance, cands[j].Distance
		if !scalar.EqualWithinRel(di, dj, tieTolerance) {
			return di < dj
		}
		if cands[i].Name != cands[j].Name {
			return cands[i].Name < cands[j].Name
		}
		return cands[i].Index < cands[j].Index
	})

	res.Matches = make([]Match, k)
	for i := range res.Matches {
		res.Matches[i] = ix.match(cands[i].Index, cands[i].Distance)
	}
	return res, nil
}

// distance is the Euclidean norm of the standardised gaps between rows a and
// b. diff is scratch space of len(ix.attrs).
func (ix *Index) distance(a, b, diff []float64) float64 {
	for j, std := range ix.std {
		if std == 0 {
			diff[j] = 0
			continue
		}
		diff[j] = (b[j] - a[j]) / std
	}
	return floats.Norm(diff, 2)
}

func (ix *Index) match(i int, dist float64) Match {
	r := ix.table.At(i)
	m := Match{
		Index:    i,
		ID:       r.ID,
		Name:     r.Name,
		Distance: dist,
		Values:   make(map[player.Attribute]float64, len(ix.attrs)),
	}
	for _, a := range ix.attrs {
		if v, ok := r.Value(a); ok {
			m.Values[a] = v
		}
	}
	return m
}

// FindSimilar builds a one-off Index over attrs and queries it by name.
func FindSimilar(t *player.Table, name string, k int, attrs ...player.Attribute) (Result, error) {
	ix, err := NewIndex(t, attrs...)
	if err != nil {
		return Result{}, err
	}
	return ix.FindSimilar(name, k)
}

// FindSimilarByID builds a one-off Index over attrs and queries it by ID.
func FindSimilarByID(t *player.Table, id string, k int, attrs ...player.Attribute) (Result, error) {
	ix, err := NewIndex(t, attrs...)
	if err != nil {
		return Result{}, err
	}
	return ix.FindSimilarByID(id, k)
}

func withQuery(err error) error {
	var ia *player.InvalidArgumentError
	if errors.As(err, &ia) && ia.Query == "" {
		cp := *ia
		cp.Query = queryName
		return &cp
	}
	return err
}
