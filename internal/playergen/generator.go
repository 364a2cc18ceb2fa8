package playergen

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/google/uuid"

	"github.com/okian/pitchstats/internal/domain/player"
	"github.com/okian/pitchstats/pkg/logger"
)

// idNamespace scopes the name-based UUIDs of generated players.
var idNamespace = uuid.MustParse("6f1d8a52-3c4b-4e7a-9a0e-2b7f5d9c1e44") //nolint:gochecknoglobals // fixed namespace

//nolint:gochecknoglobals // sampling pools
var (
	nations   = []string{"Spain", "France", "Brazil", "Argentina", "Germany", "England", "Portugal", "Italy", "Netherlands", "Nigeria"}
	clubs     = []string{"Real Norte", "Atletico Sur", "Olympique Est", "United West", "Sporting Central", "Dynamo Harbor", "Rovers", "City"}
	positions = []string{"GK", "CB", "LB", "RB", "CDM", "CM", "CAM", "LW", "RW", "ST"}
	first     = []string{"Luca", "Mateo", "Hugo", "Leo", "Noah", "Tiago", "Rafa", "Jonas", "Ade", "Marco", "Iker", "Theo"}
	last      = []string{"Silva", "Moreau", "Costa", "Fischer", "Rossi", "Okafor", "Jansen", "Garcia", "Smith", "Pereira"}
)

// Player attribute ranges.
const (
	minAge       = 16
	ageSpan      = 24
	minOverall   = 45
	overallSpan  = 50
	maxRating    = 99
	maxGrowth    = 20
	meanHeightCM = 181.0
	heightStdDev = 7.0
	bmi          = 23.0
	bmiStdDev    = 1.5
	cmPerMeter   = 100.0
	valueBase    = 5000.0
	wageRatio    = 0.004
	missingEvery = 97
)

// Generate creates n players deterministically from seed. The same seed and
// n always produce the same records regardless of the worker count.
func Generate(ctx context.Context, n int, seed uint64, workers int) ([]player.Record, error) {
	if n < 0 {
		return nil, fmt.Errorf("player count must not be negative: %d", n)
	}
	records := make([]player.Record, n)
	if n == 0 {
		return records, nil
	}
	workers = max(1, min(workers, n))
	perWorker := n / workers

	type chunkResult struct {
		start int
		err   error
	}
	resultChan := make(chan chunkResult, workers)

	for worker := 0; worker < workers; worker++ {
		start := worker * perWorker
		end := start + perWorker
		if worker == workers-1 {
			end = n
		}
		go func(start, end int) {
			for i := start; i < end; i++ {
				if i%1024 == 0 {
					if err := ctx.Err(); err != nil {
						resultChan <- chunkResult{start: start, err: err}
						return
					}
				}
				records[i] = generateOne(seed, i)
			}
			resultChan <- chunkResult{start: start}
		}(start, end)
	}

	var firstErr error
	for worker := 0; worker < workers; worker++ {
		if res := <-resultChan; res.err != nil && firstErr == nil {
			firstErr = fmt.Errorf("generate chunk at %d: %w", res.start, res.err)
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}

	logger.Get().Debug(ctx, "generated players", logger.Int("count", n), logger.Int("workers", workers))
	return records, nil
}

// generateOne builds the i-th player from its own PCG stream.
func generateOne(seed uint64, i int) player.Record {
	rng := rand.New(rand.NewPCG(seed, uint64(i))) //nolint:gosec // synthetic data

	overall := minOverall + rng.IntN(overallSpan)
	age := minAge + rng.IntN(ageSpan)
	height := meanHeightCM + rng.NormFloat64()*heightStdDev
	weight := (bmi + rng.NormFloat64()*bmiStdDev) * (height / cmPerMeter) * (height / cmPerMeter)
	value := valueBase * float64(overall*overall) * (1 + rng.Float64())

	pos := []string{positions[rng.IntN(len(positions))]}
	if rng.IntN(3) == 0 {
		pos = append(pos, positions[rng.IntN(len(positions))])
	}

	r := player.Record{
		ID:          uuid.NewSHA1(idNamespace, []byte(strconv.FormatUint(seed, 10)+":"+strconv.Itoa(i))).String(),
		Name:        first[rng.IntN(len(first))] + " " + last[rng.IntN(len(last))],
		Nationality: nations[rng.IntN(len(nations))],
		Club:        clubs[rng.IntN(len(clubs))],
		Positions:   pos,
		Age:         age,
		HeightCM:    roundTenth(height),
		WeightKG:    roundTenth(weight),
		Overall:     overall,
		Potential:   min(maxRating, overall+rng.IntN(maxGrowth+1)),
		MarketValue: float64(int64(value)),
		Wage:        float64(int64(value * wageRatio)),
	}
	if i%missingEvery == missingEvery-1 {
		r.Club = ""
		r.MarkUnknown(player.Wage)
	}
	return r
}

func roundTenth(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}
