package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/okian/pitchstats/internal/adapters/series"
	service "github.com/okian/pitchstats/internal/app"
	"github.com/okian/pitchstats/internal/domain/metric"
	"github.com/okian/pitchstats/internal/domain/player"
	"github.com/okian/pitchstats/pkg/logger"
	"github.com/okian/pitchstats/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithOutput(os.Stderr), logger.WithFormat("text")); err != nil {
		panic(err)
	}
}

func rec(name, nation, club, pos string, overall, potential, age int) player.Record {
	return player.Record{
		ID:          "id-" + name,
		Name:        name,
		Nationality: nation,
		Club:        club,
		Positions:   []string{pos},
		Overall:     overall,
		Potential:   potential,
		Age:         age,
		HeightCM:    175 + float64(overall%10),
		WeightKG:    70 + float64(age%10),
		MarketValue: float64(overall) * 1e5,
		Wage:        float64(overall) * 1e3,
	}
}

func fixture() *player.Table {
	return player.NewTable([]player.Record{
		rec("Ana", "Spain", "Alpha", "ST", 80, 85, 22),
		rec("Ben", "Spain", "Beta", "CB", 70, 72, 25),
		rec("Cai", "France", "Alpha", "GK", 60, 70, 19),
		rec("Dan", "Spain", "Beta", "ST", 90, 90, 30),
	})
}

func newService(opts ...service.Option) *service.Service {
	m := metrics.NewManager(metrics.WithPrometheusRegistry(prometheus.NewRegistry()))
	base := []service.Option{service.WithLogger(logger.Get()), service.WithMetrics(m)}
	return service.New(append(base, opts...)...)
}

func TestServiceLifecycle(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service with nothing published", t, func() {
		svc := newService()

		Convey("Then queries fail with ErrNotLoaded wrapped in a QueryError", func() {
			_, err := svc.BestPlayers(ctx, 3)
			So(errors.Is(err, service.ErrNotLoaded), ShouldBeTrue)
			var qe *service.QueryError
			So(errors.As(err, &qe), ShouldBeTrue)
			So(qe.Query, ShouldEqual, series.MetricBestPlayers)
			So(qe.QueryID, ShouldNotBeEmpty)
			So(svc.Ready(), ShouldBeFalse)
		})

		Convey("When a table is published", func() {
			So(svc.Publish(ctx, fixture()), ShouldBeNil)

			Convey("Then the service is ready and a second publish is rejected", func() {
				So(svc.Ready(), ShouldBeTrue)
				So(svc.Publish(ctx, fixture()), ShouldEqual, service.ErrAlreadyLoaded)
				So(svc.Load(ctx, "ignored.csv"), ShouldEqual, service.ErrAlreadyLoaded)
				tbl, err := svc.Table()
				So(err, ShouldBeNil)
				So(tbl.Len(), ShouldEqual, 4)
				So(svc.Stats()["rows"], ShouldEqual, 4)
			})
		})
	})

	Convey("Given a service with a custom loader", t, func() {
		var calls []string
		failing := true
		svc := newService(service.WithLoader(func(_ context.Context, source string) (*player.Table, error) {
			calls = append(calls, source)
			if failing {
				return nil, &player.DataLoadError{Source: source, Err: os.ErrNotExist}
			}
			return fixture(), nil
		}))

		Convey("When the loader fails first and succeeds on retry", func() {
			err := svc.Load(ctx, "warehouse://players")
			So(errors.Is(err, player.ErrDataLoad), ShouldBeTrue)
			So(svc.Ready(), ShouldBeFalse)

			failing = false
			So(svc.Load(ctx, "warehouse://players"), ShouldBeNil)

			Convey("Then the loader saw the source and its table is served", func() {
				So(calls, ShouldResemble, []string{"warehouse://players", "warehouse://players"})
				So(svc.Stats()["source"], ShouldEqual, "warehouse://players")
				f, err := svc.BestPlayers(ctx, 1)
				So(err, ShouldBeNil)
				So(f.Rows[0][1], ShouldEqual, "Dan")
			})
		})
	})

	Convey("Given a CSV file on disk", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "players.csv")
		csv := "name,nationality,club,age,height_cm,weight_kg,position,overall,potential,value,wage\n" +
			"Ana,Spain,Alpha,22,170,65,ST,80,85,€10M,€50K\n" +
			"Ben,Spain,Beta,25,185,80,CB,70,72,€2M,€10K\n"
		So(os.WriteFile(path, []byte(csv), 0o600), ShouldBeNil)

		Convey("When the service loads it", func() {
			svc := newService()
			So(svc.Load(ctx, path), ShouldBeNil)

			Convey("Then queries run against the loaded rows", func() {
				f, err := svc.NationParticipation(ctx, 0)
				So(err, ShouldBeNil)
				So(f.Records(), ShouldResemble, []map[string]any{{"category": "Spain", "count": 2}})
			})
		})

		Convey("When the file is missing a required column", func() {
			bad := filepath.Join(dir, "bad.csv")
			So(os.WriteFile(bad, []byte("name,age\nAna,22\n"), 0o600), ShouldBeNil)
			svc := newService()
			err := svc.Load(ctx, bad)

			Convey("Then a data load error is returned and the service may retry", func() {
				So(errors.Is(err, player.ErrDataLoad), ShouldBeTrue)
				So(svc.Ready(), ShouldBeFalse)
				So(svc.Load(ctx, path), ShouldBeNil)
			})
		})
	})
}

func TestServiceQueries(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service with the fixture published", t, func() {
		svc := newService()
		So(svc.Publish(ctx, fixture()), ShouldBeNil)

		Convey("Nation participation counts players per nation", func() {
			f, err := svc.NationParticipation(ctx, 0)
			So(err, ShouldBeNil)
			So(f.Metric, ShouldEqual, series.MetricNationParticipation)
			So(f.Len(), ShouldEqual, 2)
			So(f.Rows[0][0], ShouldEqual, "Spain")
			So(f.Rows[0][1], ShouldEqual, 3)
		})

		Convey("Club participation honours topN", func() {
			f, err := svc.ClubParticipation(ctx, 1)
			So(err, ShouldBeNil)
			So(f.Len(), ShouldEqual, 1)
		})

		Convey("Over-performers cover every member of every group", func() {
			f, err := svc.OverPerformers(ctx, metric.ByNation)
			So(err, ShouldBeNil)
			So(f.Len(), ShouldEqual, 4)
		})

		Convey("Top over-performers return one row per group", func() {
			f, err := svc.TopOverPerformers(ctx, metric.ByClub, 0)
			So(err, ShouldBeNil)
			So(f.Len(), ShouldEqual, 2)
			So(f.Meta["group_by"], ShouldEqual, "club")
		})

		Convey("Scatter plots include every player", func() {
			hw, err := svc.HeightWeight(ctx)
			So(err, ShouldBeNil)
			So(hw.Len(), ShouldEqual, 4)
			vw, err := svc.ValueWage(ctx)
			So(err, ShouldBeNil)
			So(vw.Len(), ShouldEqual, 4)
		})

		Convey("The position distribution is ordered by count", func() {
			f, err := svc.PositionDistribution(ctx)
			So(err, ShouldBeNil)
			So(f.Rows[0][0], ShouldEqual, "ST")
			So(f.Rows[0][1], ShouldEqual, 2)
		})

		Convey("The age histogram spans the observed range without gaps", func() {
			f, err := svc.AgeDistribution(ctx, 1)
			So(err, ShouldBeNil)
			So(f.Len(), ShouldEqual, 12)
		})

		Convey("Rankings order by the primary rating", func() {
			best, err := svc.BestPlayers(ctx, 2)
			So(err, ShouldBeNil)
			So(best.Len(), ShouldEqual, 2)
			pot, err := svc.HighestPotential(ctx, 1)
			So(err, ShouldBeNil)
			So(pot.Len(), ShouldEqual, 1)
		})

		Convey("The summary reports the source", func() {
			f, err := svc.Summary(ctx)
			So(err, ShouldBeNil)
			So(f.Meta["source"], ShouldEqual, "memory")
		})

		Convey("Similar players exclude the anchor", func() {
			f, err := svc.SimilarPlayers(ctx, "Ana", 2)
			So(err, ShouldBeNil)
			So(f.Len(), ShouldEqual, 2)
			for _, row := range f.Rows {
				So(row, ShouldNotContain, "Ana")
			}

			byID, err := svc.SimilarPlayersByID(ctx, "id-Ana", 1, "overall")
			So(err, ShouldBeNil)
			So(byID.Len(), ShouldEqual, 1)
		})

		Convey("Similarity errors keep their kind", func() {
			_, err := svc.SimilarPlayers(ctx, "Nobody", 2)
			So(errors.Is(err, player.ErrPlayerNotFound), ShouldBeTrue)

			_, err = svc.SimilarPlayers(ctx, "Ana", 0)
			So(errors.Is(err, player.ErrInvalidArgument), ShouldBeTrue)

			_, err = svc.SimilarPlayers(ctx, "Ana", 2, "shoe_size")
			So(errors.Is(err, player.ErrInvalidArgument), ShouldBeTrue)
		})

		Convey("Concurrent queries are safe", func() {
			var wg sync.WaitGroup
			errs := make(chan error, 32)
			for i := 0; i < 16; i++ {
				wg.Add(2)
				go func() {
					defer wg.Done()
					_, err := svc.SimilarPlayers(ctx, "Dan", 3)
					errs <- err
				}()
				go func() {
					defer wg.Done()
					_, err := svc.OverPerformers(ctx, metric.ByClub)
					errs <- err
				}()
			}
			wg.Wait()
			close(errs)
			for err := range errs {
				So(err, ShouldBeNil)
			}
		})
	})
}
