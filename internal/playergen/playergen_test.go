package playergen_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"path/filepath"
	"testing"

	"github.com/okian/pitchstats/internal/adapters/dataset"
	"github.com/okian/pitchstats/internal/domain/player"
	"github.com/okian/pitchstats/internal/domain/similarity"
	"github.com/okian/pitchstats/internal/playergen"
	"github.com/okian/pitchstats/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()

	Convey("Given a fixed seed", t, func() {
		Convey("When generating with different worker counts", func() {
			a, err := playergen.Generate(ctx, 500, 7, 1)
			So(err, ShouldBeNil)
			b, err := playergen.Generate(ctx, 500, 7, 8)
			So(err, ShouldBeNil)

			Convey("Then the records are identical", func() {
				So(a, ShouldResemble, b)
			})

			Convey("Then ratings stay in range and IDs are unique", func() {
				ids := make(map[string]struct{}, len(a))
				for _, r := range a {
					So(r.Overall, ShouldBeBetweenOrEqual, 45, 99)
					So(r.Potential, ShouldBeGreaterThanOrEqualTo, r.Overall)
					So(r.Age, ShouldBeBetweenOrEqual, 16, 39)
					ids[r.ID] = struct{}{}
				}
				So(ids, ShouldHaveLength, 500)
			})
		})

		Convey("When the count is zero or negative", func() {
			recs, err := playergen.Generate(ctx, 0, 1, 4)
			So(err, ShouldBeNil)
			So(recs, ShouldBeEmpty)

			_, err = playergen.Generate(ctx, -1, 1, 4)
			So(err, ShouldNotBeNil)
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := playergen.Generate(cctx, 100, 1, 2)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestWriteCSV(t *testing.T) {
	Convey("Given generated records written as CSV", t, func() {
		ctx := context.Background()
		recs, err := playergen.Generate(ctx, 200, 3, 2)
		So(err, ShouldBeNil)

		var buf bytes.Buffer
		So(playergen.WriteCSV(&buf, recs), ShouldBeNil)

		Convey("Then the header matches the loader layout", func() {
			rows, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
			So(err, ShouldBeNil)
			So(rows[0], ShouldResemble, playergen.Header)
			So(rows, ShouldHaveLength, 201)
		})

		Convey("Then the dataset loader reads back the same values", func() {
			tbl, err := dataset.LoadCSV(ctx, &buf)
			So(err, ShouldBeNil)
			So(tbl.Len(), ShouldEqual, 200)
			got := tbl.At(96)
			So(got.ID, ShouldEqual, recs[96].ID)
			So(got.Known(player.Wage), ShouldBeFalse)
			So(got.ClubOrUnknown(), ShouldEqual, player.UnknownCategory)
			So(tbl.At(10).Overall, ShouldEqual, recs[10].Overall)
			So(tbl.At(10).HeightCM, ShouldEqual, recs[10].HeightCM)
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a run with verification enabled", t, func() {
		out := filepath.Join(t.TempDir(), "nested", "players.csv")
		stats, err := playergen.Run(context.Background(), &playergen.Config{
			Players:    300,
			Seed:       11,
			Workers:    3,
			OutputFile: out,
			Verify:     true,
		})

		Convey("Then the file is written and verified", func() {
			So(err, ShouldBeNil)
			So(stats.PlayersGenerated, ShouldEqual, 300)
			So(stats.RowsVerified, ShouldEqual, 300)
			So(stats.BytesWritten, ShouldBeGreaterThan, 0)
			So(stats.Sampled, ShouldEqual, 0)
		})
	})

	Convey("Given a verbose run", t, func() {
		out := filepath.Join(t.TempDir(), "players.csv")
		stats, err := playergen.Run(context.Background(), &playergen.Config{
			Players:    3,
			Seed:       2,
			Workers:    1,
			OutputFile: out,
			Verbose:    true,
		})

		Convey("Then a sample capped at the player count is logged", func() {
			So(err, ShouldBeNil)
			So(stats.Sampled, ShouldEqual, 3)
			So(stats.RowsVerified, ShouldEqual, 0)
		})
	})
}

func BenchmarkFindSimilar(b *testing.B) {
	recs, err := playergen.Generate(context.Background(), 20000, 1, 4)
	if err != nil {
		b.Fatal(err)
	}
	tbl := player.NewTable(recs)
	ix, err := similarity.NewIndex(tbl)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ix.Nearest(i%tbl.Len(), 10); err != nil {
			b.Fatal(err)
		}
	}
}
