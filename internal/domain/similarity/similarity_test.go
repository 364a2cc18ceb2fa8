package similarity_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/pitchstats/internal/domain/player"
	"github.com/okian/pitchstats/internal/domain/similarity"
	. "github.com/smartystreets/goconvey/convey"
)

func p(name string, overall, age int) player.Record {
	return player.Record{
		ID:          "id-" + name,
		Name:        name,
		Overall:     overall,
		Potential:   overall,
		Age:         age,
		HeightCM:    180,
		WeightKG:    75,
		MarketValue: 1e6,
		Wage:        1e4,
	}
}

func TestFindSimilar(t *testing.T) {
	Convey("Given players D(80), E(82) and F(60) compared on overall", t, func() {
		tbl := player.NewTable([]player.Record{p("D", 80, 20), p("E", 82, 20), p("F", 60, 20)})

		Convey("When asking for the single nearest player to D", func() {
			res, err := similarity.FindSimilar(tbl, "D", 1, player.Overall)
			So(err, ShouldBeNil)

			Convey("Then E is returned and D is excluded", func() {
				So(res.Anchor.Name, ShouldEqual, "D")
				So(res.Matches, ShouldHaveLength, 1)
				So(res.Matches[0].Name, ShouldEqual, "E")
				So(res.Matches[0].Distance, ShouldBeLessThan, 0.5)
				So(res.Matches[0].Values[player.Overall], ShouldEqual, 82.0)
			})
		})

		Convey("When k exceeds the number of other players", func() {
			res, err := similarity.FindSimilar(tbl, "D", 10, player.Overall)
			So(err, ShouldBeNil)

			Convey("Then it is clamped and distances are non-decreasing", func() {
				So(res.Matches, ShouldHaveLength, 2)
				So(res.Matches[0].Name, ShouldEqual, "E")
				So(res.Matches[1].Name, ShouldEqual, "F")
				So(res.Matches[1].Distance, ShouldBeGreaterThanOrEqualTo, res.Matches[0].Distance)
				// z-scores use the population standard deviation.
				std := math.Sqrt((36.0 + 64.0 + 196.0) / 3.0)
				So(res.Matches[0].Distance, ShouldAlmostEqual, 2/std, 1e-9)
				So(res.Matches[1].Distance, ShouldAlmostEqual, 20/std, 1e-9)
			})
		})

		Convey("When a zero-variance attribute is added", func() {
			withAge, err := similarity.FindSimilar(tbl, "D", 2, player.Overall, player.Age)
			So(err, ShouldBeNil)
			only, err := similarity.FindSimilar(tbl, "D", 2, player.Overall)
			So(err, ShouldBeNil)

			Convey("Then it contributes nothing to distance", func() {
				So(withAge.Matches[0].Distance, ShouldEqual, only.Matches[0].Distance)
				So(withAge.Matches[1].Distance, ShouldEqual, only.Matches[1].Distance)
			})
		})

		Convey("When looking up by ID", func() {
			res, err := similarity.FindSimilarByID(tbl, "id-F", 1, player.Overall)
			So(err, ShouldBeNil)
			So(res.Anchor.Name, ShouldEqual, "F")
			So(res.Matches[0].Name, ShouldEqual, "D")
		})

		Convey("When the name differs only in case", func() {
			_, err := similarity.FindSimilar(tbl, "d", 1)

			Convey("Then the player is not found", func() {
				So(errors.Is(err, player.ErrPlayerNotFound), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, `"d"`)
			})
		})

		Convey("When k is not positive", func() {
			_, err := similarity.FindSimilar(tbl, "D", 0)

			Convey("Then the query is rejected", func() {
				So(errors.Is(err, player.ErrInvalidArgument), ShouldBeTrue)
				var ia *player.InvalidArgumentError
				So(errors.As(err, &ia), ShouldBeTrue)
				So(ia.Param, ShouldEqual, "k")
				So(ia.Query, ShouldEqual, "similar")
			})
		})

		Convey("When an attribute is unknown or repeated", func() {
			_, err := similarity.FindSimilar(tbl, "D", 1, player.Attribute(42))
			So(errors.Is(err, player.ErrInvalidArgument), ShouldBeTrue)
			_, err = similarity.FindSimilar(tbl, "D", 1, player.Age, player.Age)
			So(errors.Is(err, player.ErrInvalidArgument), ShouldBeTrue)
		})
	})

	Convey("Given two players sharing a name", t, func() {
		tbl := player.NewTable([]player.Record{p("Silva", 80, 25), p("Kane", 85, 25), p("Silva", 70, 25)})

		Convey("Then the first occurrence is the anchor and the other is a candidate", func() {
			res, err := similarity.FindSimilar(tbl, "Silva", 2, player.Overall)
			So(err, ShouldBeNil)
			So(res.Anchor.Index, ShouldEqual, 0)
			for _, m := range res.Matches {
				So(m.Index, ShouldNotEqual, 0)
			}
			So(res.Matches[0].Name, ShouldEqual, "Kane")
			So(res.Matches[1].Index, ShouldEqual, 2)
		})
	})

	Convey("Given candidates at equal distance", t, func() {
		tbl := player.NewTable([]player.Record{p("M", 80, 25), p("Zed", 90, 25), p("Amy", 70, 25)})

		Convey("Then ties break by name", func() {
			res, err := similarity.FindSimilar(tbl, "M", 2, player.Overall)
			So(err, ShouldBeNil)
			So(res.Matches[0].Distance, ShouldEqual, res.Matches[1].Distance)
			So(res.Matches[0].Name, ShouldEqual, "Amy")
			So(res.Matches[1].Name, ShouldEqual, "Zed")
		})
	})

	Convey("Given equal raw gaps around an anchor away from the column mean", t, func() {
		Convey("Then distances are identical and ties break by name for every layout", func() {
			for q := 50; q < 95; q++ {
				for _, far := range []int{0, 1, 7, 30, 99} {
					tbl := player.NewTable([]player.Record{
						p("Q", q, 25), p("Zed", q-1, 25), p("Abe", q+1, 25), p("Far", far, 25),
					})
					res, err := similarity.FindSimilar(tbl, "Q", 2, player.Overall)
					So(err, ShouldBeNil)
					So(res.Matches[0].Name, ShouldEqual, "Abe")
					So(res.Matches[1].Name, ShouldEqual, "Zed")
					So(res.Matches[0].Distance, ShouldEqual, res.Matches[1].Distance)
				}
			}
		})

		Convey("Then a tie at the cut-off keeps the alphabetically first player", func() {
			tbl := player.NewTable([]player.Record{
				p("Q", 50, 25), p("Zed", 49, 25), p("Abe", 51, 25), p("Far", 1, 25),
			})
			res, err := similarity.FindSimilar(tbl, "Q", 1, player.Overall)
			So(err, ShouldBeNil)
			So(res.Matches, ShouldHaveLength, 1)
			So(res.Matches[0].Name, ShouldEqual, "Abe")
		})

		Convey("Then mirrored gaps across two attributes also tie", func() {
			tbl := player.NewTable([]player.Record{
				p("Q", 60, 25), p("Zed", 58, 26), p("Abe", 62, 24), p("Far", 20, 39),
			})
			res, err := similarity.FindSimilar(tbl, "Q", 2, player.Overall, player.Age)
			So(err, ShouldBeNil)
			So(res.Matches[0].Name, ShouldEqual, "Abe")
			So(res.Matches[1].Name, ShouldEqual, "Zed")
		})
	})

	Convey("Given a player with an unknown attribute", t, func() {
		missing := p("U", 0, 25)
		missing.MarkUnknown(player.Overall)
		tbl := player.NewTable([]player.Record{p("A", 70, 25), p("B", 90, 25), missing})

		Convey("Then the unknown value sits at the column mean", func() {
			res, err := similarity.FindSimilar(tbl, "A", 2, player.Overall)
			So(err, ShouldBeNil)
			So(res.Matches[0].Name, ShouldEqual, "U")
			So(res.Matches[0].Distance, ShouldAlmostEqual, 1.0, 1e-9)
			_, known := res.Matches[0].Values[player.Overall]
			So(known, ShouldBeFalse)
		})
	})

	Convey("Given a table with a single player", t, func() {
		tbl := player.NewTable([]player.Record{p("Solo", 75, 30)})

		Convey("Then the result is empty, not an error", func() {
			res, err := similarity.FindSimilar(tbl, "Solo", 5)
			So(err, ShouldBeNil)
			So(res.Matches, ShouldBeEmpty)
			So(res.Attributes, ShouldResemble, player.DefaultAttributes)
		})
	})

	Convey("Given an empty table", t, func() {
		_, err := similarity.FindSimilar(player.NewTable(nil), "X", 1)
		So(errors.Is(err, player.ErrPlayerNotFound), ShouldBeTrue)
	})
}

func TestIndex_Reuse(t *testing.T) {
	Convey("Given an index built once", t, func() {
		tbl := player.NewTable([]player.Record{p("A", 70, 20), p("B", 75, 24), p("C", 90, 33), p("D", 60, 19)})
		ix, err := similarity.NewIndex(tbl, player.Overall, player.Age)
		So(err, ShouldBeNil)

		Convey("Then repeated and concurrent queries agree", func() {
			first, err := ix.FindSimilar("A", 3)
			So(err, ShouldBeNil)

			done := make(chan similarity.Result, 8)
			for i := 0; i < cap(done); i++ {
				go func() {
					r, _ := ix.FindSimilar("A", 3)
					done <- r
				}()
			}
			for i := 0; i < cap(done); i++ {
				So(<-done, ShouldResemble, first)
			}
		})

		Convey("Then an out-of-range anchor is rejected", func() {
			_, err := ix.Nearest(10, 1)
			So(errors.Is(err, player.ErrInvalidArgument), ShouldBeTrue)
		})
	})
}
