package sanitize_test

import (
	"fmt"
	"math"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/stringball/scores/internal/domain/sanitize"
)

func TestGame(t *testing.T) {
	Convey("Given collection keys", t, func() {
		Convey("When the key is a well-formed slug", func() {
			g, err := sanitize.Game("thermal-drift")

			Convey("Then it should be accepted as-is", func() {
				So(err, ShouldBeNil)
				So(g, ShouldEqual, "thermal-drift")
			})
		})

		Convey("When the key carries case and padding", func() {
			g, err := sanitize.Game("  Frost-Signal  ")

			Convey("Then it should be lowered and trimmed", func() {
				So(err, ShouldBeNil)
				So(g, ShouldEqual, "frost-signal")
			})
		})

		Convey("When the key contains spaces or punctuation", func() {
			_, err := sanitize.Game("My Game!")

			Convey("Then it should be rejected", func() {
				So(err, ShouldEqual, sanitize.ErrInvalidGame)
			})
		})

		Convey("When the key is empty", func() {
			_, err := sanitize.Game("")
			So(err, ShouldEqual, sanitize.ErrInvalidGame)
		})

		Convey("When the key exceeds 40 characters", func() {
			_, err := sanitize.Game(strings.Repeat("a", 41))
			So(err, ShouldEqual, sanitize.ErrInvalidGame)
		})

		Convey("When the key is exactly 40 characters", func() {
			g, err := sanitize.Game(strings.Repeat("a", 40))
			So(err, ShouldBeNil)
			So(len(g), ShouldEqual, 40)
		})
	})
}

func TestName(t *testing.T) {
	Convey("Given display names", t, func() {
		Convey("When the name is plain", func() {
			n, err := sanitize.Name("alice")
			So(err, ShouldBeNil)
			So(n, ShouldEqual, "alice")
		})

		Convey("When the name has internal newlines and tabs", func() {
			n, err := sanitize.Name("al\tice\r\nsmith")

			Convey("Then control characters collapse to spaces", func() {
				So(err, ShouldBeNil)
				So(n, ShouldEqual, "al ice  smith")
			})
		})

		Convey("When the name exceeds 32 characters", func() {
			n, err := sanitize.Name(strings.Repeat("x", 50))
			So(err, ShouldBeNil)
			So(len(n), ShouldEqual, sanitize.MaxNameLength)
		})

		Convey("When the name is whitespace only", func() {
			_, err := sanitize.Name("   ")
			So(err, ShouldEqual, sanitize.ErrInvalidName)
		})

		Convey("When the name contains a URL", func() {
			for _, raw := range []string{
				"visit http://evil.example",
				"see https://evil.example",
				"www.evil.example",
			} {
				_, err := sanitize.Name(raw)
				So(err, ShouldEqual, sanitize.ErrInvalidName)
			}
		})

		Convey("When the name contains an @", func() {
			_, err := sanitize.Name("alice@example.com")
			So(err, ShouldEqual, sanitize.ErrInvalidName)
		})

		Convey("When the name is profane", func() {
			_, err := sanitize.Name("shithead")
			So(err, ShouldEqual, sanitize.ErrInvalidName)
		})

		Convey("When the name hides profanity behind leetspeak", func() {
			_, err := sanitize.Name("5h1t")
			So(err, ShouldEqual, sanitize.ErrInvalidName)
		})

		Convey("When the name starts with a formula token", func() {
			n, err := sanitize.Name("=SUM(A1)")

			Convey("Then it passes through unescaped; the codec owns escaping", func() {
				So(err, ShouldBeNil)
				So(n, ShouldEqual, "=SUM(A1)")
			})
		})
	})
}

func TestScore(t *testing.T) {
	Convey("Given raw scores", t, func() {
		Convey("When the score is a plain integer", func() {
			s, err := sanitize.Score(120)
			So(err, ShouldBeNil)
			So(s, ShouldEqual, 120)
		})

		Convey("When the score is fractional", func() {
			s, err := sanitize.Score(12.9)

			Convey("Then it should be floored", func() {
				So(err, ShouldBeNil)
				So(s, ShouldEqual, 12)
			})
		})

		Convey("When the score is negative", func() {
			s, err := sanitize.Score(-5)

			Convey("Then it should clamp to zero", func() {
				So(err, ShouldBeNil)
				So(s, ShouldEqual, 0)
			})
		})

		Convey("When the score is finite but huge", func() {
			for _, raw := range []float64{1e300, math.MaxFloat64, sanitize.MaxScore + 1} {
				s, err := sanitize.Score(raw)

				Convey(fmt.Sprintf("Then %g clamps to the ceiling, never negative", raw), func() {
					So(err, ShouldBeNil)
					So(s, ShouldEqual, sanitize.MaxScore)
				})
			}
		})

		Convey("When the score is exactly the ceiling", func() {
			s, err := sanitize.Score(sanitize.MaxScore)
			So(err, ShouldBeNil)
			So(s, ShouldEqual, sanitize.MaxScore)
		})

		Convey("When the score is not finite", func() {
			for _, raw := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
				_, err := sanitize.Score(raw)
				So(err, ShouldEqual, sanitize.ErrInvalidScore)
			}
		})
	})
}
