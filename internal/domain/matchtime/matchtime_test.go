package matchtime_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/hyperreal/internal/domain/matchtime"
	"github.com/smartystreets/goconvey/convey"
)

func TestFormat(t *testing.T) {
	convey.Convey("Given frames at one frame per second", t, func() {
		convey.So(matchtime.Format(0, 1), convey.ShouldEqual, "0:00")
		convey.So(matchtime.Format(59, 1), convey.ShouldEqual, "0:59")
		convey.So(matchtime.Format(60, 1), convey.ShouldEqual, "1:00")
		convey.So(matchtime.Format(180, 1), convey.ShouldEqual, "3:00")
		convey.So(matchtime.Format(5999, 1), convey.ShouldEqual, "99:59")
	})

	convey.Convey("Given a higher frame rate", t, func() {
		convey.So(matchtime.Format(25, 25), convey.ShouldEqual, "0:01")
		convey.So(matchtime.Format(24, 25), convey.ShouldEqual, "0:00")
		convey.So(matchtime.Format(1500, 25), convey.ShouldEqual, "1:00")
	})

	convey.Convey("Given a non-positive frame rate", t, func() {
		convey.So(matchtime.Format(61, 0), convey.ShouldEqual, "1:01")
	})
}

func TestRoundTrip(t *testing.T) {
	convey.Convey("Given every frame of a long match at several rates", t, func() {
		for _, fps := range []int{1, 2, 10, 25, 60} {
			for frame := 0; frame < 6000; frame += 7 {
				m, s, err := matchtime.Parse(matchtime.Format(frame, fps))
				convey.So(err, convey.ShouldBeNil)
				convey.So(m*60+s, convey.ShouldEqual, frame/fps)
			}
		}
	})

	convey.Convey("Given the last frames a match may reach", t, func() {
		for _, fps := range []int{1, 4} {
			last := matchtime.MaxSeconds*fps - 1
			convey.So(matchtime.Fits(last, fps), convey.ShouldBeTrue)
			convey.So(matchtime.Format(last, fps), convey.ShouldEqual, "999:59")
			m, s, err := matchtime.Parse(matchtime.Format(last, fps))
			convey.So(err, convey.ShouldBeNil)
			convey.So(m*60+s, convey.ShouldEqual, last/fps)

			convey.So(matchtime.Fits(last+1, fps), convey.ShouldBeFalse)
			convey.So(matchtime.Format(last+1, fps), convey.ShouldEqual, "1000:00")
		}
	})
}

func TestParse(t *testing.T) {
	convey.Convey("Given malformed clocks", t, func() {
		for _, in := range []string{"", "1", "1:5", "1:60", "a:00", ":00", "1000:00", "1:-1"} {
			_, _, err := matchtime.Parse(in)
			convey.So(errors.Is(err, matchtime.ErrInvalidClock), convey.ShouldBeTrue)
		}
	})
}

func TestTimestamp(t *testing.T) {
	convey.Convey("Given a kickoff instant", t, func() {
		start := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

		convey.Convey("Then frames advance by 1000/fps milliseconds", func() {
			convey.So(matchtime.Timestamp(start, 3, 1), convey.ShouldEqual, start.Add(3*time.Second))
			convey.So(matchtime.Timestamp(start, 1, 4), convey.ShouldEqual, start.Add(250*time.Millisecond))
		})

		convey.Convey("Then timestamps render in UTC with milliseconds", func() {
			ts := matchtime.Timestamp(start, 1, 4)
			convey.So(matchtime.FormatTimestamp(ts), convey.ShouldEqual, "2026-10-19T12:00:00.250Z")

			local := ts.In(time.FixedZone("JST", 9*3600))
			convey.So(matchtime.FormatTimestamp(local), convey.ShouldEqual, "2026-10-19T12:00:00.250Z")
		})
	})
}
