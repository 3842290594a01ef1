package api

import (
	"strconv"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestIPLimiterTable(t *testing.T) {
	Convey("Given a limiter with a fake clock", t, func() {
		now := time.Unix(1_700_000_000, 0)
		l := newIPLimiter(2, time.Minute)
		l.now = func() time.Time { return now }

		Convey("Idle clients are swept after a window", func() {
			for i := 0; i < 50; i++ {
				l.allow("10.0.0." + strconv.Itoa(i))
			}
			So(l.size(), ShouldEqual, 50)

			now = now.Add(time.Minute)
			So(l.allow("10.0.1.1"), ShouldBeTrue)
			So(l.size(), ShouldEqual, 1)
		})

		Convey("A swept client starts with a full bucket", func() {
			So(l.allow("10.0.0.1"), ShouldBeTrue)
			So(l.allow("10.0.0.1"), ShouldBeFalse)

			now = now.Add(time.Minute)
			So(l.allow("10.0.0.1"), ShouldBeTrue)
		})

		Convey("The table never grows past its cap", func() {
			l.maxSize = 3
			for i := 0; i < 10; i++ {
				now = now.Add(time.Millisecond)
				l.allow("10.0.0." + strconv.Itoa(i))
			}
			So(l.size(), ShouldEqual, 3)

			Convey("and the most recent clients are the ones kept", func() {
				now = now.Add(time.Millisecond)
				So(l.allow("10.0.0.9"), ShouldBeFalse)
			})
		})
	})
}
