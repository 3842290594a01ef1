package dedupe_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/okian/stride/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given a new InMemoryDeduper", t, func() {
		ctx := context.Background()
		d := dedupe.NewInMemoryDeduper()

		Convey("Then it starts empty", func() {
			So(d.Size(), ShouldEqual, 0)
		})

		Convey("When a key is claimed for the first time", func() {
			id, seen := d.Claim(ctx, "key-1", "job-1")

			Convey("Then it is bound to the new job", func() {
				So(seen, ShouldBeFalse)
				So(id, ShouldEqual, "job-1")
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When a key is claimed twice", func() {
			d.Claim(ctx, "key-1", "job-1")
			id, seen := d.Claim(ctx, "key-1", "job-2")

			Convey("Then the first job wins", func() {
				So(seen, ShouldBeTrue)
				So(id, ShouldEqual, "job-1")
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When a key is released", func() {
			d.Claim(ctx, "key-1", "job-1")
			d.Release(ctx, "key-1")
			id, seen := d.Claim(ctx, "key-1", "job-2")

			Convey("Then a retry binds a new job", func() {
				So(seen, ShouldBeFalse)
				So(id, ShouldEqual, "job-2")
			})
		})

		Convey("When releasing an unknown key", func() {
			d.Release(ctx, "missing")

			Convey("Then nothing changes", func() {
				So(d.Size(), ShouldEqual, 0)
			})
		})
	})
}

func TestBoundedDeduper(t *testing.T) {
	Convey("Given a deduper holding two keys", t, func() {
		ctx := context.Background()
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(2))

		Convey("When a third key is claimed", func() {
			d.Claim(ctx, "a", "1")
			d.Claim(ctx, "b", "2")
			d.Claim(ctx, "c", "3")

			Convey("Then the oldest key is forgotten", func() {
				So(d.Size(), ShouldEqual, 2)
				_, seen := d.Claim(ctx, "a", "4")
				So(seen, ShouldBeFalse)
				_, seen = d.Claim(ctx, "c", "5")
				So(seen, ShouldBeTrue)
			})
		})

		Convey("When a released key is the oldest", func() {
			d.Claim(ctx, "a", "1")
			d.Claim(ctx, "b", "2")
			d.Release(ctx, "a")
			d.Claim(ctx, "c", "3")

			Convey("Then no live key is evicted", func() {
				So(d.Size(), ShouldEqual, 2)
				_, seen := d.Claim(ctx, "b", "x")
				So(seen, ShouldBeTrue)
			})
		})
	})

	Convey("Given an unbounded deduper", t, func() {
		d := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0))
		for i := 0; i < 10000; i++ {
			d.Claim(context.Background(), fmt.Sprintf("k-%d", i), "j")
		}

		Convey("Then every key is kept", func() {
			So(d.Size(), ShouldEqual, 10000)
		})
	})
}

func TestConcurrentClaims(t *testing.T) {
	Convey("Given many goroutines claiming the same key", t, func() {
		d := dedupe.NewInMemoryDeduper()
		var wins atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				if _, seen := d.Claim(context.Background(), "same", fmt.Sprintf("job-%d", i)); !seen {
					wins.Add(1)
				}
			}(i)
		}
		wg.Wait()

		Convey("Then exactly one claim wins", func() {
			So(wins.Load(), ShouldEqual, 1)
			So(d.Size(), ShouldEqual, 1)
		})
	})
}
