package analytics_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/okian/beacon/internal/domain/analytics"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDisabledTrackers(t *testing.T) {
	Convey("Given trackers built without a write key", t, func() {
		sink := &recordingSink{}
		trackers, err := analytics.New(context.Background(), "", true,
			analytics.WithSinkFactory(factoryFor(sink)))
		So(err, ShouldBeNil)
		ctx := context.Background()

		Convey("Then every method returns false and nothing is forwarded", func() {
			So(trackers.Enabled(), ShouldBeFalse)
			n, a := trackers.Node, trackers.API
			results := []bool{
				n.TrackPinDB(ctx, "did:1", true),
				n.TrackPinDBAddress(ctx, "addr"),
				n.TrackSyncDB(ctx, "addr"),
				n.TrackInfraMetrics(ctx),
				n.TrackSpaceUpdate(ctx, "addr", "space", "did:1"),
				n.TrackSpaceUpdateByApp(ctx, "addr", "space"),
				n.TrackPublicUpdate(ctx, "addr", "did:1"),
				n.TrackPrivateUpdate(ctx, "addr", "did:1"),
				n.TrackRootUpdate(ctx, "did:1"),
				n.TrackThreadUpdate(ctx, "addr", "space", "name"),
				a.TrackListSpaces(ctx, "addr", 200, "https://a.com"),
				a.TrackGetConfig(ctx, "addr", 200, "https://a.com"),
				a.TrackGetThread(ctx, "addr", 200, "https://a.com"),
				a.TrackGetSpace(ctx, "addr", "space", true, 200, "https://a.com"),
				a.TrackGetProfile(ctx, "addr", true, 200, "https://a.com"),
				a.TrackGetProfiles(ctx, 200, "https://a.com"),
			}
			for _, ok := range results {
				So(ok, ShouldBeFalse)
			}
			So(sink.Events(), ShouldBeEmpty)
			So(trackers.Close(), ShouldBeNil)
			So(sink.closed, ShouldBeFalse)
		})
	})

	Convey("Given trackers built with a write key but inactive", t, func() {
		calls := 0
		trackers, err := analytics.New(context.Background(), "wk", false,
			analytics.WithSinkFactory(func(context.Context, string) (analytics.Sink, error) {
				calls++
				return &recordingSink{}, nil
			}))

		Convey("Then the client is never constructed", func() {
			So(err, ShouldBeNil)
			So(calls, ShouldEqual, 0)
			So(trackers.Enabled(), ShouldBeFalse)
			So(trackers.Node.TrackRootUpdate(context.Background(), "did"), ShouldBeFalse)
		})
	})

	Convey("Given NewDisabled", t, func() {
		trackers := analytics.NewDisabled()

		Convey("Then it behaves as a no-op", func() {
			So(trackers.Enabled(), ShouldBeFalse)
			So(trackers.API.TrackGetProfiles(context.Background(), 200, "https://a.com"), ShouldBeFalse)
		})
	})
}

func TestSinkErrors(t *testing.T) {
	Convey("Given a sink that rejects events", t, func() {
		trackers, sink := newRecording()
		sink.err = errSinkDown

		Convey("When tracking", func() {
			ok := trackers.Node.TrackSyncDB(context.Background(), "addr")

			Convey("Then the error is swallowed and false is returned", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When a space update is tracked", func() {
			ok := trackers.Node.TrackSpaceUpdate(context.Background(), "addr", "space", "did")

			Convey("Then the result is false", func() {
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestEmitterTimestamps(t *testing.T) {
	Convey("Given trackers using the real clock", t, func() {
		sink := &recordingSink{}
		trackers, err := analytics.New(context.Background(), "wk", true,
			analytics.WithSinkFactory(factoryFor(sink)))
		So(err, ShouldBeNil)

		Convey("When an event is tracked", func() {
			before := time.Now().UnixMilli()
			trackers.Node.TrackPinDB(context.Background(), "did:123", false)
			after := time.Now().UnixMilli()

			Convey("Then properties.time is not older than the call", func() {
				ts := sink.Events()[0].Time()
				So(ts, ShouldBeGreaterThanOrEqualTo, before)
				So(ts, ShouldBeLessThanOrEqualTo, after)
			})
		})

		Convey("When the same surface is used from many goroutines", func() {
			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					trackers.Node.TrackSyncDB(context.Background(), "addr")
				}()
			}
			wg.Wait()

			Convey("Then each call produces its own payload", func() {
				events := sink.Events()
				So(events, ShouldHaveLength, 20)
				for _, e := range events {
					So(e.Properties, ShouldHaveLength, 2)
				}
			})
		})
	})
}
