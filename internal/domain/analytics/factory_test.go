package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/beacon/internal/domain/analytics"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Given the trackers factory", t, func() {
		ctx := context.Background()

		Convey("When enabled with a working sink factory", func() {
			var gotKey string
			sink := &recordingSink{}
			trackers, err := analytics.New(ctx, "wk_live", true,
				analytics.WithSinkFactory(func(_ context.Context, key string) (analytics.Sink, error) {
					gotKey = key
					return sink, nil
				}))

			Convey("Then both surfaces share the same sink", func() {
				So(err, ShouldBeNil)
				So(gotKey, ShouldEqual, "wk_live")
				So(trackers.Enabled(), ShouldBeTrue)
				trackers.Node.TrackRootUpdate(ctx, "did")
				trackers.API.TrackGetProfiles(ctx, 200, "https://a.com")
				So(sink.Events(), ShouldHaveLength, 2)
			})

			Convey("Then Close closes the sink", func() {
				So(trackers.Close(), ShouldBeNil)
				So(sink.closed, ShouldBeTrue)
			})
		})

		Convey("When enabled without a sink factory", func() {
			_, err := analytics.New(ctx, "wk_live", true)

			Convey("Then construction fails since there is no default sink", func() {
				So(errors.Is(err, analytics.ErrClientInit), ShouldBeTrue)
				So(errors.Is(err, analytics.ErrNoSinkFactory), ShouldBeTrue)
			})
		})

		Convey("When the sink factory fails", func() {
			boom := errors.New("bad key")
			_, err := analytics.New(ctx, "wk_live", true,
				analytics.WithSinkFactory(func(context.Context, string) (analytics.Sink, error) {
					return nil, boom
				}))

			Convey("Then the failure is wrapped with ErrClientInit", func() {
				So(errors.Is(err, analytics.ErrClientInit), ShouldBeTrue)
				So(errors.Is(err, boom), ShouldBeTrue)
			})
		})
	})
}

func TestTaxonomy(t *testing.T) {
	Convey("Given the event taxonomy", t, func() {
		names := analytics.Taxonomy()

		Convey("Then it lists sixteen unique names", func() {
			seen := map[string]bool{}
			for _, n := range names {
				So(seen[n], ShouldBeFalse)
				seen[n] = true
			}
			So(names, ShouldHaveLength, 16)
		})
	})
}
