package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/beacon/internal/adapters/http/api"
	"github.com/okian/beacon/internal/config"
	"github.com/okian/beacon/pkg/logger"
)

func TestBuildTrackers(t *testing.T) {
	convey.Convey("Given loaded configuration", t, func() {
		ctx := context.Background()
		log := logger.Nop()

		convey.Convey("When no write key is configured", func() {
			cfg := config.New(ctx)
			trackers := buildTrackers(ctx, cfg, log)

			convey.Convey("Then tracking is disabled", func() {
				convey.So(trackers.Enabled(), convey.ShouldBeFalse)
				convey.So(trackers.Node.TrackPinDB(ctx, "did:1", true), convey.ShouldBeFalse)
				convey.So(trackers.Close(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When a write key is configured", func() {
			cfg := config.New(ctx)
			cfg.WriteKey = "wk_test"
			cfg.Endpoint = "http://127.0.0.1:1"
			trackers := buildTrackers(ctx, cfg, log)

			convey.Convey("Then a Segment client is built", func() {
				convey.So(trackers.Enabled(), convey.ShouldBeTrue)
				convey.So(trackers.Close(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When the write key is blank", func() {
			cfg := config.New(ctx)
			cfg.WriteKey = "   "
			trackers := buildTrackers(ctx, cfg, log)

			convey.Convey("Then no client is built, as TrackingEnabled reports", func() {
				convey.So(cfg.TrackingEnabled(), convey.ShouldBeFalse)
				convey.So(trackers.Enabled(), convey.ShouldEqual, cfg.TrackingEnabled())
			})
		})

		convey.Convey("When the write key has surrounding whitespace", func() {
			cfg := config.New(ctx)
			cfg.WriteKey = " wk_test\n"
			cfg.Endpoint = "http://127.0.0.1:1"
			trackers := buildTrackers(ctx, cfg, log)

			convey.Convey("Then a client is still built", func() {
				convey.So(trackers.Enabled(), convey.ShouldBeTrue)
				convey.So(trackers.Close(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When the client config is invalid", func() {
			cfg := config.New(ctx)
			cfg.WriteKey = "wk_test"
			cfg.BatchSize = -1
			trackers := buildTrackers(ctx, cfg, log)

			convey.Convey("Then tracking degrades to disabled", func() {
				convey.So(trackers.Enabled(), convey.ShouldBeFalse)
			})
		})
	})
}

func TestHTTPWiring(t *testing.T) {
	convey.Convey("Given the daemon HTTP server", t, func() {
		ctx := context.Background()
		_ = os.Unsetenv("BEACON_WRITE_KEY")
		cfg, err := config.Load(ctx)
		convey.So(err, convey.ShouldBeNil)

		trackers := buildTrackers(ctx, cfg, logger.Nop())
		mux := http.NewServeMux()
		api.NewServer(trackers).Register(ctx, mux)
		srv := newHTTPServer(cfg.Addr, mux)

		convey.Convey("Then it carries timeouts and serves /healthz", func() {
			convey.So(srv.ReadHeaderTimeout, convey.ShouldEqual, readHeaderTimeout)
			convey.So(srv.Addr, convey.ShouldEqual, cfg.Addr)

			rec := httptest.NewRecorder()
			srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(rec.Body.String(), convey.ShouldContainSubstring, `"tracking_enabled":false`)
		})
	})
}
