package config_test

import (
	"testing"
	"time"

	"github.com/aindrila22/calendar/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.DataDir, convey.ShouldEqual, "data")
			convey.So(cfg.SessionTTL, convey.ShouldEqual, 30*time.Minute)
			convey.So(cfg.SnapshotEnabled, convey.ShouldBeFalse)
			convey.So(cfg.SnapshotOutput, convey.ShouldEqual, "calendar.png")
			convey.So(cfg.SnapshotWidth, convey.ShouldEqual, 1200)
			convey.So(cfg.SnapshotHeight, convey.ShouldEqual, 825)
			convey.So(cfg.SnapshotTimeout, convey.ShouldEqual, 30*time.Second)
		})
	})
}

func TestConfig_ResolveBaseURL(t *testing.T) {
	convey.Convey("Given base URL resolution", t, func() {
		convey.Convey("When base_url is set explicitly", func() {
			cfg := config.New()
			cfg.BaseURL = "https://cal.example.com/"

			convey.Convey("Then it wins and loses its trailing slash", func() {
				convey.So(cfg.ResolveBaseURL(), convey.ShouldEqual, "https://cal.example.com")
			})
		})

		convey.Convey("When only a bare port listen address is set", func() {
			cfg := config.New()
			cfg.Addr = ":9090"

			convey.Convey("Then localhost is assumed", func() {
				convey.So(cfg.ResolveBaseURL(), convey.ShouldEqual, "http://localhost:9090")
			})
		})

		convey.Convey("When the listen address carries a host", func() {
			cfg := config.New()
			cfg.Addr = "0.0.0.0:8080"

			convey.Convey("Then the host is kept", func() {
				convey.So(cfg.ResolveBaseURL(), convey.ShouldEqual, "http://0.0.0.0:8080")
			})
		})
	})
}
