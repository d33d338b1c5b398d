package config_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/aindrila22/calendar/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			// Clear any existing environment variables
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DataDir, convey.ShouldEqual, "data")
				convey.So(cfg.SessionTTL, convey.ShouldEqual, 30*time.Minute)
				convey.So(cfg.SnapshotEnabled, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("CALENDAR_ADDR", ":9090")
			_ = os.Setenv("CALENDAR_DATA_DIR", "/tmp/calendar-data")
			_ = os.Setenv("CALENDAR_LOG_LEVEL", "debug")
			_ = os.Setenv("CALENDAR_SESSION_TTL", "15m")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DataDir, convey.ShouldEqual, "/tmp/calendar-data")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.SessionTTL, convey.ShouldEqual, 15*time.Minute)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":7070"
data_dir: "/var/lib/calendar"
log_level: "warn"
snapshot_enabled: true
snapshot_cron: "*/30 * * * *"
snapshot_output: "/tmp/cal.png"
snapshot_width: 800
snapshot_height: 480
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("CALENDAR_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.DataDir, convey.ShouldEqual, "/var/lib/calendar")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "warn")
				convey.So(cfg.SnapshotEnabled, convey.ShouldBeTrue)
				convey.So(cfg.SnapshotCron, convey.ShouldEqual, "*/30 * * * *")
				convey.So(cfg.SnapshotWidth, convey.ShouldEqual, 800)
				convey.So(cfg.SnapshotHeight, convey.ShouldEqual, 480)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":7070"
data_dir: "/var/lib/calendar"
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("CALENDAR_CONFIG", tmpFile)
			_ = os.Setenv("CALENDAR_ADDR", ":9090") // This should override the file
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")                // Overridden by env
				convey.So(cfg.DataDir, convey.ShouldEqual, "/var/lib/calendar") // From file
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			invalidYaml := `invalid: yaml: content: [`
			tmpFile := createTempConfigFile(invalidYaml)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("CALENDAR_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("CALENDAR_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("CALENDAR_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with partial YAML file", func() {
			yamlContent := `
log_level: "debug"
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("CALENDAR_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should merge with defaults for missing fields", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug") // From file
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")    // From defaults
				convey.So(cfg.DataDir, convey.ShouldEqual, "data")  // From defaults
			})
		})
	})
}

func TestConfigLoaderEdgeCases(t *testing.T) {
	convey.Convey("Given config loader edge cases", t, func() {
		ctx := context.Background()

		convey.Convey("When snapshots are enabled with a broken viewport", func() {
			_ = os.Setenv("CALENDAR_SNAPSHOT_ENABLED", "true")
			_ = os.Setenv("CALENDAR_SNAPSHOT_WIDTH", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then validation should reject it", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When snapshots are disabled with a broken viewport", func() {
			_ = os.Setenv("CALENDAR_SNAPSHOT_WIDTH", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then the viewport is not validated", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When loading config with a zero session TTL", func() {
			_ = os.Setenv("CALENDAR_SESSION_TTL", "0s")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then validation should reject it", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with YAML file containing comments", func() {
			yamlContent := `
# This is a comment
addr: ":7070"  # Inline comment
# Another comment
data_dir: "store"
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("CALENDAR_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should parse YAML with comments", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.DataDir, convey.ShouldEqual, "store")
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"CALENDAR_CONFIG",
		"CALENDAR_ADDR",
		"CALENDAR_BASE_URL",
		"CALENDAR_DATA_DIR",
		"CALENDAR_LOG_LEVEL",
		"CALENDAR_SESSION_TTL",
		"CALENDAR_SNAPSHOT_ENABLED",
		"CALENDAR_SNAPSHOT_CRON",
		"CALENDAR_SNAPSHOT_OUTPUT",
		"CALENDAR_SNAPSHOT_WIDTH",
		"CALENDAR_SNAPSHOT_HEIGHT",
		"CALENDAR_SNAPSHOT_TIMEOUT",
		"CALENDAR_SNAPSHOT_QUEUE_SIZE",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "calendar-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
