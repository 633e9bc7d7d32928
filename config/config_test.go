package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tricycle-api/config"

	. "github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"TRICYCLE_CONFIG",
	"TRICYCLE_ENV",
	"TRICYCLE_PORT",
	"TRICYCLE_LOG_LEVEL",
	"TRICYCLE_LOG_FORMAT",
	"TRICYCLE_DATABASE_URL",
	"TRICYCLE_DB_HOST",
	"TRICYCLE_DB_PORT",
	"TRICYCLE_DB_USER",
	"TRICYCLE_DB_PASSWORD",
	"TRICYCLE_DB_NAME",
	"TRICYCLE_HEALTH_CHECK_INTERVAL",
}

func clearConfigEnvVars() {
	for _, key := range configEnvVars {
		_ = os.Unsetenv(key)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestConfigLoad(t *testing.T) {
	Convey("Given the config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		Reset(clearConfigEnvVars)

		Convey("When nothing is configured", func() {
			cfg, err := config.Load(ctx)

			Convey("Then the defaults are used", func() {
				So(err, ShouldBeNil)
				So(cfg.Port, ShouldEqual, "8080")
				So(cfg.LogLevel, ShouldEqual, "info")
				So(cfg.LogFormat, ShouldEqual, "json")
				So(cfg.DBPort, ShouldEqual, 3306)
				So(cfg.HealthCheckInterval, ShouldEqual, 30*time.Second)
			})
		})

		Convey("When env vars are set", func() {
			_ = os.Setenv("TRICYCLE_PORT", "9090")
			_ = os.Setenv("TRICYCLE_DB_HOST", "db.internal")
			_ = os.Setenv("TRICYCLE_DB_PORT", "3307")
			_ = os.Setenv("TRICYCLE_HEALTH_CHECK_INTERVAL", "45s")

			cfg, err := config.Load(ctx)

			Convey("Then they override the defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Port, ShouldEqual, "9090")
				So(cfg.DBHost, ShouldEqual, "db.internal")
				So(cfg.DBPort, ShouldEqual, 3307)
				So(cfg.HealthCheckInterval, ShouldEqual, 45*time.Second)
			})
		})

		Convey("When a YAML file and env vars are both set", func() {
			path := writeConfigFile(t, "port: \"7070\"\nlog_level: debug\ndb_name: fleet\n")
			_ = os.Setenv("TRICYCLE_CONFIG", path)
			_ = os.Setenv("TRICYCLE_PORT", "6060")

			cfg, err := config.Load(ctx)

			Convey("Then env wins over the file and the file wins over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Port, ShouldEqual, "6060")
				So(cfg.LogLevel, ShouldEqual, "debug")
				So(cfg.DBName, ShouldEqual, "fleet")
			})
		})

		Convey("When the config file does not exist", func() {
			_ = os.Setenv("TRICYCLE_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

			_, err := config.Load(ctx)

			Convey("Then a load error is returned", func() {
				So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
			})
		})

		Convey("When the log level is not recognised", func() {
			_ = os.Setenv("TRICYCLE_LOG_LEVEL", "verbose")

			_, err := config.Load(ctx)

			Convey("Then validation fails", func() {
				So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			})
		})
	})
}

func TestConfigDSN(t *testing.T) {
	Convey("Given a config", t, func() {
		cfg := config.New()
		cfg.DBUser = "admin"
		cfg.DBPassword = "secret"
		cfg.DBHost = "db.internal"
		cfg.DBPort = 3307
		cfg.DBName = "tricycles"

		Convey("The DSN is built from the discrete fields", func() {
			dsn := cfg.DSN()
			So(dsn, ShouldStartWith, "admin:secret@tcp(db.internal:3307)/tricycles?")
			So(dsn, ShouldContainSubstring, "parseTime=true")
			So(dsn, ShouldContainSubstring, "charset=utf8mb4")
		})

		Convey("An explicit database URL wins", func() {
			cfg.DatabaseURL = "user:pw@tcp(other:3306)/db"
			So(cfg.DSN(), ShouldEqual, "user:pw@tcp(other:3306)/db")
		})

		Convey("The discrete fields are optional once a URL is set", func() {
			cfg.DatabaseURL = "user:pw@tcp(other:3306)/db"
			cfg.DBHost = ""
			cfg.DBUser = ""
			cfg.DBName = ""
			So(cfg.Validate(), ShouldBeNil)
		})

		Convey("The discrete fields are required without a URL", func() {
			cfg.DBHost = ""
			So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), ShouldBeTrue)
		})
	})
}
