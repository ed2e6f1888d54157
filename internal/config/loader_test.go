package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/edruela/volleyball-simulator/internal/config"
	"github.com/edruela/volleyball-simulator/internal/domain/engine"
)

func TestDefaults(t *testing.T) {
	Convey("Given no file and no environment", t, func() {
		cfg, err := config.Load(context.Background())
		So(err, ShouldBeNil)

		Convey("Service knobs take their defaults", func() {
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.QueueSize, ShouldEqual, 10_000)
			So(cfg.WorkerCount, ShouldBeGreaterThan, 0)
			So(cfg.MaxRecentLimit, ShouldEqual, 100)
		})

		Convey("Gameplay tunables match the engine defaults", func() {
			So(cfg.Tuning(), ShouldResemble, engine.DefaultTuning())
		})
	})
}

func TestEnvOverrides(t *testing.T) {
	Convey("Given environment overrides", t, func() {
		t.Setenv("VOLLEYSIM_ADDR", ":7070")
		t.Setenv("VOLLEYSIM_TOUCH_CAP", "30")
		t.Setenv("VOLLEYSIM_HOME_ADVANTAGE", "1.10")
		t.Setenv("VOLLEYSIM_CAP_RULE", "serving_side")

		cfg, err := config.Load(context.Background())
		So(err, ShouldBeNil)

		Convey("They override the defaults", func() {
			So(cfg.Addr, ShouldEqual, ":7070")
			So(cfg.TouchCap, ShouldEqual, 30)
			So(cfg.HomeAdvantage, ShouldAlmostEqual, 1.10, 1e-9)
			So(cfg.Tuning().CapRule, ShouldEqual, engine.CapRuleServingSide)
		})
	})
}

func TestFileLayer(t *testing.T) {
	Convey("Given a YAML config file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		yaml := "addr: \":6060\"\nworker_count: 3\ntouch_cap: 25\n"
		So(os.WriteFile(path, []byte(yaml), 0o600), ShouldBeNil)
		t.Setenv("VOLLEYSIM_CONFIG", path)

		Convey("File values override the defaults", func() {
			cfg, err := config.Load(context.Background())
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":6060")
			So(cfg.WorkerCount, ShouldEqual, 3)
			So(cfg.TouchCap, ShouldEqual, 25)
		})

		Convey("Environment still wins over the file", func() {
			t.Setenv("VOLLEYSIM_ADDR", ":5050")
			cfg, err := config.Load(context.Background())
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":5050")
			So(cfg.WorkerCount, ShouldEqual, 3)
		})

		Convey("A missing file is an error", func() {
			t.Setenv("VOLLEYSIM_CONFIG", filepath.Join(dir, "nope.yaml"))
			_, err := config.Load(context.Background())
			So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
		})
	})
}

func TestValidation(t *testing.T) {
	Convey("Given invalid configuration values", t, func() {
		Convey("A non-positive queue size is rejected", func() {
			t.Setenv("VOLLEYSIM_QUEUE_SIZE", "0")
			_, err := config.Load(context.Background())
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("An empty addr is rejected", func() {
			t.Setenv("VOLLEYSIM_ADDR", "")
			_, err := config.Load(context.Background())
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("Gameplay tunables are validated too", func() {
			t.Setenv("VOLLEYSIM_TOUCH_CAP", "0")
			_, err := config.Load(context.Background())
			So(errors.Is(err, engine.ErrInvalidTuning), ShouldBeTrue)
		})
	})
}
