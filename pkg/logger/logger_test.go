package logger_test

import (
	"context"
	"log/slog"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/stringball/scores/pkg/logger"
)

func TestGlobalLogger(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("Then Get returns a usable logger", func() {
			log := logger.Get()
			So(log, ShouldNotBeNil)

			ctx := context.Background()
			log.Debug(ctx, "debug message", logger.String("k", "v"))
			log.Info(ctx, "info message", logger.Int("count", 3))
			log.Warn(ctx, "warn message", logger.Bool("flag", true))
			log.Error(ctx, "error message", logger.Any("payload", []int{1, 2}))
		})

		Convey("Then Named returns a scoped logger", func() {
			log := logger.Named("store")
			So(log, ShouldNotBeNil)
			log.Info(context.Background(), "scoped message", logger.Float64("latency", 1.5))
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given the level parser", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("Then known names parse", func() {
			for _, lvl := range []string{"debug", "info", "warn", "warning", "error", "INFO", " Error ", ""} {
				So(logger.SetLevelString(lvl), ShouldBeNil)
			}
		})

		Convey("Then unknown names are rejected", func() {
			So(logger.SetLevelString("verbose"), ShouldNotBeNil)
		})

		Convey("Then SetLevel accepts slog levels directly", func() {
			logger.SetLevel(slog.LevelWarn)
			logger.SetLevel(slog.LevelInfo)
		})
	})
}

func TestFieldConstructors(t *testing.T) {
	Convey("Given the field constructors", t, func() {
		Convey("Then each carries its key and value", func() {
			So(logger.String("s", "x"), ShouldResemble, logger.Field{Key: "s", Value: "x"})
			So(logger.Int("i", 7), ShouldResemble, logger.Field{Key: "i", Value: 7})
			So(logger.Float64("f", 2.5), ShouldResemble, logger.Field{Key: "f", Value: 2.5})
			So(logger.Bool("b", true), ShouldResemble, logger.Field{Key: "b", Value: true})

			err := context.Canceled
			So(logger.Error(err), ShouldResemble, logger.Field{Key: "error", Value: err})
		})
	})
}
