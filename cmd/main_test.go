package main

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/stringball/scores/internal/adapters/publisher"
	app "github.com/stringball/scores/internal/app"
	"github.com/stringball/scores/internal/config"
)

func TestBuildPublisher(t *testing.T) {
	Convey("Given replication configuration", t, func() {
		Convey("When replication is disabled", func() {
			cfg := config.New()
			pub, err := buildPublisher(cfg)

			Convey("Then the inert publisher is used", func() {
				So(err, ShouldBeNil)
				So(pub, ShouldHaveSameTypeAs, publisher.Noop{})
			})
		})

		Convey("When replication is enabled with full credentials", func() {
			cfg := config.New()
			cfg.SyncOnWin = true
			cfg.GitHubToken = "tok"
			cfg.GitHubOwner = "stringball"
			cfg.GitHubRepo = "scores-data"

			pub, err := buildPublisher(cfg)

			Convey("Then a GitHub publisher is built", func() {
				So(err, ShouldBeNil)
				So(pub, ShouldHaveSameTypeAs, &publisher.GitHub{})
			})
		})

		Convey("When replication is enabled without credentials", func() {
			cfg := config.New()
			cfg.SyncOnWin = true

			_, err := buildPublisher(cfg)

			Convey("Then construction fails", func() {
				So(errors.Is(err, publisher.ErrMissingConfig), ShouldBeTrue)
			})
		})
	})
}

func TestServiceMetricsUpdaterStops(t *testing.T) {
	Convey("Given the background gauge updater", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		svc := app.New()

		done := make(chan struct{})
		go func() {
			startServiceMetricsUpdater(ctx, svc)
			close(done)
		}()

		Convey("When the root context is canceled", func() {
			cancel()

			Convey("Then the updater returns", func() {
				select {
				case <-done:
				case <-time.After(2 * time.Second):
					t.Fatal("updater did not stop")
				}
			})
		})
	})
}
