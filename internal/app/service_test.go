package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	service "github.com/okian/childcare/internal/app"
	"github.com/okian/childcare/internal/domain/balance"
	"github.com/okian/childcare/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should use the statutory policy", func() {
			So(svc, ShouldNotBeNil)
			So(svc.Policy(), ShouldResemble, balance.DefaultPolicy)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithPolicy(24, 10),
			service.WithLocation(time.FixedZone("KST", 9*60*60)),
			service.WithLogger(logger.Nop()),
		)

		Convey("Then the options should apply", func() {
			So(svc.Policy(), ShouldResemble, balance.Policy{MaxMonths: 24, DaysPerMonth: 10})
			So(svc.GetStats()["timezone"], ShouldEqual, "KST")
		})
	})

	Convey("Given a service with non-positive policy values", t, func() {
		svc := service.New(service.WithPolicy(0, -5))

		Convey("Then the defaults should be kept", func() {
			So(svc.Policy(), ShouldResemble, balance.DefaultPolicy)
		})
	})
}

func TestService_StartStop(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New(service.WithClock(fixedClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))))
		defer svc.Stop()

		Convey("When starting the service", func() {
			err := svc.Start(context.Background())

			Convey("Then it should be marked as started", func() {
				So(err, ShouldBeNil)
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["startedAt"], ShouldEqual, "2025-06-01T09:00:00Z")
			})

			Convey("And starting again should be a no-op", func() {
				So(svc.Start(context.Background()), ShouldBeNil)
			})
		})

		Convey("When stopping the service", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
			svc.Stop()

			Convey("Then it should be marked as stopped", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, false)
				_, ok := stats["startedAt"]
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestService_Today(t *testing.T) {
	Convey("Given a clock at 2023-12-31 20:00 UTC", t, func() {
		instant := time.Date(2023, time.December, 31, 20, 0, 0, 0, time.UTC)

		Convey("When the service runs in UTC", func() {
			svc := service.New(service.WithClock(fixedClock(instant)))
			So(svc.Today(), ShouldEqual, time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC))
		})

		Convey("When the service runs nine hours ahead", func() {
			svc := service.New(
				service.WithClock(fixedClock(instant)),
				service.WithLocation(time.FixedZone("KST", 9*60*60)),
			)
			So(svc.Today(), ShouldEqual, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
		})
	})
}

func TestService_Calculate(t *testing.T) {
	Convey("Given a service with a fixed clock", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithClock(fixedClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))))

		Convey("When calculating for an eligible child", func() {
			res := svc.Calculate(ctx, balance.Input{
				BirthDate:         time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
				ContinuousMonths:  []balance.Period{{Months: 6}, {Months: 6}},
				NonContinuousDays: 25,
			})

			Convey("Then the balance should be computed", func() {
				So(res.Eligible, ShouldBeTrue)
				So(res.TotalUsedMonths, ShouldEqual, 13.0)
				So(res.RemainingMonths, ShouldEqual, 23.0)
				So(res.NonContinuousRemainingDays, ShouldEqual, 5)
			})

			Convey("And the counters should move", func() {
				stats := svc.GetStats()
				So(stats["calculations"], ShouldEqual, int64(1))
				So(stats["eligible"], ShouldEqual, int64(1))
				So(stats["ineligible"], ShouldEqual, int64(0))
			})
		})

		Convey("When calculating for a child past the window", func() {
			res := svc.Calculate(ctx, balance.Input{BirthDate: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)})

			Convey("Then the verdict should be negative", func() {
				So(res.Eligible, ShouldBeFalse)
				So(res.Message, ShouldEqual, balance.IneligibleMessage)
				So(svc.GetStats()["ineligible"], ShouldEqual, int64(1))
			})
		})

		Convey("When a failure is recorded", func() {
			svc.RecordFailure(ctx, "invalid_date", errors.New("bad"))

			Convey("Then it should be counted as an error", func() {
				stats := svc.GetStats()
				So(stats["errors"], ShouldEqual, int64(1))
				So(stats["calculations"], ShouldEqual, int64(1))
			})
		})
	})
}

func TestService_Eligibility(t *testing.T) {
	Convey("Given a service clock on the last usable day", t, func() {
		svc := service.New(service.WithClock(fixedClock(time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC))))

		Convey("Then a child born 2015-01-01 is still eligible", func() {
			v := svc.Eligibility(context.Background(), time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC))
			So(v.Eligible, ShouldBeTrue)
			So(v.LastUsableDate, ShouldEqual, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC))
		})
	})
}
