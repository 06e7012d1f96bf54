package balance_test

import (
	"testing"
	"time"

	"github.com/okian/childcare/internal/domain/balance"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCalculate(t *testing.T) {
	today := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	birth := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

	Convey("Given an eligible child", t, func() {
		Convey("When usage mixes continuous blocks and loose days", func() {
			in := balance.Input{
				BirthDate:         birth,
				ContinuousMonths:  []balance.Period{{Months: 6}, {Months: 6}},
				NonContinuousDays: 25,
			}
			res := balance.Calculate(balance.DefaultPolicy, in, today)

			Convey("Then days convert at 20 per month and the remainder is kept", func() {
				So(res.Eligible, ShouldBeTrue)
				So(res.TotalUsedMonths, ShouldEqual, 13.0)
				So(res.RemainingMonths, ShouldEqual, 23.0)
				So(res.MaxMonths, ShouldEqual, 36)
				So(res.NonContinuousRemainingDays, ShouldEqual, 5)
				So(res.Message, ShouldBeEmpty)
				So(res.LastUsableDate, ShouldEqual, time.Date(2028, time.December, 31, 0, 0, 0, 0, time.UTC))
			})
		})

		Convey("When only loose days were used", func() {
			res := balance.Calculate(balance.DefaultPolicy, balance.Input{BirthDate: birth, NonContinuousDays: 45}, today)

			Convey("Then 45 days count as 2 months with 5 days left over", func() {
				So(res.TotalUsedMonths, ShouldEqual, 2.0)
				So(res.RemainingMonths, ShouldEqual, 34.0)
				So(res.NonContinuousRemainingDays, ShouldEqual, 5)
			})
		})

		Convey("When nothing was used", func() {
			res := balance.Calculate(balance.DefaultPolicy, balance.Input{BirthDate: birth}, today)

			Convey("Then the full balance remains", func() {
				So(res.TotalUsedMonths, ShouldEqual, 0.0)
				So(res.RemainingMonths, ShouldEqual, 36.0)
				So(res.NonContinuousRemainingDays, ShouldEqual, 0)
			})
		})

		Convey("When usage exceeds the maximum", func() {
			in := balance.Input{
				BirthDate:        birth,
				ContinuousMonths: []balance.Period{{Months: 30}, {Months: 10}},
			}
			res := balance.Calculate(balance.DefaultPolicy, in, today)

			Convey("Then the remaining balance is clamped to zero", func() {
				So(res.TotalUsedMonths, ShouldEqual, 40.0)
				So(res.RemainingMonths, ShouldEqual, 0.0)
			})
		})

		Convey("When a block is fractional", func() {
			in := balance.Input{
				BirthDate:         birth,
				ContinuousMonths:  []balance.Period{{Months: 1.5}, {Months: 2.25}},
				NonContinuousDays: 19,
			}
			res := balance.Calculate(balance.DefaultPolicy, in, today)

			Convey("Then the sum is not rounded", func() {
				So(res.TotalUsedMonths, ShouldEqual, 3.75)
				So(res.RemainingMonths, ShouldEqual, 32.25)
				So(res.NonContinuousRemainingDays, ShouldEqual, 19)
			})
		})

		Convey("When a custom policy applies", func() {
			p := balance.Policy{MaxMonths: 12, DaysPerMonth: 10}
			res := balance.Calculate(p, balance.Input{BirthDate: birth, NonContinuousDays: 25}, today)

			Convey("Then its figures are used", func() {
				So(res.TotalUsedMonths, ShouldEqual, 2.0)
				So(res.RemainingMonths, ShouldEqual, 10.0)
				So(res.MaxMonths, ShouldEqual, 12)
				So(res.NonContinuousRemainingDays, ShouldEqual, 5)
			})
		})
	})

	Convey("Given a child past every cutoff", t, func() {
		in := balance.Input{
			BirthDate:         time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
			ContinuousMonths:  []balance.Period{{Months: 6}},
			NonContinuousDays: 25,
		}
		res := balance.Calculate(balance.DefaultPolicy, in, today)

		Convey("Then only the negative verdict is returned", func() {
			So(res.Eligible, ShouldBeFalse)
			So(res.Message, ShouldEqual, balance.IneligibleMessage)
			So(res.TotalUsedMonths, ShouldEqual, 0.0)
			So(res.MaxMonths, ShouldEqual, 0)
			So(res.LastUsableDate.IsZero(), ShouldBeTrue)
		})
	})

	Convey("Given the same input twice", t, func() {
		in := balance.Input{
			BirthDate:         birth,
			ContinuousMonths:  []balance.Period{{Months: 3}},
			NonContinuousDays: 41,
		}

		Convey("Then both results are identical and the input is untouched", func() {
			first := balance.Calculate(balance.DefaultPolicy, in, today)
			second := balance.Calculate(balance.DefaultPolicy, in, today)
			So(second, ShouldResemble, first)
			So(in.ContinuousMonths, ShouldResemble, []balance.Period{{Months: 3}})
			So(in.NonContinuousDays, ShouldEqual, 41)
		})
	})
}
