// Package balance computes how many months of the childcare-hours benefit
// have been consumed and how many remain.
package balance

import (
	"errors"
	"math"
	"time"

	"github.com/okian/childcare/internal/domain/eligibility"
)

// Statutory defaults.
const (
	DefaultMaxMonths    = 36
	DefaultDaysPerMonth = 20
)

// IneligibleMessage is returned in place of a balance when the child is past
// both cutoffs.
const IneligibleMessage = "child exceeds the age 9 / 3rd grade threshold"

// Error kinds reported for unusable input.
var (
	ErrInvalidDate    = eligibility.ErrInvalidDate
	ErrMalformedUsage = errors.New("malformed usage data")
)

// Policy holds the statutory figures used by Calculate.
type Policy struct {
	MaxMonths    int
	DaysPerMonth int
}

// DefaultPolicy is the 36 month / 20 days-per-month rule.
var DefaultPolicy = Policy{MaxMonths: DefaultMaxMonths, DaysPerMonth: DefaultDaysPerMonth}

// Period is one continuous block of usage.
type Period struct {
	Months float64
}

// Input is a validated usage record for a single child.
type Input struct {
	BirthDate         time.Time
	ContinuousMonths  []Period
	NonContinuousDays int
}

// Result is the outcome of Calculate. Only Eligible and Message are
// meaningful when Eligible is false.
type Result struct {
	Eligible                   bool
	Message                    string
	TotalUsedMonths            float64
	RemainingMonths            float64
	MaxMonths                  int
	NonContinuousRemainingDays int
	LastUsableDate             time.Time
}

// Calculate evaluates in against today using p. It does not retain or
// mutate anything.
func Calculate(p Policy, in Input, today time.Time) Result {
	if !eligibility.IsEligible(in.BirthDate, today) {
		return Result{Eligible: false, Message: IneligibleMessage}
	}

	var used float64
	for _, period := range in.ContinuousMonths {
		used += period.Months
	}
	used += float64(in.NonContinuousDays / p.DaysPerMonth)

	return Result{
		Eligible:                   true,
		TotalUsedMonths:            used,
		RemainingMonths:            math.Max(0, float64(p.MaxMonths)-used),
		MaxMonths:                  p.MaxMonths,
		NonContinuousRemainingDays: in.NonContinuousDays % p.DaysPerMonth,
		LastUsableDate:             eligibility.LastUsableDate(in.BirthDate),
	}
}
