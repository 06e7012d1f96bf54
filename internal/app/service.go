// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/childcare/internal/domain/balance"
	"github.com/okian/childcare/internal/domain/eligibility"
	"github.com/okian/childcare/pkg/logger"
	"github.com/okian/childcare/pkg/metrics"
)

var discard = logger.Nop()

// Service evaluates childcare-hours balances against the current day.
// Every call is independent; the counters only feed /stats.
type Service struct {
	mu sync.RWMutex

	// Configuration
	policy   balance.Policy
	location *time.Location
	clock    func() time.Time

	// State
	started   bool
	startedAt time.Time

	calculations atomic.Int64
	eligible     atomic.Int64
	ineligible   atomic.Int64
	failures     atomic.Int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces the wall clock, e.g. with a fixed instant in tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLocation sets the time zone in which "today" is determined.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithPolicy sets the statutory figures. Non-positive values keep the defaults.
func WithPolicy(maxMonths, daysPerMonth int) Option {
	return func(s *Service) {
		if maxMonths > 0 {
			s.policy.MaxMonths = maxMonths
		}
		if daysPerMonth > 0 {
			s.policy.DaysPerMonth = daysPerMonth
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		policy:   balance.DefaultPolicy,
		location: time.UTC,
		clock:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start marks the service as serving. It is safe to call more than once.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.started = true
	s.startedAt = s.clock()
	s.logger.Info(ctx, "childcare-hours service started",
		logger.String("timezone", s.location.String()),
		logger.Int("maxMonths", s.policy.MaxMonths),
		logger.Int("daysPerMonth", s.policy.DaysPerMonth),
	)
	return nil
}

// Stop marks the service as stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.log().Info(context.Background(), "childcare-hours service stopped")
}

// Today returns the current civil date in the configured location.
func (s *Service) Today() time.Time {
	return eligibility.Civil(s.clock().In(s.location))
}

// Policy returns the statutory figures in use.
func (s *Service) Policy() balance.Policy {
	return s.policy
}

// Calculate returns the balance for in as of today.
func (s *Service) Calculate(ctx context.Context, in balance.Input) balance.Result {
	today := s.Today()
	res := balance.Calculate(s.policy, in, today)

	s.calculations.Add(1)
	if res.Eligible {
		s.eligible.Add(1)
		metrics.RecordCalculation(metrics.OutcomeEligible)
		metrics.ObserveUsedMonths(res.TotalUsedMonths)
		s.log().Debug(ctx, "balance calculated",
			logger.String("birthDate", eligibility.FormatDate(in.BirthDate)),
			logger.Float64("totalUsedMonths", res.TotalUsedMonths),
			logger.Float64("remainingMonths", res.RemainingMonths),
		)
		return res
	}

	s.ineligible.Add(1)
	metrics.RecordCalculation(metrics.OutcomeIneligible)
	s.log().Info(ctx, "child is past the eligibility window",
		logger.String("birthDate", eligibility.FormatDate(in.BirthDate)),
		logger.String("today", eligibility.FormatDate(today)),
	)
	return res
}

// Eligibility returns the eligibility window for birthDate as of today.
func (s *Service) Eligibility(ctx context.Context, birthDate time.Time) eligibility.Verdict {
	v := eligibility.Evaluate(birthDate, s.Today())
	metrics.RecordEligibilityCheck(v.Eligible)
	s.log().Debug(ctx, "eligibility evaluated",
		logger.String("birthDate", eligibility.FormatDate(birthDate)),
		logger.Bool("eligible", v.Eligible),
	)
	return v
}

// RecordFailure counts an input that could not be calculated.
func (s *Service) RecordFailure(ctx context.Context, kind string, err error) {
	s.calculations.Add(1)
	s.failures.Add(1)
	metrics.RecordCalculation(metrics.OutcomeError)
	s.log().Warn(ctx, "calculation failed", logger.String("kind", kind), logger.Error(err))
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":      s.started,
		"timezone":     s.location.String(),
		"maxMonths":    s.policy.MaxMonths,
		"daysPerMonth": s.policy.DaysPerMonth,
		"calculations": s.calculations.Load(),
		"eligible":     s.eligible.Load(),
		"ineligible":   s.ineligible.Load(),
		"errors":       s.failures.Load(),
	}
	if s.started {
		stats["startedAt"] = s.startedAt.UTC().Format(time.RFC3339)
	}
	return stats
}

// log returns the configured logger, falling back to a discarding one so
// the service works before Start and in one-shot CLI use.
func (s *Service) log() logger.Logger {
	if s.logger == nil {
		return discard
	}
	return s.logger
}
