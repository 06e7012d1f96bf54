package main

import (
	"fmt"
	"io"
	"math"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/okian/childcare/internal/adapters/http/api"
	app "github.com/okian/childcare/internal/app"
	"github.com/okian/childcare/internal/config"
	"github.com/okian/childcare/internal/domain/balance"
	"github.com/okian/childcare/internal/domain/eligibility"
	"github.com/okian/childcare/pkg/logger"
)

type calcOptions struct {
	birthDate string
	months    []float64
	days      int
	today     string
	json      bool
}

func newCalcCmd() *cobra.Command {
	var opts calcOptions
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate the remaining balance for one child",
		Long: `Calculate the remaining childcare-hours balance without starting a server.

Examples:
  childcare calc --birth-date 2020-01-01 --months 6,6 --days 25
  childcare calc --birth-date 2016-06-15 --today 2025-06-01 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCalc(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.birthDate, "birth-date", "", "birth date as YYYY-MM-DD")
	cmd.Flags().Float64SliceVar(&opts.months, "months", nil, "continuous periods used, in months (repeatable or comma separated)")
	cmd.Flags().IntVar(&opts.days, "days", 0, "non-continuous days used")
	cmd.Flags().StringVar(&opts.today, "today", "", "evaluate as of this date instead of the current day")
	cmd.Flags().BoolVar(&opts.json, "json", false, "output the result as JSON")
	_ = cmd.MarkFlagRequired("birth-date")
	return cmd
}

func runCalc(cmd *cobra.Command, opts calcOptions) error {
	in, err := opts.input()
	if err != nil {
		return err
	}

	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var extra []app.Option
	if opts.today != "" {
		today, err := eligibility.ParseDate(opts.today)
		if err != nil {
			return fmt.Errorf("--today: %w", err)
		}
		extra = append(extra, app.WithClock(func() time.Time { return today }), app.WithLocation(time.UTC))
	}

	svc, err := newService(cfg, logger.Nop(), extra...)
	if err != nil {
		return err
	}
	res := svc.Calculate(cmd.Context(), in)

	if opts.json {
		data, err := json.MarshalIndent(api.NewBalanceResponse(res), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	printResult(cmd.OutOrStdout(), res)
	return nil
}

func (o calcOptions) input() (balance.Input, error) {
	birth, err := eligibility.ParseDate(o.birthDate)
	if err != nil {
		return balance.Input{}, fmt.Errorf("--birth-date: %w", err)
	}
	if o.days < 0 {
		return balance.Input{}, fmt.Errorf("--days: %w: must not be negative", balance.ErrMalformedUsage)
	}
	periods := make([]balance.Period, 0, len(o.months))
	var total float64
	for _, m := range o.months {
		if m < 0 || math.IsNaN(m) || math.IsInf(m, 0) {
			return balance.Input{}, fmt.Errorf("--months: %w: %v is not a non-negative number", balance.ErrMalformedUsage, m)
		}
		if total += m; math.IsInf(total, 0) {
			return balance.Input{}, fmt.Errorf("--months: %w: total is out of range", balance.ErrMalformedUsage)
		}
		periods = append(periods, balance.Period{Months: m})
	}
	return balance.Input{BirthDate: birth, ContinuousMonths: periods, NonContinuousDays: o.days}, nil
}

func printResult(w io.Writer, res balance.Result) {
	if !res.Eligible {
		fmt.Fprintln(w, "Not eligible:", res.Message)
		return
	}
	fmt.Fprintf(w, "Used:            %g of %d months\n", res.TotalUsedMonths, res.MaxMonths)
	fmt.Fprintf(w, "Remaining:       %g months\n", res.RemainingMonths)
	fmt.Fprintf(w, "Leftover days:   %d\n", res.NonContinuousRemainingDays)
	fmt.Fprintf(w, "Usable until:    %s\n", eligibility.FormatDate(res.LastUsableDate))
}
