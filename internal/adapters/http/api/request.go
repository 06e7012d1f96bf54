package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	json "github.com/goccy/go-json"

	"github.com/okian/childcare/internal/domain/balance"
	"github.com/okian/childcare/internal/domain/eligibility"
)

// calculateRequest mirrors the OpenAPI schema for POST /calculate. Fields
// are kept raw so each one can be checked and reported on its own.
type calculateRequest struct {
	BirthDate         json.RawMessage `json:"birthDate"`
	ContinuousMonths  json.RawMessage `json:"continuousMonths"`
	NonContinuousDays json.RawMessage `json:"nonContinuousDays"`
}

type periodRequest struct {
	Months *float64 `json:"months"`
}

// decodeCalculateRequest reads and validates a calculation payload.
func decodeCalculateRequest(r io.Reader) (balance.Input, error) {
	var req calculateRequest
	dec := json.NewDecoder(r)
	if err := dec.Decode(&req); err != nil {
		return balance.Input{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	var trailing json.RawMessage
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		return balance.Input{}, fmt.Errorf("%w: unexpected data after the request object", ErrBadRequest)
	}
	return req.toInput()
}

func (req calculateRequest) toInput() (balance.Input, error) {
	birth, err := req.birthDate()
	if err != nil {
		return balance.Input{}, err
	}
	periods, err := req.periods()
	if err != nil {
		return balance.Input{}, err
	}
	days, err := req.days()
	if err != nil {
		return balance.Input{}, err
	}
	return balance.Input{
		BirthDate:         birth,
		ContinuousMonths:  periods,
		NonContinuousDays: days,
	}, nil
}

func (req calculateRequest) birthDate() (t time.Time, err error) {
	if isAbsent(req.BirthDate) {
		return t, fmt.Errorf("%w: missing birthDate", balance.ErrInvalidDate)
	}
	var s string
	if err := json.Unmarshal(req.BirthDate, &s); err != nil {
		return t, fmt.Errorf("%w: birthDate must be a string", balance.ErrInvalidDate)
	}
	return eligibility.ParseDate(s)
}

func (req calculateRequest) periods() ([]balance.Period, error) {
	raw := bytes.TrimSpace(req.ContinuousMonths)
	if isAbsent(raw) {
		return nil, nil
	}
	if raw[0] != '[' {
		return nil, fmt.Errorf("%w: continuousMonths must be an array", balance.ErrMalformedUsage)
	}
	var items []periodRequest
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: continuousMonths: %v", balance.ErrMalformedUsage, err)
	}
	periods := make([]balance.Period, 0, len(items))
	var total float64
	for i, it := range items {
		switch {
		case it.Months == nil:
			return nil, fmt.Errorf("%w: continuousMonths[%d].months is required", balance.ErrMalformedUsage, i)
		case *it.Months < 0 || math.IsInf(*it.Months, 0) || math.IsNaN(*it.Months):
			return nil, fmt.Errorf("%w: continuousMonths[%d].months must be a non-negative number", balance.ErrMalformedUsage, i)
		}
		total += *it.Months
		if math.IsInf(total, 0) {
			return nil, fmt.Errorf("%w: continuousMonths total is out of range", balance.ErrMalformedUsage)
		}
		periods = append(periods, balance.Period{Months: *it.Months})
	}
	return periods, nil
}

func (req calculateRequest) days() (int, error) {
	if isAbsent(req.NonContinuousDays) {
		return 0, nil
	}
	var f float64
	if err := json.Unmarshal(req.NonContinuousDays, &f); err != nil {
		return 0, fmt.Errorf("%w: nonContinuousDays must be a number", balance.ErrMalformedUsage)
	}
	if f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, fmt.Errorf("%w: nonContinuousDays must be a non-negative integer", balance.ErrMalformedUsage)
	}
	return int(f), nil
}

// isAbsent treats a missing field and an explicit null the same way.
func isAbsent(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
