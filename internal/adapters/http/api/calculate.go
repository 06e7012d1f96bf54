package api

import (
	"net/http"

	"github.com/okian/childcare/internal/domain/balance"
	"github.com/okian/childcare/internal/domain/eligibility"
)

// maxBodyBytes bounds a calculation payload.
const maxBodyBytes = 1 << 20

// CalculateHandler handles balance calculation requests.
type CalculateHandler struct {
	calc Calculator
}

// NewCalculateHandler creates a new calculate handler.
func NewCalculateHandler(calc Calculator) *CalculateHandler {
	return &CalculateHandler{calc: calc}
}

// eligibleResponse is the body of a successful calculation.
type eligibleResponse struct {
	Eligible                   bool    `json:"eligible"`
	TotalUsedMonths            float64 `json:"totalUsedMonths"`
	RemainingMonths            float64 `json:"remainingMonths"`
	MaxMonths                  int     `json:"maxMonths"`
	NonContinuousRemainingDays int     `json:"nonContinuousRemainingDays"`
	LastUsableDate             string  `json:"lastUsableDate"`
}

// ineligibleResponse carries no arithmetic fields.
type ineligibleResponse struct {
	Eligible bool   `json:"eligible"`
	Message  string `json:"message"`
}

// NewBalanceResponse renders res in the wire shape of POST /calculate.
func NewBalanceResponse(res balance.Result) any {
	if !res.Eligible {
		return ineligibleResponse{Eligible: false, Message: res.Message}
	}
	return eligibleResponse{
		Eligible:                   true,
		TotalUsedMonths:            res.TotalUsedMonths,
		RemainingMonths:            res.RemainingMonths,
		MaxMonths:                  res.MaxMonths,
		NonContinuousRemainingDays: res.NonContinuousRemainingDays,
		LastUsableDate:             eligibility.FormatDate(res.LastUsableDate),
	}
}

// HandleCalculate handles POST /calculate requests.
func (h *CalculateHandler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "api.calculate"
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, NewKind(op, ErrMethodNotAllowed))
		return
	}

	in, err := decodeCalculateRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		err = WrapKind(op, ErrCalculation, err)
		h.calc.RecordFailure(r.Context(), errorCode(err), err)
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, NewBalanceResponse(h.calc.Calculate(r.Context(), in)))
}
