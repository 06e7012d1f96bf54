package api

import (
	"net/http"

	"github.com/okian/childcare/internal/domain/eligibility"
)

// EligibilityHandler handles eligibility window lookups.
type EligibilityHandler struct {
	calc Calculator
}

// NewEligibilityHandler creates a new eligibility handler.
func NewEligibilityHandler(calc Calculator) *EligibilityHandler {
	return &EligibilityHandler{calc: calc}
}

type verdictResponse struct {
	Eligible       bool   `json:"eligible"`
	Today          string `json:"today"`
	LastUsableDate string `json:"lastUsableDate"`
	AgeCutoff      string `json:"ageCutoff"`
	GradeCutoff    string `json:"gradeCutoff"`
}

// HandleEligibility handles GET /eligibility?birthDate=YYYY-MM-DD requests.
func (h *EligibilityHandler) HandleEligibility(w http.ResponseWriter, r *http.Request) {
	const op = "api.eligibility"
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, NewKind(op, ErrMethodNotAllowed))
		return
	}

	birth, err := eligibility.ParseDate(r.URL.Query().Get("birthDate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, WrapKind(op, ErrBadRequest, err))
		return
	}

	v := h.calc.Eligibility(r.Context(), birth)
	writeJSON(w, http.StatusOK, verdictResponse{
		Eligible:       v.Eligible,
		Today:          eligibility.FormatDate(h.calc.Today()),
		LastUsableDate: eligibility.FormatDate(v.LastUsableDate),
		AgeCutoff:      eligibility.FormatDate(v.AgeCutoff),
		GradeCutoff:    eligibility.FormatDate(v.GradeCutoff),
	})
}
