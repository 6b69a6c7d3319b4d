package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/frontikai/stewardapp/internal/core"
)

type incomePayload struct {
	Amount string `json:"amount"`
	Date   string `json:"date"`
	Source string `json:"source"`
	Notes  string `json:"notes"`
}

type incomeJSON struct {
	ID        int64           `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date"`
	Source    string          `json:"source"`
	Notes     string          `json:"notes,omitempty"`
	Processed bool            `json:"processed"`
}

type pendingTitheResponse struct {
	UnprocessedTotal decimal.Decimal `json:"unprocessedTotal"`
	RatePercent      decimal.Decimal `json:"ratePercent"`
	PendingTithe     decimal.Decimal `json:"pendingTithe"`
}

func (s *Server) handleIncome(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateIncome(w, r)
	case http.MethodGet:
		s.handleListIncome(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	var payload incomePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := core.ParseAmount(payload.Amount)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	date, err := core.ParseDate(payload.Date)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	in := core.Income{
		Amount: amount,
		Date:   date,
		Source: payload.Source,
		Notes:  payload.Notes,
	}

	id, err := s.giving.RecordIncome(r.Context(), in)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.reportCache.Purge()

	slog.InfoContext(r.Context(), "Income created",
		"id", id, "amount", amount.StringFixed(2), "source", payload.Source)
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) handleListIncome(w http.ResponseWriter, r *http.Request) {
	period, ok, err := parsePeriodQuery(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if !ok {
		period = core.RangeMonth.PeriodFor(time.Now())
	}
	if err := period.Validate(); err != nil {
		writeDomainError(w, r, err)
		return
	}

	records, err := s.store.GetIncome(r.Context(), period)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	out := make([]incomeJSON, 0, len(records))
	for _, in := range records {
		out = append(out, incomeJSON{
			ID:        in.ID,
			Amount:    in.Amount,
			Date:      in.Date.ISO(),
			Source:    in.Source,
			Notes:     in.Notes,
			Processed: in.Processed,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleProcessIncome serves POST /api/income/{id}/process, marking an
// income record as tithed against.
func (s *Server) handleProcessIncome(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/income/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[1] != "process" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid income id")
		return
	}

	if err := s.giving.ProcessIncome(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.reportCache.Purge()
	writeJSON(w, http.StatusOK, map[string]bool{"processed": true})
}

// handlePendingTithe reports the tithe still owed on unprocessed income.
func (s *Server) handlePendingTithe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	ctx := r.Context()
	total, err := s.store.GetUnprocessedIncomeTotal(ctx)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	settings, err := s.store.Settings(ctx)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	pending, err := s.store.GetPendingTitheTotal(ctx)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, pendingTitheResponse{
		UnprocessedTotal: total,
		RatePercent:      settings.TithePercent,
		PendingTithe:     pending,
	})
}
