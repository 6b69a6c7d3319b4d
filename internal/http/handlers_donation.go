package http

import (
	"encoding/csv"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/frontikai/stewardapp/internal/core"
	"github.com/frontikai/stewardapp/internal/report"
)

type donationPayload struct {
	RecipientID int64  `json:"recipientId"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Notes       string `json:"notes"`
}

type donationJSON struct {
	ID          int64             `json:"id"`
	RecipientID int64             `json:"recipientId,omitempty"`
	Amount      decimal.Decimal   `json:"amount"`
	Date        string            `json:"date"`
	Type        core.DonationType `json:"type"`
	Notes       string            `json:"notes,omitempty"`
}

type createdResponse struct {
	ID int64 `json:"id"`
}

func (s *Server) handleDonations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateDonation(w, r)
	case http.MethodGet:
		s.handleListDonations(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handleCreateDonation(w http.ResponseWriter, r *http.Request) {
	var payload donationPayload
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

	d := core.Donation{
		RecipientID: payload.RecipientID,
		Amount:      amount,
		Date:        date,
		Type:        core.DonationType(payload.Type),
		Notes:       payload.Notes,
	}

	id, err := s.giving.RecordDonation(r.Context(), d)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.reportCache.Purge()

	slog.InfoContext(r.Context(), "Donation created",
		"id", id, "amount", amount.StringFixed(2), "type", payload.Type)
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) handleListDonations(w http.ResponseWriter, r *http.Request) {
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

	donations, err := s.store.GetDonations(r.Context(), period)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	out := make([]donationJSON, 0, len(donations))
	for _, d := range donations {
		out = append(out, donationJSON{
			ID:          d.ID,
			RecipientID: d.RecipientID,
			Amount:      d.Amount,
			Date:        d.Date.ISO(),
			Type:        d.Type,
			Notes:       d.Notes,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleExportDonations streams the donations of a window as CSV, one row
// per donation with the recipient name resolved. Defaults to year-to-date.
func (s *Server) handleExportDonations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	period, ok, err := parsePeriodQuery(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if !ok {
		period = core.RangeYear.PeriodFor(time.Now())
	}
	if err := period.Validate(); err != nil {
		writeDomainError(w, r, err)
		return
	}

	ctx := r.Context()
	donations, err := s.store.GetDonations(ctx, period)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	recipients, err := s.store.GetRecipients(ctx)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	rows := report.ExportRows(donations, recipients)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="donations.csv"`)
	w.WriteHeader(http.StatusOK)

	cw := csv.NewWriter(w)
	if err := cw.Write(report.ExportHeader); err != nil {
		slog.ErrorContext(ctx, "Failed writing export header", "error", err)
		return
	}
	for _, row := range rows {
		if err := cw.Write(row.Columns()); err != nil {
			slog.ErrorContext(ctx, "Failed writing export row", "error", err, "id", row.ID)
			return
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		slog.ErrorContext(ctx, "Failed flushing export", "error", err)
	}
}
