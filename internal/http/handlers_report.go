package http

import (
	"net/http"
	"time"

	"github.com/frontikai/stewardapp/internal/core"
	"github.com/frontikai/stewardapp/internal/report"
)

// handleReport serves GET /api/report?range=month|quarter|year with
// optional start/end overrides (ISO dates) for an explicit window.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	kind := core.RangeMonth
	if v := r.URL.Query().Get("range"); v != "" {
		parsed, err := core.ParseRangeKind(v)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		kind = parsed
	}

	now := time.Now()
	period := kind.PeriodFor(now)
	var explicit *core.Period
	if p, ok, err := parsePeriodQuery(r); err != nil {
		writeDomainError(w, r, err)
		return
	} else if ok {
		if err := p.Validate(); err != nil {
			writeDomainError(w, r, err)
			return
		}
		explicit = &p
		period = p
	}

	cacheKey := string(kind) + "|" + period.Start.ISO() + "|" + period.End.ISO()
	if vm, ok := s.reportCache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, vm)
		return
	}

	ctx := r.Context()
	donations, err := s.store.GetDonations(ctx, period)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	income, err := s.store.GetUnprocessedIncome(ctx)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	recipients, err := s.store.GetRecipients(ctx)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	settings, err := s.store.Settings(ctx)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	goals, err := s.store.Goals(ctx)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	yearToDate, err := s.store.GetDonationTotal(ctx, core.RangeYear.PeriodFor(now))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	vm, err := report.BuildReport(report.BuildInput{
		Range:           kind,
		Now:             now,
		Period:          explicit,
		Donations:       donations,
		Income:          income,
		Recipients:      recipients,
		Goals:           goals,
		Settings:        settings,
		YearToDateTotal: yearToDate,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.reportCache.Set(cacheKey, vm)
	writeJSON(w, http.StatusOK, vm)
}

// parsePeriodQuery reads optional start/end query params. Both must be
// present to form a window; ok is false when neither is given.
func parsePeriodQuery(r *http.Request) (core.Period, bool, error) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")
	if startStr == "" && endStr == "" {
		return core.Period{}, false, nil
	}

	start, err := core.ParseDate(startStr)
	if err != nil {
		return core.Period{}, false, err
	}
	end, err := core.ParseDate(endStr)
	if err != nil {
		return core.Period{}, false, err
	}
	return core.Period{Start: start, End: end}, true, nil
}
