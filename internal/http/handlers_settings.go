package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/frontikai/stewardapp/internal/core"
)

type settingsJSON struct {
	Currency       string          `json:"currency"`
	TithePercent   decimal.Decimal `json:"tithePercentage"`
	IncomeTracking bool            `json:"incomeTrackingEnabled"`
	MonthlyGoal    decimal.Decimal `json:"monthlyGoal"`
	AnnualGoal     decimal.Decimal `json:"annualGoal"`
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleGetSettings(w, r)
	case http.MethodPut:
		s.handleUpdateSettings(w, r)
	default:
		methodNotAllowed(w, "GET, PUT")
	}
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
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

	writeJSON(w, http.StatusOK, settingsJSON{
		Currency:       settings.Currency,
		TithePercent:   settings.TithePercent,
		IncomeTracking: settings.IncomeTracking,
		MonthlyGoal:    goals.Monthly,
		AnnualGoal:     goals.Annual,
	})
}

// handleUpdateSettings takes a flat map of setting keys to string values
// and upserts each one. Unknown keys are rejected before anything is
// written; numeric keys must parse as non-negative decimals.
func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var payload map[string]string
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(payload) == 0 {
		writeError(w, http.StatusBadRequest, "no settings given")
		return
	}

	for key, value := range payload {
		if err := validateSetting(key, value); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}

	ctx := r.Context()
	for key, value := range payload {
		if err := s.store.UpdateSetting(ctx, key, strings.TrimSpace(value)); err != nil {
			writeDomainError(w, r, err)
			return
		}
	}

	s.reportCache.Purge()
	slog.InfoContext(ctx, "Settings updated", "keys", len(payload))
	s.handleGetSettings(w, r)
}

func validateSetting(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case core.SettingCurrency:
		if value == "" {
			return errInvalidSetting(key, "must not be empty")
		}
	case core.SettingTithePercent:
		d, err := decimal.NewFromString(value)
		if err != nil || !d.IsPositive() {
			return errInvalidSetting(key, "must be a positive number")
		}
	case core.SettingIncomeTracking:
		if value != "true" && value != "false" {
			return errInvalidSetting(key, "must be true or false")
		}
	case "monthlyGoal", "annualGoal":
		d, err := decimal.NewFromString(value)
		if err != nil || d.IsNegative() {
			return errInvalidSetting(key, "must be a non-negative number")
		}
	default:
		return errInvalidSetting(key, "unknown setting")
	}
	return nil
}

type settingError struct {
	key    string
	reason string
}

func (e settingError) Error() string {
	return "setting " + e.key + ": " + e.reason
}

func errInvalidSetting(key, reason string) error {
	return settingError{key: key, reason: reason}
}
