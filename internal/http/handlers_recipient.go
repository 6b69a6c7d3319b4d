package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/frontikai/stewardapp/internal/core"
)

type recipientPayload struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	Notes     string `json:"notes"`
	IsDefault bool   `json:"isDefault"`
}

type recipientJSON struct {
	ID        int64                  `json:"id"`
	Name      string                 `json:"name"`
	Category  core.RecipientCategory `json:"category"`
	Notes     string                 `json:"notes,omitempty"`
	IsDefault bool                   `json:"isDefault"`
}

func (s *Server) handleRecipients(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateRecipient(w, r)
	case http.MethodGet:
		s.handleListRecipients(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) handleCreateRecipient(w http.ResponseWriter, r *http.Request) {
	var payload recipientPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec := core.Recipient{
		Name:      strings.TrimSpace(payload.Name),
		Category:  core.RecipientCategory(payload.Category),
		Notes:     payload.Notes,
		IsDefault: payload.IsDefault,
	}
	if err := rec.Validate(); err != nil {
		writeDomainError(w, r, err)
		return
	}

	id, err := s.store.AddRecipient(r.Context(), rec)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.reportCache.Purge()

	slog.InfoContext(r.Context(), "Recipient created", "id", id, "name", rec.Name)
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

func (s *Server) handleListRecipients(w http.ResponseWriter, r *http.Request) {
	recipients, err := s.store.GetRecipients(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	out := make([]recipientJSON, 0, len(recipients))
	for _, rec := range recipients {
		out = append(out, recipientJSON{
			ID:        rec.ID,
			Name:      rec.Name,
			Category:  rec.Category,
			Notes:     rec.Notes,
			IsDefault: rec.IsDefault,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleUpdateRecipient serves PUT /api/recipients/{id}.
func (s *Server) handleUpdateRecipient(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w, "PUT")
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/recipients/")
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid recipient id")
		return
	}

	var payload recipientPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec := core.Recipient{
		ID:        id,
		Name:      strings.TrimSpace(payload.Name),
		Category:  core.RecipientCategory(payload.Category),
		Notes:     payload.Notes,
		IsDefault: payload.IsDefault,
	}
	if err := rec.Validate(); err != nil {
		writeDomainError(w, r, err)
		return
	}

	if err := s.store.UpdateRecipient(r.Context(), rec); err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.reportCache.Purge()
	writeJSON(w, http.StatusOK, recipientJSON{
		ID:        rec.ID,
		Name:      rec.Name,
		Category:  rec.Category,
		Notes:     rec.Notes,
		IsDefault: rec.IsDefault,
	})
}
