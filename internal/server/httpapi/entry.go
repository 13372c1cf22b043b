package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"impulselog/internal/common"
	"impulselog/internal/server/models"

	"github.com/google/uuid"
)

type createEntryRequest struct {
	ImpulseText string `json:"impulseText"`
	Trigger     string `json:"trigger"`
	Emotion     string `json:"emotion"`
	DidAct      string `json:"didAct"`
	Notes       string `json:"notes"`
}

// updateEntryRequest distinguishes absent fields (nil, leave unchanged)
// from present-but-empty ones (explicit overwrite).
type updateEntryRequest struct {
	ImpulseText *string `json:"impulseText"`
	Trigger     *string `json:"trigger"`
	Emotion     *string `json:"emotion"`
	DidAct      *string `json:"didAct"`
	Notes       *string `json:"notes"`
}

func entryViews(entries []*models.ImpulseEntry) []models.EntryView {
	views := make([]models.EntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, e.View())
	}
	return views
}

// parseDate accepts RFC 3339 timestamps and bare dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// entryID validates the path id. A malformed id cannot name any entry, so
// it gets the same answer as a missing one.
func entryID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusNotFound, "Impulse entry not found")
		return "", false
	}
	return id, true
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var filter models.EntryFilter
	q := r.URL.Query()

	if v := q.Get("startDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid startDate")
			return
		}
		filter.StartDate = &t
	}
	if v := q.Get("endDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid endDate")
			return
		}
		filter.EndDate = &t
	}
	// "all" disables the outcome filter, matching the web client.
	if v := q.Get("didAct"); v != "" && v != "all" {
		if !models.ValidOutcome(v) {
			writeError(w, http.StatusBadRequest, "didAct must be one of yes, no, unknown")
			return
		}
		filter.DidAct = models.Outcome(v)
	}

	entries, err := s.entries.List(r.Context(), userID, filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, entryViews(entries))
}

func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	id, ok := entryID(w, r)
	if !ok {
		return
	}

	entry, err := s.entries.Get(r.Context(), userID, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Impulse entry not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, entry.View())
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.ImpulseText == "" {
		writeError(w, http.StatusBadRequest, "Impulse text is required")
		return
	}
	if req.DidAct != "" && !models.ValidOutcome(req.DidAct) {
		writeError(w, http.StatusBadRequest, "didAct must be one of yes, no, unknown")
		return
	}

	entry, err := s.entries.Create(r.Context(), userID, &models.ImpulseEntry{
		ImpulseText: req.ImpulseText,
		Trigger:     req.Trigger,
		Emotion:     req.Emotion,
		DidAct:      models.Outcome(req.DidAct),
		Notes:       req.Notes,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Location", "/impulse-entries/"+entry.ID)
	writeJSON(w, http.StatusCreated, entry.View())
}

func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	id, ok := entryID(w, r)
	if !ok {
		return
	}

	var req updateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	patch := models.EntryPatch{
		ImpulseText: req.ImpulseText,
		Trigger:     req.Trigger,
		Emotion:     req.Emotion,
		Notes:       req.Notes,
	}
	if req.DidAct != nil {
		if !models.ValidOutcome(*req.DidAct) {
			writeError(w, http.StatusBadRequest, "didAct must be one of yes, no, unknown")
			return
		}
		outcome := models.Outcome(*req.DidAct)
		patch.DidAct = &outcome
	}
	if req.ImpulseText != nil && *req.ImpulseText == "" {
		writeError(w, http.StatusBadRequest, "Impulse text cannot be empty")
		return
	}

	entry, err := s.entries.Update(r.Context(), userID, id, patch)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Impulse entry not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, entry.View())
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	id, ok := entryID(w, r)
	if !ok {
		return
	}

	if err := s.entries.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Impulse entry not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
