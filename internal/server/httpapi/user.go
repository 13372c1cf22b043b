package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"impulselog/internal/common"
	"impulselog/internal/server/services"
)

// updateUserRequest fields are optional; empty strings leave the stored
// value untouched, so profile fields cannot be cleared through this call.
type updateUserRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
}

func (s *Server) handleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	user, err := s.users.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, user.View())
}

func (s *Server) handleUpdateCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	switch {
	case req.Email != "" && !validEmail(req.Email):
		writeError(w, http.StatusBadRequest, "Email is not a valid address")
		return
	case len(req.FullName) > 100:
		writeError(w, http.StatusBadRequest, "Full name must be at most 100 characters")
		return
	case req.Password != "" && (len(req.Password) < 6 || len(req.Password) > 100):
		writeError(w, http.StatusBadRequest, "Password must be between 6 and 100 characters")
		return
	}

	user, err := s.users.Update(r.Context(), userID, req.Email, req.FullName, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailInUse):
			writeError(w, http.StatusBadRequest, "Email already in use")
		case errors.Is(err, common.ErrorNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		default:
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, user.View())
}
