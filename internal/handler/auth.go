package handler

import (
	"net/http"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/safari-hire/dashboard/internal/domain"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Authenticated bool             `json:"authenticated"`
	User          *domain.Identity `json:"user"`
	Error         string           `json:"error,omitempty"`
}

func (s *Server) sessionBody() sessionResponse {
	resp := sessionResponse{Error: s.gate.LastError()}
	if id, ok := s.gate.Session(); ok {
		resp.Authenticated = true
		resp.User = &id
	}
	return resp
}

// Login handles POST /auth/login. It waits the configured login delay before
// checking the credentials; a client that disconnects during the wait gets
// no answer and the check is skipped.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if s.loginDelay > 0 {
		timer := time.NewTimer(s.loginDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-r.Context().Done():
			return
		}
	}

	if _, err := s.gate.Login(r.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, unauthorizedBody(s.gate.LastError()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: errorDetail{Code: "internal", Message: "login failed"}})
		return
	}
	writeJSON(w, http.StatusOK, s.sessionBody())
}

// Logout handles POST /auth/logout.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	s.gate.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// GetSession handles GET /auth/session. It reports whether someone is signed
// in, who, and the message of the last failed login.
func (s *Server) GetSession(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.sessionBody())
}
