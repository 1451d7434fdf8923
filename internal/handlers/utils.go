package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/community-events/app/internal/apperr"
	"github.com/community-events/app/internal/database"
	"github.com/community-events/app/internal/models"
)

const sessionCookieName = "session_token"

// sessionStore holds active session tokens and their user IDs. In
// memory only; sessions do not survive a restart.
type sessionStore struct {
	mu     sync.RWMutex
	tokens map[string]int64
}

var sessions = &sessionStore{tokens: make(map[string]int64)}

func (s *sessionStore) add(token string, userID int64) {
	s.mu.Lock()
	s.tokens[token] = userID
	s.mu.Unlock()
}

func (s *sessionStore) get(token string) (int64, bool) {
	s.mu.RLock()
	userID, ok := s.tokens[token]
	s.mu.RUnlock()
	return userID, ok
}

func (s *sessionStore) remove(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			slog.Error("encode response", "error", err)
		}
	}
}

// respondError maps domain errors to their HTTP status and a JSON
// body of {code, message, field?}. Anything else is a 500 with the
// detail kept out of the response.
func respondError(w http.ResponseWriter, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		respondJSON(w, appErr.Code.HTTPStatus(), appErr)
		return
	}
	slog.Error("internal error", "error", err)
	respondJSON(w, http.StatusInternalServerError,
		apperr.New(apperr.CodeUnknown, "internal server error"))
}

// pathID parses the {id} path value of the request.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, apperr.New(apperr.CodeNotFound, "invalid id")
	}
	return id, nil
}

// GetCurrentUser resolves the session cookie to a user record.
func GetCurrentUser(r *http.Request, db *sql.DB) (*models.User, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil, apperr.New(apperr.CodeUnauthorized, "authentication required")
	}
	userID, ok := sessions.get(cookie.Value)
	if !ok {
		return nil, apperr.New(apperr.CodeUnauthorized, "invalid session")
	}
	user, err := database.GetUserByID(db, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.CodeUnauthorized, "invalid session")
		}
		return nil, err
	}
	return user, nil
}

// RequireAuth wraps a handler that needs the authenticated user.
func RequireAuth(db *sql.DB, next func(http.ResponseWriter, *http.Request, *models.User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := GetCurrentUser(r, db)
		if err != nil {
			respondError(w, err)
			return
		}
		next(w, r, user)
	}
}

// LogRequests logs each request with its duration.
func LogRequests(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info("request", "method", r.Method, "path", r.URL.Path,
			"duration", time.Since(start))
	})
}
