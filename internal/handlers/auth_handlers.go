package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/community-events/app/internal/apperr"
	"github.com/community-events/app/internal/database"
	"github.com/community-events/app/internal/models"
	"github.com/google/uuid"
)

type registerRequest struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	Interests []string `json:"interests"`
}

// Register creates a new user account and starts a session.
func Register(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, apperr.New(apperr.CodeUnknown, "invalid request body"))
			return
		}

		if req.Name == "" {
			respondError(w, apperr.NewField(apperr.CodeUserNameEmpty, "name", "name is required"))
			return
		}
		if req.Email == "" {
			respondError(w, apperr.NewField(apperr.CodeUserEmailEmpty, "email", "email is required"))
			return
		}
		if req.Password == "" {
			respondError(w, apperr.NewField(apperr.CodeUserPasswordEmpty, "password", "password is required"))
			return
		}
		for _, interest := range req.Interests {
			if !models.ValidCategory(interest) {
				respondError(w, apperr.NewField(apperr.CodeUserInvalidInterest, "interests",
					"unknown interest "+interest))
				return
			}
		}

		if _, err := database.GetUserByEmail(db, req.Email); err == nil {
			respondError(w, apperr.NewField(apperr.CodeUserEmailTaken, "email", "email already registered"))
			return
		} else if !errors.Is(err, sql.ErrNoRows) {
			respondError(w, err)
			return
		}

		user, err := database.CreateUser(db, &models.User{
			Name:      req.Name,
			Email:     req.Email,
			City:      req.City,
			State:     req.State,
			Interests: req.Interests,
		}, req.Password)
		if err != nil {
			respondError(w, err)
			return
		}

		startSession(w, r, user.ID)
		respondJSON(w, http.StatusCreated, user)
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and starts a session.
func Login(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, apperr.New(apperr.CodeUnknown, "invalid request body"))
			return
		}

		user, err := database.GetUserByEmail(db, req.Email)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				respondError(w, apperr.New(apperr.CodeUnauthorized, "invalid email or password"))
			} else {
				respondError(w, err)
			}
			return
		}
		if err := database.VerifyPassword(user.PasswordHash, req.Password); err != nil {
			respondError(w, apperr.New(apperr.CodeUnauthorized, "invalid email or password"))
			return
		}

		startSession(w, r, user.ID)
		respondJSON(w, http.StatusOK, user)
	}
}

// Logout ends the current session.
func Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		sessions.remove(cookie.Value)
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			HttpOnly: true,
			Secure:   r.TLS != nil,
			SameSite: http.SameSiteLaxMode,
		})
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// Me returns the authenticated user's own record.
func Me(w http.ResponseWriter, r *http.Request, user *models.User) {
	respondJSON(w, http.StatusOK, user)
}

func startSession(w http.ResponseWriter, r *http.Request, userID int64) {
	token := uuid.NewString()
	sessions.add(token, userID)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}
