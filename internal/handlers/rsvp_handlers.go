package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/community-events/app/internal/apperr"
	"github.com/community-events/app/internal/events"
	"github.com/community-events/app/internal/models"
)

type rsvpRequest struct {
	Status string `json:"status"`
}

// SubmitRSVP records the authenticated user's RSVP for an event.
func SubmitRSVP(svc *events.Service) func(http.ResponseWriter, *http.Request, *models.User) {
	return func(w http.ResponseWriter, r *http.Request, user *models.User) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		var req rsvpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, apperr.New(apperr.CodeUnknown, "invalid request body"))
			return
		}
		event, err := svc.SubmitRSVP(id, user.ID, req.Status)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, detailOf(event))
	}
}

// CancelRSVP removes the authenticated user's RSVP for an event.
func CancelRSVP(svc *events.Service) func(http.ResponseWriter, *http.Request, *models.User) {
	return func(w http.ResponseWriter, r *http.Request, user *models.User) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		event, err := svc.CancelRSVP(id, user.ID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, detailOf(event))
	}
}
