package handlers

import (
	"net/http"

	"github.com/community-events/app/internal/events"
	"github.com/community-events/app/internal/models"
)

// PendingEvents lists events awaiting review. Admin only.
func PendingEvents(svc *events.Service) func(http.ResponseWriter, *http.Request, *models.User) {
	return func(w http.ResponseWriter, r *http.Request, user *models.User) {
		list, err := svc.PendingEvents(user)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, list)
	}
}

// ApproveEvent approves a pending event. Admin only.
func ApproveEvent(svc *events.Service) func(http.ResponseWriter, *http.Request, *models.User) {
	return transitionHandler(svc.ApproveEvent)
}

// RejectEvent rejects a pending event. Admin only.
func RejectEvent(svc *events.Service) func(http.ResponseWriter, *http.Request, *models.User) {
	return transitionHandler(svc.RejectEvent)
}

// CancelEvent cancels an approved event. Host or admin.
func CancelEvent(svc *events.Service) func(http.ResponseWriter, *http.Request, *models.User) {
	return transitionHandler(svc.CancelEvent)
}

func transitionHandler(op func(*models.User, int64) (*models.Event, error)) func(http.ResponseWriter, *http.Request, *models.User) {
	return func(w http.ResponseWriter, r *http.Request, user *models.User) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		event, err := op(user, id)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, event)
	}
}
