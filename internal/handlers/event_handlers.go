package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/community-events/app/internal/apperr"
	"github.com/community-events/app/internal/database"
	"github.com/community-events/app/internal/events"
	"github.com/community-events/app/internal/models"
)

// ListEvents returns approved events, filtered by the query string:
// category, city, state, date (YYYY-MM-DD), sort (date, popularity,
// rating), limit, and trending=true for the trending ranking.
func ListEvents(svc *events.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		limit := 0
		if raw := q.Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 || n > 100 {
				respondError(w, apperr.NewField(apperr.CodeUnknown, "limit", "limit must be 1-100"))
				return
			}
			limit = n
		}

		if q.Get("trending") == "true" {
			list, err := svc.Trending(limit)
			if err != nil {
				respondError(w, err)
				return
			}
			respondJSON(w, http.StatusOK, list)
			return
		}

		filter := database.EventFilter{
			Category: q.Get("category"),
			City:     q.Get("city"),
			State:    q.Get("state"),
			Sort:     q.Get("sort"),
			Limit:    limit,
		}
		if raw := q.Get("date"); raw != "" {
			date, err := time.Parse("2006-01-02", raw)
			if err != nil {
				respondError(w, apperr.NewField(apperr.CodeUnknown, "date", "date must be YYYY-MM-DD"))
				return
			}
			filter.Date = &date
		}

		list, err := svc.ListEvents(filter)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, list)
	}
}

// eventDetail decorates an event with the derived capacity numbers
// shown on the detail page.
type eventDetail struct {
	*models.Event
	AttendingCount int64  `json:"attending_count"`
	AvailableSpots *int64 `json:"available_spots,omitempty"`
}

func detailOf(event *models.Event) eventDetail {
	return eventDetail{
		Event:          event,
		AttendingCount: event.AttendingCount(),
		AvailableSpots: event.AvailableSpots(),
	}
}

// GetEvent returns a single event and bumps its view counter.
func GetEvent(svc *events.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		event, err := svc.GetEvent(id)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, detailOf(event))
	}
}

// HostedEvents lists the events a user has created, newest first.
func HostedEvents(svc *events.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		list, err := svc.HostedEvents(id)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, list)
	}
}

// CreateEvent submits a new event for approval, hosted by the
// authenticated user.
func CreateEvent(svc *events.Service) func(http.ResponseWriter, *http.Request, *models.User) {
	return func(w http.ResponseWriter, r *http.Request, user *models.User) {
		var draft events.Draft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			respondError(w, apperr.New(apperr.CodeUnknown, "invalid request body"))
			return
		}
		event, err := svc.CreateEvent(user.ID, draft)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, event)
	}
}
