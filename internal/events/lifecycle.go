package events

import (
	"database/sql"
	"errors"

	"github.com/community-events/app/internal/apperr"
	"github.com/community-events/app/internal/database"
	"github.com/community-events/app/internal/models"
)

// transitions is the event lifecycle table. Approval decisions are
// one-directional; cancellation is only reachable from approved.
// Completed is derived from the end time and never written here.
var transitions = map[string][]string{
	models.StatusPending:  {models.StatusApproved, models.StatusRejected},
	models.StatusApproved: {models.StatusCancelled},
}

func canTransition(from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// transition loads the event, validates the status change, and
// persists it. The actor's permission has already been checked.
func (s *Service) transition(eventID int64, to string) (*models.Event, error) {
	event, err := database.GetEventByID(s.db, eventID)
	if err != nil {
		return nil, notFoundOr(err, "event")
	}
	if !canTransition(event.Status, to) {
		return nil, apperr.Newf(apperr.CodeEventInvalidTransition,
			"event cannot move from %s to %s", event.Status, to)
	}
	if err := database.UpdateEventStatus(s.db, eventID, to); err != nil {
		return nil, err
	}
	event.Status = to
	return event, nil
}

// notFoundOr wraps sql.ErrNoRows as a not-found condition and passes
// other errors through.
func notFoundOr(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.Newf(apperr.CodeNotFound, "%s not found", what)
	}
	return err
}
