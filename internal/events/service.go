// Package events implements the event lifecycle and the RSVP flow:
// the approval state machine, the capacity gate, and the handoff to
// the gamification engine on attendance-confirming RSVPs.
package events

import (
	"database/sql"
	"time"

	"github.com/community-events/app/internal/apperr"
	"github.com/community-events/app/internal/database"
	"github.com/community-events/app/internal/gamification"
	"github.com/community-events/app/internal/models"
)

// Service exposes the core event operations to the request-handling
// boundary.
type Service struct {
	db     *sql.DB
	engine *gamification.Engine
	now    func() time.Time
}

// NewService wires the service to its database and gamification
// engine.
func NewService(db *sql.DB, engine *gamification.Engine) *Service {
	return &Service{db: db, engine: engine, now: time.Now}
}

// Draft carries the host-supplied fields of a new event.
type Draft struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Location     models.Location `json:"location"`
	StartTime    time.Time       `json:"start_time"`
	EndTime      time.Time       `json:"end_time"`
	Category     string          `json:"category"`
	MaxAttendees *int64          `json:"max_attendees,omitempty"`
	Price        float64         `json:"price"`
}

func (s *Service) validateDraft(draft *Draft) error {
	if draft.Title == "" {
		return apperr.NewField(apperr.CodeEventTitleEmpty, "title", "title is required")
	}
	if draft.Location.Name == "" || draft.Location.Address == "" ||
		draft.Location.City == "" || draft.Location.State == "" {
		return apperr.NewField(apperr.CodeEventLocationIncomplete, "location",
			"location name, address, city and state are required")
	}
	if !models.ValidCategory(draft.Category) {
		return apperr.NewField(apperr.CodeEventInvalidCategory, "category",
			"unknown category "+draft.Category)
	}
	if !draft.StartTime.After(s.now()) {
		return apperr.NewField(apperr.CodeEventStartInPast, "start_time",
			"event must be scheduled for the future")
	}
	if !draft.EndTime.After(draft.StartTime) {
		return apperr.NewField(apperr.CodeEventInvalidSchedule, "end_time",
			"end time must be after start time")
	}
	if draft.MaxAttendees != nil && *draft.MaxAttendees <= 0 {
		return apperr.NewField(apperr.CodeEventInvalidCapacity, "max_attendees",
			"max attendees must be positive")
	}
	return nil
}

// CreateEvent validates the draft and stores a new pending event. The
// host earns the event_host badge on their first created event; the
// award call runs on every creation and is idempotent.
func (s *Service) CreateEvent(hostID int64, draft Draft) (*models.Event, error) {
	if err := s.validateDraft(&draft); err != nil {
		return nil, err
	}
	if _, err := database.GetUserByID(s.db, hostID); err != nil {
		return nil, notFoundOr(err, "user")
	}

	event, err := database.CreateEvent(s.db, &models.Event{
		HostID:       hostID,
		Title:        draft.Title,
		Description:  draft.Description,
		Location:     draft.Location,
		StartTime:    draft.StartTime,
		EndTime:      draft.EndTime,
		Category:     draft.Category,
		MaxAttendees: draft.MaxAttendees,
		Price:        draft.Price,
		Status:       models.StatusPending,
	})
	if err != nil {
		return nil, err
	}

	if err := s.engine.AwardHostBadge(s.db, hostID); err != nil {
		return nil, err
	}
	return event, nil
}

// GetEvent returns the event and increments its view counter.
func (s *Service) GetEvent(eventID int64) (*models.Event, error) {
	if err := database.IncrementEventViews(s.db, eventID); err != nil {
		return nil, err
	}
	event, err := database.GetEventByID(s.db, eventID)
	if err != nil {
		return nil, notFoundOr(err, "event")
	}
	event.Status = event.EffectiveStatus(s.now())
	return event, nil
}

// LookupEvent returns the event without touching the view counter,
// for exports and internal reads.
func (s *Service) LookupEvent(eventID int64) (*models.Event, error) {
	event, err := database.GetEventByID(s.db, eventID)
	if err != nil {
		return nil, notFoundOr(err, "event")
	}
	event.Status = event.EffectiveStatus(s.now())
	return event, nil
}

// HostedEvents returns the events a user has created, in any status,
// newest first.
func (s *Service) HostedEvents(hostID int64) ([]*models.Event, error) {
	if _, err := database.GetUserByID(s.db, hostID); err != nil {
		return nil, notFoundOr(err, "user")
	}
	return database.EventsByHost(s.db, hostID)
}

// ListEvents returns approved events matching the filter.
func (s *Service) ListEvents(filter database.EventFilter) ([]*models.Event, error) {
	if filter.Category != "" && !models.ValidCategory(filter.Category) {
		return nil, apperr.NewField(apperr.CodeEventInvalidCategory, "category",
			"unknown category "+filter.Category)
	}
	filter.Now = s.now()
	return database.ListEvents(s.db, filter)
}

// Trending returns upcoming approved events ranked by rating, RSVP
// interest, then views.
func (s *Service) Trending(limit int) ([]*models.Event, error) {
	return database.TrendingEvents(s.db, limit, s.now())
}

// PendingEvents lists events awaiting review, for admins.
func (s *Service) PendingEvents(actor *models.User) ([]*models.Event, error) {
	if !actor.IsAdmin {
		return nil, apperr.New(apperr.CodeForbidden, "admin access required")
	}
	return database.PendingEvents(s.db)
}

// ApproveEvent moves a pending event to approved. Admin only.
func (s *Service) ApproveEvent(actor *models.User, eventID int64) (*models.Event, error) {
	if !actor.IsAdmin {
		return nil, apperr.New(apperr.CodeForbidden, "admin access required")
	}
	return s.transition(eventID, models.StatusApproved)
}

// RejectEvent moves a pending event to rejected. Admin only.
func (s *Service) RejectEvent(actor *models.User, eventID int64) (*models.Event, error) {
	if !actor.IsAdmin {
		return nil, apperr.New(apperr.CodeForbidden, "admin access required")
	}
	return s.transition(eventID, models.StatusRejected)
}

// CancelEvent moves an approved event to cancelled. Allowed for the
// event's host or an admin.
func (s *Service) CancelEvent(actor *models.User, eventID int64) (*models.Event, error) {
	event, err := database.GetEventByID(s.db, eventID)
	if err != nil {
		return nil, notFoundOr(err, "event")
	}
	if !actor.IsAdmin && actor.ID != event.HostID {
		return nil, apperr.New(apperr.CodeForbidden, "only the host or an admin can cancel an event")
	}
	return s.transition(eventID, models.StatusCancelled)
}

// SubmitRSVP upserts the user's RSVP for an approved event. An
// attending RSVP is admitted only while capacity remains; the count
// excludes the user's own prior entry. A first-time attending
// confirmation hands off to the gamification engine. The RSVP write
// and the gamification update share one transaction so the two
// resources commit together.
func (s *Service) SubmitRSVP(eventID, userID int64, status string) (*models.Event, error) {
	if !models.ValidRSVPStatus(status) {
		return nil, apperr.NewField(apperr.CodeRSVPInvalidStatus, "status",
			"unknown RSVP status "+status)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	event, err := database.GetEventByID(tx, eventID)
	if err != nil {
		return nil, notFoundOr(err, "event")
	}
	if _, err := database.GetUserByID(tx, userID); err != nil {
		return nil, notFoundOr(err, "user")
	}

	if event.EffectiveStatus(s.now()) != models.StatusApproved {
		return nil, apperr.New(apperr.CodeEventNotApproved, "cannot RSVP to an unapproved event")
	}

	if status == models.RSVPStatusAttending && event.MaxAttendees != nil {
		attending, err := database.CountAttending(tx, eventID, userID)
		if err != nil {
			return nil, err
		}
		if attending >= *event.MaxAttendees {
			return nil, apperr.New(apperr.CodeEventFull, "event is full")
		}
	}

	if err := database.UpsertRSVP(tx, &models.RSVP{
		UserID:  userID,
		EventID: eventID,
		Status:  status,
	}); err != nil {
		return nil, err
	}

	if status == models.RSVPStatusAttending {
		if err := s.engine.RecordAttendance(tx, userID, event); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return database.GetEventByID(s.db, eventID)
}

// CancelRSVP removes the user's RSVP entry if present; removing an
// absent entry is not an error. Points, badges, and streaks already
// granted are not reversed: awards are not revocable in this design.
func (s *Service) CancelRSVP(eventID, userID int64) (*models.Event, error) {
	if _, err := database.GetEventByID(s.db, eventID); err != nil {
		return nil, notFoundOr(err, "event")
	}
	if err := database.DeleteRSVP(s.db, userID, eventID); err != nil {
		return nil, err
	}
	return database.GetEventByID(s.db, eventID)
}
