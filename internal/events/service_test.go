package events

import (
	"database/sql"
	"testing"
	"time"

	"github.com/community-events/app/internal/apperr"
	"github.com/community-events/app/internal/database"
	"github.com/community-events/app/internal/gamification"
	"github.com/community-events/app/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func setupServiceTest(t *testing.T) (*sql.DB, *Service, func()) {
	t.Helper()
	db, err := database.InitDB(":memory:")
	if err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
	svc := NewService(db, gamification.NewEngine())
	svc.now = func() time.Time { return testNow }
	teardown := func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	}
	return db, svc, teardown
}

func createServiceTestUser(t *testing.T, db *sql.DB, email string, admin bool) *models.User {
	t.Helper()
	user, err := database.CreateUser(db, &models.User{
		Name: "Test User", Email: email, IsAdmin: admin,
	}, "password")
	if err != nil {
		t.Fatalf("Failed to create test user %s: %v", email, err)
	}
	return user
}

func createApprovedEvent(t *testing.T, db *sql.DB, hostID int64, maxAttendees *int64) *models.Event {
	t.Helper()
	event, err := database.CreateEvent(db, &models.Event{
		HostID:       hostID,
		Title:        "Approved Event",
		Location:     models.Location{Name: "Venue", Address: "1 Main St", City: "SF", State: "CA"},
		StartTime:    testNow.Add(24 * time.Hour),
		EndTime:      testNow.Add(26 * time.Hour),
		Category:     "technology",
		MaxAttendees: maxAttendees,
		Status:       models.StatusApproved,
	})
	if err != nil {
		t.Fatalf("Failed to create approved event: %v", err)
	}
	return event
}

func validDraft() Draft {
	return Draft{
		Title:     "New Event",
		Location:  models.Location{Name: "Venue", Address: "1 Main St", City: "SF", State: "CA"},
		StartTime: testNow.Add(24 * time.Hour),
		EndTime:   testNow.Add(26 * time.Hour),
		Category:  "music",
	}
}

func TestCreateEventValidation(t *testing.T) {
	db, svc, teardown := setupServiceTest(t)
	defer teardown()
	host := createServiceTestUser(t, db, "host@example.com", false)

	cases := []struct {
		name   string
		mutate func(*Draft)
		want   apperr.Code
	}{
		{"empty title", func(d *Draft) { d.Title = "" }, apperr.CodeEventTitleEmpty},
		{"missing location city", func(d *Draft) { d.Location.City = "" }, apperr.CodeEventLocationIncomplete},
		{"unknown category", func(d *Draft) { d.Category = "knitting" }, apperr.CodeEventInvalidCategory},
		{"start in past", func(d *Draft) { d.StartTime = testNow.Add(-time.Hour) }, apperr.CodeEventStartInPast},
		{"end before start", func(d *Draft) { d.EndTime = d.StartTime.Add(-time.Hour) }, apperr.CodeEventInvalidSchedule},
		{"zero capacity", func(d *Draft) {
			zero := int64(0)
			d.MaxAttendees = &zero
		}, apperr.CodeEventInvalidCapacity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			draft := validDraft()
			tc.mutate(&draft)
			_, err := svc.CreateEvent(host.ID, draft)
			if !apperr.Is(err, tc.want) {
				t.Errorf("got %v, want code %s", err, tc.want)
			}
		})
	}
}

func TestCreateEventStartsPendingAndAwardsHostBadge(t *testing.T) {
	db, svc, teardown := setupServiceTest(t)
	defer teardown()
	host := createServiceTestUser(t, db, "host@example.com", false)

	event, err := svc.CreateEvent(host.ID, validDraft())
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	if event.Status != models.StatusPending {
		t.Errorf("got status %q, want pending", event.Status)
	}

	got, err := database.GetUserByID(db, host.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if len(got.Badges) != 1 || got.Badges[0].Type != gamification.BadgeEventHost {
		t.Errorf("got badges %+v, want exactly event_host", got.Badges)
	}
	if got.Points != gamification.BadgePoints(gamification.BadgeEventHost) {
		t.Errorf("got %d points, want %d", got.Points,
			gamification.BadgePoints(gamification.BadgeEventHost))
	}
}

func TestLifecycleTransitions(t *testing.T) {
	db, svc, teardown := setupServiceTest(t)
	defer teardown()
	admin := createServiceTestUser(t, db, "admin@example.com", true)
	host := createServiceTestUser(t, db, "host@example.com", false)
	other := createServiceTestUser(t, db, "other@example.com", false)

	event, err := svc.CreateEvent(host.ID, validDraft())
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	if _, err := svc.ApproveEvent(other, event.ID); !apperr.Is(err, apperr.CodeForbidden) {
		t.Errorf("non-admin approve: got %v, want FORBIDDEN", err)
	}
	if _, err := svc.CancelEvent(host, event.ID); !apperr.Is(err, apperr.CodeEventInvalidTransition) {
		t.Errorf("cancel pending: got %v, want EVENT_INVALID_TRANSITION", err)
	}

	approved, err := svc.ApproveEvent(admin, event.ID)
	if err != nil {
		t.Fatalf("ApproveEvent failed: %v", err)
	}
	if approved.Status != models.StatusApproved {
		t.Errorf("got status %q, want approved", approved.Status)
	}

	if _, err := svc.ApproveEvent(admin, event.ID); !apperr.Is(err, apperr.CodeEventInvalidTransition) {
		t.Errorf("approve twice: got %v, want EVENT_INVALID_TRANSITION", err)
	}
	if _, err := svc.RejectEvent(admin, event.ID); !apperr.Is(err, apperr.CodeEventInvalidTransition) {
		t.Errorf("reject approved: got %v, want EVENT_INVALID_TRANSITION", err)
	}
	if _, err := svc.CancelEvent(other, event.ID); !apperr.Is(err, apperr.CodeForbidden) {
		t.Errorf("cancel by stranger: got %v, want FORBIDDEN", err)
	}

	cancelled, err := svc.CancelEvent(host, event.ID)
	if err != nil {
		t.Fatalf("CancelEvent failed: %v", err)
	}
	if cancelled.Status != models.StatusCancelled {
		t.Errorf("got status %q, want cancelled", cancelled.Status)
	}

	if _, err := svc.ApproveEvent(admin, 9999); !apperr.Is(err, apperr.CodeNotFound) {
		t.Errorf("approve missing event: got %v, want NOT_FOUND", err)
	}
}

func TestSubmitRSVPRequiresApprovedEvent(t *testing.T) {
	db, svc, teardown := setupServiceTest(t)
	defer teardown()
	host := createServiceTestUser(t, db, "host@example.com", false)
	user := createServiceTestUser(t, db, "user@example.com", false)

	pending, err := svc.CreateEvent(host.ID, validDraft())
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	if _, err := svc.SubmitRSVP(pending.ID, user.ID, models.RSVPStatusAttending); !apperr.Is(err, apperr.CodeEventNotApproved) {
		t.Errorf("RSVP to pending event: got %v, want EVENT_NOT_APPROVED", err)
	}

	// An approved event whose end time has passed reads as completed
	// and no longer accepts RSVPs.
	past, err := database.CreateEvent(db, &models.Event{
		HostID:    host.ID,
		Title:     "Finished Event",
		Location:  models.Location{Name: "Venue", Address: "1 Main St", City: "SF", State: "CA"},
		StartTime: testNow.Add(-48 * time.Hour),
		EndTime:   testNow.Add(-46 * time.Hour),
		Category:  "music",
		Status:    models.StatusApproved,
	})
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}
	if _, err := svc.SubmitRSVP(past.ID, user.ID, models.RSVPStatusAttending); !apperr.Is(err, apperr.CodeEventNotApproved) {
		t.Errorf("RSVP to completed event: got %v, want EVENT_NOT_APPROVED", err)
	}
}

func TestSubmitRSVPInvalidStatus(t *testing.T) {
	db, svc, teardown := setupServiceTest(t)
	defer teardown()
	host := createServiceTestUser(t, db, "host@example.com", false)
	user := createServiceTestUser(t, db, "user@example.com", false)
	event := createApprovedEvent(t, db, host.ID, nil)

	if _, err := svc.SubmitRSVP(event.ID, user.ID, "definitely"); !apperr.Is(err, apperr.CodeRSVPInvalidStatus) {
		t.Errorf("got %v, want RSVP_INVALID_STATUS", err)
	}
}

func TestSubmitRSVPCapacityGate(t *testing.T) {
	db, svc, teardown := setupServiceTest(t)
	defer teardown()
	host := createServiceTestUser(t, db, "host@example.com", false)
	alice := createServiceTestUser(t, db, "alice@example.com", false)
	bob := createServiceTestUser(t, db, "bob@example.com", false)
	carol := createServiceTestUser(t, db, "carol@example.com", false)

	max := int64(2)
	event := createApprovedEvent(t, db, host.ID, &max)

	for _, user := range []*models.User{alice, bob} {
		if _, err := svc.SubmitRSVP(event.ID, user.ID, models.RSVPStatusAttending); err != nil {
			t.Fatalf("SubmitRSVP for user %d failed: %v", user.ID, err)
		}
	}

	if _, err := svc.SubmitRSVP(event.ID, carol.ID, models.RSVPStatusAttending); !apperr.Is(err, apperr.CodeEventFull) {
		t.Errorf("third attending RSVP: got %v, want EVENT_FULL", err)
	}

	// A maybe RSVP does not consume capacity.
	if _, err := svc.SubmitRSVP(event.ID, carol.ID, models.RSVPStatusMaybe); err != nil {
		t.Errorf("maybe RSVP on a full event failed: %v", err)
	}

	// Re-submitting attending does not trip the cap against yourself.
	if _, err := svc.SubmitRSVP(event.ID, alice.ID, models.RSVPStatusAttending); err != nil {
		t.Errorf("re-submitted attending RSVP failed: %v", err)
	}

	// A freed spot admits the waiting user.
	if _, err := svc.CancelRSVP(event.ID, bob.ID); err != nil {
		t.Fatalf("CancelRSVP failed: %v", err)
	}
	if _, err := svc.SubmitRSVP(event.ID, carol.ID, models.RSVPStatusAttending); err != nil {
		t.Errorf("attending RSVP after a spot freed failed: %v", err)
	}
}

func TestSubmitRSVPAwardsOnFirstAttendance(t *testing.T) {
	db, svc, teardown := setupServiceTest(t)
	defer teardown()
	host := createServiceTestUser(t, db, "host@example.com", false)
	user := createServiceTestUser(t, db, "user@example.com", false)
	event := createApprovedEvent(t, db, host.ID, nil)

	if _, err := svc.SubmitRSVP(event.ID, user.ID, models.RSVPStatusAttending); err != nil {
		t.Fatalf("SubmitRSVP failed: %v", err)
	}

	got, err := database.GetUserByID(db, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if len(got.Badges) != 1 || got.Badges[0].Type != gamification.BadgeFirstEvent {
		t.Errorf("got badges %+v, want exactly first_event", got.Badges)
	}
	if got.Streaks.Current != 1 {
		t.Errorf("got streak current=%d, want 1", got.Streaks.Current)
	}
}

func TestSubmitRSVPDowngradeKeepsAwards(t *testing.T) {
	db, svc, teardown := setupServiceTest(t)
	defer teardown()
	host := createServiceTestUser(t, db, "host@example.com", false)
	user := createServiceTestUser(t, db, "user@example.com", false)
	event := createApprovedEvent(t, db, host.ID, nil)

	if _, err := svc.SubmitRSVP(event.ID, user.ID, models.RSVPStatusAttending); err != nil {
		t.Fatalf("SubmitRSVP failed: %v", err)
	}
	updated, err := svc.SubmitRSVP(event.ID, user.ID, models.RSVPStatusMaybe)
	if err != nil {
		t.Fatalf("SubmitRSVP (downgrade) failed: %v", err)
	}

	if len(updated.RSVPs) != 1 || updated.RSVPs[0].Status != models.RSVPStatusMaybe {
		t.Errorf("got RSVPs %+v, want a single maybe entry", updated.RSVPs)
	}

	got, err := database.GetUserByID(db, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if len(got.Badges) != 1 {
		t.Errorf("got %d badges after downgrade, want 1 (awards are not reversed)", len(got.Badges))
	}
}

func TestCancelRSVPKeepsAwards(t *testing.T) {
	db, svc, teardown := setupServiceTest(t)
	defer teardown()
	host := createServiceTestUser(t, db, "host@example.com", false)
	user := createServiceTestUser(t, db, "user@example.com", false)
	event := createApprovedEvent(t, db, host.ID, nil)

	if _, err := svc.SubmitRSVP(event.ID, user.ID, models.RSVPStatusAttending); err != nil {
		t.Fatalf("SubmitRSVP failed: %v", err)
	}
	updated, err := svc.CancelRSVP(event.ID, user.ID)
	if err != nil {
		t.Fatalf("CancelRSVP failed: %v", err)
	}
	if len(updated.RSVPs) != 0 {
		t.Errorf("got %d RSVPs after cancel, want 0", len(updated.RSVPs))
	}

	got, err := database.GetUserByID(db, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if got.Points == 0 || len(got.Badges) == 0 {
		t.Error("cancelling an RSVP should not reverse points or badges")
	}

	// Cancelling again is still fine.
	if _, err := svc.CancelRSVP(event.ID, user.ID); err != nil {
		t.Errorf("CancelRSVP on an absent entry failed: %v", err)
	}

	if _, err := svc.CancelRSVP(9999, user.ID); !apperr.Is(err, apperr.CodeNotFound) {
		t.Errorf("cancel RSVP on missing event: got %v, want NOT_FOUND", err)
	}
}

func TestGetEventBumpsViews(t *testing.T) {
	db, svc, teardown := setupServiceTest(t)
	defer teardown()
	host := createServiceTestUser(t, db, "host@example.com", false)
	event := createApprovedEvent(t, db, host.ID, nil)

	for i := 0; i < 2; i++ {
		if _, err := svc.GetEvent(event.ID); err != nil {
			t.Fatalf("GetEvent failed: %v", err)
		}
	}
	got, err := svc.LookupEvent(event.ID)
	if err != nil {
		t.Fatalf("LookupEvent failed: %v", err)
	}
	if got.Views != 2 {
		t.Errorf("got %d views, want 2 (LookupEvent should not bump)", got.Views)
	}

	if _, err := svc.GetEvent(9999); !apperr.Is(err, apperr.CodeNotFound) {
		t.Errorf("get missing event: got %v, want NOT_FOUND", err)
	}
}
