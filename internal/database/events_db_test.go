package database

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/community-events/app/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

func TestCreateEventAndGet(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()

	host := createTestUser(t, db, "host@example.com")
	max := int64(50)
	start := time.Now().Add(48 * time.Hour).UTC().Round(time.Second)

	event, err := CreateEvent(db, &models.Event{
		HostID:       host.ID,
		Title:        "AI Meetup",
		Description:  "Talks and networking",
		Location:     models.Location{Name: "Tech Hub", Address: "123 Market St", City: "San Francisco", State: "CA"},
		StartTime:    start,
		EndTime:      start.Add(2 * time.Hour),
		Category:     "technology",
		MaxAttendees: &max,
		Price:        10,
		Status:       models.StatusPending,
	})
	if err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	got, err := GetEventByID(db, event.ID)
	if err != nil {
		t.Fatalf("GetEventByID failed: %v", err)
	}
	if got.Title != "AI Meetup" || got.Status != models.StatusPending {
		t.Errorf("got title=%q status=%q", got.Title, got.Status)
	}
	if got.MaxAttendees == nil || *got.MaxAttendees != 50 {
		t.Errorf("got max attendees %v, want 50", got.MaxAttendees)
	}
	if !got.StartTime.Equal(start) {
		t.Errorf("got start time %v, want %v", got.StartTime, start)
	}
}

func TestUpdateEventStatus(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()

	host := createTestUser(t, db, "host@example.com")
	event := createTestEvent(t, db, host.ID, "Pending Event")

	if err := UpdateEventStatus(db, event.ID, models.StatusCancelled); err != nil {
		t.Fatalf("UpdateEventStatus failed: %v", err)
	}
	got, err := GetEventByID(db, event.ID)
	if err != nil {
		t.Fatalf("GetEventByID failed: %v", err)
	}
	if got.Status != models.StatusCancelled {
		t.Errorf("got status %q, want cancelled", got.Status)
	}

	if err := UpdateEventStatus(db, 9999, models.StatusApproved); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("got %v for a missing event, want sql.ErrNoRows", err)
	}
}

func TestIncrementEventViews(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()

	host := createTestUser(t, db, "host@example.com")
	event := createTestEvent(t, db, host.ID, "Viewed Event")

	for i := 0; i < 3; i++ {
		if err := IncrementEventViews(db, event.ID); err != nil {
			t.Fatalf("IncrementEventViews failed: %v", err)
		}
	}
	got, err := GetEventByID(db, event.ID)
	if err != nil {
		t.Fatalf("GetEventByID failed: %v", err)
	}
	if got.Views != 3 {
		t.Errorf("got %d views, want 3", got.Views)
	}
}

func TestListEventsFilters(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()

	host := createTestUser(t, db, "host@example.com")
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	mkEvent := func(title, category, city, status string, start time.Time) {
		t.Helper()
		_, err := CreateEvent(db, &models.Event{
			HostID:    host.ID,
			Title:     title,
			Location:  models.Location{Name: "Venue", Address: "1 Main St", City: city, State: "CA"},
			StartTime: start,
			EndTime:   start.Add(2 * time.Hour),
			Category:  category,
			Status:    status,
		})
		if err != nil {
			t.Fatalf("CreateEvent %s failed: %v", title, err)
		}
	}

	mkEvent("Tech Tomorrow", "technology", "San Francisco", models.StatusApproved, now.Add(24*time.Hour))
	mkEvent("Tech Next Week", "technology", "Oakland", models.StatusApproved, now.Add(7*24*time.Hour))
	mkEvent("Art Show", "art", "San Francisco", models.StatusApproved, now.Add(48*time.Hour))
	mkEvent("Unreviewed", "technology", "San Francisco", models.StatusPending, now.Add(24*time.Hour))
	mkEvent("Long Gone", "technology", "San Francisco", models.StatusApproved, now.Add(-48*time.Hour))

	list, err := ListEvents(db, EventFilter{Now: now})
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("got %d events, want 3 upcoming approved", len(list))
	}
	// Default sort is soonest first.
	if list[0].Title != "Tech Tomorrow" || list[2].Title != "Tech Next Week" {
		t.Errorf("unexpected order: %q .. %q", list[0].Title, list[2].Title)
	}

	list, err = ListEvents(db, EventFilter{Category: "technology", Now: now})
	if err != nil {
		t.Fatalf("ListEvents by category failed: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("got %d technology events, want 2", len(list))
	}

	list, err = ListEvents(db, EventFilter{City: "Oakland", Now: now})
	if err != nil {
		t.Fatalf("ListEvents by city failed: %v", err)
	}
	if len(list) != 1 || list[0].Title != "Tech Next Week" {
		t.Errorf("got %d Oakland events, want just Tech Next Week", len(list))
	}

	day := now.Add(48 * time.Hour)
	list, err = ListEvents(db, EventFilter{Date: &day, Now: now})
	if err != nil {
		t.Fatalf("ListEvents by date failed: %v", err)
	}
	if len(list) != 1 || list[0].Title != "Art Show" {
		t.Errorf("got %d events on the art show day, want 1", len(list))
	}
}

func TestPendingEvents(t *testing.T) {
	db, teardown := setupTestDB(t)
	defer teardown()

	host := createTestUser(t, db, "host@example.com")
	start := time.Now().Add(24 * time.Hour).UTC()
	for _, status := range []string{models.StatusPending, models.StatusApproved, models.StatusPending} {
		_, err := CreateEvent(db, &models.Event{
			HostID:    host.ID,
			Title:     "Event " + status,
			Location:  models.Location{Name: "Venue", Address: "1 Main St", City: "SF", State: "CA"},
			StartTime: start,
			EndTime:   start.Add(time.Hour),
			Category:  "music",
			Status:    status,
		})
		if err != nil {
			t.Fatalf("CreateEvent failed: %v", err)
		}
	}

	pending, err := PendingEvents(db)
	if err != nil {
		t.Fatalf("PendingEvents failed: %v", err)
	}
	if len(pending) != 2 {
		t.Errorf("got %d pending events, want 2", len(pending))
	}
}
