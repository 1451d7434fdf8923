package models

import "time"

// Event statuses. New events always start as StatusPending; an admin
// moves them to approved or rejected. Completed is derived from the
// end time rather than written by the approval flow.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Categories is the fixed set of event categories. User interests
// draw from the same set.
var Categories = []string{
	"technology", "music", "sports", "food", "art",
	"education", "networking", "fitness", "gaming", "outdoor",
}

// ValidCategory reports whether c is a known event category.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Location describes where an event takes place.
type Location struct {
	Name    string   `json:"name"`
	Address string   `json:"address"`
	City    string   `json:"city"`
	State   string   `json:"state"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

// Rating aggregates submitted ratings for an event.
type Rating struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// Event represents a hosted event. The host reference is immutable
// after creation.
type Event struct {
	ID           int64     `json:"id"`
	HostID       int64     `json:"host_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Location     Location  `json:"location"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Category     string    `json:"category"`
	MaxAttendees *int64    `json:"max_attendees,omitempty"`
	Price        float64   `json:"price"`
	Status       string    `json:"status"`
	Views        int64     `json:"views"`
	Rating       Rating    `json:"rating"`
	CreatedAt    time.Time `json:"created_at"`

	// RSVPs is populated on detail fetches, not on list queries.
	RSVPs []*RSVP `json:"rsvps,omitempty"`
}

// EffectiveStatus derives the reportable status at a given time. An
// approved event whose end time has passed reads as completed without
// requiring an external trigger to rewrite the stored status.
func (e *Event) EffectiveStatus(now time.Time) string {
	if e.Status == StatusApproved && now.After(e.EndTime) {
		return StatusCompleted
	}
	return e.Status
}

// AttendingCount counts RSVPs with attending status. Only those count
// toward capacity.
func (e *Event) AttendingCount() int64 {
	var n int64
	for _, r := range e.RSVPs {
		if r.Status == RSVPStatusAttending {
			n++
		}
	}
	return n
}

// AvailableSpots returns the remaining capacity floored at zero, or
// nil when the event has no attendee cap.
func (e *Event) AvailableSpots() *int64 {
	if e.MaxAttendees == nil {
		return nil
	}
	spots := *e.MaxAttendees - e.AttendingCount()
	if spots < 0 {
		spots = 0
	}
	return &spots
}
