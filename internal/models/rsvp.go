package models

import "time"

const (
	RSVPStatusAttending    = "attending"
	RSVPStatusMaybe        = "maybe"
	RSVPStatusNotAttending = "not_attending"
)

// ValidRSVPStatus reports whether s is a known RSVP status.
func ValidRSVPStatus(s string) bool {
	switch s {
	case RSVPStatusAttending, RSVPStatusMaybe, RSVPStatusNotAttending:
		return true
	}
	return false
}

// RSVP is a user's declared attendance intent for an event. A user
// has at most one RSVP per event; a new submission replaces it.
type RSVP struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	EventID   int64     `json:"event_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserName  string    `json:"user_name,omitempty"` // joined for display
}
