package models

import "time"

// User represents a user in the system, including the gamification
// state (points, badges, streaks) owned by the gamification engine.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	City         string    `json:"city,omitempty"`
	State        string    `json:"state,omitempty"`
	Lat          *float64  `json:"lat,omitempty"`
	Lng          *float64  `json:"lng,omitempty"`
	Points       int64     `json:"points"`
	Streaks      Streaks   `json:"streaks"`
	Badges       []Badge   `json:"badges,omitempty"`
	Interests    []string  `json:"interests,omitempty"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// Streaks tracks consecutive-day event attendance.
// Longest never drops below Current.
type Streaks struct {
	Current       int64      `json:"current"`
	Longest       int64      `json:"longest"`
	LastEventDate *time.Time `json:"last_event_date,omitempty"`
}

// Badge is a one-time-per-type achievement marker. A user holds at
// most one badge of a given type, ever.
type Badge struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	EarnedAt    time.Time `json:"earned_at"`
}
