// Package leaderboard provides read-only ranked views over the user
// population. Queries take no locks; a read may trail an in-flight
// RSVP transaction, which is acceptable for these views.
package leaderboard

import (
	"database/sql"
	"errors"

	"github.com/community-events/app/internal/apperr"
	"github.com/community-events/app/internal/database"
	"github.com/community-events/app/internal/models"
)

// Leaderboard kinds.
const (
	KindAttendees = "attendees"
	KindHosts     = "hosts"
	KindStreaks   = "streaks"
	KindBadges    = "badges"
)

// DefaultLimit is the number of entries returned when the caller does
// not ask for a specific count.
const DefaultLimit = 10

// Aggregator serves the ranked views.
type Aggregator struct {
	db *sql.DB
}

// NewAggregator creates an Aggregator over the given database.
func NewAggregator(db *sql.DB) *Aggregator {
	return &Aggregator{db: db}
}

// Top returns the top-N users for the given leaderboard kind.
func (a *Aggregator) Top(kind string, limit int) ([]*models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	switch kind {
	case KindAttendees:
		return database.TopAttendees(a.db, limit)
	case KindHosts:
		return database.TopHosts(a.db, limit)
	case KindStreaks:
		return database.TopStreaks(a.db, limit)
	case KindBadges:
		return database.TopBadgeHolders(a.db, limit)
	default:
		return nil, apperr.Newf(apperr.CodeNotFound, "unknown leaderboard %q", kind)
	}
}

// UserRanking computes the user's 1-based rank across all five
// orderings: points, attended count, hosted count, streak length, and
// badge count.
func (a *Aggregator) UserRanking(userID int64) (*models.UserRanking, error) {
	ranking, err := database.GetUserRanking(a.db, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.CodeNotFound, "user not found")
		}
		return nil, err
	}
	return ranking, nil
}
