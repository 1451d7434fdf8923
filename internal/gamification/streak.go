package gamification

import (
	"time"

	"github.com/community-events/app/internal/models"
)

// UpdateStreak advances the consecutive-day streak given the date of
// a newly attended event. A one-day gap extends the streak, a longer
// gap resets it to one, and a second event on the same day leaves the
// current streak untouched. Longest is kept at the running maximum.
// Returns whether the current streak qualifies for streak_master.
func UpdateStreak(streaks *models.Streaks, eventDate time.Time) bool {
	if streaks.LastEventDate == nil {
		streaks.Current = 1
	} else {
		daysDiff := int64(eventDate.Sub(*streaks.LastEventDate) / (24 * time.Hour))
		if daysDiff == 1 {
			streaks.Current++
		} else if daysDiff > 1 {
			streaks.Current = 1
		}
	}

	d := eventDate
	streaks.LastEventDate = &d
	if streaks.Current > streaks.Longest {
		streaks.Longest = streaks.Current
	}

	return streaks.Current >= streakMasterDays
}

// streakMasterDays is the streak length that earns streak_master.
const streakMasterDays = 7
