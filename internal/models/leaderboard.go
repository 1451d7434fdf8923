package models

// LeaderboardEntry is a read-side projection of a user for ranked
// views. Metric fields are populated per view.
type LeaderboardEntry struct {
	UserID        int64   `json:"user_id"`
	Name          string  `json:"name"`
	City          string  `json:"city,omitempty"`
	State         string  `json:"state,omitempty"`
	Points        int64   `json:"points"`
	Streaks       Streaks `json:"streaks"`
	BadgeCount    int64   `json:"badge_count"`
	AttendedCount int64   `json:"attended_count,omitempty"`
	HostedCount   int64   `json:"hosted_count,omitempty"`
	TotalRSVPs    int64   `json:"total_rsvps,omitempty"`
	AvgRating     float64 `json:"avg_rating,omitempty"`
}

// RankingMetrics are the raw values a user is ranked on.
type RankingMetrics struct {
	Points        int64 `json:"points"`
	AttendedCount int64 `json:"attended_count"`
	HostedCount   int64 `json:"hosted_count"`
	LongestStreak int64 `json:"longest_streak"`
	BadgeCount    int64 `json:"badge_count"`
}

// Ranks are 1-based positions in each ordering: the number of users
// strictly exceeding the metric, plus one.
type Ranks struct {
	Points   int64 `json:"points"`
	Attended int64 `json:"attended"`
	Hosted   int64 `json:"hosted"`
	Streak   int64 `json:"streak"`
	Badges   int64 `json:"badges"`
}

// UserRanking bundles a user's metrics with their ranks.
type UserRanking struct {
	UserID  int64          `json:"user_id"`
	Name    string         `json:"name"`
	Metrics RankingMetrics `json:"metrics"`
	Ranks   Ranks          `json:"ranks"`
}
