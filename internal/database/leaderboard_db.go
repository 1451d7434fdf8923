package database

import (
	"database/sql"

	"github.com/community-events/app/internal/models"
)

// Leaderboard queries are pure read-side aggregations; they take no
// locks and may lag an in-flight RSVP transaction.

const leaderboardColumns = `
	u.id, u.name, u.city, u.state, u.points,
	u.streak_current, u.streak_longest,
	(SELECT COUNT(*) FROM badges b WHERE b.user_id = u.id) AS badge_count
`

// TopAttendees ranks users who have attended at least one event by
// points, attended count, then longest streak.
func TopAttendees(db *sql.DB, limit int) ([]*models.LeaderboardEntry, error) {
	return queryLeaderboard(db, `
		SELECT `+leaderboardColumns+`,
			(SELECT COUNT(*) FROM attendance a WHERE a.user_id = u.id) AS attended_count
		FROM users u
		WHERE EXISTS (SELECT 1 FROM attendance a WHERE a.user_id = u.id)
		ORDER BY u.points DESC, attended_count DESC, u.streak_longest DESC
		LIMIT ?
	`, func(rows *sql.Rows, e *models.LeaderboardEntry) error {
		return rows.Scan(&e.UserID, &e.Name, &e.City, &e.State, &e.Points,
			&e.Streaks.Current, &e.Streaks.Longest, &e.BadgeCount, &e.AttendedCount)
	}, limit)
}

// TopHosts ranks users who have created at least one event by points,
// total RSVPs across their events (any status), then average rating.
func TopHosts(db *sql.DB, limit int) ([]*models.LeaderboardEntry, error) {
	return queryLeaderboard(db, `
		SELECT `+leaderboardColumns+`,
			(SELECT COUNT(*) FROM events e WHERE e.host_id = u.id) AS hosted_count,
			(SELECT COUNT(*) FROM rsvps r JOIN events e ON r.event_id = e.id
				WHERE e.host_id = u.id) AS total_rsvps,
			COALESCE((SELECT AVG(e.rating_average) FROM events e
				WHERE e.host_id = u.id), 0) AS avg_rating
		FROM users u
		WHERE EXISTS (SELECT 1 FROM events e WHERE e.host_id = u.id)
		ORDER BY u.points DESC, total_rsvps DESC, avg_rating DESC
		LIMIT ?
	`, func(rows *sql.Rows, e *models.LeaderboardEntry) error {
		return rows.Scan(&e.UserID, &e.Name, &e.City, &e.State, &e.Points,
			&e.Streaks.Current, &e.Streaks.Longest, &e.BadgeCount,
			&e.HostedCount, &e.TotalRSVPs, &e.AvgRating)
	}, limit)
}

// TopStreaks ranks users with a recorded streak by longest streak,
// current streak, then points.
func TopStreaks(db *sql.DB, limit int) ([]*models.LeaderboardEntry, error) {
	return queryLeaderboard(db, `
		SELECT `+leaderboardColumns+`
		FROM users u
		WHERE u.streak_longest > 0
		ORDER BY u.streak_longest DESC, u.streak_current DESC, u.points DESC
		LIMIT ?
	`, func(rows *sql.Rows, e *models.LeaderboardEntry) error {
		return rows.Scan(&e.UserID, &e.Name, &e.City, &e.State, &e.Points,
			&e.Streaks.Current, &e.Streaks.Longest, &e.BadgeCount)
	}, limit)
}

// TopBadgeHolders ranks users holding at least one badge by badge
// count, then points.
func TopBadgeHolders(db *sql.DB, limit int) ([]*models.LeaderboardEntry, error) {
	return queryLeaderboard(db, `
		SELECT `+leaderboardColumns+`
		FROM users u
		WHERE EXISTS (SELECT 1 FROM badges b WHERE b.user_id = u.id)
		ORDER BY badge_count DESC, u.points DESC
		LIMIT ?
	`, func(rows *sql.Rows, e *models.LeaderboardEntry) error {
		return rows.Scan(&e.UserID, &e.Name, &e.City, &e.State, &e.Points,
			&e.Streaks.Current, &e.Streaks.Longest, &e.BadgeCount)
	}, limit)
}

func queryLeaderboard(db *sql.DB, query string,
	scan func(*sql.Rows, *models.LeaderboardEntry) error, limit int) ([]*models.LeaderboardEntry, error) {
	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.LeaderboardEntry
	for rows.Next() {
		entry := &models.LeaderboardEntry{}
		if err := scan(rows, entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// GetUserRanking computes a user's 1-based rank in each ordering by
// counting how many users strictly exceed the metric.
func GetUserRanking(db *sql.DB, userID int64) (*models.UserRanking, error) {
	ranking := &models.UserRanking{UserID: userID}

	err := db.QueryRow(`
		SELECT u.name, u.points, u.streak_longest,
			(SELECT COUNT(*) FROM attendance a WHERE a.user_id = u.id),
			(SELECT COUNT(*) FROM events e WHERE e.host_id = u.id),
			(SELECT COUNT(*) FROM badges b WHERE b.user_id = u.id)
		FROM users u WHERE u.id = ?
	`, userID).Scan(&ranking.Name, &ranking.Metrics.Points,
		&ranking.Metrics.LongestStreak, &ranking.Metrics.AttendedCount,
		&ranking.Metrics.HostedCount, &ranking.Metrics.BadgeCount)
	if err != nil {
		return nil, err // includes sql.ErrNoRows if not found
	}

	rankQueries := []struct {
		query string
		arg   int64
		dest  *int64
	}{
		{"SELECT COUNT(*) FROM users WHERE points > ?",
			ranking.Metrics.Points, &ranking.Ranks.Points},
		{`SELECT COUNT(*) FROM (SELECT user_id FROM attendance
			GROUP BY user_id HAVING COUNT(*) > ?)`,
			ranking.Metrics.AttendedCount, &ranking.Ranks.Attended},
		{`SELECT COUNT(*) FROM (SELECT host_id FROM events
			GROUP BY host_id HAVING COUNT(*) > ?)`,
			ranking.Metrics.HostedCount, &ranking.Ranks.Hosted},
		{"SELECT COUNT(*) FROM users WHERE streak_longest > ?",
			ranking.Metrics.LongestStreak, &ranking.Ranks.Streak},
		{`SELECT COUNT(*) FROM (SELECT user_id FROM badges
			GROUP BY user_id HAVING COUNT(*) > ?)`,
			ranking.Metrics.BadgeCount, &ranking.Ranks.Badges},
	}
	for _, rq := range rankQueries {
		var ahead int64
		if err := db.QueryRow(rq.query, rq.arg).Scan(&ahead); err != nil {
			return nil, err
		}
		*rq.dest = ahead + 1
	}

	return ranking, nil
}
