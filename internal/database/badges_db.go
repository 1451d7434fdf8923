package database

import (
	"time"

	"github.com/community-events/app/internal/models"
)

// InsertBadgeIfAbsent records a badge for the user unless they
// already hold one of that type. Returns whether a new row was
// written; the UNIQUE(user_id, type) constraint backs the in-code
// idempotence check.
func InsertBadgeIfAbsent(q Querier, userID int64, badgeType, description string, earnedAt time.Time) (bool, error) {
	res, err := q.Exec(`
		INSERT OR IGNORE INTO badges(user_id, type, description, earned_at)
		VALUES(?, ?, ?, ?)
	`, userID, badgeType, description, earnedAt.UTC())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetBadgesForUser retrieves a user's badges in the order they were
// earned.
func GetBadgesForUser(q Querier, userID int64) ([]models.Badge, error) {
	rows, err := q.Query(`
		SELECT type, description, earned_at
		FROM badges WHERE user_id = ? ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var badges []models.Badge
	for rows.Next() {
		var b models.Badge
		if err := rows.Scan(&b.Type, &b.Description, &b.EarnedAt); err != nil {
			return nil, err
		}
		badges = append(badges, b)
	}
	return badges, rows.Err()
}
