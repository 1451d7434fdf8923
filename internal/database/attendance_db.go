package database

import "time"

// AddAttendance appends the event to the user's attended set. The
// insert is idempotent: a duplicate confirmation leaves the set
// unchanged and reports newlyAdded = false, which gates whether the
// gamification engine runs.
func AddAttendance(q Querier, userID, eventID int64, attendedAt time.Time) (bool, error) {
	res, err := q.Exec(`
		INSERT OR IGNORE INTO attendance(user_id, event_id, attended_at)
		VALUES(?, ?, ?)
	`, userID, eventID, attendedAt.UTC())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountAttendance counts how many events the user has attended.
func CountAttendance(q Querier, userID int64) (int64, error) {
	var n int64
	err := q.QueryRow("SELECT COUNT(*) FROM attendance WHERE user_id = ?", userID).Scan(&n)
	return n, err
}

// CountDistinctAttendedCategories counts the distinct categories
// across the user's attended events.
func CountDistinctAttendedCategories(q Querier, userID int64) (int64, error) {
	var n int64
	err := q.QueryRow(`
		SELECT COUNT(DISTINCT e.category)
		FROM attendance a
		JOIN events e ON a.event_id = e.id
		WHERE a.user_id = ?
	`, userID).Scan(&n)
	return n, err
}

// GetAttendedEventIDs returns the user's attended events in the order
// they were recorded.
func GetAttendedEventIDs(q Querier, userID int64) ([]int64, error) {
	rows, err := q.Query(
		"SELECT event_id FROM attendance WHERE user_id = ? ORDER BY rowid", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
