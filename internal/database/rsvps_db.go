package database

import (
	"github.com/community-events/app/internal/models"
)

// UpsertRSVP inserts a new RSVP or replaces the user's existing entry
// for the event. It uses SQLite's "ON CONFLICT" clause to handle the
// upsert, so a user never holds more than one RSVP per event.
func UpsertRSVP(q Querier, rsvp *models.RSVP) error {
	_, err := q.Exec(`
		INSERT INTO rsvps (user_id, event_id, status, created_at, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id, event_id) DO UPDATE SET
			status = excluded.status,
			updated_at = CURRENT_TIMESTAMP
	`, rsvp.UserID, rsvp.EventID, rsvp.Status)
	return err
}

// DeleteRSVP removes the user's RSVP entry for the event if present.
// Deleting an absent entry is not an error.
func DeleteRSVP(q Querier, userID, eventID int64) error {
	_, err := q.Exec("DELETE FROM rsvps WHERE user_id = ? AND event_id = ?", userID, eventID)
	return err
}

// GetRSVPsForEvent retrieves all RSVPs for an event, including the
// user's display name, most recently updated first.
func GetRSVPsForEvent(q Querier, eventID int64) ([]*models.RSVP, error) {
	rows, err := q.Query(`
		SELECT r.id, r.user_id, r.event_id, r.status, r.created_at, r.updated_at, u.name
		FROM rsvps r
		JOIN users u ON r.user_id = u.id
		WHERE r.event_id = ?
		ORDER BY r.updated_at DESC, r.id DESC
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rsvps []*models.RSVP
	for rows.Next() {
		rsvp := &models.RSVP{}
		err := rows.Scan(&rsvp.ID, &rsvp.UserID, &rsvp.EventID, &rsvp.Status,
			&rsvp.CreatedAt, &rsvp.UpdatedAt, &rsvp.UserName)
		if err != nil {
			return nil, err
		}
		rsvps = append(rsvps, rsvp)
	}
	return rsvps, rows.Err()
}

// GetRSVPByUserForEvent retrieves a specific user's RSVP for an event.
func GetRSVPByUserForEvent(q Querier, userID, eventID int64) (*models.RSVP, error) {
	rsvp := &models.RSVP{}
	row := q.QueryRow(`
		SELECT id, user_id, event_id, status, created_at, updated_at
		FROM rsvps WHERE user_id = ? AND event_id = ?
	`, userID, eventID)
	err := row.Scan(&rsvp.ID, &rsvp.UserID, &rsvp.EventID, &rsvp.Status,
		&rsvp.CreatedAt, &rsvp.UpdatedAt)
	if err != nil {
		return nil, err // includes sql.ErrNoRows if not found
	}
	return rsvp, nil
}

// CountAttending counts attending RSVPs for an event, excluding the
// given user's own entry. The capacity gate excludes the requester so
// re-submitting an attending RSVP never trips the cap.
func CountAttending(q Querier, eventID, excludeUserID int64) (int64, error) {
	var n int64
	err := q.QueryRow(`
		SELECT COUNT(*) FROM rsvps
		WHERE event_id = ? AND status = ? AND user_id != ?
	`, eventID, models.RSVPStatusAttending, excludeUserID).Scan(&n)
	return n, err
}
