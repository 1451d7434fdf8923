package database

import (
	"database/sql"
	"time"

	"github.com/community-events/app/internal/models"
)

const eventColumns = `
	id, host_id, title, description, location_name, address, city, state,
	lat, lng, start_time, end_time, category, max_attendees, price, status,
	views, rating_average, rating_count, created_at
`

// CreateEvent inserts a new event. The caller is responsible for
// validation; the row is written with whatever status the event
// carries (the lifecycle layer always passes pending).
func CreateEvent(db *sql.DB, event *models.Event) (*models.Event, error) {
	stmt, err := db.Prepare(`
		INSERT INTO events(host_id, title, description, location_name, address,
			city, state, lat, lng, start_time, end_time, category,
			max_attendees, price, status)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var maxAttendees any
	if event.MaxAttendees != nil {
		maxAttendees = *event.MaxAttendees
	}
	res, err := stmt.Exec(event.HostID, event.Title, event.Description,
		event.Location.Name, event.Location.Address, event.Location.City,
		event.Location.State, event.Location.Lat, event.Location.Lng,
		event.StartTime.UTC(), event.EndTime.UTC(), event.Category,
		maxAttendees, event.Price, event.Status)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return GetEventByID(db, id)
}

// GetEventByID retrieves an event by its ID, including its RSVP list.
func GetEventByID(q Querier, id int64) (*models.Event, error) {
	row := q.QueryRow("SELECT "+eventColumns+" FROM events WHERE id = ?", id)
	event, err := scanEvent(row)
	if err != nil {
		return nil, err // includes sql.ErrNoRows if not found
	}
	if event.RSVPs, err = GetRSVPsForEvent(q, id); err != nil {
		return nil, err
	}
	return event, nil
}

// IncrementEventViews bumps the monotonic view counter.
func IncrementEventViews(q Querier, id int64) error {
	_, err := q.Exec("UPDATE events SET views = views + 1 WHERE id = ?", id)
	return err
}

// UpdateEventStatus rewrites the stored status of an event.
func UpdateEventStatus(q Querier, id int64, status string) error {
	res, err := q.Exec("UPDATE events SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountEventsByHost counts how many events a user has created.
func CountEventsByHost(q Querier, hostID int64) (int64, error) {
	var n int64
	err := q.QueryRow("SELECT COUNT(*) FROM events WHERE host_id = ?", hostID).Scan(&n)
	return n, err
}

// EventFilter narrows ListEvents results. Zero values mean "no
// constraint"; Date selects a single calendar day.
type EventFilter struct {
	Category string
	City     string
	State    string
	Date     *time.Time
	Sort     string // "date" (default), "popularity", "rating"
	Limit    int
	Now      time.Time
}

// ListEvents returns approved events matching the filter. Without a
// date constraint only upcoming events are returned, soonest first.
func ListEvents(db *sql.DB, filter EventFilter) ([]*models.Event, error) {
	query := "SELECT " + eventColumns + " FROM events WHERE status = ?"
	args := []any{models.StatusApproved}

	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	if filter.City != "" {
		query += " AND city LIKE ?"
		args = append(args, filter.City)
	}
	if filter.State != "" {
		query += " AND state LIKE ?"
		args = append(args, filter.State)
	}
	if filter.Date != nil {
		dayStart := filter.Date.UTC().Truncate(24 * time.Hour)
		query += " AND start_time >= ? AND start_time < ?"
		args = append(args, dayStart, dayStart.Add(24*time.Hour))
	} else {
		query += " AND start_time >= ?"
		args = append(args, filter.Now.UTC())
	}

	switch filter.Sort {
	case "popularity":
		query += ` ORDER BY rating_average DESC,
			(SELECT COUNT(*) FROM rsvps r WHERE r.event_id = events.id AND r.status = 'attending') DESC`
	case "rating":
		query += " ORDER BY rating_average DESC, rating_count DESC"
	default:
		query += " ORDER BY start_time ASC"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	query += " LIMIT ?"
	args = append(args, limit)

	return queryEvents(db, query, args...)
}

// TrendingEvents returns upcoming approved events ranked by rating,
// attending count, then views.
func TrendingEvents(db *sql.DB, limit int, now time.Time) ([]*models.Event, error) {
	if limit <= 0 {
		limit = 10
	}
	return queryEvents(db, `
		SELECT `+eventColumns+` FROM events
		WHERE status = ? AND start_time >= ?
		ORDER BY rating_average DESC,
			(SELECT COUNT(*) FROM rsvps r WHERE r.event_id = events.id AND r.status = 'attending') DESC,
			views DESC
		LIMIT ?
	`, models.StatusApproved, now.UTC(), limit)
}

// PendingEvents returns events awaiting admin review, newest first.
func PendingEvents(db *sql.DB) ([]*models.Event, error) {
	return queryEvents(db, `
		SELECT `+eventColumns+` FROM events
		WHERE status = ? ORDER BY created_at DESC
	`, models.StatusPending)
}

// EventsByHost returns a user's created events, newest first.
func EventsByHost(db *sql.DB, hostID int64) ([]*models.Event, error) {
	return queryEvents(db, `
		SELECT `+eventColumns+` FROM events
		WHERE host_id = ? ORDER BY created_at DESC
	`, hostID)
}

func queryEvents(db *sql.DB, query string, args ...any) ([]*models.Event, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*models.Event, error) {
	event := &models.Event{}
	var maxAttendees sql.NullInt64
	err := row.Scan(&event.ID, &event.HostID, &event.Title, &event.Description,
		&event.Location.Name, &event.Location.Address, &event.Location.City,
		&event.Location.State, &event.Location.Lat, &event.Location.Lng,
		&event.StartTime, &event.EndTime, &event.Category, &maxAttendees,
		&event.Price, &event.Status, &event.Views, &event.Rating.Average,
		&event.Rating.Count, &event.CreatedAt)
	if err != nil {
		return nil, err
	}
	if maxAttendees.Valid {
		n := maxAttendees.Int64
		event.MaxAttendees = &n
	}
	return event, nil
}
