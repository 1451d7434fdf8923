package database

import (
	"database/sql"

	"github.com/community-events/app/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// CreateUser hashes the password and inserts a new user into the
// database, together with any declared interests.
func CreateUser(db *sql.DB, user *models.User, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	stmt, err := db.Prepare(`
		INSERT INTO users(name, email, password_hash, city, state, lat, lng, is_admin)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	res, err := stmt.Exec(user.Name, user.Email, string(hashedPassword),
		user.City, user.State, user.Lat, user.Lng, user.IsAdmin)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	for _, interest := range user.Interests {
		if _, err := db.Exec(
			"INSERT OR IGNORE INTO user_interests(user_id, interest) VALUES(?, ?)",
			id, interest); err != nil {
			return nil, err
		}
	}

	// Retrieve the user so DB defaults like created_at are populated.
	return GetUserByID(db, id)
}

// GetUserByEmail retrieves a user by their email address.
func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	return getUser(db, "SELECT id FROM users WHERE email = ?", email)
}

// GetUserByID retrieves a user by their ID, including badges and
// interests.
func GetUserByID(q Querier, id int64) (*models.User, error) {
	return getUser(q, "SELECT id FROM users WHERE id = ?", id)
}

func getUser(q Querier, idQuery string, arg any) (*models.User, error) {
	var id int64
	if err := q.QueryRow(idQuery, arg).Scan(&id); err != nil {
		return nil, err // includes sql.ErrNoRows if not found
	}

	user := &models.User{}
	var lastEventDate sql.NullTime
	row := q.QueryRow(`
		SELECT id, name, email, password_hash, city, state, lat, lng,
		       points, streak_current, streak_longest, last_event_date,
		       is_admin, created_at
		FROM users WHERE id = ?
	`, id)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.City, &user.State, &user.Lat, &user.Lng,
		&user.Points, &user.Streaks.Current, &user.Streaks.Longest, &lastEventDate,
		&user.IsAdmin, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	if lastEventDate.Valid {
		t := lastEventDate.Time
		user.Streaks.LastEventDate = &t
	}

	if user.Badges, err = GetBadgesForUser(q, user.ID); err != nil {
		return nil, err
	}
	if user.Interests, err = getInterests(q, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

func getInterests(q Querier, userID int64) ([]string, error) {
	rows, err := q.Query(
		"SELECT interest FROM user_interests WHERE user_id = ? ORDER BY interest", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interests []string
	for rows.Next() {
		var interest string
		if err := rows.Scan(&interest); err != nil {
			return nil, err
		}
		interests = append(interests, interest)
	}
	return interests, rows.Err()
}

// UpdateUserGamification persists the mutable gamification state of a
// user (points and streaks) in a single statement. Badge rows are
// written separately by InsertBadgeIfAbsent.
func UpdateUserGamification(q Querier, user *models.User) error {
	var lastEventDate any
	if user.Streaks.LastEventDate != nil {
		lastEventDate = user.Streaks.LastEventDate.UTC()
	}
	_, err := q.Exec(`
		UPDATE users
		SET points = ?, streak_current = ?, streak_longest = ?, last_event_date = ?
		WHERE id = ?
	`, user.Points, user.Streaks.Current, user.Streaks.Longest, lastEventDate, user.ID)
	return err
}

// VerifyPassword compares a stored hashed password with a plaintext password.
func VerifyPassword(hashedPassword string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
