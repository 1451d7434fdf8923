// Package seed populates a development database with sample users
// and events.
package seed

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/community-events/app/internal/database"
	"github.com/community-events/app/internal/gamification"
	"github.com/community-events/app/internal/models"
)

func ptr[T any](v T) *T { return &v }

// Run wipes the database and inserts the sample data set. All sample
// accounts use the password "password123".
func Run(db *sql.DB, logger *slog.Logger) error {
	for _, table := range []string{"attendance", "rsvps", "badges", "user_interests", "events", "users"} {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	users := []struct {
		user    models.User
		points  int64
		badges  []string
		current int64
		longest int64
	}{
		{
			user: models.User{Name: "John Doe", Email: "john@example.com",
				City: "San Francisco", State: "CA",
				Interests: []string{"technology", "networking"}, IsAdmin: true},
		},
		{
			user: models.User{Name: "Jane Smith", Email: "jane@example.com",
				City: "San Francisco", State: "CA",
				Interests: []string{"art", "music"}},
			points:  150,
			badges:  []string{gamification.BadgeFirstEvent, gamification.BadgeSocialButterfly},
			current: 3, longest: 7,
		},
		{
			user: models.User{Name: "Mike Johnson", Email: "mike@example.com",
				City: "San Francisco", State: "CA",
				Interests: []string{"sports", "fitness"}},
			points:  75,
			badges:  []string{gamification.BadgeFirstEvent},
			current: 1, longest: 2,
		},
	}

	var created []*models.User
	for _, sample := range users {
		user, err := database.CreateUser(db, &sample.user, "password123")
		if err != nil {
			return fmt.Errorf("create user %s: %w", sample.user.Email, err)
		}
		user.Points = sample.points
		user.Streaks.Current = sample.current
		user.Streaks.Longest = sample.longest
		if err := database.UpdateUserGamification(db, user); err != nil {
			return err
		}
		for _, badgeType := range sample.badges {
			if _, err := database.InsertBadgeIfAbsent(db, user.ID, badgeType,
				gamification.BadgeDescription(badgeType), time.Now()); err != nil {
				return err
			}
		}
		created = append(created, user)
		logger.Info("seeded user", "email", user.Email, "admin", user.IsAdmin)
	}

	now := time.Now()
	samples := []*models.Event{
		{
			HostID: created[0].ID,
			Title:  "Tech Meetup: AI & Machine Learning",
			Description: "Join us for an exciting discussion about the latest trends in AI " +
				"and machine learning, with industry experts and networking opportunities.",
			Location: models.Location{Name: "Tech Hub SF", Address: "123 Market St",
				City: "San Francisco", State: "CA"},
			StartTime: now.Add(7 * 24 * time.Hour),
			EndTime:   now.Add(7*24*time.Hour + 2*time.Hour),
			Category:  "technology", MaxAttendees: ptr(int64(50)),
			Status: models.StatusApproved,
		},
		{
			HostID: created[1].ID,
			Title:  "Art Gallery Opening: Modern Expressions",
			Description: "Experience contemporary art from local artists. Wine and light " +
				"refreshments will be served.",
			Location: models.Location{Name: "Modern Art Gallery", Address: "456 Mission St",
				City: "San Francisco", State: "CA"},
			StartTime: now.Add(3 * 24 * time.Hour),
			EndTime:   now.Add(3*24*time.Hour + 3*time.Hour),
			Category:  "art", MaxAttendees: ptr(int64(30)), Price: 15,
			Status: models.StatusApproved,
		},
		{
			HostID: created[2].ID,
			Title:  "Morning Yoga in the Park",
			Description: "Start your day with a peaceful yoga session in Golden Gate Park. " +
				"All levels welcome.",
			Location: models.Location{Name: "Golden Gate Park", Address: "Golden Gate Park",
				City: "San Francisco", State: "CA"},
			StartTime: now.Add(24 * time.Hour),
			EndTime:   now.Add(24*time.Hour + time.Hour),
			Category:  "fitness", MaxAttendees: ptr(int64(25)),
			Status: models.StatusApproved,
		},
		{
			HostID: created[0].ID,
			Title:  "Startup Networking Event",
			Description: "Connect with fellow entrepreneurs, investors, and startup " +
				"enthusiasts. Pitch your ideas and find collaborators.",
			Location: models.Location{Name: "Startup Space", Address: "789 Sutter St",
				City: "San Francisco", State: "CA"},
			StartTime: now.Add(5 * 24 * time.Hour),
			EndTime:   now.Add(5*24*time.Hour + 2*time.Hour),
			Category:  "networking", MaxAttendees: ptr(int64(40)), Price: 10,
			Status: models.StatusPending,
		},
	}

	for _, event := range samples {
		saved, err := database.CreateEvent(db, event)
		if err != nil {
			return fmt.Errorf("create event %q: %w", event.Title, err)
		}
		logger.Info("seeded event", "title", saved.Title, "status", saved.Status)
	}

	return nil
}
