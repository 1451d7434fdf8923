package gamification

import (
	"sync"
	"time"

	"github.com/community-events/app/internal/database"
	"github.com/community-events/app/internal/models"
)

const (
	socialButterflyCount  = 10
	explorerCategoryCount = 3
	communityLeaderCount  = 5
)

// Engine applies gamification rules when an attendance is confirmed.
// Confirmations for the same user are serialized with a per-user
// mutex so two concurrent RSVPs cannot interleave the read-modify-
// write of the user's points and streaks.
type Engine struct {
	mu        sync.Mutex
	userLocks map[int64]*sync.Mutex

	now func() time.Time
}

// NewEngine creates an Engine using the wall clock.
func NewEngine() *Engine {
	return &Engine{
		userLocks: make(map[int64]*sync.Mutex),
		now:       time.Now,
	}
}

func (e *Engine) lockUser(userID int64) func() {
	e.mu.Lock()
	lock, ok := e.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		e.userLocks[userID] = lock
	}
	e.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// RecordAttendance registers a first-time attending confirmation for
// the (user, event) pair and applies streak and badge rules. A
// duplicate confirmation is a no-op: the attendance ledger reports
// whether the pair was newly added, and badge logic only runs when it
// was. All mutations go through q, which callers pass as the RSVP
// transaction so the event and user updates commit together.
func (e *Engine) RecordAttendance(q database.Querier, userID int64, event *models.Event) error {
	unlock := e.lockUser(userID)
	defer unlock()

	newlyAdded, err := database.AddAttendance(q, userID, event.ID, e.now())
	if err != nil {
		return err
	}
	if !newlyAdded {
		return nil
	}

	user, err := database.GetUserByID(q, userID)
	if err != nil {
		return err
	}

	if UpdateStreak(&user.Streaks, event.StartTime) {
		if _, err := e.awardBadge(q, user, BadgeStreakMaster); err != nil {
			return err
		}
	}

	attended, err := database.CountAttendance(q, userID)
	if err != nil {
		return err
	}
	if attended == 1 {
		if _, err := e.awardBadge(q, user, BadgeFirstEvent); err != nil {
			return err
		}
	}
	if attended >= socialButterflyCount {
		if _, err := e.awardBadge(q, user, BadgeSocialButterfly); err != nil {
			return err
		}
	}

	categories, err := database.CountDistinctAttendedCategories(q, userID)
	if err != nil {
		return err
	}
	if categories >= explorerCategoryCount {
		if _, err := e.awardBadge(q, user, BadgeExplorer); err != nil {
			return err
		}
	}

	// Single persist of the mutated user record.
	return database.UpdateUserGamification(q, user)
}

// AwardHostBadge grants event_host on event creation, and
// community_leader once the host reaches five created events. Both
// awards are idempotent, so calling this for every created event
// grants each exactly once.
func (e *Engine) AwardHostBadge(q database.Querier, userID int64) error {
	unlock := e.lockUser(userID)
	defer unlock()

	user, err := database.GetUserByID(q, userID)
	if err != nil {
		return err
	}

	hostAdded, err := e.awardBadge(q, user, BadgeEventHost)
	if err != nil {
		return err
	}

	var leaderAdded bool
	hosted, err := database.CountEventsByHost(q, userID)
	if err != nil {
		return err
	}
	if hosted >= communityLeaderCount {
		if leaderAdded, err = e.awardBadge(q, user, BadgeCommunityLeader); err != nil {
			return err
		}
	}

	if !hostAdded && !leaderAdded {
		return nil
	}
	return database.UpdateUserGamification(q, user)
}

// awardBadge appends a badge and its catalog point value to the user
// unless they already hold that badge type. The in-memory user record
// is updated alongside the badge row; the caller persists points once
// at the end of the flow.
func (e *Engine) awardBadge(q database.Querier, user *models.User, badgeType string) (bool, error) {
	earnedAt := e.now()
	added, err := database.InsertBadgeIfAbsent(q, user.ID, badgeType, BadgeDescription(badgeType), earnedAt)
	if err != nil || !added {
		return false, err
	}
	user.Points += BadgePoints(badgeType)
	user.Badges = append(user.Badges, models.Badge{
		Type:        badgeType,
		Description: BadgeDescription(badgeType),
		EarnedAt:    earnedAt,
	})
	return true, nil
}
