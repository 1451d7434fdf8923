// Package gamification owns the user-facing reward state: points,
// badges, and attendance streaks. All point and badge mutations are
// funneled through the Engine so the idempotence rules hold no matter
// which call site triggers an award.
package gamification

// Badge types.
const (
	BadgeFirstEvent      = "first_event"
	BadgeSocialButterfly = "social_butterfly"
	BadgeEventHost       = "event_host"
	BadgeStreakMaster    = "streak_master"
	BadgeCommunityLeader = "community_leader"
	BadgeEarlyBird       = "early_bird"
	BadgeNightOwl        = "night_owl"
	BadgeExplorer        = "explorer"
)

// badgeInfo pairs the fixed point value of a badge with its
// description.
type badgeInfo struct {
	Points      int64
	Description string
}

var catalog = map[string]badgeInfo{
	BadgeFirstEvent:      {10, "Attended your first event!"},
	BadgeSocialButterfly: {50, "Attended 10+ events"},
	BadgeEventHost:       {25, "Hosted your first event"},
	BadgeStreakMaster:    {100, "Maintained a 7-day event streak"},
	BadgeCommunityLeader: {200, "Hosted 5+ successful events"},
	BadgeEarlyBird:       {30, "Attended 5+ morning events"},
	BadgeNightOwl:        {30, "Attended 5+ evening events"},
	BadgeExplorer:        {75, "Attended events in 3+ different categories"},
}

// BadgePoints returns the fixed point value for a badge type.
// Unknown types fall back to 10.
func BadgePoints(badgeType string) int64 {
	if info, ok := catalog[badgeType]; ok {
		return info.Points
	}
	return 10
}

// BadgeDescription returns the catalog description for a badge type.
func BadgeDescription(badgeType string) string {
	if info, ok := catalog[badgeType]; ok {
		return info.Description
	}
	return "Earned a new badge!"
}
