package progression

import (
	"fmt"
	"strings"
	"time"

	"github.com/2beens/ironai/internal/fitness"
)

const XPPerSession = 100

// SameDayPolicy decides what a second session on the same calendar day does to the streak.
type SameDayPolicy string

const (
	SameDayKeep      SameDayPolicy = "keep"
	SameDayIncrement SameDayPolicy = "increment"
	SameDayReset     SameDayPolicy = "reset"
)

func (p SameDayPolicy) IsValid() bool {
	switch p {
	case SameDayKeep, SameDayIncrement, SameDayReset:
		return true
	default:
		return false
	}
}

// ParseSameDayPolicy maps an empty value to SameDayKeep.
func ParseSameDayPolicy(s string) (SameDayPolicy, error) {
	if s == "" {
		return SameDayKeep, nil
	}
	p := SameDayPolicy(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("unknown same day streak policy: %s", s)
	}
	return p, nil
}

type Updater struct {
	SameDay SameDayPolicy
	// Location defines calendar days, UTC when nil.
	Location *time.Location
}

func NewUpdater(sameDay SameDayPolicy, location *time.Location) *Updater {
	if location == nil {
		location = time.UTC
	}
	if !sameDay.IsValid() {
		sameDay = SameDayKeep
	}
	return &Updater{
		SameDay:  sameDay,
		Location: location,
	}
}

// Today returns the calendar date of t, formatted as fitness.DateLayout.
func (u *Updater) Today(t time.Time) string {
	return t.In(u.location()).Format(fitness.DateLayout)
}

// Apply returns the profile after one finished session completed at completedAt.
// The input profile is not modified.
func (u *Updater) Apply(profile fitness.UserProfile, completedAt time.Time) fitness.UserProfile {
	updated := *profile.Clone()

	today := u.Today(completedAt)
	todayDate, _ := time.Parse(fitness.DateLayout, today)

	lastDate, hasLast := updated.LastWorkout()
	switch {
	case !hasLast:
		updated.Streak = 1
	default:
		switch diff := daysBetween(lastDate, todayDate); {
		case diff == 1:
			updated.Streak++
		case diff > 1:
			updated.Streak = 1
		default:
			updated.Streak = u.sameDayStreak(updated.Streak)
		}
	}

	updated.XP += XPPerSession
	updated.LevelNumber = fitness.LevelForXP(updated.XP)
	updated.LastWorkoutDate = today

	return updated
}

func (u *Updater) sameDayStreak(streak int) int {
	switch u.SameDay {
	case SameDayIncrement:
		return streak + 1
	case SameDayReset:
		return 1
	default:
		return streak
	}
}

func (u *Updater) location() *time.Location {
	if u.Location == nil {
		return time.UTC
	}
	return u.Location
}

// daysBetween returns the absolute number of whole calendar days between two dates.
// Both dates are parsed in UTC, so DST shifts do not affect the result.
func daysBetween(a, b time.Time) int {
	diff := b.Sub(a)
	if diff < 0 {
		diff = -diff
	}
	return int(diff.Hours() / 24)
}
