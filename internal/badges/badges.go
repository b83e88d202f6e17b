package badges

import (
	"github.com/2beens/ironai/internal/fitness"
)

const (
	IDFirstStep   = "first_step"
	IDStreak3     = "streak_3"
	IDClub100     = "club_100"
	IDHeavyLifter = "heavy_lifter"
)

type Predicate func(history []fitness.SessionRecord) bool

type Badge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	condition   Predicate
}

type Status struct {
	Badge
	Unlocked bool `json:"unlocked"`
}

// catalog order is the order of every evaluation result
var catalog = []Badge{
	{
		ID:          IDFirstStep,
		Name:        "First Step",
		Description: "Complete your first workout",
		Icon:        "🦶",
		condition: func(h []fitness.SessionRecord) bool {
			return len(h) >= 1
		},
	},
	{
		ID:          IDStreak3,
		Name:        "On Fire",
		Description: "Reach a 3-day streak",
		Icon:        "🔥",
		// NOTE: counts logged sessions, not consecutive days. The profile streak counter
		// is not consulted, so 3 sessions on one day also unlock it.
		condition: func(h []fitness.SessionRecord) bool {
			return len(h) >= 3
		},
	},
	{
		ID:          IDClub100,
		Name:        "Club 100",
		Description: "Complete 100 total sets",
		Icon:        "💯",
		condition: func(h []fitness.SessionRecord) bool {
			return fitness.HistoryTotals(h).Sets >= 100
		},
	},
	{
		ID:          IDHeavyLifter,
		Name:        "Heavy Lifter",
		Description: "Lift a total volume of 10,000 lbs/kg",
		Icon:        "🏋️‍♂️",
		condition: func(h []fitness.SessionRecord) bool {
			return fitness.HistoryTotals(h).Volume >= 10000
		},
	},
}

// Catalog returns the badge definitions in declaration order.
func Catalog() []Badge {
	badges := make([]Badge, len(catalog))
	copy(badges, catalog)
	return badges
}

// UnlockedIDs evaluates every badge against the history. Nothing is cached or stored.
func UnlockedIDs(history []fitness.SessionRecord) []string {
	ids := make([]string, 0, len(catalog))
	for _, b := range catalog {
		if b.condition(history) {
			ids = append(ids, b.ID)
		}
	}
	return ids
}

func Evaluate(history []fitness.SessionRecord) []Status {
	statuses := make([]Status, 0, len(catalog))
	for _, b := range catalog {
		statuses = append(statuses, Status{
			Badge:    b,
			Unlocked: b.condition(history),
		})
	}
	return statuses
}
