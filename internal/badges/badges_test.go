package badges

import (
	"encoding/json"
	"testing"

	"github.com/2beens/ironai/internal/fitness"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func session(id string, sets int, volume float64) fitness.SessionRecord {
	return fitness.SessionRecord{
		ID:   id,
		Date: "2024-03-05",
		ExercisesCompleted: []fitness.CompletedExercise{
			{Name: "Squat", SetsCompleted: sets, WeightUsed: 1, RepsCompleted: 1},
		},
		TotalVolume: volume,
	}
}

func TestUnlockedIDs_Empty(t *testing.T) {
	ids := UnlockedIDs(nil)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}

func TestUnlockedIDs_SessionCount(t *testing.T) {
	history := []fitness.SessionRecord{session("1", 1, 0)}
	assert.Equal(t, []string{IDFirstStep}, UnlockedIDs(history))

	history = append(history, session("2", 1, 0))
	assert.Equal(t, []string{IDFirstStep}, UnlockedIDs(history))

	history = append(history, session("3", 1, 0))
	assert.Equal(t, []string{IDFirstStep, IDStreak3}, UnlockedIDs(history))
}

func TestUnlockedIDs_Club100(t *testing.T) {
	history := []fitness.SessionRecord{session("1", 50, 0), session("2", 49, 0)}
	assert.NotContains(t, UnlockedIDs(history), IDClub100)

	history = []fitness.SessionRecord{session("1", 50, 0), session("2", 50, 0)}
	assert.Contains(t, UnlockedIDs(history), IDClub100)
}

func TestUnlockedIDs_HeavyLifter(t *testing.T) {
	history := []fitness.SessionRecord{session("1", 1, 5000), session("2", 1, 4999)}
	assert.NotContains(t, UnlockedIDs(history), IDHeavyLifter)

	history = []fitness.SessionRecord{session("1", 1, 5000), session("2", 1, 5000)}
	assert.Contains(t, UnlockedIDs(history), IDHeavyLifter)
}

func TestUnlockedIDs_CatalogOrderAndPurity(t *testing.T) {
	history := []fitness.SessionRecord{
		session("1", 40, 4000),
		session("2", 40, 4000),
		session("3", 40, 4000),
	}

	first := UnlockedIDs(history)
	second := UnlockedIDs(history)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{IDFirstStep, IDStreak3, IDClub100, IDHeavyLifter}, first)
}

func TestEvaluate(t *testing.T) {
	statuses := Evaluate([]fitness.SessionRecord{session("1", 3, 300)})
	require.Len(t, statuses, 4)

	assert.Equal(t, IDFirstStep, statuses[0].ID)
	assert.True(t, statuses[0].Unlocked)
	for _, s := range statuses[1:] {
		assert.False(t, s.Unlocked, s.ID)
	}

	statusJson, err := json.Marshal(statuses[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"first_step","name":"First Step","description":"Complete your first workout","icon":"🦶","unlocked":true}`, string(statusJson))
}

func TestCatalog(t *testing.T) {
	c := Catalog()
	require.Len(t, c, 4)
	c[0].Name = "changed"
	assert.Equal(t, "First Step", Catalog()[0].Name)
}
