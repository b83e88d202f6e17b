package fitness

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHistory(n int) []SessionRecord {
	history := make([]SessionRecord, 0, n)
	for i := 1; i <= n; i++ {
		history = append(history, SessionRecord{
			ID:          fmt.Sprintf("s%d", i),
			Date:        fmt.Sprintf("2024-03-%02d", i),
			TotalVolume: float64(i * 100),
			ExercisesCompleted: []CompletedExercise{
				{Name: "Squat", SetsCompleted: 3, WeightUsed: 10, RepsCompleted: 10},
			},
		})
	}
	return history
}

func TestVolumeSeries(t *testing.T) {
	points := VolumeSeries(testHistory(10), 0)
	require.Len(t, points, DefaultSeriesLength)
	assert.Equal(t, "2024-03-04", points[0].Date)
	assert.Equal(t, 400.0, points[0].Volume)
	assert.Equal(t, "2024-03-10", points[6].Date)
	assert.Equal(t, 1, points[6].Exercises)

	points = VolumeSeries(testHistory(3), 7)
	require.Len(t, points, 3)
	assert.Equal(t, "2024-03-01", points[0].Date)

	points = VolumeSeries(nil, 7)
	assert.NotNil(t, points)
	assert.Empty(t, points)
}

func TestHistoryTotals(t *testing.T) {
	totals := HistoryTotals(testHistory(4))
	assert.Equal(t, 4, totals.Sessions)
	assert.Equal(t, 12, totals.Sets)
	assert.Equal(t, 1000.0, totals.Volume)
}
