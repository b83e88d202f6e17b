package fitness

type CompletedExercise struct {
	Name          string  `json:"name"`
	SetsCompleted int     `json:"setsCompleted"`
	WeightUsed    float64 `json:"weightUsed"`
	RepsCompleted int     `json:"repsCompleted"`
}

func (ce CompletedExercise) Volume() float64 {
	return ce.WeightUsed * float64(ce.RepsCompleted) * float64(ce.SetsCompleted)
}

// SessionRecord (workout log entry) is immutable once created.
// ID identifies the record across commit retries.
type SessionRecord struct {
	ID                 string              `json:"id"`
	Date               string              `json:"date"`
	WorkoutID          string              `json:"workoutId"`
	ExercisesCompleted []CompletedExercise `json:"exercisesCompleted"`
	TotalVolume        float64             `json:"totalVolume"`
	DurationMinutes    int                 `json:"durationMinutes"`
}

// NewSessionRecord keeps only exercises with at least one completed set and sums their volume.
func NewSessionRecord(id, date, workoutID string, exercises []CompletedExercise, durationMinutes int) SessionRecord {
	completed := make([]CompletedExercise, 0, len(exercises))
	totalVolume := 0.0
	for _, ex := range exercises {
		if ex.SetsCompleted <= 0 {
			continue
		}
		completed = append(completed, ex)
		totalVolume += ex.Volume()
	}

	return SessionRecord{
		ID:                 id,
		Date:               date,
		WorkoutID:          workoutID,
		ExercisesCompleted: completed,
		TotalVolume:        totalVolume,
		DurationMinutes:    durationMinutes,
	}
}

func (sr SessionRecord) TotalSets() int {
	total := 0
	for _, ex := range sr.ExercisesCompleted {
		total += ex.SetsCompleted
	}
	return total
}

// ContainsSession reports whether a record with the given id is already in history.
func ContainsSession(history []SessionRecord, id string) bool {
	if id == "" {
		return false
	}
	for i := range history {
		if history[i].ID == id {
			return true
		}
	}
	return false
}
