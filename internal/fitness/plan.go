package fitness

type Exercise struct {
	Name string `json:"name"`
	Sets int    `json:"sets"`
	// Reps is a free-form descriptor, e.g. "12" or "8-12".
	Reps string `json:"reps"`
	// Weight is an optional descriptor, e.g. "20kg" or "Bodyweight".
	Weight       string `json:"weight,omitempty"`
	RestSeconds  int    `json:"restSeconds"`
	Instructions string `json:"instructions"`
	TargetMuscle string `json:"targetMuscle"`
}

// WorkoutPlan is produced by the generator per request and never persisted on its own;
// only the session record derived from it survives a finished session.
type WorkoutPlan struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Difficulty   Difficulty  `json:"difficulty"`
	TargetMuscle MuscleGroup `json:"targetMuscle"`
	Exercises    []Exercise  `json:"exercises"`
	// CreatedAt is a unix timestamp in milliseconds.
	CreatedAt int64 `json:"createdAt"`
}
