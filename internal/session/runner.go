package session

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/2beens/ironai/internal/fitness"

	"github.com/juju/clock"
)

const TickInterval = time.Second

var (
	ErrSessionClosed   = errors.New("session is closed")
	ErrExerciseIndex   = errors.New("exercise index out of range")
	ErrInvalidActuals  = errors.New("actuals must not be negative")
	ErrEmptyPlan       = errors.New("plan has no exercises")
	ErrSessionNotFound = errors.New("session not found")
)

type State string

const (
	StateRunning   State = "running"
	StateFinished  State = "finished"
	StateAbandoned State = "abandoned"
)

type ExerciseStatus string

const (
	ExerciseStatusPending   ExerciseStatus = "pending"
	ExerciseStatusCompleted ExerciseStatus = "completed"
)

// Actuals is what the user really did for an exercise.
type Actuals struct {
	Sets   int     `json:"sets"`
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

func (a Actuals) Validate() error {
	if a.Sets < 0 || a.Weight < 0 || a.Reps < 0 {
		return ErrInvalidActuals
	}
	return nil
}

type ExerciseState struct {
	Exercise fitness.Exercise `json:"exercise"`
	Status   ExerciseStatus   `json:"status"`
	Actuals  Actuals          `json:"actuals"`
}

// View is a point in time snapshot of a runner.
type View struct {
	ID             string          `json:"id"`
	UserID         string          `json:"userId"`
	Title          string          `json:"title"`
	WorkoutID      string          `json:"workoutId"`
	State          State           `json:"state"`
	ElapsedSeconds int             `json:"elapsedSeconds"`
	Completed      int             `json:"completed"`
	Exercises      []ExerciseState `json:"exercises"`
}

// Runner drives one live session. Its tick goroutine lives until Finish or Abandon.
type Runner struct {
	mu sync.Mutex

	id        string
	userID    string
	plan      fitness.WorkoutPlan
	exercises []ExerciseState
	state     State
	elapsed   int
	touched   time.Time
	record    *fitness.SessionRecord
	finished  time.Time

	clock clock.Clock
	stop  chan struct{}
	done  chan struct{}
}

func NewRunner(id, userID string, plan fitness.WorkoutPlan, clk clock.Clock) (*Runner, error) {
	if len(plan.Exercises) == 0 {
		return nil, ErrEmptyPlan
	}

	exercises := make([]ExerciseState, 0, len(plan.Exercises))
	for _, ex := range plan.Exercises {
		exercises = append(exercises, ExerciseState{
			Exercise: ex,
			Status:   ExerciseStatusPending,
			Actuals: Actuals{
				Sets:   ex.Sets,
				Weight: float64(fitness.LeadingInt(ex.Weight)),
				Reps:   fitness.LeadingInt(ex.Reps),
			},
		})
	}

	r := &Runner{
		id:        id,
		userID:    fitness.NormalizeUserID(userID),
		plan:      plan,
		exercises: exercises,
		state:     StateRunning,
		touched:   clk.Now(),
		clock:     clk,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go r.tickLoop()

	return r, nil
}

func (r *Runner) tickLoop() {
	defer close(r.done)
	for {
		select {
		case <-r.stop:
			return
		case <-r.clock.After(TickInterval):
			r.mu.Lock()
			if r.state == StateRunning {
				r.elapsed++
			}
			r.mu.Unlock()
		}
	}
}

// stopTicking must be called with mu held, at most once.
func (r *Runner) stopTicking() {
	close(r.stop)
}

func (r *Runner) ID() string {
	return r.id
}

func (r *Runner) UserID() string {
	return r.userID
}

// FinishedAt is the time of the first Finish call, zero while the session runs.
func (r *Runner) FinishedAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.finished
}

func (r *Runner) Toggle(idx int) (ExerciseState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRunning {
		return ExerciseState{}, ErrSessionClosed
	}
	if idx < 0 || idx >= len(r.exercises) {
		return ExerciseState{}, fmt.Errorf("%w: %d", ErrExerciseIndex, idx)
	}

	ex := &r.exercises[idx]
	if ex.Status == ExerciseStatusCompleted {
		ex.Status = ExerciseStatusPending
	} else {
		ex.Status = ExerciseStatusCompleted
	}
	r.touched = r.clock.Now()

	return *ex, nil
}

func (r *Runner) SetActuals(idx int, actuals Actuals) (ExerciseState, error) {
	if err := actuals.Validate(); err != nil {
		return ExerciseState{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state != StateRunning {
		return ExerciseState{}, ErrSessionClosed
	}
	if idx < 0 || idx >= len(r.exercises) {
		return ExerciseState{}, fmt.Errorf("%w: %d", ErrExerciseIndex, idx)
	}

	r.exercises[idx].Actuals = actuals
	r.touched = r.clock.Now()

	return r.exercises[idx], nil
}

func (r *Runner) View() View {
	r.mu.Lock()
	defer r.mu.Unlock()

	completed := 0
	for _, ex := range r.exercises {
		if ex.Status == ExerciseStatusCompleted {
			completed++
		}
	}

	return View{
		ID:             r.id,
		UserID:         r.userID,
		Title:          r.plan.Title,
		WorkoutID:      r.plan.ID,
		State:          r.state,
		ElapsedSeconds: r.elapsed,
		Completed:      completed,
		Exercises:      append([]ExerciseState(nil), r.exercises...),
	}
}

// Finish stops the tick and emits the session record, dated in loc.
// Later calls return the same record, so a failed commit can be retried with it.
func (r *Runner) Finish(now time.Time, loc *time.Location) (fitness.SessionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.state {
	case StateFinished:
		return *r.record, nil
	case StateAbandoned:
		return fitness.SessionRecord{}, ErrSessionClosed
	}

	if loc == nil {
		loc = time.UTC
	}

	completed := make([]fitness.CompletedExercise, 0, len(r.exercises))
	for _, ex := range r.exercises {
		if ex.Status != ExerciseStatusCompleted {
			continue
		}
		completed = append(completed, fitness.CompletedExercise{
			Name:          ex.Exercise.Name,
			SetsCompleted: ex.Actuals.Sets,
			WeightUsed:    ex.Actuals.Weight,
			RepsCompleted: ex.Actuals.Reps,
		})
	}

	record := fitness.NewSessionRecord(
		r.id,
		now.In(loc).Format(fitness.DateLayout),
		r.plan.ID,
		completed,
		DurationMinutes(r.elapsed),
	)

	r.record = &record
	r.finished = now
	r.state = StateFinished
	r.touched = r.clock.Now()
	r.stopTicking()

	return record, nil
}

// Abandon discards the session. It is a no-op on an already abandoned runner.
func (r *Runner) Abandon() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.state {
	case StateAbandoned:
		return nil
	case StateRunning:
		r.stopTicking()
	}

	r.state = StateAbandoned
	r.exercises = nil
	r.record = nil

	return nil
}

// Wait blocks until the tick goroutine has exited.
func (r *Runner) Wait() {
	<-r.done
}

func (r *Runner) lastTouched() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.touched
}

func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// DurationMinutes rounds elapsed seconds up to whole minutes.
func DurationMinutes(elapsedSeconds int) int {
	if elapsedSeconds <= 0 {
		return 0
	}
	return int(math.Ceil(float64(elapsedSeconds) / 60))
}
