package workouts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/2beens/ironai/internal/badges"
	"github.com/2beens/ironai/internal/fitness"
	"github.com/2beens/ironai/internal/generator"
	"github.com/2beens/ironai/internal/progression"
	"github.com/2beens/ironai/internal/session"
	"github.com/2beens/ironai/internal/store"
	"github.com/2beens/ironai/internal/telemetry/metrics"
	"github.com/2beens/ironai/internal/telemetry/tracing"

	"github.com/juju/clock"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=workouts_test

var ErrGenerationInProgress = errors.New("a plan generation is already in progress for this user")

const (
	generationKindPlan     = "plan"
	generationKindRoulette = "roulette"
)

type profileStore interface {
	Get(ctx context.Context, userID string) (*fitness.UserProfile, error)
	Put(ctx context.Context, profile *fitness.UserProfile) error
	History(ctx context.Context, userID string) ([]fitness.SessionRecord, error)
	CommitSession(ctx context.Context, userID string, record fitness.SessionRecord, progress store.ProgressFunc) (*store.CommitResult, error)
}

type planGenerator interface {
	GeneratePlan(ctx context.Context, req generator.PlanRequest) (*fitness.WorkoutPlan, error)
	GenerateRoulette(ctx context.Context, req generator.RouletteRequest) (*fitness.WorkoutPlan, error)
	ProgressTip(ctx context.Context, userID string, history []fitness.SessionRecord) string
}

type Dashboard struct {
	Profile *fitness.UserProfile  `json:"profile"`
	Badges  []badges.Status       `json:"badges"`
	Stats   []fitness.VolumePoint `json:"stats"`
	Totals  fitness.Totals        `json:"totals"`
	Tip     string                `json:"tip"`
}

type FinishResult struct {
	Record    fitness.SessionRecord `json:"record"`
	Profile   *fitness.UserProfile  `json:"profile"`
	Duplicate bool                  `json:"duplicate"`
	// NewBadges lists the badges this session unlocked.
	NewBadges []string `json:"newBadges"`
}

type ServiceParams struct {
	Store     profileStore
	Generator planGenerator
	Sessions  *session.Manager
	Updater   *progression.Updater
	Metrics   *metrics.Manager
	Location  *time.Location
	Clock     clock.Clock
}

type Service struct {
	store     profileStore
	generator planGenerator
	sessions  *session.Manager
	updater   *progression.Updater
	metrics   *metrics.Manager
	location  *time.Location
	clock     clock.Clock

	mu         sync.Mutex
	generating map[string]struct{}
}

func NewService(params ServiceParams) *Service {
	loc := params.Location
	if loc == nil {
		loc = time.UTC
	}
	clk := params.Clock
	if clk == nil {
		clk = clock.WallClock
	}
	updater := params.Updater
	if updater == nil {
		updater = progression.NewUpdater(progression.SameDayKeep, loc)
	}

	return &Service{
		store:      params.Store,
		generator:  params.Generator,
		sessions:   params.Sessions,
		updater:    updater,
		metrics:    params.Metrics,
		location:   loc,
		clock:      clk,
		generating: make(map[string]struct{}),
	}
}

// GetProfile never fails: a storage error is logged and the default profile is returned.
func (s *Service) GetProfile(ctx context.Context, userID string) *fitness.UserProfile {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.profile.get")
	defer span.End()

	userID = fitness.NormalizeUserID(userID)
	span.SetAttributes(attribute.String("user_id", userID))

	profile, err := s.store.Get(ctx, userID)
	if err != nil {
		span.RecordError(err)
		s.storageFailed("get", err)
		log.Errorf("get profile [%s], falling back to defaults: %s", userID, err)
		return fitness.DefaultProfile(userID)
	}
	return profile
}

// SaveProfile applies the user editable fields of profile to the stored one.
// The path user id wins over the body; progression fields are only changed by finished sessions.
func (s *Service) SaveProfile(ctx context.Context, userID string, profile *fitness.UserProfile) (_ *fitness.UserProfile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.profile.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if profile == nil {
		return nil, store.ErrNilProfile
	}

	userID = fitness.NormalizeUserID(userID)
	stored, err := s.store.Get(ctx, userID)
	if err != nil {
		s.storageFailed("get", err)
		return nil, fmt.Errorf("save profile: %w", err)
	}

	toSave := stored.WithEdits(profile)
	toSave.UserID = userID
	toSave.Normalize()

	if err := s.store.Put(ctx, toSave); err != nil {
		s.storageFailed("put", err)
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return toSave, nil
}

// History never fails: a storage error is logged and an empty history is returned.
func (s *Service) History(ctx context.Context, userID string) []fitness.SessionRecord {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.history")
	defer span.End()

	userID = fitness.NormalizeUserID(userID)
	history, err := s.store.History(ctx, userID)
	if err != nil {
		span.RecordError(err)
		s.storageFailed("history", err)
		log.Errorf("get history [%s], falling back to empty: %s", userID, err)
		return []fitness.SessionRecord{}
	}
	return history
}

func (s *Service) Badges(ctx context.Context, userID string) []badges.Status {
	return badges.Evaluate(s.History(ctx, userID))
}

func (s *Service) Tip(ctx context.Context, userID string) string {
	userID = fitness.NormalizeUserID(userID)
	return s.generator.ProgressTip(ctx, userID, s.History(ctx, userID))
}

func (s *Service) Dashboard(ctx context.Context, userID string) *Dashboard {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.dashboard")
	defer span.End()

	userID = fitness.NormalizeUserID(userID)
	profile := s.GetProfile(ctx, userID)
	history := s.History(ctx, userID)

	return &Dashboard{
		Profile: profile,
		Badges:  badges.Evaluate(history),
		Stats:   fitness.VolumeSeries(history, fitness.DefaultSeriesLength),
		Totals:  fitness.HistoryTotals(history),
		Tip:     s.generator.ProgressTip(ctx, userID, history),
	}
}

func (s *Service) GeneratePlan(ctx context.Context, userID string, req generator.PlanRequest) (_ *fitness.WorkoutPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.generate.plan")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return s.generate(ctx, userID, generationKindPlan, func(ctx context.Context) (*fitness.WorkoutPlan, error) {
		return s.generator.GeneratePlan(ctx, req)
	})
}

func (s *Service) GenerateRoulette(ctx context.Context, userID string, req generator.RouletteRequest) (_ *fitness.WorkoutPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.generate.roulette")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return s.generate(ctx, userID, generationKindRoulette, func(ctx context.Context) (*fitness.WorkoutPlan, error) {
		return s.generator.GenerateRoulette(ctx, req)
	})
}

func (s *Service) generate(
	ctx context.Context,
	userID, kind string,
	gen func(ctx context.Context) (*fitness.WorkoutPlan, error),
) (*fitness.WorkoutPlan, error) {
	userID = fitness.NormalizeUserID(userID)
	if !s.beginGeneration(userID) {
		return nil, ErrGenerationInProgress
	}
	defer s.endGeneration(userID)

	start := s.clock.Now()
	plan, err := gen(ctx)
	if s.metrics != nil {
		s.metrics.HistogramGenerationDuration.WithLabelValues(kind).Observe(s.clock.Now().Sub(start).Seconds())
	}

	if err != nil {
		var genErr *generator.GenerationError
		if errors.As(err, &genErr) && s.metrics != nil {
			s.metrics.CounterGenerationFailures.WithLabelValues(kind, metricLabel(string(genErr.Reason))).Inc()
		}
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.CounterPlansGenerated.WithLabelValues(kind).Inc()
	}
	log.Debugf("generated %s [%s] for user [%s]", kind, plan.ID, userID)

	return plan, nil
}

func (s *Service) beginGeneration(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.generating[userID]; busy {
		return false
	}
	s.generating[userID] = struct{}{}
	return true
}

func (s *Service) endGeneration(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.generating, userID)
}

func (s *Service) StartSession(userID string, plan fitness.WorkoutPlan) (session.View, error) {
	runner, err := s.sessions.Start(fitness.NormalizeUserID(userID), plan)
	if err != nil {
		return session.View{}, err
	}
	return runner.View(), nil
}

func (s *Service) SessionView(sessionID string) (session.View, error) {
	runner, err := s.sessions.Get(sessionID)
	if err != nil {
		return session.View{}, err
	}
	return runner.View(), nil
}

func (s *Service) ToggleExercise(sessionID string, idx int) (session.ExerciseState, error) {
	runner, err := s.sessions.Get(sessionID)
	if err != nil {
		return session.ExerciseState{}, err
	}
	return runner.Toggle(idx)
}

func (s *Service) SetActuals(sessionID string, idx int, actuals session.Actuals) (session.ExerciseState, error) {
	runner, err := s.sessions.Get(sessionID)
	if err != nil {
		return session.ExerciseState{}, err
	}
	return runner.SetActuals(idx, actuals)
}

func (s *Service) AbandonSession(sessionID string) error {
	return s.sessions.Abandon(sessionID)
}

// FinishSession stores the session record and the progressed profile.
// The runner stays available until the commit succeeds, so a failed finish can be retried.
func (s *Service) FinishSession(ctx context.Context, sessionID string) (_ *FinishResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.session.finish")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session_id", sessionID))

	runner, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	record, err := runner.Finish(s.clock.Now(), s.location)
	if err != nil {
		return nil, err
	}
	// a retried commit still progresses the profile as of the first finish
	completedAt := runner.FinishedAt()

	userID := runner.UserID()
	res, err := s.store.CommitSession(ctx, userID, record, func(p fitness.UserProfile) fitness.UserProfile {
		return s.updater.Apply(p, completedAt)
	})
	if err != nil {
		s.storageFailed("commit", err)
		return nil, fmt.Errorf("commit session [%s]: %w", sessionID, err)
	}

	s.sessions.Release(sessionID)

	if s.metrics != nil {
		if res.Duplicate {
			s.metrics.CounterDuplicateCommits.Inc()
		} else {
			s.metrics.CounterSessionsCommitted.Inc()
		}
	}

	result := &FinishResult{
		Record:    record,
		Profile:   res.Profile,
		Duplicate: res.Duplicate,
		NewBadges: []string{},
	}
	if !res.Duplicate {
		result.NewBadges = newlyUnlocked(res.History, record.ID)
	}

	log.Debugf("session [%s] committed for user [%s], duplicate: %t", sessionID, userID, res.Duplicate)

	return result, nil
}

func (s *Service) ExportPlan(plan fitness.WorkoutPlan) string {
	return fitness.ClipboardText(plan)
}

func (s *Service) storageFailed(op string, err error) {
	var storageErr *store.StorageError
	if s.metrics != nil && errors.As(err, &storageErr) {
		s.metrics.CounterStorageErrors.WithLabelValues(op).Inc()
	}
}

// newlyUnlocked compares the badges of the history with and without the given record.
func newlyUnlocked(history []fitness.SessionRecord, recordID string) []string {
	without := make([]fitness.SessionRecord, 0, len(history))
	for _, sr := range history {
		if sr.ID != recordID {
			without = append(without, sr)
		}
	}

	before := make(map[string]bool)
	for _, id := range badges.UnlockedIDs(without) {
		before[id] = true
	}

	unlocked := []string{}
	for _, id := range badges.UnlockedIDs(history) {
		if !before[id] {
			unlocked = append(unlocked, id)
		}
	}
	return unlocked
}

func metricLabel(s string) string {
	return strings.ReplaceAll(s, " ", "_")
}
