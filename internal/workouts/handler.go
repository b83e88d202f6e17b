package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/ironai/internal/badges"
	"github.com/2beens/ironai/internal/fitness"
	"github.com/2beens/ironai/internal/generator"
	"github.com/2beens/ironai/internal/middleware"
	"github.com/2beens/ironai/internal/session"
	"github.com/2beens/ironai/internal/store"
	"github.com/2beens/ironai/internal/telemetry/metrics"
	"github.com/2beens/ironai/internal/telemetry/tracing"
	"github.com/2beens/ironai/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workouts_test

type service interface {
	GetProfile(ctx context.Context, userID string) *fitness.UserProfile
	SaveProfile(ctx context.Context, userID string, profile *fitness.UserProfile) (*fitness.UserProfile, error)
	History(ctx context.Context, userID string) []fitness.SessionRecord
	Badges(ctx context.Context, userID string) []badges.Status
	Tip(ctx context.Context, userID string) string
	Dashboard(ctx context.Context, userID string) *Dashboard
	GeneratePlan(ctx context.Context, userID string, req generator.PlanRequest) (*fitness.WorkoutPlan, error)
	GenerateRoulette(ctx context.Context, userID string, req generator.RouletteRequest) (*fitness.WorkoutPlan, error)
	StartSession(userID string, plan fitness.WorkoutPlan) (session.View, error)
	SessionView(sessionID string) (session.View, error)
	ToggleExercise(sessionID string, idx int) (session.ExerciseState, error)
	SetActuals(sessionID string, idx int, actuals session.Actuals) (session.ExerciseState, error)
	FinishSession(ctx context.Context, sessionID string) (*FinishResult, error)
	AbandonSession(sessionID string) error
	ExportPlan(plan fitness.WorkoutPlan) string
}

type generatePlanRequest struct {
	UserID string `json:"userId"`
	generator.PlanRequest
}

type generateRouletteRequest struct {
	UserID string `json:"userId"`
	generator.RouletteRequest
}

type startSessionRequest struct {
	UserID string               `json:"userId"`
	Plan   *fitness.WorkoutPlan `json:"plan"`
}

type Handler struct {
	service service
}

func NewHandler(service service) *Handler {
	return &Handler{
		service: service,
	}
}

// SetupRoutes registers the workout routes. Plan generation is rate limited when a limiter is given.
func (h *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	generateAllowedPerMin int,
) {
	mainRouter.HandleFunc("/profile/{userId}", h.HandleGetProfile).Methods("GET", "OPTIONS").Name("get-profile")
	mainRouter.HandleFunc("/profile/{userId}", h.HandlePutProfile).Methods("PUT", "OPTIONS").Name("put-profile")
	mainRouter.HandleFunc("/history/{userId}", h.HandleHistory).Methods("GET", "OPTIONS").Name("history")
	mainRouter.HandleFunc("/badges/{userId}", h.HandleBadges).Methods("GET", "OPTIONS").Name("badges")
	mainRouter.HandleFunc("/dashboard/{userId}", h.HandleDashboard).Methods("GET", "OPTIONS").Name("dashboard")
	mainRouter.HandleFunc("/tip/{userId}", h.HandleTip).Methods("GET", "OPTIONS").Name("tip")
	mainRouter.HandleFunc("/plans/export", h.HandleExportPlan).Methods("POST", "OPTIONS").Name("export-plan")

	plansRouter := mainRouter.PathPrefix("/plans").Subrouter()
	plansRouter.HandleFunc("/generate", h.HandleGeneratePlan).Methods("POST", "OPTIONS").Name("generate-plan")
	plansRouter.HandleFunc("/roulette", h.HandleGenerateRoulette).Methods("POST", "OPTIONS").Name("generate-roulette")
	if rateLimiter != nil {
		// generation calls a paid external API
		plansRouter.Use(middleware.RateLimit(rateLimiter, metricsManager, "generate", generateAllowedPerMin))
	}

	mainRouter.HandleFunc("/sessions", h.HandleStartSession).Methods("POST", "OPTIONS").Name("start-session")
	mainRouter.HandleFunc("/sessions/{id}", h.HandleGetSession).Methods("GET", "OPTIONS").Name("get-session")
	mainRouter.HandleFunc("/sessions/{id}", h.HandleAbandonSession).Methods("DELETE", "OPTIONS").Name("abandon-session")
	mainRouter.HandleFunc("/sessions/{id}/exercises/{idx}/toggle", h.HandleToggleExercise).Methods("POST", "OPTIONS").Name("toggle-exercise")
	mainRouter.HandleFunc("/sessions/{id}/exercises/{idx}", h.HandleSetActuals).Methods("PUT", "OPTIONS").Name("set-actuals")
	mainRouter.HandleFunc("/sessions/{id}/finish", h.HandleFinishSession).Methods("POST", "OPTIONS").Name("finish-session")
}

func (h *Handler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.profile.get")
	defer span.End()

	userID := mux.Vars(r)["userId"]
	span.SetAttributes(attribute.String("user_id", userID))

	writeJSON(w, h.service.GetProfile(ctx, userID), http.StatusOK)
}

func (h *Handler) HandlePutProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.profile.put")
	defer span.End()

	var profile fitness.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		log.Errorf("put profile, unmarshal json params: %s", err)
		http.Error(w, "invalid profile", http.StatusBadRequest)
		return
	}

	saved, err := h.service.SaveProfile(ctx, mux.Vars(r)["userId"], &profile)
	if err != nil {
		span.RecordError(err)
		writeError(w, "save profile", err)
		return
	}

	writeJSON(w, saved, http.StatusOK)
}

func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.history")
	defer span.End()

	writeJSON(w, h.service.History(ctx, mux.Vars(r)["userId"]), http.StatusOK)
}

func (h *Handler) HandleBadges(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.badges")
	defer span.End()

	writeJSON(w, h.service.Badges(ctx, mux.Vars(r)["userId"]), http.StatusOK)
}

func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.dashboard")
	defer span.End()

	writeJSON(w, h.service.Dashboard(ctx, mux.Vars(r)["userId"]), http.StatusOK)
}

func (h *Handler) HandleTip(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.tip")
	defer span.End()

	tip := h.service.Tip(ctx, mux.Vars(r)["userId"])
	writeJSON(w, map[string]string{"tip": tip}, http.StatusOK)
}

func (h *Handler) HandleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.generate.plan")
	defer span.End()

	var req generatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("generate plan, unmarshal json params: %s", err)
		http.Error(w, "invalid plan request", http.StatusBadRequest)
		return
	}

	plan, err := h.service.GeneratePlan(ctx, req.UserID, req.PlanRequest)
	if err != nil {
		span.RecordError(err)
		writeError(w, "generate plan", err)
		return
	}

	writeJSON(w, plan, http.StatusOK)
}

func (h *Handler) HandleGenerateRoulette(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.generate.roulette")
	defer span.End()

	var req generateRouletteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("generate roulette, unmarshal json params: %s", err)
		http.Error(w, "invalid roulette request", http.StatusBadRequest)
		return
	}

	plan, err := h.service.GenerateRoulette(ctx, req.UserID, req.RouletteRequest)
	if err != nil {
		span.RecordError(err)
		writeError(w, "generate roulette", err)
		return
	}

	writeJSON(w, plan, http.StatusOK)
}

func (h *Handler) HandleExportPlan(w http.ResponseWriter, r *http.Request) {
	var plan fitness.WorkoutPlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		log.Errorf("export plan, unmarshal json params: %s", err)
		http.Error(w, "invalid plan", http.StatusBadRequest)
		return
	}

	pkg.WriteResponse(w, pkg.ContentType.Text, h.service.ExportPlan(plan), http.StatusOK)
}

func (h *Handler) HandleStartSession(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.session.start")
	defer span.End()

	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("start session, unmarshal json params: %s", err)
		http.Error(w, "invalid session request", http.StatusBadRequest)
		return
	}
	if req.Plan == nil {
		http.Error(w, "missing plan", http.StatusBadRequest)
		return
	}

	view, err := h.service.StartSession(req.UserID, *req.Plan)
	if err != nil {
		span.RecordError(err)
		writeError(w, "start session", err)
		return
	}

	writeJSON(w, view, http.StatusCreated)
}

func (h *Handler) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.SessionView(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, "get session", err)
		return
	}
	writeJSON(w, view, http.StatusOK)
}

func (h *Handler) HandleToggleExercise(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	idx, err := strconv.Atoi(vars["idx"])
	if err != nil {
		http.Error(w, "invalid exercise index", http.StatusBadRequest)
		return
	}

	state, err := h.service.ToggleExercise(vars["id"], idx)
	if err != nil {
		writeError(w, "toggle exercise", err)
		return
	}
	writeJSON(w, state, http.StatusOK)
}

func (h *Handler) HandleSetActuals(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	idx, err := strconv.Atoi(vars["idx"])
	if err != nil {
		http.Error(w, "invalid exercise index", http.StatusBadRequest)
		return
	}

	var actuals session.Actuals
	if err := json.NewDecoder(r.Body).Decode(&actuals); err != nil {
		log.Errorf("set actuals, unmarshal json params: %s", err)
		http.Error(w, "invalid actuals", http.StatusBadRequest)
		return
	}

	state, err := h.service.SetActuals(vars["id"], idx, actuals)
	if err != nil {
		writeError(w, "set actuals", err)
		return
	}
	writeJSON(w, state, http.StatusOK)
}

func (h *Handler) HandleFinishSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.session.finish")
	defer span.End()

	res, err := h.service.FinishSession(ctx, mux.Vars(r)["id"])
	if err != nil {
		span.RecordError(err)
		writeError(w, "finish session", err)
		return
	}
	writeJSON(w, res, http.StatusOK)
}

func (h *Handler) HandleAbandonSession(w http.ResponseWriter, r *http.Request) {
	if err := h.service.AbandonSession(mux.Vars(r)["id"]); err != nil {
		writeError(w, "abandon session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, v any, statusCode int) {
	if err := pkg.WriteJSON(w, v, statusCode); err != nil {
		log.Errorf("marshal response: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, op string, err error) {
	status := StatusCode(err)
	if status >= http.StatusInternalServerError {
		log.Errorf("%s: %s", op, err)
	} else {
		log.Debugf("%s: %s", op, err)
	}
	http.Error(w, err.Error(), status)
}

// StatusCode maps service errors to HTTP status codes.
func StatusCode(err error) int {
	var (
		invalidProfile fitness.ErrInvalidProfile
		genErr         *generator.GenerationError
		storageErr     *store.StorageError
	)

	switch {
	case errors.Is(err, generator.ErrInvalidRequest),
		errors.Is(err, session.ErrExerciseIndex),
		errors.Is(err, session.ErrInvalidActuals),
		errors.Is(err, session.ErrEmptyPlan),
		errors.Is(err, store.ErrNilProfile),
		errors.As(err, &invalidProfile):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrSessionInProgress),
		errors.Is(err, session.ErrSessionClosed),
		errors.Is(err, ErrGenerationInProgress):
		return http.StatusConflict
	case errors.As(err, &genErr):
		return http.StatusBadGateway
	case errors.As(err, &storageErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
