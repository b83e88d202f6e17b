package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/2beens/ironai/internal/fitness"
	"github.com/2beens/ironai/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.5-flash"

	maxResponseBytes = 1 << 20
)

type ApiParams struct {
	BaseURL string
	Model   string
	ApiKey  string
	// HttpClient should carry the request timeout; the api never retries on its own.
	HttpClient *http.Client
	// TipCacheSizeBytes sizes the progress tip cache, 10MB when zero.
	TipCacheSizeBytes int
	TipCacheExpire    time.Duration
}

type Api struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
	tipCache   *freecache.Cache
	tipExpire  int

	// overridable in tests
	randIntn func(n int) int
	nowFunc  func() time.Time
}

func NewApi(params ApiParams) *Api {
	baseURL := strings.TrimSuffix(params.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := params.Model
	if model == "" {
		model = DefaultModel
	}
	httpClient := params.HttpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	cacheSize := params.TipCacheSizeBytes
	if cacheSize <= 0 {
		cacheSize = 10 * 1024 * 1024
	}
	tipExpire := int(params.TipCacheExpire.Seconds())
	if tipExpire <= 0 {
		tipExpire = 60 * 60 * 6
	}

	return &Api{
		baseURL:    baseURL,
		model:      model,
		apiKey:     params.ApiKey,
		httpClient: httpClient,
		tipCache:   freecache.NewCache(cacheSize),
		tipExpire:  tipExpire,
		randIntn:   rand.Intn,
		nowFunc:    time.Now,
	}
}

// GeneratePlan requests a full routine. Omitted request fields get the defaults.
func (a *Api) GeneratePlan(ctx context.Context, req PlanRequest) (plan *fitness.WorkoutPlan, err error) {
	req = req.WithDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracing.GlobalTracer.Start(ctx, "generatorApi.generatePlan")
	span.SetAttributes(
		attribute.String("difficulty", req.Difficulty.String()),
		attribute.String("target_muscle", req.TargetMuscle.String()),
	)
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	generated, err := a.generate(ctx, planSystemInstruction, planPrompt(req))
	if err != nil {
		return nil, err
	}

	return a.toPlan(generated, req.Difficulty, req.TargetMuscle, false)
}

// GenerateRoulette requests a single exercise challenge.
func (a *Api) GenerateRoulette(ctx context.Context, req RouletteRequest) (plan *fitness.WorkoutPlan, err error) {
	req = req.WithDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.TargetMuscle == "" {
		muscles := fitness.AllMuscleGroups()
		req.TargetMuscle = muscles[a.randIntn(len(muscles))]
	}

	ctx, span := tracing.GlobalTracer.Start(ctx, "generatorApi.generateRoulette")
	span.SetAttributes(
		attribute.String("difficulty", req.Difficulty.String()),
		attribute.String("target_muscle", req.TargetMuscle.String()),
	)
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	generated, err := a.generate(ctx, rouletteSystemInstruction, roulettePrompt(req))
	if err != nil {
		return nil, err
	}

	return a.toPlan(generated, req.Difficulty, req.TargetMuscle, true)
}

func (a *Api) generate(ctx context.Context, systemInstruction, prompt string) (*generatedPlan, error) {
	text, err := a.generateContent(ctx, &generateContentRequest{
		SystemInstruction: &content{Parts: []part{{Text: systemInstruction}}},
		Contents:          []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   planSchema,
		},
	})
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, genErr(ReasonEmpty, nil)
	}

	generated := &generatedPlan{}
	if err := json.Unmarshal([]byte(stripCodeFence(text)), generated); err != nil {
		return nil, genErr(ReasonMalformed, err)
	}
	return generated, nil
}

// generateContent calls the endpoint and returns the candidate text. Failures are GenerationErrors.
func (a *Api) generateContent(ctx context.Context, body *generateContentRequest) (string, error) {
	reqBytes, err := json.Marshal(body)
	if err != nil {
		return "", genErr(ReasonTransport, err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", a.baseURL, a.model)
	log.Debugf("calling generator api: %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBytes))
	if err != nil {
		return "", genErr(ReasonTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", a.apiKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", genErr(ReasonTransport, fmt.Errorf("http client do: %w", err))
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", genErr(ReasonTransport, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", genErr(ReasonStatus, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(string(respBytes), 200)))
	}

	apiResp := &generateContentResponse{}
	if err := json.Unmarshal(respBytes, apiResp); err != nil {
		return "", genErr(ReasonMalformed, fmt.Errorf("unmarshal generator response: %w", err))
	}

	return apiResp.Text(), nil
}

func (a *Api) toPlan(
	generated *generatedPlan,
	difficulty fitness.Difficulty,
	targetMuscle fitness.MuscleGroup,
	singleExercise bool,
) (*fitness.WorkoutPlan, error) {
	if generated.Title == nil || strings.TrimSpace(*generated.Title) == "" {
		return nil, genErr(ReasonContract, errors.New("missing title"))
	}
	if generated.Description == nil {
		return nil, genErr(ReasonContract, errors.New("missing description"))
	}
	if len(generated.Exercises) == 0 {
		return nil, genErr(ReasonContract, errors.New("no exercises"))
	}
	if singleExercise && len(generated.Exercises) != 1 {
		return nil, genErr(ReasonContract, fmt.Errorf("expected exactly one exercise, got %d", len(generated.Exercises)))
	}

	exercises := make([]fitness.Exercise, 0, len(generated.Exercises))
	for i, ge := range generated.Exercises {
		ex, err := toExercise(ge)
		if err != nil {
			return nil, genErr(ReasonContract, fmt.Errorf("exercise %d: %w", i, err))
		}
		exercises = append(exercises, ex)
	}

	return &fitness.WorkoutPlan{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(*generated.Title),
		Description:  *generated.Description,
		Difficulty:   difficulty,
		TargetMuscle: targetMuscle,
		Exercises:    exercises,
		CreatedAt:    a.nowFunc().UnixMilli(),
	}, nil
}

func toExercise(ge generatedExercise) (fitness.Exercise, error) {
	switch {
	case ge.Name == nil || strings.TrimSpace(*ge.Name) == "":
		return fitness.Exercise{}, errors.New("missing name")
	case ge.Sets == nil || *ge.Sets <= 0 || !isWhole(*ge.Sets):
		return fitness.Exercise{}, errors.New("sets must be a positive integer")
	case ge.Reps == nil || strings.TrimSpace(string(*ge.Reps)) == "":
		return fitness.Exercise{}, errors.New("missing reps")
	case ge.RestSeconds == nil || *ge.RestSeconds < 0 || !isWhole(*ge.RestSeconds):
		return fitness.Exercise{}, errors.New("rest seconds must be a non-negative integer")
	case ge.Instructions == nil:
		return fitness.Exercise{}, errors.New("missing instructions")
	case ge.TargetMuscle == nil:
		return fitness.Exercise{}, errors.New("missing target muscle")
	}

	ex := fitness.Exercise{
		Name:         strings.TrimSpace(*ge.Name),
		Sets:         int(*ge.Sets),
		Reps:         strings.TrimSpace(string(*ge.Reps)),
		RestSeconds:  int(*ge.RestSeconds),
		Instructions: *ge.Instructions,
		TargetMuscle: *ge.TargetMuscle,
	}
	if ge.Weight != nil {
		ex.Weight = strings.TrimSpace(string(*ge.Weight))
	}
	return ex, nil
}

// stripCodeFence removes a markdown code fence some models wrap JSON into.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
