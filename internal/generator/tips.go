package generator

import (
	"context"
	"fmt"

	"github.com/2beens/ironai/internal/fitness"
	"github.com/2beens/ironai/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	MinSessionsForTip = 3

	TipNotEnoughHistory = "Consistency is key! Keep logging workouts to get personalized tips."
	TipEmptyResponse    = "Increase weight by 2.5kg or add 1 rep next time."
	TipFailure          = "Focus on perfect form before adding weight."
)

// ProgressTip never fails: any problem is logged and replaced by a static tip.
func (a *Api) ProgressTip(ctx context.Context, userID string, history []fitness.SessionRecord) string {
	if len(history) < MinSessionsForTip {
		return TipNotEnoughHistory
	}

	ctx, span := tracing.GlobalTracer.Start(ctx, "generatorApi.progressTip")
	defer span.End()
	span.SetAttributes(attribute.String("user_id", userID))

	cacheKey := []byte(fmt.Sprintf("tip::%s::%s", userID, history[len(history)-1].ID))
	if tipBytes, err := a.tipCache.Get(cacheKey); err == nil {
		log.Tracef("found progress tip for %s in cache", userID)
		span.SetAttributes(attribute.Bool("cached", true))
		return string(tipBytes)
	}

	text, err := a.generateContent(ctx, &generateContentRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: tipPrompt(history)}}}},
	})
	if err != nil {
		tipErr := &TipError{UserID: userID, Err: err}
		span.RecordError(tipErr)
		log.Warnf("generator: %s", tipErr)
		return TipFailure
	}
	if text == "" {
		return TipEmptyResponse
	}

	if err := a.tipCache.Set(cacheKey, []byte(text), a.tipExpire); err != nil {
		log.Errorf("failed to cache progress tip for %s: %s", userID, err)
	}

	return text
}
