package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/2beens/ironai/internal/middleware"
	"github.com/2beens/ironai/internal/telemetry/metrics"

	"github.com/go-redis/redis_rate/v9"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestRateLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	limiter := NewMockRequestRateLimiter(ctrl)
	metricsManager := metrics.NewTestManager()

	nextCalls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalls++
		w.WriteHeader(http.StatusOK)
	})
	handler := middleware.RateLimit(limiter, metricsManager, "generate-plan", 10)(next)

	newReq := func() *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/generate/plan", nil)
		req.RemoteAddr = "10.0.0.7:51234"
		return req
	}

	t.Run("allowed", func(t *testing.T) {
		limiter.EXPECT().
			Allow(gomock.Any(), "generate-plan:10.0.0.7", redis_rate.PerMinute(10)).
			Return(&redis_rate.Result{Allowed: 1, Remaining: 9}, nil)

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, newReq())
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 1, nextCalls)
	})

	t.Run("limited", func(t *testing.T) {
		limiter.EXPECT().
			Allow(gomock.Any(), "generate-plan:10.0.0.7", redis_rate.PerMinute(10)).
			Return(&redis_rate.Result{Allowed: 0, RetryAfter: 1500 * time.Millisecond}, nil)

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, newReq())
		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.Equal(t, "2", rr.Header().Get("Retry-After"))
		assert.Equal(t, 1, nextCalls)
		assert.Equal(t, float64(1), testutil.ToFloat64(metricsManager.CounterRateLimitedRequests.WithLabelValues("generate-plan")))
	})

	t.Run("limiter error", func(t *testing.T) {
		limiter.EXPECT().
			Allow(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("redis down"))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, newReq())
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, 1, nextCalls)
	})
}
