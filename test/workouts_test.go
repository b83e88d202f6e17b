//go:build integration_test || all_tests

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/2beens/ironai/internal/fitness"
	"github.com/2beens/ironai/internal/session"
	"github.com/2beens/ironai/internal/workouts"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) doRequest(ctx context.Context, method, path string, body any) (int, []byte) {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(s.T(), err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	return resp.StatusCode, respBytes
}

func (s *IntegrationTestSuite) TestWorkouts_SessionLifecycle() {
	ctx := context.Background()
	t := s.T()
	userID := gofakeit.Username()

	plan := fitness.WorkoutPlan{
		ID:    gofakeit.UUID(),
		Title: "Push Day",
		Exercises: []fitness.Exercise{
			{Name: "Bench Press", Sets: 4, Reps: "8", Weight: "60kg"},
			{Name: "Dips", Sets: 3, Reps: "12"},
		},
	}

	status, body := s.doRequest(ctx, http.MethodPost, "/sessions", map[string]any{"userId": userID, "plan": plan})
	require.Equal(t, http.StatusCreated, status, string(body))
	var view session.View
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, userID, view.UserID)

	status, body = s.doRequest(ctx, http.MethodPost, fmt.Sprintf("/sessions/%s/exercises/0/toggle", view.ID), nil)
	require.Equal(t, http.StatusOK, status, string(body))

	status, body = s.doRequest(ctx, http.MethodPost, fmt.Sprintf("/sessions/%s/finish", view.ID), nil)
	require.Equal(t, http.StatusOK, status, string(body))
	var res workouts.FinishResult
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, view.ID, res.Record.ID)
	assert.Equal(t, 1920.0, res.Record.TotalVolume)
	assert.False(t, res.Duplicate)
	assert.Contains(t, res.NewBadges, "first_step")

	status, _ = s.doRequest(ctx, http.MethodPost, fmt.Sprintf("/sessions/%s/finish", view.ID), nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = s.doRequest(ctx, http.MethodGet, "/history/"+userID, nil)
	require.Equal(t, http.StatusOK, status)
	var history []fitness.SessionRecord
	require.NoError(t, json.Unmarshal(body, &history))
	require.Len(t, history, 1)

	status, body = s.doRequest(ctx, http.MethodGet, "/dashboard/"+userID, nil)
	require.Equal(t, http.StatusOK, status)
	var dashboard workouts.Dashboard
	require.NoError(t, json.Unmarshal(body, &dashboard))
	assert.Equal(t, 100, dashboard.Profile.XP)
	assert.Equal(t, 1, dashboard.Totals.Sessions)
}

func (s *IntegrationTestSuite) TestWorkouts_GeneratorUnavailable() {
	ctx := context.Background()

	status, _ := s.doRequest(ctx, http.MethodPost, "/plans/roulette", map[string]any{
		"userId":       gofakeit.Username(),
		"targetMuscle": "Legs",
		"difficulty":   "Beginner",
		"equipment":    []string{"Bodyweight"},
	})
	assert.Equal(s.T(), http.StatusBadGateway, status)
}
