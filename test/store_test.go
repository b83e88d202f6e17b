//go:build integration_test || all_tests

package test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/2beens/ironai/internal/fitness"
	"github.com/2beens/ironai/internal/progression"
	"github.com/2beens/ironai/internal/store"
	testingpkg "github.com/2beens/ironai/pkg/testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const concurrentCommits = 10

func newRecord(id string) fitness.SessionRecord {
	return fitness.NewSessionRecord(id, "2026-03-10", "plan-"+id, []fitness.CompletedExercise{
		{Name: "Squat", SetsCompleted: 3, WeightUsed: 40, RepsCompleted: 5},
		{Name: "Lunge", SetsCompleted: 0, WeightUsed: 10, RepsCompleted: 12},
	}, 35)
}

func progressAt(now time.Time) store.ProgressFunc {
	updater := progression.NewUpdater(progression.SameDayKeep, time.UTC)
	return func(p fitness.UserProfile) fitness.UserProfile {
		return updater.Apply(p, now)
	}
}

func (s *IntegrationTestSuite) TestRedisStore_CommitSession() {
	ctx, rdb := testingpkg.GetRedisClientAndCtx(s.T(), s.redisPort)
	s.Require().NoError(rdb.FlushDB(ctx).Err())

	s.assertCommitSemantics(ctx, store.NewRedisStore(rdb, 50))
}

func (s *IntegrationTestSuite) TestPsqlStore_CommitSession() {
	ctx := context.Background()
	s.deleteAllPostgresData()

	s.assertCommitSemantics(ctx, store.NewPsqlStore(s.dbPool))
}

func (s *IntegrationTestSuite) assertCommitSemantics(ctx context.Context, st store.Store) {
	t := s.T()
	now := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

	t.Run("profile round trip", func(t *testing.T) {
		userID := gofakeit.Username()
		profile := fitness.DefaultProfile(userID)
		profile.Name = gofakeit.FirstName()
		profile.XP = 2300
		require.NoError(t, st.Put(ctx, profile))

		got, err := st.Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, profile.Name, got.Name)
		assert.Equal(t, 3, got.LevelNumber)

		history, err := st.History(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("commit is applied once", func(t *testing.T) {
		userID := gofakeit.Username()
		record := newRecord(gofakeit.UUID())

		res, err := st.CommitSession(ctx, userID, record, progressAt(now))
		require.NoError(t, err)
		assert.False(t, res.Duplicate)
		assert.Equal(t, progression.XPPerSession, res.Profile.XP)
		assert.Equal(t, 1, res.Profile.Streak)
		assert.Equal(t, "2026-03-10", res.Profile.LastWorkoutDate)
		require.Len(t, res.History, 1)
		assert.Equal(t, 600.0, res.History[0].TotalVolume)
		assert.Len(t, res.History[0].ExercisesCompleted, 1)

		history, err := st.History(ctx, userID)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, record, history[len(history)-1])

		res, err = st.CommitSession(ctx, userID, record, progressAt(now.Add(time.Hour)))
		require.NoError(t, err)
		assert.True(t, res.Duplicate)
		assert.Equal(t, progression.XPPerSession, res.Profile.XP)
		assert.Len(t, res.History, 1)

		profile, err := st.Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, progression.XPPerSession, profile.XP)
	})

	t.Run("record id is scoped to the user", func(t *testing.T) {
		record := newRecord(gofakeit.UUID())
		_, err := st.CommitSession(ctx, gofakeit.Username(), record, progressAt(now))
		require.NoError(t, err)

		res, err := st.CommitSession(ctx, gofakeit.Username(), record, progressAt(now))
		require.NoError(t, err)
		assert.False(t, res.Duplicate)
		assert.Equal(t, progression.XPPerSession, res.Profile.XP)
	})

	t.Run("concurrent commits are serialized", func(t *testing.T) {
		userID := gofakeit.Username()

		var wg sync.WaitGroup
		errs := make(chan error, concurrentCommits)
		for i := 0; i < concurrentCommits; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := st.CommitSession(ctx, userID, newRecord(fmt.Sprintf("rec-%d", i)), progressAt(now))
				errs <- err
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		history, err := st.History(ctx, userID)
		require.NoError(t, err)
		assert.Len(t, history, concurrentCommits)

		profile, err := st.Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, concurrentCommits*progression.XPPerSession, profile.XP)
		assert.Equal(t, 1, profile.Streak)
	})
}
