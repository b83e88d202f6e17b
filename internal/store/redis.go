package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/2beens/ironai/internal/fitness"
	"github.com/2beens/ironai/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultMaxTxRetries = 5

var ErrTooManyConflicts = errors.New("too many concurrent updates")

type redisReader interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
}

// RedisStore keeps the profile as a JSON string and the history as a list of JSON records.
type RedisStore struct {
	redisClient  *redis.Client
	maxTxRetries int
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(redisClient *redis.Client, maxTxRetries int) *RedisStore {
	if maxTxRetries <= 0 {
		maxTxRetries = DefaultMaxTxRetries
	}
	return &RedisStore{
		redisClient:  redisClient,
		maxTxRetries: maxTxRetries,
	}
}

func (s *RedisStore) Get(ctx context.Context, userID string) (_ *fitness.UserProfile, err error) {
	userID = fitness.NormalizeUserID(userID)
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.redis.get")
	span.SetAttributes(attribute.String("user_id", userID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	profile, err := readProfile(ctx, s.redisClient, userID)
	if err != nil {
		return nil, storageErr("get", userID, err)
	}
	return profile, nil
}

func (s *RedisStore) Put(ctx context.Context, profile *fitness.UserProfile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.redis.put")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	p, err := prepareProfile(profile)
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.String("user_id", p.UserID))

	profileBytes, err := json.Marshal(p)
	if err != nil {
		return storageErr("put", p.UserID, err)
	}
	if err := s.redisClient.Set(ctx, ProfileKey(p.UserID), profileBytes, 0).Err(); err != nil {
		return storageErr("put", p.UserID, err)
	}
	return nil
}

func (s *RedisStore) History(ctx context.Context, userID string) (_ []fitness.SessionRecord, err error) {
	userID = fitness.NormalizeUserID(userID)
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.redis.history")
	span.SetAttributes(attribute.String("user_id", userID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	history, err := readHistory(ctx, s.redisClient, userID)
	if err != nil {
		return nil, storageErr("history", userID, err)
	}
	return history, nil
}

func (s *RedisStore) AppendSession(ctx context.Context, userID string, record fitness.SessionRecord) (_ []fitness.SessionRecord, err error) {
	userID = fitness.NormalizeUserID(userID)
	record = ensureRecordID(record)
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.redis.appendSession")
	span.SetAttributes(attribute.String("user_id", userID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	history, err := readHistory(ctx, s.redisClient, userID)
	if err != nil {
		return nil, storageErr("append", userID, err)
	}
	// a record id is stored once per user, as in the sql backends
	if fitness.ContainsSession(history, record.ID) {
		return history, nil
	}

	recordBytes, err := json.Marshal(record)
	if err != nil {
		return nil, storageErr("append", userID, err)
	}
	if err := s.redisClient.RPush(ctx, HistoryKey(userID), recordBytes).Err(); err != nil {
		return nil, storageErr("append", userID, err)
	}
	return append(history, record), nil
}

func (s *RedisStore) CommitSession(
	ctx context.Context,
	userID string,
	record fitness.SessionRecord,
	progress ProgressFunc,
) (_ *CommitResult, err error) {
	userID = fitness.NormalizeUserID(userID)
	record = ensureRecordID(record)
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.redis.commitSession")
	span.SetAttributes(
		attribute.String("user_id", userID),
		attribute.String("session_id", record.ID),
	)
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	recordBytes, err := json.Marshal(record)
	if err != nil {
		return nil, storageErr("commit", userID, err)
	}

	profileKey := ProfileKey(userID)
	historyKey := HistoryKey(userID)

	var result *CommitResult
	txFunc := func(tx *redis.Tx) error {
		profile, err := readProfile(ctx, tx, userID)
		if err != nil {
			return err
		}
		history, err := readHistory(ctx, tx, userID)
		if err != nil {
			return err
		}

		if fitness.ContainsSession(history, record.ID) {
			result = commitResult(*profile, history, true)
			return nil
		}

		updated := progress(*profile)
		updated.UserID = userID
		updated.Normalize()
		profileBytes, err := json.Marshal(updated)
		if err != nil {
			return err
		}

		// only executed if neither key changed since WATCH
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.RPush(ctx, historyKey, recordBytes)
			pipe.Set(ctx, profileKey, profileBytes, 0)
			return nil
		})
		if err != nil {
			return err
		}

		result = commitResult(updated, append(history, record), false)
		return nil
	}

	for attempt := 1; attempt <= s.maxTxRetries; attempt++ {
		err = s.redisClient.Watch(ctx, txFunc, profileKey, historyKey)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return nil, storageErr("commit", userID, err)
		}
		log.Debugf("store: commit session [%s] for [%s]: optimistic lock lost, attempt %d", record.ID, userID, attempt)
	}

	return nil, storageErr("commit", userID, ErrTooManyConflicts)
}

func (s *RedisStore) Close() error {
	// the redis client is shared with the rate limiter and closed by the server
	return nil
}

func readProfile(ctx context.Context, r redisReader, userID string) (*fitness.UserProfile, error) {
	profileJson, err := r.Get(ctx, ProfileKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return fitness.DefaultProfile(userID), nil
	}
	if err != nil {
		return nil, err
	}

	return decodeProfile([]byte(profileJson), userID)
}

func readHistory(ctx context.Context, r redisReader, userID string) ([]fitness.SessionRecord, error) {
	entries, err := r.LRange(ctx, HistoryKey(userID), 0, -1).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	history := make([]fitness.SessionRecord, 0, len(entries))
	for i, entry := range entries {
		record, err := decodeRecord([]byte(entry))
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		history = append(history, record)
	}

	return history, nil
}
