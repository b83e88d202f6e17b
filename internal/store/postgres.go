package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/2beens/ironai/internal/fitness"
	"github.com/2beens/ironai/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PsqlStore struct {
	db *pgxpool.Pool
}

var _ Store = (*PsqlStore)(nil)

// NewPsqlStore wraps an already migrated pool (see MigratePostgres).
func NewPsqlStore(db *pgxpool.Pool) *PsqlStore {
	return &PsqlStore{
		db: db,
	}
}

func (s *PsqlStore) Get(ctx context.Context, userID string) (_ *fitness.UserProfile, err error) {
	userID = fitness.NormalizeUserID(userID)
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.psql.get")
	span.SetAttributes(attribute.String("user_id", userID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	profile, err := s.readProfile(ctx, s.db, userID, false)
	if err != nil {
		return nil, storageErr("get", userID, err)
	}
	return profile, nil
}

func (s *PsqlStore) Put(ctx context.Context, profile *fitness.UserProfile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.psql.put")
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

	if _, err := s.db.Exec(ctx, `
		INSERT INTO ironai_profile (user_id, data)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
			SET data = EXCLUDED.data, updated_at = now()
	`, p.UserID, profileBytes); err != nil {
		return storageErr("put", p.UserID, err)
	}

	return nil
}

func (s *PsqlStore) History(ctx context.Context, userID string) (_ []fitness.SessionRecord, err error) {
	userID = fitness.NormalizeUserID(userID)
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.psql.history")
	span.SetAttributes(attribute.String("user_id", userID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	history, err := s.readHistory(ctx, s.db, userID)
	if err != nil {
		return nil, storageErr("history", userID, err)
	}
	return history, nil
}

func (s *PsqlStore) AppendSession(ctx context.Context, userID string, record fitness.SessionRecord) (_ []fitness.SessionRecord, err error) {
	userID = fitness.NormalizeUserID(userID)
	record = ensureRecordID(record)
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.psql.appendSession")
	span.SetAttributes(attribute.String("user_id", userID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	recordBytes, err := json.Marshal(record)
	if err != nil {
		return nil, storageErr("append", userID, err)
	}

	if _, err := s.db.Exec(ctx, `
		INSERT INTO ironai_session (id, user_id, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, id) DO NOTHING
	`, record.ID, userID, recordBytes); err != nil {
		return nil, storageErr("append", userID, err)
	}

	history, err := s.readHistory(ctx, s.db, userID)
	if err != nil {
		return nil, storageErr("append", userID, err)
	}
	return history, nil
}

func (s *PsqlStore) CommitSession(
	ctx context.Context,
	userID string,
	record fitness.SessionRecord,
	progress ProgressFunc,
) (_ *CommitResult, err error) {
	userID = fitness.NormalizeUserID(userID)
	record = ensureRecordID(record)
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.psql.commitSession")
	span.SetAttributes(
		attribute.String("user_id", userID),
		attribute.String("session_id", record.ID),
	)
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	result, err := s.commit(ctx, userID, record, progress)
	if err != nil {
		return nil, storageErr("commit", userID, err)
	}
	return result, nil
}

func (s *PsqlStore) commit(
	ctx context.Context,
	userID string,
	record fitness.SessionRecord,
	progress ProgressFunc,
) (_ *CommitResult, err error) {
	recordBytes, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		rollbackErr := tx.Rollback(ctx)
		if rollbackErr == nil || errors.Is(rollbackErr, pgx.ErrTxClosed) {
			return
		}
		if err != nil {
			err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
		} else {
			err = fmt.Errorf("failed to rollback transaction: %w", rollbackErr)
		}
	}()

	defaultBytes, err := json.Marshal(fitness.DefaultProfile(userID))
	if err != nil {
		return nil, err
	}
	// the profile row must exist for FOR UPDATE to serialize the first commits of a user
	if _, err := tx.Exec(ctx, `
		INSERT INTO ironai_profile (user_id, data)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING
	`, userID, defaultBytes); err != nil {
		return nil, err
	}

	profile, err := s.readProfile(ctx, tx, userID, true)
	if err != nil {
		return nil, err
	}

	tag, err := tx.Exec(ctx, `
		INSERT INTO ironai_session (id, user_id, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, id) DO NOTHING
	`, record.ID, userID, recordBytes)
	if err != nil {
		return nil, err
	}

	if tag.RowsAffected() == 0 {
		history, err := s.readHistory(ctx, tx, userID)
		if err != nil {
			return nil, err
		}
		return commitResult(*profile, history, true), nil
	}

	updated := progress(*profile)
	updated.UserID = userID
	updated.Normalize()
	profileBytes, err := json.Marshal(updated)
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO ironai_profile (user_id, data)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
			SET data = EXCLUDED.data, updated_at = now()
	`, userID, profileBytes); err != nil {
		return nil, err
	}

	history, err := s.readHistory(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	return commitResult(updated, history, false), nil
}

func (s *PsqlStore) Close() error {
	// the pool is owned and closed by the server
	return nil
}

func (s *PsqlStore) readProfile(ctx context.Context, q querier, userID string, forUpdate bool) (*fitness.UserProfile, error) {
	query := `SELECT data FROM ironai_profile WHERE user_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var data []byte
	err := q.QueryRow(ctx, query, userID).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return fitness.DefaultProfile(userID), nil
	}
	if err != nil {
		return nil, err
	}

	return decodeProfile(data, userID)
}

func (s *PsqlStore) readHistory(ctx context.Context, q querier, userID string) ([]fitness.SessionRecord, error) {
	rows, err := q.Query(ctx, `
		SELECT data
		FROM ironai_session
		WHERE user_id = $1
		ORDER BY seq
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]fitness.SessionRecord, 0)
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		record, err := decodeRecord(data)
		if err != nil {
			return nil, err
		}
		history = append(history, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}
