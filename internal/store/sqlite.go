package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/2beens/ironai/internal/fitness"
	"github.com/2beens/ironai/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
	_ "modernc.org/sqlite"
)

type sqlQuerier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SqliteStore is the local single-user backend. All access goes through one connection.
type SqliteStore struct {
	db *sql.DB
}

var _ Store = (*SqliteStore)(nil)

// NewSqliteStore opens (or creates) the database at path and applies the schema.
// Use ":memory:" for a throwaway database.
func NewSqliteStore(path string) (*SqliteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite [%s]: %w", path, err)
	}
	// a single connection keeps :memory: databases alive and serializes writers
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA busy_timeout = 5000`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure sqlite: %w", err)
	}

	if err := migrateSqlite(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SqliteStore{
		db: db,
	}, nil
}

func (s *SqliteStore) Get(ctx context.Context, userID string) (_ *fitness.UserProfile, err error) {
	userID = fitness.NormalizeUserID(userID)
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.sqlite.get")
	span.SetAttributes(attribute.String("user_id", userID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	profile, err := s.readProfile(ctx, s.db, userID)
	if err != nil {
		return nil, storageErr("get", userID, err)
	}
	return profile, nil
}

func (s *SqliteStore) Put(ctx context.Context, profile *fitness.UserProfile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.sqlite.put")
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
	if err := upsertSqliteProfile(ctx, s.db, p.UserID, profileBytes); err != nil {
		return storageErr("put", p.UserID, err)
	}
	return nil
}

func (s *SqliteStore) History(ctx context.Context, userID string) (_ []fitness.SessionRecord, err error) {
	userID = fitness.NormalizeUserID(userID)
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.sqlite.history")
	span.SetAttributes(attribute.String("user_id", userID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	history, err := s.readHistory(ctx, s.db, userID)
	if err != nil {
		return nil, storageErr("history", userID, err)
	}
	return history, nil
}

func (s *SqliteStore) AppendSession(ctx context.Context, userID string, record fitness.SessionRecord) (_ []fitness.SessionRecord, err error) {
	userID = fitness.NormalizeUserID(userID)
	record = ensureRecordID(record)
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.sqlite.appendSession")
	span.SetAttributes(attribute.String("user_id", userID))
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	recordBytes, err := json.Marshal(record)
	if err != nil {
		return nil, storageErr("append", userID, err)
	}
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO ironai_session (id, user_id, data)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id, id) DO NOTHING
	`, record.ID, userID, string(recordBytes)); err != nil {
		return nil, storageErr("append", userID, err)
	}

	history, err := s.readHistory(ctx, s.db, userID)
	if err != nil {
		return nil, storageErr("append", userID, err)
	}
	return history, nil
}

func (s *SqliteStore) CommitSession(
	ctx context.Context,
	userID string,
	record fitness.SessionRecord,
	progress ProgressFunc,
) (_ *CommitResult, err error) {
	userID = fitness.NormalizeUserID(userID)
	record = ensureRecordID(record)
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.sqlite.commitSession")
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

func (s *SqliteStore) commit(
	ctx context.Context,
	userID string,
	record fitness.SessionRecord,
	progress ProgressFunc,
) (_ *CommitResult, err error) {
	recordBytes, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if committed {
			return
		}
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("failed to rollback transaction: %w", rollbackErr))
		}
	}()

	profile, err := s.readProfile(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO ironai_session (id, user_id, data)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id, id) DO NOTHING
	`, record.ID, userID, string(recordBytes))
	if err != nil {
		return nil, err
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}

	if inserted == 0 {
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
	if err := upsertSqliteProfile(ctx, tx, userID, profileBytes); err != nil {
		return nil, err
	}

	history, err := s.readHistory(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	return commitResult(updated, history, false), nil
}

func (s *SqliteStore) Close() error {
	return s.db.Close()
}

func (s *SqliteStore) readProfile(ctx context.Context, q sqlQuerier, userID string) (*fitness.UserProfile, error) {
	var data string
	err := q.QueryRowContext(ctx, `SELECT data FROM ironai_profile WHERE user_id = ?`, userID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return fitness.DefaultProfile(userID), nil
	}
	if err != nil {
		return nil, err
	}
	return decodeProfile([]byte(data), userID)
}

func (s *SqliteStore) readHistory(ctx context.Context, q sqlQuerier, userID string) ([]fitness.SessionRecord, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT data
		FROM ironai_session
		WHERE user_id = ?
		ORDER BY seq
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]fitness.SessionRecord, 0)
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		record, err := decodeRecord([]byte(data))
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

type sqlExecer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertSqliteProfile(ctx context.Context, e sqlExecer, userID string, profileBytes []byte) error {
	_, err := e.ExecContext(ctx, `
		INSERT INTO ironai_profile (user_id, data)
		VALUES (?, ?)
		ON CONFLICT (user_id) DO UPDATE
			SET data = excluded.data, updated_at = CURRENT_TIMESTAMP
	`, userID, string(profileBytes))
	return err
}
