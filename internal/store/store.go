package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/2beens/ironai/internal/fitness"

	"github.com/google/uuid"
)

const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSqlite   = "sqlite"
)

// ProgressFunc derives the profile to persist from the one currently stored.
// It is invoked at most once per successful, non-duplicate commit.
type ProgressFunc func(profile fitness.UserProfile) fitness.UserProfile

type CommitResult struct {
	Profile   *fitness.UserProfile
	History   []fitness.SessionRecord
	Duplicate bool
}

type Store interface {
	Get(ctx context.Context, userID string) (*fitness.UserProfile, error)
	Put(ctx context.Context, profile *fitness.UserProfile) error
	History(ctx context.Context, userID string) ([]fitness.SessionRecord, error)
	AppendSession(ctx context.Context, userID string, record fitness.SessionRecord) ([]fitness.SessionRecord, error)
	// CommitSession appends the record and stores the progressed profile as one unit.
	// A record whose id is already present in the history is not applied again.
	CommitSession(ctx context.Context, userID string, record fitness.SessionRecord, progress ProgressFunc) (*CommitResult, error)
	Close() error
}

var ErrNilProfile = errors.New("profile is nil")

type StorageError struct {
	Op     string
	UserID string
	Err    error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s [%s]: %s", e.Op, e.UserID, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op, userID string, err error) error {
	return &StorageError{Op: op, UserID: userID, Err: err}
}

func IsValidBackend(backend string) bool {
	switch backend {
	case BackendRedis, BackendPostgres, BackendSqlite:
		return true
	}
	return false
}

func ProfileKey(userID string) string {
	return "profile:" + userID
}

func HistoryKey(userID string) string {
	return "history:" + userID
}

// prepareProfile normalizes a profile for writing; it returns the copy to persist.
func prepareProfile(profile *fitness.UserProfile) (*fitness.UserProfile, error) {
	if profile == nil {
		return nil, ErrNilProfile
	}
	p := profile.Clone()
	p.UserID = fitness.NormalizeUserID(p.UserID)
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func commitResult(profile fitness.UserProfile, history []fitness.SessionRecord, duplicate bool) *CommitResult {
	if history == nil {
		history = []fitness.SessionRecord{}
	}
	return &CommitResult{
		Profile:   &profile,
		History:   history,
		Duplicate: duplicate,
	}
}

// ensureRecordID assigns an id to records built without one, so the record stays deduplicable.
func ensureRecordID(record fitness.SessionRecord) fitness.SessionRecord {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	return record
}

func decodeProfile(data []byte, userID string) (*fitness.UserProfile, error) {
	var profile fitness.UserProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("corrupted profile: %w", err)
	}
	if profile.UserID == "" {
		profile.UserID = userID
	}
	profile.Normalize()
	return &profile, nil
}

func decodeRecord(data []byte) (fitness.SessionRecord, error) {
	var record fitness.SessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return fitness.SessionRecord{}, fmt.Errorf("corrupted history entry: %w", err)
	}
	return record, nil
}
