package mcptools

import (
	"context"
	"fmt"

	"github.com/2beens/ironai/internal/badges"
	"github.com/2beens/ironai/internal/fitness"
)

// ProfileReader is the read side of the profile store.
type ProfileReader interface {
	Get(ctx context.Context, userID string) (*fitness.UserProfile, error)
	History(ctx context.Context, userID string) ([]fitness.SessionRecord, error)
}

// contextService provides training context for MCP tools. Used by Handler for testability.
type contextService interface {
	GetProfile(ctx context.Context, userID string) (*fitness.UserProfile, error)
	GetHistory(ctx context.Context, userID string, limit int) ([]fitness.SessionRecord, error)
	GetBadges(ctx context.Context, userID string) ([]badges.Status, error)
	GetStats(ctx context.Context, userID string, sessions int) (*Stats, error)
}

type Stats struct {
	Profile *fitness.UserProfile  `json:"profile"`
	Totals  fitness.Totals        `json:"totals"`
	Series  []fitness.VolumePoint `json:"series"`
}

// ContextService reads profiles and histories straight from the store.
type ContextService struct {
	store ProfileReader
}

func NewContextService(store ProfileReader) *ContextService {
	return &ContextService{
		store: store,
	}
}

func (s *ContextService) GetProfile(ctx context.Context, userID string) (*fitness.UserProfile, error) {
	return s.store.Get(ctx, fitness.NormalizeUserID(userID))
}

// GetHistory returns the last limit sessions, oldest first. limit <= 0 returns everything.
func (s *ContextService) GetHistory(ctx context.Context, userID string, limit int) ([]fitness.SessionRecord, error) {
	history, err := s.store.History(ctx, fitness.NormalizeUserID(userID))
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}
	return history, nil
}

func (s *ContextService) GetBadges(ctx context.Context, userID string) ([]badges.Status, error) {
	history, err := s.store.History(ctx, fitness.NormalizeUserID(userID))
	if err != nil {
		return nil, err
	}
	return badges.Evaluate(history), nil
}

func (s *ContextService) GetStats(ctx context.Context, userID string, sessions int) (*Stats, error) {
	userID = fitness.NormalizeUserID(userID)
	profile, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	history, err := s.store.History(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}
	return &Stats{
		Profile: profile,
		Totals:  fitness.HistoryTotals(history),
		Series:  fitness.VolumeSeries(history, sessions),
	}, nil
}
