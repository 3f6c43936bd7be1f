package analytics

import (
	"context"
	"fmt"

	"github.com/leadpilot/leadpilot/pkg/domain"
)

// Snapshots are capped at this many leads, matching the record store's page
// ceiling.
const snapshotLimit = 1000

// Service computes dashboard aggregates over a lead collection snapshot.
type Service struct {
	store domain.LeadStore
}

// NewService creates a new analytics service.
func NewService(store domain.LeadStore) *Service {
	return &Service{store: store}
}

// GetOverview returns the dashboard overview cards.
func (s *Service) GetOverview(ctx context.Context) (*Overview, error) {
	leads, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	overview := ComputeOverview(leads)
	return &overview, nil
}

// GetPipeline returns lead counts per pipeline stage, zero-filled, in
// canonical order.
func (s *Service) GetPipeline(ctx context.Context) ([]PipelineEntry, error) {
	leads, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return AggregatePipeline(leads), nil
}

// GetSources returns lead counts per source, omitting empty sources.
func (s *Service) GetSources(ctx context.Context) ([]SourceEntry, error) {
	leads, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return AggregateSources(leads), nil
}

// GetFunnel returns the forward-progress funnel.
func (s *Service) GetFunnel(ctx context.Context) ([]FunnelStage, error) {
	pipeline, err := s.GetPipeline(ctx)
	if err != nil {
		return nil, err
	}
	return Funnel(pipeline), nil
}

func (s *Service) snapshot(ctx context.Context) ([]domain.Lead, error) {
	leads, err := s.store.ListLeads(ctx, domain.LeadFilter{MaxRecords: snapshotLimit})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leads: %w", err)
	}
	return leads, nil
}
