package service

import (
	"context"
	"time"

	"github.com/spec-kit/callback-service/internal/domain"
	"github.com/spec-kit/callback-service/internal/repository"
)

// CallbackStats aggregates a set of callback rows for the dashboards.
type CallbackStats struct {
	Total    int                         `json:"total"`
	DueToday int                         `json:"due_today"`
	ByType   map[domain.CallbackType]int `json:"by_type"`
}

// CheckStats aggregates check rows per plan.
type CheckStats struct {
	Total  int                      `json:"total"`
	ByPlan map[domain.CheckPlan]int `json:"by_plan"`
}

// AnalyticsService recomputes dashboard aggregates from a full fetch on every
// call; there is no incremental maintenance.
type AnalyticsService struct {
	callbacks repository.CallbackRepository
	checks    repository.CheckRepository
	now       func() time.Time
}

// NewAnalyticsService constructs the service.
func NewAnalyticsService(callbacks repository.CallbackRepository, checks repository.CheckRepository) *AnalyticsService {
	return &AnalyticsService{callbacks: callbacks, checks: checks, now: time.Now}
}

// CallbackStats computes counts over all callbacks, or one agent's.
func (s *AnalyticsService) CallbackStats(ctx context.Context, agentName *string) (*CallbackStats, error) {
	rows, err := s.callbacks.ListWithFilter(ctx, repository.CallbackFilter{AgentName: agentName})
	if err != nil {
		return nil, err
	}
	return s.aggregateCallbacks(rows), nil
}

// CheckStats computes per-plan counts over all checks, or one agent's.
func (s *AnalyticsService) CheckStats(ctx context.Context, agentName *string) (*CheckStats, error) {
	rows, err := s.checks.ListWithFilter(ctx, repository.CheckFilter{AgentName: agentName})
	if err != nil {
		return nil, err
	}

	stats := &CheckStats{
		Total:  len(rows),
		ByPlan: make(map[domain.CheckPlan]int),
	}
	for _, row := range rows {
		stats.ByPlan[row.Plan]++
	}
	return stats, nil
}

func (s *AnalyticsService) aggregateCallbacks(rows []domain.Callback) *CallbackStats {
	today := s.now().Format(domain.DateLayout)
	stats := &CallbackStats{
		Total:  len(rows),
		ByType: make(map[domain.CallbackType]int),
	}
	for _, row := range rows {
		if row.CallbackDate == today {
			stats.DueToday++
		}
		stats.ByType[row.CallbackType]++
	}
	return stats
}
