package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	milestoneDomain "github.com/babygenie/service-planner/internal/domain/milestone"
)

// MilestoneService handles developmental milestone lookups and seeding.
type MilestoneService struct {
	repo   milestoneDomain.MilestoneRepository
	logger *zap.Logger
}

// NewMilestoneService creates a new MilestoneService.
func NewMilestoneService(repo milestoneDomain.MilestoneRepository, logger *zap.Logger) *MilestoneService {
	return &MilestoneService{repo: repo, logger: logger}
}

// ForWeek returns the milestones expected in the given week of life.
func (s *MilestoneService) ForWeek(ctx context.Context, week int) ([]milestoneDomain.Milestone, error) {
	if err := milestoneDomain.ValidateWeek(week); err != nil {
		return nil, err
	}
	milestones, err := s.repo.ForWeek(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("failed to get milestones: %w", err)
	}
	return milestones, nil
}

// Seed replaces the stored milestones with the embedded catalog.
func (s *MilestoneService) Seed(ctx context.Context) (int, error) {
	catalog, err := milestoneDomain.Catalog()
	if err != nil {
		return 0, err
	}

	n, err := s.repo.ReplaceAll(ctx, catalog)
	if err != nil {
		s.logger.Error("failed to seed milestones", zap.Error(err))
		return 0, fmt.Errorf("failed to seed milestones: %w", err)
	}

	s.logger.Info("milestones seeded", zap.Int("count", n))
	return n, nil
}
