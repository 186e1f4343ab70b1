package application

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	milestoneDomain "github.com/babygenie/service-planner/internal/domain/milestone"
	planningDomain "github.com/babygenie/service-planner/internal/domain/planning"
	profileDomain "github.com/babygenie/service-planner/internal/domain/profile"
	"github.com/babygenie/service-planner/internal/platform/kafka"
)

type MockCandidateSource struct {
	mock.Mock
}

func (m *MockCandidateSource) Fetch(ctx context.Context, location string) ([]planningDomain.VenueCandidate, error) {
	args := m.Called(ctx, location)
	if v := args.Get(0); v != nil {
		return v.([]planningDomain.VenueCandidate), args.Error(1)
	}
	return nil, args.Error(1)
}

type fixedWeather string

func (w fixedWeather) Summary(context.Context, string) string { return string(w) }

type MockPlanLogRepository struct {
	mock.Mock
}

func (m *MockPlanLogRepository) Record(ctx context.Context, l *planningDomain.PlanLog) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockPlanLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*planningDomain.PlanLog, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*planningDomain.PlanLog), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPlanLogRepository) ListAll(ctx context.Context, page, limit int) ([]*planningDomain.PlanLog, int64, error) {
	args := m.Called(ctx, page, limit)
	return args.Get(0).([]*planningDomain.PlanLog), args.Get(1).(int64), args.Error(2)
}

func (m *MockPlanLogRepository) CountByTheme(ctx context.Context) (map[planningDomain.Theme]int64, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(map[planningDomain.Theme]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error {
	return m.Called(ctx, topic, event).Error(0)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*profileDomain.Profile, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*profileDomain.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileRepository) Save(ctx context.Context, p *profileDomain.Profile) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProfileRepository) Update(ctx context.Context, p *profileDomain.Profile) error {
	return m.Called(ctx, p).Error(0)
}

type MockMilestoneRepository struct {
	mock.Mock
}

func (m *MockMilestoneRepository) ForWeek(ctx context.Context, week int) ([]milestoneDomain.Milestone, error) {
	args := m.Called(ctx, week)
	if v := args.Get(0); v != nil {
		return v.([]milestoneDomain.Milestone), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMilestoneRepository) ReplaceAll(ctx context.Context, milestones []milestoneDomain.Milestone) (int, error) {
	args := m.Called(ctx, milestones)
	return args.Int(0), args.Error(1)
}

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	args := m.Called(ctx, system, prompt)
	return args.String(0), args.Error(1)
}
