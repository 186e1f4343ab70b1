package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	planningDomain "github.com/babygenie/service-planner/internal/domain/planning"
	"github.com/babygenie/service-planner/internal/events"
	"github.com/babygenie/service-planner/internal/platform/domain"
	"github.com/babygenie/service-planner/internal/platform/kafka"
)

const candidateUpstream = "venue-source"

// EventPublisher publishes CloudEvents to a topic.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}

// PlanLogDTO is the response representation of a recorded planning request.
type PlanLogDTO struct {
	RequestID uuid.UUID                    `json:"requestId"`
	UserID    string                       `json:"userId,omitempty"`
	Postcode  string                       `json:"postcode"`
	PlanCount int                          `json:"planCount"`
	ElapsedMs int64                        `json:"elapsedMs"`
	Input     planningDomain.PlanningInput `json:"input"`
	PlanSet   planningDomain.PlanSet       `json:"planSet"`
	CreatedAt time.Time                    `json:"createdAt"`
}

// PlanStatsDTO holds aggregate plan statistics.
type PlanStatsDTO struct {
	TotalPlans int64                          `json:"total_plans"`
	ByTheme    map[planningDomain.Theme]int64 `json:"by_theme"`
}

// PlannerService orchestrates the weekend planning pipeline.
type PlannerService struct {
	source        planningDomain.CandidateSource
	weather       planningDomain.WeatherReporter
	logs          planningDomain.PlanLogRepository
	publisher     EventPublisher
	sourceTimeout time.Duration
	tracer        trace.Tracer
	logger        *zap.Logger
}

// NewPlannerService creates a new PlannerService. logs and publisher may be nil,
// in which case plans are neither recorded nor announced.
func NewPlannerService(
	source planningDomain.CandidateSource,
	weather planningDomain.WeatherReporter,
	logs planningDomain.PlanLogRepository,
	publisher EventPublisher,
	sourceTimeout time.Duration,
	logger *zap.Logger,
) *PlannerService {
	return &PlannerService{
		source:        source,
		weather:       weather,
		logs:          logs,
		publisher:     publisher,
		sourceTimeout: sourceTimeout,
		tracer:        otel.Tracer("service-planner/planner"),
		logger:        logger,
	}
}

// Plan turns a raw request into up to three themed itineraries.
func (s *PlannerService) Plan(ctx context.Context, req planningDomain.PlanningRequest) (_ *planningDomain.PlanSet, err error) {
	ctx, span := s.tracer.Start(ctx, "planner.plan")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	started := time.Now()

	in, err := planningDomain.Normalize(req)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("planner.postcode", in.Postcode))

	candidates, err := s.fetchCandidates(ctx, in.Postcode)
	if err != nil {
		return nil, err
	}

	ranked := planningDomain.Rank(candidates, in)
	set, err := planningDomain.BuildPlans(ranked, in)
	if err != nil {
		return nil, err
	}

	requestID := uuid.New()
	set.RequestID = requestID.String()
	set.WeatherSummary = s.weather.Summary(ctx, in.Postcode)
	set.GenerationTimeMs = time.Since(started).Milliseconds()

	span.SetAttributes(
		attribute.Int("planner.candidate_count", len(candidates)),
		attribute.Int("planner.plan_count", len(set.Plans)),
	)

	planLog := planningDomain.NewPlanLog(requestID, *in, set, set.GenerationTimeMs)
	s.recordPlan(ctx, planLog)
	s.publishPlanGenerated(ctx, planLog)

	s.logger.Info("weekend plans generated",
		zap.String("request_id", set.RequestID),
		zap.String("postcode", in.Postcode),
		zap.Int("candidates", len(candidates)),
		zap.Int("plans", len(set.Plans)),
		zap.Int64("elapsed_ms", set.GenerationTimeMs),
	)
	return &set, nil
}

// GetPlanLog returns a recorded planning request.
func (s *PlannerService) GetPlanLog(ctx context.Context, requestID uuid.UUID) (*PlanLogDTO, error) {
	if s.logs == nil {
		return nil, domain.NewNotFoundError("PlanLog", requestID.String())
	}
	l, err := s.logs.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	result := toPlanLogDTO(l)
	return &result, nil
}

// ListPlanLogs returns a paginated list of recorded planning requests (admin).
func (s *PlannerService) ListPlanLogs(ctx context.Context, page, limit int) ([]PlanLogDTO, int64, error) {
	if s.logs == nil {
		return []PlanLogDTO{}, 0, nil
	}
	logs, total, err := s.logs.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list plan logs: %w", err)
	}

	dtos := make([]PlanLogDTO, len(logs))
	for i, l := range logs {
		dtos[i] = toPlanLogDTO(l)
	}
	return dtos, total, nil
}

// PlanStats returns how many plans of each theme were generated (admin).
func (s *PlannerService) PlanStats(ctx context.Context) (*PlanStatsDTO, error) {
	counts := map[planningDomain.Theme]int64{}
	if s.logs != nil {
		var err error
		counts, err = s.logs.CountByTheme(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get plan stats: %w", err)
		}
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	return &PlanStatsDTO{TotalPlans: total, ByTheme: counts}, nil
}

// --- Helpers ---

type fetchResult struct {
	candidates []planningDomain.VenueCandidate
	err        error
}

// fetchCandidates bounds the source call by sourceTimeout even if the source
// ignores its context.
func (s *PlannerService) fetchCandidates(ctx context.Context, location string) ([]planningDomain.VenueCandidate, error) {
	if s.sourceTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.sourceTimeout)
		defer cancel()
	}

	done := make(chan fetchResult, 1)
	go func() {
		candidates, err := s.source.Fetch(ctx, location)
		done <- fetchResult{candidates: candidates, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return nil, domain.NewUpstreamError(candidateUpstream, res.err)
		}
		return res.candidates, nil
	case <-ctx.Done():
		return nil, domain.NewUpstreamError(candidateUpstream, ctx.Err())
	}
}

func (s *PlannerService) recordPlan(ctx context.Context, l *planningDomain.PlanLog) {
	if s.logs == nil {
		return
	}
	if err := s.logs.Record(ctx, l); err != nil {
		s.logger.Error("failed to record plan log",
			zap.String("request_id", l.RequestID().String()),
			zap.Error(err),
		)
	}
}

func (s *PlannerService) publishPlanGenerated(ctx context.Context, l *planningDomain.PlanLog) {
	themes := l.Plans().Themes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = string(t)
	}

	evt := events.PlanGeneratedEvent{
		RequestID:  l.RequestID().String(),
		UserID:     l.UserID(),
		Postcode:   l.Input().Postcode,
		PlanCount:  l.PlanCount(),
		Themes:     names,
		ElapsedMs:  l.ElapsedMs(),
		OccurredAt: time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicPlannerEvents, events.PlanGenerated, evt.RequestID, evt)
}

func (s *PlannerService) publishEvent(ctx context.Context, topic, eventType, key string, data interface{}) {
	if s.publisher == nil {
		return
	}
	cloudEvent, err := kafka.NewCloudEvent(events.ServiceSource, eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.publisher.PublishEvent(ctx, topic, cloudEvent.WithSubject(key)); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func toPlanLogDTO(l *planningDomain.PlanLog) PlanLogDTO {
	return PlanLogDTO{
		RequestID: l.RequestID(),
		UserID:    l.UserID(),
		Postcode:  l.Input().Postcode,
		PlanCount: l.PlanCount(),
		ElapsedMs: l.ElapsedMs(),
		Input:     l.Input(),
		PlanSet:   l.Plans(),
		CreatedAt: l.CreatedAt(),
	}
}
