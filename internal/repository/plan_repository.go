package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	planningDomain "github.com/babygenie/service-planner/internal/domain/planning"
	"github.com/babygenie/service-planner/internal/platform/domain"
)

// PlanLogModel is the GORM model for the plan_logs table.
type PlanLogModel struct {
	RequestID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID    string          `gorm:"size:64;index"`
	Postcode  string          `gorm:"size:16;index"`
	PlanCount int             `gorm:"not null"`
	Themes    string          `gorm:"size:64;not null;default:''"`
	Input     json.RawMessage `gorm:"type:jsonb;not null"`
	PlanSet   json.RawMessage `gorm:"type:jsonb;not null"`
	ElapsedMs int64           `gorm:"not null"`
	CreatedAt time.Time       `gorm:"type:timestamptz;not null;index"`
}

// TableName returns the table name for the GORM model.
func (PlanLogModel) TableName() string {
	return "plan_logs"
}

// GormPlanLogRepository is the GORM-based implementation of PlanLogRepository.
type GormPlanLogRepository struct {
	db *gorm.DB
}

// NewGormPlanLogRepository creates a new GormPlanLogRepository.
func NewGormPlanLogRepository(db *gorm.DB) *GormPlanLogRepository {
	return &GormPlanLogRepository{db: db}
}

// Record persists a plan log.
func (r *GormPlanLogRepository) Record(ctx context.Context, log *planningDomain.PlanLog) error {
	model, err := toPlanLogModel(log)
	if err != nil {
		return fmt.Errorf("failed to convert plan log to model: %w", err)
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save plan log: %w", err)
	}
	return nil
}

// FindByID retrieves a plan log by its request id.
func (r *GormPlanLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*planningDomain.PlanLog, error) {
	var model PlanLogModel
	if err := r.db.WithContext(ctx).Where("request_id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("PlanLog", id.String())
		}
		return nil, fmt.Errorf("failed to find plan log: %w", err)
	}
	return toDomainPlanLog(&model)
}

// ListAll retrieves plan logs, newest first, with pagination (admin).
func (r *GormPlanLogRepository) ListAll(ctx context.Context, page, limit int) ([]*planningDomain.PlanLog, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&PlanLogModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count plan logs: %w", err)
	}

	var models []PlanLogModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list plan logs: %w", err)
	}

	logs := make([]*planningDomain.PlanLog, len(models))
	for i := range models {
		l, err := toDomainPlanLog(&models[i])
		if err != nil {
			return nil, 0, err
		}
		logs[i] = l
	}
	return logs, total, nil
}

// CountByTheme returns how many recorded plans used each theme (admin).
func (r *GormPlanLogRepository) CountByTheme(ctx context.Context) (map[planningDomain.Theme]int64, error) {
	type themeCount struct {
		Theme string
		Count int64
	}
	var results []themeCount
	if err := r.db.WithContext(ctx).Raw(
		`SELECT theme, count(*) AS count
		   FROM plan_logs, unnest(string_to_array(themes, ',')) AS theme
		  WHERE themes <> ''
		  GROUP BY theme`,
	).Scan(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by theme: %w", err)
	}

	counts := make(map[planningDomain.Theme]int64, len(results))
	for _, tc := range results {
		counts[planningDomain.Theme(tc.Theme)] = tc.Count
	}
	return counts, nil
}

// --- Conversion Helpers ---

func toPlanLogModel(l *planningDomain.PlanLog) (*PlanLogModel, error) {
	inputJSON, err := json.Marshal(l.Input())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input: %w", err)
	}
	planSetJSON, err := json.Marshal(l.Plans())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan set: %w", err)
	}

	themes := l.Plans().Themes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = string(t)
	}

	return &PlanLogModel{
		RequestID: l.RequestID(),
		UserID:    l.UserID(),
		Postcode:  l.Input().Postcode,
		PlanCount: l.PlanCount(),
		Themes:    strings.Join(names, ","),
		Input:     inputJSON,
		PlanSet:   planSetJSON,
		ElapsedMs: l.ElapsedMs(),
		CreatedAt: l.CreatedAt(),
	}, nil
}

func toDomainPlanLog(m *PlanLogModel) (*planningDomain.PlanLog, error) {
	var input planningDomain.PlanningInput
	if err := json.Unmarshal(m.Input, &input); err != nil {
		return nil, fmt.Errorf("failed to unmarshal input: %w", err)
	}
	var set planningDomain.PlanSet
	if err := json.Unmarshal(m.PlanSet, &set); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan set: %w", err)
	}

	return planningDomain.ReconstructPlanLog(
		m.RequestID,
		m.UserID,
		input,
		set,
		m.ElapsedMs,
		m.CreatedAt,
	), nil
}
