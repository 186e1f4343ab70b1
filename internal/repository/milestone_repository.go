package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	milestoneDomain "github.com/babygenie/service-planner/internal/domain/milestone"
)

// MilestoneModel is the GORM model for the milestone_data table.
type MilestoneModel struct {
	ID          uint      `gorm:"primaryKey"`
	WeekStart   int       `gorm:"not null;index:idx_milestone_weeks"`
	WeekEnd     int       `gorm:"not null;index:idx_milestone_weeks"`
	Domain      string    `gorm:"size:50;not null"`
	Milestone   string    `gorm:"type:text;not null"`
	Tip         string    `gorm:"type:text"`
	RedFlag     *string   `gorm:"type:text"`
	Source      string    `gorm:"size:50;not null"`
	CitationURL string    `gorm:"column:citation_url;type:text"`
	CreatedAt   time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

// TableName returns the table name for the GORM model.
func (MilestoneModel) TableName() string {
	return "milestone_data"
}

// GormMilestoneRepository implements MilestoneRepository using GORM.
type GormMilestoneRepository struct {
	db *gorm.DB
}

// NewGormMilestoneRepository creates a new GormMilestoneRepository.
func NewGormMilestoneRepository(db *gorm.DB) *GormMilestoneRepository {
	return &GormMilestoneRepository{db: db}
}

// ForWeek returns the milestones whose band contains week, ordered by domain.
func (r *GormMilestoneRepository) ForWeek(ctx context.Context, week int) ([]milestoneDomain.Milestone, error) {
	var models []MilestoneModel
	if err := r.db.WithContext(ctx).
		Where("week_start <= ? AND week_end >= ?", week, week).
		Order("domain, id").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find milestones for week %d: %w", week, err)
	}

	milestones := make([]milestoneDomain.Milestone, len(models))
	for i, m := range models {
		milestones[i] = toMilestoneDomain(m)
	}
	return milestones, nil
}

// ReplaceAll deletes every row and inserts milestones in one transaction.
func (r *GormMilestoneRepository) ReplaceAll(ctx context.Context, milestones []milestoneDomain.Milestone) (int, error) {
	models := make([]MilestoneModel, len(milestones))
	for i, m := range milestones {
		models[i] = toMilestoneModel(m)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&MilestoneModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear milestones: %w", err)
		}
		if len(models) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(models, 100).Error; err != nil {
			return fmt.Errorf("failed to insert milestones: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(models), nil
}

func toMilestoneModel(m milestoneDomain.Milestone) MilestoneModel {
	return MilestoneModel{
		WeekStart:   m.WeekStart,
		WeekEnd:     m.WeekEnd,
		Domain:      string(m.Domain),
		Milestone:   m.Milestone,
		Tip:         m.Tip,
		RedFlag:     m.RedFlag,
		Source:      m.Source,
		CitationURL: m.CitationURL,
	}
}

func toMilestoneDomain(m MilestoneModel) milestoneDomain.Milestone {
	return milestoneDomain.Milestone{
		WeekStart:   m.WeekStart,
		WeekEnd:     m.WeekEnd,
		Domain:      milestoneDomain.Domain(m.Domain),
		Milestone:   m.Milestone,
		Tip:         m.Tip,
		RedFlag:     m.RedFlag,
		Source:      m.Source,
		CitationURL: m.CitationURL,
	}
}
