package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/babygenie/service-planner/internal/domain/planning"
	profileDomain "github.com/babygenie/service-planner/internal/domain/profile"
	"github.com/babygenie/service-planner/internal/platform/domain"
)

// ProfileModel is the GORM model for the profiles table.
type ProfileModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name          string          `gorm:"type:varchar(100);not null"`
	Email         string          `gorm:"type:varchar(255);index"`
	Children      json.RawMessage `gorm:"type:jsonb;not null"`
	Postcode      string          `gorm:"type:varchar(16);not null"`
	MaxTravelTime int             `gorm:"not null"`
	TransportMode string          `gorm:"type:varchar(20);not null;default:'car'"`
	Budget        float64         `gorm:"type:decimal(6,2);not null"`
	StartTime     string          `gorm:"type:varchar(5);not null"`
	EndTime       string          `gorm:"type:varchar(5);not null"`
	Status        string          `gorm:"type:varchar(20);not null;default:'active'"`
	Version       int64           `gorm:"not null;default:1"`
	CreatedAt     time.Time       `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt     time.Time       `gorm:"type:timestamptz;not null;default:now()"`
}

func (ProfileModel) TableName() string { return "profiles" }

// GormProfileRepository implements ProfileRepository using GORM.
type GormProfileRepository struct {
	db *gorm.DB
}

func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

func (r *GormProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*profileDomain.Profile, error) {
	var model ProfileModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Profile", id.String())
		}
		return nil, err
	}
	return toProfileDomain(&model)
}

func (r *GormProfileRepository) Save(ctx context.Context, p *profileDomain.Profile) error {
	model, err := toProfileModel(p)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(model).Error
}

func (r *GormProfileRepository) Update(ctx context.Context, p *profileDomain.Profile) error {
	model, err := toProfileModel(p)
	if err != nil {
		return err
	}
	previousVersion := p.Version() - 1

	result := r.db.WithContext(ctx).
		Model(&ProfileModel{}).
		Where("id = ? AND version = ?", model.ID, previousVersion).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("profile was modified by another transaction")
	}
	return nil
}

// --- Conversions ---

func toProfileModel(p *profileDomain.Profile) (*ProfileModel, error) {
	children, err := json.Marshal(p.Children())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal children: %w", err)
	}
	return &ProfileModel{
		ID:            p.ID(),
		Name:          p.Name(),
		Email:         p.Email(),
		Children:      children,
		Postcode:      p.Postcode(),
		MaxTravelTime: p.MaxTravelTime(),
		TransportMode: string(p.TransportMode()),
		Budget:        p.Budget(),
		StartTime:     p.StartTime(),
		EndTime:       p.EndTime(),
		Status:        string(p.Status()),
		Version:       p.Version(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}, nil
}

func toProfileDomain(m *ProfileModel) (*profileDomain.Profile, error) {
	var children []planning.ChildAge
	if err := json.Unmarshal(m.Children, &children); err != nil {
		return nil, fmt.Errorf("failed to unmarshal children: %w", err)
	}
	return profileDomain.Reconstruct(
		m.ID,
		profileDomain.Details{
			Name:          m.Name,
			Email:         m.Email,
			Children:      children,
			Postcode:      m.Postcode,
			MaxTravelTime: m.MaxTravelTime,
			TransportMode: m.TransportMode,
			Budget:        m.Budget,
			StartTime:     m.StartTime,
			EndTime:       m.EndTime,
		},
		profileDomain.ProfileStatus(m.Status),
		m.Version,
		m.CreatedAt, m.UpdatedAt,
	), nil
}
