package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/babygenie/service-planner/internal/domain/planning"
	profileDomain "github.com/babygenie/service-planner/internal/domain/profile"
	"github.com/babygenie/service-planner/internal/platform/domain"
)

// CreateProfileRequest is the request DTO for creating a family profile.
type CreateProfileRequest struct {
	Name          string              `json:"name" binding:"required"`
	Email         string              `json:"email"`
	Children      []planning.ChildAge `json:"children" binding:"required"`
	Postcode      string              `json:"postcode" binding:"required"`
	MaxTravelTime int                 `json:"maxTravelTime"`
	TransportMode string              `json:"transportMode"`
	Budget        float64             `json:"budget"`
	StartTime     string              `json:"startTime"`
	EndTime       string              `json:"endTime"`
}

// UpdateProfileRequest is the request DTO for updating a family profile.
// Empty fields are left unchanged.
type UpdateProfileRequest struct {
	Name          string              `json:"name"`
	Email         string              `json:"email"`
	Children      []planning.ChildAge `json:"children"`
	Postcode      string              `json:"postcode"`
	MaxTravelTime int                 `json:"maxTravelTime"`
	TransportMode string              `json:"transportMode"`
	Budget        float64             `json:"budget"`
	StartTime     string              `json:"startTime"`
	EndTime       string              `json:"endTime"`
}

// ProfilePlanRequest asks for plans on a given day using a profile's defaults.
type ProfilePlanRequest struct {
	Date                string                       `json:"date" binding:"required"`
	ActivityPreferences planning.ActivityPreferences `json:"activityPreferences"`
}

// ProfileDTO is the API response representation of a family profile.
type ProfileDTO struct {
	ID            uuid.UUID           `json:"id"`
	Name          string              `json:"name"`
	Email         string              `json:"email,omitempty"`
	Children      []planning.ChildAge `json:"children"`
	Postcode      string              `json:"postcode"`
	MaxTravelTime int                 `json:"maxTravelTime"`
	TransportMode string              `json:"transportMode"`
	Budget        float64             `json:"budget"`
	StartTime     string              `json:"startTime"`
	EndTime       string              `json:"endTime"`
	Status        string              `json:"status"`
	Version       int64               `json:"version"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// ProfileService implements use cases for family profile management.
type ProfileService struct {
	repo   profileDomain.ProfileRepository
	logger *zap.Logger
}

// NewProfileService creates a new ProfileService.
func NewProfileService(repo profileDomain.ProfileRepository, logger *zap.Logger) *ProfileService {
	return &ProfileService{repo: repo, logger: logger}
}

// CreateProfile creates a new family profile.
func (s *ProfileService) CreateProfile(ctx context.Context, req CreateProfileRequest) (*ProfileDTO, error) {
	p, err := profileDomain.NewProfile(profileDomain.Details(req))
	if err != nil {
		return nil, fmt.Errorf("invalid profile data: %w", err)
	}

	if err := s.repo.Save(ctx, p); err != nil {
		s.logger.Error("failed to create profile", zap.Error(err))
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	s.logger.Info("profile created", zap.String("profile_id", p.ID().String()))
	result := toProfileDTO(p)
	return &result, nil
}

// GetProfile returns a single active profile by ID.
func (s *ProfileService) GetProfile(ctx context.Context, id uuid.UUID) (*ProfileDTO, error) {
	p, err := s.findActive(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toProfileDTO(p)
	return &result, nil
}

// UpdateProfile applies a partial update. A concurrent change yields a ConflictError.
func (s *ProfileService) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*ProfileDTO, error) {
	p, err := s.findActive(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := p.Update(profileDomain.Details(req)); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("failed to update profile", zap.Error(err))
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("profile updated", zap.String("profile_id", id.String()))
	result := toProfileDTO(p)
	return &result, nil
}

// ArchiveProfile hides a profile from further use.
func (s *ProfileService) ArchiveProfile(ctx context.Context, id uuid.UUID) error {
	p, err := s.findActive(ctx, id)
	if err != nil {
		return err
	}

	p.Archive()
	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("failed to archive profile", zap.Error(err))
		return fmt.Errorf("failed to archive profile: %w", err)
	}

	s.logger.Info("profile archived", zap.String("profile_id", id.String()))
	return nil
}

// PlanningRequest builds a planning request for req.Date from the profile's defaults.
func (s *ProfileService) PlanningRequest(ctx context.Context, id uuid.UUID, req ProfilePlanRequest) (planning.PlanningRequest, error) {
	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return planning.PlanningRequest{}, domain.NewValidationError(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", req.Date))
	}

	p, err := s.findActive(ctx, id)
	if err != nil {
		return planning.PlanningRequest{}, err
	}
	return p.PlanningRequest(day, req.ActivityPreferences), nil
}

func (s *ProfileService) findActive(ctx context.Context, id uuid.UUID) (*profileDomain.Profile, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsActive() {
		return nil, domain.NewNotFoundError("Profile", id.String())
	}
	return p, nil
}

func toProfileDTO(p *profileDomain.Profile) ProfileDTO {
	return ProfileDTO{
		ID:            p.ID(),
		Name:          p.Name(),
		Email:         p.Email(),
		Children:      p.Children(),
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
	}
}
