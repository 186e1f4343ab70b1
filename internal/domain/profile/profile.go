package profile

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/babygenie/service-planner/internal/domain/planning"
	"github.com/babygenie/service-planner/internal/platform/domain"
)

// ProfileStatus represents the lifecycle state of a family profile.
type ProfileStatus string

const (
	ProfileStatusActive   ProfileStatus = "active"
	ProfileStatusArchived ProfileStatus = "archived"
)

const (
	maxChildren = 5
	clockLayout = "15:04"
)

// Details holds the editable fields of a profile.
type Details struct {
	Name          string
	Email         string
	Children      []planning.ChildAge
	Postcode      string
	MaxTravelTime int
	TransportMode string
	Budget        float64
	StartTime     string
	EndTime       string
}

// Profile is the aggregate root for a family's saved planning defaults.
type Profile struct {
	id            uuid.UUID
	name          string
	email         string
	children      []planning.ChildAge
	postcode      string
	maxTravelTime int
	transportMode planning.TransportMode
	budget        float64
	startTime     string
	endTime       string
	status        ProfileStatus
	version       int64
	createdAt     time.Time
	updatedAt     time.Time
}

// NewProfile creates a new active profile with validated fields.
func NewProfile(d Details) (*Profile, error) {
	if strings.TrimSpace(d.Name) == "" {
		return nil, domain.NewValidationError("name is required")
	}
	if d.TransportMode == "" {
		d.TransportMode = string(planning.TransportCar)
	}
	if d.StartTime == "" {
		d.StartTime = "09:00"
	}
	if d.EndTime == "" {
		d.EndTime = "17:00"
	}
	if err := validate(d); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Profile{
		id:            uuid.New(),
		name:          strings.TrimSpace(d.Name),
		email:         strings.TrimSpace(d.Email),
		children:      d.Children,
		postcode:      planning.NormalizePostcode(d.Postcode),
		maxTravelTime: d.MaxTravelTime,
		transportMode: planning.TransportMode(d.TransportMode),
		budget:        d.Budget,
		startTime:     d.StartTime,
		endTime:       d.EndTime,
		status:        ProfileStatusActive,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// Reconstruct rebuilds a Profile from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	d Details,
	status ProfileStatus,
	version int64,
	createdAt, updatedAt time.Time,
) *Profile {
	return &Profile{
		id:            id,
		name:          d.Name,
		email:         d.Email,
		children:      d.Children,
		postcode:      d.Postcode,
		maxTravelTime: d.MaxTravelTime,
		transportMode: planning.TransportMode(d.TransportMode),
		budget:        d.Budget,
		startTime:     d.StartTime,
		endTime:       d.EndTime,
		status:        status,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func validate(d Details) error {
	if d.Email != "" {
		if _, err := mail.ParseAddress(d.Email); err != nil {
			return domain.NewValidationError(fmt.Sprintf("invalid email: %s", d.Email))
		}
	}
	if len(d.Children) == 0 {
		return domain.NewValidationError("at least one child is required")
	}
	if len(d.Children) > maxChildren {
		return domain.NewValidationError(fmt.Sprintf("at most %d children are supported", maxChildren))
	}
	for i, c := range d.Children {
		if c.AgeYears < 0 || c.AgeMonths < 0 || c.AgeMonths > 11 {
			return domain.NewValidationError(fmt.Sprintf("child %d: invalid age", i+1))
		}
	}
	if len(strings.TrimSpace(d.Postcode)) < 5 {
		return domain.NewValidationError("a valid postcode is required")
	}
	if d.Budget < planning.MinBudget || d.Budget > planning.MaxBudget {
		return domain.NewValidationError(
			fmt.Sprintf("budget must be between %.0f and %.0f", planning.MinBudget, planning.MaxBudget))
	}
	if d.MaxTravelTime < planning.MinTravelMinutes || d.MaxTravelTime > planning.MaxTravelMinutes {
		return domain.NewValidationError(
			fmt.Sprintf("max travel time must be between %d and %d minutes",
				planning.MinTravelMinutes, planning.MaxTravelMinutes))
	}
	if !planning.TransportMode(d.TransportMode).IsValid() {
		return domain.NewValidationError(fmt.Sprintf("invalid transport mode: %s", d.TransportMode))
	}
	start, err := time.Parse(clockLayout, d.StartTime)
	if err != nil {
		return domain.NewValidationError(fmt.Sprintf("invalid start time: %s", d.StartTime))
	}
	end, err := time.Parse(clockLayout, d.EndTime)
	if err != nil {
		return domain.NewValidationError(fmt.Sprintf("invalid end time: %s", d.EndTime))
	}
	if !end.After(start) {
		return domain.NewValidationError("end time must be after start time")
	}
	return nil
}

// --- Getters ---

func (p *Profile) ID() uuid.UUID                         { return p.id }
func (p *Profile) Name() string                          { return p.name }
func (p *Profile) Email() string                         { return p.email }
func (p *Profile) Children() []planning.ChildAge         { return p.children }
func (p *Profile) Postcode() string                      { return p.postcode }
func (p *Profile) MaxTravelTime() int                    { return p.maxTravelTime }
func (p *Profile) TransportMode() planning.TransportMode { return p.transportMode }
func (p *Profile) Budget() float64                       { return p.budget }
func (p *Profile) StartTime() string                     { return p.startTime }
func (p *Profile) EndTime() string                       { return p.endTime }
func (p *Profile) Status() ProfileStatus                 { return p.status }
func (p *Profile) Version() int64                        { return p.version }
func (p *Profile) CreatedAt() time.Time                  { return p.createdAt }
func (p *Profile) UpdatedAt() time.Time                  { return p.updatedAt }

// Details returns the editable fields.
func (p *Profile) Details() Details {
	return Details{
		Name:          p.name,
		Email:         p.email,
		Children:      p.children,
		Postcode:      p.postcode,
		MaxTravelTime: p.maxTravelTime,
		TransportMode: string(p.transportMode),
		Budget:        p.budget,
		StartTime:     p.startTime,
		EndTime:       p.endTime,
	}
}

// --- Behavior ---

// Update applies a partial update; zero-valued fields keep their current value.
// The merged result is validated before anything changes.
func (p *Profile) Update(d Details) error {
	merged := p.Details()
	if strings.TrimSpace(d.Name) != "" {
		merged.Name = strings.TrimSpace(d.Name)
	}
	if d.Email != "" {
		merged.Email = strings.TrimSpace(d.Email)
	}
	if len(d.Children) > 0 {
		merged.Children = d.Children
	}
	if d.Postcode != "" {
		merged.Postcode = planning.NormalizePostcode(d.Postcode)
	}
	if d.MaxTravelTime != 0 {
		merged.MaxTravelTime = d.MaxTravelTime
	}
	if d.TransportMode != "" {
		merged.TransportMode = d.TransportMode
	}
	if d.Budget != 0 {
		merged.Budget = d.Budget
	}
	if d.StartTime != "" {
		merged.StartTime = d.StartTime
	}
	if d.EndTime != "" {
		merged.EndTime = d.EndTime
	}
	if err := validate(merged); err != nil {
		return err
	}

	p.name = merged.Name
	p.email = merged.Email
	p.children = merged.Children
	p.postcode = merged.Postcode
	p.maxTravelTime = merged.MaxTravelTime
	p.transportMode = planning.TransportMode(merged.TransportMode)
	p.budget = merged.Budget
	p.startTime = merged.StartTime
	p.endTime = merged.EndTime
	p.version++
	p.updatedAt = time.Now().UTC()
	return nil
}

// Archive marks the profile as archived.
func (p *Profile) Archive() {
	p.status = ProfileStatusArchived
	p.version++
	p.updatedAt = time.Now().UTC()
}

// IsActive returns true if the profile is active.
func (p *Profile) IsActive() bool {
	return p.status == ProfileStatusActive
}

// PlanningRequest builds a planning request for day from the saved defaults.
func (p *Profile) PlanningRequest(day time.Time, prefs planning.ActivityPreferences) planning.PlanningRequest {
	date := day.Format("2006-01-02")
	return planning.PlanningRequest{
		UserID:              p.id.String(),
		Children:            p.children,
		Postcode:            p.postcode,
		MaxTravelTime:       p.maxTravelTime,
		TransportMode:       string(p.transportMode),
		Budget:              p.budget,
		StartTime:           date + "T" + p.startTime + ":00",
		EndTime:             date + "T" + p.endTime + ":00",
		ActivityPreferences: prefs,
	}
}
