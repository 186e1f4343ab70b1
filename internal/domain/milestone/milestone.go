package milestone

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/babygenie/service-planner/internal/platform/domain"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Weeks covered by the catalog.
const (
	FirstWeek = 1
	LastWeek  = 52
)

// Domain is the developmental area a milestone belongs to.
type Domain string

const (
	DomainPhysical      Domain = "physical"
	DomainSocial        Domain = "social"
	DomainCommunication Domain = "communication"
	DomainFeeding       Domain = "feeding"
	DomainBrain         Domain = "brain"
)

// IsValid returns true if the domain is recognized.
func (d Domain) IsValid() bool {
	switch d {
	case DomainPhysical, DomainSocial, DomainCommunication, DomainFeeding, DomainBrain:
		return true
	}
	return false
}

// Milestone is one expected development step for a band of weeks.
type Milestone struct {
	WeekStart   int     `json:"weekStart" yaml:"week_start"`
	WeekEnd     int     `json:"weekEnd" yaml:"week_end"`
	Domain      Domain  `json:"domain" yaml:"domain"`
	Milestone   string  `json:"milestone" yaml:"milestone"`
	Tip         string  `json:"tip" yaml:"tip"`
	RedFlag     *string `json:"redFlag,omitempty" yaml:"red_flag"`
	Source      string  `json:"source" yaml:"source"`
	CitationURL string  `json:"citationUrl" yaml:"citation_url"`
}

// Covers reports whether week falls inside the milestone's band.
func (m Milestone) Covers(week int) bool {
	return week >= m.WeekStart && week <= m.WeekEnd
}

// Validate checks the band and required text.
func (m Milestone) Validate() error {
	if m.WeekStart < FirstWeek || m.WeekEnd > LastWeek || m.WeekStart > m.WeekEnd {
		return fmt.Errorf("invalid week band %d-%d", m.WeekStart, m.WeekEnd)
	}
	if !m.Domain.IsValid() {
		return fmt.Errorf("invalid domain: %s", m.Domain)
	}
	if m.Milestone == "" || m.Source == "" {
		return fmt.Errorf("milestone and source are required")
	}
	return nil
}

// ValidateWeek returns a validation error when week is outside the catalog range.
func ValidateWeek(week int) error {
	if week < FirstWeek || week > LastWeek {
		return domain.NewValidationError(
			fmt.Sprintf("week must be between %d and %d, got %d", FirstWeek, LastWeek, week))
	}
	return nil
}

// Catalog returns the embedded milestone catalog.
func Catalog() ([]Milestone, error) {
	return ParseCatalog(catalogYAML)
}

// ParseCatalog decodes and validates a YAML milestone list.
func ParseCatalog(data []byte) ([]Milestone, error) {
	var milestones []Milestone
	if err := yaml.Unmarshal(data, &milestones); err != nil {
		return nil, fmt.Errorf("failed to parse milestone catalog: %w", err)
	}
	for i, m := range milestones {
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("milestone %d: %w", i, err)
		}
	}
	return milestones, nil
}
