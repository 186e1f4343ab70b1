package venues

import (
	"context"
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/babygenie/service-planner/internal/domain/planning"
)

//go:embed venues.yaml
var catalogYAML []byte

// StaticSource serves a fixed venue catalog. The location is accepted but not
// used for filtering.
type StaticSource struct {
	venues []planning.VenueCandidate
}

// NewStaticSource loads the embedded catalog.
func NewStaticSource() (*StaticSource, error) {
	return ParseCatalog(catalogYAML)
}

// ParseCatalog builds a StaticSource from a YAML list of venues.
func ParseCatalog(data []byte) (*StaticSource, error) {
	var venues []planning.VenueCandidate
	if err := yaml.Unmarshal(data, &venues); err != nil {
		return nil, fmt.Errorf("failed to parse venue catalog: %w", err)
	}
	for i, v := range venues {
		if v.ID == "" || v.Name == "" {
			return nil, fmt.Errorf("venue %d: id and name are required", i)
		}
		if !v.Category.IsValid() {
			return nil, fmt.Errorf("venue %s: unknown category %q", v.ID, v.Category)
		}
	}
	return &StaticSource{venues: venues}, nil
}

// Fetch returns a copy of the catalog.
func (s *StaticSource) Fetch(_ context.Context, _ string) ([]planning.VenueCandidate, error) {
	return slices.Clone(s.venues), nil
}

// Len returns the number of venues in the catalog.
func (s *StaticSource) Len() int {
	return len(s.venues)
}
