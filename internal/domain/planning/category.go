package planning

import (
	"encoding/json"
	"sort"
	"strings"
)

// Category is an activity category a venue belongs to. Values match the labels
// shown to parents, so liked/disliked preferences can be compared directly.
type Category string

const (
	CategoryParks       Category = "Parks & Playgrounds"
	CategoryMuseums     Category = "Museums & Galleries"
	CategorySoftPlay    Category = "Soft Play Centers"
	CategoryFarmVisits  Category = "Farm Visits"
	CategoryAquariums   Category = "Aquariums & Zoos"
	CategorySwimming    Category = "Swimming Pools"
	CategoryLibraries   Category = "Libraries & Story Time"
	CategoryCafes       Category = "Cafes & Restaurants"
	CategoryShopping    Category = "Shopping Centers"
	CategoryNatureWalks Category = "Nature Walks"
	CategoryIndoorPlay  Category = "Indoor Play Areas"
	CategoryEducational Category = "Educational Centers"
	CategorySports      Category = "Sports Activities"
	CategoryArtsCrafts  Category = "Arts & Crafts"
	CategoryMusicDance  Category = "Music & Dance"
)

var knownCategories = map[Category]struct{}{
	CategoryParks:       {},
	CategoryMuseums:     {},
	CategorySoftPlay:    {},
	CategoryFarmVisits:  {},
	CategoryAquariums:   {},
	CategorySwimming:    {},
	CategoryLibraries:   {},
	CategoryCafes:       {},
	CategoryShopping:    {},
	CategoryNatureWalks: {},
	CategoryIndoorPlay:  {},
	CategoryEducational: {},
	CategorySports:      {},
	CategoryArtsCrafts:  {},
	CategoryMusicDance:  {},
}

// IsValid returns true if the category is one of the recognized categories.
func (c Category) IsValid() bool {
	_, ok := knownCategories[c]
	return ok
}

// String returns the category label.
func (c Category) String() string { return string(c) }

// CategorySet is an unordered set of categories. It marshals as a sorted JSON array.
type CategorySet map[Category]struct{}

// NewCategorySet builds a set from raw labels, trimming whitespace and skipping blanks.
func NewCategorySet(labels ...string) CategorySet {
	set := make(CategorySet, len(labels))
	for _, l := range labels {
		if l = strings.TrimSpace(l); l != "" {
			set[Category(l)] = struct{}{}
		}
	}
	return set
}

// Has reports whether c is in the set. A nil set contains nothing.
func (s CategorySet) Has(c Category) bool {
	_, ok := s[c]
	return ok
}

// Sorted returns the members in lexical order.
func (s CategorySet) Sorted() []Category {
	out := make([]Category, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// MarshalJSON encodes the set as a sorted array.
func (s CategorySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes an array of labels.
func (s *CategorySet) UnmarshalJSON(data []byte) error {
	var labels []string
	if err := json.Unmarshal(data, &labels); err != nil {
		return err
	}
	*s = NewCategorySet(labels...)
	return nil
}

// TransportMode is how the family travels between stops.
type TransportMode string

const (
	TransportCar     TransportMode = "car"
	TransportPublic  TransportMode = "public"
	TransportWalking TransportMode = "walking"
	TransportCycling TransportMode = "cycling"
)

// IsValid returns true if the mode is recognized.
func (m TransportMode) IsValid() bool {
	switch m {
	case TransportCar, TransportPublic, TransportWalking, TransportCycling:
		return true
	}
	return false
}
