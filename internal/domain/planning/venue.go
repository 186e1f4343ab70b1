package planning

import "context"

// VenueCandidate is a venue eligible for inclusion in a plan. Candidates are value
// objects; only Score changes, and only on the copy returned by Rank.
type VenueCandidate struct {
	ID                 string   `json:"id" yaml:"id"`
	Name               string   `json:"name" yaml:"name"`
	Category           Category `json:"category" yaml:"category"`
	Location           string   `json:"location" yaml:"location"`
	Cost               float64  `json:"cost" yaml:"cost"`
	BabyFriendliness   float64  `json:"babyFriendliness" yaml:"baby_friendliness"`
	DistanceKm         float64  `json:"distanceKm" yaml:"distance_km"`
	WeatherSuitable    bool     `json:"weatherSuitable" yaml:"weather_suitable"`
	StrollerAccessible bool     `json:"strollerAccessible" yaml:"stroller_accessible"`
	TravelTime         int      `json:"travelTime" yaml:"travel_time"`
	BookingRef         string   `json:"bookingRef,omitempty" yaml:"booking_ref"`
	Score              *float64 `json:"score,omitempty" yaml:"-"`
}

// WithScore returns a copy of the candidate carrying score.
func (v VenueCandidate) WithScore(score float64) VenueCandidate {
	v.Score = &score
	return v
}

// Scored returns the computed score and whether one has been assigned.
func (v VenueCandidate) Scored() (float64, bool) {
	if v.Score == nil {
		return 0, false
	}
	return *v.Score, true
}

// CandidateSource supplies the venues near a location.
type CandidateSource interface {
	Fetch(ctx context.Context, location string) ([]VenueCandidate, error)
}

// WeatherReporter describes the expected weather for the outing.
type WeatherReporter interface {
	Summary(ctx context.Context, location string) string
}
