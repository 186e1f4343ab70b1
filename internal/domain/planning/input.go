package planning

import (
	"fmt"
	"strings"
	"time"

	"github.com/babygenie/service-planner/internal/platform/domain"
)

// Bounds accepted by Normalize.
const (
	MinBudget        = 10.0
	MaxBudget        = 200.0
	MinTravelMinutes = 10
	MaxTravelMinutes = 120
)

// Age bands (in months) that select a nap schedule.
const (
	infantBandMonths  = 12
	toddlerBandMonths = 24
)

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ChildAge is a child's age as entered by the parent.
type ChildAge struct {
	AgeYears  int `json:"ageYears"`
	AgeMonths int `json:"ageMonths"`
}

// ActivityPreferences captures what the family enjoys and avoids.
type ActivityPreferences struct {
	LikedActivities        []string `json:"likedActivities"`
	DislikedActivities     []string `json:"dislikedActivities"`
	EatOut                 bool     `json:"eatOut"`
	FoodStyle              string   `json:"foodStyle,omitempty"`
	RestaurantRequirements string   `json:"restaurantRequirements,omitempty"`
}

// PlanningRequest is the raw planning request received from the request layer.
type PlanningRequest struct {
	UserID              string              `json:"userId,omitempty"`
	Children            []ChildAge          `json:"children"`
	Postcode            string              `json:"postcode"`
	MaxTravelTime       int                 `json:"maxTravelTime"`
	TransportMode       string              `json:"transportMode"`
	Budget              float64             `json:"budget"`
	StartTime           string              `json:"startTime"`
	EndTime             string              `json:"endTime"`
	ActivityPreferences ActivityPreferences `json:"activityPreferences"`
}

// Child is a normalized child record.
type Child struct {
	AgeMonths int `json:"ageMonths"`
}

// NapWindow is a time-of-day range, formatted "HH:MM".
type NapWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (w NapWindow) String() string { return w.Start + "-" + w.End }

// PlanningInput is a validated, enriched planning request.
type PlanningInput struct {
	UserID                 string        `json:"userId,omitempty"`
	Children               []Child       `json:"children"`
	Postcode               string        `json:"postcode"`
	Budget                 float64       `json:"budget"`
	MaxTravelTime          int           `json:"maxTravelTime"`
	TransportMode          TransportMode `json:"transportMode"`
	Start                  time.Time     `json:"start"`
	End                    time.Time     `json:"end,omitempty"`
	Liked                  CategorySet   `json:"liked"`
	Disliked               CategorySet   `json:"disliked"`
	EatOut                 bool          `json:"eatOut"`
	FoodStyle              string        `json:"foodStyle,omitempty"`
	RestaurantRequirements string        `json:"restaurantRequirements,omitempty"`
	AverageAgeMonths       float64       `json:"averageAgeMonths"`
	NapWindows             [2]NapWindow  `json:"napWindows"`
}

// Normalize validates req and derives the fields the scorer and builder need.
// Every failure is a *domain.ValidationError naming the violated constraint.
func Normalize(req PlanningRequest) (*PlanningInput, error) {
	if len(req.Children) == 0 {
		return nil, domain.NewValidationError("at least one child is required")
	}
	if req.Budget < MinBudget || req.Budget > MaxBudget {
		return nil, domain.NewValidationError(
			fmt.Sprintf("budget must be between %.0f and %.0f, got %g", MinBudget, MaxBudget, req.Budget))
	}
	if req.MaxTravelTime < MinTravelMinutes || req.MaxTravelTime > MaxTravelMinutes {
		return nil, domain.NewValidationError(
			fmt.Sprintf("max travel time must be between %d and %d minutes, got %d",
				MinTravelMinutes, MaxTravelMinutes, req.MaxTravelTime))
	}

	mode := TransportMode(strings.ToLower(strings.TrimSpace(req.TransportMode)))
	if mode == "" {
		mode = TransportCar
	}
	if !mode.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid transport mode: %s", req.TransportMode))
	}

	children := make([]Child, len(req.Children))
	totalMonths := 0
	for i, c := range req.Children {
		if c.AgeYears < 0 || c.AgeMonths < 0 {
			return nil, domain.NewValidationError(fmt.Sprintf("child %d: age cannot be negative", i+1))
		}
		months := c.AgeYears*12 + c.AgeMonths
		children[i] = Child{AgeMonths: months}
		totalMonths += months
	}
	avg := float64(totalMonths) / float64(len(children))

	start, err := ParseTimestamp(req.StartTime)
	if err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid start time %q", req.StartTime))
	}
	var end time.Time
	if strings.TrimSpace(req.EndTime) != "" {
		end, err = ParseTimestamp(req.EndTime)
		if err != nil {
			return nil, domain.NewValidationError(fmt.Sprintf("invalid end time %q", req.EndTime))
		}
		if end.Before(start) {
			return nil, domain.NewValidationError("end time must not be before start time")
		}
	}

	prefs := req.ActivityPreferences
	return &PlanningInput{
		UserID:                 strings.TrimSpace(req.UserID),
		Children:               children,
		Postcode:               NormalizePostcode(req.Postcode),
		Budget:                 req.Budget,
		MaxTravelTime:          req.MaxTravelTime,
		TransportMode:          mode,
		Start:                  start,
		End:                    end,
		Liked:                  NewCategorySet(prefs.LikedActivities...),
		Disliked:               NewCategorySet(prefs.DislikedActivities...),
		EatOut:                 prefs.EatOut,
		FoodStyle:              prefs.FoodStyle,
		RestaurantRequirements: prefs.RestaurantRequirements,
		AverageAgeMonths:       avg,
		NapWindows:             NapWindowsFor(avg),
	}, nil
}

// NapWindowsFor returns the nap schedule for a child of the given average age.
func NapWindowsFor(avgAgeMonths float64) [2]NapWindow {
	switch {
	case avgAgeMonths < infantBandMonths:
		return [2]NapWindow{{Start: "09:00", End: "10:30"}, {Start: "13:00", End: "15:00"}}
	case avgAgeMonths < toddlerBandMonths:
		return [2]NapWindow{{Start: "09:30", End: "10:30"}, {Start: "13:00", End: "14:30"}}
	default:
		return [2]NapWindow{{Start: "12:30", End: "14:00"}, {Start: "16:00", End: "16:30"}}
	}
}

// ParseTimestamp accepts RFC 3339 or a zone-less "2006-01-02T15:04[:05]" timestamp.
// Zone-less values are read as UTC.
func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// NormalizePostcode upper-cases a postcode and collapses internal whitespace.
func NormalizePostcode(raw string) string {
	return strings.Join(strings.Fields(strings.ToUpper(raw)), " ")
}
