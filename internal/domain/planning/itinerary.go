package planning

import (
	"fmt"
	"time"

	"github.com/babygenie/service-planner/internal/platform/domain"
)

// Theme is an itinerary archetype.
type Theme string

const (
	ThemeOutdoor Theme = "outdoor"
	ThemeIndoor  Theme = "indoor"
	ThemeMixed   Theme = "mixed"
)

// approxPlanDuration is reported for every plan regardless of the actual stop
// times. It is a known approximation kept for compatibility with existing clients.
const approxPlanDuration = "6 hours"

const clockLayout = "15:04"

// TransportLeg describes how to reach the next stop.
type TransportLeg struct {
	Mode         TransportMode `json:"mode"`
	Duration     int           `json:"duration"`
	Instructions string        `json:"instructions"`
}

// ActivityStop is one scheduled visit within a plan.
type ActivityStop struct {
	Name          string        `json:"name"`
	Category      Category      `json:"category"`
	Location      string        `json:"location"`
	Time          string        `json:"time"`
	ArrivalTime   string        `json:"arrivalTime"`
	DepartureTime string        `json:"departureTime"`
	Duration      int           `json:"duration"`
	Cost          float64       `json:"cost"`
	TravelTime    int           `json:"travelTime"`
	Note          string        `json:"note"`
	TopTips       []string      `json:"topTips"`
	Pros          []string      `json:"pros"`
	Cons          []string      `json:"cons"`
	Transport     *TransportLeg `json:"transportDetails,omitempty"`
}

// ItineraryPlan is an ordered set of stops sharing one theme.
type ItineraryPlan struct {
	Theme           Theme          `json:"theme"`
	Title           string         `json:"title"`
	Stops           []ActivityStop `json:"stops"`
	TotalCost       float64        `json:"totalCost"`
	TotalTravelTime int            `json:"totalTravelTime"`
	TotalDuration   string         `json:"totalDuration"`
	EstimatedSpend  float64        `json:"estimatedSpend"`
	Notes           string         `json:"notes"`
}

// PlanSet is the result of one planning request.
type PlanSet struct {
	RequestID        string          `json:"requestId"`
	Plans            []ItineraryPlan `json:"plans"`
	WeatherSummary   string          `json:"weatherSummary"`
	GenerationTimeMs int64           `json:"generationTimeMs"`
}

// Themes returns the themes represented in the set, in plan order.
func (s PlanSet) Themes() []Theme {
	themes := make([]Theme, len(s.Plans))
	for i, p := range s.Plans {
		themes[i] = p.Theme
	}
	return themes
}

type themeLayout struct {
	theme         Theme
	title         string
	categories    CategorySet
	maxStops      int
	stopDuration  time.Duration
	step          time.Duration
	foodAllowance float64
}

// themeLayouts is the fixed set of itinerary templates, in output order.
// A nil category set accepts any category.
var themeLayouts = []themeLayout{
	{
		theme:         ThemeOutdoor,
		title:         "Outdoor Adventure",
		categories:    CategorySet{CategoryParks: {}, CategoryNatureWalks: {}, CategoryFarmVisits: {}},
		maxStops:      3,
		stopDuration:  90 * time.Minute,
		step:          2 * time.Hour,
		foodAllowance: 20,
	},
	{
		theme:         ThemeIndoor,
		title:         "Indoor Discovery",
		categories:    CategorySet{CategoryMuseums: {}, CategorySoftPlay: {}, CategoryEducational: {}},
		maxStops:      3,
		stopDuration:  90 * time.Minute,
		step:          2 * time.Hour,
		foodAllowance: 25,
	},
	{
		theme:         ThemeMixed,
		title:         "Best of Both",
		maxStops:      4,
		stopDuration:  60 * time.Minute,
		step:          90 * time.Minute,
		foodAllowance: 30,
	},
}

// BuildPlans lays out up to one plan per theme from the ranked candidates.
// Themes with no matching candidates are omitted, so the set may be empty.
func BuildPlans(ranked []VenueCandidate, in *PlanningInput) (PlanSet, error) {
	if in == nil || in.Start.IsZero() {
		return PlanSet{}, domain.NewValidationError("a valid start time is required to build plans")
	}

	plans := make([]ItineraryPlan, 0, len(themeLayouts))
	for _, layout := range themeLayouts {
		chosen := layout.pick(ranked)
		if len(chosen) == 0 {
			continue
		}
		plans = append(plans, layout.build(chosen, in))
	}
	return PlanSet{Plans: plans}, nil
}

// pick keeps rank order and truncates to maxStops. Candidates past the cut are dropped.
func (l themeLayout) pick(ranked []VenueCandidate) []VenueCandidate {
	chosen := make([]VenueCandidate, 0, l.maxStops)
	for _, c := range ranked {
		if len(chosen) == l.maxStops {
			break
		}
		if l.categories == nil || l.categories.Has(c.Category) {
			chosen = append(chosen, c)
		}
	}
	return chosen
}

func (l themeLayout) build(chosen []VenueCandidate, in *PlanningInput) ItineraryPlan {
	g := guidanceFor(l.theme, in.AverageAgeMonths)
	plan := ItineraryPlan{
		Theme:         l.theme,
		Title:         l.title,
		Stops:         make([]ActivityStop, len(chosen)),
		TotalDuration: approxPlanDuration,
		Notes:         g.planNote,
	}

	for i, c := range chosen {
		// Slots are fixed offsets from the start; travel between stops does not shift them.
		arrival := in.Start.Add(time.Duration(i) * l.step)
		departure := arrival.Add(l.stopDuration)

		stop := ActivityStop{
			Name:          c.Name,
			Category:      c.Category,
			Location:      c.Location,
			Time:          arrival.Format(clockLayout) + "-" + departure.Format(clockLayout),
			ArrivalTime:   arrival.Format(clockLayout),
			DepartureTime: departure.Format(clockLayout),
			Duration:      int(l.stopDuration / time.Minute),
			Cost:          c.Cost,
			Note:          g.stopNote,
			TopTips:       g.tips,
			Pros:          g.pros,
			Cons:          g.cons,
		}
		if i+1 < len(chosen) {
			next := chosen[i+1]
			stop.TravelTime = next.TravelTime
			stop.Transport = &TransportLeg{
				Mode:         TransportCar,
				Duration:     next.TravelTime,
				Instructions: fmt.Sprintf("Drive %d minutes to %s", next.TravelTime, next.Name),
			}
		}

		plan.Stops[i] = stop
		plan.TotalCost += stop.Cost
		plan.TotalTravelTime += stop.TravelTime
	}

	plan.EstimatedSpend = plan.TotalCost + l.foodAllowance
	return plan
}
